package mypets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/mypets"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/page/pagetest"
)

func seedPets(env *pagetest.Env) {
	env.Server.Seed(backendtest.Pets,
		map[string]any{"id": 10, "usuarioId": 1, "nombre": "Firulais", "especie": "Perro"},
		map[string]any{"id": 11, "usuarioId": 2, "nombre": "Michi", "especie": "Gato"},
		map[string]any{"id": 12, "usuarioId": 1, "nombre": "Rocky", "especie": "Perro"},
	)
	env.Server.Seed(backendtest.PetImages,
		map[string]any{"id": 1, "mascotaId": 12, "ruta": "rocky.png"},
	)
}

func TestLoad_MyPetsAndDefaultSelection(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)

	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	v := pg.View()
	require.Len(t, v.Pets, 2)
	assert.Equal(t, "Firulais", v.Pets[0].Pet.Name)
	assert.Equal(t, int64(10), v.Selected)
	assert.Equal(t, "/img/placeholder.png", v.Pets[0].Photo)
	assert.True(t, strings.HasSuffix(v.Pets[1].Photo, "/uploads/rocky.png"), v.Pets[1].Photo)
	assert.False(t, v.Loading)
}

func TestLoad_NoSessionSkipsNetwork(t *testing.T) {
	env := pagetest.New(t, false)
	env.Server.Fail("allmascotas", http.StatusInternalServerError, "should not be called")

	pg := mypets.New(env.Deps)
	err := pg.Load(context.Background())
	require.ErrorIs(t, err, page.ErrNoSession)

	active := env.Queue.Active()
	require.Len(t, active, 1)
	assert.True(t, active[0].Blocking)
}

func TestLoad_OneFailureKeepsOthers(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	env.Server.Fail("alltratamientos", http.StatusInternalServerError, `{"message":"db down"}`)

	pg := mypets.New(env.Deps)
	err := pg.Load(context.Background())
	require.Error(t, err)

	v := pg.View()
	assert.Len(t, v.Pets, 2, "pets loaded even though treatments failed")
	assert.Empty(t, v.Pets[0].Treatments)
	assert.Equal(t, []notify.Level{notify.LevelDanger}, env.Levels())
}

func TestCreatePet_RequiresName(t *testing.T) {
	env := pagetest.New(t, true)
	pg := mypets.New(env.Deps)

	_, err := pg.CreatePet(context.Background(), mypets.PetInput{Name: "   "})
	require.ErrorIs(t, err, page.ErrInvalidInput)
	assert.Empty(t, env.Server.Records(backendtest.Pets))
}

func TestCreatePet_AppendsAndSelects(t *testing.T) {
	env := pagetest.New(t, true)
	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	pet, err := pg.CreatePet(context.Background(), mypets.PetInput{
		Name:   " Luna ",
		Weight: decimal.RequireFromString("4.2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luna", pet.Name)

	v := pg.View()
	require.Len(t, v.Pets, 1)
	assert.Equal(t, pet.ID, v.Selected)
	assert.Contains(t, env.Levels(), notify.LevelSuccess)
}

func TestUpdateAndDeletePet_OnlyOwn(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	_, err := pg.UpdatePet(context.Background(), 11, mypets.PetInput{Name: "Mío"})
	require.ErrorIs(t, err, page.ErrNotFound)

	updated, err := pg.UpdatePet(context.Background(), 10, mypets.PetInput{Name: "Firu"})
	require.NoError(t, err)
	assert.Equal(t, "Firu", updated.Name)

	require.NoError(t, pg.DeletePet(context.Background(), 10))
	v := pg.View()
	require.Len(t, v.Pets, 1)
	assert.Equal(t, int64(12), v.Selected, "selection moves to the next own pet")
}

func TestTreatment_TypeRequiredAndDateDefaultsToToday(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	_, err := pg.AddTreatment(context.Background(), mypets.TreatmentInput{PetID: 10})
	require.ErrorIs(t, err, page.ErrInvalidInput)

	tr, err := pg.AddTreatment(context.Background(), mypets.TreatmentInput{PetID: 10, Type: "Vacuna"})
	require.NoError(t, err)
	assert.Equal(t, pagetest.Now.Format("2006-01-02"), tr.Date.Format("2006-01-02"))

	recs := env.Server.Records(backendtest.Treatments)
	require.Len(t, recs, 1)
	assert.Equal(t, "2025-03-15", recs[0]["fecha"])
}

func TestGPS_RequiresCoordinatesAndBuildsMapLink(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	lat, lng := 19.4326, -99.1332
	_, err := pg.AddGPS(context.Background(), mypets.GPSInput{PetID: 10, Latitude: &lat})
	require.ErrorIs(t, err, page.ErrInvalidInput)

	_, err = pg.AddGPS(context.Background(), mypets.GPSInput{PetID: 10, Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps?q=19.4326,-99.1332", pg.MapLink(10))
	assert.Equal(t, "", pg.MapLink(12))
}

func TestAddImage_RequiresURL(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	pg := mypets.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	_, err := pg.AddImage(context.Background(), 10, "")
	require.ErrorIs(t, err, page.ErrInvalidInput)

	img, err := pg.AddImage(context.Background(), 10, "https://cdn.example.com/f.png")
	require.NoError(t, err)
	assert.Equal(t, int64(10), img.PetID)
	assert.Equal(t, "https://cdn.example.com/f.png", pg.View().Pets[0].Photo)
}

func TestHandlers(t *testing.T) {
	env := pagetest.New(t, true)
	seedPets(env)
	pg := mypets.New(env.Deps)

	r := chi.NewRouter()
	mypets.RegisterRoutes(r, pg)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/pets")
	require.NoError(t, err)
	var v mypets.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, v.Pets, 2)

	resp, err = http.Post(ts.URL+"/pets", "application/json", strings.NewReader(`{"name":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/pets/10/gps", "application/json", strings.NewReader(`{"latitude":1.5,"longitude":2}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/pets/11", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
