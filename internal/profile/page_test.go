package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/page"
	"petcare-companion/internal/page/pagetest"
	"petcare-companion/internal/profile"
	"petcare-companion/internal/views"
)

func seedProfile(env *pagetest.Env) {
	env.Server.Seed(backendtest.Pets,
		map[string]any{"id": 10, "usuarioId": 1, "nombre": "Firulais"},
		map[string]any{"id": 11, "usuarioId": 2, "nombre": "Michi"},
	)
	env.Server.Seed(backendtest.Posts,
		map[string]any{"id": 15, "usuarioId": 1, "contenido": "hola"},
		map[string]any{"id": 16, "usuarioId": 1, "contenido": "otra"},
	)
	env.Server.Seed(backendtest.Listings,
		map[string]any{"id": 20, "mascotaId": 10, "usuarioPublicadorId": 1, "disponible": true},
	)
	env.Server.Seed(backendtest.Requests,
		map[string]any{"id": 30, "adopcionId": 20, "solicitanteId": 2, "estado": "pendiente"},
	)
	env.Server.Seed(backendtest.Neighborhoods,
		map[string]any{"id": 60, "nombre": "Roma Norte", "codigoInvitacion": "ROMA2345", "userId": 2},
		map[string]any{"id": 61, "nombre": "Condesa", "codigoInvitacion": "CONDE234", "userId": 2},
	)
	env.Server.Seed(backendtest.Memberships,
		map[string]any{"id": 70, "usuarioId": 1, "coloniaId": 60, "fechaRegistro": "2025-01-01T10:00:00"},
		map[string]any{"id": 71, "usuarioId": 1, "coloniaId": 61, "fechaRegistro": "2025-02-01T10:00:00"},
	)
}

func load(t *testing.T, env *pagetest.Env) *profile.Page {
	t.Helper()
	pg := profile.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))
	return pg
}

func TestLoad_StatsAndLatestNeighborhood(t *testing.T) {
	env := pagetest.New(t, true)
	seedProfile(env)
	v := load(t, env).View()

	assert.Equal(t, "Ana", v.User.Name)
	assert.Empty(t, v.User.Password, "password never leaves the page")
	assert.Equal(t, views.ProfileStats{Pets: 1, Posts: 2, Listings: 1, Requests: 0}, v.Stats)
	require.NotNil(t, v.Neighborhood)
	assert.Equal(t, "Condesa", v.Neighborhood.Name)
}

func TestSave_PreservesPasswordAndSyncsSession(t *testing.T) {
	env := pagetest.New(t, true)
	seedProfile(env)
	pg := load(t, env)

	_, err := pg.Save(context.Background(), profile.ProfileInput{Name: " ", Email: "a@b.c"})
	require.ErrorIs(t, err, page.ErrInvalidInput)
	_, err = pg.Save(context.Background(), profile.ProfileInput{Name: "Ana", Email: "ana.example.com"})
	require.ErrorIs(t, err, page.ErrInvalidInput)

	u, err := pg.Save(context.Background(), profile.ProfileInput{
		Name:       " Ana María ",
		Email:      "ana@example.com",
		Phone:      "5512345678",
		NationalID: "AAAA000101MDFRRN09",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
	assert.Empty(t, u.Password)

	rec := env.Server.Records(backendtest.Users)[0]
	assert.Equal(t, pagetest.Password, rec["password"])
	assert.Equal(t, "5512345678", rec["telefonoCelular"])
	assert.Equal(t, "AAAA000101MDFRRN09", rec["curp"])

	cur, ok := env.Deps.Session.User()
	require.True(t, ok)
	assert.Equal(t, "Ana María", cur.Name)
}

func TestSave_WithoutLoadedPassword(t *testing.T) {
	env := pagetest.New(t, true)
	pg := profile.New(env.Deps)

	_, err := pg.Save(context.Background(), profile.ProfileInput{Name: "Ana", Email: "ana@example.com"})
	require.ErrorIs(t, err, page.ErrBadState)
}

func TestSavePhoto(t *testing.T) {
	env := pagetest.New(t, true)
	pg := load(t, env)

	_, err := pg.SavePhoto(context.Background(), "  ")
	require.ErrorIs(t, err, page.ErrInvalidInput)

	u, err := pg.SavePhoto(context.Background(), "https://cdn.example.com/ana.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ana.png", u.Photo)
	assert.Equal(t, "https://cdn.example.com/ana.png", env.Server.Records(backendtest.Users)[0]["fotoPerfil"])

	cur, _ := env.Deps.Session.User()
	assert.Equal(t, "https://cdn.example.com/ana.png", cur.Photo)
}

func TestSavePhoto_BackendError(t *testing.T) {
	env := pagetest.New(t, true)
	pg := load(t, env)
	env.Server.Fail("create-user", http.StatusNotFound, `{"message":"Usuario no encontrado"}`)

	_, err := pg.SavePhoto(context.Background(), "https://cdn.example.com/ana.png")
	require.Error(t, err)
	assert.Equal(t, "Usuario no encontrado", env.Queue.Active()[0].Message)
}

func TestHandlers(t *testing.T) {
	env := pagetest.New(t, true)
	seedProfile(env)
	pg := profile.New(env.Deps)

	r := chi.NewRouter()
	profile.RegisterRoutes(r, pg)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/profile")
	require.NoError(t, err)
	var v profile.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, 2, v.Stats.Posts)

	put := func(path, body string) int {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+path, strings.NewReader(body))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusBadRequest, put("/profile", `{"name":"Ana","email":"nope"}`))
	assert.Equal(t, http.StatusOK, put("/profile", `{"name":"Ana","email":"ana@example.com"}`))
	assert.Equal(t, http.StatusBadRequest, put("/profile/photo", `{}`))
}
