package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func TestUnwrapList_Shapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"content", `{"content":[{"id":1},{"id":2}]}`, 2},
		{"data", `{"data":[{"id":1},{"id":2}]}`, 2},
		{"items", `{"items":[{"id":1},{"id":2}]}`, 2},
		{"unrelated object", `{"foo":[{"id":1}]}`, 0},
		{"scalar", `42`, 0},
		{"null", `null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnwrapList(decode(t, tc.body))
			require.NotNil(t, got)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestUnwrapList_ContentWinsOverData(t *testing.T) {
	got := UnwrapList(decode(t, `{"data":[{"id":9}],"content":[{"id":1}]}`))
	require.Len(t, got, 1)
	n, _ := Int(got[0], []string{"id"})
	assert.Equal(t, int64(1), n)
}

func TestCoalesce_FirstCandidateWins(t *testing.T) {
	n := New(ImageResolver{})
	pet := n.Pet(decode(t, `{"id":3,"usuarioId":5,"idUsuario":9}`).(Raw))
	assert.Equal(t, int64(5), pet.OwnerUserID)
}

func TestCoalesce_SkipsEmptyAndNaN(t *testing.T) {
	n := New(ImageResolver{})

	pet := n.Pet(decode(t, `{"id":3,"usuarioId":"","idUsuario":null,"ownerId":"abc","userId":"12"}`).(Raw))
	assert.Equal(t, int64(12), pet.OwnerUserID)

	pet = n.Pet(decode(t, `{"id":3,"usuario":{"id":44}}`).(Raw))
	assert.Equal(t, int64(44), pet.OwnerUserID)
}

func TestMissingPrimaryKey_IsZeroNotDropped(t *testing.T) {
	n := New(ImageResolver{})
	pets := List(decode(t, `[{"nombre":"Firulais","usuarioId":1},{"id":2,"nombre":"Michi"}]`), n.Pet)
	require.Len(t, pets, 2)
	assert.Equal(t, int64(0), pets[0].ID)
	assert.Equal(t, "Firulais", pets[0].Name)
	assert.Equal(t, int64(2), pets[1].ID)
}

func TestImageResolver_Order(t *testing.T) {
	r := ImageResolver{MediaURL: "http://api.local/api/petcare/uploads", Placeholder: "/ph.png"}

	dataURI := "data:image/png;base64,AAAA"
	assert.Equal(t, dataURI, r.Resolve(dataURI))

	abs := "https://cdn.example.com/a/b.jpg"
	assert.Equal(t, abs, r.Resolve(abs))
	assert.Equal(t, "HTTP://cdn.example.com/x.png", r.Resolve("HTTP://cdn.example.com/x.png"))

	b64 := strings.Repeat("QUJD", 75)
	require.Len(t, b64, 300)
	assert.Equal(t, "data:image/jpeg;base64,"+b64, r.Resolve(b64))

	assert.Equal(t, "http://api.local/api/petcare/uploads/firulais.jpg", r.Resolve("firulais.jpg"))
	assert.Equal(t, "http://api.local/api/petcare/uploads/pets/7/a.png", r.Resolve("/pets/7/a.png"))

	assert.Equal(t, "/ph.png", r.Resolve(""))
	assert.Equal(t, "/ph.png", r.Resolve("   "))
}

func TestImageResolver_ShortStringIsFilename(t *testing.T) {
	r := ImageResolver{MediaURL: "http://h/media/"}
	assert.Equal(t, "http://h/media/abc", r.Resolve("abc"))
	assert.Equal(t, DefaultPlaceholder, ImageResolver{}.Resolve(""))
}

func TestExpense_DecimalAndDates(t *testing.T) {
	n := New(ImageResolver{})
	e := n.Expense(decode(t, `{"idGasto":"8","idUsuario":2,"categoria":"Alimento","monto":"120.50","fechaGasto":"2026-01-15"}`).(Raw))

	assert.Equal(t, int64(8), e.ID)
	assert.Equal(t, int64(2), e.OwnerUserID)
	assert.Equal(t, "120.5", e.Amount.String())
	assert.Equal(t, 2026, e.Date.Year())
	assert.Equal(t, 15, e.Date.Day())
}

func TestToTime_Formats(t *testing.T) {
	for _, s := range []string{
		"2026-03-04",
		"2026-03-04T10:11:12",
		"2026-03-04T10:11:12.123",
		"2026-03-04 10:11:12",
		"2026-03-04T10:11:12Z",
		"2026-03-04T10:11:12-06:00",
	} {
		tm, ok := ToTime(s)
		require.True(t, ok, s)
		assert.Equal(t, 2026, tm.Year(), s)
	}

	_, ok := ToTime("ayer")
	assert.False(t, ok)

	tm, ok := ToTime(float64(1700000000000))
	require.True(t, ok)
	assert.Equal(t, 2023, tm.Year())
}

func TestAdoptionRequest_Status(t *testing.T) {
	n := New(ImageResolver{})
	r := n.AdoptionRequest(decode(t, `{"id":1,"adopcionId":4,"solicitanteId":2,"estado":"Aceptada"}`).(Raw))
	assert.Equal(t, "accepted", string(r.Status))
	assert.Equal(t, "aceptada", WireStatus(r.Status))

	r = n.AdoptionRequest(decode(t, `{"id":1}`).(Raw))
	assert.Equal(t, "pending", string(r.Status))
}

func TestUser_NameFallbacks(t *testing.T) {
	n := New(ImageResolver{})
	u := n.User(decode(t, `{"id":1,"nombre":"Ana","apellidoPaterno":"Ruiz","password":" x "}`).(Raw))
	assert.Equal(t, "Ana Ruiz", u.Name)
	assert.Equal(t, " x ", u.Password)

	u = n.User(decode(t, `{"id":1,"username":"ana_r"}`).(Raw))
	assert.Equal(t, "ana_r", u.Name)
	assert.Empty(t, u.Photo)
}
