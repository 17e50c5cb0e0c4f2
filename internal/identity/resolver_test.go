package identity

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/adapters/storage/memory"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestResolve_SupportedShapes(t *testing.T) {
	cases := []struct {
		name  string
		items map[string]string
		want  int64
	}{
		{"direct key", map[string]string{"userId": "7"}, 7},
		{"direct legacy key", map[string]string{"id_usuario": " 12 "}, 12},
		{"quoted direct key", map[string]string{"idUsuario": `"15"`}, 15},
		{"envelope", map[string]string{SessionKey: `{"user":{"id":3,"nombre":"Ana"},"loggedInAt":"2026-01-01T00:00:00Z"}`}, 3},
		{"legacy bare record", map[string]string{SessionKey: `{"id":21,"email":"a@b.c"}`}, 21},
		{"nested usuario", map[string]string{SessionKey: `{"usuario":{"usuarioId":"9"}}`}, 9},
		{"session block", map[string]string{SessionKey: `{"session":{"usuarioId":11}}`}, 11},
		{"data nesting", map[string]string{SessionKey: `{"data":{"usuario":{"id":5}}}`}, 5},
		{"legacy object key", map[string]string{"currentUser": `{"user":{"userId":31}}`}, 31},
		{"deep nested", map[string]string{SessionKey: `{"profile":{"meta":{"owner":{"id_user":77}}}}`}, 77},
		{"deep inside array", map[string]string{SessionKey: `{"accounts":[{"name":"x"},{"usuarioId":8}]}`}, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Resolve(tc.items)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_JWTInSession(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"sub": "42", "email": "a@b.c"})
	got, ok := Resolve(map[string]string{SessionKey: `{"accessToken":"` + tok + `"}`})
	require.True(t, ok)
	assert.Equal(t, int64(42), got)

	tok = signed(t, jwt.MapClaims{"usuarioId": 6, "sub": "42"})
	got, ok = Resolve(map[string]string{SessionKey: `{"token":"` + tok + `"}`})
	require.True(t, ok)
	assert.Equal(t, int64(6), got)
}

func TestResolve_NoIdentity(t *testing.T) {
	cases := []map[string]string{
		nil,
		{},
		{"userId": "abc"},
		{"userId": "-3"},
		{"userId": "0"},
		{"userId": "2.5"},
		{SessionKey: "not json"},
		{SessionKey: `[1,2,3]`},
		{SessionKey: `{"user":{"nombre":"Ana"}}`},
		{SessionKey: `{"token":"a.b"}`},
		{SessionKey: `{"token":"aaa.%%%.ccc"}`},
		{SessionKey: `{"user":{"id":-4}}`},
	}
	for _, items := range cases {
		got, ok := Resolve(items)
		assert.False(t, ok, "%v", items)
		assert.Equal(t, int64(0), got)
	}
}

func TestResolve_DirectKeyBeatsSession(t *testing.T) {
	got, ok := Resolve(map[string]string{
		"usuarioId": "4",
		SessionKey:  `{"user":{"id":99}}`,
	})
	require.True(t, ok)
	assert.Equal(t, int64(4), got)
}

func TestDeepFind_CycleAndDepth(t *testing.T) {
	cyclic := map[string]any{"name": "loop"}
	cyclic["self"] = cyclic
	_, ok := deepFind(cyclic)
	assert.False(t, ok)

	var nested any = map[string]any{"id": 5}
	for i := 0; i < MaxDepth+2; i++ {
		nested = map[string]any{"child": nested}
	}
	_, ok = deepFind(nested)
	assert.False(t, ok)

	shallow := map[string]any{"a": map[string]any{"b": map[string]any{"userId": 3}}}
	got, ok := deepFind(shallow)
	require.True(t, ok)
	assert.Equal(t, int64(3), got)
}

func TestResolveFrom_Store(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLocalStore()
	require.NoError(t, store.SetItem(ctx, SessionKey, `{"user":{"id":14}}`))

	got, ok := ResolveFrom(ctx, store)
	require.True(t, ok)
	assert.Equal(t, int64(14), got)

	_, ok = ResolveFrom(ctx, nil)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "Bearer abc", BearerToken(map[string]string{"access_token": "abc"}))
	assert.Equal(t, "Bearer xyz", BearerToken(map[string]string{"jwt": "Bearer xyz"}))
	assert.Equal(t, "Bearer s1", BearerToken(map[string]string{SessionKey: `{"authToken":"s1"}`}))
	assert.Equal(t, "", BearerToken(map[string]string{SessionKey: `{"user":{"id":1}}`}))
}
