package account_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/account"
	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/page/pagetest"
	"petcare-companion/internal/session"
)

func TestLogin(t *testing.T) {
	env := pagetest.New(t, false)
	pg := account.New(env.Deps)

	_, err := pg.Login(context.Background(), "", "")
	require.ErrorIs(t, err, page.ErrInvalidInput)

	_, err = pg.Login(context.Background(), pagetest.Email, "mala")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.Equal(t, notify.LevelWarning, env.Levels()[0])

	u, err := pg.Login(context.Background(), " ANA@example.com ", pagetest.Password)
	require.NoError(t, err)
	assert.Equal(t, pagetest.UserID, u.ID)
	assert.Empty(t, u.Password)

	me, err := pg.WhoAmI()
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.User.Name)
	assert.False(t, me.LoggedInAt.IsZero())
}

func TestLogin_BackendDown(t *testing.T) {
	env := pagetest.New(t, false)
	env.Server.Fail("allusers", http.StatusServiceUnavailable, `{"message":"mantenimiento"}`)
	pg := account.New(env.Deps)

	_, err := pg.Login(context.Background(), pagetest.Email, pagetest.Password)
	require.Error(t, err)
	assert.Equal(t, notify.LevelDanger, env.Levels()[0])
}

func TestRegisterInput_Validate(t *testing.T) {
	ok := account.RegisterInput{Name: "Luz", Email: "luz@example.com", Password: "123456"}
	require.NoError(t, ok.Validate())

	cases := map[string]account.RegisterInput{
		"short name":     {Name: "L", Email: "luz@example.com", Password: "123456"},
		"bad email":      {Name: "Luz", Email: "luz.example.com", Password: "123456"},
		"display email":  {Name: "Luz", Email: "Luz <luz@example.com>", Password: "123456"},
		"short password": {Name: "Luz", Email: "luz@example.com", Password: "12345"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, in.Validate(), page.ErrInvalidInput)
		})
	}
}

func TestRegister_CreatesWithoutLogin(t *testing.T) {
	env := pagetest.New(t, false)
	pg := account.New(env.Deps)

	u, err := pg.Register(context.Background(), account.RegisterInput{
		Name: " Luz ", Email: "luz@example.com", Password: "123456", Phone: "5511112222",
	})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.Empty(t, u.Password)

	recs := env.Server.Records(backendtest.Users)
	require.Len(t, recs, 3)
	assert.Equal(t, "Luz", recs[2]["nombre"])
	assert.Equal(t, "123456", recs[2]["password"])
	assert.NotContains(t, recs[2], "curp")

	_, err = pg.WhoAmI()
	require.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestLogout(t *testing.T) {
	env := pagetest.New(t, true)
	pg := account.New(env.Deps)

	require.NoError(t, pg.Logout(context.Background()))
	_, ok := env.Deps.Session.User()
	assert.False(t, ok)
}

func TestHandlers(t *testing.T) {
	env := pagetest.New(t, false)
	r := chi.NewRouter()
	account.RegisterRoutes(r, account.New(env.Deps))
	ts := httptest.NewServer(r)
	defer ts.Close()

	post := func(path, body string) int {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	get := func(path string) int {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, get("/auth/me"))
	assert.Equal(t, http.StatusUnauthorized, post("/auth/login", `{"email":"ana@example.com","password":"x"}`))
	assert.Equal(t, http.StatusOK, post("/auth/login", `{"email":"ana@example.com","password":"secreta"}`))
	assert.Equal(t, http.StatusOK, get("/auth/me"))
	assert.Equal(t, http.StatusBadRequest, post("/auth/register", `{"name":"L"}`))
	assert.Equal(t, http.StatusCreated, post("/auth/register", `{"name":"Luz","email":"luz@example.com","password":"123456"}`))
	assert.Equal(t, http.StatusNoContent, post("/auth/logout", ``))
	assert.Equal(t, http.StatusUnauthorized, get("/auth/me"))
}
