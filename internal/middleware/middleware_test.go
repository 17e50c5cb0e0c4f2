package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"petcare-companion/internal/adapters/storage/memory"
	"petcare-companion/internal/middleware"
	"petcare-companion/internal/model"
	"petcare-companion/internal/platform/logger"
	"petcare-companion/internal/session"
)

type directory []model.User

func (d directory) ListUsers(context.Context) ([]model.User, error) { return d, nil }

func loggedIn(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(memory.NewLocalStore(), directory{{ID: 7, Name: "Ana", Email: "ana@example.com", Password: "secreta"}}, session.Options{})
	_, err := s.Login(context.Background(), "ana@example.com", "secreta")
	require.NoError(t, err)
	return s
}

func token(t *testing.T, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func protected(store *session.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SessionContext(store))
	r.With(middleware.RequireSession).Get("/me", func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.GetUser(r.Context())
		_, _ = w.Write([]byte(u.Name))
	})
	return r
}

func TestRequireSession(t *testing.T) {
	anon := session.NewStore(memory.NewLocalStore(), directory{}, session.Options{})

	rec := httptest.NewRecorder()
	protected(anon).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active session")

	rec = httptest.NewRecorder()
	protected(loggedIn(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", rec.Body.String())
}

func TestSessionContext_BearerMustMatchSession(t *testing.T) {
	h := protected(loggedIn(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "8"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "7"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: zapcore.AddSync(&buf)})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var panicEntry, reqEntry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &panicEntry))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &reqEntry))
	assert.Equal(t, "kaboom", panicEntry["panic"])
	assert.Equal(t, "http request", reqEntry["msg"])
	assert.EqualValues(t, 500, reqEntry["status"])
	assert.NotEmpty(t, reqEntry["request_id"])
	assert.Equal(t, panicEntry["request_id"], reqEntry["request_id"])
}
