package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petcare-companion/internal/notify"
	"petcare-companion/internal/page/pagetest"
	"petcare-companion/internal/router"
)

func TestHTTP_EndToEnd_SessionAndScreens(t *testing.T) {
	env := pagetest.New(t, false)
	ts := httptest.NewServer(router.NewRouter(router.Options{Deps: env.Deps, Notifications: env.Queue}))
	defer ts.Close()

	// 1) health y docs no exigen sesión
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d %q", st, body)
		}
		st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "PetCare Companion gateway") {
			t.Fatalf("expected swagger doc, got %d", st)
		}
	}

	// 2) Sin sesión las pantallas responden 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 before login, got %d", st)
		}
	}

	// 3) Login
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{
			"email":    pagetest.Email,
			"password": pagetest.Password,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, body)
		}
		if strings.Contains(string(body), pagetest.Password) {
			t.Fatalf("login response leaks the password: %s", body)
		}
	}

	// 4) Registrar mascota y verla en la pantalla
	var petID int64
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Milo", "species": "Perro"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, body)
		}
		var created struct {
			ID int64 `json:"id"`
		}
		mustDecode(t, body, &created)
		petID = created.ID

		st, body = doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pets view, got %d", st)
		}
		var v struct {
			Selected int64 `json:"selected"`
			Pets     []any `json:"pets"`
		}
		mustDecode(t, body, &v)
		if len(v.Pets) != 1 || v.Selected != petID {
			t.Fatalf("unexpected pets view: %s", body)
		}
	}

	// 5) Publicar en adopción, la segunda vez choca
	{
		if st, _ := doReq(t, ts.URL, "GET", "/adoptions", nil); st != http.StatusOK {
			t.Fatalf("expected 200 adoptions view, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/adoptions/listings", map[string]any{"petId": petID})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 publish, got %d body=%s", st, body)
		}
		st, _ = doReq(t, ts.URL, "POST", "/adoptions/listings", map[string]any{"petId": petID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on second publish, got %d", st)
		}
	}

	// 6) Las acciones dejaron notificaciones
	{
		st, body := doReq(t, ts.URL, "GET", "/notifications", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 notifications, got %d", st)
		}
		var ns []notify.Notification
		mustDecode(t, body, &ns)
		if len(ns) == 0 || ns[0].Level != notify.LevelSuccess {
			t.Fatalf("expected a success notification first, got %s", body)
		}
		if st, _ := doReq(t, ts.URL, "DELETE", "/notifications/"+ns[0].ID, nil); st != http.StatusNoContent {
			t.Fatalf("expected 204 dismiss, got %d", st)
		}
	}

	// 7) Logout corta el acceso
	{
		if st, _ := doReq(t, ts.URL, "POST", "/auth/logout", nil); st != http.StatusNoContent {
			t.Fatalf("expected 204 logout, got %d", st)
		}
		if st, _ := doReq(t, ts.URL, "GET", "/feed", nil); st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func mustDecode(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}
