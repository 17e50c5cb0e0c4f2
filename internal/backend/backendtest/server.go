// Package backendtest es un backend PetCare en memoria con las mismas rutas
// que el real. Lo usan los tests y el comando mock-backend.
package backendtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"petcare-companion/internal/backend"
	"petcare-companion/internal/normalize"
	"petcare-companion/internal/platform/httpclient"
	"petcare-companion/internal/platform/logger"
)

// Nombres de recurso para Seed/Records.
const (
	Users         = "users"
	Posts         = "posts"
	PostImages    = "postimages"
	Likes         = "likes"
	Comments      = "comments"
	Pets          = "pets"
	PetImages     = "petimages"
	Treatments    = "treatments"
	GPS           = "gps"
	Listings      = "listings"
	Requests      = "requests"
	Expenses      = "expenses"
	Budgets       = "budgets"
	Neighborhoods = "neighborhoods"
	Memberships   = "memberships"
	HoodPosts     = "hoodposts"
	HoodImages    = "hoodimages"
	HoodLikes     = "hoodlikes"
	HoodComments  = "hoodcomments"
)

type resource struct {
	name   string
	list   string
	create string
	update string // vacío => sin ruta
	del    string
}

var resources = []resource{
	{Users, "allusers", "create-user", "update-user", ""},
	{Posts, "allposts", "create-post", "update-post", "delete-post"},
	{PostImages, "allpost-images", "create-postimage", "", "delete-postimage"},
	{Likes, "alllikes", "create-like", "", "delete-likes"},
	{Comments, "allcomments", "create-comment", "", "delete-comment"},
	{Pets, "allmascotas", "create-mascota", "update-mascota", "delete-mascota"},
	{PetImages, "allimagenesmascotas", "create-imagen-mascota", "", "delete-imagen-mascota"},
	{Treatments, "alltratamientos", "create-tratamiento", "", "delete-tratamiento"},
	{GPS, "allrastreogps", "create-rastreo-gps", "", "delete-rastreo-gps"},
	{Listings, "alladopciones", "create-adopcion", "update-adopcion", "delete-adopcion"},
	{Requests, "allsolicitudes-adopcion", "create-solicitud-adopcion", "update-solicitud-adopcion", "delete-solicitud-adopcion"},
	{Expenses, "allgastos", "create-gasto", "update-gasto", "delete-gasto"},
	{Budgets, "allpresupuestos", "create-presupuesto", "update-presupuesto", "delete-presupuesto"},
	{Neighborhoods, "allcolonias", "create-colonia", "", ""},
	{Memberships, "allusuarios-colonias", "create-usuarios-colonias", "", "delete-usuarios-colonias"},
	{HoodPosts, "allposts-colonia", "create-post-colonia", "", "delete-post-colonia"},
	{HoodImages, "allpost-colonia-images", "create-post-colonia-images", "", ""},
	{HoodLikes, "alllikes-colonia", "create-likes-colonia", "", "delete-likes-colonia"},
	{HoodComments, "allcomments-colonia", "create-comment-colonia", "", "delete-comment-colonia"},
}

type failure struct {
	status int
	body   string
}

// Server guarda registros crudos (map) por recurso, con ids incrementales.
type Server struct {
	mu       sync.RWMutex
	data     map[string][]map[string]any
	nextID   int64
	failures map[string]failure

	// Envelope != "" envuelve los listados: {Envelope: [...]}.
	Envelope string

	Now func() time.Time
}

func New() *Server {
	return &Server{
		data:     make(map[string][]map[string]any),
		failures: make(map[string]failure),
		Now:      time.Now,
	}
}

// Start levanta el fake en un httptest.Server que se cierra al terminar el test.
func Start(tb testing.TB) (*Server, *httptest.Server) {
	tb.Helper()
	s := New()
	ts := httptest.NewServer(s.Handler())
	tb.Cleanup(ts.Close)
	return s, ts
}

// NewClient arma un backend.Client apuntando al fake.
func NewClient(tb testing.TB, ts *httptest.Server) *backend.Client {
	tb.Helper()
	hc, err := httpclient.NewWithBaseURL(backend.APIBaseURL(ts.URL), 5*time.Second)
	if err != nil {
		tb.Fatalf("httpclient: %v", err)
	}
	norm := normalize.New(normalize.ImageResolver{MediaURL: ts.URL + "/uploads/"})
	return backend.New(hc, norm, logger.Nop())
}

// Fail hace que toda ruta cuyo primer segmento sea path responda status.
func (s *Server) Fail(path string, status int, body string) {
	s.Stub(path, status, body)
}

// Stub fija la respuesta de path sin tocar los datos; sirve también para
// respuestas 2xx recortadas.
func (s *Server) Stub(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

func (s *Server) Heal(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Seed agrega registros; los que no traen id reciben uno.
func (s *Server) Seed(res string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		cp := clone(rec)
		if id := recordID(cp); id > 0 {
			if id > s.nextID {
				s.nextID = id
			}
		} else {
			s.nextID++
			cp["id"] = s.nextID
		}
		s.data[res] = append(s.data[res], cp)
	}
}

// Records devuelve copia de los registros de un recurso, ordenados por id.
func (s *Server) Records(res string) []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]any, 0, len(s.data[res]))
	for _, r := range s.data[res] {
		out = append(out, clone(r))
	}
	sort.Slice(out, func(i, j int) bool { return recordID(out[i]) < recordID(out[j]) })
	return out
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route(backend.BasePath, func(r chi.Router) {
		r.Use(s.failureMiddleware)

		for _, res := range resources {
			res := res
			r.Get("/"+res.list, s.listHandler(res))
			r.Post("/"+res.create, s.createHandler(res))
			if res.update != "" {
				r.Put("/"+res.update+"/{id}", s.updateHandler(res))
			}
			if res.del != "" {
				r.Delete("/"+res.del+"/{id}", s.deleteHandler(res))
			}
		}
		r.Get("/user/{id}", s.getHandler(Users))
		r.Put("/create-user/photo-profile/{id}", s.photoHandler())
	})
	return r
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, backend.BasePath+"/")
		seg, _, _ := strings.Cut(rest, "/")

		s.mu.RLock()
		f, ok := s.failures[seg]
		s.mu.RUnlock()
		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := s.Records(res.name)
		if s.Envelope != "" {
			writeJSON(w, http.StatusOK, map[string]any{s.Envelope: items})
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) getHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, rec := range s.data[name] {
			if recordID(rec) == id {
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) createHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.nextID++
		body["id"] = s.nextID
		if _, ok := body["createdAt"]; !ok {
			body["createdAt"] = s.Now().UTC().Format(time.RFC3339)
		}
		s.data[res.name] = append(s.data[res.name], body)
		writeJSON(w, http.StatusCreated, body)
	}
}

func (s *Server) updateHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		for i, rec := range s.data[res.name] {
			if recordID(rec) != id {
				continue
			}
			for k, v := range body {
				rec[k] = v
			}
			rec["id"] = id
			s.data[res.name][i] = rec
			writeJSON(w, http.StatusOK, rec)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) photoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		for _, rec := range s.data[Users] {
			if recordID(rec) == id {
				rec["fotoPerfil"] = body["fotoPerfil"]
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Usuario no encontrado"})
	}
}

func (s *Server) deleteHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		items := s.data[res.name]
		for i, rec := range items {
			if recordID(rec) == id {
				s.data[res.name] = append(items[:i:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return nil, false
	}
	return body, true
}

func recordID(rec map[string]any) int64 {
	id, _ := normalize.ToInt(rec["id"])
	return id
}

func clone(rec map[string]any) map[string]any {
	// copia profunda vía JSON para no compartir mapas anidados
	b, err := json.Marshal(rec)
	if err != nil {
		return map[string]any{}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	out := map[string]any{}
	_ = dec.Decode(&out)
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
