package neighborhood

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/neighborhoods", func(nr chi.Router) {
		nr.Get("/", viewHandler(pg))
		nr.Post("/", createHandler(pg))
		nr.Post("/join", joinHandler(pg))
		nr.Post("/{hoodID}/activate", activateHandler(pg))

		nr.Post("/posts", postHandler(pg))
		nr.Delete("/posts/{postID}", deletePostHandler(pg))
		nr.Post("/posts/{postID}/like", likeHandler(pg))
		nr.Post("/posts/{postID}/comments", commentHandler(pg))
	})
}

type createRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type joinRequest struct {
	Code string `json:"code"`
}

type postRequest struct {
	Content string   `json:"content"`
	Alert   bool     `json:"alert"`
	Images  []string `json:"images"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// @Summary Red vecinal
// @Description Mis colonias, la colonia activa y su muro.
// @Tags neighborhoods
// @Produce json
// @Success 200 {object} View
// @Failure 401 {string} string "unauthorized"
// @Router /neighborhoods [get]
func viewHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Load(r.Context()); err != nil {
			if status, msg := page.HTTPStatus(err); status == http.StatusUnauthorized {
				http.Error(w, msg, status)
				return
			}
		}
		writeJSON(w, http.StatusOK, pg.View())
	}
}

// @Summary Crear colonia
// @Tags neighborhoods
// @Accept json
// @Produce json
// @Param payload body createRequest true "Nombre y código opcional"
// @Success 201 {object} model.Neighborhood
// @Failure 400 {string} string "name is required"
// @Router /neighborhoods [post]
func createHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		h, err := pg.Create(r.Context(), CreateInput{Name: req.Name, Code: req.Code})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, h)
	}
}

// @Summary Unirse con código de invitación
// @Tags neighborhoods
// @Accept json
// @Produce json
// @Param payload body joinRequest true "Código"
// @Success 200 {object} model.Neighborhood
// @Failure 404 {string} string "invitation code does not exist"
// @Router /neighborhoods/join [post]
func joinHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		h, err := pg.Join(r.Context(), req.Code)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	}
}

func activateHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "hoodID")
		if !ok {
			return
		}
		if err := pg.SetActive(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pg.View())
	}
}

func postHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		p, err := pg.Post(r.Context(), PostInput{Content: req.Content, Alert: req.Alert, Images: req.Images})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func deletePostHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "postID")
		if !ok {
			return
		}
		if err := pg.DeletePost(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func likeHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "postID")
		if !ok {
			return
		}
		liked, err := pg.ToggleLike(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
	}
}

func commentHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "postID")
		if !ok {
			return
		}
		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		c, err := pg.AddComment(r.Context(), id, req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, name+" must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := page.HTTPStatus(err)
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
