package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/feed", func(fr chi.Router) {
		fr.Get("/", viewHandler(pg))
		fr.Post("/posts", createPostHandler(pg))
		fr.Delete("/posts/{postID}", deletePostHandler(pg))
		fr.Post("/posts/{postID}/like", toggleLikeHandler(pg))
		fr.Post("/posts/{postID}/comments", commentHandler(pg))
		fr.Delete("/comments/{commentID}", deleteCommentHandler(pg))
	})
}

type createPostRequest struct {
	Content     string `json:"content"`
	Image       string `json:"image"`
	ExtraImages string `json:"extraImages"` // una URL por línea
}

type commentRequest struct {
	Content string `json:"content"`
}

// @Summary Feed global
// @Tags feed
// @Produce json
// @Success 200 {object} View
// @Failure 401 {string} string "unauthorized"
// @Router /feed [get]
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

func createPostHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		post, err := pg.CreatePost(r.Context(), PostInput{
			Content:     req.Content,
			Image:       req.Image,
			ExtraImages: req.ExtraImages,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
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

func toggleLikeHandler(pg *Page) http.HandlerFunc {
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

func deleteCommentHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "commentID")
		if !ok {
			return
		}
		if err := pg.DeleteComment(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
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
