package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", viewHandler(pg))
		pr.Put("/", saveHandler(pg))
		pr.Put("/photo", photoHandler(pg))
	})
}

type profileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
}

type photoRequest struct {
	URL string `json:"url"`
}

// @Summary Perfil del usuario
// @Tags profile
// @Produce json
// @Success 200 {object} View
// @Failure 401 {string} string "unauthorized"
// @Router /profile [get]
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

// @Summary Guardar datos personales
// @Description Conserva el password actual del usuario.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body profileRequest true "Datos del perfil"
// @Success 200 {object} model.User
// @Failure 400 {string} string "name is required"
// @Failure 409 {string} string "password could not be preserved, reload the profile"
// @Router /profile [put]
func saveHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := pg.Save(r.Context(), ProfileInput{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			NationalID: req.NationalID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func photoHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req photoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := pg.SavePhoto(r.Context(), req.URL)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
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
