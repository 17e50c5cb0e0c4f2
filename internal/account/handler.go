package account

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/page"
)

// RegisterRoutes monta /auth. Estas rutas no exigen sesión; /auth/me
// responde 401 si no hay.
func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(pg))
		ar.Post("/register", registerHandler(pg))
		ar.Post("/logout", logoutHandler(pg))
		ar.Get("/me", whoAmIHandler(pg))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"curp"`
	Phone      string `json:"phone"`
}

// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} model.User
// @Failure 400 {string} string "email and password are required"
// @Failure 401 {string} string "invalid credentials"
// @Router /auth/login [post]
func loginHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := pg.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// @Summary Crear cuenta
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta"
// @Success 201 {object} model.User
// @Failure 400 {string} string "password must have at least 6 characters"
// @Router /auth/register [post]
func registerHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := pg.Register(r.Context(), RegisterInput{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			NationalID: req.NationalID,
			Phone:      req.Phone,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func logoutHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Logout(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func whoAmIHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, err := pg.WhoAmI()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, me)
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
