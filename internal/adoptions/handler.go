package adoptions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/", viewHandler(pg))

		// Publicaciones (dueño)
		ar.Post("/listings", publishHandler(pg))
		ar.Post("/listings/{listingID}/toggle", toggleHandler(pg))
		ar.Delete("/listings/{listingID}", deleteListingHandler(pg))

		// Solicitudes enviadas
		ar.Post("/listings/{listingID}/requests", requestHandler(pg))
		ar.Delete("/requests/{requestID}", cancelRequestHandler(pg))

		// Solicitudes recibidas (dueño de la publicación)
		ar.Post("/requests/{requestID}/accept", decideHandler(pg.Accept))
		ar.Post("/requests/{requestID}/reject", decideHandler(pg.Reject))
	})
}

type publishRequest struct {
	PetID int64 `json:"petId"`
}

type adoptionRequestBody struct {
	Message string `json:"message"`
}

// @Summary Pantalla de adopciones
// @Description Explorar, mis publicaciones, mis solicitudes, solicitudes recibidas e inventario de mascotas propias.
// @Tags adoptions
// @Produce json
// @Success 200 {object} View
// @Failure 401 {string} string "unauthorized"
// @Router /adoptions [get]
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

// @Summary Publicar mascota en adopción
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body publishRequest true "Mascota propia a publicar"
// @Success 201 {object} model.AdoptionListing
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "pet is already listed for adoption"
// @Router /adoptions/listings [post]
func publishHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req publishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		l, err := pg.Publish(r.Context(), req.PetID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
	}
}

func toggleHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "listingID")
		if !ok {
			return
		}
		l, err := pg.ToggleAvailability(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, l)
	}
}

func deleteListingHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "listingID")
		if !ok {
			return
		}
		if err := pg.DeleteListing(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary Solicitar adopción
// @Tags adoptions
// @Accept json
// @Produce json
// @Param listingID path int true "ID de la publicación"
// @Param payload body adoptionRequestBody false "Mensaje opcional"
// @Success 201 {object} model.AdoptionRequest
// @Failure 400 {string} string "you cannot request your own listing"
// @Failure 409 {string} string "you already requested this pet"
// @Router /adoptions/listings/{listingID}/requests [post]
func requestHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "listingID")
		if !ok {
			return
		}
		var req adoptionRequestBody
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}
		ar, err := pg.Request(r.Context(), id, req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ar)
	}
}

func cancelRequestHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "requestID")
		if !ok {
			return
		}
		if err := pg.CancelRequest(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decideHandler(fn func(context.Context, int64) (model.AdoptionRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "requestID")
		if !ok {
			return
		}
		ar, err := fn(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ar)
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
