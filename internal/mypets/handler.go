package mypets

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", viewHandler(pg))
		pr.Post("/", createPetHandler(pg))

		pr.Put("/{petID}", updatePetHandler(pg))
		pr.Delete("/{petID}", deletePetHandler(pg))
		pr.Post("/{petID}/select", selectHandler(pg))
		pr.Get("/{petID}/map", mapLinkHandler(pg))

		// Galería, tratamientos y GPS cuelgan de la mascota al crear;
		// al borrar se identifican por su propio id.
		pr.Post("/{petID}/images", addImageHandler(pg))
		pr.Delete("/images/{id}", deleteHandler(pg.DeleteImage))
		pr.Post("/{petID}/treatments", addTreatmentHandler(pg))
		pr.Delete("/treatments/{id}", deleteHandler(pg.DeleteTreatment))
		pr.Post("/{petID}/gps", addGPSHandler(pg))
		pr.Delete("/gps/{id}", deleteHandler(pg.DeleteGPS))
	})
}

type petRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Gender      string `json:"gender"`
	Weight      string `json:"weight"` // decimal como string, opcional
	Vaccinated  bool   `json:"vaccinated"`
	Sterilized  bool   `json:"sterilized"`
	Insured     bool   `json:"insured"`
	Description string `json:"description"`
}

func (req petRequest) toInput() (PetInput, bool) {
	in := PetInput{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Gender:      req.Gender,
		Vaccinated:  req.Vaccinated,
		Sterilized:  req.Sterilized,
		Insured:     req.Insured,
		Description: req.Description,
	}
	if w := strings.TrimSpace(req.Weight); w != "" {
		d, err := decimal.NewFromString(w)
		if err != nil {
			return PetInput{}, false
		}
		in.Weight = d
	}
	return in, true
}

type treatmentRequest struct {
	Type        string `json:"type"`
	Date        string `json:"date"` // YYYY-MM-DD; vacío = hoy
	Vet         string `json:"vet"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
}

type gpsRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type imageRequest struct {
	URL string `json:"url"`
}

// @Summary Ver mis mascotas
// @Description Recarga mascotas, galería, tratamientos y GPS y devuelve una tarjeta por mascota del usuario de la sesión.
// @Tags pets
// @Produce json
// @Success 200 {object} View
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func viewHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Load(r.Context()); err != nil && !partial(err) {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pg.View())
	}
}

// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota; name es obligatorio"
// @Success 201 {object} model.Pet
// @Failure 400 {string} string "invalid json / name is required"
// @Failure 502 {string} string "mensaje del backend"
// @Router /pets [post]
func createPetHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, ok := req.toInput()
		if !ok {
			http.Error(w, "weight must be a number", http.StatusBadRequest)
			return
		}

		pet, err := pg.CreatePet(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pet)
	}
}

func updatePetHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, ok := req.toInput()
		if !ok {
			http.Error(w, "weight must be a number", http.StatusBadRequest)
			return
		}

		pet, err := pg.UpdatePet(r.Context(), petID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pet)
	}
}

func deletePetHandler(pg *Page) http.HandlerFunc {
	return deleteHandlerFor(pg.DeletePet, "petID")
}

func selectHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		if err := pg.Select(petID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pg.View())
	}
}

func mapLinkHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		link := pg.MapLink(petID)
		if link == "" {
			http.Error(w, "no gps points", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": link})
	}
}

func addImageHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		img, err := pg.AddImage(r.Context(), petID, req.URL)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, img)
	}
}

// @Summary Registrar tratamiento
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body treatmentRequest true "type obligatorio; date YYYY-MM-DD (por defecto hoy)"
// @Success 201 {object} model.Treatment
// @Failure 400 {string} string "invalid json / treatment type is required"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID}/treatments [post]
func addTreatmentHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req treatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := TreatmentInput{PetID: petID, Type: req.Type, Vet: req.Vet, Description: req.Description}
		if s := strings.TrimSpace(req.Date); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = d
		}
		if s := strings.TrimSpace(req.Cost); s != "" {
			c, err := decimal.NewFromString(s)
			if err != nil {
				http.Error(w, "cost must be a number", http.StatusBadRequest)
				return
			}
			in.Cost = c
		}

		t, err := pg.AddTreatment(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func addGPSHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req gpsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		pt, err := pg.AddGPS(r.Context(), GPSInput{PetID: petID, Latitude: req.Latitude, Longitude: req.Longitude})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pt)
	}
}

func deleteHandler(fn func(ctx context.Context, id int64) error) http.HandlerFunc {
	return deleteHandlerFor(fn, "id")
}

func deleteHandlerFor(fn func(ctx context.Context, id int64) error, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, param)
		if !ok {
			return
		}
		if err := fn(r.Context(), id); err != nil {
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

// partial: la carga falló solo en parte; la vista se devuelve igual.
func partial(err error) bool {
	status, _ := page.HTTPStatus(err)
	return status != http.StatusUnauthorized
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
