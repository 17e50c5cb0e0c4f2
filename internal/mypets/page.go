// Package mypets es la pantalla "Mis mascotas": ficha, galería,
// tratamientos y rastreo GPS de las mascotas del usuario.
package mypets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

type Page struct {
	deps page.Deps
	busy page.Busy

	mu         sync.RWMutex
	userID     int64
	selected   int64
	pets       []model.Pet
	images     []model.PetImage
	treatments []model.Treatment
	gps        []model.GPSPoint
	listings   []model.AdoptionListing
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults()}
}

type View struct {
	Loading  bool            `json:"loading"`
	Selected int64           `json:"selected"`
	Pets     []views.PetCard `json:"pets"`
}

// Load trae mascotas, imágenes, tratamientos, GPS y adopciones en paralelo.
func (p *Page) Load(ctx context.Context) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	defer p.busy.Start()()

	b := p.deps.Backend
	err = p.deps.FanOut(ctx,
		page.Task{Name: "pets", Message: "Could not load your pets.", Run: func(ctx context.Context) error {
			items, err := b.ListPets(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.pets = items
			p.selected = views.SelectPet(views.MyPets(items, uid), p.selected)
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "pet images", Message: "Could not load pet images.", Run: func(ctx context.Context) error {
			items, err := b.ListPetImages(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.images = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "treatments", Message: "Could not load treatments.", Run: func(ctx context.Context) error {
			items, err := b.ListTreatments(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.treatments = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "gps", Message: "Could not load GPS history.", Run: func(ctx context.Context) error {
			items, err := b.ListGPS(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.gps = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "listings", Run: func(ctx context.Context) error {
			items, err := b.ListListings(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.listings = items
			p.mu.Unlock()
			return nil
		}},
	)
	return err
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return View{
		Loading:  p.busy.Busy(),
		Selected: p.selected,
		Pets:     views.PetCards(p.pets, p.images, p.treatments, p.gps, p.listings, p.userID, p.deps.Placeholder),
	}
}

// Select cambia la mascota seleccionada. Debe ser del usuario.
func (p *Page) Select(petID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.minePetLocked(petID); !ok {
		return page.ErrNotFound
	}
	p.selected = petID
	return nil
}

type PetInput struct {
	Name        string
	Species     string
	Breed       string
	Gender      string
	Weight      decimal.Decimal
	Vaccinated  bool
	Sterilized  bool
	Insured     bool
	Description string
}

func (in PetInput) toPet(ownerID int64) model.Pet {
	return model.Pet{
		OwnerUserID: ownerID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      strings.TrimSpace(in.Gender),
		Weight:      in.Weight,
		Vaccinated:  in.Vaccinated,
		Sterilized:  in.Sterilized,
		Insured:     in.Insured,
		Description: strings.TrimSpace(in.Description),
	}
}

func (p *Page) CreatePet(ctx context.Context, in PetInput) (model.Pet, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Pet{}, err
	}
	pet := in.toPet(uid)
	if pet.Name == "" {
		return model.Pet{}, fmt.Errorf("%w: name is required", page.ErrInvalidInput)
	}
	if pet.Weight.IsNegative() {
		return model.Pet{}, fmt.Errorf("%w: weight must not be negative", page.ErrInvalidInput)
	}
	defer p.busy.Start()()

	created, err := p.deps.Backend.CreatePet(ctx, pet)
	if err != nil {
		return model.Pet{}, p.deps.Report("create pet", "Could not save the pet.", err)
	}

	p.mu.Lock()
	p.pets = append(p.pets, created)
	if p.selected == 0 {
		p.selected = created.ID
	}
	p.mu.Unlock()

	p.deps.Success("Pet saved.")
	return created, nil
}

// UpdatePet reemplaza los datos de una mascota propia.
func (p *Page) UpdatePet(ctx context.Context, petID int64, in PetInput) (model.Pet, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Pet{}, err
	}
	current, err := p.ownPet(petID)
	if err != nil {
		return model.Pet{}, err
	}
	pet := in.toPet(uid)
	if pet.Name == "" {
		return model.Pet{}, fmt.Errorf("%w: name is required", page.ErrInvalidInput)
	}
	pet.ID = petID
	pet.Photo = current.Photo
	defer p.busy.Start()()

	updated, err := p.deps.Backend.UpdatePet(ctx, petID, pet)
	if err != nil {
		return model.Pet{}, p.deps.Report("update pet", "Could not update the pet.", err)
	}
	if updated.ID == 0 {
		updated = pet
	}

	p.mu.Lock()
	for i := range p.pets {
		if p.pets[i].ID == petID {
			p.pets[i] = updated
		}
	}
	p.mu.Unlock()

	p.deps.Success("Pet updated.")
	return updated, nil
}

func (p *Page) DeletePet(ctx context.Context, petID int64) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	if _, err := p.ownPet(petID); err != nil {
		return err
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeletePet(ctx, petID); err != nil {
		return p.deps.Report("delete pet", "Could not delete the pet.", err)
	}

	p.mu.Lock()
	p.pets = page.RemoveByID(p.pets, petID, func(x model.Pet) int64 { return x.ID })
	if p.selected == petID {
		p.selected = views.SelectPet(views.MyPets(p.pets, p.userID), 0)
	}
	p.mu.Unlock()

	p.deps.Success("Pet deleted.")
	return nil
}

func (p *Page) AddImage(ctx context.Context, petID int64, url string) (model.PetImage, error) {
	if _, err := p.guard(ctx); err != nil {
		return model.PetImage{}, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return model.PetImage{}, fmt.Errorf("%w: image url is required", page.ErrInvalidInput)
	}
	if _, err := p.ownPet(petID); err != nil {
		return model.PetImage{}, err
	}
	defer p.busy.Start()()

	img, err := p.deps.Backend.CreatePetImage(ctx, petID, url)
	if err != nil {
		return model.PetImage{}, p.deps.Report("add pet image", "Could not add the image.", err)
	}
	if img.PetID == 0 {
		img.PetID = petID
	}

	p.mu.Lock()
	p.images = append(p.images, img)
	p.mu.Unlock()

	p.deps.Success("Image added.")
	return img, nil
}

func (p *Page) DeleteImage(ctx context.Context, imageID int64) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	p.mu.RLock()
	var petID int64
	for _, im := range p.images {
		if im.ID == imageID {
			petID = im.PetID
		}
	}
	p.mu.RUnlock()
	if _, err := p.ownPet(petID); err != nil {
		return err
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeletePetImage(ctx, imageID); err != nil {
		return p.deps.Report("delete pet image", "Could not delete the image.", err)
	}

	p.mu.Lock()
	p.images = page.RemoveByID(p.images, imageID, func(x model.PetImage) int64 { return x.ID })
	p.mu.Unlock()
	return nil
}

type TreatmentInput struct {
	PetID       int64
	Type        string
	Date        time.Time // cero => hoy
	Vet         string
	Cost        decimal.Decimal
	Description string
}

func (p *Page) AddTreatment(ctx context.Context, in TreatmentInput) (model.Treatment, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Treatment{}, err
	}
	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		return model.Treatment{}, fmt.Errorf("%w: treatment type is required", page.ErrInvalidInput)
	}
	if in.Cost.IsNegative() {
		return model.Treatment{}, fmt.Errorf("%w: cost must not be negative", page.ErrInvalidInput)
	}
	if _, err := p.ownPet(in.PetID); err != nil {
		return model.Treatment{}, err
	}
	date := in.Date
	if date.IsZero() {
		date = p.deps.Now()
	}
	defer p.busy.Start()()

	t := model.Treatment{
		OwnerUserID: uid,
		PetID:       in.PetID,
		Type:        kind,
		Date:        date,
		Vet:         strings.TrimSpace(in.Vet),
		Cost:        in.Cost,
		Description: strings.TrimSpace(in.Description),
	}
	created, err := p.deps.Backend.CreateTreatment(ctx, t)
	if err != nil {
		return model.Treatment{}, p.deps.Report("add treatment", "Could not save the treatment.", err)
	}

	p.mu.Lock()
	p.treatments = append(p.treatments, created)
	p.mu.Unlock()

	p.deps.Success("Treatment saved.")
	return created, nil
}

func (p *Page) DeleteTreatment(ctx context.Context, id int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	p.mu.RLock()
	var found *model.Treatment
	for i := range p.treatments {
		if p.treatments[i].ID == id {
			t := p.treatments[i]
			found = &t
		}
	}
	p.mu.RUnlock()
	if found == nil {
		return page.ErrNotFound
	}
	if found.OwnerUserID != uid {
		if _, err := p.ownPet(found.PetID); err != nil {
			return page.ErrForbidden
		}
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeleteTreatment(ctx, id); err != nil {
		return p.deps.Report("delete treatment", "Could not delete the treatment.", err)
	}

	p.mu.Lock()
	p.treatments = page.RemoveByID(p.treatments, id, func(x model.Treatment) int64 { return x.ID })
	p.mu.Unlock()
	return nil
}

// GPSInput usa punteros: latitud y longitud son obligatorias y 0 es válido.
type GPSInput struct {
	PetID     int64
	Latitude  *float64
	Longitude *float64
}

func (p *Page) AddGPS(ctx context.Context, in GPSInput) (model.GPSPoint, error) {
	if _, err := p.guard(ctx); err != nil {
		return model.GPSPoint{}, err
	}
	if in.Latitude == nil || in.Longitude == nil {
		return model.GPSPoint{}, fmt.Errorf("%w: latitude and longitude are required", page.ErrInvalidInput)
	}
	if *in.Latitude < -90 || *in.Latitude > 90 || *in.Longitude < -180 || *in.Longitude > 180 {
		return model.GPSPoint{}, fmt.Errorf("%w: coordinates out of range", page.ErrInvalidInput)
	}
	if _, err := p.ownPet(in.PetID); err != nil {
		return model.GPSPoint{}, err
	}
	defer p.busy.Start()()

	pt := model.GPSPoint{
		PetID:     in.PetID,
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Timestamp: p.deps.Now(),
	}
	created, err := p.deps.Backend.CreateGPS(ctx, pt)
	if err != nil {
		return model.GPSPoint{}, p.deps.Report("add gps", "Could not save the location.", err)
	}

	p.mu.Lock()
	p.gps = append(p.gps, created)
	p.mu.Unlock()

	p.deps.Success("Location saved.")
	return created, nil
}

func (p *Page) DeleteGPS(ctx context.Context, id int64) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	p.mu.RLock()
	var petID int64
	for _, g := range p.gps {
		if g.ID == id {
			petID = g.PetID
		}
	}
	p.mu.RUnlock()
	if _, err := p.ownPet(petID); err != nil {
		return err
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeleteGPS(ctx, id); err != nil {
		return p.deps.Report("delete gps", "Could not delete the location.", err)
	}

	p.mu.Lock()
	p.gps = page.RemoveByID(p.gps, id, func(x model.GPSPoint) int64 { return x.ID })
	p.mu.Unlock()
	return nil
}

// MapLink devuelve el link al último punto de la mascota, o "" si no tiene.
func (p *Page) MapLink(petID int64) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	recent := views.RecentGPS(p.gps, petID)
	if len(recent) == 0 {
		return ""
	}
	return views.MapLink(recent[0])
}

// guard valida la sesión y recuerda el usuario actual.
func (p *Page) guard(ctx context.Context) (int64, error) {
	uid, err := p.deps.Guard(ctx)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	p.userID = uid
	p.mu.Unlock()
	return uid, nil
}

func (p *Page) ownPet(petID int64) (model.Pet, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pet, ok := p.minePetLocked(petID)
	if !ok {
		return model.Pet{}, page.ErrNotFound
	}
	return pet, nil
}

func (p *Page) minePetLocked(petID int64) (model.Pet, bool) {
	if petID <= 0 {
		return model.Pet{}, false
	}
	for _, pet := range views.MyPets(p.pets, p.userID) {
		if pet.ID == petID {
			return pet, true
		}
	}
	return model.Pet{}, false
}
