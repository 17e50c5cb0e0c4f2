package views

import (
	"strings"
	"time"

	"petcare-companion/internal/model"
)

type AdoptionCard struct {
	Listing         model.AdoptionListing  `json:"listing"`
	PetName         string                 `json:"petName"`
	Characteristics string                 `json:"characteristics"`
	Photo           string                 `json:"photo"`
	OwnerName       string                 `json:"ownerName"`
	Mine            bool                   `json:"mine"`
	MyRequest       *model.AdoptionRequest `json:"myRequest,omitempty"`
}

// IncomingRequest es una solicitud recibida sobre una publicación propia.
type IncomingRequest struct {
	Request       model.AdoptionRequest `json:"request"`
	PetName       string                `json:"petName"`
	RequesterName string                `json:"requesterName"`
}

type AdoptionsView struct {
	Explore   []AdoptionCard          `json:"explore"`
	Mine      []AdoptionCard          `json:"mine"`
	Requests  []model.AdoptionRequest `json:"requests"`
	Incoming  []IncomingRequest       `json:"incoming"`
	Inventory []InventoryPet          `json:"inventory"`
}

// InventoryPet es una mascota propia con su publicación, si existe.
type InventoryPet struct {
	Pet     model.Pet              `json:"pet"`
	Listing *model.AdoptionListing `json:"listing,omitempty"`
}

// LatestRequestByListing indexa las solicitudes de userID por publicación.
// Con varias para la misma publicación gana la de mayor id.
func LatestRequestByListing(requests []model.AdoptionRequest, userID int64) map[int64]model.AdoptionRequest {
	out := make(map[int64]model.AdoptionRequest)
	for _, r := range MyRequests(requests, userID) {
		prev, ok := out[r.ListingID]
		if !ok || r.ID > prev.ID {
			out[r.ListingID] = r
		}
	}
	return out
}

func MyRequests(requests []model.AdoptionRequest, userID int64) []model.AdoptionRequest {
	return OwnedBy(requests, userID, func(r model.AdoptionRequest) int64 { return r.RequesterUserID })
}

func MyListings(listings []model.AdoptionListing, userID int64) []model.AdoptionListing {
	return OwnedBy(listings, userID, func(l model.AdoptionListing) int64 { return l.PublisherUserID })
}

// ListingByPet indexa publicaciones por mascota. Si hay dos para la misma
// mascota gana la de mayor id.
func ListingByPet(listings []model.AdoptionListing) map[int64]model.AdoptionListing {
	out := make(map[int64]model.AdoptionListing)
	for _, l := range listings {
		if l.PetID <= 0 {
			continue
		}
		if prev, ok := out[l.PetID]; !ok || l.ID > prev.ID {
			out[l.PetID] = l
		}
	}
	return out
}

// IncomingRequests devuelve las solicitudes dirigidas a publicaciones de
// userID, la más nueva (id) primero.
func IncomingRequests(
	requests []model.AdoptionRequest,
	listings []model.AdoptionListing,
	pets []model.Pet,
	users []model.User,
	userID int64,
) []IncomingRequest {
	out := make([]IncomingRequest, 0)
	if userID <= 0 {
		return out
	}
	mine := make(map[int64]model.AdoptionListing)
	for _, l := range MyListings(listings, userID) {
		mine[l.ID] = l
	}
	petIdx := indexPets(pets)
	userIdx := IndexUsers(users)

	for _, r := range SortByIDDesc(requests, func(r model.AdoptionRequest) int64 { return r.ID }) {
		l, ok := mine[r.ListingID]
		if !ok || r.RequesterUserID == userID {
			continue
		}
		out = append(out, IncomingRequest{
			Request:       r,
			PetName:       PetName(petIdx[l.PetID], l.PetID),
			RequesterName: userIdx.DisplayName(r.RequesterUserID),
		})
	}
	return out
}

// Characteristics une especie, raza y género con " · ".
func Characteristics(p model.Pet) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{p.Species, p.Breed, p.Gender} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}

// AdoptionCards arma las tarjetas de explorar, ordenadas por fecha de
// publicación descendente.
func AdoptionCards(
	listings []model.AdoptionListing,
	pets []model.Pet,
	users []model.User,
	requests []model.AdoptionRequest,
	userID int64,
	placeholder string,
) []AdoptionCard {
	if userID <= 0 {
		return make([]AdoptionCard, 0)
	}
	petIdx := indexPets(pets)
	userIdx := IndexUsers(users)
	latest := LatestRequestByListing(requests, userID)

	sorted := SortByTimeDesc(listings,
		func(l model.AdoptionListing) time.Time { return l.PublishedAt },
		func(l model.AdoptionListing) int64 { return l.ID })

	out := make([]AdoptionCard, 0, len(sorted))
	for _, l := range sorted {
		p := petIdx[l.PetID]
		photo := p.Photo
		if photo == "" {
			photo = placeholder
		}
		card := AdoptionCard{
			Listing:         l,
			PetName:         PetName(p, l.PetID),
			Characteristics: Characteristics(p),
			Photo:           photo,
			OwnerName:       userIdx.DisplayName(l.PublisherUserID),
			Mine:            userID > 0 && l.PublisherUserID == userID,
		}
		if r, ok := latest[l.ID]; ok {
			r := r
			card.MyRequest = &r
		}
		out = append(out, card)
	}
	return out
}

// BuildAdoptions arma las cuatro vistas de la pantalla de adopciones más
// el inventario de mascotas propias.
func BuildAdoptions(
	listings []model.AdoptionListing,
	pets []model.Pet,
	users []model.User,
	requests []model.AdoptionRequest,
	userID int64,
	placeholder string,
) AdoptionsView {
	v := AdoptionsView{
		Explore:   make([]AdoptionCard, 0),
		Mine:      make([]AdoptionCard, 0),
		Requests:  MyRequests(requests, userID),
		Incoming:  IncomingRequests(requests, listings, pets, users, userID),
		Inventory: make([]InventoryPet, 0),
	}
	if userID <= 0 {
		return v
	}
	for _, c := range AdoptionCards(listings, pets, users, requests, userID, placeholder) {
		v.Explore = append(v.Explore, c)
		if c.Mine {
			v.Mine = append(v.Mine, c)
		}
	}

	byPet := ListingByPet(MyListings(listings, userID))
	for _, p := range MyPets(pets, userID) {
		item := InventoryPet{Pet: p}
		if l, ok := byPet[p.ID]; ok {
			l := l
			item.Listing = &l
		}
		v.Inventory = append(v.Inventory, item)
	}
	return v
}

func indexPets(pets []model.Pet) map[int64]model.Pet {
	out := make(map[int64]model.Pet, len(pets))
	for _, p := range pets {
		if p.ID > 0 {
			out[p.ID] = p
		}
	}
	return out
}
