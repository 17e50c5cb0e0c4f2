package views

import (
	"strconv"

	"petcare-companion/internal/model"
)

// MaxRecentGPS es cuántos puntos muestra la ficha de una mascota.
const MaxRecentGPS = 25

type PetCard struct {
	Pet        model.Pet         `json:"pet"`
	Photo      string            `json:"photo"`
	Images     []model.PetImage  `json:"images"`
	Treatments []model.Treatment `json:"treatments"`
	RecentGPS  []model.GPSPoint  `json:"recentGps"`
	Listed     bool              `json:"listed"`
}

func MyPets(pets []model.Pet, userID int64) []model.Pet {
	return OwnedBy(pets, userID, func(p model.Pet) int64 { return p.OwnerUserID })
}

// PetCards arma una tarjeta por cada mascota del usuario. La foto es la de
// la mascota, si no la primera imagen, si no placeholder.
func PetCards(
	pets []model.Pet,
	images []model.PetImage,
	treatments []model.Treatment,
	gps []model.GPSPoint,
	listings []model.AdoptionListing,
	userID int64,
	placeholder string,
) []PetCard {
	mine := MyPets(pets, userID)
	listed := ListingByPet(OwnedBy(listings, userID, func(l model.AdoptionListing) int64 { return l.PublisherUserID }))

	out := make([]PetCard, 0, len(mine))
	for _, p := range mine {
		imgs := PetImages(images, p.ID)
		photo := p.Photo
		if photo == "" && len(imgs) > 0 {
			photo = imgs[0].URL
		}
		if photo == "" {
			photo = placeholder
		}
		_, isListed := listed[p.ID]
		out = append(out, PetCard{
			Pet:        p,
			Photo:      photo,
			Images:     imgs,
			Treatments: PetTreatments(treatments, p.ID),
			RecentGPS:  RecentGPS(gps, p.ID),
			Listed:     isListed,
		})
	}
	return out
}

func PetImages(images []model.PetImage, petID int64) []model.PetImage {
	out := make([]model.PetImage, 0)
	if petID <= 0 {
		return out
	}
	for _, im := range images {
		if im.PetID == petID {
			out = append(out, im)
		}
	}
	return out
}

func PetTreatments(treatments []model.Treatment, petID int64) []model.Treatment {
	out := make([]model.Treatment, 0)
	if petID <= 0 {
		return out
	}
	for _, t := range treatments {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	return out
}

// RecentGPS devuelve los últimos MaxRecentGPS puntos de la mascota, el más
// nuevo primero. "Último" es por orden de llegada de la colección.
func RecentGPS(points []model.GPSPoint, petID int64) []model.GPSPoint {
	out := make([]model.GPSPoint, 0)
	if petID <= 0 {
		return out
	}
	for _, g := range points {
		if g.PetID == petID {
			out = append(out, g)
		}
	}
	if len(out) > MaxRecentGPS {
		out = out[len(out)-MaxRecentGPS:]
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SelectPet devuelve preferred si es del usuario; si no, la primera mascota
// del usuario; 0 si no tiene.
func SelectPet(mine []model.Pet, preferred int64) int64 {
	for _, p := range mine {
		if preferred > 0 && p.ID == preferred {
			return p.ID
		}
	}
	for _, p := range mine {
		if p.ID > 0 {
			return p.ID
		}
	}
	return 0
}

func MapLink(p model.GPSPoint) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}
