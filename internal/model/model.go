// Package model contiene los registros canónicos que produce el normalizador.
// Todos los ids los asigna el backend; 0 significa "sin id".
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User es el usuario de la plataforma. Password es opaco: solo se compara.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"nationalId,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

// Pet pertenece a un único usuario.
type Pet struct {
	ID          int64           `json:"id"`
	OwnerUserID int64           `json:"ownerUserId"`
	Name        string          `json:"name"`
	Species     string          `json:"species"`
	Breed       string          `json:"breed"`
	Gender      string          `json:"gender"`
	Weight      decimal.Decimal `json:"weight"`
	Vaccinated  bool            `json:"vaccinated"`
	Sterilized  bool            `json:"sterilized"`
	Insured     bool            `json:"insured"`
	Description string          `json:"description,omitempty"`
	Photo       string          `json:"photo,omitempty"`
}

type PetImage struct {
	ID         int64     `json:"id"`
	PetID      int64     `json:"petId"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Treatment struct {
	ID          int64           `json:"id"`
	OwnerUserID int64           `json:"ownerUserId"`
	PetID       int64           `json:"petId"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	Vet         string          `json:"vet"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description,omitempty"`
}

type GPSPoint struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"petId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type AdoptionListing struct {
	ID              int64     `json:"id"`
	PetID           int64     `json:"petId"`
	PublisherUserID int64     `json:"publisherUserId"`
	Available       bool      `json:"available"`
	PublishedAt     time.Time `json:"publishedAt"`
}

// RequestStatus es el estado de una solicitud de adopción.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type AdoptionRequest struct {
	ID              int64         `json:"id"`
	ListingID       int64         `json:"listingId"`
	RequesterUserID int64         `json:"requesterUserId"`
	Status          RequestStatus `json:"status"`
	Message         string        `json:"message,omitempty"`
	RequestedAt     time.Time     `json:"requestedAt"`
}

type Expense struct {
	ID           int64           `json:"id"`
	OwnerUserID  int64           `json:"ownerUserId"`
	PetID        int64           `json:"petId,omitempty"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Vendor       string          `json:"vendor,omitempty"`
	ReminderDate time.Time       `json:"reminderDate,omitempty"`
}

// Budget guarda el mes tal como viene del backend (normalmente YYYY-MM).
type Budget struct {
	ID          int64           `json:"id"`
	OwnerUserID int64           `json:"ownerUserId"`
	Month       string          `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
}

type Neighborhood struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	InvitationCode string `json:"invitationCode"`
	OwnerUserID    int64  `json:"ownerUserId"`
}

type Membership struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	NeighborhoodID int64     `json:"neighborhoodId"`
	JoinedAt       time.Time `json:"joinedAt"`
}

type NeighborhoodPost struct {
	ID             int64     `json:"id"`
	AuthorUserID   int64     `json:"authorUserId"`
	NeighborhoodID int64     `json:"neighborhoodId"`
	Content        string    `json:"content"`
	IsAlert        bool      `json:"isAlert"`
	CreatedAt      time.Time `json:"createdAt"`
}

type NeighborhoodPostImage struct {
	ID           int64  `json:"id"`
	PostID       int64  `json:"postId"`
	AuthorUserID int64  `json:"authorUserId"`
	URL          string `json:"url"`
}

type NeighborhoodComment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"postId"`
	AuthorUserID int64     `json:"authorUserId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NeighborhoodLike struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
	UserID int64 `json:"userId"`
}

// Post es una publicación del feed global.
type Post struct {
	ID           int64     `json:"id"`
	AuthorUserID int64     `json:"authorUserId"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PostImage struct {
	ID           int64  `json:"id"`
	PostID       int64  `json:"postId"`
	AuthorUserID int64  `json:"authorUserId"`
	URL          string `json:"url"`
}

type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"postId"`
	AuthorUserID int64     `json:"authorUserId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Like es único por (post, usuario); solo lo garantiza la búsqueda previa del cliente.
type Like struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
	UserID int64 `json:"userId"`
}
