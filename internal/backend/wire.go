package backend

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"petcare-companion/internal/model"
	"petcare-companion/internal/normalize"
)

// Formatos de fecha que acepta el backend.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// num serializa un decimal como número JSON (no como string).
func num(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func optNum(d decimal.Decimal) *json.Number {
	if d.IsZero() {
		return nil
	}
	n := num(d)
	return &n
}

func optDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func optID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

type userBody struct {
	ID              int64  `json:"id,omitempty"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Curp            string `json:"curp,omitempty"`
	TelefonoCelular string `json:"telefonoCelular,omitempty"`
	FotoPerfil      string `json:"fotoPerfil,omitempty"`
}

func toUserBody(u model.User) userBody {
	return userBody{
		ID:              u.ID,
		Nombre:          u.Name,
		Email:           u.Email,
		Password:        u.Password,
		Curp:            u.NationalID,
		TelefonoCelular: u.Phone,
		FotoPerfil:      u.Photo,
	}
}

type petBody struct {
	ID           int64        `json:"id,omitempty"`
	UsuarioID    int64        `json:"usuarioId"`
	Nombre       string       `json:"nombre"`
	Especie      string       `json:"especie,omitempty"`
	Raza         string       `json:"raza,omitempty"`
	Genero       string       `json:"genero,omitempty"`
	Peso         *json.Number `json:"peso,omitempty"`
	Vacunado     bool         `json:"vacunado"`
	Esterilizado bool         `json:"esterilizado"`
	TieneSeguro  bool         `json:"tieneSeguro"`
	Descripcion  string       `json:"descripcion,omitempty"`
}

func toPetBody(p model.Pet) petBody {
	return petBody{
		ID:           p.ID,
		UsuarioID:    p.OwnerUserID,
		Nombre:       p.Name,
		Especie:      p.Species,
		Raza:         p.Breed,
		Genero:       p.Gender,
		Peso:         optNum(p.Weight),
		Vacunado:     p.Vaccinated,
		Esterilizado: p.Sterilized,
		TieneSeguro:  p.Insured,
		Descripcion:  p.Description,
	}
}

type petImageBody struct {
	MascotaID int64  `json:"mascotaId"`
	Ruta      string `json:"ruta"`
}

type treatmentBody struct {
	UsuarioID       int64        `json:"usuarioId"`
	MascotaID       int64        `json:"mascotaId"`
	TipoTratamiento string       `json:"tipoTratamiento"`
	Fecha           string       `json:"fecha"`
	Veterinario     string       `json:"veterinario,omitempty"`
	Descripcion     string       `json:"descripcion,omitempty"`
	Costo           *json.Number `json:"costo,omitempty"`
}

func toTreatmentBody(t model.Treatment) treatmentBody {
	return treatmentBody{
		UsuarioID:       t.OwnerUserID,
		MascotaID:       t.PetID,
		TipoTratamiento: t.Type,
		Fecha:           optDate(t.Date, DateLayout),
		Veterinario:     t.Vet,
		Descripcion:     t.Description,
		Costo:           optNum(t.Cost),
	}
}

type gpsBody struct {
	MascotaID int64   `json:"mascotaId"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type listingBody struct {
	ID                  int64  `json:"id,omitempty"`
	MascotaID           int64  `json:"mascotaId"`
	UsuarioPublicadorID int64  `json:"usuarioPublicadorId"`
	Disponible          bool   `json:"disponible"`
	FechaPublicacion    string `json:"fechaPublicacion,omitempty"`
}

func toListingBody(l model.AdoptionListing) listingBody {
	return listingBody{
		ID:                  l.ID,
		MascotaID:           l.PetID,
		UsuarioPublicadorID: l.PublisherUserID,
		Disponible:          l.Available,
		FechaPublicacion:    optDate(l.PublishedAt, DateTimeLayout),
	}
}

type requestBody struct {
	ID             int64  `json:"id,omitempty"`
	AdopcionID     int64  `json:"adopcionId"`
	SolicitanteID  int64  `json:"solicitanteId"`
	Estado         string `json:"estado"`
	Mensaje        string `json:"mensaje,omitempty"`
	FechaSolicitud string `json:"fechaSolicitud,omitempty"`
}

func toRequestBody(r model.AdoptionRequest) requestBody {
	return requestBody{
		ID:             r.ID,
		AdopcionID:     r.ListingID,
		SolicitanteID:  r.RequesterUserID,
		Estado:         normalize.WireStatus(r.Status),
		Mensaje:        r.Message,
		FechaSolicitud: optDate(r.RequestedAt, DateTimeLayout),
	}
}

type expenseBody struct {
	ID                int64       `json:"id,omitempty"`
	UsuarioID         int64       `json:"usuarioId"`
	MascotaID         *int64      `json:"mascotaId"`
	Categoria         string      `json:"categoria"`
	Monto             json.Number `json:"monto"`
	Fecha             string      `json:"fecha"`
	Proveedor         string      `json:"proveedor,omitempty"`
	FechaRecordatorio string      `json:"fechaRecordatorio,omitempty"`
}

func toExpenseBody(e model.Expense) expenseBody {
	return expenseBody{
		ID:                e.ID,
		UsuarioID:         e.OwnerUserID,
		MascotaID:         optID(e.PetID),
		Categoria:         e.Category,
		Monto:             num(e.Amount),
		Fecha:             optDate(e.Date, DateTimeLayout),
		Proveedor:         e.Vendor,
		FechaRecordatorio: optDate(e.ReminderDate, DateLayout),
	}
}

type budgetBody struct {
	ID        int64       `json:"id,omitempty"`
	UsuarioID int64       `json:"usuarioId"`
	Mes       string      `json:"mes"`
	Monto     json.Number `json:"monto"`
}

func toBudgetBody(b model.Budget) budgetBody {
	return budgetBody{ID: b.ID, UsuarioID: b.OwnerUserID, Mes: b.Month, Monto: num(b.Amount)}
}

type neighborhoodBody struct {
	Nombre           string `json:"nombre"`
	CodigoInvitacion string `json:"codigoInvitacion"`
	UserID           int64  `json:"userId"`
}

type membershipBody struct {
	UsuarioID     int64  `json:"usuarioId"`
	ColoniaID     int64  `json:"coloniaId"`
	FechaRegistro string `json:"fechaRegistro,omitempty"`
}

type neighborhoodPostBody struct {
	UsuarioID     int64  `json:"usuarioId"`
	ColoniaID     int64  `json:"coloniaId"`
	Contenido     string `json:"contenido"`
	EsAlerta      bool   `json:"esAlerta"`
	FechaCreacion string `json:"fechaCreacion,omitempty"`
}

type neighborhoodPostImageBody struct {
	PostColoniaID int64  `json:"postColoniaId"`
	UsuarioID     int64  `json:"usuarioId"`
	ImagePath     string `json:"imagePath"`
}

type neighborhoodCommentBody struct {
	PostColoniaID int64  `json:"postColoniaId"`
	UserID        int64  `json:"userId"`
	Contenido     string `json:"contenido"`
	FechaCreacion string `json:"fechaCreacion,omitempty"`
}

type neighborhoodLikeBody struct {
	PostColoniaID int64 `json:"postColoniaId"`
	UserID        int64 `json:"userId"`
}

type postBody struct {
	ID        int64  `json:"id,omitempty"`
	Contenido string `json:"contenido"`
	Imagen    string `json:"imagen,omitempty"`
	UsuarioID int64  `json:"usuarioId"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func toPostBody(p model.Post) postBody {
	return postBody{
		ID:        p.ID,
		Contenido: p.Content,
		Imagen:    p.Image,
		UsuarioID: p.AuthorUserID,
		CreatedAt: optDate(p.CreatedAt, DateLayout),
	}
}

type postImageBody struct {
	PostID    int64  `json:"postId"`
	ImagePath string `json:"imagePath"`
	UsuarioID int64  `json:"usuarioId"`
}

type commentBody struct {
	PostID        int64  `json:"postId"`
	UserID        int64  `json:"userId"`
	Contenido     string `json:"contenido"`
	FechaCreacion string `json:"fechaCreacion,omitempty"`
}

type likeBody struct {
	PostID int64 `json:"postId"`
	UserID int64 `json:"userId"`
}
