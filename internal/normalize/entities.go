package normalize

import (
	"strings"

	"petcare-companion/internal/model"
)

// Normalizer convierte registros crudos en registros canónicos.
// Nunca falla: campos ausentes quedan en su valor cero. Las imágenes de
// galería vacías caen al placeholder; las fotos de usuario y mascota no.
type Normalizer struct {
	Images ImageResolver
}

func New(images ImageResolver) *Normalizer {
	return &Normalizer{Images: images}
}

func id(r Raw, t FieldTable) int64 {
	n, _ := Int(r, t.Paths("id"))
	return n
}

func ref(r Raw, t FieldTable, field string) int64 {
	n, _ := Int(r, t.Paths(field))
	return n
}

func (n *Normalizer) User(r Raw) model.User {
	// nombre + apellidos tiene prioridad sobre el nombre suelto
	name := String(r, []string{"nombreCompleto"})
	if name == "" {
		name = joinNonEmpty(String(r, []string{"nombre"}), String(r, []string{"apellidoPaterno"}), String(r, []string{"apellidoMaterno"}), String(r, []string{"apellido"}))
	}
	if name == "" {
		name = String(r, UserFields.Paths("name"))
	}
	photo := String(r, UserFields.Paths("photo"))
	if photo != "" {
		photo = n.Images.Resolve(photo)
	}
	return model.User{
		ID:         id(r, UserFields),
		Name:       name,
		Email:      String(r, UserFields.Paths("email")),
		Password:   rawString(r, UserFields.Paths("password")),
		Phone:      String(r, UserFields.Paths("phone")),
		NationalID: String(r, UserFields.Paths("nationalId")),
		Photo:      photo,
	}
}

// Pet deja Photo vacío si no viene: la vista decide entre galería y placeholder.
func (n *Normalizer) Pet(r Raw) model.Pet {
	photo := String(r, PetFields.Paths("photo"))
	if photo != "" {
		photo = n.Images.Resolve(photo)
	}
	return model.Pet{
		ID:          id(r, PetFields),
		OwnerUserID: ref(r, PetFields, "owner"),
		Name:        String(r, PetFields.Paths("name")),
		Species:     String(r, PetFields.Paths("species")),
		Breed:       String(r, PetFields.Paths("breed")),
		Gender:      String(r, PetFields.Paths("gender")),
		Weight:      Decimal(r, PetFields.Paths("weight")),
		Vaccinated:  Bool(r, PetFields.Paths("vaccinated")),
		Sterilized:  Bool(r, PetFields.Paths("sterilized")),
		Insured:     Bool(r, PetFields.Paths("insured")),
		Description: String(r, PetFields.Paths("description")),
		Photo:       photo,
	}
}

func (n *Normalizer) PetImage(r Raw) model.PetImage {
	return model.PetImage{
		ID:         id(r, PetImageFields),
		PetID:      ref(r, PetImageFields, "pet"),
		URL:        n.Images.Resolve(String(r, PetImageFields.Paths("url"))),
		UploadedAt: Time(r, PetImageFields.Paths("uploadedAt")),
	}
}

func (n *Normalizer) Treatment(r Raw) model.Treatment {
	return model.Treatment{
		ID:          id(r, TreatmentFields),
		OwnerUserID: ref(r, TreatmentFields, "owner"),
		PetID:       ref(r, TreatmentFields, "pet"),
		Type:        String(r, TreatmentFields.Paths("type")),
		Date:        Time(r, TreatmentFields.Paths("date")),
		Vet:         String(r, TreatmentFields.Paths("vet")),
		Cost:        Decimal(r, TreatmentFields.Paths("cost")),
		Description: String(r, TreatmentFields.Paths("description")),
	}
}

func (n *Normalizer) GPSPoint(r Raw) model.GPSPoint {
	lat, _ := Float(r, GPSFields.Paths("latitude"))
	lng, _ := Float(r, GPSFields.Paths("longitude"))
	return model.GPSPoint{
		ID:        id(r, GPSFields),
		PetID:     ref(r, GPSFields, "pet"),
		Latitude:  lat,
		Longitude: lng,
		Timestamp: Time(r, GPSFields.Paths("timestamp")),
	}
}

func (n *Normalizer) AdoptionListing(r Raw) model.AdoptionListing {
	return model.AdoptionListing{
		ID:              id(r, ListingFields),
		PetID:           ref(r, ListingFields, "pet"),
		PublisherUserID: ref(r, ListingFields, "publisher"),
		Available:       Bool(r, ListingFields.Paths("available")),
		PublishedAt:     Time(r, ListingFields.Paths("publishedAt")),
	}
}

func (n *Normalizer) AdoptionRequest(r Raw) model.AdoptionRequest {
	return model.AdoptionRequest{
		ID:              id(r, RequestFields),
		ListingID:       ref(r, RequestFields, "listing"),
		RequesterUserID: ref(r, RequestFields, "requester"),
		Status:          ParseStatus(String(r, RequestFields.Paths("status"))),
		Message:         String(r, RequestFields.Paths("message")),
		RequestedAt:     Time(r, RequestFields.Paths("requestedAt")),
	}
}

// ParseStatus acepta los estados en español e inglés; desconocido => pending.
func ParseStatus(s string) model.RequestStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aceptada", "aceptado", "accepted":
		return model.RequestAccepted
	case "rechazada", "rechazado", "rejected":
		return model.RequestRejected
	default:
		return model.RequestPending
	}
}

// WireStatus es el estado tal como lo espera el backend.
func WireStatus(s model.RequestStatus) string {
	switch s {
	case model.RequestAccepted:
		return "aceptada"
	case model.RequestRejected:
		return "rechazada"
	default:
		return "pendiente"
	}
}

func (n *Normalizer) Expense(r Raw) model.Expense {
	return model.Expense{
		ID:           id(r, ExpenseFields),
		OwnerUserID:  ref(r, ExpenseFields, "owner"),
		PetID:        ref(r, ExpenseFields, "pet"),
		Category:     String(r, ExpenseFields.Paths("category")),
		Amount:       Decimal(r, ExpenseFields.Paths("amount")),
		Date:         Time(r, ExpenseFields.Paths("date")),
		Vendor:       String(r, ExpenseFields.Paths("vendor")),
		ReminderDate: Time(r, ExpenseFields.Paths("reminderDate")),
	}
}

func (n *Normalizer) Budget(r Raw) model.Budget {
	return model.Budget{
		ID:          id(r, BudgetFields),
		OwnerUserID: ref(r, BudgetFields, "owner"),
		Month:       String(r, BudgetFields.Paths("month")),
		Amount:      Decimal(r, BudgetFields.Paths("amount")),
	}
}

func (n *Normalizer) Neighborhood(r Raw) model.Neighborhood {
	return model.Neighborhood{
		ID:             id(r, NeighborhoodFields),
		Name:           String(r, NeighborhoodFields.Paths("name")),
		InvitationCode: strings.ToUpper(String(r, NeighborhoodFields.Paths("code"))),
		OwnerUserID:    ref(r, NeighborhoodFields, "owner"),
	}
}

func (n *Normalizer) Membership(r Raw) model.Membership {
	return model.Membership{
		ID:             id(r, MembershipFields),
		UserID:         ref(r, MembershipFields, "user"),
		NeighborhoodID: ref(r, MembershipFields, "neighborhood"),
		JoinedAt:       Time(r, MembershipFields.Paths("joinedAt")),
	}
}

func (n *Normalizer) NeighborhoodPost(r Raw) model.NeighborhoodPost {
	return model.NeighborhoodPost{
		ID:             id(r, NeighborhoodPostFields),
		AuthorUserID:   ref(r, NeighborhoodPostFields, "author"),
		NeighborhoodID: ref(r, NeighborhoodPostFields, "neighborhood"),
		Content:        String(r, NeighborhoodPostFields.Paths("content")),
		IsAlert:        Bool(r, NeighborhoodPostFields.Paths("isAlert")),
		CreatedAt:      Time(r, NeighborhoodPostFields.Paths("createdAt")),
	}
}

func (n *Normalizer) NeighborhoodPostImage(r Raw) model.NeighborhoodPostImage {
	return model.NeighborhoodPostImage{
		ID:           id(r, NeighborhoodPostImageFields),
		PostID:       ref(r, NeighborhoodPostImageFields, "post"),
		AuthorUserID: ref(r, NeighborhoodPostImageFields, "author"),
		URL:          n.Images.Resolve(String(r, NeighborhoodPostImageFields.Paths("url"))),
	}
}

func (n *Normalizer) NeighborhoodComment(r Raw) model.NeighborhoodComment {
	return model.NeighborhoodComment{
		ID:           id(r, NeighborhoodCommentFields),
		PostID:       ref(r, NeighborhoodCommentFields, "post"),
		AuthorUserID: ref(r, NeighborhoodCommentFields, "author"),
		Content:      String(r, NeighborhoodCommentFields.Paths("content")),
		CreatedAt:    Time(r, NeighborhoodCommentFields.Paths("createdAt")),
	}
}

func (n *Normalizer) NeighborhoodLike(r Raw) model.NeighborhoodLike {
	return model.NeighborhoodLike{
		ID:     id(r, NeighborhoodLikeFields),
		PostID: ref(r, NeighborhoodLikeFields, "post"),
		UserID: ref(r, NeighborhoodLikeFields, "user"),
	}
}

func (n *Normalizer) Post(r Raw) model.Post {
	img := String(r, PostFields.Paths("image"))
	if img != "" {
		img = n.Images.Resolve(img)
	}
	return model.Post{
		ID:           id(r, PostFields),
		AuthorUserID: ref(r, PostFields, "author"),
		Content:      String(r, PostFields.Paths("content")),
		Image:        img,
		CreatedAt:    Time(r, PostFields.Paths("createdAt")),
	}
}

func (n *Normalizer) PostImage(r Raw) model.PostImage {
	return model.PostImage{
		ID:           id(r, PostImageFields),
		PostID:       ref(r, PostImageFields, "post"),
		AuthorUserID: ref(r, PostImageFields, "author"),
		URL:          n.Images.Resolve(String(r, PostImageFields.Paths("url"))),
	}
}

func (n *Normalizer) Comment(r Raw) model.Comment {
	return model.Comment{
		ID:           id(r, CommentFields),
		PostID:       ref(r, CommentFields, "post"),
		AuthorUserID: ref(r, CommentFields, "author"),
		Content:      String(r, CommentFields.Paths("content")),
		CreatedAt:    Time(r, CommentFields.Paths("createdAt")),
	}
}

func (n *Normalizer) Like(r Raw) model.Like {
	return model.Like{
		ID:     id(r, LikeFields),
		PostID: ref(r, LikeFields, "post"),
		UserID: ref(r, LikeFields, "user"),
	}
}

// rawString no recorta: el password se compara tal cual.
func rawString(r Raw, paths []string) string {
	for _, p := range paths {
		v, ok := Lookup(r, p)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(vals ...string) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
