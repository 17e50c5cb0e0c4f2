// Package views arma los modelos de pantalla a partir de colecciones ya
// normalizadas y el id del usuario actual. Todo es puro: sin red ni store.
// Un userID <= 0 produce resultados vacíos.
package views

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"petcare-companion/internal/model"
)

const (
	YouLabel = "You"

	// UncategorizedLabel agrupa gastos sin categoría.
	UncategorizedLabel = "Uncategorized"
)

// OwnedBy filtra items cuyo dueño es userID, preservando el orden.
func OwnedBy[T any](items []T, userID int64, owner func(T) int64) []T {
	out := make([]T, 0)
	if userID <= 0 {
		return out
	}
	for _, it := range items {
		if owner(it) == userID {
			out = append(out, it)
		}
	}
	return out
}

// UserIndex indexa usuarios por id. Registros sin id se ignoran.
type UserIndex map[int64]model.User

func IndexUsers(users []model.User) UserIndex {
	idx := make(UserIndex, len(users))
	for _, u := range users {
		if u.ID > 0 {
			idx[u.ID] = u
		}
	}
	return idx
}

// DisplayName devuelve el nombre del usuario o "User #<id>".
func (idx UserIndex) DisplayName(id int64) string {
	if u, ok := idx[id]; ok {
		if name := strings.TrimSpace(u.Name); name != "" {
			return name
		}
		if email := strings.TrimSpace(u.Email); email != "" {
			return email
		}
	}
	return "User #" + strconv.FormatInt(id, 10)
}

// AuthorLabel es DisplayName salvo para el usuario actual ("You").
func (idx UserIndex) AuthorLabel(authorID, currentUserID int64) string {
	if currentUserID > 0 && authorID == currentUserID {
		return YouLabel
	}
	return idx.DisplayName(authorID)
}

func (idx UserIndex) Photo(id int64) string {
	return idx[id].Photo
}

func PetName(p model.Pet, id int64) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return "Pet #" + strconv.FormatInt(id, 10)
}

// SortByTimeDesc devuelve una copia ordenada por fecha descendente.
// Fechas ausentes cuentan como epoch 0; empates por id descendente.
func SortByTimeDesc[T any](items []T, at func(T) time.Time, id func(T) int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := unix(at(out[i])), unix(at(out[j]))
		if ti != tj {
			return ti > tj
		}
		return id(out[i]) > id(out[j])
	})
	return out
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// SortByIDDesc devuelve una copia ordenada por id descendente.
func SortByIDDesc[T any](items []T, id func(T) int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return id(out[i]) > id(out[j]) })
	return out
}

func SortByIDAsc[T any](items []T, id func(T) int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
