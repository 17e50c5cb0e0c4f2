// Package identity obtiene el id numérico del usuario actual a partir del
// contenido del almacenamiento local, sin importar qué forma tenga la sesión.
package identity

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"petcare-companion/internal/normalize"
	"petcare-companion/internal/ports/storage"
)

// SessionKey es la clave del blob de sesión.
const SessionKey = "petcare.session.v1"

// MaxDepth limita la búsqueda profunda.
const MaxDepth = 8

var (
	// DirectKeys se leen como enteros directamente.
	DirectKeys = []string{"userId", "usuarioId", "idUsuario", "id_usuario", "idUser", "id_user"}

	// ObjectKeys guardan objetos de sesión; SessionKey primero, el resto por compatibilidad.
	ObjectKeys = []string{SessionKey, "user", "usuario", "currentUser", "authUser", "sessionUser"}

	// NestedPaths dentro del objeto de sesión, en orden.
	NestedPaths = []string{
		"user.id", "user.userId", "user.usuarioId", "user.idUsuario",
		"usuario.id", "usuario.usuarioId", "usuario.idUsuario",
		"session.userId", "session.usuarioId",
		"data.user.id", "data.usuario.id",
		"id", "idUsuario", "userId", "usuarioId",
	}

	TokenKeys = []string{"token", "accessToken", "access_token", "jwt", "authToken"}

	// ClaimKeys del payload del JWT.
	ClaimKeys = []string{"userId", "usuarioId", "id", "sub"}

	// DeepKeys para la búsqueda profunda, en orden.
	DeepKeys = []string{"userId", "usuarioId", "idUsuario", "id_user", "id"}
)

// WellKnownKeys son todas las claves que el resolver puede leer.
func WellKnownKeys() []string {
	out := make([]string, 0, len(DirectKeys)+len(ObjectKeys)+len(TokenKeys))
	seen := map[string]struct{}{}
	for _, group := range [][]string{DirectKeys, ObjectKeys, TokenKeys} {
		for _, k := range group {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Resolve devuelve el id del usuario o (0, false). Nunca falla.
//
// Orden: claves directas, paths anidados del objeto de sesión, JWT
// dentro del objeto y por último búsqueda profunda.
func Resolve(items map[string]string) (int64, bool) {
	for _, k := range DirectKeys {
		if n, ok := positive(items[k]); ok {
			return n, true
		}
	}

	for _, k := range ObjectKeys {
		raw := strings.TrimSpace(items[k])
		if raw == "" {
			continue
		}
		v, err := normalize.Decode([]byte(raw))
		if err != nil {
			continue
		}
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if n, ok := fromObject(obj); ok {
			return n, true
		}
	}
	return 0, false
}

// ResolveFrom lee las claves conocidas del store y resuelve.
func ResolveFrom(ctx context.Context, store storage.Local) (int64, bool) {
	if store == nil {
		return 0, false
	}
	items := make(map[string]string)
	for _, k := range WellKnownKeys() {
		v, ok, err := store.GetItem(ctx, k)
		if err != nil || !ok {
			continue
		}
		items[k] = v
	}
	return Resolve(items)
}

func fromObject(obj map[string]any) (int64, bool) {
	for _, p := range NestedPaths {
		v, ok := normalize.Lookup(obj, p)
		if !ok {
			continue
		}
		if n, ok := positiveAny(v); ok {
			return n, true
		}
	}

	for _, k := range TokenKeys {
		tok, _ := obj[k].(string)
		if n, ok := FromJWT(tok); ok {
			return n, true
		}
	}

	return deepFind(obj)
}

// FromJWT lee el id del payload. No verifica la firma.
func FromJWT(token string) (int64, bool) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, false
	}
	p := jwt.NewParser(jwt.WithPaddingAllowed())
	seg, err := p.DecodeSegment(parts[1])
	if err != nil {
		return 0, false
	}
	var claims map[string]any
	if err := json.Unmarshal(seg, &claims); err != nil {
		return 0, false
	}
	for _, k := range ClaimKeys {
		v, ok := claims[k]
		if !ok || v == nil {
			continue
		}
		if n, ok := positiveAny(v); ok {
			return n, true
		}
	}
	return 0, false
}

// deepFind: en cada nivel prueba DeepKeys y luego baja por los hijos en
// orden de clave. Visitados por identidad, profundidad máxima MaxDepth.
func deepFind(root any) (int64, bool) {
	seen := map[uintptr]struct{}{}

	var walk func(x any, depth int) (int64, bool)
	walk = func(x any, depth int) (int64, bool) {
		if depth > MaxDepth {
			return 0, false
		}
		switch node := x.(type) {
		case map[string]any:
			if !markSeen(seen, node) {
				return 0, false
			}
			for _, k := range DeepKeys {
				if v, ok := node[k]; ok {
					if n, ok := positiveAny(v); ok {
						return n, true
					}
				}
			}
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if n, ok := walk(node[k], depth+1); ok {
					return n, true
				}
			}
		case []any:
			if !markSeen(seen, node) {
				return 0, false
			}
			for _, v := range node {
				if n, ok := walk(v, depth+1); ok {
					return n, true
				}
			}
		}
		return 0, false
	}

	return walk(root, 0)
}

func markSeen(seen map[uintptr]struct{}, v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Len() == 0 {
		return true
	}
	ptr := rv.Pointer()
	if _, ok := seen[ptr]; ok {
		return false
	}
	seen[ptr] = struct{}{}
	return true
}

func positive(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// los valores del store pueden venir como JSON ("5" o 5)
	s = strings.Trim(s, `"`)
	return positiveAny(s)
}

// positiveAny acepta solo enteros positivos (5, "5", 5.0). 5.5 no.
func positiveAny(v any) (int64, bool) {
	f, ok := normalize.ToFloat(v)
	if !ok || f <= 0 || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
