package identity

import (
	"strings"

	"petcare-companion/internal/normalize"
)

// BearerToken devuelve "Bearer <token>" si hay un token guardado, o "".
// Busca primero claves sueltas y luego dentro del objeto de sesión.
func BearerToken(items map[string]string) string {
	for _, k := range []string{"token", "access_token", "jwt"} {
		if t := strings.Trim(strings.TrimSpace(items[k]), `"`); t != "" {
			return bearer(t)
		}
	}

	raw := strings.TrimSpace(items[SessionKey])
	if raw == "" {
		return ""
	}
	v, err := normalize.Decode([]byte(raw))
	if err != nil {
		return ""
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range TokenKeys {
		if t, ok := obj[k].(string); ok && strings.TrimSpace(t) != "" {
			return bearer(strings.TrimSpace(t))
		}
	}
	return ""
}

func bearer(t string) string {
	if strings.HasPrefix(strings.ToLower(t), "bearer ") {
		return t
	}
	return "Bearer " + t
}
