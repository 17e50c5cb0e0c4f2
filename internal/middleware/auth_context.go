package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"petcare-companion/internal/identity"
	"petcare-companion/internal/model"
	"petcare-companion/internal/session"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionContext:
// - Renueva la sesión deslizante (Touch) en cada request.
// - Si hay usuario logueado lo deja en el contexto.
// - Con Bearer JWT cuyo id no coincide con la sesión, no setea usuario.
// - Sin usuario el request sigue igual; RequireSession decide el 401.
func SessionContext(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}
			_ = store.Touch(r.Context())

			u, ok := store.User()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if token := bearerToken(r.Header.Get("Authorization")); token != "" {
				if id, ok := identity.FromJWT(token); ok && id != u.ID {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession corta con 401 si SessionContext no dejó usuario.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "no active session"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(ctx context.Context) (model.User, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
