package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcare-companion/internal/notify"
)

func registerNotifications(r chi.Router, q *notify.Queue) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(q.Active())
		})
		nr.Delete("/", func(w http.ResponseWriter, _ *http.Request) {
			q.Clear()
			w.WriteHeader(http.StatusNoContent)
		})
		nr.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			q.Dismiss(chi.URLParam(r, "id"))
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
