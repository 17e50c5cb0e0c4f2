// Package pagetest arma page.Deps sobre el backend falso y un store en
// memoria, con un usuario ya logueado.
package pagetest

import (
	"context"
	"testing"
	"time"

	"petcare-companion/internal/adapters/storage/memory"
	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/platform/logger"
	"petcare-companion/internal/session"
)

const (
	UserID   = int64(1)
	Email    = "ana@example.com"
	Password = "secreta"
)

// Now es el reloj fijo de los tests.
var Now = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

type Env struct {
	Server *backendtest.Server
	Queue  *notify.Queue
	Deps   page.Deps
}

// New siembra al usuario 1 y lo loguea. Con login=false no hay sesión.
func New(tb testing.TB, login bool) *Env {
	tb.Helper()

	srv, ts := backendtest.Start(tb)
	srv.Seed(backendtest.Users,
		map[string]any{"id": UserID, "nombre": "Ana", "email": Email, "password": Password},
		map[string]any{"id": 2, "nombre": "Beto", "email": "beto@example.com", "password": "x"},
	)

	client := backendtest.NewClient(tb, ts)
	local := memory.NewLocalStore()
	store := session.NewStore(local, client, session.Options{})
	if login {
		if _, err := store.Login(context.Background(), Email, Password); err != nil {
			tb.Fatalf("login: %v", err)
		}
	}

	q := notify.NewQueue()
	deps := page.Deps{
		Backend:     client,
		Session:     store,
		Notify:      q,
		Log:         logger.Nop(),
		Store:       local,
		Placeholder: "/img/placeholder.png",
		Now:         func() time.Time { return Now },
	}
	return &Env{Server: srv, Queue: q, Deps: deps}
}

// Levels devuelve los niveles de las notificaciones activas, la más nueva primero.
func (e *Env) Levels() []notify.Level {
	out := make([]notify.Level, 0)
	for _, n := range e.Queue.Active() {
		out = append(out, n.Level)
	}
	return out
}
