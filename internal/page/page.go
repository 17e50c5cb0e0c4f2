// Package page tiene lo común a todas las pantallas: dependencias, guard de
// sesión, carga concurrente de colecciones y reporte de errores.
package page

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"petcare-companion/internal/adapters/storage/memory"
	"petcare-companion/internal/backend"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/platform/httpclient"
	"petcare-companion/internal/platform/logger"
	"petcare-companion/internal/ports/storage"
	"petcare-companion/internal/session"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrBadState     = errors.New("invalid state")
)

// MaxConcurrentLoads limita las cargas simultáneas de una pantalla.
const MaxConcurrentLoads = 6

type Deps struct {
	Backend *backend.Client
	Session *session.Store
	Notify  notify.Sink
	Log     logger.Logger
	Store   storage.Local

	// Placeholder para mascotas/usuarios sin imagen.
	Placeholder string

	Now func() time.Time
}

// WithDefaults completa Log, Store y Now.
func (d Deps) WithDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Store == nil {
		d.Store = memory.NewLocalStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Guard devuelve el id del usuario actual. Sin sesión avisa con una
// notificación bloqueante y no toca la red.
func (d Deps) Guard(ctx context.Context) (int64, error) {
	if d.Session != nil {
		if id, ok := d.Session.UserID(ctx); ok && id > 0 {
			return id, nil
		}
	}
	notify.Blocking(d.Notify, "Session", "No active session found. Please log in again.")
	return 0, ErrNoSession
}

// Task es una carga independiente. Run asigna su resultado; si falla, la
// colección destino queda como estaba.
type Task struct {
	Name    string
	Message string // texto para el usuario si falla
	Run     func(ctx context.Context) error
}

// FanOut corre las tareas en paralelo y espera a todas. Un fallo no cancela
// a las demás: se notifica, se loguea y se devuelve unido al resto.
func (d Deps) FanOut(ctx context.Context, tasks ...Task) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(MaxConcurrentLoads)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			if err := t.Run(ctx); err != nil {
				d.Report(t.Name, t.Message, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Report loguea y notifica un fallo. Devuelve err para encadenar.
func (d Deps) Report(op, fallback string, err error) error {
	if err == nil {
		return nil
	}
	fields := map[string]any{"op": op, "error": err}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		fields["status"] = he.StatusCode
	}
	if d.Log != nil {
		d.Log.Warn("operation failed", fields)
	}
	if fallback == "" {
		fallback = "Something went wrong. Please try again."
	}
	notify.Danger(d.Notify, "Error", UserMessage(err, fallback))
	return err
}

// UserMessage elige el texto a mostrar: errores de validación y de estado
// van tal cual; los del backend usan su mensaje.
func UserMessage(err error, fallback string) string {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return he.Message()
	}
	if isDomainError(err) {
		return err.Error()
	}
	return httpclient.HumanMessage(err, fallback)
}

func isDomainError(err error) bool {
	for _, e := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict, ErrBadState, ErrNoSession} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func (d Deps) Success(msg string) {
	notify.Success(d.Notify, "", msg)
}

// RemoveByID devuelve una copia de items sin el elemento con ese id.
func RemoveByID[T any](items []T, id int64, key func(T) int64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}

// Busy cuenta operaciones en curso (el "cargando" de la pantalla).
type Busy struct {
	n atomic.Int32
}

// Start marca una operación; llamar al func devuelto al terminar.
func (b *Busy) Start() func() {
	b.n.Add(1)
	var once sync.Once
	return func() { once.Do(func() { b.n.Add(-1) }) }
}

func (b *Busy) Busy() bool { return b.n.Load() > 0 }

// HTTPStatus traduce errores de página a status y mensaje para el gateway.
func HTTPStatus(err error) (int, string) {
	var he *httpclient.HTTPError
	switch {
	case errors.Is(err, ErrNoSession), errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrInvalidInput), errors.Is(err, session.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrConflict), errors.Is(err, ErrBadState):
		return http.StatusConflict, err.Error()
	case errors.As(err, &he):
		return http.StatusBadGateway, he.Message()
	case errors.Is(err, backend.ErrNotConfigured):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
