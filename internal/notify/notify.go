// Package notify recibe los mensajes transitorios de éxito/error que
// generan las páginas. Presentarlos es responsabilidad de quien los consume.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"petcare-companion/internal/platform/logger"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

const (
	DefaultTTL = 3500 * time.Millisecond
	MaxActive  = 5
)

type Notification struct {
	ID        string        `json:"id"`
	Level     Level         `json:"level"`
	Title     string        `json:"title,omitempty"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	TTL       time.Duration `json:"ttl"`

	// Blocking: el usuario debe atenderla (p.ej. sin sesión). No expira.
	Blocking bool `json:"blocking,omitempty"`
}

// Sink recibe notificaciones. Implementaciones deben ser seguras para
// uso concurrente: las páginas notifican desde varias goroutines.
type Sink interface {
	Notify(n Notification)
}

// New completa id, fecha y TTL.
func New(level Level, title, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
		TTL:       DefaultTTL,
	}
}

func Info(s Sink, title, msg string)    { send(s, New(LevelInfo, title, msg)) }
func Success(s Sink, title, msg string) { send(s, New(LevelSuccess, title, msg)) }
func Warning(s Sink, title, msg string) { send(s, New(LevelWarning, title, msg)) }
func Danger(s Sink, title, msg string)  { send(s, New(LevelDanger, title, msg)) }

// Blocking envía una notificación danger que no expira.
func Blocking(s Sink, title, msg string) {
	n := New(LevelDanger, title, msg)
	n.TTL = 0
	n.Blocking = true
	send(s, n)
}

func send(s Sink, n Notification) {
	if s == nil {
		return
	}
	s.Notify(n)
}

// Queue guarda las últimas MaxActive notificaciones, la más nueva primero.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	now   func() time.Time
}

func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

func (q *Queue) Notify(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.now()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append([]Notification{n}, q.items...)
	if len(q.items) > MaxActive {
		q.items = q.items[:MaxActive]
	}
}

// Active devuelve las vigentes y descarta las expiradas.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.items[:0]
	for _, n := range q.items {
		if n.TTL > 0 && now.Sub(n.CreatedAt) >= n.TTL {
			continue
		}
		kept = append(kept, n)
	}
	q.items = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, n := range q.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// LogSink escribe cada notificación en el log.
type LogSink struct {
	Log logger.Logger
}

func (s LogSink) Notify(n Notification) {
	if s.Log == nil {
		return
	}
	fields := map[string]any{"level": string(n.Level), "title": n.Title}
	switch n.Level {
	case LevelDanger:
		s.Log.Error(n.Message, fields)
	case LevelWarning:
		s.Log.Warn(n.Message, fields)
	default:
		s.Log.Info(n.Message, fields)
	}
}

// Fanout reenvía a varios sinks.
type Fanout []Sink

func (f Fanout) Notify(n Notification) {
	for _, s := range f {
		if s != nil {
			s.Notify(n)
		}
	}
}
