// Package session mantiene al usuario autenticado del proceso (como máximo
// uno) y lo persiste en el almacenamiento local.
package session

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"petcare-companion/internal/identity"
	"petcare-companion/internal/model"
	"petcare-companion/internal/normalize"
	"petcare-companion/internal/ports/storage"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Claves sueltas que se escriben por compatibilidad con lectores antiguos.
var legacyKeys = []string{"userId", "idUsuario"}

// UserDirectory lista usuarios del backend (para login por email).
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type Options struct {
	// TTL 0 => la sesión no expira.
	TTL time.Duration
	// Sliding: Touch renueva la marca de login.
	Sliding bool
}

// envelope es el formato persistido bajo identity.SessionKey.
type envelope struct {
	User       model.User `json:"user"`
	LoggedInAt time.Time  `json:"loggedInAt"`
}

type Store struct {
	mu         sync.RWMutex
	user       *model.User
	loggedInAt time.Time

	local storage.Local
	dir   UserDirectory
	opts  Options
	now   func() time.Time
}

func NewStore(local storage.Local, dir UserDirectory, opts Options) *Store {
	return &Store{
		local: local,
		dir:   dir,
		opts:  opts,
		now:   time.Now,
	}
}

// Hydrate carga la sesión persistida. Blobs corruptos o expirados se
// descartan (y se limpian); nunca es un error fatal.
// Devuelve el error solo si falla el acceso al store.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, ok, err := s.local.GetItem(ctx, identity.SessionKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok || strings.TrimSpace(raw) == "" {
		s.user = nil
		s.loggedInAt = time.Time{}
		return nil
	}

	env, stamped, ok := decodeEnvelope(raw)
	if !ok {
		s.user = nil
		return s.clearLocked(ctx)
	}
	if !stamped {
		// registro legado sin marca: se toma como login ahora
		env.LoggedInAt = s.now()
		if err := s.persistLocked(ctx, env); err != nil {
			return err
		}
	}

	if s.expired(env.LoggedInAt) {
		s.user = nil
		s.loggedInAt = time.Time{}
		return s.clearLocked(ctx)
	}

	u := env.User
	s.user = &u
	s.loggedInAt = env.LoggedInAt
	return nil
}

// Login busca el usuario por email (sin distinguir mayúsculas) y compara
// el password tal cual.
func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, ErrInvalidInput
	}
	if s.dir == nil {
		return model.User{}, errors.New("session: no user directory")
	}

	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return model.User{}, err
	}

	var found *model.User
	for i := range users {
		u := users[i]
		if !strings.EqualFold(strings.TrimSpace(u.Email), email) {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
			continue
		}
		found = &u
		break
	}
	if found == nil {
		return model.User{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err := s.persistLocked(ctx, envelope{User: *found, LoggedInAt: now}); err != nil {
		return model.User{}, err
	}
	for _, k := range legacyKeys {
		if err := s.local.SetItem(ctx, k, strconv.FormatInt(found.ID, 10)); err != nil {
			return model.User{}, err
		}
	}

	u := *found
	s.user = &u
	s.loggedInAt = now
	return u, nil
}

// SetUser reemplaza el registro sin tocar la marca de login.
// Sin sesión activa devuelve ErrUnauthenticated.
func (s *Store) SetUser(ctx context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrUnauthenticated
	}
	if err := s.persistLocked(ctx, envelope{User: u, LoggedInAt: s.loggedInAt}); err != nil {
		return err
	}
	cp := u
	s.user = &cp
	return nil
}

// Touch renueva la ventana deslizante. No-op si Sliding=false.
func (s *Store) Touch(ctx context.Context) error {
	if !s.opts.Sliding {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	if s.expired(s.loggedInAt) {
		s.user = nil
		s.loggedInAt = time.Time{}
		return s.clearLocked(ctx)
	}
	now := s.now()
	if err := s.persistLocked(ctx, envelope{User: *s.user, LoggedInAt: now}); err != nil {
		return err
	}
	s.loggedInAt = now
	return nil
}

// Logout borra todas las claves que el resolver de identidad sabe leer, no
// solo las que escribió Login.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.loggedInAt = time.Time{}
	return s.clearLocked(ctx)
}

// RequireUser devuelve el usuario actual o ErrUnauthenticated.
// Una sesión vencida cuenta como ausente.
func (s *Store) RequireUser() (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.expired(s.loggedInAt) {
		return model.User{}, ErrUnauthenticated
	}
	return *s.user, nil
}

// User es como RequireUser pero con bool.
func (s *Store) User() (model.User, bool) {
	u, err := s.RequireUser()
	return u, err == nil
}

func (s *Store) LoggedInAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedInAt
}

// UserID usa el registro en memoria y, si no hay, el resolver de identidad
// sobre el store (sesiones escritas por otras versiones del cliente). Una
// sesión vencida se descarta y no cae al resolver.
func (s *Store) UserID(ctx context.Context) (int64, bool) {
	s.mu.Lock()
	if s.user != nil {
		if s.expired(s.loggedInAt) {
			s.user = nil
			s.loggedInAt = time.Time{}
			_ = s.clearLocked(ctx)
			s.mu.Unlock()
			return 0, false
		}
		if s.user.ID > 0 {
			id := s.user.ID
			s.mu.Unlock()
			return id, true
		}
	}
	s.mu.Unlock()
	return identity.ResolveFrom(ctx, s.local)
}

// BearerToken devuelve el header Authorization guardado, si hay.
func (s *Store) BearerToken(ctx context.Context) string {
	items := map[string]string{}
	for _, k := range []string{"token", "access_token", "jwt", identity.SessionKey} {
		if v, ok, err := s.local.GetItem(ctx, k); err == nil && ok {
			items[k] = v
		}
	}
	return identity.BearerToken(items)
}

func (s *Store) expired(at time.Time) bool {
	if s.opts.TTL <= 0 || at.IsZero() {
		return false
	}
	return s.now().Sub(at) > s.opts.TTL
}

// persistLocked no guarda el password.
func (s *Store) persistLocked(ctx context.Context, env envelope) error {
	env.User.Password = ""
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.local.SetItem(ctx, identity.SessionKey, string(b))
}

func (s *Store) clearLocked(ctx context.Context) error {
	var errs []error
	for _, k := range identity.WellKnownKeys() {
		if err := s.local.RemoveItem(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// decodeEnvelope acepta el sobre {user, loggedInAt} o un registro de
// usuario suelto (formato anterior). stamped=false si no trae marca.
func decodeEnvelope(raw string) (envelope, bool, bool) {
	v, err := normalize.Decode([]byte(raw))
	if err != nil {
		return envelope{}, false, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return envelope{}, false, false
	}

	n := normalize.New(normalize.ImageResolver{})
	if inner, ok := obj["user"].(map[string]any); ok {
		u := userFromStored(n, inner)
		if u.ID <= 0 {
			return envelope{}, false, false
		}
		at, stamped := normalize.ToTime(obj["loggedInAt"])
		return envelope{User: u, LoggedInAt: at}, stamped, true
	}

	u := userFromStored(n, obj)
	if u.ID <= 0 {
		return envelope{}, false, false
	}
	return envelope{User: u}, false, true
}

// userFromStored acepta tanto el formato canónico como el del backend.
func userFromStored(n *normalize.Normalizer, r normalize.Raw) model.User {
	u := n.User(r)
	if u.Photo == "" {
		u.Photo = normalize.String(r, []string{"photo"})
	}
	if u.NationalID == "" {
		u.NationalID = normalize.String(r, []string{"nationalId"})
	}
	return u
}
