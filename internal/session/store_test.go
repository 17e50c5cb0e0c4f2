package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/adapters/storage/memory"
	"petcare-companion/internal/identity"
	"petcare-companion/internal/model"
)

type fakeDirectory struct {
	users []model.User
	err   error
	calls int
}

func (d *fakeDirectory) ListUsers(ctx context.Context) ([]model.User, error) {
	d.calls++
	return d.users, d.err
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *fakeDirectory, *time.Time) {
	t.Helper()
	dir := &fakeDirectory{users: []model.User{
		{ID: 1, Name: "Ana", Email: "ana@petcare.mx", Password: "secreto1"},
		{ID: 2, Name: "Luis", Email: "Luis@PetCare.mx", Password: "Pa55word"},
	}}
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(memory.NewLocalStore(), dir, Options{TTL: ttl, Sliding: true})
	s.now = func() time.Time { return now }
	return s, dir, &now
}

func TestLogin_CaseInsensitiveEmailExactPassword(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, 30*time.Minute)

	u, err := s.Login(ctx, "  luis@petcare.MX ", "Pa55word")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	_, err = s.Login(ctx, "luis@petcare.mx", "pa55word")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// un login fallido no borra la sesión previa
	cur, err := s.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, int64(2), cur.ID)

	_, err = s.Login(ctx, "", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_PersistsEnvelopeAndLegacyKeys(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 30*time.Minute)

	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	v, ok, _ := s.local.GetItem(ctx, "userId")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	items := map[string]string{}
	raw, _, _ := s.local.GetItem(ctx, identity.SessionKey)
	items[identity.SessionKey] = raw
	assert.NotContains(t, raw, "secreto1")
	id, ok := identity.Resolve(items)
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	// otro Store sobre el mismo almacenamiento ve la sesión
	other := NewStore(s.local, nil, Options{TTL: 30 * time.Minute})
	other.now = func() time.Time { return now.Add(10 * time.Minute) }
	require.NoError(t, other.Hydrate(ctx))
	u, err := other.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.True(t, other.LoggedInAt().Equal(*now))
}

func TestHydrate_ExpiredSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 30*time.Minute)

	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	later := NewStore(s.local, nil, Options{TTL: 30 * time.Minute})
	later.now = func() time.Time { return now.Add(31 * time.Minute) }
	require.NoError(t, later.Hydrate(ctx))

	_, err = later.RequireUser()
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, ok, _ := s.local.GetItem(ctx, identity.SessionKey)
	assert.False(t, ok, "expired blob must be removed")
	_, ok, _ = s.local.GetItem(ctx, "userId")
	assert.False(t, ok, "legacy keys must be removed")
}

func TestHydrate_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 0)
	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	later := NewStore(s.local, nil, Options{})
	later.now = func() time.Time { return now.Add(24 * 365 * time.Hour) }
	require.NoError(t, later.Hydrate(ctx))
	_, err = later.RequireUser()
	assert.NoError(t, err)
}

func TestHydrate_LegacyBareRecordGetsStamped(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 30*time.Minute)
	require.NoError(t, s.local.SetItem(ctx, identity.SessionKey, `{"id":9,"nombre":"Eva","email":"eva@x.mx","fotoPerfil":"https://img/e.png"}`))

	require.NoError(t, s.Hydrate(ctx))
	u, err := s.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, "Eva", u.Name)
	assert.Equal(t, "https://img/e.png", u.Photo)
	assert.True(t, s.LoggedInAt().Equal(*now))

	raw, _, _ := s.local.GetItem(ctx, identity.SessionKey)
	assert.Contains(t, raw, `"loggedInAt"`)
}

func TestHydrate_CorruptBlobIsCleared(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{oops", `[1]`, `{"user":{"nombre":"sin id"}}`} {
		s, _, _ := newTestStore(t, 0)
		require.NoError(t, s.local.SetItem(ctx, identity.SessionKey, raw))
		require.NoError(t, s.Hydrate(ctx))
		_, err := s.RequireUser()
		assert.ErrorIs(t, err, ErrUnauthenticated, raw)
		_, ok, _ := s.local.GetItem(ctx, identity.SessionKey)
		assert.False(t, ok, raw)
	}
}

func TestSetUser_KeepsTimestamp(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 30*time.Minute)

	assert.ErrorIs(t, s.SetUser(ctx, model.User{ID: 1}), ErrUnauthenticated)

	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(5 * time.Minute) }
	require.NoError(t, s.SetUser(ctx, model.User{ID: 1, Name: "Ana María", Email: "ana@petcare.mx"}))

	u, _ := s.RequireUser()
	assert.Equal(t, "Ana María", u.Name)
	assert.True(t, s.LoggedInAt().Equal(*now))
}

func TestTouch_SlidesWindow(t *testing.T) {
	ctx := context.Background()
	s, _, now := newTestStore(t, 30*time.Minute)
	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(20 * time.Minute) }
	require.NoError(t, s.Touch(ctx))

	s.now = func() time.Time { return now.Add(45 * time.Minute) }
	_, err = s.RequireUser()
	assert.NoError(t, err, "touch at +20m keeps the session alive at +45m")

	s.now = func() time.Time { return now.Add(51 * time.Minute) }
	_, err = s.RequireUser()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, 0)
	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	_, err = s.RequireUser()
	assert.ErrorIs(t, err, ErrUnauthenticated)

	keys, _ := s.local.Keys(ctx)
	assert.Empty(t, keys)

	_, ok := s.UserID(ctx)
	assert.False(t, ok)
}

func TestUserID_ExpiredSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	for _, sliding := range []bool{true, false} {
		s, _, now := newTestStore(t, 30*time.Minute)
		s.opts.Sliding = sliding
		_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
		require.NoError(t, err)

		s.now = func() time.Time { return now.Add(31 * time.Minute) }
		_, err = s.RequireUser()
		assert.ErrorIs(t, err, ErrUnauthenticated)

		id, ok := s.UserID(ctx)
		assert.False(t, ok, "sliding=%v", sliding)
		assert.Zero(t, id)

		keys, _ := s.local.Keys(ctx)
		assert.Empty(t, keys, "sliding=%v", sliding)
	}
}

func TestLogout_ClearsForeignIdentityKeys(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, 0)
	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)
	require.NoError(t, s.local.SetItem(ctx, "usuarioId", "33"))
	require.NoError(t, s.local.SetItem(ctx, "user", `{"id":33}`))
	require.NoError(t, s.local.SetItem(ctx, "token", "Bearer x.y.z"))

	require.NoError(t, s.Logout(ctx))

	_, ok := s.UserID(ctx)
	assert.False(t, ok)
	assert.Empty(t, s.BearerToken(ctx))
}

func TestUserID_FallsBackToResolver(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, 0)
	require.NoError(t, s.local.SetItem(ctx, "usuarioId", "33"))

	id, ok := s.UserID(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(33), id)
}

func TestLogin_DirectoryError(t *testing.T) {
	s, dir, _ := newTestStore(t, 0)
	dir.err = errors.New("backend down")
	_, err := s.Login(context.Background(), "ana@petcare.mx", "secreto1")
	assert.EqualError(t, err, "backend down")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, 0)
	_, err := s.Login(ctx, "ana@petcare.mx", "secreto1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.SetUser(ctx, model.User{ID: 1, Name: "Ana", Email: "ana@petcare.mx"})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.UserID(ctx)
		}()
	}
	wg.Wait()

	id, ok := s.UserID(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}
