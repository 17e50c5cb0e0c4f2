// Package profile es la pantalla de perfil: datos del usuario, contadores
// y colonia actual.
package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

type Page struct {
	deps page.Deps
	busy page.Busy

	mu          sync.RWMutex
	userID      int64
	user        model.User
	loaded      bool
	hoods       []model.Neighborhood
	memberships []model.Membership
	pets        []model.Pet
	posts       []model.Post
	listings    []model.AdoptionListing
	requests    []model.AdoptionRequest
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults()}
}

type View struct {
	Loading      bool                `json:"loading"`
	User         model.User          `json:"user"`
	Stats        views.ProfileStats  `json:"stats"`
	Neighborhood *model.Neighborhood `json:"neighborhood,omitempty"`
}

// Load trae el usuario por id (con password, para poder reenviarlo al
// guardar) y las colecciones de los contadores.
func (p *Page) Load(ctx context.Context) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	defer p.busy.Start()()

	b := p.deps.Backend
	tasks := append([]page.Task{
		{Name: "user", Message: "Could not load your profile.", Run: func(ctx context.Context) error {
			u, err := b.GetUser(ctx, uid)
			if err != nil {
				return err
			}
			if u.ID == 0 {
				u.ID = uid
			}
			p.mu.Lock()
			p.user = u
			p.loaded = true
			p.mu.Unlock()
			return nil
		}},
		{Name: "pets", Run: func(ctx context.Context) error {
			items, err := b.ListPets(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.pets = items
			p.mu.Unlock()
			return nil
		}},
		{Name: "posts", Run: func(ctx context.Context) error {
			items, err := b.ListPosts(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.posts = items
			p.mu.Unlock()
			return nil
		}},
		{Name: "listings", Run: func(ctx context.Context) error {
			items, err := b.ListListings(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.listings = items
			p.mu.Unlock()
			return nil
		}},
		{Name: "requests", Run: func(ctx context.Context) error {
			items, err := b.ListRequests(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.requests = items
			p.mu.Unlock()
			return nil
		}},
	}, p.neighborhoodTasks()...)
	return p.deps.FanOut(ctx, tasks...)
}

func (p *Page) neighborhoodTasks() []page.Task {
	b := p.deps.Backend
	return []page.Task{
		{Name: "memberships", Run: func(ctx context.Context) error {
			items, err := b.ListMemberships(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.memberships = items
			p.mu.Unlock()
			return nil
		}},
		{Name: "neighborhoods", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoods(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.hoods = items
			p.mu.Unlock()
			return nil
		}},
	}
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u := p.user
	u.Password = ""
	v := View{
		Loading: p.busy.Busy(),
		User:    u,
		Stats:   views.Stats(p.pets, p.posts, p.listings, p.requests, p.userID),
	}
	if h, ok := views.ProfileNeighborhood(p.hoods, p.memberships, p.userID); ok {
		v.Neighborhood = &h
	}
	return v
}

type ProfileInput struct {
	Name       string
	Email      string
	Phone      string
	NationalID string
}

// Save actualiza los datos personales. El backend reemplaza el registro
// completo, así que se reenvía el password cargado en Load.
func (p *Page) Save(ctx context.Context, in ProfileInput) (model.User, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.User{}, err
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return model.User{}, fmt.Errorf("%w: name is required", page.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return model.User{}, fmt.Errorf("%w: email looks invalid", page.ErrInvalidInput)
	}

	p.mu.RLock()
	current, loaded := p.user, p.loaded
	p.mu.RUnlock()
	if !loaded || current.Password == "" {
		return model.User{}, fmt.Errorf("%w: password could not be preserved, reload the profile", page.ErrBadState)
	}
	defer p.busy.Start()()

	next := current
	next.ID = uid
	next.Name = name
	next.Email = email
	next.Phone = strings.TrimSpace(in.Phone)
	next.NationalID = strings.TrimSpace(in.NationalID)

	updated, err := p.deps.Backend.UpdateUser(ctx, uid, next)
	if err != nil {
		return model.User{}, p.deps.Report("save profile", "Could not save your profile.", err)
	}
	merged := mergeUser(next, updated)

	p.mu.Lock()
	p.user = merged
	p.mu.Unlock()
	p.syncSession(ctx, merged)

	// la colonia puede haber cambiado desde otra pantalla
	_ = p.deps.FanOut(ctx, p.neighborhoodTasks()...)

	p.deps.Success("Profile saved.")
	return withoutPassword(merged), nil
}

// SavePhoto cambia la foto de perfil por URL.
func (p *Page) SavePhoto(ctx context.Context, url string) (model.User, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.User{}, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return model.User{}, fmt.Errorf("%w: photo url is required", page.ErrInvalidInput)
	}
	defer p.busy.Start()()

	updated, err := p.deps.Backend.UpdateUserPhoto(ctx, uid, url)
	if err != nil {
		return model.User{}, p.deps.Report("save photo", "Could not save the photo.", err)
	}

	p.mu.Lock()
	if updated.Photo != "" {
		p.user.Photo = updated.Photo
	} else {
		p.user.Photo = url
	}
	if p.user.ID == 0 {
		p.user.ID = uid
	}
	u := p.user
	p.mu.Unlock()
	p.syncSession(ctx, u)

	p.deps.Success("Photo updated.")
	return withoutPassword(u), nil
}

func (p *Page) syncSession(ctx context.Context, u model.User) {
	if p.deps.Session == nil {
		return
	}
	if err := p.deps.Session.SetUser(ctx, withoutPassword(u)); err != nil {
		p.deps.Log.Warn("sync session user", map[string]any{"error": err.Error()})
	}
}

// mergeUser pisa base con los campos no vacíos de la respuesta.
func mergeUser(base, resp model.User) model.User {
	out := base
	if resp.Name != "" {
		out.Name = resp.Name
	}
	if resp.Email != "" {
		out.Email = resp.Email
	}
	if resp.Password != "" {
		out.Password = resp.Password
	}
	if resp.Phone != "" {
		out.Phone = resp.Phone
	}
	if resp.NationalID != "" {
		out.NationalID = resp.NationalID
	}
	if resp.Photo != "" {
		out.Photo = resp.Photo
	}
	return out
}

func withoutPassword(u model.User) model.User {
	u.Password = ""
	return u
}

func (p *Page) guard(ctx context.Context) (int64, error) {
	uid, err := p.deps.Guard(ctx)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	p.userID = uid
	p.mu.Unlock()
	return uid, nil
}
