// Package adoptions es la pantalla de adopciones: explorar publicaciones,
// publicar mascotas propias y gestionar solicitudes enviadas y recibidas.
package adoptions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

var (
	ErrAlreadyListed    = fmt.Errorf("%w: pet is already listed for adoption", page.ErrConflict)
	ErrAlreadyRequested = fmt.Errorf("%w: you already requested this pet", page.ErrConflict)
	ErrOwnListing       = fmt.Errorf("%w: you cannot request your own listing", page.ErrInvalidInput)
)

type Page struct {
	deps page.Deps
	busy page.Busy

	mu       sync.RWMutex
	userID   int64
	listings []model.AdoptionListing
	pets     []model.Pet
	users    []model.User
	requests []model.AdoptionRequest
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults()}
}

type View struct {
	views.AdoptionsView
	Loading bool `json:"loading"`
}

func (p *Page) Load(ctx context.Context) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	defer p.busy.Start()()

	b := p.deps.Backend
	return p.deps.FanOut(ctx,
		page.Task{Name: "listings", Message: "Could not load adoptions.", Run: func(ctx context.Context) error {
			items, err := b.ListListings(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.listings = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "pets", Message: "Could not load pets.", Run: func(ctx context.Context) error {
			items, err := b.ListPets(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.pets = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "users", Run: func(ctx context.Context) error {
			items, err := b.ListUsers(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.users = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "requests", Message: "Could not load adoption requests.", Run: func(ctx context.Context) error {
			items, err := b.ListRequests(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.requests = items
			p.mu.Unlock()
			return nil
		}},
	)
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return View{
		AdoptionsView: views.BuildAdoptions(p.listings, p.pets, p.users, p.requests, p.userID, p.deps.Placeholder),
		Loading:       p.busy.Busy(),
	}
}

// Publish publica una mascota propia como disponible. Una mascota con
// publicación vigente no se vuelve a publicar.
func (p *Page) Publish(ctx context.Context, petID int64) (model.AdoptionListing, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.AdoptionListing{}, err
	}

	p.mu.RLock()
	var owned bool
	for _, pet := range views.MyPets(p.pets, uid) {
		if pet.ID == petID {
			owned = true
		}
	}
	_, listed := views.ListingByPet(views.MyListings(p.listings, uid))[petID]
	p.mu.RUnlock()

	if petID <= 0 || !owned {
		return model.AdoptionListing{}, page.ErrNotFound
	}
	if listed {
		return model.AdoptionListing{}, ErrAlreadyListed
	}
	defer p.busy.Start()()

	sent := model.AdoptionListing{
		PetID:           petID,
		PublisherUserID: uid,
		Available:       true,
		PublishedAt:     p.deps.Now(),
	}
	l, err := p.deps.Backend.CreateListing(ctx, sent)
	if err != nil {
		return model.AdoptionListing{}, p.deps.Report("publish listing", "Could not publish the pet.", err)
	}
	l = fillListing(l, sent)

	p.mu.Lock()
	p.listings = append(p.listings, l)
	p.mu.Unlock()

	p.deps.Success("Pet published for adoption.")
	return l, nil
}

// ToggleAvailability invierte disponible y reenvía la publicación completa.
func (p *Page) ToggleAvailability(ctx context.Context, listingID int64) (model.AdoptionListing, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.AdoptionListing{}, err
	}
	l, err := p.ownListing(listingID, uid)
	if err != nil {
		return model.AdoptionListing{}, err
	}
	defer p.busy.Start()()

	l.Available = !l.Available
	updated, err := p.saveListing(ctx, l)
	if err != nil {
		return model.AdoptionListing{}, p.deps.Report("toggle availability", "Could not update the listing.", err)
	}
	return updated, nil
}

func (p *Page) DeleteListing(ctx context.Context, listingID int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	if _, err := p.ownListing(listingID, uid); err != nil {
		return err
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeleteListing(ctx, listingID); err != nil {
		return p.deps.Report("delete listing", "Could not delete the listing.", err)
	}

	p.mu.Lock()
	p.listings = page.RemoveByID(p.listings, listingID, func(x model.AdoptionListing) int64 { return x.ID })
	p.mu.Unlock()

	p.deps.Success("Listing deleted.")
	return nil
}

// Request solicita adoptar. No se permite sobre publicaciones propias ni
// si ya hay una solicitud del usuario para esa publicación.
func (p *Page) Request(ctx context.Context, listingID int64, message string) (model.AdoptionRequest, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.AdoptionRequest{}, err
	}

	p.mu.RLock()
	l, found := findListing(p.listings, listingID)
	_, requested := views.LatestRequestByListing(p.requests, uid)[listingID]
	p.mu.RUnlock()

	switch {
	case !found:
		return model.AdoptionRequest{}, page.ErrNotFound
	case l.PublisherUserID == uid:
		return model.AdoptionRequest{}, ErrOwnListing
	case requested:
		return model.AdoptionRequest{}, ErrAlreadyRequested
	case !l.Available:
		return model.AdoptionRequest{}, fmt.Errorf("%w: listing is not available", page.ErrBadState)
	}
	defer p.busy.Start()()

	sent := model.AdoptionRequest{
		ListingID:       listingID,
		RequesterUserID: uid,
		Status:          model.RequestPending,
		Message:         strings.TrimSpace(message),
		RequestedAt:     p.deps.Now(),
	}
	r, err := p.deps.Backend.CreateRequest(ctx, sent)
	if err != nil {
		return model.AdoptionRequest{}, p.deps.Report("create request", "Could not send the request.", err)
	}
	r = fillRequest(r, sent)

	p.mu.Lock()
	p.requests = append(p.requests, r)
	p.mu.Unlock()

	p.deps.Success("Adoption request sent.")
	return r, nil
}

// CancelRequest borra una solicitud propia.
func (p *Page) CancelRequest(ctx context.Context, requestID int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	p.mu.RLock()
	r, found := findRequest(p.requests, requestID)
	p.mu.RUnlock()
	if !found {
		return page.ErrNotFound
	}
	if r.RequesterUserID != uid {
		return page.ErrForbidden
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeleteRequest(ctx, requestID); err != nil {
		return p.deps.Report("cancel request", "Could not cancel the request.", err)
	}

	p.mu.Lock()
	p.requests = page.RemoveByID(p.requests, requestID, func(x model.AdoptionRequest) int64 { return x.ID })
	p.mu.Unlock()

	p.deps.Success("Request cancelled.")
	return nil
}

// Accept acepta una solicitud recibida. Solo el dueño de la publicación.
// Idempotente; una solicitud rechazada no se puede aceptar. Al aceptar,
// la publicación deja de estar disponible.
func (p *Page) Accept(ctx context.Context, requestID int64) (model.AdoptionRequest, error) {
	r, l, err := p.incoming(ctx, requestID)
	if err != nil {
		return model.AdoptionRequest{}, err
	}

	if r.Status == model.RequestAccepted {
		return r, nil
	}
	if r.Status == model.RequestRejected {
		return model.AdoptionRequest{}, fmt.Errorf("%w: request was rejected", page.ErrBadState)
	}
	defer p.busy.Start()()

	r, err = p.saveRequestStatus(ctx, r, model.RequestAccepted)
	if err != nil {
		return model.AdoptionRequest{}, p.deps.Report("accept request", "Could not accept the request.", err)
	}

	if l.Available {
		l.Available = false
		if _, err := p.saveListing(ctx, l); err != nil {
			p.deps.Report("close listing", "The request was accepted but the listing is still open.", err)
		}
	}

	p.deps.Success("Request accepted.")
	return r, nil
}

// Reject rechaza una solicitud recibida. Solo el dueño; idempotente.
func (p *Page) Reject(ctx context.Context, requestID int64) (model.AdoptionRequest, error) {
	r, _, err := p.incoming(ctx, requestID)
	if err != nil {
		return model.AdoptionRequest{}, err
	}
	if r.Status == model.RequestRejected {
		return r, nil
	}
	defer p.busy.Start()()

	r, err = p.saveRequestStatus(ctx, r, model.RequestRejected)
	if err != nil {
		return model.AdoptionRequest{}, p.deps.Report("reject request", "Could not reject the request.", err)
	}

	p.deps.Success("Request rejected.")
	return r, nil
}

// incoming resuelve la solicitud y su publicación y valida que el
// usuario sea el dueño de la publicación.
func (p *Page) incoming(ctx context.Context, requestID int64) (model.AdoptionRequest, model.AdoptionListing, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.AdoptionRequest{}, model.AdoptionListing{}, err
	}
	if requestID <= 0 {
		return model.AdoptionRequest{}, model.AdoptionListing{}, page.ErrInvalidInput
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	r, ok := findRequest(p.requests, requestID)
	if !ok {
		return model.AdoptionRequest{}, model.AdoptionListing{}, page.ErrNotFound
	}
	l, ok := findListing(p.listings, r.ListingID)
	if !ok {
		return model.AdoptionRequest{}, model.AdoptionListing{}, page.ErrNotFound
	}
	if l.PublisherUserID != uid {
		return model.AdoptionRequest{}, model.AdoptionListing{}, page.ErrForbidden
	}
	return r, l, nil
}

func (p *Page) saveRequestStatus(ctx context.Context, r model.AdoptionRequest, status model.RequestStatus) (model.AdoptionRequest, error) {
	r.Status = status
	updated, err := p.deps.Backend.UpdateRequest(ctx, r.ID, r)
	if err != nil {
		return model.AdoptionRequest{}, err
	}
	if updated.ID == 0 {
		updated = r
	}
	p.mu.Lock()
	for i := range p.requests {
		if p.requests[i].ID == r.ID {
			p.requests[i] = updated
		}
	}
	p.mu.Unlock()
	return updated, nil
}

func (p *Page) saveListing(ctx context.Context, l model.AdoptionListing) (model.AdoptionListing, error) {
	updated, err := p.deps.Backend.UpdateListing(ctx, l.ID, l)
	if err != nil {
		return model.AdoptionListing{}, err
	}
	if updated.ID == 0 {
		updated = l
	}
	p.mu.Lock()
	for i := range p.listings {
		if p.listings[i].ID == l.ID {
			p.listings[i] = updated
		}
	}
	p.mu.Unlock()
	return updated, nil
}

func (p *Page) ownListing(listingID, uid int64) (model.AdoptionListing, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	l, ok := findListing(p.listings, listingID)
	if !ok {
		return model.AdoptionListing{}, page.ErrNotFound
	}
	if l.PublisherUserID != uid {
		return model.AdoptionListing{}, page.ErrForbidden
	}
	return l, nil
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

// fillListing completa con lo enviado los campos que el backend no devolvió.
// Sin mascotaId la respuesta es mínima y disponible tampoco vino.
func fillListing(got, sent model.AdoptionListing) model.AdoptionListing {
	if got.PetID == 0 {
		got.PetID = sent.PetID
		got.Available = sent.Available
	}
	if got.PublisherUserID == 0 {
		got.PublisherUserID = sent.PublisherUserID
	}
	if got.PublishedAt.IsZero() {
		got.PublishedAt = sent.PublishedAt
	}
	return got
}

func fillRequest(got, sent model.AdoptionRequest) model.AdoptionRequest {
	if got.ListingID == 0 {
		got.ListingID = sent.ListingID
	}
	if got.RequesterUserID == 0 {
		got.RequesterUserID = sent.RequesterUserID
	}
	if got.Status == "" {
		got.Status = sent.Status
	}
	if got.Message == "" {
		got.Message = sent.Message
	}
	if got.RequestedAt.IsZero() {
		got.RequestedAt = sent.RequestedAt
	}
	return got
}

func findListing(items []model.AdoptionListing, id int64) (model.AdoptionListing, bool) {
	if id <= 0 {
		return model.AdoptionListing{}, false
	}
	for _, l := range items {
		if l.ID == id {
			return l, true
		}
	}
	return model.AdoptionListing{}, false
}

func findRequest(items []model.AdoptionRequest, id int64) (model.AdoptionRequest, bool) {
	if id <= 0 {
		return model.AdoptionRequest{}, false
	}
	for _, r := range items {
		if r.ID == id {
			return r, true
		}
	}
	return model.AdoptionRequest{}, false
}
