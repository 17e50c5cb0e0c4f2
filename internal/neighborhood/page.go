// Package neighborhood es la red vecinal: colonias con código de invitación
// y un muro propio por colonia.
package neighborhood

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

const (
	// ActiveKey guarda en el store local la última colonia abierta.
	ActiveKey = "rv_colonia_activa"

	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 8
	codeRetries  = 10
)

var ErrUnknownCode = fmt.Errorf("%w: invitation code does not exist", page.ErrNotFound)

// NewCode genera un código de invitación sin caracteres ambiguos (0/O, 1/I).
func NewCode() string {
	var b strings.Builder
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(CodeAlphabet[rand.Intn(len(CodeAlphabet))])
	}
	return b.String()
}

type Page struct {
	deps    page.Deps
	busy    page.Busy
	newCode func() string

	mu          sync.RWMutex
	userID      int64
	activeID    int64
	hoods       []model.Neighborhood
	memberships []model.Membership
	users       []model.User
	posts       []model.NeighborhoodPost
	likes       []model.NeighborhoodLike
	comments    []model.NeighborhoodComment
	images      []model.NeighborhoodPostImage
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults(), newCode: NewCode}
}

// WithCodeGenerator reemplaza el generador de códigos.
func (p *Page) WithCodeGenerator(fn func() string) *Page {
	p.newCode = fn
	return p
}

type View struct {
	Loading bool                 `json:"loading"`
	Mine    []model.Neighborhood `json:"mine"`
	Active  *model.Neighborhood  `json:"active,omitempty"`
	Posts   []views.HoodPost     `json:"posts"`
}

func (p *Page) Load(ctx context.Context) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	defer p.busy.Start()()

	p.restoreActive(ctx)

	b := p.deps.Backend
	err := p.deps.FanOut(ctx,
		page.Task{Name: "neighborhoods", Message: "Could not load neighborhoods.", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoods(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.hoods = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "memberships", Run: func(ctx context.Context) error {
			items, err := b.ListMemberships(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.memberships = items
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
		page.Task{Name: "neighborhood posts", Message: "Could not load the neighborhood wall.", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoodPosts(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.posts = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "neighborhood likes", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoodLikes(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.likes = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "neighborhood comments", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoodComments(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.comments = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "neighborhood images", Run: func(ctx context.Context) error {
			items, err := b.ListNeighborhoodPostImages(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.images = items
			p.mu.Unlock()
			return nil
		}},
	)

	// la preferida puede no ser mía ya; se cae a la primera
	p.mu.RLock()
	active, ok := views.ActiveNeighborhood(views.MyNeighborhoods(p.hoods, p.memberships, p.userID), p.activeID)
	prev := p.activeID
	p.mu.RUnlock()
	if ok && active.ID != prev {
		p.persistActive(ctx, active.ID)
	}
	return err
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	mine := views.MyNeighborhoods(p.hoods, p.memberships, p.userID)
	v := View{Loading: p.busy.Busy(), Mine: mine, Posts: make([]views.HoodPost, 0)}
	if active, ok := views.ActiveNeighborhood(mine, p.activeID); ok {
		v.Active = &active
		v.Posts = views.NeighborhoodFeed(active.ID, p.posts, p.users, p.likes, p.comments, p.images, p.userID)
	}
	return v
}

// SetActive cambia la colonia visible; solo colonias propias o unidas.
func (p *Page) SetActive(ctx context.Context, id int64) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	if _, ok := p.mine(id); !ok {
		return page.ErrNotFound
	}
	p.persistActive(ctx, id)
	return nil
}

type CreateInput struct {
	Name string
	// Code es opcional; vacío genera uno.
	Code string
}

// Create da de alta la colonia con un código único y registra la membresía
// del creador. Si la membresía falla la colonia queda creada igual.
func (p *Page) Create(ctx context.Context, in CreateInput) (model.Neighborhood, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Neighborhood{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Neighborhood{}, fmt.Errorf("%w: name is required", page.ErrInvalidInput)
	}
	code := p.uniqueCode(strings.ToUpper(strings.TrimSpace(in.Code)))
	defer p.busy.Start()()

	h, err := p.deps.Backend.CreateNeighborhood(ctx, model.Neighborhood{
		Name:           name,
		InvitationCode: code,
		OwnerUserID:    uid,
	})
	if err != nil {
		return model.Neighborhood{}, p.deps.Report("create neighborhood", "Could not create the neighborhood.", err)
	}
	if h.OwnerUserID == 0 {
		h.OwnerUserID = uid
	}
	if h.InvitationCode == "" {
		h.InvitationCode = code
	}

	p.mu.Lock()
	p.hoods = append(p.hoods, h)
	member := isMemberLocked(p.memberships, uid, h.ID)
	p.mu.Unlock()

	if !member && h.ID > 0 {
		if _, err := p.join(ctx, uid, h.ID); err != nil {
			p.deps.Report("create membership", "Could not register your membership.", err)
		}
	}
	if h.ID > 0 {
		p.persistActive(ctx, h.ID)
	}

	p.deps.Success("Neighborhood created.")
	return h, nil
}

// Join busca la colonia por código sin distinguir mayúsculas. Si ya es
// dueño o miembro solo la activa.
func (p *Page) Join(ctx context.Context, code string) (model.Neighborhood, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Neighborhood{}, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.Neighborhood{}, fmt.Errorf("%w: invitation code is required", page.ErrInvalidInput)
	}

	p.mu.RLock()
	var found *model.Neighborhood
	for i := range p.hoods {
		if strings.ToUpper(p.hoods[i].InvitationCode) == code {
			h := p.hoods[i]
			found = &h
			break
		}
	}
	already := found != nil && views.IsMember(*found, p.memberships, uid)
	p.mu.RUnlock()

	if found == nil {
		return model.Neighborhood{}, ErrUnknownCode
	}
	if already {
		p.persistActive(ctx, found.ID)
		p.deps.Success("You are already in this neighborhood.")
		return *found, nil
	}
	defer p.busy.Start()()

	if _, err := p.join(ctx, uid, found.ID); err != nil {
		return model.Neighborhood{}, p.deps.Report("join neighborhood", "Could not join the neighborhood.", err)
	}
	p.persistActive(ctx, found.ID)
	p.deps.Success("You joined the neighborhood.")
	return *found, nil
}

type PostInput struct {
	Content string
	Alert   bool
	Images  []string
}

// Post publica en la colonia activa.
func (p *Page) Post(ctx context.Context, in PostInput) (model.NeighborhoodPost, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.NeighborhoodPost{}, err
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.NeighborhoodPost{}, fmt.Errorf("%w: content is required", page.ErrInvalidInput)
	}
	p.mu.RLock()
	active, ok := views.ActiveNeighborhood(views.MyNeighborhoods(p.hoods, p.memberships, uid), p.activeID)
	p.mu.RUnlock()
	if !ok {
		return model.NeighborhoodPost{}, fmt.Errorf("%w: select a neighborhood first", page.ErrInvalidInput)
	}
	defer p.busy.Start()()

	post, err := p.deps.Backend.CreateNeighborhoodPost(ctx, model.NeighborhoodPost{
		AuthorUserID:   uid,
		NeighborhoodID: active.ID,
		Content:        content,
		IsAlert:        in.Alert,
		CreatedAt:      p.deps.Now(),
	})
	if err != nil {
		return model.NeighborhoodPost{}, p.deps.Report("create neighborhood post", "Could not publish the post.", err)
	}
	if post.NeighborhoodID == 0 {
		post.NeighborhoodID = active.ID
	}
	if post.AuthorUserID == 0 {
		post.AuthorUserID = uid
	}

	var added []model.NeighborhoodPostImage
	if post.ID > 0 {
		for _, raw := range in.Images {
			u := strings.TrimSpace(raw)
			if u == "" {
				continue
			}
			img, err := p.deps.Backend.CreateNeighborhoodPostImage(ctx, model.NeighborhoodPostImage{PostID: post.ID, AuthorUserID: uid, URL: u})
			if err != nil {
				p.deps.Report("create neighborhood image", "Could not attach an image.", err)
				continue
			}
			added = append(added, img)
		}
	}

	p.mu.Lock()
	p.posts = append(p.posts, post)
	p.images = append(p.images, added...)
	p.mu.Unlock()

	if in.Alert {
		p.deps.Success("Alert published.")
	} else {
		p.deps.Success("Post published.")
	}
	return post, nil
}

// DeletePost solo sobre posts propios.
func (p *Page) DeletePost(ctx context.Context, postID int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	post, ok := p.findPost(postID)
	if !ok {
		return page.ErrNotFound
	}
	if post.AuthorUserID != uid {
		return page.ErrForbidden
	}
	if err := p.deps.Backend.DeleteNeighborhoodPost(ctx, postID); err != nil {
		return p.deps.Report("delete neighborhood post", "Could not delete the post.", err)
	}
	p.mu.Lock()
	p.posts = page.RemoveByID(p.posts, postID, func(x model.NeighborhoodPost) int64 { return x.ID })
	p.mu.Unlock()
	return nil
}

func (p *Page) ToggleLike(ctx context.Context, postID int64) (bool, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := p.findPost(postID); !ok {
		return false, page.ErrNotFound
	}

	p.mu.RLock()
	var likeID int64
	if l := views.FindHoodLike(p.likes, postID, uid); l != nil {
		likeID = l.ID
	}
	p.mu.RUnlock()

	if likeID > 0 {
		if err := p.deps.Backend.DeleteNeighborhoodLike(ctx, likeID); err != nil {
			return true, p.deps.Report("unlike", "Could not remove the like.", err)
		}
		p.mu.Lock()
		p.likes = page.RemoveByID(p.likes, likeID, func(x model.NeighborhoodLike) int64 { return x.ID })
		p.mu.Unlock()
		return false, nil
	}

	like, err := p.deps.Backend.CreateNeighborhoodLike(ctx, postID, uid)
	if err != nil {
		return false, p.deps.Report("like", "Could not like the post.", err)
	}
	if like.PostID == 0 {
		like.PostID = postID
	}
	if like.UserID == 0 {
		like.UserID = uid
	}
	p.mu.Lock()
	p.likes = append(p.likes, like)
	p.mu.Unlock()
	return true, nil
}

func (p *Page) AddComment(ctx context.Context, postID int64, text string) (model.NeighborhoodComment, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.NeighborhoodComment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.NeighborhoodComment{}, fmt.Errorf("%w: comment is required", page.ErrInvalidInput)
	}
	if _, ok := p.findPost(postID); !ok {
		return model.NeighborhoodComment{}, page.ErrNotFound
	}

	c, err := p.deps.Backend.CreateNeighborhoodComment(ctx, model.NeighborhoodComment{
		PostID:       postID,
		AuthorUserID: uid,
		Content:      text,
		CreatedAt:    p.deps.Now(),
	})
	if err != nil {
		return model.NeighborhoodComment{}, p.deps.Report("comment", "Could not post the comment.", err)
	}
	p.mu.Lock()
	p.comments = append(p.comments, c)
	p.mu.Unlock()
	return c, nil
}

func (p *Page) join(ctx context.Context, uid, hoodID int64) (model.Membership, error) {
	m, err := p.deps.Backend.CreateMembership(ctx, model.Membership{
		UserID:         uid,
		NeighborhoodID: hoodID,
		JoinedAt:       p.deps.Now(),
	})
	if err != nil {
		return model.Membership{}, err
	}
	if m.UserID == 0 {
		m.UserID = uid
	}
	if m.NeighborhoodID == 0 {
		m.NeighborhoodID = hoodID
	}
	p.mu.Lock()
	p.memberships = append(p.memberships, m)
	p.mu.Unlock()
	return m, nil
}

// uniqueCode parte del código pedido (o uno nuevo) y regenera mientras
// choque con uno existente, hasta codeRetries veces.
func (p *Page) uniqueCode(code string) string {
	if code == "" {
		code = p.newCode()
	}
	p.mu.RLock()
	used := make(map[string]bool, len(p.hoods))
	for _, h := range p.hoods {
		used[strings.ToUpper(h.InvitationCode)] = true
	}
	p.mu.RUnlock()

	for i := 0; used[code] && i < codeRetries; i++ {
		code = p.newCode()
	}
	return code
}

func (p *Page) restoreActive(ctx context.Context) {
	p.mu.RLock()
	set := p.activeID > 0
	p.mu.RUnlock()
	if set {
		return
	}
	raw, ok, err := p.deps.Store.GetItem(ctx, ActiveKey)
	if err != nil || !ok {
		return
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
		p.mu.Lock()
		p.activeID = id
		p.mu.Unlock()
	}
}

func (p *Page) persistActive(ctx context.Context, id int64) {
	p.mu.Lock()
	p.activeID = id
	p.mu.Unlock()
	if err := p.deps.Store.SetItem(ctx, ActiveKey, strconv.FormatInt(id, 10)); err != nil {
		p.deps.Log.Warn("persist active neighborhood", map[string]any{"error": err.Error()})
	}
}

func (p *Page) mine(id int64) (model.Neighborhood, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, h := range views.MyNeighborhoods(p.hoods, p.memberships, p.userID) {
		if h.ID == id {
			return h, true
		}
	}
	return model.Neighborhood{}, false
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

func (p *Page) findPost(id int64) (model.NeighborhoodPost, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if id <= 0 {
		return model.NeighborhoodPost{}, false
	}
	for _, x := range p.posts {
		if x.ID == id {
			return x, true
		}
	}
	return model.NeighborhoodPost{}, false
}

func isMemberLocked(ms []model.Membership, uid, hoodID int64) bool {
	for _, m := range ms {
		if m.UserID == uid && m.NeighborhoodID == hoodID {
			return true
		}
	}
	return false
}
