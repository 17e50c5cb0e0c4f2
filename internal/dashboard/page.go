// Package dashboard es el feed global: publicaciones, likes y comentarios.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

const (
	MinContentLen  = 2
	MaxExtraImages = 6
)

type Page struct {
	deps page.Deps
	busy page.Busy

	mu       sync.RWMutex
	userID   int64
	posts    []model.Post
	users    []model.User
	likes    []model.Like
	comments []model.Comment
	images   []model.PostImage
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults()}
}

type View struct {
	Loading bool             `json:"loading"`
	Posts   []views.FeedPost `json:"posts"`
}

func (p *Page) Load(ctx context.Context) error {
	if _, err := p.guard(ctx); err != nil {
		return err
	}
	defer p.busy.Start()()

	b := p.deps.Backend
	return p.deps.FanOut(ctx,
		page.Task{Name: "posts", Message: "Could not load the feed.", Run: func(ctx context.Context) error {
			items, err := b.ListPosts(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.posts = items
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
		page.Task{Name: "likes", Run: func(ctx context.Context) error {
			items, err := b.ListLikes(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.likes = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "comments", Message: "Could not load comments.", Run: func(ctx context.Context) error {
			items, err := b.ListComments(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.comments = items
			p.mu.Unlock()
			return nil
		}},
		page.Task{Name: "post images", Run: func(ctx context.Context) error {
			items, err := b.ListPostImages(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.images = items
			p.mu.Unlock()
			return nil
		}},
	)
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return View{
		Loading: p.busy.Busy(),
		Posts:   views.FeedPosts(p.posts, p.users, p.likes, p.comments, p.images, p.userID),
	}
}

type PostInput struct {
	Content string
	Image   string
	// ExtraImages: una URL por línea; se toman las primeras MaxExtraImages.
	ExtraImages string
}

// ExtraImageURLs separa por línea, descarta vacías y corta en MaxExtraImages.
func ExtraImageURLs(raw string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if u := strings.TrimSpace(line); u != "" {
			out = append(out, u)
		}
		if len(out) == MaxExtraImages {
			break
		}
	}
	return out
}

// CreatePost publica y luego sube las imágenes extra. Si una imagen falla
// el post queda creado y se avisa.
func (p *Page) CreatePost(ctx context.Context, in PostInput) (model.Post, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Post{}, err
	}
	content := strings.TrimSpace(in.Content)
	if utf8.RuneCountInString(content) < MinContentLen {
		return model.Post{}, fmt.Errorf("%w: content must have at least %d characters", page.ErrInvalidInput, MinContentLen)
	}
	defer p.busy.Start()()

	post, err := p.deps.Backend.CreatePost(ctx, model.Post{
		AuthorUserID: uid,
		Content:      content,
		Image:        strings.TrimSpace(in.Image),
		CreatedAt:    p.deps.Now(),
	})
	if err != nil {
		return model.Post{}, p.deps.Report("create post", "Could not publish the post.", err)
	}
	if post.AuthorUserID == 0 {
		post.AuthorUserID = uid
	}

	var added []model.PostImage
	if post.ID > 0 {
		for _, u := range ExtraImageURLs(in.ExtraImages) {
			img, err := p.deps.Backend.CreatePostImage(ctx, model.PostImage{PostID: post.ID, AuthorUserID: uid, URL: u})
			if err != nil {
				p.deps.Report("create post image", "Could not attach an image.", err)
				continue
			}
			added = append(added, img)
		}
	}

	p.mu.Lock()
	p.posts = append(p.posts, post)
	p.images = append(p.images, added...)
	p.mu.Unlock()

	p.deps.Success("Post published.")
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
	defer p.busy.Start()()

	if err := p.deps.Backend.DeletePost(ctx, postID); err != nil {
		return p.deps.Report("delete post", "Could not delete the post.", err)
	}

	p.mu.Lock()
	p.posts = page.RemoveByID(p.posts, postID, func(x model.Post) int64 { return x.ID })
	p.mu.Unlock()

	p.deps.Success("Post deleted.")
	return nil
}

// ToggleLike quita el like del usuario si existe; si no, lo crea.
// Devuelve si quedó likeado.
func (p *Page) ToggleLike(ctx context.Context, postID int64) (bool, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := p.findPost(postID); !ok {
		return false, page.ErrNotFound
	}

	p.mu.RLock()
	existing := views.FindLike(p.likes, postID, uid)
	var likeID int64
	if existing != nil {
		likeID = existing.ID
	}
	p.mu.RUnlock()

	if likeID > 0 {
		if err := p.deps.Backend.DeleteLike(ctx, likeID); err != nil {
			return true, p.deps.Report("unlike", "Could not remove the like.", err)
		}
		p.mu.Lock()
		p.likes = page.RemoveByID(p.likes, likeID, func(x model.Like) int64 { return x.ID })
		p.mu.Unlock()
		return false, nil
	}

	like, err := p.deps.Backend.CreateLike(ctx, postID, uid)
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

func (p *Page) AddComment(ctx context.Context, postID int64, text string) (model.Comment, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, fmt.Errorf("%w: comment is required", page.ErrInvalidInput)
	}
	if _, ok := p.findPost(postID); !ok {
		return model.Comment{}, page.ErrNotFound
	}

	c, err := p.deps.Backend.CreateComment(ctx, model.Comment{
		PostID:       postID,
		AuthorUserID: uid,
		Content:      text,
		CreatedAt:    p.deps.Now(),
	})
	if err != nil {
		return model.Comment{}, p.deps.Report("comment", "Could not post the comment.", err)
	}

	p.mu.Lock()
	p.comments = append(p.comments, c)
	p.mu.Unlock()
	return c, nil
}

func (p *Page) DeleteComment(ctx context.Context, commentID int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	p.mu.RLock()
	var found *model.Comment
	for i := range p.comments {
		if p.comments[i].ID == commentID {
			c := p.comments[i]
			found = &c
		}
	}
	p.mu.RUnlock()
	if found == nil {
		return page.ErrNotFound
	}
	if found.AuthorUserID != uid {
		return page.ErrForbidden
	}

	if err := p.deps.Backend.DeleteComment(ctx, commentID); err != nil {
		return p.deps.Report("delete comment", "Could not delete the comment.", err)
	}
	p.mu.Lock()
	p.comments = page.RemoveByID(p.comments, commentID, func(x model.Comment) int64 { return x.ID })
	p.mu.Unlock()
	return nil
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

func (p *Page) findPost(id int64) (model.Post, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if id <= 0 {
		return model.Post{}, false
	}
	for _, x := range p.posts {
		if x.ID == id {
			return x, true
		}
	}
	return model.Post{}, false
}
