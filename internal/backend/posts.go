package backend

import (
	"context"

	"petcare-companion/internal/model"
)

func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	return list(ctx, c, "posts.list", c.norm.Post, "allposts")
}

func (c *Client) CreatePost(ctx context.Context, p model.Post) (model.Post, error) {
	b := toPostBody(p)
	b.ID = 0
	return create(ctx, c, "posts.create", "create-post", b, c.norm.Post)
}

func (c *Client) UpdatePost(ctx context.Context, id int64, p model.Post) (model.Post, error) {
	b := toPostBody(p)
	b.ID = id
	return update(ctx, c, "posts.update", "update-post", id, b, c.norm.Post)
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.remove(ctx, "posts.delete", "delete-post", id)
}

func (c *Client) ListPostImages(ctx context.Context) ([]model.PostImage, error) {
	return list(ctx, c, "postimages.list", c.norm.PostImage, "allpost-images")
}

func (c *Client) CreatePostImage(ctx context.Context, img model.PostImage) (model.PostImage, error) {
	b := postImageBody{PostID: img.PostID, ImagePath: img.URL, UsuarioID: img.AuthorUserID}
	return create(ctx, c, "postimages.create", "create-postimage", b, c.norm.PostImage)
}

func (c *Client) DeletePostImage(ctx context.Context, id int64) error {
	return c.remove(ctx, "postimages.delete", "delete-postimage", id)
}

func (c *Client) ListLikes(ctx context.Context) ([]model.Like, error) {
	return list(ctx, c, "likes.list", c.norm.Like, "alllikes")
}

func (c *Client) CreateLike(ctx context.Context, postID, userID int64) (model.Like, error) {
	return create(ctx, c, "likes.create", "create-like", likeBody{PostID: postID, UserID: userID}, c.norm.Like)
}

func (c *Client) DeleteLike(ctx context.Context, id int64) error {
	return c.remove(ctx, "likes.delete", "delete-likes", id)
}

func (c *Client) ListComments(ctx context.Context) ([]model.Comment, error) {
	return list(ctx, c, "comments.list", c.norm.Comment, "allcomments")
}

func (c *Client) CreateComment(ctx context.Context, cm model.Comment) (model.Comment, error) {
	b := commentBody{
		PostID:        cm.PostID,
		UserID:        cm.AuthorUserID,
		Contenido:     cm.Content,
		FechaCreacion: optDate(cm.CreatedAt, DateTimeLayout),
	}
	return create(ctx, c, "comments.create", "create-comment", b, c.norm.Comment)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.remove(ctx, "comments.delete", "delete-comment", id)
}
