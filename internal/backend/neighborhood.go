package backend

import (
	"context"

	"petcare-companion/internal/model"
)

func (c *Client) ListNeighborhoods(ctx context.Context) ([]model.Neighborhood, error) {
	return list(ctx, c, "neighborhoods.list", c.norm.Neighborhood, "allcolonias")
}

func (c *Client) CreateNeighborhood(ctx context.Context, n model.Neighborhood) (model.Neighborhood, error) {
	b := neighborhoodBody{Nombre: n.Name, CodigoInvitacion: n.InvitationCode, UserID: n.OwnerUserID}
	return create(ctx, c, "neighborhoods.create", "create-colonia", b, c.norm.Neighborhood)
}

func (c *Client) ListMemberships(ctx context.Context) ([]model.Membership, error) {
	return list(ctx, c, "memberships.list", c.norm.Membership, "allusuarios-colonias")
}

func (c *Client) CreateMembership(ctx context.Context, m model.Membership) (model.Membership, error) {
	b := membershipBody{
		UsuarioID:     m.UserID,
		ColoniaID:     m.NeighborhoodID,
		FechaRegistro: optDate(m.JoinedAt, DateTimeLayout),
	}
	return create(ctx, c, "memberships.create", "create-usuarios-colonias", b, c.norm.Membership)
}

func (c *Client) DeleteMembership(ctx context.Context, id int64) error {
	return c.remove(ctx, "memberships.delete", "delete-usuarios-colonias", id)
}

func (c *Client) ListNeighborhoodPosts(ctx context.Context) ([]model.NeighborhoodPost, error) {
	return list(ctx, c, "hoodposts.list", c.norm.NeighborhoodPost, "allposts-colonia")
}

func (c *Client) CreateNeighborhoodPost(ctx context.Context, p model.NeighborhoodPost) (model.NeighborhoodPost, error) {
	b := neighborhoodPostBody{
		UsuarioID:     p.AuthorUserID,
		ColoniaID:     p.NeighborhoodID,
		Contenido:     p.Content,
		EsAlerta:      p.IsAlert,
		FechaCreacion: optDate(p.CreatedAt, DateTimeLayout),
	}
	return create(ctx, c, "hoodposts.create", "create-post-colonia", b, c.norm.NeighborhoodPost)
}

func (c *Client) DeleteNeighborhoodPost(ctx context.Context, id int64) error {
	return c.remove(ctx, "hoodposts.delete", "delete-post-colonia", id)
}

func (c *Client) ListNeighborhoodPostImages(ctx context.Context) ([]model.NeighborhoodPostImage, error) {
	return list(ctx, c, "hoodimages.list", c.norm.NeighborhoodPostImage, "allpost-colonia-images")
}

func (c *Client) CreateNeighborhoodPostImage(ctx context.Context, img model.NeighborhoodPostImage) (model.NeighborhoodPostImage, error) {
	b := neighborhoodPostImageBody{PostColoniaID: img.PostID, UsuarioID: img.AuthorUserID, ImagePath: img.URL}
	return create(ctx, c, "hoodimages.create", "create-post-colonia-images", b, c.norm.NeighborhoodPostImage)
}

func (c *Client) ListNeighborhoodLikes(ctx context.Context) ([]model.NeighborhoodLike, error) {
	return list(ctx, c, "hoodlikes.list", c.norm.NeighborhoodLike, "alllikes-colonia")
}

func (c *Client) CreateNeighborhoodLike(ctx context.Context, postID, userID int64) (model.NeighborhoodLike, error) {
	b := neighborhoodLikeBody{PostColoniaID: postID, UserID: userID}
	return create(ctx, c, "hoodlikes.create", "create-likes-colonia", b, c.norm.NeighborhoodLike)
}

func (c *Client) DeleteNeighborhoodLike(ctx context.Context, id int64) error {
	return c.remove(ctx, "hoodlikes.delete", "delete-likes-colonia", id)
}

func (c *Client) ListNeighborhoodComments(ctx context.Context) ([]model.NeighborhoodComment, error) {
	return list(ctx, c, "hoodcomments.list", c.norm.NeighborhoodComment, "allcomments-colonia")
}

func (c *Client) CreateNeighborhoodComment(ctx context.Context, cm model.NeighborhoodComment) (model.NeighborhoodComment, error) {
	b := neighborhoodCommentBody{
		PostColoniaID: cm.PostID,
		UserID:        cm.AuthorUserID,
		Contenido:     cm.Content,
		FechaCreacion: optDate(cm.CreatedAt, DateTimeLayout),
	}
	return create(ctx, c, "hoodcomments.create", "create-comment-colonia", b, c.norm.NeighborhoodComment)
}

func (c *Client) DeleteNeighborhoodComment(ctx context.Context, id int64) error {
	return c.remove(ctx, "hoodcomments.delete", "delete-comment-colonia", id)
}
