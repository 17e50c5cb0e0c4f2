package backend

import (
	"context"

	"petcare-companion/internal/model"
)

// Algunos despliegues exponen el listado con otro nombre.
var userListPaths = []string{"allusers", "allusuarios", "allusuario", "usuarios"}

// ListUsers implementa session.UserDirectory.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	return list(ctx, c, "users.list", c.norm.User, userListPaths...)
}

func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	return get(ctx, c, "users.get", "user", id, c.norm.User)
}

func (c *Client) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	b := toUserBody(u)
	b.ID = 0
	return create(ctx, c, "users.create", "create-user", b, c.norm.User)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u model.User) (model.User, error) {
	b := toUserBody(u)
	b.ID = id
	return update(ctx, c, "users.update", "update-user", id, b, c.norm.User)
}

func (c *Client) UpdateUserPhoto(ctx context.Context, id int64, photo string) (model.User, error) {
	body := map[string]string{"fotoPerfil": photo}
	return update(ctx, c, "users.photo", "create-user/photo-profile", id, body, c.norm.User)
}
