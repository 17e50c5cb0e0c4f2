package backend

import (
	"context"

	"petcare-companion/internal/model"
)

func (c *Client) ListListings(ctx context.Context) ([]model.AdoptionListing, error) {
	return list(ctx, c, "listings.list", c.norm.AdoptionListing, "alladopciones")
}

func (c *Client) CreateListing(ctx context.Context, l model.AdoptionListing) (model.AdoptionListing, error) {
	b := toListingBody(l)
	b.ID = 0
	return create(ctx, c, "listings.create", "create-adopcion", b, c.norm.AdoptionListing)
}

func (c *Client) UpdateListing(ctx context.Context, id int64, l model.AdoptionListing) (model.AdoptionListing, error) {
	b := toListingBody(l)
	b.ID = id
	return update(ctx, c, "listings.update", "update-adopcion", id, b, c.norm.AdoptionListing)
}

func (c *Client) DeleteListing(ctx context.Context, id int64) error {
	return c.remove(ctx, "listings.delete", "delete-adopcion", id)
}

func (c *Client) ListRequests(ctx context.Context) ([]model.AdoptionRequest, error) {
	return list(ctx, c, "requests.list", c.norm.AdoptionRequest, "allsolicitudes-adopcion")
}

func (c *Client) CreateRequest(ctx context.Context, r model.AdoptionRequest) (model.AdoptionRequest, error) {
	b := toRequestBody(r)
	b.ID = 0
	return create(ctx, c, "requests.create", "create-solicitud-adopcion", b, c.norm.AdoptionRequest)
}

func (c *Client) UpdateRequest(ctx context.Context, id int64, r model.AdoptionRequest) (model.AdoptionRequest, error) {
	b := toRequestBody(r)
	b.ID = id
	return update(ctx, c, "requests.update", "update-solicitud-adopcion", id, b, c.norm.AdoptionRequest)
}

func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.remove(ctx, "requests.delete", "delete-solicitud-adopcion", id)
}
