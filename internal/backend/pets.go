package backend

import (
	"context"

	"petcare-companion/internal/model"
)

var petListPaths = []string{"allmascotas", "allmascota"}

func (c *Client) ListPets(ctx context.Context) ([]model.Pet, error) {
	return list(ctx, c, "pets.list", c.norm.Pet, petListPaths...)
}

func (c *Client) CreatePet(ctx context.Context, p model.Pet) (model.Pet, error) {
	b := toPetBody(p)
	b.ID = 0
	return create(ctx, c, "pets.create", "create-mascota", b, c.norm.Pet)
}

func (c *Client) UpdatePet(ctx context.Context, id int64, p model.Pet) (model.Pet, error) {
	b := toPetBody(p)
	b.ID = id
	return update(ctx, c, "pets.update", "update-mascota", id, b, c.norm.Pet)
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.remove(ctx, "pets.delete", "delete-mascota", id)
}

func (c *Client) ListPetImages(ctx context.Context) ([]model.PetImage, error) {
	return list(ctx, c, "petimages.list", c.norm.PetImage, "allimagenesmascotas")
}

func (c *Client) CreatePetImage(ctx context.Context, petID int64, url string) (model.PetImage, error) {
	return create(ctx, c, "petimages.create", "create-imagen-mascota", petImageBody{MascotaID: petID, Ruta: url}, c.norm.PetImage)
}

func (c *Client) DeletePetImage(ctx context.Context, id int64) error {
	return c.remove(ctx, "petimages.delete", "delete-imagen-mascota", id)
}

func (c *Client) ListTreatments(ctx context.Context) ([]model.Treatment, error) {
	return list(ctx, c, "treatments.list", c.norm.Treatment, "alltratamientos")
}

func (c *Client) CreateTreatment(ctx context.Context, t model.Treatment) (model.Treatment, error) {
	return create(ctx, c, "treatments.create", "create-tratamiento", toTreatmentBody(t), c.norm.Treatment)
}

func (c *Client) DeleteTreatment(ctx context.Context, id int64) error {
	return c.remove(ctx, "treatments.delete", "delete-tratamiento", id)
}

func (c *Client) ListGPS(ctx context.Context) ([]model.GPSPoint, error) {
	return list(ctx, c, "gps.list", c.norm.GPSPoint, "allrastreogps")
}

func (c *Client) CreateGPS(ctx context.Context, p model.GPSPoint) (model.GPSPoint, error) {
	b := gpsBody{
		MascotaID: p.PetID,
		Latitud:   p.Latitude,
		Longitud:  p.Longitude,
		Timestamp: optDate(p.Timestamp, DateTimeLayout),
	}
	return create(ctx, c, "gps.create", "create-rastreo-gps", b, c.norm.GPSPoint)
}

func (c *Client) DeleteGPS(ctx context.Context, id int64) error {
	return c.remove(ctx, "gps.delete", "delete-rastreo-gps", id)
}
