package views

import "petcare-companion/internal/model"

type ProfileStats struct {
	Pets     int `json:"pets"`
	Posts    int `json:"posts"`
	Listings int `json:"listings"`
	Requests int `json:"requests"`
}

func Stats(
	pets []model.Pet,
	posts []model.Post,
	listings []model.AdoptionListing,
	requests []model.AdoptionRequest,
	userID int64,
) ProfileStats {
	return ProfileStats{
		Pets:     len(MyPets(pets, userID)),
		Posts:    len(OwnedBy(posts, userID, func(p model.Post) int64 { return p.AuthorUserID })),
		Listings: len(MyListings(listings, userID)),
		Requests: len(MyRequests(requests, userID)),
	}
}

// ProfileNeighborhood resuelve la colonia de la membresía más reciente.
func ProfileNeighborhood(hoods []model.Neighborhood, memberships []model.Membership, userID int64) (model.Neighborhood, bool) {
	m, ok := LatestMembership(memberships, userID)
	if !ok || m.NeighborhoodID <= 0 {
		return model.Neighborhood{}, false
	}
	for _, h := range hoods {
		if h.ID == m.NeighborhoodID {
			return h, true
		}
	}
	return model.Neighborhood{}, false
}
