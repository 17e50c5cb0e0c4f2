package views

import (
	"time"

	"petcare-companion/internal/model"
)

type HoodComment struct {
	Comment model.NeighborhoodComment `json:"comment"`
	Author  string                    `json:"author"`
}

type HoodPost struct {
	Post         model.NeighborhoodPost `json:"post"`
	Author       string                 `json:"author"`
	Images       []string               `json:"images"`
	LikeCount    int                    `json:"likeCount"`
	CommentCount int                    `json:"commentCount"`
	LikedByMe    bool                   `json:"likedByMe"`
	Comments     []HoodComment          `json:"comments"`
}

// MyNeighborhoods son las colonias donde el usuario es dueño o miembro,
// en el orden de la colección.
func MyNeighborhoods(hoods []model.Neighborhood, memberships []model.Membership, userID int64) []model.Neighborhood {
	out := make([]model.Neighborhood, 0)
	if userID <= 0 {
		return out
	}
	ids := make(map[int64]bool)
	for _, h := range hoods {
		if h.OwnerUserID == userID {
			ids[h.ID] = true
		}
	}
	for _, m := range memberships {
		if m.UserID == userID {
			ids[m.NeighborhoodID] = true
		}
	}
	for _, h := range hoods {
		if h.ID > 0 && ids[h.ID] {
			out = append(out, h)
		}
	}
	return out
}

// ActiveNeighborhood devuelve preferred si está entre mine; si no, la
// primera; si no hay, false.
func ActiveNeighborhood(mine []model.Neighborhood, preferred int64) (model.Neighborhood, bool) {
	for _, h := range mine {
		if preferred > 0 && h.ID == preferred {
			return h, true
		}
	}
	if len(mine) > 0 {
		return mine[0], true
	}
	return model.Neighborhood{}, false
}

// IsMember: dueño o con membresía.
func IsMember(h model.Neighborhood, memberships []model.Membership, userID int64) bool {
	if userID <= 0 {
		return false
	}
	if h.OwnerUserID == userID {
		return true
	}
	for _, m := range memberships {
		if m.UserID == userID && m.NeighborhoodID == h.ID {
			return true
		}
	}
	return false
}

// NeighborhoodFeed arma el muro de una colonia: posts por id desc,
// comentarios por id asc.
func NeighborhoodFeed(
	neighborhoodID int64,
	posts []model.NeighborhoodPost,
	users []model.User,
	likes []model.NeighborhoodLike,
	comments []model.NeighborhoodComment,
	images []model.NeighborhoodPostImage,
	userID int64,
) []HoodPost {
	out := make([]HoodPost, 0)
	if userID <= 0 || neighborhoodID <= 0 {
		return out
	}
	userIdx := IndexUsers(users)

	likesByPost := make(map[int64][]model.NeighborhoodLike)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
	}
	commentsByPost := make(map[int64][]model.NeighborhoodComment)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
	}
	imagesByPost := make(map[int64][]string)
	for _, im := range images {
		imagesByPost[im.PostID] = append(imagesByPost[im.PostID], im.URL)
	}

	inHood := make([]model.NeighborhoodPost, 0)
	for _, p := range posts {
		if p.NeighborhoodID == neighborhoodID {
			inHood = append(inHood, p)
		}
	}

	for _, p := range SortByIDDesc(inHood, func(p model.NeighborhoodPost) int64 { return p.ID }) {
		pl := likesByPost[p.ID]
		pc := SortByIDAsc(commentsByPost[p.ID], func(c model.NeighborhoodComment) int64 { return c.ID })

		hp := HoodPost{
			Post:         p,
			Author:       userIdx.DisplayName(p.AuthorUserID),
			Images:       append(make([]string, 0), imagesByPost[p.ID]...),
			LikeCount:    len(pl),
			CommentCount: len(pc),
			LikedByMe:    FindHoodLike(pl, p.ID, userID) != nil,
			Comments:     make([]HoodComment, 0, len(pc)),
		}
		for _, c := range pc {
			hp.Comments = append(hp.Comments, HoodComment{Comment: c, Author: userIdx.DisplayName(c.AuthorUserID)})
		}
		out = append(out, hp)
	}
	return out
}

func FindHoodLike(likes []model.NeighborhoodLike, postID, userID int64) *model.NeighborhoodLike {
	if postID <= 0 || userID <= 0 {
		return nil
	}
	for i := range likes {
		if likes[i].PostID == postID && likes[i].UserID == userID {
			return &likes[i]
		}
	}
	return nil
}

// LatestMembership devuelve la membresía más reciente (joinedAt) del
// usuario; sin fecha cuenta como la más antigua.
func LatestMembership(memberships []model.Membership, userID int64) (model.Membership, bool) {
	mine := OwnedBy(memberships, userID, func(m model.Membership) int64 { return m.UserID })
	if len(mine) == 0 {
		return model.Membership{}, false
	}
	sorted := SortByTimeDesc(mine,
		func(m model.Membership) time.Time { return m.JoinedAt },
		func(m model.Membership) int64 { return m.ID })
	return sorted[0], true
}
