package views

import (
	"time"

	"petcare-companion/internal/model"
)

// MaxPostComments es el máximo de comentarios por post en el feed.
const MaxPostComments = 50

type FeedComment struct {
	Comment model.Comment `json:"comment"`
	Author  string        `json:"author"`
}

type FeedPost struct {
	Post        model.Post    `json:"post"`
	Author      string        `json:"author"`
	AuthorPhoto string        `json:"authorPhoto,omitempty"`
	Images      []string      `json:"images"`
	LikeCount   int           `json:"likeCount"`
	LikedByMe   bool          `json:"likedByMe"`
	Comments    []FeedComment `json:"comments"`
	Mine        bool          `json:"mine"`
}

// FeedPosts arma el feed global, el post más nuevo primero.
func FeedPosts(
	posts []model.Post,
	users []model.User,
	likes []model.Like,
	comments []model.Comment,
	images []model.PostImage,
	userID int64,
) []FeedPost {
	if userID <= 0 {
		return make([]FeedPost, 0)
	}
	userIdx := IndexUsers(users)

	likesByPost := make(map[int64][]model.Like)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
	}
	commentsByPost := make(map[int64][]model.Comment)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
	}
	imagesByPost := make(map[int64][]string)
	for _, im := range images {
		imagesByPost[im.PostID] = append(imagesByPost[im.PostID], im.URL)
	}

	sorted := SortByTimeDesc(posts,
		func(p model.Post) time.Time { return p.CreatedAt },
		func(p model.Post) int64 { return p.ID })

	out := make([]FeedPost, 0, len(sorted))
	for _, p := range sorted {
		fp := FeedPost{
			Post:        p,
			Author:      userIdx.AuthorLabel(p.AuthorUserID, userID),
			AuthorPhoto: userIdx.Photo(p.AuthorUserID),
			Images:      make([]string, 0),
			Comments:    make([]FeedComment, 0),
			Mine:        userID > 0 && p.AuthorUserID == userID,
		}
		if p.ID > 0 {
			fp.Images = append(fp.Images, imagesByPost[p.ID]...)
			pl := likesByPost[p.ID]
			fp.LikeCount = len(pl)
			fp.LikedByMe = FindLike(pl, p.ID, userID) != nil

			pc := commentsByPost[p.ID]
			if len(pc) > MaxPostComments {
				pc = pc[len(pc)-MaxPostComments:]
			}
			for _, c := range pc {
				fp.Comments = append(fp.Comments, FeedComment{
					Comment: c,
					Author:  userIdx.AuthorLabel(c.AuthorUserID, userID),
				})
			}
		}
		out = append(out, fp)
	}
	return out
}

// FindLike busca el like de userID sobre postID.
func FindLike(likes []model.Like, postID, userID int64) *model.Like {
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
