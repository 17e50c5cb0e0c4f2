package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/dashboard"
	"petcare-companion/internal/page"
	"petcare-companion/internal/page/pagetest"
)

func seedFeed(env *pagetest.Env) {
	env.Server.Seed(backendtest.Posts,
		map[string]any{"id": 1, "usuarioId": 2, "contenido": "hola", "createdAt": "2025-03-01T10:00:00Z"},
		map[string]any{"id": 2, "usuarioId": 1, "contenido": "mío", "createdAt": "2025-03-02T10:00:00Z"},
	)
	env.Server.Seed(backendtest.Likes,
		map[string]any{"id": 5, "postId": 1, "userId": 1},
	)
	env.Server.Seed(backendtest.Comments,
		map[string]any{"id": 7, "postId": 1, "userId": 2, "contenido": "primero"},
	)
}

func TestLoad_FeedNewestFirst(t *testing.T) {
	env := pagetest.New(t, true)
	seedFeed(env)

	pg := dashboard.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	v := pg.View()
	require.Len(t, v.Posts, 2)
	assert.Equal(t, int64(2), v.Posts[0].Post.ID)
	assert.Equal(t, "You", v.Posts[0].Author)
	assert.Equal(t, "Beto", v.Posts[1].Author)
	assert.True(t, v.Posts[1].LikedByMe)
	require.Len(t, v.Posts[1].Comments, 1)
}

func TestExtraImageURLs(t *testing.T) {
	raw := "a\n\n  b  \nc\nd\ne\nf\ng\n"
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, dashboard.ExtraImageURLs(raw))
	assert.Empty(t, dashboard.ExtraImageURLs("  \n "))
}

func TestCreatePost_ValidatesAndAttachesImages(t *testing.T) {
	env := pagetest.New(t, true)
	pg := dashboard.New(env.Deps)

	_, err := pg.CreatePost(context.Background(), dashboard.PostInput{Content: " a "})
	require.ErrorIs(t, err, page.ErrInvalidInput)
	assert.Empty(t, env.Server.Records(backendtest.Posts))

	post, err := pg.CreatePost(context.Background(), dashboard.PostInput{
		Content:     "Paseo en el parque",
		ExtraImages: "https://x/1.png\nhttps://x/2.png",
	})
	require.NoError(t, err)
	assert.Positive(t, post.ID)

	imgs := env.Server.Records(backendtest.PostImages)
	require.Len(t, imgs, 2)
	assert.Equal(t, "https://x/1.png", imgs[0]["imagePath"])

	v := pg.View()
	require.Len(t, v.Posts, 1)
	assert.Equal(t, []string{"https://x/1.png", "https://x/2.png"}, v.Posts[0].Images)
}

func TestToggleLike_CreatesThenRemoves(t *testing.T) {
	env := pagetest.New(t, true)
	seedFeed(env)
	pg := dashboard.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	liked, err := pg.ToggleLike(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Len(t, env.Server.Records(backendtest.Likes), 2)

	liked, err = pg.ToggleLike(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Len(t, env.Server.Records(backendtest.Likes), 1)

	// el like sembrado sobre el post 1 se quita
	liked, err = pg.ToggleLike(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, env.Server.Records(backendtest.Likes))
}

func TestDeletePost_OnlyOwn(t *testing.T) {
	env := pagetest.New(t, true)
	seedFeed(env)
	pg := dashboard.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	require.ErrorIs(t, pg.DeletePost(context.Background(), 1), page.ErrForbidden)
	require.ErrorIs(t, pg.DeletePost(context.Background(), 99), page.ErrNotFound)
	require.NoError(t, pg.DeletePost(context.Background(), 2))
	assert.Len(t, pg.View().Posts, 1)
}

func TestAddComment(t *testing.T) {
	env := pagetest.New(t, true)
	seedFeed(env)
	pg := dashboard.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))

	_, err := pg.AddComment(context.Background(), 1, "  ")
	require.ErrorIs(t, err, page.ErrInvalidInput)

	_, err = pg.AddComment(context.Background(), 1, "qué lindo")
	require.NoError(t, err)

	post := pg.View().Posts[1]
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "You", post.Comments[1].Author)
}

func TestCreatePost_BackendErrorLeavesFeed(t *testing.T) {
	env := pagetest.New(t, true)
	seedFeed(env)
	pg := dashboard.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))
	env.Server.Fail("create-post", http.StatusBadRequest, `{"message":"Contenido vacío"}`)

	_, err := pg.CreatePost(context.Background(), dashboard.PostInput{Content: "hola hola"})
	require.Error(t, err)
	assert.Len(t, pg.View().Posts, 2)
	assert.Equal(t, "Contenido vacío", env.Queue.Active()[0].Message)
}

func TestHandlers_Unauthorized(t *testing.T) {
	env := pagetest.New(t, false)
	r := chi.NewRouter()
	dashboard.RegisterRoutes(r, dashboard.New(env.Deps))
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/feed")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/feed/posts", "application/json", strings.NewReader(`{"content":"hola"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
