package views

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 12, 0, 0, 0, time.UTC) }

func TestSummarize_RemainingExcludesOtherMonths(t *testing.T) {
	budgets := []model.Budget{
		{ID: 1, OwnerUserID: 2, Month: "2026-03", Amount: d("5000")},
		{ID: 2, OwnerUserID: 1, Month: "2026-03", Amount: d("1000")},
	}
	expenses := []model.Expense{
		{ID: 1, OwnerUserID: 1, Category: "food", Amount: d("200"), Date: day(2026, 3, 2)},
		{ID: 2, OwnerUserID: 1, Category: "vet", Amount: d("150"), Date: day(2026, 3, 10)},
		{ID: 3, OwnerUserID: 1, Category: "food", Amount: d("50"), Date: day(2026, 3, 5)},
		{ID: 4, OwnerUserID: 1, Category: "toys", Amount: d("9999"), Date: day(2026, 4, 1)},
		{ID: 5, OwnerUserID: 2, Category: "food", Amount: d("70"), Date: day(2026, 3, 1)},
	}

	s := Summarize(budgets, expenses, 1, 2026, time.March, 0)

	require.True(t, s.HasBudget)
	assert.Equal(t, int64(2), s.BudgetID)
	assert.True(t, s.Total.Equal(d("400")))
	assert.True(t, s.Remaining.Equal(d("600")))

	ids := []int64{}
	for _, e := range s.Expenses {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids, "fecha descendente")
}

func TestSummarize_NegativeRemainingAndPetFilter(t *testing.T) {
	budgets := []model.Budget{{ID: 1, OwnerUserID: 1, Month: "Marzo", Amount: d("100")}}
	expenses := []model.Expense{
		{ID: 1, OwnerUserID: 1, PetID: 7, Amount: d("80.50"), Date: day(2026, 3, 2)},
		{ID: 2, OwnerUserID: 1, PetID: 7, Amount: d("40"), Date: day(2026, 3, 3)},
		{ID: 3, OwnerUserID: 1, PetID: 8, Amount: d("500"), Date: day(2026, 3, 3)},
		{ID: 4, OwnerUserID: 1, Amount: d("1"), Date: day(2026, 3, 3)},
	}

	s := Summarize(budgets, expenses, 1, 2026, time.March, 7)
	assert.True(t, s.Total.Equal(d("120.50")))
	assert.True(t, s.Remaining.Equal(d("-20.50")))

	noBudget := Summarize(nil, expenses, 1, 2026, time.March, 0)
	assert.False(t, noBudget.HasBudget)
	assert.True(t, noBudget.Remaining.Equal(d("-621.50")))
}

func TestGroupByCategory(t *testing.T) {
	got := GroupByCategory([]model.Expense{
		{Category: "vet", Amount: d("30")},
		{Category: "food", Amount: d("100")},
		{Category: "food", Amount: d("50")},
	})
	want := []CategoryTotal{
		{Category: "food", Total: d("150"), Count: 2},
		{Category: "vet", Total: d("30"), Count: 1},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("GroupByCategory mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByCategory_PlaceholderAndTies(t *testing.T) {
	got := GroupByCategory([]model.Expense{
		{Category: " ", Amount: d("10")},
		{Category: "b", Amount: d("10")},
		{Category: "a", Amount: d("10")},
	})
	labels := []string{}
	for _, g := range got {
		labels = append(labels, g.Category)
	}
	assert.Equal(t, []string{UncategorizedLabel, "a", "b"}, labels)
}

func TestMatchMonth(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"2026-03", true},
		{"2026-3", true},
		{"2026/03", true},
		{"2026-03-01T00:00:00", true},
		{"2025-03", false},
		{"2026-04", false},
		{"marzo", true},
		{"Marzo 2026", true},
		{"marzo-2025", false},
		{"March", true},
		{"march 2026", true},
		{"3", true},
		{"03", true},
		{"4", false},
		{"", false},
		{"abril", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchMonth(tc.raw, 2026, time.March), tc.raw)
	}
	assert.Equal(t, "2026-03", MonthKey(2026, time.March))
}

func TestLatestRequestByListing_HighestIDWins(t *testing.T) {
	requests := []model.AdoptionRequest{
		{ID: 3, ListingID: 10, RequesterUserID: 1, Status: model.RequestRejected},
		{ID: 7, ListingID: 10, RequesterUserID: 1, Status: model.RequestPending},
		{ID: 5, ListingID: 10, RequesterUserID: 1},
		{ID: 9, ListingID: 10, RequesterUserID: 2},
		{ID: 4, ListingID: 11, RequesterUserID: 1},
	}
	got := LatestRequestByListing(requests, 1)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[10].ID)
	assert.Equal(t, int64(4), got[11].ID)

	assert.Empty(t, LatestRequestByListing(requests, 0))
}

func TestOwnedBy_StableUnderReordering(t *testing.T) {
	pets := []model.Pet{
		{ID: 1, OwnerUserID: 1}, {ID: 2, OwnerUserID: 2}, {ID: 3, OwnerUserID: 1}, {ID: 4, OwnerUserID: 3},
	}
	reordered := []model.Pet{pets[3], pets[2], pets[1], pets[0]}

	idsOf := func(ps []model.Pet) map[int64]bool {
		m := map[int64]bool{}
		for _, p := range ps {
			m[p.ID] = true
		}
		return m
	}
	assert.Equal(t, idsOf(MyPets(pets, 1)), idsOf(MyPets(reordered, 1)))
	assert.Equal(t, map[int64]bool{1: true, 3: true}, idsOf(MyPets(pets, 1)))
	assert.Empty(t, MyPets(pets, 0))
	assert.Empty(t, MyPets(pets, -5))
}

func TestFeedPosts(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Ana", Photo: "https://img/ana.png"}, {ID: 2, Name: "Luis"}}
	posts := []model.Post{
		{ID: 1, AuthorUserID: 2, Content: "viejo", CreatedAt: day(2026, 1, 1)},
		{ID: 2, AuthorUserID: 1, Content: "nuevo", CreatedAt: day(2026, 2, 1)},
		{ID: 3, AuthorUserID: 9, Content: "sin fecha"},
	}
	likes := []model.Like{{ID: 1, PostID: 1, UserID: 1}, {ID: 2, PostID: 1, UserID: 2}}
	var comments []model.Comment
	for i := 1; i <= 55; i++ {
		comments = append(comments, model.Comment{ID: int64(i), PostID: 1, AuthorUserID: 2})
	}
	images := []model.PostImage{{ID: 1, PostID: 2, URL: "https://img/p.png"}}

	feed := FeedPosts(posts, users, likes, comments, images, 1)
	require.Len(t, feed, 3)

	assert.Equal(t, "nuevo", feed[0].Post.Content)
	assert.Equal(t, YouLabel, feed[0].Author)
	assert.True(t, feed[0].Mine)
	assert.Equal(t, []string{"https://img/p.png"}, feed[0].Images)

	assert.Equal(t, "Luis", feed[1].Author)
	assert.Equal(t, 2, feed[1].LikeCount)
	assert.True(t, feed[1].LikedByMe)
	require.Len(t, feed[1].Comments, MaxPostComments)
	assert.Equal(t, int64(6), feed[1].Comments[0].Comment.ID, "se quedan los últimos 50")

	assert.Equal(t, "User #9", feed[2].Author, "sin fecha va al final")
}

func TestSortByTimeDesc_TieBreakByID(t *testing.T) {
	same := day(2026, 1, 1)
	got := SortByTimeDesc([]model.Post{{ID: 1, CreatedAt: same}, {ID: 4}, {ID: 3, CreatedAt: same}, {ID: 2}},
		func(p model.Post) time.Time { return p.CreatedAt },
		func(p model.Post) int64 { return p.ID })
	ids := []int64{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{3, 1, 4, 2}, ids)
}

func TestAdoptions(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis"}}
	pets := []model.Pet{
		{ID: 10, OwnerUserID: 1, Name: "Firulais", Species: "Perro", Breed: "Mestizo", Gender: "Macho"},
		{ID: 11, OwnerUserID: 1, Name: "Michi"},
		{ID: 20, OwnerUserID: 2, Name: ""},
	}
	listings := []model.AdoptionListing{
		{ID: 100, PetID: 10, PublisherUserID: 1, Available: true, PublishedAt: day(2026, 1, 1)},
		{ID: 101, PetID: 20, PublisherUserID: 2, Available: true, PublishedAt: day(2026, 2, 1)},
		{ID: 102, PetID: 30, PublisherUserID: 3},
	}
	requests := []model.AdoptionRequest{
		{ID: 1, ListingID: 100, RequesterUserID: 2},
		{ID: 2, ListingID: 101, RequesterUserID: 1},
	}

	v := BuildAdoptions(listings, pets, users, requests, 1, "/ph.png")

	require.Len(t, v.Explore, 3)
	assert.Equal(t, int64(101), v.Explore[0].Listing.ID)
	assert.Equal(t, "Pet #20", v.Explore[0].PetName)
	assert.Equal(t, "Luis", v.Explore[0].OwnerName)
	require.NotNil(t, v.Explore[0].MyRequest)
	assert.Equal(t, int64(2), v.Explore[0].MyRequest.ID)
	assert.Equal(t, "/ph.png", v.Explore[0].Photo)
	assert.Equal(t, "User #3", v.Explore[2].OwnerName)

	require.Len(t, v.Mine, 1)
	assert.Equal(t, "Perro · Mestizo · Macho", v.Mine[0].Characteristics)

	require.Len(t, v.Incoming, 1)
	assert.Equal(t, "Luis", v.Incoming[0].RequesterName)
	assert.Equal(t, "Firulais", v.Incoming[0].PetName)

	require.Len(t, v.Inventory, 2)
	require.NotNil(t, v.Inventory[0].Listing)
	assert.Nil(t, v.Inventory[1].Listing)

	empty := BuildAdoptions(listings, pets, users, requests, 0, "")
	assert.Empty(t, empty.Explore)
	assert.Empty(t, empty.Mine)
	assert.Empty(t, empty.Incoming)
	assert.Empty(t, empty.Requests)
	assert.Empty(t, empty.Inventory)
}

func TestDerivations_NoUserIsEmpty(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Ana"}}
	pets := []model.Pet{{ID: 10, OwnerUserID: 1}}
	posts := []model.Post{{ID: 1, AuthorUserID: 1}}
	likes := []model.Like{{ID: 1, PostID: 1, UserID: 1}}
	listings := []model.AdoptionListing{{ID: 100, PetID: 10, PublisherUserID: 1, Available: true}}
	requests := []model.AdoptionRequest{{ID: 1, ListingID: 100, RequesterUserID: 1}}
	budgets := []model.Budget{{ID: 1, OwnerUserID: 1, Month: "2026-03", Amount: d("100")}}
	expenses := []model.Expense{{ID: 1, OwnerUserID: 1, Amount: d("10"), Date: day(2026, 3, 2)}}
	hoods := []model.Neighborhood{{ID: 5, Name: "Roma", OwnerUserID: 1}}
	memberships := []model.Membership{{ID: 1, NeighborhoodID: 5, UserID: 1}}

	for _, uid := range []int64{0, -1} {
		assert.Empty(t, FeedPosts(posts, users, likes, nil, nil, uid))
		assert.Nil(t, FindLike(likes, 1, uid))
		assert.Empty(t, AdoptionCards(listings, pets, users, requests, uid, ""))
		assert.Empty(t, MyRequests(requests, uid))
		assert.Empty(t, MyListings(listings, uid))
		assert.Empty(t, LatestRequestByListing(requests, uid))
		assert.Empty(t, IncomingRequests(requests, listings, pets, users, uid))
		assert.Empty(t, MyPets(pets, uid))
		assert.Empty(t, PetCards(pets, nil, nil, nil, listings, uid, ""))
		assert.Empty(t, ExpensesFor(expenses, uid, 2026, time.March, 0))
		_, ok := FindBudget(budgets, uid, 2026, time.March)
		assert.False(t, ok)
		s := Summarize(budgets, expenses, uid, 2026, time.March, 0)
		assert.False(t, s.HasBudget)
		assert.Empty(t, s.Expenses)
		assert.Empty(t, MyNeighborhoods(hoods, memberships, uid))
		assert.False(t, IsMember(hoods[0], memberships, uid))
		_, ok = LatestMembership(memberships, uid)
		assert.False(t, ok)
		_, ok = ProfileNeighborhood(hoods, memberships, uid)
		assert.False(t, ok)
		assert.Equal(t, ProfileStats{}, Stats(pets, posts, listings, requests, uid))

		v := BuildAdoptions(listings, pets, users, requests, uid, "")
		assert.Empty(t, v.Explore)
		assert.Empty(t, v.Inventory)
	}
}

func TestNeighborhoods(t *testing.T) {
	hoods := []model.Neighborhood{
		{ID: 1, Name: "Centro", OwnerUserID: 1},
		{ID: 2, Name: "Norte", OwnerUserID: 2},
		{ID: 3, Name: "Sur", OwnerUserID: 3},
	}
	memberships := []model.Membership{
		{ID: 1, UserID: 1, NeighborhoodID: 2, JoinedAt: day(2026, 1, 1)},
		{ID: 2, UserID: 1, NeighborhoodID: 1, JoinedAt: day(2026, 2, 1)},
		{ID: 3, UserID: 9, NeighborhoodID: 3},
	}

	mine := MyNeighborhoods(hoods, memberships, 1)
	require.Len(t, mine, 2)
	assert.Equal(t, "Centro", mine[0].Name)

	active, ok := ActiveNeighborhood(mine, 2)
	require.True(t, ok)
	assert.Equal(t, int64(2), active.ID)

	active, ok = ActiveNeighborhood(mine, 3)
	require.True(t, ok)
	assert.Equal(t, int64(1), active.ID, "preferida ajena cae a la primera")

	_, ok = ActiveNeighborhood(nil, 1)
	assert.False(t, ok)

	h, ok := ProfileNeighborhood(hoods, memberships, 1)
	require.True(t, ok)
	assert.Equal(t, "Centro", h.Name)

	assert.True(t, IsMember(hoods[0], memberships, 1))
	assert.False(t, IsMember(hoods[2], memberships, 1))
}

func TestNeighborhoodFeed(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Ana"}}
	posts := []model.NeighborhoodPost{
		{ID: 1, NeighborhoodID: 5, AuthorUserID: 1},
		{ID: 3, NeighborhoodID: 5, AuthorUserID: 2, IsAlert: true},
		{ID: 2, NeighborhoodID: 6, AuthorUserID: 1},
	}
	likes := []model.NeighborhoodLike{{ID: 1, PostID: 3, UserID: 1}, {ID: 2, PostID: 3, UserID: 2}}
	comments := []model.NeighborhoodComment{
		{ID: 9, PostID: 3, AuthorUserID: 1},
		{ID: 4, PostID: 3, AuthorUserID: 2},
	}

	feed := NeighborhoodFeed(5, posts, users, likes, comments, nil, 1)
	require.Len(t, feed, 2)
	assert.Equal(t, int64(3), feed[0].Post.ID)
	assert.Equal(t, "User #2", feed[0].Author)
	assert.Equal(t, 2, feed[0].LikeCount)
	assert.Equal(t, 2, feed[0].CommentCount)
	assert.True(t, feed[0].LikedByMe)
	assert.Equal(t, int64(4), feed[0].Comments[0].Comment.ID)
	assert.Equal(t, "Ana", feed[1].Author)

	assert.Empty(t, NeighborhoodFeed(5, posts, users, likes, comments, nil, 0))
}

func TestPetCardsAndGPS(t *testing.T) {
	pets := []model.Pet{{ID: 1, OwnerUserID: 1, Name: "A"}, {ID: 2, OwnerUserID: 1, Name: "B", Photo: "https://x/b.png"}, {ID: 3, OwnerUserID: 2}}
	images := []model.PetImage{{ID: 1, PetID: 1, URL: "https://x/a1.png"}}
	var gps []model.GPSPoint
	for i := 1; i <= 30; i++ {
		gps = append(gps, model.GPSPoint{ID: int64(i), PetID: 1, Latitude: 19.4, Longitude: -99.1})
	}
	listings := []model.AdoptionListing{{ID: 1, PetID: 2, PublisherUserID: 1}}

	cards := PetCards(pets, images, nil, gps, listings, 1, "/ph.png")
	require.Len(t, cards, 2)
	assert.Equal(t, "https://x/a1.png", cards[0].Photo)
	require.Len(t, cards[0].RecentGPS, MaxRecentGPS)
	assert.Equal(t, int64(30), cards[0].RecentGPS[0].ID)
	assert.Equal(t, int64(6), cards[0].RecentGPS[24].ID)
	assert.True(t, cards[1].Listed)
	assert.Equal(t, "https://x/b.png", cards[1].Photo)

	assert.Equal(t, "https://www.google.com/maps?q=19.4,-99.1", MapLink(gps[0]))
	assert.Equal(t, int64(2), SelectPet(MyPets(pets, 1), 2))
	assert.Equal(t, int64(1), SelectPet(MyPets(pets, 1), 3))
	assert.Equal(t, int64(0), SelectPet(nil, 3))
}

func TestStats(t *testing.T) {
	s := Stats(
		[]model.Pet{{ID: 1, OwnerUserID: 1}, {ID: 2, OwnerUserID: 2}},
		[]model.Post{{ID: 1, AuthorUserID: 1}, {ID: 2, AuthorUserID: 1}},
		[]model.AdoptionListing{{ID: 1, PublisherUserID: 2}},
		[]model.AdoptionRequest{{ID: 1, RequesterUserID: 1}},
		1,
	)
	if diff := cmp.Diff(ProfileStats{Pets: 1, Posts: 2, Listings: 0, Requests: 1}, s); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}
