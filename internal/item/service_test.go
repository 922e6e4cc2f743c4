package item

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plushcat/shareit-backend/internal/pkg/clock"
	"github.com/plushcat/shareit-backend/internal/user"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeRepo struct {
	items  map[string]*Item
	nextID int

	searchText   string
	searchResult []*Item
	lastLimit    uint64
	lastOffset   uint64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]*Item{}}
}

func (f *fakeRepo) Create(_ context.Context, i *Item) error {
	f.nextID++
	i.ID = "item-" + strconv.Itoa(f.nextID)
	stored := *i
	f.items[i.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Item, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID string, limit, offset uint64) ([]*Item, error) {
	f.lastLimit, f.lastOffset = limit, offset
	var out []*Item
	for _, i := range f.items {
		if i.OwnerID == ownerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByRequestIDs(_ context.Context, _ []string) ([]*Item, error) {
	return nil, nil
}

func (f *fakeRepo) Search(_ context.Context, text string, limit, offset uint64) ([]*Item, error) {
	f.searchText = text
	f.lastLimit, f.lastOffset = limit, offset
	return f.searchResult, nil
}

func (f *fakeRepo) Update(_ context.Context, i *Item) error {
	if _, ok := f.items[i.ID]; !ok {
		return ErrNotFound
	}
	stored := *i
	f.items[i.ID] = &stored
	return nil
}

type fakeComments struct {
	comments []*Comment
}

func (f *fakeComments) Create(_ context.Context, c *Comment) error {
	c.ID = "comment-" + strconv.Itoa(len(f.comments)+1)
	f.comments = append(f.comments, c)
	return nil
}

func (f *fakeComments) ListByItem(_ context.Context, itemID string) ([]*Comment, error) {
	var out []*Comment
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) ListByItems(_ context.Context, _ []string) ([]*Comment, error) {
	return f.comments, nil
}

type fakePhotos struct{}

func (fakePhotos) Create(_ context.Context, _ *Photo) error { return nil }

func (fakePhotos) GetByID(_ context.Context, _ string) (*Photo, error) {
	return nil, ErrPhotoNotFound
}

func (fakePhotos) ListByItem(_ context.Context, _ string) ([]*Photo, error) { return nil, nil }

func (fakePhotos) Delete(_ context.Context, _ string) error { return nil }

type fakeRequests struct {
	existing map[string]bool
}

func (f *fakeRequests) Exists(_ context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

type fakeHistory struct {
	last     *BookingRef
	next     *BookingRef
	finished map[string]bool
}

func (f *fakeHistory) LastForItem(_ context.Context, _ string, _ time.Time) (*BookingRef, error) {
	return f.last, nil
}

func (f *fakeHistory) NextForItem(_ context.Context, _ string, _ time.Time) (*BookingRef, error) {
	return f.next, nil
}

func (f *fakeHistory) HasFinishedBooking(_ context.Context, bookerID, itemID string, _ time.Time) (bool, error) {
	return f.finished[bookerID+"/"+itemID], nil
}

type fixture struct {
	repo     *fakeRepo
	comments *fakeComments
	history  *fakeHistory
	service  Service
}

func newFixture() *fixture {
	users := &fakeUsers{users: map[string]*user.User{
		"owner":  {ID: "owner", Name: "Olga"},
		"renter": {ID: "renter", Name: "Boris"},
	}}
	repo := newFakeRepo()
	comments := &fakeComments{}
	history := &fakeHistory{finished: map[string]bool{}}
	requests := &fakeRequests{existing: map[string]bool{"req-1": true}}

	svc := NewService(repo, comments, fakePhotos{}, users, requests, history, nil, clock.Fixed{T: testNow}, zerolog.Nop())
	return &fixture{repo: repo, comments: comments, history: history, service: svc}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func createItem(t *testing.T, f *fixture, name string) *Item {
	t.Helper()
	i, err := f.service.Create(context.Background(), "owner", CreateRequest{
		Name:        name,
		Description: "a " + name,
		Available:   boolPtr(true),
	})
	require.NoError(t, err)
	return i
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item for existing owner", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")
		assert.Equal(t, "owner", i.OwnerID)
		assert.True(t, i.Available)
	})

	t.Run("required fields", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, "owner", CreateRequest{Description: "d", Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = f.service.Create(ctx, "owner", CreateRequest{Name: "n", Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrDescriptionRequired)

		_, err = f.service.Create(ctx, "owner", CreateRequest{Name: "n", Description: "d"})
		assert.ErrorIs(t, err, ErrAvailableRequired)
	})

	t.Run("unknown owner", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, "ghost", CreateRequest{Name: "n", Description: "d", Available: boolPtr(true)})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("reply to a known request", func(t *testing.T) {
		f := newFixture()

		i, err := f.service.Create(ctx, "owner", CreateRequest{
			Name: "n", Description: "d", Available: boolPtr(true), RequestID: strPtr("req-1"),
		})
		require.NoError(t, err)
		require.NotNil(t, i.RequestID)
		assert.Equal(t, "req-1", *i.RequestID)
	})

	t.Run("reply to an unknown request", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, "owner", CreateRequest{
			Name: "n", Description: "d", Available: boolPtr(true), RequestID: strPtr("req-404"),
		})
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates fields partially", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		updated, err := f.service.Update(ctx, "owner", i.ID, UpdateRequest{Available: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.Available)
		assert.Equal(t, "drill", updated.Name, "untouched fields keep their values")
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		_, err := f.service.Update(ctx, "renter", i.ID, UpdateRequest{Available: boolPtr(false)})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Update(ctx, "owner", "nope", UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetItemDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees booking context", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")
		f.history.last = &BookingRef{ID: "b1", ItemID: i.ID}
		f.history.next = &BookingRef{ID: "b2", ItemID: i.ID}

		d, err := f.service.GetByID(ctx, "owner", i.ID)
		require.NoError(t, err)
		require.NotNil(t, d.LastBooking)
		require.NotNil(t, d.NextBooking)
		assert.Equal(t, "b1", d.LastBooking.ID)
		assert.Equal(t, "b2", d.NextBooking.ID)
	})

	t.Run("non-owner never sees booking context", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")
		f.history.last = &BookingRef{ID: "b1", ItemID: i.ID}
		f.history.next = &BookingRef{ID: "b2", ItemID: i.ID}

		d, err := f.service.GetByID(ctx, "renter", i.ID)
		require.NoError(t, err)
		assert.Nil(t, d.LastBooking)
		assert.Nil(t, d.NextBooking)
	})

	t.Run("unknown caller", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		_, err := f.service.GetByID(ctx, "ghost", i.ID)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text short-circuits to empty result", func(t *testing.T) {
		f := newFixture()
		f.repo.searchResult = []*Item{{ID: "should-not-appear"}}

		found, err := f.service.Search(ctx, "", 0, 10)
		require.NoError(t, err)
		assert.Empty(t, found)
		assert.Empty(t, f.repo.searchText, "store must not be queried")
	})

	t.Run("passes text and paging through", func(t *testing.T) {
		f := newFixture()
		f.repo.searchResult = []*Item{{ID: "i1"}}

		found, err := f.service.Search(ctx, "drill", 25, 10)
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "drill", f.repo.searchText)
		assert.Equal(t, uint64(10), f.repo.lastLimit)
		assert.Equal(t, uint64(20), f.repo.lastOffset)
	})

	t.Run("nil store result renders as empty slice", func(t *testing.T) {
		f := newFixture()

		found, err := f.service.Search(ctx, "drill", 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})
}

func TestPostComment(t *testing.T) {
	ctx := context.Background()

	t.Run("past renter may comment", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")
		f.history.finished["renter/"+i.ID] = true

		c, err := f.service.PostComment(ctx, "renter", i.ID, "worked great")
		require.NoError(t, err)
		assert.Equal(t, "Boris", c.AuthorName)
		assert.Equal(t, testNow, c.Created)
	})

	t.Run("no finished booking means no comment", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		_, err := f.service.PostComment(ctx, "renter", i.ID, "worked great")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("blank text", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		_, err := f.service.PostComment(ctx, "renter", i.ID, "   ")
		assert.ErrorIs(t, err, ErrCommentTextRequired)
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newFixture()
		i := createItem(t, f, "drill")

		_, err := f.service.PostComment(ctx, "ghost", i.ID, "hi")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
