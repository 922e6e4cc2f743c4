package booking

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plushcat/shareit-backend/internal/item"
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

type fakeItems struct {
	items map[string]*item.Item
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*item.Item, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return i, nil
}

type fakeRepo struct {
	bookings map[string]*Booking
	nextID   int

	lastState  State
	lastNow    time.Time
	lastLimit  uint64
	lastOffset uint64
	listResult []*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*Booking{}}
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	f.nextID++
	b.ID = "booking-" + strconv.Itoa(f.nextID)
	b.CreatedAt = testNow
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) ListByBooker(_ context.Context, _ string, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	f.lastState, f.lastNow, f.lastLimit, f.lastOffset = state, now, limit, offset
	return f.listResult, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, _ string, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	f.lastState, f.lastNow, f.lastLimit, f.lastOffset = state, now, limit, offset
	return f.listResult, nil
}

func (f *fakeRepo) LastForItem(_ context.Context, _ string, _ time.Time) (*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) NextForItem(_ context.Context, _ string, _ time.Time) (*Booking, error) {
	return nil, nil
}

func (f *fakeRepo) HasFinished(_ context.Context, _, _ string, _ time.Time) (bool, error) {
	return false, nil
}

type fixture struct {
	repo    *fakeRepo
	service Service
}

func newFixture() *fixture {
	users := &fakeUsers{users: map[string]*user.User{
		"owner":  {ID: "owner", Name: "Olga"},
		"booker": {ID: "booker", Name: "Boris"},
	}}
	items := &fakeItems{items: map[string]*item.Item{
		"drill": {ID: "drill", Name: "Drill", Available: true, OwnerID: "owner"},
		"saw":   {ID: "saw", Name: "Saw", Available: false, OwnerID: "owner"},
	}}

	repo := newFakeRepo()
	return &fixture{
		repo:    repo,
		service: NewService(repo, users, items, clock.Fixed{T: testNow}, zerolog.Nop()),
	}
}

func validWindow() (time.Time, time.Time) {
	return testNow.Add(24 * time.Hour), testNow.Add(48 * time.Hour)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a waiting booking", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		b, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "drill", Start: start, End: end})
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "drill", b.ItemID)
		assert.Equal(t, "Drill", b.ItemName)
		assert.Equal(t, "owner", b.ItemOwnerID)
		assert.Equal(t, "booker", b.BookerID)
		assert.Equal(t, "Boris", b.BookerName)
	})

	t.Run("unknown booker", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		_, err := f.service.Create(ctx, "ghost", CreateRequest{ItemID: "drill", Start: start, End: end})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		_, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "hammer", Start: start, End: end})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		_, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "saw", Start: start, End: end})
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("availability checked before ownership", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		_, err := f.service.Create(ctx, "owner", CreateRequest{ItemID: "saw", Start: start, End: end})
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("own item", func(t *testing.T) {
		f := newFixture()
		start, end := validWindow()

		_, err := f.service.Create(ctx, "owner", CreateRequest{ItemID: "drill", Start: start, End: end})
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("time window validation", func(t *testing.T) {
		f := newFixture()
		later := testNow.Add(24 * time.Hour)

		cases := []struct {
			name       string
			start, end time.Time
		}{
			{"missing start", time.Time{}, later},
			{"missing end", later, time.Time{}},
			{"start in the past", testNow.Add(-time.Hour), later},
			{"end in the past", testNow.Add(time.Hour), testNow.Add(-time.Hour)},
			{"end before start", later.Add(time.Hour), later},
			{"empty window", later, later},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "drill", Start: tc.start, End: tc.end})
				assert.ErrorIs(t, err, ErrInvalidTimeWindow)
			})
		}
	})

	t.Run("window starting exactly now is accepted", func(t *testing.T) {
		f := newFixture()

		b, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "drill", Start: testNow, End: testNow.Add(time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, b.Status)
	})
}

func TestApproveBooking(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, f *fixture) *Booking {
		start, end := validWindow()
		b, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "drill", Start: start, End: end})
		require.NoError(t, err)
		return b
	}

	t.Run("owner approves", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		approved, err := f.service.Approve(ctx, "owner", b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		rejected, err := f.service.Approve(ctx, "owner", b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
	})

	t.Run("approving twice fails", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		_, err := f.service.Approve(ctx, "owner", b.ID, true)
		require.NoError(t, err)

		_, err = f.service.Approve(ctx, "owner", b.ID, true)
		assert.ErrorIs(t, err, ErrStatusAlreadySet)
	})

	t.Run("rejected booking can still be approved", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		_, err := f.service.Approve(ctx, "owner", b.ID, false)
		require.NoError(t, err)

		approved, err := f.service.Approve(ctx, "owner", b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
	})

	t.Run("non-owner on waiting booking", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		_, err := f.service.Approve(ctx, "booker", b.ID, true)
		assert.ErrorIs(t, err, ErrNotItemOwner)
	})

	t.Run("already-approved check precedes ownership", func(t *testing.T) {
		f := newFixture()
		b := create(t, f)

		_, err := f.service.Approve(ctx, "owner", b.ID, true)
		require.NoError(t, err)

		_, err = f.service.Approve(ctx, "booker", b.ID, true)
		assert.ErrorIs(t, err, ErrStatusAlreadySet)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Approve(ctx, "owner", "nope", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	start, end := validWindow()
	b, err := f.service.Create(ctx, "booker", CreateRequest{ItemID: "drill", Start: start, End: end})
	require.NoError(t, err)

	t.Run("booker sees it", func(t *testing.T) {
		got, err := f.service.GetByID(ctx, "booker", b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("owner sees it", func(t *testing.T) {
		got, err := f.service.GetByID(ctx, "owner", b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		f.repo.bookings[b.ID].BookerID = "booker"
		users := &fakeUsers{users: map[string]*user.User{"stranger": {ID: "stranger"}}}
		svc := NewService(f.repo, users, &fakeItems{}, clock.Fixed{T: testNow}, zerolog.Nop())

		_, err := svc.GetByID(ctx, "stranger", b.ID)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown state", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ListByBooker(ctx, "booker", "UNSUPPORTED_STATUS", 0, 10)
		assert.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("unknown caller", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ListByBooker(ctx, "ghost", "ALL", 0, 10)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("invalid paging", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ListByBooker(ctx, "booker", "ALL", -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPaging)

		_, err = f.service.ListByBooker(ctx, "booker", "ALL", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPaging)
	})

	t.Run("offset snaps to whole pages", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ListByBooker(ctx, "booker", "ALL", 25, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), f.repo.lastLimit)
		assert.Equal(t, uint64(20), f.repo.lastOffset)
	})

	t.Run("state and instant reach the store", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ListByOwner(ctx, "owner", "CURRENT", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, StateCurrent, f.repo.lastState)
		assert.Equal(t, testNow, f.repo.lastNow)
	})

	t.Run("empty result is a slice, not nil", func(t *testing.T) {
		f := newFixture()

		got, err := f.service.ListByBooker(ctx, "booker", "ALL", 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
