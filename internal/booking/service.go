package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/plushcat/shareit-backend/internal/item"
	"github.com/plushcat/shareit-backend/internal/metrics"
	"github.com/plushcat/shareit-backend/internal/pkg/clock"
)

type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, userID, bookingID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, userID, bookingID string) (*Booking, error)
	ListByBooker(ctx context.Context, userID, state string, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, userID, state string, from, size int) ([]*Booking, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	items  ItemCatalog
	clk    clock.Clock
	logger zerolog.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemCatalog, clk clock.Clock, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		clk:    clk,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if !it.Available {
		return nil, ErrItemUnavailable
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	if err := validateWindow(req.Start, req.End, s.clk.Now()); err != nil {
		return nil, err
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("item_id", b.ItemID).
		Str("booker_id", b.BookerID).
		Msg("booking created")
	return b, nil
}

// validateWindow rejects windows that start in the past, end in the past,
// end before they start, or are empty. A zero time stands for an absent
// timestamp.
func validateWindow(start, end, now time.Time) error {
	if start.IsZero() || start.Before(now) ||
		end.IsZero() || end.Before(now) ||
		end.Before(start) || start.Equal(end) {
		return ErrInvalidTimeWindow
	}
	return nil
}

func (s *service) Approve(ctx context.Context, userID, bookingID string, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Checked before ownership: a non-owner poking an approved booking gets
	// the already-set error, which callers depend on.
	if b.Status == StatusApproved {
		return nil, ErrStatusAlreadySet
	}
	if b.ItemOwnerID != userID {
		return nil, ErrNotItemOwner
	}

	decision := StatusRejected
	if approved {
		decision = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, decision); err != nil {
		return nil, err
	}
	b.Status = decision

	metrics.IncBookingDecision(string(decision))
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("status", string(decision)).
		Msg("booking decided")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, userID, bookingID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != userID && b.ItemOwnerID != userID {
		return nil, ErrNotParticipant
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID, state string, from, size int) ([]*Booking, error) {
	return s.listFor(ctx, userID, state, from, size, s.repo.ListByBooker)
}

func (s *service) ListByOwner(ctx context.Context, userID, state string, from, size int) ([]*Booking, error) {
	return s.listFor(ctx, userID, state, from, size, s.repo.ListByOwner)
}

type listFunc func(ctx context.Context, userID string, state State, now time.Time, limit, offset uint64) ([]*Booking, error)

func (s *service) listFor(ctx context.Context, userID, stateStr string, from, size int, list listFunc) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	state, err := ParseState(stateStr)
	if err != nil {
		return nil, err
	}

	if from < 0 || size < 1 {
		return nil, ErrInvalidPaging
	}
	page := from / size

	bookings, err := list(ctx, userID, state, s.clk.Now(), uint64(size), uint64(page*size))
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}
