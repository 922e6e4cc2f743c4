package booking

import (
	"context"
	"time"

	"github.com/plushcat/shareit-backend/internal/item"
)

// ItemHistory adapts the booking store to the item module's read-only view
// of booking history.
type ItemHistory struct {
	repo Repository
}

func NewItemHistory(repo Repository) *ItemHistory {
	return &ItemHistory{repo: repo}
}

func (h *ItemHistory) LastForItem(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := h.repo.LastForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

func (h *ItemHistory) NextForItem(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := h.repo.NextForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

func (h *ItemHistory) HasFinishedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error) {
	return h.repo.HasFinished(ctx, bookerID, itemID, now)
}

func toRef(b *Booking) *item.BookingRef {
	if b == nil {
		return nil
	}
	return &item.BookingRef{
		ID:       b.ID,
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
