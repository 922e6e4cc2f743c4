package http

import (
	"time"

	"github.com/plushcat/shareit-backend/internal/booking"
	itemhttp "github.com/plushcat/shareit-backend/internal/item/http"
	userhttp "github.com/plushcat/shareit-backend/internal/user/http"
)

// CreateBookingRequest carries the requested reservation window. Start and
// end are pointers so an absent timestamp reaches the service as a zero
// time instead of failing at binding.
type CreateBookingRequest struct {
	ItemID string     `json:"itemId" binding:"required,uuid"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type BookingResponse struct {
	ID     string            `json:"id"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Status string            `json:"status"`
	Booker userhttp.UserTag  `json:"booker"`
	Item   itemhttp.ItemTag  `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userhttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   itemhttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}
	return out
}
