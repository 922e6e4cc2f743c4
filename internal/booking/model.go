package booking

import (
	"context"
	"time"

	"github.com/plushcat/shareit-backend/internal/item"
	"github.com/plushcat/shareit-backend/internal/pkg/apperror"
	"github.com/plushcat/shareit-backend/internal/user"
)

var (
	ErrNotFound          = apperror.NotFound("booking not found")
	ErrItemNotFound      = apperror.NotFound("item does not exist")
	ErrOwnItem           = apperror.NotFound("cannot book your own item")
	ErrNotItemOwner      = apperror.NotFound("not the item owner")
	ErrNotParticipant    = apperror.NotFound("neither owner nor renter")
	ErrItemUnavailable   = apperror.BadRequest("item not available for booking")
	ErrInvalidTimeWindow = apperror.BadRequest("invalid booking time window")
	ErrStatusAlreadySet  = apperror.BadRequest("status already set")
	ErrUnknownState      = apperror.BadRequest("Unknown state: UNSUPPORTED_STATUS")
	ErrInvalidPaging     = apperror.BadRequest("invalid pagination parameters")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled exists in the status set but no transition produces it.
	StatusCanceled Status = "CANCELED"
)

// Booking is a time-bounded reservation of an item by a user. ItemName,
// ItemOwnerID and BookerName are projection fields filled by join.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}

// UserDirectory is the user lookup the engine needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemCatalog is the item lookup the engine needs.
type ItemCatalog interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}
