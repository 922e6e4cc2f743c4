package item

import (
	"context"
	"time"

	"github.com/plushcat/shareit-backend/internal/pkg/apperror"
	"github.com/plushcat/shareit-backend/internal/user"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotFound("not the item owner")
	ErrRequestNotFound     = apperror.NotFound("item request not found")
	ErrNameRequired        = apperror.BadRequest("name must not be empty")
	ErrDescriptionRequired = apperror.BadRequest("description must not be empty")
	ErrAvailableRequired   = apperror.BadRequest("available must be set")
	ErrCommentTextRequired = apperror.BadRequest("comment text must not be empty")
	ErrCommentNotAllowed   = apperror.BadRequest("user has not completed a booking of this item")
	ErrPhotoNotFound       = apperror.NotFound("photo not found")
	ErrPhotoNotImage       = apperror.BadRequest("file is not an image")
)

// Item is a listed, shareable object with an availability flag.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	RequestID   *string
	CreatedAt   time.Time
}

// Comment is feedback left by a past borrower of an item.
type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	Created    time.Time
}

// Photo holds metadata for an uploaded item picture. The bytes live in blob
// storage; only paths are persisted here.
type Photo struct {
	ID            string
	ItemID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// BookingRef is the short booking view embedded into an item's detail when
// the caller is the owner.
type BookingRef struct {
	ID       string
	ItemID   string
	BookerID string
	Start    time.Time
	End      time.Time
}

// Detail is an item enriched with booking context, comments and photos.
type Detail struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []*Comment
	Photos      []*Photo
}

// UserDirectory is the part of the user module this package depends on.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// BookingHistory answers read-only temporal queries against the booking
// store: the item's neighbouring approved bookings around now, and whether a
// user has a finished approved booking of an item (comment eligibility).
type BookingHistory interface {
	LastForItem(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	NextForItem(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

// RequestCatalog checks that an item request referenced by a new item exists.
type RequestCatalog interface {
	Exists(ctx context.Context, id string) (bool, error)
}
