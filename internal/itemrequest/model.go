package itemrequest

import (
	"context"
	"time"

	"github.com/plushcat/shareit-backend/internal/item"
	"github.com/plushcat/shareit-backend/internal/pkg/apperror"
	"github.com/plushcat/shareit-backend/internal/user"
)

var (
	ErrNotFound            = apperror.NotFound("item request not found")
	ErrDescriptionRequired = apperror.BadRequest("description must not be empty")
)

// ItemRequest is an open solicitation for an item a user wishes existed in
// the catalog. Listed items may reference a request they fulfill.
type ItemRequest struct {
	ID          string
	Description string
	RequesterID string
	Created     time.Time
}

// Detail is an item request together with the items listed in reply to it.
type Detail struct {
	ItemRequest
	Items []*item.Item
}

// UserDirectory is the part of the user module this package depends on.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemFinder resolves the items that reply to a set of requests.
type ItemFinder interface {
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*item.Item, error)
}
