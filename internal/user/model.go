package user

import (
	"time"

	"github.com/plushcat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrNameRequired     = apperror.BadRequest("name must not be empty")
	ErrEmailRequired    = apperror.BadRequest("email must not be empty")
)

// User represents a registered user of the marketplace.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
