package item

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/plushcat/shareit-backend/internal/pkg/clock"
	"github.com/plushcat/shareit-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, callerID, itemID string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, callerID, itemID string) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Detail, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	PostComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)

	UploadPhoto(ctx context.Context, callerID, itemID string, header *multipart.FileHeader) (*Photo, error)
	DownloadPhoto(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error)
	DeletePhoto(ctx context.Context, callerID, photoID string) error
}

type service struct {
	repo     Repository
	comments CommentRepository
	photos   PhotoRepository
	users    UserDirectory
	requests RequestCatalog
	history  BookingHistory
	store    storage.Storage
	imgProc  *storage.ImageProcessor
	clk      clock.Clock
	logger   zerolog.Logger
}

func NewService(
	repo Repository,
	comments CommentRepository,
	photos PhotoRepository,
	users UserDirectory,
	requests RequestCatalog,
	history BookingHistory,
	store storage.Storage,
	clk clock.Clock,
	logger zerolog.Logger,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		photos:   photos,
		users:    users,
		requests: requests,
		history:  history,
		store:    store,
		imgProc:  storage.NewImageProcessor(),
		clk:      clk,
		logger:   logger,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		exists, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", i.ID).Str("owner_id", ownerID).Msg("item created")
	return i, nil
}

func (s *service) Update(ctx context.Context, callerID, itemID string, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Reported as not-found rather than forbidden, per the external contract.
	if i.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", i.ID).Msg("item updated")
	return i, nil
}

func (s *service) GetByID(ctx context.Context, callerID, itemID string) (*Detail, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, i, i.OwnerID == callerID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	limit, offset := pageSlice(from, size)
	items, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(items))
	for _, i := range items {
		d, err := s.enrich(ctx, i, true)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	// Empty search text yields an empty result, not all items.
	if text == "" {
		return []*Item{}, nil
	}

	limit, offset := pageSlice(from, size)
	items, err := s.repo.Search(ctx, text, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) PostComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ok, err := s.history.HasFinishedBooking(ctx, authorID, i.ID, s.clk.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		Text:       text,
		ItemID:     i.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    s.clk.Now(),
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", i.ID).Str("author_id", author.ID).Msg("comment posted")
	return c, nil
}

// enrich attaches comments, photos and, for the owner, the neighbouring
// approved bookings to an item.
func (s *service) enrich(ctx context.Context, i *Item, isOwner bool) (*Detail, error) {
	d := &Detail{Item: *i}

	if isOwner {
		now := s.clk.Now()

		last, err := s.history.LastForItem(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.history.NextForItem(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking = last
		d.NextBooking = next
	}

	comments, err := s.comments.ListByItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	photos, err := s.photos.ListByItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Photos = photos

	return d, nil
}

// pageSlice converts the offset/size listing parameters into a limit/offset
// pair, snapping the offset to a whole page like the original contract.
func pageSlice(from, size int) (limit, offset uint64) {
	if size < 1 {
		size = 10
	}
	if from < 0 {
		from = 0
	}
	page := from / size
	return uint64(size), uint64(page * size)
}
