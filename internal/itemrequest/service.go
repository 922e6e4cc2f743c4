package itemrequest

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/plushcat/shareit-backend/internal/item"
)

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID string) ([]*Detail, error)
	ListOthers(ctx context.Context, callerID string, from, size int) ([]*Detail, error)
	GetByID(ctx context.Context, callerID, requestID string) (*Detail, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	items  ItemFinder
	logger zerolog.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemFinder, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Str("request_id", req.ID).Str("requester_id", requesterID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	return s.withReplies(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, callerID string, from, size int) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	if size < 1 {
		size = 10
	}
	if from < 0 {
		from = 0
	}
	page := from / size

	requests, err := s.repo.ListOthers(ctx, callerID, uint64(size), uint64(page*size))
	if err != nil {
		return nil, err
	}

	return s.withReplies(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, callerID, requestID string) (*Detail, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details, err := s.withReplies(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// withReplies attaches replying items to each request with a single batched
// item lookup.
func (s *service) withReplies(ctx context.Context, requests []*ItemRequest) ([]*Detail, error) {
	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	replies, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[string][]*item.Item)
	for _, it := range replies {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
	}

	details := make([]*Detail, len(requests))
	for i, req := range requests {
		details[i] = &Detail{
			ItemRequest: *req,
			Items:       byRequest[req.ID],
		}
	}

	return details, nil
}
