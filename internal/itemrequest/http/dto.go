package http

import (
	"time"

	"github.com/plushcat/shareit-backend/internal/itemrequest"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// ReplyItemResponse is an item listed in reply to a request.
type ReplyItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	OwnerID     string  `json:"ownerId"`
	RequestID   *string `json:"requestId"`
}

type ItemRequestResponse struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	Items       []ReplyItemResponse `json:"items"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       []ReplyItemResponse{},
	}
}

func NewItemRequestDetailResponse(d *itemrequest.Detail) ItemRequestResponse {
	resp := NewItemRequestResponse(&d.ItemRequest)
	for _, it := range d.Items {
		resp.Items = append(resp.Items, ReplyItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     it.OwnerID,
			RequestID:   it.RequestID,
		})
	}
	return resp
}
