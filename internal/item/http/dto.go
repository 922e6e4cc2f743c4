package http

import (
	"time"

	"github.com/plushcat/shareit-backend/internal/item"
)

// ItemTag is the short item summary embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// BookingShortResponse is the embedded last/next booking projection.
type BookingShortResponse struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"itemId"`
	BookerID string    `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingShort(ref *item.BookingRef) *BookingShortResponse {
	if ref == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       ref.ID,
		ItemID:   ref.ItemID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *string `json:"requestId,omitempty"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
	PhotoURLs   []string              `json:"photoUrls"`
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}

	photoURLs := make([]string, len(d.Photos))
	for i, p := range d.Photos {
		photoURLs[i] = PhotoURL(p.ID)
	}

	return ItemDetailResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  newBookingShort(d.LastBooking),
		NextBooking:  newBookingShort(d.NextBooking),
		Comments:     comments,
		PhotoURLs:    photoURLs,
	}
}

type PhotoResponse struct {
	ID           string `json:"id"`
	ItemID       string `json:"itemId"`
	Filename     string `json:"filename"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

func NewPhotoResponse(p *item.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		ItemID:      p.ItemID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
		URL:         PhotoURL(p.ID),
	}
	if p.ThumbnailPath != nil {
		resp.ThumbnailURL = ThumbnailURL(p.ID)
	}
	return resp
}

// PhotoURL returns the public URL for an item photo.
func PhotoURL(id string) string {
	return "/items/photos/" + id
}

// ThumbnailURL returns the public URL for an item photo thumbnail.
func ThumbnailURL(id string) string {
	return "/items/photos/" + id + "/thumbnail"
}
