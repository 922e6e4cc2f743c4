package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plushcat/shareit-backend/internal/identity"
	"github.com/plushcat/shareit-backend/internal/itemrequest"
	"github.com/plushcat/shareit-backend/internal/pkg/request"
	"github.com/plushcat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.CallerID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemRequestResponse(req))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), identity.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemRequestResponse, len(details))
	for i, d := range details {
		items[i] = NewItemRequestDetailResponse(d)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOthers(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}

	details, err := h.service.ListOthers(c.Request.Context(), identity.CallerID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemRequestResponse, len(details))
	for i, d := range details {
		items[i] = NewItemRequestDetailResponse(d)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("requestId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), identity.CallerID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestDetailResponse(d))
}
