package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/items")
	{
		group.POST("", h.Create)
		group.GET("", h.ListByOwner)
		group.GET("/search", h.Search)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/comment", h.PostComment)

		group.POST("/:id/photo", h.UploadPhoto)
		group.GET("/photos/:photoId", h.DownloadPhoto)
		group.GET("/photos/:photoId/thumbnail", h.DownloadThumbnail)
		group.DELETE("/photos/:photoId", h.DeletePhoto)
	}
}
