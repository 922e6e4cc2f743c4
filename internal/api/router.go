package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plushcat/shareit-backend/internal/booking"
	bookingHttp "github.com/plushcat/shareit-backend/internal/booking/http"
	"github.com/plushcat/shareit-backend/internal/identity"
	"github.com/plushcat/shareit-backend/internal/item"
	itemHttp "github.com/plushcat/shareit-backend/internal/item/http"
	"github.com/plushcat/shareit-backend/internal/itemrequest"
	requestHttp "github.com/plushcat/shareit-backend/internal/itemrequest/http"
	"github.com/plushcat/shareit-backend/internal/metrics"
	"github.com/plushcat/shareit-backend/internal/user"
	userHttp "github.com/plushcat/shareit-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter assembles middleware (CORS, logging, metrics, caller identity)
// and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", metrics.Handler())

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	// Every caller-scoped route reads the caller from X-Sharer-User-Id.
	authed := r.Group("", identity.Required())
	{
		itemHttp.RegisterRoutes(authed, itemHandler)
		bookingHttp.RegisterRoutes(authed, bookingHandler)
		requestHttp.RegisterRoutes(authed, requestHandler)
	}

	// User administration carries no caller header.
	userHttp.RegisterRoutes(&r.RouterGroup, userHandler)

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
