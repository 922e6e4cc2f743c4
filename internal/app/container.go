package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/plushcat/shareit-backend/internal/api"
	"github.com/plushcat/shareit-backend/internal/booking"
	"github.com/plushcat/shareit-backend/internal/item"
	"github.com/plushcat/shareit-backend/internal/itemrequest"
	"github.com/plushcat/shareit-backend/internal/pkg/clock"
	"github.com/plushcat/shareit-backend/internal/pkg/storage"
	"github.com/plushcat/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Store        storage.Storage
	Logger       zerolog.Logger
	Clock        clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, cfg.Logger)

	// Item request module. Its repository doubles as the item module's
	// request catalog.
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)

	// Booking module storage first: the item module reads booking history
	// through it.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	history := booking.NewItemHistory(bookingRepo)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	photoRepo := item.NewPgxPhotoRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, photoRepo, userRepo, requestRepo, history, cfg.Store, clk, cfg.Logger)

	// Item request service replies with items found through the item store.
	requestService := itemrequest.NewService(requestRepo, userRepo, itemRepo, cfg.Logger)

	// Booking engine
	bookingService := booking.NewService(bookingRepo, userRepo, itemRepo, clk, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
