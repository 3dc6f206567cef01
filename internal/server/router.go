package server

import (
	"log/slog"
	"net/http"
	"time"

	"alxtravel/internal/metrics"
	"alxtravel/internal/middleware"
	"alxtravel/internal/modules/auth"
	"alxtravel/internal/modules/booking"
	"alxtravel/internal/modules/listing"
	"alxtravel/internal/modules/notification"
	"alxtravel/internal/modules/review"
	"alxtravel/internal/pkg/jwt"
	"alxtravel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	JWT          *jwt.Service
	RefreshTTL   time.Duration
	Logger       *slog.Logger
	ListingCache listing.Cache
	Hub          *notification.Hub
	CORSOrigins  []string
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Hub == nil {
		d.Hub = notification.NewHub()
	}
	metrics.Register()

	userRepo := repository.NewUserRepository(d.DB)
	listingRepo := repository.NewListingRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	refreshRepo := repository.NewRefreshTokenRepository(d.DB)

	notifier := notification.NewNotifier(d.Hub)

	authService := auth.NewService(userRepo, d.JWT, d.JWT.TTL())
	if d.RefreshTTL > 0 {
		authService.WithRefreshTokens(refreshRepo, d.RefreshTTL)
	}
	authHandler := auth.NewHandler(authService)
	listingHandler := listing.NewHandler(listing.NewService(listingRepo, d.ListingCache))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, listingRepo, notifier))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, listingRepo, notifier))
	wsHandler := notification.NewHandler(d.Hub, d.JWT, d.CORSOrigins)

	ownership := middleware.NewOwnershipChecker(listingRepo)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(d.Logger))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"time":       time.Now().UTC(),
			"ws_clients": d.Hub.OnlineCount(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		listingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterRoutes(v1, nil)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			ownerOnly := ownership.CheckListingOwnership()

			authHandler.RegisterProtectedRoutes(protected)
			listingHandler.RegisterProtectedRoutes(protected, ownerOnly)
			bookingHandler.RegisterRoutes(protected, ownerOnly)
			reviewHandler.RegisterRoutes(nil, protected)
		}
	}

	return r
}
