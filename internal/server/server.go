// Package server assembles the HTTP API from its modules.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coderr/internal/config"
	"coderr/internal/middleware"
	"coderr/internal/modules/auth"
	"coderr/internal/modules/offer"
	"coderr/internal/modules/order"
	"coderr/internal/modules/profile"
	"coderr/internal/modules/review"
	"coderr/internal/modules/stats"
	jwtsvc "coderr/internal/pkg/jwt"
	"coderr/internal/pkg/response"
	"coderr/internal/repository"
)

// NewRouter wires repositories, services and handlers under /api.
func NewRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j, cfg.BcryptCost)
	offerService := offer.NewService(offerRepo)
	orderService := order.NewService(orderRepo, offerRepo, userRepo)
	reviewService := review.NewService(reviewRepo, profileRepo)
	profileService := profile.NewService(profileRepo)
	statsService := stats.NewService(statsRepo)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Authenticate(authService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		response.Detail(c, http.StatusNotFound, "Not found.")
	})

	api := r.Group("/api")
	{
		auth.NewHandler(authService).RegisterRoutes(api)
		offer.NewHandler(offerService).RegisterRoutes(api)
		order.NewHandler(orderService).RegisterRoutes(api)
		review.NewHandler(reviewService).RegisterRoutes(api)
		profile.NewHandler(profileService).RegisterRoutes(api)
		stats.NewHandler(statsService).RegisterRoutes(api)
	}
	return r
}
