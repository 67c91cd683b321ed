package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste-tracker/internal/config"
	"ewaste-tracker/internal/delivery/http/handler"
	"ewaste-tracker/internal/document"
	"ewaste-tracker/internal/infrastructure/database/postgres"
	"ewaste-tracker/internal/logger"
	"ewaste-tracker/internal/middleware"
	"ewaste-tracker/internal/notification"
	"ewaste-tracker/internal/otp"
	certificateUsecase "ewaste-tracker/internal/usecase/certificate"
	pickupUsecase "ewaste-tracker/internal/usecase/pickup"
	requestUsecase "ewaste-tracker/internal/usecase/request"
	supportUsecase "ewaste-tracker/internal/usecase/support"
	userUsecase "ewaste-tracker/internal/usecase/user"
)

// SetupRoutes wires repositories, services and handlers onto a gin engine.
// The notification workers run until ctx is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	mailer := notification.NewSMTPMailer(cfg.SMTP)
	dispatcher := notification.NewDispatcher(mailer,
		cfg.Notification.Workers, cfg.Notification.QueueSize, cfg.Notification.Timeout())
	dispatcher.Start(ctx)

	otpStore := otp.NewCacheStore(cfg.OTP.TTL())
	renderer := document.NewPDFRenderer()

	userRepository := postgres.NewUserRepository(db)
	pickupRepository := postgres.NewPickupRepository(db)
	requestRepository := postgres.NewRequestRepository(db)
	supportRepository := postgres.NewSupportRepository(db)

	userService := userUsecase.NewService(userRepository, pickupRepository, cfg)
	userHandler := handler.NewUserHandler(userService)

	requestService := requestUsecase.NewService(requestRepository, userRepository,
		pickupRepository, dispatcher, renderer)
	requestHandler := handler.NewRequestHandler(requestService)

	pickupService := pickupUsecase.NewService(requestRepository, userRepository,
		pickupRepository, otpStore, dispatcher, cfg.OTP.MaxAttempts)
	pickupHandler := handler.NewPickupHandler(pickupService)

	certificateService := certificateUsecase.NewService(userRepository, requestRepository, renderer)
	certificateHandler := handler.NewCertificateHandler(certificateService)

	supportService := supportUsecase.NewService(supportRepository)
	supportHandler := handler.NewSupportHandler(supportService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterAuthenticatedRoutes(protected)

			// Customer routes
			customer := protected.Group("")
			customer.Use(middleware.UserOnly())
			{
				requestHandler.RegisterUserRoutes(customer)
				certificateHandler.RegisterUserRoutes(customer)
				supportHandler.RegisterUserRoutes(customer)
			}

			// Pickup person routes
			pickupPerson := protected.Group("")
			pickupPerson.Use(middleware.PickupPersonOnly())
			{
				pickupHandler.RegisterPickupRoutes(pickupPerson)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				requestHandler.RegisterAdminRoutes(admin)
				pickupHandler.RegisterAdminRoutes(admin)
				userHandler.RegisterAdminRoutes(admin)
				supportHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
