package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pasarKarya/app/echo-server/router"
	"pasarKarya/business/curation"
	"pasarKarya/business/curator"
	"pasarKarya/business/orders"
	"pasarKarya/business/product"
	"pasarKarya/business/redeem"
	userService "pasarKarya/business/user"
	"pasarKarya/internal/middleware"
	"pasarKarya/internal/repository/notification"
	psqlRepo "pasarKarya/internal/repository/postgres"
	redisRepo "pasarKarya/internal/repository/redis"
	"pasarKarya/internal/repository/storage"
	"pasarKarya/internal/rest"
	"pasarKarya/pkg/config"
	"pasarKarya/pkg/database"
	redisdb "pasarKarya/pkg/database/redis"
	"pasarKarya/pkg/logger"
	"pasarKarya/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PasarKarya", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	metrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	storageRepo := storage.NewStorageRepository(
		storage.StorageConfig{
			BaseURL:   cfg.Storage.StorageBaseUrl,
			Bucket:    cfg.Storage.StorageBucket,
			SecretKey: cfg.Storage.StorageSecretKey,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	curationRepo := psqlRepo.NewCurationRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	redeemRepo := psqlRepo.NewRedeemRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	otpRepo := redisRepo.NewOTPRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, otpRepo, tokenRepo, cfg.App.AppResetLinkKey, cfg.App.AppDeploymentUrl)
	productSvc := product.NewProductService(productRepo, storageRepo)
	curationSvc := curation.NewCurationService(curationRepo, productRepo, userRepo)
	curatorSvc := curator.NewCuratorService(userRepo, mailjetEmail)
	ordersSvc := orders.NewOrdersService(ordersRepo, productRepo)
	redeemSvc := redeem.NewRedeemService(redeemRepo, userRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc)
	curationHandler := rest.NewCurationHandler(curationSvc)
	curatorHandler := rest.NewCuratorHandler(curatorSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	redeemHandler := rest.NewRedeemHandler(redeemSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware validates the JWT and the Redis session
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired)
	router.SetupCurationRoutes(api, curationHandler, authRequired)
	router.SetupCuratorRoutes(api, curatorHandler, authRequired)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)
	router.SetRedeemRoutes(api, redeemHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
