package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ibumus/warung-backend/config"
	"github.com/ibumus/warung-backend/internal/app/controller"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/app/service"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/ibumus/warung-backend/internal/middleware"
	"github.com/ibumus/warung-backend/internal/realtime"
	"github.com/ibumus/warung-backend/internal/router"
	"github.com/ibumus/warung-backend/internal/scheduler"
	"github.com/ibumus/warung-backend/internal/storage"
	"github.com/ibumus/warung-backend/internal/websocket"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/redis"
	"github.com/ibumus/warung-backend/pkg/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Warung IbuMus Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the bootstrap admin account
	if err := db.Seed(db.GetDB()); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis backs the logout token blacklist; absence degrades gracefully
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	menuRepo := repository.NewMenuItemRepository(db.GetDB())
	bannerRepo := repository.NewBannerRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Realtime fan-out: feed -> notifier -> telegram + websocket hub
	feed := realtime.NewFeed()
	defer feed.Close()

	hub := websocket.NewHub()
	go hub.Run()

	telegramClient := telegram.NewClient(telegram.Config{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		BaseURL:  cfg.Telegram.BaseURL,
	})

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo)
	authService := service.NewAuthService(
		userRepo,
		notificationRepo,
		notificationService,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	menuService := service.NewMenuService(categoryRepo, menuRepo)
	bannerService := service.NewBannerService(bannerRepo)
	cartService := service.NewCartService(cartRepo, menuRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, menuRepo, notificationService, feed)
	analyticsService := service.NewAnalyticsService(orderRepo, userRepo, menuRepo)
	userService := service.NewUserService(userRepo)

	notifier := service.NewOrderNotifier(telegramClient, hub)
	unsubscribe := notifier.Start(feed)
	defer unsubscribe()

	// Catch-up digest for orders the back office missed
	digest := scheduler.NewOrderDigestScheduler(cfg.Scheduler.OrderDigestSpec, orderRepo, telegramClient)
	if telegramClient.Enabled() {
		if err := digest.Start(); err != nil {
			logger.Warn("Order digest scheduler not running", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer digest.Stop()
	} else {
		logger.Info("Telegram not configured, order digest scheduler disabled", nil)
	}

	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	menuController := controller.NewMenuController(menuService)
	bannerController := controller.NewBannerController(bannerService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	notificationController := controller.NewNotificationController(notificationService)
	adminController := controller.NewAdminController(analyticsService, userService)
	uploadController := controller.NewUploadController(s3Storage)
	wsController := controller.NewWSController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		menuController,
		bannerController,
		cartController,
		orderController,
		notificationController,
		adminController,
		uploadController,
		wsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
