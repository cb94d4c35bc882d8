package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/config"
	"github.com/ibumus/warung-backend/internal/app/controller"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	menuController         *controller.MenuController
	bannerController       *controller.BannerController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	notificationController *controller.NotificationController
	adminController        *controller.AdminController
	uploadController       *controller.UploadController
	wsController           *controller.WSController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	menuController *controller.MenuController,
	bannerController *controller.BannerController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	notificationController *controller.NotificationController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	wsController *controller.WSController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		menuController:         menuController,
		bannerController:       bannerController,
		cartController:         cartController,
		orderController:        orderController,
		notificationController: notificationController,
		adminController:        adminController,
		uploadController:       uploadController,
		wsController:           wsController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Warung IbuMus API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.menuController.GetCategories)
		}

		menu := v1.Group("/menu")
		{
			// OptionalAuthenticate lets admin sessions see unavailable items
			menu.GET("", r.authMiddleware.OptionalAuthenticate(), r.menuController.GetMenuItems)
			menu.GET("/popular", r.menuController.GetPopularItems)
			menu.GET("/:id", r.menuController.GetMenuItem)
		}

		banners := v1.Group("/banners")
		{
			banners.GET("", r.bannerController.GetBanners)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.PATCH("/:id", r.cartController.UpdateItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.GET("/unread/count", r.notificationController.GetUnreadCount)
			notifications.POST("/read", r.notificationController.MarkAllRead)
			notifications.POST("/:id/read", r.notificationController.MarkRead)
		}

		// The realtime order feed; auth accepts ?token= for browser clients
		v1.GET("/ws", r.authMiddleware.Authenticate(), r.wsController.HandleWebSocket)

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/stats", r.adminController.GetDashboardStats)
			admin.GET("/stats/revenue", r.adminController.GetRevenueByDay)
			admin.GET("/stats/popular", r.adminController.GetPopularMenu)

			admin.GET("/users", r.adminController.GetUsers)
			admin.PATCH("/users/:id/role", r.adminController.UpdateUserRole)

			admin.POST("/categories", r.menuController.CreateCategory)
			admin.PUT("/categories/:id", r.menuController.UpdateCategory)
			admin.DELETE("/categories/:id", r.menuController.DeleteCategory)

			admin.POST("/menu", r.menuController.CreateMenuItem)
			admin.PUT("/menu/:id", r.menuController.UpdateMenuItem)
			admin.PATCH("/menu/:id/availability", r.menuController.SetAvailability)
			admin.DELETE("/menu/:id", r.menuController.DeleteMenuItem)

			admin.GET("/banners", r.bannerController.GetAllBanners)
			admin.POST("/banners", r.bannerController.CreateBanner)
			admin.PUT("/banners/:id", r.bannerController.UpdateBanner)
			admin.DELETE("/banners/:id", r.bannerController.DeleteBanner)

			admin.GET("/orders", r.orderController.GetAllOrders)
			admin.GET("/orders/export", r.adminController.ExportOrders)
			admin.PATCH("/orders/:id/status", r.orderController.UpdateOrderStatus)
			admin.GET("/orders/unnotified", r.orderController.GetUnnotifiedOrders)
			admin.GET("/orders/unnotified/count", r.orderController.GetUnnotifiedCount)
			admin.POST("/orders/notified", r.orderController.MarkAllNotified)
			admin.POST("/orders/:id/notified", r.orderController.MarkNotified)

			admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
