// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/config"
	"github.com/meridianmade/storefront/internal/handlers"
	"github.com/meridianmade/storefront/internal/middleware"
	"github.com/meridianmade/storefront/internal/repository"
	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Repositories
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	// Services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)
	stripeGateway := services.NewStripeGateway(cfg)

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db, productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(productRepo, stripeGateway)
	webhookService := services.NewWebhookService(orderRepo, productRepo, notificationService, storageService, cfg)
	orderAdminService := services.NewOrderAdminService(orderRepo)
	contentService := services.NewContentService(db)
	blastService := services.NewBlastService(subscriberRepo, notificationService, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	orderHandler := handlers.NewOrderHandler(orderAdminService)
	contentHandler := handlers.NewContentHandler(contentService)
	blastHandler := handlers.NewBlastHandler(blastService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public storefront
		v1.GET("/products", productHandler.GetProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/events", contentHandler.GetEvents)
		v1.GET("/gallery", contentHandler.GetGallery)
		v1.GET("/partners", contentHandler.GetPartners)
		v1.POST("/subscribe", contentHandler.Subscribe)

		// Cart
		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:productId", cartHandler.UpdateItem)
			cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		}

		// Checkout
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.CheckoutRateLimit())
		{
			checkout.POST("/session", checkoutHandler.CreateSession)
		}

		// Payment provider webhooks; authenticated by signature, not JWT
		v1.POST("/webhooks/stripe", webhookHandler.HandleStripeWebhook)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/login", middleware.AuthRateLimit(), authHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				// Products
				protected.GET("/products", productHandler.ListProducts)
				protected.POST("/products", productHandler.CreateProduct)
				protected.PUT("/products/:id", productHandler.UpdateProduct)
				protected.DELETE("/products/:id", productHandler.DeleteProduct)
				protected.POST("/products/upload-images", productHandler.UploadProductImages)
				protected.POST("/products/upload-digital", productHandler.UploadDigitalFile)

				// Orders
				protected.GET("/orders", orderHandler.ListOrders)
				protected.GET("/orders/:id", orderHandler.GetOrder)
				protected.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
				protected.PUT("/orders/:id/tracking", orderHandler.AttachTracking)
				protected.POST("/orders/:id/notes", orderHandler.AppendOrderNote)

				// Events
				protected.GET("/events", contentHandler.ListEvents)
				protected.POST("/events", contentHandler.CreateEvent)
				protected.PUT("/events/:id", contentHandler.UpdateEvent)
				protected.DELETE("/events/:id", contentHandler.DeleteEvent)

				// Gallery
				protected.POST("/gallery", contentHandler.CreateGalleryImage)
				protected.DELETE("/gallery/:id", contentHandler.DeleteGalleryImage)

				// Partners
				protected.POST("/partners", contentHandler.CreatePartner)
				protected.DELETE("/partners/:id", contentHandler.DeletePartner)

				// Subscribers
				protected.GET("/subscribers", contentHandler.ListSubscribers)
				protected.DELETE("/subscribers/:id", contentHandler.Unsubscribe)

				// Settings
				protected.GET("/settings", contentHandler.ListSettings)
				protected.PUT("/settings", contentHandler.UpsertSetting)

				// Blast
				protected.POST("/blast", middleware.BlastRateLimit(), blastHandler.SendBlast)
			}
		}
	}

	return r
}
