package main

import (
	"log"
	"net/http"
	"os"

	"canteen-api/cart"
	"canteen-api/config"
	"canteen-api/handlers"
	"canteen-api/recommend"
	"canteen-api/routes"
	"canteen-api/services"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms/openai"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Core services
	cartStore := cart.NewStore()
	catalogService := services.NewCatalogService(config.DB)
	cartService := services.NewCartService(config.DB, cartStore)
	orderService := services.NewOrderService(config.DB, cartStore, config.TaxRate)
	accountService := services.NewAccountService(config.DB)
	feedbackService := services.NewFeedbackService(config.DB)

	// Recommendation collaborator is optional: no API key, no feature
	var generator recommend.Generator
	if os.Getenv("OPENAI_API_KEY") != "" {
		llm, err := openai.New()
		if err != nil {
			log.Printf("⚠️  Recommendation model unavailable: %v", err)
		} else {
			generator = recommend.NewLLMGenerator(llm)
		}
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Canteen Ordering & Billing API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍛 Welcome to the Canteen Ordering & Billing API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "admin", "superadmin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(accountService),
		Menu:      handlers.NewMenuHandler(catalogService),
		Cart:      handlers.NewCartHandler(cartService),
		Orders:    handlers.NewOrderHandler(orderService),
		Accounts:  handlers.NewAccountHandler(accountService),
		Feedback:  handlers.NewFeedbackHandler(feedbackService),
		Recommend: handlers.NewRecommendHandler(orderService, generator),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
