package routes

import (
	"canteen-api/handlers"
	"canteen-api/middleware"
	"canteen-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes needs to wire.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Menu      *handlers.MenuHandler
	Cart      *handlers.CartHandler
	Orders    *handlers.OrderHandler
	Accounts  *handlers.AccountHandler
	Feedback  *handlers.FeedbackHandler
	Recommend *handlers.RecommendHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/forgot-password", h.Auth.ForgotPassword)

		// Menu as orderable right now (no auth needed)
		public.GET("/menu", h.Menu.GetAvailableMenu)
		public.GET("/menu/:itemId", h.Menu.GetItem)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.Orders.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", h.Auth.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/cart", h.Cart.GetCart)
		customer.POST("/cart", h.Cart.AddToCart)
		customer.PUT("/cart", h.Cart.SetQuantity)
		customer.DELETE("/cart", h.Cart.RemoveFromCart)
		customer.DELETE("/cart/all", h.Cart.ClearCart)

		customer.POST("/orders", h.Orders.PlaceOrder)
		customer.GET("/orders", h.Orders.GetMyOrders)
		customer.GET("/orders/:code", h.Orders.GetOrderDetail)
		customer.PUT("/orders/:code/cancel", h.Orders.CancelOrder)

		customer.POST("/feedback", h.Feedback.SubmitFeedback)
		customer.POST("/recommendations", h.Recommend.GetRecommendations)
	}

	// ── Staff routes (admin and superadmin) ────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
	{
		// Menu management
		staff.GET("/menu", h.Menu.GetFullMenu)
		staff.POST("/menu", h.Menu.AddMenuItem)
		staff.PUT("/menu/:itemId", h.Menu.UpdateMenuItem)
		staff.DELETE("/menu/:itemId", h.Menu.DeleteMenuItem)

		// Order lifecycle and billing
		staff.GET("/orders", h.Orders.GetAllOrders)
		staff.PUT("/orders/:code/status", h.Orders.UpdateOrderStatus)
		staff.PUT("/orders/:code/settle", h.Orders.SettleOrder)
		staff.PUT("/accounts/:accountId/settle-bills", h.Orders.SettleAccountBills)

		staff.GET("/feedback", h.Feedback.ListFeedback)
	}

	// ── Superadmin routes ──────────────────────────────────────────
	super := r.Group("/api/superadmin")
	super.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleSuperAdmin))
	{
		super.GET("/accounts", h.Accounts.ListAccounts)
		super.POST("/accounts", h.Accounts.AddAccount)
		super.PUT("/accounts/:id", h.Accounts.UpdateAccount)
		super.DELETE("/accounts/:id", h.Accounts.DeleteAccount)
		super.PUT("/accounts/:id/password", h.Accounts.ChangePassword)
		super.POST("/accounts/reset-all-passwords", h.Accounts.ResetAllPasswords)

		super.GET("/reset-requests", h.Accounts.ListResetRequests)
		super.PUT("/reset-requests/:requestId/resolve", h.Accounts.ResolveReset)
	}
}
