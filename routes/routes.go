package routes

import (
	"net/http"
	"time"

	"sokoni/config"
	"sokoni/handlers"
	"sokoni/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes.
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfileHandler)
		api.POST("/logout", hb.Users.LogoutHandler)
		api.PUT("/fcm-token", hb.Users.UpdateFCMTokenHandler)
	}
}

// RegisterSellerRoutes registers the seller onboarding endpoints.
func RegisterSellerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sellers")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/requests", hb.Sellers.SubmitRequestHandler)
		api.GET("/requests/me", hb.Sellers.GetMyRequestHandler)
		api.GET("/me", hb.Sellers.GetMyProfileHandler)
	}
}

// RegisterSubscriptionRoutes registers the subscription activation
// endpoints. The gateway callback is public: its authenticity comes from
// re-verifying the transaction, not from a session.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.POST("/callback/:subscriptionId", hb.Subscriptions.CallbackHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.POST("/initiate", hb.Subscriptions.InitiateHandler)
		protected.GET("/me", hb.Subscriptions.GetCurrentHandler)
	}
}

// RegisterWithdrawalRoutes registers seller payout endpoints.
func RegisterWithdrawalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/withdrawals")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.Withdrawals.RequestHandler)
		api.GET("/me", hb.Withdrawals.ListMineHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.Notifications.ListHandler)
		api.PUT("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

// RegisterCategoryRoutes registers the category catalog.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/categories", hb.Categories.ListHandler)
}

// RegisterStorageRoutes registers document and media upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/upload/:bucket", hb.Storage.UploadFileHandler)
	}
}

// RegisterAdminRoutes registers review and back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.RequireAdminMiddleware())

		adminGroup.GET("/seller-requests", hb.Sellers.ListRequestsHandler)
		adminGroup.GET("/seller-requests/:id", hb.Sellers.GetRequestHandler)
		adminGroup.PUT("/seller-requests/:id", hb.Sellers.ReviewRequestHandler)

		adminGroup.GET("/withdrawals", hb.Withdrawals.ListAllHandler)
		adminGroup.GET("/withdrawals/:id", hb.Withdrawals.GetHandler)
		adminGroup.PUT("/withdrawals/:id/status", hb.Withdrawals.UpdateStatusHandler)

		adminGroup.POST("/categories", hb.Categories.CreateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Sokoni"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterUserRoutes(r, hb)
	RegisterSellerRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterWithdrawalRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterCategoryRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
