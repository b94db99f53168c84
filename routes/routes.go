package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"yumres/handlers"
	"yumres/middleware"
)

// RegisterRestaurantRoutes registers restaurant profile and table endpoints.
func RegisterRestaurantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/restaurant")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.GetRestaurantHandler)
		api.PATCH("", hb.UpdateRestaurantHandler)
		api.GET("/tables", hb.ListTablesHandler)
		api.POST("/tables", hb.CreateTableHandler)
		api.PATCH("/tables/:tableId", hb.UpdateTableHandler)
		api.DELETE("/tables/:tableId", hb.DeleteTableHandler)
	}
}

// RegisterReservationRoutes registers reservation and availability endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListReservationsHandler)
		api.POST("", hb.CreateReservationHandler)
		api.GET("/availability", hb.CheckAvailabilityHandler)
		api.GET("/:id", hb.GetReservationHandler)
		api.PATCH("/:id", hb.UpdateReservationHandler)
		api.PUT("/:id/status", hb.UpdateReservationStatusHandler)
		api.DELETE("/:id", hb.DeleteReservationHandler)
	}
}

// RegisterConversationRoutes registers the dashboard inbox endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListConversationsHandler)
		api.GET("/:id", hb.GetConversationHandler)
		api.PUT("/:id/assign", hb.AssignConversationHandler)
		api.PUT("/:id/resolve", hb.ResolveConversationHandler)
		api.PUT("/:id/archive", hb.ArchiveConversationHandler)
		api.POST("/:id/reply", hb.SendAgentReplyHandler)
	}
}

// RegisterWebhookRoutes registers the vendor webhook endpoints. These are
// unauthenticated at the JWT layer; each provider validates its own
// signature.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/webhooks/whatsapp")
	{
		api.GET("/:restaurantId", hb.VerifyWebhookHandler)
		api.POST("/:restaurantId", hb.ReceiveWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Yumres"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRestaurantRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterConversationRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
