package routes

import (
	"time"

	"walegrills/handlers"
	"walegrills/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the catering checkout endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.POST("/session", hb.InitiateBookingSession)

		session := api.Group("/session/:sessionID")
		session.Use(middleware.SessionTokenMiddleware(hb.Tokens, handlers.FlowBooking))
		session.GET("", hb.GetBookingSession)
		session.PUT("/personal-info", hb.UpdatePersonalInfo)
		session.PUT("/event-details", hb.UpdateEventDetails)
		session.PUT("/items", hb.UpdateItems)
		session.PUT("/payment-option", hb.SetPaymentOption)
		session.POST("/step", hb.NavigateBooking)
		session.GET("/quote", hb.GetQuote)
		session.POST("/confirm", hb.ConfirmBooking)
		session.DELETE("", hb.CancelBookingSession)
	}
}

// RegisterMealRoutes sets up the meal subscription endpoints.
func RegisterMealRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/meals")
	{
		api.POST("/session", hb.InitiateMealSession)

		session := api.Group("/session/:sessionID")
		session.Use(middleware.SessionTokenMiddleware(hb.Tokens, handlers.FlowMeals))
		session.GET("", hb.GetMealSession)
		session.PUT("/plan", hb.SelectPlan)
		session.POST("/meals/:productID/increase", hb.IncreaseMeal)
		session.POST("/meals/:productID/decrease", hb.DecreaseMeal)
		session.POST("/proceed", hb.ProceedMeals)
		session.POST("/back", hb.BackMeals)
		session.POST("/order", hb.PlaceMealOrder)
		session.DELETE("", hb.CancelMealSession)
	}
}

// RegisterCatalogRoutes exposes the cached product and plan listings.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/products", hb.GetProducts)
		api.GET("/plans", hb.GetPlans)
	}
}

// RegisterDistanceRoute registers the distance proxy at GET /api?destination=.
func RegisterDistanceRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api", hb.GetDistance)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterMealRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterDistanceRoute(r, hb)
	RegisterHealthRoute(r, hb)
}
