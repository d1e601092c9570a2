package routes

import (
	"time"

	"gigmatch/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMatchingRoutes registers the event matching endpoints.
func RegisterMatchingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	events := r.Group("/api/events/:id/musicians")
	{
		events.POST("/search", hb.SearchMusiciansHandler)
		events.GET("/recommended", hb.GetRecommendedMusiciansHandler)
		events.DELETE("/recommended", hb.InvalidateRecommendationsHandler)
	}

	preview := r.Group("/api/matching")
	{
		preview.GET("/duration", hb.ParseDurationHandler)
		preview.GET("/distance", hb.DistanceHandler)
	}
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterMatchingRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
}
