package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Matching endpoints
	SearchMusiciansHandler           gin.HandlerFunc
	GetRecommendedMusiciansHandler   gin.HandlerFunc
	InvalidateRecommendationsHandler gin.HandlerFunc

	// Preview endpoints
	ParseDurationHandler gin.HandlerFunc
	DistanceHandler      gin.HandlerFunc

	// Operational endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from a matching handler and the
// operational endpoints.
func NewHandlerBundle(mh *MatchingHandler, health, metrics gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		SearchMusiciansHandler:           mh.SearchMusiciansHandler,
		GetRecommendedMusiciansHandler:   mh.GetRecommendedMusiciansHandler,
		InvalidateRecommendationsHandler: mh.InvalidateRecommendationsHandler,
		ParseDurationHandler:             mh.ParseDurationHandler,
		DistanceHandler:                  mh.DistanceHandler,
		HealthHandler:                    health,
		MetricsHandler:                   metrics,
	}
}
