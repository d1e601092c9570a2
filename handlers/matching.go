package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"gigmatch/models"
	"gigmatch/services/matching"
	"gigmatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationInvalidator drops cached recommendations for an event.
type RecommendationInvalidator interface {
	Invalidate(ctx context.Context, eventID string) error
}

// MatchingHandler serves the musician matching endpoints.
type MatchingHandler struct {
	Service matching.MatchingService
	// Cache is nil when caching is disabled.
	Cache RecommendationInvalidator
}

func NewMatchingHandler(svc matching.MatchingService, cache RecommendationInvalidator) *MatchingHandler {
	return &MatchingHandler{Service: svc, Cache: cache}
}

// SearchMusiciansHandler ranks musicians for an event. The body is an optional
// criteria override.
func (h *MatchingHandler) SearchMusiciansHandler(c *gin.Context) {
	logger := utils.LoggerFromContext(c)
	eventID := c.Param("id")

	var override *models.SearchCriteria
	var body models.SearchCriteria
	if err := c.ShouldBindJSON(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Warn("Invalid search override", zap.String("eventId", eventID), zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Invalid search criteria", err.Error())
			return
		}
	} else {
		override = &body
	}

	results, err := h.Service.SearchMusiciansForEventID(c.Request.Context(), eventID, override)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"eventId":   eventID,
		"count":     len(results),
		"musicians": models.NewMatchResultResponses(results),
	})
}

// GetRecommendedMusiciansHandler returns the top ranked musicians for an event.
func (h *MatchingHandler) GetRecommendedMusiciansHandler(c *gin.Context) {
	eventID := c.Param("id")

	results, err := h.Service.GetRecommendedMusicians(c.Request.Context(), eventID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"eventId":   eventID,
		"count":     len(results),
		"musicians": models.NewMatchResultResponses(results),
	})
}

// InvalidateRecommendationsHandler drops the cached recommendations of an event.
func (h *MatchingHandler) InvalidateRecommendationsHandler(c *gin.Context) {
	eventID := strings.TrimSpace(c.Param("id"))
	if eventID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "event id is required")
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Invalidate(c.Request.Context(), eventID); err != nil {
			utils.LoggerFromContext(c).Error("Failed to invalidate recommendations", zap.String("eventId", eventID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to invalidate recommendations", "")
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// ParseDurationHandler previews how a duration string is interpreted.
func (h *MatchingHandler) ParseDurationHandler(c *gin.Context) {
	value := c.Query("value")
	c.JSON(http.StatusOK, gin.H{
		"duration": value,
		"minutes":  matching.ParseDuration(value),
	})
}

// DistanceHandler previews the distance estimate between two locations.
func (h *MatchingHandler) DistanceHandler(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "from and to are required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":       from,
		"to":         to,
		"distanceKm": matching.CalculateDistance(from, to),
	})
}

func (h *MatchingHandler) writeError(c *gin.Context, err error) {
	var matchErr *matching.MatchError
	switch {
	case matching.IsValidationError(err):
		errors.As(err, &matchErr)
		utils.JSONError(c, http.StatusBadRequest, "Invalid search criteria", matchErr.Message)
	case matching.IsNotFoundError(err):
		errors.As(err, &matchErr)
		utils.JSONError(c, http.StatusNotFound, "Event not found", matchErr.Message)
	default:
		utils.LoggerFromContext(c).Error("Musician search failed", zap.String("eventId", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to search musicians", "")
	}
}
