package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"walegrills/models"
	"walegrills/services/distance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const unresolvedDistanceMessage = "Could not retrieve distance/duration from Google"

type TripLookup interface {
	Lookup(ctx context.Context, destination string) (*models.Trip, error)
}

type DistanceHandler struct {
	Lookup TripLookup
	Logger *zap.Logger
}

func NewDistanceHandler(lookup TripLookup, logger *zap.Logger) *DistanceHandler {
	return &DistanceHandler{Lookup: lookup, Logger: logger}
}

// GetDistance resolves travel from the kitchen to ?destination= as {distance, duration}
// in miles and hours.
func (h *DistanceHandler) GetDistance(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: destination"})
		return
	}

	trip, err := h.Lookup.Lookup(c.Request.Context(), destination)
	if err != nil {
		var lookupErr *distance.LookupError
		if errors.As(err, &lookupErr) {
			getLogger(c, h.Logger).Info("Destination not resolved", zap.String("destination", destination), zap.String("status", lookupErr.Status))
			c.JSON(http.StatusBadRequest, gin.H{"error": unresolvedDistanceMessage})
			return
		}
		getLogger(c, h.Logger).Error("Distance lookup failed", zap.String("destination", destination), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}
	c.JSON(http.StatusOK, trip)
}
