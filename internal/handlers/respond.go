package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/jobdraft-api/internal/ai"
	"github.com/ymgta/jobdraft-api/internal/models"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// failure body is {"error": message}.
func respondError(c *gin.Context, err error) {
	var perr *ai.ProviderError

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalid),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, ai.ErrNoProviderConfigured),
		errors.Is(err, ai.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
