package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/services"
)

// HearingHandler serves industries, questionnaire items and hearing
// sessions.
type HearingHandler struct {
	hearings *services.HearingService
}

func NewHearingHandler(hearings *services.HearingService) *HearingHandler {
	return &HearingHandler{hearings: hearings}
}

// Industries is GET /industries.
func (h *HearingHandler) Industries(c *gin.Context) {
	industries, err := h.hearings.Industries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"industries": industries})
}

// Items is GET /hearing-items/:industryId.
func (h *HearingHandler) Items(c *gin.Context) {
	items, err := h.hearings.Items(c.Request.Context(), c.Param("industryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hearingItems": items})
}

// CreateSession is POST /hearing-sessions.
func (h *HearingHandler) CreateSession(c *gin.Context) {
	var req dtos.CreateHearingSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "industry ID, title and at least one response are required"})
		return
	}
	session, err := h.hearings.CreateSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListSessions is GET /hearing-sessions?industryId=.
func (h *HearingHandler) ListSessions(c *gin.Context) {
	sessions, err := h.hearings.ListSessions(c.Request.Context(), c.Query("industryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession is GET /hearing-sessions/:id.
func (h *HearingHandler) GetSession(c *gin.Context) {
	session, err := h.hearings.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
