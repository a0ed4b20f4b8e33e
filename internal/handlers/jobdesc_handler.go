package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/services"
)

// JobDescriptionHandler serves generated job descriptions and their
// sections.
type JobDescriptionHandler struct {
	descriptions *services.JobDescriptionService
}

func NewJobDescriptionHandler(descriptions *services.JobDescriptionService) *JobDescriptionHandler {
	return &JobDescriptionHandler{descriptions: descriptions}
}

// List is GET /job-descriptions?sessionId=&status=&page=&limit=.
func (h *JobDescriptionHandler) List(c *gin.Context) {
	filter := dtos.JobDescriptionFilter{
		SessionID: c.Query("sessionId"),
		Status:    c.Query("status"),
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	descriptions, pagination, err := h.descriptions.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobDescriptions": descriptions,
		"pagination":      pagination,
	})
}

// Create is POST /job-descriptions. It runs the full generation flow
// before anything is persisted.
func (h *JobDescriptionHandler) Create(c *gin.Context) {
	var req dtos.CreateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, session ID and template ID are required"})
		return
	}
	description, err := h.descriptions.GenerateFromSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"jobDescription": description})
}

// Get is GET /job-descriptions/:id.
func (h *JobDescriptionHandler) Get(c *gin.Context) {
	description, err := h.descriptions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobDescription": description})
}

// Regenerate is POST /job-descriptions/:id/regenerate. Every section is
// rebuilt from the original hearing session.
func (h *JobDescriptionHandler) Regenerate(c *gin.Context) {
	var req dtos.RegenerateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	description, err := h.descriptions.Regenerate(c.Request.Context(), c.Param("id"), req.AIProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobDescription": description})
}

// UpdateStatus is PUT /job-descriptions/:id.
func (h *JobDescriptionHandler) UpdateStatus(c *gin.Context) {
	var req dtos.UpdateJobDescriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	description, err := h.descriptions.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobDescription": description})
}

// Delete is DELETE /job-descriptions/:id.
func (h *JobDescriptionHandler) Delete(c *gin.Context) {
	if err := h.descriptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSection is GET /job-descriptions/:id/sections/:sectionId.
func (h *JobDescriptionHandler) GetSection(c *gin.Context) {
	section, err := h.descriptions.GetSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// UpdateSection is PUT /job-descriptions/:id/sections/:sectionId.
func (h *JobDescriptionHandler) UpdateSection(c *gin.Context) {
	var req dtos.UpdateJobDescriptionSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	section, err := h.descriptions.UpdateSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// RegenerateSection is POST /job-descriptions/:id/sections/:sectionId/regenerate.
func (h *JobDescriptionHandler) RegenerateSection(c *gin.Context) {
	var req dtos.RegenerateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	section, err := h.descriptions.RegenerateSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"), req.AIProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}
