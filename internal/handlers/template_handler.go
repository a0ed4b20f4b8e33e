package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/services"
)

// TemplateHandler exposes job template and template section CRUD.
type TemplateHandler struct {
	templates *services.TemplateService
}

func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List is GET /job-templates?industryId=.
func (h *TemplateHandler) List(c *gin.Context) {
	industryID := c.Query("industryId")
	if industryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "industry ID is required"})
		return
	}
	templates, err := h.templates.ListByIndustry(c.Request.Context(), industryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Default is GET /job-templates/default?industryId=.
func (h *TemplateHandler) Default(c *gin.Context) {
	industryID := c.Query("industryId")
	if industryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "industry ID is required"})
		return
	}
	template, err := h.templates.DefaultByIndustry(c.Request.Context(), industryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

// Create is POST /job-templates.
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dtos.CreateJobTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, industry ID, and at least one section with title and prompt template are required"})
		return
	}
	template, err := h.templates.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// Get is GET /job-templates/:id.
func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

// Update is PUT /job-templates/:id.
func (h *TemplateHandler) Update(c *gin.Context) {
	var req dtos.UpdateJobTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	template, err := h.templates.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

// Delete is DELETE /job-templates/:id.
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clone is POST /job-templates/:id/clone.
func (h *TemplateHandler) Clone(c *gin.Context) {
	var req dtos.CloneJobTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new name is required"})
		return
	}
	template, err := h.templates.Clone(c.Request.Context(), c.Param("id"), req.NewName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// ListSections is GET /job-templates/:id/sections.
func (h *TemplateHandler) ListSections(c *gin.Context) {
	sections, err := h.templates.ListSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// AddSection is POST /job-templates/:id/sections.
func (h *TemplateHandler) AddSection(c *gin.Context) {
	var req dtos.AddTemplateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and prompt template are required"})
		return
	}
	section, err := h.templates.AddSection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// ReorderSections is PUT /job-templates/:id/sections. Sections take their
// array index as the new display order.
func (h *TemplateHandler) ReorderSections(c *gin.Context) {
	var req dtos.ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sections array is required"})
		return
	}
	sections, err := h.templates.ReorderSections(c.Request.Context(), c.Param("id"), req.Sections)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// GetSection is GET /job-templates/sections/:id.
func (h *TemplateHandler) GetSection(c *gin.Context) {
	section, err := h.templates.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// UpdateSection is PUT /job-templates/sections/:id.
func (h *TemplateHandler) UpdateSection(c *gin.Context) {
	var req dtos.UpdateTemplateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	section, err := h.templates.UpdateSection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// DeleteSection is DELETE /job-templates/sections/:id. Deleting a
// template's last remaining section is rejected.
func (h *TemplateHandler) DeleteSection(c *gin.Context) {
	if err := h.templates.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
