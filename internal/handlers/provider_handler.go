package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/services"
)

// ProviderHandler exposes the AI provider registry. Stored API keys are
// never echoed back; responses carry the mask placeholder instead.
type ProviderHandler struct {
	providers *services.ProviderService
}

func NewProviderHandler(providers *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// List is GET /ai-providers. ?name= filters by substring, ?provider= by kind.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providers.List(c.Request.Context(), c.Query("name"), c.Query("provider"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": dtos.NewAIProviderResponses(providers)})
}

// Create is POST /ai-providers.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req dtos.CreateAIProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, provider, model name and API key are required"})
		return
	}
	provider, err := h.providers.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": dtos.NewAIProviderResponse(provider)})
}

// Get is GET /ai-providers/:id.
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.providers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": dtos.NewAIProviderResponse(provider)})
}

// Update is PUT /ai-providers/:id. An apiKey equal to the mask placeholder
// keeps the stored credential.
func (h *ProviderHandler) Update(c *gin.Context) {
	var req dtos.UpdateAIProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	provider, err := h.providers.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": dtos.NewAIProviderResponse(provider)})
}

// Delete is DELETE /ai-providers/:id.
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.providers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
