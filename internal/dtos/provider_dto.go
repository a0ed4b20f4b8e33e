package dtos

import (
	"time"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// APIKeyMask is the placeholder echoed instead of stored credentials. An
// update carrying exactly this value means "keep the stored key".
const APIKeyMask = "********"

type CreateAIProviderRequest struct {
	Name        string   `json:"name" binding:"required"`
	Provider    string   `json:"provider" binding:"required"`
	ModelName   string   `json:"modelName" binding:"required"`
	APIKey      string   `json:"apiKey" binding:"required"`
	BaseURL     string   `json:"baseUrl"`
	IsDefault   bool     `json:"isDefault"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"maxTokens"`
}

type UpdateAIProviderRequest struct {
	Name        *string  `json:"name"`
	Provider    *string  `json:"provider"`
	ModelName   *string  `json:"modelName"`
	APIKey      *string  `json:"apiKey"`
	BaseURL     *string  `json:"baseUrl"`
	IsDefault   *bool    `json:"isDefault"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"maxTokens"`
}

// AIProviderResponse mirrors the stored provider with the credential masked.
type AIProviderResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	ModelName   string    `json:"modelName"`
	APIKey      string    `json:"apiKey"`
	BaseURL     string    `json:"baseUrl"`
	IsDefault   bool      `json:"isDefault"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"maxTokens"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewAIProviderResponse(p *models.AIProvider) AIProviderResponse {
	return AIProviderResponse{
		ID:          p.ID,
		Name:        p.Name,
		Provider:    p.Provider,
		ModelName:   p.ModelName,
		APIKey:      APIKeyMask,
		BaseURL:     p.BaseURL,
		IsDefault:   p.IsDefault,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewAIProviderResponses(providers []models.AIProvider) []AIProviderResponse {
	out := make([]AIProviderResponse, len(providers))
	for i := range providers {
		out[i] = NewAIProviderResponse(&providers[i])
	}
	return out
}
