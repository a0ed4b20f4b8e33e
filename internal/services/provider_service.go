package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/models"
)

// ProviderService manages the AI provider registry. The registry holds at
// most one default provider at any time; every write that touches the
// default flag runs clear-then-set inside one transaction.
type ProviderService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProviderService(db *gorm.DB, logger *slog.Logger) *ProviderService {
	return &ProviderService{db: db, logger: logger}
}

func (s *ProviderService) Create(ctx context.Context, req *dtos.CreateAIProviderRequest) (*models.AIProvider, error) {
	provider := models.AIProvider{
		Name:        req.Name,
		Provider:    req.Provider,
		ModelName:   req.ModelName,
		APIKey:      req.APIKey,
		BaseURL:     req.BaseURL,
		IsDefault:   req.IsDefault,
		Temperature: 0.7,
		MaxTokens:   4000,
	}
	if req.Temperature != nil {
		provider.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		provider.MaxTokens = *req.MaxTokens
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if provider.IsDefault {
			if err := clearDefaultProvider(tx, ""); err != nil {
				return err
			}
		}
		return tx.Create(&provider).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}
	return &provider, nil
}

func (s *ProviderService) Update(ctx context.Context, id string, req *dtos.UpdateAIProviderRequest) (*models.AIProvider, error) {
	var provider models.AIProvider
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&provider, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("AI provider not found")
			}
			return err
		}

		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Provider != nil {
			updates["provider"] = *req.Provider
		}
		if req.ModelName != nil {
			updates["model_name"] = *req.ModelName
		}
		// The mask placeholder means the credential was not changed.
		if req.APIKey != nil && strings.TrimSpace(*req.APIKey) != dtos.APIKeyMask {
			updates["api_key"] = *req.APIKey
		}
		if req.BaseURL != nil {
			updates["base_url"] = *req.BaseURL
		}
		if req.Temperature != nil {
			updates["temperature"] = *req.Temperature
		}
		if req.MaxTokens != nil {
			updates["max_tokens"] = *req.MaxTokens
		}
		if req.IsDefault != nil {
			if *req.IsDefault {
				if err := clearDefaultProvider(tx, id); err != nil {
					return err
				}
			}
			updates["is_default"] = *req.IsDefault
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&provider).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&provider, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// Delete removes a provider. If the deleted provider was the default, any
// one remaining provider is promoted; callers must not rely on which.
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.AIProvider
		if err := tx.First(&provider, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("AI provider not found")
			}
			return err
		}

		if provider.IsDefault {
			var successor models.AIProvider
			err := tx.First(&successor, "id <> ?", id).Error
			switch {
			case err == nil:
				if err := tx.Model(&successor).Update("is_default", true).Error; err != nil {
					return err
				}
				s.logger.Info("promoted AI provider to default", "provider", successor.Name)
			case errors.Is(err, gorm.ErrRecordNotFound):
				// No provider left; generation without an explicit id will
				// fail with "no AI provider configured" until one is added.
			default:
				return err
			}
		}

		return tx.Delete(&provider).Error
	})
}

func (s *ProviderService) Get(ctx context.Context, id string) (*models.AIProvider, error) {
	var provider models.AIProvider
	err := s.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("AI provider not found")
	}
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// Default returns the unique default provider, or NotFound when none exists.
func (s *ProviderService) Default(ctx context.Context) (*models.AIProvider, error) {
	var provider models.AIProvider
	err := s.db.WithContext(ctx).First(&provider, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("no default AI provider configured")
	}
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// List returns providers ordered by name, optionally narrowed by a
// case-insensitive name substring or an exact provider kind.
func (s *ProviderService) List(ctx context.Context, name, kind string) ([]models.AIProvider, error) {
	q := s.db.WithContext(ctx).Order("name asc")
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if kind != "" {
		q = q.Where("provider = ?", kind)
	}
	var providers []models.AIProvider
	if err := q.Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("list AI providers: %w", err)
	}
	return providers, nil
}

// clearDefaultProvider unsets the default flag on every provider except the
// one being promoted.
func clearDefaultProvider(tx *gorm.DB, exceptID string) error {
	q := tx.Model(&models.AIProvider{}).Where("is_default = ?", true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}
