package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/models"
)

// HearingService serves the questionnaire reference data and records
// completed hearing sessions.
type HearingService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewHearingService(db *gorm.DB, logger *slog.Logger) *HearingService {
	return &HearingService{db: db, logger: logger}
}

// Industries returns all industries ordered by name.
func (s *HearingService) Industries(ctx context.Context) ([]models.Industry, error) {
	var industries []models.Industry
	if err := s.db.WithContext(ctx).Order("name asc").Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	return industries, nil
}

// Items returns an industry's questionnaire in display order.
func (s *HearingService) Items(ctx context.Context, industryID string) ([]models.HearingItem, error) {
	var industry models.Industry
	err := s.db.WithContext(ctx).First(&industry, "id = ?", industryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("industry not found")
	}
	if err != nil {
		return nil, err
	}

	var items []models.HearingItem
	err = s.db.WithContext(ctx).
		Where("industry_id = ?", industryID).
		Order("sort_order asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list hearing items: %w", err)
	}
	return items, nil
}

// CreateSession stores one completed questionnaire. Every answer must
// reference a distinct hearing item belonging to the session's industry.
func (s *HearingService) CreateSession(ctx context.Context, req *dtos.CreateHearingSessionRequest) (*models.HearingSession, error) {
	var session models.HearingSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var industry models.Industry
		if err := tx.First(&industry, "id = ?", req.IndustryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("industry not found")
			}
			return err
		}

		var items []models.HearingItem
		if err := tx.Where("industry_id = ?", req.IndustryID).Find(&items).Error; err != nil {
			return err
		}
		known := make(map[string]bool, len(items))
		for _, item := range items {
			known[item.ID] = true
		}

		seen := make(map[string]bool, len(req.Responses))
		responses := make([]models.HearingResponse, len(req.Responses))
		for i, in := range req.Responses {
			if !known[in.HearingItemID] {
				return models.Invalid("hearing item does not belong to the industry")
			}
			if seen[in.HearingItemID] {
				return models.Invalid("duplicate response for hearing item")
			}
			seen[in.HearingItemID] = true
			responses[i] = models.HearingResponse{
				HearingItemID: in.HearingItemID,
				Answer:        in.Answer,
			}
		}

		session = models.HearingSession{
			IndustryID: req.IndustryID,
			Title:      req.Title,
			Responses:  responses,
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, session.ID)
}

// GetSession returns a session with its answers and their questions.
func (s *HearingService) GetSession(ctx context.Context, id string) (*models.HearingSession, error) {
	var session models.HearingSession
	err := s.db.WithContext(ctx).
		Preload("Industry").
		Preload("Responses.HearingItem").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("hearing session not found")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns sessions newest first, optionally for one industry.
func (s *HearingService) ListSessions(ctx context.Context, industryID string) ([]models.HearingSession, error) {
	q := s.db.WithContext(ctx).Preload("Industry").Order("created_at desc")
	if industryID != "" {
		q = q.Where("industry_id = ?", industryID)
	}
	var sessions []models.HearingSession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list hearing sessions: %w", err)
	}
	return sessions, nil
}
