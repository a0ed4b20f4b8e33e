package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/ai"
	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/models"
)

// GeneratorFactory resolves a configured provider (explicit id or the global
// default) into a ready Generator.
type GeneratorFactory interface {
	ForProvider(ctx context.Context, providerID string) (ai.Generator, error)
}

// JobDescriptionService orchestrates posting generation: it assembles one
// prompt per template section, fans the vendor calls out concurrently, and
// persists the aggregate only after every call has succeeded — a failed
// generation leaves no partial job description behind.
type JobDescriptionService struct {
	db         *gorm.DB
	generators GeneratorFactory
	logger     *slog.Logger
}

func NewJobDescriptionService(db *gorm.DB, generators GeneratorFactory, logger *slog.Logger) *JobDescriptionService {
	return &JobDescriptionService{db: db, generators: generators, logger: logger}
}

// GenerateFromSession creates a draft job description from a hearing session
// and a template, generating every section's content through the configured
// provider.
func (s *JobDescriptionService) GenerateFromSession(ctx context.Context, req *dtos.CreateJobDescriptionRequest) (*models.JobDescription, error) {
	var session models.HearingSession
	err := s.db.WithContext(ctx).Preload("Responses.HearingItem").First(&session, "id = ?", req.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("hearing session not found")
	}
	if err != nil {
		return nil, err
	}

	var template models.JobTemplate
	err = s.db.WithContext(ctx).Preload("Sections", sectionsAscending).First(&template, "id = ?", req.JobTemplateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job template not found")
	}
	if err != nil {
		return nil, err
	}

	gen, err := s.generators.ForProvider(ctx, req.AIProviderID)
	if err != nil {
		return nil, err
	}

	answers := hearingAnswers(session.Responses)
	contents, err := s.generateAll(ctx, gen, template.Sections, answers)
	if err != nil {
		return nil, err
	}

	sessionID := session.ID
	description := models.JobDescription{
		Title:         req.Title,
		JobTemplateID: template.ID,
		SessionID:     &sessionID,
		Status:        models.StatusDraft,
		Sections:      make([]models.JobDescriptionSection, len(template.Sections)),
	}
	for i, sec := range template.Sections {
		description.Sections[i] = models.JobDescriptionSection{
			TemplateSectionID: sec.ID,
			Content:           contents[i],
			Order:             sec.Order,
		}
	}

	if err := s.db.WithContext(ctx).Create(&description).Error; err != nil {
		return nil, fmt.Errorf("persist job description: %w", err)
	}

	s.logger.Info("generated job description",
		"job_description", description.ID,
		"template", template.ID,
		"sections", len(description.Sections),
	)
	return s.Get(ctx, description.ID)
}

// Regenerate rebuilds every section's content from its template section's
// prompt and the original hearing answers, keeping section ids and orders.
// All new contents are generated before any of them is written.
func (s *JobDescriptionService) Regenerate(ctx context.Context, id, providerID string) (*models.JobDescription, error) {
	var description models.JobDescription
	err := s.db.WithContext(ctx).
		Preload("Sections", sectionsAscending).
		Preload("Sections.TemplateSection").
		Preload("HearingSession.Responses.HearingItem").
		First(&description, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job description not found")
	}
	if err != nil {
		return nil, err
	}
	if description.HearingSession == nil {
		return nil, models.NotFound("job description has no hearing session to regenerate from")
	}

	gen, err := s.generators.ForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	answers := hearingAnswers(description.HearingSession.Responses)

	templateSections := make([]models.JobTemplateSection, len(description.Sections))
	for i, sec := range description.Sections {
		if sec.TemplateSection == nil {
			return nil, fmt.Errorf("section %s has no template section", sec.ID)
		}
		templateSections[i] = *sec.TemplateSection
	}

	contents, err := s.generateAll(ctx, gen, templateSections, answers)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, sec := range description.Sections {
			err := tx.Model(&models.JobDescriptionSection{}).
				Where("id = ?", sec.ID).
				Update("content", contents[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist regenerated sections: %w", err)
	}
	return s.Get(ctx, id)
}

// RegenerateSection rebuilds a single section's content. The section must
// belong to the job description named by the caller.
func (s *JobDescriptionService) RegenerateSection(ctx context.Context, descriptionID, sectionID, providerID string) (*models.JobDescriptionSection, error) {
	section, err := s.GetSection(ctx, descriptionID, sectionID)
	if err != nil {
		return nil, err
	}
	if section.TemplateSection == nil {
		return nil, fmt.Errorf("section %s has no template section", section.ID)
	}

	var description models.JobDescription
	err = s.db.WithContext(ctx).
		Preload("HearingSession.Responses.HearingItem").
		First(&description, "id = ?", descriptionID).Error
	if err != nil {
		return nil, err
	}
	if description.HearingSession == nil {
		return nil, models.NotFound("job description has no hearing session to regenerate from")
	}

	gen, err := s.generators.ForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	prompt := ai.BuildPrompt(section.TemplateSection.PromptTemplate, hearingAnswers(description.HearingSession.Responses))
	content, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.JobDescriptionSection{}).
		Where("id = ?", sectionID).
		Update("content", content).Error
	if err != nil {
		return nil, err
	}
	return s.GetSection(ctx, descriptionID, sectionID)
}

// GetSection loads one section and verifies it belongs to the given job
// description.
func (s *JobDescriptionService) GetSection(ctx context.Context, descriptionID, sectionID string) (*models.JobDescriptionSection, error) {
	var section models.JobDescriptionSection
	err := s.db.WithContext(ctx).Preload("TemplateSection").First(&section, "id = ?", sectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job description section not found")
	}
	if err != nil {
		return nil, err
	}
	if section.JobDescriptionID != descriptionID {
		return nil, models.Conflict("section does not belong to the specified job description")
	}
	return &section, nil
}

// UpdateSection replaces one section's content with staff-edited text.
func (s *JobDescriptionService) UpdateSection(ctx context.Context, descriptionID, sectionID, content string) (*models.JobDescriptionSection, error) {
	if _, err := s.GetSection(ctx, descriptionID, sectionID); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.JobDescriptionSection{}).
		Where("id = ?", sectionID).
		Update("content", content).Error
	if err != nil {
		return nil, err
	}
	return s.GetSection(ctx, descriptionID, sectionID)
}

// UpdateStatus moves a description between draft and published. Setting the
// current status again is a no-op success.
func (s *JobDescriptionService) UpdateStatus(ctx context.Context, id, status string) (*models.JobDescription, error) {
	if status != models.StatusDraft && status != models.StatusPublished {
		return nil, models.Invalid(`status must be either "draft" or "published"`)
	}

	var description models.JobDescription
	err := s.db.WithContext(ctx).First(&description, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job description not found")
	}
	if err != nil {
		return nil, err
	}

	if description.Status != status {
		if err := s.db.WithContext(ctx).Model(&description).Update("status", status).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Get returns the full aggregate: sections in order with their template
// sections, the template, and the originating session.
func (s *JobDescriptionService) Get(ctx context.Context, id string) (*models.JobDescription, error) {
	var description models.JobDescription
	err := s.db.WithContext(ctx).
		Preload("JobTemplate").
		Preload("HearingSession.Industry").
		Preload("Sections", sectionsAscending).
		Preload("Sections.TemplateSection").
		First(&description, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job description not found")
	}
	if err != nil {
		return nil, err
	}
	return &description, nil
}

// List returns a page of job descriptions, newest update first.
func (s *JobDescriptionService) List(ctx context.Context, filter dtos.JobDescriptionFilter) ([]models.JobDescription, dtos.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.JobDescription{})
	if filter.SessionID != "" {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, dtos.Pagination{}, fmt.Errorf("count job descriptions: %w", err)
	}

	var descriptions []models.JobDescription
	err := q.
		Preload("JobTemplate").
		Preload("HearingSession.Industry").
		Order("updated_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&descriptions).Error
	if err != nil {
		return nil, dtos.Pagination{}, fmt.Errorf("list job descriptions: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := dtos.Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	return descriptions, pagination, nil
}

// Delete removes the aggregate and its sections.
func (s *JobDescriptionService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var description models.JobDescription
		if err := tx.First(&description, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("job description not found")
			}
			return err
		}
		if err := tx.Where("job_description_id = ?", id).Delete(&models.JobDescriptionSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&description).Error
	})
}

// generateAll runs one generation call per template section concurrently and
// joins on all of them. The first failure makes the whole batch fail;
// in-flight siblings still run to completion but nothing is persisted.
func (s *JobDescriptionService) generateAll(ctx context.Context, gen ai.Generator, sections []models.JobTemplateSection, answers []ai.QA) ([]string, error) {
	contents := make([]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			text, err := gen.GenerateText(gctx, ai.BuildPrompt(sec.PromptTemplate, answers))
			if err != nil {
				return fmt.Errorf("generate section %q: %w", sec.Title, err)
			}
			contents[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

// hearingAnswers flattens session responses into (question, answer) pairs in
// questionnaire display order.
func hearingAnswers(responses []models.HearingResponse) []ai.QA {
	sorted := make([]models.HearingResponse, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		var oi, oj int
		if sorted[i].HearingItem != nil {
			oi = sorted[i].HearingItem.Order
		}
		if sorted[j].HearingItem != nil {
			oj = sorted[j].HearingItem.Order
		}
		return oi < oj
	})

	answers := make([]ai.QA, 0, len(sorted))
	for _, r := range sorted {
		question := ""
		if r.HearingItem != nil {
			question = r.HearingItem.Question
		}
		answers = append(answers, ai.QA{Question: question, Answer: r.Answer})
	}
	return answers
}
