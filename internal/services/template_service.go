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

// TemplateService manages job templates and their sections. At most one
// template per industry may be the default, and every template keeps at
// least one section.
type TemplateService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewTemplateService(db *gorm.DB, logger *slog.Logger) *TemplateService {
	return &TemplateService{db: db, logger: logger}
}

func sectionsAscending(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc")
}

func (s *TemplateService) Create(ctx context.Context, req *dtos.CreateJobTemplateRequest) (*models.JobTemplate, error) {
	template := models.JobTemplate{
		Name:        req.Name,
		IndustryID:  req.IndustryID,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		Sections:    make([]models.JobTemplateSection, len(req.Sections)),
	}
	for i, in := range req.Sections {
		section := models.JobTemplateSection{
			Title:          in.Title,
			Description:    in.Description,
			PromptTemplate: in.PromptTemplate,
			Order:          i,
			Required:       true,
		}
		if in.Order != nil {
			section.Order = *in.Order
		}
		if in.Required != nil {
			section.Required = *in.Required
		}
		template.Sections[i] = section
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			if err := clearDefaultTemplate(tx, req.IndustryID, ""); err != nil {
				return err
			}
		}
		return tx.Create(&template).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create job template: %w", err)
	}
	return s.Get(ctx, template.ID)
}

func (s *TemplateService) Update(ctx context.Context, id string, req *dtos.UpdateJobTemplateRequest) (*models.JobTemplate, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template models.JobTemplate
		if err := tx.First(&template, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("job template not found")
			}
			return err
		}

		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.IsDefault != nil {
			if *req.IsDefault {
				if err := clearDefaultTemplate(tx, template.IndustryID, id); err != nil {
					return err
				}
			}
			updates["is_default"] = *req.IsDefault
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&template).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template models.JobTemplate
		if err := tx.First(&template, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("job template not found")
			}
			return err
		}
		if err := tx.Where("job_template_id = ?", id).Delete(&models.JobTemplateSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
}

// Clone copies a template and all its sections under a new name. A clone is
// never the default.
func (s *TemplateService) Clone(ctx context.Context, id, newName string) (*models.JobTemplate, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := models.JobTemplate{
		Name:        newName,
		IndustryID:  original.IndustryID,
		Description: original.Description,
		IsDefault:   false,
		Sections:    make([]models.JobTemplateSection, len(original.Sections)),
	}
	for i, sec := range original.Sections {
		clone.Sections[i] = models.JobTemplateSection{
			Title:          sec.Title,
			Description:    sec.Description,
			PromptTemplate: sec.PromptTemplate,
			Order:          sec.Order,
			Required:       sec.Required,
		}
	}

	if err := s.db.WithContext(ctx).Create(&clone).Error; err != nil {
		return nil, fmt.Errorf("clone job template: %w", err)
	}
	return s.Get(ctx, clone.ID)
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.JobTemplate, error) {
	var template models.JobTemplate
	err := s.db.WithContext(ctx).Preload("Sections", sectionsAscending).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job template not found")
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ListByIndustry returns an industry's templates ordered by name, each with
// its sections in display order.
func (s *TemplateService) ListByIndustry(ctx context.Context, industryID string) ([]models.JobTemplate, error) {
	var templates []models.JobTemplate
	err := s.db.WithContext(ctx).
		Preload("Sections", sectionsAscending).
		Where("industry_id = ?", industryID).
		Order("name asc").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("list job templates: %w", err)
	}
	return templates, nil
}

// DefaultByIndustry returns the industry's default template, or NotFound.
func (s *TemplateService) DefaultByIndustry(ctx context.Context, industryID string) (*models.JobTemplate, error) {
	var template models.JobTemplate
	err := s.db.WithContext(ctx).
		Preload("Sections", sectionsAscending).
		First(&template, "industry_id = ? AND is_default = ?", industryID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("default template not found for this industry")
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// AddSection appends a section to a template. When no order is supplied the
// section goes after the current last one.
func (s *TemplateService) AddSection(ctx context.Context, templateID string, req *dtos.AddTemplateSectionRequest) (*models.JobTemplateSection, error) {
	var section models.JobTemplateSection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template models.JobTemplate
		if err := tx.First(&template, "id = ?", templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("job template not found")
			}
			return err
		}

		order := 0
		if req.Order != nil {
			order = *req.Order
		} else {
			var last models.JobTemplateSection
			err := tx.Where("job_template_id = ?", templateID).Order("sort_order desc").First(&last).Error
			switch {
			case err == nil:
				order = last.Order + 1
			case errors.Is(err, gorm.ErrRecordNotFound):
				order = 0
			default:
				return err
			}
		}

		section = models.JobTemplateSection{
			JobTemplateID:  templateID,
			Title:          req.Title,
			Description:    req.Description,
			PromptTemplate: req.PromptTemplate,
			Order:          order,
			Required:       true,
		}
		if req.Required != nil {
			section.Required = *req.Required
		}
		return tx.Create(&section).Error
	})
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *TemplateService) GetSection(ctx context.Context, id string) (*models.JobTemplateSection, error) {
	var section models.JobTemplateSection
	err := s.db.WithContext(ctx).First(&section, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("template section not found")
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (s *TemplateService) UpdateSection(ctx context.Context, id string, req *dtos.UpdateTemplateSectionRequest) (*models.JobTemplateSection, error) {
	section, err := s.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PromptTemplate != nil {
		updates["prompt_template"] = *req.PromptTemplate
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}
	if req.Required != nil {
		updates["required"] = *req.Required
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(section).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetSection(ctx, id)
}

// DeleteSection removes a section unless it is the template's last one;
// every template must keep at least one section.
func (s *TemplateService) DeleteSection(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section models.JobTemplateSection
		if err := tx.First(&section, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("template section not found")
			}
			return err
		}

		var remaining int64
		err := tx.Model(&models.JobTemplateSection{}).
			Where("job_template_id = ? AND id <> ?", section.JobTemplateID, id).
			Count(&remaining).Error
		if err != nil {
			return err
		}
		if remaining == 0 {
			return models.Conflict("cannot delete the only section of a template")
		}
		return tx.Delete(&section).Error
	})
}

// ReorderSections assigns each listed section its array index as the new
// order. Sections must belong to the given template.
func (s *TemplateService) ReorderSections(ctx context.Context, templateID string, refs []dtos.SectionRef) ([]models.JobTemplateSection, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var template models.JobTemplate
		if err := tx.First(&template, "id = ?", templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("job template not found")
			}
			return err
		}

		for i, ref := range refs {
			res := tx.Model(&models.JobTemplateSection{}).
				Where("id = ? AND job_template_id = ?", ref.ID, templateID).
				Update("sort_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.Invalid(fmt.Sprintf("section %s does not belong to the template", ref.ID))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListSections(ctx, templateID)
}

// ListSections returns a template's sections in display order.
func (s *TemplateService) ListSections(ctx context.Context, templateID string) ([]models.JobTemplateSection, error) {
	var template models.JobTemplate
	err := s.db.WithContext(ctx).First(&template, "id = ?", templateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NotFound("job template not found")
	}
	if err != nil {
		return nil, err
	}

	var sections []models.JobTemplateSection
	err = s.db.WithContext(ctx).
		Where("job_template_id = ?", templateID).
		Order("sort_order asc").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// clearDefaultTemplate unsets the default flag within one industry, except
// for the template being promoted.
func clearDefaultTemplate(tx *gorm.DB, industryID, exceptID string) error {
	q := tx.Model(&models.JobTemplate{}).
		Where("industry_id = ? AND is_default = ?", industryID, true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}
