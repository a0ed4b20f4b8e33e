package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/dtos"
	"github.com/ymgta/jobdraft-api/internal/models"
)

func newTemplateService(t *testing.T) (*TemplateService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewTemplateService(db, testLogger()), db
}

func TestTemplateCreateOrdersSectionsByIndex(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")

	template, err := svc.Create(context.Background(), &dtos.CreateJobTemplateRequest{
		Name:       "Standard",
		IndustryID: industry.ID,
		Sections: []dtos.CreateTemplateSectionInput{
			{Title: "Overview", PromptTemplate: "Write the overview."},
			{Title: "Requirements", PromptTemplate: "Write the requirements."},
		},
	})
	require.NoError(t, err)
	require.Len(t, template.Sections, 2)
	assert.Equal(t, 0, template.Sections[0].Order)
	assert.Equal(t, 1, template.Sections[1].Order)
	assert.True(t, template.Sections[0].Required)
}

func TestTemplateDefaultIsPerIndustry(t *testing.T) {
	svc, db := newTemplateService(t)
	industryA, _ := seedIndustry(t, db, "IT")
	industryB, _ := seedIndustry(t, db, "Retail")

	mkTemplate := func(industryID, name string, isDefault bool) *models.JobTemplate {
		template, err := svc.Create(context.Background(), &dtos.CreateJobTemplateRequest{
			Name:       name,
			IndustryID: industryID,
			IsDefault:  isDefault,
			Sections: []dtos.CreateTemplateSectionInput{
				{Title: "Overview", PromptTemplate: "Write the overview."},
			},
		})
		require.NoError(t, err)
		return template
	}

	mkTemplate(industryA.ID, "A first", true)
	secondA := mkTemplate(industryA.ID, "A second", true)
	defaultB := mkTemplate(industryB.ID, "B only", true)

	gotA, err := svc.DefaultByIndustry(context.Background(), industryA.ID)
	require.NoError(t, err)
	assert.Equal(t, secondA.ID, gotA.ID)

	// Promoting within one industry leaves the other industry's default alone.
	gotB, err := svc.DefaultByIndustry(context.Background(), industryB.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultB.ID, gotB.ID)
}

func TestTemplateCloneCopiesSectionsNeverDefault(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	original, err := svc.Create(context.Background(), &dtos.CreateJobTemplateRequest{
		Name:       "Standard",
		IndustryID: industry.ID,
		IsDefault:  true,
		Sections: []dtos.CreateTemplateSectionInput{
			{Title: "Overview", PromptTemplate: "Write the overview."},
			{Title: "Requirements", PromptTemplate: "Write the requirements."},
		},
	})
	require.NoError(t, err)

	clone, err := svc.Clone(context.Background(), original.ID, "Standard copy")
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, clone.ID)
	assert.Equal(t, "Standard copy", clone.Name)
	assert.False(t, clone.IsDefault)
	require.Len(t, clone.Sections, 2)
	for i, sec := range clone.Sections {
		assert.NotEqual(t, original.Sections[i].ID, sec.ID)
		assert.Equal(t, original.Sections[i].Title, sec.Title)
		assert.Equal(t, original.Sections[i].PromptTemplate, sec.PromptTemplate)
		assert.Equal(t, original.Sections[i].Order, sec.Order)
	}

	// The original stays the industry default.
	def, err := svc.DefaultByIndustry(context.Background(), industry.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, def.ID)
}

func TestTemplateAddSectionAppendsAfterLast(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	template := seedTemplate(t, db, industry.ID, "Standard", "Overview", "Requirements")

	section, err := svc.AddSection(context.Background(), template.ID, &dtos.AddTemplateSectionRequest{
		Title:          "Benefits",
		PromptTemplate: "Write the benefits.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, section.Order)
	assert.True(t, section.Required)
}

func TestTemplateDeleteLastSectionRejected(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	template := seedTemplate(t, db, industry.ID, "Standard", "Overview", "Requirements")

	require.NoError(t, svc.DeleteSection(context.Background(), template.Sections[0].ID))

	err := svc.DeleteSection(context.Background(), template.Sections[1].ID)
	assert.ErrorIs(t, err, models.ErrConflict)

	sections, err := svc.ListSections(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestTemplateReorderSections(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	template := seedTemplate(t, db, industry.ID, "Standard", "Overview", "Requirements", "Benefits")

	reordered, err := svc.ReorderSections(context.Background(), template.ID, []dtos.SectionRef{
		{ID: template.Sections[2].ID},
		{ID: template.Sections[0].ID},
		{ID: template.Sections[1].ID},
	})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, template.Sections[2].ID, reordered[0].ID)
	assert.Equal(t, template.Sections[0].ID, reordered[1].ID)
	assert.Equal(t, template.Sections[1].ID, reordered[2].ID)
	for i, sec := range reordered {
		assert.Equal(t, i, sec.Order)
	}
}

func TestTemplateReorderRejectsForeignSection(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	template := seedTemplate(t, db, industry.ID, "Standard", "Overview")
	other := seedTemplate(t, db, industry.ID, "Other", "Overview")

	_, err := svc.ReorderSections(context.Background(), template.ID, []dtos.SectionRef{
		{ID: other.Sections[0].ID},
	})
	assert.ErrorIs(t, err, models.ErrInvalid)
}

func TestTemplateDeleteRemovesSections(t *testing.T) {
	svc, db := newTemplateService(t)
	industry, _ := seedIndustry(t, db, "IT")
	template := seedTemplate(t, db, industry.ID, "Standard", "Overview", "Requirements")

	require.NoError(t, svc.Delete(context.Background(), template.ID))

	_, err := svc.Get(context.Background(), template.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.JobTemplateSection{}).Where("job_template_id = ?", template.ID).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}
