package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ymgta/jobdraft-api/internal/database"
	"github.com/ymgta/jobdraft-api/internal/models"
)

// openTestDB opens an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedIndustry creates an industry with a two-question hearing form and
// returns it with its items in display order.
func seedIndustry(t *testing.T, db *gorm.DB, name string) (models.Industry, []models.HearingItem) {
	t.Helper()
	industry := models.Industry{Name: name}
	require.NoError(t, db.Create(&industry).Error)

	items := []models.HearingItem{
		{IndustryID: industry.ID, Question: "Role title?", InputType: models.InputTypeText, Required: true, Order: 0},
		{IndustryID: industry.ID, Question: "Location?", InputType: models.InputTypeText, Order: 1},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return industry, items
}

// seedSession records a completed hearing for the given items.
func seedSession(t *testing.T, db *gorm.DB, industryID string, items []models.HearingItem, answers ...string) models.HearingSession {
	t.Helper()
	session := models.HearingSession{IndustryID: industryID, Title: "hearing"}
	for i, item := range items {
		answer := "answer"
		if i < len(answers) {
			answer = answers[i]
		}
		session.Responses = append(session.Responses, models.HearingResponse{
			HearingItemID: item.ID,
			Answer:        answer,
		})
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

// seedTemplate creates a template with the given section prompt templates.
func seedTemplate(t *testing.T, db *gorm.DB, industryID, name string, prompts ...string) models.JobTemplate {
	t.Helper()
	template := models.JobTemplate{IndustryID: industryID, Name: name}
	for i, prompt := range prompts {
		template.Sections = append(template.Sections, models.JobTemplateSection{
			Title:          prompt,
			PromptTemplate: prompt,
			Order:          i,
			Required:       true,
		})
	}
	require.NoError(t, db.Create(&template).Error)
	return template
}
