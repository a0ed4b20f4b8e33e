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

func newProviderService(t *testing.T) (*ProviderService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewProviderService(db, testLogger()), db
}

func countDefaults(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AIProvider{}).Where("is_default = ?", true).Count(&n).Error)
	return n
}

func createProvider(t *testing.T, svc *ProviderService, name string, isDefault bool) *models.AIProvider {
	t.Helper()
	provider, err := svc.Create(context.Background(), &dtos.CreateAIProviderRequest{
		Name:      name,
		Provider:  "openai",
		ModelName: "gpt-4o",
		APIKey:    "sk-" + name,
		IsDefault: isDefault,
	})
	require.NoError(t, err)
	return provider
}

func TestProviderCreateAppliesDefaults(t *testing.T) {
	svc, _ := newProviderService(t)

	provider := createProvider(t, svc, "primary", false)
	assert.NotEmpty(t, provider.ID)
	assert.Equal(t, 0.7, provider.Temperature)
	assert.Equal(t, 4000, provider.MaxTokens)
	assert.False(t, provider.IsDefault)
}

func TestProviderCreateDefaultDisplacesPrevious(t *testing.T) {
	svc, db := newProviderService(t)

	first := createProvider(t, svc, "first", true)
	second := createProvider(t, svc, "second", true)

	assert.EqualValues(t, 1, countDefaults(t, db))
	current, err := svc.Default(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	reloaded, err := svc.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestProviderUpdatePromotesDefault(t *testing.T) {
	svc, db := newProviderService(t)

	createProvider(t, svc, "first", true)
	second := createProvider(t, svc, "second", false)

	yes := true
	updated, err := svc.Update(context.Background(), second.ID, &dtos.UpdateAIProviderRequest{IsDefault: &yes})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestProviderUpdateMaskedKeyKeepsStoredCredential(t *testing.T) {
	svc, db := newProviderService(t)
	provider := createProvider(t, svc, "primary", false)

	mask := dtos.APIKeyMask
	_, err := svc.Update(context.Background(), provider.ID, &dtos.UpdateAIProviderRequest{APIKey: &mask})
	require.NoError(t, err)

	var stored models.AIProvider
	require.NoError(t, db.First(&stored, "id = ?", provider.ID).Error)
	assert.Equal(t, "sk-primary", stored.APIKey)

	newKey := "sk-rotated"
	_, err = svc.Update(context.Background(), provider.ID, &dtos.UpdateAIProviderRequest{APIKey: &newKey})
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, "id = ?", provider.ID).Error)
	assert.Equal(t, "sk-rotated", stored.APIKey)
}

func TestProviderUpdateNotFound(t *testing.T) {
	svc, _ := newProviderService(t)

	name := "renamed"
	_, err := svc.Update(context.Background(), "missing", &dtos.UpdateAIProviderRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProviderDeleteDefaultPromotesSurvivor(t *testing.T) {
	svc, db := newProviderService(t)

	def := createProvider(t, svc, "default", true)
	createProvider(t, svc, "survivor", false)

	require.NoError(t, svc.Delete(context.Background(), def.ID))

	assert.EqualValues(t, 1, countDefaults(t, db))
	current, err := svc.Default(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "survivor", current.Name)
}

func TestProviderDeleteLastLeavesNoDefault(t *testing.T) {
	svc, _ := newProviderService(t)
	only := createProvider(t, svc, "only", true)

	require.NoError(t, svc.Delete(context.Background(), only.ID))

	_, err := svc.Default(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProviderDeleteNotFound(t *testing.T) {
	svc, _ := newProviderService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), models.ErrNotFound)
}

func TestProviderListFilters(t *testing.T) {
	svc, _ := newProviderService(t)
	createProvider(t, svc, "Team GPT", false)
	createProvider(t, svc, "Backup GPT", false)
	claude, err := svc.Create(context.Background(), &dtos.CreateAIProviderRequest{
		Name:      "Claude",
		Provider:  "anthropic",
		ModelName: "claude-sonnet-4-5",
		APIKey:    "sk-ant",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Ordered by name.
	assert.Equal(t, "Backup GPT", all[0].Name)

	byName, err := svc.List(context.Background(), "gpt", "")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byKind, err := svc.List(context.Background(), "", "anthropic")
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	assert.Equal(t, claude.ID, byKind[0].ID)
}
