package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/testutil"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	svc := NewSettingsService(testutil.OpenDB(t))

	require.NoError(t, svc.SeedDefaults())

	// An operator override survives re-seeding.
	_, err := svc.Set(models.SettingFlexibleCap, "5", "int")
	require.NoError(t, err)
	require.NoError(t, svc.SeedDefaults())

	assert.Equal(t, 5, svc.IntValue(models.SettingFlexibleCap, 3))
	assert.Equal(t, 8, svc.IntValue(models.SettingGroupMaxParticipants, 0))

	all, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetValidatesIntValues(t *testing.T) {
	svc := NewSettingsService(testutil.OpenDB(t))

	_, err := svc.Set("schedule.flexible_cap", "four", "int")
	assert.Error(t, err)

	setting, err := svc.Set("facility.name", "De Regenboog", "string")
	require.NoError(t, err)
	assert.Equal(t, "De Regenboog", setting.Value)
}

func TestSetUpsertsExistingKey(t *testing.T) {
	svc := NewSettingsService(testutil.OpenDB(t))

	_, err := svc.Set(models.SettingFlexibleCap, "2", "int")
	require.NoError(t, err)
	_, err = svc.Set(models.SettingFlexibleCap, "4", "int")
	require.NoError(t, err)

	assert.Equal(t, 4, svc.IntValue(models.SettingFlexibleCap, 3))

	all, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIntValueFallsBack(t *testing.T) {
	svc := NewSettingsService(testutil.OpenDB(t))

	assert.Equal(t, 3, svc.IntValue("missing.key", 3))

	_, err := svc.Set("broken.key", "not-a-number", "string")
	require.NoError(t, err)
	assert.Equal(t, 7, svc.IntValue("broken.key", 7))
}

func TestDeleteSetting(t *testing.T) {
	svc := NewSettingsService(testutil.OpenDB(t))

	_, err := svc.Set("facility.name", "De Regenboog", "string")
	require.NoError(t, err)
	require.NoError(t, svc.Delete("facility.name"))

	assert.ErrorIs(t, svc.Delete("facility.name"), ErrSettingNotFound)
}
