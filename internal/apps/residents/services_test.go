package residents

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/testutil"
)

func newResidentService(t *testing.T) (*ResidentService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	return NewResidentService(db), db
}

func str(s string) *string { return &s }

func TestCreateResidentWritesProfileAndPreferences(t *testing.T) {
	svc, db := newResidentService(t)

	resp, err := svc.Create(&CreateResidentRequest{
		Name:    "Jan de Vries",
		Avatar:  str("🙂"),
		Support: &models.SupportFlags{Sensory: true},
		Preferences: &PreferencesPayload{
			SimplifiedLanguage: true,
			HighContrast:       true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jan de Vries", resp.Name)
	assert.True(t, resp.Support.Sensory)
	assert.True(t, resp.Preferences.SimplifiedLanguage)
	assert.False(t, resp.Preferences.LargerText)

	// The profile row always exists, even for all-false support.
	var profile models.SupportProfile
	require.NoError(t, db.First(&profile, "resident_id = ?", resp.ID).Error)
	var prefs models.ResidentPreferences
	require.NoError(t, db.First(&prefs, "resident_id = ?", resp.ID).Error)
}

func TestCreateResidentWithoutSupportDefaultsToNoNeeds(t *testing.T) {
	svc, _ := newResidentService(t)

	resp, err := svc.Create(&CreateResidentRequest{Name: "Anna Bakker"})
	require.NoError(t, err)
	assert.Equal(t, models.SupportFlags{}, resp.Support)

	flags, err := svc.SupportProfileOf(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SupportFlags{}, flags)
}

func TestGetAndListResidents(t *testing.T) {
	svc, _ := newResidentService(t)

	first, err := svc.Create(&CreateResidentRequest{Name: "Anna Bakker"})
	require.NoError(t, err)
	_, err = svc.Create(&CreateResidentRequest{Name: "Jan de Vries"})
	require.NoError(t, err)

	got, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna Bakker", got.Name)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestUpdateResident(t *testing.T) {
	svc, _ := newResidentService(t)

	created, err := svc.Create(&CreateResidentRequest{Name: "Anna Bakker"})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, &UpdateResidentRequest{Name: str("Anna de Groot")})
	require.NoError(t, err)
	assert.Equal(t, "Anna de Groot", updated.Name)

	_, err = svc.Update(uuid.New(), &UpdateResidentRequest{Name: str("Niemand")})
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestUpdateSupportReplacesAllFlags(t *testing.T) {
	svc, _ := newResidentService(t)

	created, err := svc.Create(&CreateResidentRequest{
		Name:    "Anna Bakker",
		Support: &models.SupportFlags{Motor: true, Social: true},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSupport(created.ID, models.SupportFlags{Cognitive: true}))

	flags, err := svc.SupportProfileOf(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SupportFlags{Cognitive: true}, flags)
}

func TestUpdatePreferences(t *testing.T) {
	svc, _ := newResidentService(t)

	created, err := svc.Create(&CreateResidentRequest{Name: "Anna Bakker"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePreferences(created.ID, &PreferencesPayload{LargerText: true}))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Preferences.LargerText)
	assert.False(t, got.Preferences.HighContrast)
}

func TestDeleteResidentCascades(t *testing.T) {
	svc, db := newResidentService(t)

	created, err := svc.Create(&CreateResidentRequest{Name: "Anna Bakker"})
	require.NoError(t, err)
	rid := created.ID

	activity := models.Activity{
		ID:         models.NewActivityID(),
		TemplateID: uuid.New(),
		UserID:     &rid,
		Title:      "Wandelen",
		Date:       "2026-09-01",
		Category:   models.CategoryFlexible,
		Type:       "exercise",
		Icon:       "shoe",
		Color:      "blue",
	}
	require.NoError(t, db.Create(&activity).Error)
	require.NoError(t, db.Create(&models.ActivityRequiredSupport{ActivityID: activity.ID}).Error)
	require.NoError(t, db.Create(&models.GroupActivityParticipant{
		ActivityID: models.NewActivityID(),
		ResidentID: rid,
		Name:       created.Name,
	}).Error)

	require.NoError(t, svc.Delete(rid))

	_, err = svc.Get(rid)
	assert.ErrorIs(t, err, ErrResidentNotFound)

	for _, model := range []interface{}{
		&models.Activity{},
		&models.ActivityRequiredSupport{},
		&models.GroupActivityParticipant{},
		&models.SupportProfile{},
		&models.ResidentPreferences{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestDeleteUnknownResident(t *testing.T) {
	svc, _ := newResidentService(t)
	assert.ErrorIs(t, svc.Delete(uuid.New()), ErrResidentNotFound)
}
