package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/testutil"
)

func newTemplateService(t *testing.T) (*TemplateService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	return NewTemplateService(db), db
}

func str(s string) *string { return &s }

func createTemplate(t *testing.T, svc *TemplateService, title, category string, support *models.SupportFlags) *TemplateResponse {
	t.Helper()
	resp, err := svc.Create(&CreateTemplateRequest{
		Title:    title,
		Category: category,
		Type:     "exercise",
		Icon:     "shoe",
		Color:    "blue",
		Support:  support,
	})
	require.NoError(t, err)
	return resp
}

// instantiate mimics schedule generation: one activity row plus its support
// row, derived from the template.
func instantiateFrom(t *testing.T, db *gorm.DB, tmpl *TemplateResponse, residentID uuid.UUID, date string) string {
	t.Helper()
	rid := residentID
	activity := models.Activity{
		ID:         models.GeneratedActivityID(tmpl.ID, residentID, date),
		TemplateID: tmpl.ID,
		UserID:     &rid,
		Title:      tmpl.Title,
		Date:       date,
		Category:   tmpl.Category,
		Type:       tmpl.Type,
		Icon:       tmpl.Icon,
		Color:      tmpl.Color,
	}
	require.NoError(t, db.Create(&activity).Error)
	require.NoError(t, db.Create(&models.ActivityRequiredSupport{ActivityID: activity.ID, Flags: tmpl.Support}).Error)
	return activity.ID
}

func TestCreateAndGetTemplate(t *testing.T) {
	svc, _ := newTemplateService(t)

	created := createTemplate(t, svc, "Wandelen", models.CategoryFlexible, &models.SupportFlags{Motor: true})

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wandelen", got.Title)
	assert.Equal(t, models.CategoryFlexible, got.Category)
	assert.True(t, got.Support.Motor)
	assert.False(t, got.Support.Social)
}

func TestCreateTemplateWithDisabilityMeta(t *testing.T) {
	svc, _ := newTemplateService(t)

	resp, err := svc.Create(&CreateTemplateRequest{
		Title:    "Filmavond",
		Category: models.CategoryGroup,
		Type:     "entertainment",
		Icon:     "film",
		Color:    "purple",
		DisabilityMeta: &models.DisabilityMeta{
			NotSuitableFor:        []string{"sensory"},
			RequiredAttentionSpan: 90,
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DisabilityMeta)
	assert.Equal(t, []string{"sensory"}, got.DisabilityMeta.NotSuitableFor)
	assert.Equal(t, 90, got.DisabilityMeta.RequiredAttentionSpan)
}

func TestListByCategory(t *testing.T) {
	svc, _ := newTemplateService(t)

	createTemplate(t, svc, "Ontbijt", models.CategoryFixed, nil)
	createTemplate(t, svc, "Wandelen", models.CategoryFlexible, nil)
	createTemplate(t, svc, "Zwemmen", models.CategoryFlexible, nil)

	flexible, err := svc.ListByCategory(models.CategoryFlexible)
	require.NoError(t, err)
	require.Len(t, flexible, 2)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetUnknownTemplate(t *testing.T) {
	svc, _ := newTemplateService(t)
	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestUpdatePropagatesSupportToActivities(t *testing.T) {
	svc, db := newTemplateService(t)

	tmpl := createTemplate(t, svc, "Wandelen", models.CategoryFlexible, &models.SupportFlags{Motor: true})
	residentID := uuid.New()
	activityID := instantiateFrom(t, db, tmpl, residentID, "2026-09-01")

	updated, err := svc.Update(tmpl.ID, &UpdateTemplateRequest{
		Support: &models.SupportFlags{Motor: true, Social: true},
	})
	require.NoError(t, err)
	assert.True(t, updated.Support.Social)

	var support models.ActivityRequiredSupport
	require.NoError(t, db.First(&support, "activity_id = ?", activityID).Error)
	assert.True(t, support.Flags.Motor)
	assert.True(t, support.Flags.Social)
}

func TestUpdatePropagatesDisplayFields(t *testing.T) {
	svc, db := newTemplateService(t)

	tmpl := createTemplate(t, svc, "Wandelen", models.CategoryFlexible, nil)
	activityID := instantiateFrom(t, db, tmpl, uuid.New(), "2026-09-01")

	_, err := svc.Update(tmpl.ID, &UpdateTemplateRequest{
		Title: str("Wandelen in het park"),
		Color: str("green"),
	})
	require.NoError(t, err)

	var activity models.Activity
	require.NoError(t, db.First(&activity, "id = ?", activityID).Error)
	assert.Equal(t, "Wandelen in het park", activity.Title)
	assert.Equal(t, "green", activity.Color)
}

func TestUpdateDoesNotTouchOtherTemplatesActivities(t *testing.T) {
	svc, db := newTemplateService(t)

	wandelen := createTemplate(t, svc, "Wandelen", models.CategoryFlexible, nil)
	zwemmen := createTemplate(t, svc, "Zwemmen", models.CategoryFlexible, nil)
	otherID := instantiateFrom(t, db, zwemmen, uuid.New(), "2026-09-01")

	_, err := svc.Update(wandelen.ID, &UpdateTemplateRequest{
		Support: &models.SupportFlags{Cognitive: true},
	})
	require.NoError(t, err)

	var support models.ActivityRequiredSupport
	require.NoError(t, db.First(&support, "activity_id = ?", otherID).Error)
	assert.False(t, support.Flags.Cognitive)
}

func TestDeleteCascadesToActivities(t *testing.T) {
	svc, db := newTemplateService(t)

	tmpl := createTemplate(t, svc, "Wandelen", models.CategoryFlexible, nil)
	activityID := instantiateFrom(t, db, tmpl, uuid.New(), "2026-09-01")
	require.NoError(t, db.Create(&models.GroupActivityParticipant{
		ActivityID: activityID,
		ResidentID: uuid.New(),
		Name:       "Anna Bakker",
	}).Error)

	require.NoError(t, svc.Delete(tmpl.ID))

	_, err := svc.Get(tmpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	for _, model := range []interface{}{
		&models.Activity{},
		&models.ActivityRequiredSupport{},
		&models.GroupActivityParticipant{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestDeleteUnknownTemplate(t *testing.T) {
	svc, _ := newTemplateService(t)
	assert.ErrorIs(t, svc.Delete(uuid.New()), ErrTemplateNotFound)
}
