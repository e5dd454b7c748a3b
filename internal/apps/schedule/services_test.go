package schedule

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dagcentrum/backend/internal/apps/catalog"
	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/dagcentrum/backend/internal/testutil"
)

const testDate = "2026-09-01"

func newScheduleService(t *testing.T) (*ScheduleService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	return NewScheduleService(db, residents.NewResidentService(db), services.NewSettingsService(db)), db
}

func seedResident(t *testing.T, db *gorm.DB, flags models.SupportFlags) uuid.UUID {
	t.Helper()
	resp, err := residents.NewResidentService(db).Create(&residents.CreateResidentRequest{
		Name:    "Jan de Vries",
		Support: &flags,
	})
	require.NoError(t, err)
	return resp.ID
}

func seedTemplate(t *testing.T, db *gorm.DB, title, category string, support *models.SupportFlags) uuid.UUID {
	t.Helper()
	resp, err := catalog.NewTemplateService(db).Create(&catalog.CreateTemplateRequest{
		Title:    title,
		Category: category,
		Type:     "other",
		Icon:     "star",
		Color:    "blue",
		Support:  support,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestGenerateFixedActivitiesAtCanonicalSlots(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})

	seedTemplate(t, db, "Ontbijt", models.CategoryFixed, nil)
	seedTemplate(t, db, "Medicatie", models.CategoryFixed, nil)
	seedTemplate(t, db, "Lunch", models.CategoryFixed, nil)
	seedTemplate(t, db, "Avondeten", models.CategoryFixed, nil)

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, out, 4)

	slots := map[string][2]string{}
	for _, a := range out {
		require.NotNil(t, a.StartTime, a.Title)
		require.NotNil(t, a.EndTime, a.Title)
		slots[a.Title] = [2]string{*a.StartTime, *a.EndTime}
	}
	assert.Equal(t, [2]string{"08:00", "09:00"}, slots["Ontbijt"])
	assert.Equal(t, [2]string{"09:15", "09:30"}, slots["Medicatie"])
	assert.Equal(t, [2]string{"12:30", "13:30"}, slots["Lunch"])
	assert.Equal(t, [2]string{"18:00", "19:00"}, slots["Avondeten"])
}

func TestGenerateUsesStableCompositeIDs(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})
	tmplID := seedTemplate(t, db, "Ontbijt", models.CategoryFixed, nil)

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.GeneratedActivityID(tmplID, residentID, testDate), out[0].ID)
	assert.Equal(t, fmt.Sprintf("activity-%s-%s-%s", tmplID, residentID, testDate), out[0].ID)

	// Regenerating mints the exact same identity.
	again, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, out[0].ID, again[0].ID)
}

func TestGenerateFiltersFlexibleByEligibility(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{Motor: true})

	seedTemplate(t, db, "Wandelen", models.CategoryFlexible, &models.SupportFlags{Motor: true})
	seedTemplate(t, db, "Muziek luisteren", models.CategoryFlexible, &models.SupportFlags{Social: true})

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Muziek luisteren", out[0].Title)
}

func TestGenerateCapsFlexibleSelection(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})

	for i := 0; i < 6; i++ {
		seedTemplate(t, db, fmt.Sprintf("Activiteit %d", i), models.CategoryFlexible, nil)
	}

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	assert.Len(t, out, 3)

	// Selected activities occupy the flexible slots in order.
	starts := []string{}
	for _, a := range out {
		require.NotNil(t, a.StartTime)
		starts = append(starts, *a.StartTime)
	}
	assert.ElementsMatch(t, []string{"10:00", "14:00", "16:00"}, starts)
}

func TestGenerateRespectsFlexibleCapSetting(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})

	settings := services.NewSettingsService(db)
	_, err := settings.Set(models.SettingFlexibleCap, "2", "int")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		seedTemplate(t, db, fmt.Sprintf("Activiteit %d", i), models.CategoryFlexible, nil)
	}

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestGenerateSeededShuffleIsReproducible(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})

	for i := 0; i < 8; i++ {
		seedTemplate(t, db, fmt.Sprintf("Activiteit %d", i), models.CategoryFlexible, nil)
	}

	titlesWithSeed := func(seed int64) []string {
		svc.WithShuffle(rand.New(rand.NewSource(seed)).Shuffle)
		out, err := svc.Generate(residentID, testDate)
		require.NoError(t, err)
		titles := make([]string, 0, len(out))
		for _, a := range out {
			titles = append(titles, a.Title)
		}
		return titles
	}

	first := titlesWithSeed(42)
	second := titlesWithSeed(42)
	assert.Equal(t, first, second)
}

func TestGenerateClearsPreviousRun(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})

	seedTemplate(t, db, "Ontbijt", models.CategoryFixed, nil)
	for i := 0; i < 6; i++ {
		seedTemplate(t, db, fmt.Sprintf("Activiteit %d", i), models.CategoryFlexible, nil)
	}

	_, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	_, err = svc.Generate(residentID, testDate)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).
		Where("user_id = ? AND date = ?", residentID, testDate).
		Count(&count).Error)
	assert.EqualValues(t, 4, count)

	// Support rows track activities one-to-one; no orphans survive a rerun.
	var supportCount int64
	require.NoError(t, db.Model(&models.ActivityRequiredSupport{}).Count(&supportCount).Error)
	assert.Equal(t, count, supportCount)
}

func TestGenerateLeavesOtherDatesAlone(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})
	seedTemplate(t, db, "Ontbijt", models.CategoryFixed, nil)

	_, err := svc.Generate(residentID, "2026-09-01")
	require.NoError(t, err)
	_, err = svc.Generate(residentID, "2026-09-02")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).
		Where("user_id = ? AND date = ?", residentID, "2026-09-01").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGenerateUnknownResident(t *testing.T) {
	svc, _ := newScheduleService(t)

	_, err := svc.Generate(uuid.New(), testDate)
	assert.ErrorIs(t, err, residents.ErrResidentNotFound)
}

func TestListDayIncludesGroupActivities(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})
	tmplID := seedTemplate(t, db, "Samen koken", models.CategoryGroup, nil)

	group := models.Activity{
		ID:         models.NewActivityID(),
		TemplateID: tmplID,
		Title:      "Samen koken",
		Date:       testDate,
		Category:   models.CategoryGroup,
		Type:       "social",
		Icon:       "pot",
		Color:      "green",
	}
	require.NoError(t, db.Create(&group).Error)

	out, err := svc.ListDay(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, group.ID, out[0].ID)
	assert.Nil(t, out[0].UserID)
}

func TestSetCompletedRecordsHistory(t *testing.T) {
	svc, db := newScheduleService(t)
	residentID := seedResident(t, db, models.SupportFlags{})
	seedTemplate(t, db, "Ontbijt", models.CategoryFixed, nil)

	out, err := svc.Generate(residentID, testDate)
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NoError(t, svc.SetCompleted(out[0].ID, true))

	var activity models.Activity
	require.NoError(t, db.First(&activity, "id = ?", out[0].ID).Error)
	assert.True(t, activity.Completed)

	var history models.ActivityHistory
	require.NoError(t, db.First(&history, "activity_id = ?", out[0].ID).Error)
	assert.Equal(t, residentID, history.ResidentID)
	assert.Equal(t, testDate, history.Date)
	assert.True(t, history.Completed)

	// Toggling back clears the flag but keeps the history entry.
	require.NoError(t, svc.SetCompleted(out[0].ID, false))
	require.NoError(t, db.First(&activity, "id = ?", out[0].ID).Error)
	assert.False(t, activity.Completed)
}

func TestSetCompletedUnknownActivity(t *testing.T) {
	svc, _ := newScheduleService(t)
	assert.ErrorIs(t, svc.SetCompleted("activity-missing", true), ErrActivityNotFound)
}
