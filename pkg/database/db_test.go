package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.Config{DataPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	return db
}

func TestSaveAndFindSchedule(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	shifts := []models.Shift{{ID: "Open", Start: "08:00", End: "12:00", Days: models.Days{models.Monday}}}
	table := models.NewAssignmentTable(shifts)
	table.Add("Open", models.Monday, "Alice")

	saved, err := SaveSchedule(ctx, db, 1, "week 1", shifts, table, true, 99)
	require.NoError(t, err)
	assert.Len(t, saved.PublicID, 36)

	found, err := FindSchedule(ctx, db, 1, saved.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "week 1", found.Name)
	assert.True(t, found.UsedFallback)
	assert.Equal(t, int64(99), found.Seed)

	gotShifts, err := found.Shifts()
	require.NoError(t, err)
	assert.Equal(t, shifts, gotShifts)

	gotTable, err := found.Assignments()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, gotTable.Slot("Open", models.Monday))

	_, err = FindSchedule(ctx, db, 2, saved.PublicID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = FindSchedule(ctx, db, 1, "not-a-uuid")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecordUsage(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RecordUsage(ctx, db, 7, "2026-10-18", UsageDelta{Shifts: 2, Workers: 3}))
	require.NoError(t, RecordUsage(ctx, db, 7, "2026-10-18", UsageDelta{Shifts: 1, Workers: 1, Infeasible: true, Fallback: true}))
	require.NoError(t, RecordUsage(ctx, db, 7, "2026-10-19", UsageDelta{Shifts: 5}))

	var usage APIUsage
	require.NoError(t, db.Where("key_id = ? AND date = ?", 7, "2026-10-18").First(&usage).Error)
	assert.Equal(t, 2, usage.RequestCount)
	assert.Equal(t, 3, usage.TotalShifts)
	assert.Equal(t, 4, usage.TotalWorkers)
	assert.Equal(t, 1, usage.Infeasible)
	assert.Equal(t, 1, usage.Fallbacks)

	n, err := RequestsOn(ctx, db, 7, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = RequestsOn(ctx, db, 8, "2026-10-18")
	require.NoError(t, err)
	assert.Zero(t, n)
}
