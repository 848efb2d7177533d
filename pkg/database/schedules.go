package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// SavedSchedule represents the saved_schedules table. Shifts and
// assignments are stored as JSON documents.
type SavedSchedule struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	PublicID     string    `gorm:"uniqueIndex;size:36;not null" json:"id"`
	KeyID        uint      `gorm:"index;not null" json:"-"`
	Name         string    `json:"name"`
	ShiftsJSON   string    `gorm:"type:text;not null" json:"-"`
	TableJSON    string    `gorm:"type:text;not null" json:"-"`
	UsedFallback bool      `json:"used_fallback"`
	Seed         int64     `json:"seed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Shifts decodes the stored shifts
func (s *SavedSchedule) Shifts() ([]models.Shift, error) {
	var shifts []models.Shift
	if err := json.Unmarshal([]byte(s.ShiftsJSON), &shifts); err != nil {
		return nil, fmt.Errorf("database: decode shifts of schedule %s: %w", s.PublicID, err)
	}
	return shifts, nil
}

// Assignments decodes the stored assignment table
func (s *SavedSchedule) Assignments() (models.AssignmentTable, error) {
	var table models.AssignmentTable
	if err := json.Unmarshal([]byte(s.TableJSON), &table); err != nil {
		return nil, fmt.Errorf("database: decode assignments of schedule %s: %w", s.PublicID, err)
	}
	return table, nil
}

// SaveSchedule stores a generated schedule for an API key
func SaveSchedule(ctx context.Context, db *gorm.DB, keyID uint, name string, shifts []models.Shift, table models.AssignmentTable, usedFallback bool, seed int64) (*SavedSchedule, error) {
	shiftsJSON, err := json.Marshal(shifts)
	if err != nil {
		return nil, fmt.Errorf("database: encode shifts: %w", err)
	}
	tableJSON, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("database: encode assignments: %w", err)
	}

	rec := &SavedSchedule{
		PublicID:     uuid.NewString(),
		KeyID:        keyID,
		Name:         name,
		ShiftsJSON:   string(shiftsJSON),
		TableJSON:    string(tableJSON),
		UsedFallback: usedFallback,
		Seed:         seed,
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("database: save schedule: %w", err)
	}
	return rec, nil
}

// FindSchedule loads a saved schedule owned by keyID. It returns
// gorm.ErrRecordNotFound when the schedule does not exist or belongs to
// another key.
func FindSchedule(ctx context.Context, db *gorm.DB, keyID uint, publicID string) (*SavedSchedule, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var rec SavedSchedule
	err := db.WithContext(ctx).
		Where("public_id = ? AND key_id = ?", publicID, keyID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UsageDelta is what a single request adds to a key's daily usage row
type UsageDelta struct {
	Shifts     int
	Workers    int
	Infeasible bool
	Fallback   bool
}

// RecordUsage upserts the daily usage row for a key
func RecordUsage(ctx context.Context, db *gorm.DB, keyID uint, day string, d UsageDelta) error {
	infeasible, fallbacks := 0, 0
	if d.Infeasible {
		infeasible = 1
	}
	if d.Fallback {
		fallbacks = 1
	}

	// OnConflict works for both Postgres and SQLite
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_shifts":  gorm.Expr("total_shifts + ?", d.Shifts),
			"total_workers": gorm.Expr("total_workers + ?", d.Workers),
			"infeasible":    gorm.Expr("infeasible + ?", infeasible),
			"fallbacks":     gorm.Expr("fallbacks + ?", fallbacks),
		}),
	}).Create(&APIUsage{
		KeyID:        keyID,
		Date:         day,
		RequestCount: 1,
		TotalShifts:  d.Shifts,
		TotalWorkers: d.Workers,
		Infeasible:   infeasible,
		Fallbacks:    fallbacks,
	}).Error
}

// RequestsOn returns how many requests a key made on a day
func RequestsOn(ctx context.Context, db *gorm.DB, keyID uint, day string) (int, error) {
	var usage APIUsage
	err := db.WithContext(ctx).Where("key_id = ? AND date = ?", keyID, day).Limit(1).Find(&usage).Error
	if err != nil {
		return 0, err
	}
	return usage.RequestCount, nil
}
