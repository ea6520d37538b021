// Package setting reads and batch writes the settings table as a key/value map.
// Single keys are written through the generic store.
package setting

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cortejtech/agency-admin/internal/db/models"
)

var (
	// ErrSettingKeyEmpty is returned when a key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all settings as a key/value map.
func GetAll(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entries []models.SettingEntry
	if err := db.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}

	return out, nil
}

// SetMany upserts all values in a single statement.
func SetMany(ctx context.Context, db *gorm.DB, values map[string]string) error {
	if db == nil {
		return ErrDBNil
	}

	if len(values) == 0 {
		return nil
	}

	rows := make([]models.SettingEntry, 0, len(values))

	for k, v := range values {
		if k == "" {
			return ErrSettingKeyEmpty
		}

		rows = append(rows, models.SettingEntry{Key: k, Value: v})
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
}
