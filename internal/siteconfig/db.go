package siteconfig

import (
	"context"

	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/db/controller/setting"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/store"
)

// DBStore keeps settings in the settings table.
type DBStore struct {
	DB *gorm.DB
}

// GetAll implements Store.
func (s DBStore) GetAll(ctx context.Context) (map[string]string, error) {
	return setting.GetAll(ctx, s.DB)
}

// Set implements Store.
func (s DBStore) Set(ctx context.Context, key, value string) error {
	entries, err := store.New[models.SettingEntry](s.DB)
	if err != nil {
		return err
	}

	return entries.Upsert(ctx, &models.SettingEntry{Key: key, Value: value}, "key", "value")
}

// SetMany implements Store.
func (s DBStore) SetMany(ctx context.Context, values map[string]string) error {
	return setting.SetMany(ctx, s.DB, values)
}
