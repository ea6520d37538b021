// Package models contains database model definitions.
package models

// SettingEntry is one key/value row of the site settings overlay.
type SettingEntry struct {
	ID    uint64 `gorm:"primaryKey"                json:"id"    form:"-"`
	Key   string `gorm:"size:100;not null;unique"  json:"key"   form:"key"`
	Value string `gorm:"type:text;not null"        json:"value" form:"value"`
}

// TableName specifies the database table name for the SettingEntry model.
func (SettingEntry) TableName() string {
	return "settings"
}

// PrimaryKey returns the record id.
func (s SettingEntry) PrimaryKey() uint64 {
	return s.ID
}
