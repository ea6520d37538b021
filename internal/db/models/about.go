package models

import "time"

// AboutItem is a block of the "About us" page.
type AboutItem struct {
	ID          uint64    `gorm:"primaryKey"                  json:"id"                  form:"-"`
	Title       string    `gorm:"size:255;not null"           json:"title"               form:"title"`
	Description string    `gorm:"type:text;not null"          json:"description"         form:"description"`
	ImageURL    *string   `gorm:"type:text"                   json:"image_url"           form:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime"              json:"created_at"          form:"-"`
}

// TableName specifies the database table name for the AboutItem model.
func (AboutItem) TableName() string {
	return "about_us"
}

// PrimaryKey returns the record id.
func (a AboutItem) PrimaryKey() uint64 {
	return a.ID
}
