package models

import "time"

// Page is an editable static page of the marketing site.
type Page struct {
	ID              uint64     `gorm:"primaryKey"         json:"id"               form:"-"`
	Slug            string     `gorm:"size:255;not null;index" json:"slug"        form:"slug"`
	Title           string     `gorm:"size:255;not null"  json:"title"            form:"title"`
	Content         string     `gorm:"type:text;not null" json:"content"          form:"content"`
	MetaTitle       *string    `gorm:"size:255"           json:"meta_title"       form:"meta_title"`
	MetaDescription *string    `gorm:"type:text"          json:"meta_description" form:"meta_description"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime"     json:"updated_at"       form:"-"`
}

// TableName specifies the database table name for the Page model.
func (Page) TableName() string {
	return "pages"
}

// PrimaryKey returns the record id.
func (p Page) PrimaryKey() uint64 {
	return p.ID
}
