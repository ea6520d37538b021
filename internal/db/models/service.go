package models

import "time"

// Service is an offering listed on the services page.
type Service struct {
	ID          uint64    `gorm:"primaryKey"         json:"id"          form:"-"`
	Title       string    `gorm:"size:255;not null"  json:"title"       form:"title"`
	Description string    `gorm:"type:text;not null" json:"description" form:"description"`
	Icon        string    `gorm:"size:100;not null"  json:"icon"        form:"icon"`
	IsFeatured  *bool     `json:"is_featured"        form:"is_featured"`
	CreatedAt   time.Time `gorm:"autoCreateTime"     json:"created_at"  form:"-"`
}

// TableName specifies the database table name for the Service model.
func (Service) TableName() string {
	return "services"
}

// PrimaryKey returns the record id.
func (s Service) PrimaryKey() uint64 {
	return s.ID
}
