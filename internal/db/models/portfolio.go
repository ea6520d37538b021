package models

import "time"

// PortfolioItem is a showcased client project.
type PortfolioItem struct {
	ID             uint64     `gorm:"primaryKey"         json:"id"              form:"-"`
	Title          string     `gorm:"size:255;not null"  json:"title"           form:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"     form:"description"`
	Category       string     `gorm:"size:100;not null"  json:"category"        form:"category"`
	ImageURL       string     `gorm:"type:text;not null" json:"image_url"       form:"image_url"`
	Client         *string    `gorm:"size:255"           json:"client"          form:"client"`
	ProjectURL     *string    `gorm:"type:text"          json:"project_url"     form:"project_url"`
	Tags           StringList `json:"tags"               form:"tags"`
	CompletionDate *string    `gorm:"size:32"            json:"completion_date" form:"completion_date"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"     json:"created_at"      form:"-"`
}

// TableName specifies the database table name for the PortfolioItem model.
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

// PrimaryKey returns the record id.
func (p PortfolioItem) PrimaryKey() uint64 {
	return p.ID
}
