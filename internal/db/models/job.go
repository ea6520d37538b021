package models

import "time"

// Job is an open position on the career page.
type Job struct {
	ID           uint64     `gorm:"primaryKey"         json:"id"           form:"-"`
	Title        string     `gorm:"size:255;not null"  json:"title"        form:"title"`
	Type         string     `gorm:"size:50;not null"   json:"type"         form:"type"`
	Location     string     `gorm:"size:255;not null"  json:"location"     form:"location"`
	Description  string     `gorm:"type:text;not null" json:"description"  form:"description"`
	Requirements StringList `gorm:"not null"           json:"requirements" form:"requirements"`
	ApplyLink    string     `gorm:"type:text;not null" json:"apply_link"   form:"apply_link"`
	Salary       *string    `gorm:"size:100"           json:"salary"       form:"salary"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"     json:"created_at"   form:"-"`
}

// TableName specifies the database table name for the Job model.
func (Job) TableName() string {
	return "jobs"
}

// PrimaryKey returns the record id.
func (j Job) PrimaryKey() uint64 {
	return j.ID
}
