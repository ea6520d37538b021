package models

import "time"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        uint64    `gorm:"primaryKey"         json:"id"         form:"-"`
	Name      string    `gorm:"size:255;not null"  json:"name"       form:"name"`
	Email     string    `gorm:"size:255;not null"  json:"email"      form:"email"`
	Phone     *string   `gorm:"size:50"            json:"phone"      form:"phone"`
	Subject   string    `gorm:"size:255;not null"  json:"subject"    form:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"    form:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime"     json:"created_at" form:"-"`
}

// TableName specifies the database table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// PrimaryKey returns the record id.
func (m ContactMessage) PrimaryKey() uint64 {
	return m.ID
}
