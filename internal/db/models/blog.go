package models

import "time"

// BlogPost is an article of the agency blog.
// Slug is not unique on purpose: it is derived from the title and duplicates are tolerated.
type BlogPost struct {
	ID            uint64     `gorm:"primaryKey"         json:"id"             form:"-"`
	Title         string     `gorm:"size:255;not null"  json:"title"          form:"title"`
	Slug          string     `gorm:"size:255;not null;index" json:"slug"      form:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"        form:"content"`
	Author        string     `gorm:"size:255;not null"  json:"author"         form:"author"`
	Excerpt       *string    `gorm:"type:text"          json:"excerpt"        form:"excerpt"`
	FeaturedImage *string    `gorm:"type:text"          json:"featured_image" form:"featured_image"`
	IsPublished   *bool      `json:"is_published"       form:"is_published"`
	PublishedAt   *time.Time `json:"published_at"       form:"-"`
	Tags          StringList `json:"tags"               form:"tags"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"     json:"created_at"     form:"-"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime"     json:"updated_at"     form:"-"`
}

// TableName specifies the database table name for the BlogPost model.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// PrimaryKey returns the record id.
func (b BlogPost) PrimaryKey() uint64 {
	return b.ID
}

// Published reports whether the post is visible on the public site.
func (b BlogPost) Published() bool {
	return b.IsPublished != nil && *b.IsPublished
}
