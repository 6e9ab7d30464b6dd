package domain

import "time"

// Blog post categories.
const (
	CategoryEngineering = "engineering"
	CategoryProduct     = "product"
	CategoryDesign      = "design"
	CategoryGeneral     = "general"
)

// Blog post publication statuses.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// BlogMetadata describes a blog post known to the analytics backend. Creating
// metadata also creates the paired zero-valued BlogAnalytics row.
type BlogMetadata struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Slug        string    `gorm:"column:slug;size:200;uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"column:title;size:500;not null" json:"title"`
	Excerpt     string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	PublishedAt time.Time `gorm:"column:published_at" json:"published_at"`
	ReadTime    int       `gorm:"column:read_time;not null;default:0" json:"read_time"` // minutes
	Tags        []string  `gorm:"column:tags;serializer:json" json:"tags"`
	Category    string    `gorm:"column:category;size:50;not null;default:general" json:"category"`
	Status      string    `gorm:"column:status;size:20;not null;default:draft;index" json:"status"`
	Author      *string   `gorm:"column:author;size:200" json:"author,omitempty"`

	// Optional SEO fields.
	MetaTitle       *string `gorm:"column:meta_title;size:500" json:"meta_title,omitempty"`
	MetaDescription *string `gorm:"column:meta_description;size:1000" json:"meta_description,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name used by GORM.
func (BlogMetadata) TableName() string {
	return "blog_metadata"
}

// IsPublished reports whether the post is visible to readers.
func (m *BlogMetadata) IsPublished() bool {
	return m.Status == StatusPublished
}

// ValidStatus reports whether s is a known publication status.
func ValidStatus(s string) bool {
	return s == StatusPublished || s == StatusDraft
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryEngineering, CategoryProduct, CategoryDesign, CategoryGeneral:
		return true
	}
	return false
}
