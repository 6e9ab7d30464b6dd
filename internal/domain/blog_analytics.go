package domain

import "time"

// BlogAnalytics holds the per-post view counters, 1:1 with BlogMetadata by
// slug. Counters are only ever mutated through increment operations; the row
// is deleted together with its owning metadata.
type BlogAnalytics struct {
	ID           int64      `gorm:"primaryKey;column:id" json:"id"`
	Slug         string     `gorm:"column:slug;size:200;uniqueIndex;not null" json:"slug"`
	TotalViews   int64      `gorm:"column:total_views;not null;default:0" json:"total_views"`
	UniqueViews  int64      `gorm:"column:unique_views;not null;default:0" json:"unique_views"`
	RecentViews  int64      `gorm:"column:recent_views;not null;default:0" json:"recent_views"` // trailing 7 days, recomputed on read
	LastViewedAt *time.Time `gorm:"column:last_viewed_at" json:"last_viewed_at,omitempty"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name used by GORM.
func (BlogAnalytics) TableName() string {
	return "blog_analytics"
}
