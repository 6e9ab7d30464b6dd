package domain

import "time"

// VisitorBlogView is the per-visitor engagement aggregate for a single blog
// post: one row per (visitor_id, blog_slug) pair, view_count incremented on
// every repeat view by the same visitor.
type VisitorBlogView struct {
	ID            int64     `gorm:"primaryKey;column:id" json:"id"`
	VisitorID     string    `gorm:"column:visitor_id;size:64;not null;uniqueIndex:idx_visitor_blog" json:"visitor_id"`
	BlogSlug      string    `gorm:"column:blog_slug;size:200;not null;uniqueIndex:idx_visitor_blog;index" json:"blog_slug"`
	BlogTitle     string    `gorm:"column:blog_title;size:500" json:"blog_title"` // denormalized, last value wins
	ViewCount     int64     `gorm:"column:view_count;not null;default:1" json:"view_count"`
	FirstViewedAt time.Time `gorm:"column:first_viewed_at;not null" json:"first_viewed_at"`
	LastViewedAt  time.Time `gorm:"column:last_viewed_at;not null" json:"last_viewed_at"`
}

// TableName returns the table name used by GORM.
func (VisitorBlogView) TableName() string {
	return "visitor_blog_views"
}

// BlogView is the session-scoped view-dedup log: a row means "this session
// has viewed this slug". The first write for a (session_id, blog_slug) pair
// is authoritative; repeat writes are no-ops.
type BlogView struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	SessionID string    `gorm:"column:session_id;size:64;not null;uniqueIndex:idx_session_blog" json:"session_id"`
	BlogSlug  string    `gorm:"column:blog_slug;size:200;not null;uniqueIndex:idx_session_blog;index" json:"blog_slug"`
	IPAddress *string   `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	Referrer  *string   `gorm:"column:referrer;size:2048" json:"referrer,omitempty"`
	ViewedAt  time.Time `gorm:"column:viewed_at;autoCreateTime;index" json:"viewed_at"`
}

// TableName returns the table name used by GORM.
func (BlogView) TableName() string {
	return "blog_views"
}
