package domain

import "time"

// Pageview is a single append-only pageview event. Rows are never merged or
// mutated after creation.
type Pageview struct {
	ID         int64     `gorm:"primaryKey;column:id" json:"id"`
	URL        string    `gorm:"column:url;size:2048;not null;index" json:"url"`
	Title      *string   `gorm:"column:title;size:500" json:"title,omitempty"`
	Referrer   *string   `gorm:"column:referrer;size:2048" json:"referrer,omitempty"`
	UserAgent  *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	DeviceType *string   `gorm:"column:device_type;size:10" json:"device_type,omitempty"`
	ViewedAt   time.Time `gorm:"column:viewed_at;autoCreateTime;index" json:"viewed_at"`
}

// TableName returns the table name used by GORM.
func (Pageview) TableName() string {
	return "pageviews"
}
