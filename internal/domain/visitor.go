package domain

import "time"

// Visitor represents a unique tracked visitor, keyed by a derived fingerprint.
// There is exactly one row per visitor_id; repeat visits mutate it in place.
type Visitor struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	VisitorID    string    `gorm:"column:visitor_id;size:64;uniqueIndex;not null" json:"visitor_id"`
	IsNewVisitor bool      `gorm:"column:is_new_visitor;not null;default:true" json:"is_new_visitor"`
	FirstVisitAt time.Time `gorm:"column:first_visit_at;not null" json:"first_visit_at"`
	LastVisitAt  time.Time `gorm:"column:last_visit_at;not null;index" json:"last_visit_at"`
	TotalVisits  int64     `gorm:"column:total_visits;not null;default:1" json:"total_visits"`

	// Last-seen request metadata, overwritten on every visit.
	UserAgent  *string `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	IPAddress  *string `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	DeviceType *string `gorm:"column:device_type;size:10" json:"device_type,omitempty"` // 'desktop', 'mobile', 'tablet', 'bot'
	Browser    *string `gorm:"column:browser;size:50" json:"browser,omitempty"`
	OS         *string `gorm:"column:os;size:50" json:"os,omitempty"`
}

// TableName returns the table name used by GORM.
func (Visitor) TableName() string {
	return "visitors"
}

// IsReturning reports whether this visitor has been seen more than once.
func (v *Visitor) IsReturning() bool {
	return !v.IsNewVisitor
}
