package repository

import (
	"Pulse-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a read targets a key that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRecord is returned when a write is missing required fields.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrMetadataExists is returned when blog metadata for a slug already exists.
	ErrMetadataExists = errors.New("blog metadata already exists")
)

// IsDomainError reports whether err is an expected domain outcome rather than
// a storage-infrastructure failure. The hybrid tier surfaces these to the
// caller instead of retrying against the fallback store.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidRecord) ||
		errors.Is(err, ErrMetadataExists)
}

// VisitorCounts is the total/new split over the visitor table.
type VisitorCounts struct {
	Total int64
	New   int64
}

// PageCount is a URL with its pageview count, used for top-N rankings.
type PageCount struct {
	URL   string `gorm:"column:url" json:"url"`
	Views int64  `gorm:"column:views" json:"views"`
}

// PostCount is a blog slug with its view count, used for top-N rankings.
type PostCount struct {
	Slug  string `gorm:"column:blog_slug" json:"slug"`
	Title string `gorm:"column:blog_title" json:"title,omitempty"`
	Views int64  `gorm:"column:views" json:"views"`
}

// VisitorStorage stores tracked visitors, one row per derived visitor id.
type VisitorStorage interface {
	// TrackVisit upserts the visitor: the first call for a visitor id creates
	// the row with TotalVisits=1 and IsNewVisitor=true, every later call
	// increments TotalVisits, flips IsNewVisitor to false and overwrites the
	// last-seen fields. The upsert is atomic per visitor id.
	TrackVisit(ctx context.Context, visit *domain.Visitor) (*domain.Visitor, error)
	GetVisitor(ctx context.Context, visitorID string) (*domain.Visitor, error)
	ListRecentVisitors(ctx context.Context, limit int) ([]*domain.Visitor, error)
	CountVisitors(ctx context.Context) (*VisitorCounts, error)
	Ping(ctx context.Context) error
}

// PageviewStorage stores the append-only pageview event log.
type PageviewStorage interface {
	RecordPageview(ctx context.Context, pv *domain.Pageview) (*domain.Pageview, error)
	CountPageviews(ctx context.Context) (int64, error)
	// CountPageviewsBetween counts pageviews with from <= viewed_at < to.
	// A nil bound is open-ended.
	CountPageviewsBetween(ctx context.Context, from, to *time.Time) (int64, error)
	CountUniqueURLs(ctx context.Context) (int64, error)
	TopPages(ctx context.Context, limit int) ([]PageCount, error)
	Ping(ctx context.Context) error
}

// BlogViewStorage stores everything blog-related: the per-visitor engagement
// aggregate, the session-scoped dedup log, post metadata and its paired
// analytics counters.
type BlogViewStorage interface {
	// TrackVisitorView upserts the (visitor, slug) engagement aggregate and
	// applies the matching analytics increments (total on every view, unique
	// on the first view by this visitor). Atomic per (visitor, slug) pair.
	TrackVisitorView(ctx context.Context, visitorID, slug, title string) (*domain.VisitorBlogView, error)
	// RecordSessionView inserts the (session, slug) dedup row. The first
	// write for a pair wins; repeat writes return the stored row unchanged
	// with isNewView=false.
	RecordSessionView(ctx context.Context, view *domain.BlogView) (stored *domain.BlogView, isNewView bool, err error)

	// Engagement-aggregate queries.
	ListVisitorViewsBySlug(ctx context.Context, slug string) ([]*domain.VisitorBlogView, error)
	SumVisitorViews(ctx context.Context) (int64, error)
	CountVisitorViewRows(ctx context.Context) (int64, error)
	TopVisitorViewPosts(ctx context.Context, limit int) ([]PostCount, error)

	// Session-log queries.
	CountSessionViews(ctx context.Context, slug string) (int64, error) // slug == "" counts all
	CountSessionViewsSince(ctx context.Context, since time.Time) (int64, error)
	CountUniqueSessions(ctx context.Context) (int64, error)
	TopSessionPosts(ctx context.Context, limit int) ([]PostCount, error)

	// Blog metadata and analytics.
	CreateMetadata(ctx context.Context, meta *domain.BlogMetadata) error
	GetMetadata(ctx context.Context, slug string) (*domain.BlogMetadata, error)
	ListMetadata(ctx context.Context, status string) ([]*domain.BlogMetadata, error) // status == "" lists all
	DeleteMetadata(ctx context.Context, slug string) error
	GetAnalytics(ctx context.Context, slug string) (*domain.BlogAnalytics, error)

	Ping(ctx context.Context) error
}
