package memory

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// recentWindow is the trailing window used for BlogAnalytics.RecentViews.
const recentWindow = 7 * 24 * time.Hour

// BlogViewStore keeps the per-visitor engagement aggregates, the
// session-scoped dedup log, blog metadata and its paired analytics counters.
type BlogViewStore struct {
	mu sync.RWMutex

	visitorViews map[string]*domain.VisitorBlogView // key: visitorID|slug
	visitorOrder []string                           // keys in first-write order, for stable rankings

	sessionViews map[string]*domain.BlogView // key: sessionID|slug

	metadata  map[string]*domain.BlogMetadata
	analytics map[string]*domain.BlogAnalytics

	viewCounter    int64
	sessionCounter int64
	metaCounter    int64
}

// NewBlogViewStore creates an empty in-memory blog view store.
func NewBlogViewStore() *BlogViewStore {
	return &BlogViewStore{
		visitorViews: make(map[string]*domain.VisitorBlogView),
		sessionViews: make(map[string]*domain.BlogView),
		metadata:     make(map[string]*domain.BlogMetadata),
		analytics:    make(map[string]*domain.BlogAnalytics),
	}
}

func viewKey(a, b string) string {
	return a + "|" + b
}

// TrackVisitorView upserts the (visitor, slug) engagement aggregate under the
// store lock and applies the analytics increments.
func (s *BlogViewStore) TrackVisitorView(_ context.Context, visitorID, slug, title string) (*domain.VisitorBlogView, error) {
	if visitorID == "" || slug == "" {
		return nil, repository.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	key := viewKey(visitorID, slug)

	view, exists := s.visitorViews[key]
	if exists {
		view.ViewCount++
		view.LastViewedAt = now
		if title != "" {
			view.BlogTitle = title
		}
	} else {
		s.viewCounter++
		view = &domain.VisitorBlogView{
			ID:            s.viewCounter,
			VisitorID:     visitorID,
			BlogSlug:      slug,
			BlogTitle:     title,
			ViewCount:     1,
			FirstViewedAt: now,
			LastViewedAt:  now,
		}
		s.visitorViews[key] = view
		s.visitorOrder = append(s.visitorOrder, key)
	}

	// Analytics rows exist 1:1 with metadata; views of unknown slugs leave
	// the counters untouched.
	if a, ok := s.analytics[slug]; ok {
		a.TotalViews++
		if !exists {
			a.UniqueViews++
		}
		a.LastViewedAt = &now
	}

	c := *view
	return &c, nil
}

// RecordSessionView inserts the (session, slug) dedup row; the first write
// for a pair wins and repeat writes are no-ops.
func (s *BlogViewStore) RecordSessionView(_ context.Context, view *domain.BlogView) (*domain.BlogView, bool, error) {
	if view == nil || view.SessionID == "" || view.BlogSlug == "" {
		return nil, false, repository.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := viewKey(view.SessionID, view.BlogSlug)
	if existing, ok := s.sessionViews[key]; ok {
		c := *existing
		return &c, false, nil
	}

	s.sessionCounter++
	stored := &domain.BlogView{
		ID:        s.sessionCounter,
		SessionID: view.SessionID,
		BlogSlug:  view.BlogSlug,
		IPAddress: view.IPAddress,
		UserAgent: view.UserAgent,
		Referrer:  view.Referrer,
		ViewedAt:  view.ViewedAt,
	}
	if stored.ViewedAt.IsZero() {
		stored.ViewedAt = time.Now()
	}
	s.sessionViews[key] = stored

	c := *stored
	return &c, true, nil
}

// ListVisitorViewsBySlug returns all engagement aggregates for a slug.
func (s *BlogViewStore) ListVisitorViewsBySlug(_ context.Context, slug string) ([]*domain.VisitorBlogView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var views []*domain.VisitorBlogView
	for _, key := range s.visitorOrder {
		if view := s.visitorViews[key]; view.BlogSlug == slug {
			c := *view
			views = append(views, &c)
		}
	}
	return views, nil
}

// SumVisitorViews returns the total engagement view count across all posts.
func (s *BlogViewStore) SumVisitorViews(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, view := range s.visitorViews {
		sum += view.ViewCount
	}
	return sum, nil
}

// CountVisitorViewRows returns the number of distinct (visitor, slug) pairs.
func (s *BlogViewStore) CountVisitorViewRows(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.visitorViews)), nil
}

// TopVisitorViewPosts ranks posts by summed engagement views, descending,
// ties broken by first-encountered order.
func (s *BlogViewStore) TopVisitorViewPosts(_ context.Context, limit int) ([]repository.PostCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]*repository.PostCount)
	var order []string
	for _, key := range s.visitorOrder {
		view := s.visitorViews[key]
		entry, ok := counts[view.BlogSlug]
		if !ok {
			entry = &repository.PostCount{Slug: view.BlogSlug, Title: view.BlogTitle}
			counts[view.BlogSlug] = entry
			order = append(order, view.BlogSlug)
		}
		entry.Views += view.ViewCount
		if view.BlogTitle != "" {
			entry.Title = view.BlogTitle
		}
	}

	ranked := make([]repository.PostCount, 0, len(order))
	for _, slug := range order {
		ranked = append(ranked, *counts[slug])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// CountSessionViews counts dedup rows for a slug, or all rows when slug is
// empty.
func (s *BlogViewStore) CountSessionViews(_ context.Context, slug string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if slug == "" {
		return int64(len(s.sessionViews)), nil
	}

	var count int64
	for _, view := range s.sessionViews {
		if view.BlogSlug == slug {
			count++
		}
	}
	return count, nil
}

// CountSessionViewsSince counts dedup rows recorded at or after since.
func (s *BlogViewStore) CountSessionViewsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, view := range s.sessionViews {
		if !view.ViewedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// CountUniqueSessions returns the number of distinct session ids in the log.
func (s *BlogViewStore) CountUniqueSessions(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make(map[string]struct{})
	for _, view := range s.sessionViews {
		sessions[view.SessionID] = struct{}{}
	}
	return int64(len(sessions)), nil
}

// TopSessionPosts ranks posts by session-deduplicated views, descending.
func (s *BlogViewStore) TopSessionPosts(_ context.Context, limit int) ([]repository.PostCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	var order []string
	for _, view := range s.sessionViews {
		if _, seen := counts[view.BlogSlug]; !seen {
			order = append(order, view.BlogSlug)
		}
		counts[view.BlogSlug]++
	}
	// Map iteration order is random; rank ties deterministically by slug.
	sort.Strings(order)

	ranked := make([]repository.PostCount, 0, len(order))
	for _, slug := range order {
		ranked = append(ranked, repository.PostCount{Slug: slug, Views: counts[slug]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// CreateMetadata stores blog metadata and its paired zero-valued analytics
// row.
func (s *BlogViewStore) CreateMetadata(_ context.Context, meta *domain.BlogMetadata) error {
	if meta == nil || meta.Slug == "" || meta.Title == "" {
		return repository.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.metadata[meta.Slug]; exists {
		return repository.ErrMetadataExists
	}

	s.metaCounter++
	stored := *meta
	stored.ID = s.metaCounter
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.metadata[meta.Slug] = &stored

	s.analytics[meta.Slug] = &domain.BlogAnalytics{
		ID:   s.metaCounter,
		Slug: meta.Slug,
	}
	return nil
}

// GetMetadata returns the metadata for a slug.
func (s *BlogViewStore) GetMetadata(_ context.Context, slug string) (*domain.BlogMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.metadata[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *meta
	return &c, nil
}

// ListMetadata returns all posts, optionally filtered by status, most
// recently published first.
func (s *BlogViewStore) ListMetadata(_ context.Context, status string) ([]*domain.BlogMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []*domain.BlogMetadata
	for _, meta := range s.metadata {
		if status != "" && meta.Status != status {
			continue
		}
		c := *meta
		posts = append(posts, &c)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

// DeleteMetadata removes the metadata and its paired analytics row.
func (s *BlogViewStore) DeleteMetadata(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.metadata[slug]; !ok {
		return repository.ErrNotFound
	}
	delete(s.metadata, slug)
	delete(s.analytics, slug)
	return nil
}

// GetAnalytics returns the analytics counters for a slug, with RecentViews
// recomputed over the trailing window from the session log.
func (s *BlogViewStore) GetAnalytics(_ context.Context, slug string) (*domain.BlogAnalytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analytics[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}

	c := *a
	cutoff := time.Now().Add(-recentWindow)
	c.RecentViews = 0
	for _, view := range s.sessionViews {
		if view.BlogSlug == slug && !view.ViewedAt.Before(cutoff) {
			c.RecentViews++
		}
	}
	return &c, nil
}

// Ping always succeeds; the memory tier has no external dependency.
func (s *BlogViewStore) Ping(_ context.Context) error {
	return nil
}
