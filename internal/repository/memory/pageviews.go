package memory

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultPageviewCap bounds in-memory pageview retention; the oldest entries
// are evicted once the log grows past it.
const DefaultPageviewCap = 10000

// PageviewStore keeps the append-only pageview log in insertion order.
type PageviewStore struct {
	mu        sync.RWMutex
	pageviews []*domain.Pageview
	counter   int64
	cap       int
}

// NewPageviewStore creates an in-memory pageview store holding at most
// maxEntries rows (DefaultPageviewCap when maxEntries <= 0).
func NewPageviewStore(maxEntries int) *PageviewStore {
	if maxEntries <= 0 {
		maxEntries = DefaultPageviewCap
	}
	return &PageviewStore{cap: maxEntries}
}

// RecordPageview appends a new pageview event, evicting the oldest entry if
// the retention cap is reached.
func (s *PageviewStore) RecordPageview(_ context.Context, pv *domain.Pageview) (*domain.Pageview, error) {
	if pv == nil || pv.URL == "" {
		return nil, repository.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	stored := &domain.Pageview{
		ID:         s.counter,
		URL:        pv.URL,
		Title:      pv.Title,
		Referrer:   pv.Referrer,
		UserAgent:  pv.UserAgent,
		DeviceType: pv.DeviceType,
		ViewedAt:   pv.ViewedAt,
	}
	if stored.ViewedAt.IsZero() {
		stored.ViewedAt = time.Now()
	}

	s.pageviews = append(s.pageviews, stored)
	if len(s.pageviews) > s.cap {
		s.pageviews = s.pageviews[len(s.pageviews)-s.cap:]
	}

	c := *stored
	return &c, nil
}

// CountPageviews returns the number of retained pageview events.
func (s *PageviewStore) CountPageviews(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.pageviews)), nil
}

// CountPageviewsBetween counts events with from <= viewed_at < to; nil bounds
// are open-ended.
func (s *PageviewStore) CountPageviewsBetween(_ context.Context, from, to *time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, pv := range s.pageviews {
		if from != nil && pv.ViewedAt.Before(*from) {
			continue
		}
		if to != nil && !pv.ViewedAt.Before(*to) {
			continue
		}
		count++
	}
	return count, nil
}

// CountUniqueURLs returns the number of distinct URLs in the log.
func (s *PageviewStore) CountUniqueURLs(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls := make(map[string]struct{}, len(s.pageviews))
	for _, pv := range s.pageviews {
		urls[pv.URL] = struct{}{}
	}
	return int64(len(urls)), nil
}

// TopPages returns up to limit URLs ranked by view count, descending, ties
// broken by first-encountered order.
func (s *PageviewStore) TopPages(_ context.Context, limit int) ([]repository.PageCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	var order []string
	for _, pv := range s.pageviews {
		if _, seen := counts[pv.URL]; !seen {
			order = append(order, pv.URL)
		}
		counts[pv.URL]++
	}

	ranked := make([]repository.PageCount, 0, len(order))
	for _, url := range order {
		ranked = append(ranked, repository.PageCount{URL: url, Views: counts[url]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Ping always succeeds; the memory tier has no external dependency.
func (s *PageviewStore) Ping(_ context.Context) error {
	return nil
}
