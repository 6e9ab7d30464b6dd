// Package memory implements the in-process, non-persistent storage tier.
// Each store is an explicit instance owned by its caller; all state lives
// behind a mutex so upserts are atomic per key.
package memory

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// VisitorStore keeps visitor records keyed by their derived visitor id.
type VisitorStore struct {
	mu       sync.RWMutex
	visitors map[string]*domain.Visitor
	counter  int64
}

// NewVisitorStore creates an empty in-memory visitor store.
func NewVisitorStore() *VisitorStore {
	return &VisitorStore{
		visitors: make(map[string]*domain.Visitor),
	}
}

// TrackVisit upserts the visitor under the store lock, so concurrent calls
// for the same visitor id cannot lose updates.
func (s *VisitorStore) TrackVisit(_ context.Context, visit *domain.Visitor) (*domain.Visitor, error) {
	if visit == nil || visit.VisitorID == "" {
		return nil, repository.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if existing, ok := s.visitors[visit.VisitorID]; ok {
		existing.TotalVisits++
		existing.IsNewVisitor = false
		existing.LastVisitAt = now
		existing.UserAgent = visit.UserAgent
		existing.IPAddress = visit.IPAddress
		existing.DeviceType = visit.DeviceType
		existing.Browser = visit.Browser
		existing.OS = visit.OS
		return cloneVisitor(existing), nil
	}

	s.counter++
	created := &domain.Visitor{
		ID:           s.counter,
		VisitorID:    visit.VisitorID,
		IsNewVisitor: true,
		FirstVisitAt: now,
		LastVisitAt:  now,
		TotalVisits:  1,
		UserAgent:    visit.UserAgent,
		IPAddress:    visit.IPAddress,
		DeviceType:   visit.DeviceType,
		Browser:      visit.Browser,
		OS:           visit.OS,
	}
	s.visitors[visit.VisitorID] = created

	return cloneVisitor(created), nil
}

// GetVisitor returns the visitor for the given id.
func (s *VisitorStore) GetVisitor(_ context.Context, visitorID string) (*domain.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visitor, ok := s.visitors[visitorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneVisitor(visitor), nil
}

// ListRecentVisitors returns up to limit visitors ordered by last visit,
// most recent first.
func (s *VisitorStore) ListRecentVisitors(_ context.Context, limit int) ([]*domain.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Visitor, 0, len(s.visitors))
	for _, v := range s.visitors {
		all = append(all, cloneVisitor(v))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].LastVisitAt.After(all[j].LastVisitAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// CountVisitors returns the total visitor count and how many are still new.
func (s *VisitorStore) CountVisitors(_ context.Context) (*repository.VisitorCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := &repository.VisitorCounts{Total: int64(len(s.visitors))}
	for _, v := range s.visitors {
		if v.IsNewVisitor {
			counts.New++
		}
	}
	return counts, nil
}

// Ping always succeeds; the memory tier has no external dependency.
func (s *VisitorStore) Ping(_ context.Context) error {
	return nil
}

func cloneVisitor(v *domain.Visitor) *domain.Visitor {
	c := *v
	return &c
}
