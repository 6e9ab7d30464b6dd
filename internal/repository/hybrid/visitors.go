package hybrid

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"

	"go.uber.org/zap"
)

// Visitors is the hybrid adapter for the visitor entity family.
type Visitors struct {
	state
	durable repository.VisitorStorage
	memory  repository.VisitorStorage
}

// NewVisitors wraps a durable visitor store (may be nil) with an in-memory
// fallback and probes the durable tier once.
func NewVisitors(durable repository.VisitorStorage, memory repository.VisitorStorage, log *zap.Logger) *Visitors {
	h := &Visitors{durable: durable, memory: memory}
	h.state = probe(durable, "visitors", log)
	return h
}

// TrackVisit upserts the visitor on the active tier.
func (h *Visitors) TrackVisit(ctx context.Context, visit *domain.Visitor) (*domain.Visitor, error) {
	return call(&h.state, "visitors.TrackVisit",
		func() (*domain.Visitor, error) { return h.durable.TrackVisit(ctx, visit) },
		func() (*domain.Visitor, error) { return h.memory.TrackVisit(ctx, visit) },
	)
}

// GetVisitor reads a visitor from the active tier.
func (h *Visitors) GetVisitor(ctx context.Context, visitorID string) (*domain.Visitor, error) {
	return call(&h.state, "visitors.GetVisitor",
		func() (*domain.Visitor, error) { return h.durable.GetVisitor(ctx, visitorID) },
		func() (*domain.Visitor, error) { return h.memory.GetVisitor(ctx, visitorID) },
	)
}

// ListRecentVisitors lists visitors from the active tier.
func (h *Visitors) ListRecentVisitors(ctx context.Context, limit int) ([]*domain.Visitor, error) {
	return call(&h.state, "visitors.ListRecentVisitors",
		func() ([]*domain.Visitor, error) { return h.durable.ListRecentVisitors(ctx, limit) },
		func() ([]*domain.Visitor, error) { return h.memory.ListRecentVisitors(ctx, limit) },
	)
}

// CountVisitors counts visitors on the active tier.
func (h *Visitors) CountVisitors(ctx context.Context) (*repository.VisitorCounts, error) {
	return call(&h.state, "visitors.CountVisitors",
		func() (*repository.VisitorCounts, error) { return h.durable.CountVisitors(ctx) },
		func() (*repository.VisitorCounts, error) { return h.memory.CountVisitors(ctx) },
	)
}

// Ping checks the active tier.
func (h *Visitors) Ping(ctx context.Context) error {
	if h.preferDurable {
		return h.durable.Ping(ctx)
	}
	return h.memory.Ping(ctx)
}
