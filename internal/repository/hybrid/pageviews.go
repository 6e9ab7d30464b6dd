package hybrid

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"time"

	"go.uber.org/zap"
)

// Pageviews is the hybrid adapter for the pageview entity family.
type Pageviews struct {
	state
	durable repository.PageviewStorage
	memory  repository.PageviewStorage
}

// NewPageviews wraps a durable pageview store (may be nil) with an in-memory
// fallback and probes the durable tier once.
func NewPageviews(durable repository.PageviewStorage, memory repository.PageviewStorage, log *zap.Logger) *Pageviews {
	h := &Pageviews{durable: durable, memory: memory}
	h.state = probe(durable, "pageviews", log)
	return h
}

// RecordPageview appends an event on the active tier.
func (h *Pageviews) RecordPageview(ctx context.Context, pv *domain.Pageview) (*domain.Pageview, error) {
	return call(&h.state, "pageviews.RecordPageview",
		func() (*domain.Pageview, error) { return h.durable.RecordPageview(ctx, pv) },
		func() (*domain.Pageview, error) { return h.memory.RecordPageview(ctx, pv) },
	)
}

// CountPageviews counts events on the active tier.
func (h *Pageviews) CountPageviews(ctx context.Context) (int64, error) {
	return call(&h.state, "pageviews.CountPageviews",
		func() (int64, error) { return h.durable.CountPageviews(ctx) },
		func() (int64, error) { return h.memory.CountPageviews(ctx) },
	)
}

// CountPageviewsBetween counts events in a time range on the active tier.
func (h *Pageviews) CountPageviewsBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	return call(&h.state, "pageviews.CountPageviewsBetween",
		func() (int64, error) { return h.durable.CountPageviewsBetween(ctx, from, to) },
		func() (int64, error) { return h.memory.CountPageviewsBetween(ctx, from, to) },
	)
}

// CountUniqueURLs counts distinct URLs on the active tier.
func (h *Pageviews) CountUniqueURLs(ctx context.Context) (int64, error) {
	return call(&h.state, "pageviews.CountUniqueURLs",
		func() (int64, error) { return h.durable.CountUniqueURLs(ctx) },
		func() (int64, error) { return h.memory.CountUniqueURLs(ctx) },
	)
}

// TopPages ranks URLs on the active tier.
func (h *Pageviews) TopPages(ctx context.Context, limit int) ([]repository.PageCount, error) {
	return call(&h.state, "pageviews.TopPages",
		func() ([]repository.PageCount, error) { return h.durable.TopPages(ctx, limit) },
		func() ([]repository.PageCount, error) { return h.memory.TopPages(ctx, limit) },
	)
}

// Ping checks the active tier.
func (h *Pageviews) Ping(ctx context.Context) error {
	if h.preferDurable {
		return h.durable.Ping(ctx)
	}
	return h.memory.Ping(ctx)
}
