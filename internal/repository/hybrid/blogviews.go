package hybrid

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"time"

	"go.uber.org/zap"
)

// BlogViews is the hybrid adapter for the blog view entity family.
type BlogViews struct {
	state
	durable repository.BlogViewStorage
	memory  repository.BlogViewStorage
}

// NewBlogViews wraps a durable blog view store (may be nil) with an in-memory
// fallback and probes the durable tier once.
func NewBlogViews(durable repository.BlogViewStorage, memory repository.BlogViewStorage, log *zap.Logger) *BlogViews {
	h := &BlogViews{durable: durable, memory: memory}
	h.state = probe(durable, "blog_views", log)
	return h
}

// TrackVisitorView upserts the engagement aggregate on the active tier.
func (h *BlogViews) TrackVisitorView(ctx context.Context, visitorID, slug, title string) (*domain.VisitorBlogView, error) {
	return call(&h.state, "blog_views.TrackVisitorView",
		func() (*domain.VisitorBlogView, error) { return h.durable.TrackVisitorView(ctx, visitorID, slug, title) },
		func() (*domain.VisitorBlogView, error) { return h.memory.TrackVisitorView(ctx, visitorID, slug, title) },
	)
}

type sessionViewResult struct {
	view  *domain.BlogView
	isNew bool
}

// RecordSessionView writes the dedup row on the active tier.
func (h *BlogViews) RecordSessionView(ctx context.Context, view *domain.BlogView) (*domain.BlogView, bool, error) {
	result, err := call(&h.state, "blog_views.RecordSessionView",
		func() (sessionViewResult, error) {
			v, isNew, err := h.durable.RecordSessionView(ctx, view)
			return sessionViewResult{v, isNew}, err
		},
		func() (sessionViewResult, error) {
			v, isNew, err := h.memory.RecordSessionView(ctx, view)
			return sessionViewResult{v, isNew}, err
		},
	)
	return result.view, result.isNew, err
}

// ListVisitorViewsBySlug lists engagement aggregates on the active tier.
func (h *BlogViews) ListVisitorViewsBySlug(ctx context.Context, slug string) ([]*domain.VisitorBlogView, error) {
	return call(&h.state, "blog_views.ListVisitorViewsBySlug",
		func() ([]*domain.VisitorBlogView, error) { return h.durable.ListVisitorViewsBySlug(ctx, slug) },
		func() ([]*domain.VisitorBlogView, error) { return h.memory.ListVisitorViewsBySlug(ctx, slug) },
	)
}

// SumVisitorViews sums engagement views on the active tier.
func (h *BlogViews) SumVisitorViews(ctx context.Context) (int64, error) {
	return call(&h.state, "blog_views.SumVisitorViews",
		func() (int64, error) { return h.durable.SumVisitorViews(ctx) },
		func() (int64, error) { return h.memory.SumVisitorViews(ctx) },
	)
}

// CountVisitorViewRows counts engagement rows on the active tier.
func (h *BlogViews) CountVisitorViewRows(ctx context.Context) (int64, error) {
	return call(&h.state, "blog_views.CountVisitorViewRows",
		func() (int64, error) { return h.durable.CountVisitorViewRows(ctx) },
		func() (int64, error) { return h.memory.CountVisitorViewRows(ctx) },
	)
}

// TopVisitorViewPosts ranks posts by engagement on the active tier.
func (h *BlogViews) TopVisitorViewPosts(ctx context.Context, limit int) ([]repository.PostCount, error) {
	return call(&h.state, "blog_views.TopVisitorViewPosts",
		func() ([]repository.PostCount, error) { return h.durable.TopVisitorViewPosts(ctx, limit) },
		func() ([]repository.PostCount, error) { return h.memory.TopVisitorViewPosts(ctx, limit) },
	)
}

// CountSessionViews counts dedup rows on the active tier.
func (h *BlogViews) CountSessionViews(ctx context.Context, slug string) (int64, error) {
	return call(&h.state, "blog_views.CountSessionViews",
		func() (int64, error) { return h.durable.CountSessionViews(ctx, slug) },
		func() (int64, error) { return h.memory.CountSessionViews(ctx, slug) },
	)
}

// CountSessionViewsSince counts recent dedup rows on the active tier.
func (h *BlogViews) CountSessionViewsSince(ctx context.Context, since time.Time) (int64, error) {
	return call(&h.state, "blog_views.CountSessionViewsSince",
		func() (int64, error) { return h.durable.CountSessionViewsSince(ctx, since) },
		func() (int64, error) { return h.memory.CountSessionViewsSince(ctx, since) },
	)
}

// CountUniqueSessions counts distinct sessions on the active tier.
func (h *BlogViews) CountUniqueSessions(ctx context.Context) (int64, error) {
	return call(&h.state, "blog_views.CountUniqueSessions",
		func() (int64, error) { return h.durable.CountUniqueSessions(ctx) },
		func() (int64, error) { return h.memory.CountUniqueSessions(ctx) },
	)
}

// TopSessionPosts ranks posts by session views on the active tier.
func (h *BlogViews) TopSessionPosts(ctx context.Context, limit int) ([]repository.PostCount, error) {
	return call(&h.state, "blog_views.TopSessionPosts",
		func() ([]repository.PostCount, error) { return h.durable.TopSessionPosts(ctx, limit) },
		func() ([]repository.PostCount, error) { return h.memory.TopSessionPosts(ctx, limit) },
	)
}

// CreateMetadata creates metadata (and its analytics row) on the active tier.
func (h *BlogViews) CreateMetadata(ctx context.Context, meta *domain.BlogMetadata) error {
	return callErr(&h.state, "blog_views.CreateMetadata",
		func() error { return h.durable.CreateMetadata(ctx, meta) },
		func() error { return h.memory.CreateMetadata(ctx, meta) },
	)
}

// GetMetadata reads metadata on the active tier.
func (h *BlogViews) GetMetadata(ctx context.Context, slug string) (*domain.BlogMetadata, error) {
	return call(&h.state, "blog_views.GetMetadata",
		func() (*domain.BlogMetadata, error) { return h.durable.GetMetadata(ctx, slug) },
		func() (*domain.BlogMetadata, error) { return h.memory.GetMetadata(ctx, slug) },
	)
}

// ListMetadata lists metadata on the active tier.
func (h *BlogViews) ListMetadata(ctx context.Context, status string) ([]*domain.BlogMetadata, error) {
	return call(&h.state, "blog_views.ListMetadata",
		func() ([]*domain.BlogMetadata, error) { return h.durable.ListMetadata(ctx, status) },
		func() ([]*domain.BlogMetadata, error) { return h.memory.ListMetadata(ctx, status) },
	)
}

// DeleteMetadata deletes metadata (and its analytics row) on the active tier.
func (h *BlogViews) DeleteMetadata(ctx context.Context, slug string) error {
	return callErr(&h.state, "blog_views.DeleteMetadata",
		func() error { return h.durable.DeleteMetadata(ctx, slug) },
		func() error { return h.memory.DeleteMetadata(ctx, slug) },
	)
}

// GetAnalytics reads analytics counters on the active tier.
func (h *BlogViews) GetAnalytics(ctx context.Context, slug string) (*domain.BlogAnalytics, error) {
	return call(&h.state, "blog_views.GetAnalytics",
		func() (*domain.BlogAnalytics, error) { return h.durable.GetAnalytics(ctx, slug) },
		func() (*domain.BlogAnalytics, error) { return h.memory.GetAnalytics(ctx, slug) },
	)
}

// Ping checks the active tier.
func (h *BlogViews) Ping(ctx context.Context) error {
	if h.preferDurable {
		return h.durable.Ping(ctx)
	}
	return h.memory.Ping(ctx)
}
