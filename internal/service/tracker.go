// Package service contains the tracking service: input validation, visitor
// identity derivation and User-Agent enrichment in front of the storage
// adapters.
package service

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/fingerprint"
	"Pulse-Backend/internal/repository"
	"Pulse-Backend/pkg/useragent"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Tracker coordinates tracking writes and blog post management across the
// three entity families.
type Tracker struct {
	visitors  repository.VisitorStorage
	pageviews repository.PageviewStorage
	blogViews repository.BlogViewStorage
	log       *zap.Logger
}

// NewTracker creates a tracking service over the given storage adapters.
func NewTracker(
	visitors repository.VisitorStorage,
	pageviews repository.PageviewStorage,
	blogViews repository.BlogViewStorage,
	log *zap.Logger,
) *Tracker {
	return &Tracker{
		visitors:  visitors,
		pageviews: pageviews,
		blogViews: blogViews,
		log:       log,
	}
}

// TrackVisitorInput is the write payload for a visitor tracking call. When
// VisitorID is empty the identity is derived from the header signals.
type TrackVisitorInput struct {
	VisitorID string
	Signals   fingerprint.Signals
	IPAddress string
}

// PageviewInput is the write payload for a pageview event.
type PageviewInput struct {
	URL       string
	Title     string
	Referrer  string
	UserAgent string
}

// BlogViewInput is the write payload for a blog view tracking call. It feeds
// both the per-visitor engagement aggregate and the session dedup log.
type BlogViewInput struct {
	Slug      string
	Title     string
	VisitorID string // optional, derived from Signals when empty
	SessionID string
	Signals   fingerprint.Signals
	IPAddress string
	Referrer  string
}

// BlogViewResult carries the outcome of one blog view tracking call.
type BlogViewResult struct {
	Visitor     *domain.Visitor         `json:"visitor"`
	VisitorView *domain.VisitorBlogView `json:"visitor_view"`
	SessionView *domain.BlogView        `json:"session_view"`
	IsNewView   bool                    `json:"is_new_view"`
}

// TrackVisitor upserts the visitor identified by the supplied id or, when
// absent, by a fingerprint derived from the header signals.
func (t *Tracker) TrackVisitor(ctx context.Context, input TrackVisitorInput) (*domain.Visitor, error) {
	visitorID := input.VisitorID
	if visitorID == "" {
		visitorID = fingerprint.Generate(input.Signals)
	}

	visit := &domain.Visitor{
		VisitorID: visitorID,
		UserAgent: strPtr(input.Signals.UserAgent),
		IPAddress: strPtr(input.IPAddress),
	}
	enrichDevice(input.Signals.UserAgent, &visit.DeviceType, &visit.Browser, &visit.OS)

	visitor, err := t.visitors.TrackVisit(ctx, visit)
	if err != nil {
		return nil, fmt.Errorf("failed to track visitor: %w", err)
	}

	t.log.Debug("tracked visitor",
		zap.String("visitor_id", visitor.VisitorID),
		zap.Bool("is_new", visitor.IsNewVisitor),
		zap.Int64("total_visits", visitor.TotalVisits))
	return visitor, nil
}

// RecordPageview appends a pageview event to the log.
func (t *Tracker) RecordPageview(ctx context.Context, input PageviewInput) (*domain.Pageview, error) {
	if input.URL == "" {
		return nil, repository.ErrInvalidRecord
	}

	pv := &domain.Pageview{
		URL:       input.URL,
		Title:     strPtr(input.Title),
		Referrer:  strPtr(input.Referrer),
		UserAgent: strPtr(input.UserAgent),
	}
	var browser, os *string
	enrichDevice(input.UserAgent, &pv.DeviceType, &browser, &os)

	stored, err := t.pageviews.RecordPageview(ctx, pv)
	if err != nil {
		return nil, fmt.Errorf("failed to record pageview: %w", err)
	}

	t.log.Debug("recorded pageview", zap.String("url", stored.URL))
	return stored, nil
}

// TrackBlogView records one blog view end to end: it upserts the visitor,
// bumps the per-visitor engagement aggregate and writes the session-scoped
// dedup row. The two view counters deliberately diverge: engagement counts
// repeats, the session log does not.
func (t *Tracker) TrackBlogView(ctx context.Context, input BlogViewInput) (*BlogViewResult, error) {
	if input.Slug == "" || input.SessionID == "" {
		return nil, repository.ErrInvalidRecord
	}

	visitorID := input.VisitorID
	if visitorID == "" {
		visitorID = fingerprint.Generate(input.Signals)
	}

	visitor, err := t.TrackVisitor(ctx, TrackVisitorInput{
		VisitorID: visitorID,
		Signals:   input.Signals,
		IPAddress: input.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	visitorView, err := t.blogViews.TrackVisitorView(ctx, visitorID, input.Slug, input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to track blog view: %w", err)
	}

	sessionView, isNew, err := t.blogViews.RecordSessionView(ctx, &domain.BlogView{
		SessionID: input.SessionID,
		BlogSlug:  input.Slug,
		IPAddress: strPtr(input.IPAddress),
		UserAgent: strPtr(input.Signals.UserAgent),
		Referrer:  strPtr(input.Referrer),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record session view: %w", err)
	}

	t.log.Debug("tracked blog view",
		zap.String("visitor_id", visitorID),
		zap.String("slug", input.Slug),
		zap.Int64("view_count", visitorView.ViewCount),
		zap.Bool("is_new_session_view", isNew))

	return &BlogViewResult{
		Visitor:     visitor,
		VisitorView: visitorView,
		SessionView: sessionView,
		IsNewView:   isNew,
	}, nil
}

// CreateBlogPost validates and stores new blog metadata together with its
// zero-valued analytics row.
func (t *Tracker) CreateBlogPost(ctx context.Context, meta *domain.BlogMetadata) error {
	if meta == nil || meta.Slug == "" || meta.Title == "" {
		return repository.ErrInvalidRecord
	}
	if meta.Status == "" {
		meta.Status = domain.StatusDraft
	}
	if meta.Category == "" {
		meta.Category = domain.CategoryGeneral
	}
	if !domain.ValidStatus(meta.Status) || !domain.ValidCategory(meta.Category) {
		return repository.ErrInvalidRecord
	}

	if err := t.blogViews.CreateMetadata(ctx, meta); err != nil {
		return err
	}

	t.log.Info("created blog post", zap.String("slug", meta.Slug), zap.String("status", meta.Status))
	return nil
}

// GetBlogPost returns the metadata for a slug.
func (t *Tracker) GetBlogPost(ctx context.Context, slug string) (*domain.BlogMetadata, error) {
	return t.blogViews.GetMetadata(ctx, slug)
}

// ListBlogPosts returns posts, optionally filtered by status.
func (t *Tracker) ListBlogPosts(ctx context.Context, status string) ([]*domain.BlogMetadata, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, repository.ErrInvalidRecord
	}
	return t.blogViews.ListMetadata(ctx, status)
}

// DeleteBlogPost removes a post and its analytics row.
func (t *Tracker) DeleteBlogPost(ctx context.Context, slug string) error {
	return t.blogViews.DeleteMetadata(ctx, slug)
}

// GetBlogAnalytics returns the per-post analytics counters.
func (t *Tracker) GetBlogAnalytics(ctx context.Context, slug string) (*domain.BlogAnalytics, error) {
	return t.blogViews.GetAnalytics(ctx, slug)
}

// enrichDevice fills device classification fields from a User-Agent string,
// preferring the uap parser when it is initialized.
func enrichDevice(ua string, deviceType, browser, os **string) {
	if ua == "" {
		return
	}

	if parser := useragent.GetGlobalParser(); parser != nil {
		info := parser.ParseUserAgent(ua)
		*deviceType = strPtr(info.DeviceType)
		*browser = strPtr(info.Browser)
		*os = strPtr(info.OS)
		return
	}

	*deviceType = strPtr(useragent.DetectDeviceType(ua))
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
