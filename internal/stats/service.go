// Package stats computes aggregate statistics over the storage adapters. The
// result shape is identical whichever tier answers: the durable tier
// aggregates server-side, the memory tier reduces in process, and this
// service only composes their query results.
package stats

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// topLimit bounds every top-N ranking.
const topLimit = 10

// Service is the aggregation engine over the three entity families.
type Service struct {
	visitors  repository.VisitorStorage
	pageviews repository.PageviewStorage
	blogViews repository.BlogViewStorage
	log       *zap.Logger
}

// New creates the aggregation engine.
func New(
	visitors repository.VisitorStorage,
	pageviews repository.PageviewStorage,
	blogViews repository.BlogViewStorage,
	log *zap.Logger,
) *Service {
	return &Service{
		visitors:  visitors,
		pageviews: pageviews,
		blogViews: blogViews,
		log:       log,
	}
}

// VisitorStats is the visitor-level summary. NewVisitors and
// ReturningVisitors always sum to TotalVisitors.
type VisitorStats struct {
	TotalVisitors     int64                  `json:"total_visitors"`
	NewVisitors       int64                  `json:"new_visitors"`
	ReturningVisitors int64                  `json:"returning_visitors"`
	TotalBlogViews    int64                  `json:"total_blog_views"`
	UniqueBlogViews   int64                  `json:"unique_blog_views"`
	TopBlogPosts      []repository.PostCount `json:"top_blog_posts"`
	RecentVisitors    []*domain.Visitor      `json:"recent_visitors"`
}

// VisitorStats computes the visitor-level summary.
func (s *Service) VisitorStats(ctx context.Context) (*VisitorStats, error) {
	counts, err := s.visitors.CountVisitors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count visitors: %w", err)
	}

	totalViews, err := s.blogViews.SumVisitorViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum blog views: %w", err)
	}

	uniqueViews, err := s.blogViews.CountVisitorViewRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique blog views: %w", err)
	}

	topPosts, err := s.blogViews.TopVisitorViewPosts(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank top blog posts: %w", err)
	}

	recent, err := s.visitors.ListRecentVisitors(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent visitors: %w", err)
	}

	return &VisitorStats{
		TotalVisitors:     counts.Total,
		NewVisitors:       counts.New,
		ReturningVisitors: counts.Total - counts.New,
		TotalBlogViews:    totalViews,
		UniqueBlogViews:   uniqueViews,
		TopBlogPosts:      topPosts,
		RecentVisitors:    recent,
	}, nil
}

// BlogViewCount is the engagement summary for a single post.
type BlogViewCount struct {
	TotalViews            int64 `json:"total_views"`
	UniqueViewers         int64 `json:"unique_viewers"`
	NewVisitorViews       int64 `json:"new_visitor_views"`
	ReturningVisitorViews int64 `json:"returning_visitor_views"`
}

// BlogViewCount computes engagement counts for a slug. The new/returning
// split partitions TotalViews by each contributing visitor's is_new_visitor
// flag at query time, not at view time: a visitor who has since returned
// reclassifies all of their historical views.
func (s *Service) BlogViewCount(ctx context.Context, slug string) (*BlogViewCount, error) {
	views, err := s.blogViews.ListVisitorViewsBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog views: %w", err)
	}

	result := &BlogViewCount{UniqueViewers: int64(len(views))}
	for _, view := range views {
		result.TotalViews += view.ViewCount

		visitor, err := s.visitors.GetVisitor(ctx, view.VisitorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// The visitor record lives on another tier; classify the
				// views as returning rather than failing the query.
				result.ReturningVisitorViews += view.ViewCount
				continue
			}
			return nil, fmt.Errorf("failed to load visitor %s: %w", view.VisitorID, err)
		}

		if visitor.IsNewVisitor {
			result.NewVisitorViews += view.ViewCount
		} else {
			result.ReturningVisitorViews += view.ViewCount
		}
	}

	return result, nil
}

// PageviewStats is the pageview-log summary. Day boundaries are local
// midnight on the server clock.
type PageviewStats struct {
	Total      int64                  `json:"total"`
	Today      int64                  `json:"today"`
	Yesterday  int64                  `json:"yesterday"`
	ThisWeek   int64                  `json:"this_week"`
	UniqueURLs int64                  `json:"unique_urls"`
	TopPages   []repository.PageCount `json:"top_pages"`
}

// PageviewStats computes the pageview-log summary.
func (s *Service) PageviewStats(ctx context.Context) (*PageviewStats, error) {
	total, err := s.pageviews.CountPageviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pageviews: %w", err)
	}

	now := time.Now()
	todayStart := startOfDay(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -6)

	today, err := s.pageviews.CountPageviewsBetween(ctx, &todayStart, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's pageviews: %w", err)
	}

	yesterday, err := s.pageviews.CountPageviewsBetween(ctx, &yesterdayStart, &todayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count yesterday's pageviews: %w", err)
	}

	thisWeek, err := s.pageviews.CountPageviewsBetween(ctx, &weekStart, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's pageviews: %w", err)
	}

	uniqueURLs, err := s.pageviews.CountUniqueURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique urls: %w", err)
	}

	topPages, err := s.pageviews.TopPages(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank top pages: %w", err)
	}

	return &PageviewStats{
		Total:      total,
		Today:      today,
		Yesterday:  yesterday,
		ThisWeek:   thisWeek,
		UniqueURLs: uniqueURLs,
		TopPages:   topPages,
	}, nil
}

// BlogViewGlobalStats is the session-deduplicated reach summary across all
// posts; unique means distinct session ids.
type BlogViewGlobalStats struct {
	TotalViews     int64                  `json:"total_views"`
	UniqueViews    int64                  `json:"unique_views"`
	ViewsToday     int64                  `json:"views_today"`
	ViewsThisWeek  int64                  `json:"views_this_week"`
	ViewsThisMonth int64                  `json:"views_this_month"`
	TopPosts       []repository.PostCount `json:"top_posts"`
}

// BlogViewGlobalStats computes the session-log reach summary.
func (s *Service) BlogViewGlobalStats(ctx context.Context) (*BlogViewGlobalStats, error) {
	total, err := s.blogViews.CountSessionViews(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count session views: %w", err)
	}

	unique, err := s.blogViews.CountUniqueSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique sessions: %w", err)
	}

	now := time.Now()
	today, err := s.blogViews.CountSessionViewsSince(ctx, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's session views: %w", err)
	}

	thisWeek, err := s.blogViews.CountSessionViewsSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's session views: %w", err)
	}

	thisMonth, err := s.blogViews.CountSessionViewsSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to count this month's session views: %w", err)
	}

	topPosts, err := s.blogViews.TopSessionPosts(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank top session posts: %w", err)
	}

	return &BlogViewGlobalStats{
		TotalViews:     total,
		UniqueViews:    unique,
		ViewsToday:     today,
		ViewsThisWeek:  thisWeek,
		ViewsThisMonth: thisMonth,
		TopPosts:       topPosts,
	}, nil
}

// startOfDay returns local midnight for t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
