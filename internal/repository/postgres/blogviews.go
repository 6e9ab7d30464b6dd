package postgres

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recentWindow is the trailing window used for BlogAnalytics.RecentViews.
const recentWindow = 7 * 24 * time.Hour

// BlogViewStore implements repository.BlogViewStorage for PostgreSQL.
type BlogViewStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewBlogViewStore creates a PostgreSQL-backed blog view store.
func NewBlogViewStore(db *gorm.DB, log *zap.Logger) *BlogViewStore {
	return &BlogViewStore{db: db, log: log}
}

// TrackVisitorView upserts the (visitor, slug) engagement aggregate and the
// paired analytics counters inside one transaction.
func (s *BlogViewStore) TrackVisitorView(ctx context.Context, visitorID, slug, title string) (*domain.VisitorBlogView, error) {
	if visitorID == "" || slug == "" {
		return nil, repository.ErrInvalidRecord
	}

	now := time.Now()
	var stored domain.VisitorBlogView

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"view_count":     gorm.Expr("view_count + 1"),
			"last_viewed_at": now,
		}
		if title != "" {
			updates["blog_title"] = title
		}

		res := tx.Model(&domain.VisitorBlogView{}).
			Where("visitor_id = ? AND blog_slug = ?", visitorID, slug).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update blog view: %w", res.Error)
		}

		firstView := false
		if res.RowsAffected == 0 {
			created := domain.VisitorBlogView{
				VisitorID:     visitorID,
				BlogSlug:      slug,
				BlogTitle:     title,
				ViewCount:     1,
				FirstViewedAt: now,
				LastViewedAt:  now,
			}
			ins := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "blog_slug"}},
				DoNothing: true,
			}).Create(&created)
			if ins.Error != nil {
				return fmt.Errorf("failed to create blog view: %w", ins.Error)
			}
			if ins.RowsAffected == 0 {
				// Lost the insert race; count this call as a repeat view.
				res = tx.Model(&domain.VisitorBlogView{}).
					Where("visitor_id = ? AND blog_slug = ?", visitorID, slug).
					Updates(updates)
				if res.Error != nil {
					return fmt.Errorf("failed to update blog view after insert race: %w", res.Error)
				}
			} else {
				firstView = true
			}
		}

		// Analytics rows exist 1:1 with metadata; views of unknown slugs
		// leave the counters untouched.
		counters := map[string]interface{}{
			"total_views":    gorm.Expr("total_views + 1"),
			"last_viewed_at": now,
		}
		if firstView {
			counters["unique_views"] = gorm.Expr("unique_views + 1")
		}
		if err := tx.Model(&domain.BlogAnalytics{}).Where("slug = ?", slug).Updates(counters).Error; err != nil {
			return fmt.Errorf("failed to update blog analytics: %w", err)
		}

		return tx.Where("visitor_id = ? AND blog_slug = ?", visitorID, slug).First(&stored).Error
	})
	if err != nil {
		s.log.Error("failed to track blog view",
			zap.String("visitor_id", visitorID),
			zap.String("slug", slug),
			zap.Error(err))
		return nil, err
	}

	return &stored, nil
}

// RecordSessionView inserts the (session, slug) dedup row; ON CONFLICT
// DO NOTHING makes the first write win atomically.
func (s *BlogViewStore) RecordSessionView(ctx context.Context, view *domain.BlogView) (*domain.BlogView, bool, error) {
	if view == nil || view.SessionID == "" || view.BlogSlug == "" {
		return nil, false, repository.ErrInvalidRecord
	}

	stored := *view
	stored.ID = 0
	if stored.ViewedAt.IsZero() {
		stored.ViewedAt = time.Now()
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "blog_slug"}},
			DoNothing: true,
		}).
		Create(&stored)
	if res.Error != nil {
		s.log.Error("failed to record session view",
			zap.String("session_id", view.SessionID),
			zap.String("slug", view.BlogSlug),
			zap.Error(res.Error))
		return nil, false, fmt.Errorf("failed to record session view: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		return &stored, true, nil
	}

	// The pair already exists; return the authoritative first row unchanged.
	var existing domain.BlogView
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND blog_slug = ?", view.SessionID, view.BlogSlug).
		First(&existing).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing session view: %w", err)
	}
	return &existing, false, nil
}

// ListVisitorViewsBySlug returns all engagement aggregates for a slug in
// first-view order.
func (s *BlogViewStore) ListVisitorViewsBySlug(ctx context.Context, slug string) ([]*domain.VisitorBlogView, error) {
	var views []*domain.VisitorBlogView

	err := s.db.WithContext(ctx).
		Where("blog_slug = ?", slug).
		Order("id ASC").
		Find(&views).Error
	if err != nil {
		s.log.Error("failed to list blog views", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to list blog views: %w", err)
	}

	return views, nil
}

// SumVisitorViews returns the total engagement view count across all posts.
func (s *BlogViewStore) SumVisitorViews(ctx context.Context) (int64, error) {
	var sum int64
	err := s.db.WithContext(ctx).Model(&domain.VisitorBlogView{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	if err != nil {
		s.log.Error("failed to sum blog views", zap.Error(err))
		return 0, fmt.Errorf("failed to sum blog views: %w", err)
	}
	return sum, nil
}

// CountVisitorViewRows returns the number of distinct (visitor, slug) pairs.
func (s *BlogViewStore) CountVisitorViewRows(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.VisitorBlogView{}).Count(&count).Error; err != nil {
		s.log.Error("failed to count blog view rows", zap.Error(err))
		return 0, fmt.Errorf("failed to count blog view rows: %w", err)
	}
	return count, nil
}

// TopVisitorViewPosts ranks posts by summed engagement views, descending,
// ties broken by the earliest recorded view.
func (s *BlogViewStore) TopVisitorViewPosts(ctx context.Context, limit int) ([]repository.PostCount, error) {
	var posts []repository.PostCount

	err := s.db.WithContext(ctx).Model(&domain.VisitorBlogView{}).
		Select("blog_slug, max(blog_title) as blog_title, sum(view_count) as views, min(id) as first_id").
		Group("blog_slug").
		Order("views DESC, first_id ASC").
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		s.log.Error("failed to rank top blog posts", zap.Error(err))
		return nil, fmt.Errorf("failed to rank top blog posts: %w", err)
	}

	return posts, nil
}

// CountSessionViews counts dedup rows for a slug, or all rows when slug is
// empty.
func (s *BlogViewStore) CountSessionViews(ctx context.Context, slug string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.BlogView{})
	if slug != "" {
		query = query.Where("blog_slug = ?", slug)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		s.log.Error("failed to count session views", zap.String("slug", slug), zap.Error(err))
		return 0, fmt.Errorf("failed to count session views: %w", err)
	}
	return count, nil
}

// CountSessionViewsSince counts dedup rows recorded at or after since.
func (s *BlogViewStore) CountSessionViewsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.BlogView{}).
		Where("viewed_at >= ?", since).
		Count(&count).Error
	if err != nil {
		s.log.Error("failed to count session views since", zap.Time("since", since), zap.Error(err))
		return 0, fmt.Errorf("failed to count session views since: %w", err)
	}
	return count, nil
}

// CountUniqueSessions returns the number of distinct session ids in the log.
func (s *BlogViewStore) CountUniqueSessions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.BlogView{}).
		Distinct("session_id").
		Count(&count).Error
	if err != nil {
		s.log.Error("failed to count unique sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to count unique sessions: %w", err)
	}
	return count, nil
}

// TopSessionPosts ranks posts by session-deduplicated views, descending.
func (s *BlogViewStore) TopSessionPosts(ctx context.Context, limit int) ([]repository.PostCount, error) {
	var posts []repository.PostCount

	err := s.db.WithContext(ctx).Model(&domain.BlogView{}).
		Select("blog_slug, count(*) as views, min(id) as first_id").
		Group("blog_slug").
		Order("views DESC, first_id ASC").
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		s.log.Error("failed to rank top session posts", zap.Error(err))
		return nil, fmt.Errorf("failed to rank top session posts: %w", err)
	}

	return posts, nil
}

// CreateMetadata stores blog metadata together with its paired zero-valued
// analytics row, in one transaction.
func (s *BlogViewStore) CreateMetadata(ctx context.Context, meta *domain.BlogMetadata) error {
	if meta == nil || meta.Slug == "" || meta.Title == "" {
		return repository.ErrInvalidRecord
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.BlogMetadata
		err := tx.Where("slug = ?", meta.Slug).First(&existing).Error
		if err == nil {
			return repository.ErrMetadataExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check metadata existence: %w", err)
		}

		if err := tx.Create(meta).Error; err != nil {
			return fmt.Errorf("failed to create blog metadata: %w", err)
		}

		analytics := domain.BlogAnalytics{Slug: meta.Slug}
		if err := tx.Create(&analytics).Error; err != nil {
			return fmt.Errorf("failed to create blog analytics: %w", err)
		}
		return nil
	})
	if err != nil {
		if !repository.IsDomainError(err) {
			s.log.Error("failed to create blog metadata", zap.String("slug", meta.Slug), zap.Error(err))
		}
		return err
	}

	s.log.Info("created blog metadata", zap.String("slug", meta.Slug))
	return nil
}

// GetMetadata returns the metadata for a slug.
func (s *BlogViewStore) GetMetadata(ctx context.Context, slug string) (*domain.BlogMetadata, error) {
	var meta domain.BlogMetadata

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get blog metadata", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get blog metadata: %w", err)
	}

	return &meta, nil
}

// ListMetadata returns posts, optionally filtered by status, most recently
// published first.
func (s *BlogViewStore) ListMetadata(ctx context.Context, status string) ([]*domain.BlogMetadata, error) {
	query := s.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var posts []*domain.BlogMetadata
	if err := query.Order("published_at DESC").Find(&posts).Error; err != nil {
		s.log.Error("failed to list blog metadata", zap.Error(err))
		return nil, fmt.Errorf("failed to list blog metadata: %w", err)
	}

	return posts, nil
}

// DeleteMetadata removes the metadata and its paired analytics row in one
// transaction.
func (s *BlogViewStore) DeleteMetadata(ctx context.Context, slug string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("slug = ?", slug).Delete(&domain.BlogMetadata{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete blog metadata: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		if err := tx.Where("slug = ?", slug).Delete(&domain.BlogAnalytics{}).Error; err != nil {
			return fmt.Errorf("failed to delete blog analytics: %w", err)
		}
		return nil
	})
	if err != nil {
		if !repository.IsDomainError(err) {
			s.log.Error("failed to delete blog metadata", zap.String("slug", slug), zap.Error(err))
		}
		return err
	}

	s.log.Info("deleted blog metadata", zap.String("slug", slug))
	return nil
}

// GetAnalytics returns the analytics counters for a slug, with RecentViews
// recomputed over the trailing window from the session log.
func (s *BlogViewStore) GetAnalytics(ctx context.Context, slug string) (*domain.BlogAnalytics, error) {
	var analytics domain.BlogAnalytics

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&analytics).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get blog analytics", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get blog analytics: %w", err)
	}

	cutoff := time.Now().Add(-recentWindow)
	err = s.db.WithContext(ctx).Model(&domain.BlogView{}).
		Where("blog_slug = ? AND viewed_at >= ?", slug, cutoff).
		Count(&analytics.RecentViews).Error
	if err != nil {
		s.log.Error("failed to compute recent views", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to compute recent views: %w", err)
	}

	return &analytics, nil
}

// Ping verifies the database connection.
func (s *BlogViewStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db)
}
