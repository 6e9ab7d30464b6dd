package postgres

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageviewStore implements repository.PageviewStorage for PostgreSQL.
type PageviewStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewPageviewStore creates a PostgreSQL-backed pageview store.
func NewPageviewStore(db *gorm.DB, log *zap.Logger) *PageviewStore {
	return &PageviewStore{db: db, log: log}
}

// RecordPageview appends a new pageview event.
func (s *PageviewStore) RecordPageview(ctx context.Context, pv *domain.Pageview) (*domain.Pageview, error) {
	if pv == nil || pv.URL == "" {
		return nil, repository.ErrInvalidRecord
	}

	stored := *pv
	stored.ID = 0
	if err := s.db.WithContext(ctx).Create(&stored).Error; err != nil {
		s.log.Error("failed to record pageview", zap.String("url", pv.URL), zap.Error(err))
		return nil, fmt.Errorf("failed to record pageview: %w", err)
	}

	return &stored, nil
}

// CountPageviews returns the total number of pageview events.
func (s *PageviewStore) CountPageviews(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Pageview{}).Count(&count).Error; err != nil {
		s.log.Error("failed to count pageviews", zap.Error(err))
		return 0, fmt.Errorf("failed to count pageviews: %w", err)
	}
	return count, nil
}

// CountPageviewsBetween counts events with from <= viewed_at < to; nil bounds
// are open-ended.
func (s *PageviewStore) CountPageviewsBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Pageview{})
	if from != nil {
		query = query.Where("viewed_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("viewed_at < ?", *to)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		s.log.Error("failed to count pageviews in range", zap.Error(err))
		return 0, fmt.Errorf("failed to count pageviews in range: %w", err)
	}
	return count, nil
}

// CountUniqueURLs returns the number of distinct URLs in the log.
func (s *PageviewStore) CountUniqueURLs(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Pageview{}).
		Distinct("url").
		Count(&count).Error
	if err != nil {
		s.log.Error("failed to count unique urls", zap.Error(err))
		return 0, fmt.Errorf("failed to count unique urls: %w", err)
	}
	return count, nil
}

// TopPages returns up to limit URLs ranked by view count, descending, ties
// broken by the earliest recorded view.
func (s *PageviewStore) TopPages(ctx context.Context, limit int) ([]repository.PageCount, error) {
	var pages []repository.PageCount

	err := s.db.WithContext(ctx).Model(&domain.Pageview{}).
		Select("url, count(*) as views, min(id) as first_id").
		Group("url").
		Order("views DESC, first_id ASC").
		Limit(limit).
		Scan(&pages).Error
	if err != nil {
		s.log.Error("failed to rank top pages", zap.Error(err))
		return nil, fmt.Errorf("failed to rank top pages: %w", err)
	}

	return pages, nil
}

// Ping verifies the database connection.
func (s *PageviewStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db)
}
