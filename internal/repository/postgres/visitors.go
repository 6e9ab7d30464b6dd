// Package postgres implements the durable storage tier on PostgreSQL via
// GORM. Upserts are written to be atomic per key: counter bumps go through
// SQL expressions and inserts race through ON CONFLICT DO NOTHING.
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

// VisitorStore implements repository.VisitorStorage for PostgreSQL.
type VisitorStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewVisitorStore creates a PostgreSQL-backed visitor store.
func NewVisitorStore(db *gorm.DB, log *zap.Logger) *VisitorStore {
	return &VisitorStore{db: db, log: log}
}

// TrackVisit upserts the visitor row. A returning visit is a single atomic
// UPDATE; the create path races through ON CONFLICT DO NOTHING so concurrent
// first visits cannot produce duplicate rows or lost counter updates.
func (s *VisitorStore) TrackVisit(ctx context.Context, visit *domain.Visitor) (*domain.Visitor, error) {
	if visit == nil || visit.VisitorID == "" {
		return nil, repository.ErrInvalidRecord
	}

	now := time.Now()
	updates := map[string]interface{}{
		"total_visits":   gorm.Expr("total_visits + 1"),
		"is_new_visitor": false,
		"last_visit_at":  now,
		"user_agent":     visit.UserAgent,
		"ip_address":     visit.IPAddress,
		"device_type":    visit.DeviceType,
		"browser":        visit.Browser,
		"os":             visit.OS,
	}

	res := s.db.WithContext(ctx).Model(&domain.Visitor{}).
		Where("visitor_id = ?", visit.VisitorID).
		Updates(updates)
	if res.Error != nil {
		s.log.Error("failed to update visitor", zap.String("visitor_id", visit.VisitorID), zap.Error(res.Error))
		return nil, fmt.Errorf("failed to update visitor: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		created := domain.Visitor{
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

		ins := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "visitor_id"}}, DoNothing: true}).
			Create(&created)
		if ins.Error != nil {
			s.log.Error("failed to create visitor", zap.String("visitor_id", visit.VisitorID), zap.Error(ins.Error))
			return nil, fmt.Errorf("failed to create visitor: %w", ins.Error)
		}

		if ins.RowsAffected == 0 {
			// Lost the insert race to a concurrent first visit; apply the
			// returning-visit update instead.
			res = s.db.WithContext(ctx).Model(&domain.Visitor{}).
				Where("visitor_id = ?", visit.VisitorID).
				Updates(updates)
			if res.Error != nil {
				return nil, fmt.Errorf("failed to update visitor after insert race: %w", res.Error)
			}
		} else {
			s.log.Debug("created new visitor", zap.String("visitor_id", visit.VisitorID))
		}
	}

	var stored domain.Visitor
	if err := s.db.WithContext(ctx).Where("visitor_id = ?", visit.VisitorID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load visitor after upsert: %w", err)
	}
	return &stored, nil
}

// GetVisitor returns the visitor for the given id.
func (s *VisitorStore) GetVisitor(ctx context.Context, visitorID string) (*domain.Visitor, error) {
	var visitor domain.Visitor

	err := s.db.WithContext(ctx).Where("visitor_id = ?", visitorID).First(&visitor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get visitor", zap.String("visitor_id", visitorID), zap.Error(err))
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}

	return &visitor, nil
}

// ListRecentVisitors returns up to limit visitors, most recent visit first.
func (s *VisitorStore) ListRecentVisitors(ctx context.Context, limit int) ([]*domain.Visitor, error) {
	var visitors []*domain.Visitor

	err := s.db.WithContext(ctx).
		Order("last_visit_at DESC").
		Limit(limit).
		Find(&visitors).Error
	if err != nil {
		s.log.Error("failed to list recent visitors", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent visitors: %w", err)
	}

	return visitors, nil
}

// CountVisitors returns the total visitor count and how many are still new.
func (s *VisitorStore) CountVisitors(ctx context.Context) (*repository.VisitorCounts, error) {
	var counts repository.VisitorCounts

	if err := s.db.WithContext(ctx).Model(&domain.Visitor{}).Count(&counts.Total).Error; err != nil {
		s.log.Error("failed to count visitors", zap.Error(err))
		return nil, fmt.Errorf("failed to count visitors: %w", err)
	}

	err := s.db.WithContext(ctx).Model(&domain.Visitor{}).
		Where("is_new_visitor = ?", true).
		Count(&counts.New).Error
	if err != nil {
		s.log.Error("failed to count new visitors", zap.Error(err))
		return nil, fmt.Errorf("failed to count new visitors: %w", err)
	}

	return &counts, nil
}

// Ping verifies the database connection.
func (s *VisitorStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db)
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
