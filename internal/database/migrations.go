package database

import (
	"Pulse-Backend/internal/domain"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all analytics tables.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := []interface{}{
		&domain.Visitor{},
		&domain.Pageview{},
		&domain.VisitorBlogView{},
		&domain.BlogView{},
		&domain.BlogMetadata{},
		&domain.BlogAnalytics{},
	}

	for _, model := range models {
		modelName := fmt.Sprintf("%T", model)
		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model", zap.String("model", modelName), zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
		log.Debug("model migrated", zap.String("model", modelName))
	}

	log.Info("database auto-migration completed", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData fills the database with a couple of example blog posts, for local
// development only.
func SeedData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	db.Model(&domain.BlogMetadata{}).Count(&count)
	if count > 0 {
		log.Info("blog metadata already exists, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	posts := []domain.BlogMetadata{
		{
			Slug:        "hello-world",
			Title:       "Hello, World",
			Excerpt:     "First post on the freshly tracked blog.",
			PublishedAt: time.Now().AddDate(0, 0, -7),
			ReadTime:    3,
			Tags:        []string{"meta"},
			Category:    domain.CategoryGeneral,
			Status:      domain.StatusPublished,
		},
		{
			Slug:        "designing-a-hybrid-store",
			Title:       "Designing a Hybrid Store",
			Excerpt:     "Why the tracking backend keeps working when the database does not.",
			PublishedAt: time.Now().AddDate(0, 0, -1),
			ReadTime:    8,
			Tags:        []string{"storage", "availability"},
			Category:    domain.CategoryEngineering,
			Status:      domain.StatusPublished,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range posts {
			if err := tx.Create(&posts[i]).Error; err != nil {
				return fmt.Errorf("failed to seed blog metadata: %w", err)
			}
			analytics := domain.BlogAnalytics{Slug: posts[i].Slug}
			if err := tx.Create(&analytics).Error; err != nil {
				return fmt.Errorf("failed to seed blog analytics: %w", err)
			}
		}
		log.Info("database seeding completed", zap.Int("posts_created", len(posts)))
		return nil
	})
}
