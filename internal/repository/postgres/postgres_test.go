package postgres

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB starts a throwaway PostgreSQL container and migrates the
// analytics schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pulse_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Visitor{},
		&domain.Pageview{},
		&domain.VisitorBlogView{},
		&domain.BlogView{},
		&domain.BlogMetadata{},
		&domain.BlogAnalytics{},
	))
	return db
}

func TestVisitorStore_Postgres_TrackVisit(t *testing.T) {
	db := setupTestDB(t)
	store := NewVisitorStore(db, zap.NewNop())
	ctx := context.Background()

	first, err := store.TrackVisit(ctx, &domain.Visitor{VisitorID: "abc123"})
	require.NoError(t, err)
	assert.True(t, first.IsNewVisitor)
	assert.Equal(t, int64(1), first.TotalVisits)

	second, err := store.TrackVisit(ctx, &domain.Visitor{VisitorID: "abc123"})
	require.NoError(t, err)
	assert.False(t, second.IsNewVisitor)
	assert.Equal(t, int64(2), second.TotalVisits)

	counts, err := store.CountVisitors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Total)
	assert.Zero(t, counts.New)

	_, err = store.GetVisitor(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPageviewStore_Postgres_CountsAndRanking(t *testing.T) {
	db := setupTestDB(t)
	store := NewPageviewStore(db, zap.NewNop())
	ctx := context.Background()

	for _, url := range []string{"/a", "/b", "/a", "/a", "/b", "/c"} {
		_, err := store.RecordPageview(ctx, &domain.Pageview{URL: url})
		require.NoError(t, err)
	}

	total, err := store.CountPageviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)

	unique, err := store.CountUniqueURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unique)

	top, err := store.TopPages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "/a", top[0].URL)
	assert.Equal(t, int64(3), top[0].Views)
	assert.Equal(t, "/b", top[1].URL)
}

func TestBlogViewStore_Postgres_EngagementAndDedup(t *testing.T) {
	db := setupTestDB(t)
	store := NewBlogViewStore(db, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.CreateMetadata(ctx, &domain.BlogMetadata{
		Slug:  "go-concurrency",
		Title: "Go Concurrency",
	}))

	// Engagement counts repeats.
	first, err := store.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "Go Concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ViewCount)

	second, err := store.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "Go Concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ViewCount)

	// The session log does not.
	_, isNew, err := store.RecordSessionView(ctx, &domain.BlogView{
		SessionID: "session-1",
		BlogSlug:  "go-concurrency",
	})
	require.NoError(t, err)
	assert.True(t, isNew)

	_, isNew, err = store.RecordSessionView(ctx, &domain.BlogView{
		SessionID: "session-1",
		BlogSlug:  "go-concurrency",
	})
	require.NoError(t, err)
	assert.False(t, isNew)

	sessions, err := store.CountSessionViews(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sessions)

	analytics, err := store.GetAnalytics(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalViews)
	assert.Equal(t, int64(1), analytics.UniqueViews)
	assert.Equal(t, int64(1), analytics.RecentViews)
}

func TestBlogViewStore_Postgres_MetadataLifecycle(t *testing.T) {
	db := setupTestDB(t)
	store := NewBlogViewStore(db, zap.NewNop())
	ctx := context.Background()

	meta := &domain.BlogMetadata{
		Slug:     "go-concurrency",
		Title:    "Go Concurrency",
		Status:   domain.StatusPublished,
		Category: domain.CategoryEngineering,
		Tags:     []string{"go", "concurrency"},
	}
	require.NoError(t, store.CreateMetadata(ctx, meta))
	assert.ErrorIs(t, store.CreateMetadata(ctx, meta), repository.ErrMetadataExists)

	got, err := store.GetMetadata(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "concurrency"}, got.Tags)

	analytics, err := store.GetAnalytics(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Zero(t, analytics.TotalViews)

	require.NoError(t, store.DeleteMetadata(ctx, "go-concurrency"))
	_, err = store.GetMetadata(ctx, "go-concurrency")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetAnalytics(ctx, "go-concurrency")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, store.DeleteMetadata(ctx, "go-concurrency"), repository.ErrNotFound)
}
