package stats

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository/memory"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testStores struct {
	visitors  *memory.VisitorStore
	pageviews *memory.PageviewStore
	blogViews *memory.BlogViewStore
}

func newTestService() (*Service, testStores) {
	stores := testStores{
		visitors:  memory.NewVisitorStore(),
		pageviews: memory.NewPageviewStore(0),
		blogViews: memory.NewBlogViewStore(),
	}
	svc := New(stores.visitors, stores.pageviews, stores.blogViews, zap.NewNop())
	return svc, stores
}

func TestVisitorStats_PartitionSumsToTotal(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: fmt.Sprintf("visitor-%d", i)})
		require.NoError(t, err)
	}
	// Two visitors come back.
	for _, id := range []string{"visitor-0", "visitor-3"} {
		_, err := stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: id})
		require.NoError(t, err)
	}

	result, err := svc.VisitorStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.TotalVisitors)
	assert.Equal(t, int64(3), result.NewVisitors)
	assert.Equal(t, int64(2), result.ReturningVisitors)
	assert.Equal(t, result.TotalVisitors, result.NewVisitors+result.ReturningVisitors)
}

func TestVisitorStats_BlogViewTotals(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	// visitor-1 reads twice, visitor-2 once.
	_, err := stores.blogViews.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "Go Concurrency")
	require.NoError(t, err)
	_, err = stores.blogViews.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "Go Concurrency")
	require.NoError(t, err)
	_, err = stores.blogViews.TrackVisitorView(ctx, "visitor-2", "go-concurrency", "Go Concurrency")
	require.NoError(t, err)

	result, err := svc.VisitorStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.TotalBlogViews)
	assert.Equal(t, int64(2), result.UniqueBlogViews)
	require.Len(t, result.TopBlogPosts, 1)
	assert.Equal(t, "go-concurrency", result.TopBlogPosts[0].Slug)
	assert.Equal(t, int64(3), result.TopBlogPosts[0].Views)
}

func TestVisitorStats_TopAndRecentAreBounded(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("visitor-%d", i)
		_, err := stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: id})
		require.NoError(t, err)
		_, err = stores.blogViews.TrackVisitorView(ctx, id, fmt.Sprintf("post-%d", i), "")
		require.NoError(t, err)
	}

	result, err := svc.VisitorStats(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.TopBlogPosts), 10)
	assert.LessOrEqual(t, len(result.RecentVisitors), 10)
}

func TestBlogViewCount_PartitionsByCurrentVisitorStatus(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	// visitor-1 is new, visitor-2 has returned.
	_, err := stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: "visitor-1"})
	require.NoError(t, err)
	_, err = stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: "visitor-2"})
	require.NoError(t, err)
	_, err = stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: "visitor-2"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = stores.blogViews.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "")
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err = stores.blogViews.TrackVisitorView(ctx, "visitor-2", "go-concurrency", "")
		require.NoError(t, err)
	}

	result, err := svc.BlogViewCount(ctx, "go-concurrency")
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.TotalViews)
	assert.Equal(t, int64(2), result.UniqueViewers)
	assert.Equal(t, int64(2), result.NewVisitorViews)
	assert.Equal(t, int64(3), result.ReturningVisitorViews)
}

func TestBlogViewCount_ReturnReclassifiesHistory(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	_, err := stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: "visitor-1"})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = stores.blogViews.TrackVisitorView(ctx, "visitor-1", "go-concurrency", "")
		require.NoError(t, err)
	}

	before, err := svc.BlogViewCount(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(4), before.NewVisitorViews)
	assert.Zero(t, before.ReturningVisitorViews)

	// The visitor returns: all four historical views move to the
	// returning bucket on the next query.
	_, err = stores.visitors.TrackVisit(ctx, &domain.Visitor{VisitorID: "visitor-1"})
	require.NoError(t, err)

	after, err := svc.BlogViewCount(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Zero(t, after.NewVisitorViews)
	assert.Equal(t, int64(4), after.ReturningVisitorViews)
}

func TestBlogViewCount_UnknownVisitorCountsAsReturning(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	// An engagement row without a visitor record, as happens when the
	// tiers diverge.
	_, err := stores.blogViews.TrackVisitorView(ctx, "orphan-visitor", "go-concurrency", "")
	require.NoError(t, err)

	result, err := svc.BlogViewCount(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalViews)
	assert.Equal(t, int64(1), result.ReturningVisitorViews)
}

func TestBlogViewCount_EmptySlug(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.BlogViewCount(context.Background(), "never-viewed")
	require.NoError(t, err)
	assert.Zero(t, result.TotalViews)
	assert.Zero(t, result.UniqueViewers)
}

func TestPageviewStats_TimeWindows(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	now := time.Now()
	times := []time.Time{
		now,                     // today
		now,                     // today
		now.AddDate(0, 0, -1),   // yesterday
		now.AddDate(0, 0, -10),  // outside the week window
	}
	for i, at := range times {
		_, err := stores.pageviews.RecordPageview(ctx, &domain.Pageview{
			URL:      fmt.Sprintf("/page-%d", i%2),
			ViewedAt: at,
		})
		require.NoError(t, err)
	}

	result, err := svc.PageviewStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.Total)
	assert.Equal(t, int64(2), result.Today)
	assert.Equal(t, int64(1), result.Yesterday)
	assert.Equal(t, int64(3), result.ThisWeek)
	assert.Equal(t, int64(2), result.UniqueURLs)
	require.NotEmpty(t, result.TopPages)
	for i := 1; i < len(result.TopPages); i++ {
		assert.GreaterOrEqual(t, result.TopPages[i-1].Views, result.TopPages[i].Views)
	}
}

func TestBlogViewGlobalStats(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	// Two sessions today, one stale view from last month.
	_, _, err := stores.blogViews.RecordSessionView(ctx, &domain.BlogView{
		SessionID: "session-1", BlogSlug: "go-concurrency",
	})
	require.NoError(t, err)
	_, _, err = stores.blogViews.RecordSessionView(ctx, &domain.BlogView{
		SessionID: "session-2", BlogSlug: "go-concurrency",
	})
	require.NoError(t, err)
	_, _, err = stores.blogViews.RecordSessionView(ctx, &domain.BlogView{
		SessionID: "session-1", BlogSlug: "error-handling",
		ViewedAt: time.Now().AddDate(0, 0, -40),
	})
	require.NoError(t, err)

	result, err := svc.BlogViewGlobalStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.TotalViews)
	assert.Equal(t, int64(2), result.UniqueViews)
	assert.Equal(t, int64(2), result.ViewsToday)
	assert.Equal(t, int64(2), result.ViewsThisWeek)
	assert.Equal(t, int64(2), result.ViewsThisMonth)
	require.Len(t, result.TopPosts, 2)
	assert.Equal(t, "go-concurrency", result.TopPosts[0].Slug)
	assert.Equal(t, int64(2), result.TopPosts[0].Views)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, time.March, 10, 17, 42, 13, 500, time.Local)
	midnight := startOfDay(at)

	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, 0, midnight.Minute())
	assert.Equal(t, at.Day(), midnight.Day())
	assert.Equal(t, at.Location(), midnight.Location())
}
