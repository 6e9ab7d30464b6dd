package service

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/fingerprint"
	"Pulse-Backend/internal/repository"
	"Pulse-Backend/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTracker() (*Tracker, *memory.VisitorStore, *memory.BlogViewStore) {
	visitors := memory.NewVisitorStore()
	blogViews := memory.NewBlogViewStore()
	tracker := NewTracker(visitors, memory.NewPageviewStore(0), blogViews, zap.NewNop())
	return tracker, visitors, blogViews
}

var testSignals = fingerprint.Signals{
	UserAgent:        "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Chrome/120.0",
	AcceptLanguage:   "en-US,en;q=0.9",
	ScreenResolution: "2560x1440",
	Timezone:         "Europe/Berlin",
	Platform:         "MacIntel",
}

func TestTracker_TrackVisitor_DerivesIdentityFromSignals(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	first, err := tracker.TrackVisitor(ctx, TrackVisitorInput{Signals: testSignals})
	require.NoError(t, err)
	assert.Len(t, first.VisitorID, 16)
	assert.True(t, first.IsNewVisitor)

	// The same signals resolve to the same visitor on the next call.
	second, err := tracker.TrackVisitor(ctx, TrackVisitorInput{Signals: testSignals})
	require.NoError(t, err)
	assert.Equal(t, first.VisitorID, second.VisitorID)
	assert.False(t, second.IsNewVisitor)
	assert.Equal(t, int64(2), second.TotalVisits)
}

func TestTracker_TrackVisitor_ExplicitIDSkipsFingerprint(t *testing.T) {
	tracker, _, _ := newTestTracker()

	visitor, err := tracker.TrackVisitor(context.Background(), TrackVisitorInput{
		VisitorID: "client-chosen-id",
		Signals:   testSignals,
	})
	require.NoError(t, err)
	assert.Equal(t, "client-chosen-id", visitor.VisitorID)
}

func TestTracker_TrackVisitor_FallbackDeviceClassification(t *testing.T) {
	tracker, _, _ := newTestTracker()

	signals := testSignals
	signals.UserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"
	visitor, err := tracker.TrackVisitor(context.Background(), TrackVisitorInput{Signals: signals})
	require.NoError(t, err)
	require.NotNil(t, visitor.DeviceType)
	assert.Equal(t, "mobile", *visitor.DeviceType)
}

func TestTracker_RecordPageview_RequiresURL(t *testing.T) {
	tracker, _, _ := newTestTracker()

	_, err := tracker.RecordPageview(context.Background(), PageviewInput{})
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)
}

func TestTracker_RecordPageview(t *testing.T) {
	tracker, _, _ := newTestTracker()

	pv, err := tracker.RecordPageview(context.Background(), PageviewInput{
		URL:      "/blog/go-concurrency",
		Title:    "Go Concurrency",
		Referrer: "https://duckduckgo.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, "/blog/go-concurrency", pv.URL)
	require.NotNil(t, pv.Title)
	assert.Equal(t, "Go Concurrency", *pv.Title)
}

func TestTracker_TrackBlogView_RequiresSlugAndSession(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	_, err := tracker.TrackBlogView(ctx, BlogViewInput{SessionID: "session-1"})
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)

	_, err = tracker.TrackBlogView(ctx, BlogViewInput{Slug: "go-concurrency"})
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)
}

// TestTracker_TrackBlogView_RepeatViewDiverges exercises the central
// behavior: a repeat view in one session bumps the engagement counter but
// leaves the session log untouched.
func TestTracker_TrackBlogView_RepeatViewDiverges(t *testing.T) {
	tracker, _, blogViews := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tracker.CreateBlogPost(ctx, &domain.BlogMetadata{
		Slug:  "go-concurrency",
		Title: "Go Concurrency",
	}))

	input := BlogViewInput{
		Slug:      "go-concurrency",
		Title:     "Go Concurrency",
		SessionID: "session-1",
		Signals:   testSignals,
	}

	first, err := tracker.TrackBlogView(ctx, input)
	require.NoError(t, err)
	assert.True(t, first.Visitor.IsNewVisitor)
	assert.Equal(t, int64(1), first.VisitorView.ViewCount)
	assert.True(t, first.IsNewView)

	second, err := tracker.TrackBlogView(ctx, input)
	require.NoError(t, err)
	assert.False(t, second.Visitor.IsNewVisitor, "the repeat view reclassifies the visitor")
	assert.Equal(t, int64(2), second.VisitorView.ViewCount)
	assert.False(t, second.IsNewView, "the session already saw this post")
	assert.Equal(t, first.Visitor.VisitorID, second.Visitor.VisitorID)

	sessionCount, err := blogViews.CountSessionViews(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sessionCount)

	analytics, err := tracker.GetBlogAnalytics(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalViews)
	assert.Equal(t, int64(1), analytics.UniqueViews)
}

func TestTracker_TrackBlogView_NewSessionCountsAgain(t *testing.T) {
	tracker, _, blogViews := newTestTracker()
	ctx := context.Background()

	for _, session := range []string{"session-1", "session-2"} {
		_, err := tracker.TrackBlogView(ctx, BlogViewInput{
			Slug:      "go-concurrency",
			SessionID: session,
			Signals:   testSignals,
		})
		require.NoError(t, err)
	}

	sessionCount, err := blogViews.CountSessionViews(ctx, "go-concurrency")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sessionCount)

	// Still one visitor with two engagement views.
	rows, err := blogViews.CountVisitorViewRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	sum, err := blogViews.SumVisitorViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum)
}

func TestTracker_CreateBlogPost_Defaults(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	meta := &domain.BlogMetadata{Slug: "go-concurrency", Title: "Go Concurrency"}
	require.NoError(t, tracker.CreateBlogPost(ctx, meta))
	assert.Equal(t, domain.StatusDraft, meta.Status)
	assert.Equal(t, domain.CategoryGeneral, meta.Category)
}

func TestTracker_CreateBlogPost_Validation(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	assert.ErrorIs(t, tracker.CreateBlogPost(ctx, nil), repository.ErrInvalidRecord)
	assert.ErrorIs(t, tracker.CreateBlogPost(ctx, &domain.BlogMetadata{Slug: "x"}), repository.ErrInvalidRecord)
	assert.ErrorIs(t, tracker.CreateBlogPost(ctx, &domain.BlogMetadata{
		Slug: "x", Title: "X", Status: "archived",
	}), repository.ErrInvalidRecord)
	assert.ErrorIs(t, tracker.CreateBlogPost(ctx, &domain.BlogMetadata{
		Slug: "x", Title: "X", Category: "gardening",
	}), repository.ErrInvalidRecord)
}

func TestTracker_ListBlogPosts_RejectsUnknownStatus(t *testing.T) {
	tracker, _, _ := newTestTracker()

	_, err := tracker.ListBlogPosts(context.Background(), "archived")
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)
}

func TestTracker_DeleteBlogPost_NotFound(t *testing.T) {
	tracker, _, _ := newTestTracker()

	err := tracker.DeleteBlogPost(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
