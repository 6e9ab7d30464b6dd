package memory

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/repository"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageviewStore_RecordPageview(t *testing.T) {
	store := NewPageviewStore(0)
	ctx := context.Background()

	pv, err := store.RecordPageview(ctx, &domain.Pageview{URL: "/blog/hello"})
	require.NoError(t, err)
	assert.Equal(t, "/blog/hello", pv.URL)
	assert.False(t, pv.ViewedAt.IsZero())

	count, err := store.CountPageviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPageviewStore_RecordPageview_InvalidInput(t *testing.T) {
	store := NewPageviewStore(0)
	ctx := context.Background()

	_, err := store.RecordPageview(ctx, nil)
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)

	_, err = store.RecordPageview(ctx, &domain.Pageview{})
	assert.ErrorIs(t, err, repository.ErrInvalidRecord)
}

func TestPageviewStore_RetentionCap(t *testing.T) {
	store := NewPageviewStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.RecordPageview(ctx, &domain.Pageview{URL: fmt.Sprintf("/page-%d", i)})
		require.NoError(t, err)
	}

	count, err := store.CountPageviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "the oldest entries must be evicted past the cap")

	// The survivors are the most recent writes.
	top, err := store.TopPages(ctx, 10)
	require.NoError(t, err)
	urls := make([]string, 0, len(top))
	for _, p := range top {
		urls = append(urls, p.URL)
	}
	assert.ElementsMatch(t, []string{"/page-2", "/page-3", "/page-4"}, urls)
}

func TestPageviewStore_CountPageviewsBetween(t *testing.T) {
	store := NewPageviewStore(0)
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, err := store.RecordPageview(ctx, &domain.Pageview{
			URL:      "/home",
			ViewedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	from := base.Add(1 * time.Hour)
	to := base.Add(3 * time.Hour)

	// Half-open interval: from is included, to is not.
	count, err := store.CountPageviewsBetween(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountPageviewsBetween(ctx, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = store.CountPageviewsBetween(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestPageviewStore_CountUniqueURLs(t *testing.T) {
	store := NewPageviewStore(0)
	ctx := context.Background()

	for _, url := range []string{"/a", "/b", "/a", "/c", "/b", "/a"} {
		_, err := store.RecordPageview(ctx, &domain.Pageview{URL: url})
		require.NoError(t, err)
	}

	unique, err := store.CountUniqueURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unique)
}

func TestPageviewStore_TopPages(t *testing.T) {
	store := NewPageviewStore(0)
	ctx := context.Background()

	views := map[string]int{"/a": 3, "/b": 5, "/c": 1, "/d": 3}
	for url, n := range views {
		for i := 0; i < n; i++ {
			_, err := store.RecordPageview(ctx, &domain.Pageview{URL: url})
			require.NoError(t, err)
		}
	}

	top, err := store.TopPages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "/b", top[0].URL)
	assert.Equal(t, int64(5), top[0].Views)
	assert.Equal(t, int64(3), top[1].Views)

	all, err := store.TopPages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Views, all[i].Views)
	}
}
