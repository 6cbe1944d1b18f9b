package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

func TestImageStore_Load(t *testing.T) {
	t.Parallel()

	store := NewImageStore()
	img := &viewer.Image{ImageID: "img-1", Rows: 256, Columns: 256}
	store.Put(img)
	store.Fail("broken", errors.New("corrupt pixel data"))

	ctx := context.Background()

	got, err := store.LoadImage(ctx, "img-1").Wait(ctx)
	require.NoError(t, err)
	assert.Same(t, img, got)
	assert.False(t, store.Cached("img-1"))

	_, err = store.LoadImage(ctx, "missing").Wait(ctx)
	assert.ErrorIs(t, err, viewer.ErrImageNotFound)

	_, err = store.LoadAndCacheImage(ctx, "broken").Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt pixel data")
	assert.False(t, store.Cached("broken"))

	store.Fail("broken", nil)
	_, err = store.LoadImage(ctx, "broken").Wait(ctx)
	assert.ErrorIs(t, err, viewer.ErrImageNotFound)
}

func TestImageStore_LoadAndCacheImage(t *testing.T) {
	t.Parallel()

	store := NewImageStore()
	store.Put(&viewer.Image{ImageID: "img-1"})
	ctx := context.Background()

	_, err := store.LoadAndCacheImage(ctx, "img-1").Wait(ctx)
	require.NoError(t, err)
	assert.True(t, store.Cached("img-1"))
	assert.Equal(t, int64(1), store.Fetches())

	_, err = store.LoadAndCacheImage(ctx, "img-1").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.Fetches(), "cached image should not be fetched again")
}

func TestImageStore_CoalescesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewImageStore(WithLatency(50 * time.Millisecond))
	store.Put(&viewer.Image{ImageID: "img-1"})
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.LoadImage(ctx, "img-1").Wait(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, store.Fetches(), int64(5))
}

func TestImageStore_LatencyHonoursContext(t *testing.T) {
	t.Parallel()

	store := NewImageStore(WithLatency(time.Minute))
	store.Put(&viewer.Image{ImageID: "img-1"})

	ctx, cancel := context.WithCancel(context.Background())
	future := store.LoadImage(ctx, "img-1")
	cancel()

	_, err := future.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}
