package inmemory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

// ImageStore is an image loader backed by a map of known images.
// Concurrent loads of the same image id share a single fetch.
type ImageStore struct {
	mu       sync.RWMutex
	images   map[string]*viewer.Image
	cache    map[string]*viewer.Image
	failures map[string]error
	latency  time.Duration
	metrics  *telemetry.SyncMetrics

	group   singleflight.Group
	fetches atomic.Int64
}

var _ viewer.ImageLoader = (*ImageStore)(nil)

// ImageStoreOption configures an ImageStore
type ImageStoreOption func(*ImageStore)

// WithLatency delays every fetch by d
func WithLatency(d time.Duration) ImageStoreOption {
	return func(s *ImageStore) {
		s.latency = d
	}
}

// WithLoadMetrics records load durations into metrics
func WithLoadMetrics(metrics *telemetry.SyncMetrics) ImageStoreOption {
	return func(s *ImageStore) {
		s.metrics = metrics
	}
}

// NewImageStore creates an empty store
func NewImageStore(opts ...ImageStoreOption) *ImageStore {
	s := &ImageStore{
		images:   make(map[string]*viewer.Image),
		cache:    make(map[string]*viewer.Image),
		failures: make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put makes img loadable
func (s *ImageStore) Put(img *viewer.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[img.ImageID] = img
}

// Fail makes every load of imageID fail with err. A nil err clears the failure.
func (s *ImageStore) Fail(imageID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, imageID)
		return
	}
	s.failures[imageID] = err
}

// Cached reports whether imageID is in the image cache
func (s *ImageStore) Cached(imageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[imageID]
	return ok
}

// Fetches returns the number of fetches performed, coalesced loads counted once
func (s *ImageStore) Fetches() int64 {
	return s.fetches.Load()
}

// LoadImage implements viewer.ImageLoader. The cache is neither read nor filled.
func (s *ImageStore) LoadImage(ctx context.Context, imageID string) *viewer.Future {
	return s.load(ctx, imageID, false)
}

// LoadAndCacheImage implements viewer.ImageLoader
func (s *ImageStore) LoadAndCacheImage(ctx context.Context, imageID string) *viewer.Future {
	s.mu.RLock()
	img, ok := s.cache[imageID]
	s.mu.RUnlock()
	if ok {
		s.metrics.RecordImageLoad(ctx, 0, true, true)
		return viewer.Resolved(img)
	}
	return s.load(ctx, imageID, true)
}

func (s *ImageStore) load(ctx context.Context, imageID string, cache bool) *viewer.Future {
	future := viewer.NewFuture()

	go func() {
		start := time.Now()
		v, err, _ := s.group.Do(imageID, func() (any, error) {
			return s.fetch(ctx, imageID)
		})
		s.metrics.RecordImageLoad(ctx, time.Since(start), false, err == nil)
		if err != nil {
			future.Reject(err)
			return
		}

		img := v.(*viewer.Image)
		if cache {
			s.mu.Lock()
			s.cache[imageID] = img
			s.mu.Unlock()
		}
		future.Resolve(img)
	}()

	return future
}

func (s *ImageStore) fetch(ctx context.Context, imageID string) (*viewer.Image, error) {
	s.fetches.Add(1)

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.failures[imageID]; ok {
		return nil, fmt.Errorf("failed to load image '%s': %w", imageID, err)
	}
	img, ok := s.images[imageID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", viewer.ErrImageNotFound, imageID)
	}
	return img, nil
}
