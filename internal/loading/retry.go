package loading

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/viewer"
)

const (
	// DefaultMaxTries is the number of attempts made for a single image
	DefaultMaxTries = 3

	// DefaultInitialInterval is the delay before the first retry
	DefaultInitialInterval = 100 * time.Millisecond
)

// RetryingLoader decorates a viewer.ImageLoader, retrying failed loads with
// exponential backoff. viewer.ErrImageNotFound is never retried.
type RetryingLoader struct {
	next            viewer.ImageLoader
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
}

// RetryOption configures a RetryingLoader
type RetryOption func(*RetryingLoader)

// WithMaxTries sets the maximum number of attempts, including the first one
func WithMaxTries(n uint) RetryOption {
	return func(l *RetryingLoader) {
		if n > 0 {
			l.maxTries = n
		}
	}
}

// WithInitialInterval sets the delay before the first retry
func WithInitialInterval(d time.Duration) RetryOption {
	return func(l *RetryingLoader) {
		l.initialInterval = d
	}
}

// WithMaxInterval caps the delay between retries
func WithMaxInterval(d time.Duration) RetryOption {
	return func(l *RetryingLoader) {
		l.maxInterval = d
	}
}

// NewRetryingLoader wraps next
func NewRetryingLoader(next viewer.ImageLoader, opts ...RetryOption) *RetryingLoader {
	l := &RetryingLoader{
		next:            next,
		maxTries:        DefaultMaxTries,
		initialInterval: DefaultInitialInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadImage implements viewer.ImageLoader
func (l *RetryingLoader) LoadImage(ctx context.Context, imageID string) *viewer.Future {
	return l.load(ctx, imageID, l.next.LoadImage)
}

// LoadAndCacheImage implements viewer.ImageLoader
func (l *RetryingLoader) LoadAndCacheImage(ctx context.Context, imageID string) *viewer.Future {
	return l.load(ctx, imageID, l.next.LoadAndCacheImage)
}

func (l *RetryingLoader) load(
	ctx context.Context,
	imageID string,
	fetch func(context.Context, string) *viewer.Future,
) *viewer.Future {
	result := viewer.NewFuture()

	go func() {
		attempt := 0
		operation := func() (*viewer.Image, error) {
			attempt++
			img, err := fetch(ctx, imageID).Wait(ctx)
			if err == nil {
				return img, nil
			}
			if errors.Is(err, viewer.ErrImageNotFound) || ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			logger.Debugf("Image '%s': load attempt %d failed: %v", imageID, attempt, err)
			return nil, err
		}

		img, err := backoff.Retry(ctx, operation,
			backoff.WithBackOff(l.newBackOff()),
			backoff.WithMaxTries(l.maxTries),
		)
		if err != nil {
			result.Reject(err)
			return
		}
		result.Resolve(img)
	}()

	return result
}

func (l *RetryingLoader) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval
	if l.maxInterval > 0 {
		b.MaxInterval = l.maxInterval
	}
	return b
}
