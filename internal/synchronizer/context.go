package synchronizer

import (
	"context"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

type offsetKey struct{}

func withOffset(ctx context.Context, offset viewer.Vector3) context.Context {
	return context.WithValue(ctx, offsetKey{}, offset)
}

// OffsetFromContext returns the patient-space offset between the images the
// source and target of the current pair showed at the last distance rebuild.
// It is only set for pairs whose offset is known.
func OffsetFromContext(ctx context.Context) (viewer.Vector3, bool) {
	offset, ok := ctx.Value(offsetKey{}).(viewer.Vector3)
	return offset, ok
}

type ownerKey struct{}

// withOwner marks ctx as belonging to work performed by s
func withOwner(ctx context.Context, s *defaultSynchronizer) context.Context {
	return context.WithValue(ctx, ownerKey{}, s)
}

func ownerFromContext(ctx context.Context) *defaultSynchronizer {
	s, _ := ctx.Value(ownerKey{}).(*defaultSynchronizer)
	return s
}
