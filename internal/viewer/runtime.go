package viewer

import "context"

// ElementRegistry resolves the current render state of a viewport
type ElementRegistry interface {
	// EnabledElement returns the render state of vp, or false when vp is not enabled
	EnabledElement(vp ViewportID) (*EnabledElement, bool)
}

// Display reads and mutates the display state of viewports
type Display interface {
	// Viewport returns the current display state of vp, or nil when unknown
	Viewport(vp ViewportID) *ViewportState
	// SetViewport replaces the display state of vp
	SetViewport(ctx context.Context, vp ViewportID, state *ViewportState)
	// DisplayImage renders img in vp using state. Listeners notified as a
	// result receive ctx.
	DisplayImage(ctx context.Context, vp ViewportID, img *Image, state *ViewportState)
}

// ImageLoader fetches images asynchronously
//
//go:generate mockgen -destination=mocks/mock_image_loader.go -package=mocks github.com/stacklok/viewport-sync/internal/viewer ImageLoader
type ImageLoader interface {
	// LoadImage fetches imageID bypassing the image cache
	LoadImage(ctx context.Context, imageID string) *Future
	// LoadAndCacheImage fetches imageID through the image cache
	LoadAndCacheImage(ctx context.Context, imageID string) *Future
}

// MetadataProvider looks up per-image spatial metadata
type MetadataProvider interface {
	// SpatialMetadata returns the metadata of imageID, or false when none is known
	SpatialMetadata(imageID string) (*SpatialMetadata, bool)
}

// EventTarget registers listeners on viewports.
// Registration is idempotent per (viewport, event name, listener).
type EventTarget interface {
	AddEventListener(vp ViewportID, name string, l Listener)
	RemoveEventListener(vp ViewportID, name string, l Listener)
}

// ToolOptions clears per-viewport UI tool options
type ToolOptions interface {
	ClearOptions(vp ViewportID)
}

// StackStore owns the per-viewport stack descriptors
//
//go:generate mockgen -destination=mocks/mock_stack_store.go -package=mocks github.com/stacklok/viewport-sync/internal/viewer StackStore
type StackStore interface {
	// Stack returns a snapshot of the stack of vp, or false when vp has none
	Stack(vp ViewportID) (*Stack, bool)
	// SetCurrentImageIDIndex moves the current index of the stack of vp
	SetCurrentImageIDIndex(vp ViewportID, index int) error
}

// Runtime is the part of the viewer runtime the synchronizer itself talks to
type Runtime interface {
	ElementRegistry
	Display
	MetadataProvider
	EventTarget
}
