// Package viewer defines the contracts the synchronization engine expects from
// the image viewer runtime that owns rendering, the enabled-element registry,
// image loading and per-image spatial metadata.
//
// Nothing in this package renders or decodes images. It holds the value types
// exchanged with the runtime (viewport handles, images, viewport display
// state, spatial metadata, stack descriptors, events) and the small
// interfaces the synchronizer and its handlers are written against:
//
//   - ElementRegistry: resolves the current render state of a viewport
//   - Display: reads and mutates viewport display state
//   - ImageLoader: fetches images asynchronously, returning a Future
//   - MetadataProvider: looks up image position for an image id
//   - EventTarget: per-viewport listener registration
//   - ToolOptions: per-viewport UI option cleanup
//   - StackStore: per-viewport stack descriptors
//
// An in-memory implementation of all of them lives in viewer/inmemory.
package viewer
