package inmemory

import (
	"sync"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// MetadataStore maps image ids to their spatial metadata
type MetadataStore struct {
	mu      sync.RWMutex
	entries map[string]viewer.SpatialMetadata
}

var _ viewer.MetadataProvider = (*MetadataStore)(nil)

// NewMetadataStore creates an empty store
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{entries: make(map[string]viewer.SpatialMetadata)}
}

// Put records the metadata of imageID, replacing any previous entry
func (s *MetadataStore) Put(imageID string, md viewer.SpatialMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[imageID] = md
}

// PutPosition records an image position for imageID
func (s *MetadataStore) PutPosition(imageID string, pos viewer.Vector3) {
	s.Put(imageID, viewer.SpatialMetadata{ImagePositionPatient: &pos})
}

// SpatialMetadata implements viewer.MetadataProvider
func (s *MetadataStore) SpatialMetadata(imageID string) (*viewer.SpatialMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	md, ok := s.entries[imageID]
	if !ok {
		return nil, false
	}
	if md.ImagePositionPatient != nil {
		pos := *md.ImagePositionPatient
		md.ImagePositionPatient = &pos
	}
	return &md, true
}
