package synchronizer

import (
	"maps"
	"slices"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

// imageIDSnapshot records the image shown in each registry slot at the last
// rebuild. Empty ids mark slots without an image.
type imageIDSnapshot struct {
	sources []string
	targets []string
}

func (s imageIDSnapshot) source(i int) (string, bool) {
	if i < 0 || i >= len(s.sources) || s.sources[i] == "" {
		return "", false
	}
	return s.sources[i], true
}

func (s imageIDSnapshot) target(i int) (string, bool) {
	if i < 0 || i >= len(s.targets) || s.targets[i] == "" {
		return "", false
	}
	return s.targets[i], true
}

func (s *defaultSynchronizer) Distances() Distances {
	s.rebuildDistances()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Distances, len(s.distances))
	for sourceImageID, row := range s.distances {
		out[sourceImageID] = maps.Clone(row)
	}
	return out
}

func (s *defaultSynchronizer) Offset(sourceImageID, targetImageID string) (viewer.Vector3, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offsetLocked(sourceImageID, targetImageID)
}

func (s *defaultSynchronizer) offsetLocked(sourceImageID, targetImageID string) (viewer.Vector3, bool) {
	if sourceImageID == targetImageID {
		return viewer.Vector3{}, true
	}
	v, ok := s.distances[sourceImageID][targetImageID]
	return v, ok
}

// rebuildDistances recomputes the offset table and the image id snapshot from
// the current registry and the images currently displayed
func (s *defaultSynchronizer) rebuildDistances() {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	s.mu.RLock()
	sources := slices.Clone(s.sources)
	targets := slices.Clone(s.targets)
	s.mu.RUnlock()

	distances := Distances{}
	snapshot := imageIDSnapshot{
		sources: make([]string, len(sources)),
		targets: make([]string, len(targets)),
	}

	if len(sources) > 0 && len(targets) > 0 {
		type resolved struct {
			imageID  string
			position *viewer.Vector3
		}
		resolveAll := func(vps []viewer.ViewportID, ids []string) []resolved {
			out := make([]resolved, len(vps))
			for i, vp := range vps {
				out[i].imageID, out[i].position = s.resolve(vp)
				ids[i] = out[i].imageID
			}
			return out
		}
		resolvedSources := resolveAll(sources, snapshot.sources)
		resolvedTargets := resolveAll(targets, snapshot.targets)

		for i, src := range resolvedSources {
			if src.position == nil {
				continue
			}
			if _, done := distances[src.imageID]; done {
				continue
			}
			row := map[string]viewer.Vector3{}
			for j, tgt := range resolvedTargets {
				if sources[i] == targets[j] || tgt.position == nil || src.imageID == tgt.imageID {
					continue
				}
				if _, done := row[tgt.imageID]; done {
					continue
				}
				row[tgt.imageID] = tgt.position.Sub(*src.position)
			}
			if len(row) > 0 {
				distances[src.imageID] = row
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.distances = distances
	s.snapshot = snapshot
}

// resolve returns the image displayed in vp and its position. The position is
// nil when vp is not enabled, shows no image, or the image has no position.
func (s *defaultSynchronizer) resolve(vp viewer.ViewportID) (string, *viewer.Vector3) {
	el, ok := s.runtime.EnabledElement(vp)
	if !ok || el.Image == nil {
		return "", nil
	}
	md, ok := s.runtime.SpatialMetadata(el.Image.ImageID)
	if !ok || md.ImagePositionPatient == nil {
		return el.Image.ImageID, nil
	}
	return el.Image.ImageID, md.ImagePositionPatient
}
