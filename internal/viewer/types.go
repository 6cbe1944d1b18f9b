package viewer

import (
	"errors"
	"fmt"
)

var (
	// ErrImageNotFound indicates the loader has no image for the requested id
	ErrImageNotFound = errors.New("image not found")

	// ErrNoEnabledElement indicates the viewport is not enabled in the runtime
	ErrNoEnabledElement = errors.New("viewport is not enabled")

	// ErrNoStack indicates the viewport has no stack descriptor
	ErrNoStack = errors.New("viewport has no stack")
)

// ViewportID is the opaque handle of a displayable surface.
// The engine never creates or destroys viewports, it only references them.
type ViewportID string

// String returns the handle as a string
func (v ViewportID) String() string {
	return string(v)
}

// Image is a loaded image as returned by the runtime loader
type Image struct {
	// ImageID identifies the image within the runtime
	ImageID string

	// Rows is the image height in pixels
	Rows int

	// Columns is the image width in pixels
	Columns int
}

// VOI is the value-of-interest window applied when rendering
type VOI struct {
	WindowWidth  float64
	WindowCenter float64
}

// ViewportState is the display state of a viewport
type ViewportState struct {
	Scale          float64
	TranslateX     float64
	TranslateY     float64
	Rotation       float64
	Invert         bool
	HorizontalFlip bool
	VerticalFlip   bool
	VOI            VOI
}

// Clone returns a copy of the state, or nil for a nil receiver
func (s *ViewportState) Clone() *ViewportState {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// EnabledElement is the current render state of an enabled viewport
type EnabledElement struct {
	Viewport ViewportID
	Image    *Image
	State    *ViewportState
}

// Vector3 is a point or offset in patient space
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Sub returns v - o
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add returns v + o
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Negate returns -v
func (v Vector3) Negate() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// IsZero reports whether all components are zero
func (v Vector3) IsZero() bool {
	return v == Vector3{}
}

// ToVector3 converts a three element slice, as stored in DICOM metadata, to a Vector3
func ToVector3(values []float64) (Vector3, error) {
	if len(values) != 3 {
		return Vector3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
}

// SpatialMetadata is the image plane metadata the engine needs for an image
type SpatialMetadata struct {
	// ImagePositionPatient is the position of the first transmitted pixel.
	// Nil when the image carries no position.
	ImagePositionPatient *Vector3

	// FrameOfReferenceUID groups images sharing a patient coordinate system
	FrameOfReferenceUID string
}

// Stack is the per-viewport stack descriptor owned by a StackStore
type Stack struct {
	// ImageIDs is the ordered list of images in the stack
	ImageIDs []string

	// CurrentImageIDIndex is the index of the displayed image
	CurrentImageIDIndex int

	// PreventCache requests that images are loaded without caching
	PreventCache bool
}

// Len returns the number of images in the stack
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ImageIDs)
}

// Clone returns a deep copy of the stack
func (s *Stack) Clone() *Stack {
	if s == nil {
		return nil
	}
	c := *s
	c.ImageIDs = append([]string(nil), s.ImageIDs...)
	return &c
}
