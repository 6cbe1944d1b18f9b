package loading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

func TestManager_NoHooks(t *testing.T) {
	t.Parallel()

	var m Manager
	assert.NotPanics(t, func() {
		m.Started("vp")
		m.Ended("vp", &viewer.Image{ImageID: "img"})
		m.Failed("vp", "img", errors.New("boom"))
	})
}

func TestManager_InvokesHooks(t *testing.T) {
	t.Parallel()

	var started, ended, failed []viewer.ViewportID
	var failedID string
	var failedErr error

	m := NewManager(Hooks{Start: func(vp viewer.ViewportID) { started = append(started, vp) }})
	m.SetEndHandler(func(vp viewer.ViewportID, _ *viewer.Image) { ended = append(ended, vp) })
	m.SetErrorHandler(func(vp viewer.ViewportID, imageID string, err error) {
		failed = append(failed, vp)
		failedID = imageID
		failedErr = err
	})

	loadErr := errors.New("decode failed")
	m.Started("a")
	m.Ended("b", &viewer.Image{ImageID: "img-b"})
	m.Failed("c", "img-c", loadErr)

	assert.Equal(t, []viewer.ViewportID{"a"}, started)
	assert.Equal(t, []viewer.ViewportID{"b"}, ended)
	assert.Equal(t, []viewer.ViewportID{"c"}, failed)
	assert.Equal(t, "img-c", failedID)
	assert.ErrorIs(t, failedErr, loadErr)
}

func TestManager_ReplaceStartHandler(t *testing.T) {
	t.Parallel()

	calls := 0
	m := NewManager(Hooks{Start: func(viewer.ViewportID) { t.Fatal("replaced hook called") }})
	m.SetStartHandler(func(viewer.ViewportID) { calls++ })
	m.Started("vp")
	assert.Equal(t, 1, calls)

	m.SetStartHandler(nil)
	m.Started("vp")
	assert.Equal(t, 1, calls)
	assert.Nil(t, m.Hooks().Start)
}
