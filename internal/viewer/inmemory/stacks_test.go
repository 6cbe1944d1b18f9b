package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/viewport-sync/internal/viewer"
)

func TestStackStore_SetCurrentImageIDIndex(t *testing.T) {
	t.Parallel()

	store := NewStackStore(nil)
	store.Set("vp", &viewer.Stack{ImageIDs: []string{"a", "b", "c"}})

	require.NoError(t, store.SetCurrentImageIDIndex("vp", 2))
	stack, ok := store.Stack("vp")
	require.True(t, ok)
	assert.Equal(t, 2, stack.CurrentImageIDIndex)

	assert.Error(t, store.SetCurrentImageIDIndex("vp", 3))
	assert.Error(t, store.SetCurrentImageIDIndex("vp", -1))
	assert.ErrorIs(t, store.SetCurrentImageIDIndex("missing", 0), viewer.ErrNoStack)

	// Snapshots do not alias the stored stack
	stack.ImageIDs[0] = "changed"
	again, _ := store.Stack("vp")
	assert.Equal(t, "a", again.ImageIDs[0])

	store.Delete("vp")
	_, ok = store.Stack("vp")
	assert.False(t, ok)
}

func TestStackStore_Scroll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start      int
		delta      int
		wantIndex  int
		wantEvents int
	}{
		{name: "forward", start: 2, delta: 3, wantIndex: 5, wantEvents: 1},
		{name: "backward", start: 2, delta: -1, wantIndex: 1, wantEvents: 1},
		{name: "clamped to last", start: 8, delta: 10, wantIndex: 9, wantEvents: 1},
		{name: "clamped to first", start: 1, delta: -5, wantIndex: 0, wantEvents: 1},
		{name: "no change, no event", start: 9, delta: 1, wantIndex: 9, wantEvents: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rt := NewRuntime(nil)
			l := &recordingListener{}
			rt.AddEventListener("vp", viewer.EventStackScroll, l)

			store := NewStackStore(rt)
			ids := make([]string, 10)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			store.Set("vp", &viewer.Stack{ImageIDs: ids, CurrentImageIDIndex: tt.start})

			got, err := store.Scroll(context.Background(), "vp", tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, got)
			require.Len(t, l.events, tt.wantEvents)
			if tt.wantEvents > 0 {
				detail, ok := l.events[0].Detail.(StackScrollDetail)
				require.True(t, ok)
				assert.Equal(t, tt.wantIndex, detail.NewImageIDIndex)
			}
		})
	}
}

func TestStackStore_ScrollErrors(t *testing.T) {
	t.Parallel()

	store := NewStackStore(nil)
	_, err := store.Scroll(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, viewer.ErrNoStack)

	store.Set("empty", &viewer.Stack{})
	_, err = store.Scroll(context.Background(), "empty", 1)
	assert.Error(t, err)

	_, err = store.Jump(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, viewer.ErrNoStack)
}

func TestStackStore_Jump(t *testing.T) {
	t.Parallel()

	store := NewStackStore(nil)
	store.Set("vp", &viewer.Stack{ImageIDs: []string{"a", "b", "c", "d"}, CurrentImageIDIndex: 1})

	got, err := store.Jump(context.Background(), "vp", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = store.Jump(context.Background(), "vp", 42)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestToolOptions(t *testing.T) {
	t.Parallel()

	opts := NewToolOptions()
	opts.Set("vp", "wwwc", 400)
	opts.Set("other", "zoom", 2)

	assert.Equal(t, map[string]any{"wwwc": 400}, opts.Options("vp"))

	opts.ClearOptions("vp")
	assert.Empty(t, opts.Options("vp"))
	assert.Equal(t, map[string]any{"zoom": 2}, opts.Options("other"))
}
