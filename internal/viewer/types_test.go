package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector3_Arithmetic(t *testing.T) {
	t.Parallel()

	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: 4, Y: 6, Z: 8}

	assert.Equal(t, Vector3{X: 3, Y: 4, Z: 5}, b.Sub(a))
	assert.Equal(t, Vector3{X: 5, Y: 8, Z: 11}, a.Add(b))
	assert.Equal(t, Vector3{X: -1, Y: -2, Z: -3}, a.Negate())
	assert.Equal(t, a.Sub(b), b.Sub(a).Negate())
	assert.True(t, Vector3{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestToVector3(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		want    Vector3
		wantErr bool
	}{
		{name: "three components", values: []float64{-125, -100.5, 42}, want: Vector3{X: -125, Y: -100.5, Z: 42}},
		{name: "nil", values: nil, wantErr: true},
		{name: "too short", values: []float64{1, 2}, wantErr: true},
		{name: "too long", values: []float64{1, 2, 3, 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToVector3(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStack_Clone(t *testing.T) {
	t.Parallel()

	var nilStack *Stack
	assert.Nil(t, nilStack.Clone())
	assert.Equal(t, 0, nilStack.Len())

	s := &Stack{ImageIDs: []string{"a", "b", "c"}, CurrentImageIDIndex: 1, PreventCache: true}
	c := s.Clone()
	require.Equal(t, s, c)

	c.ImageIDs[0] = "changed"
	c.CurrentImageIDIndex = 2
	assert.Equal(t, "a", s.ImageIDs[0])
	assert.Equal(t, 1, s.CurrentImageIDIndex)
	assert.Equal(t, 3, s.Len())
}

func TestViewportState_Clone(t *testing.T) {
	t.Parallel()

	var nilState *ViewportState
	assert.Nil(t, nilState.Clone())

	s := &ViewportState{Scale: 1.5, VOI: VOI{WindowWidth: 400, WindowCenter: 40}}
	c := s.Clone()
	c.Scale = 2
	assert.InDelta(t, 1.5, s.Scale, 0)
	assert.NotSame(t, s, c)
}
