package viewer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_FirstSettlementWins(t *testing.T) {
	t.Parallel()

	img := &Image{ImageID: "img-1"}
	f := NewFuture()
	f.Resolve(img)
	f.Reject(errors.New("late"))
	f.Resolve(&Image{ImageID: "img-2"})

	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Same(t, img, got)
}

func TestFuture_Rejected(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("boom")
	got, err := Rejected(loadErr).Wait(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, loadErr)
}

func TestFuture_Done(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	select {
	case <-f.Done():
		t.Fatal("future settled before Resolve")
	default:
	}

	go f.Resolve(&Image{ImageID: "img"})

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not settle")
	}
}

func TestFuture_WaitContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewFuture().Wait(ctx)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolved(t *testing.T) {
	t.Parallel()

	img := &Image{ImageID: "img", Rows: 512, Columns: 512}
	got, err := Resolved(img).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, img, got)
}
