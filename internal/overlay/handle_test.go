package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_Close(t *testing.T) {
	tests := []struct {
		name  string
		close func(h *Handle)
		want  Result
	}{
		{"no result", func(h *Handle) { h.Close() }, Result{}},
		{"nil result is present", func(h *Handle) { h.CloseWith(nil) }, Result{Present: true}},
		{"empty payload is present", func(h *Handle) { h.CloseWith(map[string]string{}) }, Result{Value: map[string]string{}, Present: true}},
		{"value", func(h *Handle) { h.CloseWith("ok") }, Result{Value: "ok", Present: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandle()
			tt.close(h)

			got, ok := h.BeforeClose().Value()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, h.Closing())
		})
	}
}

func TestHandle_AfterClosedWaitsForTeardown(t *testing.T) {
	h := newHandle()
	h.CloseWith("x")

	_, fired := h.AfterClosed().Value()
	assert.False(t, fired)

	h.readyToClose.Emit(struct{}{})
	assert.True(t, h.closeRequest.Fired())

	_, fired = h.AfterClosed().Value()
	assert.False(t, fired, "after-closed waits for finalize")

	h.finalize()
	h.finalize()

	got, fired := h.AfterClosed().Value()
	require.True(t, fired)
	assert.Equal(t, "x", got.Value)
	assert.True(t, h.Closed())
}

func TestHandle_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := newHandle().ID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
