package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBezier(t *testing.T) {
	tests := []struct {
		name   string
		easing Easing
	}{
		{"standard ease", StandardEase},
		{"linear bezier", Bezier(0, 0, 1, 1)},
		{"ease in out", Bezier(0.42, 0, 0.58, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 0.0, tt.easing(0), 1e-9)
			assert.InDelta(t, 1.0, tt.easing(1), 1e-9)

			prev := 0.0
			for i := 1; i <= 20; i++ {
				v := tt.easing(float64(i) / 20)
				assert.GreaterOrEqual(t, v, prev-1e-6, "easing must be monotonic")
				prev = v
			}
		})
	}

	t.Run("linear control points match identity", func(t *testing.T) {
		e := Bezier(0, 0, 1, 1)
		for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
			assert.InDelta(t, x, e(x), 1e-4)
		}
	})

	t.Run("standard ease is ease-out", func(t *testing.T) {
		assert.Greater(t, StandardEase(0.5), 0.5)
	})
}

func TestTween_Progress(t *testing.T) {
	tw := NewTween(100*time.Millisecond, 60).WithEasing(Linear)
	start := time.Unix(0, 0)

	assert.InDelta(t, 0.0, tw.progress(start, start), 1e-9)
	assert.InDelta(t, 0.5, tw.progress(start, start.Add(50*time.Millisecond)), 1e-9)
	assert.InDelta(t, 1.0, tw.progress(start, start.Add(time.Second)), 1e-9)
}

func TestTween_ZeroDurationSettlesImmediately(t *testing.T) {
	tw := NewTween(0, 60)
	tr := Transition{Target: "frame-1", Seq: 1, From: "closed", To: "open"}

	cmd := tw.Play(tr)
	require.NotNil(t, cmd)

	msg, ok := cmd().(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, tr, msg.Transition)
}

func TestTween_StepFinishes(t *testing.T) {
	tw := NewTween(time.Second, 60)
	tr := Transition{Target: "frame-1", Seq: 2, From: "open", To: "closed"}

	cmd := tw.Step(FrameMsg{Transition: tr, Progress: 1})
	require.NotNil(t, cmd)

	msg, ok := cmd().(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, "closed", msg.To)
}

func TestInstant(t *testing.T) {
	tr := Transition{Target: "x", Seq: 1, From: "void", To: "visible"}

	msg, ok := Instant{}.Play(tr)().(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, tr, msg.Transition)
	assert.Nil(t, Instant{}.Step(FrameMsg{Transition: tr}))
}
