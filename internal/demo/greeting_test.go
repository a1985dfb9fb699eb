package demo

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/veil/internal/anim"
	"github.com/hay-kot/veil/internal/overlay"
)

// openCaptured opens content built by build and returns it with its handle.
func openCaptured[T tea.Model](t *testing.T, build func(overlay.Context) T, p overlay.Params) (T, *overlay.Handle) {
	t.Helper()

	var content T
	desc := overlay.DescriptorFunc(func(ctx overlay.Context) (tea.Model, error) {
		content = build(ctx)
		return content, nil
	})

	c := overlay.NewController(overlay.WithAnimator(anim.Instant{}))
	h, err := c.Open(desc, p)
	require.NoError(t, err)
	return content, h
}

func newTestGreeting(t *testing.T) (*Greeting, *overlay.Handle) {
	t.Helper()
	return openCaptured(t, func(ctx overlay.Context) *Greeting {
		return NewGreeting(ctx, testGreeter{})
	}, overlay.Params{Inputs: map[string]any{"text": "Hello world!"}})
}

func TestGreeting_Inputs(t *testing.T) {
	g, _ := newTestGreeting(t)

	assert.Equal(t, "Hello world!", g.Text)

	view := g.View()
	assert.Contains(t, view, "I am modal content!")
	assert.Contains(t, view, "Hello world!")
	assert.Contains(t, view, "HI TESTER")
}

func TestGreeting_Buttons(t *testing.T) {
	tests := []struct {
		name  string
		keys  []tea.KeyMsg
		typed string
		want  overlay.Result
	}{
		{
			name: "ok",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}},
			want: overlay.Result{Value: map[string]string{"message": OkMessage}, Present: true},
		},
		{
			name: "enter in reply moves to ok",
			keys: []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEnter}},
			want: overlay.Result{Value: map[string]string{"message": OkMessage}, Present: true},
		},
		{
			name:  "ok with reply",
			typed: "thanks",
			keys:  []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}},
			want:  overlay.Result{Value: map[string]string{"message": OkMessage, "reply": "thanks"}, Present: true},
		},
		{
			name: "close",
			keys: []tea.KeyMsg{{Type: tea.KeyShiftTab}, {Type: tea.KeyEnter}},
			want: overlay.Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, h := newTestGreeting(t)

			if tt.typed != "" {
				g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.typed)})
			}
			for _, k := range tt.keys {
				g.Update(k)
			}

			got, ok := h.BeforeClose().Value()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGreeting_FocusWraps(t *testing.T) {
	g, _ := newTestGreeting(t)

	for range focusCount {
		g.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, focusReply, g.focus)
	assert.True(t, g.reply.Focused())
}

func TestStaticGreeter(t *testing.T) {
	assert.Equal(t, "hello there", StaticGreeter{}.Greet())
	assert.Equal(t, "hello veil", StaticGreeter{Name: "veil"}.Greet())
}

func TestConfirm_BuildsFormOnInit(t *testing.T) {
	c, h := openCaptured(t, func(ctx overlay.Context) *Confirm {
		m, err := ConfirmDescriptor().New(ctx)
		require.NoError(t, err)
		return m.(*Confirm)
	}, overlay.Params{Inputs: map[string]any{"prompt": "Keep it?"}})

	assert.Empty(t, c.View(), "nothing to show before Init")

	c.SetSize(40, 10)
	c.Init()
	assert.Contains(t, c.View(), "Keep it?")
	assert.Contains(t, c.View(), "Yes")
	assert.False(t, h.Closing())
}
