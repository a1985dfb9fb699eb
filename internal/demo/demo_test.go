package demo

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/veil/internal/core/config"
	"github.com/hay-kot/veil/internal/overlay"
)

type testGreeter struct{}

func (testGreeter) Greet() string { return "hi tester" }

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Animation.Disabled = true
	return New(t.Context(), Options{Config: &cfg, Greeter: testGreeter{}})
}

// harness drives a Model like the Bubble Tea runtime: every command runs in
// its own goroutine and its message is fed back into Update.
type harness struct {
	m       Model
	msgs    chan tea.Msg
	pending int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{m: newTestModel(t), msgs: make(chan tea.Msg, 256)}
}

func (h *harness) launch(c tea.Cmd) {
	if c == nil {
		return
	}
	h.pending++
	go func() { h.msgs <- c() }()
}

// send delivers msg and processes messages until only blocked commands
// remain.
func (h *harness) send(msg tea.Msg) {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.launch(cmd)

	for h.pending > 0 {
		select {
		case msg := <-h.msgs:
			h.pending--
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, c := range msg {
					h.launch(c)
				}
			default:
				next, c := h.m.Update(msg)
				h.m = next.(Model)
				h.launch(c)
			}
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ModalOkResult(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	h.send(keyRunes("n"))
	require.Equal(t, 1, h.m.Overlays().Active())

	view := h.m.View()
	assert.Contains(t, view, GreetingTitle)
	assert.Contains(t, view, GreetingText)
	assert.Contains(t, view, "HI TESTER")

	// Move focus from the reply field to Ok and press it.
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, h.m.Overlays().Active())
	assert.Contains(t, h.m.Response(), `"message": "some message"`)
}

func TestModel_DrawerEscClosesWithoutResult(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	h.send(keyRunes("d"))
	require.Equal(t, 1, h.m.Overlays().Active())
	assert.Contains(t, h.m.View(), GreetingTitle)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 0, h.m.Overlays().Active())
	assert.Equal(t, NoResult, h.m.Response())
}

func TestModel_KeysGoToOverlay(t *testing.T) {
	h := newHarness(t)
	h.send(keyRunes("n"))

	// "q" is typed into the reply field instead of quitting.
	h.send(keyRunes("q"))
	assert.False(t, h.m.quitting)
	assert.Equal(t, 1, h.m.Overlays().Active())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_ClickOutsideCloses(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	h.send(keyRunes("n"))
	_ = h.m.View()

	h.send(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 0, h.m.Overlays().Active())
	assert.Equal(t, NoResult, h.m.Response())
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		in   overlay.Result
		want string
	}{
		{"absent", overlay.Result{}, NoResult},
		{"null", overlay.Result{Present: true}, "null"},
		{"confirm", overlay.Result{Value: ConfirmResult{Confirmed: true}, Present: true}, "{\n  \"confirmed\": true\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatResult(tt.in))
		})
	}
}
