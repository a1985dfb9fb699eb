// Package demo is a small Bubble Tea program that exercises the overlay
// controller: it opens modals, drawers and a confirm form and shows the
// result of the last one that closed.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/veil/internal/core/config"
	"github.com/hay-kot/veil/internal/overlay"
	"github.com/hay-kot/veil/internal/styles"
)

// Title and input used by the greeting overlays.
const (
	GreetingTitle = "With title set by opener"
	GreetingText  = "Hello world!"
)

const introMarkdown = `# veil

Overlays open on top of this page. Each one is torn down only after its
close animation has finished, and the value it was closed with shows up
below.

- **n** opens a centered modal
- **d** opens the same content as a drawer
- **c** asks for confirmation with a form
- **esc** or a click outside closes the top overlay
`

// NoResult is shown when the last overlay closed without a value.
const NoResult = "(closed without a result)"

// closedMsg is delivered once an overlay has been torn down.
type closedMsg struct {
	id     string
	result overlay.Result
	err    error
}

// Options configures the demo Model.
type Options struct {
	Config  *config.Config
	Greeter Greeter
	Logger  zerolog.Logger
}

// Model is the demo page.
type Model struct {
	ctx      context.Context
	overlays *overlay.Controller
	cfg      *config.Config
	greeter  Greeter
	logger   zerolog.Logger
	keys     KeyMap
	help     help.Model

	intro    string
	response string
	err      error
	width    int
	quitting bool
}

// New creates the demo page. ctx bounds the goroutines waiting for overlays
// to close.
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}

	greeter := opts.Greeter
	if greeter == nil {
		greeter = StaticGreeter{Name: "from veil"}
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle

	return Model{
		ctx:      ctx,
		overlays: overlay.NewController(cfg.ControllerOptions(overlay.WithLogger(opts.Logger))...),
		cfg:      cfg,
		greeter:  greeter,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		intro:    renderIntro(0),
	}
}

// Overlays returns the overlay controller of the page.
func (m Model) Overlays() *overlay.Controller {
	return m.overlays
}

// Response returns the formatted result of the last closed overlay.
func (m Model) Response() string {
	return m.response
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.intro = renderIntro(msg.Width - 4)

	case closedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.response = formatResult(msg.result)
		m.logger.Debug().Str("handle", msg.id).Bool("present", msg.result.Present).Msg("overlay result")
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			m.quitting = true
			return m, tea.Quit
		}
		// The top overlay owns the keyboard while one is mounted.
		if m.overlays.Active() == 0 {
			return m.handleKey(msg)
		}
	}

	return m, m.overlays.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Modal):
		return m.open(GreetingDescriptor(m.greeter), m.greetingParams(m.cfg.Frame.DefaultVariant))
	case key.Matches(msg, m.keys.Drawer):
		return m.open(GreetingDescriptor(m.greeter), m.greetingParams(overlay.VariantDrawer))
	case key.Matches(msg, m.keys.Confirm):
		return m.open(ConfirmDescriptor(), overlay.Params{
			Inputs:  map[string]any{"prompt": "Keep this result?"},
			Options: overlay.Options{Title: "Confirm", Type: m.cfg.Frame.DefaultVariant},
		})
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) greetingParams(v overlay.Variant) overlay.Params {
	return overlay.Params{
		Inputs:  map[string]any{"text": GreetingText},
		Options: overlay.Options{Title: GreetingTitle, Type: v},
	}
}

func (m Model) open(desc overlay.Descriptor, p overlay.Params) (tea.Model, tea.Cmd) {
	h, err := m.overlays.Open(desc, p)
	if err != nil {
		m.err = err
		m.logger.Error().Err(err).Msg("open overlay")
		return m, nil
	}

	m.err = nil
	return m, tea.Batch(m.overlays.Flush(), m.waitClosed(h))
}

// waitClosed blocks until h is torn down and reports its result.
func (m Model) waitClosed(h *overlay.Handle) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		r, err := h.AfterClosed().Wait(ctx)
		return closedMsg{id: h.ID(), result: r, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.overlays.View(m.page())
}

func (m Model) page() string {
	sections := []string{
		headerStyle.Render(styles.BannerStyle.Render(strings.TrimPrefix(styles.Banner, "\n"))),
		m.intro,
		responseTitleStyle.Render("Last response"),
	}

	response := m.response
	if response == "" {
		response = "-"
	}
	sections = append(sections, responseStyle.Render(response))

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render(m.err.Error()))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// formatResult renders an overlay result for display.
func formatResult(r overlay.Result) string {
	if !r.Present {
		return NoResult
	}

	data, err := json.MarshalIndent(r.Value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", r.Value)
	}
	return string(data)
}

// renderIntro renders the intro markdown wrapped to width. A width of zero
// uses glamour's default wrapping.
func renderIntro(width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("tokyo-night")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return introMarkdown
	}

	rendered, err := renderer.Render(introMarkdown)
	if err != nil {
		return introMarkdown
	}
	return strings.Trim(rendered, "\n")
}
