package demo

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/veil/internal/overlay"
)

// OkMessage is the payload the Ok button closes with.
const OkMessage = "some message"

// Greeter supplies the greeting shown by Greeting. It stands in for a
// service the content receives from its creator.
type Greeter interface {
	Greet() string
}

// StaticGreeter greets by name.
type StaticGreeter struct {
	Name string
}

func (g StaticGreeter) Greet() string {
	if g.Name == "" {
		return "hello there"
	}
	return "hello " + g.Name
}

type greetingFocus int

const (
	focusReply greetingFocus = iota
	focusOk
	focusClose
	focusCount
)

type greetingKeys struct {
	Next  key.Binding
	Prev  key.Binding
	Press key.Binding
}

var defaultGreetingKeys = greetingKeys{
	Next:  key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next")),
	Prev:  key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev")),
	Press: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press")),
}

// Greeting is the sample overlay content. It shows a template line, the
// "text" input given by the opener, and an upper-cased greeting from the
// injected Greeter. Ok closes with a result, Close closes without one.
type Greeting struct {
	Text string `modal:"text"`

	handle  *overlay.Handle
	logger  zerolog.Logger
	greeter Greeter
	keys    greetingKeys
	reply   textinput.Model
	focus   greetingFocus
}

// GreetingDescriptor returns a descriptor building Greeting content backed by
// greeter.
func GreetingDescriptor(greeter Greeter) overlay.Descriptor {
	return overlay.DescriptorFunc(func(ctx overlay.Context) (tea.Model, error) {
		return NewGreeting(ctx, greeter), nil
	})
}

// NewGreeting creates Greeting content bound to the overlay in ctx.
func NewGreeting(ctx overlay.Context, greeter Greeter) *Greeting {
	if greeter == nil {
		greeter = StaticGreeter{}
	}

	ti := textinput.New()
	ti.Placeholder = "optional reply"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Focus()

	g := &Greeting{
		handle:  ctx.Handle,
		logger:  ctx.Logger,
		greeter: greeter,
		keys:    defaultGreetingKeys,
		reply:   ti,
	}

	if g.handle != nil {
		g.handle.BeforeClose().Subscribe(func(r overlay.Result) {
			g.logger.Info().Interface("result", r.Value).Bool("present", r.Present).Msg("before close")
		})
		g.handle.AfterClosed().Subscribe(func(r overlay.Result) {
			g.logger.Info().Interface("result", r.Value).Bool("present", r.Present).Msg("after closed")
		})
	}

	return g
}

func (g *Greeting) Init() tea.Cmd {
	return textinput.Blink
}

func (g *Greeting) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, g.keys.Next):
			g.setFocus((g.focus + 1) % focusCount)
			return g, nil
		case key.Matches(msg, g.keys.Prev):
			g.setFocus((g.focus + focusCount - 1) % focusCount)
			return g, nil
		case key.Matches(msg, g.keys.Press):
			g.press()
			return g, nil
		}
	}

	if g.focus != focusReply {
		return g, nil
	}

	var cmd tea.Cmd
	g.reply, cmd = g.reply.Update(msg)
	return g, cmd
}

func (g *Greeting) setFocus(f greetingFocus) {
	g.focus = f
	if f == focusReply {
		g.reply.Focus()
	} else {
		g.reply.Blur()
	}
}

func (g *Greeting) press() {
	switch g.focus {
	case focusReply:
		g.setFocus(focusOk)
	case focusOk:
		g.Ok()
	case focusClose:
		g.Cancel()
	}
}

// Ok closes the overlay with a message result.
func (g *Greeting) Ok() {
	result := map[string]string{"message": OkMessage}
	if reply := strings.TrimSpace(g.reply.Value()); reply != "" {
		result["reply"] = reply
	}
	g.handle.CloseWith(result)
}

// Cancel closes the overlay without a result.
func (g *Greeting) Cancel() {
	g.handle.Close()
}

func (g *Greeting) View() string {
	ok := buttonStyle.Render("Ok")
	cancel := buttonStyle.Render("Close")
	switch g.focus {
	case focusOk:
		ok = buttonActiveStyle.Render("Ok")
	case focusClose:
		cancel = buttonActiveStyle.Render("Close")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		greetingBodyStyle.Render(strings.Join([]string{
			labelStyle.Render("Provided in template: ") + "I am modal content!",
			labelStyle.Render("Provided as input: ") + g.Text,
			labelStyle.Render("Provided by injected service: ") + upper(g.greeter.Greet()),
		}, "\n")),
		"",
		g.reply.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, ok, " ", cancel),
	)
}

// SetSize implements overlay.Sizer.
func (g *Greeting) SetSize(width, _ int) {
	g.reply.Width = max(width-lipgloss.Width(g.reply.Prompt)-1, 1)
}

// Destroy implements overlay.Destroyer.
func (g *Greeting) Destroy() {
	g.reply.Blur()
	g.logger.Debug().Msg("greeting destroyed")
}

// HelpKeys implements overlay.KeyHelper.
func (g *Greeting) HelpKeys() []key.Binding {
	return []key.Binding{g.keys.Next, g.keys.Press}
}

func upper(s string) string {
	return strings.ToUpper(s)
}
