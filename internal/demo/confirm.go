package demo

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/hay-kot/veil/internal/overlay"
	"github.com/hay-kot/veil/internal/styles"
)

// ConfirmResult is the value a submitted Confirm closes with.
type ConfirmResult struct {
	Confirmed bool `json:"confirmed"`
}

// Confirm hosts a huh confirm field as overlay content. Submitting closes the
// overlay with a ConfirmResult, aborting closes it without a result.
type Confirm struct {
	Prompt string `modal:"prompt"`

	handle    *overlay.Handle
	form      *huh.Form
	confirmed bool
	width     int
}

// ConfirmDescriptor returns a descriptor building Confirm content.
func ConfirmDescriptor() overlay.Descriptor {
	return overlay.DescriptorFunc(func(ctx overlay.Context) (tea.Model, error) {
		return &Confirm{handle: ctx.Handle, confirmed: true}, nil
	})
}

func (c *Confirm) build() *huh.Form {
	prompt := c.Prompt
	if prompt == "" {
		prompt = "Are you sure?"
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&c.confirmed),
		),
	).
		WithTheme(styles.FormTheme()).
		WithShowHelp(false)

	f.SubmitCmd = nil
	f.CancelCmd = nil
	return f
}

func (c *Confirm) Init() tea.Cmd {
	// Inputs are assigned after construction, so the form is built here.
	c.form = c.build()
	if c.width > 0 {
		c.form = c.form.WithWidth(c.width)
	}
	return c.form.Init()
}

func (c *Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if c.form == nil {
		return c, nil
	}

	m, cmd := c.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		c.form = f
	}

	switch c.form.State {
	case huh.StateCompleted:
		c.handle.CloseWith(ConfirmResult{Confirmed: c.confirmed})
	case huh.StateAborted:
		c.handle.Close()
	}

	return c, cmd
}

func (c *Confirm) View() string {
	if c.form == nil {
		return ""
	}
	return c.form.View()
}

// SetSize implements overlay.Sizer.
func (c *Confirm) SetSize(width, _ int) {
	c.width = width
	if c.form != nil {
		c.form = c.form.WithWidth(width)
	}
}
