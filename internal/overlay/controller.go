// Package overlay presents arbitrary Bubble Tea content as modal or drawer
// overlays and guarantees every overlay is torn down exactly once, after its
// exit transition has finished.
//
// A Controller is embedded in the host model. The host forwards messages to
// Controller.Update and draws its own view through Controller.View:
//
//	func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//		if cmd := m.overlays.Update(msg); m.overlays.Active() > 0 {
//			return m, cmd
//		}
//		...
//	}
//
//	func (m Model) View() string {
//		return m.overlays.View(m.page())
//	}
//
// Open returns a Handle. Callers observe Handle.AfterClosed for the result.
package overlay

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/veil/internal/anim"
)

// ErrNoDescriptor is returned by Open when no content descriptor is given.
var ErrNoDescriptor = errors.New("overlay: content descriptor is required")

// DefaultMaxWidth is the default upper bound for the width of a default
// (non-drawer) frame.
const DefaultMaxWidth = 80

// scheduler collects commands produced by render passes until the host's
// next Update returns them to the event loop.
type scheduler interface {
	schedule(cmd tea.Cmd)
}

// entry is the mounted instance set of one Open call.
type entry struct {
	handle   *Handle
	frame    *Frame
	backdrop *Backdrop
	torn     atomic.Bool
}

// animatedNode is implemented by nodes driven by anim messages.
type animatedNode interface {
	Progress(msg anim.FrameMsg) bool
	Transition(msg anim.DoneMsg)
}

// Option configures a Controller.
type Option func(*Controller)

// WithAnimator sets the animation collaborator.
func WithAnimator(a anim.Animator) Option {
	return func(c *Controller) { c.animator = a }
}

// WithKeyMap sets the controller key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *Controller) { c.keys = k }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSurface sets the mount target.
func WithSurface(s *Surface) Option {
	return func(c *Controller) { c.surface = s }
}

// WithBackdropDim toggles dimming of the background.
func WithBackdropDim(dim bool) Option {
	return func(c *Controller) { c.dim = dim }
}

// WithMaxWidth bounds the width of default frames.
func WithMaxWidth(w int) Option {
	return func(c *Controller) { c.maxWidth = w }
}

// Controller opens overlays, routes messages to them and tears them down.
type Controller struct {
	surface  *Surface
	animator anim.Animator
	keys     KeyMap
	logger   zerolog.Logger
	dim      bool
	maxWidth int

	mu      sync.Mutex
	entries []*entry
	pending []tea.Cmd
	seq     uint64
	width   int
	height  int
}

// NewController creates a Controller. Without options it uses the default
// tween animator, a fresh Surface and a no-op logger.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		surface:  NewSurface(),
		animator: anim.NewTween(anim.DefaultDuration, anim.DefaultFPS),
		keys:     DefaultKeyMap(),
		logger:   zerolog.Nop(),
		dim:      true,
		maxWidth: DefaultMaxWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Surface returns the mount target.
func (c *Controller) Surface() *Surface {
	return c.surface
}

// Open instantiates desc inside a new frame and mounts it with a backdrop.
// It returns as soon as everything is mounted; the open transition runs once
// the commands returned by the next Update or Flush are executed.
func (c *Controller) Open(desc Descriptor, p Params) (*Handle, error) {
	if desc == nil {
		return nil, ErrNoDescriptor
	}

	h := newHandle()
	logger := c.logger.With().Str("handle", h.ID()).Logger()

	content, err := desc.New(Context{Handle: h, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("instantiate content: %w", err)
	}
	if content == nil {
		return nil, fmt.Errorf("instantiate content: descriptor returned no model")
	}
	applyInputs(content, p.Inputs, logger)

	n := c.nextSeq()

	frame := newFrame(frameConfig{
		ID:       fmt.Sprintf("frame-%d", n),
		Title:    p.Options.Title,
		Keys:     c.keys,
		MaxWidth: c.maxWidth,
		Animator: c.animator,
		Sched:    c,
		Logger:   logger,
	}, h.readyToClose, h.beforeClose)
	frame.Attach()

	backdrop := newBackdrop(backdropConfig{
		ID:       fmt.Sprintf("backdrop-%d", n),
		Dim:      c.dim,
		Animator: c.animator,
		Sched:    c,
	}, h.Close)

	c.surface.Append(backdrop)
	backdrop.Mount()

	frame.SetOpened(true)
	frame.Apply()

	frame.Mount(content)
	frame.SetVariant(p.Options.Type)

	c.surface.Append(frame)

	e := &entry{handle: h, frame: frame, backdrop: backdrop}

	c.mu.Lock()
	c.entries = append(c.entries, e)
	w, hgt := c.width, c.height
	c.mu.Unlock()

	if w > 0 && hgt > 0 {
		frame.Resize(w, hgt)
	}

	h.closeRequest.Subscribe(func(struct{}) {
		c.teardown(e)
	})

	logger.Debug().
		Str("title", p.Options.Title).
		Str("type", string(frame.Tag())).
		Msg("overlay opened")

	return h, nil
}

// teardown releases the mounted instance set in a fixed order. It runs at
// most once per entry.
func (c *Controller) teardown(e *entry) {
	if !e.torn.CompareAndSwap(false, true) {
		return
	}

	e.frame.Detach()
	e.frame.SetOpened(false)
	e.frame.Apply()

	c.destroyContent(e)
	e.frame.Destroy()
	c.surface.Remove(e.frame)

	e.backdrop.Destroy()
	c.surface.Remove(e.backdrop)

	c.mu.Lock()
	c.entries = slices.DeleteFunc(c.entries, func(x *entry) bool { return x == e })
	c.mu.Unlock()

	e.handle.finalize()

	c.logger.Debug().Str("handle", e.handle.ID()).Msg("overlay torn down")
}

// destroyContent releases the hosted content. A panicking Destroyer is logged
// and does not stop the rest of the teardown.
func (c *Controller) destroyContent(e *entry) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().
				Str("handle", e.handle.ID()).
				Interface("panic", r).
				Msg("content destroy panicked")
		}
	}()
	e.frame.destroyContent()
}

// Update routes msg to the overlays and returns the commands they produced,
// including those queued by render passes.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.mu.Lock()
		c.width, c.height = msg.Width, msg.Height
		c.mu.Unlock()
		for _, e := range c.snapshot() {
			e.frame.Resize(msg.Width, msg.Height)
		}

	case anim.FrameMsg:
		if n := c.lookup(msg.Target); n != nil && n.Progress(msg) {
			cmds = append(cmds, c.animator.Step(msg))
		}

	case anim.DoneMsg:
		if n := c.lookup(msg.Target); n != nil {
			n.Transition(msg)
		}

	case tea.KeyMsg:
		if top := c.top(); top != nil {
			if key.Matches(msg, c.keys.Close) {
				top.handle.Close()
			} else {
				cmds = append(cmds, top.frame.Update(msg))
			}
		}

	case tea.MouseMsg:
		if top := c.top(); top != nil {
			cmds = append(cmds, c.handleMouse(top, msg))
		}

	default:
		for _, e := range c.snapshot() {
			cmds = append(cmds, e.frame.Update(msg))
		}
	}

	cmds = append(cmds, c.Flush())
	return tea.Batch(cmds...)
}

func (c *Controller) handleMouse(top *entry, msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return top.frame.Update(msg)
	}

	switch {
	case top.frame.OnCloseButton(msg.X, msg.Y):
		top.handle.Close()
	case !top.frame.Contains(msg.X, msg.Y):
		top.backdrop.Click()
	default:
		return top.frame.Update(msg)
	}
	return nil
}

// View renders the mounted overlays over background. Until the screen size is
// known the background is used as-is.
func (c *Controller) View(background string) string {
	c.mu.Lock()
	w, h := c.width, c.height
	c.mu.Unlock()

	if w > 0 && h > 0 {
		background = lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, background)
	}
	return c.surface.Compose(background, w, h)
}

// Flush returns and clears the commands queued by render passes.
func (c *Controller) Flush() tea.Cmd {
	c.mu.Lock()
	cmds := c.pending
	c.pending = nil
	c.mu.Unlock()

	return tea.Batch(cmds...)
}

// Active returns the number of overlays that have not been torn down.
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Handles returns the live handles in stacking order, bottom first.
func (c *Controller) Handles() []*Handle {
	entries := c.snapshot()
	out := make([]*Handle, len(entries))
	for i, e := range entries {
		out[i] = e.handle
	}
	return out
}

func (c *Controller) schedule(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, cmd)
}

func (c *Controller) nextSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Controller) snapshot() []*entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entries)
}

func (c *Controller) top() *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[len(c.entries)-1]
}

func (c *Controller) lookup(id string) animatedNode {
	for _, e := range c.snapshot() {
		switch id {
		case e.frame.NodeID():
			return e.frame
		case e.backdrop.NodeID():
			return e.backdrop
		}
	}
	return nil
}
