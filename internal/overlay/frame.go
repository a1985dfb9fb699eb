package overlay

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bgoverlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/rs/zerolog"

	"github.com/hay-kot/veil/internal/anim"
	"github.com/hay-kot/veil/internal/signal"
)

// rect is the screen area a frame occupied on its last render.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type frameConfig struct {
	ID       string
	Title    string
	Keys     KeyMap
	MaxWidth int
	Animator anim.Animator
	Sched    scheduler
	Logger   zerolog.Logger
}

// Frame hosts content inside the overlay chrome and owns the
// open/closing state machine. See State for the transitions.
type Frame struct {
	id       string
	title    string
	keys     KeyMap
	help     help.Model
	maxWidth int
	animator anim.Animator
	sched    scheduler
	logger   zerolog.Logger

	readyToClose *signal.Once[struct{}]
	beforeClose  signal.Source[Result]
	beforeSub    *signal.Subscription

	mu             sync.Mutex
	variant        Variant
	opened         bool
	closeRequested bool
	state          State
	seq            uint64
	progress       float64
	content        tea.Model
	width, height  int
	bounds         rect
	closeButton    rect
	destroyed      bool
}

func newFrame(cfg frameConfig, readyToClose *signal.Once[struct{}], beforeClose signal.Source[Result]) *Frame {
	h := help.New()
	h.Styles.ShortKey = frameHelpStyle.UnsetMarginTop()
	h.Styles.ShortDesc = frameHelpStyle.UnsetMarginTop()
	h.Styles.ShortSeparator = frameHelpStyle.UnsetMarginTop()

	return &Frame{
		id:           cfg.ID,
		title:        cfg.Title,
		keys:         cfg.Keys,
		help:         h,
		maxWidth:     cfg.MaxWidth,
		animator:     cfg.Animator,
		sched:        cfg.Sched,
		logger:       cfg.Logger,
		readyToClose: readyToClose,
		beforeClose:  beforeClose,
		state:        StateClosed,
	}
}

// NodeID implements Node.
func (f *Frame) NodeID() string {
	return f.id
}

// State returns the realized state.
func (f *Frame) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Opened returns the requested target.
func (f *Frame) Opened() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened
}

// Tag returns the presentation variant applied to the frame.
func (f *Frame) Tag() Variant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.variant
}

// SetVariant applies the presentation tag.
func (f *Frame) SetVariant(v Variant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variant = v.orDefault()
}

// Attach starts listening for the before-close signal. On receipt the frame
// clears opened and runs a render pass so the exit transition starts.
func (f *Frame) Attach() {
	f.beforeSub = f.beforeClose.Subscribe(func(Result) {
		f.mu.Lock()
		f.closeRequested = true
		f.mu.Unlock()

		f.SetOpened(false)
		f.Apply()
	})
}

// Detach stops listening for the before-close signal.
func (f *Frame) Detach() {
	f.beforeSub.Unsubscribe()
}

// SetOpened records the requested target. It takes effect on the next Apply.
// Once a close was requested the frame can no longer be reopened.
func (f *Frame) SetOpened(opened bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if opened && (f.closeRequested || f.state == StateClosing) {
		return
	}
	f.opened = opened
}

// Apply is the render pass: it reconciles the realized state with the
// requested target and starts the matching transition.
func (f *Frame) Apply() {
	f.mu.Lock()
	var (
		tr     anim.Transition
		play   bool
		settle bool
	)
	switch {
	case f.destroyed:
	case f.opened && f.state == StateClosed:
		f.state = StateOpening
		tr = f.nextTransition(StateClosed, StateOpen)
		play = true
	case !f.opened && (f.state == StateOpening || f.state == StateOpen):
		f.state = StateClosing
		tr = f.nextTransition(StateOpen, StateClosed)
		play = true
	case f.closeRequested && f.state == StateClosed:
		// Closed before it was ever shown, nothing to animate away.
		settle = true
	}
	f.mu.Unlock()

	if play {
		f.logger.Debug().Str("frame", f.id).Str("to", tr.To).Msg("transition started")
		f.sched.schedule(f.animator.Play(tr))
	}
	if settle {
		f.readyToClose.Emit(struct{}{})
	}
}

// nextTransition must be called with f.mu held.
func (f *Frame) nextTransition(from, to State) anim.Transition {
	f.seq++
	f.progress = 0
	return anim.Transition{
		Target: f.id,
		Seq:    f.seq,
		From:   from.String(),
		To:     to.String(),
	}
}

// Progress records an intermediate animation step. It reports whether the
// step belongs to the running transition.
func (f *Frame) Progress(msg anim.FrameMsg) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed || msg.Seq != f.seq {
		return false
	}
	if f.state != StateOpening && f.state != StateClosing {
		return false
	}
	f.progress = msg.Progress
	return true
}

// Transition handles the completion signal of the animation subsystem.
// Settling into closed emits ready-to-close.
func (f *Frame) Transition(msg anim.DoneMsg) {
	f.mu.Lock()
	if f.destroyed || msg.Seq != f.seq {
		f.mu.Unlock()
		return
	}

	fire := false
	switch {
	case msg.To == StateOpen.String() && f.state == StateOpening:
		f.state = StateOpen
		f.progress = 1
	case msg.To == StateClosed.String() && f.state == StateClosing:
		f.state = StateClosed
		f.progress = 1
		fire = true
	}
	f.mu.Unlock()

	if fire {
		f.logger.Debug().Str("frame", f.id).Msg("exit transition done")
		f.readyToClose.Emit(struct{}{})
	}
}

// Mount places content into the frame's content slot.
func (f *Frame) Mount(content tea.Model) {
	f.mu.Lock()
	f.content = content
	w, h := f.width, f.height
	closing := f.closeRequested
	f.mu.Unlock()

	if w > 0 && h > 0 {
		f.Resize(w, h)
	}
	// Content closed while it was being built is torn down before it is ever
	// shown, so it is never started.
	if closing {
		return
	}
	f.sched.schedule(content.Init())
}

// Content returns the hosted content.
func (f *Frame) Content() tea.Model {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// Resize records the screen size and forwards the slot size to the content.
func (f *Frame) Resize(width, height int) {
	f.mu.Lock()
	f.width, f.height = width, height
	variant := f.variant.orDefault()
	content := f.content
	f.mu.Unlock()

	sizer, ok := content.(Sizer)
	if !ok {
		return
	}

	style := chromeStyle(variant)
	innerW := f.frameWidth(variant, width) - style.GetHorizontalFrameSize()
	// header, spacer and help rows plus the border
	innerH := height - frameMargin - style.GetVerticalFrameSize() - 4
	sizer.SetSize(max(innerW, 1), max(innerH, 1))
}

// Update forwards msg to the content.
func (f *Frame) Update(msg tea.Msg) tea.Cmd {
	f.mu.Lock()
	content := f.content
	destroyed := f.destroyed
	f.mu.Unlock()

	if content == nil || destroyed {
		return nil
	}

	next, cmd := content.Update(msg)

	f.mu.Lock()
	if !f.destroyed && f.content != nil {
		f.content = next
	}
	f.mu.Unlock()

	return cmd
}

// Contains reports whether the screen cell x,y lies inside the frame.
func (f *Frame) Contains(x, y int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds.contains(x, y)
}

// OnCloseButton reports whether x,y hits the close affordance in the header.
func (f *Frame) OnCloseButton(x, y int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeButton.contains(x, y)
}

// destroyContent releases the hosted content.
func (f *Frame) destroyContent() {
	f.mu.Lock()
	content := f.content
	f.content = nil
	f.mu.Unlock()

	if d, ok := content.(Destroyer); ok {
		d.Destroy()
	}
}

// Destroy marks the frame dead. Animation messages arriving later are
// ignored.
func (f *Frame) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
	f.bounds = rect{}
	f.closeButton = rect{}
}

// visibility maps state and progress to how much of the frame is shown.
func visibility(state State, progress float64) float64 {
	switch state {
	case StateOpening:
		return progress
	case StateOpen:
		return 1
	case StateClosing:
		return 1 - progress
	default:
		return 0
	}
}

// Render implements Node.
func (f *Frame) Render(background string, width, height int) string {
	f.mu.Lock()
	state, progress := f.state, f.progress
	variant := f.variant.orDefault()
	content := f.content
	destroyed := f.destroyed
	f.mu.Unlock()

	v := visibility(state, progress)
	if destroyed || v <= 0 {
		f.setBounds(rect{}, rect{})
		return background
	}

	bgW, bgH := lipgloss.Width(background), lipgloss.Height(background)
	if width <= 0 {
		width = bgW
	}

	style := chromeStyle(variant)
	frameW := f.frameWidth(variant, width)
	innerW := frameW - style.GetHorizontalFrameSize()
	box := f.box(style, frameW, innerW, content)
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)

	var (
		yPos = bgoverlay.Center
		yOff int
		y    int
	)
	if variant == VariantDrawer {
		// Drawers slide up from the bottom edge.
		rows := int(math.Ceil(v * float64(boxH)))
		box = firstLines(box, rows)
		boxH = rows
		yPos = bgoverlay.Bottom
		y = bgH - boxH
	} else {
		yOff = int(math.Round((1 - v) * float64(bgH) / frameSlideFactor))
		y = (bgH-boxH)/2 + yOff
	}
	x := max((bgW-boxW)/2, 0)
	y = min(max(y, 0), max(bgH-boxH, 0))

	closeX := x + style.GetBorderLeftSize() + style.GetPaddingLeft() + innerW - 1
	closeY := y + style.GetBorderTopSize()
	f.setBounds(rect{x: x, y: y, w: boxW, h: boxH}, rect{x: closeX, y: closeY, w: 1, h: 1})

	return bgoverlay.Composite(box, background, bgoverlay.Center, yPos, 0, yOff)
}

func (f *Frame) setBounds(bounds, closeButton rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bounds = bounds
	f.closeButton = closeButton
}

func (f *Frame) frameWidth(variant Variant, width int) int {
	if variant == VariantDrawer && width > 0 {
		return width
	}
	w := f.maxWidth
	if width > 0 {
		w = min(w, width-frameMargin)
	}
	return max(w, frameMinWidth)
}

func (f *Frame) box(style lipgloss.Style, frameW, innerW int, content tea.Model) string {
	var body string
	if content != nil {
		body = content.View()
	}

	sections := []string{f.header(innerW), "", body}
	if helpView := f.help.ShortHelpView(f.helpKeys(content)); helpView != "" {
		sections = append(sections, frameHelpStyle.Render(helpView))
	}

	return style.
		Width(frameW - style.GetHorizontalBorderSize()).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (f *Frame) header(innerW int) string {
	title := frameTitleStyle.Render(f.title)
	closeBtn := frameCloseStyle.Render(closeGlyph)
	gap := max(innerW-lipgloss.Width(title)-lipgloss.Width(closeBtn), 1)
	return title + strings.Repeat(" ", gap) + closeBtn
}

func (f *Frame) helpKeys(content tea.Model) []key.Binding {
	var bindings []key.Binding
	if kh, ok := content.(KeyHelper); ok {
		bindings = append(bindings, kh.HelpKeys()...)
	}
	return append(bindings, f.keys.ShortHelp()...)
}

// firstLines keeps the first n lines of s.
func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n >= len(lines) {
		return s
	}
	if n <= 0 {
		return ""
	}
	return strings.Join(lines[:n], "\n")
}
