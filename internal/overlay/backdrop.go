package overlay

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/veil/internal/anim"
)

// Backdrop state labels used in transitions.
const (
	backdropHidden  = "void"
	backdropVisible = "visible"
)

// backdropDimThreshold is the fade-in progress at which the background
// switches to its dimmed rendering.
const backdropDimThreshold = 0.3

type backdropConfig struct {
	ID       string
	Dim      bool
	Animator anim.Animator
	Sched    scheduler
}

// Backdrop dims everything below a frame and turns clicks outside the frame
// into a close request.
type Backdrop struct {
	id       string
	dim      bool
	animator anim.Animator
	sched    scheduler
	onClick  func()

	mu        sync.Mutex
	seq       uint64
	progress  float64
	destroyed bool
}

func newBackdrop(cfg backdropConfig, onClick func()) *Backdrop {
	return &Backdrop{
		id:       cfg.ID,
		dim:      cfg.Dim,
		animator: cfg.Animator,
		sched:    cfg.Sched,
		onClick:  onClick,
	}
}

// NodeID implements Node.
func (b *Backdrop) NodeID() string {
	return b.id
}

// Mount starts the fade-in transition.
func (b *Backdrop) Mount() {
	b.mu.Lock()
	b.seq++
	b.progress = 0
	tr := anim.Transition{
		Target: b.id,
		Seq:    b.seq,
		From:   backdropHidden,
		To:     backdropVisible,
	}
	b.mu.Unlock()

	b.sched.schedule(b.animator.Play(tr))
}

// Click handles a pointer press outside the frame.
func (b *Backdrop) Click() {
	b.mu.Lock()
	destroyed := b.destroyed
	b.mu.Unlock()

	if destroyed || b.onClick == nil {
		return
	}
	b.onClick()
}

// Progress records an intermediate fade step.
func (b *Backdrop) Progress(msg anim.FrameMsg) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed || msg.Seq != b.seq {
		return false
	}
	b.progress = msg.Progress
	return true
}

// Transition completes the fade-in.
func (b *Backdrop) Transition(msg anim.DoneMsg) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed || msg.Seq != b.seq {
		return
	}
	b.progress = 1
}

// Destroy releases the backdrop. It stops dimming and ignores further clicks.
func (b *Backdrop) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
}

// Render implements Node.
func (b *Backdrop) Render(background string, _, _ int) string {
	b.mu.Lock()
	progress, destroyed := b.progress, b.destroyed
	b.mu.Unlock()

	if !b.dim || destroyed || progress < backdropDimThreshold {
		return background
	}

	lines := strings.Split(background, "\n")
	for i, line := range lines {
		lines[i] = backdropStyle.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
