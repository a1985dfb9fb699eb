// Package anim drives tick-based transitions for overlay nodes and reports
// their completion back to the Bubble Tea update loop.
package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Transition identifies one animated state change of a node.
type Transition struct {
	Target string // node ID the transition belongs to
	Seq    uint64 // per-node sequence number, used to drop stale messages
	From   string
	To     string
}

// FrameMsg is sent for every intermediate step of a running transition.
type FrameMsg struct {
	Transition
	Progress float64 // eased progress, 0 at From and 1 at To
	Start    time.Time
}

// DoneMsg is sent once a transition has settled into its To state.
type DoneMsg struct {
	Transition
}

// Animator plays transitions. Play starts one and Step advances it after each
// FrameMsg; eventually a DoneMsg is produced.
type Animator interface {
	Play(t Transition) tea.Cmd
	Step(msg FrameMsg) tea.Cmd
}

// Default animation settings.
const (
	DefaultDuration = 200 * time.Millisecond
	DefaultFPS      = 60
)

// Tween is a time based Animator that emits FrameMsg at a fixed frame rate
// until the duration elapses.
type Tween struct {
	duration time.Duration
	interval time.Duration
	easing   Easing
	now      func() time.Time
}

// NewTween creates a Tween with the standard ease-out curve.
func NewTween(duration time.Duration, fps int) *Tween {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Tween{
		duration: duration,
		interval: time.Second / time.Duration(fps),
		easing:   StandardEase,
		now:      time.Now,
	}
}

// WithEasing returns a copy of the tween using e.
func (tw *Tween) WithEasing(e Easing) *Tween {
	cp := *tw
	cp.easing = e
	return &cp
}

// Play starts t. A zero duration settles immediately.
func (tw *Tween) Play(t Transition) tea.Cmd {
	if tw.duration <= 0 {
		return Done(t)
	}
	return tw.tick(t, tw.now())
}

// Step schedules the next frame, or the DoneMsg once progress reached 1.
func (tw *Tween) Step(msg FrameMsg) tea.Cmd {
	if msg.Progress >= 1 {
		return Done(msg.Transition)
	}
	return tw.tick(msg.Transition, msg.Start)
}

func (tw *Tween) tick(t Transition, start time.Time) tea.Cmd {
	return tea.Tick(tw.interval, func(now time.Time) tea.Msg {
		return FrameMsg{
			Transition: t,
			Progress:   tw.progress(start, now),
			Start:      start,
		}
	})
}

func (tw *Tween) progress(start, now time.Time) float64 {
	x := float64(now.Sub(start)) / float64(tw.duration)
	switch {
	case x >= 1:
		return 1
	case x <= 0:
		return 0
	}
	return tw.easing(x)
}

// Instant settles every transition on the next update without intermediate
// frames. Used when animations are disabled.
type Instant struct{}

func (Instant) Play(t Transition) tea.Cmd { return Done(t) }

func (Instant) Step(FrameMsg) tea.Cmd { return nil }

// Done returns a command that reports t as settled.
func Done(t Transition) tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Transition: t}
	}
}
