package overlay

import (
	"errors"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/veil/internal/anim"
)

// manualAnimator records transitions and never completes them on its own.
// Tests deliver anim.DoneMsg explicitly.
type manualAnimator struct {
	mu     sync.Mutex
	played []anim.Transition
}

func (a *manualAnimator) Play(t anim.Transition) tea.Cmd {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.played = append(a.played, t)
	return nil
}

func (a *manualAnimator) Step(anim.FrameMsg) tea.Cmd { return nil }

// last returns the most recent transition for target.
func (a *manualAnimator) last(target string) (anim.Transition, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.played) - 1; i >= 0; i-- {
		if a.played[i].Target == target {
			return a.played[i], true
		}
	}
	return anim.Transition{}, false
}

// finish completes the most recent transition of target.
func (a *manualAnimator) finish(c *Controller, target string) {
	if tr, ok := a.last(target); ok {
		c.Update(anim.DoneMsg{Transition: tr})
	}
}

// recordingScheduler collects scheduled commands for frame level tests.
type recordingScheduler struct {
	cmds []tea.Cmd
}

func (s *recordingScheduler) schedule(cmd tea.Cmd) {
	if cmd != nil {
		s.cmds = append(s.cmds, cmd)
	}
}

// fakeContent is a minimal content component.
type fakeContent struct {
	Text   string `modal:"text"`
	Count  int
	Hidden string `modal:"-"`

	handle    *Handle
	inits     int
	destroyed int
	onDestroy func()
	updates   []tea.Msg
	width     int
	height    int
}

func (f *fakeContent) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeContent) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	f.updates = append(f.updates, msg)
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		f.handle.CloseWith(map[string]string{"message": "some message"})
	}
	return f, nil
}

func (f *fakeContent) View() string { return "content: " + f.Text }

func (f *fakeContent) Destroy() {
	f.destroyed++
	if f.onDestroy != nil {
		f.onDestroy()
	}
}

func (f *fakeContent) SetSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *fakeContent) HelpKeys() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok"))}
}

// fakeDescriptor builds fakeContent and keeps the instances it created.
type fakeDescriptor struct {
	created []*fakeContent
}

func (d *fakeDescriptor) New(ctx Context) (tea.Model, error) {
	c := &fakeContent{handle: ctx.Handle}
	d.created = append(d.created, c)
	return c, nil
}

var errBoom = errors.New("boom")

func failingDescriptor() Descriptor {
	return DescriptorFunc(func(Context) (tea.Model, error) {
		return nil, errBoom
	})
}

// drain executes cmd and feeds every produced message back into c until no
// commands remain.
func drain(c *Controller, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 1000; i++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Update(msg))
		}
	}
}
