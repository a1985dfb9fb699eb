package overlay

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hay-kot/veil/internal/signal"
)

// Result is the payload delivered by AfterClosed. Present is false when the
// overlay was dismissed without a result (Close), and true when CloseWith was
// used, even if Value is nil.
type Result struct {
	Value   any
	Present bool
}

// Handle represents one open overlay. It is created by Controller.Open and
// handed to both the caller and the hosted content.
type Handle struct {
	id string

	closeRequest *signal.Once[struct{}]
	readyToClose *signal.Once[struct{}]
	beforeClose  *signal.Once[Result]
	afterClosed  *signal.Once[Result]
	readySub     *signal.Subscription

	mu        sync.Mutex
	result    Result
	closing   bool
	destroyed bool
}

func newHandle() *Handle {
	h := &Handle{
		id:           uuid.NewString(),
		closeRequest: signal.New[struct{}]("close-request"),
		readyToClose: signal.New[struct{}]("ready-to-close"),
		beforeClose:  signal.New[Result]("before-close"),
		afterClosed:  signal.New[Result]("after-closed"),
	}

	// The close request only fires once the frame has finished its exit
	// transition.
	h.readySub = h.readyToClose.Subscribe(func(struct{}) {
		h.closeRequest.Emit(struct{}{})
	})

	return h
}

// ID returns the unique identifier of the overlay.
func (h *Handle) ID() string {
	return h.id
}

// Close dismisses the overlay without a result.
func (h *Handle) Close() {
	h.close(Result{})
}

// CloseWith dismisses the overlay with v as its result.
func (h *Handle) CloseWith(v any) {
	h.close(Result{Value: v, Present: true})
}

func (h *Handle) close(r Result) {
	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		return
	}
	h.closing = true
	h.result = r
	h.mu.Unlock()

	h.beforeClose.Emit(r)
}

// BeforeClose fires when Close is first called, before the exit transition.
func (h *Handle) BeforeClose() signal.Source[Result] {
	return h.beforeClose
}

// AfterClosed fires once the exit transition finished and every resource of
// the overlay has been released.
func (h *Handle) AfterClosed() signal.Source[Result] {
	return h.afterClosed
}

// Closing reports whether a close has been requested.
func (h *Handle) Closing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closing
}

// Closed reports whether the overlay has been torn down.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}

// finalize marks the handle destroyed and delivers the stored result.
func (h *Handle) finalize() {
	h.mu.Lock()
	if h.destroyed {
		h.mu.Unlock()
		return
	}
	h.destroyed = true
	r := h.result
	h.mu.Unlock()

	h.readySub.Unsubscribe()
	h.afterClosed.Emit(r)
}
