package overlay

// State is the realized visual state of a Frame.
//
// Transitions:
//   - closed  -> opening  when opened is set and a render pass runs
//   - opening -> open     when the open transition reports done
//   - open    -> closing  when opened is cleared and a render pass runs
//   - opening -> closing  same, the open transition is abandoned
//   - closing -> closed   when the close transition reports done
//
// Only the animation completion moves a frame into open or closed.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}
