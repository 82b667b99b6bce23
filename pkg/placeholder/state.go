package placeholder

// State is the controller lifecycle state.
type State int

const (
	StateUnacquired State = iota
	StateAcquired
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnacquired:
		return "unacquired"
	case StateAcquired:
		return "acquired"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
