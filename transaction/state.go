package transaction

import "sync/atomic"

// State of a call in its lifecycle:
//
//	CREATED -> SIGNED -> SUBMITTED -> INCLUDED -> RESULT_READY
//	any state before RESULT_READY -> REJECTED
type State int32

const (
	StateCreated State = iota
	StateSigned
	StateSubmitted
	StateIncluded
	StateResultReady
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateSigned:
		return "SIGNED"
	case StateSubmitted:
		return "SUBMITTED"
	case StateIncluded:
		return "INCLUDED"
	case StateResultReady:
		return "RESULT_READY"
	case StateRejected:
		return "REJECTED"
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateResultReady || s == StateRejected
}

// sendGuard is shared by every value derived from one New call, it makes submission
// happen at most once whatever copies the caller holds
type sendGuard struct {
	state atomic.Int32
}

func (g *sendGuard) load() State {
	return State(g.state.Load())
}

func (g *sendGuard) begin() bool {
	return g.state.CompareAndSwap(int32(StateCreated), int32(StateSubmitted))
}

func (g *sendGuard) set(s State) {
	g.state.Store(int32(s))
}
