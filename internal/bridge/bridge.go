// Package bridge connects the frame loop to background workers.
//
// Every bridge is owned by the frame loop and polled once per frame with a
// non-blocking receive. Workers talk to the loop only through channels that
// carry value copies. A closed channel reads as "no result".
package bridge

// State of a bridge as seen by the frame loop.
type State int

const (
	Idle    State = iota // No outstanding request
	Pending              // Request sent, result not yet observed
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}
