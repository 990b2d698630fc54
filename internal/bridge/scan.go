package bridge

import "time"

const (
	ScanBonus    = 250
	ScanDuration = 3 * time.Second
)

// Scan is a gated one-shot background task: while one run is pending no
// other may start.
type Scan struct {
	duration time.Duration
	ch       chan int
	state    State
}

func NewScan(duration time.Duration) *Scan {
	return &Scan{duration: duration}
}

// Start begins a run. It returns false if one is already pending.
func (s *Scan) Start() bool {
	if s.state == Pending {
		return false
	}
	ch := make(chan int, 1)
	s.ch = ch
	s.state = Pending
	go func(d time.Duration) {
		time.Sleep(d)
		ch <- ScanBonus
	}(s.duration)
	return true
}

// Poll returns the bonus of a finished run.
func (s *Scan) Poll() (int, bool) {
	if s.state != Pending {
		return 0, false
	}
	select {
	case bonus, ok := <-s.ch:
		if !ok {
			return 0, false
		}
		s.state = Idle
		return bonus, true
	default:
		return 0, false
	}
}

func (s *Scan) State() State {
	return s.state
}
