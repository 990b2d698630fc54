// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Key is a logical game key. Several bytes may map to the same key.
type Key int

const (
	Quit Key = iota
	Left
	Right
	Up
	Down
	Fire
	Enter
	Escape
	Pause
	Design
	Color
	Hyperspace
	Scan
	Restart
	Options
	numKeys
)

// Input is the key state for one frame.
type Input struct {
	pressed [numKeys]bool
	held    [numKeys]bool
	// Closed is set once the underlying reader has ended.
	Closed bool
}

// Of builds an Input with every given key both pressed and held.
func Of(keys ...Key) Input {
	var in Input
	for _, k := range keys {
		in.pressed[k] = true
		in.held[k] = true
	}
	return in
}

// Pressed reports whether k arrived during this frame.
func (in Input) Pressed(k Key) bool {
	return in.pressed[k]
}

// Held reports whether k was seen within the hold window. Terminals only
// report key repeats, so a held key is one that keeps arriving.
func (in Input) Held(k Key) bool {
	return in.held[k]
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	last   [numKeys]time.Time
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.apply(buf, time.Now())
}

// apply parses buf, updates key timestamps and builds the frame's Input.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	var in Input
	press := func(k Key) {
		s.last[k] = now
		in.pressed[k] = true
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := arrowKey(buf[i+2]); ok {
				press(k)
				i += 2
				continue
			}
		}
		if k, ok := byteKey(b); ok {
			press(k)
		}
	}

	for k := Key(0); k < numKeys; k++ {
		in.held[k] = in.pressed[k] || now.Sub(s.last[k]) < keyHoldDuration
	}
	in.Closed = s.closed
	return in
}

func arrowKey(code byte) (Key, bool) {
	switch code {
	case 'A':
		return Up, true
	case 'B':
		return Down, true
	case 'C':
		return Right, true
	case 'D':
		return Left, true
	}
	return 0, false
}

func byteKey(b byte) (Key, bool) {
	switch b {
	case 'q', 'Q':
		return Quit, true
	case 'a', 'A', 'j', 'J':
		return Left, true
	case 'd', 'D', 'l', 'L':
		return Right, true
	case 'w', 'W', 'i', 'I':
		return Up, true
	case 's', 'S', 'k', 'K':
		return Down, true
	case ' ':
		return Fire, true
	case '\n', '\r':
		return Enter, true
	case '\x1b':
		return Escape, true
	case 'p', 'P':
		return Pause, true
	case 'e', 'E':
		return Design, true
	case 'c', 'C':
		return Color, true
	case 'h', 'H':
		return Hyperspace, true
	case 'x', 'X':
		return Scan, true
	case 'r', 'R':
		return Restart, true
	case 'o', 'O':
		return Options, true
	}
	return 0, false
}
