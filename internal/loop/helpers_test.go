package loop

import (
	"testing"
	"time"

	"github.com/tomz197/rockstorm/internal/input"
	"github.com/tomz197/rockstorm/internal/object"
)

const frame = 1.0 / 60

// recorder captures played cues and the last volume.
type recorder struct {
	played []string
	volume float64
}

func (r *recorder) Play(name string) { r.played = append(r.played, name) }
func (r *recorder) SetVolume(v float64) { r.volume = v }
func (r *recorder) count(name string) int {
	n := 0
	for _, p := range r.played {
		if p == name {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, opts Options) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts.Sounds = rec
	if opts.ScanDuration == 0 {
		opts.ScanDuration = 10 * time.Millisecond
	}
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, rec
}

// newPlayingSession returns a session mid-game with an empty playfield
// except for one small, still asteroid in a far corner that keeps the
// level from being cleared.
func newPlayingSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	s, rec := newTestSession(t, Options{})
	s.Phase = PhasePlaying
	s.Store.ClearLevel()
	s.Store.ClearBullets()
	s.Store.AddAsteroid(object.NewAsteroid(750, 550, 0, 0, 10))
	rec.played = nil
	return s, rec
}

func idle() input.Input {
	return input.Of()
}

// stepUntil steps with dt=0 until cond holds or the deadline passes.
func stepUntil(t *testing.T, s *Session, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		s.Step(idle(), 0)
		time.Sleep(time.Millisecond)
	}
}
