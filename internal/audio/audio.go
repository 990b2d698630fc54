// Package audio plays the game's named sound cues.
package audio

// Cue names understood by every Sounds implementation.
const (
	Shoot = "shoot"
	Bang  = "bang"
	Warp  = "warp"
)

// Cues lists every cue loaded from the assets directory.
var Cues = []string{Shoot, Bang, Warp}

// Sounds plays named cues fire-and-forget.
type Sounds interface {
	Play(name string)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(string) {}
