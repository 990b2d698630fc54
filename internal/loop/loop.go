// Package loop runs the game: the session state, the per-frame orchestration,
// the collision passes and the terminal renderer.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/rockstorm/internal/draw"
	"github.com/tomz197/rockstorm/internal/input"
	"github.com/tomz197/rockstorm/internal/loop/config"
)

// IO is the terminal a session is played on.
type IO struct {
	In       *bufio.Reader
	Out      io.Writer
	TermSize draw.TermSizeFunc // Defaults to the size of os.Stdout
}

// Run plays sess on the given terminal with the standard Input → Update →
// Draw cycle at fps frames per second. It returns when the player quits,
// the input ends or the output fails.
func Run(sess *Session, term IO, fps int) error {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	targetFrameTime := time.Second / time.Duration(fps)

	stream := input.StartStream(term.In)
	renderer := NewRenderer(term.Out, term.TermSize, sess.Store.Screen)

	draw.HideCursor(term.Out)
	defer draw.ShowCursor(term.Out)
	draw.ClearScreen(term.Out)

	lastTime := time.Now()

	for !sess.Done() {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), config.MaxFrameDelta)
		lastTime = frameStart

		// ===== INPUT + UPDATE PHASE =====
		sess.Step(input.ReadInput(stream), delta.Seconds())

		// ===== DRAW PHASE =====
		if err := renderer.Draw(sess.Snapshot()); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(term.Out)
	return nil
}
