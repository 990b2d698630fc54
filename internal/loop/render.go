package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/tomz197/rockstorm/internal/draw"
	"github.com/tomz197/rockstorm/internal/loop/config"
	"github.com/tomz197/rockstorm/internal/object"
)

// Renderer draws snapshots to an ANSI terminal.
type Renderer struct {
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter // Accumulates UI text for chunked output
	writer      io.Writer
	sizeFunc    draw.TermSizeFunc
	prevPhase   Phase
	firstFrame  bool
}

// NewRenderer creates a renderer for a playfield of the given logical size.
func NewRenderer(w io.Writer, sizeFunc draw.TermSizeFunc, screen object.Screen) *Renderer {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, screen.Width, screen.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Renderer{
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:      w,
		sizeFunc:    sizeFunc,
		firstFrame:  true,
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateScreen handles terminal resize. On actual size changes it clears the
// terminal to remove residual pixels outside the new canvas area.
func (r *Renderer) updateScreen() {
	termWidth, termHeight, err := r.sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != r.canvas.TerminalWidth() || renderHeight != r.canvas.TerminalHeight() ||
		offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow() {
		r.chunkWriter.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
	}
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// Draw renders one frame.
func (r *Renderer) Draw(snap Snapshot) error {
	r.updateScreen()

	// On screen transitions do a full clear so text from the previous
	// screen doesn't persist.
	if r.firstFrame || snap.Phase != r.prevPhase {
		r.chunkWriter.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.prevPhase = snap.Phase
		r.firstFrame = false
	}

	r.canvas.Clear()
	r.drawWorld(snap)
	r.canvas.Render(r.chunkWriter)
	r.canvas.RenderBorder(r.chunkWriter)
	r.drawUI(snap)
	return r.chunkWriter.Flush()
}

func (r *Renderer) drawWorld(snap Snapshot) {
	c := r.canvas

	for _, a := range snap.Asteroids {
		pts := draw.RegularPolygon(c.BorrowPoints(a.Sides), a.X, a.Y, a.Radius, 0)
		c.DrawPolygon(pts, false, object.Gray)
	}
	for _, u := range snap.Ufos {
		drawUfo(c, u)
	}
	for _, b := range snap.Bullets {
		col := object.White
		if b.Owner == object.OwnerHostile {
			col = object.Red
		}
		c.Set(b.X, b.Y, col)
	}
	for _, p := range snap.Particles {
		col := draw.Fade(p.Color, p.Alpha)
		if p.Size <= 2 {
			c.Set(p.X, p.Y, col)
			continue
		}
		h := p.Size / 2
		c.DrawLine(draw.Point{X: p.X - h, Y: p.Y}, draw.Point{X: p.X + h, Y: p.Y}, col)
	}

	p := snap.Player
	if snap.Phase == PhaseTitle || !p.Active {
		return
	}
	if p.Invulnerable && !object.ShouldRenderBlink(p.InvulnerableTime, config.PlayerBlinkFrequency) {
		return
	}
	pts := draw.RegularPolygon(c.BorrowPoints(p.Sides), p.X, p.Y, p.Radius, p.Angle)
	c.DrawPolygon(pts, snap.Phase == PhaseDesign, p.Color)
}

// drawUfo draws the flyer as a saucer: a flat hull under a small dome.
func drawUfo(c *draw.Canvas, u object.Ufo) {
	r := u.Radius
	hull := []draw.Point{
		{X: u.X - r, Y: u.Y},
		{X: u.X - r/2, Y: u.Y - r/3},
		{X: u.X + r/2, Y: u.Y - r/3},
		{X: u.X + r, Y: u.Y},
		{X: u.X + r/2, Y: u.Y + r/3},
		{X: u.X - r/2, Y: u.Y + r/3},
	}
	c.DrawPolygon(hull, false, object.Red)
	dome := []draw.Point{
		{X: u.X - r/3, Y: u.Y - r/3},
		{X: u.X - r/6, Y: u.Y - 2*r/3},
		{X: u.X + r/6, Y: u.Y - 2*r/3},
		{X: u.X + r/3, Y: u.Y - r/3},
	}
	c.DrawPolygon(dome, false, object.Red)
}

// drawUI draws the text overlay for the current screen.
func (r *Renderer) drawUI(snap Snapshot) {
	termWidth := r.canvas.TerminalWidth()
	termHeight := r.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch snap.Phase {
	case PhaseTitle:
		r.drawTitle(centerX, centerY)
	case PhasePlaying:
		r.drawHUD(snap, termWidth, termHeight)
	case PhasePaused:
		r.drawHUD(snap, termWidth, termHeight)
		r.writeCentered(centerX, centerY, "PAUSED")
		r.writeCentered(centerX, centerY+2, "Press P to resume")
		r.writeCentered(centerX, centerY+3, "O: settings  Esc: title")
	case PhaseDesign:
		r.drawDesign(snap, centerX, termHeight)
	case PhaseSettings:
		r.drawSettings(snap, centerX, centerY)
	case PhaseGameOver, PhaseWon:
		r.drawEnded(snap, centerX, centerY)
	}
}

// writeCentered writes text centered on column centerX and marks the cells
// so the canvas repaints them once the text is gone.
func (r *Renderer) writeCentered(centerX, row int, text string) {
	col := max(centerX-len(text)/2, 1)
	r.chunkWriter.WriteAt(col, row, text)
	r.canvas.MarkTextDirty(col, row, len(text))
}

func (r *Renderer) writeAt(col, row int, text string) {
	r.chunkWriter.WriteAt(col, row, text)
	r.canvas.MarkTextDirty(col, row, len(text))
}

func (r *Renderer) drawTitle(centerX, centerY int) {
	titleArt := []string{
		` ___  ___   ___ _  _____ _____ ___  ___ __  __ `,
		`| _ \/ _ \ / __| |/ / __|_   _/ _ \| _ \  \/  |`,
		`|   / (_) | (__| ' <\__ \ | || (_) |   / |\/| |`,
		`|_|_\\___/ \___|_|\_\___/ |_| \___/|_|_\_|  |_|`,
	}
	titleStartY := centerY - 8
	for i, line := range titleArt {
		r.writeCentered(centerX, titleStartY+i, line)
	}

	controlsY := titleStartY + len(titleArt) + 2
	controls := []string{
		"W / Up  . . . . . .  Thrust",
		"A D / < >  . . . . . Rotate",
		"SPACE  . . . . . . . . Shoot",
		"H  . . . . . . .  Hyperspace",
		"X  . . . . . . . . . .  Scan",
		"E  . . . . . . . . .  Design",
		"P  . . . . . . . . . . Pause",
		"O  . . . . . . . .  Settings",
		"Q  . . . . . . . . . .  Quit",
	}
	for i, line := range controls {
		r.writeCentered(centerX, controlsY+i, line)
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		r.writeCentered(centerX, controlsY+len(controls)+1, ">>  Press SPACE to Start  <<")
	} else {
		r.writeCentered(centerX, controlsY+len(controls)+1, "                            ")
	}
}

// drawHUD draws the in-game HUD. Fields are fixed width so shrinking values
// don't leave residual characters.
func (r *Renderer) drawHUD(snap Snapshot, termWidth, termHeight int) {
	r.writeAt(2, 1, fmt.Sprintf("Score: %-8d", snap.Score))

	levelText := fmt.Sprintf("Level %d/%d", snap.Level, snap.Levels)
	r.writeCentered(termWidth/2, 1, levelText)

	livesText := fmt.Sprintf("Lives: %-3d", snap.Lives)
	r.writeAt(max(termWidth-len(livesText)-1, 1), 1, livesText)

	if snap.Settings.ShowFPS {
		r.writeAt(2, termHeight, fmt.Sprintf("FPS: %-4.0f", snap.FPS))
	}
	switch {
	case snap.Message != "":
		r.writeCentered(termWidth/2, 3, snap.Message)
	case snap.Scanning:
		r.writeCentered(termWidth/2, 3, config.ScanPendingMessage)
	}
}

func (r *Renderer) drawDesign(snap Snapshot, centerX, termHeight int) {
	r.writeCentered(centerX, 2, "DESIGN MODE")
	r.writeCentered(centerX, 3, "Left/Right: sides  Up/Down: size  C: color  E: done")
	r.writeAt(2, termHeight-1, fmt.Sprintf("Sides: %-2d", snap.Player.Sides))
	r.writeAt(2, termHeight, fmt.Sprintf("Radius: %-5.1f", snap.Player.Radius))
}

func (r *Renderer) drawSettings(snap Snapshot, centerX, centerY int) {
	r.writeCentered(centerX, centerY-4, "SETTINGS")
	fps := "off"
	if snap.Settings.ShowFPS {
		fps = "on"
	}
	rows := [menuRows]string{
		MenuDifficulty: fmt.Sprintf("Difficulty  < %-6s >", snap.Settings.Difficulty),
		MenuVolume:     fmt.Sprintf("Volume      < %3.0f%%   >", snap.Settings.Volume*100),
		MenuShowFPS:    fmt.Sprintf("Show FPS    < %-6s >", fps),
	}
	for i, row := range rows {
		marker := "  "
		if i == snap.MenuIndex {
			marker = "> "
		}
		r.writeCentered(centerX, centerY-1+i, marker+row)
	}
	r.writeCentered(centerX, centerY+4, "Up/Down select  Left/Right change  Enter back")
}

func (r *Renderer) drawEnded(snap Snapshot, centerX, centerY int) {
	title := "GAME OVER"
	if snap.Phase == PhaseWon {
		title = "YOU WIN!"
	}
	r.writeCentered(centerX, centerY-2, title)
	r.writeCentered(centerX, centerY, fmt.Sprintf("Final Score: %d", snap.Score))
	r.writeCentered(centerX, centerY+2, "Press R to Restart")
	r.writeCentered(centerX, centerY+3, "Press Q to Quit")
}
