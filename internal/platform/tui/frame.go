package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/game"
)

// Frame layout constants.
const (
	hudRows    = 2  // Score line plus separator/effects line
	minScreenW = 40 // Minimum terminal size for a playable frame
	minScreenH = 15
)

// Glyphs used by the frame renderer.
const (
	PaddleChar  = '█'
	BallChar    = '●'
	BlockFull   = '█'
	BlockWorn   = '▓'
	BlockBroken = '░'
	BorderHoriz = '─'
)

// cellX converts a playfield X coordinate to a terminal column.
func cellX(fx float64, screenW int) int {
	x := int(fx * float64(screenW) / game.FieldWidth)
	return core.Clamp(x, 0, screenW-1)
}

// cellY converts a playfield Y coordinate to a terminal row below the HUD.
func cellY(fy float64, screenH int) int {
	rows := screenH - hudRows
	y := int(fy * float64(rows) / game.FieldHeight)
	return core.Clamp(y, 0, rows-1) + hudRows
}

// fieldXForCell converts a terminal column back to playfield units.
// Used to drive the paddle from mouse motion.
func fieldXForCell(cx, screenW int) float64 {
	if screenW <= 0 {
		return 0
	}
	return (float64(cx) + 0.5) * game.FieldWidth / float64(screenW)
}

// DrawFrame paints one simulation snapshot onto the screen buffer.
// Painter's order: blocks, bonuses, paddle, balls, then overlays on top.
func DrawFrame(dst *core.Screen, snap game.Snapshot) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	if snap.Phase == game.PhaseMenu {
		drawMenu(dst, snap)
		return
	}

	drawHUD(dst, snap)
	drawBlocks(dst, snap)
	drawBonuses(dst, snap)
	drawPaddle(dst, snap)
	drawBalls(dst, snap)
	drawOverlay(dst, snap)
}

// drawMenu renders the title screen.
func drawMenu(dst *core.Screen, snap game.Snapshot) {
	mid := dst.Height() / 2

	dst.DrawTextCentered(mid-4, "B R E A K E R")
	if snap.HighScore > 0 {
		dst.DrawTextCentered(mid-1, fmt.Sprintf("High Score: %d", snap.HighScore))
	}
	dst.DrawTextCentered(mid+2, "Enter: Start  |  Q: Quit")
}

// drawHUD draws the score, lives, and level indicator.
func drawHUD(dst *core.Screen, snap game.Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", snap.Lives))

	levelText := fmt.Sprintf("Level: %d  Hi: %d", snap.Level, snap.HighScore)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	// Active effects on row 1, separator when there are none
	effects := ""
	if len(snap.Balls) > 0 && snap.Balls[0].Fast {
		effects += " [SPEED]"
	}
	if snap.Paddle.Wide {
		effects += " [WIDE]"
	}
	if effects != "" {
		dst.DrawTextColored(1, 1, effects[1:], core.ColorBrightCyan)
	} else {
		dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
	}
}

// drawBlocks draws the remaining blocks, shaded by damage.
func drawBlocks(dst *core.Screen, snap game.Snapshot) {
	for _, blk := range snap.Blocks {
		glyph := blockGlyph(blk)

		x0 := cellX(blk.X, dst.Width())
		x1 := cellX(blk.X+blk.W, dst.Width())
		y := cellY(blk.Y+blk.H/2, dst.Height())

		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, glyph, blk.Color)
		}
	}
}

// blockGlyph picks a shade from the block's remaining health.
func blockGlyph(blk game.BlockView) rune {
	if blk.MaxHealth <= 1 || blk.Health >= blk.MaxHealth {
		return BlockFull
	}
	if blk.Health == 1 {
		return BlockBroken
	}
	return BlockWorn
}

// drawBonuses draws falling power-up pickups.
func drawBonuses(dst *core.Screen, snap game.Snapshot) {
	for _, b := range snap.Bonuses {
		x := cellX(b.X, dst.Width())
		y := cellY(b.Y, dst.Height())
		dst.SetColored(x, y, b.Glyph, b.Color)
	}
}

// drawPaddle draws the player's paddle.
func drawPaddle(dst *core.Screen, snap game.Snapshot) {
	p := snap.Paddle

	x0 := cellX(p.X, dst.Width())
	x1 := cellX(p.X+p.Width, dst.Width())
	y := cellY(p.Y, dst.Height())

	color := core.ColorBrightWhite
	if p.Wide {
		color = core.ColorBrightCyan
	}
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, color)
	}
}

// drawBalls draws every ball.
func drawBalls(dst *core.Screen, snap game.Snapshot) {
	for _, b := range snap.Balls {
		x := cellX(b.X, dst.Width())
		y := cellY(b.Y, dst.Height())

		color := core.ColorBrightYellow
		if b.Fast {
			color = core.ColorBrightRed
		}
		dst.SetColored(x, y, BallChar, color)
	}
}

// drawOverlay draws phase-dependent messages on top of the field.
func drawOverlay(dst *core.Screen, snap game.Snapshot) {
	switch snap.Phase {
	case game.PhasePlaying:
		if serveHintNeeded(snap) {
			dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
		}

	case game.PhasePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case game.PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R: Retry  |  M: Menu", snap.Score)
		title := "GAME OVER"
		if snap.Score > 0 && snap.Score >= snap.HighScore {
			title = "NEW HIGH SCORE"
		}
		drawCenteredBox(dst, title, subtitle)
	}
}

// serveHintNeeded reports whether a ball is still resting on the paddle.
func serveHintNeeded(snap game.Snapshot) bool {
	for _, b := range snap.Balls {
		if !b.Launched {
			return true
		}
	}
	return false
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
