// Package game implements the block breaker simulation core: ball motion,
// wall/paddle/block collision resolution, scoring, falling power-ups, level
// progression and the session phase machine. It is pure logic: the platform
// layer drives it one Step per tick and renders from Snapshot.
package game

import (
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// The playfield is a fixed continuous coordinate space; the renderer scales
// it to whatever screen it has.
const (
	FieldWidth  = 800.0
	FieldHeight = 600.0

	// PaddleY is the fixed y-coordinate of the paddle's top edge.
	PaddleY = 560.0
)

// Phase is the top-level game mode gating whether the simulation advances.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Ball is a moving ball. Radius never changes; speed magnitude is set at
// launch and scaled only by the speed power-up.
type Ball struct {
	ID       int // Unique, assigned monotonically on creation
	X, Y     float64
	DX, DY   float64
	Radius   float64
	Launched bool // False while the ball tracks the paddle
}

// Move integrates the ball position by one tick of velocity.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}

// Speed returns the ball's velocity magnitude.
func (b *Ball) Speed() float64 {
	return core.Speed(b.DX, b.DY)
}

// Paddle is the player's paddle. Only X and Width ever change; Y and Height
// are fixed for the session.
type Paddle struct {
	X      float64 // Left edge
	Y      float64
	Width  float64 // Mutable via the wide power-up
	Height float64
}

// CenterX returns the paddle's horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Rect returns the paddle's bounding rectangle.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Block is one destructible cell of the level grid.
type Block struct {
	X, Y   float64
	W, H   float64
	Health int // Decremented on hit; the block is removed at 0
	Color  core.Color
}

// Rect returns the block's bounding rectangle.
func (b *Block) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// BonusKind identifies a falling power-up pickup.
type BonusKind int

const (
	BonusSpeed BonusKind = iota // Balls move 1.5x faster for a while
	BonusWide                   // Paddle is 1.5x wider for a while
	BonusMulti                  // Two extra balls, immediately
)

// Glyph returns the display character for a bonus kind.
func (k BonusKind) Glyph() rune {
	switch k {
	case BonusSpeed:
		return 'S'
	case BonusWide:
		return 'W'
	case BonusMulti:
		return 'M'
	default:
		return '?'
	}
}

// Color returns the display color for a bonus kind.
func (k BonusKind) Color() core.Color {
	switch k {
	case BonusSpeed:
		return core.ColorBrightYellow
	case BonusWide:
		return core.ColorBrightGreen
	case BonusMulti:
		return core.ColorBrightMagenta
	default:
		return core.ColorDefault
	}
}

// String returns the bonus kind name.
func (k BonusKind) String() string {
	switch k {
	case BonusSpeed:
		return "speed"
	case BonusWide:
		return "wide"
	case BonusMulti:
		return "multi"
	default:
		return "?"
	}
}

// Bonus is a falling pickup, spawned at a destroyed block's center.
// It is consumed on paddle contact or silently discarded past the bottom.
type Bonus struct {
	Kind BonusKind
	X, Y float64 // Center position
	VY   float64 // Fixed downward fall speed
}

// Move advances the bonus by its fall speed.
func (b *Bonus) Move() {
	b.Y += b.VY
}

// blockPalette is the fixed ordered row color palette for the level grid.
var blockPalette = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
}
