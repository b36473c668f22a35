package game

import (
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Snapshot is the read-only render contract: everything the presentation
// layer needs to draw one frame, with no access to the live entities.
type Snapshot struct {
	Phase     Phase
	Score     int
	Lives     int
	Level     int
	HighScore int
	Tick      int

	FieldW float64
	FieldH float64

	Paddle  PaddleView
	Balls   []BallView
	Blocks  []BlockView
	Bonuses []BonusView
}

// BallView is a renderable ball.
type BallView struct {
	X, Y     float64
	Radius   float64
	Launched bool
	Fast     bool // Speed power-up visual variant
}

// PaddleView is the renderable paddle.
type PaddleView struct {
	X, Y          float64
	Width, Height float64
	Wide          bool // Wide power-up visual variant
}

// BlockView is a renderable block. Shade is derived from remaining health.
type BlockView struct {
	X, Y      float64
	W, H      float64
	Health    int
	MaxHealth int
	Color     core.Color
}

// BonusView is a renderable falling pickup.
type BonusView struct {
	X, Y  float64
	Kind  BonusKind
	Glyph rune
	Color core.Color
}

// Snapshot captures the current state for rendering. Rendering order is the
// painter's algorithm: background clear, blocks, bonuses, paddle, balls.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     g.phase,
		Score:     g.score,
		Lives:     g.lives,
		Level:     g.level,
		HighScore: g.highScore,
		Tick:      g.tickCount,
		FieldW:    FieldWidth,
		FieldH:    FieldHeight,
		Paddle: PaddleView{
			X:      g.paddle.X,
			Y:      g.paddle.Y,
			Width:  g.paddle.Width,
			Height: g.paddle.Height,
			Wide:   g.effects.Active(BonusWide),
		},
	}

	fast := g.effects.Active(BonusSpeed)
	maxHealth := core.Min(core.Max(g.level, 1), g.cfg.Blocks.MaxHealth)

	snap.Balls = make([]BallView, 0, len(g.balls))
	for _, b := range g.balls {
		snap.Balls = append(snap.Balls, BallView{
			X:        b.X,
			Y:        b.Y,
			Radius:   b.Radius,
			Launched: b.Launched,
			Fast:     fast,
		})
	}

	snap.Blocks = make([]BlockView, 0, len(g.blocks))
	for _, blk := range g.blocks {
		snap.Blocks = append(snap.Blocks, BlockView{
			X:         blk.X,
			Y:         blk.Y,
			W:         blk.W,
			H:         blk.H,
			Health:    blk.Health,
			MaxHealth: maxHealth,
			Color:     blk.Color,
		})
	}

	snap.Bonuses = make([]BonusView, 0, len(g.effects.Bonuses()))
	for _, b := range g.effects.Bonuses() {
		snap.Bonuses = append(snap.Bonuses, BonusView{
			X:     b.X,
			Y:     b.Y,
			Kind:  b.Kind,
			Glyph: b.Kind.Glyph(),
			Color: b.Kind.Color(),
		})
	}

	return snap
}
