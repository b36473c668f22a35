package game

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// ScoreStore persists the best score ever achieved. *storage.Store satisfies
// it; tests inject fakes. Persistence failures are never fatal to a session:
// an unreadable high score reads as zero and a failed write is dropped.
type ScoreStore interface {
	HighScore() (int, error)
	RecordRun(score, level int) (int64, error)
}

// Game is the block breaker simulation. All entities are owned exclusively
// by the game; the platform layer holds read access through Snapshot and
// write access limited to input frames. A single Step runs to completion
// before the next is scheduled, so no locking is needed.
type Game struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	store   ScoreStore

	phase     Phase
	score     int
	lives     int
	level     int
	highScore int
	tickCount int

	paddle     *Paddle
	balls      []*Ball
	blocks     []*Block
	effects    *EffectManager
	nextBallID int
}

// New creates a game in the menu phase. store may be nil, in which case the
// high score starts at zero and nothing persists.
func New(cfg config.Config, runtime core.RuntimeConfig, store ScoreStore) *Game {
	g := &Game{
		cfg:     cfg,
		runtime: runtime,
		store:   store,
		phase:   PhaseMenu,
	}

	g.effects = NewEffectManager(cfg.PowerUps, runtime.TickRate, runtime.Seed)
	g.paddle = &Paddle{
		X:      (FieldWidth - cfg.Paddle.Width) / 2,
		Y:      PaddleY,
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
	}

	// A missing or unreadable stored score is treated as zero.
	if store != nil {
		if hs, err := store.HighScore(); err == nil {
			g.highScore = hs
		}
	}

	return g
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the current session score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Level returns the current level number, starting at 1.
func (g *Game) Level() int { return g.level }

// HighScore returns the best score known, persisted or from this process.
func (g *Game) HighScore() int { return g.highScore }

// Start begins a new session from the menu.
func (g *Game) Start() {
	if g.phase != PhaseMenu {
		return
	}
	g.startSession()
}

// Retry restarts after game over with a full reset.
func (g *Game) Retry() {
	if g.phase != PhaseGameOver {
		return
	}
	g.startSession()
}

// ReturnToMenu leaves a finished session for the menu.
func (g *Game) ReturnToMenu() {
	if g.phase != PhaseGameOver {
		return
	}
	g.phase = PhaseMenu
}

// Pause halts the simulation without discarding entity state.
func (g *Game) Pause() {
	if g.phase == PhasePlaying {
		g.phase = PhasePaused
	}
}

// Resume continues a paused session exactly where it left off.
func (g *Game) Resume() {
	if g.phase == PhasePaused {
		g.phase = PhasePlaying
	}
}

// startSession resets everything for a fresh game at level 1.
func (g *Game) startSession() {
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.level = 1
	g.tickCount = 0

	g.effects.Reset()
	g.blocks = BuildBlocks(g.level, g.cfg.Blocks)
	g.resetPaddle()

	g.balls = g.balls[:0]
	g.spawnBall()

	g.phase = PhasePlaying
}

// resetPaddle re-centers the paddle at its base width.
func (g *Game) resetPaddle() {
	g.paddle.Width = g.cfg.Paddle.Width
	g.paddle.X = (FieldWidth - g.paddle.Width) / 2
}

// spawnBall creates a fresh unlaunched ball hovering above the paddle.
func (g *Game) spawnBall() {
	g.nextBallID++
	g.balls = append(g.balls, &Ball{
		ID:     g.nextBallID,
		X:      g.paddle.CenterX(),
		Y:      g.paddle.Y - g.cfg.Ball.Radius - 2,
		Radius: g.cfg.Ball.Radius,
	})
}

// launchSpeed returns the launch speed magnitude for the current level.
func (g *Game) launchSpeed() float64 {
	return g.cfg.Physics.BaseBallSpeed + g.cfg.Physics.SpeedPerLevel*float64(g.level-1)
}

// Launch releases every unlaunched ball. Idempotent: a launched ball is
// unaffected, and each ball launches exactly once per reset.
func (g *Game) Launch() {
	if g.phase != PhasePlaying {
		return
	}

	speed := g.launchSpeed()
	// Launching into an active speed effect scales up front so the later
	// revert divides back to the base speed.
	if g.effects.Active(BonusSpeed) {
		speed *= g.cfg.PowerUps.SpeedMultiplier
	}

	for _, b := range g.balls {
		if !b.Launched {
			b.DX = speed / 4
			b.DY = -speed
			b.Launched = true
		}
	}
}

// SetPaddleTargetX moves the paddle's left edge to x, clamped to the field.
func (g *Game) SetPaddleTargetX(x float64) {
	g.paddle.X = core.ClampF(x, 0, FieldWidth-g.paddle.Width)
}

// Step advances the simulation one tick. Phase-transition actions are always
// processed; entity simulation runs only while playing.
func (g *Game) Step(in core.InputFrame) {
	g.handleTransitions(in)

	if g.phase != PhasePlaying {
		return
	}

	g.tickCount++

	// Drain effect expiries first so a timer can never fire mid-tick.
	for _, kind := range g.effects.TickTimers() {
		g.onEffectExpired(kind)
	}

	g.updatePaddle(in)

	if in.Has(core.ActionLaunch) {
		g.Launch()
	}

	// Ball motion: unlaunched balls track the paddle, launched ones integrate.
	for _, b := range g.balls {
		if !b.Launched {
			b.X = g.paddle.CenterX()
			b.Y = g.paddle.Y - b.Radius - 2
			continue
		}
		b.Move()
		g.collideWalls(b)
		g.collidePaddle(b)
	}

	g.removeLostBalls()

	if len(g.balls) == 0 {
		if g.loseLife() {
			// Game over: nothing else runs this tick.
			return
		}
	}

	for _, b := range g.balls {
		if b.Launched {
			g.collideBlocks(b)
		}
	}

	for _, kind := range g.effects.UpdateBonuses(g.paddle) {
		g.activate(kind)
	}

	if len(g.blocks) == 0 {
		g.advanceLevel()
	}
}

// handleTransitions processes phase-machine commands from the input frame.
func (g *Game) handleTransitions(in core.InputFrame) {
	switch g.phase {
	case PhaseMenu:
		if in.Has(core.ActionConfirm) {
			g.Start()
		}
	case PhasePlaying:
		if in.Has(core.ActionPause) {
			g.Pause()
		}
	case PhasePaused:
		if in.Has(core.ActionPause) {
			g.Resume()
		}
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.Retry()
		} else if in.Has(core.ActionMenu) {
			g.ReturnToMenu()
		}
	}
}

// updatePaddle applies pointer or keyboard paddle movement.
func (g *Game) updatePaddle(in core.InputFrame) {
	if in.HasPointer {
		g.SetPaddleTargetX(in.PointerX - g.paddle.Width/2)
		return
	}

	speed := g.cfg.Physics.PaddleSpeed
	if in.Has(core.ActionLeft) {
		g.SetPaddleTargetX(g.paddle.X - speed)
	}
	if in.Has(core.ActionRight) {
		g.SetPaddleTargetX(g.paddle.X + speed)
	}
}

// collideWalls reflects the ball off the side walls and the ceiling.
// There is no floor: crossing the bottom edge is a removal condition.
func (g *Game) collideWalls(b *Ball) {
	if b.X-b.Radius <= 0 && b.DX < 0 {
		b.DX = -b.DX
	}
	if b.X+b.Radius >= FieldWidth && b.DX > 0 {
		b.DX = -b.DX
	}
	if b.Y-b.Radius <= 0 && b.DY < 0 {
		b.DY = -b.DY
	}
}

// collidePaddle applies the paddle bounce. The trigger is a half-plane plus
// horizontal-span test, not a true circle/rect overlap: a ball approaching
// from below the paddle can also trigger it. The exit velocity is position
// dependent, and the vertical component always leaves upward so the ball
// cannot re-enter the paddle region on the same tick.
func (g *Game) collidePaddle(b *Ball) {
	if b.Y+b.Radius < g.paddle.Y {
		return
	}
	if b.X < g.paddle.X || b.X > g.paddle.X+g.paddle.Width {
		return
	}

	hitFraction := (b.X - g.paddle.X) / g.paddle.Width
	b.DX = (hitFraction - 0.5) * g.cfg.Physics.BounceKick
	b.DY = -math.Abs(b.DY)
}

// removeLostBalls drops every ball whose lower edge passed the field bottom.
func (g *Game) removeLostBalls() {
	kept := g.balls[:0]
	for _, b := range g.balls {
		if b.Y-b.Radius > FieldHeight {
			continue
		}
		kept = append(kept, b)
	}
	g.balls = kept
}

// loseLife handles all balls being lost. Returns true when the session
// ended (game over); otherwise a fresh unlaunched ball is spawned and the
// tick continues.
func (g *Game) loseLife() bool {
	g.lives--

	// Modifier state never outlives a life: timers cancelled, paddle reset.
	g.effects.Reset()
	g.resetPaddle()

	if g.lives <= 0 {
		g.gameOver()
		return true
	}

	g.spawnBall()
	return false
}

// gameOver transitions to the terminal phase and persists the high score
// when beaten. Write failures are non-fatal: the session just ends without
// persisting.
func (g *Game) gameOver() {
	g.phase = PhaseGameOver

	if g.score > g.highScore {
		g.highScore = g.score
	}
	if g.store != nil && g.score > 0 {
		g.store.RecordRun(g.score, g.level) //nolint:errcheck // Best-effort persist
	}
}

// collideBlocks resolves one ball against every remaining block. Each
// overlap flips the vertical velocity and decrements the block's health; a
// block at zero health is removed the same instant, awarding points and
// rolling the bonus spawn exactly once.
func (g *Game) collideBlocks(b *Ball) {
	kept := g.blocks[:0]
	for _, blk := range g.blocks {
		if core.CircleIntersectsRect(b.X, b.Y, b.Radius, blk.Rect()) {
			b.DY = -b.DY
			blk.Health--
			if blk.Health <= 0 {
				g.score += g.cfg.Gameplay.PointsPerBlock * g.level
				g.effects.TrySpawn(blk.Rect().CenterX(), blk.Rect().CenterY())
				continue
			}
		}
		kept = append(kept, blk)
	}
	g.blocks = kept
}

// activate applies a caught bonus.
func (g *Game) activate(kind BonusKind) {
	switch kind {
	case BonusSpeed:
		// Re-application restarts the countdown without re-scaling, so the
		// effect is idempotent while active.
		if wasActive := g.effects.StartTimer(BonusSpeed); !wasActive {
			for _, b := range g.balls {
				b.DX *= g.cfg.PowerUps.SpeedMultiplier
				b.DY *= g.cfg.PowerUps.SpeedMultiplier
			}
		}

	case BonusWide:
		g.effects.StartTimer(BonusWide)
		g.paddle.Width = g.cfg.Paddle.Width * g.cfg.PowerUps.WidthMultiplier
		g.SetPaddleTargetX(g.paddle.X)

	case BonusMulti:
		g.spawnMultiBalls()
	}
}

// onEffectExpired reverts a timed effect.
func (g *Game) onEffectExpired(kind BonusKind) {
	switch kind {
	case BonusSpeed:
		for _, b := range g.balls {
			b.DX /= g.cfg.PowerUps.SpeedMultiplier
			b.DY /= g.cfg.PowerUps.SpeedMultiplier
		}
	case BonusWide:
		g.paddle.Width = g.cfg.Paddle.Width
		g.SetPaddleTargetX(g.paddle.X)
	}
}

// spawnMultiBalls clones extra balls from the first existing ball, with the
// same speed magnitude and velocities rotated from straight up.
func (g *Game) spawnMultiBalls() {
	if len(g.balls) == 0 {
		return
	}
	source := g.balls[0]

	speed := source.Speed()
	if speed == 0 {
		speed = g.launchSpeed()
	}

	// 30 degrees off vertical, alternating sides.
	const angle = 30 * math.Pi / 180
	dx := speed * math.Sin(angle)
	dy := -speed * math.Cos(angle)

	for i := 0; i < g.cfg.PowerUps.MultiCount; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1.0
		}
		g.nextBallID++
		g.balls = append(g.balls, &Ball{
			ID:       g.nextBallID,
			X:        source.X,
			Y:        source.Y,
			DX:       side * dx,
			DY:       dy,
			Radius:   source.Radius,
			Launched: true,
		})
	}
}

// advanceLevel moves to the next level once the block set empties: bigger
// level number, fresh grid, cleared bonuses and timers, a single unlaunched
// ball, and the paddle re-centered at default width.
func (g *Game) advanceLevel() {
	g.level++
	g.blocks = BuildBlocks(g.level, g.cfg.Blocks)

	g.effects.Reset()
	g.resetPaddle()

	g.balls = g.balls[:0]
	g.spawnBall()
}
