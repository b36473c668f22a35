package game

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// fakeStore is an in-memory ScoreStore for tests.
type fakeStore struct {
	high    int
	highErr error
	runs    [][2]int
}

func (f *fakeStore) HighScore() (int, error) {
	return f.high, f.highErr
}

func (f *fakeStore) RecordRun(score, level int) (int64, error) {
	f.runs = append(f.runs, [2]int{score, level})
	if score > f.high {
		f.high = score
	}
	return int64(len(f.runs)), nil
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(seed int64) *Game {
	return New(config.Default(), testRuntime(seed), nil)
}

func step(g *Game, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPhaseMachine(t *testing.T) {
	g := newTestGame(1)

	if g.Phase() != PhaseMenu {
		t.Fatalf("initial phase = %v, expected menu", g.Phase())
	}

	step(g, core.ActionConfirm)
	if g.Phase() != PhasePlaying {
		t.Fatalf("after start: phase = %v, expected playing", g.Phase())
	}

	step(g, core.ActionPause)
	if g.Phase() != PhasePaused {
		t.Fatalf("after pause: phase = %v, expected paused", g.Phase())
	}

	// Paused halts ticking without discarding entity state
	tick := g.tickCount
	ballX := g.balls[0].X
	step(g)
	if g.tickCount != tick {
		t.Error("simulation advanced while paused")
	}
	if g.balls[0].X != ballX {
		t.Error("entity state changed while paused")
	}

	step(g, core.ActionPause)
	if g.Phase() != PhasePlaying {
		t.Fatalf("after resume: phase = %v, expected playing", g.Phase())
	}

	// Force game over, then retry
	g.lives = 1
	g.balls[0].Launched = true
	g.balls[0].Y = FieldHeight + 50
	step(g)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("after losing last ball: phase = %v, expected gameover", g.Phase())
	}

	step(g, core.ActionRestart)
	if g.Phase() != PhasePlaying {
		t.Fatalf("after retry: phase = %v, expected playing", g.Phase())
	}
	if g.Score() != 0 || g.Level() != 1 || g.Lives() != config.Default().Gameplay.Lives {
		t.Error("retry should fully reset the session")
	}

	// Game over -> menu
	g.lives = 1
	g.balls[0].Launched = true
	g.balls[0].Y = FieldHeight + 50
	step(g)
	step(g, core.ActionMenu)
	if g.Phase() != PhaseMenu {
		t.Fatalf("after menu command: phase = %v, expected menu", g.Phase())
	}
}

func TestServeBallTracksPaddle(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	for i := 0; i < 5; i++ {
		step(g, core.ActionRight)
	}

	if !approxEqual(g.balls[0].X, g.paddle.CenterX()) {
		t.Errorf("unlaunched ball X = %v, paddle center = %v", g.balls[0].X, g.paddle.CenterX())
	}
	if g.balls[0].Launched {
		t.Error("ball should still be unlaunched")
	}
}

func TestLaunchIdempotent(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	g.Launch()
	if !g.balls[0].Launched {
		t.Fatal("ball should be launched")
	}

	speed := g.balls[0].Speed()
	expected := core.Speed(g.launchSpeed()/4, g.launchSpeed())
	if !approxEqual(speed, expected) {
		t.Errorf("launch speed = %v, expected %v", speed, expected)
	}

	dx, dy := g.balls[0].DX, g.balls[0].DY
	g.Launch()
	if g.balls[0].DX != dx || g.balls[0].DY != dy {
		t.Error("second Launch changed an already-launched ball")
	}
	if len(g.balls) != 1 {
		t.Errorf("%d balls after double launch, expected 1", len(g.balls))
	}
}

func TestWallReflectionPreservesSpeed(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	b := g.balls[0]
	b.Launched = true
	b.X = FieldWidth - b.Radius - 1
	b.Y = 300
	b.DX = 3
	b.DY = -4

	before := b.Speed()
	step(g)

	if b.DX >= 0 {
		t.Error("ball should have reflected off the right wall")
	}
	if !approxEqual(b.Speed(), before) {
		t.Errorf("speed after wall bounce = %v, expected %v", b.Speed(), before)
	}
}

func TestCeilingReflection(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	b := g.balls[0]
	b.Launched = true
	b.X = 400
	b.Y = b.Radius + 1
	b.DX = 2
	b.DY = -4

	before := b.Speed()
	step(g)

	if b.DY <= 0 {
		t.Error("ball should have reflected off the ceiling")
	}
	if !approxEqual(b.Speed(), before) {
		t.Errorf("speed after ceiling bounce = %v, expected %v", b.Speed(), before)
	}
}

func TestPaddleBounceShaping(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	kick := g.cfg.Physics.BounceKick

	tests := []struct {
		name       string
		fraction   float64
		expectedDX float64
	}{
		{"left quarter", 0.25, -0.25 * kick},
		{"center", 0.5, 0},
		{"right edge", 1.0, 0.5 * kick},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Ball{X: g.paddle.X + tc.fraction*g.paddle.Width, Y: g.paddle.Y, Radius: 8, DY: 5, Launched: true}
			g.collidePaddle(b)

			if !approxEqual(b.DX, tc.expectedDX) {
				t.Errorf("DX = %v, expected %v", b.DX, tc.expectedDX)
			}
			if b.DY != -5 {
				t.Errorf("DY = %v, expected -5 (always upward)", b.DY)
			}
		})
	}
}

func TestPaddleBounceFromBelowQuirk(t *testing.T) {
	// The paddle trigger is a half-plane + span test, not a true overlap
	// test: a ball rising from beneath the paddle also bounces. This is
	// the documented behavior, not a bug.
	g := newTestGame(1)
	g.Start()

	b := &Ball{X: g.paddle.CenterX(), Y: g.paddle.Y + 30, Radius: 8, DY: -3, Launched: true}
	g.collidePaddle(b)

	if b.DY != -3 {
		t.Errorf("DY = %v, expected -3 (forced upward)", b.DY)
	}
	if !approxEqual(b.DX, 0) {
		t.Errorf("DX = %v, expected 0 for a center hit", b.DX)
	}
}

func TestBlockHitReflectsAndScores(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	// Two known blocks so destroying one does not end the level
	g.blocks = []*Block{
		{X: 365, Y: 300, W: 70, H: 20, Health: 1, Color: core.ColorBrightRed},
		{X: 100, Y: 300, W: 70, H: 20, Health: 1, Color: core.ColorBrightRed},
	}

	b := g.balls[0]
	b.Launched = true
	b.X = 400 // Centered under the first block
	b.Y = 330
	b.DX = 0
	b.DY = -5

	step(g)

	if g.Score() != 100 {
		t.Errorf("score = %d, expected 100 (100 x level 1)", g.Score())
	}
	if len(g.blocks) != 1 {
		t.Errorf("%d blocks remain, expected 1", len(g.blocks))
	}
	if b.DY <= 0 {
		t.Errorf("DY = %v, expected positive (reflected downward)", b.DY)
	}
}

func TestBlockHealthDecrements(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	g.blocks = []*Block{
		{X: 365, Y: 300, W: 70, H: 20, Health: 3, Color: core.ColorBrightRed},
		{X: 100, Y: 300, W: 70, H: 20, Health: 3, Color: core.ColorBrightRed},
	}

	hit := &Ball{X: 400, Y: 325, Radius: 8, Launched: true}
	g.collideBlocks(hit)

	if len(g.blocks) != 2 {
		t.Fatalf("%d blocks remain, expected 2 (block survives at health 2)", len(g.blocks))
	}
	if g.blocks[0].Health != 2 {
		t.Errorf("block health = %d, expected 2", g.blocks[0].Health)
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, expected 0 (no destruction yet)", g.Score())
	}
}

func TestScoreAfterNBlocks(t *testing.T) {
	// Score after destroying N blocks in level L equals 100 * L * N
	g := newTestGame(1)
	g.Start()
	g.level = 3

	n := 4
	for i := 0; i < n; i++ {
		g.blocks = []*Block{{X: 365, Y: 300, W: 70, H: 20, Health: 1}}
		hit := &Ball{X: 400, Y: 325, Radius: 8, Launched: true}
		g.collideBlocks(hit)
	}

	expected := 100 * 3 * n
	if g.Score() != expected {
		t.Errorf("score = %d, expected %d", g.Score(), expected)
	}
}

func TestClearingLastBlockAdvancesLevel(t *testing.T) {
	// End-to-end: a single block of health 1, a ball on a direct vertical
	// path through it. Expect the block removed, score +100, and an
	// automatic transition to level 2 with a freshly built grid.
	g := newTestGame(1)
	g.Start()

	g.blocks = []*Block{{X: 365, Y: 300, W: 70, H: 20, Health: 1, Color: core.ColorBrightRed}}
	g.paddle.Width = g.cfg.Paddle.Width * 1.5 // Pretend a wide effect is mid-flight
	g.effects.StartTimer(BonusWide)

	b := g.balls[0]
	b.Launched = true
	b.X = 400
	b.Y = 330
	b.DX = 0
	b.DY = -5

	step(g)

	if g.Level() != 2 {
		t.Fatalf("level = %d, expected 2", g.Level())
	}
	if g.Score() != 100 {
		t.Errorf("score = %d, expected 100", g.Score())
	}

	// Level transition resets: full grid, one unlaunched ball, base
	// paddle, no bonuses, no timers.
	cfg := g.cfg.Blocks
	if len(g.blocks) != cfg.Rows*cfg.Cols {
		t.Errorf("%d blocks after advance, expected %d", len(g.blocks), cfg.Rows*cfg.Cols)
	}
	for _, blk := range g.blocks {
		if blk.Health != 2 {
			t.Errorf("level 2 block health = %d, expected 2", blk.Health)
			break
		}
	}
	if len(g.balls) != 1 || g.balls[0].Launched {
		t.Error("expected exactly one unlaunched ball after level advance")
	}
	if g.paddle.Width != g.cfg.Paddle.Width {
		t.Errorf("paddle width = %v, expected base %v", g.paddle.Width, g.cfg.Paddle.Width)
	}
	if len(g.effects.Bonuses()) != 0 {
		t.Error("bonuses should be cleared on level advance")
	}
	if g.effects.Active(BonusWide) {
		t.Error("effect timers should be cancelled on level advance")
	}
}

func TestLifeLossRespawnsBall(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	g.activate(BonusWide)

	b := g.balls[0]
	b.Launched = true
	b.Y = FieldHeight + 50

	step(g)

	if g.Lives() != config.Default().Gameplay.Lives-1 {
		t.Errorf("lives = %d, expected %d", g.Lives(), config.Default().Gameplay.Lives-1)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", g.Phase())
	}
	if len(g.balls) != 1 || g.balls[0].Launched {
		t.Error("expected exactly one fresh unlaunched ball")
	}
	if g.paddle.Width != g.cfg.Paddle.Width {
		t.Error("paddle width should reset on life loss")
	}
	if g.effects.Active(BonusWide) {
		t.Error("effect timers should be cancelled on life loss")
	}
}

func TestGameOverPersistsHighScoreWhenBeaten(t *testing.T) {
	store := &fakeStore{high: 50}
	g := New(config.Default(), testRuntime(1), store)
	g.Start()

	g.score = 100
	g.lives = 1
	g.balls[0].Launched = true
	g.balls[0].Y = FieldHeight + 50

	step(g)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", g.Phase())
	}
	if g.HighScore() != 100 {
		t.Errorf("high score = %d, expected 100", g.HighScore())
	}
	if len(store.runs) != 1 || store.runs[0][0] != 100 {
		t.Errorf("store runs = %v, expected one run with score 100", store.runs)
	}
}

func TestGameOverKeepsStoredHighScoreWhenNotBeaten(t *testing.T) {
	store := &fakeStore{high: 500}
	g := New(config.Default(), testRuntime(1), store)
	g.Start()

	g.score = 100
	g.lives = 1
	g.balls[0].Launched = true
	g.balls[0].Y = FieldHeight + 50

	step(g)

	if g.HighScore() != 500 {
		t.Errorf("high score = %d, expected the stored 500", g.HighScore())
	}
	if store.high != 500 {
		t.Errorf("stored high score changed to %d, expected 500", store.high)
	}
}

func TestUnreadableHighScoreReadsAsZero(t *testing.T) {
	store := &fakeStore{high: 999, highErr: errors.New("db locked")}
	g := New(config.Default(), testRuntime(1), store)

	if g.HighScore() != 0 {
		t.Errorf("high score = %d, expected 0 when the store is unreadable", g.HighScore())
	}
}

func TestSpeedEffectNoCompounding(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	g.Launch()

	b := g.balls[0]
	baseDX, baseDY := b.DX, b.DY
	mult := g.cfg.PowerUps.SpeedMultiplier

	g.activate(BonusSpeed)
	if !approxEqual(b.DX, baseDX*mult) || !approxEqual(b.DY, baseDY*mult) {
		t.Fatalf("velocity after speed = (%v, %v), expected (%v, %v)", b.DX, b.DY, baseDX*mult, baseDY*mult)
	}

	// Re-trigger while active: exactly one scaling in effect
	g.activate(BonusSpeed)
	if !approxEqual(b.DX, baseDX*mult) || !approxEqual(b.DY, baseDY*mult) {
		t.Error("re-triggering speed must not compound the multiplier")
	}
	if g.effects.Remaining(BonusSpeed) != 300 {
		t.Errorf("countdown = %d, expected 300 (restarted from the most recent trigger)", g.effects.Remaining(BonusSpeed))
	}

	// Expiry reverts exactly once
	reverts := 0
	for i := 0; i < 400; i++ {
		for _, kind := range g.effects.TickTimers() {
			g.onEffectExpired(kind)
			reverts++
		}
	}
	if reverts != 1 {
		t.Fatalf("effect reverted %d times, expected once", reverts)
	}
	if !approxEqual(b.DX, baseDX) || !approxEqual(b.DY, baseDY) {
		t.Errorf("velocity after expiry = (%v, %v), expected base (%v, %v)", b.DX, b.DY, baseDX, baseDY)
	}
}

func TestWideEffect(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	base := g.cfg.Paddle.Width

	g.activate(BonusWide)
	if !approxEqual(g.paddle.Width, base*1.5) {
		t.Errorf("paddle width = %v, expected %v", g.paddle.Width, base*1.5)
	}

	g.onEffectExpired(BonusWide)
	if g.paddle.Width != base {
		t.Errorf("paddle width after expiry = %v, expected exactly %v", g.paddle.Width, base)
	}
}

func TestMultiEffect(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	g.Launch()

	source := g.balls[0]
	speed := source.Speed()

	g.activate(BonusMulti)

	if len(g.balls) != 3 {
		t.Fatalf("%d balls after multi, expected 3", len(g.balls))
	}

	clone1, clone2 := g.balls[1], g.balls[2]
	if !approxEqual(clone1.Speed(), speed) || !approxEqual(clone2.Speed(), speed) {
		t.Errorf("clone speeds = %v, %v, expected %v", clone1.Speed(), clone2.Speed(), speed)
	}
	if clone1.DY >= 0 || clone2.DY >= 0 {
		t.Error("clones should move upward")
	}
	if clone1.DX*clone2.DX >= 0 {
		t.Error("clones should split to opposite sides")
	}
	if clone1.ID == clone2.ID || clone1.ID == source.ID {
		t.Error("ball ids must be unique")
	}
}

func TestSetPaddleTargetXClamps(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	g.SetPaddleTargetX(-100)
	if g.paddle.X != 0 {
		t.Errorf("paddle X = %v, expected clamp to 0", g.paddle.X)
	}

	g.SetPaddleTargetX(FieldWidth * 2)
	if g.paddle.X != FieldWidth-g.paddle.Width {
		t.Errorf("paddle X = %v, expected clamp to %v", g.paddle.X, FieldWidth-g.paddle.Width)
	}
}

func TestPointerInputMovesPaddle(t *testing.T) {
	g := newTestGame(1)
	g.Start()

	in := core.NewInputFrame()
	in.SetPointer(200)
	g.Step(in)

	if !approxEqual(g.paddle.CenterX(), 200) {
		t.Errorf("paddle center = %v, expected 200", g.paddle.CenterX())
	}
}

func TestDeterminism(t *testing.T) {
	script := func(g *Game) {
		step(g, core.ActionConfirm)
		for i := 1; i < 600; i++ {
			switch {
			case i == 10:
				step(g, core.ActionLaunch)
			case i%5 < 3:
				step(g, core.ActionRight)
			default:
				step(g, core.ActionLeft)
			}
		}
	}

	g1 := newTestGame(12345)
	g2 := newTestGame(12345)
	script(g1)
	script(g2)

	s1, s2 := g1.Snapshot(), g2.Snapshot()

	if s1.Score != s2.Score || s1.Lives != s2.Lives || s1.Level != s2.Level || s1.Tick != s2.Tick {
		t.Errorf("session state diverged: %+v vs %+v", s1, s2)
	}
	if len(s1.Balls) != len(s2.Balls) || len(s1.Blocks) != len(s2.Blocks) || len(s1.Bonuses) != len(s2.Bonuses) {
		t.Fatal("entity counts diverged")
	}
	for i := range s1.Balls {
		if s1.Balls[i] != s2.Balls[i] {
			t.Errorf("ball %d diverged: %+v vs %+v", i, s1.Balls[i], s2.Balls[i])
		}
	}
	if s1.Paddle != s2.Paddle {
		t.Errorf("paddle diverged: %+v vs %+v", s1.Paddle, s2.Paddle)
	}
}

func TestBlockCountMonotonicWithinLevel(t *testing.T) {
	g := newTestGame(99)
	step(g, core.ActionConfirm)
	step(g, core.ActionLaunch)

	prev := len(g.blocks)
	level := g.Level()
	for i := 0; i < 2000 && g.Phase() == PhasePlaying; i++ {
		step(g)
		if g.Level() != level {
			level = g.Level()
			prev = len(g.blocks)
			continue
		}
		if len(g.blocks) > prev {
			t.Fatalf("tick %d: block count grew from %d to %d within a level", i, prev, len(g.blocks))
		}
		prev = len(g.blocks)
	}
}
