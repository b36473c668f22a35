package game

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
)

// bonusHalfSize is the nominal half-extent of a falling pickup, used for the
// paddle catch test.
const bonusHalfSize = 6.0

// EffectManager owns falling bonuses and the per-kind effect countdowns.
// Each timed kind has at most one active instance; re-triggering restarts
// its countdown rather than stacking. Countdowns are simulation ticks
// (converted from wall-clock durations at the configured tick rate), so
// expiry happens deterministically inside Step, never from an async timer.
type EffectManager struct {
	cfg      config.PowerUps
	tickRate int
	rng      *RNG

	bonuses   []*Bonus
	remaining map[BonusKind]int
}

// NewEffectManager creates a manager with the given seed.
func NewEffectManager(cfg config.PowerUps, tickRate int, seed int64) *EffectManager {
	return &EffectManager{
		cfg:       cfg,
		tickRate:  tickRate,
		rng:       NewRNG(seed),
		bonuses:   make([]*Bonus, 0, 4),
		remaining: make(map[BonusKind]int),
	}
}

// Reset drops all falling bonuses and cancels every countdown.
// The RNG is left untouched so a session keeps one random sequence.
func (m *EffectManager) Reset() {
	m.bonuses = m.bonuses[:0]
	for k := range m.remaining {
		delete(m.remaining, k)
	}
}

// Bonuses returns the falling pickups currently in play.
func (m *EffectManager) Bonuses() []*Bonus {
	return m.bonuses
}

// Active reports whether a timed effect is currently running.
func (m *EffectManager) Active(kind BonusKind) bool {
	return m.remaining[kind] > 0
}

// Remaining returns the ticks left for a timed effect, 0 if inactive.
func (m *EffectManager) Remaining(kind BonusKind) int {
	return m.remaining[kind]
}

// durationTicks converts a kind's configured duration to ticks.
func (m *EffectManager) durationTicks(kind BonusKind) int {
	var ms int
	switch kind {
	case BonusSpeed:
		ms = m.cfg.DurationSpeedMs
	case BonusWide:
		ms = m.cfg.DurationWideMs
	default:
		return 0
	}
	return ms * m.tickRate / 1000
}

// StartTimer starts or restarts the countdown for a timed kind and reports
// whether the effect was already active. Callers use the return to keep
// re-application idempotent (no compounding of the speed multiplier).
func (m *EffectManager) StartTimer(kind BonusKind) (wasActive bool) {
	wasActive = m.remaining[kind] > 0
	m.remaining[kind] = m.durationTicks(kind)
	return wasActive
}

// TickTimers decrements every active countdown by one tick and returns the
// kinds that expired this tick.
func (m *EffectManager) TickTimers() []BonusKind {
	var expired []BonusKind
	for kind, left := range m.remaining {
		left--
		if left <= 0 {
			delete(m.remaining, kind)
			expired = append(expired, kind)
		} else {
			m.remaining[kind] = left
		}
	}
	return expired
}

// TrySpawn rolls the weighted bonus spawn for a destroyed block at (x, y).
// The roll is an ordered cumulative-threshold draw: the first kind whose
// cumulative probability exceeds the draw wins; if none does, no bonus
// spawns. Returns the spawned bonus or nil.
func (m *EffectManager) TrySpawn(x, y float64) *Bonus {
	draw := m.rng.Float64()

	cumulative := 0.0
	order := []struct {
		kind   BonusKind
		chance float64
	}{
		{BonusSpeed, m.cfg.ChanceSpeed},
		{BonusWide, m.cfg.ChanceWide},
		{BonusMulti, m.cfg.ChanceMulti},
	}

	for _, entry := range order {
		cumulative += entry.chance
		if draw < cumulative {
			bonus := &Bonus{
				Kind: entry.kind,
				X:    x,
				Y:    y,
				VY:   m.cfg.FallSpeed,
			}
			m.bonuses = append(m.bonuses, bonus)
			return bonus
		}
	}
	return nil
}

// UpdateBonuses advances every falling bonus one tick. A bonus whose lower
// edge passes the paddle's top edge while horizontally within the paddle
// span is consumed and returned for activation; one that leaves the field
// bottom is silently discarded; the rest persist.
func (m *EffectManager) UpdateBonuses(paddle *Paddle) []BonusKind {
	var caught []BonusKind

	kept := m.bonuses[:0]
	for _, b := range m.bonuses {
		b.Move()

		onPaddle := b.Y+bonusHalfSize >= paddle.Y &&
			b.X >= paddle.X && b.X <= paddle.X+paddle.Width
		if onPaddle {
			caught = append(caught, b.Kind)
			continue
		}
		if b.Y-bonusHalfSize > FieldHeight {
			continue
		}
		kept = append(kept, b)
	}
	m.bonuses = kept

	return caught
}
