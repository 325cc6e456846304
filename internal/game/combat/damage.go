package combat

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

const (
	// DefaultArmorConstant is K in the mitigation curve armor/(armor+K):
	// armor equal to K halves incoming damage.
	DefaultArmorConstant = 100.0

	// DefaultMinDamage is the floor applied to every hit that lands.
	DefaultMinDamage = 1
)

// Roller draws uniform floats in [0, 1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Resolver turns damage and heal intents into results against a target.
// It holds configuration and an RNG but no per-fight state.
type Resolver struct {
	rng           Roller
	armorConstant float64
	minDamage     int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRoller sets the RNG used for dodge rolls.
func WithRoller(r Roller) Option {
	return func(res *Resolver) {
		if r != nil {
			res.rng = r
		}
	}
}

// WithSeed seeds a PCG generator for reproducible fights.
func WithSeed(seed uint64) Option {
	return func(res *Resolver) {
		res.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithArmorConstant overrides K in the armor curve. Non-positive values are
// ignored.
func WithArmorConstant(k float64) Option {
	return func(res *Resolver) {
		if k > 0 {
			res.armorConstant = k
		}
	}
}

// WithMinDamage overrides the damage floor. Values below 1 are ignored.
func WithMinDamage(n int) Option {
	return func(res *Resolver) {
		if n >= 1 {
			res.minDamage = n
		}
	}
}

// NewResolver creates a Resolver. Without options it rolls dodges with a
// randomly seeded generator and uses K=100, floor=1.
func NewResolver(opts ...Option) *Resolver {
	res := &Resolver{
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		armorConstant: DefaultArmorConstant,
		minDamage:     DefaultMinDamage,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// MitigateArmor applies the diminishing-returns armor curve:
// amount × (1 − armor/(armor+k)). Armor <= 0 leaves amount unchanged.
func MitigateArmor(amount, armor, k float64) float64 {
	if armor <= 0 {
		return amount
	}
	return amount * (1 - armor/(armor+k))
}

// Resolve applies info to target.
//
// Pipeline: dead check → dodge roll → armor → incoming effect hooks →
// floor(round) → health. True damage skips dodge, armor and hooks.
func (r *Resolver) Resolve(target *model.Character, info model.DamageInfo) model.DamageResult {
	if target == nil || target.IsDead() {
		return model.DamageResult{}
	}

	damage := info.Amount
	if !info.IsTrueDamage {
		if r.rollDodge(target.Stats().Value(stat.Dodge)) {
			slog.Debug("damage dodged", "target", target.ID(), "amount", info.Amount)
			return model.DamageResult{IsDodged: true}
		}
		damage = MitigateArmor(damage, target.Stats().Value(stat.Armor), r.armorConstant)
		if hooks := target.Hooks(); hooks != nil {
			damage = hooks.ModifyIncomingDamage(damage)
		}
	}

	final := r.floor(damage)
	killed := target.ApplyDamage(final)

	slog.Debug("damage resolved",
		"target", target.ID(),
		"amount", info.Amount,
		"final", final,
		"hp", target.CurrentHP(),
		"killed", killed)

	return model.DamageResult{FinalDamage: final, IsKilled: killed}
}

// Heal restores amount HP to target. No-op for dead targets or amount <= 0.
// Returns the HP actually restored.
func (r *Resolver) Heal(target *model.Character, amount float64) int {
	if target == nil || target.IsDead() || amount <= 0 {
		return 0
	}
	return target.RestoreHP(int(math.Round(amount)))
}

// Outgoing scales amount by the attacker's AttackPower percentage and folds
// it through the attacker's outgoing effect hooks.
// AttackPower is read as a bonus ratio: 0.25 means +25%.
func (r *Resolver) Outgoing(attacker *model.Character, amount float64) float64 {
	if attacker == nil {
		return amount
	}
	amount *= 1 + attacker.Stats().Value(stat.AttackPower)
	if hooks := attacker.Hooks(); hooks != nil {
		amount = hooks.ModifyOutgoingDamage(amount)
	}
	return max(amount, 0)
}

func (r *Resolver) rollDodge(dodge float64) bool {
	if dodge <= 0 {
		return false
	}
	return r.rng.Float64() < dodge
}

func (r *Resolver) floor(damage float64) int {
	if math.IsNaN(damage) {
		return r.minDamage
	}
	return max(r.minDamage, int(math.Round(damage)))
}
