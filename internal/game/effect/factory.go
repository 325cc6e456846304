package effect

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

// ErrUnknownKind is returned by CreateInstance for an unregistered kind.
var ErrUnknownKind = errors.New("unknown effect kind")

// Built-in effect kinds.
const (
	KindStatModifier    = "StatModifier"
	KindConditionalStat = "ConditionalStat"
	KindDamageOverTime  = "DamageOverTime"
	KindHealOverTime    = "HealOverTime"
	KindStun            = "Stun"
	KindSilence         = "Silence"
	KindRoot            = "Root"
	KindDamageReduction = "DamageReduction"
	KindDamageAmplify   = "DamageAmplify"
	KindShield          = "Shield"
	KindInstantDamage   = "InstantDamage"
	KindInstantHeal     = "InstantHeal"
)

// Resolver is the damage pipeline effects call into.
// Implemented by combat.Resolver.
type Resolver interface {
	Resolve(target *model.Character, info model.DamageInfo) model.DamageResult
	Heal(target *model.Character, amount float64) int
	Outgoing(attacker *model.Character, amount float64) float64
}

// Constructor builds a fresh instance of def for caster (which may be nil).
type Constructor func(def Definition, caster *model.Character, res Resolver) Instance

// Factory turns definitions into live instances.
// The constructor table is filled at construction; Register adds kinds.
type Factory struct {
	resolver     Resolver
	constructors map[string]Constructor
}

// NewFactory creates a factory with every built-in kind registered.
// res may be nil, in which case damage and heal effects do nothing.
func NewFactory(res Resolver) *Factory {
	f := &Factory{
		resolver:     res,
		constructors: make(map[string]Constructor, 16),
	}
	f.Register(KindStatModifier, NewStatModifierEffect)
	f.Register(KindConditionalStat, NewConditionalStatEffect)
	f.Register(KindDamageOverTime, NewDamageOverTimeEffect)
	f.Register(KindHealOverTime, NewHealOverTimeEffect)
	f.Register(KindStun, NewStunEffect)
	f.Register(KindSilence, NewSilenceEffect)
	f.Register(KindRoot, NewRootEffect)
	f.Register(KindDamageReduction, NewDamageReductionEffect)
	f.Register(KindDamageAmplify, NewDamageAmplifyEffect)
	f.Register(KindShield, NewShieldEffect)
	f.Register(KindInstantDamage, NewInstantDamageEffect)
	f.Register(KindInstantHeal, NewInstantHealEffect)
	return f
}

// Register adds or replaces the constructor for kind.
func (f *Factory) Register(kind string, ctor Constructor) {
	f.constructors[kind] = ctor
}

// Kinds returns the registered kinds in sorted order.
func (f *Factory) Kinds() []string {
	return slices.Sorted(maps.Keys(f.constructors))
}

// CreateInstance builds a live instance of def. caster may be nil.
func (f *Factory) CreateInstance(def Definition, caster *model.Character) (Instance, error) {
	ctor, ok := f.constructors[def.Kind]
	if !ok {
		return nil, fmt.Errorf("effect %q: %w: %s", def.ID, ErrUnknownKind, def.Kind)
	}
	return ctor(def, caster, f.resolver), nil
}
