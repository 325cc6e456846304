package skill

//go:generate mockgen -destination=mock/mock_capability.go -package=skillmock github.com/udisondev/skirmish/internal/game/skill TargetAcquirer,TargetFilter,ResourceAccount

import (
	"github.com/udisondev/skirmish/internal/game/effect"
	"github.com/udisondev/skirmish/internal/model"
)

// Target is an entity a cast can land on.
type Target interface {
	Character() *model.Character
	Effects() *effect.Registry
}

// TargetAcquirer picks candidate targets for a cast. The result is
// recomputed for every cast.
type TargetAcquirer interface {
	Acquire(ctx *TargetContext) []Target
}

// TargetFilter rejects candidates. Filters are chained with logical AND.
type TargetFilter interface {
	IsValid(ctx *TargetContext, t Target) bool
}

// FilterFunc adapts a function to TargetFilter.
type FilterFunc func(ctx *TargetContext, t Target) bool

func (f FilterFunc) IsValid(ctx *TargetContext, t Target) bool { return f(ctx, t) }

// EffectFactory builds fresh effect instances from definitions.
// Implemented by effect.Factory.
type EffectFactory interface {
	CreateInstance(def effect.Definition, caster *model.Character) (effect.Instance, error)
}

// ResourceAccount is the energy store slots charge against.
// Implemented by energy.Ledger.
type ResourceAccount interface {
	TryConsume(id string, cost int) bool
	Add(id string, amount int)
	CurrentValue(id string) int
}

// CapacityProvider is implemented by accounts that know their capacity;
// it lets the scheduler report normalized energy.
type CapacityProvider interface {
	Capacity(id string) int
}

// CastModifier adjusts the targeting and cost records of every cast,
// in registration order.
type CastModifier interface {
	ModifyTargeting(cfg *TargetingConfig)
	ModifyEnergyCost(cfg *EnergyCostConfig)
}

// CooldownModifier is optionally implemented by cast modifiers that also
// change the effective cooldown.
type CooldownModifier interface {
	ModifyCooldown(cooldown float64) float64
}
