// Package effect holds the per-entity status-effect registry, the effect
// factory and the built-in effect kinds.
package effect

import (
	"github.com/google/uuid"

	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// Instant is the RemainingTime of an instant or explicitly expired effect.
const Instant = -1.0

// Instance is a live status effect attached to one registry.
//
// Lifecycle: created by a Factory → OnApply → zero or more OnTick → OnRemove.
// The registry advances the timer with Advance after every OnTick.
type Instance interface {
	// ID is the definition id; it drives de-duplication.
	ID() string
	// Handle is unique per instance and doubles as the stat modifier source.
	Handle() stat.Source
	Stackable() bool
	Remaining() float64
	Advance(dt float64)
	Refresh(remaining float64)
	Expire()
	Expired() bool

	OnApply(r *Registry)
	OnTick(r *Registry, dt float64)
	OnRemove(r *Registry)
}

// IncomingDamageModifier is implemented by effects that transform damage
// the owner receives.
type IncomingDamageModifier interface {
	ModifyIncomingDamage(r *Registry, v float64) float64
}

// OutgoingDamageModifier is implemented by effects that transform damage
// the owner deals.
type OutgoingDamageModifier interface {
	ModifyOutgoingDamage(r *Registry, v float64) float64
}

// Base carries the timer and identity shared by every effect kind.
// Embed it and override the lifecycle hooks that matter.
type Base struct {
	id        string
	handle    stat.Source
	stackable bool
	permanent bool
	remaining float64
	caster    *model.Character
}

// NewBase builds the shared state for an instance of def cast by caster.
// A non-permanent definition with no duration yields an instant effect.
func NewBase(def Definition, caster *model.Character) Base {
	remaining := def.Duration
	if remaining <= 0 && !def.Permanent {
		remaining = Instant
	}
	return Base{
		id:        def.ID,
		handle:    stat.Source(uuid.NewString()),
		stackable: def.Stackable,
		permanent: def.Permanent,
		remaining: remaining,
		caster:    caster,
	}
}

func (b *Base) ID() string               { return b.id }
func (b *Base) Handle() stat.Source      { return b.handle }
func (b *Base) Stackable() bool          { return b.stackable }
func (b *Base) Remaining() float64       { return b.remaining }
func (b *Base) Caster() *model.Character { return b.caster }

// Advance decrements the timer. Permanent effects never run down.
func (b *Base) Advance(dt float64) {
	if b.permanent || b.remaining <= 0 {
		return
	}
	b.remaining -= dt
}

// Refresh resets the timer.
func (b *Base) Refresh(remaining float64) {
	if b.permanent {
		return
	}
	b.remaining = remaining
}

// Expire marks the effect for removal on the next tick.
func (b *Base) Expire() {
	b.permanent = false
	b.remaining = Instant
}

// Expired reports whether the timer ran out or the effect was marked.
func (b *Base) Expired() bool {
	return !b.permanent && b.remaining <= 0
}

func (b *Base) OnApply(*Registry)         {}
func (b *Base) OnTick(*Registry, float64) {}
func (b *Base) OnRemove(*Registry)        {}
