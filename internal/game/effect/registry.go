package effect

import (
	"log/slog"
	"slices"

	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// Flag is a crowd-control state owned by the registry.
type Flag int8

const (
	FlagStunned Flag = iota
	FlagSilenced
	FlagRooted
	flagCount
)

func (f Flag) String() string {
	switch f {
	case FlagStunned:
		return "stunned"
	case FlagSilenced:
		return "silenced"
	case FlagRooted:
		return "rooted"
	default:
		return "unknown"
	}
}

// Registry tracks the active status effects of one entity.
// Implements model.DamageHooks for its owner.
//
// Mutation requested while Tick is iterating (for example an OnTick that
// adds or removes another effect) is queued and flushed after the pass:
// removals first, then additions. A registry is owned by a single
// simulation goroutine and does not lock.
type Registry struct {
	owner *model.Character
	live  []Instance

	ticking       bool
	pendingAdd    []Instance
	pendingRemove []Instance

	holds [flagCount]int
}

// NewRegistry creates an empty registry for owner and binds it as the
// owner's damage-hook chain.
func NewRegistry(owner *model.Character) *Registry {
	r := &Registry{
		owner: owner,
		live:  make([]Instance, 0, 8),
	}
	if owner != nil {
		owner.BindHooks(r)
	}
	return r
}

// Owner returns the entity this registry belongs to.
func (r *Registry) Owner() *model.Character {
	if r == nil {
		return nil
	}
	return r.owner
}

// AddEffect attaches inst.
//
// Instant effects run OnApply and OnRemove immediately and are never stored.
// A non-stackable effect whose id is already active refreshes the existing
// instance's timer and is discarded. An expired instance not yet removed by
// Tick is replaced rather than refreshed. During Tick the call is queued.
func (r *Registry) AddEffect(inst Instance) {
	if r == nil || inst == nil {
		return
	}
	if r.ticking {
		r.pendingAdd = append(r.pendingAdd, inst)
		return
	}
	r.addNow(inst)
}

// RemoveEffect detaches inst, calling its OnRemove. Unknown instances are
// ignored. During Tick the call is queued.
func (r *Registry) RemoveEffect(inst Instance) {
	if r == nil || inst == nil {
		return
	}
	if r.ticking {
		if i := slices.Index(r.pendingAdd, inst); i >= 0 {
			r.pendingAdd = slices.Delete(r.pendingAdd, i, i+1)
			return
		}
		r.queueRemove(inst)
		return
	}
	r.removeNow(inst)
}

// RemoveEffectsByID detaches every live instance with the given id.
// During Tick the matching instances are queued; instances still waiting
// in the add queue are kept, so remove-then-re-add within one pass leaves
// the new instance active.
func (r *Registry) RemoveEffectsByID(id string) {
	if r == nil {
		return
	}
	var matched []Instance
	for _, inst := range r.live {
		if inst.ID() == id {
			matched = append(matched, inst)
		}
	}
	for _, inst := range matched {
		if r.ticking {
			r.queueRemove(inst)
		} else {
			r.removeNow(inst)
		}
	}
}

// Tick advances every live effect by dt seconds.
// Effects are visited back-to-front; expired ones are removed once the pass
// finishes, then effects queued during the pass are added.
func (r *Registry) Tick(dt float64) {
	if r == nil {
		return
	}
	r.ticking = true
	for i := len(r.live) - 1; i >= 0; i-- {
		inst := r.live[i]
		if slices.Contains(r.pendingRemove, inst) {
			continue
		}
		if !inst.Expired() {
			inst.OnTick(r, dt)
			inst.Advance(dt)
		}
		if inst.Expired() {
			r.queueRemove(inst)
		}
	}
	r.ticking = false
	r.flush()
}

// ClearAllEffects removes every effect immediately, calling OnRemove on
// each. Queued additions are dropped.
func (r *Registry) ClearAllEffects() {
	if r == nil {
		return
	}
	live := r.live
	r.live = make([]Instance, 0, cap(live))
	r.pendingAdd = nil
	r.pendingRemove = nil
	for _, inst := range live {
		inst.OnRemove(r)
	}
}

// Active returns a copy of the live effects in insertion order.
func (r *Registry) Active() []Instance {
	if r == nil {
		return nil
	}
	return slices.Clone(r.live)
}

// Count returns the number of live effects.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return len(r.live)
}

// Find returns the first live effect with the given id, or nil.
func (r *Registry) Find(id string) Instance {
	if r == nil {
		return nil
	}
	for _, inst := range r.live {
		if inst.ID() == id {
			return inst
		}
	}
	return nil
}

// Has reports whether an effect with the given id is live.
func (r *Registry) Has(id string) bool {
	return r.Find(id) != nil
}

// Hold raises a control flag. Every Hold must be paired with a Release.
func (r *Registry) Hold(f Flag) {
	if r == nil || f < 0 || f >= flagCount {
		return
	}
	r.holds[f]++
}

// Release drops one hold of a control flag.
func (r *Registry) Release(f Flag) {
	if r == nil || f < 0 || f >= flagCount || r.holds[f] == 0 {
		return
	}
	r.holds[f]--
}

// Is reports whether the flag is held by at least one effect.
func (r *Registry) Is(f Flag) bool {
	if r == nil || f < 0 || f >= flagCount {
		return false
	}
	return r.holds[f] > 0
}

func (r *Registry) Stunned() bool  { return r.Is(FlagStunned) }
func (r *Registry) Silenced() bool { return r.Is(FlagSilenced) }
func (r *Registry) Rooted() bool   { return r.Is(FlagRooted) }

// ModifyOutgoingDamage folds v through every live effect in insertion order.
func (r *Registry) ModifyOutgoingDamage(v float64) float64 {
	if r == nil {
		return v
	}
	for _, inst := range r.live {
		if inst.Expired() {
			continue
		}
		if m, ok := inst.(OutgoingDamageModifier); ok {
			v = m.ModifyOutgoingDamage(r, v)
		}
	}
	return v
}

// ModifyIncomingDamage folds v through every live effect in insertion order.
func (r *Registry) ModifyIncomingDamage(v float64) float64 {
	if r == nil {
		return v
	}
	for _, inst := range r.live {
		if inst.Expired() {
			continue
		}
		if m, ok := inst.(IncomingDamageModifier); ok {
			v = m.ModifyIncomingDamage(r, v)
		}
	}
	return v
}

func (r *Registry) addNow(inst Instance) {
	if inst.Expired() {
		inst.OnApply(r)
		inst.OnRemove(r)
		return
	}

	if !inst.Stackable() {
		if existing := r.findActive(inst.ID()); existing != nil {
			existing.Refresh(inst.Remaining())
			slog.Debug("effect refreshed",
				"effect", inst.ID(),
				"remaining", inst.Remaining(),
				"owner", r.ownerID())
			return
		}
	}

	r.dropSpent(inst.ID())
	r.live = append(r.live, inst)
	inst.OnApply(r)
	slog.Debug("effect applied",
		"effect", inst.ID(),
		"remaining", inst.Remaining(),
		"owner", r.ownerID())
}

// findActive is Find without instances that expired since the last tick.
func (r *Registry) findActive(id string) Instance {
	for _, inst := range r.live {
		if inst.ID() == id && !inst.Expired() {
			return inst
		}
	}
	return nil
}

// dropSpent removes expired instances of id so a newcomer replaces them
// instead of sitting next to them until the next tick.
func (r *Registry) dropSpent(id string) {
	var spent []Instance
	for _, inst := range r.live {
		if inst.ID() == id && inst.Expired() {
			spent = append(spent, inst)
		}
	}
	for _, inst := range spent {
		r.removeNow(inst)
	}
}

func (r *Registry) removeNow(inst Instance) {
	i := slices.Index(r.live, inst)
	if i < 0 {
		return
	}
	r.live = slices.Delete(r.live, i, i+1)
	inst.OnRemove(r)
	slog.Debug("effect removed", "effect", inst.ID(), "owner", r.ownerID())
}

func (r *Registry) queueRemove(inst Instance) {
	if slices.Contains(r.pendingRemove, inst) {
		return
	}
	r.pendingRemove = append(r.pendingRemove, inst)
}

func (r *Registry) flush() {
	removes := r.pendingRemove
	r.pendingRemove = nil
	for _, inst := range removes {
		r.removeNow(inst)
	}

	adds := r.pendingAdd
	r.pendingAdd = nil
	for _, inst := range adds {
		r.addNow(inst)
	}
}

func (r *Registry) ownerStats() *stat.Sheet {
	if r == nil || r.owner == nil {
		return nil
	}
	return r.owner.Stats()
}

func (r *Registry) ownerID() uint32 {
	if r.owner == nil {
		return 0
	}
	return r.owner.ID()
}
