package effect

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// controlEffect holds one crowd-control flag on its owner while active.
// Stun, Silence and Root share it.
type controlEffect struct {
	Base
	flag Flag
}

func (e *controlEffect) OnApply(r *Registry) {
	r.Hold(e.flag)
	slog.Debug("control applied", "flag", e.flag, "effect", e.ID(), "target", r.ownerID())
}

func (e *controlEffect) OnRemove(r *Registry) {
	r.Release(e.flag)
	slog.Debug("control removed", "flag", e.flag, "effect", e.ID(), "target", r.ownerID())
}

// NewStunEffect disables movement, attacks and casting for the duration.
// No params needed.
func NewStunEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	return &controlEffect{Base: NewBase(def, caster), flag: FlagStunned}
}
