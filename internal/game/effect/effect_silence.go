package effect

import "github.com/udisondev/skirmish/internal/model"

// NewSilenceEffect blocks skill casting for the duration.
func NewSilenceEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	return &controlEffect{Base: NewBase(def, caster), flag: FlagSilenced}
}
