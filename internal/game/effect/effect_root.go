package effect

import "github.com/udisondev/skirmish/internal/model"

// NewRootEffect blocks movement for the duration. Casting is still allowed.
func NewRootEffect(def Definition, caster *model.Character, _ Resolver) Instance {
	return &controlEffect{Base: NewBase(def, caster), flag: FlagRooted}
}
