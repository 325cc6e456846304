// Package stat implements named numeric attributes with a modifier stack.
//
// A stat's value is always
//
//	(Base + ΣFlat) × (1 + ΣPercentAdd) × Π(1 + PercentMult)
//
// Within each group the operands are combined in sorted order, so the result
// does not depend on the order modifiers were added in.
package stat

import (
	"slices"

	"github.com/udisondev/skirmish/internal/game/signal"
)

// Stat is a base value plus an ordered modifier stack with a cached result.
// Owned by one entity; not safe for concurrent use.
type Stat struct {
	base      float64
	modifiers []Modifier
	value     float64
	dirty     bool

	// Changed fires after every mutation with the new value.
	Changed signal.Signal[float64]
}

// New creates a stat with the given base value and no modifiers.
func New(base float64) *Stat {
	return &Stat{base: base, value: base}
}

// BaseValue returns the unmodified value.
func (s *Stat) BaseValue() float64 {
	return s.base
}

// SetBaseValue replaces the base value.
func (s *Stat) SetBaseValue(v float64) {
	if s.base == v {
		return
	}
	s.base = v
	s.invalidate()
}

// AddModifier appends m to the stack.
func (s *Stat) AddModifier(m Modifier) {
	s.modifiers = append(s.modifiers, m)
	s.invalidate()
}

// RemoveModifier removes the first modifier equal to m.
// Returns false (and changes nothing) if no such modifier exists.
func (s *Stat) RemoveModifier(m Modifier) bool {
	i := slices.Index(s.modifiers, m)
	if i < 0 {
		return false
	}
	s.modifiers = slices.Delete(s.modifiers, i, i+1)
	s.invalidate()
	return true
}

// RemoveAllModifiersFromSource removes every modifier owned by src and
// returns how many were removed.
func (s *Stat) RemoveAllModifiersFromSource(src Source) int {
	before := len(s.modifiers)
	s.modifiers = slices.DeleteFunc(s.modifiers, func(m Modifier) bool {
		return m.Source == src
	})
	removed := before - len(s.modifiers)
	if removed > 0 {
		s.invalidate()
	}
	return removed
}

// ClearAllModifiers drops the whole stack.
func (s *Stat) ClearAllModifiers() {
	if len(s.modifiers) == 0 {
		return
	}
	s.modifiers = s.modifiers[:0]
	s.invalidate()
}

// Modifiers returns a copy of the modifier stack in insertion order.
func (s *Stat) Modifiers() []Modifier {
	return slices.Clone(s.modifiers)
}

// Value returns the composed value, recomputing it if the stack changed.
func (s *Stat) Value() float64 {
	if s.dirty {
		s.value = Compose(s.base, s.modifiers)
		s.dirty = false
	}
	return s.value
}

func (s *Stat) invalidate() {
	s.dirty = true
	s.Changed.Emit(s.Value())
}

// Compose evaluates base and mods with the fixed group order.
func Compose(base float64, mods []Modifier) float64 {
	var flats, adds, mults []float64
	for _, m := range mods {
		switch m.Kind {
		case Flat:
			flats = append(flats, m.Value)
		case PercentAdd:
			adds = append(adds, m.Value)
		case PercentMult:
			mults = append(mults, m.Value)
		}
	}
	slices.Sort(flats)
	slices.Sort(adds)
	slices.Sort(mults)

	flat := base
	for _, v := range flats {
		flat += v
	}
	pctAdd := 1.0
	for _, v := range adds {
		pctAdd += v
	}
	result := flat * pctAdd
	for _, v := range mults {
		result *= 1 + v
	}
	return result
}
