package stat

import (
	"maps"
	"slices"

	"github.com/udisondev/skirmish/internal/game/signal"
)

// Name identifies a stat on a sheet.
type Name string

const (
	MaxHP          Name = "max_hp"
	Armor          Name = "armor"
	Dodge          Name = "dodge"
	AttackPower    Name = "attack_power"
	MoveSpeed      Name = "move_speed"
	CooldownRate   Name = "cooldown_rate"
	EnergyCostRate Name = "energy_cost_rate"
)

// Template is the base-value seed a sheet is created from at spawn.
type Template map[Name]float64

// Change is the payload of Sheet.Changed.
type Change struct {
	Name  Name
	Value float64
}

// Sheet is the set of stats belonging to one entity.
type Sheet struct {
	stats map[Name]*Stat
	subs  signal.Group

	// Changed fires whenever any member stat changes.
	Changed signal.Signal[Change]
}

// NewSheet creates a sheet seeded from tmpl.
func NewSheet(tmpl Template) *Sheet {
	sh := &Sheet{stats: make(map[Name]*Stat, len(tmpl))}
	for _, name := range slices.Sorted(maps.Keys(tmpl)) {
		sh.Ensure(name, tmpl[name])
	}
	return sh
}

// Stat returns the named stat or nil.
func (sh *Sheet) Stat(name Name) *Stat {
	if sh == nil {
		return nil
	}
	return sh.stats[name]
}

// Ensure returns the named stat, creating it with base if absent.
func (sh *Sheet) Ensure(name Name, base float64) *Stat {
	if s, ok := sh.stats[name]; ok {
		return s
	}
	s := New(base)
	sh.stats[name] = s
	sh.subs.Add(s.Changed.Subscribe(func(v float64) {
		sh.Changed.Emit(Change{Name: name, Value: v})
	}))
	return s
}

// Value returns the composed value of the named stat, or 0 if absent.
func (sh *Sheet) Value(name Name) float64 {
	s := sh.Stat(name)
	if s == nil {
		return 0
	}
	return s.Value()
}

// AddModifier adds m to the named stat, creating it at base 0 if needed.
func (sh *Sheet) AddModifier(name Name, m Modifier) {
	if sh == nil {
		return
	}
	sh.Ensure(name, 0).AddModifier(m)
}

// RemoveModifier removes m from the named stat. Unknown stats are ignored.
func (sh *Sheet) RemoveModifier(name Name, m Modifier) bool {
	s := sh.Stat(name)
	if s == nil {
		return false
	}
	return s.RemoveModifier(m)
}

// RemoveAllFromSource strips src's modifiers from every stat.
func (sh *Sheet) RemoveAllFromSource(src Source) int {
	if sh == nil {
		return 0
	}
	total := 0
	for _, name := range sh.Names() {
		total += sh.stats[name].RemoveAllModifiersFromSource(src)
	}
	return total
}

// Names returns stat names in sorted order.
func (sh *Sheet) Names() []Name {
	if sh == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(sh.stats))
}

// Close detaches the sheet from its member stats.
func (sh *Sheet) Close() {
	sh.subs.Close()
	sh.Changed.Clear()
}
