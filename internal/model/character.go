package model

import (
	"math"

	"github.com/udisondev/skirmish/internal/game/signal"
	"github.com/udisondev/skirmish/internal/game/stat"
)

// Health is the payload of Character.HealthChanged.
type Health struct {
	Current int
	Max     int
}

// DamageHooks folds a damage value through an entity's active effects.
// Bound by the entity's effect registry at construction.
type DamageHooks interface {
	ModifyIncomingDamage(v float64) float64
	ModifyOutgoingDamage(v float64) float64
}

// Character is a living combat entity: stats, health and the damage-hook
// chain of its effects.
//
// A Character is owned by exactly one simulation goroutine. None of its
// methods lock.
type Character struct {
	id       uint32
	name     string
	team     int
	location Location

	stats     *stat.Sheet
	currentHP int
	dead      bool
	hooks     DamageHooks
	subs      signal.Group

	HealthChanged signal.Signal[Health]
	Died          signal.Signal[*Character]
}

// NewCharacter creates a character from a stat template.
// Current HP starts at MaxHP.
func NewCharacter(id uint32, name string, team int, tmpl stat.Template) *Character {
	c := &Character{
		id:    id,
		name:  name,
		team:  team,
		stats: stat.NewSheet(tmpl),
	}
	c.stats.Ensure(stat.MaxHP, 1)
	c.currentHP = c.MaxHP()
	c.subs.Add(c.stats.Changed.Subscribe(func(ch stat.Change) {
		if ch.Name == stat.MaxHP {
			c.onMaxHPChanged()
		}
	}))
	return c
}

// ID returns the character's identifier.
func (c *Character) ID() uint32 { return c.id }

// Name returns the display name.
func (c *Character) Name() string { return c.name }

// Team returns the faction index used by hostility filters.
func (c *Character) Team() int { return c.team }

// Location returns the current position.
func (c *Character) Location() Location { return c.location }

// SetLocation moves the character.
func (c *Character) SetLocation(loc Location) { c.location = loc }

// Stats returns the character's stat sheet.
func (c *Character) Stats() *stat.Sheet { return c.stats }

// CurrentHP returns the current hit points.
func (c *Character) CurrentHP() int { return c.currentHP }

// MaxHP returns the MaxHP stat rounded to an int, never below 1.
func (c *Character) MaxHP() int {
	return max(int(math.Round(c.stats.Value(stat.MaxHP))), 1)
}

// HPRatio returns current/max HP in [0, 1].
func (c *Character) HPRatio() float64 {
	return float64(c.currentHP) / float64(c.MaxHP())
}

// IsDead reports whether the character has died and not been revived.
func (c *Character) IsDead() bool { return c.dead }

// Hooks returns the bound damage-hook chain, or nil.
func (c *Character) Hooks() DamageHooks { return c.hooks }

// BindHooks installs the damage-hook chain. Called once by the owner's
// effect registry.
func (c *Character) BindHooks(h DamageHooks) { c.hooks = h }

// ApplyDamage subtracts n hit points, clamping to [0, MaxHP].
// Returns true if this call killed the character. Died fires exactly once
// per life.
func (c *Character) ApplyDamage(n int) bool {
	if c.dead || n <= 0 {
		return false
	}
	c.currentHP = min(max(c.currentHP-n, 0), c.MaxHP())
	c.emitHealth()
	if c.currentHP > 0 {
		return false
	}
	c.dead = true
	c.Died.Emit(c)
	return true
}

// RestoreHP adds n hit points, clamped to MaxHP.
// No-op on a dead character or for n <= 0. Returns the amount restored.
func (c *Character) RestoreHP(n int) int {
	if c.dead || n <= 0 {
		return 0
	}
	before := c.currentHP
	c.currentHP = min(c.currentHP+n, c.MaxHP())
	if c.currentHP != before {
		c.emitHealth()
	}
	return c.currentHP - before
}

// Revive brings a dead character back with hp hit points (at least 1).
func (c *Character) Revive(hp int) {
	if !c.dead {
		return
	}
	c.dead = false
	c.currentHP = min(max(hp, 1), c.MaxHP())
	c.emitHealth()
}

// Close detaches every observer. Call on despawn.
func (c *Character) Close() {
	c.subs.Close()
	c.stats.Close()
	c.HealthChanged.Clear()
	c.Died.Clear()
}

func (c *Character) onMaxHPChanged() {
	maxHP := c.MaxHP()
	if c.currentHP > maxHP {
		c.currentHP = maxHP
	}
	c.emitHealth()
}

func (c *Character) emitHealth() {
	c.HealthChanged.Emit(Health{Current: c.currentHP, Max: c.MaxHP()})
}
