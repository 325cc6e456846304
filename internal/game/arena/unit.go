package arena

import (
	"cmp"
	"math"

	"github.com/udisondev/skirmish/internal/game/effect"
	"github.com/udisondev/skirmish/internal/game/signal"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// healBelow is the HP ratio under which allies are worth a heal.
const healBelow = 0.9

// stopShort keeps a chasing unit slightly inside its reach.
const stopShort = 0.9

// Unit is one fighter: a character, its status effects and its skill
// slots, plus the controller state that picks what to cast.
type Unit struct {
	arena     *Arena
	char      *model.Character
	effects   *effect.Registry
	skills    *skill.Scheduler
	archetype string

	threat    *ThreatList
	target    *Unit
	intention Intention
	report    UnitReport
	subs      signal.Group
}

// Character implements skill.Target.
func (u *Unit) Character() *model.Character { return u.char }

// Effects implements skill.Target.
func (u *Unit) Effects() *effect.Registry { return u.effects }

func (u *Unit) ID() uint32               { return u.char.ID() }
func (u *Unit) Team() int                { return u.char.Team() }
func (u *Unit) Archetype() string        { return u.archetype }
func (u *Unit) Skills() *skill.Scheduler { return u.skills }
func (u *Unit) Threat() *ThreatList      { return u.threat }
func (u *Unit) Intention() Intention     { return u.intention }
func (u *Unit) Alive() bool              { return !u.char.IsDead() }
func (u *Unit) Location() model.Location { return u.char.Location() }

// Report returns the unit's running totals.
func (u *Unit) Report() UnitReport {
	r := u.report
	r.ID = u.ID()
	r.Name = u.char.Name()
	r.Archetype = u.archetype
	r.Team = u.Team()
	r.HP = u.char.CurrentHP()
	r.Survived = u.Alive()
	return r
}

func (u *Unit) close() {
	u.subs.Close()
	u.effects.ClearAllEffects()
	u.char.Close()
}

func (u *Unit) onDeath() {
	n := u.skills.InterruptAll(false)
	u.intention = IntentionDead
	u.target = nil
	u.threat.Clear()
	u.arena.Died.Emit(u)
	u.arena.log.Debug("unit died",
		"unit", u.ID(),
		"archetype", u.archetype,
		"interrupted", n)
}

// think runs the unit's controller for one frame: pick a foe by threat or
// distance, fire the first usable skill that has a sensible aim, otherwise
// walk into reach.
func (u *Unit) think(dt float64) {
	if !u.Alive() {
		u.intention = IntentionDead
		return
	}
	if u.effects.Stunned() {
		u.intention = IntentionIdle
		return
	}

	u.target = u.pickTarget()

	if u.casting() {
		u.intention = IntentionCast
		return
	}
	if u.tryCast() {
		u.intention = IntentionCast
		return
	}

	if u.target == nil {
		u.intention = IntentionIdle
		return
	}
	reach := u.engageReach()
	dist := u.Location().Distance(u.target.Location())
	if dist <= reach || u.effects.Rooted() {
		u.intention = IntentionEngage
		return
	}
	u.moveToward(u.target.Location(), dist-reach*stopShort, dt)
	u.intention = IntentionChase
}

func (u *Unit) casting() bool {
	for i := range u.skills.SlotCount() {
		if u.skills.State(i) == skill.StateCasting {
			return true
		}
	}
	return false
}

func (u *Unit) tryCast() bool {
	for i := range u.skills.SlotCount() {
		if !u.skills.CanUse(i) {
			continue
		}
		aim, ok := u.aimFor(u.skills.Definition(i))
		if !ok {
			continue
		}
		if u.skills.Use(i, aim) {
			u.report.Casts++
			return true
		}
	}
	return false
}

// aimFor returns where def should be aimed, or false if casting it now
// would be wasted.
func (u *Unit) aimFor(def *skill.Definition) (model.Location, bool) {
	switch def.Affects {
	case skill.AffectsSelf:
		// Self buffs wait for a fight to be in reach.
		if u.target == nil {
			return model.Location{}, false
		}
		if u.Location().Distance(u.target.Location()) > u.engageReach()+1 {
			return model.Location{}, false
		}
		return u.Location(), true

	case skill.AffectsAllied:
		ally := u.woundedAlly(reachOf(def))
		if ally == nil {
			return model.Location{}, false
		}
		if def.Targeting.Range <= 0 {
			return u.Location(), true
		}
		return ally.Location(), true

	default:
		if u.target == nil {
			return model.Location{}, false
		}
		if u.Location().Distance(u.target.Location()) > reachOf(def) {
			return model.Location{}, false
		}
		if def.Targeting.Range <= 0 {
			return u.Location(), true
		}
		return u.target.Location(), true
	}
}

// pickTarget prefers the living foe that dealt the most damage, then the
// nearest living foe.
func (u *Unit) pickTarget() *Unit {
	if id := u.threat.Top(func(id uint32) bool {
		v := u.arena.unit(id)
		return v != nil && v.Alive() && v.Team() != u.Team()
	}); id != 0 {
		return u.arena.unit(id)
	}

	var (
		best     *Unit
		bestDist float64
	)
	for _, v := range u.arena.units {
		if !v.Alive() || v.Team() == u.Team() {
			continue
		}
		d := u.Location().DistanceSquared(v.Location())
		if best == nil || d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// woundedAlly returns the living teammate (self included) with the lowest
// HP ratio below healBelow within reach, or nil.
func (u *Unit) woundedAlly(reach float64) *Unit {
	var best *Unit
	for _, v := range u.arena.units {
		if !v.Alive() || v.Team() != u.Team() {
			continue
		}
		ratio := v.char.HPRatio()
		if ratio >= healBelow {
			continue
		}
		if u.Location().Distance(v.Location()) > reach {
			continue
		}
		if best == nil || cmp.Less(ratio, best.char.HPRatio()) {
			best = v
		}
	}
	return best
}

// engageReach is the shortest reach among the unit's hostile skills, so
// that standing there puts every one of them in range.
func (u *Unit) engageReach() float64 {
	reach := math.Inf(1)
	for i := range u.skills.SlotCount() {
		def := u.skills.Definition(i)
		if def == nil || def.Affects != skill.AffectsHostile {
			continue
		}
		reach = min(reach, reachOf(def))
	}
	if math.IsInf(reach, 1) {
		return 1
	}
	return reach
}

func (u *Unit) moveToward(dest model.Location, distance, dt float64) {
	speed := u.char.Stats().Value(stat.MoveSpeed)
	if speed <= 0 || distance <= 0 {
		return
	}
	step := min(speed*dt, distance)
	dir := dest.Sub(u.Location()).Normalized()
	u.char.SetLocation(u.Location().Add(dir.Scale(step)))
}

// reachOf is how far from the caster a skill can touch a target.
func reachOf(def *skill.Definition) float64 {
	return def.Targeting.Range + def.Targeting.Radius
}
