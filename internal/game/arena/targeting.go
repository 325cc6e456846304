package arena

import (
	"cmp"
	"slices"

	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// RadiusAcquirer picks every candidate within Targeting.Radius of the aim
// point, nearest first, capped at Targeting.MaxCount.
//
// The aim point is pulled back to Targeting.Range from the caster; a zero
// range centers the area on the caster. Self-affinity casts acquire the
// caster alone. Candidates rejected by Prefilter never count toward the
// cap.
type RadiusAcquirer struct {
	Candidates func() []skill.Target
	Prefilter  skill.TargetFilter
}

func (r RadiusAcquirer) Acquire(ctx *skill.TargetContext) []skill.Target {
	if ctx.Affects == skill.AffectsSelf {
		if ctx.Caster == nil {
			return nil
		}
		return []skill.Target{ctx.Caster}
	}
	if r.Candidates == nil {
		return nil
	}

	center := ClampAim(ctx)
	reach := ctx.Targeting.Radius*ctx.Targeting.Radius + distEpsilon

	type candidate struct {
		t    skill.Target
		dist float64
	}
	var found []candidate
	for _, t := range r.Candidates() {
		c := t.Character()
		if c == nil {
			continue
		}
		d := c.Location().DistanceSquared(center)
		if d > reach {
			continue
		}
		if r.Prefilter != nil && !r.Prefilter.IsValid(ctx, t) {
			continue
		}
		found = append(found, candidate{t: t, dist: d})
	}
	slices.SortStableFunc(found, func(a, b candidate) int {
		return cmp.Compare(a.dist, b.dist)
	})
	if n := ctx.Targeting.MaxCount; n > 0 && len(found) > n {
		found = found[:n]
	}

	out := make([]skill.Target, len(found))
	for i, c := range found {
		out[i] = c.t
	}
	return out
}

// distEpsilon keeps units standing exactly on an area's edge inside it.
const distEpsilon = 1e-9

// ClampAim returns the effective center of ctx's area: the aim point
// limited to Targeting.Range from the caster, or the caster's own location
// when the range is zero.
func ClampAim(ctx *skill.TargetContext) model.Location {
	caster := ctx.CasterCharacter()
	if caster == nil {
		return ctx.AimPoint
	}
	origin := caster.Location()
	rng := ctx.Targeting.Range
	if rng <= 0 {
		return origin
	}
	offset := ctx.AimPoint.Sub(origin)
	if offset.Length() <= rng {
		return ctx.AimPoint
	}
	return origin.Add(offset.Normalized().Scale(rng))
}

// Alive rejects dead or detached targets.
var Alive = skill.FilterFunc(func(_ *skill.TargetContext, t skill.Target) bool {
	c := t.Character()
	return c != nil && !c.IsDead()
})

// MatchesAffinity keeps targets on the side the skill is meant for:
// other teams for hostile skills, the caster's team for allied ones and
// the caster itself for self skills.
var MatchesAffinity = skill.FilterFunc(func(ctx *skill.TargetContext, t skill.Target) bool {
	caster := ctx.CasterCharacter()
	c := t.Character()
	if caster == nil || c == nil {
		return false
	}
	switch ctx.Affects {
	case skill.AffectsHostile:
		return c.Team() != caster.Team()
	case skill.AffectsAllied:
		return c.Team() == caster.Team()
	case skill.AffectsSelf:
		return c == caster
	default:
		return false
	}
})

// DefaultFilters is the chain every arena unit casts with.
func DefaultFilters() []skill.TargetFilter {
	return []skill.TargetFilter{Alive, MatchesAffinity}
}
