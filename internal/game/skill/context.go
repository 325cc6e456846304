package skill

import (
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

// Phase is the step of the cast sequence a context is in.
type Phase uint8

const (
	PhaseModify Phase = iota
	PhaseConsume
	PhaseDetect
	PhaseAcquire
	PhaseFilter
	PhaseApply
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseModify:
		return "modify"
	case PhaseConsume:
		return "consume"
	case PhaseDetect:
		return "detect"
	case PhaseAcquire:
		return "acquire"
	case PhaseFilter:
		return "filter"
	case PhaseApply:
		return "apply"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// TargetContext carries one cast through its phases.
// Acquirers and filters read it; the filtered target set is written once.
type TargetContext struct {
	Caster       Target
	Slot         int
	SkillID      string
	Affects      Affinity
	AimPoint     model.Location
	AimDirection model.Location // unit vector from caster to aim point
	Targeting    TargetingConfig
	EnergyCost   EnergyCostConfig
	Phase        Phase

	result    []Target
	resultSet bool
}

// SetResult stores the final target set. Returns false if one was
// already stored.
func (c *TargetContext) SetResult(targets []Target) bool {
	if c.resultSet {
		return false
	}
	c.result = slices.Clone(targets)
	c.resultSet = true
	return true
}

// Result returns the stored target set and whether it was set.
func (c *TargetContext) Result() ([]Target, bool) {
	return c.result, c.resultSet
}

// CasterCharacter returns the caster's character or nil.
func (c *TargetContext) CasterCharacter() *model.Character {
	if c == nil || c.Caster == nil {
		return nil
	}
	return c.Caster.Character()
}
