package skill

import (
	"fmt"
	"math"

	"github.com/udisondev/skirmish/internal/game/effect"
)

// Definition is the immutable template of a skill. Shared between every
// slot that equips it.
type Definition struct {
	ID             string
	Name           string
	Cooldown       float64 // seconds
	EnergyCost     int
	ConsumesEnergy bool
	DetectionDelay float64 // seconds between use and target acquisition
	Affects        Affinity
	Targeting      TargetingConfig
	Effects        []effect.Definition
}

// Affinity says whom a skill is meant to land on. Acquirers and filters
// read it from the cast context.
type Affinity uint8

const (
	AffectsHostile Affinity = iota
	AffectsAllied
	AffectsSelf
)

func (a Affinity) String() string {
	switch a {
	case AffectsHostile:
		return "hostile"
	case AffectsAllied:
		return "allied"
	case AffectsSelf:
		return "self"
	default:
		return "unknown"
	}
}

// ParseAffinity maps a catalog value to an Affinity. Empty means hostile.
func ParseAffinity(s string) (Affinity, error) {
	switch s {
	case "", "hostile", "enemy":
		return AffectsHostile, nil
	case "allied", "ally":
		return AffectsAllied, nil
	case "self":
		return AffectsSelf, nil
	default:
		return AffectsHostile, fmt.Errorf("unknown affinity %q", s)
	}
}

// TargetingConfig is the mutable targeting record a cast starts from.
// Cast modifiers may widen or narrow it before acquisition.
type TargetingConfig struct {
	Range    float64 // max distance from caster to aim point
	Radius   float64 // area around the aim point
	MaxCount int     // 0 means unlimited
}

// EnergyCostConfig is the mutable cost record of a cast.
// The charged amount is round(Base*Multiplier)+Flat, never negative.
type EnergyCostConfig struct {
	Base       int
	Multiplier float64
	Flat       int
}

// Cost returns the post-modifier cost.
func (c EnergyCostConfig) Cost() int {
	return max(0, int(math.Round(float64(c.Base)*c.Multiplier))+c.Flat)
}
