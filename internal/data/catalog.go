// Package data loads the authored combat catalog: effect and skill
// definitions, talents, unit archetypes and arena scenarios.
package data

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/game/effect"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/game/stat"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

var (
	ErrUnknownEffect    = errors.New("unknown effect")
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrUnknownTalent    = errors.New("unknown talent")
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrUnknownScenario  = errors.New("unknown scenario")
	ErrDuplicateID      = errors.New("duplicate id")
)

// EnergySpec seeds the account of every skill slot of an archetype.
type EnergySpec struct {
	Capacity int     `yaml:"capacity"`
	Initial  int     `yaml:"initial"`
	Regen    float64 `yaml:"regen"`
}

// Archetype is a unit template: base stats, energy and loadout.
type Archetype struct {
	ID      string
	Name    string
	Stats   stat.Template
	Energy  EnergySpec
	Skills  []string
	Talents []string
}

// Scenario lists the archetypes fielded by each team.
type Scenario struct {
	ID    string
	Teams [][]string
}

// Catalog is the validated, immutable set of definitions.
type Catalog struct {
	effects    map[string]effect.Definition
	skills     map[string]*skill.Definition
	talents    map[string]*skill.Talent
	archetypes map[string]*Archetype
	scenarios  map[string]*Scenario
}

type catalogFile struct {
	Effects []struct {
		ID        string            `yaml:"id"`
		Kind      string            `yaml:"kind"`
		Duration  float64           `yaml:"duration"`
		Permanent bool              `yaml:"permanent"`
		Stackable bool              `yaml:"stackable"`
		Params    map[string]string `yaml:"params"`
	} `yaml:"effects"`

	Skills []struct {
		ID             string   `yaml:"id"`
		Name           string   `yaml:"name"`
		Cooldown       float64  `yaml:"cooldown"`
		EnergyCost     int      `yaml:"energy_cost"`
		ConsumesEnergy bool     `yaml:"consumes_energy"`
		DetectionDelay float64  `yaml:"detection_delay"`
		Affects        string   `yaml:"affects"`
		Effects        []string `yaml:"effects"`
		Targeting      struct {
			Range    float64 `yaml:"range"`
			Radius   float64 `yaml:"radius"`
			MaxCount int     `yaml:"max_count"`
		} `yaml:"targeting"`
	} `yaml:"skills"`

	Talents []struct {
		ID                 string  `yaml:"id"`
		RangeBonus         float64 `yaml:"range_bonus"`
		RadiusBonus        float64 `yaml:"radius_bonus"`
		ExtraTargets       int     `yaml:"extra_targets"`
		CostMultiplier     float64 `yaml:"cost_multiplier"`
		CostFlat           int     `yaml:"cost_flat"`
		CooldownMultiplier float64 `yaml:"cooldown_multiplier"`
	} `yaml:"talents"`

	Archetypes []struct {
		ID      string             `yaml:"id"`
		Name    string             `yaml:"name"`
		Stats   map[string]float64 `yaml:"stats"`
		Energy  EnergySpec         `yaml:"energy"`
		Skills  []string           `yaml:"skills"`
		Talents []string           `yaml:"talents"`
	} `yaml:"archetypes"`

	Scenarios []struct {
		ID    string     `yaml:"id"`
		Teams [][]string `yaml:"teams"`
	} `yaml:"scenarios"`
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(embeddedCatalog))
})

// DefaultCatalog returns the embedded catalog, parsed once.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// LoadCatalogFile reads a catalog from path. An empty path yields the
// embedded catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadCatalog parses and validates a catalog. Every reference between
// sections must resolve and every effect kind must be a built-in one.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		effects:    make(map[string]effect.Definition, len(file.Effects)),
		skills:     make(map[string]*skill.Definition, len(file.Skills)),
		talents:    make(map[string]*skill.Talent, len(file.Talents)),
		archetypes: make(map[string]*Archetype, len(file.Archetypes)),
		scenarios:  make(map[string]*Scenario, len(file.Scenarios)),
	}

	kinds := effect.NewFactory(nil).Kinds()
	for _, e := range file.Effects {
		if _, dup := c.effects[e.ID]; dup || e.ID == "" {
			return nil, fmt.Errorf("effect %q: %w", e.ID, ErrDuplicateID)
		}
		if !slices.Contains(kinds, e.Kind) {
			return nil, fmt.Errorf("effect %q: %w: %s", e.ID, effect.ErrUnknownKind, e.Kind)
		}
		c.effects[e.ID] = effect.Definition{
			ID:        e.ID,
			Kind:      e.Kind,
			Duration:  e.Duration,
			Permanent: e.Permanent,
			Stackable: e.Stackable,
			Params:    e.Params,
		}
	}

	for _, s := range file.Skills {
		if _, dup := c.skills[s.ID]; dup || s.ID == "" {
			return nil, fmt.Errorf("skill %q: %w", s.ID, ErrDuplicateID)
		}
		affects, err := skill.ParseAffinity(s.Affects)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", s.ID, err)
		}
		def := &skill.Definition{
			ID:             s.ID,
			Name:           s.Name,
			Cooldown:       s.Cooldown,
			EnergyCost:     s.EnergyCost,
			ConsumesEnergy: s.ConsumesEnergy,
			DetectionDelay: s.DetectionDelay,
			Affects:        affects,
			Targeting: skill.TargetingConfig{
				Range:    s.Targeting.Range,
				Radius:   s.Targeting.Radius,
				MaxCount: s.Targeting.MaxCount,
			},
		}
		for _, ref := range s.Effects {
			e, ok := c.effects[ref]
			if !ok {
				return nil, fmt.Errorf("skill %q: %w: %s", s.ID, ErrUnknownEffect, ref)
			}
			def.Effects = append(def.Effects, e)
		}
		c.skills[s.ID] = def
	}

	for _, t := range file.Talents {
		if _, dup := c.talents[t.ID]; dup || t.ID == "" {
			return nil, fmt.Errorf("talent %q: %w", t.ID, ErrDuplicateID)
		}
		c.talents[t.ID] = &skill.Talent{
			ID:                 t.ID,
			RangeBonus:         t.RangeBonus,
			RadiusBonus:        t.RadiusBonus,
			ExtraTargets:       t.ExtraTargets,
			CostMultiplier:     t.CostMultiplier,
			CostFlat:           t.CostFlat,
			CooldownMultiplier: t.CooldownMultiplier,
		}
	}

	for _, a := range file.Archetypes {
		if _, dup := c.archetypes[a.ID]; dup || a.ID == "" {
			return nil, fmt.Errorf("archetype %q: %w", a.ID, ErrDuplicateID)
		}
		for _, ref := range a.Skills {
			if _, ok := c.skills[ref]; !ok {
				return nil, fmt.Errorf("archetype %q: %w: %s", a.ID, ErrUnknownSkill, ref)
			}
		}
		for _, ref := range a.Talents {
			if _, ok := c.talents[ref]; !ok {
				return nil, fmt.Errorf("archetype %q: %w: %s", a.ID, ErrUnknownTalent, ref)
			}
		}
		tmpl := make(stat.Template, len(a.Stats))
		for name, v := range a.Stats {
			tmpl[stat.Name(name)] = v
		}
		c.archetypes[a.ID] = &Archetype{
			ID:      a.ID,
			Name:    a.Name,
			Stats:   tmpl,
			Energy:  a.Energy,
			Skills:  slices.Clone(a.Skills),
			Talents: slices.Clone(a.Talents),
		}
	}

	for _, s := range file.Scenarios {
		if _, dup := c.scenarios[s.ID]; dup || s.ID == "" {
			return nil, fmt.Errorf("scenario %q: %w", s.ID, ErrDuplicateID)
		}
		for _, team := range s.Teams {
			for _, ref := range team {
				if _, ok := c.archetypes[ref]; !ok {
					return nil, fmt.Errorf("scenario %q: %w: %s", s.ID, ErrUnknownArchetype, ref)
				}
			}
		}
		c.scenarios[s.ID] = &Scenario{ID: s.ID, Teams: s.Teams}
	}

	slog.Debug("loaded catalog",
		"effects", len(c.effects),
		"skills", len(c.skills),
		"talents", len(c.talents),
		"archetypes", len(c.archetypes),
		"scenarios", len(c.scenarios))

	return c, nil
}

// Effect returns the effect definition with the given id.
func (c *Catalog) Effect(id string) (effect.Definition, error) {
	e, ok := c.effects[id]
	if !ok {
		return effect.Definition{}, fmt.Errorf("%w: %s", ErrUnknownEffect, id)
	}
	return e, nil
}

// Skill returns the skill definition with the given id.
func (c *Catalog) Skill(id string) (*skill.Definition, error) {
	s, ok := c.skills[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, id)
	}
	return s, nil
}

// Talent returns the talent with the given id.
func (c *Catalog) Talent(id string) (*skill.Talent, error) {
	t, ok := c.talents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTalent, id)
	}
	return t, nil
}

// Archetype returns the archetype with the given id.
func (c *Catalog) Archetype(id string) (*Archetype, error) {
	a, ok := c.archetypes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, id)
	}
	return a, nil
}

// Scenario returns the scenario with the given id.
func (c *Catalog) Scenario(id string) (*Scenario, error) {
	s, ok := c.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, id)
	}
	return s, nil
}

func (c *Catalog) EffectIDs() []string    { return slices.Sorted(maps.Keys(c.effects)) }
func (c *Catalog) SkillIDs() []string     { return slices.Sorted(maps.Keys(c.skills)) }
func (c *Catalog) TalentIDs() []string    { return slices.Sorted(maps.Keys(c.talents)) }
func (c *Catalog) ArchetypeIDs() []string { return slices.Sorted(maps.Keys(c.archetypes)) }
func (c *Catalog) ScenarioIDs() []string  { return slices.Sorted(maps.Keys(c.scenarios)) }
