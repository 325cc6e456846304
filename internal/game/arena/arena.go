// Package arena runs team fights between catalog archetypes on top of the
// combat core.
//
// An Arena is a fixed-step simulation owned by one goroutine: every frame
// advances the clock, regenerates energy, ticks status effects, resumes
// delayed casts and lets each unit's controller act. Parallel runs use
// separate arenas.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/effect"
	"github.com/udisondev/skirmish/internal/game/energy"
	"github.com/udisondev/skirmish/internal/game/signal"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// Config tunes one arena.
type Config struct {
	TickRate      int     // frames per simulated second
	MaxDuration   float64 // seconds before the fight is called a draw
	Seed          uint64
	ArmorConstant float64
	MinDamage     int
	Spacing       float64 // distance between team lines
}

// DefaultConfig returns the settings used when a field is left zero.
func DefaultConfig() Config {
	return Config{
		TickRate:      30,
		MaxDuration:   120,
		Seed:          1,
		ArmorConstant: combat.DefaultArmorConstant,
		MinDamage:     combat.DefaultMinDamage,
		Spacing:       12,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = def.MaxDuration
	}
	if c.ArmorConstant <= 0 {
		c.ArmorConstant = def.ArmorConstant
	}
	if c.MinDamage < 1 {
		c.MinDamage = def.MinDamage
	}
	if c.Spacing <= 0 {
		c.Spacing = def.Spacing
	}
	return c
}

// Arena is one fight.
type Arena struct {
	cfg       Config
	scenario  string
	maxFrames int

	clock    *skill.ManualClock
	ledger   *energy.Ledger
	resolver *combat.Resolver

	units  []*Unit
	byID   map[uint32]*Unit
	owners map[string]*Unit // energy account -> unit

	frame        int
	regenerating bool
	subs         signal.Group
	log          *slog.Logger

	// Died fires when a unit dies, after its casts were interrupted.
	Died signal.Signal[*Unit]
}

// AccountID names the energy account backing one skill slot of a unit.
func AccountID(unitID uint32, slot int) string {
	return strconv.FormatUint(uint64(unitID), 10) + "/" + strconv.Itoa(slot)
}

// New builds the arena for scenarioID. Teams are lined up Spacing apart
// along the x axis, their members two units apart along y.
func New(cat *data.Catalog, scenarioID string, cfg Config) (*Arena, error) {
	sc, err := cat.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	resolver := combat.NewResolver(
		combat.WithSeed(cfg.Seed),
		combat.WithArmorConstant(cfg.ArmorConstant),
		combat.WithMinDamage(cfg.MinDamage),
	)
	a := &Arena{
		cfg:       cfg,
		scenario:  sc.ID,
		maxFrames: int(math.Ceil(cfg.MaxDuration * float64(cfg.TickRate))),
		clock:     skill.NewManualClock(0),
		ledger:    energy.NewLedger(),
		resolver:  resolver,
		byID:      make(map[uint32]*Unit),
		owners:    make(map[string]*Unit),
		log:       slog.With("scenario", sc.ID, "seed", cfg.Seed),
	}
	a.subs.Add(a.ledger.Changed.Subscribe(a.onEnergy))

	id := uint32(1)
	for team, members := range sc.Teams {
		for i, archID := range members {
			arch, err := cat.Archetype(archID)
			if err != nil {
				return nil, err
			}
			u, err := a.spawn(cat, id, team, arch)
			if err != nil {
				return nil, fmt.Errorf("spawning %s for team %d: %w", archID, team, err)
			}
			offset := (float64(i) - float64(len(members)-1)/2) * 2
			u.char.SetLocation(model.NewLocation(float64(team)*cfg.Spacing, offset))
			id++
		}
	}

	a.log.Debug("arena ready", "units", len(a.units), "max_frames", a.maxFrames)
	return a, nil
}

func (a *Arena) spawn(cat *data.Catalog, id uint32, team int, arch *data.Archetype) (*Unit, error) {
	char := model.NewCharacter(id, fmt.Sprintf("%s#%d", arch.Name, id), team, arch.Stats)
	u := &Unit{
		arena:     a,
		char:      char,
		effects:   effect.NewRegistry(char),
		archetype: arch.ID,
		threat:    NewThreatList(),
	}
	acquirer := RadiusAcquirer{Candidates: a.targets, Prefilter: MatchesAffinity}
	factory := effect.NewFactory(&creditingResolver{unit: u, arena: a, res: a.resolver})
	u.skills = skill.NewScheduler(u, len(arch.Skills), skill.Deps{
		Clock:    a.clock,
		Acquirer: acquirer,
		Filters:  DefaultFilters(),
		Factory:  factory,
		Account:  a.ledger,
	})

	for _, tid := range arch.Talents {
		t, err := cat.Talent(tid)
		if err != nil {
			return nil, err
		}
		u.skills.AddCastModifier(t)
	}
	for i, sid := range arch.Skills {
		def, err := cat.Skill(sid)
		if err != nil {
			return nil, err
		}
		acc := AccountID(id, i)
		a.owners[acc] = u
		a.ledger.Open(acc, arch.Energy.Capacity, arch.Energy.Initial)
		a.ledger.SetRegen(acc, arch.Energy.Regen)
		u.skills.Equip(i, def, acc)
	}

	u.subs.Add(char.Died.Subscribe(func(*model.Character) { u.onDeath() }))

	a.units = append(a.units, u)
	a.byID[id] = u
	return u, nil
}

// Step advances the fight by dt seconds. No-op once the fight is over.
func (a *Arena) Step(dt float64) {
	if dt <= 0 || a.Done() {
		return
	}
	a.frame++
	a.clock.Advance(dt)

	a.regenerating = true
	a.ledger.Regen(dt)
	a.regenerating = false

	for _, u := range a.units {
		if u.Alive() {
			u.effects.Tick(dt)
		}
	}
	for _, u := range a.units {
		u.skills.Tick()
	}
	for _, u := range a.units {
		if !u.Alive() && u.effects.Count() > 0 {
			u.effects.ClearAllEffects()
		}
		u.think(dt)
	}
}

// Run steps the fight at the configured tick rate until one team is left
// standing or time runs out.
func (a *Arena) Run(ctx context.Context) (Outcome, error) {
	dt := 1 / float64(a.cfg.TickRate)
	for !a.Done() {
		if a.frame%256 == 0 {
			if err := ctx.Err(); err != nil {
				return Outcome{}, fmt.Errorf("arena %s interrupted at frame %d: %w", a.scenario, a.frame, err)
			}
		}
		a.Step(dt)
	}

	out := a.Outcome()
	a.log.Info("fight finished",
		"winner", out.Winner,
		"duration", out.Duration,
		"frames", out.Frames)
	return out, nil
}

// Done reports whether at most one team has living units or the frame
// budget is spent.
func (a *Arena) Done() bool {
	return a.frame >= a.maxFrames || len(a.aliveTeams()) <= 1
}

// Outcome summarizes the fight so far.
func (a *Arena) Outcome() Outcome {
	out := Outcome{
		Scenario: a.scenario,
		Seed:     a.cfg.Seed,
		Winner:   Draw,
		Duration: a.clock.Now(),
		Frames:   a.frame,
		Units:    make([]UnitReport, 0, len(a.units)),
	}
	if teams := a.aliveTeams(); len(teams) == 1 {
		out.Winner = teams[0]
	}
	for _, u := range a.units {
		out.Units = append(out.Units, u.Report())
	}
	return out
}

// Units returns the fighters in spawn order.
func (a *Arena) Units() []*Unit { return a.units }

// Frame returns the number of frames stepped.
func (a *Arena) Frame() int { return a.frame }

// Now returns the simulated time in seconds.
func (a *Arena) Now() float64 { return a.clock.Now() }

// Ledger returns the energy accounts of every unit.
func (a *Arena) Ledger() *energy.Ledger { return a.ledger }

// Close detaches every observer the arena installed.
func (a *Arena) Close() {
	for _, u := range a.units {
		u.close()
	}
	a.subs.Close()
	a.Died.Clear()
}

func (a *Arena) unit(id uint32) *Unit { return a.byID[id] }

func (a *Arena) unitOf(c *model.Character) *Unit {
	if c == nil {
		return nil
	}
	return a.byID[c.ID()]
}

func (a *Arena) targets() []skill.Target {
	out := make([]skill.Target, len(a.units))
	for i, u := range a.units {
		out[i] = u
	}
	return out
}

func (a *Arena) aliveTeams() []int {
	var teams []int
	seen := make(map[int]bool)
	for _, u := range a.units {
		if u.Alive() && !seen[u.Team()] {
			seen[u.Team()] = true
			teams = append(teams, u.Team())
		}
	}
	return teams
}

// onEnergy forwards regeneration to the owning scheduler. Charges and
// refunds made by the scheduler itself are reported there already.
func (a *Arena) onEnergy(ch energy.Change) {
	if !a.regenerating {
		return
	}
	if u := a.owners[ch.ID]; u != nil {
		u.skills.NotifyAccount(ch.ID)
	}
}
