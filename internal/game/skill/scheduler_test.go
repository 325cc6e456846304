package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/skirmish/internal/game/effect"
	"github.com/udisondev/skirmish/internal/game/energy"
	"github.com/udisondev/skirmish/internal/game/skill"
	skillmock "github.com/udisondev/skirmish/internal/game/skill/mock"
	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

type unit struct {
	char *model.Character
	reg  *effect.Registry
}

func (u *unit) Character() *model.Character { return u.char }
func (u *unit) Effects() *effect.Registry   { return u.reg }

func newUnit(t *testing.T, id uint32, tmpl stat.Template) *unit {
	t.Helper()
	if tmpl == nil {
		tmpl = stat.Template{stat.MaxHP: 100}
	}
	c := model.NewCharacter(id, "unit", int(id), tmpl)
	t.Cleanup(c.Close)
	return &unit{char: c, reg: effect.NewRegistry(c)}
}

var stunDef = effect.Definition{ID: "daze", Kind: effect.KindStun, Duration: 2}

func boltSkill() *skill.Definition {
	return &skill.Definition{
		ID:             "bolt",
		Name:           "Bolt",
		Cooldown:       2.0,
		EnergyCost:     3,
		ConsumesEnergy: true,
		DetectionDelay: 1.0,
		Targeting:      skill.TargetingConfig{Range: 10, Radius: 2, MaxCount: 1},
		Effects:        []effect.Definition{stunDef},
	}
}

type fixture struct {
	clock    *skill.ManualClock
	ledger   *energy.Ledger
	acquirer *skillmock.MockTargetAcquirer
	caster   *unit
	target   *unit
	sched    *skill.Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		clock:    skill.NewManualClock(10),
		ledger:   energy.NewLedger(),
		acquirer: skillmock.NewMockTargetAcquirer(ctrl),
		caster:   newUnit(t, 1, nil),
		target:   newUnit(t, 2, nil),
	}
	f.ledger.Open("slot0", 10, 10)
	f.sched = skill.NewScheduler(f.caster, 2, skill.Deps{
		Clock:    f.clock,
		Acquirer: f.acquirer,
		Factory:  effect.NewFactory(nil),
		Account:  f.ledger,
	})
	return f
}

func TestScheduler_CooldownWindow(t *testing.T) {
	f := newFixture(t)
	def := &skill.Definition{ID: "jab", Cooldown: 2.0, Effects: []effect.Definition{stunDef}}
	require.True(t, f.sched.Equip(0, def, "slot0"))
	f.acquirer.EXPECT().Acquire(gomock.Any()).Return([]skill.Target{f.target})

	require.True(t, f.sched.Use(0, f.target.char.Location()))
	assert.True(t, f.target.reg.Stunned(), "zero delay lands synchronously")

	f.clock.Set(11.0)
	assert.False(t, f.sched.CanUse(0))
	assert.Equal(t, skill.StateCooldown, f.sched.State(0))
	assert.InDelta(t, 1.0, f.sched.Remaining(0), 1e-9)
	assert.False(t, f.sched.Use(0, model.Location{}))

	f.clock.Set(12.0)
	assert.True(t, f.sched.CanUse(0))
	assert.Equal(t, skill.StateIdle, f.sched.State(0))
}

func TestScheduler_CooldownWindowToleratesFloatDrift(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(0.3)
	require.True(t, f.sched.Equip(0, &skill.Definition{ID: "jab", Cooldown: 2.0}, "slot0"))
	f.acquirer.EXPECT().Acquire(gomock.Any()).Return(nil)

	require.True(t, f.sched.Use(0, model.Location{}))
	f.clock.Set(2.3)
	assert.True(t, f.sched.CanUse(0))
}

func TestScheduler_DelayedCast(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))

	require.True(t, f.sched.Use(0, model.NewLocation(5, 0)))
	assert.Equal(t, skill.StateCasting, f.sched.State(0))
	assert.Equal(t, 7, f.ledger.CurrentValue("slot0"))
	cast := f.sched.InFlight(0)
	require.NotNil(t, cast)
	assert.NotEmpty(t, cast.ID)
	assert.Equal(t, skill.PhaseDetect, cast.Context.Phase)

	f.clock.Advance(0.5)
	f.sched.Tick()
	assert.False(t, f.target.reg.Stunned(), "still waiting on detection delay")

	f.acquirer.EXPECT().Acquire(cast.Context).Return([]skill.Target{f.target})
	f.clock.Advance(0.5)
	f.sched.Tick()

	assert.True(t, f.target.reg.Stunned())
	assert.Nil(t, f.sched.InFlight(0))
	assert.Equal(t, skill.PhaseDone, cast.Context.Phase)
	result, ok := cast.Context.Result()
	require.True(t, ok)
	assert.Len(t, result, 1)
	assert.Equal(t, skill.StateCooldown, f.sched.State(0))
}

func TestScheduler_RecastRefundsExactlyOnce(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	before := f.ledger.CurrentValue("slot0")

	require.True(t, f.sched.Use(0, model.Location{}))
	first := f.sched.InFlight(0)
	require.True(t, f.sched.Use(0, model.Location{}), "recast cancels the cast in flight")

	assert.True(t, first.Cancelled())
	assert.Equal(t, 3, before-f.ledger.CurrentValue("slot0"), "net delta is one cast")
	second := f.sched.InFlight(0)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	f.acquirer.EXPECT().Acquire(second.Context).Return(nil).Times(1)
	f.clock.Advance(1)
	f.sched.Tick()
}

func TestScheduler_RecastRefundWithMockAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	account := skillmock.NewMockResourceAccount(ctrl)
	acquirer := skillmock.NewMockTargetAcquirer(ctrl)
	caster := newUnit(t, 1, nil)
	sched := skill.NewScheduler(caster, 1, skill.Deps{
		Clock:    skill.NewManualClock(0),
		Acquirer: acquirer,
		Factory:  effect.NewFactory(nil),
		Account:  account,
	})

	account.EXPECT().CurrentValue("acc").Return(10).AnyTimes()
	gomock.InOrder(
		account.EXPECT().TryConsume("acc", 3).Return(true),
		account.EXPECT().Add("acc", 3),
		account.EXPECT().TryConsume("acc", 3).Return(true),
	)

	require.True(t, sched.Equip(0, boltSkill(), "acc"))
	require.True(t, sched.Use(0, model.Location{}))
	require.True(t, sched.Use(0, model.Location{}))
}

func TestScheduler_FailedChargeChangesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	account := skillmock.NewMockResourceAccount(ctrl)
	acquirer := skillmock.NewMockTargetAcquirer(ctrl) // no calls expected
	sched := skill.NewScheduler(newUnit(t, 1, nil), 1, skill.Deps{
		Clock:    skill.NewManualClock(0),
		Acquirer: acquirer,
		Factory:  effect.NewFactory(nil),
		Account:  account,
	})
	account.EXPECT().CurrentValue("acc").Return(5).AnyTimes()
	account.EXPECT().TryConsume("acc", 3).Return(false)

	used := 0
	sched.Used.Subscribe(func(int) { used++ })
	require.True(t, sched.Equip(0, boltSkill(), "acc"))

	assert.False(t, sched.Use(0, model.Location{}))
	assert.Zero(t, used)
	assert.Equal(t, skill.StateIdle, sched.State(0))
	assert.Zero(t, sched.Remaining(0))
}

func TestScheduler_InsufficientEnergy(t *testing.T) {
	f := newFixture(t)
	f.ledger.Open("slot0", 10, 2)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))

	assert.False(t, f.sched.CanUse(0))
	assert.False(t, f.sched.Use(0, model.Location{}))
	assert.Equal(t, 2, f.ledger.CurrentValue("slot0"))
}

func TestScheduler_EmptyTargetsKeepCharge(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	f.acquirer.EXPECT().Acquire(gomock.Any()).Return([]skill.Target{})

	require.True(t, f.sched.Use(0, model.Location{}))
	f.clock.Advance(1)
	f.sched.Tick()

	assert.Equal(t, 7, f.ledger.CurrentValue("slot0"), "no refund without cancellation")
	assert.Equal(t, skill.StateCooldown, f.sched.State(0))
}

// orderedModifier records the order modifiers run in.
type orderedModifier struct {
	name  string
	log   *[]string
	apply func(*skill.TargetingConfig, *skill.EnergyCostConfig)
}

func (m *orderedModifier) ModifyTargeting(cfg *skill.TargetingConfig) {
	*m.log = append(*m.log, m.name)
	m.apply(cfg, nil)
}

func (m *orderedModifier) ModifyEnergyCost(cfg *skill.EnergyCostConfig) {
	m.apply(nil, cfg)
}

func TestScheduler_ModifiersRunInRegistrationOrder(t *testing.T) {
	f := newFixture(t)
	var log []string
	f.sched.AddCastModifier(&orderedModifier{name: "double", log: &log,
		apply: func(tc *skill.TargetingConfig, ec *skill.EnergyCostConfig) {
			if tc != nil {
				tc.Range *= 2
			}
			if ec != nil {
				ec.Multiplier *= 2
			}
		}})
	f.sched.AddCastModifier(&orderedModifier{name: "plus", log: &log,
		apply: func(tc *skill.TargetingConfig, ec *skill.EnergyCostConfig) {
			if tc != nil {
				tc.Range++
			}
			if ec != nil {
				ec.Flat++
			}
		}})
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))

	var seen skill.TargetingConfig
	f.acquirer.EXPECT().Acquire(gomock.Any()).DoAndReturn(func(ctx *skill.TargetContext) []skill.Target {
		seen = ctx.Targeting
		return nil
	})

	require.True(t, f.sched.Use(0, model.Location{}))
	assert.Equal(t, 3, f.ledger.CurrentValue("slot0"), "post-modifier cost 3*2+1")

	f.clock.Advance(1)
	f.sched.Tick()
	assert.InDelta(t, 21, seen.Range, 1e-9, "(10*2)+1")
	assert.Equal(t, []string{"double", "plus"}, log[len(log)-2:])
}

func TestScheduler_FilterChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	other := newUnit(t, 3, nil)
	filter := skillmock.NewMockTargetFilter(ctrl)
	sched := skill.NewScheduler(f.caster, 1, skill.Deps{
		Clock:    f.clock,
		Acquirer: f.acquirer,
		Filters: []skill.TargetFilter{
			filter,
			skill.FilterFunc(func(_ *skill.TargetContext, t skill.Target) bool {
				return t.Character().ID() != 3
			}),
		},
		Factory: effect.NewFactory(nil),
		Account: f.ledger,
	})
	def := &skill.Definition{ID: "sweep", Effects: []effect.Definition{stunDef}}
	require.True(t, sched.Equip(0, def, "slot0"))

	f.acquirer.EXPECT().Acquire(gomock.Any()).Return([]skill.Target{f.caster, f.target, other})
	filter.EXPECT().IsValid(gomock.Any(), f.caster).Return(false)
	filter.EXPECT().IsValid(gomock.Any(), f.target).Return(true)
	filter.EXPECT().IsValid(gomock.Any(), other).Return(true)

	require.True(t, sched.Use(0, model.Location{}))

	assert.False(t, f.caster.reg.Stunned())
	assert.True(t, f.target.reg.Stunned())
	assert.False(t, other.reg.Stunned())
}

func TestScheduler_InterruptRefundsNominalCost(t *testing.T) {
	tests := []struct {
		name   string
		refund bool
		want   int
	}{
		{name: "refund nominal", refund: true, want: 10 - 6 + 3},
		{name: "no refund", refund: false, want: 10 - 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.sched.AddCastModifier(&skill.Talent{ID: "overcharge", CostMultiplier: 2})
			require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
			require.True(t, f.sched.Use(0, model.Location{}))
			require.Equal(t, 4, f.ledger.CurrentValue("slot0"))

			assert.True(t, f.sched.Interrupt(0, tt.refund))
			assert.Equal(t, tt.want, f.ledger.CurrentValue("slot0"))
			assert.Equal(t, skill.StateIdle, f.sched.State(0), "cancelled cast leaves the slot idle")
			assert.False(t, f.sched.Interrupt(0, tt.refund), "nothing left to interrupt")

			f.clock.Advance(5)
			f.sched.Tick() // acquirer must not be called
		})
	}
}

func TestScheduler_InterruptAll(t *testing.T) {
	f := newFixture(t)
	f.ledger.Open("slot1", 10, 10)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	require.True(t, f.sched.Equip(1, boltSkill(), "slot1"))
	require.True(t, f.sched.Use(0, model.Location{}))
	require.True(t, f.sched.Use(1, model.Location{}))

	assert.Equal(t, 2, f.sched.InterruptAll(true))
	assert.Equal(t, 10, f.ledger.CurrentValue("slot0"))
	assert.Equal(t, 10, f.ledger.CurrentValue("slot1"))
	assert.Zero(t, f.sched.InterruptAll(true))
}

func TestScheduler_EquipDuringCastRefunds(t *testing.T) {
	f := newFixture(t)
	var equipped, unequipped []skill.SlotEvent
	f.sched.Equipped.Subscribe(func(e skill.SlotEvent) { equipped = append(equipped, e) })
	f.sched.Unequipped.Subscribe(func(e skill.SlotEvent) { unequipped = append(unequipped, e) })

	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	require.True(t, f.sched.Use(0, model.Location{}))
	require.Equal(t, 7, f.ledger.CurrentValue("slot0"))

	require.True(t, f.sched.Equip(0, &skill.Definition{ID: "jab"}, "slot0"))
	assert.Equal(t, 10, f.ledger.CurrentValue("slot0"))
	assert.Nil(t, f.sched.InFlight(0))

	require.True(t, f.sched.Unequip(0))
	assert.False(t, f.sched.Unequip(0))
	assert.Nil(t, f.sched.Definition(0))

	assert.Equal(t, []skill.SlotEvent{{Slot: 0, SkillID: "bolt"}, {Slot: 0, SkillID: "jab"}}, equipped)
	assert.Equal(t, []skill.SlotEvent{{Slot: 0, SkillID: "bolt"}, {Slot: 0, SkillID: "jab"}}, unequipped)
}

func TestScheduler_CasterGating(t *testing.T) {
	tests := []struct {
		name  string
		setup func(u *unit)
	}{
		{name: "stunned", setup: func(u *unit) { u.reg.Hold(effect.FlagStunned) }},
		{name: "silenced", setup: func(u *unit) { u.reg.Hold(effect.FlagSilenced) }},
		{name: "dead", setup: func(u *unit) { u.char.ApplyDamage(1000) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
			tt.setup(f.caster)

			assert.False(t, f.sched.CanUse(0))
			assert.False(t, f.sched.Use(0, model.Location{}))
			assert.Equal(t, 10, f.ledger.CurrentValue("slot0"))
		})
	}
}

func TestScheduler_RootedCasterCanCast(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	f.caster.reg.Hold(effect.FlagRooted)

	assert.True(t, f.sched.CanUse(0))
}

func TestScheduler_CasterDiesDuringDelay(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	require.True(t, f.sched.Use(0, model.Location{}))

	f.caster.char.ApplyDamage(1000)
	f.clock.Advance(1)
	f.sched.Tick() // acquirer must not be called

	assert.Nil(t, f.sched.InFlight(0))
	assert.Equal(t, 7, f.ledger.CurrentValue("slot0"))
}

func TestScheduler_DegradesOnBadInput(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.sched.Equip(-1, boltSkill(), "slot0"))
	assert.False(t, f.sched.Equip(2, boltSkill(), "slot0"))
	assert.False(t, f.sched.Equip(0, nil, "slot0"))
	assert.False(t, f.sched.CanUse(0), "empty slot")
	assert.False(t, f.sched.Use(0, model.Location{}))
	assert.False(t, f.sched.Use(5, model.Location{}))
	assert.False(t, f.sched.Interrupt(9, true))
	assert.Equal(t, skill.StateIdle, f.sched.State(9))
	assert.Zero(t, f.sched.Remaining(9))
	assert.Nil(t, f.sched.InFlight(-1))

	bare := skill.NewScheduler(nil, 1, skill.Deps{})
	require.True(t, bare.Equip(0, &skill.Definition{ID: "jab"}, "x"))
	assert.True(t, bare.CanUse(0))
	assert.False(t, bare.Use(0, model.Location{}), "no acquirer or factory")

	require.True(t, bare.Equip(0, boltSkill(), "x"))
	assert.False(t, bare.CanUse(0), "energy skill without account")
}

func TestScheduler_UnknownEffectKindSkipped(t *testing.T) {
	f := newFixture(t)
	def := &skill.Definition{ID: "odd", Effects: []effect.Definition{
		{ID: "bogus", Kind: "Teleport", Duration: 1},
		stunDef,
	}}
	require.True(t, f.sched.Equip(0, def, "slot0"))
	f.acquirer.EXPECT().Acquire(gomock.Any()).Return([]skill.Target{f.target})

	require.True(t, f.sched.Use(0, model.Location{}))
	assert.True(t, f.target.reg.Stunned())
}

func TestScheduler_CooldownScaling(t *testing.T) {
	f := newFixture(t)
	f.caster.char.Stats().Ensure(stat.CooldownRate, 0.25)
	require.True(t, f.sched.Equip(0, &skill.Definition{ID: "jab", Cooldown: 4}, "slot0"))

	assert.InDelta(t, 3, f.sched.EffectiveCooldown(0), 1e-9)

	f.sched.AddCastModifier(&skill.Talent{ID: "haste", CooldownMultiplier: 0.5})
	assert.InDelta(t, 1.5, f.sched.EffectiveCooldown(0), 1e-9)
}

func TestScheduler_EnergyCostRate(t *testing.T) {
	f := newFixture(t)
	f.caster.char.Stats().Ensure(stat.EnergyCostRate, 0.5)
	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))

	require.True(t, f.sched.Use(0, model.Location{}))
	assert.Equal(t, 10-5, f.ledger.CurrentValue("slot0"), "round(3*1.5)")
}

func TestScheduler_EnergyChanged(t *testing.T) {
	f := newFixture(t)
	var events []skill.EnergyEvent
	f.sched.EnergyChanged.Subscribe(func(e skill.EnergyEvent) { events = append(events, e) })

	require.True(t, f.sched.Equip(0, boltSkill(), "slot0"))
	require.True(t, f.sched.Use(0, model.Location{}))
	f.ledger.Add("slot0", 1)
	f.sched.NotifyAccount("slot0")
	f.sched.NotifyAccount("other")

	require.Len(t, events, 3)
	assert.Equal(t, skill.EnergyEvent{Slot: 0, Current: 10, Normalized: 1}, events[0])
	assert.InDelta(t, 0.7, events[1].Normalized, 1e-9)
	assert.Equal(t, 8, events[2].Current)
}

func TestScheduler_UsedSignalAndSlots(t *testing.T) {
	f := newFixture(t)
	f.ledger.Open("slot1", 5, 5)
	var used []int
	f.sched.Used.Subscribe(func(i int) { used = append(used, i) })
	require.True(t, f.sched.Equip(1, boltSkill(), "slot1"))

	require.True(t, f.sched.Use(1, model.Location{}))

	assert.Equal(t, []int{1}, used)
	assert.Equal(t, []skill.SlotInfo{{Index: 1, SkillID: "bolt", AccountID: "slot1"}}, f.sched.Slots())
}

func TestScheduler_InterruptFromUsedHandler(t *testing.T) {
	f := newFixture(t)
	def := &skill.Definition{ID: "jab", EnergyCost: 2, ConsumesEnergy: true}
	require.True(t, f.sched.Equip(0, def, "slot0"))
	f.sched.Used.Subscribe(func(i int) { f.sched.Interrupt(i, true) })

	assert.True(t, f.sched.Use(0, model.Location{}))
	assert.Equal(t, 10, f.ledger.CurrentValue("slot0"), "cancelled before landing")
}

func TestTargetContext_ResultWriteOnce(t *testing.T) {
	ctx := &skill.TargetContext{}
	a := newUnit(t, 1, nil)

	_, ok := ctx.Result()
	assert.False(t, ok)
	assert.True(t, ctx.SetResult([]skill.Target{a}))
	assert.False(t, ctx.SetResult(nil))

	got, ok := ctx.Result()
	assert.True(t, ok)
	assert.Len(t, got, 1)
	assert.Nil(t, ctx.CasterCharacter())
}

func TestTalent(t *testing.T) {
	talent := &skill.Talent{RangeBonus: 2, RadiusBonus: -5, ExtraTargets: 2, CostFlat: -1}
	tc := skill.TargetingConfig{Range: 5, Radius: 3, MaxCount: 1}
	ec := skill.EnergyCostConfig{Base: 4, Multiplier: 1}

	talent.ModifyTargeting(&tc)
	talent.ModifyEnergyCost(&ec)

	assert.Equal(t, skill.TargetingConfig{Range: 7, Radius: 0, MaxCount: 3}, tc)
	assert.Equal(t, 3, ec.Cost())
	assert.InDelta(t, 4, talent.ModifyCooldown(4), 1e-9)

	unlimited := skill.TargetingConfig{MaxCount: 0}
	talent.ModifyTargeting(&unlimited)
	assert.Zero(t, unlimited.MaxCount, "unlimited stays unlimited")
}

func TestEnergyCostConfig_NeverNegative(t *testing.T) {
	assert.Zero(t, skill.EnergyCostConfig{Base: 2, Multiplier: 1, Flat: -10}.Cost())
}
