// Package skill implements per-actor skill slots and the cast sequence:
// cooldown and energy gating, cast modifiers, delayed target acquisition
// and effect application.
package skill

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/skirmish/internal/game/signal"
	"github.com/udisondev/skirmish/internal/game/stat"
	"github.com/udisondev/skirmish/internal/model"
)

// timeEpsilon absorbs float drift when comparing clock readings.
const timeEpsilon = 1e-9

// State is the cast state of a slot.
type State uint8

const (
	StateIdle State = iota
	StateCasting
	StateCooldown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCasting:
		return "casting"
	case StateCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// SlotEvent is the payload of Equipped and Unequipped.
type SlotEvent struct {
	Slot    int
	SkillID string
}

// EnergyEvent is the payload of EnergyChanged.
// Normalized is Current/Capacity when the account reports a capacity.
type EnergyEvent struct {
	Slot       int
	Current    int
	Normalized float64
}

// SlotInfo describes an equipped slot.
type SlotInfo struct {
	Index     int
	SkillID   string
	AccountID string
}

// Deps are the collaborators a scheduler is constructed with.
type Deps struct {
	Clock    Clock
	Acquirer TargetAcquirer
	Filters  []TargetFilter
	Factory  EffectFactory
	Account  ResourceAccount
}

// Cast is one in-flight skill use, suspended until its detection delay
// elapses. Cancelling it is synchronous.
type Cast struct {
	ID       string
	Slot     int
	Context  *TargetContext
	ResumeAt float64

	def       *Definition
	accountID string
	consumed  int
	cancelled bool

	prevLastUse float64
	prevUsed    bool
}

// Consumed returns the energy this cast charged.
func (c *Cast) Consumed() int { return c.consumed }

// Cancelled reports whether the cast was cancelled.
func (c *Cast) Cancelled() bool { return c.cancelled }

type slot struct {
	def       *Definition
	accountID string
	lastUse   float64
	used      bool
	cast      *Cast
}

// Scheduler owns the skill slots of one actor.
//
// Slot cycle: Idle → Casting → Cooldown → Idle. A cast in flight is
// cancelled by re-use, Equip, Unequip or Interrupt, which returns the slot
// to Idle and conditionally refunds energy. Failures degrade to false or
// no-op; nothing here returns an error.
type Scheduler struct {
	caster    Target
	clock     Clock
	acquirer  TargetAcquirer
	filters   []TargetFilter
	factory   EffectFactory
	account   ResourceAccount
	modifiers []CastModifier
	slots     []slot

	Used          signal.Signal[int]
	EnergyChanged signal.Signal[EnergyEvent]
	Equipped      signal.Signal[SlotEvent]
	Unequipped    signal.Signal[SlotEvent]
}

// NewScheduler creates a scheduler with slotCount empty slots for caster.
func NewScheduler(caster Target, slotCount int, deps Deps) *Scheduler {
	if deps.Clock == nil {
		slog.Warn("skill scheduler without clock, using manual clock")
		deps.Clock = NewManualClock(0)
	}
	return &Scheduler{
		caster:   caster,
		clock:    deps.Clock,
		acquirer: deps.Acquirer,
		filters:  slices.Clone(deps.Filters),
		factory:  deps.Factory,
		account:  deps.Account,
		slots:    make([]slot, max(slotCount, 0)),
	}
}

// SlotCount returns the number of slots.
func (s *Scheduler) SlotCount() int { return len(s.slots) }

// AddCastModifier appends m to the modifier chain.
func (s *Scheduler) AddCastModifier(m CastModifier) {
	if m != nil {
		s.modifiers = append(s.modifiers, m)
	}
}

// RemoveCastModifier drops m from the chain.
func (s *Scheduler) RemoveCastModifier(m CastModifier) bool {
	i := slices.Index(s.modifiers, m)
	if i < 0 {
		return false
	}
	s.modifiers = slices.Delete(s.modifiers, i, i+1)
	return true
}

// Equip puts def in slot i, drawing energy from accountID.
// A cast in flight on the slot is cancelled and its charge refunded.
func (s *Scheduler) Equip(i int, def *Definition, accountID string) bool {
	if !s.valid(i) || def == nil {
		slog.Warn("skill equip rejected", "slot", i, "slots", len(s.slots))
		return false
	}
	s.cancel(i, refundConsumed)

	sl := &s.slots[i]
	if sl.def != nil {
		s.Unequipped.Emit(SlotEvent{Slot: i, SkillID: sl.def.ID})
	}
	*sl = slot{def: def, accountID: accountID}

	s.Equipped.Emit(SlotEvent{Slot: i, SkillID: def.ID})
	s.emitEnergy(i)
	return true
}

// Unequip empties slot i, cancelling any cast in flight with a refund.
func (s *Scheduler) Unequip(i int) bool {
	if !s.valid(i) || s.slots[i].def == nil {
		return false
	}
	s.cancel(i, refundConsumed)

	id := s.slots[i].def.ID
	s.slots[i] = slot{}
	s.Unequipped.Emit(SlotEvent{Slot: i, SkillID: id})
	return true
}

// CanUse reports whether Use on slot i would start a cast.
// A cast already in flight is evaluated as if it had been cancelled.
func (s *Scheduler) CanUse(i int) bool {
	if !s.valid(i) || s.slots[i].def == nil {
		return false
	}
	if !s.casterReady() {
		return false
	}
	sl := &s.slots[i]
	if s.remaining(sl) > timeEpsilon {
		return false
	}
	if sl.def.ConsumesEnergy {
		if s.account == nil {
			return false
		}
		scratch := s.newContext(i, sl.def, model.Location{})
		s.applyModifiers(scratch)
		balance := s.account.CurrentValue(sl.accountID)
		if sl.cast != nil {
			balance += sl.cast.consumed
		}
		if balance < scratch.EnergyCost.Cost() {
			return false
		}
	}
	return true
}

// Use starts a cast of slot i aimed at aim.
//
// A cast in flight on the slot is cancelled first and its charge refunded.
// Energy is charged at the post-modifier cost; if the charge fails nothing
// changes. With a zero detection delay the cast completes before Use
// returns, otherwise it resumes from Tick.
func (s *Scheduler) Use(i int, aim model.Location) bool {
	if !s.valid(i) || s.slots[i].def == nil {
		return false
	}
	s.cancel(i, refundConsumed)

	if !s.CanUse(i) {
		return false
	}
	if s.acquirer == nil || s.factory == nil {
		slog.Warn("skill use without acquirer or factory", "slot", i)
		return false
	}

	sl := &s.slots[i]
	def := sl.def
	ctx := s.newContext(i, def, aim)
	s.applyModifiers(ctx)

	ctx.Phase = PhaseConsume
	consumed := 0
	if def.ConsumesEnergy {
		cost := ctx.EnergyCost.Cost()
		if !s.account.TryConsume(sl.accountID, cost) {
			slog.Debug("skill use: not enough energy", "skill", def.ID, "cost", cost)
			return false
		}
		consumed = cost
		if cost > 0 {
			s.emitEnergy(i)
		}
	}

	now := s.clock.Now()
	c := &Cast{
		ID:          uuid.NewString(),
		Slot:        i,
		Context:     ctx,
		ResumeAt:    now + max(def.DetectionDelay, 0),
		def:         def,
		accountID:   sl.accountID,
		consumed:    consumed,
		prevLastUse: sl.lastUse,
		prevUsed:    sl.used,
	}
	sl.lastUse, sl.used = now, true
	sl.cast = c
	ctx.Phase = PhaseDetect

	slog.Debug("skill used",
		"skill", def.ID,
		"slot", i,
		"cast", c.ID,
		"cost", consumed,
		"delay", def.DetectionDelay)
	s.Used.Emit(i)

	if !c.cancelled && def.DetectionDelay <= 0 {
		s.finish(i, c)
	}
	return true
}

// Tick resumes casts whose detection delay has elapsed.
func (s *Scheduler) Tick() {
	now := s.clock.Now()
	for i := range s.slots {
		c := s.slots[i].cast
		if c == nil || c.ResumeAt > now+timeEpsilon {
			continue
		}
		s.finish(i, c)
	}
}

// Interrupt cancels the cast in flight on slot i. With refund, the skill's
// nominal cost is returned if the cast charged anything.
func (s *Scheduler) Interrupt(i int, refund bool) bool {
	if !s.valid(i) {
		return false
	}
	if refund {
		return s.cancel(i, refundNominal)
	}
	return s.cancel(i, refundNone)
}

// InterruptAll cancels every cast in flight and returns how many it hit.
func (s *Scheduler) InterruptAll(refund bool) int {
	n := 0
	for i := range s.slots {
		if s.Interrupt(i, refund) {
			n++
		}
	}
	return n
}

// State returns the cast state of slot i. Empty slots are Idle.
func (s *Scheduler) State(i int) State {
	if !s.valid(i) {
		return StateIdle
	}
	sl := &s.slots[i]
	switch {
	case sl.cast != nil:
		return StateCasting
	case sl.def != nil && s.remaining(sl) > timeEpsilon:
		return StateCooldown
	default:
		return StateIdle
	}
}

// Remaining returns the cooldown left on slot i in seconds.
func (s *Scheduler) Remaining(i int) float64 {
	if !s.valid(i) || s.slots[i].def == nil {
		return 0
	}
	return s.remaining(&s.slots[i])
}

// EffectiveCooldown returns the cooldown of slot i after the caster's
// cooldown rate and every cooldown modifier.
func (s *Scheduler) EffectiveCooldown(i int) float64 {
	if !s.valid(i) || s.slots[i].def == nil {
		return 0
	}
	return s.effectiveCooldown(s.slots[i].def)
}

// Definition returns the skill in slot i, or nil.
func (s *Scheduler) Definition(i int) *Definition {
	if !s.valid(i) {
		return nil
	}
	return s.slots[i].def
}

// InFlight returns the cast in flight on slot i, or nil.
func (s *Scheduler) InFlight(i int) *Cast {
	if !s.valid(i) {
		return nil
	}
	return s.slots[i].cast
}

// Slots lists the equipped slots in index order.
func (s *Scheduler) Slots() []SlotInfo {
	var out []SlotInfo
	for i, sl := range s.slots {
		if sl.def == nil {
			continue
		}
		out = append(out, SlotInfo{Index: i, SkillID: sl.def.ID, AccountID: sl.accountID})
	}
	return out
}

// NotifyAccount re-emits EnergyChanged for every slot bound to accountID.
// The frame driver calls it when a balance changes outside the scheduler,
// e.g. on regeneration.
func (s *Scheduler) NotifyAccount(accountID string) {
	for i, sl := range s.slots {
		if sl.def != nil && sl.accountID == accountID {
			s.emitEnergy(i)
		}
	}
}

func (s *Scheduler) valid(i int) bool {
	return i >= 0 && i < len(s.slots)
}

func (s *Scheduler) casterReady() bool {
	if s.caster == nil {
		return true
	}
	if c := s.caster.Character(); c != nil && c.IsDead() {
		return false
	}
	reg := s.caster.Effects()
	return !reg.Stunned() && !reg.Silenced()
}

// remaining is measured from the last use that was not cancelled.
func (s *Scheduler) remaining(sl *slot) float64 {
	lastUse, used := sl.lastUse, sl.used
	if sl.cast != nil {
		lastUse, used = sl.cast.prevLastUse, sl.cast.prevUsed
	}
	if !used {
		return 0
	}
	return max(0, s.effectiveCooldown(sl.def)-(s.clock.Now()-lastUse))
}

func (s *Scheduler) effectiveCooldown(def *Definition) float64 {
	cd := def.Cooldown * max(0, 1-s.casterStat(stat.CooldownRate))
	for _, m := range s.modifiers {
		if cm, ok := m.(CooldownModifier); ok {
			cd = cm.ModifyCooldown(cd)
		}
	}
	return max(cd, 0)
}

func (s *Scheduler) casterStat(name stat.Name) float64 {
	if s.caster == nil {
		return 0
	}
	c := s.caster.Character()
	if c == nil {
		return 0
	}
	return c.Stats().Value(name)
}

func (s *Scheduler) newContext(i int, def *Definition, aim model.Location) *TargetContext {
	cost := EnergyCostConfig{
		Base:       def.EnergyCost,
		Multiplier: max(0, 1+s.casterStat(stat.EnergyCostRate)),
	}
	ctx := &TargetContext{
		Caster:     s.caster,
		Slot:       i,
		SkillID:    def.ID,
		Affects:    def.Affects,
		AimPoint:   aim,
		Targeting:  def.Targeting,
		EnergyCost: cost,
		Phase:      PhaseModify,
	}
	if c := ctx.CasterCharacter(); c != nil {
		ctx.AimDirection = aim.Sub(c.Location()).Normalized()
	}
	return ctx
}

func (s *Scheduler) applyModifiers(ctx *TargetContext) {
	for _, m := range s.modifiers {
		m.ModifyTargeting(&ctx.Targeting)
		m.ModifyEnergyCost(&ctx.EnergyCost)
	}
}

func (s *Scheduler) finish(i int, c *Cast) {
	if s.slots[i].cast == c {
		s.slots[i].cast = nil
	}
	if c.cancelled {
		return
	}

	ctx := c.Context
	caster := ctx.CasterCharacter()
	if caster != nil && caster.IsDead() {
		ctx.Phase = PhaseDone
		slog.Debug("cast dropped: caster dead", "skill", c.def.ID, "cast", c.ID)
		return
	}

	ctx.Phase = PhaseAcquire
	candidates := s.acquirer.Acquire(ctx)

	ctx.Phase = PhaseFilter
	targets := make([]Target, 0, len(candidates))
	for _, t := range candidates {
		if t != nil && s.passes(ctx, t) {
			targets = append(targets, t)
		}
	}
	ctx.SetResult(targets)

	if len(targets) == 0 {
		ctx.Phase = PhaseDone
		slog.Debug("cast found no targets", "skill", c.def.ID, "cast", c.ID)
		return
	}

	ctx.Phase = PhaseApply
	for _, t := range targets {
		for _, def := range c.def.Effects {
			inst, err := s.factory.CreateInstance(def, caster)
			if err != nil {
				slog.Warn("failed to create effect",
					"effect", def.ID,
					"skill", c.def.ID,
					"error", err)
				continue
			}
			t.Effects().AddEffect(inst)
		}
	}
	ctx.Phase = PhaseDone

	slog.Debug("cast landed",
		"skill", c.def.ID,
		"cast", c.ID,
		"targets", len(targets))
}

func (s *Scheduler) passes(ctx *TargetContext, t Target) bool {
	for _, f := range s.filters {
		if !f.IsValid(ctx, t) {
			return false
		}
	}
	return true
}

func refundConsumed(c *Cast) int { return c.consumed }

// refundNominal returns nothing for a cast that charged nothing, so an
// interrupt never mints energy.
func refundNominal(c *Cast) int {
	if c.consumed <= 0 {
		return 0
	}
	return c.def.EnergyCost
}

func refundNone(*Cast) int { return 0 }

// cancel stops the cast on slot i, restores the slot's previous cooldown
// and credits refund(c) back to the cast's account.
func (s *Scheduler) cancel(i int, refund func(*Cast) int) bool {
	sl := &s.slots[i]
	c := sl.cast
	if c == nil {
		return false
	}
	c.cancelled = true
	c.Context.Phase = PhaseDone
	sl.cast = nil
	sl.lastUse, sl.used = c.prevLastUse, c.prevUsed

	amount := refund(c)
	if amount > 0 && s.account != nil {
		s.account.Add(c.accountID, amount)
		s.emitEnergy(i)
	}

	slog.Debug("cast cancelled",
		"skill", c.def.ID,
		"cast", c.ID,
		"refund", amount)
	return true
}

func (s *Scheduler) emitEnergy(i int) {
	sl := &s.slots[i]
	if s.account == nil || sl.def == nil {
		return
	}
	ev := EnergyEvent{Slot: i, Current: s.account.CurrentValue(sl.accountID)}
	if cp, ok := s.account.(CapacityProvider); ok {
		if capacity := cp.Capacity(sl.accountID); capacity > 0 {
			ev.Normalized = min(1, float64(ev.Current)/float64(capacity))
		}
	}
	s.EnergyChanged.Emit(ev)
}
