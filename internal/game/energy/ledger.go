// Package energy implements the bounded resource accounts that gate skill
// usage. Each equipped skill slot draws from its own account.
package energy

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/skirmish/internal/game/signal"
)

// Balance is the persisted state of one account.
type Balance struct {
	Current  int     `yaml:"current"`
	Capacity int     `yaml:"capacity"`
	Regen    float64 `yaml:"regen"` // units per second
}

// Change is the payload of Ledger.Changed.
type Change struct {
	ID       string
	Current  int
	Capacity int
}

// Normalized returns Current/Capacity, or 0 for an account without capacity.
func (c Change) Normalized() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return float64(c.Current) / float64(c.Capacity)
}

type account struct {
	current  int
	capacity int
	regen    float64
	carry    float64 // fractional regen not yet credited
}

// Ledger holds every account of a simulation.
// Like the rest of the combat core it is driven from one goroutine.
type Ledger struct {
	accounts map[string]*account

	// Changed fires after every balance change.
	Changed signal.Signal[Change]
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]*account)}
}

// Open creates (or resets) account id with the given capacity and initial
// balance. The balance is clamped to [0, capacity].
func (l *Ledger) Open(id string, capacity, initial int) {
	capacity = max(capacity, 0)
	l.accounts[id] = &account{
		current:  clamp(initial, capacity),
		capacity: capacity,
	}
	l.emit(id)
}

// SetRegen sets the passive regeneration rate of id in units per second.
func (l *Ledger) SetRegen(id string, perSecond float64) {
	acc, ok := l.accounts[id]
	if !ok {
		slog.Warn("energy regen for unknown account", "account", id)
		return
	}
	acc.regen = max(perSecond, 0)
}

// Has reports whether account id is open.
func (l *Ledger) Has(id string) bool {
	_, ok := l.accounts[id]
	return ok
}

// TryConsume deducts cost from id if the balance covers it.
// A non-positive cost always succeeds without touching the account.
func (l *Ledger) TryConsume(id string, cost int) bool {
	if cost <= 0 {
		return true
	}
	acc, ok := l.accounts[id]
	if !ok || acc.current < cost {
		return false
	}
	acc.current -= cost
	l.emit(id)
	return true
}

// Add credits amount to id, clamped to capacity. Unknown ids and
// non-positive amounts are ignored.
func (l *Ledger) Add(id string, amount int) {
	if amount <= 0 {
		return
	}
	acc, ok := l.accounts[id]
	if !ok {
		return
	}
	next := clamp(acc.current+amount, acc.capacity)
	if next == acc.current {
		return
	}
	acc.current = next
	l.emit(id)
}

// CurrentValue returns the balance of id, or 0 if it does not exist.
func (l *Ledger) CurrentValue(id string) int {
	if acc, ok := l.accounts[id]; ok {
		return acc.current
	}
	return 0
}

// Capacity returns the capacity of id, or 0 if it does not exist.
func (l *Ledger) Capacity(id string) int {
	if acc, ok := l.accounts[id]; ok {
		return acc.capacity
	}
	return 0
}

// Close drops account id.
func (l *Ledger) Close(id string) {
	delete(l.accounts, id)
}

// IDs returns the open account ids in sorted order.
func (l *Ledger) IDs() []string {
	return slices.Sorted(maps.Keys(l.accounts))
}

// Regen credits every account its regeneration for dt seconds.
// Fractions carry over between calls, so the total does not depend on the
// frame rate.
func (l *Ledger) Regen(dt float64) {
	if dt <= 0 {
		return
	}
	for _, id := range l.IDs() {
		acc := l.accounts[id]
		if acc.regen <= 0 {
			continue
		}
		if acc.current >= acc.capacity {
			acc.carry = 0
			continue
		}
		acc.carry += acc.regen * dt
		whole := int(acc.carry)
		if whole == 0 {
			continue
		}
		acc.carry -= float64(whole)
		l.Add(id, whole)
	}
}

// Snapshot returns the balances of every account.
func (l *Ledger) Snapshot() map[string]Balance {
	out := make(map[string]Balance, len(l.accounts))
	for id, acc := range l.accounts {
		out[id] = Balance{Current: acc.current, Capacity: acc.capacity, Regen: acc.regen}
	}
	return out
}

// Restore opens or overwrites the accounts in balances.
// Accounts not mentioned are left untouched.
func (l *Ledger) Restore(balances map[string]Balance) {
	for _, id := range slices.Sorted(maps.Keys(balances)) {
		b := balances[id]
		l.Open(id, b.Capacity, b.Current)
		l.accounts[id].regen = max(b.Regen, 0)
	}
}

func (l *Ledger) emit(id string) {
	acc := l.accounts[id]
	l.Changed.Emit(Change{ID: id, Current: acc.current, Capacity: acc.capacity})
}

func clamp(v, capacity int) int {
	return min(max(v, 0), capacity)
}
