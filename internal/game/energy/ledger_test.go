package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_OpenClamps(t *testing.T) {
	l := NewLedger()
	l.Open("a", 10, 25)
	l.Open("b", 10, -3)

	assert.Equal(t, 10, l.CurrentValue("a"))
	assert.Equal(t, 0, l.CurrentValue("b"))
	assert.Equal(t, 10, l.Capacity("a"))
	assert.Equal(t, []string{"a", "b"}, l.IDs())
}

func TestLedger_TryConsume(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		cost    int
		want    bool
		after   int
	}{
		{name: "exact balance", balance: 5, cost: 5, want: true, after: 0},
		{name: "insufficient", balance: 4, cost: 5, want: false, after: 4},
		{name: "zero cost", balance: 0, cost: 0, want: true, after: 0},
		{name: "negative cost", balance: 2, cost: -1, want: true, after: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			l.Open("slot", 10, tt.balance)

			assert.Equal(t, tt.want, l.TryConsume("slot", tt.cost))
			assert.Equal(t, tt.after, l.CurrentValue("slot"))
		})
	}
}

func TestLedger_UnknownAccount(t *testing.T) {
	l := NewLedger()

	assert.False(t, l.TryConsume("ghost", 1))
	assert.True(t, l.TryConsume("ghost", 0))
	l.Add("ghost", 5)
	assert.Equal(t, 0, l.CurrentValue("ghost"))
	assert.Equal(t, 0, l.Capacity("ghost"))
	assert.False(t, l.Has("ghost"))
}

func TestLedger_AddClamps(t *testing.T) {
	l := NewLedger()
	l.Open("slot", 10, 8)

	l.Add("slot", 5)
	assert.Equal(t, 10, l.CurrentValue("slot"))

	l.Add("slot", -4)
	assert.Equal(t, 10, l.CurrentValue("slot"), "negative amounts ignored")
}

func TestLedger_ChangedSignal(t *testing.T) {
	l := NewLedger()
	var got []Change
	l.Changed.Subscribe(func(c Change) { got = append(got, c) })

	l.Open("slot", 4, 4)
	l.TryConsume("slot", 3)
	l.Add("slot", 1)
	l.Add("slot", 10) // 2 → 4
	l.Add("slot", 1)  // already full, no event

	require.Len(t, got, 4)
	assert.Equal(t, Change{ID: "slot", Current: 1, Capacity: 4}, got[1])
	assert.InDelta(t, 0.25, got[1].Normalized(), 1e-9)
	assert.Equal(t, 4, got[3].Current)
	assert.Zero(t, Change{}.Normalized())
}

func TestLedger_RegenCarriesFractions(t *testing.T) {
	l := NewLedger()
	l.Open("slot", 100, 0)
	l.SetRegen("slot", 2.5)

	for i := 0; i < 10; i++ {
		l.Regen(0.1)
	}
	assert.Equal(t, 2, l.CurrentValue("slot"), "2.5 units over 1s, fraction carried")

	for i := 0; i < 10; i++ {
		l.Regen(0.1)
	}
	assert.Equal(t, 5, l.CurrentValue("slot"))
}

func TestLedger_RegenStopsAtCapacity(t *testing.T) {
	l := NewLedger()
	l.Open("slot", 3, 2)
	l.SetRegen("slot", 10)

	l.Regen(1)
	assert.Equal(t, 3, l.CurrentValue("slot"))

	l.SetRegen("ghost", 1) // unknown, ignored
	l.Regen(0)
	l.Regen(-1)
	assert.Equal(t, 3, l.CurrentValue("slot"))
}

func TestLedger_SnapshotRestore(t *testing.T) {
	l := NewLedger()
	l.Open("a", 10, 7)
	l.SetRegen("a", 1.5)
	l.Open("b", 5, 0)

	snap := l.Snapshot()
	assert.Equal(t, Balance{Current: 7, Capacity: 10, Regen: 1.5}, snap["a"])

	restored := NewLedger()
	restored.Restore(snap)
	assert.Equal(t, snap, restored.Snapshot())

	l.Close("a")
	assert.False(t, l.Has("a"))
	assert.True(t, l.Has("b"))
}
