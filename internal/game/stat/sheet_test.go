package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_FromTemplate(t *testing.T) {
	sh := NewSheet(Template{MaxHP: 100, Armor: 25})

	assert.Equal(t, 100.0, sh.Value(MaxHP))
	assert.Equal(t, 25.0, sh.Value(Armor))
	assert.Equal(t, 0.0, sh.Value(Dodge), "missing stat reads as zero")
	assert.Nil(t, sh.Stat(Dodge))
	assert.Equal(t, []Name{Armor, MaxHP}, sh.Names())
}

func TestSheet_RemoveAllFromSource(t *testing.T) {
	sh := NewSheet(Template{MaxHP: 100, Armor: 10})
	sh.AddModifier(MaxHP, Modifier{Value: 50, Kind: Flat, Source: "aura"})
	sh.AddModifier(Armor, Modifier{Value: 1, Kind: PercentMult, Source: "aura"})
	sh.AddModifier(Armor, Modifier{Value: 5, Kind: Flat, Source: "boots"})

	assert.Equal(t, 2, sh.RemoveAllFromSource("aura"))
	assert.Equal(t, 100.0, sh.Value(MaxHP))
	assert.Equal(t, 15.0, sh.Value(Armor))
	assert.Equal(t, 0, sh.RemoveAllFromSource("aura"))
}

func TestSheet_ChangedFanIn(t *testing.T) {
	sh := NewSheet(Template{MaxHP: 100})
	var changes []Change
	sh.Changed.Subscribe(func(c Change) { changes = append(changes, c) })

	sh.AddModifier(MaxHP, Modifier{Value: 0.5, Kind: PercentAdd, Source: "x"})
	sh.AddModifier(Dodge, Modifier{Value: 0.2, Kind: Flat, Source: "x"})

	require.Len(t, changes, 2)
	assert.Equal(t, Change{Name: MaxHP, Value: 150}, changes[0])
	assert.Equal(t, Change{Name: Dodge, Value: 0.2}, changes[1])

	sh.Close()
	sh.RemoveAllFromSource("x")
	assert.Len(t, changes, 2, "closed sheet stops forwarding")
}

func TestSheet_NilSafe(t *testing.T) {
	var sh *Sheet
	assert.Nil(t, sh.Stat(MaxHP))
	assert.Equal(t, 0.0, sh.Value(MaxHP))
	assert.Equal(t, 0, sh.RemoveAllFromSource("x"))
	assert.False(t, sh.RemoveModifier(MaxHP, Modifier{}))
	sh.AddModifier(MaxHP, Modifier{})
}
