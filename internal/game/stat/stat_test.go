package stat

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStat_Composition(t *testing.T) {
	tests := []struct {
		name string
		base float64
		mods []Modifier
		want float64
	}{
		{
			name: "base only",
			base: 50,
			want: 50,
		},
		{
			name: "flat",
			base: 50,
			mods: []Modifier{{Value: 10, Kind: Flat}, {Value: -5, Kind: Flat}},
			want: 55,
		},
		{
			name: "percent add sums before applying",
			base: 100,
			mods: []Modifier{{Value: 0.1, Kind: PercentAdd}, {Value: 0.2, Kind: PercentAdd}},
			want: 130,
		},
		{
			name: "percent mult compounds",
			base: 100,
			mods: []Modifier{{Value: 0.5, Kind: PercentMult}, {Value: 0.5, Kind: PercentMult}},
			want: 225,
		},
		{
			name: "all groups in fixed order",
			base: 100,
			mods: []Modifier{
				{Value: 0.5, Kind: PercentMult},
				{Value: 20, Kind: Flat},
				{Value: 0.25, Kind: PercentAdd},
				{Value: -0.5, Kind: PercentMult},
			},
			// (100+20) * 1.25 * 1.5 * 0.5
			want: 112.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.base)
			for _, m := range tt.mods {
				s.AddModifier(m)
			}
			assert.InDelta(t, tt.want, s.Value(), 1e-9)
		})
	}
}

func TestStat_OrderIndependent(t *testing.T) {
	mods := []Modifier{
		{Value: 3.3, Kind: Flat, Source: "a"},
		{Value: 0.1, Kind: PercentAdd, Source: "b"},
		{Value: 0.7, Kind: PercentAdd, Source: "c"},
		{Value: -1.1, Kind: Flat, Source: "d"},
		{Value: 0.15, Kind: PercentMult, Source: "e"},
		{Value: -0.3, Kind: PercentMult, Source: "f"},
		{Value: 0.01, Kind: PercentMult, Source: "g"},
	}

	reference := New(17.25)
	for _, m := range mods {
		reference.AddModifier(m)
	}
	want := reference.Value()

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := append([]Modifier(nil), mods...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		s := New(17.25)
		for _, m := range shuffled {
			s.AddModifier(m)
		}
		require.Equal(t, want, s.Value(), "permutation %d", i)
	}
}

func TestStat_RemoveModifier(t *testing.T) {
	s := New(10)
	m := Modifier{Value: 5, Kind: Flat, Source: "ring"}
	s.AddModifier(m)
	s.AddModifier(m)

	assert.True(t, s.RemoveModifier(m))
	assert.Equal(t, 15.0, s.Value(), "only one copy removed")

	assert.False(t, s.RemoveModifier(Modifier{Value: 99, Kind: Flat}), "unknown modifier ignored")
	assert.Equal(t, 15.0, s.Value())
}

func TestStat_RemoveAllModifiersFromSource(t *testing.T) {
	s := New(100)
	s.AddModifier(Modifier{Value: 10, Kind: Flat, Source: "sword"})
	s.AddModifier(Modifier{Value: 0.1, Kind: PercentAdd, Source: "sword"})
	s.AddModifier(Modifier{Value: 5, Kind: Flat, Source: "helm"})

	assert.Equal(t, 2, s.RemoveAllModifiersFromSource("sword"))
	assert.Equal(t, 105.0, s.Value())

	assert.Equal(t, 0, s.RemoveAllModifiersFromSource("sword"), "idempotent")
	assert.Equal(t, 105.0, s.Value())
	require.Len(t, s.Modifiers(), 1)
	assert.Equal(t, Source("helm"), s.Modifiers()[0].Source)
}

func TestStat_ClearAndBase(t *testing.T) {
	s := New(10)
	s.AddModifier(Modifier{Value: 1, Kind: PercentMult})
	s.ClearAllModifiers()
	assert.Equal(t, 10.0, s.Value())

	s.SetBaseValue(40)
	assert.Equal(t, 40.0, s.Value())
	assert.Equal(t, 40.0, s.BaseValue())
}

func TestStat_ChangedNotification(t *testing.T) {
	s := New(10)
	var seen []float64
	s.Changed.Subscribe(func(v float64) { seen = append(seen, v) })

	s.AddModifier(Modifier{Value: 5, Kind: Flat, Source: "x"})
	s.RemoveAllModifiersFromSource("x")
	s.RemoveAllModifiersFromSource("x") // no-op, no event
	s.SetBaseValue(20)

	assert.Equal(t, []float64{15, 10, 20}, seen)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "flat", want: Flat},
		{in: "", want: Flat},
		{in: "percent_add", want: PercentAdd},
		{in: "percent_mult", want: PercentMult},
		{in: "mul", want: PercentMult},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
