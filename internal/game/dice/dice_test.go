package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/dice"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}},
		{"2D6+3", dice.Expression{Raw: "2D6+3", Count: 2, Sides: 6, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"4d6kh3", dice.Expression{Raw: "4d6kh3", Count: 4, Sides: 6, KeepHighest: 3}},
		{"4d6kh3+1", dice.Expression{Raw: "4d6kh3+1", Count: 4, Sides: 6, KeepHighest: 3, Modifier: 1}},
		{" 3d4 + 1 ", dice.Expression{Raw: " 3d4 + 1 ", Count: 3, Sides: 4, Modifier: 1}},
	}
	for _, tt := range tests {
		got, err := dice.Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "d", "20", "0d6", "2d1", "2d6kh2", "2d6kh0", "2d6+", "x2d6", "2d6*2"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestExpression_StringAndBounds(t *testing.T) {
	e, err := dice.Parse("4d6kh3-1")
	require.NoError(t, err)
	assert.Equal(t, "4d6kh3-1", e.String())
	lo, hi := e.Bounds()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 17, hi)
}

func TestRollResult_String(t *testing.T) {
	tests := []struct {
		expr string
		src  *dice.FixedSource
		want string
	}{
		{"2d6+3", dice.NewFixedSource(3, 4), "2d6+3: [4 5] +3 = 12"},
		{"d20", dice.NewFixedSource(19), "1d20: [20] = 20"},
		{"4d6kh3-1", dice.NewFixedSource(0, 5, 3, 4), "4d6kh3-1: [6 5 4] dropped [1] -1 = 14"},
	}
	for _, tt := range tests {
		res, err := dice.RollExpr(tt.expr, tt.src)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, res.String(), tt.expr)
	}
}

func TestProperty_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := dice.Expression{
			Raw:      "prop",
			Count:    rapid.IntRange(1, 8).Draw(rt, "count"),
			Sides:    rapid.IntRange(2, 20).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-10, 10).Draw(rt, "mod"),
		}
		if e.Count > 1 && rapid.Bool().Draw(rt, "keep") {
			e.KeepHighest = rapid.IntRange(1, e.Count-1).Draw(rt, "kh")
		}
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		res := dice.Roll(e, src)
		if len(res.Kept)+len(res.Dropped) != e.Count {
			rt.Fatalf("%s threw %d dice", e, len(res.Kept)+len(res.Dropped))
		}
		lo, hi := e.Bounds()
		if tot := res.Total(); tot < lo || tot > hi {
			rt.Fatalf("%s rolled %d outside [%d, %d]", e, tot, lo, hi)
		}
	})
}

func TestProperty_ParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := dice.Expression{
			Count:    rapid.IntRange(1, 50).Draw(rt, "count"),
			Sides:    rapid.IntRange(2, 100).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-50, 50).Draw(rt, "mod"),
		}
		got, err := dice.Parse(e.String())
		require.NoError(rt, err)
		e.Raw = e.String()
		assert.Equal(rt, e, got)
	})
}

func TestCryptoSource_Intn(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}
