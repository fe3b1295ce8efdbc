package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/sosaria/internal/game/condition"
)

func TestFlags_CombineIndependently(t *testing.T) {
	s := condition.None.With(condition.Poisoned).With(condition.Asleep)
	assert.True(t, s.Has(condition.Poisoned))
	assert.True(t, s.Has(condition.Asleep))
	assert.False(t, s.Has(condition.Dead))
	assert.Equal(t, "poisoned,asleep", s.String())

	s = s.Without(condition.Asleep)
	assert.False(t, s.Has(condition.Asleep))
	assert.True(t, s.Has(condition.Poisoned))
	assert.Equal(t, "ok", condition.None.String())
}

func TestFlags_PreventsAction(t *testing.T) {
	assert.False(t, condition.None.PreventsAction())
	assert.False(t, condition.Poisoned.PreventsAction())
	assert.False(t, condition.Confused.PreventsAction())
	for _, f := range []condition.Flags{condition.Dead, condition.Asleep, condition.Paralyzed, condition.Petrified} {
		assert.True(t, f.PreventsAction(), f.String())
	}
}

func TestParse(t *testing.T) {
	f, err := condition.Parse("Poisoned")
	require.NoError(t, err)
	assert.Equal(t, condition.Poisoned, f)

	f, err = condition.Parse("")
	require.NoError(t, err)
	assert.Equal(t, condition.None, f)

	_, err = condition.Parse("grumpy")
	assert.Error(t, err)
}

func TestFlags_YAML(t *testing.T) {
	var doc struct {
		Special condition.Flags `yaml:"special"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("special: paralyzed\n"), &doc))
	assert.Equal(t, condition.Paralyzed, doc.Special)
	assert.Error(t, yaml.Unmarshal([]byte("special: sneezing\n"), &doc))
}

func TestFlags_WithWithout_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := condition.Flags(rapid.Uint8Range(0, 63).Draw(rt, "s"))
		f := condition.Flags(1 << rapid.IntRange(0, 5).Draw(rt, "bit"))
		assert.True(rt, s.With(f).Has(f))
		assert.False(rt, s.Without(f).Has(f))
		assert.Equal(rt, s.Without(f), s.With(f).Without(f))
	})
}
