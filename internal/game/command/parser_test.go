package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	verb, args := Parse("   ")
	assert.Equal(t, "", verb)
	assert.Nil(t, args)
}

func TestParse_LowercasesVerbOnly(t *testing.T) {
	verb, args := Parse("  BUY  Long_Sword ")
	assert.Equal(t, "buy", verb)
	assert.Equal(t, []string{"Long_Sword"}, args)
}

func TestLookup_Alias(t *testing.T) {
	inv, err := DefaultRegistry().Lookup("kill a")
	require.NoError(t, err)
	assert.Equal(t, "attack", inv.Command.Name)
	assert.Equal(t, "kill", inv.Verb)
	assert.Equal(t, []string{"a"}, inv.Args)
}

func TestLookup_Unknown(t *testing.T) {
	inv, err := DefaultRegistry().Lookup("dance wildly")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Nil(t, inv.Command)
	assert.Equal(t, "dance", inv.Verb)

	_, err = DefaultRegistry().Lookup("")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestLookup_Arity(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		line string
		ok   bool
	}{
		{"create Ann human paladin 16 12 8 14", true},
		{"create Ann human", false},
		{"save", true},
		{"save slot1", true},
		{"save a b", false},
		{"cast magic_missile 3", false},
		{"search", true},
		{"search here", false},
	}
	for _, tt := range tests {
		_, err := r.Lookup(tt.line)
		if tt.ok {
			assert.NoError(t, err, tt.line)
			continue
		}
		require.Error(t, err, tt.line)
		assert.True(t, errors.Is(err, ErrUsage), tt.line)
		verb, _ := Parse(tt.line)
		assert.Contains(t, err.Error(), verb, tt.line)
	}
}

func TestProperty_ParseRejoinsToFields(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9_]{1,8}`), 1, 6).Draw(rt, "words")
		sep := rapid.SampledFrom([]string{" ", "  ", "\t"}).Draw(rt, "sep")
		verb, args := Parse(strings.Join(words, sep))
		if verb != strings.ToLower(words[0]) {
			rt.Fatalf("verb %q from %v", verb, words)
		}
		if len(args) != len(words)-1 {
			rt.Fatalf("got %d args from %v", len(args), words)
		}
	})
}
