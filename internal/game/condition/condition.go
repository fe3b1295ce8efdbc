// Package condition defines the status effects that can afflict characters
// and monsters. Status is a bitset; any combination may be active at once.
package condition

import (
	"fmt"
	"strings"
)

// Flags is a set of status effects.
type Flags uint8

const (
	Poisoned Flags = 1 << iota
	Asleep
	Paralyzed
	Dead
	Petrified
	Confused
)

// None is the empty status set.
const None Flags = 0

var names = []struct {
	flag Flags
	name string
}{
	{Poisoned, "poisoned"},
	{Asleep, "asleep"},
	{Paralyzed, "paralyzed"},
	{Dead, "dead"},
	{Petrified, "petrified"},
	{Confused, "confused"},
}

// Has reports whether every flag in f is set.
func (s Flags) Has(f Flags) bool { return f != 0 && s&f == f }

// With returns s with f added.
func (s Flags) With(f Flags) Flags { return s | f }

// Without returns s with f removed.
func (s Flags) Without(f Flags) Flags { return s &^ f }

// PreventsAction reports whether any flag in s stops its bearer from acting.
func (s Flags) PreventsAction() bool {
	return s&(Dead|Asleep|Paralyzed|Petrified) != 0
}

// String renders the set as a comma separated list, or "ok" when empty.
func (s Flags) String() string {
	if s == None {
		return "ok"
	}
	var parts []string
	for _, n := range names {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// Parse maps a single status name to its flag. The empty string and "none"
// map to None.
//
// Postcondition: returns an error for unknown names.
func Parse(name string) (Flags, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return None, nil
	}
	for _, e := range names {
		if e.name == n {
			return e.flag, nil
		}
	}
	return None, fmt.Errorf("unknown status %q", name)
}

// UnmarshalYAML lets content files name statuses by string.
func (s *Flags) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	f, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = f
	return nil
}
