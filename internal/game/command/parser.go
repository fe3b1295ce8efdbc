package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned by Lookup for a verb no command answers to.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned by Lookup when the argument count is out of range.
	ErrUsage = errors.New("usage")
)

// Invocation is a resolved command line.
type Invocation struct {
	Command *Command
	// Verb is the word the player typed, lowercased.
	Verb string
	Args []string
}

// Parse splits a line into a lowercased verb and its arguments.
//
// Postcondition: verb is empty only when line has no words.
func Parse(line string) (verb string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Lookup parses line and resolves its verb.
//
// Postcondition: on success the argument count is within the command's
// bounds. Errors wrap ErrUnknownCommand or ErrUsage; a usage error names
// the synopsis.
func (r *Registry) Lookup(line string) (Invocation, error) {
	verb, args := Parse(line)
	if verb == "" {
		return Invocation{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	cmd, ok := r.Resolve(verb)
	if !ok {
		return Invocation{Verb: verb, Args: args}, fmt.Errorf("%w %q", ErrUnknownCommand, verb)
	}
	inv := Invocation{Command: cmd, Verb: verb, Args: args}
	if len(args) < cmd.MinArgs || (cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs) {
		return inv, fmt.Errorf("%w: %s", ErrUsage, cmd.Synopsis())
	}
	return inv, nil
}
