package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression such as "3d6+2" or "4d6kh3".
//
// Invariant: Count >= 1, Sides >= 2 and 0 <= KeepHighest < Count.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int // 0 keeps every die
}

// exprPattern is [count] "d" sides ["kh" keep] [+|- modifier].
var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Parse reads a dice expression. Script authors write these, so errors
// name the offending input.
//
// Postcondition: on success the returned Expression satisfies its invariant.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}
	e := Expression{Raw: expr, Count: 1}

	// The pattern only admits digits, so Atoi fails on overflow alone.
	var err error
	if m[1] != "" {
		if e.Count, err = strconv.Atoi(m[1]); err != nil || e.Count < 1 {
			return Expression{}, fmt.Errorf("dice: die count in %q must be at least 1", expr)
		}
	}
	if e.Sides, err = strconv.Atoi(m[2]); err != nil || e.Sides < 2 {
		return Expression{}, fmt.Errorf("dice: dice in %q need at least 2 sides", expr)
	}
	if m[3] != "" {
		if e.KeepHighest, err = strconv.Atoi(m[3]); err != nil || e.KeepHighest < 1 || e.KeepHighest >= e.Count {
			return Expression{}, fmt.Errorf("dice: keep count in %q must be between 1 and %d", expr, e.Count-1)
		}
	}
	if m[4] != "" {
		if e.Modifier, err = strconv.Atoi(m[4]); err != nil {
			return Expression{}, fmt.Errorf("dice: modifier in %q out of range", expr)
		}
	}
	return e, nil
}

// String renders the canonical form of e.
func (e Expression) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Sides)
	if e.KeepHighest > 0 {
		fmt.Fprintf(&b, "kh%d", e.KeepHighest)
	}
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

// Bounds returns the smallest and largest totals e can produce.
func (e Expression) Bounds() (lo, hi int) {
	n := e.Count
	if e.KeepHighest > 0 {
		n = e.KeepHighest
	}
	return n + e.Modifier, n*e.Sides + e.Modifier
}
