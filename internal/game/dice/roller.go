// Package dice is the randomness layer shared by world generation, travel
// hazards, combat and scripts.
package dice

import (
	"fmt"
	"slices"
	"strings"
)

// RollResult is one evaluated expression. Kept holds the dice counted in the
// total, highest first when a keep clause applied; Dropped holds the rest.
type RollResult struct {
	Expr    Expression
	Kept    []int
	Dropped []int
}

// Total is the sum of the kept dice plus the modifier.
func (r RollResult) Total() int {
	total := r.Expr.Modifier
	for _, d := range r.Kept {
		total += d
	}
	return total
}

// String renders the roll for the audit log, e.g.
// "4d6kh3+1: [6 5 4] dropped [1] +1 = 16".
func (r RollResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", r.Expr, r.Kept)
	if len(r.Dropped) > 0 {
		fmt.Fprintf(&b, " dropped %v", r.Dropped)
	}
	if r.Expr.Modifier != 0 {
		fmt.Fprintf(&b, " %+d", r.Expr.Modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}

// Roll throws every die of expr against src.
//
// Precondition: expr came from Parse; src is non-nil.
// Postcondition: len(Kept) is KeepHighest when set and Count otherwise;
// len(Kept)+len(Dropped) == Count.
func Roll(expr Expression, src Source) RollResult {
	res := RollResult{Expr: expr, Kept: make([]int, expr.Count)}
	for i := range res.Kept {
		res.Kept[i] = src.Intn(expr.Sides) + 1
	}
	if expr.KeepHighest > 0 {
		slices.SortFunc(res.Kept, func(a, b int) int { return b - a })
		res.Kept, res.Dropped = res.Kept[:expr.KeepHighest], res.Kept[expr.KeepHighest:]
	}
	return res
}

// RollExpr parses expr and rolls it against src.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// Between returns a uniform value in the closed range [lo, hi].
// When hi < lo the range collapses to lo.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// D20 returns a d20 roll in [1, 20].
func D20(src Source) int {
	return src.Intn(20) + 1
}

// Percent returns a value in [1, 100].
func Percent(src Source) int {
	return src.Intn(100) + 1
}

// Chance reports whether a pct-percent event happens: true when a draw in
// [0, 100) is below pct. pct <= 0 never happens; pct >= 100 always does.
func Chance(src Source, pct int) bool {
	return src.Intn(100) < pct
}
