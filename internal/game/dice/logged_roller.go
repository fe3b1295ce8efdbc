package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with what was rolled and the result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced by a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the wrapped Source.
func (r *Roller) Source() Source { return r.src }

// Intn draws a raw value in [0, n) without logging.
func (r *Roller) Intn(n int) int { return r.src.Intn(n) }

// Roll throws expr and logs the result at debug level.
//
// Precondition: expr came from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	res := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.Stringer("expression", expr),
		zap.Ints("kept", res.Kept),
		zap.Ints("dropped", res.Dropped),
		zap.Int("total", res.Total()),
	)
	return res
}

// RollExpr parses expr and rolls it, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// D20 rolls a d20 and logs it under purpose.
func (r *Roller) D20(purpose string) int {
	v := D20(r.src)
	r.logger.Debug("d20", zap.String("purpose", purpose), zap.Int("roll", v))
	return v
}

// Between rolls in [lo, hi] and logs it under purpose.
func (r *Roller) Between(purpose string, lo, hi int) int {
	v := Between(r.src, lo, hi)
	r.logger.Debug("range roll",
		zap.String("purpose", purpose),
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("roll", v),
	)
	return v
}

// Chance rolls a percentage check and logs it under purpose.
func (r *Roller) Chance(purpose string, pct int) bool {
	ok := Chance(r.src, pct)
	r.logger.Debug("chance roll",
		zap.String("purpose", purpose),
		zap.Int("pct", pct),
		zap.Bool("success", ok),
	)
	return ok
}

// Percent rolls d100 in [1, 100] and logs it under purpose.
func (r *Roller) Percent(purpose string) int {
	v := Percent(r.src)
	r.logger.Debug("d100", zap.String("purpose", purpose), zap.Int("roll", v))
	return v
}
