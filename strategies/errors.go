package strategies

import (
	"errors"
	"fmt"
)

var (
	ErrShapeViolation = errors.New("strategies: shape violation")
	ErrMissingLeg     = errors.New("strategies: missing leg")
	ErrEmptyStrategy  = errors.New("strategies: strategy has no positions")
	ErrMixedSymbols   = errors.New("strategies: positions span multiple symbols")
	// ErrUnbounded is returned by MaxProfit/MaxLoss when the payoff grows
	// without limit in the relevant direction.
	ErrUnbounded = errors.New("strategies: unbounded")
)

// ShapeError names the violated construction rule of a strategy variant.
type ShapeError struct {
	Strategy string
	Rule     string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrShapeViolation, e.Strategy, e.Rule)
}

func (e *ShapeError) Unwrap() error { return ErrShapeViolation }

func shapeErr(strategy, rule string) error {
	return &ShapeError{Strategy: strategy, Rule: rule}
}
