package geometrics

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput           = errors.New("geometrics: empty input")
	ErrInsufficientPoints   = errors.New("geometrics: insufficient points")
	ErrOutOfRange           = errors.New("geometrics: target outside stored range")
	ErrDegenerateTriangle   = errors.New("geometrics: degenerate triangle")
	ErrInvalidQuadrilateral = errors.New("geometrics: invalid quadrilateral")
	ErrDimensionMismatch    = errors.New("geometrics: dimension mismatch")
	ErrEmptyIntersection    = errors.New("geometrics: ranges do not intersect")
	ErrDivisionByZero       = errors.New("geometrics: division by zero")
	ErrPointNotFound        = errors.New("geometrics: point not part of the set")
)

// InterpolationError wraps a sentinel with the interpolation kind and the
// minimum point count where that is what was violated.
type InterpolationError struct {
	Kind InterpolationType
	Need int
	Have int
	Err  error
}

func (e *InterpolationError) Error() string {
	if errors.Is(e.Err, ErrInsufficientPoints) {
		return fmt.Sprintf("%v: %s needs %d points, have %d", e.Err, e.Kind, e.Need, e.Have)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Kind)
}

func (e *InterpolationError) Unwrap() error { return e.Err }

func interpErr(kind InterpolationType, err error) error {
	return &InterpolationError{Kind: kind, Err: err}
}

func tooFewPoints(kind InterpolationType, need, have int) error {
	return &InterpolationError{Kind: kind, Need: need, Have: have, Err: ErrInsufficientPoints}
}
