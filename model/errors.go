package model

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeValue     = errors.New("model: negative value")
	ErrDivisionByZero    = errors.New("model: division by zero")
	ErrOverflow          = errors.New("model: overflow")
	ErrConversionFailure = errors.New("model: conversion failure")
	ErrInvalidStrike     = errors.New("model: invalid strike")
	ErrInvalidVolatility = errors.New("model: invalid volatility")
	ErrInvalidTime       = errors.New("model: invalid time")
	ErrInvalidRate       = errors.New("model: invalid rate")
	ErrInvalidPrice      = errors.New("model: invalid price")
	ErrInvalidQuantity   = errors.New("model: invalid quantity")
	ErrOutOfBounds       = errors.New("model: out of bounds")
)

// FieldError wraps one of the sentinel errors above with the offending
// field and value, so callers can report which input was rejected.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s=%s", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(err error, field, value string) error {
	return &FieldError{Field: field, Value: value, Err: err}
}
