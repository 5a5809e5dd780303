// Package metrics derives risk and profile curves and surfaces from an
// option chain. Every function returns a freshly constructed geometric
// object; nothing is cached on the chain.
package metrics

import (
	"errors"
	"fmt"
)

var ErrConstruction = errors.New("metrics: construction error")

// ConstructionError carries the reason a metric could not be built.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConstruction, e.Reason)
}

func (e *ConstructionError) Unwrap() error { return ErrConstruction }

func constructionErr(reason string) error {
	return &ConstructionError{Reason: reason}
}
