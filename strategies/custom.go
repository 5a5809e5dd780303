package strategies

import "github.com/optstrat/optstrat/model"

// CustomStrategy holds an arbitrary set of positions on one symbol.
// Shape validation is skipped; every derived query still applies.
type CustomStrategy struct{ base }

func NewCustomStrategy(name string, positions []model.Position) (*CustomStrategy, error) {
	legs := make([]model.Position, len(positions))
	copy(legs, positions)
	b := newBase(KindCustom, "user-assembled multi-leg position", legs)
	if name != "" {
		b.name = name
	}
	s := &CustomStrategy{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithStock attaches an underlying holding to the custom strategy.
func (s *CustomStrategy) WithStock(side model.Side, quantity, entry model.Positive) *CustomStrategy {
	s.stock = &stockLeg{side: side, quantity: quantity, entry: entry}
	return s
}
