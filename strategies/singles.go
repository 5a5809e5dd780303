package strategies

import "github.com/optstrat/optstrat/model"

// single builds a one-leg strategy.
func single(kind Kind, description string, cfg Config, side model.Side, typ model.OptionType, strike, premium model.Positive) (base, error) {
	leg, err := cfg.leg(side, typ, strike, premium)
	if err != nil {
		return base{}, err
	}
	return newBase(kind, description, []model.Position{leg}), nil
}

// LongCall is a single bought call.
type LongCall struct{ base }

func NewLongCall(cfg Config, strike, premium model.Positive) (*LongCall, error) {
	b, err := single(KindLongCall, "bought call, unlimited upside", cfg, model.Long, model.Call, strike, premium)
	if err != nil {
		return nil, err
	}
	s := &LongCall{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LongCall) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	return checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}})
}

// ShortCall is a single written call.
type ShortCall struct{ base }

func NewShortCall(cfg Config, strike, premium model.Positive) (*ShortCall, error) {
	b, err := single(KindShortCall, "written call, unlimited downside", cfg, model.Short, model.Call, strike, premium)
	if err != nil {
		return nil, err
	}
	s := &ShortCall{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShortCall) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	return checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Call}})
}

// LongPut is a single bought put.
type LongPut struct{ base }

func NewLongPut(cfg Config, strike, premium model.Positive) (*LongPut, error) {
	b, err := single(KindLongPut, "bought put, profits as spot falls", cfg, model.Long, model.Put, strike, premium)
	if err != nil {
		return nil, err
	}
	s := &LongPut{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LongPut) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	return checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Put}})
}

// ShortPut is a single written put.
type ShortPut struct{ base }

func NewShortPut(cfg Config, strike, premium model.Positive) (*ShortPut, error) {
	b, err := single(KindShortPut, "written put, assigned below the strike", cfg, model.Short, model.Put, strike, premium)
	if err != nil {
		return nil, err
	}
	s := &ShortPut{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShortPut) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	return checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Put}})
}

// CoveredCall writes a call against a long stock holding entered at the
// configured underlying price.
type CoveredCall struct{ base }

func NewCoveredCall(cfg Config, strike, premium model.Positive) (*CoveredCall, error) {
	call, err := cfg.leg(model.Short, model.Call, strike, premium)
	if err != nil {
		return nil, err
	}
	b := newBase(KindCoveredCall, "written call against long stock", []model.Position{call})
	b.stock = &stockLeg{side: model.Long, quantity: cfg.Quantity, entry: cfg.UnderlyingPrice}
	s := &CoveredCall{b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CoveredCall) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Call}}); err != nil {
		return err
	}
	if s.stock == nil || s.stock.side != model.Long {
		return shapeErr(s.name, "requires a long stock holding")
	}
	if !s.legs[0].Option.Quantity.Equal(s.stock.quantity) {
		return shapeErr(s.name, "call quantity must match the stock holding")
	}
	return nil
}

// PoorMansCoveredCall substitutes a deep-ITM long-dated call for the
// stock: the short call expires first and the long call is re-priced
// with its remaining time at the horizon.
type PoorMansCoveredCall struct{ base }

func NewPoorMansCoveredCall(cfg Config, longStrike, shortStrike, longPremium, shortPremium model.Positive, longExpiration model.ExpirationDate) (*PoorMansCoveredCall, error) {
	long, err := cfg.legAt(model.Long, model.Call, longStrike, longPremium, longExpiration)
	if err != nil {
		return nil, err
	}
	short, err := cfg.leg(model.Short, model.Call, shortStrike, shortPremium)
	if err != nil {
		return nil, err
	}
	s := &PoorMansCoveredCall{newBase(KindPoorMansCoveredCall, "diagonal call spread standing in for covered stock", []model.Position{long, short})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PoorMansCoveredCall) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}, {model.Short, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "long strike must be strictly below the short strike")
	}
	now := s.legs[0].OpenDate
	if !s.legs[1].Option.Expiration.DaysLeft(now).LessThan(s.legs[0].Option.Expiration.DaysLeft(now)) {
		return shapeErr(s.name, "long call must outlive the short call")
	}
	return nil
}
