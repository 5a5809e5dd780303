package strategies

import "github.com/optstrat/optstrat/model"

// legCheck is one leg's expected shape.
type legCheck struct {
	side model.Side
	typ  model.OptionType
}

// checkLegs verifies leg count and the side/payoff pattern.
func checkLegs(name string, legs []model.Position, want []legCheck) error {
	if len(legs) != len(want) {
		return shapeErr(name, "wrong leg count")
	}
	for i, w := range want {
		if legs[i].Option.Side != w.side {
			return shapeErr(name, "leg "+legs[i].Option.Strike.String()+" has the wrong side")
		}
		if legs[i].Option.Type != w.typ {
			return shapeErr(name, "leg "+legs[i].Option.Strike.String()+" has the wrong payoff type")
		}
	}
	return nil
}

// sameExpiry verifies all legs expire together.
func sameExpiry(name string, legs []model.Position) error {
	for i := 1; i < len(legs); i++ {
		a := legs[i].Option.Expiration
		b := legs[0].Option.Expiration
		if !a.DaysLeft(legs[i].OpenDate).Equal(b.DaysLeft(legs[0].OpenDate)) {
			return shapeErr(name, "legs expire on different dates")
		}
	}
	return nil
}

// BullCallSpread is long the lower-strike call, short the higher-strike
// call.
type BullCallSpread struct{ base }

func NewBullCallSpread(cfg Config, lowStrike, highStrike, longPremium, shortPremium model.Positive) (*BullCallSpread, error) {
	long, err := cfg.leg(model.Long, model.Call, lowStrike, longPremium)
	if err != nil {
		return nil, err
	}
	short, err := cfg.leg(model.Short, model.Call, highStrike, shortPremium)
	if err != nil {
		return nil, err
	}
	s := &BullCallSpread{newBase(KindBullCallSpread, "debit call vertical", []model.Position{long, short})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BullCallSpread) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}, {model.Short, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "long strike must be strictly below short strike")
	}
	return sameExpiry(s.name, s.legs)
}

// BearCallSpread is short the lower-strike call, long the higher-strike
// call.
type BearCallSpread struct{ base }

func NewBearCallSpread(cfg Config, lowStrike, highStrike, shortPremium, longPremium model.Positive) (*BearCallSpread, error) {
	short, err := cfg.leg(model.Short, model.Call, lowStrike, shortPremium)
	if err != nil {
		return nil, err
	}
	long, err := cfg.leg(model.Long, model.Call, highStrike, longPremium)
	if err != nil {
		return nil, err
	}
	s := &BearCallSpread{newBase(KindBearCallSpread, "credit call vertical", []model.Position{short, long})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BearCallSpread) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Call}, {model.Long, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "short strike must be strictly below long strike")
	}
	return sameExpiry(s.name, s.legs)
}

// BullPutSpread is short the higher-strike put, long the lower-strike
// put.
type BullPutSpread struct{ base }

func NewBullPutSpread(cfg Config, lowStrike, highStrike, longPremium, shortPremium model.Positive) (*BullPutSpread, error) {
	long, err := cfg.leg(model.Long, model.Put, lowStrike, longPremium)
	if err != nil {
		return nil, err
	}
	short, err := cfg.leg(model.Short, model.Put, highStrike, shortPremium)
	if err != nil {
		return nil, err
	}
	s := &BullPutSpread{newBase(KindBullPutSpread, "credit put vertical", []model.Position{long, short})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BullPutSpread) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Put}, {model.Short, model.Put}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "long strike must be strictly below short strike")
	}
	return sameExpiry(s.name, s.legs)
}

// BearPutSpread is long the higher-strike put, short the lower-strike
// put.
type BearPutSpread struct{ base }

func NewBearPutSpread(cfg Config, lowStrike, highStrike, shortPremium, longPremium model.Positive) (*BearPutSpread, error) {
	short, err := cfg.leg(model.Short, model.Put, lowStrike, shortPremium)
	if err != nil {
		return nil, err
	}
	long, err := cfg.leg(model.Long, model.Put, highStrike, longPremium)
	if err != nil {
		return nil, err
	}
	s := &BearPutSpread{newBase(KindBearPutSpread, "debit put vertical", []model.Position{short, long})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BearPutSpread) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Put}, {model.Long, model.Put}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "short strike must be strictly below long strike")
	}
	return sameExpiry(s.name, s.legs)
}
