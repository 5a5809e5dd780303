package strategies

import "github.com/optstrat/optstrat/model"

// ascendingStrikes verifies legs carry strictly increasing strikes.
func ascendingStrikes(name string, legs []model.Position) error {
	for i := 1; i < len(legs); i++ {
		if !legs[i-1].Option.Strike.LessThan(legs[i].Option.Strike) {
			return shapeErr(name, "strikes must be strictly ascending")
		}
	}
	return nil
}

// LongButterfly buys the wings and sells double the body, all calls.
type LongButterfly struct{ base }

func NewLongButterfly(cfg Config, lowStrike, midStrike, highStrike, lowPremium, midPremium, highPremium model.Positive) (*LongButterfly, error) {
	low, err := cfg.leg(model.Long, model.Call, lowStrike, lowPremium)
	if err != nil {
		return nil, err
	}
	body := cfg
	body.Quantity = cfg.Quantity.Mul(model.MustPositive(2))
	mid, err := body.leg(model.Short, model.Call, midStrike, midPremium)
	if err != nil {
		return nil, err
	}
	high, err := cfg.leg(model.Long, model.Call, highStrike, highPremium)
	if err != nil {
		return nil, err
	}
	s := &LongButterfly{newBase(KindLongButterfly, "long wings, double short body", []model.Position{low, mid, high})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LongButterfly) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}, {model.Short, model.Call}, {model.Long, model.Call}}); err != nil {
		return err
	}
	if err := ascendingStrikes(s.name, s.legs); err != nil {
		return err
	}
	wings := s.legs[0].Option.Quantity.Add(s.legs[2].Option.Quantity)
	if !s.legs[1].Option.Quantity.Equal(wings) {
		return shapeErr(s.name, "body quantity must equal the sum of the wings")
	}
	return sameExpiry(s.name, s.legs)
}

// ShortButterfly sells the wings and buys double the body, all calls.
type ShortButterfly struct{ base }

func NewShortButterfly(cfg Config, lowStrike, midStrike, highStrike, lowPremium, midPremium, highPremium model.Positive) (*ShortButterfly, error) {
	low, err := cfg.leg(model.Short, model.Call, lowStrike, lowPremium)
	if err != nil {
		return nil, err
	}
	body := cfg
	body.Quantity = cfg.Quantity.Mul(model.MustPositive(2))
	mid, err := body.leg(model.Long, model.Call, midStrike, midPremium)
	if err != nil {
		return nil, err
	}
	high, err := cfg.leg(model.Short, model.Call, highStrike, highPremium)
	if err != nil {
		return nil, err
	}
	s := &ShortButterfly{newBase(KindShortButterfly, "short wings, double long body", []model.Position{low, mid, high})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShortButterfly) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Call}, {model.Long, model.Call}, {model.Short, model.Call}}); err != nil {
		return err
	}
	if err := ascendingStrikes(s.name, s.legs); err != nil {
		return err
	}
	wings := s.legs[0].Option.Quantity.Add(s.legs[2].Option.Quantity)
	if !s.legs[1].Option.Quantity.Equal(wings) {
		return shapeErr(s.name, "body quantity must equal the sum of the wings")
	}
	return sameExpiry(s.name, s.legs)
}

// CallButterfly is the broken-wing variant: one long low call against
// two separately struck short calls above it.
type CallButterfly struct{ base }

func NewCallButterfly(cfg Config, longStrike, shortStrike1, shortStrike2, longPremium, shortPremium1, shortPremium2 model.Positive) (*CallButterfly, error) {
	long, err := cfg.leg(model.Long, model.Call, longStrike, longPremium)
	if err != nil {
		return nil, err
	}
	s1, err := cfg.leg(model.Short, model.Call, shortStrike1, shortPremium1)
	if err != nil {
		return nil, err
	}
	s2, err := cfg.leg(model.Short, model.Call, shortStrike2, shortPremium2)
	if err != nil {
		return nil, err
	}
	s := &CallButterfly{newBase(KindCallButterfly, "long call against two short calls at separate strikes", []model.Position{long, s1, s2})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CallButterfly) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}, {model.Short, model.Call}, {model.Short, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) || !s.legs[0].Option.Strike.LessThan(s.legs[2].Option.Strike) {
		return shapeErr(s.name, "long strike must be strictly below both short strikes")
	}
	return sameExpiry(s.name, s.legs)
}

// IronCondor is a short strangle protected by a long strangle one step
// further out: long put, short put, short call, long call, strikes
// strictly ascending.
type IronCondor struct{ base }

func NewIronCondor(cfg Config, longPutStrike, shortPutStrike, shortCallStrike, longCallStrike model.Positive, premiums [4]model.Positive) (*IronCondor, error) {
	lp, err := cfg.leg(model.Long, model.Put, longPutStrike, premiums[0])
	if err != nil {
		return nil, err
	}
	sp, err := cfg.leg(model.Short, model.Put, shortPutStrike, premiums[1])
	if err != nil {
		return nil, err
	}
	sc, err := cfg.leg(model.Short, model.Call, shortCallStrike, premiums[2])
	if err != nil {
		return nil, err
	}
	lc, err := cfg.leg(model.Long, model.Call, longCallStrike, premiums[3])
	if err != nil {
		return nil, err
	}
	s := &IronCondor{newBase(KindIronCondor, "short strangle wrapped in protective wings", []model.Position{lp, sp, sc, lc})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *IronCondor) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Put}, {model.Short, model.Put}, {model.Short, model.Call}, {model.Long, model.Call}}); err != nil {
		return err
	}
	if err := ascendingStrikes(s.name, s.legs); err != nil {
		return err
	}
	return sameExpiry(s.name, s.legs)
}

// IronButterfly is an iron condor whose short strikes coincide: long
// put, short put and short call at the body, long call.
type IronButterfly struct{ base }

func NewIronButterfly(cfg Config, longPutStrike, bodyStrike, longCallStrike model.Positive, premiums [4]model.Positive) (*IronButterfly, error) {
	lp, err := cfg.leg(model.Long, model.Put, longPutStrike, premiums[0])
	if err != nil {
		return nil, err
	}
	sp, err := cfg.leg(model.Short, model.Put, bodyStrike, premiums[1])
	if err != nil {
		return nil, err
	}
	sc, err := cfg.leg(model.Short, model.Call, bodyStrike, premiums[2])
	if err != nil {
		return nil, err
	}
	lc, err := cfg.leg(model.Long, model.Call, longCallStrike, premiums[3])
	if err != nil {
		return nil, err
	}
	s := &IronButterfly{newBase(KindIronButterfly, "short straddle wrapped in protective wings", []model.Position{lp, sp, sc, lc})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *IronButterfly) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Put}, {model.Short, model.Put}, {model.Short, model.Call}, {model.Long, model.Call}}); err != nil {
		return err
	}
	if !s.legs[1].Option.Strike.Equal(s.legs[2].Option.Strike) {
		return shapeErr(s.name, "short put and short call must share the body strike")
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "long put strike must be strictly below the body")
	}
	if !s.legs[2].Option.Strike.LessThan(s.legs[3].Option.Strike) {
		return shapeErr(s.name, "long call strike must be strictly above the body")
	}
	return sameExpiry(s.name, s.legs)
}
