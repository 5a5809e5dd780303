package strategies

import "github.com/optstrat/optstrat/model"

// LongStraddle is a long call and a long put on the same strike.
type LongStraddle struct{ base }

func NewLongStraddle(cfg Config, strike, callPremium, putPremium model.Positive) (*LongStraddle, error) {
	call, err := cfg.leg(model.Long, model.Call, strike, callPremium)
	if err != nil {
		return nil, err
	}
	put, err := cfg.leg(model.Long, model.Put, strike, putPremium)
	if err != nil {
		return nil, err
	}
	s := &LongStraddle{newBase(KindLongStraddle, "long volatility, symmetric around one strike", []model.Position{call, put})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LongStraddle) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Call}, {model.Long, model.Put}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.Equal(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "call and put must share one strike")
	}
	return sameExpiry(s.name, s.legs)
}

// ShortStraddle is a short call and a short put on the same strike.
type ShortStraddle struct{ base }

func NewShortStraddle(cfg Config, strike, callPremium, putPremium model.Positive) (*ShortStraddle, error) {
	call, err := cfg.leg(model.Short, model.Call, strike, callPremium)
	if err != nil {
		return nil, err
	}
	put, err := cfg.leg(model.Short, model.Put, strike, putPremium)
	if err != nil {
		return nil, err
	}
	s := &ShortStraddle{newBase(KindShortStraddle, "short volatility, symmetric around one strike", []model.Position{call, put})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShortStraddle) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Call}, {model.Short, model.Put}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.Equal(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "call and put must share one strike")
	}
	return sameExpiry(s.name, s.legs)
}

// LongStrangle is a long OTM put below a long OTM call.
type LongStrangle struct{ base }

func NewLongStrangle(cfg Config, putStrike, callStrike, putPremium, callPremium model.Positive) (*LongStrangle, error) {
	put, err := cfg.leg(model.Long, model.Put, putStrike, putPremium)
	if err != nil {
		return nil, err
	}
	call, err := cfg.leg(model.Long, model.Call, callStrike, callPremium)
	if err != nil {
		return nil, err
	}
	s := &LongStrangle{newBase(KindLongStrangle, "long volatility with a widened breakeven band", []model.Position{put, call})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LongStrangle) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Long, model.Put}, {model.Long, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "put strike must be strictly below call strike")
	}
	return sameExpiry(s.name, s.legs)
}

// ShortStrangle is a short OTM put below a short OTM call.
type ShortStrangle struct{ base }

func NewShortStrangle(cfg Config, putStrike, callStrike, putPremium, callPremium model.Positive) (*ShortStrangle, error) {
	put, err := cfg.leg(model.Short, model.Put, putStrike, putPremium)
	if err != nil {
		return nil, err
	}
	call, err := cfg.leg(model.Short, model.Call, callStrike, callPremium)
	if err != nil {
		return nil, err
	}
	s := &ShortStrangle{newBase(KindShortStrangle, "short volatility with a widened profit band", []model.Position{put, call})}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ShortStrangle) Validate() error {
	if err := s.base.Validate(); err != nil {
		return err
	}
	if err := checkLegs(s.name, s.legs, []legCheck{{model.Short, model.Put}, {model.Short, model.Call}}); err != nil {
		return err
	}
	if !s.legs[0].Option.Strike.LessThan(s.legs[1].Option.Strike) {
		return shapeErr(s.name, "put strike must be strictly below call strike")
	}
	return sameExpiry(s.name, s.legs)
}
