package model

import "time"

// Position is a held contract with the premium paid or received and the
// fees on both ends. Fees are paid regardless of direction; the premium is
// an outflow for Long and an inflow for Short.
type Position struct {
	Option   Option
	Premium  Positive
	OpenFee  Positive
	CloseFee Positive
	OpenDate time.Time
}

func NewPosition(option Option, premium, openFee, closeFee Positive, openDate time.Time) (*Position, error) {
	if err := option.Validate(); err != nil {
		return nil, err
	}
	return &Position{
		Option:   option,
		Premium:  premium,
		OpenFee:  openFee,
		CloseFee: closeFee,
		OpenDate: openDate,
	}, nil
}

// TotalFees is the round-trip fee cost.
func (p *Position) TotalFees() float64 {
	return p.OpenFee.Float64() + p.CloseFee.Float64()
}

// PremiumFlow is the signed cash flow from the premium: negative for Long
// (paid), positive for Short (received), scaled by quantity.
func (p *Position) PremiumFlow() float64 {
	flow := p.Premium.Float64() * p.Option.Quantity.Float64()
	if p.Option.Side == Long {
		return -flow
	}
	return flow
}

// Realized is the cash already committed: fees out plus the premium flow.
func (p *Position) Realized() float64 {
	return -p.TotalFees() + p.PremiumFlow()
}

// CostBasis is the unsigned capital outlay at open.
func (p *Position) CostBasis() float64 {
	return p.Premium.Float64()*p.Option.Quantity.Float64() + p.OpenFee.Float64()
}

// PayoffAtExpiry is the total P&L if the contract expires with the given
// spot: side-signed intrinsic value times quantity plus the realized flows.
func (p *Position) PayoffAtExpiry(spot Positive) float64 {
	intrinsic := p.Option.IntrinsicValue(spot) * p.Option.Quantity.Float64()
	if p.Option.Side == Short {
		intrinsic = -intrinsic
	}
	return intrinsic + p.Realized()
}

// DaysHeld counts calendar days since open.
func (p *Position) DaysHeld(now time.Time) Positive {
	d := now.Sub(p.OpenDate).Hours() / 24
	if d < 0 {
		return PZero
	}
	return MustPositive(d)
}
