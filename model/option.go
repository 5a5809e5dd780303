package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Option is a single contract. Immutable once created except for the
// explicit setters used by simulation loops.
type Option struct {
	Style             OptionStyle
	Side              Side
	Type              OptionType
	Symbol            string
	Strike            Positive
	Quantity          Positive
	Expiration        ExpirationDate
	ImpliedVolatility Positive
	RiskFreeRate      decimal.Decimal
	DividendYield     Positive
	UnderlyingPrice   Positive
}

// NewOption validates the contract tuple.
func NewOption(style OptionStyle, side Side, typ OptionType, symbol string, strike, quantity Positive, exp ExpirationDate, iv Positive, riskFreeRate decimal.Decimal, dividendYield, underlyingPrice Positive) (*Option, error) {
	o := &Option{
		Style:             style,
		Side:              side,
		Type:              typ,
		Symbol:            symbol,
		Strike:            strike,
		Quantity:          quantity,
		Expiration:        exp,
		ImpliedVolatility: iv,
		RiskFreeRate:      riskFreeRate,
		DividendYield:     dividendYield,
		UnderlyingPrice:   underlyingPrice,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Option) Validate() error {
	if o.Strike.IsZero() {
		return fieldErr(ErrInvalidStrike, "strike", o.Strike.String())
	}
	if o.Quantity.IsZero() {
		return fieldErr(ErrInvalidQuantity, "quantity", o.Quantity.String())
	}
	return nil
}

func (o *Option) SetUnderlyingPrice(p Positive)    { o.UnderlyingPrice = p }
func (o *Option) SetImpliedVolatility(iv Positive) { o.ImpliedVolatility = iv }
func (o *Option) SetExpiration(e ExpirationDate)   { o.Expiration = e }

// TimeToExpiry is the year fraction remaining as of now.
func (o *Option) TimeToExpiry(now time.Time) float64 {
	return o.Expiration.YearFraction(now)
}

// IntrinsicValue is the unsigned exercise value at the given spot.
func (o *Option) IntrinsicValue(spot Positive) float64 {
	s := spot.Float64()
	k := o.Strike.Float64()
	if o.Type == Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// IsITM reports whether the contract has positive exercise value at the
// current underlying price.
func (o *Option) IsITM() bool {
	return o.IntrinsicValue(o.UnderlyingPrice) > 0
}
