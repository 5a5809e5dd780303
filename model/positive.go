package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Positive is a non-negative fixed-precision decimal. The zero value is 0.
// Arithmetic that is closed on non-negatives stays non-negative; Sub
// saturates at zero instead of going negative.
type Positive struct {
	d decimal.Decimal
}

var (
	PZero = Positive{}
	POne  = Positive{d: decimal.New(1, 0)}
	// PInfinity is a sentinel far beyond any representable price or rate.
	// Float64 conversion yields +Inf.
	PInfinity = Positive{d: decimal.New(1, 1000)}
)

// NewPositive builds a Positive from a float, rejecting negatives and NaN.
func NewPositive(v float64) (Positive, error) {
	if v != v {
		return PZero, fieldErr(ErrConversionFailure, "value", "NaN")
	}
	if v < 0 {
		return PZero, fieldErr(ErrNegativeValue, "value", strconv.FormatFloat(v, 'g', -1, 64))
	}
	return Positive{d: decimal.NewFromFloat(v)}, nil
}

// MustPositive is NewPositive for compile-time-known constants; it panics
// on negative input.
func MustPositive(v float64) Positive {
	p, err := NewPositive(v)
	if err != nil {
		panic(err)
	}
	return p
}

// PositiveFromDecimal wraps an existing decimal, rejecting negatives.
func PositiveFromDecimal(d decimal.Decimal) (Positive, error) {
	if d.IsNegative() {
		return PZero, fieldErr(ErrNegativeValue, "value", d.String())
	}
	return Positive{d: d}, nil
}

// ParsePositive parses a decimal string, rejecting negatives.
func ParsePositive(s string) (Positive, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return PZero, fieldErr(ErrConversionFailure, "value", s)
	}
	return PositiveFromDecimal(d)
}

func (p Positive) Add(q Positive) Positive { return Positive{d: p.d.Add(q.d)} }

// Sub saturates at zero rather than producing a negative value.
func (p Positive) Sub(q Positive) Positive {
	r := p.d.Sub(q.d)
	if r.IsNegative() {
		return PZero
	}
	return Positive{d: r}
}

func (p Positive) Mul(q Positive) Positive { return Positive{d: p.d.Mul(q.d)} }

func (p Positive) Div(q Positive) (Positive, error) {
	if q.d.IsZero() {
		return PZero, fieldErr(ErrDivisionByZero, "divisor", "0")
	}
	return Positive{d: p.d.Div(q.d)}, nil
}

func (p Positive) Cmp(q Positive) int       { return p.d.Cmp(q.d) }
func (p Positive) LessThan(q Positive) bool { return p.d.Cmp(q.d) < 0 }
func (p Positive) GreaterThan(q Positive) bool {
	return p.d.Cmp(q.d) > 0
}
func (p Positive) Equal(q Positive) bool { return p.d.Cmp(q.d) == 0 }
func (p Positive) IsZero() bool          { return p.d.IsZero() }

func (p Positive) Max(q Positive) Positive {
	if p.Cmp(q) >= 0 {
		return p
	}
	return q
}

func (p Positive) Min(q Positive) Positive {
	if p.Cmp(q) <= 0 {
		return p
	}
	return q
}

func (p Positive) Float64() float64 {
	f, _ := p.d.Float64()
	return f
}

func (p Positive) Decimal() decimal.Decimal { return p.d }
func (p Positive) String() string           { return p.d.String() }

// MarshalJSON serializes as a quoted decimal string to preserve precision.
func (p Positive) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.d.String())), nil
}

func (p *Positive) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		// Allow bare numbers as well.
		s = string(data)
	}
	v, perr := ParsePositive(s)
	if perr != nil {
		return perr
	}
	*p = v
	return nil
}
