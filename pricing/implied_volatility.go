package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/optstrat/optstrat/model"
)

var (
	ErrBelowIntrinsic = errors.New("pricing: target price below intrinsic value")
	ErrNonConvergent  = errors.New("pricing: implied volatility did not converge")
	ErrZeroVega       = errors.New("pricing: zero vega neighbourhood")
	ErrOutOfBracket   = errors.New("pricing: target price outside volatility bracket")
)

const (
	ivLowerBound    = 1e-4
	ivUpperBound    = 5.0
	ivMaxUpperBound = 50.0
	ivTolerance     = 1e-8
	vegaFloor       = 1e-8
)

// IVError carries the solver failure with the target price for reporting.
type IVError struct {
	Target float64
	Err    error
}

func (e *IVError) Error() string {
	return fmt.Sprintf("%v (target=%.6f)", e.Err, e.Target)
}

func (e *IVError) Unwrap() error { return e.Err }

// ImpliedVolatility solves Price(sigma) = target for a long contract with
// a hybrid Newton / bisection iteration. The bracket starts at
// [1e-4, 5.0] and the upper bound expands to 50.0 if needed.
func ImpliedVolatility(target float64, typ model.OptionType, p Params) (float64, error) {
	if target < Intrinsic(typ, p.S, p.K)-ivTolerance {
		return 0, &IVError{Target: target, Err: ErrBelowIntrinsic}
	}
	if p.T <= 0 {
		return 0, &IVError{Target: target, Err: ErrNonConvergent}
	}

	priceAt := func(sigma float64) float64 {
		p.Sigma = sigma
		return longPrice(typ, p)
	}

	lo, hi := ivLowerBound, ivUpperBound
	fLo := priceAt(lo) - target
	fHi := priceAt(hi) - target
	if fLo*fHi > 0 {
		hi = ivMaxUpperBound
		fHi = priceAt(hi) - target
		if fLo*fHi > 0 {
			return 0, &IVError{Target: target, Err: ErrOutOfBracket}
		}
	}

	sigma := 0.5 * (lo + hi)
	for i := 0; i < maxIterations; i++ {
		diff := priceAt(sigma) - target
		if math.Abs(diff) <= ivTolerance {
			return sigma, nil
		}

		if diff > 0 {
			hi = sigma
		} else {
			lo = sigma
		}

		p.Sigma = sigma
		vega := Vega(p)
		if vega >= vegaFloor {
			next := sigma - diff/vega
			if next > lo && next < hi {
				sigma = next
				continue
			}
		} else if hi-lo < ivTolerance {
			return 0, &IVError{Target: target, Err: ErrZeroVega}
		}
		sigma = 0.5 * (lo + hi)
	}
	return 0, &IVError{Target: target, Err: ErrNonConvergent}
}

// OptionImpliedVolatility recovers the volatility implied by an observed
// unsigned contract price.
func OptionImpliedVolatility(o *model.Option, observed float64, tau float64) (model.Positive, error) {
	r, _ := o.RiskFreeRate.Float64()
	sigma, err := ImpliedVolatility(observed, o.Type, Params{
		S: o.UnderlyingPrice.Float64(),
		K: o.Strike.Float64(),
		T: tau,
		R: r,
		Q: o.DividendYield.Float64(),
	})
	if err != nil {
		return model.PZero, err
	}
	return model.NewPositive(sigma)
}
