package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/optstrat/optstrat/chains"
	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
	"github.com/optstrat/optstrat/pricing"
)

func decimalFrom(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// DollarGamma is Gamma * S^2 * 0.01 per strike: the second-order P&L
// impact of a 1% spot move.
func DollarGamma(chain *chains.OptionChain) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	s := chain.UnderlyingPrice.Float64()
	var pts []geometrics.Point2D
	for _, row := range chain.Rows() {
		pts = append(pts, geometrics.NewPoint2D(row.Strike.Float64(), row.Gamma*s*s*0.01))
	}
	return geometrics.NewCurve(pts), nil
}

// DeltaGammaCurve is the combined first- and second-order exposure
// Delta*S + Gamma*S^2/100 per strike.
func DeltaGammaCurve(chain *chains.OptionChain) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	s := chain.UnderlyingPrice.Float64()
	var pts []geometrics.Point2D
	for _, row := range chain.Rows() {
		pts = append(pts, geometrics.NewPoint2D(row.Strike.Float64(), row.Delta*s+row.Gamma*s*s/100))
	}
	return geometrics.NewCurve(pts), nil
}

// DeltaGammaSurface recomputes the ATM call delta exposure over a
// (price, days) grid, taking the smile volatility from the strike row
// nearest each price. As days shrink the delta decays toward 0 or 1 and
// the exposure follows. Empty axes yield an empty surface.
func DeltaGammaSurface(chain *chains.OptionChain, prices, days []model.Positive) (*geometrics.Surface, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	atm, err := chain.ATMStrike()
	if err != nil {
		return nil, err
	}
	r, _ := chain.RiskFreeRate.Float64()
	k := atm.Float64()
	q := chain.DividendYield.Float64()

	// Rows without a quoted IV fall back to the ATM mid IV.
	atmSigma := 0.0
	if row, err := chain.AtStrike(atm); err == nil {
		atmSigma = row.MidIV.Float64()
	}

	xs := make([]float64, len(prices))
	for i, p := range prices {
		xs[i] = p.Float64()
	}
	ys := make([]float64, len(days))
	for i, d := range days {
		ys[i] = d.Float64()
	}

	return geometrics.SurfaceFromGrid(xs, ys, func(price, day float64) geometrics.Point3D {
		sigma := atmSigma
		if row, err := chain.ClosestStrike(model.MustPositive(price)); err == nil && !row.MidIV.IsZero() {
			sigma = row.MidIV.Float64()
		}
		delta := pricing.Delta(model.Call, pricing.Params{
			S:     price,
			K:     k,
			T:     day / model.DaysPerYear,
			R:     r,
			Q:     q,
			Sigma: sigma,
		})
		return geometrics.NewPoint3D(price, day, delta*price)
	}), nil
}

// PriceShockCurve is the second-order Taylor P&L Delta*dS + Gamma*dS^2/2
// per strike for the given relative spot shock.
func PriceShockCurve(chain *chains.OptionChain, shock float64) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	s := chain.UnderlyingPrice.Float64()
	ds := s * shock
	var pts []geometrics.Point2D
	for _, row := range chain.Rows() {
		impact := row.Delta*ds + 0.5*row.Gamma*ds*ds
		pts = append(pts, geometrics.NewPoint2D(row.Strike.Float64(), impact))
	}
	return geometrics.NewCurve(pts), nil
}

// PriceShockSurface re-evaluates the ATM call value over a
// (price, volatility) grid. Zero step counts yield an empty surface.
func PriceShockSurface(chain *chains.OptionChain, priceLo, priceHi model.Positive, volLo, volHi float64, priceSteps, volSteps int, now time.Time) (*geometrics.Surface, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	atm, err := chain.ATMStrike()
	if err != nil {
		return nil, err
	}
	r, _ := chain.RiskFreeRate.Float64()
	k := atm.Float64()
	q := chain.DividendYield.Float64()
	tau := chain.TimeToExpiry(now)

	xs := gridAxis(priceLo.Float64(), priceHi.Float64(), priceSteps)
	ys := gridAxis(volLo, volHi, volSteps)

	return geometrics.SurfaceFromGrid(xs, ys, func(price, vol float64) geometrics.Point3D {
		value := pricing.Price(model.Long, model.Call, pricing.Params{
			S:     price,
			K:     k,
			T:     tau,
			R:     r,
			Q:     q,
			Sigma: vol,
		})
		return geometrics.NewPoint3D(price, vol, value)
	}), nil
}

func gridAxis(lo, hi float64, steps int) []float64 {
	if steps < 1 {
		return nil
	}
	if steps == 1 {
		return []float64{lo}
	}
	out := make([]float64, steps)
	for i := 0; i < steps; i++ {
		out[i] = lo + (hi-lo)*float64(i)/float64(steps-1)
	}
	return out
}
