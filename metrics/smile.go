package metrics

import (
	"math"

	"github.com/optstrat/optstrat/chains"
	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
)

// SmileParams parameterize the quadratic smile in log-moneyness, scaling
// the ATM volatility:
//
//	sigma(K) = ATMVol * (1 + Skew*m + Curvature*m^2), m = ln(K/S)
type SmileParams struct {
	ATMVol    float64
	Skew      float64
	Curvature float64
}

func (p SmileParams) at(spot, strike float64) float64 {
	m := math.Log(strike / spot)
	factor := 1 + p.Skew*m + p.Curvature*m*m
	factor = math.Min(3.0, math.Max(0.01, factor))
	return math.Max(1e-4, p.ATMVol*factor)
}

// SmileDynamicsCurve evaluates the parametric smile on the chain's strike
// ladder.
func SmileDynamicsCurve(chain *chains.OptionChain, p SmileParams) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	spot := chain.UnderlyingPrice.Float64()
	var pts []geometrics.Point2D
	for _, strike := range chain.Strikes() {
		pts = append(pts, geometrics.NewPoint2D(strike.Float64(), p.at(spot, strike.Float64())))
	}
	return geometrics.NewCurve(pts), nil
}

// SmileDynamicsSurface extends the smile across tenors, scaling skew and
// curvature by 1/sqrt(days/30) so short tenors steepen. Empty day lists
// yield an empty surface.
func SmileDynamicsSurface(chain *chains.OptionChain, p SmileParams, days []model.Positive) (*geometrics.Surface, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	spot := chain.UnderlyingPrice.Float64()

	var pts []geometrics.Point3D
	for _, d := range days {
		day := d.Float64()
		if day <= 0 {
			continue
		}
		scale := 1 / math.Sqrt(day/30)
		scaled := SmileParams{
			ATMVol:    p.ATMVol,
			Skew:      p.Skew * scale,
			Curvature: p.Curvature * scale,
		}
		for _, strike := range chain.Strikes() {
			iv := scaled.at(spot, strike.Float64())
			pts = append(pts, geometrics.NewPoint3D(strike.Float64(), day, iv))
		}
	}
	return geometrics.NewSurface(pts), nil
}
