package pricing

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/optstrat/optstrat/model"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
	// Below this value of sigma*sqrt(T) the d1/d2 division is not
	// attempted and the price collapses to intrinsic value.
	timeVolFloor = 1e-12
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Params carries the raw Black-Scholes inputs. Spot and strike must be
// positive; T is the year fraction to expiry.
type Params struct {
	S     float64 // spot
	K     float64 // strike
	T     float64 // year fraction
	R     float64 // risk-free rate
	Q     float64 // continuous dividend yield
	Sigma float64 // volatility
}

// ParamsFromOption extracts pricing inputs from a contract as of now.
func ParamsFromOption(o *model.Option, now time.Time) Params {
	r, _ := o.RiskFreeRate.Float64()
	return Params{
		S:     o.UnderlyingPrice.Float64(),
		K:     o.Strike.Float64(),
		T:     o.TimeToExpiry(now),
		R:     r,
		Q:     o.DividendYield.Float64(),
		Sigma: o.ImpliedVolatility.Float64(),
	}
}

func d1d2(p Params) (float64, float64) {
	sqrtT := math.Sqrt(p.T)
	d1 := (math.Log(p.S/p.K) + (p.R-p.Q+0.5*p.Sigma*p.Sigma)*p.T) / (p.Sigma * sqrtT)
	d2 := d1 - p.Sigma*sqrtT
	return d1, d2
}

func normCDF(x float64) float64 { return stdNormal.CDF(x) }
func normPDF(x float64) float64 { return stdNormal.Prob(x) }

// Intrinsic is the exercise value for the given payoff type.
func Intrinsic(typ model.OptionType, s, k float64) float64 {
	if typ == model.Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// Price is the European Black-Scholes price. When sigma*sqrt(T) vanishes
// the intrinsic value is returned instead. Short positions carry the
// negated price.
func Price(side model.Side, typ model.OptionType, p Params) float64 {
	return side.Multiplier() * longPrice(typ, p)
}

func longPrice(typ model.OptionType, p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return Intrinsic(typ, p.S, p.K)
	}
	d1, d2 := d1d2(p)
	if typ == model.Call {
		return p.S*math.Exp(-p.Q*p.T)*normCDF(d1) - p.K*math.Exp(-p.R*p.T)*normCDF(d2)
	}
	return p.K*math.Exp(-p.R*p.T)*normCDF(-d2) - p.S*math.Exp(-p.Q*p.T)*normCDF(-d1)
}

// OptionPrice prices a contract as of now, signed by its side.
func OptionPrice(o *model.Option, now time.Time) float64 {
	return Price(o.Side, o.Type, ParamsFromOption(o, now))
}

// PositionPL is the total P&L of a position at the given spot, time to
// expiry and volatility: realized flows plus the change in the side-signed
// contract value since open.
func PositionPL(pos *model.Position, spot, tau, sigma float64) float64 {
	o := &pos.Option
	r, _ := o.RiskFreeRate.Float64()
	entry := pos.Premium.Float64() * o.Side.Multiplier()
	now := Price(o.Side, o.Type, Params{
		S:     spot,
		K:     o.Strike.Float64(),
		T:     tau,
		R:     r,
		Q:     o.DividendYield.Float64(),
		Sigma: sigma,
	})
	unrealized := (now - entry) * o.Quantity.Float64()
	return unrealized - pos.TotalFees()
}

// PayoffAt is PositionPL at expiration, where the price collapses to
// intrinsic value.
func PayoffAt(pos *model.Position, spot float64) float64 {
	return PositionPL(pos, spot, 0, pos.Option.ImpliedVolatility.Float64())
}

func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
