package pricing

import (
	"math"
	"time"

	"github.com/optstrat/optstrat/model"
)

// Greeks holds the standard first- and second-order sensitivities. Theta
// is per calendar day, Vega per 1.00 vol unit, Rho per 1.00 rate unit.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
	Vanna float64
	Vomma float64
}

// Delta is the long delta: a long call lies in (0,1), a long put in (-1,0).
func Delta(typ model.OptionType, p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		// Expired or vol-less contract: delta steps between 0 and +-1.
		if typ == model.Call {
			if p.S > p.K {
				return 1
			}
			return 0
		}
		if p.S < p.K {
			return -1
		}
		return 0
	}
	d1, _ := d1d2(p)
	if typ == model.Call {
		return math.Exp(-p.Q*p.T) * normCDF(d1)
	}
	return math.Exp(-p.Q*p.T) * (normCDF(d1) - 1)
}

// Gamma is unsigned; the position-level value flips for Short.
func Gamma(p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	d1, _ := d1d2(p)
	return sanitizeFloat(math.Exp(-p.Q*p.T) * normPDF(d1) / (p.S * p.Sigma * math.Sqrt(p.T)))
}

// Theta is the long theta per calendar day, negative for long premium.
func Theta(typ model.OptionType, p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	d1, d2 := d1d2(p)
	decay := -p.S * math.Exp(-p.Q*p.T) * normPDF(d1) * p.Sigma / (2 * math.Sqrt(p.T))
	var carry float64
	if typ == model.Call {
		carry = -p.R*p.K*math.Exp(-p.R*p.T)*normCDF(d2) + p.Q*p.S*math.Exp(-p.Q*p.T)*normCDF(d1)
	} else {
		carry = p.R*p.K*math.Exp(-p.R*p.T)*normCDF(-d2) - p.Q*p.S*math.Exp(-p.Q*p.T)*normCDF(-d1)
	}
	return (decay + carry) / model.DaysPerYear
}

// Vega is unsigned, per 1.00 volatility unit.
func Vega(p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	d1, _ := d1d2(p)
	return p.S * math.Exp(-p.Q*p.T) * normPDF(d1) * math.Sqrt(p.T)
}

// Rho is per 1.00 rate unit.
func Rho(typ model.OptionType, p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	_, d2 := d1d2(p)
	if typ == model.Call {
		return p.K * p.T * math.Exp(-p.R*p.T) * normCDF(d2)
	}
	return -p.K * p.T * math.Exp(-p.R*p.T) * normCDF(-d2)
}

// Vanna is dDelta/dVol.
func Vanna(p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	d1, d2 := d1d2(p)
	return sanitizeFloat(-math.Exp(-p.Q*p.T) * normPDF(d1) * d2 / p.Sigma)
}

// Vomma (volga) is dVega/dVol.
func Vomma(p Params) float64 {
	if p.Sigma*math.Sqrt(p.T) < timeVolFloor {
		return 0
	}
	d1, d2 := d1d2(p)
	return sanitizeFloat(Vega(p) * d1 * d2 / p.Sigma)
}

// Compute returns the position-level Greeks: every sensitivity is flipped
// for Short, which makes theta positive for short premium.
func Compute(side model.Side, typ model.OptionType, p Params) Greeks {
	m := side.Multiplier()
	return Greeks{
		Delta: m * Delta(typ, p),
		Gamma: m * Gamma(p),
		Theta: m * Theta(typ, p),
		Vega:  m * Vega(p),
		Rho:   m * Rho(typ, p),
		Vanna: m * Vanna(p),
		Vomma: m * Vomma(p),
	}
}

// OptionGreeks computes the position-level Greeks of a contract as of now.
func OptionGreeks(o *model.Option, now time.Time) Greeks {
	return Compute(o.Side, o.Type, ParamsFromOption(o, now))
}

// ShadowGamma measures delta response to a joint spot and vol bump: the
// up-gamma uses (S*(1+priceChange), sigma*(1+volChange)), the down-gamma
// the mirrored scenario.
func ShadowGamma(typ model.OptionType, p Params, priceChange, volChange float64) (float64, float64) {
	baseDelta := Delta(typ, p)

	up := p
	up.S = p.S * (1 + priceChange)
	up.Sigma = p.Sigma * (1 + volChange)
	shadowUp := (Delta(typ, up) - baseDelta) / (up.S - p.S)

	down := p
	down.S = p.S * (1 - priceChange)
	down.Sigma = p.Sigma * (1 - volChange)
	shadowDown := (baseDelta - Delta(typ, down)) / (p.S - down.S)

	return shadowUp, shadowDown
}
