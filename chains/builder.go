package chains

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/optimize"

	"github.com/optstrat/optstrat/model"
	"github.com/optstrat/optstrat/pricing"
)

// ivFloor keeps per-strike volatilities strictly positive even when the
// smile polynomial dips below zero far from the money.
const ivFloor = 1e-4

// ChainParams drive the parametric chain builder. The smile scales the
// ATM volatility by a quadratic in log-moneyness m = ln(K/S):
//
//	sigma(K) = BaseVolatility * (1 + Skew*m + Curvature*m^2)
//
// The scale factor is clamped to [0.01, 3.0] so deep wings stay sane.
type ChainParams struct {
	Symbol          string
	UnderlyingPrice model.Positive
	StrikeCount     int
	StrikeStep      model.Positive
	BaseVolatility  model.Positive
	Skew            decimal.Decimal
	Curvature       decimal.Decimal
	Spread          model.Positive // full bid-ask spread applied to mids
	RiskFreeRate    decimal.Decimal
	DividendYield   model.Positive
	Expiration      model.ExpirationDate
	Volume          uint64
	OpenInterest    uint64
}

func (p *ChainParams) validate() error {
	if p.StrikeCount < 1 {
		return ErrEmptyChain
	}
	if p.UnderlyingPrice.IsZero() {
		return model.ErrInvalidPrice
	}
	if p.StrikeStep.IsZero() {
		return model.ErrInvalidStrike
	}
	if p.BaseVolatility.IsZero() {
		return model.ErrInvalidVolatility
	}
	return nil
}

// SmileIV evaluates the parametric smile at a strike.
func (p *ChainParams) SmileIV(strike model.Positive) float64 {
	m := math.Log(strike.Float64() / p.UnderlyingPrice.Float64())
	beta, _ := p.Skew.Float64()
	gamma, _ := p.Curvature.Float64()
	factor := 1 + beta*m + gamma*m*m
	factor = math.Min(3.0, math.Max(0.01, factor))
	return math.Max(ivFloor, p.BaseVolatility.Float64()*factor)
}

// BuildChain constructs a chain of StrikeCount rows laddered around the
// spot, pricing every quote from the kernel under the per-strike smile
// volatility.
func BuildChain(p ChainParams, now time.Time) (*OptionChain, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	chain := NewOptionChain(p.Symbol, p.UnderlyingPrice, p.RiskFreeRate, p.DividendYield, p.Expiration)
	tau := p.Expiration.YearFraction(now)
	r, _ := p.RiskFreeRate.Float64()
	spot := p.UnderlyingPrice.Float64()
	half := p.Spread.Float64() / 2

	// Ladder the strikes symmetrically around the spot, snapped to the
	// step grid.
	atm := p.UnderlyingPrice.Decimal().Div(p.StrikeStep.Decimal()).Round(0).Mul(p.StrikeStep.Decimal())
	lowSteps := (p.StrikeCount - 1) / 2
	first := atm.Sub(p.StrikeStep.Decimal().Mul(decimal.NewFromInt(int64(lowSteps))))

	for i := 0; i < p.StrikeCount; i++ {
		strikeDec := first.Add(p.StrikeStep.Decimal().Mul(decimal.NewFromInt(int64(i))))
		strike, err := model.PositiveFromDecimal(strikeDec)
		if err != nil || strike.IsZero() {
			continue
		}

		sigma := p.SmileIV(strike)
		params := pricing.Params{
			S:     spot,
			K:     strike.Float64(),
			T:     tau,
			R:     r,
			Q:     p.DividendYield.Float64(),
			Sigma: sigma,
		}

		callMid := pricing.Price(model.Long, model.Call, params)
		putMid := pricing.Price(model.Long, model.Put, params)

		row := OptionData{
			Strike:       strike,
			CallBid:      clampPositive(callMid - half),
			CallAsk:      clampPositive(callMid + half),
			PutBid:       clampPositive(putMid - half),
			PutAsk:       clampPositive(putMid + half),
			CallIV:       model.MustPositive(sigma),
			PutIV:        model.MustPositive(sigma),
			MidIV:        model.MustPositive(sigma),
			Delta:        pricing.Delta(model.Call, params),
			Gamma:        pricing.Gamma(params),
			Volume:       p.Volume,
			OpenInterest: p.OpenInterest,
		}
		if err := chain.AddRow(row); err != nil {
			return nil, err
		}
	}
	if chain.Len() == 0 {
		return nil, ErrEmptyChain
	}
	return chain, nil
}

func clampPositive(v float64) model.Positive {
	if v < 0 {
		return model.PZero
	}
	return model.MustPositive(v)
}

// SmileFit is a calibrated smile parameter set.
type SmileFit struct {
	BaseVolatility float64
	Skew           float64
	Curvature      float64
	MSE            float64
}

// CalibrateSmile fits (sigma0, beta, gamma) to the chain's mid implied
// volatilities by Nelder-Mead on the mean squared error.
func CalibrateSmile(chain *OptionChain) (*SmileFit, error) {
	rows := chain.Filter(func(d *OptionData) bool { return !d.MidIV.IsZero() })
	if len(rows) < 3 {
		return nil, ErrEmptyChain
	}
	spot := chain.UnderlyingPrice.Float64()

	objective := func(x []float64) float64 {
		mse := 0.0
		for _, row := range rows {
			m := math.Log(row.Strike.Float64() / spot)
			fit := x[0] * (1 + x[1]*m + x[2]*m*m)
			diff := fit - row.MidIV.Float64()
			mse += diff * diff
		}
		return mse / float64(len(rows))
	}

	problem := optimize.Problem{Func: objective}
	atmIV := rows[len(rows)/2].MidIV.Float64()
	result, err := optimize.Minimize(problem, []float64{atmIV, 0, 0}, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, err
	}

	return &SmileFit{
		BaseVolatility: result.X[0],
		Skew:           result.X[1],
		Curvature:      result.X[2],
		MSE:            result.F,
	}, nil
}
