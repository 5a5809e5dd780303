package strategies

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
	"github.com/optstrat/optstrat/pricing"
)

// Kind tags the strategy variant.
type Kind int

const (
	KindCustom Kind = iota
	KindBullCallSpread
	KindBearCallSpread
	KindBullPutSpread
	KindBearPutSpread
	KindLongStraddle
	KindShortStraddle
	KindLongStrangle
	KindShortStrangle
	KindLongButterfly
	KindShortButterfly
	KindCallButterfly
	KindIronCondor
	KindIronButterfly
	KindLongCall
	KindShortCall
	KindLongPut
	KindShortPut
	KindCoveredCall
	KindPoorMansCoveredCall
)

var kindNames = map[Kind]string{
	KindCustom:              "Custom",
	KindBullCallSpread:      "Bull Call Spread",
	KindBearCallSpread:      "Bear Call Spread",
	KindBullPutSpread:       "Bull Put Spread",
	KindBearPutSpread:       "Bear Put Spread",
	KindLongStraddle:        "Long Straddle",
	KindShortStraddle:       "Short Straddle",
	KindLongStrangle:        "Long Strangle",
	KindShortStrangle:       "Short Strangle",
	KindLongButterfly:       "Long Butterfly",
	KindShortButterfly:      "Short Butterfly",
	KindCallButterfly:       "Call Butterfly",
	KindIronCondor:          "Iron Condor",
	KindIronButterfly:       "Iron Butterfly",
	KindLongCall:            "Long Call",
	KindShortCall:           "Short Call",
	KindLongPut:             "Long Put",
	KindShortPut:            "Short Put",
	KindCoveredCall:         "Covered Call",
	KindPoorMansCoveredCall: "Poor Man's Covered Call",
}

func (k Kind) String() string { return kindNames[k] }

// Strategy is the uniform query surface over every variant.
type Strategy interface {
	Kind() Kind
	Name() string
	Description() string
	Validate() error
	Positions() []model.Position
	Payoff(spot model.Positive) float64
	BreakEvenPoints() ([]model.Positive, error)
	MaxProfit() (model.Positive, error)
	MaxLoss() (model.Positive, error)
	ProfitArea() (float64, error)
	ProfitRatio() (float64, error)
	BestRangeToShow(step model.Positive) ([]model.Positive, error)
	PayoffCurve(step model.Positive) (*geometrics.Curve, error)
	GraphData(step model.Positive) (geometrics.GraphData, error)
}

// Config carries the fields shared by every leg a constructor builds.
// OpenFee and CloseFee are charged per leg.
type Config struct {
	Symbol            string
	UnderlyingPrice   model.Positive
	Expiration        model.ExpirationDate
	ImpliedVolatility model.Positive
	RiskFreeRate      decimal.Decimal
	DividendYield     model.Positive
	Quantity          model.Positive
	OpenFee           model.Positive
	CloseFee          model.Positive
}

func (c Config) leg(side model.Side, typ model.OptionType, strike, premium model.Positive) (model.Position, error) {
	return c.legAt(side, typ, strike, premium, c.Expiration)
}

func (c Config) legAt(side model.Side, typ model.OptionType, strike, premium model.Positive, exp model.ExpirationDate) (model.Position, error) {
	o, err := model.NewOption(model.European, side, typ, c.Symbol, strike, c.Quantity, exp, c.ImpliedVolatility, c.RiskFreeRate, c.DividendYield, c.UnderlyingPrice)
	if err != nil {
		return model.Position{}, err
	}
	p, err := model.NewPosition(*o, premium, c.OpenFee, c.CloseFee, time.Now())
	if err != nil {
		return model.Position{}, err
	}
	return *p, nil
}

// stockLeg is an underlying holding carried by covered strategies. It
// contributes a linear payoff and no kink.
type stockLeg struct {
	side     model.Side
	quantity model.Positive
	entry    model.Positive
}

const (
	rangePadding   = 0.05
	payoffTol      = 1e-8
	rootTol        = 1e-9
	slopeEps       = 1e-9
	bisectionSteps = 100
	areaSamples    = 200
)

// base carries the legs and implements every derived query; variants add
// their shape validation on top.
type base struct {
	kind        Kind
	name        string
	description string
	legs        []model.Position
	stock       *stockLeg
}

func newBase(kind Kind, description string, legs []model.Position) base {
	return base{kind: kind, name: kind.String(), description: description, legs: legs}
}

func (b *base) Kind() Kind          { return b.kind }
func (b *base) Name() string        { return b.name }
func (b *base) Description() string { return b.description }

func (b *base) Positions() []model.Position {
	out := make([]model.Position, len(b.legs))
	copy(out, b.legs)
	return out
}

// Validate checks the variant-independent invariants: at least one leg,
// all legs on the same symbol.
func (b *base) Validate() error {
	if len(b.legs) == 0 && b.stock == nil {
		return ErrEmptyStrategy
	}
	for i := 1; i < len(b.legs); i++ {
		if b.legs[i].Option.Symbol != b.legs[0].Option.Symbol {
			return ErrMixedSymbols
		}
	}
	return nil
}

// horizonDays is the evaluation horizon: the earliest leg expiry.
func (b *base) horizonDays() float64 {
	now := time.Now()
	horizon := math.Inf(1)
	for _, leg := range b.legs {
		if d := leg.Option.Expiration.DaysLeft(now).Float64(); d < horizon {
			horizon = d
		}
	}
	if math.IsInf(horizon, 1) {
		return 0
	}
	return horizon
}

// Payoff is the total strategy P&L at the given spot when the nearest
// expiry is reached. Legs expiring at the horizon collapse to intrinsic;
// longer-dated legs are re-priced with their remaining time.
func (b *base) Payoff(spot model.Positive) float64 {
	return b.payoffAt(spot.Float64())
}

func (b *base) payoffAt(s float64) float64 {
	now := time.Now()
	horizon := b.horizonDays()
	total := 0.0
	for i := range b.legs {
		leg := b.legs[i]
		remaining := leg.Option.Expiration.DaysLeft(now).Float64() - horizon
		if remaining < 0 {
			remaining = 0
		}
		total += pricing.PositionPL(&leg, s, remaining/model.DaysPerYear, leg.Option.ImpliedVolatility.Float64())
	}
	if b.stock != nil {
		total += b.stock.side.Multiplier() * (s - b.stock.entry.Float64()) * b.stock.quantity.Float64()
	}
	return total
}

// kinks are the abscissae where the payoff changes slope: the leg
// strikes, sorted and deduplicated.
func (b *base) kinks() []float64 {
	var ks []float64
	for _, leg := range b.legs {
		ks = append(ks, leg.Option.Strike.Float64())
	}
	sort.Float64s(ks)
	out := ks[:0]
	for i, k := range ks {
		if i > 0 && k == out[len(out)-1] {
			continue
		}
		out = append(out, k)
	}
	return out
}

// showRange is the smallest interval enclosing all strikes with 5%
// padding on both sides.
func (b *base) showRange() (float64, float64) {
	ks := b.kinks()
	if len(ks) == 0 {
		if b.stock != nil {
			e := b.stock.entry.Float64()
			return e * (1 - rangePadding), e * (1 + rangePadding)
		}
		return 0, 0
	}
	return ks[0] * (1 - rangePadding), ks[len(ks)-1] * (1 + rangePadding)
}

// BestRangeToShow discretises the padded strike interval by step.
func (b *base) BestRangeToShow(step model.Positive) ([]model.Positive, error) {
	if step.IsZero() {
		return nil, model.ErrInvalidPrice
	}
	lo, hi := b.showRange()
	if hi <= lo {
		return nil, ErrEmptyStrategy
	}
	var out []model.Positive
	st := step.Float64()
	for s := lo; s <= hi+payoffTol; s += st {
		out = append(out, model.MustPositive(s))
	}
	return out, nil
}

// BreakEvenPoints finds the strict roots of the payoff by bisection on
// the intervals between consecutive kinks. Intervals where the payoff is
// identically zero contribute their endpoints.
func (b *base) BreakEvenPoints() ([]model.Positive, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	lo, hi := b.showRange()
	bounds := append([]float64{lo}, b.kinks()...)
	bounds = append(bounds, hi)
	sort.Float64s(bounds)

	var roots []float64
	for i := 1; i < len(bounds); i++ {
		a, c := bounds[i-1], bounds[i]
		if c-a < rootTol {
			continue
		}
		fa, fc := b.payoffAt(a), b.payoffAt(c)
		mid := b.payoffAt((a + c) / 2)
		switch {
		case math.Abs(fa) <= payoffTol && math.Abs(fc) <= payoffTol && math.Abs(mid) <= payoffTol:
			// Payoff flat at zero across the interval.
			roots = append(roots, a, c)
		case math.Abs(fa) <= payoffTol:
			roots = append(roots, a)
		case math.Abs(fc) <= payoffTol:
			roots = append(roots, c)
		case fa*fc < 0:
			roots = append(roots, b.bisect(a, c, fa))
		}
	}

	sort.Float64s(roots)
	var out []model.Positive
	for i, r := range roots {
		if i > 0 && math.Abs(r-out[len(out)-1].Float64()) < 1e-6 {
			continue
		}
		if r < 0 {
			continue
		}
		out = append(out, model.MustPositive(r))
	}
	return out, nil
}

func (b *base) bisect(a, c, fa float64) float64 {
	for i := 0; i < bisectionSteps && c-a > rootTol; i++ {
		m := (a + c) / 2
		fm := b.payoffAt(m)
		if math.Abs(fm) <= payoffTol {
			return m
		}
		if fa*fm < 0 {
			c = m
		} else {
			a = m
			fa = fm
		}
	}
	return (a + c) / 2
}

// upsideSlope is the payoff slope beyond the highest kink: net signed
// call quantity plus any stock holding.
func (b *base) upsideSlope() float64 {
	slope := 0.0
	for _, leg := range b.legs {
		if leg.Option.Type == model.Call {
			slope += leg.Option.Side.Multiplier() * leg.Option.Quantity.Float64()
		}
	}
	if b.stock != nil {
		slope += b.stock.side.Multiplier() * b.stock.quantity.Float64()
	}
	return slope
}

// extremes evaluates the payoff at every kink and at the padded range
// endpoints.
func (b *base) extremes() (float64, float64) {
	lo, hi := b.showRange()
	points := append([]float64{lo, hi}, b.kinks()...)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, s := range points {
		v := b.payoffAt(s)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return minV, maxV
}

// MaxProfit is the largest payoff over the kinks and range endpoints.
// Strategies whose payoff grows without limit return ErrUnbounded.
func (b *base) MaxProfit() (model.Positive, error) {
	if err := b.Validate(); err != nil {
		return model.PZero, err
	}
	if b.upsideSlope() > slopeEps {
		return model.PInfinity, ErrUnbounded
	}
	_, maxV := b.extremes()
	if maxV < 0 {
		return model.PZero, nil
	}
	return model.MustPositive(maxV), nil
}

// MaxLoss is the deepest payoff drawdown as a positive magnitude.
func (b *base) MaxLoss() (model.Positive, error) {
	if err := b.Validate(); err != nil {
		return model.PZero, err
	}
	if b.upsideSlope() < -slopeEps {
		return model.PInfinity, ErrUnbounded
	}
	minV, _ := b.extremes()
	if minV > 0 {
		return model.PZero, nil
	}
	return model.MustPositive(-minV), nil
}

// ProfitArea is the signed measure under the payoff over the show range,
// normalised by the range width and the payoff amplitude; it lies in
// [-1, +1].
func (b *base) ProfitArea() (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	lo, hi := b.showRange()
	if hi <= lo {
		return 0, ErrEmptyStrategy
	}
	dx := (hi - lo) / areaSamples
	area := 0.0
	prev := b.payoffAt(lo)
	amplitude := math.Abs(prev)
	for i := 1; i <= areaSamples; i++ {
		v := b.payoffAt(lo + float64(i)*dx)
		area += (prev + v) / 2 * dx
		amplitude = math.Max(amplitude, math.Abs(v))
		prev = v
	}
	if amplitude < payoffTol {
		return 0, nil
	}
	norm := area / ((hi - lo) * amplitude)
	return math.Max(-1, math.Min(1, norm)), nil
}

// ProfitRatio is max profit over max loss. Unbounded profit maps to
// +Inf, unbounded loss to 0, and a riskless profitable payoff to +Inf.
func (b *base) ProfitRatio() (float64, error) {
	profit, perr := b.MaxProfit()
	if perr != nil && !errors.Is(perr, ErrUnbounded) {
		return 0, perr
	}
	loss, lerr := b.MaxLoss()
	if lerr != nil && !errors.Is(lerr, ErrUnbounded) {
		return 0, lerr
	}
	if errors.Is(lerr, ErrUnbounded) {
		return 0, nil
	}
	if errors.Is(perr, ErrUnbounded) {
		return math.Inf(1), nil
	}
	if loss.IsZero() {
		if profit.IsZero() {
			return 0, nil
		}
		return math.Inf(1), nil
	}
	return profit.Float64() / loss.Float64(), nil
}

// PayoffCurve samples the payoff over BestRangeToShow.
func (b *base) PayoffCurve(step model.Positive) (*geometrics.Curve, error) {
	grid, err := b.BestRangeToShow(step)
	if err != nil {
		return nil, err
	}
	pts := make([]geometrics.Point2D, 0, len(grid))
	for _, s := range grid {
		pts = append(pts, geometrics.NewPoint2D(s.Float64(), b.payoffAt(s.Float64())))
	}
	return geometrics.NewCurve(pts), nil
}

// GraphData renders the payoff curve for external plotters.
func (b *base) GraphData(step model.Positive) (geometrics.GraphData, error) {
	curve, err := b.PayoffCurve(step)
	if err != nil {
		return geometrics.GraphData{}, err
	}
	return curve.GraphData(b.name), nil
}
