package geometrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// BasicMetrics are the central moments of the dependent coordinate.
type BasicMetrics struct {
	Mean   decimal.Decimal
	Median decimal.Decimal
	Mode   decimal.Decimal
	StdDev decimal.Decimal
}

// ShapeMetrics describe the distribution shape. Peaks, valleys and
// inflection points are slots for later analysis passes and may be empty.
type ShapeMetrics struct {
	Skewness         decimal.Decimal
	Kurtosis         decimal.Decimal
	Peaks            []Point2D
	Valleys          []Point2D
	InflectionPoints []Point2D
}

// RangeMetrics describe the spread of the dependent coordinate.
type RangeMetrics struct {
	MinPoint Point2D
	MaxPoint Point2D
	Range    decimal.Decimal
	Q1       decimal.Decimal
	Q2       decimal.Decimal
	Q3       decimal.Decimal
	IQR      decimal.Decimal
}

// TrendMetrics hold the OLS line through (x, dependent) and moving
// averages over windows 3, 5 and 7.
type TrendMetrics struct {
	Slope          decimal.Decimal
	Intercept      decimal.Decimal
	RSquared       decimal.Decimal
	MovingAverages map[int][]decimal.Decimal
}

// RiskMetrics are distribution-level risk figures over the dependent
// coordinate. Beta needs an external market series and stays zero.
type RiskMetrics struct {
	Volatility        decimal.Decimal
	ValueAtRisk       decimal.Decimal
	ExpectedShortfall decimal.Decimal
	SharpeRatio       decimal.Decimal
	Beta              decimal.Decimal
}

// Metrics bundles every extractor result for a curve or surface.
type Metrics struct {
	Basic BasicMetrics
	Shape ShapeMetrics
	Range RangeMetrics
	Trend TrendMetrics
	Risk  RiskMetrics
}

// VaR confidence factor for the 95% parametric quantile.
const varZScore = 1.645

// ComputeMetrics extracts the full metric set from the curve, with y as
// the dependent coordinate.
func (c *Curve) ComputeMetrics() (*Metrics, error) {
	if len(c.points) == 0 {
		return nil, ErrEmptyInput
	}
	xs := make([]float64, len(c.points))
	ys := make([]float64, len(c.points))
	for i, p := range c.points {
		xs[i] = p.XF()
		ys[i] = p.YF()
	}
	m := computeMetrics(xs, ys)

	minP, maxP, _ := c.Extrema()
	m.Range.MinPoint = minP
	m.Range.MaxPoint = maxP
	m.Range.Range = maxP.Y.Sub(minP.Y)
	return m, nil
}

// ComputeMetrics extracts the full metric set from the surface, with z as
// the dependent coordinate and x as the regression abscissa.
func (s *Surface) ComputeMetrics() (*Metrics, error) {
	if len(s.points) == 0 {
		return nil, ErrEmptyInput
	}
	xs := make([]float64, len(s.points))
	zs := make([]float64, len(s.points))
	for i, p := range s.points {
		xs[i] = p.XF()
		zs[i] = p.ZF()
	}
	m := computeMetrics(xs, zs)

	minP, maxP, _ := s.Extrema()
	m.Range.MinPoint = Pt2(minP.X, minP.Z)
	m.Range.MaxPoint = Pt2(maxP.X, maxP.Z)
	m.Range.Range = maxP.Z.Sub(minP.Z)
	return m, nil
}

func computeMetrics(xs, ys []float64) *Metrics {
	mean := stat.Mean(ys, nil)
	sd := 0.0
	if len(ys) > 1 {
		sd = stat.StdDev(ys, nil)
		if math.IsNaN(sd) {
			sd = 0
		}
	}

	median, _ := stats.Median(ys)
	mode := mean
	if modes, err := stats.Mode(ys); err == nil && len(modes) > 0 {
		mode = modes[0]
	}

	skew, kurt := 0.0, 0.0
	if len(ys) > 2 && sd > 0 {
		skew = stat.Skew(ys, nil)
		kurt = stat.ExKurtosis(ys, nil)
	}

	// stats.Quartile yields NaN outer quartiles on a one-element
	// series without reporting an error, so a degenerate series
	// collapses every quartile onto the median.
	q := RangeMetrics{}
	if quartiles, err := stats.Quartile(ys); err == nil && len(ys) > 1 {
		q1 := sanitize(quartiles.Q1)
		q3 := sanitize(quartiles.Q3)
		q.Q1 = decimal.NewFromFloat(q1)
		q.Q2 = decimal.NewFromFloat(sanitize(quartiles.Q2))
		q.Q3 = decimal.NewFromFloat(q3)
		q.IQR = decimal.NewFromFloat(q3 - q1)
	} else {
		q.Q1 = decimal.NewFromFloat(median)
		q.Q2 = decimal.NewFromFloat(median)
		q.Q3 = decimal.NewFromFloat(median)
	}

	trend := computeTrend(xs, ys)
	risk := computeRisk(ys, mean, sd)

	return &Metrics{
		Basic: BasicMetrics{
			Mean:   decimal.NewFromFloat(mean),
			Median: decimal.NewFromFloat(median),
			Mode:   decimal.NewFromFloat(mode),
			StdDev: decimal.NewFromFloat(sd),
		},
		Shape: ShapeMetrics{
			Skewness: decimal.NewFromFloat(sanitize(skew)),
			Kurtosis: decimal.NewFromFloat(sanitize(kurt)),
		},
		Range: q,
		Trend: trend,
		Risk:  risk,
	}
}

func computeTrend(xs, ys []float64) TrendMetrics {
	t := TrendMetrics{MovingAverages: map[int][]decimal.Decimal{}}
	for _, w := range []int{3, 5, 7} {
		t.MovingAverages[w] = movingAverage(ys, w)
	}

	// Degenerate series: flat line, perfect fit.
	if len(ys) <= 1 {
		t.Slope = decimal.Zero
		t.Intercept = decimal.Zero
		t.RSquared = decimal.New(1, 0)
		return t
	}
	if allEqual(ys) {
		t.Slope = decimal.Zero
		t.Intercept = decimal.NewFromFloat(ys[0])
		t.RSquared = decimal.New(1, 0)
		return t
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	t.Slope = decimal.NewFromFloat(sanitize(beta))
	t.Intercept = decimal.NewFromFloat(sanitize(alpha))
	t.RSquared = decimal.NewFromFloat(sanitize(r2))
	return t
}

func computeRisk(ys []float64, mean, sd float64) RiskMetrics {
	v := mean - varZScore*sd
	tail := 0.0
	n := 0
	for _, y := range ys {
		if y < v {
			tail += y
			n++
		}
	}
	es := v
	if n > 0 {
		es = tail / float64(n)
	}
	sharpe := 0.0
	if sd > 0 {
		sharpe = mean / sd
	}
	return RiskMetrics{
		Volatility:        decimal.NewFromFloat(sd),
		ValueAtRisk:       decimal.NewFromFloat(v),
		ExpectedShortfall: decimal.NewFromFloat(es),
		SharpeRatio:       decimal.NewFromFloat(sharpe),
		Beta:              decimal.Zero,
	}
}

func movingAverage(ys []float64, window int) []decimal.Decimal {
	if window > len(ys) {
		return nil
	}
	out := make([]decimal.Decimal, 0, len(ys)-window+1)
	sum := 0.0
	for i, y := range ys {
		sum += y
		if i >= window {
			sum -= ys[i-window]
		}
		if i >= window-1 {
			out = append(out, decimal.NewFromFloat(sum/float64(window)))
		}
	}
	return out
}

func allEqual(ys []float64) bool {
	for _, y := range ys[1:] {
		if y != ys[0] {
			return false
		}
	}
	return true
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
