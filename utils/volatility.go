package utils

import "math"

// tradingDays annualises per-bar variance.
const tradingDays = 252

// lookbacks used by the windowed estimators.
var volPeriods = []struct {
	name string
	days int
}{
	{"1w", 5},
	{"1m", 21},
	{"3m", 63},
	{"6m", 126},
}

// GarmanKlassVolatility is the annualised Garman-Klass estimate over the
// whole candle window.
func GarmanKlassVolatility(candles []Candle) float64 {
	n := len(candles)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range candles {
		if c.Low <= 0 || c.Open <= 0 {
			return 0
		}
		hl := 0.5 * math.Pow(math.Log(c.High/c.Low), 2)
		co := (2*math.Log(2) - 1) * math.Pow(math.Log(c.Close/c.Open), 2)
		sum += hl - co
	}
	return math.Sqrt(sum / float64(n) * tradingDays)
}

// ParkinsonVolatility is the annualised high-low range estimate over the
// whole candle window.
func ParkinsonVolatility(candles []Candle) float64 {
	n := len(candles)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range candles {
		if c.Low <= 0 {
			return 0
		}
		sum += math.Pow(math.Log(c.High/c.Low), 2)
	}
	return math.Sqrt(sum / (4 * math.Ln2 * float64(n)) * tradingDays)
}

// RogersSatchellVolatility is drift-independent; it uses all four OHLC
// legs of each bar.
func RogersSatchellVolatility(candles []Candle) float64 {
	n := len(candles)
	if n == 0 {
		return 0
	}
	sum := rogersSatchellVariance(candles)
	if sum <= 0 {
		return 0
	}
	return math.Sqrt(sum * tradingDays)
}

func rogersSatchellVariance(candles []Candle) float64 {
	n := len(candles)
	sum := 0.0
	for _, c := range candles {
		if c.Open <= 0 || c.Low <= 0 {
			return 0
		}
		ho := math.Log(c.High / c.Open)
		hc := math.Log(c.High / c.Close)
		lo := math.Log(c.Low / c.Open)
		lc := math.Log(c.Low / c.Close)
		sum += ho*hc + lo*lc
	}
	return sum / float64(n)
}

// YangZhangVolatility combines overnight, open-to-close and
// Rogers-Satchell variance; it handles both drift and opening jumps.
func YangZhangVolatility(candles []Candle) float64 {
	n := len(candles)
	if n < 2 {
		return 0
	}

	k := 0.34 / (1.34 + float64(n+1)/float64(n-1))

	// Overnight: close[i-1] -> open[i].
	overnight := 0.0
	mean := 0.0
	for i := 1; i < n; i++ {
		if candles[i-1].Close <= 0 || candles[i].Open <= 0 {
			return 0
		}
		r := math.Log(candles[i].Open / candles[i-1].Close)
		mean += r
		overnight += r * r
	}
	mean /= float64(n - 1)
	overnight = (overnight/float64(n-1) - mean*mean) * float64(n) / float64(n-1)

	// Open to close.
	openClose := 0.0
	mean = 0.0
	for _, c := range candles {
		if c.Open <= 0 || c.Close <= 0 {
			return 0
		}
		r := math.Log(c.Close / c.Open)
		mean += r
		openClose += r * r
	}
	mean /= float64(n)
	openClose = (openClose/float64(n) - mean*mean) * float64(n) / float64(n-1)

	rs := rogersSatchellVariance(candles)

	v := overnight + k*openClose + (1-k)*rs
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v) * math.Sqrt(tradingDays)
}

// WindowedVolatility runs an estimator over the standard lookbacks,
// keyed by period label. Windows longer than the history are skipped.
func WindowedVolatility(candles []Candle, estimator func([]Candle) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range volPeriods {
		if len(candles) < p.days {
			continue
		}
		if v := estimator(candles[len(candles)-p.days:]); v != 0 {
			out[p.name] = v
		}
	}
	return out
}
