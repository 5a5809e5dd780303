package simulation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// WalkStats summarises one generated path.
type WalkStats struct {
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Initial      float64
	Terminal     float64
	TotalReturn  float64 // terminal / initial - 1
	LogReturnVol float64 // annualised stddev of per-step log returns
}

// Stats computes the summary for a walk generated with time step dt.
func (w *RandomWalk) Stats(dt float64) (WalkStats, error) {
	if len(w.steps) == 0 {
		return WalkStats{}, ErrEmptyWalk
	}
	values := w.Values()

	out := WalkStats{
		Min:      values[0],
		Max:      values[0],
		Initial:  values[0],
		Terminal: values[len(values)-1],
	}
	out.Mean = stat.Mean(values, nil)
	out.StdDev = stat.StdDev(values, nil)
	if len(values) == 1 {
		out.StdDev = 0
	}
	for _, v := range values {
		out.Min = math.Min(out.Min, v)
		out.Max = math.Max(out.Max, v)
	}
	if out.Initial > 0 {
		out.TotalReturn = out.Terminal/out.Initial - 1
	}

	if len(values) > 2 && dt > 0 {
		rets := make([]float64, 0, len(values)-1)
		for i := 1; i < len(values); i++ {
			if values[i-1] > 0 && values[i] > 0 {
				rets = append(rets, math.Log(values[i]/values[i-1]))
			}
		}
		if len(rets) > 1 {
			out.LogReturnVol = stat.StdDev(rets, nil) / math.Sqrt(dt)
		}
	}
	return out, nil
}
