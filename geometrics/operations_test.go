package geometrics

import (
	"errors"
	"math"
	"testing"
)

func lineCurve(slope, intercept float64, lo, hi float64, n int) *Curve {
	pts := make([]Point2D, 0, n+1)
	for i := 0; i <= n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n)
		pts = append(pts, NewPoint2D(x, slope*x+intercept))
	}
	return NewCurve(pts)
}

func TestMergeCurvesAdd(t *testing.T) {
	a := lineCurve(2, 0, 0, 10, 10)  // y = 2x
	b := lineCurve(1, 5, 0, 10, 10)  // y = x + 5
	merged, err := MergeCurves(OpAdd, a, b)
	if err != nil {
		t.Fatalf("MergeCurves: %v", err)
	}
	for _, p := range merged.Points() {
		want := 3*p.XF() + 5
		if math.Abs(p.YF()-want) > 1e-3 {
			t.Errorf("sum at x=%v: expected %v, got %v", p.XF(), want, p.YF())
		}
	}
}

func TestMergeAddSubtractRoundTrip(t *testing.T) {
	a := lineCurve(2, 1, 0, 10, 20)
	b := lineCurve(-1, 4, 0, 10, 20)

	sum, err := MergeCurves(OpAdd, a, b)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	back, err := sum.MergeWith(OpSubtract, b)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	for _, p := range back.Points() {
		want := 2*p.XF() + 1
		if math.Abs(p.YF()-want) > 1e-3 {
			t.Errorf("round trip at x=%v: expected %v, got %v", p.XF(), want, p.YF())
		}
	}
}

func TestMergeUsesRangeIntersection(t *testing.T) {
	a := lineCurve(1, 0, 0, 10, 10)
	b := lineCurve(1, 0, 5, 15, 10)
	merged, err := MergeCurves(OpAdd, a, b)
	if err != nil {
		t.Fatalf("MergeCurves: %v", err)
	}
	lo, _ := merged.XMin().Float64()
	hi, _ := merged.XMax().Float64()
	if lo < 5-1e-9 || hi > 10+1e-9 {
		t.Errorf("merge grid outside intersection: [%v, %v]", lo, hi)
	}
}

func TestMergeEmptyIntersection(t *testing.T) {
	a := lineCurve(1, 0, 0, 4, 4)
	b := lineCurve(1, 0, 6, 10, 4)
	_, err := MergeCurves(OpAdd, a, b)
	if !errors.Is(err, ErrEmptyIntersection) {
		t.Errorf("expected ErrEmptyIntersection, got %v", err)
	}
}

func TestMergeDivideByZero(t *testing.T) {
	a := lineCurve(1, 1, 0, 10, 10)
	zero := lineCurve(0, 0, 0, 10, 10)
	_, err := MergeCurves(OpDivide, a, zero)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMergeMaxMin(t *testing.T) {
	a := lineCurve(1, 0, 0, 10, 10)   // y = x
	b := lineCurve(-1, 10, 0, 10, 10) // y = 10 - x
	maxed, err := MergeCurves(OpMax, a, b)
	if err != nil {
		t.Fatalf("max: %v", err)
	}
	for _, p := range maxed.Points() {
		want := math.Max(p.XF(), 10-p.XF())
		if math.Abs(p.YF()-want) > 1e-3 {
			t.Errorf("max at x=%v: expected %v, got %v", p.XF(), want, p.YF())
		}
	}
}

func TestMergeSurfaces(t *testing.T) {
	grid := func(f func(x, y float64) float64) *Surface {
		var pts []Point3D
		for x := 0.0; x <= 4.0; x++ {
			for y := 0.0; y <= 4.0; y++ {
				pts = append(pts, NewPoint3D(x, y, f(x, y)))
			}
		}
		return NewSurface(pts)
	}
	a := grid(func(x, y float64) float64 { return x + y })
	b := grid(func(x, y float64) float64 { return 2 * x })

	merged, err := MergeSurfaces(OpAdd, a, b)
	if err != nil {
		t.Fatalf("MergeSurfaces: %v", err)
	}
	if merged.Len() != 51*51 {
		t.Fatalf("expected 51x51 grid, got %d points", merged.Len())
	}

	// Tensor-product interpolation reproduces affine surfaces exactly, so
	// the analytic check runs under the spline kind.
	exact, err := MergeSurfacesWith(OpAdd, SplineInterpolation, a, b)
	if err != nil {
		t.Fatalf("MergeSurfacesWith: %v", err)
	}
	for _, p := range exact.Points() {
		want := 3*p.XF() + p.YF()
		if math.Abs(p.ZF()-want) > 1e-3 {
			t.Errorf("sum at (%v,%v): expected %v, got %v", p.XF(), p.YF(), want, p.ZF())
		}
	}
}

func TestMergeAxisIndex(t *testing.T) {
	a := NewCurve([]Point2D{NewPoint2D(0, 0), NewPoint2D(2, 2)})
	b := NewCurve([]Point2D{NewPoint2D(1, 1), NewPoint2D(2, 4)})
	union := a.MergeAxisIndex(b)
	if len(union) != 3 {
		t.Fatalf("expected union of 3 abscissae, got %d", len(union))
	}
	if !union[0].Equal(dec(0)) || !union[1].Equal(dec(1)) || !union[2].Equal(dec(2)) {
		t.Errorf("union order wrong: %v", union)
	}
}
