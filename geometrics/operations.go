package geometrics

import (
	"math"
	"runtime"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MergeOperation is the elementwise operation applied across operands.
type MergeOperation int

const (
	OpAdd MergeOperation = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpMax
	OpMin
)

func (op MergeOperation) String() string {
	switch op {
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpMax:
		return "max"
	case OpMin:
		return "min"
	default:
		return "add"
	}
}

const (
	curveMergeSteps   = 50
	surfaceMergeSteps = 50
)

func applyOp(op MergeOperation, vals []float64) (float64, error) {
	acc := vals[0]
	for _, v := range vals[1:] {
		switch op {
		case OpAdd:
			acc += v
		case OpSubtract:
			acc -= v
		case OpMultiply:
			acc *= v
		case OpDivide:
			if math.Abs(v) < 1e-12 {
				return 0, ErrDivisionByZero
			}
			acc /= v
		case OpMax:
			acc = math.Max(acc, v)
		case OpMin:
			acc = math.Min(acc, v)
		}
	}
	return acc, nil
}

// interpolateY samples the curve at x, falling back to linear when the
// curve is too small for the requested kind.
func (c *Curve) interpolateY(x decimal.Decimal, kind InterpolationType) (float64, error) {
	if kind == CubicInterpolation && c.Len() < 4 {
		kind = LinearInterpolation
	}
	if kind == SplineInterpolation && c.Len() < minSplinePoints {
		kind = LinearInterpolation
	}
	p, err := c.Interpolate(x, kind)
	if err != nil {
		return 0, err
	}
	return p.YF(), nil
}

// MergeCurves merges N curves over a regular grid spanning the
// intersection of their ranges, interpolating cubically by default.
func MergeCurves(op MergeOperation, curves ...*Curve) (*Curve, error) {
	return MergeCurvesWith(op, CubicInterpolation, curves...)
}

// MergeCurvesWith is MergeCurves with an explicit interpolation kind.
func MergeCurvesWith(op MergeOperation, kind InterpolationType, curves ...*Curve) (*Curve, error) {
	if len(curves) == 0 {
		return nil, ErrEmptyInput
	}
	lo, hi := curves[0].XRange()
	for _, c := range curves[1:] {
		cLo, cHi := c.XRange()
		if cLo.Cmp(lo) > 0 {
			lo = cLo
		}
		if cHi.Cmp(hi) < 0 {
			hi = cHi
		}
	}
	if hi.Cmp(lo) < 0 {
		return nil, ErrEmptyIntersection
	}

	loF, _ := lo.Float64()
	hiF, _ := hi.Float64()
	pts := make([]Point2D, 0, curveMergeSteps+1)
	vals := make([]float64, len(curves))
	for i := 0; i <= curveMergeSteps; i++ {
		x := loF + (hiF-loF)*float64(i)/float64(curveMergeSteps)
		xd := decimal.NewFromFloat(x)
		for j, c := range curves {
			v, err := c.interpolateY(xd, kind)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		y, err := applyOp(op, vals)
		if err != nil {
			return nil, err
		}
		pts = append(pts, Pt2(xd, decimal.NewFromFloat(y)))
	}
	return NewCurve(pts), nil
}

// MergeWith merges the receiver with one other curve.
func (c *Curve) MergeWith(op MergeOperation, other *Curve) (*Curve, error) {
	return MergeCurves(op, c, other)
}

func (s *Surface) interpolateZ(x, y decimal.Decimal, kind InterpolationType) (float64, error) {
	if kind == CubicInterpolation && s.Len() < minCubicPoints {
		kind = LinearInterpolation
	}
	p, err := s.Interpolate(x, y, kind)
	if err != nil {
		return 0, err
	}
	return p.ZF(), nil
}

// MergeSurfaces merges N surfaces over a 50x50 grid spanning the
// intersection of their ranges. Grid rows are evaluated in parallel; cell
// values do not depend on evaluation order.
func MergeSurfaces(op MergeOperation, surfaces ...*Surface) (*Surface, error) {
	return MergeSurfacesWith(op, CubicInterpolation, surfaces...)
}

// MergeSurfacesWith is MergeSurfaces with an explicit interpolation kind.
func MergeSurfacesWith(op MergeOperation, kind InterpolationType, surfaces ...*Surface) (*Surface, error) {
	if len(surfaces) == 0 {
		return nil, ErrEmptyInput
	}
	xLo, xHi := surfaces[0].XRange()
	yLo, yHi := surfaces[0].YRange()
	for _, s := range surfaces[1:] {
		sxLo, sxHi := s.XRange()
		syLo, syHi := s.YRange()
		if sxLo.Cmp(xLo) > 0 {
			xLo = sxLo
		}
		if sxHi.Cmp(xHi) < 0 {
			xHi = sxHi
		}
		if syLo.Cmp(yLo) > 0 {
			yLo = syLo
		}
		if syHi.Cmp(yHi) < 0 {
			yHi = syHi
		}
	}
	if xHi.Cmp(xLo) < 0 || yHi.Cmp(yLo) < 0 {
		return nil, ErrEmptyIntersection
	}

	xLoF, _ := xLo.Float64()
	xHiF, _ := xHi.Float64()
	yLoF, _ := yLo.Float64()
	yHiF, _ := yHi.Float64()

	rows := make([][]Point3D, surfaceMergeSteps+1)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i <= surfaceMergeSteps; i++ {
		i := i
		g.Go(func() error {
			x := xLoF + (xHiF-xLoF)*float64(i)/float64(surfaceMergeSteps)
			xd := decimal.NewFromFloat(x)
			row := make([]Point3D, 0, surfaceMergeSteps+1)
			vals := make([]float64, len(surfaces))
			for j := 0; j <= surfaceMergeSteps; j++ {
				y := yLoF + (yHiF-yLoF)*float64(j)/float64(surfaceMergeSteps)
				yd := decimal.NewFromFloat(y)
				for k, s := range surfaces {
					v, err := s.interpolateZ(xd, yd, kind)
					if err != nil {
						return err
					}
					vals[k] = v
				}
				z, err := applyOp(op, vals)
				if err != nil {
					return err
				}
				row = append(row, Pt3(xd, yd, decimal.NewFromFloat(z)))
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pts := make([]Point3D, 0, (surfaceMergeSteps+1)*(surfaceMergeSteps+1))
	for _, row := range rows {
		pts = append(pts, row...)
	}
	return NewSurface(pts), nil
}

// MergeWith merges the receiver with one other surface.
func (s *Surface) MergeWith(op MergeOperation, other *Surface) (*Surface, error) {
	return MergeSurfaces(op, s, other)
}

// MergeAxisIndex returns the sorted union of the abscissae of both curves.
func (c *Curve) MergeAxisIndex(other *Curve) []decimal.Decimal {
	seen := map[string]bool{}
	var out []decimal.Decimal
	for _, cur := range []*Curve{c, other} {
		for _, p := range cur.points {
			if !seen[p.X.String()] {
				seen[p.X.String()] = true
				out = append(out, p.X)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// MergeAxisInterpolate samples both curves on the unioned abscissae
// restricted to the intersection of their ranges, producing two parallel
// curves suitable for coordinated arithmetic.
func (c *Curve) MergeAxisInterpolate(other *Curve, kind InterpolationType) (*Curve, *Curve, error) {
	union := c.MergeAxisIndex(other)
	var aPts, bPts []Point2D
	for _, x := range union {
		if !c.inRange(x) || !other.inRange(x) {
			continue
		}
		ya, err := c.interpolateY(x, kind)
		if err != nil {
			return nil, nil, err
		}
		yb, err := other.interpolateY(x, kind)
		if err != nil {
			return nil, nil, err
		}
		aPts = append(aPts, Pt2(x, decimal.NewFromFloat(ya)))
		bPts = append(bPts, Pt2(x, decimal.NewFromFloat(yb)))
	}
	if len(aPts) == 0 {
		return nil, nil, ErrEmptyIntersection
	}
	return NewCurve(aPts), NewCurve(bPts), nil
}

// MergeAxisIndex returns the union of the (x, y) grid positions of both
// surfaces.
func (s *Surface) MergeAxisIndex(other *Surface) []Point2D {
	seen := map[string]bool{}
	var out []Point2D
	for _, sur := range []*Surface{s, other} {
		for _, p := range sur.points {
			key := p.X.String() + "|" + p.Y.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, Pt2(p.X, p.Y))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// MergeAxisInterpolate samples both surfaces on the unioned grid positions
// inside the intersection of their ranges.
func (s *Surface) MergeAxisInterpolate(other *Surface, kind InterpolationType) (*Surface, *Surface, error) {
	union := s.MergeAxisIndex(other)
	var aPts, bPts []Point3D
	for _, xy := range union {
		if !s.inRange(xy.X, xy.Y) || !other.inRange(xy.X, xy.Y) {
			continue
		}
		za, err := s.interpolateZ(xy.X, xy.Y, kind)
		if err != nil {
			return nil, nil, err
		}
		zb, err := other.interpolateZ(xy.X, xy.Y, kind)
		if err != nil {
			return nil, nil, err
		}
		aPts = append(aPts, Pt3(xy.X, xy.Y, decimal.NewFromFloat(za)))
		bPts = append(bPts, Pt3(xy.X, xy.Y, decimal.NewFromFloat(zb)))
	}
	if len(aPts) == 0 {
		return nil, nil, ErrEmptyIntersection
	}
	return NewSurface(aPts), NewSurface(bPts), nil
}
