package geometrics

import (
	"github.com/shopspring/decimal"
)

var intersectEps = decimal.NewFromFloat(1e-6)

// Translate shifts every point by the given deltas. The vector must have
// one entry per coordinate.
func (c *Curve) Translate(deltas []decimal.Decimal) (*Curve, error) {
	if len(deltas) != 2 {
		return nil, ErrDimensionMismatch
	}
	pts := make([]Point2D, 0, len(c.points))
	for _, p := range c.points {
		pts = append(pts, Pt2(p.X.Add(deltas[0]), p.Y.Add(deltas[1])))
	}
	return NewCurve(pts), nil
}

// Scale multiplies every point by the given factors.
func (c *Curve) Scale(factors []decimal.Decimal) (*Curve, error) {
	if len(factors) != 2 {
		return nil, ErrDimensionMismatch
	}
	pts := make([]Point2D, 0, len(c.points))
	for _, p := range c.points {
		pts = append(pts, Pt2(p.X.Mul(factors[0]), p.Y.Mul(factors[1])))
	}
	return NewCurve(pts), nil
}

// IntersectWith returns the points of the receiver that coincide with a
// point of the other curve within 1e-6 on both coordinates.
func (c *Curve) IntersectWith(other *Curve) []Point2D {
	var out []Point2D
	for _, p := range c.points {
		for _, q := range other.points {
			if p.X.Sub(q.X).Abs().Cmp(intersectEps) <= 0 &&
				p.Y.Sub(q.Y).Abs().Cmp(intersectEps) <= 0 {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// DerivativeAt estimates dy/dx at a stored point by central difference
// over its neighbours, one-sided at the ends.
func (c *Curve) DerivativeAt(p Point2D) (decimal.Decimal, error) {
	i := c.indexOf(p)
	if i < 0 {
		return decimal.Zero, ErrPointNotFound
	}
	if len(c.points) < 2 {
		return decimal.Zero, tooFewPoints(LinearInterpolation, 2, len(c.points))
	}
	lo, hi := i-1, i+1
	if lo < 0 {
		lo = i
	}
	if hi > len(c.points)-1 {
		hi = i
	}
	dx := c.points[hi].X.Sub(c.points[lo].X)
	if dx.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return c.points[hi].Y.Sub(c.points[lo].Y).Div(dx), nil
}

// Extrema returns the points with the minimum and maximum ordinate.
func (c *Curve) Extrema() (Point2D, Point2D, error) {
	if len(c.points) == 0 {
		return Point2D{}, Point2D{}, ErrEmptyInput
	}
	minP, maxP := c.points[0], c.points[0]
	for _, p := range c.points[1:] {
		if p.Y.Cmp(minP.Y) < 0 {
			minP = p
		}
		if p.Y.Cmp(maxP.Y) > 0 {
			maxP = p
		}
	}
	return minP, maxP, nil
}

// MeasureUnder is the signed area between the curve and the given base
// ordinate, by the trapezoidal rule.
func (c *Curve) MeasureUnder(base decimal.Decimal) (decimal.Decimal, error) {
	if len(c.points) < 2 {
		return decimal.Zero, tooFewPoints(LinearInterpolation, 2, len(c.points))
	}
	two := decimal.New(2, 0)
	area := decimal.Zero
	for i := 1; i < len(c.points); i++ {
		p0, p1 := c.points[i-1], c.points[i]
		dx := p1.X.Sub(p0.X)
		avg := p0.Y.Sub(base).Add(p1.Y.Sub(base)).Div(two)
		area = area.Add(avg.Mul(dx))
	}
	return area, nil
}

func (c *Curve) indexOf(p Point2D) int {
	for i := c.searchX(p.X); i < len(c.points) && c.points[i].X.Cmp(p.X) == 0; i++ {
		if c.points[i].Equal(p) {
			return i
		}
	}
	return -1
}

// Translate shifts every point by the given deltas (x, y, z).
func (s *Surface) Translate(deltas []decimal.Decimal) (*Surface, error) {
	if len(deltas) != 3 {
		return nil, ErrDimensionMismatch
	}
	pts := make([]Point3D, 0, len(s.points))
	for _, p := range s.points {
		pts = append(pts, Pt3(p.X.Add(deltas[0]), p.Y.Add(deltas[1]), p.Z.Add(deltas[2])))
	}
	return NewSurface(pts), nil
}

// Scale multiplies every point by the given factors (x, y, z).
func (s *Surface) Scale(factors []decimal.Decimal) (*Surface, error) {
	if len(factors) != 3 {
		return nil, ErrDimensionMismatch
	}
	pts := make([]Point3D, 0, len(s.points))
	for _, p := range s.points {
		pts = append(pts, Pt3(p.X.Mul(factors[0]), p.Y.Mul(factors[1]), p.Z.Mul(factors[2])))
	}
	return NewSurface(pts), nil
}

// IntersectWith returns the points of the receiver coinciding with a point
// of the other surface within 1e-6 on all three coordinates.
func (s *Surface) IntersectWith(other *Surface) []Point3D {
	var out []Point3D
	for _, p := range s.points {
		for _, q := range other.points {
			if p.X.Sub(q.X).Abs().Cmp(intersectEps) <= 0 &&
				p.Y.Sub(q.Y).Abs().Cmp(intersectEps) <= 0 &&
				p.Z.Sub(q.Z).Abs().Cmp(intersectEps) <= 0 {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// DerivativeAt estimates the gradient (dz/dx, dz/dy) at a stored point by
// central differences over the nearest neighbours along each axis.
func (s *Surface) DerivativeAt(p Point3D) ([]decimal.Decimal, error) {
	found := false
	for _, q := range s.points {
		if q.Equal(p) {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrPointNotFound
	}

	dzdx, err := s.axisDerivative(p, true)
	if err != nil {
		return nil, err
	}
	dzdy, err := s.axisDerivative(p, false)
	if err != nil {
		return nil, err
	}
	return []decimal.Decimal{dzdx, dzdy}, nil
}

// axisDerivative builds the 1-D slice through p along one axis and
// differentiates it there.
func (s *Surface) axisDerivative(p Point3D, alongX bool) (decimal.Decimal, error) {
	var slice []Point2D
	for _, q := range s.points {
		if alongX && q.Y.Cmp(p.Y) == 0 {
			slice = append(slice, Pt2(q.X, q.Z))
		} else if !alongX && q.X.Cmp(p.X) == 0 {
			slice = append(slice, Pt2(q.Y, q.Z))
		}
	}
	cur := NewCurve(slice)
	if alongX {
		return cur.DerivativeAt(Pt2(p.X, p.Z))
	}
	return cur.DerivativeAt(Pt2(p.Y, p.Z))
}

// Extrema returns the points with the minimum and maximum z.
func (s *Surface) Extrema() (Point3D, Point3D, error) {
	if len(s.points) == 0 {
		return Point3D{}, Point3D{}, ErrEmptyInput
	}
	minP, maxP := s.points[0], s.points[0]
	for _, p := range s.points[1:] {
		if p.Z.Cmp(minP.Z) < 0 {
			minP = p
		}
		if p.Z.Cmp(maxP.Z) > 0 {
			maxP = p
		}
	}
	return minP, maxP, nil
}

// MeasureUnder is the signed volume between the surface and the base
// plane, by triangular-prism decomposition of the grid cells. Cells with
// missing corners are skipped.
func (s *Surface) MeasureUnder(base decimal.Decimal) (decimal.Decimal, error) {
	if len(s.points) < 4 {
		return decimal.Zero, tooFewPoints(BilinearInterpolation, 4, len(s.points))
	}

	zAt := map[string]decimal.Decimal{}
	xSeen := map[string]bool{}
	ySeen := map[string]bool{}
	var xs, ys []decimal.Decimal
	for _, p := range s.points {
		zAt[p.X.String()+"|"+p.Y.String()] = p.Z
		if !xSeen[p.X.String()] {
			xSeen[p.X.String()] = true
			xs = append(xs, p.X)
		}
		if !ySeen[p.Y.String()] {
			ySeen[p.Y.String()] = true
			ys = append(ys, p.Y)
		}
	}
	sortDecimals(xs)
	sortDecimals(ys)

	three := decimal.New(3, 0)
	two := decimal.New(2, 0)
	vol := decimal.Zero
	for i := 1; i < len(xs); i++ {
		for j := 1; j < len(ys); j++ {
			bl, okBL := zAt[xs[i-1].String()+"|"+ys[j-1].String()]
			br, okBR := zAt[xs[i].String()+"|"+ys[j-1].String()]
			tl, okTL := zAt[xs[i-1].String()+"|"+ys[j].String()]
			tr, okTR := zAt[xs[i].String()+"|"+ys[j].String()]
			if !okBL || !okBR || !okTL || !okTR {
				continue
			}
			triArea := xs[i].Sub(xs[i-1]).Mul(ys[j].Sub(ys[j-1])).Div(two)
			// Two triangular prisms per cell, each with the mean height
			// of its three corners.
			h1 := bl.Sub(base).Add(br.Sub(base)).Add(tl.Sub(base)).Div(three)
			h2 := br.Sub(base).Add(tr.Sub(base)).Add(tl.Sub(base)).Div(three)
			vol = vol.Add(triArea.Mul(h1)).Add(triArea.Mul(h2))
		}
	}
	return vol, nil
}

func sortDecimals(ds []decimal.Decimal) {
	for i := 0; i < len(ds); i++ {
		for j := i + 1; j < len(ds); j++ {
			if ds[j].Cmp(ds[i]) < 0 {
				ds[i], ds[j] = ds[j], ds[i]
			}
		}
	}
}
