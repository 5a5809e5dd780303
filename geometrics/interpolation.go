package geometrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// InterpolationType selects the interpolation algorithm.
type InterpolationType int

const (
	LinearInterpolation InterpolationType = iota
	BilinearInterpolation
	CubicInterpolation
	SplineInterpolation
)

func (t InterpolationType) String() string {
	switch t {
	case BilinearInterpolation:
		return "bilinear"
	case CubicInterpolation:
		return "cubic"
	case SplineInterpolation:
		return "spline"
	default:
		return "linear"
	}
}

// Minimum point counts per algorithm.
const (
	minLinearPoints        = 2
	minSplinePoints        = 3
	minSurfaceLinearPoints = 3
	minBilinearPoints      = 4
	minCubicPoints         = 9
	minSurfaceSplinePoints = 9

	coincideEps = 1e-9
	cubicEps    = 1e-10
)

// Interpolate evaluates the curve at the target abscissa with the given
// algorithm. A stored abscissa returns the stored point exactly.
func (c *Curve) Interpolate(x decimal.Decimal, kind InterpolationType) (Point2D, error) {
	switch kind {
	case LinearInterpolation:
		return c.LinearInterpolate(x)
	case CubicInterpolation:
		return c.CubicInterpolate(x)
	case SplineInterpolation:
		return c.SplineInterpolate(x)
	default:
		return Point2D{}, interpErr(kind, ErrDimensionMismatch)
	}
}

// LinearInterpolate interpolates y linearly between the bracketing points.
func (c *Curve) LinearInterpolate(x decimal.Decimal) (Point2D, error) {
	if len(c.points) < minLinearPoints {
		return Point2D{}, tooFewPoints(LinearInterpolation, minLinearPoints, len(c.points))
	}
	if !c.inRange(x) {
		return Point2D{}, interpErr(LinearInterpolation, ErrOutOfRange)
	}
	if p, ok := c.storedAt(x); ok {
		return p, nil
	}
	p0, p1, _ := c.bracket(x)
	// Decimal arithmetic keeps stored precision through the blend.
	t := x.Sub(p0.X).Div(p1.X.Sub(p0.X))
	y := p0.Y.Add(p1.Y.Sub(p0.Y).Mul(t))
	return Pt2(x, y), nil
}

// CubicInterpolate is a Catmull-Rom segment evaluation over the four
// points around the target. Boundary segments use linearly extrapolated
// phantom points, which keeps the ends exact on linear data.
func (c *Curve) CubicInterpolate(x decimal.Decimal) (Point2D, error) {
	if len(c.points) < 4 {
		return Point2D{}, tooFewPoints(CubicInterpolation, 4, len(c.points))
	}
	if !c.inRange(x) {
		return Point2D{}, interpErr(CubicInterpolation, ErrOutOfRange)
	}
	if p, ok := c.storedAt(x); ok {
		return p, nil
	}

	_, _, i := c.bracket(x)
	i0, i1, i2, i3 := i-2, i-1, i, i+1
	xf, _ := x.Float64()
	x1, y1 := c.points[i1].XF(), c.points[i1].YF()
	x2, y2 := c.points[i2].XF(), c.points[i2].YF()
	y0 := 2*y1 - y2
	if i0 >= 0 {
		y0 = c.points[i0].YF()
	}
	y3 := 2*y2 - y1
	if i3 <= len(c.points)-1 {
		y3 = c.points[i3].YF()
	}

	t := (xf - x1) / (x2 - x1)
	t2 := t * t
	t3 := t2 * t
	y := 0.5 * ((2 * y1) +
		(-y0+y2)*t +
		(2*y0-5*y1+4*y2-y3)*t2 +
		(-y0+3*y1-3*y2+y3)*t3)
	return Pt2(x, decimal.NewFromFloat(y)), nil
}

// SplineInterpolate is segmented linear interpolation over the stored
// knots; it needs at least three of them.
func (c *Curve) SplineInterpolate(x decimal.Decimal) (Point2D, error) {
	if len(c.points) < minSplinePoints {
		return Point2D{}, tooFewPoints(SplineInterpolation, minSplinePoints, len(c.points))
	}
	if !c.inRange(x) {
		return Point2D{}, interpErr(SplineInterpolation, ErrOutOfRange)
	}
	if p, ok := c.storedAt(x); ok {
		return p, nil
	}
	p0, p1, _ := c.bracket(x)
	t := x.Sub(p0.X).Div(p1.X.Sub(p0.X))
	y := p0.Y.Add(p1.Y.Sub(p0.Y).Mul(t))
	return Pt2(x, y), nil
}

func (c *Curve) storedAt(x decimal.Decimal) (Point2D, bool) {
	i := c.searchX(x)
	if i < len(c.points) && c.points[i].X.Cmp(x) == 0 {
		return c.points[i], true
	}
	return Point2D{}, false
}

// Interpolate evaluates the surface at the target (x, y) with the given
// algorithm. A stored (x, y) returns the stored point exactly.
func (s *Surface) Interpolate(x, y decimal.Decimal, kind InterpolationType) (Point3D, error) {
	switch kind {
	case LinearInterpolation:
		return s.LinearInterpolate(x, y)
	case BilinearInterpolation:
		return s.BilinearInterpolate(x, y)
	case CubicInterpolation:
		return s.CubicInterpolate(x, y)
	case SplineInterpolation:
		return s.SplineInterpolate(x, y)
	default:
		return Point3D{}, interpErr(kind, ErrDimensionMismatch)
	}
}

func (s *Surface) storedAt(x, y decimal.Decimal) (Point3D, bool) {
	for _, p := range s.points {
		if p.X.Cmp(x) == 0 && p.Y.Cmp(y) == 0 {
			return p, true
		}
	}
	return Point3D{}, false
}

// LinearInterpolate uses barycentric coordinates over the three nearest
// points; collinear or coincident triangles are refused.
func (s *Surface) LinearInterpolate(x, y decimal.Decimal) (Point3D, error) {
	if len(s.points) < minSurfaceLinearPoints {
		return Point3D{}, tooFewPoints(LinearInterpolation, minSurfaceLinearPoints, len(s.points))
	}
	if !s.inRange(x, y) {
		return Point3D{}, interpErr(LinearInterpolation, ErrOutOfRange)
	}
	if p, ok := s.storedAt(x, y); ok {
		return p, nil
	}

	xf, _ := x.Float64()
	yf, _ := y.Float64()
	tri := s.nearest(xf, yf, 3)
	x1, y1, z1 := tri[0].XF(), tri[0].YF(), tri[0].ZF()
	x2, y2, z2 := tri[1].XF(), tri[1].YF(), tri[1].ZF()
	x3, y3, z3 := tri[2].XF(), tri[2].YF(), tri[2].ZF()

	det := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	if math.Abs(det) < coincideEps {
		return Point3D{}, interpErr(LinearInterpolation, ErrDegenerateTriangle)
	}
	w1 := ((y2-y3)*(xf-x3) + (x3-x2)*(yf-y3)) / det
	w2 := ((y3-y1)*(xf-x3) + (x1-x3)*(yf-y3)) / det
	w3 := 1 - w1 - w2
	z := w1*z1 + w2*z2 + w3*z3
	return Pt3(x, y, decimal.NewFromFloat(z)), nil
}

// BilinearInterpolate sorts the four nearest points into a quadrilateral
// (lexicographic by y then x) and applies the standard bilinear blend.
func (s *Surface) BilinearInterpolate(x, y decimal.Decimal) (Point3D, error) {
	if len(s.points) < minBilinearPoints {
		return Point3D{}, tooFewPoints(BilinearInterpolation, minBilinearPoints, len(s.points))
	}
	if !s.inRange(x, y) {
		return Point3D{}, interpErr(BilinearInterpolation, ErrOutOfRange)
	}
	if p, ok := s.storedAt(x, y); ok {
		return p, nil
	}

	xf, _ := x.Float64()
	yf, _ := y.Float64()
	quad := s.nearest(xf, yf, 4)
	// Lexicographic by y then x: bottom-left, bottom-right, top-left,
	// top-right.
	sortQuad(quad)
	bl, br, tl, tr := quad[0], quad[1], quad[2], quad[3]

	dx := br.XF() - bl.XF()
	dy := tl.YF() - bl.YF()
	if math.Abs(dx) < coincideEps || math.Abs(dy) < coincideEps ||
		math.Abs(tr.XF()-tl.XF()) < coincideEps {
		return Point3D{}, interpErr(BilinearInterpolation, ErrInvalidQuadrilateral)
	}

	u := (xf - bl.XF()) / dx
	v := (yf - bl.YF()) / dy
	z := (1-u)*(1-v)*bl.ZF() + u*(1-v)*br.ZF() + (1-u)*v*tl.ZF() + u*v*tr.ZF()
	return Pt3(x, y, decimal.NewFromFloat(z)), nil
}

func sortQuad(quad []Point3D) {
	for i := 0; i < len(quad); i++ {
		for j := i + 1; j < len(quad); j++ {
			yi, yj := quad[i].YF(), quad[j].YF()
			if yj < yi || (yj == yi && quad[j].XF() < quad[i].XF()) {
				quad[i], quad[j] = quad[j], quad[i]
			}
		}
	}
}

// CubicInterpolate is an inverse-distance-weighted average over the nine
// nearest points with weight 1/(d+eps)^3.
func (s *Surface) CubicInterpolate(x, y decimal.Decimal) (Point3D, error) {
	if len(s.points) < minCubicPoints {
		return Point3D{}, tooFewPoints(CubicInterpolation, minCubicPoints, len(s.points))
	}
	if !s.inRange(x, y) {
		return Point3D{}, interpErr(CubicInterpolation, ErrOutOfRange)
	}
	if p, ok := s.storedAt(x, y); ok {
		return p, nil
	}

	xf, _ := x.Float64()
	yf, _ := y.Float64()
	var num, den float64
	for _, p := range s.nearest(xf, yf, 9) {
		d := math.Sqrt(planeDist(p, xf, yf))
		w := 1 / math.Pow(d+cubicEps, 3)
		num += w * p.ZF()
		den += w
	}
	return Pt3(x, y, decimal.NewFromFloat(num/den)), nil
}

// SplineInterpolate performs two linear passes: along x for each unique y,
// then along y on the resulting slice. Equivalent to tensor-product
// interpolation on a grid.
func (s *Surface) SplineInterpolate(x, y decimal.Decimal) (Point3D, error) {
	if len(s.points) < minSurfaceSplinePoints {
		return Point3D{}, tooFewPoints(SplineInterpolation, minSurfaceSplinePoints, len(s.points))
	}
	if !s.inRange(x, y) {
		return Point3D{}, interpErr(SplineInterpolation, ErrOutOfRange)
	}
	if p, ok := s.storedAt(x, y); ok {
		return p, nil
	}

	// First pass: z at the target x on every y-level spanning it.
	levels := map[string][]Point2D{}
	var order []decimal.Decimal
	for _, p := range s.points {
		key := p.Y.String()
		if _, seen := levels[key]; !seen {
			order = append(order, p.Y)
		}
		levels[key] = append(levels[key], Pt2(p.X, p.Z))
	}

	var slice []Point2D
	for _, level := range order {
		row := NewCurve(levels[level.String()])
		p, err := row.LinearInterpolate(x)
		if err != nil {
			continue
		}
		slice = append(slice, Pt2(level, p.Y))
	}
	if len(slice) < minLinearPoints {
		return Point3D{}, tooFewPoints(SplineInterpolation, minLinearPoints, len(slice))
	}

	// Second pass: along y.
	col := NewCurve(slice)
	p, err := col.LinearInterpolate(y)
	if err != nil {
		return Point3D{}, err
	}
	return Pt3(x, y, p.Y), nil
}
