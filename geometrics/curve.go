package geometrics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Curve is an ordered set of Point2D with a precomputed x-range. Points
// are unique by (x, y) and kept in ascending (x, y) order.
type Curve struct {
	points []Point2D
	xMin   decimal.Decimal
	xMax   decimal.Decimal
}

// NewCurve sorts and deduplicates the given points. An empty point set is
// a valid, empty curve.
func NewCurve(points []Point2D) *Curve {
	ps := make([]Point2D, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })

	out := ps[:0]
	for i, p := range ps {
		if i > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}

	c := &Curve{points: out}
	if len(out) > 0 {
		c.xMin = out[0].X
		c.xMax = out[len(out)-1].X
	}
	return c
}

// CurveFromFunction samples f over [t0, t1] with the given number of
// steps and builds the curve from the resulting points.
func CurveFromFunction(f func(t float64) Point2D, t0, t1 float64, steps int) (*Curve, error) {
	if steps < 1 || t1 < t0 {
		return nil, ErrEmptyInput
	}
	pts := make([]Point2D, 0, steps+1)
	dt := (t1 - t0) / float64(steps)
	for i := 0; i <= steps; i++ {
		pts = append(pts, f(t0+float64(i)*dt))
	}
	return NewCurve(pts), nil
}

func (c *Curve) Len() int { return len(c.points) }

// Points returns a copy of the ordered point set.
func (c *Curve) Points() []Point2D {
	out := make([]Point2D, len(c.points))
	copy(out, c.points)
	return out
}

// At indexes into the ordered point set; indexes past the end are a
// contract violation and panic.
func (c *Curve) At(i int) Point2D { return c.points[i] }

func (c *Curve) XMin() decimal.Decimal { return c.xMin }
func (c *Curve) XMax() decimal.Decimal { return c.xMax }

// XRange returns the precomputed (min, max) abscissa range.
func (c *Curve) XRange() (decimal.Decimal, decimal.Decimal) {
	return c.xMin, c.xMax
}

// ContainsPoint reports whether any stored point has the given abscissa.
func (c *Curve) ContainsPoint(x decimal.Decimal) bool {
	i := c.searchX(x)
	return i < len(c.points) && c.points[i].X.Cmp(x) == 0
}

// Values returns every ordinate stored at the given abscissa.
func (c *Curve) Values(x decimal.Decimal) []decimal.Decimal {
	var out []decimal.Decimal
	for i := c.searchX(x); i < len(c.points) && c.points[i].X.Cmp(x) == 0; i++ {
		out = append(out, c.points[i].Y)
	}
	return out
}

// ClosestPoint returns the stored point whose abscissa is nearest to x.
func (c *Curve) ClosestPoint(x decimal.Decimal) (Point2D, error) {
	if len(c.points) == 0 {
		return Point2D{}, ErrEmptyInput
	}
	best := c.points[0]
	bestDist := best.X.Sub(x).Abs()
	for _, p := range c.points[1:] {
		d := p.X.Sub(x).Abs()
		if d.Cmp(bestDist) < 0 {
			best = p
			bestDist = d
		}
	}
	return best, nil
}

// searchX returns the first index whose X is >= x.
func (c *Curve) searchX(x decimal.Decimal) int {
	return sort.Search(len(c.points), func(i int) bool {
		return c.points[i].X.Cmp(x) >= 0
	})
}

func (c *Curve) inRange(x decimal.Decimal) bool {
	return len(c.points) > 0 && x.Cmp(c.xMin) >= 0 && x.Cmp(c.xMax) <= 0
}

// bracket returns the two stored points surrounding x. The caller has
// already checked the range.
func (c *Curve) bracket(x decimal.Decimal) (Point2D, Point2D, int) {
	i := c.searchX(x)
	if i == 0 {
		i = 1
	}
	if i >= len(c.points) {
		i = len(c.points) - 1
	}
	return c.points[i-1], c.points[i], i
}
