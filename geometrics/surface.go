package geometrics

import (
	"runtime"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Surface is an ordered set of Point3D with precomputed x and y ranges.
// Points are unique and kept in ascending (x, y, z) order.
type Surface struct {
	points []Point3D
	xMin   decimal.Decimal
	xMax   decimal.Decimal
	yMin   decimal.Decimal
	yMax   decimal.Decimal
}

// NewSurface sorts and deduplicates the given points. An empty point set
// is a valid, empty surface.
func NewSurface(points []Point3D) *Surface {
	ps := make([]Point3D, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })

	out := ps[:0]
	for i, p := range ps {
		if i > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}

	s := &Surface{points: out}
	if len(out) == 0 {
		return s
	}
	s.xMin, s.xMax = out[0].X, out[0].X
	s.yMin, s.yMax = out[0].Y, out[0].Y
	for _, p := range out[1:] {
		if p.X.Cmp(s.xMin) < 0 {
			s.xMin = p.X
		}
		if p.X.Cmp(s.xMax) > 0 {
			s.xMax = p.X
		}
		if p.Y.Cmp(s.yMin) < 0 {
			s.yMin = p.Y
		}
		if p.Y.Cmp(s.yMax) > 0 {
			s.yMax = p.Y
		}
	}
	return s
}

// SurfaceFromGrid evaluates f over the rectangular (xs, ys) grid. Rows are
// evaluated in parallel; the result does not depend on evaluation order.
// Empty axes yield an empty surface.
func SurfaceFromGrid(xs, ys []float64, f func(x, y float64) Point3D) *Surface {
	if len(xs) == 0 || len(ys) == 0 {
		return NewSurface(nil)
	}

	rows := make([][]Point3D, len(xs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			row := make([]Point3D, len(ys))
			for j, y := range ys {
				row[j] = f(x, y)
			}
			rows[i] = row
			return nil
		})
	}
	// The closures never fail; Wait only synchronizes.
	_ = g.Wait()

	pts := make([]Point3D, 0, len(xs)*len(ys))
	for _, row := range rows {
		pts = append(pts, row...)
	}
	return NewSurface(pts)
}

func (s *Surface) Len() int { return len(s.points) }

// Points returns a copy of the ordered point set.
func (s *Surface) Points() []Point3D {
	out := make([]Point3D, len(s.points))
	copy(out, s.points)
	return out
}

// At indexes into the ordered point set; indexes past the end panic.
func (s *Surface) At(i int) Point3D { return s.points[i] }

func (s *Surface) XRange() (decimal.Decimal, decimal.Decimal) { return s.xMin, s.xMax }
func (s *Surface) YRange() (decimal.Decimal, decimal.Decimal) { return s.yMin, s.yMax }

// ContainsPoint reports whether any stored point has the given (x, y).
func (s *Surface) ContainsPoint(x, y decimal.Decimal) bool {
	for _, p := range s.points {
		if p.X.Cmp(x) == 0 && p.Y.Cmp(y) == 0 {
			return true
		}
	}
	return false
}

// Values returns every z stored at the given (x, y).
func (s *Surface) Values(x, y decimal.Decimal) []decimal.Decimal {
	var out []decimal.Decimal
	for _, p := range s.points {
		if p.X.Cmp(x) == 0 && p.Y.Cmp(y) == 0 {
			out = append(out, p.Z)
		}
	}
	return out
}

// ClosestPoint returns the stored point nearest to (x, y) in the plane.
func (s *Surface) ClosestPoint(x, y decimal.Decimal) (Point3D, error) {
	if len(s.points) == 0 {
		return Point3D{}, ErrEmptyInput
	}
	xf, _ := x.Float64()
	yf, _ := y.Float64()
	best := s.points[0]
	bestDist := planeDist(best, xf, yf)
	for _, p := range s.points[1:] {
		if d := planeDist(p, xf, yf); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, nil
}

func (s *Surface) inRange(x, y decimal.Decimal) bool {
	return len(s.points) > 0 &&
		x.Cmp(s.xMin) >= 0 && x.Cmp(s.xMax) <= 0 &&
		y.Cmp(s.yMin) >= 0 && y.Cmp(s.yMax) <= 0
}

func planeDist(p Point3D, x, y float64) float64 {
	dx := p.XF() - x
	dy := p.YF() - y
	return dx*dx + dy*dy
}

// nearest returns the n stored points closest to (x, y) in the plane,
// ordered nearest first.
func (s *Surface) nearest(x, y float64, n int) []Point3D {
	idx := make([]int, len(s.points))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return planeDist(s.points[idx[a]], x, y) < planeDist(s.points[idx[b]], x, y)
	})
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Point3D, n)
	for i := 0; i < n; i++ {
		out[i] = s.points[idx[i]]
	}
	return out
}
