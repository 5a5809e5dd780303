package geometrics

import (
	"github.com/shopspring/decimal"
)

// Point2D is a pair of fixed-precision decimals, ordered by x then y.
// Equality is exact.
type Point2D struct {
	X decimal.Decimal `json:"x"`
	Y decimal.Decimal `json:"y"`
}

func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: decimal.NewFromFloat(x), Y: decimal.NewFromFloat(y)}
}

func Pt2(x, y decimal.Decimal) Point2D { return Point2D{X: x, Y: y} }

func (p Point2D) Less(q Point2D) bool {
	if c := p.X.Cmp(q.X); c != 0 {
		return c < 0
	}
	return p.Y.Cmp(q.Y) < 0
}

func (p Point2D) Equal(q Point2D) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p Point2D) XF() float64 { f, _ := p.X.Float64(); return f }
func (p Point2D) YF() float64 { f, _ := p.Y.Float64(); return f }

// Point3D is a triple of fixed-precision decimals, ordered by x, y, z.
type Point3D struct {
	X decimal.Decimal `json:"x"`
	Y decimal.Decimal `json:"y"`
	Z decimal.Decimal `json:"z"`
}

func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{
		X: decimal.NewFromFloat(x),
		Y: decimal.NewFromFloat(y),
		Z: decimal.NewFromFloat(z),
	}
}

func Pt3(x, y, z decimal.Decimal) Point3D { return Point3D{X: x, Y: y, Z: z} }

func (p Point3D) Less(q Point3D) bool {
	if c := p.X.Cmp(q.X); c != 0 {
		return c < 0
	}
	if c := p.Y.Cmp(q.Y); c != 0 {
		return c < 0
	}
	return p.Z.Cmp(q.Z) < 0
}

func (p Point3D) Equal(q Point3D) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0 && p.Z.Cmp(q.Z) == 0
}

func (p Point3D) XF() float64 { f, _ := p.X.Float64(); return f }
func (p Point3D) YF() float64 { f, _ := p.Y.Float64(); return f }
func (p Point3D) ZF() float64 { f, _ := p.Z.Float64(); return f }
