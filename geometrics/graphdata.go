package geometrics

import "github.com/shopspring/decimal"

// GraphDataKind tags the shape handed to external plotters.
type GraphDataKind int

const (
	Series2D GraphDataKind = iota
	MultiSeries2D
	Surface3D
)

func (k GraphDataKind) String() string {
	switch k {
	case MultiSeries2D:
		return "multi_series_2d"
	case Surface3D:
		return "surface_3d"
	default:
		return "series_2d"
	}
}

// Series is one named 2-D line.
type Series struct {
	Name string            `json:"name"`
	X    []decimal.Decimal `json:"x"`
	Y    []decimal.Decimal `json:"y"`
}

// GraphData is the uniform plotting payload. Series is populated for
// Series2D and MultiSeries2D; X, Y, Z for Surface3D.
type GraphData struct {
	Kind   GraphDataKind     `json:"kind"`
	Series []Series          `json:"series,omitempty"`
	X      []decimal.Decimal `json:"x,omitempty"`
	Y      []decimal.Decimal `json:"y,omitempty"`
	Z      []decimal.Decimal `json:"z,omitempty"`
}

// GraphData flattens the curve into a single named series.
func (c *Curve) GraphData(name string) GraphData {
	s := Series{Name: name}
	for _, p := range c.points {
		s.X = append(s.X, p.X)
		s.Y = append(s.Y, p.Y)
	}
	return GraphData{Kind: Series2D, Series: []Series{s}}
}

// GraphData flattens the surface into parallel coordinate slices.
func (s *Surface) GraphData(name string) GraphData {
	g := GraphData{Kind: Surface3D}
	for _, p := range s.points {
		g.X = append(g.X, p.X)
		g.Y = append(g.Y, p.Y)
		g.Z = append(g.Z, p.Z)
	}
	return g
}

// MultiSeries bundles several curves into one plotting payload.
func MultiSeries(names []string, curves []*Curve) GraphData {
	g := GraphData{Kind: MultiSeries2D}
	for i, c := range curves {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		cd := c.GraphData(name)
		g.Series = append(g.Series, cd.Series...)
	}
	return g
}
