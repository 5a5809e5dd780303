package geometrics

import "github.com/xhhuango/json"

type curveJSON struct {
	Points []Point2D `json:"points"`
}

// MarshalJSON serializes the ordered point set; decimal coordinates are
// emitted as strings.
func (c *Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(curveJSON{Points: c.points})
}

func (c *Curve) UnmarshalJSON(data []byte) error {
	var cj curveJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	*c = *NewCurve(cj.Points)
	return nil
}

type surfaceJSON struct {
	Points []Point3D `json:"points"`
}

func (s *Surface) MarshalJSON() ([]byte, error) {
	return json.Marshal(surfaceJSON{Points: s.points})
}

func (s *Surface) UnmarshalJSON(data []byte) error {
	var sj surfaceJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	*s = *NewSurface(sj.Points)
	return nil
}
