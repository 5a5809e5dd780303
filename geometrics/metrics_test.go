package geometrics

import (
	"errors"
	"math"
	"testing"
)

func TestMetricsLinearSeries(t *testing.T) {
	c := lineCurve(2, 1, 0, 10, 10) // y = 2x + 1
	m, err := c.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	slope, _ := m.Trend.Slope.Float64()
	intercept, _ := m.Trend.Intercept.Float64()
	r2, _ := m.Trend.RSquared.Float64()
	if math.Abs(slope-2) > 1e-9 {
		t.Errorf("slope: expected 2, got %v", slope)
	}
	if math.Abs(intercept-1) > 1e-9 {
		t.Errorf("intercept: expected 1, got %v", intercept)
	}
	if math.Abs(r2-1) > 1e-9 {
		t.Errorf("r-squared: expected 1, got %v", r2)
	}

	mean, _ := m.Basic.Mean.Float64()
	if math.Abs(mean-11) > 1e-9 {
		t.Errorf("mean of y=2x+1 over [0,10]: expected 11, got %v", mean)
	}
	median, _ := m.Basic.Median.Float64()
	if math.Abs(median-11) > 1e-9 {
		t.Errorf("median: expected 11, got %v", median)
	}
}

func TestMetricsConstantSeries(t *testing.T) {
	c := lineCurve(0, 7, 0, 10, 10) // y = 7
	m, err := c.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if !m.Trend.Slope.IsZero() {
		t.Errorf("constant series slope: expected 0, got %s", m.Trend.Slope)
	}
	intercept, _ := m.Trend.Intercept.Float64()
	if intercept != 7 {
		t.Errorf("constant series intercept: expected 7, got %v", intercept)
	}
	r2, _ := m.Trend.RSquared.Float64()
	if r2 != 1 {
		t.Errorf("constant series fit: expected perfect, got %v", r2)
	}
	if !m.Basic.StdDev.IsZero() {
		t.Errorf("constant series stddev: expected 0, got %s", m.Basic.StdDev)
	}
	if !m.Range.Range.IsZero() {
		t.Errorf("constant series range: expected 0, got %s", m.Range.Range)
	}
}

func TestMetricsSinglePoint(t *testing.T) {
	c := NewCurve([]Point2D{NewPoint2D(1, 5)})
	m, err := c.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if !m.Trend.Slope.IsZero() {
		t.Errorf("single point slope: expected 0, got %s", m.Trend.Slope)
	}
	mean, _ := m.Basic.Mean.Float64()
	if mean != 5 {
		t.Errorf("single point mean: expected 5, got %v", mean)
	}
	q1, _ := m.Range.Q1.Float64()
	q2, _ := m.Range.Q2.Float64()
	q3, _ := m.Range.Q3.Float64()
	if q1 != 5 || q2 != 5 || q3 != 5 {
		t.Errorf("single point quartiles: expected all 5, got %v, %v, %v", q1, q2, q3)
	}
	if !m.Range.IQR.IsZero() {
		t.Errorf("single point IQR: expected 0, got %s", m.Range.IQR)
	}
}

func TestMetricsSinglePointSurface(t *testing.T) {
	s := NewSurface([]Point3D{NewPoint3D(1, 2, 7)})
	m, err := s.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	q2, _ := m.Range.Q2.Float64()
	if q2 != 7 {
		t.Errorf("single point Q2: expected 7, got %v", q2)
	}
}

func TestMetricsEmptyCurve(t *testing.T) {
	c := NewCurve(nil)
	_, err := c.ComputeMetrics()
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMetricsRiskSection(t *testing.T) {
	c := lineCurve(1, 0, 0, 100, 100)
	m, err := c.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	mean, _ := m.Basic.Mean.Float64()
	sd, _ := m.Risk.Volatility.Float64()
	v, _ := m.Risk.ValueAtRisk.Float64()
	if math.Abs(v-(mean-1.645*sd)) > 1e-9 {
		t.Errorf("VaR: expected mean-1.645*sd=%v, got %v", mean-1.645*sd, v)
	}
	es, _ := m.Risk.ExpectedShortfall.Float64()
	if es > v {
		t.Errorf("expected shortfall %v should not exceed VaR %v", es, v)
	}
}

func TestSurfaceMetrics(t *testing.T) {
	s := planeSurface()
	m, err := s.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	// z = 2x + 3y over the 4x4 grid: z in [0, 15].
	if got, _ := m.Range.Range.Float64(); got != 15 {
		t.Errorf("surface range: expected 15, got %v", got)
	}
}

func TestMovingAverages(t *testing.T) {
	c := lineCurve(1, 0, 0, 9, 9) // y = 0..9
	m, err := c.ComputeMetrics()
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	ma3 := m.Trend.MovingAverages[3]
	if len(ma3) != 8 {
		t.Fatalf("window-3 moving average: expected 8 values, got %d", len(ma3))
	}
	first, _ := ma3[0].Float64()
	if math.Abs(first-1) > 1e-9 {
		t.Errorf("first window-3 average: expected 1, got %v", first)
	}
}
