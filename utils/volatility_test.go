package utils

import (
	"math"
	"testing"
)

// rangeBars returns n identical bars opening and closing at 100 with a
// 98-102 intraday range.
func rangeBars(n int) []Candle {
	out := make([]Candle, n)
	for i := range out {
		out[i] = Candle{Date: "2024-01-02", Open: 100, High: 102, Low: 98, Close: 100, Volume: 1000}
	}
	return out
}

func flatBars(n int) []Candle {
	out := make([]Candle, n)
	for i := range out {
		out[i] = Candle{Date: "2024-01-02", Open: 100, High: 100, Low: 100, Close: 100, Volume: 1000}
	}
	return out
}

func TestEstimatorsOnFlatBars(t *testing.T) {
	bars := flatBars(10)
	if v := GarmanKlassVolatility(bars); v != 0 {
		t.Errorf("Garman-Klass on flat bars: expected 0, got %v", v)
	}
	if v := ParkinsonVolatility(bars); v != 0 {
		t.Errorf("Parkinson on flat bars: expected 0, got %v", v)
	}
	if v := RogersSatchellVolatility(bars); v != 0 {
		t.Errorf("Rogers-Satchell on flat bars: expected 0, got %v", v)
	}
	if v := YangZhangVolatility(bars); v != 0 {
		t.Errorf("Yang-Zhang on flat bars: expected 0, got %v", v)
	}
}

func TestEstimatorsOnRangeBars(t *testing.T) {
	bars := rangeBars(10)

	if got := ParkinsonVolatility(bars); math.Abs(got-0.3814) > 1e-3 {
		t.Errorf("Parkinson: expected 0.3814, got %v", got)
	}
	if got := GarmanKlassVolatility(bars); math.Abs(got-0.4491) > 1e-3 {
		t.Errorf("Garman-Klass: expected 0.4491, got %v", got)
	}
	if got := RogersSatchellVolatility(bars); math.Abs(got-0.4491) > 1e-3 {
		t.Errorf("Rogers-Satchell: expected 0.4491, got %v", got)
	}
	if got := YangZhangVolatility(bars); math.Abs(got-0.4182) > 1e-3 {
		t.Errorf("Yang-Zhang: expected 0.4182, got %v", got)
	}
}

func TestEstimatorsOnEmptyInput(t *testing.T) {
	if v := GarmanKlassVolatility(nil); v != 0 {
		t.Errorf("expected 0 on empty input, got %v", v)
	}
	if v := YangZhangVolatility(rangeBars(1)); v != 0 {
		t.Errorf("Yang-Zhang needs two bars, got %v", v)
	}
}

func TestWindowedVolatility(t *testing.T) {
	got := WindowedVolatility(rangeBars(21), ParkinsonVolatility)
	if len(got) != 2 {
		t.Fatalf("21 bars should fill the 1w and 1m windows only, got %v", got)
	}
	for _, key := range []string{"1w", "1m"} {
		if got[key] <= 0 {
			t.Errorf("window %s: expected positive estimate, got %v", key, got[key])
		}
	}

	if got := WindowedVolatility(rangeBars(130), ParkinsonVolatility); len(got) != 4 {
		t.Errorf("130 bars should fill every window, got %v", got)
	}

	if got := WindowedVolatility(flatBars(130), ParkinsonVolatility); len(got) != 0 {
		t.Errorf("flat bars estimate to zero and are skipped, got %v", got)
	}
}
