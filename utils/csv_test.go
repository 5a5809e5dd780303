package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCandleRoundTrip(t *testing.T) {
	in := []Candle{
		{Date: "2024-01-02", Open: 100, High: 102, Low: 98, Close: 101, Volume: 1200},
		{Date: "2024-01-03", Open: 101, High: 103, Low: 100, Close: 102.5, Volume: 900},
	}

	var buf bytes.Buffer
	if err := WriteCandles(&buf, in); err != nil {
		t.Fatalf("WriteCandles: %v", err)
	}
	out, err := ReadCandles(&buf)
	if err != nil {
		t.Fatalf("ReadCandles: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d candles, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("candle %d: expected %+v, got %+v", i, in[i], out[i])
		}
	}
}

func TestReadCandlesHeaderOnly(t *testing.T) {
	r := strings.NewReader("date,open,high,low,close,volume\n")
	if _, err := ReadCandles(r); !errors.Is(err, ErrNoCandles) {
		t.Errorf("expected ErrNoCandles, got %v", err)
	}
}

func TestCloseSeries(t *testing.T) {
	candles := []Candle{
		{Date: "2024-01-02", Open: 100, High: 102, Low: 98, Close: 101, Volume: 1},
		{Date: "2024-01-03", Open: 101, High: 103, Low: 100, Close: 99, Volume: 1},
		{Date: "2024-01-04", Open: 99, High: 100, Low: 97, Close: 98, Volume: 1},
	}

	closes := Closes(candles)
	if len(closes) != 3 || closes[0] != 101 || closes[2] != 98 {
		t.Errorf("unexpected close series: %v", closes)
	}

	curve := CloseCurve(candles)
	if curve.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", curve.Len())
	}
	if y, _ := curve.At(1).Y.Float64(); y != 99 {
		t.Errorf("point 1: expected 99, got %v", y)
	}
}
