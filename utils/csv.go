package utils

import (
	"errors"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/optstrat/optstrat/geometrics"
)

var ErrNoCandles = errors.New("utils: no candles")

// Candle is one OHLCV record.
type Candle struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// ReadCandles decodes OHLCV rows from a CSV stream.
func ReadCandles(r io.Reader) ([]Candle, error) {
	var out []Candle
	if err := gocsv.Unmarshal(r, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoCandles
	}
	return out, nil
}

// ReadCandleFile decodes OHLCV rows from a CSV file.
func ReadCandleFile(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCandles(f)
}

// WriteCandles encodes candles as CSV.
func WriteCandles(w io.Writer, candles []Candle) error {
	return gocsv.Marshal(candles, w)
}

// Closes extracts the close series.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// CloseCurve renders closes as a (bar index, close) curve.
func CloseCurve(candles []Candle) *geometrics.Curve {
	pts := make([]geometrics.Point2D, len(candles))
	for i, c := range candles {
		pts[i] = geometrics.NewPoint2D(float64(i), c.Close)
	}
	return geometrics.NewCurve(pts)
}
