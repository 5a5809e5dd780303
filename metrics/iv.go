package metrics

import (
	"math"
	"time"

	"github.com/optstrat/optstrat/chains"
	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
)

// IVCurve is the mid implied volatility per strike. Rows without a
// defined IV are skipped; an empty chain is a construction error.
func IVCurve(chain *chains.OptionChain) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	var pts []geometrics.Point2D
	for _, row := range chain.Rows() {
		if row.MidIV.IsZero() {
			continue
		}
		pts = append(pts, geometrics.Pt2(row.Strike.Decimal(), row.MidIV.Decimal()))
	}
	if len(pts) == 0 {
		return nil, constructionErr("no rows with defined implied volatility")
	}
	return geometrics.NewCurve(pts), nil
}

// IVSurface extends the smile across tenors with the square-root-of-time
// scaling sigma(tau) = sigma0 * sqrt(tau/tau0), where tau0 is the chain's
// own expiry. Empty day lists yield an empty surface.
func IVSurface(chain *chains.OptionChain, days []model.Positive, now time.Time) (*geometrics.Surface, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	tau0 := chain.TimeToExpiry(now)
	if tau0 <= 0 {
		return nil, constructionErr("chain already expired")
	}
	if len(days) == 0 {
		return geometrics.NewSurface(nil), nil
	}

	var pts []geometrics.Point3D
	for _, row := range chain.Rows() {
		if row.MidIV.IsZero() {
			continue
		}
		sigma0 := row.MidIV.Float64()
		for _, d := range days {
			tau := d.Float64() / model.DaysPerYear
			iv := sigma0 * math.Sqrt(tau/tau0)
			pts = append(pts, geometrics.NewPoint3D(row.Strike.Float64(), d.Float64(), iv))
		}
	}
	return geometrics.NewSurface(pts), nil
}

// RiskReversal is OTM-put IV minus OTM-call IV at strikes mirrored around
// the ATM strike. The ATM point itself is zero. Strikes whose mirror
// falls outside the ladder are skipped.
func RiskReversal(chain *chains.OptionChain) (*geometrics.Curve, error) {
	if chain.Len() == 0 {
		return nil, constructionErr("empty option chain")
	}
	atm, err := chain.ATMStrike()
	if err != nil {
		return nil, err
	}

	var putPts, callPts []geometrics.Point2D
	for _, row := range chain.Rows() {
		putPts = append(putPts, geometrics.Pt2(row.Strike.Decimal(), row.PutIV.Decimal()))
		callPts = append(callPts, geometrics.Pt2(row.Strike.Decimal(), row.CallIV.Decimal()))
	}
	putIV := geometrics.NewCurve(putPts)
	callIV := geometrics.NewCurve(callPts)

	atmF := atm.Float64()
	var pts []geometrics.Point2D
	for _, row := range chain.Rows() {
		k := row.Strike.Float64()
		if row.Strike.Equal(atm) {
			pts = append(pts, geometrics.NewPoint2D(k, 0))
			continue
		}
		mirror := 2*atmF - k
		low, high := math.Min(k, mirror), math.Max(k, mirror)

		put, err := putIV.LinearInterpolate(decimalFrom(low))
		if err != nil {
			continue
		}
		call, err := callIV.LinearInterpolate(decimalFrom(high))
		if err != nil {
			continue
		}
		pts = append(pts, geometrics.Pt2(row.Strike.Decimal(), put.Y.Sub(call.Y)))
	}
	if len(pts) == 0 {
		return nil, constructionErr("no mirrorable strikes")
	}
	return geometrics.NewCurve(pts), nil
}
