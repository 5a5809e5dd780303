package pricing

import (
	"math"
	"testing"

	"github.com/optstrat/optstrat/model"
)

func TestDeltaBounds(t *testing.T) {
	p := anchorParams()
	callDelta := Delta(model.Call, p)
	if callDelta <= 0 || callDelta >= 1 {
		t.Errorf("long call delta must lie in (0,1), got %v", callDelta)
	}
	putDelta := Delta(model.Put, p)
	if putDelta <= -1 || putDelta >= 0 {
		t.Errorf("long put delta must lie in (-1,0), got %v", putDelta)
	}
	if math.Abs(callDelta-putDelta-math.Exp(-p.Q*p.T)) > 1e-9 {
		t.Errorf("delta parity violated: %v - %v", callDelta, putDelta)
	}
}

func TestDeltaAnchor(t *testing.T) {
	// S=K=100, tau=1, r=0.05, sigma=0.20: d1 = 0.35, N(d1) = 0.6368.
	got := Delta(model.Call, anchorParams())
	if math.Abs(got-0.6368) > 1e-4 {
		t.Errorf("call delta: expected 0.6368, got %.6f", got)
	}
}

func TestGammaVegaPositive(t *testing.T) {
	p := anchorParams()
	if g := Gamma(p); g <= 0 {
		t.Errorf("gamma must be positive, got %v", g)
	}
	if v := Vega(p); v <= 0 {
		t.Errorf("vega must be positive, got %v", v)
	}
}

func TestThetaSign(t *testing.T) {
	p := anchorParams()
	if th := Theta(model.Call, p); th >= 0 {
		t.Errorf("long ATM call theta must be negative, got %v", th)
	}
	// Theta is quoted per calendar day: small in magnitude.
	if th := Theta(model.Call, p); math.Abs(th) > 0.1 {
		t.Errorf("per-day theta out of scale: %v", th)
	}
}

func TestShortFlipsGreeks(t *testing.T) {
	p := anchorParams()
	long := Compute(model.Long, model.Call, p)
	short := Compute(model.Short, model.Call, p)

	if long.Delta != -short.Delta {
		t.Errorf("delta should flip: %v vs %v", long.Delta, short.Delta)
	}
	if long.Gamma != -short.Gamma {
		t.Errorf("gamma should flip: %v vs %v", long.Gamma, short.Gamma)
	}
	if long.Vega != -short.Vega {
		t.Errorf("vega should flip: %v vs %v", long.Vega, short.Vega)
	}
	if short.Theta <= 0 {
		t.Errorf("short premium theta must be positive, got %v", short.Theta)
	}
}

func TestExpiredDelta(t *testing.T) {
	itm := Params{S: 110, K: 100, T: 0, R: 0.05, Q: 0, Sigma: 0.20}
	if got := Delta(model.Call, itm); got != 1.0 {
		t.Errorf("expired ITM call delta: expected 1, got %v", got)
	}
	otm := Params{S: 90, K: 100, T: 0, R: 0.05, Q: 0, Sigma: 0.20}
	if got := Delta(model.Call, otm); got != 0.0 {
		t.Errorf("expired OTM call delta: expected 0, got %v", got)
	}
	if got := Delta(model.Put, otm); got != -1.0 {
		t.Errorf("expired ITM put delta: expected -1, got %v", got)
	}
}

func TestVegaFiniteDifference(t *testing.T) {
	p := anchorParams()
	const h = 1e-5
	up, down := p, p
	up.Sigma += h
	down.Sigma -= h
	numeric := (Price(model.Long, model.Call, up) - Price(model.Long, model.Call, down)) / (2 * h)
	if math.Abs(Vega(p)-numeric) > 1e-4 {
		t.Errorf("vega disagrees with finite difference: %v vs %v", Vega(p), numeric)
	}
}

func TestShadowGamma(t *testing.T) {
	p := anchorParams()
	up, down := ShadowGamma(model.Call, p, 0.01, 0.05)
	if up == 0 || down == 0 {
		t.Error("shadow gamma scenarios should be non-zero for an ATM call")
	}
}
