package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optstrat/optstrat/model"
)

func anchorParams() Params {
	return Params{S: 100, K: 100, T: 1.0, R: 0.05, Q: 0, Sigma: 0.20}
}

func TestBlackScholesAnchor(t *testing.T) {
	p := anchorParams()

	call := Price(model.Long, model.Call, p)
	if math.Abs(call-10.4506) > 1e-4 {
		t.Errorf("call: expected 10.4506, got %.6f", call)
	}

	put := Price(model.Long, model.Put, p)
	if math.Abs(put-5.5735) > 1e-4 {
		t.Errorf("put: expected 5.5735, got %.6f", put)
	}
}

func TestShortSideNegates(t *testing.T) {
	p := anchorParams()
	long := Price(model.Long, model.Call, p)
	short := Price(model.Short, model.Call, p)
	if long != -short {
		t.Errorf("short price should negate long: %v vs %v", long, short)
	}
}

func TestPutCallParity(t *testing.T) {
	cases := []Params{
		{S: 100, K: 100, T: 1.0, R: 0.05, Q: 0, Sigma: 0.20},
		{S: 90, K: 110, T: 0.5, R: 0.03, Q: 0.01, Sigma: 0.35},
		{S: 250, K: 180, T: 2.0, R: 0.07, Q: 0.02, Sigma: 0.15},
		{S: 42, K: 40, T: 0.25, R: 0.0, Q: 0, Sigma: 0.60},
	}
	for _, p := range cases {
		call := Price(model.Long, model.Call, p)
		put := Price(model.Long, model.Put, p)
		forward := p.S*math.Exp(-p.Q*p.T) - p.K*math.Exp(-p.R*p.T)
		if math.Abs(call-put-forward) > 1e-6 {
			t.Errorf("parity violated for %+v: C-P=%v forward=%v", p, call-put, forward)
		}
	}
}

func TestExpiredCollapsesToIntrinsic(t *testing.T) {
	p := Params{S: 110, K: 100, T: 0, R: 0.05, Q: 0, Sigma: 0.20}
	if got := Price(model.Long, model.Call, p); got != 10.0 {
		t.Errorf("expired ITM call: expected 10.0, got %v", got)
	}
	if got := Price(model.Long, model.Put, p); got != 0.0 {
		t.Errorf("expired OTM put: expected 0.0, got %v", got)
	}

	// Zero vol behaves the same way.
	p = Params{S: 110, K: 100, T: 1.0, R: 0, Q: 0, Sigma: 0}
	if got := Price(model.Long, model.Call, p); got != 10.0 {
		t.Errorf("zero-vol call: expected 10.0, got %v", got)
	}
}

func TestCallMonotoneInSpot(t *testing.T) {
	p := anchorParams()
	prev := math.Inf(-1)
	for s := 50.0; s <= 150.0; s += 5 {
		p.S = s
		price := Price(model.Long, model.Call, p)
		if price < prev {
			t.Fatalf("call price decreased at S=%v: %v < %v", s, price, prev)
		}
		prev = price
	}
}

func TestPositionPL(t *testing.T) {
	o, err := model.NewOption(model.European, model.Long, model.Call, "TEST",
		model.MustPositive(95), model.POne, model.ExpirationInDays(model.MustPositive(30)),
		model.MustPositive(0.20), decimal.NewFromFloat(0.05), model.PZero, model.MustPositive(100))
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	pos, err := model.NewPosition(*o, model.MustPositive(8), model.MustPositive(0.5), model.MustPositive(0.5), time.Now())
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	// At expiry with spot 110: intrinsic 15, premium 8 out, fees 1.
	got := PositionPL(pos, 110, 0, 0.20)
	if math.Abs(got-6.0) > 1e-9 {
		t.Errorf("expired P&L: expected 6.0, got %v", got)
	}
	if got := PayoffAt(pos, 110); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("PayoffAt: expected 6.0, got %v", got)
	}

	// With time left the option is worth more than intrinsic.
	live := PositionPL(pos, 110, 30.0/365.0, 0.20)
	if live <= got {
		t.Errorf("live P&L should exceed expired P&L: %v vs %v", live, got)
	}
}
