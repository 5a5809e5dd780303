package model

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testOption(t *testing.T, side Side, typ OptionType, strike float64) Option {
	t.Helper()
	o, err := NewOption(European, side, typ, "TEST", MustPositive(strike), POne,
		ExpirationInDays(MustPositive(30)), MustPositive(0.20),
		decimal.NewFromFloat(0.05), PZero, MustPositive(100))
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	return *o
}

func TestPremiumFlowSigns(t *testing.T) {
	long, err := NewPosition(testOption(t, Long, Call, 100), MustPositive(5), MustPositive(0.5), MustPositive(0.5), time.Now())
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if got := long.PremiumFlow(); got != -5.0 {
		t.Errorf("long premium flow: expected -5.0, got %v", got)
	}

	short, err := NewPosition(testOption(t, Short, Call, 100), MustPositive(5), MustPositive(0.5), MustPositive(0.5), time.Now())
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if got := short.PremiumFlow(); got != 5.0 {
		t.Errorf("short premium flow: expected 5.0, got %v", got)
	}

	if got := long.TotalFees(); got != 1.0 {
		t.Errorf("total fees: expected 1.0, got %v", got)
	}
	if got := long.Realized(); got != -6.0 {
		t.Errorf("long realized: expected -6.0, got %v", got)
	}
	if got := short.Realized(); got != 4.0 {
		t.Errorf("short realized: expected 4.0, got %v", got)
	}
}

func TestPayoffAtExpiry(t *testing.T) {
	// Long call K=95, premium 8, no fees.
	pos, err := NewPosition(testOption(t, Long, Call, 95), MustPositive(8), PZero, PZero, time.Now())
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	cases := []struct {
		spot float64
		want float64
	}{
		{90, -8},  // expires worthless
		{95, -8},  // at the strike
		{103, 0},  // break-even
		{110, 7},  // intrinsic 15 less premium
	}
	for _, c := range cases {
		if got := pos.PayoffAtExpiry(MustPositive(c.spot)); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("payoff at %v: expected %v, got %v", c.spot, c.want, got)
		}
	}
}

func TestIntrinsicAndMoneyness(t *testing.T) {
	call := testOption(t, Long, Call, 95)
	if got := call.IntrinsicValue(MustPositive(100)); got != 5.0 {
		t.Errorf("call intrinsic: expected 5.0, got %v", got)
	}
	if !call.IsITM() {
		t.Error("call struck below spot should be ITM")
	}

	put := testOption(t, Long, Put, 95)
	if got := put.IntrinsicValue(MustPositive(100)); got != 0.0 {
		t.Errorf("put intrinsic: expected 0.0, got %v", got)
	}
	if put.IsITM() {
		t.Error("put struck below spot should not be ITM")
	}
}

func TestOptionValidation(t *testing.T) {
	_, err := NewOption(European, Long, Call, "TEST", PZero, POne,
		ExpirationInDays(MustPositive(30)), MustPositive(0.2),
		decimal.NewFromFloat(0.05), PZero, MustPositive(100))
	if err == nil {
		t.Error("zero strike should be rejected")
	}

	_, err = NewOption(European, Long, Call, "TEST", MustPositive(100), PZero,
		ExpirationInDays(MustPositive(30)), MustPositive(0.2),
		decimal.NewFromFloat(0.05), PZero, MustPositive(100))
	if err == nil {
		t.Error("zero quantity should be rejected")
	}
}
