package strategies

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/optstrat/optstrat/model"
)

func testConfig() Config {
	return Config{
		Symbol:            "TEST",
		UnderlyingPrice:   model.MustPositive(100),
		Expiration:        model.ExpirationInDays(model.MustPositive(30)),
		ImpliedVolatility: model.MustPositive(0.20),
		RiskFreeRate:      decimal.NewFromFloat(0.05),
		DividendYield:     model.PZero,
		Quantity:          model.MustPositive(1),
		OpenFee:           model.MustPositive(0.5),
		CloseFee:          model.MustPositive(0.5),
	}
}

func feeFreeConfig() Config {
	cfg := testConfig()
	cfg.OpenFee = model.PZero
	cfg.CloseFee = model.PZero
	return cfg
}

func TestBullCallSpreadPayoff(t *testing.T) {
	s, err := NewBullCallSpread(testConfig(),
		model.MustPositive(95), model.MustPositive(105),
		model.MustPositive(8), model.MustPositive(3))
	if err != nil {
		t.Fatalf("NewBullCallSpread: %v", err)
	}

	cases := []struct {
		spot float64
		want float64
	}{
		{90, -7.00},
		{100, -2.00},
		{110, 3.00},
	}
	for _, c := range cases {
		got := s.Payoff(model.MustPositive(c.spot))
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("payoff at %v: expected %v, got %v", c.spot, c.want, got)
		}
	}

	profit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("MaxProfit: %v", err)
	}
	if math.Abs(profit.Float64()-3.00) > 1e-6 {
		t.Errorf("max profit: expected 3.00, got %s", profit)
	}

	loss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("MaxLoss: %v", err)
	}
	if math.Abs(loss.Float64()-7.00) > 1e-6 {
		t.Errorf("max loss: expected 7.00, got %s", loss)
	}

	bes, err := s.BreakEvenPoints()
	if err != nil {
		t.Fatalf("BreakEvenPoints: %v", err)
	}
	if len(bes) != 1 {
		t.Fatalf("expected one break-even, got %d", len(bes))
	}
	if math.Abs(bes[0].Float64()-102.00) > 1e-3 {
		t.Errorf("break-even: expected 102.00, got %s", bes[0])
	}
}

func TestIronCondorBreakEvens(t *testing.T) {
	s, err := NewIronCondor(feeFreeConfig(),
		model.MustPositive(90), model.MustPositive(95),
		model.MustPositive(105), model.MustPositive(110),
		[4]model.Positive{
			model.MustPositive(0.5),
			model.MustPositive(1.5),
			model.MustPositive(1.75),
			model.MustPositive(0.75),
		})
	if err != nil {
		t.Fatalf("NewIronCondor: %v", err)
	}

	bes, err := s.BreakEvenPoints()
	if err != nil {
		t.Fatalf("BreakEvenPoints: %v", err)
	}
	if len(bes) != 2 {
		t.Fatalf("expected two break-evens, got %d", len(bes))
	}
	if math.Abs(bes[0].Float64()-93.00) > 1e-3 {
		t.Errorf("lower break-even: expected 93.00, got %s", bes[0])
	}
	if math.Abs(bes[1].Float64()-107.00) > 1e-3 {
		t.Errorf("upper break-even: expected 107.00, got %s", bes[1])
	}
	for _, be := range bes {
		if got := s.Payoff(be); math.Abs(got) > 1e-3 {
			t.Errorf("payoff at break-even %s: expected ~0, got %v", be, got)
		}
	}

	profit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("MaxProfit: %v", err)
	}
	if math.Abs(profit.Float64()-2.00) > 1e-6 {
		t.Errorf("max profit: expected 2.00, got %s", profit)
	}

	loss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("MaxLoss: %v", err)
	}
	if math.Abs(loss.Float64()-3.00) > 1e-6 {
		t.Errorf("max loss: expected 3.00, got %s", loss)
	}

	ratio, err := s.ProfitRatio()
	if err != nil {
		t.Fatalf("ProfitRatio: %v", err)
	}
	if math.Abs(ratio-2.0/3.0) > 1e-6 {
		t.Errorf("profit ratio: expected 2/3, got %v", ratio)
	}
}

func TestPayoffMatchesLegSum(t *testing.T) {
	s, err := NewIronCondor(feeFreeConfig(),
		model.MustPositive(90), model.MustPositive(95),
		model.MustPositive(105), model.MustPositive(110),
		[4]model.Positive{
			model.MustPositive(0.5),
			model.MustPositive(1.5),
			model.MustPositive(1.75),
			model.MustPositive(0.75),
		})
	if err != nil {
		t.Fatalf("NewIronCondor: %v", err)
	}

	for spot := 80.0; spot <= 120; spot += 5 {
		sum := 0.0
		for _, leg := range s.Positions() {
			sum += leg.PayoffAtExpiry(model.MustPositive(spot))
		}
		got := s.Payoff(model.MustPositive(spot))
		if math.Abs(got-sum) > 1e-6 {
			t.Errorf("spot %v: strategy payoff %v differs from leg sum %v", spot, got, sum)
		}
	}
}

func TestLongCallUnboundedProfit(t *testing.T) {
	s, err := NewLongCall(testConfig(), model.MustPositive(100), model.MustPositive(8))
	if err != nil {
		t.Fatalf("NewLongCall: %v", err)
	}

	profit, err := s.MaxProfit()
	if !errors.Is(err, ErrUnbounded) {
		t.Fatalf("expected ErrUnbounded, got %v", err)
	}
	if !profit.Equal(model.PInfinity) {
		t.Errorf("unbounded profit must report PInfinity, got %s", profit)
	}

	loss, err := s.MaxLoss()
	if err != nil {
		t.Fatalf("MaxLoss: %v", err)
	}
	if math.Abs(loss.Float64()-9.00) > 1e-6 {
		t.Errorf("max loss: expected premium plus fees 9.00, got %s", loss)
	}

	ratio, err := s.ProfitRatio()
	if err != nil {
		t.Fatalf("ProfitRatio: %v", err)
	}
	if !math.IsInf(ratio, 1) {
		t.Errorf("profit ratio: expected +Inf, got %v", ratio)
	}
}

func TestShortCallUnboundedLoss(t *testing.T) {
	s, err := NewShortCall(testConfig(), model.MustPositive(100), model.MustPositive(8))
	if err != nil {
		t.Fatalf("NewShortCall: %v", err)
	}

	if _, err := s.MaxLoss(); !errors.Is(err, ErrUnbounded) {
		t.Fatalf("expected ErrUnbounded, got %v", err)
	}

	ratio, err := s.ProfitRatio()
	if err != nil {
		t.Fatalf("ProfitRatio: %v", err)
	}
	if ratio != 0 {
		t.Errorf("profit ratio with unbounded loss: expected 0, got %v", ratio)
	}
}

func TestShapeViolations(t *testing.T) {
	cfg := testConfig()
	p := func(v float64) model.Positive { return model.MustPositive(v) }

	cases := map[string]error{}

	_, err := NewBullCallSpread(cfg, p(100), p(100), p(5), p(5))
	cases["spread with equal strikes"] = err

	_, err = NewLongStrangle(cfg, p(110), p(90), p(2), p(2))
	cases["strangle with put above call"] = err

	_, err = NewLongStraddle(cfg, p(100), p(4), p(4))
	if err != nil {
		t.Fatalf("valid straddle rejected: %v", err)
	}

	_, err = NewIronCondor(cfg, p(90), p(105), p(95), p(110),
		[4]model.Positive{p(1), p(1), p(1), p(1)})
	cases["condor with crossed short strikes"] = err

	_, err = NewIronButterfly(cfg, p(105), p(100), p(110),
		[4]model.Positive{p(1), p(1), p(1), p(1)})
	cases["iron butterfly with put wing above body"] = err

	_, err = NewCallButterfly(cfg, p(105), p(100), p(110), p(5), p(3), p(1))
	cases["call butterfly with long strike above a short"] = err

	for name, err := range cases {
		if !errors.Is(err, ErrShapeViolation) {
			t.Errorf("%s: expected ErrShapeViolation, got %v", name, err)
		}
	}
}

func TestLongButterflyBody(t *testing.T) {
	cfg := feeFreeConfig()
	s, err := NewLongButterfly(cfg,
		model.MustPositive(90), model.MustPositive(100), model.MustPositive(110),
		model.MustPositive(12), model.MustPositive(5), model.MustPositive(1))
	if err != nil {
		t.Fatalf("NewLongButterfly: %v", err)
	}

	legs := s.Positions()
	if !legs[1].Option.Quantity.Equal(model.MustPositive(2)) {
		t.Fatalf("body quantity: expected 2, got %s", legs[1].Option.Quantity)
	}

	// Net debit 12 - 2*5 + 1 = 3: wings flat at -3, peak 7 at the body.
	if got := s.Payoff(model.MustPositive(100)); math.Abs(got-7.00) > 1e-6 {
		t.Errorf("payoff at body: expected 7.00, got %v", got)
	}
	if got := s.Payoff(model.MustPositive(85)); math.Abs(got+3.00) > 1e-6 {
		t.Errorf("payoff below low wing: expected -3.00, got %v", got)
	}
	if got := s.Payoff(model.MustPositive(120)); math.Abs(got+3.00) > 1e-6 {
		t.Errorf("payoff above high wing: expected -3.00, got %v", got)
	}
}

func TestCoveredCallPayoff(t *testing.T) {
	s, err := NewCoveredCall(testConfig(), model.MustPositive(105), model.MustPositive(3))
	if err != nil {
		t.Fatalf("NewCoveredCall: %v", err)
	}

	// Stock entered at 100; call premium 3, fees 1.
	if got := s.Payoff(model.MustPositive(100)); math.Abs(got-2.00) > 1e-6 {
		t.Errorf("payoff at entry: expected 2.00, got %v", got)
	}
	if got := s.Payoff(model.MustPositive(110)); math.Abs(got-7.00) > 1e-6 {
		t.Errorf("payoff above strike: expected capped 7.00, got %v", got)
	}

	profit, err := s.MaxProfit()
	if err != nil {
		t.Fatalf("MaxProfit: %v", err)
	}
	if math.Abs(profit.Float64()-7.00) > 1e-6 {
		t.Errorf("max profit: expected 7.00, got %s", profit)
	}
}

func TestPoorMansCoveredCall(t *testing.T) {
	cfg := testConfig()
	far := model.ExpirationInDays(model.MustPositive(180))
	s, err := NewPoorMansCoveredCall(cfg,
		model.MustPositive(80), model.MustPositive(105),
		model.MustPositive(22), model.MustPositive(2), far)
	if err != nil {
		t.Fatalf("NewPoorMansCoveredCall: %v", err)
	}

	// At the short call's expiry the long call keeps its remaining time
	// value, so the payoff beats the naive both-expire sum.
	spot := model.MustPositive(100)
	naive := 0.0
	for _, leg := range s.Positions() {
		naive += leg.PayoffAtExpiry(spot)
	}
	if got := s.Payoff(spot); got <= naive {
		t.Errorf("diagonal payoff %v should exceed expire-everything sum %v", got, naive)
	}

	// The long leg must outlive the short leg.
	near := model.ExpirationInDays(model.MustPositive(10))
	if _, err := NewPoorMansCoveredCall(cfg,
		model.MustPositive(80), model.MustPositive(105),
		model.MustPositive(22), model.MustPositive(2), near); !errors.Is(err, ErrShapeViolation) {
		t.Errorf("expected ErrShapeViolation for short-dated long leg, got %v", err)
	}
}

func TestCustomStrategy(t *testing.T) {
	cfg := feeFreeConfig()
	call, err := cfg.leg(model.Long, model.Call, model.MustPositive(100), model.MustPositive(5))
	if err != nil {
		t.Fatalf("leg: %v", err)
	}
	put, err := cfg.leg(model.Long, model.Put, model.MustPositive(100), model.MustPositive(5))
	if err != nil {
		t.Fatalf("leg: %v", err)
	}

	s, err := NewCustomStrategy("homemade straddle", []model.Position{call, put})
	if err != nil {
		t.Fatalf("NewCustomStrategy: %v", err)
	}
	if s.Name() != "homemade straddle" {
		t.Errorf("name override lost: got %q", s.Name())
	}
	if s.Kind() != KindCustom {
		t.Errorf("expected KindCustom, got %v", s.Kind())
	}
	if got := s.Payoff(model.MustPositive(120)); math.Abs(got-10.00) > 1e-6 {
		t.Errorf("payoff at 120: expected 10.00, got %v", got)
	}

	if _, err := NewCustomStrategy("", nil); !errors.Is(err, ErrEmptyStrategy) {
		t.Errorf("expected ErrEmptyStrategy, got %v", err)
	}

	other := cfg
	other.Symbol = "OTHER"
	alien, err := other.leg(model.Long, model.Call, model.MustPositive(100), model.MustPositive(5))
	if err != nil {
		t.Fatalf("leg: %v", err)
	}
	if _, err := NewCustomStrategy("", []model.Position{call, alien}); !errors.Is(err, ErrMixedSymbols) {
		t.Errorf("expected ErrMixedSymbols, got %v", err)
	}
}

func TestCustomStrategyWithStock(t *testing.T) {
	cfg := feeFreeConfig()
	call, err := cfg.leg(model.Short, model.Call, model.MustPositive(105), model.MustPositive(3))
	if err != nil {
		t.Fatalf("leg: %v", err)
	}
	s, err := NewCustomStrategy("", []model.Position{call})
	if err != nil {
		t.Fatalf("NewCustomStrategy: %v", err)
	}
	s = s.WithStock(model.Long, model.MustPositive(1), model.MustPositive(100))

	// Below the strike the stock leg dominates: -10 stock + 3 premium.
	if got := s.Payoff(model.MustPositive(90)); math.Abs(got+7.00) > 1e-6 {
		t.Errorf("payoff at 90: expected -7.00, got %v", got)
	}
}

func TestPayoffCurve(t *testing.T) {
	s, err := NewLongStraddle(feeFreeConfig(), model.MustPositive(100), model.MustPositive(4), model.MustPositive(4))
	if err != nil {
		t.Fatalf("NewLongStraddle: %v", err)
	}

	curve, err := s.PayoffCurve(model.MustPositive(1))
	if err != nil {
		t.Fatalf("PayoffCurve: %v", err)
	}
	if curve.Len() < 10 {
		t.Fatalf("payoff curve too sparse: %d points", curve.Len())
	}
	lo, _ := curve.XMin().Float64()
	hi, _ := curve.XMax().Float64()
	if lo > 95.001 || hi < 104.999 {
		t.Errorf("payoff curve [%v, %v] should cover the padded strike range", lo, hi)
	}

	if _, err := s.PayoffCurve(model.PZero); err == nil {
		t.Error("zero step must be rejected")
	}
}

func TestProfitAreaAntisymmetry(t *testing.T) {
	cfg := feeFreeConfig()
	long, err := NewLongStraddle(cfg, model.MustPositive(100), model.MustPositive(4), model.MustPositive(4))
	if err != nil {
		t.Fatalf("NewLongStraddle: %v", err)
	}
	short, err := NewShortStraddle(cfg, model.MustPositive(100), model.MustPositive(4), model.MustPositive(4))
	if err != nil {
		t.Fatalf("NewShortStraddle: %v", err)
	}

	la, err := long.ProfitArea()
	if err != nil {
		t.Fatalf("ProfitArea: %v", err)
	}
	sa, err := short.ProfitArea()
	if err != nil {
		t.Fatalf("ProfitArea: %v", err)
	}
	if math.Abs(la+sa) > 1e-9 {
		t.Errorf("mirror payoffs must have opposite areas: %v vs %v", la, sa)
	}
	if la < -1 || la > 1 || sa < -1 || sa > 1 {
		t.Errorf("areas must lie in [-1, 1]: %v, %v", la, sa)
	}
}
