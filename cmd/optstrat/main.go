package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"

	"github.com/optstrat/optstrat/chains"
	"github.com/optstrat/optstrat/metrics"
	"github.com/optstrat/optstrat/model"
	"github.com/optstrat/optstrat/simulation"
	"github.com/optstrat/optstrat/strategies"
	"github.com/optstrat/optstrat/utils"
)

const (
	numSimulations = 1000
	walkSteps      = 30
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using defaults")
	}

	symbol := os.Getenv("OPTSTRAT_SYMBOL")
	if symbol == "" {
		symbol = "SPY"
	}
	spot := envFloat("OPTSTRAT_SPOT", 100.0)
	rfr := envFloat("OPTSTRAT_RFR", 0.05)

	now := time.Now()
	expiration := model.ExpirationInDays(model.MustPositive(30))

	chainParams := chains.ChainParams{
		Symbol:          symbol,
		UnderlyingPrice: model.MustPositive(spot),
		StrikeCount:     21,
		StrikeStep:      model.MustPositive(1),
		BaseVolatility:  model.MustPositive(0.20),
		Skew:            decimal.NewFromFloat(-0.2),
		Curvature:       decimal.NewFromFloat(0.4),
		Spread:          model.MustPositive(0.04),
		RiskFreeRate:    decimal.NewFromFloat(rfr),
		DividendYield:   model.PZero,
		Expiration:      expiration,
		Volume:          1200,
		OpenInterest:    4500,
	}

	chain, err := chains.BuildChain(chainParams, now)
	if err != nil {
		log.Fatalf("building chain: %s", err)
	}
	fmt.Printf("Built %s chain: %d strikes around %.2f\n", symbol, chain.Len(), spot)

	atm, err := chain.ATMStrike()
	if err != nil {
		log.Fatalf("ATM strike: %s", err)
	}
	fmt.Printf("ATM strike: %s\n", atm)

	ivCurve, err := metrics.IVCurve(chain)
	if err != nil {
		log.Fatalf("IV curve: %s", err)
	}
	fmt.Printf("IV curve: %d points over [%s, %s]\n", ivCurve.Len(), ivCurve.XMin(), ivCurve.XMax())

	fit, err := chains.CalibrateSmile(chain)
	if err != nil {
		log.Fatalf("smile calibration: %s", err)
	}
	fmt.Printf("Calibrated smile: base=%.4f skew=%.4f curvature=%.4f (mse %.2e)\n",
		fit.BaseVolatility, fit.Skew, fit.Curvature, fit.MSE)

	condor := buildCondor(chain, chainParams)

	breakEvens, err := condor.BreakEvenPoints()
	if err != nil {
		log.Fatalf("break-evens: %s", err)
	}
	fmt.Printf("%s break-evens: %v\n", condor.Name(), breakEvens)

	if maxProfit, err := condor.MaxProfit(); err == nil {
		fmt.Printf("Max profit: %s\n", maxProfit)
	}
	if maxLoss, err := condor.MaxLoss(); err == nil {
		fmt.Printf("Max loss: %s\n", maxLoss)
	}
	if ratio, err := condor.ProfitRatio(); err == nil {
		fmt.Printf("Profit ratio: %.4f\n", ratio)
	}

	pop := estimateProfitability(condor, spot, rfr)
	fmt.Printf("Probability of profit (%d paths): %.2f%%\n", numSimulations, pop*100)

	previewWalks(symbol, spot, rfr)
	writeChain(chain)
}

// previewWalks generates a small batch and reports the first path's
// summary, with batch progress on the injected logger.
func previewWalks(symbol string, spot, rfr float64) {
	logger, err := utils.NewDevelopmentLogger()
	if err != nil {
		logger = utils.NopLogger()
	}
	defer logger.Sync()

	params := simulation.WalkParams{
		Type:         simulation.GeometricBrownian,
		Steps:        walkSteps,
		Dt:           1.0 / 365.0,
		InitialPrice: model.MustPositive(spot),
		TimeUnit:     simulation.UnitDay,
		Drift:        rfr,
		Volatility:   model.MustPositive(0.20),
		Seed:         7,
	}
	sim, err := simulation.NewSimulator(symbol, params, 8, simulation.WithLogger(logger))
	if err != nil {
		logger.Error("walk preview failed", "err", err)
		return
	}
	st, err := sim.Walks()[0].Stats(params.Dt)
	if err != nil {
		logger.Error("walk stats failed", "err", err)
		return
	}
	fmt.Printf("Sample walk: terminal %.2f, return %.2f%%, realised vol %.2f%%\n",
		st.Terminal, st.TotalReturn*100, st.LogReturnVol*100)
}

func buildCondor(chain *chains.OptionChain, p chains.ChainParams) strategies.Strategy {
	atm, err := chain.ATMStrike()
	if err != nil {
		log.Fatalf("ATM strike: %s", err)
	}

	step := p.StrikeStep
	shortPut := atm.Sub(step.Mul(model.MustPositive(3)))
	longPut := atm.Sub(step.Mul(model.MustPositive(5)))
	shortCall := atm.Add(step.Mul(model.MustPositive(3)))
	longCall := atm.Add(step.Mul(model.MustPositive(5)))

	cfg := strategies.Config{
		Symbol:            p.Symbol,
		UnderlyingPrice:   p.UnderlyingPrice,
		Expiration:        p.Expiration,
		ImpliedVolatility: p.BaseVolatility,
		RiskFreeRate:      p.RiskFreeRate,
		DividendYield:     p.DividendYield,
		Quantity:          model.POne,
		OpenFee:           model.MustPositive(0.65),
		CloseFee:          model.MustPositive(0.65),
	}

	premiums := [4]model.Positive{
		quote(chain, longPut, false),
		quote(chain, shortPut, false),
		quote(chain, shortCall, true),
		quote(chain, longCall, true),
	}

	condor, err := strategies.NewIronCondor(cfg, longPut, shortPut, shortCall, longCall, premiums)
	if err != nil {
		log.Fatalf("building iron condor: %s", err)
	}
	return condor
}

func quote(chain *chains.OptionChain, strike model.Positive, call bool) model.Positive {
	row, err := chain.AtStrike(strike)
	if err != nil {
		log.Fatalf("strike %s not in chain: %s", strike, err)
	}
	if call {
		return row.CallMid()
	}
	return row.PutMid()
}

// estimateProfitability runs terminal-value paths in batches behind a
// progress bar.
func estimateProfitability(strat strategies.Strategy, spot, rfr float64) float64 {
	params := simulation.WalkParams{
		Type:         simulation.GeometricBrownian,
		Steps:        walkSteps,
		Dt:           1.0 / 365.0,
		InitialPrice: model.MustPositive(spot),
		TimeUnit:     simulation.UnitDay,
		Drift:        rfr,
		Volatility:   model.MustPositive(0.20),
		Seed:         42,
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(numSimulations,
		mpb.PrependDecorators(
			decor.Name("Simulating"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	const batches = 10
	perBatch := numSimulations / batches
	profitable := 0.0
	var wg sync.WaitGroup
	var mu sync.Mutex
	for b := 0; b < batches; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			batchParams := params
			batchParams.Seed = params.Seed + uint64(b*perBatch)
			pop, err := simulation.ProbabilityOfProfit(strat, batchParams, perBatch)
			if err != nil {
				fmt.Printf("simulation batch %d: %s\n", b, err)
				bar.IncrBy(perBatch)
				return
			}
			mu.Lock()
			profitable += pop * float64(perBatch)
			mu.Unlock()
			bar.IncrBy(perBatch)
		}(b)
	}
	wg.Wait()
	p.Wait()

	return profitable / numSimulations
}

func writeChain(chain *chains.OptionChain) {
	out, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling chain: %s\n", err)
		return
	}
	if err := os.WriteFile("chain.json", out, 0644); err != nil {
		fmt.Printf("Error writing chain.json: %s\n", err)
		return
	}
	fmt.Println("Wrote chain.json")
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
