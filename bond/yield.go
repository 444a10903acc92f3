package bond

import (
	"fmt"
	"math"

	"github.com/meenmo/yields/solver"
)

// YieldResult is the output of YieldToMaturity.
type YieldResult struct {
	// Yield is the annually compounded yield as a decimal (0.0283 for 2.83%).
	Yield float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

const (
	yieldTolerance = 1e-12
	yieldMaxIter   = 100
	yieldFloor     = -0.5
	yieldCeiling   = 1.0
	yieldGuess     = 0.025
)

// YieldToMaturity solves for the flat yield y such that
//
//	price = Σ CF_k / (1+y)^t_k
//
// using Newton-Raphson with the analytic first derivative.
func YieldToMaturity(price float64, cfs []Cashflow) (YieldResult, error) {
	if !(price > 0) {
		return YieldResult{}, fmt.Errorf("YieldToMaturity: price must be positive, got %v", price)
	}
	if len(cfs) == 0 {
		return YieldResult{}, fmt.Errorf("YieldToMaturity: cashflows are required")
	}

	f := func(y float64) float64 {
		p, _ := priceAndDeriv(y, cfs)
		return p - price
	}
	df := func(y float64) float64 {
		_, d := priceAndDeriv(y, cfs)
		return d
	}

	cfg := solver.DefaultConfig
	cfg.Tolerance = yieldTolerance
	cfg.MaxIterations = yieldMaxIter
	res, err := solver.Newton(f, df, yieldGuess, yieldFloor, yieldCeiling, cfg)
	if err != nil {
		return YieldResult{Yield: res.Root, Iterations: res.Iterations}, fmt.Errorf("YieldToMaturity: %w", err)
	}
	return YieldResult{Yield: res.Root, Iterations: res.Iterations}, nil
}

// priceAndDeriv returns (price, dPrice/dy):
//
//	price = Σ CF_k / (1+y)^t_k
//	dP/dy = Σ −t_k · CF_k / (1+y)^(t_k+1)
func priceAndDeriv(y float64, cfs []Cashflow) (float64, float64) {
	var price, deriv float64
	for _, cf := range cfs {
		if cf.Time < 0 {
			continue
		}
		amt := cf.Amount()
		price += amt / math.Pow(1+y, cf.Time)
		deriv += -cf.Time * amt / math.Pow(1+y, cf.Time+1)
	}
	return price, deriv
}
