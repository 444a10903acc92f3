package yields

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/meenmo/yields/solver"
)

// faceValue is the par price every input bond is assumed to trade at.
const faceValue = 100.0

// Default spot-rate bracket searched at each maturity.
const (
	DefaultLowerBound = -0.99
	DefaultUpperBound = 1.0
)

// ParCurve is bootstrapped from par yields of bonds paying one coupon per
// period. Between maturities the forward implied by consecutive node
// discounts is held flat.
type ParCurve struct {
	parYields  []float64
	iterations []int
	nodes      spotNodes
}

type parOptions struct {
	maturities []float64
	find       solver.RootFinder
	cfg        solver.Config
	lower      float64
	upper      float64
	logger     *slog.Logger
}

// ParOption configures NewPar.
type ParOption func(*parOptions)

// WithMaturities sets the bond maturities, one per par yield. The default is
// 1, 2, ..., n. Coupon periods run between consecutive maturities.
func WithMaturities(maturities []float64) ParOption {
	return func(o *parOptions) {
		o.maturities = make([]float64, len(maturities))
		copy(o.maturities, maturities)
	}
}

// WithRootFinder replaces the default safeguarded Newton solver.
func WithRootFinder(find solver.RootFinder) ParOption {
	return func(o *parOptions) {
		o.find = find
	}
}

// WithSolverConfig sets tolerance and iteration budget for the default solver.
func WithSolverConfig(cfg solver.Config) ParOption {
	return func(o *parOptions) {
		o.cfg = cfg
	}
}

// WithBracket sets the spot-rate interval searched at each maturity.
func WithBracket(lower, upper float64) ParOption {
	return func(o *parOptions) {
		o.lower, o.upper = lower, upper
	}
}

// WithLogger enables debug records for each solved maturity.
func WithLogger(logger *slog.Logger) ParOption {
	return func(o *parOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewPar bootstraps spot rates from par yields, shortest maturity first.
//
// For maturity m_i with par yield p_i and coupon c = 100*p_i per unit period,
// the spot rate s_i solves
//
//	100 = Σ_{j<i} c·τ_j·(1+s_j)^(-m_j) + (100 + c·τ_i)·(1+s_i)^(-m_i)
//
// where τ_j = m_j - m_{j-1} and the earlier s_j are already solved.
func NewPar(parYields []float64, opts ...ParOption) (*ParCurve, error) {
	o := parOptions{
		cfg:    solver.DefaultConfig,
		lower:  DefaultLowerBound,
		upper:  DefaultUpperBound,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(parYields)
	if n == 0 {
		return nil, fmt.Errorf("NewPar: %w: no par yields", ErrConstruction)
	}
	if o.maturities == nil {
		o.maturities = make([]float64, n)
		for i := range o.maturities {
			o.maturities[i] = float64(i + 1)
		}
	}
	if len(o.maturities) != n {
		return nil, fmt.Errorf("NewPar: %w: %d par yields for %d maturities", ErrConstruction, n, len(o.maturities))
	}
	if err := checkBreakpoints(o.maturities); err != nil {
		return nil, fmt.Errorf("NewPar: %w", err)
	}
	for i, p := range parYields {
		if !(p > -1) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("NewPar: %w: par yield[%d]=%v must be finite and greater than -1", ErrConstruction, i, p)
		}
	}
	if !(o.lower > -1) || !(o.lower < o.upper) {
		return nil, fmt.Errorf("NewPar: %w: bracket [%v, %v] must satisfy -1 < lower < upper", ErrConstruction, o.lower, o.upper)
	}
	if o.find == nil {
		if err := o.cfg.Validate(); err != nil {
			return nil, fmt.Errorf("NewPar: %w: %v", ErrConstruction, err)
		}
		o.find = solver.SafeguardedFinder(o.cfg)
	}

	spots := make([]float64, 0, n)
	discounts := make([]float64, 0, n)
	iterations := make([]int, 0, n)
	for i, m := range o.maturities {
		res, err := solveParSpot(o, parYields[i], i, spots)
		if err != nil {
			return nil, fmt.Errorf("NewPar: maturity %v (par yield %v): %w: %w", m, parYields[i], ErrConvergence, err)
		}
		d, err := DiscountFactor(res.Root, m)
		if err != nil {
			return nil, fmt.Errorf("NewPar: maturity %v: %w", m, err)
		}
		spots = append(spots, res.Root)
		discounts = append(discounts, d)
		iterations = append(iterations, res.Iterations)

		o.logger.Debug("par spot solved",
			slog.Float64("maturity", m),
			slog.Float64("par_yield", parYields[i]),
			slog.Float64("spot", res.Root),
			slog.Int("iterations", res.Iterations))
	}

	return &ParCurve{
		parYields:  append([]float64(nil), parYields...),
		iterations: iterations,
		nodes:      newSpotNodes(o.maturities, discounts, spots),
	}, nil
}

// solveParSpot prices the par bond maturing at o.maturities[i] with every
// earlier coupon discounted at its solved spot rate, and solves for the one
// unknown spot rate that returns the price to par.
func solveParSpot(o parOptions, parYield float64, i int, spots []float64) (solver.Result, error) {
	coupon := faceValue * parYield

	known := 0.0
	prev := 0.0
	for j := 0; j < i; j++ {
		m := o.maturities[j]
		d, err := DiscountFactor(spots[j], m)
		if err != nil {
			return solver.Result{}, err
		}
		known += coupon * (m - prev) * d
		prev = m
	}

	maturity := o.maturities[i]
	final := faceValue + coupon*(maturity-prev)
	price := func(s float64) float64 {
		if 1+s <= 0 {
			return math.Inf(1)
		}
		return known + final*math.Pow(1+s, -maturity) - faceValue
	}
	return o.find(price, o.lower, o.upper)
}

// ParYields returns a copy of the input par yields.
func (p *ParCurve) ParYields() []float64 { return append([]float64(nil), p.parYields...) }

// DiscountFactors returns the discount factor at each maturity.
func (p *ParCurve) DiscountFactors() []float64 { return append([]float64(nil), p.nodes.discounts...) }

// Maturities returns a copy of the bond maturities.
func (p *ParCurve) Maturities() []float64 { return append([]float64(nil), p.nodes.times...) }

// SpotRates returns the solved spot rate at each maturity.
func (p *ParCurve) SpotRates() []float64 { return append([]float64(nil), p.nodes.rates...) }

// Iterations returns the solver iterations spent on each maturity.
func (p *ParCurve) Iterations() []int { return append([]int(nil), p.iterations...) }

func (p *ParCurve) Rate(t float64) (float64, error) { return p.nodes.rate(t) }

func (p *ParCurve) Discount(t float64) (float64, error) { return p.nodes.discount(t) }

func (*ParCurve) sealed() {}
