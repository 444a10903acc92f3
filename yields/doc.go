// Package yields models interest-rate term structures.
//
// Every curve answers three questions for a horizon t (in periods, usually
// years): the spot rate, the discount factor and the accumulation factor.
// Rates are annually compounded effective rates, so a flat rate r discounts
// by (1+r)^(-t).
//
// Curve variants:
//
//   - Constant     one rate for every maturity
//   - Step         piecewise-constant rates between breakpoints
//   - Combination  the sum or difference of two curves, taken on spot rates
//   - ForwardCurve bootstrapped from one-period forward rates
//   - ParCurve     bootstrapped from par bond yields
//
// All curves are immutable after construction and safe for concurrent use.
//
//	base, _ := yields.NewPar([]float64{0.03, 0.035, 0.04})
//	spread, _ := yields.NewConstant(0.01)
//	risky, _ := yields.Add(base, spread)
//	df, _ := yields.Discount(risky, 2.5)
package yields
