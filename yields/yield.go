package yields

import (
	"fmt"
	"math"
)

// Yield is a term structure. The set of implementations is closed to this
// package: Constant, Step, Combination, ForwardCurve and ParCurve.
type Yield interface {
	// Rate is the spot rate applicable from 0 to t.
	Rate(t float64) (float64, error)
	// Discount is the present value at 0 of one unit paid at t.
	Discount(t float64) (float64, error)

	sealed()
}

// Rate returns the spot rate of y at horizon t.
func Rate(y Yield, t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	return y.Rate(t)
}

// ForwardRate returns the rate implied between from and to by the discount
// ratio: (D(from)/D(to))^(1/(to-from)) - 1. When from == to it is the spot
// rate at that horizon.
func ForwardRate(y Yield, from, to float64) (float64, error) {
	if err := checkInterval(from, to); err != nil {
		return 0, err
	}
	if from == to {
		return y.Rate(from)
	}
	acc, err := AccumulateBetween(y, from, to)
	if err != nil {
		return 0, err
	}
	return math.Pow(acc, 1/(to-from)) - 1, nil
}

// Discount returns the discount factor of y from 0 to t.
func Discount(y Yield, t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	return y.Discount(t)
}

// DiscountBetween returns D(to)/D(from).
func DiscountBetween(y Yield, from, to float64) (float64, error) {
	dFrom, dTo, err := discountPair(y, from, to)
	if err != nil {
		return 0, err
	}
	return dTo / dFrom, nil
}

// Accumulate returns 1/D(t).
func Accumulate(y Yield, t float64) (float64, error) {
	d, err := Discount(y, t)
	if err != nil {
		return 0, err
	}
	return 1 / d, nil
}

// AccumulateBetween returns D(from)/D(to).
func AccumulateBetween(y Yield, from, to float64) (float64, error) {
	dFrom, dTo, err := discountPair(y, from, to)
	if err != nil {
		return 0, err
	}
	return dFrom / dTo, nil
}

// OnePeriodForwards returns ForwardRate(y, k, k+1) for k = 0..n-1.
func OnePeriodForwards(y Yield, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative period count %d", ErrDomain, n)
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		f, err := ForwardRate(y, float64(k), float64(k+1))
		if err != nil {
			return nil, fmt.Errorf("OnePeriodForwards: period %d: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

func discountPair(y Yield, from, to float64) (float64, float64, error) {
	if err := checkInterval(from, to); err != nil {
		return 0, 0, err
	}
	dFrom, err := y.Discount(from)
	if err != nil {
		return 0, 0, err
	}
	dTo, err := y.Discount(to)
	if err != nil {
		return 0, 0, err
	}
	return dFrom, dTo, nil
}

func checkHorizon(t float64) error {
	if !(t >= 0) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: horizon %v must be finite and non-negative", ErrDomain, t)
	}
	return nil
}

func checkInterval(from, to float64) error {
	if err := checkHorizon(from); err != nil {
		return err
	}
	if err := checkHorizon(to); err != nil {
		return err
	}
	if to < from {
		return fmt.Errorf("%w: interval [%v, %v] is reversed", ErrDomain, from, to)
	}
	return nil
}
