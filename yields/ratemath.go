package yields

import (
	"fmt"
	"math"
)

// DiscountFactor returns (1+rate)^(-t) for an annually compounded rate.
func DiscountFactor(rate, t float64) (float64, error) {
	if !(t >= 0) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: horizon %v must be finite and non-negative", ErrDomain, t)
	}
	if !(1+rate > 0) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: rate %v requires 1+rate > 0", ErrDomain, rate)
	}
	if t == 0 {
		return 1, nil
	}
	return math.Pow(1+rate, -t), nil
}

// RateFromDiscount inverts DiscountFactor: df^(-1/t) - 1.
//
// At t = 0 the only admissible discount is exactly 1, for which the rate is 0.
func RateFromDiscount(df, t float64) (float64, error) {
	if !(t >= 0) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: horizon %v must be finite and non-negative", ErrDomain, t)
	}
	if !(df > 0) || math.IsInf(df, 0) {
		return 0, fmt.Errorf("%w: discount factor %v must be positive", ErrDomain, df)
	}
	if t == 0 {
		if df != 1 {
			return 0, fmt.Errorf("%w: discount factor at t=0 must be 1, got %v", ErrDomain, df)
		}
		return 0, nil
	}
	return math.Pow(df, -1/t) - 1, nil
}

// AccumulationFactor grows one unit at rate from `from` to `to`.
func AccumulationFactor(rate, from, to float64) (float64, error) {
	if !(to >= from) {
		return 0, fmt.Errorf("%w: interval [%v, %v] is reversed", ErrDomain, from, to)
	}
	dFrom, err := DiscountFactor(rate, from)
	if err != nil {
		return 0, err
	}
	dTo, err := DiscountFactor(rate, to)
	if err != nil {
		return 0, err
	}
	return dFrom / dTo, nil
}
