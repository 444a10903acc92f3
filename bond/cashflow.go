package bond

import (
	"fmt"
	"math"
)

// FixedCoupon builds the cashflows of a bullet bond paying couponRate (decimal,
// annual) frequency times a year until maturity, plus 100 at maturity.
//
// The schedule rolls backward from maturity, so a short first period gets a
// coupon prorated by its length.
func FixedCoupon(couponRate, maturity float64, frequency int) ([]Cashflow, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("FixedCoupon: frequency must be positive, got %d", frequency)
	}
	if !(maturity > 0) || math.IsInf(maturity, 0) {
		return nil, fmt.Errorf("FixedCoupon: maturity must be positive, got %v", maturity)
	}

	period := 1 / float64(frequency)
	fullCoupon := 100 * couponRate * period

	// Build payment times rolling backward from maturity.
	var times []float64
	for k := 0; ; k++ {
		t := maturity - float64(k)*period
		if t <= 1e-12 {
			break
		}
		times = append([]float64{t}, times...)
	}

	cfs := make([]Cashflow, 0, len(times))
	for i, t := range times {
		start := t - period
		coupon := fullCoupon
		if i == 0 && start < 0 {
			coupon = fullCoupon * t / period
		}
		cf := Cashflow{Time: t, Coupon: coupon}
		if i == len(times)-1 {
			cf.Principal = 100
		}
		cfs = append(cfs, cf)
	}
	return cfs, nil
}
