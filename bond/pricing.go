package bond

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/yields/yields"
)

// PresentValue discounts every cashflow on or after time 0 with y.
func PresentValue(y yields.Yield, cfs []Cashflow) (float64, error) {
	if y == nil {
		return 0, fmt.Errorf("PresentValue: curve is required")
	}
	if len(cfs) == 0 {
		return 0, fmt.Errorf("PresentValue: cashflows are required")
	}

	pv := 0.0
	for _, cf := range cfs {
		if cf.Time < 0 {
			continue
		}
		df, err := yields.Discount(y, cf.Time)
		if err != nil {
			return 0, fmt.Errorf("PresentValue: cashflow at %v: %w", cf.Time, err)
		}
		pv += cf.Amount() * df
	}
	return pv, nil
}

// Price returns the present value per 100 face rounded to places decimals.
func Price(y yields.Yield, cfs []Cashflow, places int32) (decimal.Decimal, error) {
	pv, err := PresentValue(y, cfs)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(pv).Round(places), nil
}
