package bond

// Cashflow is a single cash payment for a bond.
//
// Time is in periods (years) from the valuation date; amounts are per 100 face.
type Cashflow struct {
	Time      float64
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}
