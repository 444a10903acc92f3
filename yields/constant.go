package yields

import (
	"fmt"
	"math"
)

// Constant is a curve whose spot rate is the same for every maturity.
type Constant struct {
	spot float64
}

// NewConstant returns a flat curve at rate.
func NewConstant(rate float64) (*Constant, error) {
	if !(rate > -1) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("NewConstant: %w: rate %v must be finite and greater than -1", ErrConstruction, rate)
	}
	return &Constant{spot: rate}, nil
}

// SpotRate returns the curve's single rate.
func (c *Constant) SpotRate() float64 { return c.spot }

func (c *Constant) Rate(t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	return c.spot, nil
}

func (c *Constant) Discount(t float64) (float64, error) {
	return DiscountFactor(c.spot, t)
}

func (*Constant) sealed() {}
