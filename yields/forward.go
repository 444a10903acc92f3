package yields

import (
	"fmt"
	"math"
)

// ForwardCurve is bootstrapped from one-period forward rates: forwards[i]
// applies over (i, i+1]. Off the integer nodes it discounts at the forward of
// the enclosing period, and the last forward continues past n.
type ForwardCurve struct {
	forwards  []float64
	discounts []float64 // D(1..n)
	nodes     spotNodes
}

// NewForward chains the forwards into discount factors, D(i+1) = D(i)/(1+f[i]),
// and converts each D(k) to the spot rate D(k)^(-1/k) - 1.
func NewForward(forwards []float64) (*ForwardCurve, error) {
	if len(forwards) == 0 {
		return nil, fmt.Errorf("NewForward: %w: no forward rates", ErrConstruction)
	}

	n := len(forwards)
	discounts := make([]float64, n)
	times := make([]float64, n)
	spots := make([]float64, n)

	df := 1.0
	for i, f := range forwards {
		if !(f > -1) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("NewForward: %w: forward[%d]=%v must be finite and greater than -1", ErrConstruction, i, f)
		}
		df /= 1 + f
		k := float64(i + 1)
		spot, err := RateFromDiscount(df, k)
		if err != nil {
			return nil, fmt.Errorf("NewForward: period %d: %w", i, err)
		}
		discounts[i] = df
		times[i] = k
		spots[i] = spot
	}

	return &ForwardCurve{
		forwards:  append([]float64(nil), forwards...),
		discounts: discounts,
		nodes:     newSpotNodes(times, discounts, spots),
	}, nil
}

// Forwards returns a copy of the input forward rates.
func (f *ForwardCurve) Forwards() []float64 { return append([]float64(nil), f.forwards...) }

// DiscountFactors returns a copy of D(1..n).
func (f *ForwardCurve) DiscountFactors() []float64 { return append([]float64(nil), f.discounts...) }

// Times returns the node horizons 1..n.
func (f *ForwardCurve) Times() []float64 { return append([]float64(nil), f.nodes.times...) }

// SpotRates returns the spot rate at each node.
func (f *ForwardCurve) SpotRates() []float64 { return append([]float64(nil), f.nodes.rates...) }

func (f *ForwardCurve) Rate(t float64) (float64, error) { return f.nodes.rate(t) }

func (f *ForwardCurve) Discount(t float64) (float64, error) { return f.nodes.discount(t) }

func (*ForwardCurve) sealed() {}
