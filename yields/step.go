package yields

import (
	"fmt"
	"math"
	"sort"
)

// Step is a piecewise-constant curve: rates[i] applies on (times[i-1], times[i]],
// with times[-1] = 0, and the last rate continues past the final breakpoint.
type Step struct {
	rates []float64
	times []float64
}

// NewStep builds a Step curve. times must start above zero and be strictly
// increasing, with one rate per breakpoint.
func NewStep(rates, times []float64) (*Step, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("NewStep: %w: no rates", ErrConstruction)
	}
	if len(rates) != len(times) {
		return nil, fmt.Errorf("NewStep: %w: %d rates for %d times", ErrConstruction, len(rates), len(times))
	}
	if err := checkBreakpoints(times); err != nil {
		return nil, fmt.Errorf("NewStep: %w", err)
	}
	for i, r := range rates {
		if !(r > -1) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("NewStep: %w: rate[%d]=%v must be finite and greater than -1", ErrConstruction, i, r)
		}
	}
	return &Step{
		rates: append([]float64(nil), rates...),
		times: append([]float64(nil), times...),
	}, nil
}

// Rates returns a copy of the step rates.
func (s *Step) Rates() []float64 { return append([]float64(nil), s.rates...) }

// Times returns a copy of the breakpoints.
func (s *Step) Times() []float64 { return append([]float64(nil), s.times...) }

func (s *Step) Rate(t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	return s.rates[stepIndex(s.times, t)], nil
}

// Discount compounds each segment's rate over the part of the segment that
// lies before t.
func (s *Step) Discount(t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	df := 1.0
	prev := 0.0
	for i, end := range s.times {
		if t <= prev {
			break
		}
		seg := math.Min(t, end) - prev
		if i == len(s.times)-1 {
			seg = t - prev
		}
		d, err := DiscountFactor(s.rates[i], seg)
		if err != nil {
			return 0, err
		}
		df *= d
		prev = end
	}
	return df, nil
}

func (*Step) sealed() {}

// stepIndex returns the smallest i with t <= times[i], or the last index
// when t lies past every breakpoint.
func stepIndex(times []float64, t float64) int {
	i := sort.SearchFloat64s(times, t)
	if i >= len(times) {
		return len(times) - 1
	}
	return i
}

func checkBreakpoints(times []float64) error {
	prev := 0.0
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: time[%d]=%v is not finite", ErrConstruction, i, t)
		}
		if t <= prev {
			if i == 0 {
				return fmt.Errorf("%w: first time %v must be positive", ErrConstruction, t)
			}
			return fmt.Errorf("%w: times must be strictly increasing, time[%d]=%v after %v", ErrConstruction, i, t, prev)
		}
		prev = t
	}
	return nil
}
