package yields

import (
	"math"
	"sort"
)

// spotNodes evaluates a bootstrapped curve from its node discount factors.
// Between nodes the effective forward is flat (log-linear discount factors),
// and the last forward continues past the final node. Node values are
// returned as stored.
type spotNodes struct {
	times     []float64
	discounts []float64
	rates     []float64 // spot rate at each node
	forwards  []float64 // forwards[k] applies on (times[k-1], times[k]]
}

// newSpotNodes derives the segment forwards from the node discounts.
func newSpotNodes(times, discounts, rates []float64) spotNodes {
	forwards := make([]float64, len(times))
	prevT, prevD := 0.0, 1.0
	for k, t := range times {
		forwards[k] = math.Pow(prevD/discounts[k], 1/(t-prevT)) - 1
		prevT, prevD = t, discounts[k]
	}
	return spotNodes{times: times, discounts: discounts, rates: rates, forwards: forwards}
}

// rate is RateFromDiscount(discount(t), t). At t == 0 it is the first
// segment's forward, the limit of the spot rate.
func (s spotNodes) rate(t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	if t == 0 {
		return s.forwards[0], nil
	}
	if i, ok := s.node(t); ok {
		return s.rates[i], nil
	}
	d, err := s.discount(t)
	if err != nil {
		return 0, err
	}
	return RateFromDiscount(d, t)
}

func (s spotNodes) discount(t float64) (float64, error) {
	if err := checkHorizon(t); err != nil {
		return 0, err
	}
	if t == 0 {
		return 1, nil
	}
	if i, ok := s.node(t); ok {
		return s.discounts[i], nil
	}

	n := len(s.times)
	i := sort.SearchFloat64s(s.times, t)
	anchorT, anchorD, fwd := 0.0, 1.0, s.forwards[0]
	switch {
	case i >= n:
		anchorT, anchorD, fwd = s.times[n-1], s.discounts[n-1], s.forwards[n-1]
	case i > 0:
		anchorT, anchorD, fwd = s.times[i-1], s.discounts[i-1], s.forwards[i]
	}
	d, err := DiscountFactor(fwd, t-anchorT)
	if err != nil {
		return 0, err
	}
	return anchorD * d, nil
}

func (s spotNodes) node(t float64) (int, bool) {
	i := sort.SearchFloat64s(s.times, t)
	if i < len(s.times) && s.times[i] == t {
		return i, true
	}
	return 0, false
}
