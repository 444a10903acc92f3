package curvespec

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// toRate converts a loosely typed rate to a decimal rate. Quotes are scaled
// in decimal arithmetic so that 2.7225% becomes exactly 0.027225.
func toRate(v any, unit string) (float64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasSuffix(s, "%"):
			d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
			if err != nil {
				return 0, fmt.Errorf("%w: rate %q: %v", ErrInvalidSpec, s, err)
			}
			return d.Div(hundred).InexactFloat64(), nil
		case strings.HasSuffix(strings.ToLower(s), "bp"):
			d, err := decimal.NewFromString(strings.TrimSpace(s[:len(s)-2]))
			if err != nil {
				return 0, fmt.Errorf("%w: rate %q: %v", ErrInvalidSpec, s, err)
			}
			return d.Div(tenThousand).InexactFloat64(), nil
		}
	}

	d, err := toDecimal(v)
	if err != nil {
		return 0, fmt.Errorf("%w: rate %v: %v", ErrInvalidSpec, v, err)
	}
	switch strings.ToLower(unit) {
	case "", UnitDecimal:
		return d.InexactFloat64(), nil
	case UnitPercent:
		return d.Div(hundred).InexactFloat64(), nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSpec, unit)
	}
}

func toRates(vs []any, unit string) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		r, err := toRate(v, unit)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

// toTimes converts horizons or maturities; they carry no unit.
func toTimes(vs []any) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("%w: times[%d]=%v: %v", ErrInvalidSpec, i, v, err)
		}
		out[i] = f
	}
	return out, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	if s, ok := v.(string); ok {
		return decimal.NewFromString(strings.TrimSpace(s))
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}
