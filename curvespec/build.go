package curvespec

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/meenmo/yields/yields"
)

// Builder turns specs into curves.
type Builder struct {
	// ParOptions are passed to every par bootstrap, after the spec's own
	// maturities.
	ParOptions []yields.ParOption
	// Logger receives one debug record per built curve. Nil discards.
	Logger *slog.Logger
}

// Build constructs the curve described by s.
func (b Builder) Build(s Spec) (yields.Yield, error) {
	y, err := b.build(s, s.Label())
	if err != nil {
		return nil, err
	}
	return y, nil
}

func (b Builder) build(s Spec, path string) (yields.Yield, error) {
	y, err := b.buildOne(s, path)
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", path, err)
	}
	if b.Logger != nil {
		b.Logger.Debug("curve built", slog.String("curve", path), slog.String("type", s.Type))
	}
	return y, nil
}

// curveFields lists the value fields each curve type reads.
var curveFields = map[string][]string{
	TypeConstant: {"rate"},
	TypeStep:     {"rates", "times"},
	TypeForward:  {"rates"},
	TypePar:      {"rates", "maturities"},
	TypeAdd:      {"left", "right"},
	TypeSubtract: {"left", "right"},
}

// checkFields rejects value fields the curve type would ignore.
func checkFields(s Spec, typ string) error {
	allowed, ok := curveFields[typ]
	if !ok {
		return nil
	}
	present := map[string]bool{
		"rate":       s.Rate != nil,
		"rates":      s.Rates != nil,
		"times":      s.Times != nil,
		"maturities": s.Maturities != nil,
		"left":       s.Left != nil,
		"right":      s.Right != nil,
	}
	for _, field := range []string{"rate", "rates", "times", "maturities", "left", "right"} {
		if present[field] && !slices.Contains(allowed, field) {
			return fmt.Errorf("%w: field %q does not apply to a %s curve", ErrInvalidSpec, field, typ)
		}
	}
	return nil
}

func (b Builder) buildOne(s Spec, path string) (yields.Yield, error) {
	typ := strings.ToLower(strings.TrimSpace(s.Type))
	if err := checkFields(s, typ); err != nil {
		return nil, err
	}
	switch typ {
	case TypeConstant:
		if s.Rate == nil {
			return nil, fmt.Errorf("%w: constant curve needs rate", ErrInvalidSpec)
		}
		r, err := toRate(s.Rate, s.Unit)
		if err != nil {
			return nil, err
		}
		return yields.NewConstant(r)

	case TypeStep:
		rates, err := toRates(s.Rates, s.Unit)
		if err != nil {
			return nil, err
		}
		times, err := toTimes(s.Times)
		if err != nil {
			return nil, err
		}
		return yields.NewStep(rates, times)

	case TypeForward:
		rates, err := toRates(s.Rates, s.Unit)
		if err != nil {
			return nil, err
		}
		return yields.NewForward(rates)

	case TypePar:
		rates, err := toRates(s.Rates, s.Unit)
		if err != nil {
			return nil, err
		}
		var opts []yields.ParOption
		if len(s.Maturities) > 0 {
			maturities, err := toTimes(s.Maturities)
			if err != nil {
				return nil, err
			}
			opts = append(opts, yields.WithMaturities(maturities))
		}
		opts = append(opts, b.ParOptions...)
		if b.Logger != nil {
			opts = append(opts, yields.WithLogger(b.Logger.With(slog.String("curve", path))))
		}
		return yields.NewPar(rates, opts...)

	case TypeAdd, TypeSubtract:
		if s.Left == nil || s.Right == nil {
			return nil, fmt.Errorf("%w: %s needs left and right", ErrInvalidSpec, s.Type)
		}
		left, err := b.build(*s.Left, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := b.build(*s.Right, path+".right")
		if err != nil {
			return nil, err
		}
		op := yields.OpAdd
		if typ == TypeSubtract {
			op = yields.OpSubtract
		}
		return yields.Combine(left, right, op)

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, s.Type)
	}
}
