package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/yields/bond"
	"github.com/meenmo/yields/curvespec"
	"github.com/meenmo/yields/yields"
)

const pricePlaces = 6

type bondRequest struct {
	Maturity  float64 `json:"maturity" yaml:"maturity"`
	Coupon    float64 `json:"coupon" yaml:"coupon"`
	Frequency int     `json:"frequency" yaml:"frequency"`
}

type curveReport struct {
	Name   string      `json:"name" yaml:"name"`
	Type   string      `json:"type" yaml:"type"`
	Points []point     `json:"points,omitempty" yaml:"points,omitempty"`
	Bond   *bondReport `json:"bond,omitempty" yaml:"bond,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type point struct {
	Horizon    fixed `json:"t" yaml:"t"`
	Rate       fixed `json:"rate" yaml:"rate"`
	Forward    fixed `json:"forward" yaml:"forward"`
	Discount   fixed `json:"discount" yaml:"discount"`
	Accumulate fixed `json:"accumulate" yaml:"accumulate"`
}

type bondReport struct {
	bondRequest `yaml:",inline"`
	Price       fixed `json:"price" yaml:"price"`
	Yield       fixed `json:"yield" yaml:"yield"`
}

// fixed renders a decimal as a bare JSON number or YAML float.
type fixed struct {
	d decimal.Decimal
}

func newFixed(v float64, places int32) fixed {
	return fixed{d: decimal.NewFromFloat(v).Round(places)}
}

func (f fixed) MarshalJSON() ([]byte, error) { return []byte(f.d.String()), nil }

func (f fixed) MarshalYAML() (any, error) { return f.d.InexactFloat64(), nil }

func (f fixed) String() string { return f.d.String() }

// evaluate builds one curve and tabulates it on the requested horizons. The
// forward column is the rate implied between consecutive horizons.
func evaluate(b curvespec.Builder, spec curvespec.Spec, opts options) curveReport {
	rep := curveReport{Name: spec.Label(), Type: spec.Type}

	y, err := b.Build(spec)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	hs := append([]float64(nil), opts.horizons...)
	sort.Float64s(hs)

	prev := 0.0
	for _, h := range hs {
		p, err := tabulate(y, prev, h, opts.precision)
		if err != nil {
			rep.Error = fmt.Sprintf("horizon %v: %v", h, err)
			return rep
		}
		rep.Points = append(rep.Points, p)
		prev = h
	}

	if opts.bond != nil {
		br, err := priceBond(y, *opts.bond, opts.precision)
		if err != nil {
			rep.Error = err.Error()
			return rep
		}
		rep.Bond = br
	}
	return rep
}

func tabulate(y yields.Yield, prev, h float64, places int32) (point, error) {
	rate, err := yields.Rate(y, h)
	if err != nil {
		return point{}, err
	}
	fwd, err := yields.ForwardRate(y, prev, h)
	if err != nil {
		return point{}, err
	}
	df, err := yields.Discount(y, h)
	if err != nil {
		return point{}, err
	}
	acc, err := yields.Accumulate(y, h)
	if err != nil {
		return point{}, err
	}
	return point{
		Horizon:    newFixed(h, places),
		Rate:       newFixed(rate, places),
		Forward:    newFixed(fwd, places),
		Discount:   newFixed(df, places),
		Accumulate: newFixed(acc, places),
	}, nil
}

// priceBond reports the rounded curve price and the yield to maturity of the
// unrounded present value.
func priceBond(y yields.Yield, req bondRequest, places int32) (*bondReport, error) {
	cfs, err := bond.FixedCoupon(req.Coupon, req.Maturity, req.Frequency)
	if err != nil {
		return nil, err
	}
	pv, err := bond.PresentValue(y, cfs)
	if err != nil {
		return nil, err
	}
	ytm, err := bond.YieldToMaturity(pv, cfs)
	if err != nil {
		return nil, err
	}
	return &bondReport{
		bondRequest: req,
		Price:       fixed{d: decimal.NewFromFloat(pv).Round(pricePlaces)},
		Yield:       newFixed(ytm.Yield, places),
	}, nil
}

// writeReports prints a single object for one curve and a list otherwise.
func writeReports(w io.Writer, reports []curveReport, format string) error {
	var out any = reports
	if len(reports) == 1 {
		out = reports[0]
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
