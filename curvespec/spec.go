// Package curvespec describes yield curves declaratively (JSON or YAML) and
// builds them into yields.Yield values.
//
//	type: add
//	left:
//	  type: par
//	  unit: percent
//	  rates: [3.1, 3.4, 3.6]
//	right:
//	  type: constant
//	  rate: "25bp"
package curvespec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Curve types understood by Build.
const (
	TypeConstant = "constant"
	TypeStep     = "step"
	TypeForward  = "forward"
	TypePar      = "par"
	TypeAdd      = "add"
	TypeSubtract = "subtract"
)

// Units for bare numeric rates.
const (
	UnitDecimal = "decimal"
	UnitPercent = "percent"
)

var (
	// ErrUnknownType indicates an unsupported curve type.
	ErrUnknownType = errors.New("curvespec: unknown curve type")
	// ErrInvalidSpec indicates missing or malformed fields.
	ErrInvalidSpec = errors.New("curvespec: invalid spec")
)

// Spec describes one curve. Numeric fields accept numbers or strings; string
// rates may carry a "%" or "bp" suffix, which overrides Unit.
type Spec struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string `json:"type" yaml:"type"`
	Unit       string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Rate       any    `json:"rate,omitempty" yaml:"rate,omitempty"`
	Rates      []any  `json:"rates,omitempty" yaml:"rates,omitempty"`
	Times      []any  `json:"times,omitempty" yaml:"times,omitempty"`
	Maturities []any  `json:"maturities,omitempty" yaml:"maturities,omitempty"`
	Left       *Spec  `json:"left,omitempty" yaml:"left,omitempty"`
	Right      *Spec  `json:"right,omitempty" yaml:"right,omitempty"`
}

// Parse decodes one spec or a list of specs. Input starting with '{' or '['
// is read as JSON, anything else as YAML.
func Parse(raw []byte) ([]Spec, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidSpec)
	}

	var specs []Spec
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &specs); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case '{':
		var one Spec
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		specs = []Spec{one}
	default:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&specs); err != nil {
				return nil, fmt.Errorf("parse YAML: %w", err)
			}
		} else {
			var one Spec
			if err := node.Decode(&one); err != nil {
				return nil, fmt.Errorf("parse YAML: %w", err)
			}
			specs = []Spec{one}
		}
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no curves", ErrInvalidSpec)
	}
	return specs, nil
}

// Label names the spec for logs and output.
func (s Spec) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Type
}
