package yields

import "fmt"

// Operator combines two spot rates.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

func (op Operator) apply(left, right float64) float64 {
	if op == OpSubtract {
		return left - right
	}
	return left + right
}

// Combination is a curve derived from two others by adding or subtracting
// their spot rates. Operands are referenced, not copied, and nothing is cached.
type Combination struct {
	left  Yield
	right Yield
	op    Operator
}

// Add returns a curve whose spot rate is left's plus right's.
func Add(left, right Yield) (*Combination, error) {
	return Combine(left, right, OpAdd)
}

// Subtract returns a curve whose spot rate is left's minus right's.
func Subtract(left, right Yield) (*Combination, error) {
	return Combine(left, right, OpSubtract)
}

// Combine returns left op right.
func Combine(left, right Yield, op Operator) (*Combination, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("Combine: %w: nil operand", ErrConstruction)
	}
	if op != OpAdd && op != OpSubtract {
		return nil, fmt.Errorf("Combine: %w: unknown operator %v", ErrConstruction, op)
	}
	return &Combination{left: left, right: right, op: op}, nil
}

// Operands returns the two combined curves.
func (c *Combination) Operands() (Yield, Yield) { return c.left, c.right }

// Operator returns how the operands are combined.
func (c *Combination) Operator() Operator { return c.op }

func (c *Combination) Rate(t float64) (float64, error) {
	l, err := c.left.Rate(t)
	if err != nil {
		return 0, fmt.Errorf("%s left operand: %w", c.op, err)
	}
	r, err := c.right.Rate(t)
	if err != nil {
		return 0, fmt.Errorf("%s right operand: %w", c.op, err)
	}
	return c.op.apply(l, r), nil
}

// Discount re-exponentiates the combined spot rate. Discount is not linear in
// rate, so operand discount factors are never multiplied or summed.
func (c *Combination) Discount(t float64) (float64, error) {
	r, err := c.Rate(t)
	if err != nil {
		return 0, err
	}
	return DiscountFactor(r, t)
}

func (*Combination) sealed() {}
