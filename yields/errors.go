package yields

import "errors"

var (
	// ErrDomain indicates a mathematically undefined input, such as a negative
	// horizon, a rate with 1+rate <= 0, or a non-unit discount at t = 0.
	ErrDomain = errors.New("yields: input outside the function domain")
	// ErrConstruction indicates malformed curve inputs.
	ErrConstruction = errors.New("yields: invalid curve inputs")
	// ErrConvergence indicates the par bootstrap root finder failed to bracket
	// or converge within its iteration budget.
	ErrConvergence = errors.New("yields: bootstrap did not converge")
)
