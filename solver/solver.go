// Package solver finds roots of one-dimensional real functions.
//
// All routines are bounded by Config.MaxIterations so they always terminate.
// Bisect and Safeguarded require a sign change over [lo, hi]; Newton takes an
// analytic derivative and clamps every iterate into [lo, hi].
package solver

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotBracketed indicates f(lo) and f(hi) have the same sign.
	ErrNotBracketed = errors.New("solver: root not bracketed")
	// ErrNoConvergence indicates the iteration budget was exhausted.
	ErrNoConvergence = errors.New("solver: did not converge")
	// ErrFlatDerivative indicates Newton hit a derivative too small to divide by.
	ErrFlatDerivative = errors.New("solver: derivative too small")
	// ErrInvalidInput indicates a bad interval, a non-finite value or a bad Config.
	ErrInvalidInput = errors.New("solver: invalid input")
)

// Func is a real function of one variable.
type Func func(x float64) float64

// Config bounds the work a solver may do.
type Config struct {
	// Tolerance applies both to |f(x)| and to the step (or bracket) width.
	Tolerance float64
	// MaxIterations caps function-update steps.
	MaxIterations int
	// DerivativeThreshold is the smallest |f'(x)| Newton divides by.
	DerivativeThreshold float64
}

// DefaultConfig matches the tolerances used for curve bootstrapping.
var DefaultConfig = Config{
	Tolerance:           1e-12,
	MaxIterations:       200,
	DerivativeThreshold: 1e-15,
}

// Result is a located root.
type Result struct {
	Root       float64
	Iterations int
}

// RootFinder locates a root of f inside [lo, hi].
type RootFinder func(f Func, lo, hi float64) (Result, error)

// Validate reports whether cfg can drive a solver.
func (cfg Config) Validate() error {
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidInput, cfg.Tolerance)
	}
	if cfg.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidInput, cfg.MaxIterations)
	}
	if cfg.DerivativeThreshold < 0 {
		return fmt.Errorf("%w: derivative threshold must be non-negative", ErrInvalidInput)
	}
	return nil
}

// BisectFinder returns a RootFinder running Bisect with cfg.
func BisectFinder(cfg Config) RootFinder {
	return func(f Func, lo, hi float64) (Result, error) {
		return Bisect(f, lo, hi, cfg)
	}
}

// SafeguardedFinder returns a RootFinder running Safeguarded with cfg.
func SafeguardedFinder(cfg Config) RootFinder {
	return func(f Func, lo, hi float64) (Result, error) {
		return Safeguarded(f, lo, hi, cfg)
	}
}

// Bisect halves [lo, hi] until |f(mid)| or the half-width drops below tolerance.
func Bisect(f Func, lo, hi float64, cfg Config) (Result, error) {
	flo, fhi, err := bracket(f, lo, hi, cfg)
	if err != nil {
		return Result{}, err
	}
	if flo == 0 {
		return Result{Root: lo}, nil
	}
	if fhi == 0 {
		return Result{Root: hi}, nil
	}

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		mid := lo + 0.5*(hi-lo)
		fmid := f(mid)
		if math.IsNaN(fmid) {
			return Result{Root: mid, Iterations: iter}, fmt.Errorf("%w: f(%v) is NaN", ErrInvalidInput, mid)
		}
		if math.Abs(fmid) < cfg.Tolerance || 0.5*(hi-lo) < cfg.Tolerance {
			return Result{Root: mid, Iterations: iter}, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return Result{Root: lo + 0.5*(hi-lo), Iterations: cfg.MaxIterations},
		fmt.Errorf("%w: bisection after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}

// Safeguarded runs Newton steps on a numerically differentiated f while keeping
// a sign-change bracket; any step that leaves the bracket or shrinks too slowly
// is replaced by a bisection step.
func Safeguarded(f Func, lo, hi float64, cfg Config) (Result, error) {
	flo, fhi, err := bracket(f, lo, hi, cfg)
	if err != nil {
		return Result{}, err
	}
	if flo == 0 {
		return Result{Root: lo}, nil
	}
	if fhi == 0 {
		return Result{Root: hi}, nil
	}

	// Orient so that f(xl) < 0 < f(xh).
	xl, xh := lo, hi
	if flo > 0 {
		xl, xh = hi, lo
	}

	x := 0.5 * (lo + hi)
	dxOld := math.Abs(hi - lo)
	dx := dxOld
	fx := f(x)
	dfx := centralDifference(f, x)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		if math.IsNaN(fx) {
			return Result{Root: x, Iterations: iter}, fmt.Errorf("%w: f(%v) is NaN", ErrInvalidInput, x)
		}
		if math.Abs(fx) < cfg.Tolerance {
			return Result{Root: x, Iterations: iter}, nil
		}

		outside := ((x-xh)*dfx-fx)*((x-xl)*dfx-fx) > 0
		slow := math.Abs(2*fx) > math.Abs(dxOld*dfx)
		if outside || slow || math.Abs(dfx) <= cfg.DerivativeThreshold {
			dxOld = dx
			dx = 0.5 * (xh - xl)
			x = xl + dx
		} else {
			dxOld = dx
			dx = fx / dfx
			x -= dx
		}
		if math.Abs(dx) < cfg.Tolerance {
			return Result{Root: x, Iterations: iter}, nil
		}

		fx = f(x)
		dfx = centralDifference(f, x)
		if fx < 0 {
			xl = x
		} else {
			xh = x
		}
	}
	return Result{Root: x, Iterations: cfg.MaxIterations},
		fmt.Errorf("%w: safeguarded newton after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}

// Newton iterates x -= f(x)/df(x) from x0, clamping each iterate into [lo, hi].
func Newton(f, df Func, x0, lo, hi float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if !(lo < hi) {
		return Result{}, fmt.Errorf("%w: empty interval [%v, %v]", ErrInvalidInput, lo, hi)
	}

	x := clamp(x0, lo, hi)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		fx := f(x)
		if math.IsNaN(fx) {
			return Result{Root: x, Iterations: iter + 1}, fmt.Errorf("%w: f(%v) is NaN", ErrInvalidInput, x)
		}
		if math.Abs(fx) < cfg.Tolerance {
			return Result{Root: x, Iterations: iter + 1}, nil
		}
		dfx := df(x)
		if math.Abs(dfx) <= cfg.DerivativeThreshold || math.IsNaN(dfx) {
			return Result{Root: x, Iterations: iter + 1}, fmt.Errorf("%w at iteration %d", ErrFlatDerivative, iter)
		}
		next := clamp(x-fx/dfx, lo, hi)
		if math.Abs(next-x) < cfg.Tolerance {
			return Result{Root: next, Iterations: iter + 1}, nil
		}
		x = next
	}
	return Result{Root: x, Iterations: cfg.MaxIterations},
		fmt.Errorf("%w: newton after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}

func bracket(f Func, lo, hi float64, cfg Config) (float64, float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, fmt.Errorf("%w: bad interval [%v, %v]", ErrInvalidInput, lo, hi)
	}
	flo, fhi := f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return 0, 0, fmt.Errorf("%w: f is NaN at an interval end", ErrInvalidInput)
	}
	if flo != 0 && fhi != 0 && math.Signbit(flo) == math.Signbit(fhi) {
		return 0, 0, fmt.Errorf("%w: f(%v)=%v, f(%v)=%v", ErrNotBracketed, lo, flo, hi, fhi)
	}
	return flo, fhi, nil
}

func centralDifference(f Func, x float64) float64 {
	h := 1e-7 * (1 + math.Abs(x))
	return (f(x+h) - f(x-h)) / (2 * h)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
