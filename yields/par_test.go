package yields_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/yields/solver"
	"github.com/meenmo/yields/yields"
)

func TestPar_FlatInputGivesFlatSpots(t *testing.T) {
	t.Parallel()

	par := make([]float64, 10)
	for i := range par {
		par[i] = 0.05
	}
	y, err := yields.NewPar(par)
	require.NoError(t, err)

	for _, s := range y.SpotRates() {
		assert.InDelta(t, 0.05, s, 1e-10)
	}
	for _, h := range []float64{0.5, 1, 3.3, 10, 12} {
		r, err := yields.Rate(y, h)
		require.NoError(t, err)
		assert.InDelta(t, 0.05, r, 1e-10)
	}
}

func TestPar_TwoPeriodClosedForm(t *testing.T) {
	t.Parallel()

	y, err := yields.NewPar([]float64{0.05, 0.06})
	require.NoError(t, err)

	// 100 = 6/1.05 + 106/(1+s2)^2
	s2 := math.Sqrt(106/(100-6/1.05)) - 1

	spots := y.SpotRates()
	require.Len(t, spots, 2)
	assert.InDelta(t, 0.05, spots[0], 1e-10)
	assert.InDelta(t, s2, spots[1], 1e-10)
}

func TestPar_RepricesInputBondsAtPar(t *testing.T) {
	t.Parallel()

	par := []float64{0.030, 0.034, 0.037, 0.039, 0.041, 0.0415}
	y, err := yields.NewPar(par)
	require.NoError(t, err)

	for i, p := range par {
		n := i + 1
		pv := 0.0
		for k := 1; k <= n; k++ {
			d, err := yields.Discount(y, float64(k))
			require.NoError(t, err)
			cf := 100 * p
			if k == n {
				cf += 100
			}
			pv += cf * d
		}
		assert.InDelta(t, 100, pv, 1e-8, "maturity %d", n)
	}
}

func TestPar_CustomMaturities(t *testing.T) {
	t.Parallel()

	// Semi-annual periods: coupon per period is 100*p*0.5.
	par := []float64{0.04, 0.04, 0.04, 0.04}
	y, err := yields.NewPar(par, yields.WithMaturities([]float64{0.5, 1, 1.5, 2}))
	require.NoError(t, err)

	for i, m := range y.Maturities() {
		pv := 0.0
		prev := 0.0
		for j := 0; j <= i; j++ {
			mj := y.Maturities()[j]
			d, err := yields.Discount(y, mj)
			require.NoError(t, err)
			cf := 100 * 0.04 * (mj - prev)
			if j == i {
				cf += 100
			}
			pv += cf * d
			prev = mj
		}
		assert.InDelta(t, 100, pv, 1e-8, "maturity %v", m)
	}
}

func TestPar_InvertedCurveBetweenMaturities(t *testing.T) {
	t.Parallel()

	y, err := yields.NewPar([]float64{0.06, 0.05, 0.045})
	require.NoError(t, err)

	nodes := y.DiscountFactors()
	require.Len(t, nodes, 3)
	for k, s := range y.SpotRates() {
		m := float64(k + 1)
		assert.InDelta(t, math.Pow(1+s, -m), nodes[k], 1e-15)
	}

	// The flat forward between maturities k and k+1 is the node ratio.
	for k := 1; k < 3; k++ {
		m := float64(k)
		fwd := nodes[k-1]/nodes[k] - 1
		for _, off := range []float64{0.01, 0.5, 0.99} {
			d, err := yields.Discount(y, m+off)
			require.NoError(t, err)
			assert.InDelta(t, nodes[k-1]*math.Pow(1+fwd, -off), d, 1e-14, "t=%v", m+off)
			assert.Less(t, d, nodes[k-1], "t=%v", m+off)
		}
	}

	// Past the last maturity the last forward continues.
	last := nodes[1]/nodes[2] - 1
	d, err := yields.Discount(y, 5)
	require.NoError(t, err)
	assert.InDelta(t, nodes[2]*math.Pow(1+last, -2), d, 1e-14)

	r, err := yields.Rate(y, 5)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(d, -0.2)-1, r, 1e-14)
}

func TestPar_InjectedRootFinder(t *testing.T) {
	t.Parallel()

	calls := 0
	bisect := solver.BisectFinder(solver.DefaultConfig)
	find := func(f solver.Func, lo, hi float64) (solver.Result, error) {
		calls++
		return bisect(f, lo, hi)
	}

	par := []float64{0.02, 0.025, 0.03}
	viaBisect, err := yields.NewPar(par, yields.WithRootFinder(find))
	require.NoError(t, err)
	assert.Equal(t, len(par), calls)

	viaNewton, err := yields.NewPar(par)
	require.NoError(t, err)
	assert.InDeltaSlice(t, viaNewton.SpotRates(), viaBisect.SpotRates(), 1e-10)
}

func TestPar_ConvergenceError(t *testing.T) {
	t.Parallel()

	// A 2-period bond yielding 90% cannot be priced at par with a spot rate
	// inside a bracket capped at 10%.
	_, err := yields.NewPar([]float64{0.05, 0.9}, yields.WithBracket(-0.5, 0.1))
	assert.ErrorIs(t, err, yields.ErrConvergence)
	assert.ErrorIs(t, err, solver.ErrNotBracketed)

	cfg := solver.DefaultConfig
	cfg.MaxIterations = 1
	_, err = yields.NewPar([]float64{0.05, 0.06}, yields.WithRootFinder(solver.BisectFinder(cfg)))
	assert.ErrorIs(t, err, yields.ErrConvergence)
	assert.ErrorIs(t, err, solver.ErrNoConvergence)
}

func TestNewPar_Invalid(t *testing.T) {
	t.Parallel()

	_, err := yields.NewPar(nil)
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{0.03, 0.04}, yields.WithMaturities([]float64{1}))
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{0.03, 0.04}, yields.WithMaturities([]float64{}))
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{0.03, 0.04}, yields.WithMaturities([]float64{2, 1}))
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{-1.5})
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{0.03}, yields.WithBracket(0.5, 0.1))
	assert.ErrorIs(t, err, yields.ErrConstruction)

	_, err = yields.NewPar([]float64{0.03}, yields.WithSolverConfig(solver.Config{}))
	assert.ErrorIs(t, err, yields.ErrConstruction)
}

func TestPar_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := yields.NewPar([]float64{0.03, 0.035}, yields.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("par spot solved")))
	assert.Contains(t, out, `"maturity":2`)
}

func BenchmarkNewPar(b *testing.B) {
	par := make([]float64, 30)
	for i := range par {
		par[i] = 0.03 + 0.0005*float64(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := yields.NewPar(par); err != nil {
			b.Fatalf("NewPar: %v", err)
		}
	}
}
