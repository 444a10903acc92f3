package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/yields/config"
	"github.com/meenmo/yields/yields"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig, *cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "yields.yaml", `
solver:
  method: bisection
  tolerance: 1.0e-10
  upper_bound: 0.5
logging:
  level: debug
  format: json
output:
  precision: 6
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bisection", cfg.Solver.Method)
	assert.Equal(t, 1e-10, cfg.Solver.Tolerance)
	assert.Equal(t, 0.5, cfg.Solver.UpperBound)
	assert.Equal(t, config.DefaultConfig.Solver.MaxIterations, cfg.Solver.MaxIterations)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int32(6), cfg.Output.Precision)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "yields.toml", `
[solver]
max_iterations = 50
lower_bound = -0.5
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, -0.5, cfg.Solver.LowerBound)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("YIELDS_SOLVER_MAX_ITERATIONS", "75")
	t.Setenv("YIELDS_LOGGING_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Solver.MaxIterations)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad method":    "solver:\n  method: secant\n",
		"bad bracket":   "solver:\n  lower_bound: 0.5\n  upper_bound: 0.1\n",
		"bad tolerance": "solver:\n  tolerance: 0\n",
		"bad format":    "logging:\n  format: xml\n",
		"bad output":    "logging:\n  output: syslog\n",
		"bad level":     "logging:\n  level: degub\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "bad.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSolver_ParOptionsDriveBootstrap(t *testing.T) {
	t.Parallel()

	s := config.DefaultConfig.Solver
	s.Method = "bisection"

	y, err := yields.NewPar([]float64{0.04, 0.045}, s.ParOptions()...)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, y.SpotRates()[0], 1e-10)
}
