// Package config holds solver, bootstrap, logging and output parameters.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/meenmo/yields/solver"
	"github.com/meenmo/yields/yields"
)

// Config holds solver and curve construction parameters.
type Config struct {
	Solver  Solver  `mapstructure:"solver"`
	Logging Logging `mapstructure:"logging"`
	Output  Output  `mapstructure:"output"`
}

// Solver configures the par bootstrap root finder.
type Solver struct {
	// Method is "newton" (safeguarded Newton) or "bisection".
	Method string `mapstructure:"method"`

	// Tolerance is the price tolerance (per 100 face) for convergence.
	Tolerance float64 `mapstructure:"tolerance"`

	// MaxIterations is the maximum iterations per maturity.
	MaxIterations int `mapstructure:"max_iterations"`

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton falls back to bisection.
	DerivativeThreshold float64 `mapstructure:"derivative_threshold"`

	// LowerBound and UpperBound bracket the spot rate solved at each maturity.
	LowerBound float64 `mapstructure:"lower_bound"`
	UpperBound float64 `mapstructure:"upper_bound"`
}

// Logging configures internal/logger.
type Logging struct {
	// Level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format: json or text.
	Format string `mapstructure:"format"`
	// Output: stderr, file or both.
	Output string `mapstructure:"output"`
	// FilePath is used when Output is file or both.
	FilePath string `mapstructure:"file_path"`
	// MaxSize is the rotation size in MB.
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// Output configures how cmd/yieldcalc renders numbers.
type Output struct {
	// Precision is the number of decimals kept for rates and factors.
	Precision int32 `mapstructure:"precision"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	Solver: Solver{
		Method:              "newton",
		Tolerance:           1e-12,
		MaxIterations:       200,
		DerivativeThreshold: 1e-15,
		LowerBound:          yields.DefaultLowerBound,
		UpperBound:          yields.DefaultUpperBound,
	},
	Logging: Logging{
		Level:      "info",
		Format:     "text",
		Output:     "stderr",
		FilePath:   "logs/yieldcalc.log",
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
	},
	Output: Output{
		Precision: 10,
	},
}

// EnvPrefix prefixes environment overrides, e.g. YIELDS_SOLVER_TOLERANCE.
const EnvPrefix = "YIELDS"

// Load reads path (YAML, TOML or JSON by extension) over DefaultConfig and
// applies environment overrides. An empty path loads defaults and environment
// only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.Solver.SolverConfig().Validate(); err != nil {
		return err
	}
	switch c.Solver.Method {
	case "newton", "bisection":
	default:
		return fmt.Errorf("unknown solver method %q", c.Solver.Method)
	}
	if !(c.Solver.LowerBound > -1) || !(c.Solver.LowerBound < c.Solver.UpperBound) {
		return fmt.Errorf("solver bracket [%v, %v] must satisfy -1 < lower < upper",
			c.Solver.LowerBound, c.Solver.UpperBound)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Output) {
	case "stderr", "file", "both":
	default:
		return fmt.Errorf("unknown log output %q", c.Logging.Output)
	}
	if c.Output.Precision < 0 {
		return errors.New("output precision must be non-negative")
	}
	return nil
}

// SolverConfig converts to the solver package's parameters.
func (s Solver) SolverConfig() solver.Config {
	return solver.Config{
		Tolerance:           s.Tolerance,
		MaxIterations:       s.MaxIterations,
		DerivativeThreshold: s.DerivativeThreshold,
	}
}

// RootFinder returns the configured root finding method.
func (s Solver) RootFinder() solver.RootFinder {
	if s.Method == "bisection" {
		return solver.BisectFinder(s.SolverConfig())
	}
	return solver.SafeguardedFinder(s.SolverConfig())
}

// ParOptions returns the NewPar options matching this configuration.
func (s Solver) ParOptions() []yields.ParOption {
	return []yields.ParOption{
		yields.WithRootFinder(s.RootFinder()),
		yields.WithBracket(s.LowerBound, s.UpperBound),
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig
	v.SetDefault("solver.method", d.Solver.Method)
	v.SetDefault("solver.tolerance", d.Solver.Tolerance)
	v.SetDefault("solver.max_iterations", d.Solver.MaxIterations)
	v.SetDefault("solver.derivative_threshold", d.Solver.DerivativeThreshold)
	v.SetDefault("solver.lower_bound", d.Solver.LowerBound)
	v.SetDefault("solver.upper_bound", d.Solver.UpperBound)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("output.precision", d.Output.Precision)
}
