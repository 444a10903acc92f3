// Command yieldcalc evaluates yield curves described in JSON or YAML.
//
//	yieldcalc -input curves.yaml -horizons 0.5,1,2,5 -format json
//	echo '{"type":"par","rates":[0.03,0.035]}' | yieldcalc -maturity 2 -coupon 0.04
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/meenmo/yields/config"
	"github.com/meenmo/yields/curvespec"
	"github.com/meenmo/yields/internal/logger"
)

const defaultHorizons = "1,2,3,5,7,10"

type options struct {
	inputPath  string
	configPath string
	horizons   []float64
	format     string
	precision  int32
	bond       *bondRequest
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if opts.precision < 0 {
		opts.precision = cfg.Output.Precision
	}

	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return 1
	}
	defer closer.Close()

	raw, err := readInput(opts.inputPath, stdin)
	if err != nil {
		log.Error("read input", slog.Any("error", err))
		return 1
	}
	specs, err := curvespec.Parse(raw)
	if err != nil {
		log.Error("parse input", slog.Any("error", err))
		return 1
	}

	builder := curvespec.Builder{
		ParOptions: cfg.Solver.ParOptions(),
		Logger:     log,
	}

	hadError := false
	reports := make([]curveReport, 0, len(specs))
	for _, spec := range specs {
		rep := evaluate(builder, spec, opts)
		if rep.Error != "" {
			hadError = true
			log.Warn("curve failed", slog.String("curve", rep.Name), slog.String("error", rep.Error))
		}
		reports = append(reports, rep)
	}
	log.Info("evaluated curves", slog.Int("curves", len(reports)), slog.Int("horizons", len(opts.horizons)))

	if err := writeReports(stdout, reports, opts.format); err != nil {
		log.Error("write output", slog.Any("error", err))
		return 1
	}
	if hadError {
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("yieldcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inputPath := fs.String("input", "", "curve spec path, JSON or YAML (reads stdin if omitted)")
	configPath := fs.String("config", "", "config file (YAML, TOML or JSON)")
	horizons := fs.String("horizons", defaultHorizons, "comma separated horizons in years")
	format := fs.String("format", "json", "output format: json or yaml")
	precision := fs.Int("precision", -1, "decimal places in output (default from config)")
	maturity := fs.Float64("maturity", 0, "price a fixed-coupon bond with this maturity")
	coupon := fs.Float64("coupon", 0, "bond coupon rate as a decimal")
	frequency := fs.Int("frequency", 1, "bond coupons per year")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: yieldcalc [-input curves.yaml] [-horizons 1,2,5] [-format json|yaml]")
		fmt.Fprintln(stderr, "Evaluate spot rate, discount and accumulation factors for each curve.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		inputPath:  strings.TrimSpace(*inputPath),
		configPath: strings.TrimSpace(*configPath),
		format:     strings.ToLower(strings.TrimSpace(*format)),
		precision:  int32(*precision),
	}
	if opts.format != "json" && opts.format != "yaml" {
		return options{}, fmt.Errorf("unsupported format %q", *format)
	}

	hs, err := parseHorizons(*horizons)
	if err != nil {
		return options{}, err
	}
	opts.horizons = hs

	if *maturity > 0 {
		opts.bond = &bondRequest{Maturity: *maturity, Coupon: *coupon, Frequency: *frequency}
	}
	return opts, nil
}

func parseHorizons(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		h, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid horizon %q: %v", p, err)
		}
		if h < 0 {
			return nil, fmt.Errorf("invalid horizon %q: must be non-negative", p)
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no horizons given")
	}
	return out, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}
