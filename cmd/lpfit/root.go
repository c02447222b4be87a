package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/dataset"
	"github.com/arloliu/lpfit/fit"
	"github.com/arloliu/lpfit/format"
	"github.com/arloliu/lpfit/reference"
)

const envPrefix = "LPFIT"

// demoPoints are fitted when neither --point nor --input is given.
var demoPoints = []curve.Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 2}, {X: 3, Y: 4}, {X: 4, Y: 5}}

type config struct {
	points      []string
	input       string
	degree      int
	objective   string
	basis       string
	timeLimit   time.Duration
	coeffMin    float64
	coeffMax    float64
	save        string
	encoding    string
	compression string
	verbose     bool
}

func loadConfig(v *viper.Viper) config {
	return config{
		points:      v.GetStringSlice("point"),
		input:       v.GetString("input"),
		degree:      v.GetInt("degree"),
		objective:   v.GetString("objective"),
		basis:       v.GetString("basis"),
		timeLimit:   v.GetDuration("time-limit"),
		coeffMin:    v.GetFloat64("coeff-min"),
		coeffMax:    v.GetFloat64("coeff-max"),
		save:        v.GetString("save"),
		encoding:    v.GetString("encoding"),
		compression: v.GetString("compression"),
		verbose:     v.GetBool("verbose"),
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "lpfit",
		Short: "Fit polynomials by L1 or minimax linear programming",
		Long: `lpfit fits a polynomial to 2-D points by minimizing either the sum of
absolute residuals (l1) or the largest absolute residual (minimax) with a
linear program, then reports every error metric and compares the fit with
the least-squares polynomial of the same degree.

Without --point or --input the built-in demonstration data is fitted.
Every flag can also be set through an LPFIT_* environment variable
(LPFIT_DEGREE, LPFIT_TIME_LIMIT, ...) or a --config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, loadConfig(v))
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("point", "p", nil, "data point as x,y (repeatable)")
	flags.StringP("input", "i", "", "read points from a dataset file")
	flags.IntP("degree", "d", 1, "polynomial degree")
	flags.StringP("objective", "o", "all", "objective: l1, minimax or all")
	flags.String("basis", "monomial", "basis: "+strings.Join(curve.BasisNames(), ", "))
	flags.Duration("time-limit", 0, "time limit per solve, 0 for none")
	flags.Float64("coeff-min", math.Inf(-1), "lower bound for every coefficient")
	flags.Float64("coeff-max", math.Inf(1), "upper bound for every coefficient")
	flags.String("save", "", "write the fitted points to a dataset file")
	flags.String("encoding", "gorilla", "column encoding for --save: raw or gorilla")
	flags.String("compression", "none", "compression for --save: none, zstd, s2 or lz4")
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.BoolP("verbose", "v", false, "log solver diagnostics to stderr")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

func run(cmd *cobra.Command, cfg config) error {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	points, source, err := loadPoints(cfg)
	if err != nil {
		return err
	}
	objectives, err := parseObjectives(cfg.objective)
	if err != nil {
		return err
	}
	basis, err := curve.ParseBasis(cfg.basis)
	if err != nil {
		return err
	}

	opts := []fit.Option{
		fit.WithBasis(basis),
		fit.WithTimeLimit(cfg.timeLimit),
		fit.WithLogger(logger),
	}
	if !math.IsInf(cfg.coeffMin, -1) || !math.IsInf(cfg.coeffMax, 1) {
		opts = append(opts, fit.WithCoefficientBounds(cfg.coeffMin, cfg.coeffMax))
	}
	f, err := fit.New(opts...)
	if err != nil {
		return err
	}

	// The reference is informational; fitting proceeds without it.
	var ref curve.Curve
	if ls, err := reference.LeastSquares(points, cfg.degree); err == nil {
		ref = ls
	} else if cfg.degree >= 0 {
		logger.Warn("least-squares reference unavailable", "error", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d points (%s), degree %d, basis %s, backend %s\n",
		len(points), source, cfg.degree, basis.Name(), f.Backend())
	fmt.Fprintf(out, "fingerprint %016x\n", dataset.Fingerprint(points))
	if ref != nil {
		fmt.Fprintf(out, "least squares: %s\n", ref)
	}

	for _, obj := range objectives {
		res, err := f.Fit(cmd.Context(), points, cfg.degree, obj, ref)
		if err != nil {
			return fmt.Errorf("%s fit: %w", obj, err)
		}
		printResult(out, res)
	}

	if cfg.save != "" {
		if err := save(cfg, points); err != nil {
			return err
		}
		logger.Info("saved points", "path", cfg.save)
	}

	return nil
}

func loadPoints(cfg config) ([]curve.Point, string, error) {
	switch {
	case len(cfg.points) > 0 && cfg.input != "":
		return nil, "", errors.New("--point and --input are mutually exclusive")
	case cfg.input != "":
		fh, err := os.Open(cfg.input)
		if err != nil {
			return nil, "", err
		}
		defer fh.Close()

		points, err := dataset.Read(fh)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", cfg.input, err)
		}

		return points, cfg.input, nil
	case len(cfg.points) > 0:
		points := make([]curve.Point, 0, len(cfg.points))
		for _, s := range cfg.points {
			p, err := curve.ParsePoint(s)
			if err != nil {
				return nil, "", err
			}
			points = append(points, p)
		}

		return points, "command line", nil
	default:
		return demoPoints, "demo", nil
	}
}

func parseObjectives(s string) ([]fit.Objective, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return fit.Objectives(), nil
	}

	obj, err := fit.ParseObjective(s)
	if err != nil {
		return nil, err
	}

	return []fit.Objective{obj}, nil
}

func printResult(w io.Writer, res *fit.Result) {
	fmt.Fprintf(w, "\n[%s] %s\n", res.Objective, res.Curve())
	fmt.Fprintf(w, "  coefficients  %v\n", res.Coefficients)
	fmt.Fprintf(w, "  objective     %.6g (%s, %s)\n", res.ObjectiveValue, res.Status, res.Elapsed.Round(time.Microsecond))
	for _, name := range res.Errors.Names() {
		fmt.Fprintf(w, "  %-12s  %.6g\n", name, res.Errors[name])
	}
	fmt.Fprintf(w, "  %-12s  %.6g\n", "r2", res.RSquared)
}

func save(cfg config, points []curve.Point) error {
	enc, err := format.ParseEncoding(cfg.encoding)
	if err != nil {
		return err
	}
	comp, err := format.ParseCompression(cfg.compression)
	if err != nil {
		return err
	}

	fh, err := os.Create(cfg.save)
	if err != nil {
		return err
	}
	if err := dataset.Write(fh, points, dataset.WithEncoding(enc), dataset.WithCompression(comp)); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}
