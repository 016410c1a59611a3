package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/config"
	"github.com/rshade/lca-carbon/internal/export"
	"github.com/rshade/lca-carbon/internal/logging"
	"github.com/rshade/lca-carbon/internal/scenario"
)

// app carries the state shared by every subcommand. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	sets       []string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger zerolog.Logger
	runID  uuid.UUID
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "lca",
		Short: "Equipment lifecycle CO2 emissions model",
		Long: `lca computes year-by-year CO2 emissions of one piece of equipment over its
lifetime (manufacturing, operation, end-of-life) under named operating
scenarios, compares them against the baseline, and sweeps sleep-mode and
renewable-share combinations.

Configuration is layered: built-in defaults, then --config FILE, then LCA_*
environment variables, then --set key=value.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringArrayVar(&a.sets, "set", nil, "override a configuration key (key=value, repeatable)")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", logging.FormatConsole, "log format (console, json)")

	root.AddCommand(
		newScenariosCmd(a),
		newRunCmd(a),
		newCompareCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(a.errOut, a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.runID = uuid.New()
	a.logger = logger.With().Str("run_id", a.runID.String()).Logger()

	overrides, err := config.ParseOverrides(a.sets)
	if err != nil {
		return err
	}
	a.cfg, err = config.Load(a.configPath, overrides, a.logger)
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("command", cmd.Name()).
		Int("lifetime_years", a.cfg.LifetimeYears).
		Bool("manufacturing_spread", a.cfg.ManufacturingSpread).
		Bool("clamp_fractions", a.cfg.ClampFractions).
		Msg("configuration loaded")
	return nil
}

func (a *app) model() (*scenario.Model, error) {
	factors, err := a.cfg.Factors()
	if err != nil {
		return nil, err
	}
	opts := append(a.cfg.ModelOptions(), scenario.WithLogger(a.logger))
	return scenario.NewModel(a.cfg.Profile(), factors, opts...)
}

// buildTables builds the named scenarios, or every registered one when names
// is empty. Rejected scenarios are logged and skipped; it fails only when no
// table could be built.
func (a *app) buildTables(names []string) ([]scenario.Table, error) {
	registry, err := a.cfg.Registry()
	if err != nil {
		return nil, err
	}
	params := registry.All()
	if len(names) > 0 {
		if params, err = registry.LookupAll(names); err != nil {
			return nil, err
		}
	}

	m, err := a.model()
	if err != nil {
		return nil, err
	}
	tables, err := m.BuildAll(params)
	if err != nil {
		if len(tables) == 0 {
			return nil, err
		}
		a.logger.Warn().
			Int("built", len(tables)).
			Int("requested", len(params)).
			Msg("some scenarios were rejected")
	}
	return tables, nil
}

func (a *app) newReport() (*export.Report, error) {
	factors, err := a.cfg.Factors()
	if err != nil {
		return nil, err
	}
	return export.NewReport(a.runID, a.cfg.Profile(), factors), nil
}

// compare adds the baseline comparison to r. A baseline that was not built
// leaves the comparison empty.
func (a *app) compare(r *export.Report, baseline string) error {
	comparison, err := aggregate.Compare(r.Summaries, baseline)
	if errors.Is(err, scenario.ErrUnknownScenario) {
		a.logger.Debug().Str("baseline", baseline).Msg("baseline not built, comparison skipped")
		return nil
	}
	if err != nil {
		return err
	}
	r.Comparison = comparison
	return nil
}

func parseOutput(format, table string) (export.Format, export.Table, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", "", err
	}
	t, err := export.ParseTable(table)
	if err != nil {
		return "", "", err
	}
	if t == export.TableSweep {
		return "", "", fmt.Errorf("%w: run does not sweep, use the sweep command", export.ErrUnsupported)
	}
	if f == export.FormatCSV && t == export.TableAll {
		return "", "", fmt.Errorf("%w: choose a single --table for csv output", export.ErrUnsupported)
	}
	return f, t, nil
}
