package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/lca-carbon/internal/export"
	"github.com/rshade/lca-carbon/internal/sweep"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		sleep       float64
		renewable   float64
		format      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep sleep fraction and renewable share against the baseline",
		Long: `Evaluate lifetime savings against the (0, 0) baseline for every combination
of the configured sleep fraction and renewable share grids. The cell
nearest to --sleep and --renewable is reported separately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sleep") {
				sleep = a.cfg.DefaultSleepReduction
			}
			if !cmd.Flags().Changed("renewable") {
				renewable = a.cfg.DefaultPartialRenewable
			}

			req, err := a.cfg.SweepRequest()
			if err != nil {
				return err
			}
			res, err := sweep.Run(cmd.Context(), req,
				sweep.WithConcurrency(concurrency),
				sweep.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			report, err := a.newReport()
			if err != nil {
				return err
			}
			report.Sweep = export.NewSweepReport(res, sleep, renewable)
			if cell := report.Sweep.AtDefaults; cell != nil {
				evt := a.logger.Info().
					Float64("sleep_fraction", cell.SleepFraction).
					Float64("renewable_share", cell.RenewableShare).
					Float64("savings_kgco2", cell.SavingsAbsKgCO2)
				if cell.SavingsPct != nil {
					evt = evt.Float64("savings_pct", *cell.SavingsPct)
				}
				evt.Msg("savings at default parameters")
			}

			return export.Write(a.out, f, export.TableSweep, report)
		},
	}

	cmd.Flags().Float64Var(&sleep, "sleep", 0, "sleep fraction to report (default from config)")
	cmd.Flags().Float64Var(&renewable, "renewable", 0, "renewable share to report (default from config)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "output format (json, csv)")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.GOMAXPROCS(0), "rows evaluated in parallel")
	return cmd
}
