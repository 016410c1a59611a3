package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/export"
	"github.com/rshade/lca-carbon/internal/scenario"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		baseline string
		names    []string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare lifetime emissions of the scenarios against a baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			registry, err := a.cfg.Registry()
			if err != nil {
				return err
			}
			base, err := registry.Lookup(baseline)
			if err != nil {
				return err
			}
			if len(names) > 0 && !contains(names, base.Name) {
				names = append(names, base.Name)
			}

			tables, err := a.buildTables(names)
			if err != nil {
				return err
			}

			report, err := a.newReport()
			if err != nil {
				return err
			}
			report.Summaries = aggregate.Summaries(tables...)
			report.Comparison, err = aggregate.Compare(report.Summaries, base.Name)
			if err != nil {
				return err
			}

			for _, c := range report.Comparison {
				evt := a.logger.Debug().Str("scenario", c.Scenario).Float64("savings_kgco2", c.SavingsKgCO2)
				if c.SavingsPct != nil {
					evt = evt.Float64("savings_pct", *c.SavingsPct)
				}
				evt.Msg("scenario compared")
			}
			return export.Write(a.out, f, export.TableComparison, report)
		},
	}

	cmd.Flags().StringVar(&baseline, "baseline", scenario.KindBaseline.String(), "scenario to compare against")
	cmd.Flags().StringSliceVar(&names, "scenario", nil, "scenario to compare (repeatable, default all)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "output format (json, csv)")
	return cmd
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return true
		}
	}
	return false
}
