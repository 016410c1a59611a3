package main

import (
	"github.com/spf13/cobra"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/export"
	"github.com/rshade/lca-carbon/internal/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		names  []string
		format string
		table  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build yearly, cumulative and lifetime tables for the scenarios",
		Long: `Build the per-year emission table of every scenario (or those selected
with --scenario) and write the annual, cumulative, lifetime summary and
baseline comparison tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, t, err := parseOutput(format, table)
			if err != nil {
				return err
			}

			tables, err := a.buildTables(names)
			if err != nil {
				return err
			}

			report, err := a.newReport()
			if err != nil {
				return err
			}
			report.AddTables(tables)
			if err := a.compare(report, scenario.KindBaseline.String()); err != nil {
				return err
			}

			aggregate.SortByTotal(report.Summaries)

			a.logger.Info().Int("scenarios", len(tables)).Msg("scenarios built")
			return export.Write(a.out, f, t, report)
		},
	}

	cmd.Flags().StringSliceVar(&names, "scenario", nil, "scenario to build (repeatable, default all)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "output format (json, csv)")
	cmd.Flags().StringVar(&table, "table", string(export.TableAll),
		"table to write (annual, cumulative, summary, comparison, all)")
	return cmd
}
