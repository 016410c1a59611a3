package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScenariosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the registered scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.cfg.Registry()
			if err != nil {
				return err
			}
			factors, err := a.cfg.Factors()
			if err != nil {
				return err
			}
			profile := a.cfg.Profile()

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tSLEEP\tRENEWABLE\tMANUFACTURING")
			for _, p := range registry.All() {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%s\n",
					p.Name, p.Kind, p.SleepFraction, p.RenewableShare, p.Allocation())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(a.out)
			for _, spread := range []bool{false, true} {
				p := registry.Baseline()
				p.ManufacturingSpread = spread
				fmt.Fprintf(a.out, "%-7s %s\n", p.Allocation(), p.Allocation().Describe(profile, factors))
			}
			return nil
		},
	}
}
