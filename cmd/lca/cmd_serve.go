package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/lca-carbon/internal/export"
	"github.com/rshade/lca-carbon/internal/metrics"
	"github.com/rshade/lca-carbon/internal/scenario"
	"github.com/rshade/lca-carbon/internal/sweep"
)

// serveConfig holds settings for the metrics server. ListenAddr is the HTTP
// listen address and ShutdownTimeout bounds graceful shutdown.
type serveConfig struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
}

func newServeCmd(a *app) *cobra.Command {
	config := serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lifetime emissions and sweep savings as Prometheus metrics",
		Long: `Build every scenario and the configured sweep once, then serve the results
on /metrics (Prometheus) and /report (JSON) until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector, report, err := a.collect(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, config, newServeMux(collector, report, a.logger), a.logger)
		},
	}

	cmd.Flags().StringVar(&config.ListenAddr, "listen", ":9464", "address to listen on for the metrics endpoint")
	cmd.Flags().DurationVar(&config.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown limit")
	return cmd
}

// collect builds every scenario and the sweep and records them in a new
// collector and report.
func (a *app) collect(ctx context.Context) (*metrics.Collector, *export.Report, error) {
	tables, err := a.buildTables(nil)
	if err != nil {
		return nil, nil, err
	}
	report, err := a.newReport()
	if err != nil {
		return nil, nil, err
	}
	report.AddTables(tables)
	if err := a.compare(report, scenario.KindBaseline.String()); err != nil {
		return nil, nil, err
	}

	req, err := a.cfg.SweepRequest()
	if err != nil {
		return nil, nil, err
	}
	res, err := sweep.Run(ctx, req, sweep.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	report.Sweep = export.NewSweepReport(res, a.cfg.DefaultSleepReduction, a.cfg.DefaultPartialRenewable)

	collector := metrics.NewCollector()
	collector.ObserveSummaries(report.Summaries)
	collector.ObserveComparison(report.Comparison)
	collector.ObserveSweep(res)
	return collector, report, nil
}

func newServeMux(collector *metrics.Collector, report *export.Report, logger zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := export.Write(w, export.FormatJSON, export.TableAll, report); err != nil {
			logger.Error().Err(err).Msg("Failed to write report")
		}
	})
	return mux
}

// serve runs the HTTP server until ctx is done, then shuts it down.
func serve(ctx context.Context, config serveConfig, handler http.Handler, logger zerolog.Logger) error {
	listener, err := net.Listen("tcp", config.ListenAddr)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	logger.Info().Str("addr", listener.Addr().String()).Msg("Starting metrics server")
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	logger.Info().Msg("Metrics server stopped")
	return nil
}
