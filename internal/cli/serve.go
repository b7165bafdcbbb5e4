package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordviz/internal/api"
	"github.com/matzehuels/chordviz/pkg/observability"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxBody  int64
		timeout  time.Duration
		noMetric bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

  POST /v1/layout   matrix in, layout JSON out
  POST /v1/render   matrix in, ?format=svg|png|pdf|json artifact out
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics

Set --cache-url to share the cache between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := []api.Option{api.WithMaxBodyBytes(maxBody), api.WithTimeout(timeout)}
			if !noMetric {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				prom := observability.NewPrometheus(reg)
				observability.SetPipelineHooks(prom)
				observability.SetCacheHooks(prom)
				observability.SetAPIHooks(prom)
				defer observability.Reset()
				opts = append(opts, api.WithMetrics(prom.Handler()))
			}

			return api.New(runner, logger, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&noMetric, "no-metrics", false, "do not expose /metrics")

	return cmd
}
