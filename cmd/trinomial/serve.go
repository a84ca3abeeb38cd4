package main

import (
	"fmt"

	"github.com/aretw0/trinomial/internal/logging"
	httpAdapter "github.com/aretw0/trinomial/pkg/adapters/http"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/observability"
	"github.com/aretw0/trinomial/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the factorizer as a JSON API over HTTP, documented by the
embedded OpenAPI document (GET /openapi.yaml, GET /swagger).
Explanations are also streamed to GET /events as Server-Sent Events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}

		streams := httpAdapter.NewStreamManager()
		hooks := logging.DebugHooks(logger).Merge(streams.Hooks())

		var storeMiddleware []middleware.Middleware
		serverOpts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithNotation(domain.ParseNotation(cfg.Notation)),
		}
		if cfg.HTTP.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks = hooks.Merge(observability.NewMetrics(reg).Hooks())
			storeMiddleware = append(storeMiddleware, middleware.Metrics(reg))
			serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}

		engine, closer, err := newEngine(cmd.Context(), hooks, storeMiddleware...)
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		handler, err := httpAdapter.NewHandler(engine, serverOpts...)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		logger.Info("Starting Trinomial Server", "address", addr, "store", cfg.StoreDriver(), "metrics", cfg.HTTP.Metrics)
		if err := httpAdapter.Serve(cmd.Context(), addr, handler, cfg.HTTP.ReadTimeout, cfg.HTTP.ShutdownTimeout); err != nil {
			return err
		}
		logger.Info("Trinomial Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
