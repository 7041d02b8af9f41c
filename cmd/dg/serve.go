package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/docgraph/internal/logging"
	"github.com/matsen/docgraph/internal/metrics"
	"github.com/matsen/docgraph/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve graphs over HTTP",
	Long: `Serve generated graphs over HTTP until interrupted.

Endpoints:
  GET /health                                  liveness
  GET /metrics                                 Prometheus metrics
  GET /api/v1/graph                            full graph JSON
  GET /api/v1/graph/stats                      statistics
  GET /api/v1/graph/nodes/{index}/neighbors    strongest connections
  GET /api/v1/lattice                          wireframe points
  GET /viz                                     visualization page

Graph endpoints accept cells, docs, seed, scale, threshold, and limit
query parameters; omitted ones come from config. Graphs are cached per
parameter set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _ := mustLoadConfig()
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	serverLogger, err := logging.NewProduction(verbose)
	if err != nil {
		exitWithError(ExitError, "creating logger: %v", err)
	}
	defer serverLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, serverLogger, metrics.NewCollector())
	serverLogger.Info("starting server",
		zap.String("addr", addr),
		zap.Float64("rate_limit", cfg.Server.RateLimit),
		zap.Int("cache_size", cfg.Server.CacheSize),
	)
	return srv.Run(ctx, addr)
}
