package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/freegames-hub/freegames/internal/metrics"
	"github.com/freegames-hub/freegames/internal/server"
	"github.com/freegames-hub/freegames/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the offers API over HTTP",
	Long: `Start an HTTP server exposing GET /api/offers, GET /api/sources, /health and
/metrics. Every /api/offers request aggregates live from the storefronts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		reg := metrics.NewRegistry()
		agg, err := newAggregator(cfg, reg)
		if err != nil {
			return err
		}

		var metricsHandler http.Handler
		if noMetrics, _ := cmd.Flags().GetBool("no-metrics"); !noMetrics {
			metricsHandler = reg.Handler()
		}
		srv := server.New(agg, metricsHandler, cfg.Server.Username, cfg.Server.Password, utils.Log)
		if cfg.Server.Username == "" || cfg.Server.Password == "" {
			utils.Log.Warnf("server.username/server.password not set, /api is open")
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.Server.Listen) }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		utils.Log.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}
