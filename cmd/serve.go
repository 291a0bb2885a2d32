package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andina-geotech/slopewatch/internal/server"
	"github.com/andina-geotech/slopewatch/internal/terrain"
)

var (
	servePort    int
	serveTerrain []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	Long:  "Loads both workbooks once and serves the dataset, statistics, map layers, terrain summaries and CSV exports over HTTP until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}

		var models []*terrain.Model
		for _, path := range serveTerrain {
			m, err := terrain.Load(path)
			if err != nil {
				return eris.Wrap(err, "serve: load terrain model")
			}
			models = append(models, m)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.New(ds, cfg, server.WithTerrain(models)).Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("snapshot_id", ds.SnapshotID),
			zap.Int("events", len(ds.Events)),
			zap.Int("alerts", len(ds.Alerts)),
			zap.Int("terrain_models", len(models)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	dataFlags(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringSliceVar(&serveTerrain, "terrain", nil, "CAD terrain models (.stl/.dxf) to serve summaries for")
	rootCmd.AddCommand(serveCmd)
}
