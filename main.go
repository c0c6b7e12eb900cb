package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"train-reservations/config"
	"train-reservations/database"
	"train-reservations/handlers"
	"train-reservations/logger"
	"train-reservations/metrics"
	"train-reservations/services"
)

func init() {
	cobra.MousetrapHelpText = ""
}

type flags struct {
	envFile string
	port    string
	driver  string
}

func main() {
	var f flags
	command := &cobra.Command{
		Use:   "railways",
		Short: "Train seat reservation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
		SilenceUsage: true,
	}
	command.Flags().StringVarP(&f.envFile, "env-file", "e", "", "load environment from this file instead of ./.env")
	command.Flags().StringVarP(&f.port, "port", "p", "", "override SERVER_PORT")
	command.Flags().StringVar(&f.driver, "driver", "", "override STORE_DRIVER (sqlite or postgres)")

	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	// Load configuration
	var cfg *config.Config
	if f.envFile != "" {
		cfg = config.Load(f.envFile)
	} else {
		cfg = config.Load()
	}
	if f.port != "" {
		cfg.ServerPort = f.port
	}
	if f.driver != "" {
		cfg.StoreDriver = f.driver
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Console = cfg.LogConsole
	logCfg.FilePath = cfg.LogFile
	log := logger.New(logCfg)

	log.Info().
		Str("driver", cfg.StoreDriver).
		Int("seat_capacity", cfg.SeatCapacity).
		Msg("Starting Train Reservation System")

	// Connect to database
	store, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer store.Close()
	log.Info().Str("driver", store.Driver()).Msg("Database ready")

	m := metrics.New()
	svc := services.New(store, services.Options{
		Capacity: cfg.SeatCapacity,
		Metrics:  m,
		Logger:   log,
	})

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.New(svc.Trains, svc.Reservations, log), handlers.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		EnablePprof: cfg.EnablePprof,
		Metrics:     m,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return serve(srv, log)
}

func serve(srv *http.Server, log zerolog.Logger) error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Failed to start server")
		return err
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}
