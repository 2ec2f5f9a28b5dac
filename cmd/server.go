package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"professor-registry/internal/api/handlers"
	"professor-registry/internal/api/router"
	"professor-registry/internal/config"
	"professor-registry/internal/infrastructure/database"
	"professor-registry/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	port        string
	inMemory    bool
	autoMigrate bool
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server exposing the professor API.
With --memory the server runs against a seeded in-memory store
instead of PostgreSQL, which is useful for development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVarP(&port, "port", "p", "", "Port for the server to listen on (overrides server.port)")
	serverCmd.Flags().BoolVar(&inMemory, "memory", false, "Use the in-memory store instead of PostgreSQL")
	serverCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Apply pending migrations before starting")
}

func startServer() error {
	cfg := config.Get()

	if port != "" {
		cfg.Server.Port = port
	}

	app, err := newApplication(cfg, inMemory)
	if err != nil {
		logger.Error("Failed to start: %v", err)
		return err
	}
	defer app.Close()

	if autoMigrate && app.db != nil {
		if err := database.RunMigrations(app.db, cfg.Database.MigrationsDir); err != nil {
			logger.Error("Failed to run database migrations: %v", err)
			return err
		}
	}

	healthHandler := handlers.NewHealthHandler(cfg.App.Version, app.checks)
	r := router.NewRouter(app.service, healthHandler, logger.GetLogger())

	srv := &http.Server{
		Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
