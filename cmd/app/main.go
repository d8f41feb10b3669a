package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sortable/cmd"
	"sortable/internal/adapters/out/postgres"
	"sortable/internal/core/application/usecases/commands"
	"sortable/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sortable",
		Short:         "Dense sort-order service for categorized items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newRepackCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gap repair job",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, db := mustOpen()
			logger := logging.NewLogger(os.Stderr, logging.ParseLevel(configs.LogLevel))

			if err := postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			app, err := cmd.NewCompositionRoot(configs, db, logger)
			if err != nil {
				return err
			}

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return startWebServer(ctx, app, configs.HTTPPort)
		},
	}
}

func newRepackCmd() *cobra.Command {
	var categories []int64

	repack := &cobra.Command{
		Use:   "repack",
		Short: "Renumber positions 1..n in the given categories (all when none given)",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, db := mustOpen()
			logger := logging.NewLogger(os.Stderr, logging.ParseLevel(configs.LogLevel))

			app, err := cmd.NewCompositionRoot(configs, db, logger)
			if err != nil {
				return err
			}

			command, err := commands.NewRepackItemsCommand(categories...)
			if err != nil {
				return err
			}
			handler := app.CreateRepackItemsCommandHandler()
			written, err := handler.Handle(c.Context(), command)
			if err != nil {
				return err
			}

			logger.InfoContext(c.Context(), "Repack finished", "written", written)
			return nil
		},
	}
	repack.Flags().Int64SliceVar(&categories, "category", nil, "category id to repack (repeatable)")
	return repack
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the items table",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, db := mustOpen()
			return postgres.Migrate(db)
		},
	}
}

func mustOpen() (cmd.Config, *gorm.DB) {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return configs, db
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) error {
	e := echo.New()
	e.HideBanner = true
	app.CreateServer().RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
