package cli

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-esmigrate/pkg/config"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
	"github.com/adfharrison1/go-esmigrate/pkg/server"
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory engine",
		Long: `Run an in-memory engine speaking the subset of the Elasticsearch REST API
that migrations use. Data is loaded from the data file at startup and saved
on graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := []engine.Option{engine.WithDataFile(cfg.DataFile)}
			if cfg.BackgroundSave > 0 {
				options = append(options, engine.WithBackgroundSave(cfg.BackgroundSave))
				log.Printf("INFO: Background save enabled: every %v", cfg.BackgroundSave)
			} else {
				log.Printf("WARN: Background save disabled - data only saved on graceful shutdown")
			}

			srv := server.NewServer(options...)
			defer srv.StopBackgroundWorkers()

			log.Printf("INFO: Loading data from: %s", cfg.DataFile)
			srv.InitDB(cfg.DataFile)

			httpServer := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: srv.Router(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				log.Printf("Starting go-esmigrate engine on :%s", cfg.Port)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}
			log.Println("Shutting down server...")

			log.Printf("INFO: Saving data to: %s", cfg.DataFile)
			srv.SaveDB(cfg.DataFile)

			// Give outstanding requests a deadline for completion
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return err
			}

			log.Println("Server exited")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "Server port (env "+config.EnvPort+")")
	cmd.Flags().StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "Data file path for persistence (env "+config.EnvDataFile+")")
	cmd.Flags().DurationVar(&cfg.BackgroundSave, "background-save", cfg.BackgroundSave, "Background save interval (e.g., 5m, 30s); 0 disables it")

	return cmd
}
