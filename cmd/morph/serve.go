package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/morph/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the transformation, published results and Prometheus metrics over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing morph: %v\n", err)
			os.Exit(1)
		}
		defer a.close()

		handler := httpAdapter.NewHandler(a.engine,
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithGatherer(a.registry),
		)

		srv := &http.Server{
			Addr:              a.settings.Listen,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			a.logger.Info("morph server listening", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			a.logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			a.logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					a.logger.Error("error killing server", "error", err)
				}
			}
			a.logger.Info("morph server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("store-dir", "", "Directory for published results (default in-memory)")
	serveCmd.Flags().String("listen", "", "Address to listen on (default :8080)")
	serveCmd.Flags().String("schema", "", "Schema file every request must satisfy")
	serveCmd.Flags().String("redis-addr", "", "Redis address for published results (default in-memory)")
}
