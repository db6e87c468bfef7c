package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemserver/api"
	"itemserver/catalog"
	"itemserver/cli"
	"itemserver/config"

	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var port int
	var prefix string

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	var rootCmd = &cobra.Command{
		Use:   "itemserver",
		Short: "itemserver: a fixed item catalog served over REST",
		Long: `itemserver serves a fixed, in-memory catalog of five items:
 - GET  /api/server/get-call-obj?query=<title>   one item, or null
 - GET  /api/server/get-call-list                every item
 - POST /api/server/post-call/{query}            logs the body, returns one item
 - POST /api/server/exchange-call                logs token and body, returns every item

Run 'itemserver start' to serve, or use the items/call/endpoints commands.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultFile, "Path to the configuration file")

	var startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the item API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Server.PathPrefix = config.NormalizePrefix(prefix)
			}
			cli.PrintBanner(os.Stdout, cfg.Server.Port, cfg.Server.PathPrefix)
			return runServer(cfg)
		},
	}
	startCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port for the item API")
	startCmd.Flags().StringVar(&prefix, "prefix", "/api/server", "Path prefix for every route")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(cli.CreateCLICommands(catalog.NewService(nil), loadConfig)...)

	if err := rootCmd.Execute(); err != nil {
		cli.Fail(err)
	}
}

// runServer serves the item API until SIGINT/SIGTERM, then shuts down
// gracefully.
func runServer(cfg *config.Config) error {
	svc := catalog.NewService(catalog.New())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewHandler(svc, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] ✅ Item API listening on http://localhost:%d%s (%d items)", cfg.Server.Port, cfg.Server.PathPrefix, svc.Catalog().Len())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("item API server failed: %w", err)
		}
		return nil
	case <-stopChan:
	}

	log.Println("[SERVER] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("[SERVER] Server gracefully stopped.")
	return nil
}
