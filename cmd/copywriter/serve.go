package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/sheet-copywriter/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes inspect, generate and export endpoints.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, env PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	flagSettings.Port = servePort
	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	provider, err := a.settings.ProviderConfig()
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     a.settings.ListenPort(),
		Provider: provider,
	}, a.pipeline, a.logger)

	return srv.Start()
}
