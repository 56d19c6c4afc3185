package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kayz/google-search/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	transport string
	port      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the google_search tool over MCP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.StringVar(&transport, "transport", "", "MCP transport: stdio, sse or http (default from config: stdio)")
	fs.IntVar(&port, "port", 0, "Listen port for the sse and http transports (default from config: 8686)")
	return fs
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcp.Serve(ctx, mcp.NewServer(svc), mcp.ServeOptions{
		Transport: cfg.Transport,
		Port:      cfg.Port,
	})
}
