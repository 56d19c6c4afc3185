// Package mcp exposes the search service as an MCP server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/kayz/google-search/internal/config"
	"github.com/kayz/google-search/internal/logger"
	"github.com/kayz/google-search/internal/search"
	"github.com/kayz/google-search/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "google-search"
	ServerVersion = "0.1.0"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds an MCP server exposing google_search backed by svc.
func NewServer(svc *search.Service) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(tools.GoogleSearchTool(), tools.GoogleSearchHandler(svc))
	return s
}

// ServeOptions selects the transport. Stdin and Stdout default to the process streams.
type ServeOptions struct {
	Transport string
	Port      int
	Stdin     io.Reader
	Stdout    io.Writer
}

// Serve blocks until ctx is cancelled or the transport fails.
func Serve(ctx context.Context, s *server.MCPServer, opts ServeOptions) error {
	addr := fmt.Sprintf(":%d", opts.Port)

	switch opts.Transport {
	case "", config.TransportStdio:
		return serveStdio(ctx, s, opts)
	case config.TransportSSE:
		sse := server.NewSSEServer(s, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", opts.Port)))
		return serveHTTP(ctx, addr, "SSE", sse.Start, sse.Shutdown)
	case config.TransportHTTP:
		streamable := server.NewStreamableHTTPServer(s)
		return serveHTTP(ctx, addr, "streamable HTTP", streamable.Start, streamable.Shutdown)
	default:
		return fmt.Errorf("unknown transport %q", opts.Transport)
	}
}

func serveStdio(ctx context.Context, s *server.MCPServer, opts ServeOptions) error {
	in, out := opts.Stdin, opts.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	errWriter := logger.Writer(logger.LevelError)
	defer errWriter.Close()

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(errWriter, "[MCP] ", 0))

	logger.Info("[MCP] %s %s serving on stdio", ServerName, ServerVersion)
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func serveHTTP(ctx context.Context, addr, name string, start func(string) error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("[MCP] %s %s serving %s on %s", ServerName, ServerVersion, name, addr)
		errCh <- start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("[MCP] shutting down %s server", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx)
	}
}
