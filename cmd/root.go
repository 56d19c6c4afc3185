package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/kayz/google-search/internal/config"
	"github.com/kayz/google-search/internal/logger"
	"github.com/kayz/google-search/internal/ratelimit"
	"github.com/kayz/google-search/internal/search"
	"github.com/kayz/google-search/internal/security"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	apiKey     string
	engineID   string
	rateLimit  int

	logFlagSet bool
)

var rootCmd = &cobra.Command{
	Use:   "google-search",
	Short: "MCP server exposing Google Custom Search as the google_search tool",
	Long: `google-search serves a single MCP tool, google_search, backed by the
Google Custom Search JSON API.

Modes:
  google-search           Serve MCP over stdio (default)
  google-search serve     Serve MCP over stdio, SSE or streamable HTTP
  google-search search    Run one search from the command line

Required configuration (flag, environment or config file):
  GOOGLE_API_KEY            Custom Search API key
  GOOGLE_SEARCH_ENGINE_ID   Programmable Search Engine id (cx)`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		logFlagSet = cmd.Flags().Changed("log")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML config file (default: .google-search.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"Google Custom Search API key (overrides "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&engineID, "engine-id", "",
		"Programmable Search Engine id (overrides "+config.EnvEngineID+")")
	rootCmd.PersistentFlags().IntVar(&rateLimit, "rate-limit", 0,
		"Maximum searches per minute (overrides "+config.EnvRateLimit+")")

	serveCmd.Flags().AddFlagSet(serveFlags())
	rootCmd.Flags().AddFlagSet(serveFlags())
}

// loadConfig resolves configuration.
// Priority: command line flag > environment variable > config file > defaults.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env: %v", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if apiKey != "" {
		cfg.Google.APIKey = apiKey
	}
	if engineID != "" {
		cfg.Google.EngineID = engineID
	}
	if rateLimit > 0 {
		cfg.RateLimit.MaxPerMinute = rateLimit
	}
	if transport != "" {
		cfg.Transport = transport
	}
	if port > 0 {
		cfg.Port = port
	}

	if !logFlagSet && cfg.Logging.Level != "" {
		level, err := logger.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, &config.ConfigError{Field: "logging.level", Reason: err.Error()}
		}
		logger.SetLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if security.IsLocalEndpoint(cfg.Google.BaseURL) {
		logger.Warn("search endpoint %s is a local address", cfg.Google.BaseURL)
	}
	return cfg, nil
}

// buildService wires the rate gate and the Google engine from cfg.
func buildService(cfg *config.Config) (*search.Service, error) {
	engine, err := search.NewGoogleEngine(search.GoogleConfig{
		APIKey:   cfg.Google.APIKey,
		EngineID: cfg.Google.EngineID,
		BaseURL:  cfg.Google.BaseURL,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return nil, err
	}
	gate := ratelimit.New(cfg.RateLimit.MaxPerMinute)
	logger.Debug("rate limit: %d searches per minute, %d available", gate.PerMinute(), gate.Available())
	return search.NewService(engine, gate), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, "Error: server cannot start")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
