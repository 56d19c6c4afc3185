package cmd

import (
	"fmt"

	"github.com/kayz/google-search/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigCommand())
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var dest string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dest
			if path == "" {
				path = config.ConfigPath()
			}
			cfg := config.DefaultConfig()
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nSet %s and %s, or fill in the google section.\n",
				path, config.EnvAPIKey, config.EnvEngineID)
			return nil
		},
	}
	initCmd.Flags().StringVar(&dest, "dest", "", "Where to write the file (default: next to the executable)")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
