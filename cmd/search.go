package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kayz/google-search/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	rootCmd.AddCommand(newSearchCommand())
}

type searchOptions struct {
	numResults   int
	dateRestrict string
	language     string
	country      string
	safeSearch   string
}

// toolArgs builds google_search arguments from the query and the flags the
// user actually set.
func (o *searchOptions) toolArgs(flags *pflag.FlagSet, query string) map[string]any {
	args := map[string]any{
		search.ArgQuery: query,
	}
	if flags.Changed("num") {
		args[search.ArgNumResults] = o.numResults
	}
	optional := []struct {
		flag  string
		key   string
		value string
	}{
		{"date-restrict", search.ArgDateRestrict, o.dateRestrict},
		{"language", search.ArgLanguage, o.language},
		{"country", search.ArgCountry, o.country},
		{"safe-search", search.ArgSafeSearch, o.safeSearch},
	}
	for _, opt := range optional {
		if flags.Changed(opt.flag) {
			args[opt.key] = opt.value
		}
	}
	return args
}

// newSearchCommand runs one google_search call and prints the same text the
// MCP tool would return.
func newSearchCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a single search and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}

			rs, err := svc.Search(cmd.Context(), opts.toolArgs(cmd.Flags(), strings.Join(args, " ")))
			if err != nil {
				return errors.New(search.FormatError(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), search.FormatResults(rs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.numResults, "num", "n", search.DefaultResultCount, "Number of results (1-10)")
	cmd.Flags().StringVar(&opts.dateRestrict, "date-restrict", "", "Recency filter: d[N], w[N], m[N] or y[N]")
	cmd.Flags().StringVar(&opts.language, "language", "", "Two-letter language code")
	cmd.Flags().StringVar(&opts.country, "country", "", "Two-letter country code")
	cmd.Flags().StringVar(&opts.safeSearch, "safe-search", "", "Safe search level: off, medium or high")
	return cmd
}
