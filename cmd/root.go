// Package cmd wires the quickpass command line: flag parsing, action
// dispatch and the mapping of domain errors onto exit codes.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quickpass/quickpass/internal/chooser"
	"github.com/quickpass/quickpass/internal/format"
	"github.com/quickpass/quickpass/internal/logging"
	"github.com/quickpass/quickpass/internal/store"
)

var opts struct {
	edit        bool
	list        bool
	noClipboard bool
	showPass    bool
	stores      []string
	filters     []string
	excludes    []string
	verbose     int
	quiet       int
}

var rootCmd = &cobra.Command{
	Use:   "quickpass [flags] [KEYWORD ...]",
	Short: "Frontend for pass, the standard unix password manager",
	Long: `Search your password stores for the given keywords or patterns and
copy the password of the matching entry to the clipboard. When more
than one entry matches you will be prompted to pick one.

Multiple keywords perform an AND search. Instead of keywords you can
give just a few characters of a name in the right order: the pattern
'pe/zbx' matches the entry 'Personal/Zabbix'.`,
	Args:          cobra.ArbitraryArgs,
	Version:       "2.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		colors := format.SupportsColor()
		logging.Setup(cmd.ErrOrStderr(), opts.verbose, opts.quiet, colors)

		// Listing works without keywords; everything else needs at
		// least one argument to search with.
		if len(args) == 0 && !opts.list {
			return cmd.Help()
		}

		stores := make([]*store.Store, 0, len(opts.stores))
		for _, dir := range opts.stores {
			stores = append(stores, store.New(dir))
		}
		catalog := store.Exclude(store.NewUnion(stores...), opts.excludes)

		switch {
		case opts.edit:
			return editMatchingEntry(catalog, args)
		case opts.list:
			return listMatchingEntries(cmd.OutOrStdout(), catalog, args)
		default:
			return showMatchingEntry(cmd.OutOrStdout(), catalog, args, colors)
		}
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&opts.edit, "edit", "e", false, "edit the matching entry instead of showing it")
	f.BoolVarP(&opts.list, "list", "l", false, "list the matching entries on standard output")
	f.BoolVarP(&opts.noClipboard, "no-clipboard", "n", false, "print the password instead of copying it to the clipboard")
	f.BoolVarP(&opts.showPass, "show-pass", "s", false, "show passwords and extended information on the terminal")
	f.StringArrayVarP(&opts.stores, "password-store", "p", nil, "password store directory (repeatable; default $PASSWORD_STORE_DIR or ~/.password-store)")
	f.StringArrayVarP(&opts.filters, "filter", "f", nil, "redact lines matching the regular expression from shown entries (repeatable)")
	f.StringArrayVarP(&opts.excludes, "exclude", "x", nil, "hide entries whose name matches the shell pattern (repeatable)")
	f.CountVarP(&opts.verbose, "verbose", "v", "increase logging verbosity (repeatable)")
	f.CountVarP(&opts.quiet, "quiet", "q", "decrease logging verbosity (repeatable)")
}

// Execute runs the root command. Domain errors and a cancelled
// prompt exit 1; the latter stays silent because the user asked for
// the abort themselves.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, chooser.ErrAborted) {
		os.Exit(1)
	}
	if store.IsDomain(err) {
		slog.Error(err.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
