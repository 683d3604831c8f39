package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/quickpass/quickpass/internal/chooser"
	"github.com/quickpass/quickpass/internal/format"
	"github.com/quickpass/quickpass/internal/pass"
	"github.com/quickpass/quickpass/internal/search"
	"github.com/quickpass/quickpass/internal/store"
)

// passInvoker is the surface of the external tool the actions need.
type passInvoker interface {
	Show(e *store.Entry) (string, error)
	Edit(e *store.Entry) error
	Clip(e *store.Entry) error
}

// Swapped out by tests.
var (
	invoker    passInvoker = pass.New()
	newChooser             = func() search.Chooser { return chooser.New() }
	clipboard              = pass.ClipboardSupported
)

// listMatchingEntries prints the names of all entries matching the
// given keywords, one per line.
func listMatchingEntries(w io.Writer, catalog store.Catalog, args []string) error {
	matches, err := search.Smart(catalog, args...)
	if err != nil {
		return err
	}
	for _, e := range matches {
		fmt.Fprintln(w, e.Name())
	}
	return nil
}

// editMatchingEntry opens the single matching entry in the user's
// editor through pass.
func editMatchingEntry(catalog store.Catalog, args []string) error {
	entry, err := search.Select(catalog, newChooser(), args...)
	if err != nil {
		return err
	}
	return invoker.Edit(entry)
}

// showMatchingEntry renders the single matching entry and copies its
// password to the clipboard unless that was turned off. The password
// appears in the rendered text only when it is not being copied.
func showMatchingEntry(w io.Writer, catalog store.Catalog, args []string, colors bool) error {
	entry, err := search.Select(catalog, newChooser(), args...)
	if err != nil {
		return err
	}
	useClipboard := clipboard() && !opts.noClipboard
	text, err := entry.Text(invoker)
	if err != nil {
		return err
	}
	formatted, err := format.Entry(entry.Name(), text, format.Options{
		IncludePassword: !useClipboard,
		Colors:          colors,
		Padding:         true,
		Filters:         opts.filters,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(formatted) != "" && (opts.showPass || !useClipboard) {
		fmt.Fprintln(w, formatted)
	}
	if useClipboard {
		if err := invoker.Clip(entry); err != nil {
			return err
		}
		slog.Info("copied password to clipboard", "name", entry.Name())
	}
	return nil
}
