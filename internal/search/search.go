// Package search implements the two-stage matching used to pick
// password entries: a case-insensitive AND-of-substrings pass, with a
// fuzzy ordered-subsequence fallback when nothing matched.
package search

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/quickpass/quickpass/internal/store"
)

// FuzzyPattern compiles a search token into a case-insensitive
// regular expression that matches the token's characters in their
// original order with any run of characters in between. The token's
// characters are escaped, so regex metacharacters match literally.
func FuzzyPattern(token string) *regexp.Regexp {
	parts := make([]string, 0, len(token))
	for _, r := range token {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, ".*"))
}

// Simple returns the entries whose name contains every keyword,
// case-insensitively. An empty keyword set matches everything.
func Simple(c store.Catalog, keywords ...string) ([]*store.Entry, error) {
	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	var matches []*store.Entry
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		ok := true
		for _, kw := range lowered {
			if !strings.Contains(name, kw) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, e)
		}
	}
	slog.Debug("simple search done", "keywords", keywords, "matches", len(matches))
	return matches, nil
}

// Fuzzy returns the entries whose name matches every token as an
// ordered subsequence with arbitrary gaps, case-insensitively.
func Fuzzy(c store.Catalog, tokens ...string) ([]*store.Entry, error) {
	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}
	patterns := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		patterns[i] = FuzzyPattern(tok)
	}
	var matches []*store.Entry
	for _, e := range entries {
		ok := true
		for _, p := range patterns {
			if !p.MatchString(e.Name()) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, e)
		}
	}
	slog.Debug("fuzzy search done", "tokens", tokens, "matches", len(matches))
	return matches, nil
}

// Smart tries Simple first and falls back to Fuzzy only when the
// simple pass matched nothing, so substring hits always win over
// fuzzy hits. Zero matches overall yield NoMatchError, or
// EmptyStoreError when the catalog has no entries at all. Results
// stay in catalog order; there is no ranking.
func Smart(c store.Catalog, tokens ...string) ([]*store.Entry, error) {
	matches, err := Simple(c, tokens...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		slog.Debug("falling back from substring search to fuzzy search")
		matches, err = Fuzzy(c, tokens...)
		if err != nil {
			return nil, err
		}
	}
	if len(matches) == 0 {
		entries, err := c.Entries()
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return nil, &store.NoMatchError{Tokens: tokens}
		}
		return nil, &store.EmptyStoreError{}
	}
	return matches, nil
}

// Chooser disambiguates between multiple matching entries. Choose
// blocks for user input and returns the chosen label; cancellation
// surfaces as an error.
type Chooser interface {
	Choose(labels []string) (string, error)
}

// Select narrows a smart search down to a single entry, prompting
// through the chooser when more than one entry matched. Duplicate
// names are presented as separate identical choices; the first entry
// carrying the chosen name wins.
func Select(c store.Catalog, chooser Chooser, tokens ...string) (*store.Entry, error) {
	matches, err := Smart(c, tokens...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 1 {
		slog.Info("matched one entry", "name", matches[0].Name())
		return matches[0], nil
	}
	slog.Info("more than one match, prompting for choice", "matches", len(matches))
	labels := make([]string, len(matches))
	for i, e := range matches {
		labels[i] = e.Name()
	}
	label, err := chooser.Choose(labels)
	if err != nil {
		return nil, err
	}
	for _, e := range matches {
		if e.Name() == label {
			return e, nil
		}
	}
	return nil, fmt.Errorf("chooser returned unknown label %q", label)
}
