// Package store models password-store directories (one secret per
// *.gpg file) and the entries found inside them. A Store is a single
// root directory; a Union queries several stores as if they were one.
// Listings are computed on first use and cached until the directory
// is reassigned.
package store

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quickpass/quickpass/internal/natsort"
)

const (
	// DefaultDirectory is the password store used when neither a
	// flag nor DirectoryVariable points somewhere else.
	DefaultDirectory = "~/.password-store"

	// DirectoryVariable overrides DefaultDirectory when set.
	DirectoryVariable = "PASSWORD_STORE_DIR"

	// Extension is the filename suffix of encrypted entries.
	Extension = ".gpg"
)

// Lister enumerates the files under a store root. The default
// implementation walks the filesystem; tests inject fakes.
type Lister interface {
	List(root string) ([]string, error)
}

// walkLister lists regular files recursively via filepath.WalkDir.
type walkLister struct{}

func (walkLister) List(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// Catalog is the shared view over one or more password stores.
// Entries returns every entry in natural-sort order by name.
type Catalog interface {
	Entries() ([]*Entry, error)
}

// Store is a single password-store directory.
type Store struct {
	dir    string
	lister Lister

	entries []*Entry
	listed  bool
}

// New returns a Store rooted at dir. An empty dir resolves through
// DirectoryVariable and falls back to DefaultDirectory. The path is
// normalized with environment variable and ~ expansion.
func New(dir string) *Store {
	return NewWithLister(dir, walkLister{})
}

// NewWithLister is New with an explicit directory lister.
func NewWithLister(dir string, lister Lister) *Store {
	if dir == "" {
		dir = os.Getenv(DirectoryVariable)
	}
	if dir == "" {
		dir = DefaultDirectory
	}
	return &Store{dir: ExpandPath(dir), lister: lister}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// SetDir reassigns the store's root directory and invalidates the
// cached entry listing.
func (s *Store) SetDir(dir string) {
	s.dir = ExpandPath(dir)
	s.entries = nil
	s.listed = false
}

// CheckDirectory fails fast with MissingStoreError when the store's
// root is not an existing directory.
func (s *Store) CheckDirectory() error {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return &MissingStoreError{Directory: s.dir}
	}
	return nil
}

// Entries lists the store's entries, computing and caching the
// listing on first use. Names are relative to the root, use / as
// separator and carry no Extension suffix.
func (s *Store) Entries() ([]*Entry, error) {
	if s.listed {
		return s.entries, nil
	}
	if err := s.CheckDirectory(); err != nil {
		return nil, err
	}
	slog.Debug("scanning password store", "directory", s.dir)
	paths, err := s.lister.List(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}
	var entries []*Entry
	for _, p := range paths {
		if !strings.HasSuffix(p, Extension) {
			continue
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, Extension))
		entries = append(entries, &Entry{name: name, store: s})
	}
	sortEntries(entries)
	slog.Debug("scanned password store", "directory", s.dir, "entries", len(entries))
	s.entries = entries
	s.listed = true
	return entries, nil
}

// Union queries multiple password stores as if they were one. Names
// are not deduplicated across stores: two stores holding the same
// name yield two distinct entries.
type Union struct {
	stores []*Store
}

// NewUnion returns a Union over the given stores. With no stores it
// covers the single default store.
func NewUnion(stores ...*Store) *Union {
	if len(stores) == 0 {
		stores = []*Store{New("")}
	}
	return &Union{stores: stores}
}

// Stores returns the stores backing the union.
func (u *Union) Stores() []*Store {
	return u.stores
}

// Entries returns the naturally sorted concatenation of every
// store's entries.
func (u *Union) Entries() ([]*Entry, error) {
	var all []*Entry
	for _, s := range u.stores {
		entries, err := s.Entries()
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	sortEntries(all)
	return all, nil
}

// Exclude wraps a catalog, hiding entries whose lowercased name
// matches any of the given shell-style patterns (path.Match syntax,
// also lowercased).
func Exclude(c Catalog, patterns []string) Catalog {
	if len(patterns) == 0 {
		return c
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &excluded{catalog: c, patterns: lowered}
}

type excluded struct {
	catalog  Catalog
	patterns []string
}

func (e *excluded) Entries() ([]*Entry, error) {
	entries, err := e.catalog.Entries()
	if err != nil {
		return nil, err
	}
	var kept []*Entry
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		hidden := false
		for _, p := range e.patterns {
			if ok, err := path.Match(p, name); err == nil && ok {
				hidden = true
				break
			}
		}
		if !hidden {
			kept = append(kept, entry)
		}
	}
	return kept, nil
}

func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return natsort.Less(entries[i].name, entries[j].name)
	})
}

// ExpandPath normalizes a user-supplied path: environment variables
// are expanded and a leading ~ resolves to the home directory.
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
	}
	return filepath.Clean(p)
}
