package store

import "strings"

// Fetcher retrieves the raw decrypted text of an entry from the
// external password tool.
type Fetcher interface {
	Show(e *Entry) (string, error)
}

// Entry is one named secret inside a store. The first line of its
// text is the password, the remainder is free-form metadata. Text is
// fetched on first use and cached for the life of the process.
type Entry struct {
	name  string
	store *Store

	text    string
	fetched bool
}

// NewEntry is used by tests and by stores during listing.
func NewEntry(name string, s *Store) *Entry {
	return &Entry{name: name, store: s}
}

// Name returns the entry's /-separated name.
func (e *Entry) Name() string {
	return e.name
}

// Store returns the store that contains the entry.
func (e *Entry) Store() *Store {
	return e.store
}

// Text returns the entry's full decrypted text, fetching it through
// f on first use.
func (e *Entry) Text(f Fetcher) (string, error) {
	if e.fetched {
		return e.text, nil
	}
	text, err := f.Show(e)
	if err != nil {
		return "", err
	}
	e.text = text
	e.fetched = true
	return text, nil
}

// Password returns the first line of the entry's text.
func (e *Entry) Password(f Fetcher) (string, error) {
	text, err := e.Text(f)
	if err != nil {
		return "", err
	}
	password, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(password), nil
}
