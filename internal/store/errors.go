package store

import (
	"errors"
	"fmt"
	"strings"
)

// MissingStoreError reports that a configured store root does not
// exist on disk.
type MissingStoreError struct {
	Directory string
}

func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("the password store directory doesn't exist (%s)", e.Directory)
}

// EmptyStoreError reports that the union of all configured stores
// contains no entries at all.
type EmptyStoreError struct{}

func (e *EmptyStoreError) Error() string {
	return "you don't have any passwords yet (no *.gpg files found)"
}

// NoMatchError reports that the stores have entries but none matched
// the given search tokens.
type NoMatchError struct {
	Tokens []string
}

func (e *NoMatchError) Error() string {
	quoted := make([]string, len(e.Tokens))
	for i, tok := range e.Tokens {
		quoted[i] = fmt.Sprintf("%q", tok)
	}
	return fmt.Sprintf("no passwords matched the given arguments (%s)", strings.Join(quoted, ", "))
}

// IsDomain reports whether err is one of the expected user-facing
// error kinds. Domain errors are logged as a single line without a
// stack of wrapped context.
func IsDomain(err error) bool {
	var missing *MissingStoreError
	var empty *EmptyStoreError
	var noMatch *NoMatchError
	return errors.As(err, &missing) || errors.As(err, &empty) || errors.As(err, &noMatch)
}
