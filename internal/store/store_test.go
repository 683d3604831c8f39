package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// touch creates an empty file, making parent directories as needed.
func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func names(t *testing.T, c Catalog) []string {
	t.Helper()
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries(): %v", err)
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func TestEntriesListing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo.gpg"))
	touch(t, filepath.Join(dir, "foo", "bar.gpg"))
	touch(t, filepath.Join(dir, "foo", "bar", "baz.gpg"))
	touch(t, filepath.Join(dir, "Also with spaces.gpg"))
	touch(t, filepath.Join(dir, "ignored.txt"))
	touch(t, filepath.Join(dir, ".gpg-id"))

	got := names(t, New(dir))
	want := []string{"Also with spaces", "foo", "foo/bar", "foo/bar/baz"}
	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEntriesNaturalSort(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "foo2.gpg"))
	touch(t, filepath.Join(dir, "foo10.gpg"))
	touch(t, filepath.Join(dir, "foo1.gpg"))

	got := names(t, New(dir))
	want := []string{"foo1", "foo2", "foo10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries() = %v, want %v", got, want)
		}
	}
}

func TestMissingStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := s.Entries()
	var missing *MissingStoreError
	if !errors.As(err, &missing) {
		t.Fatalf("Entries() error = %v, want MissingStoreError", err)
	}
	if missing.Directory != s.Dir() {
		t.Fatalf("MissingStoreError.Directory = %q, want %q", missing.Directory, s.Dir())
	}
}

func TestDirectoryVariable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirectoryVariable, dir)
	if s := New(""); s.Dir() != dir {
		t.Fatalf("Dir() = %q, want %q", s.Dir(), dir)
	}
}

func TestListingCachedUntilSetDir(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(first, "one.gpg"))
	touch(t, filepath.Join(second, "two.gpg"))

	s := New(first)
	if got := names(t, s); len(got) != 1 || got[0] != "one" {
		t.Fatalf("first listing = %v", got)
	}

	// Adding a file after the first listing must not show up until
	// the directory is reassigned.
	touch(t, filepath.Join(first, "late.gpg"))
	if got := names(t, s); len(got) != 1 {
		t.Fatalf("cached listing = %v, want just one entry", got)
	}

	s.SetDir(second)
	if got := names(t, s); len(got) != 1 || got[0] != "two" {
		t.Fatalf("listing after SetDir = %v", got)
	}
}

func TestUnionKeepsDuplicates(t *testing.T) {
	personal := t.TempDir()
	work := t.TempDir()
	touch(t, filepath.Join(personal, "Zabbix.gpg"))
	touch(t, filepath.Join(work, "Zabbix.gpg"))
	touch(t, filepath.Join(work, "Aardvark.gpg"))

	got := names(t, NewUnion(New(personal), New(work)))
	want := []string{"Aardvark", "Zabbix", "Zabbix"}
	if len(got) != len(want) {
		t.Fatalf("union = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("union = %v, want %v", got, want)
		}
	}
}

func TestExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Personal", "Zabbix.gpg"))
	touch(t, filepath.Join(dir, "Work", "Zabbix.gpg"))

	got := names(t, Exclude(New(dir), []string{"work/*"}))
	if len(got) != 1 || got[0] != "Personal/Zabbix" {
		t.Fatalf("excluded listing = %v, want [Personal/Zabbix]", got)
	}
}

type fakeFetcher struct {
	text  string
	calls int
}

func (f *fakeFetcher) Show(e *Entry) (string, error) {
	f.calls++
	return f.text, nil
}

func TestEntryTextCached(t *testing.T) {
	f := &fakeFetcher{text: "hunter2\n\nUsername: me\n"}
	e := NewEntry("Some/Entry", nil)

	for i := 0; i < 2; i++ {
		text, err := e.Text(f)
		if err != nil {
			t.Fatalf("Text(): %v", err)
		}
		if text != f.text {
			t.Fatalf("Text() = %q", text)
		}
	}
	if f.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", f.calls)
	}

	password, err := e.Password(f)
	if err != nil {
		t.Fatalf("Password(): %v", err)
	}
	if password != "hunter2" {
		t.Fatalf("Password() = %q, want hunter2", password)
	}
	if f.calls != 1 {
		t.Fatalf("fetcher called %d times after Password, want 1", f.calls)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if got := ExpandPath("~/.password-store"); got != filepath.Join(home, ".password-store") {
		t.Fatalf("ExpandPath(~/.password-store) = %q", got)
	}
	t.Setenv("QP_TEST_DIR", "/tmp/qp")
	if got := ExpandPath("$QP_TEST_DIR/store"); got != filepath.Join("/tmp/qp", "store") {
		t.Fatalf("ExpandPath($QP_TEST_DIR/store) = %q", got)
	}
}
