// Package pass is the boundary to the external `pass` program: it
// fetches decrypted entry text, opens entries in the user's editor
// and copies passwords to the clipboard. Every invocation points
// PASSWORD_STORE_DIR at the entry's own store so multi-store setups
// address the right files.
package pass

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/quickpass/quickpass/internal/store"
)

// Runner executes external commands. Tests inject fakes to observe
// invocations without running the real tool.
type Runner interface {
	// Capture runs the command and returns its stdout.
	Capture(env []string, name string, args ...string) (string, error)
	// Run runs the command attached to the terminal.
	Run(env []string, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Capture(env []string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	var out bytes.Buffer
	cmd.Stdout = &out
	// gpg may need the terminal for pinentry.
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out.String(), nil
}

func (execRunner) Run(env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Invoker shells out to pass. It implements store.Fetcher.
type Invoker struct {
	runner Runner
}

// New returns an Invoker backed by real subprocess execution.
func New() *Invoker {
	return &Invoker{runner: execRunner{}}
}

// NewWithRunner is New with an explicit runner.
func NewWithRunner(r Runner) *Invoker {
	return &Invoker{runner: r}
}

func environ(e *store.Entry) []string {
	if s := e.Store(); s != nil {
		return []string{store.DirectoryVariable + "=" + s.Dir()}
	}
	return nil
}

// Show returns the entry's decrypted text.
func (i *Invoker) Show(e *store.Entry) (string, error) {
	return i.runner.Capture(environ(e), "pass", "show", e.Name())
}

// Edit opens the entry in the user's editor via pass, which honors
// $EDITOR itself.
func (i *Invoker) Edit(e *store.Entry) error {
	return i.runner.Run(environ(e), "pass", "edit", e.Name())
}

// Clip copies the entry's password to the clipboard. pass owns
// clearing the clipboard again after its timeout.
func (i *Invoker) Clip(e *store.Entry) error {
	return i.runner.Run(environ(e), "pass", "show", "--clip", e.Name())
}

// ClipboardSupported reports whether a clipboard is likely usable:
// macOS always has one, elsewhere an X11 or Wayland display must be
// present.
func ClipboardSupported() bool {
	return runtime.GOOS == "darwin" ||
		os.Getenv("DISPLAY") != "" ||
		os.Getenv("WAYLAND_DISPLAY") != ""
}
