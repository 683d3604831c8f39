// Package format renders password entries for terminal display:
// the password line is split off, redaction filters applied, and
// "Key: Value" lines and embedded URLs highlighted.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// keyValuePattern recognizes "Key: Value" lines: the key runs up to
// the last colon that is followed by whitespace, the value is the
// non-blank remainder.
var keyValuePattern = regexp.MustCompile(`^(.+\S):\s+(\S.*)$`)

// Options control how Entry renders.
type Options struct {
	// IncludePassword prepends a "Password: ..." line.
	IncludePassword bool
	// Colors enables ANSI styling of the title, keys and URLs.
	Colors bool
	// Padding indents every line by two spaces and wraps the block
	// in blank lines.
	Padding bool
	// Filters are case-insensitive regular expressions; body lines
	// matching any of them are dropped from the output.
	Filters []string
	// Renderer supplies the lipgloss styles. Nil uses the default
	// stdout renderer.
	Renderer *lipgloss.Renderer
}

// SupportsColor reports whether the terminal understands ANSI
// colors, honoring NO_COLOR and CLICOLOR_FORCE.
func SupportsColor() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	url   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		title: r.NewStyle().Bold(true),
		key:   r.NewStyle().Foreground(lipgloss.Color("2")),
		url:   r.NewStyle().Underline(true),
	}
}

// Entry formats the raw text of the named entry. The first line of
// text is the password; the rest is free-form metadata.
func Entry(name, text string, opts Options) (string, error) {
	patterns := make([]*regexp.Regexp, 0, len(opts.Filters))
	for _, f := range opts.Filters {
		p, err := regexp.Compile("(?i)" + f)
		if err != nil {
			return "", fmt.Errorf("invalid filter pattern %q: %w", f, err)
		}
		patterns = append(patterns, p)
	}
	st := newStyles(opts.Renderer)

	lines := splitLines(text)
	var password string
	if len(lines) > 0 {
		password = strings.TrimSpace(lines[0])
		lines = lines[1:]
	}

	// Redact lines matching any filter, then strip blank padding.
	body := lines[:0:0]
	for _, line := range lines {
		redacted := false
		for _, p := range patterns {
			if p.MatchString(line) {
				redacted = true
				break
			}
		}
		if !redacted {
			body = append(body, line)
		}
	}
	rendered := trimEmptyLines(strings.Join(body, "\n"))

	if opts.IncludePassword {
		rendered = "Password: " + password + "\n" + rendered
	}

	// Only add a title when there is something to show under it.
	if strings.TrimSpace(rendered) != "" {
		title := strings.ReplaceAll(name, "/", " / ")
		if opts.Colors {
			title = st.title.Render(title)
		}
		rendered = title + "\n\n" + rendered
	}

	var out []string
	for _, line := range strings.Split(rendered, "\n") {
		if m := keyValuePattern.FindStringSubmatch(line); m != nil {
			key := strings.TrimSpace(m[1]) + ":"
			value := strings.TrimSpace(m[2])
			if opts.Colors {
				key = st.key.Render(key)
				tokens := strings.Fields(value)
				for i, tok := range tokens {
					if strings.Contains(tok, "://") {
						tokens[i] = st.url.Render(tok)
					}
				}
				value = strings.Join(tokens, " ")
			}
			line = key + " " + value
		}
		if opts.Padding {
			line = "  " + line
		}
		out = append(out, line)
	}
	result := trimEmptyLines(strings.Join(out, "\n"))
	if result != "" && opts.Padding {
		result = "\n" + result + "\n"
	}
	return result, nil
}

// splitLines splits on newlines, tolerating CRLF and dropping a
// single trailing newline's empty remainder.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// trimEmptyLines removes leading and trailing lines that are empty
// or whitespace-only.
func trimEmptyLines(s string) string {
	lines := strings.Split(s, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
