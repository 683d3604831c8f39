package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelMapping(t *testing.T) {
	cases := []struct {
		verbose, quiet int
		want           slog.Level
	}{
		{0, 0, slog.LevelWarn},
		{1, 0, slog.LevelInfo},
		{2, 0, slog.LevelDebug},
		{5, 0, slog.LevelDebug},
		{0, 1, slog.LevelError},
		{0, 5, slog.LevelError + 4},
		{1, 1, slog.LevelWarn},
	}
	for _, c := range cases {
		if got := Level(c.verbose, c.quiet); got != c.want {
			t.Fatalf("Level(%d, %d) = %v, want %v", c.verbose, c.quiet, got, c.want)
		}
	}
}

func TestHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, false))

	logger.Debug("hidden")
	logger.Info("matched one entry", "name", "Personal/Zabbix")
	logger.Warn("careful")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked below the level: %q", out)
	}
	if !strings.Contains(out, "info: matched one entry name=Personal/Zabbix") {
		t.Fatalf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, "warn: careful") {
		t.Fatalf("unexpected warn line: %q", out)
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, false)).With("store", "/tmp/x")
	logger.Info("scanning")
	if !strings.Contains(buf.String(), "scanning store=/tmp/x") {
		t.Fatalf("bound attrs missing: %q", buf.String())
	}
}
