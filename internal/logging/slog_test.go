package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLogger_WritesLevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTextLogger(&buf, slog.LevelDebug)

	ctx := context.Background()
	lg.Debug(ctx, "dbg", "k", "v")
	lg.Info(ctx, "inf")
	lg.Warn(ctx, "wrn")
	lg.Error(ctx, "err")

	out := buf.String()
	for _, want := range []string{"dbg", "inf", "wrn", "err", "k=v"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_WithAddsPersistentAttrs(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTextLogger(&buf, slog.LevelInfo)

	child := lg.With("component", "api")
	child.Info(context.Background(), "request")

	if !strings.Contains(buf.String(), "component=api") {
		t.Fatalf("child logger did not carry attrs:\n%s", buf.String())
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTextLogger(&buf, slog.LevelInfo)

	lg.Debug(context.Background(), "hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug record should have been filtered:\n%s", buf.String())
	}
}
