package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studypilot/internal/client/api"
)

func TestDashboardRendersStats(t *testing.T) {
	fake := &fakeAPI{stats: &api.DashboardStats{
		Documents:  3,
		Questions:  12,
		StudyHours: 4.5,
		QuizScore:  80,
	}}
	a, out := newTestApp(t, fake)
	loginTestApp(t, a)

	if err := a.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	for _, want := range []string{"Welcome back, Alice!", "Documents:       3", "Questions asked: 12", "4.5h", "80%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDashboardError(t *testing.T) {
	fake := &fakeAPI{statsErr: errors.New("backend down")}
	a, out := newTestApp(t, fake)
	loginTestApp(t, a)

	if err := a.Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "backend down") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSummary(t *testing.T) {
	fake := &fakeAPI{summary: "Cells are the basic unit of life."}
	a, out := newTestApp(t, fake)
	loginTestApp(t, a)
	stubTextInputs(t, "cell biology")

	if err := a.Summary(context.Background()); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(out.String(), "Summary: cell biology") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "basic unit of life") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHistoryUsesConfiguredLimit(t *testing.T) {
	fake := &fakeAPI{history: []api.HistoryEntry{
		{
			Question:  "What is osmosis?",
			Answer:    "Movement of water across a membrane.",
			Sources:   []string{"bio.pdf"},
			Timestamp: "2026-02-01T09:00:00Z",
		},
	}}
	a, out := newTestApp(t, fake)
	loginTestApp(t, a)
	a.config.HistoryLimit = 25

	if err := a.History(context.Background()); err != nil {
		t.Fatalf("History: %v", err)
	}
	if fake.historyLim != 25 {
		t.Errorf("limit = %d, want 25", fake.historyLim)
	}
	for _, want := range []string{"Q: What is osmosis?", "A: Movement of water", "Sources: bio.pdf", "2026-02-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{})
	loginTestApp(t, a)

	if err := a.History(context.Background()); err != nil {
		t.Fatalf("History: %v", err)
	}
	if !strings.Contains(out.String(), "No questions asked yet") {
		t.Errorf("output = %q", out.String())
	}
}

func TestStatusLine(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{})
	if got := a.statusLine(); got != "" {
		t.Errorf("signed-out status line = %q, want empty", got)
	}
	loginTestApp(t, a)
	if got := a.statusLine(); got != "(alice@example.org)" {
		t.Errorf("status line = %q", got)
	}
}
