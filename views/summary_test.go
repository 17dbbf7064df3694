package views_test

import (
	"testing"
	"time"

	"github.com/deevus/ticket-tui/dashboard"
	"github.com/deevus/ticket-tui/tracker"
	"github.com/deevus/ticket-tui/views"
)

func TestFormatLastCheck(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.Local)
	got := views.FormatLastCheck(now.Add(-5*time.Minute), now)
	if got != "14:00:00 (5 minutes ago)" {
		t.Errorf("unexpected last check %q", got)
	}
}

func TestFormatLastCheck_Never(t *testing.T) {
	if got := views.FormatLastCheck(time.Time{}, time.Now()); got != "never" {
		t.Errorf("expected never, got %q", got)
	}
}

func TestSummaryLine_NoDrops(t *testing.T) {
	got := views.SummaryLine(dashboard.Summary{ActiveEvents: 2})
	if got != "Active events: 2   Price drops: 0   Lowest price: -" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestSummaryView_Draw(t *testing.T) {
	src := &staticSource{state: dashboard.State{
		Loaded:        true,
		Summary:       dashboard.Summary{ActiveEvents: 2, PriceDrops: 1, LowestPrice: 80, HasLowestPrice: true},
		LowestHistory: []float64{95, 80},
		Tickets: &tracker.CheckResult{Tickets: []tracker.Ticket{
			{Section: "A", Available: true},
			{Section: "B", Available: false},
		}},
	}}
	sv := views.NewSummaryView(src)

	s, err := sv.Draw(testDrawContext(100, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Height != views.SummaryHeight {
		t.Errorf("expected height=%d, got %d", views.SummaryHeight, s.Size.Height)
	}
	rows := render(s)
	for _, want := range []string{
		"Last check: never",
		"[a] Enable Auto-Refresh",
		"Lowest price: $80.00",
		"Lowest trend",
		"1/2 ticket options available",
	} {
		if !contains(rows, want) {
			t.Errorf("expected %q in %q", want, rows)
		}
	}
}

func TestSummaryView_Draw_AutoRefreshOn(t *testing.T) {
	src := &staticSource{state: dashboard.State{AutoRefresh: true}}
	s, err := views.NewSummaryView(src).Draw(testDrawContext(100, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := render(s)
	if !contains(rows, "Disable Auto-Refresh") {
		t.Errorf("expected disable label, got %q", rows)
	}
	if contains(rows, "AVL") {
		t.Error("expected no availability gauge without tickets")
	}
}
