package views_test

import (
	"testing"

	"git.sr.ht/~rockorager/vaxis"
	"github.com/deevus/ticket-tui/views"
)

func TestPromptQueue_Order(t *testing.T) {
	posted := 0
	q := views.NewPromptQueue(func(ev vaxis.Event) {
		if _, ok := ev.(views.PromptQueued); ok {
			posted++
		}
	})

	if q.Pending() {
		t.Fatal("expected empty queue")
	}
	q.Prompt("first")
	q.Prompt("second")
	if posted != 2 {
		t.Errorf("expected 2 PromptQueued events, got %d", posted)
	}

	msg, ok := q.Current()
	if !ok || msg != "first" {
		t.Errorf("expected first, got %q", msg)
	}
	q.Dismiss()
	if msg, _ := q.Current(); msg != "second" {
		t.Errorf("expected second, got %q", msg)
	}
	q.Dismiss()
	q.Dismiss()
	if q.Pending() {
		t.Error("expected empty queue after dismissing everything")
	}
}

func TestPromptQueue_NilPost(t *testing.T) {
	q := views.NewPromptQueue(nil)
	q.Prompt("hello")
	if !q.Pending() {
		t.Error("expected pending message")
	}
}

func TestPromptQueue_Draw(t *testing.T) {
	q := views.NewPromptQueue(nil)
	q.Prompt("Please enter a URL")

	s, err := q.Draw(testDrawContext(80, 24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := render(s)
	if len(rows) != 5 {
		t.Fatalf("expected 5-row box, got %d", len(rows))
	}
	if rows[0][:3] != "┌" {
		t.Errorf("expected top-left corner, got %q", rows[0])
	}
	if !contains(rows, "│ Please enter a URL") {
		t.Errorf("expected message inside border, got %q", rows)
	}
	if !contains(rows, "[Enter] OK") {
		t.Error("expected acknowledge hint")
	}
}

func TestPromptQueue_Draw_Empty(t *testing.T) {
	s, err := views.NewPromptQueue(nil).Draw(testDrawContext(80, 24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Width != 0 || s.Size.Height != 0 {
		t.Errorf("expected empty surface, got %dx%d", s.Size.Width, s.Size.Height)
	}
}
