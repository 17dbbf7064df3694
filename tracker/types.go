package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Event is a ticketed occasion the backend monitors.
type Event struct {
	Name string `json:"name"`
	Date string `json:"date"`
	URL  string `json:"url,omitempty"`
}

// Ticket is one priced inventory line for an event.
type Ticket struct {
	Section   string  `json:"section"`
	Row       string  `json:"row,omitempty"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	Source    string  `json:"source,omitempty"`
}

// PriceDrop is a backend-detected decrease in a section's price.
type PriceDrop struct {
	Event          string    `json:"event"`
	Section        string    `json:"section"`
	OldPrice       float64   `json:"old_price"`
	NewPrice       float64   `json:"new_price"`
	DropPercentage float64   `json:"drop_percentage"`
	DetectedAt     Timestamp `json:"detected_at"`
}

// EventInfo describes the event a check resolved to. Any field may be empty.
type EventInfo struct {
	Name string `json:"name,omitempty"`
	Date string `json:"date,omitempty"`
}

// CheckResult is the response of an on-demand price check.
type CheckResult struct {
	Tickets   []Ticket   `json:"tickets"`
	EventInfo *EventInfo `json:"event_info,omitempty"`
}

// HistoryEntry is one stored price observation for an event section.
type HistoryEntry struct {
	Section   string    `json:"section"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	TrackedAt Timestamp `json:"tracked_at"`
}

// MonitorStatus is the monitoring state of one event and its latest
// price checks, newest first.
type MonitorStatus struct {
	Event        string        `json:"event"`
	URL          string        `json:"url"`
	RecentChecks []RecentCheck `json:"recent_checks"`
}

// RecentCheck is one price observation from an event page check.
type RecentCheck struct {
	Section   string    `json:"section"`
	Row       string    `json:"row,omitempty"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	CheckedAt Timestamp `json:"checked_at"`
}

// Timestamp decodes the backend's ISO-8601 timestamps, which may omit the
// zone offset. A missing offset is read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
