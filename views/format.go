package views

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Placeholder texts for empty lists.
const (
	NoTickets = "No tickets available"
	NoDrops   = "No price drops detected yet."
	NoEvents  = "No events being monitored."
)

// FormatPrice renders a price in dollars with two decimals and thousands
// separators, e.g. "$1,250.00".
func FormatPrice(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatPercentOff renders a drop percentage, e.g. "20.0% off".
func FormatPercentOff(p float64) string {
	return fmt.Sprintf("%.1f%% off", p)
}

// FormatLastCheck renders the time of the last successful refresh and how long
// ago it was, or "never".
func FormatLastCheck(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05") + " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
}
