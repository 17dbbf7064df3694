package dashboard

import (
	"fmt"

	"github.com/deevus/ticket-tui/tracker"
)

// HueStep is the spacing between consecutive series hues on the colour wheel.
const HueStep = 60

// Series is one section's prices in observation order.
type Series struct {
	Label  string
	Values []float64
	Hue    int // 0-359
}

// Chart is the line chart model: one series per section plus x-axis labels.
type Chart struct {
	Labels []string
	Series []Series
}

// Empty reports whether the chart has nothing to plot.
func (c Chart) Empty() bool {
	return len(c.Series) == 0
}

// BuildChart groups tickets by section, in first-seen order, into one series
// per section. The axis is as long as the longest series; shorter series end
// early rather than being stretched across it.
func BuildChart(tickets []tracker.Ticket) Chart {
	if len(tickets) == 0 {
		return Chart{}
	}

	index := make(map[string]int)
	var series []Series
	for _, t := range tickets {
		i, ok := index[t.Section]
		if !ok {
			i = len(series)
			index[t.Section] = i
			series = append(series, Series{
				Label: t.Section,
				Hue:   (i * HueStep) % 360,
			})
		}
		series[i].Values = append(series[i].Values, t.Price)
	}

	axis := 0
	for _, s := range series {
		axis = max(axis, len(s.Values))
	}
	labels := make([]string, axis)
	for i := range labels {
		labels[i] = fmt.Sprintf("Check %d", i+1)
	}

	return Chart{Labels: labels, Series: series}
}

// historyTickets converts newest-first history into oldest-first tickets.
func historyTickets(history []tracker.HistoryEntry) []tracker.Ticket {
	tickets := make([]tracker.Ticket, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		tickets = append(tickets, tracker.Ticket{
			Section:   h.Section,
			Price:     h.Price,
			Available: h.Available,
		})
	}
	return tickets
}

// recentTickets converts newest-first page checks to tickets, oldest first.
func recentTickets(checks []tracker.RecentCheck) []tracker.Ticket {
	tickets := make([]tracker.Ticket, 0, len(checks))
	for i := len(checks) - 1; i >= 0; i-- {
		rc := checks[i]
		tickets = append(tickets, tracker.Ticket{
			Section:   rc.Section,
			Row:       rc.Row,
			Price:     rc.Price,
			Available: rc.Available,
		})
	}
	return tickets
}
