package views

import (
	"cmp"
	"math"
	"slices"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/ticket-tui/dashboard"
	"github.com/deevus/ticket-tui/tracker"
	"github.com/deevus/ticket-tui/widgets"
	"github.com/dustin/go-humanize"
)

// Availability badges.
const (
	BadgeAvailable = "Available"
	BadgeSoldOut   = "Sold Out"
)

// TicketRow is one formatted line of the current price list.
type TicketRow struct {
	Section   string
	Row       string // "Row X", or empty when the ticket has no row
	Price     string
	Badge     string
	Available bool
}

// Cells returns the row as table cells.
func (r TicketRow) Cells() []string {
	return []string{r.Section, r.Row, r.Price, r.Badge}
}

// AvailabilityLabel returns the badge for a ticket's availability flag.
func AvailabilityLabel(available bool) string {
	if available {
		return BadgeAvailable
	}
	return BadgeSoldOut
}

// SortTickets returns a copy of tickets ordered by ascending price. Tickets
// with equal prices keep their original order.
func SortTickets(tickets []tracker.Ticket) []tracker.Ticket {
	sorted := slices.Clone(tickets)
	slices.SortStableFunc(sorted, func(a, b tracker.Ticket) int {
		return cmp.Compare(a.Price, b.Price)
	})
	return sorted
}

// TicketRows formats tickets for display, cheapest first.
func TicketRows(tickets []tracker.Ticket) []TicketRow {
	sorted := SortTickets(tickets)
	rows := make([]TicketRow, 0, len(sorted))
	for _, t := range sorted {
		row := TicketRow{
			Section:   t.Section,
			Price:     FormatPrice(t.Price),
			Badge:     AvailabilityLabel(t.Available),
			Available: t.Available,
		}
		if t.Row != "" {
			row.Row = "Row " + t.Row
		}
		rows = append(rows, row)
	}
	return rows
}

// AvailableCount returns how many tickets are available out of the total.
func AvailableCount(tickets []tracker.Ticket) (available, total int) {
	for _, t := range tickets {
		if t.Available {
			available++
		}
	}
	return available, len(tickets)
}

// Column layout for the price table.
const (
	ticketColRowWidth   = 10
	ticketColPriceWidth = 12
	ticketColBadgeWidth = 10
	ticketColGap        = 2
	ticketFixedWidth    = ticketColRowWidth + ticketColGap + ticketColPriceWidth + ticketColGap + ticketColBadgeWidth
)

func ticketCols(totalWidth int) []widgets.TableColumn {
	sectionWidth := max(totalWidth-ticketFixedWidth-ticketColGap, 12)
	return []widgets.TableColumn{
		{Width: sectionWidth, Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		{Width: ticketColRowWidth, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		{Width: ticketColPriceWidth, AlignRight: true},
		{Width: ticketColBadgeWidth},
	}
}

// PricesView shows the current ticket list and the price chart.
type PricesView struct {
	source StateSource
}

// NewPricesView creates a PricesView reading from source.
func NewPricesView(source StateSource) *PricesView {
	return &PricesView{source: source}
}

// Draw renders the ticket table in the top part of the view and the chart
// below it.
func (pv *PricesView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	st := pv.source.Snapshot()
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, pv)
	height := int(ctx.Max.Height)

	segments := []vaxis.Segment{{Text: "Current Prices"}}
	if st.Tickets != nil && st.Tickets.EventInfo != nil && st.Tickets.EventInfo.Name != "" {
		segments = append(segments, vaxis.Segment{Text: "  " + st.Tickets.EventInfo.Name, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	}
	headSurf, err := drawHeading(ctx, segments...)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, headSurf)
	row := 1

	var tickets []tracker.Ticket
	if st.Tickets != nil {
		tickets = st.Tickets.Tickets
	}

	if len(tickets) == 0 {
		msgSurf, err := drawMessage(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}), pv, 0, NoTickets)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, msgSurf)
		row += 2
	} else {
		rows := TicketRows(tickets)
		cells := make([][]string, len(rows))
		for i, r := range rows {
			cells[i] = r.Cells()
		}
		tbl := &widgets.Table{
			Columns: ticketCols(int(ctx.Max.Width)),
			Header:  []string{"SECTION", "ROW", "PRICE", "STATUS"},
			Rows:    cells,
			Gap:     ticketColGap,
			CellStyle: func(r, c int) (vaxis.Style, bool) {
				if c != 3 {
					return vaxis.Style{}, false
				}
				if rows[r].Available {
					return vaxis.Style{Foreground: vaxis.IndexColor(2)}, true
				}
				return vaxis.Style{Foreground: vaxis.IndexColor(1)}, true
			},
		}
		tblHeight := min(len(rows)+1, max((height-row)/2, 2))
		tblSurf, err := tbl.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(tblHeight)}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, tblSurf)
		row += tblHeight + 1
	}

	if row >= height {
		return s, nil
	}
	chart := ChartWidget(st.Chart, st.ChartTitle)
	chart.Height = height - row
	chartSurf, err := chart.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(height - row)}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, chartSurf)

	return s, nil
}

// ChartWidget converts the chart model into a line chart widget, colouring
// each series by its hue.
func ChartWidget(c dashboard.Chart, title string) *widgets.LineChart {
	if title == "" {
		title = "Price History"
	} else {
		title = "Price History: " + title
	}
	series := make([]widgets.ChartSeries, 0, len(c.Series))
	for _, s := range c.Series {
		series = append(series, widgets.ChartSeries{
			Label:  s.Label,
			Values: s.Values,
			Color:  widgets.HSLColor(s.Hue, 0.7, 0.5),
		})
	}
	return &widgets.LineChart{
		Title:   title,
		Labels:  c.Labels,
		Series:  series,
		YFormat: func(v float64) string { return "$" + humanize.Comma(int64(math.Round(v))) },
	}
}
