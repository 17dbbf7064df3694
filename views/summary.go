package views

import (
	"fmt"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/ticket-tui/dashboard"
	"github.com/deevus/ticket-tui/widgets"
)

// SummaryHeight is the number of rows the summary header occupies.
const SummaryHeight = 4

// SummaryLine formats the counters of the summary header, e.g.
// "Active events: 3   Price drops: 1   Lowest price: $80.00".
func SummaryLine(sum dashboard.Summary) string {
	lowest := "-"
	if sum.HasLowestPrice {
		lowest = FormatPrice(sum.LowestPrice)
	}
	return fmt.Sprintf("Active events: %d   Price drops: %d   Lowest price: %s",
		sum.ActiveEvents, sum.PriceDrops, lowest)
}

// SummaryView is the header shown above every tab.
type SummaryView struct {
	source StateSource
	now    func() time.Time
}

// NewSummaryView creates a SummaryView reading from source.
func NewSummaryView(source StateSource) *SummaryView {
	return &SummaryView{source: source, now: time.Now}
}

// Draw renders last check time, counters, the lowest price trend, the
// availability of the shown tickets and the auto-refresh action.
func (sv *SummaryView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	st := sv.source.Snapshot()
	height := min(uint16(SummaryHeight), ctx.Max.Height)
	s := vxfw.NewSurface(ctx.Max.Width, height, sv)
	line := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})

	rows := []vxfw.Widget{
		richtext.New([]vaxis.Segment{
			{Text: " Last check: ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: FormatLastCheck(st.Summary.LastCheck, sv.now())},
			{Text: "   [a] " + st.AutoRefreshLabel(), Style: vaxis.Style{Foreground: vaxis.IndexColor(4)}},
		}),
		richtext.New([]vaxis.Segment{
			{Text: " " + SummaryLine(st.Summary), Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		}),
	}

	for i, w := range rows {
		if i >= int(height) {
			return s, nil
		}
		surf, err := w.Draw(line)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, i, surf)
	}

	row := len(rows)
	if row < int(height) && len(st.LowestHistory) > 0 {
		label := " Lowest trend "
		labelSurf, err := richtext.New([]vaxis.Segment{
			{Text: label, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		}).Draw(line)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, labelSurf)

		if w := int(ctx.Max.Width) - len(label); w > 0 {
			spark := widgets.NewSparklineFrom(st.LowestHistory)
			spark.Color = vaxis.IndexColor(2)
			sparkSurf, err := spark.Draw(ctx.WithMax(vxfw.Size{Width: uint16(w), Height: 1}))
			if err != nil {
				return vxfw.Surface{}, err
			}
			s.AddChild(len(label), row, sparkSurf)
		}
	}
	row++

	if row < int(height) && st.Tickets != nil && len(st.Tickets.Tickets) > 0 {
		available, total := AvailableCount(st.Tickets.Tickets)
		gauge := &widgets.BarGauge{
			Label:    "AVL",
			Value:    float64(available) / float64(total) * 100,
			Suffix:   fmt.Sprintf("%d/%d ticket options available", available, total),
			BarWidth: 20,
			Palette:  widgets.SupplyPalette,
		}
		gaugeSurf, err := gauge.Draw(line)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(1, row, gaugeSurf)
	}

	return s, nil
}
