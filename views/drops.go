package views

import (
	"fmt"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/ticket-tui/tracker"
	"github.com/dustin/go-humanize"
)

// DropRow is one formatted price drop.
type DropRow struct {
	Event      string
	Section    string // "Section 101"
	OldPrice   string
	NewPrice   string
	PercentOff string
	DetectedAt time.Time
}

// DropRows formats price drops for display, in the order received.
func DropRows(drops []tracker.PriceDrop) []DropRow {
	rows := make([]DropRow, 0, len(drops))
	for _, d := range drops {
		rows = append(rows, DropRow{
			Event:      d.Event,
			Section:    "Section " + d.Section,
			OldPrice:   FormatPrice(d.OldPrice),
			NewPrice:   FormatPrice(d.NewPrice),
			PercentOff: FormatPercentOff(d.DropPercentage),
			DetectedAt: d.DetectedAt.Time,
		})
	}
	return rows
}

// DropsView lists recent price drops.
type DropsView struct {
	source StateSource
	rows   []DropRow
	list   list.Dynamic
}

// NewDropsView creates a DropsView reading from source.
func NewDropsView(source StateSource) *DropsView {
	dv := &DropsView{source: source}
	dv.list.DrawCursor = true
	dv.list.Builder = dv.buildItem
	return dv
}

// ItemCount returns the number of drops drawn last.
func (dv *DropsView) ItemCount() int {
	return len(dv.rows)
}

func (dv *DropsView) buildItem(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(dv.rows) {
		return nil
	}
	r := dv.rows[i]

	green := vaxis.IndexColor(2)
	segments := []vaxis.Segment{
		{Text: " ▼ ", Style: vaxis.Style{Foreground: green}},
		{Text: fmt.Sprintf("%-28s", r.Event), Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		{Text: fmt.Sprintf("%-16s", r.Section), Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		{Text: fmt.Sprintf("%12s", r.OldPrice), Style: vaxis.Style{Attribute: vaxis.AttrDim | vaxis.AttrStrikethrough}},
		{Text: fmt.Sprintf("%12s", r.NewPrice), Style: vaxis.Style{Foreground: green, Attribute: vaxis.AttrBold}},
		{Text: fmt.Sprintf("  %-12s", r.PercentOff), Style: vaxis.Style{Foreground: green}},
	}
	if !r.DetectedAt.IsZero() {
		segments = append(segments, vaxis.Segment{
			Text: humanize.Time(r.DetectedAt), Style: vaxis.Style{Attribute: vaxis.AttrDim},
		})
	}
	return richtext.New(segments)
}

// Draw renders the drop list, or a placeholder when there are none.
func (dv *DropsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	st := dv.source.Snapshot()
	if !st.Loaded {
		return drawLoadingState(ctx, dv)
	}
	dv.rows = DropRows(st.Drops)

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, dv)
	headSurf, err := drawHeading(ctx,
		vaxis.Segment{Text: "Recent Price Drops"},
		vaxis.Segment{Text: "  last " + fmt.Sprint(st.DropWindowHours) + "h", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, headSurf)

	if len(dv.rows) == 0 {
		msgSurf, err := drawMessage(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}), dv, 0, NoDrops)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, 1, msgSurf)
		return s, nil
	}

	listSurf, err := dv.list.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, listSurf)
	return s, nil
}

// HandleEvent delegates to the list widget for navigation.
func (dv *DropsView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return dv.list.HandleEvent(ev, phase)
}
