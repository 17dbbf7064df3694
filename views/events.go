package views

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/ticket-tui/tracker"
)

// EventsView lists the monitored events. The selected row is the target of
// the check-prices, history and monitor actions.
type EventsView struct {
	source StateSource
	events []tracker.Event
	list   list.Dynamic
}

// NewEventsView creates an EventsView reading from source.
func NewEventsView(source StateSource) *EventsView {
	ev := &EventsView{source: source}
	ev.list.DrawCursor = true
	ev.list.Builder = ev.buildItem
	return ev
}

func (ev *EventsView) sync() {
	ev.events = ev.source.Snapshot().Events
}

// ItemCount returns the number of monitored events.
func (ev *EventsView) ItemCount() int {
	ev.sync()
	return len(ev.events)
}

// SelectedEvent returns the event under the cursor.
func (ev *EventsView) SelectedEvent() (tracker.Event, bool) {
	ev.sync()
	idx := int(ev.list.Cursor())
	if idx >= len(ev.events) {
		return tracker.Event{}, false
	}
	return ev.events[idx], true
}

func (ev *EventsView) buildItem(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(ev.events) {
		return nil
	}
	e := ev.events[i]

	segments := []vaxis.Segment{
		{Text: fmt.Sprintf(" %-32s", e.Name), Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		{Text: fmt.Sprintf("%-24s", e.Date), Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	}
	if i == cursor {
		segments = append(segments, vaxis.Segment{
			Text:  "[Enter] Check Prices  [h] History  [v] Recent Checks  [m] Monitor",
			Style: vaxis.Style{Foreground: vaxis.IndexColor(4)},
		})
	}
	return richtext.New(segments)
}

// Draw renders the event list, or a placeholder when nothing is monitored.
func (ev *EventsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	st := ev.source.Snapshot()
	if !st.Loaded {
		return drawLoadingState(ctx, ev)
	}
	ev.events = st.Events

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, ev)
	headSurf, err := drawHeading(ctx, vaxis.Segment{Text: "Monitored Events"})
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, headSurf)

	if len(ev.events) == 0 {
		msgSurf, err := drawMessage(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}), ev, 0, NoEvents)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, 1, msgSurf)
		return s, nil
	}

	listSurf, err := ev.list.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, listSurf)
	return s, nil
}

// HandleEvent delegates to the list widget for navigation.
func (ev *EventsView) HandleEvent(e vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return ev.list.HandleEvent(e, phase)
}
