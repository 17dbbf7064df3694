package app

import (
	"context"
	"log"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/ticket-tui/dashboard"
	"github.com/deevus/ticket-tui/internal"
	"github.com/deevus/ticket-tui/views"
	"github.com/deevus/ticket-tui/widgets"
)

// Tab indices.
const (
	TabDrops = iota
	TabEvents
	TabPrices
)

// Params holds configuration for creating an App.
type Params struct {
	// Services is used directly when set. Otherwise Connect is called on Init.
	Services   *internal.Services
	ServerName string
	Connect    func(ctx context.Context) (*internal.Services, error)

	Interval        time.Duration
	DropWindowHours int
}

// Connected is posted when the background connect succeeds.
type Connected struct {
	Services *internal.Services
}

// ConnectFailed is posted when the background connect fails.
type ConnectFailed struct {
	Err error
}

// App is the root vxfw widget for ticket-tui.
type App struct {
	services   *internal.Services
	serverName string
	connectFn  func(ctx context.Context) (*internal.Services, error)
	connectErr error

	interval   time.Duration
	dropWindow int
	ctrl       *dashboard.Controller

	tabBar  *widgets.TabBar
	summary *views.SummaryView
	drops   *views.DropsView
	events  *views.EventsView
	prices  *views.PricesView
	dialog  *views.CheckDialog
	prompts *views.PromptQueue

	ctx       context.Context
	cancel    context.CancelFunc
	postEvent func(vaxis.Event)
}

// New creates the root App widget.
func New(p Params) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		serverName: p.ServerName,
		connectFn:  p.Connect,
		interval:   p.Interval,
		dropWindow: p.DropWindowHours,
		tabBar:     widgets.NewTabBar([]string{"Drops", "Events", "Prices"}),
		ctx:        ctx,
		cancel:     cancel,
	}
	a.tabBar.Status = p.ServerName
	a.prompts = views.NewPromptQueue(nil)
	a.summary = views.NewSummaryView(a)
	a.drops = views.NewDropsView(a)
	a.events = views.NewEventsView(a)
	a.prices = views.NewPricesView(a)
	a.dialog = views.NewCheckDialog(a)
	if p.Services != nil {
		a.attach(p.Services)
	}
	return a
}

func (a *App) attach(svc *internal.Services) {
	a.services = svc
	a.connectErr = nil
	a.ctrl = dashboard.New(dashboard.Params{
		Service:         svc.Tracker,
		Prompter:        a.prompts,
		PostEvent:       a.post,
		Interval:        a.interval,
		DropWindowHours: a.dropWindow,
	})
}

// SetPostEvent sets the function used to post events to the vaxis event loop.
// Must be called before the app starts.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.postEvent = fn
	a.prompts.SetPostEvent(fn)
}

func (a *App) post(ev vaxis.Event) {
	if a.postEvent != nil {
		a.postEvent(ev)
	}
}

// IsConnected reports whether the tracker API client is ready.
func (a *App) IsConnected() bool {
	return a.services != nil
}

// Controller returns the dashboard controller, or nil before connecting.
func (a *App) Controller() *dashboard.Controller {
	return a.ctrl
}

// Prompts returns the queue of messages awaiting acknowledgement.
func (a *App) Prompts() *views.PromptQueue {
	return a.prompts
}

// ActiveTab returns the current tab index.
func (a *App) ActiveTab() int {
	return a.tabBar.Active()
}

// SetTab switches to the given tab index.
func (a *App) SetTab(i int) {
	a.tabBar.SetActive(i)
}

// ServerName returns the server profile name.
func (a *App) ServerName() string {
	return a.serverName
}

// Snapshot returns the dashboard state, empty before connecting.
func (a *App) Snapshot() dashboard.State {
	if a.ctrl == nil {
		return dashboard.State{}
	}
	return a.ctrl.Snapshot()
}

// DialogInput returns the check dialog's text.
func (a *App) DialogInput() string {
	if a.ctrl == nil {
		return ""
	}
	return a.ctrl.DialogInput()
}

// SetDialogInput replaces the check dialog's text.
func (a *App) SetDialogInput(s string) {
	if a.ctrl != nil {
		a.ctrl.SetDialogInput(s)
	}
}

// Close stops background work and releases the connection.
func (a *App) Close() {
	a.cancel()
	if a.ctrl != nil {
		a.ctrl.Close()
	}
	if a.services != nil {
		if err := a.services.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
	}
}

// connect runs the Connect callback and posts the outcome.
func (a *App) connect() {
	svc, err := a.connectFn(a.ctx)
	if err != nil {
		a.post(ConnectFailed{Err: err})
		return
	}
	a.post(Connected{Services: svc})
}

// refresh runs a dashboard refresh in the background. Errors are logged by
// the controller.
func (a *App) refresh() {
	if a.ctrl == nil {
		return
	}
	go func() { _ = a.ctrl.Refresh(a.ctx) }()
}

func (a *App) activeView() vxfw.Widget {
	switch a.tabBar.Active() {
	case TabEvents:
		return a.events
	case TabPrices:
		return a.prices
	default:
		return a.drops
	}
}

// Draw renders the tab bar, the summary header and the active view, with the
// check dialog and any pending prompt on top.
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)

	if !a.IsConnected() {
		return a.drawConnecting(ctx, s)
	}

	tabCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})
	tabSurf, err := a.tabBar.Draw(tabCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, tabSurf)

	row := 1
	sumSurf, err := a.summary.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: max(ctx.Max.Height, 1) - 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, sumSurf)
	row += int(sumSurf.Size.Height) + 1

	if row < int(ctx.Max.Height) {
		viewCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - uint16(row)})
		viewSurf, err := a.activeView().Draw(viewCtx)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, viewSurf)
	}

	if a.ctrl.Snapshot().Dialog.Open {
		if err := a.overlay(ctx, &s, a.dialog); err != nil {
			return vxfw.Surface{}, err
		}
	}
	if a.prompts.Pending() {
		if err := a.overlay(ctx, &s, a.prompts); err != nil {
			return vxfw.Surface{}, err
		}
	}

	return s, nil
}

// overlay draws w centred over s.
func (a *App) overlay(ctx vxfw.DrawContext, s *vxfw.Surface, w vxfw.Widget) error {
	surf, err := w.Draw(ctx)
	if err != nil {
		return err
	}
	col := (int(ctx.Max.Width) - int(surf.Size.Width)) / 2
	row := (int(ctx.Max.Height) - int(surf.Size.Height)) / 2
	s.AddChild(max(col, 0), max(row, 0), surf)
	return nil
}

func (a *App) drawConnecting(ctx vxfw.DrawContext, s vxfw.Surface) (vxfw.Surface, error) {
	segments := []vaxis.Segment{
		{Text: "Connecting to " + a.serverName + "...", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	}
	if a.connectErr != nil {
		segments = []vaxis.Segment{
			{Text: "Connection to " + a.serverName + " failed: ", Style: vaxis.Style{Foreground: vaxis.IndexColor(1), Attribute: vaxis.AttrBold}},
			{Text: a.connectErr.Error()},
			{Text: "  [q] quit", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		}
	}
	label := richtext.New(segments)
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, labelSurf)
	return s, nil
}

// CaptureEvent handles global keybindings before views process them. A
// pending prompt or the open check dialog takes every key first.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}

	if a.prompts.Pending() {
		switch {
		case key.Matches(vaxis.KeyEnter), key.Matches(vaxis.KeyEsc), key.Matches(' '):
			a.prompts.Dismiss()
		}
		return vxfw.ConsumeAndRedraw(), nil
	}

	if a.ctrl != nil && a.ctrl.Snapshot().Dialog.Open {
		return a.handleDialogKey(key), nil
	}

	if key.Matches('q') {
		return vxfw.QuitCmd{}, nil
	}
	if !a.IsConnected() {
		return nil, nil
	}

	switch {
	case key.Matches('r'):
		a.refresh()
	case key.Matches('a'):
		a.ctrl.ToggleAutoRefresh(a.ctx)
	case key.Matches('c'):
		a.ctrl.OpenCheckDialog()
	case key.Matches('1'):
		a.tabBar.SetActive(TabDrops)
	case key.Matches('2'):
		a.tabBar.SetActive(TabEvents)
	case key.Matches('3'):
		a.tabBar.SetActive(TabPrices)
	case key.Matches(vaxis.KeyTab):
		a.tabBar.Next()
	case key.Matches(vaxis.KeyTab, vaxis.ModShift):
		a.tabBar.Prev()
	case a.tabBar.Active() == TabEvents:
		return a.handleEventsKey(key), nil
	default:
		return nil, nil
	}
	return vxfw.ConsumeAndRedraw(), nil
}

func (a *App) handleDialogKey(key vaxis.Key) vxfw.Command {
	switch {
	case key.Matches(vaxis.KeyEsc):
		a.ctrl.CloseCheckDialog()
	case key.Matches(vaxis.KeyEnter):
		url := a.ctrl.DialogInput()
		go func() {
			if err := a.ctrl.SubmitEventCheck(a.ctx, url); err == nil {
				a.post(showPrices{})
			}
		}()
	default:
		a.dialog.HandleKey(key)
	}
	return vxfw.ConsumeAndRedraw()
}

func (a *App) handleEventsKey(key vaxis.Key) vxfw.Command {
	event, ok := a.events.SelectedEvent()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(vaxis.KeyEnter):
		go func() {
			if err := a.ctrl.CheckEventPrices(a.ctx, event.Name); err == nil {
				a.post(showPrices{})
			}
		}()
	case key.Matches('h'):
		go func() {
			if err := a.ctrl.ShowHistory(a.ctx, event.Name); err == nil {
				a.post(showPrices{})
			}
		}()
	case key.Matches('v'):
		go func() {
			if err := a.ctrl.ShowRecentChecks(a.ctx, event.Name); err == nil {
				a.post(showPrices{})
			}
		}()
	case key.Matches('m'):
		go func() { _ = a.ctrl.StartMonitoring(a.ctx, event.Name) }()
	default:
		return nil
	}
	return vxfw.ConsumeAndRedraw()
}

// showPrices switches to the prices tab once new tickets or history arrive.
type showPrices struct{}

// HandleEvent reacts to connection and dashboard events, and delegates
// everything else to the active view.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vxfw.Init:
		if a.IsConnected() {
			a.refresh()
			return nil, nil
		}
		if a.connectFn != nil {
			go a.connect()
		}
		return nil, nil
	case Connected:
		a.attach(ev.Services)
		a.refresh()
		return vxfw.RedrawCmd{}, nil
	case ConnectFailed:
		log.Printf("error connecting to %s: %v", a.serverName, ev.Err)
		a.connectErr = ev.Err
		return vxfw.RedrawCmd{}, nil
	case showPrices:
		a.tabBar.SetActive(TabPrices)
		return vxfw.RedrawCmd{}, nil
	case dashboard.Refreshed, dashboard.Updated, views.PromptQueued:
		return vxfw.RedrawCmd{}, nil
	default:
		if !a.IsConnected() {
			return nil, nil
		}
		type handler interface {
			HandleEvent(vaxis.Event, vxfw.EventPhase) (vxfw.Command, error)
		}
		if h, ok := a.activeView().(handler); ok {
			return h.HandleEvent(ev, phase)
		}
	}
	return nil, nil
}
