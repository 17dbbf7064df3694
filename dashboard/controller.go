// Package dashboard holds the dashboard controller: the latest fetched data,
// the chart model, the check dialog state and the auto-refresh timer.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"github.com/deevus/ticket-tui/tracker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// AutoRefreshInterval is the default auto-refresh period.
	AutoRefreshInterval = 30 * time.Second
	// DropWindowHours is the default trailing window for price drops.
	DropWindowHours = 24

	// lowestHistorySize bounds the lowest-price history kept for the sparkline.
	lowestHistorySize = 60
)

// Auto-refresh action labels.
const (
	LabelEnableAutoRefresh  = "Enable Auto-Refresh"
	LabelDisableAutoRefresh = "Disable Auto-Refresh"
)

// User-facing prompts.
const (
	PromptEmptyURL    = "Please enter a URL"
	PromptCheckFailed = "Error checking event. Please try again."
	PromptUnavailable = "Failed to check event. Make sure the API is running."
)

// ErrEmptyURL is returned by SubmitEventCheck when no URL was entered.
var ErrEmptyURL = errors.New("event url is empty")

// Prompter shows a blocking message to the user.
type Prompter interface {
	Prompt(message string)
}

// Refreshed is posted after every refresh attempt.
type Refreshed struct {
	Err error
}

// Updated is posted when a check, history or monitoring request changes state.
type Updated struct{}

// Params holds configuration for creating a Controller.
type Params struct {
	Service         tracker.ServiceAPI
	Prompter        Prompter
	PostEvent       func(vaxis.Event)
	Interval        time.Duration
	DropWindowHours int

	// NewTicker and Now default to the real clock; tests replace them.
	NewTicker func(time.Duration) Ticker
	Now       func() time.Time
}

// Summary is the numeric header of the dashboard.
type Summary struct {
	LastCheck      time.Time
	ActiveEvents   int
	PriceDrops     int
	LowestPrice    float64
	HasLowestPrice bool
}

// Dialog is the state of the check-event dialog.
type Dialog struct {
	Open  bool
	Input string
}

// State is a point-in-time copy of everything the views render.
type State struct {
	Loaded  bool
	Summary Summary
	Events  []tracker.Event
	Drops   []tracker.PriceDrop

	// Tickets is the result currently shown in the price list, nil before
	// the first check.
	Tickets *tracker.CheckResult
	// LastCheck is the most recent URL check result.
	LastCheck  *tracker.CheckResult
	Chart      Chart
	ChartTitle string

	Dialog        Dialog
	AutoRefresh   bool
	LowestHistory []float64

	// DropWindowHours is the trailing window the drop list covers.
	DropWindowHours int
}

// AutoRefreshLabel is the text of the auto-refresh action.
func (s State) AutoRefreshLabel() string {
	if s.AutoRefresh {
		return LabelDisableAutoRefresh
	}
	return LabelEnableAutoRefresh
}

// Controller polls the tracker API and owns the dashboard state.
type Controller struct {
	svc        tracker.ServiceAPI
	prompter   Prompter
	postEvent  func(vaxis.Event)
	interval   time.Duration
	dropWindow int
	newTicker  func(time.Duration) Ticker
	now        func() time.Time

	flight singleflight.Group
	// life bounds shared refreshes; Close cancels it.
	life       context.Context
	cancelLife context.CancelFunc

	mu          sync.Mutex
	state       State
	stopRefresh func()
}

// New creates a Controller backed by the given params.
func New(p Params) *Controller {
	c := &Controller{
		svc:        p.Service,
		prompter:   p.Prompter,
		postEvent:  p.PostEvent,
		interval:   p.Interval,
		dropWindow: p.DropWindowHours,
		newTicker:  p.NewTicker,
		now:        p.Now,
	}
	if c.interval <= 0 {
		c.interval = AutoRefreshInterval
	}
	if c.dropWindow <= 0 {
		c.dropWindow = DropWindowHours
	}
	if c.newTicker == nil {
		c.newTicker = NewTimeTicker
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.state.DropWindowHours = c.dropWindow
	c.life, c.cancelLife = context.WithCancel(context.Background())
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.LowestHistory = slices.Clone(c.state.LowestHistory)
	return s
}

// Refresh fetches events and recent price drops and replaces the cached
// lists. On failure the previous state is kept and the error is logged.
// A call made while a refresh is in flight waits for that refresh. The shared
// fetch is not tied to any one caller: cancelling ctx only stops this call
// from waiting, and only Close aborts the fetch itself.
func (c *Controller) Refresh(ctx context.Context) error {
	ch := c.flight.DoChan("refresh", func() (any, error) {
		return nil, c.refresh(c.life)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	var events []tracker.Event
	var drops []tracker.PriceDrop

	g.Go(func() error {
		list, err := c.svc.ListEvents(gctx)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		events = list
		return nil
	})

	g.Go(func() error {
		list, err := c.svc.ListPriceDrops(gctx, c.dropWindow)
		if err != nil {
			return fmt.Errorf("price drops: %w", err)
		}
		drops = list
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("error refreshing dashboard: %v", err)
		c.post(Refreshed{Err: err})
		return err
	}

	c.mu.Lock()
	c.state.Loaded = true
	c.state.Summary.LastCheck = c.now()
	c.state.Summary.ActiveEvents = len(events)
	c.state.Summary.PriceDrops = len(drops)
	c.state.Events = events
	c.state.Drops = drops
	if lowest, ok := LowestPrice(drops); ok {
		c.state.Summary.LowestPrice = lowest
		c.state.Summary.HasLowestPrice = true
		c.state.LowestHistory = append(c.state.LowestHistory, lowest)
		if n := len(c.state.LowestHistory); n > lowestHistorySize {
			c.state.LowestHistory = slices.Clone(c.state.LowestHistory[n-lowestHistorySize:])
		}
	}
	c.mu.Unlock()

	c.post(Refreshed{})
	return nil
}

// LowestPrice returns the minimum new price across drops.
func LowestPrice(drops []tracker.PriceDrop) (float64, bool) {
	if len(drops) == 0 {
		return 0, false
	}
	lowest := drops[0].NewPrice
	for _, d := range drops[1:] {
		lowest = min(lowest, d.NewPrice)
	}
	return lowest, true
}

// OpenCheckDialog shows the check-event dialog.
func (c *Controller) OpenCheckDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Dialog.Open = true
}

// CloseCheckDialog hides the check-event dialog and clears its input.
func (c *Controller) CloseCheckDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Dialog = Dialog{}
}

// DialogInput returns the text typed into the check-event dialog.
func (c *Controller) DialogInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Dialog.Input
}

// SetDialogInput replaces the text of the check-event dialog.
func (c *Controller) SetDialogInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Dialog.Input = s
}

// SubmitEventCheck asks the backend to check prices for an event page. An
// empty URL is refused with a prompt and no request is made.
func (c *Controller) SubmitEventCheck(ctx context.Context, eventURL string) error {
	eventURL = strings.TrimSpace(eventURL)
	if eventURL == "" {
		c.prompt(PromptEmptyURL)
		return ErrEmptyURL
	}

	result, err := c.svc.CheckURL(ctx, eventURL)
	if err != nil {
		log.Printf("error checking %s: %v", eventURL, err)
		c.promptFailure(err)
		return err
	}

	c.mu.Lock()
	c.state.LastCheck = result
	c.showTicketsLocked(result, checkTitle(result))
	c.state.Dialog = Dialog{}
	c.mu.Unlock()

	c.post(Updated{})
	if n := len(result.Tickets); n > 0 {
		c.prompt(fmt.Sprintf("Found %d ticket options! Monitoring started.", n))
	}
	return nil
}

// CheckEventPrices fetches current tickets for a monitored event and shows
// them in the price list. Failures are logged only.
func (c *Controller) CheckEventPrices(ctx context.Context, name string) error {
	tickets, err := c.svc.EventTickets(ctx, name)
	if err != nil {
		log.Printf("error checking event prices for %s: %v", name, err)
		return err
	}

	result := &tracker.CheckResult{
		EventInfo: &tracker.EventInfo{Name: name},
		Tickets:   tickets,
	}

	c.mu.Lock()
	c.showTicketsLocked(result, name)
	c.mu.Unlock()

	c.post(Updated{})
	return nil
}

// ShowHistory charts the stored price history of a monitored event, oldest
// observation first. The ticket list is left as is.
func (c *Controller) ShowHistory(ctx context.Context, name string) error {
	history, err := c.svc.PriceHistory(ctx, name, "")
	if err != nil {
		log.Printf("error loading price history for %s: %v", name, err)
		return err
	}
	if len(history) == 0 {
		c.prompt(fmt.Sprintf("No price history for %s yet.", name))
		return nil
	}

	c.mu.Lock()
	c.state.Chart = BuildChart(historyTickets(history))
	c.state.ChartTitle = name + " history"
	c.mu.Unlock()

	c.post(Updated{})
	return nil
}

// ShowRecentChecks lists and charts the latest page checks recorded for a
// monitored event, oldest check first.
func (c *Controller) ShowRecentChecks(ctx context.Context, name string) error {
	status, err := c.svc.MonitorStatus(ctx, name)
	if err != nil {
		log.Printf("error loading recent checks for %s: %v", name, err)
		return err
	}
	if len(status.RecentChecks) == 0 {
		c.prompt(fmt.Sprintf("No recent checks for %s yet.", name))
		return nil
	}

	result := &tracker.CheckResult{
		EventInfo: &tracker.EventInfo{Name: name},
		Tickets:   recentTickets(status.RecentChecks),
	}

	c.mu.Lock()
	c.showTicketsLocked(result, name+" recent checks")
	c.mu.Unlock()

	c.post(Updated{})
	return nil
}

// StartMonitoring asks the backend to watch a monitored event for drops.
func (c *Controller) StartMonitoring(ctx context.Context, name string) error {
	msg, err := c.svc.StartMonitoring(ctx, name)
	if err != nil {
		log.Printf("error starting monitoring for %s: %v", name, err)
		c.promptFailure(err)
		return err
	}
	if msg == "" {
		msg = fmt.Sprintf("Started monitoring %s for price drops", name)
	}
	c.prompt(msg)
	return nil
}

// showTicketsLocked swaps the displayed tickets and rebuilds the chart from
// them. An empty result leaves the chart untouched. c.mu must be held.
func (c *Controller) showTicketsLocked(result *tracker.CheckResult, title string) {
	c.state.Tickets = result
	if len(result.Tickets) == 0 {
		return
	}
	c.state.Chart = BuildChart(result.Tickets)
	c.state.ChartTitle = title
}

func checkTitle(result *tracker.CheckResult) string {
	if result.EventInfo != nil && result.EventInfo.Name != "" {
		return result.EventInfo.Name
	}
	return "Current check"
}

// AutoRefreshEnabled reports whether the auto-refresh timer is running.
func (c *Controller) AutoRefreshEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopRefresh != nil
}

// ToggleAutoRefresh starts or stops periodic refreshing and reports whether
// it is now enabled. Enabling also refreshes once immediately.
func (c *Controller) ToggleAutoRefresh(ctx context.Context) bool {
	c.mu.Lock()
	if c.stopRefresh != nil {
		c.stopRefresh()
		c.stopRefresh = nil
		c.state.AutoRefresh = false
		c.mu.Unlock()
		return false
	}

	tctx, cancel := context.WithCancel(ctx)
	ticker := c.newTicker(c.interval)
	c.stopRefresh = func() {
		cancel()
		ticker.Stop()
	}
	c.state.AutoRefresh = true
	c.mu.Unlock()

	go c.runAutoRefresh(tctx, ticker)
	go func() { _ = c.Refresh(tctx) }()
	return true
}

func (c *Controller) runAutoRefresh(ctx context.Context, ticker Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			_ = c.Refresh(ctx)
		}
	}
}

// Close stops the auto-refresh timer if it is running and aborts any
// refresh in flight.
func (c *Controller) Close() {
	c.cancelLife()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopRefresh != nil {
		c.stopRefresh()
		c.stopRefresh = nil
		c.state.AutoRefresh = false
	}
}

func (c *Controller) promptFailure(err error) {
	if tracker.IsRejected(err) {
		c.prompt(PromptCheckFailed)
		return
	}
	c.prompt(PromptUnavailable)
}

func (c *Controller) prompt(msg string) {
	if c.prompter == nil {
		log.Printf("prompt: %s", msg)
		return
	}
	c.prompter.Prompt(msg)
}

func (c *Controller) post(ev vaxis.Event) {
	if c.postEvent != nil {
		c.postEvent(ev)
	}
}
