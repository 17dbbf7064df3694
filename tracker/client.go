package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ServiceAPI is the set of backend operations the dashboard consumes.
type ServiceAPI interface {
	ListEvents(ctx context.Context) ([]Event, error)
	ListPriceDrops(ctx context.Context, hours int) ([]PriceDrop, error)
	CheckURL(ctx context.Context, eventURL string) (*CheckResult, error)
	EventTickets(ctx context.Context, name string) ([]Ticket, error)
	PriceHistory(ctx context.Context, name, section string) ([]HistoryEntry, error)
	StartMonitoring(ctx context.Context, name string) (string, error)
	MonitorStatus(ctx context.Context, name string) (*MonitorStatus, error)
}

// ClientParams holds configuration for creating a Client.
type ClientParams struct {
	// BaseURL is the API root, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient is used for all requests. Defaults to a client with no timeout.
	HTTPClient *http.Client
}

// Client talks to the ticket tracker backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ServiceAPI = (*Client)(nil)

// NewClient creates a Client for the API rooted at p.BaseURL.
func NewClient(p ClientParams) (*Client, error) {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", p.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", p.BaseURL)
	}
	hc := p.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    hc,
	}, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEvents returns every event the backend is tracking.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListPriceDrops returns the drops detected within the trailing window.
func (c *Client) ListPriceDrops(ctx context.Context, hours int) ([]PriceDrop, error) {
	q := url.Values{"hours": {strconv.Itoa(hours)}}
	var drops []PriceDrop
	if err := c.do(ctx, http.MethodGet, "/price-drops", q, nil, &drops); err != nil {
		return nil, err
	}
	return drops, nil
}

// CheckURL asks the backend to scrape current prices for an event page.
func (c *Client) CheckURL(ctx context.Context, eventURL string) (*CheckResult, error) {
	body := struct {
		URL string `json:"url"`
	}{URL: eventURL}
	var result CheckResult
	if err := c.do(ctx, http.MethodPost, "/axs/check", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EventTickets returns current ticket prices for a named event.
func (c *Client) EventTickets(ctx context.Context, name string) ([]Ticket, error) {
	var tickets []Ticket
	p := "/events/" + url.PathEscape(name) + "/tickets"
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// PriceHistory returns stored price observations for a named event, newest
// first. An empty section returns every section.
func (c *Client) PriceHistory(ctx context.Context, name, section string) ([]HistoryEntry, error) {
	var q url.Values
	if section != "" {
		q = url.Values{"section": {section}}
	}
	var history []HistoryEntry
	p := "/events/" + url.PathEscape(name) + "/history"
	if err := c.do(ctx, http.MethodGet, p, q, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// StartMonitoring asks the backend to watch a named event for drops and
// returns the backend's confirmation message.
func (c *Client) StartMonitoring(ctx context.Context, name string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	p := "/monitor/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPost, p, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// MonitorStatus returns the latest page checks recorded for a named event.
func (c *Client) MonitorStatus(ctx context.Context, name string) (*MonitorStatus, error) {
	var status MonitorStatus
	p := "/axs/monitor/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do issues one request. escapedPath must already be path-escaped.
func (c *Client) do(ctx context.Context, method, escapedPath string, query url.Values, in, out any) error {
	target := c.baseURL + escapedPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encoding request: %w", method, escapedPath, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, escapedPath, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, escapedPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, escapedPath, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, escapedPath, err)
	}
	return nil
}
