package tracker

import "context"

// MockService is a ServiceAPI whose behaviour is supplied per method.
// A nil func returns zero values and no error.
type MockService struct {
	ListEventsFunc      func(ctx context.Context) ([]Event, error)
	ListPriceDropsFunc  func(ctx context.Context, hours int) ([]PriceDrop, error)
	CheckURLFunc        func(ctx context.Context, eventURL string) (*CheckResult, error)
	EventTicketsFunc    func(ctx context.Context, name string) ([]Ticket, error)
	PriceHistoryFunc    func(ctx context.Context, name, section string) ([]HistoryEntry, error)
	StartMonitoringFunc func(ctx context.Context, name string) (string, error)
	MonitorStatusFunc   func(ctx context.Context, name string) (*MonitorStatus, error)
}

var _ ServiceAPI = (*MockService)(nil)

func (m *MockService) ListEvents(ctx context.Context) ([]Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx)
	}
	return nil, nil
}

func (m *MockService) ListPriceDrops(ctx context.Context, hours int) ([]PriceDrop, error) {
	if m.ListPriceDropsFunc != nil {
		return m.ListPriceDropsFunc(ctx, hours)
	}
	return nil, nil
}

func (m *MockService) CheckURL(ctx context.Context, eventURL string) (*CheckResult, error) {
	if m.CheckURLFunc != nil {
		return m.CheckURLFunc(ctx, eventURL)
	}
	return &CheckResult{}, nil
}

func (m *MockService) EventTickets(ctx context.Context, name string) ([]Ticket, error) {
	if m.EventTicketsFunc != nil {
		return m.EventTicketsFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockService) PriceHistory(ctx context.Context, name, section string) ([]HistoryEntry, error) {
	if m.PriceHistoryFunc != nil {
		return m.PriceHistoryFunc(ctx, name, section)
	}
	return nil, nil
}

func (m *MockService) StartMonitoring(ctx context.Context, name string) (string, error) {
	if m.StartMonitoringFunc != nil {
		return m.StartMonitoringFunc(ctx, name)
	}
	return "", nil
}

func (m *MockService) MonitorStatus(ctx context.Context, name string) (*MonitorStatus, error) {
	if m.MonitorStatusFunc != nil {
		return m.MonitorStatusFunc(ctx, name)
	}
	return &MonitorStatus{}, nil
}
