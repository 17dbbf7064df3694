package views

import "github.com/deevus/ticket-tui/dashboard"

// StateSource supplies the dashboard state that views draw from.
// *dashboard.Controller satisfies it.
type StateSource interface {
	Snapshot() dashboard.State
}

// PromptQueued is posted when a message is added to a PromptQueue. It is sent
// from background goroutines via PostEvent so the UI redraws.
type PromptQueued struct{}
