package views

import (
	"sync"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// PromptQueue holds messages waiting to be acknowledged by the user. It is
// safe for concurrent use; Prompt is called from request goroutines.
type PromptQueue struct {
	mu        sync.Mutex
	messages  []string
	postEvent func(vaxis.Event)
}

// NewPromptQueue creates an empty queue. post may be nil.
func NewPromptQueue(post func(vaxis.Event)) *PromptQueue {
	return &PromptQueue{postEvent: post}
}

// SetPostEvent sets the function used to wake the UI when a message arrives.
func (q *PromptQueue) SetPostEvent(fn func(vaxis.Event)) {
	q.mu.Lock()
	q.postEvent = fn
	q.mu.Unlock()
}

// Prompt queues a message.
func (q *PromptQueue) Prompt(message string) {
	q.mu.Lock()
	q.messages = append(q.messages, message)
	post := q.postEvent
	q.mu.Unlock()
	if post != nil {
		post(PromptQueued{})
	}
}

// Current returns the message being shown.
func (q *PromptQueue) Current() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return "", false
	}
	return q.messages[0], true
}

// Pending reports whether any message is waiting.
func (q *PromptQueue) Pending() bool {
	_, ok := q.Current()
	return ok
}

// Dismiss drops the message being shown.
func (q *PromptQueue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) > 0 {
		q.messages = q.messages[1:]
	}
}

// Draw renders the current message in a box with an acknowledge hint.
func (q *PromptQueue) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	msg, ok := q.Current()
	if !ok {
		return vxfw.NewSurface(0, 0, q), nil
	}
	return drawBox(ctx, q, "", []boxLine{
		{text: msg},
		{},
		{text: "[Enter] OK", style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
}

type boxLine struct {
	text  string
	style vaxis.Style
}

// drawBox renders lines inside a single-line border sized to fit them,
// clamped to the available space.
func drawBox(ctx vxfw.DrawContext, owner vxfw.Widget, title string, lines []boxLine) (vxfw.Surface, error) {
	inner := len(ctx.Characters(title)) + 2
	for _, l := range lines {
		w := 0
		for _, ch := range ctx.Characters(l.text) {
			w += ch.Width
		}
		inner = max(inner, w)
	}
	width := min(inner+4, int(ctx.Max.Width))
	height := min(len(lines)+2, int(ctx.Max.Height))
	s := vxfw.NewSurface(uint16(width), uint16(height), owner)
	if width < 2 || height < 2 {
		return s, nil
	}

	put := func(col, row int, text string, style vaxis.Style, limit int) {
		for _, ch := range ctx.Characters(text) {
			if col+ch.Width > limit {
				return
			}
			s.WriteCell(uint16(col), uint16(row), vaxis.Cell{Character: ch, Style: style})
			col += ch.Width
		}
	}

	for col := 1; col < width-1; col++ {
		put(col, 0, "─", vaxis.Style{}, width)
		put(col, height-1, "─", vaxis.Style{}, width)
	}
	for row := 1; row < height-1; row++ {
		put(0, row, "│", vaxis.Style{}, width)
		put(width-1, row, "│", vaxis.Style{}, width)
	}
	put(0, 0, "┌", vaxis.Style{}, width)
	put(width-1, 0, "┐", vaxis.Style{}, width)
	put(0, height-1, "└", vaxis.Style{}, width)
	put(width-1, height-1, "┘", vaxis.Style{}, width)
	if title != "" {
		put(2, 0, " "+title+" ", vaxis.Style{Attribute: vaxis.AttrBold}, width-1)
	}

	for i, l := range lines {
		if i+1 >= height-1 {
			break
		}
		put(2, i+1, l.text, l.style, width-2)
	}
	return s, nil
}
