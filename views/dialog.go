package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// DialogInput is the editable text behind the check dialog.
// *dashboard.Controller satisfies it.
type DialogInput interface {
	DialogInput() string
	SetDialogInput(string)
}

// CheckDialog is the modal text input for checking an event page URL.
type CheckDialog struct {
	input DialogInput
}

// NewCheckDialog creates a CheckDialog editing input.
func NewCheckDialog(input DialogInput) *CheckDialog {
	return &CheckDialog{input: input}
}

// HandleKey applies an editing key to the input and reports whether it was
// consumed. Submit and cancel keys are left to the caller.
func (d *CheckDialog) HandleKey(key vaxis.Key) bool {
	switch {
	case key.Matches(vaxis.KeyBackspace):
		text := []rune(d.input.DialogInput())
		if len(text) > 0 {
			d.input.SetDialogInput(string(text[:len(text)-1]))
		}
		return true
	case key.Matches('u', vaxis.ModCtrl):
		d.input.SetDialogInput("")
		return true
	case key.Text != "":
		d.input.SetDialogInput(d.input.DialogInput() + key.Text)
		return true
	}
	return false
}

// Draw renders the dialog box. Long input is scrolled to keep its end visible.
func (d *CheckDialog) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	width := min(int(ctx.Max.Width), 72)
	field := []rune(d.input.DialogInput())
	visible := max(width-4-len("URL: ")-1, 1)
	if len(field) > visible {
		field = field[len(field)-visible:]
	}
	return drawBox(ctx.WithMax(vxfw.Size{Width: uint16(width), Height: ctx.Max.Height}), d, "Check Event Prices", []boxLine{
		{text: "Paste an event page URL to check its current prices."},
		{},
		{text: "URL: " + string(field) + "█"},
		{},
		{text: "[Enter] Check  [Esc] Cancel", style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
}
