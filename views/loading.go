package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
)

// drawLoadingState renders a "Loading..." message in the view.
func drawLoadingState(ctx vxfw.DrawContext, owner vxfw.Widget) (vxfw.Surface, error) {
	return drawMessage(ctx, owner, 0, "Loading...")
}

// drawMessage renders a dimmed one-line message at the given row of a
// full-size surface.
func drawMessage(ctx vxfw.DrawContext, owner vxfw.Widget, row int, text string) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, owner)
	if row >= int(ctx.Max.Height) {
		return s, nil
	}
	label := richtext.New([]vaxis.Segment{
		{Text: text, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, row, labelSurf)
	return s, nil
}

// drawHeading renders a bold one-line heading.
func drawHeading(ctx vxfw.DrawContext, segments ...vaxis.Segment) (vxfw.Surface, error) {
	if len(segments) > 0 {
		segments[0].Style.Attribute |= vaxis.AttrBold
	}
	return richtext.New(segments).Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
}
