package widgets

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// BarGauge is a horizontal bar gauge widget.
//
//	AVL  [████████░░░░░░░░░░░░]  42.5%  17/40 seats
type BarGauge struct {
	Label    string  // 4-char left column, e.g. "AVL"
	Value    float64 // 0.0–100.0
	Suffix   string  // text after %, e.g. "17/40 seats"
	BarWidth int     // character width of the [████░░░░] portion (excluding brackets)

	// Palette picks the fill colour for a percentage. Defaults to SupplyPalette.
	Palette func(pct float64) vaxis.Color
}

const (
	barFilled = '█' // U+2588
	barEmpty  = '░' // U+2591
)

// SupplyPalette colours high values as good: red below 15%, yellow below 40%, else green.
func SupplyPalette(pct float64) vaxis.Color {
	switch {
	case pct < 15:
		return vaxis.IndexColor(1)
	case pct < 40:
		return vaxis.IndexColor(3)
	default:
		return vaxis.IndexColor(2)
	}
}

// Draw renders the bar gauge as a single row.
func (bg *BarGauge) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, bg)

	col := uint16(0)
	write := func(text string, style vaxis.Style) {
		for _, ch := range ctx.Characters(text) {
			if col >= ctx.Max.Width {
				return
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	// Label (left-padded to 4 chars)
	write(fmt.Sprintf("%-4s ", bg.Label), vaxis.Style{Attribute: vaxis.AttrBold})
	// Opening bracket
	write("[", vaxis.Style{})

	// Bar fill
	v := min(max(bg.Value, 0), 100)
	filled := int(v / 100 * float64(bg.BarWidth))
	palette := bg.Palette
	if palette == nil {
		palette = SupplyPalette
	}
	color := palette(v)

	for i := 0; i < bg.BarWidth; i++ {
		if i < filled {
			write(string(barFilled), vaxis.Style{Foreground: color})
		} else {
			write(string(barEmpty), vaxis.Style{Foreground: vaxis.IndexColor(8)})
		}
	}

	// Closing bracket + percentage
	write(fmt.Sprintf("] %5.1f%%", v), vaxis.Style{})

	// Suffix
	if bg.Suffix != "" {
		write("  "+bg.Suffix, vaxis.Style{Attribute: vaxis.AttrDim})
	}

	return s, nil
}
