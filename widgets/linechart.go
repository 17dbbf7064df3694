package widgets

import (
	"fmt"
	"math"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

const chartPoint = '●'

// ChartSeries is one plotted line.
type ChartSeries struct {
	Label  string
	Values []float64
	Color  vaxis.Color
}

// LineChart plots one or more series against shared x-axis labels.
//
//	Floor ● 101 ●
//	$250 │ ●   ●
//	     │   ●
//	 $80 │ ●   ●
//	       Check 1  Check 2
type LineChart struct {
	Title   string
	Labels  []string
	Series  []ChartSeries
	Height  int                 // rows including title, legend and axis (default 12)
	YFormat func(float64) string // y-axis label format (default "%.0f")
}

// HSLColor converts a hue in degrees and saturation/lightness in [0,1] to an
// RGB colour.
func HSLColor(h int, s, l float64) vaxis.Color {
	hue := float64(((h % 360) + 360) % 360)
	c := (1 - math.Abs(2*l-1)) * s
	hp := hue / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}

	m := l - c/2
	to8 := func(v float64) uint8 {
		return uint8(math.Round(min(max(v+m, 0), 1) * 255))
	}
	return vaxis.RGBColor(to8(r), to8(g), to8(b))
}

func (lc *LineChart) bounds() (lo, hi float64, ok bool) {
	for _, s := range lc.Series {
		for _, v := range s.Values {
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, ok
}

// Draw renders the title, a legend row, the plot area with a y-axis gutter,
// and x-axis labels that are skipped when they would overlap.
func (lc *LineChart) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	height := lc.Height
	if height <= 0 {
		height = 12
	}
	h := min(uint16(height), ctx.Max.Height)
	s := vxfw.NewSurface(ctx.Max.Width, h, lc)
	width := int(ctx.Max.Width)

	put := func(col, row int, text string, style vaxis.Style) int {
		for _, ch := range ctx.Characters(text) {
			if col < 0 || col+ch.Width > width || row < 0 || row >= int(h) {
				break
			}
			s.WriteCell(uint16(col), uint16(row), vaxis.Cell{Character: ch, Style: style})
			col += ch.Width
		}
		return col
	}

	row := 0
	if lc.Title != "" {
		put(0, row, lc.Title, vaxis.Style{Attribute: vaxis.AttrBold})
		row++
	}

	lo, hi, ok := lc.bounds()
	if !ok {
		put(0, row, "No chart data", vaxis.Style{Attribute: vaxis.AttrDim})
		return s, nil
	}

	col := 0
	for _, series := range lc.Series {
		col = put(col, row, series.Label+" ", vaxis.Style{})
		col = put(col, row, string(chartPoint)+"  ", vaxis.Style{Foreground: series.Color})
	}
	row++

	plotTop := row
	plotH := int(h) - plotTop - 1
	if plotH < 2 {
		return s, nil
	}

	format := lc.YFormat
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}
	hiLabel, loLabel := format(hi), format(lo)
	gutter := max(len(hiLabel), len(loLabel))
	put(gutter-len(hiLabel), plotTop, hiLabel, vaxis.Style{Attribute: vaxis.AttrDim})
	put(gutter-len(loLabel), plotTop+plotH-1, loLabel, vaxis.Style{Attribute: vaxis.AttrDim})
	for r := plotTop; r < plotTop+plotH; r++ {
		put(gutter, r, "│", vaxis.Style{Attribute: vaxis.AttrDim})
	}

	plotLeft := gutter + 2
	plotW := width - plotLeft
	if plotW < 1 {
		return s, nil
	}

	points := len(lc.Labels)
	for _, series := range lc.Series {
		points = max(points, len(series.Values))
	}
	xAt := func(i int) int {
		if points <= 1 {
			return plotLeft
		}
		return plotLeft + i*(plotW-1)/(points-1)
	}
	yAt := func(v float64) int {
		if hi == lo {
			return plotTop + (plotH-1)/2
		}
		frac := (v - lo) / (hi - lo)
		return plotTop + (plotH - 1) - int(math.Round(frac*float64(plotH-1)))
	}

	for _, series := range lc.Series {
		for i, v := range series.Values {
			put(xAt(i), yAt(v), string(chartPoint), vaxis.Style{Foreground: series.Color})
		}
	}

	axisRow := plotTop + plotH
	next := plotLeft
	for i, label := range lc.Labels {
		lw := 0
		for _, ch := range ctx.Characters(label) {
			lw += ch.Width
		}
		x := min(xAt(i), width-lw)
		if x < next {
			continue
		}
		end := put(x, axisRow, label, vaxis.Style{Attribute: vaxis.AttrDim})
		next = end + 1
	}

	return s, nil
}
