package views_test

import (
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/ticket-tui/dashboard"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

type staticSource struct {
	state dashboard.State
}

func (s *staticSource) Snapshot() dashboard.State {
	return s.state
}

// render flattens a surface and its children into one string per row.
func render(s vxfw.Surface) []string {
	grid := make([][]string, s.Size.Height)
	for r := range grid {
		grid[r] = make([]string, s.Size.Width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	paint(grid, s, 0, 0)
	rows := make([]string, len(grid))
	for r, cells := range grid {
		rows[r] = strings.Join(cells, "")
	}
	return rows
}

func paint(grid [][]string, s vxfw.Surface, row, col int) {
	if w := int(s.Size.Width); w > 0 {
		for i, cell := range s.Buffer {
			r, c := row+i/w, col+i%w
			if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
				continue
			}
			if g := cell.Character.Grapheme; g != "" {
				grid[r][c] = g
			}
		}
	}
	for _, child := range s.Children {
		paint(grid, child.Surface, row+child.Origin.Row, col+child.Origin.Col)
	}
}

// contains reports whether any rendered row contains text.
func contains(rows []string, text string) bool {
	for _, r := range rows {
		if strings.Contains(r, text) {
			return true
		}
	}
	return false
}
