package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/simukka/starship-formation/game"
)

// cells maps playfield pixels onto a terminal grid.
type cells struct {
	cols, rows int
	sx, sy     float64 // pixels per cell
}

func newCells(cols, rows int, width, height float64) cells {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cells{
		cols: cols,
		rows: rows,
		sx:   width / float64(cols),
		sy:   height / float64(rows),
	}
}

// span returns the cells a box covers, end exclusive and clipped to the
// grid. Boxes smaller than a cell still cover the cell holding their center.
func (c cells) span(r game.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / c.sx))
	y0 = int(math.Floor(r.Y / c.sy))
	x1 = int(math.Ceil(r.Right() / c.sx))
	y1 = int(math.Ceil(r.Bottom() / c.sy))
	if x1 <= x0 || y1 <= y0 {
		center := r.Center()
		x0, y0 = c.cell(center.X, center.Y)
		x1, y1 = x0+1, y0+1
	}
	return clamp(x0, 0, c.cols), clamp(y0, 0, c.rows), clamp(x1, 0, c.cols), clamp(y1, 0, c.rows)
}

// cell returns the cell holding a point.
func (c cells) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.sx)), int(math.Floor(y / c.sy))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type painter struct {
	screen tcell.Screen
	styles map[string]tcell.Color
}

func newPainter(screen tcell.Screen) *painter {
	return &painter{screen: screen, styles: make(map[string]tcell.Color)}
}

func (p *painter) color(hex string) tcell.Color {
	if c, ok := p.styles[hex]; ok {
		return c
	}
	rgb, err := game.ParseHexColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	c := tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	p.styles[hex] = c
	return c
}

// draw paints a scene scaled to the whole terminal.
func (p *painter) draw(s game.Scene) {
	cols, rows := p.screen.Size()
	grid := newCells(cols, rows, s.Width, s.Height)
	bg := p.color(s.Background)
	base := tcell.StyleDefault.Background(bg)

	p.screen.SetStyle(base)
	p.screen.Clear()

	for _, sh := range s.Shapes {
		x0, y0, x1, y1 := grid.span(sh.Rect)
		style := base.Foreground(p.color(sh.Color))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				p.screen.SetContent(x, y, '█', nil, style)
			}
		}
		if sh.Glyph != "" {
			c := sh.Center()
			x, y := grid.cell(c.X, c.Y)
			glyph := tcell.StyleDefault.Foreground(bg).Background(p.color(sh.Color))
			p.screen.SetContent(x, y, []rune(sh.Glyph)[0], nil, glyph)
		}
	}

	for _, l := range s.Labels {
		x, y := grid.cell(l.X, l.Y)
		text := []rune(l.Text)
		switch l.Align {
		case game.AlignCenter:
			x -= len(text) / 2
		case game.AlignRight:
			x -= len(text)
		}
		style := base.Foreground(p.color(l.Color))
		for i, r := range text {
			p.screen.SetContent(x+i, y, r, nil, style)
		}
	}
	p.screen.Show()
}
