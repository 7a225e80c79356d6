package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// layout fits a square canvas into a w x h cell screen, keeping the bottom
// row for the status line. Each cell holds two vertical pixels. It returns
// the canvas side in pixels and the top-left cell of the canvas.
func layout(w, h int) (side, ox, oy int) {
	rows := max(h-1, 0)
	side = min(w, rows*2)
	side -= side % 2
	ox = (w - side) / 2
	oy = (rows - side/2) / 2
	return side, ox, oy
}

func cellColor(c color.Color) tcell.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return tcell.ColorReset
	}
	// un-premultiply so translucent edges keep their hue
	return tcell.NewRGBColor(int32(r*0xff/a), int32(g*0xff/a), int32(b*0xff/a))
}

// blit draws img with upper half blocks: the foreground is the top pixel of
// a cell and the background the bottom one.
func blit(screen tcell.Screen, img image.Image, ox, oy int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := cellColor(img.At(x, y))
			bottom := tcell.ColorReset
			if y+1 < b.Max.Y {
				bottom = cellColor(img.At(x, y+1))
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(ox+x-b.Min.X, oy+(y-b.Min.Y)/2, '▀', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

type status struct {
	frame     int
	total     int
	lang      string
	target    string
	animating bool
	reduced   bool
	missing   int
}

func (s status) String() string {
	motion := "on"
	if s.reduced {
		motion = "reduced"
	}
	line := fmt.Sprintf(" frame %02d/%d  %s", s.frame, s.total, s.lang)
	if s.target != s.lang {
		line += "→" + s.target
	}
	if s.animating {
		line += "  ~"
	}
	line += "  motion " + motion
	if s.missing > 0 {
		line += fmt.Sprintf("  %d missing", s.missing)
	}
	return line + "   [l] language  [m] motion  [q] quit"
}
