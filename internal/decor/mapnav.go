// Package decor computes the decorative geometry of the diary theme: the
// winding map navigation, the wave dividers between sections and the
// floating doodles.
package decor

import (
	"math"
	"strconv"
	"strings"
)

// Section is a stop on the map navigation.
type Section struct {
	ID       string
	LabelKey string
	Icon     string
}

// Sections are the page sections in scroll order.
var Sections = []Section{
	{ID: "hero", LabelKey: "nav.home", Icon: "🏠"},
	{ID: "timeline", LabelKey: "nav.journey", Icon: "🗺️"},
	{ID: "skills", LabelKey: "nav.skills", Icon: "⚡"},
	{ID: "sneakpeek", LabelKey: "nav.peek", Icon: "👀"},
	{ID: "contact", LabelKey: "nav.contact", Icon: "📬"},
}

// Point is a position in map SVG coordinates.
type Point struct {
	X, Y float64
}

// Checkpoint is a section pin on the path.
type Checkpoint struct {
	Section
	Point
}

// MapNav lays out a path of quadratic Bézier segments that zigzags between
// two columns, one segment per pair of consecutive sections.
type MapNav struct {
	Sections      []Section
	PathHeight    float64
	TopPadding    float64
	BottomPadding float64
}

// DefaultMapNav returns the layout used on the home page.
func DefaultMapNav() MapNav {
	return MapNav{Sections: Sections, PathHeight: 280, TopPadding: 20, BottomPadding: 20}
}

// Height is the full SVG height.
func (m MapNav) Height() float64 {
	return m.PathHeight + m.TopPadding + m.BottomPadding
}

func (m MapNav) anchor(i int) Point {
	x := 40.0
	if i%2 == 1 {
		x = 60
	}
	return Point{X: x, Y: m.TopPadding + float64(i)/float64(len(m.Sections)-1)*m.PathHeight}
}

func (m MapNav) control(i int) Point {
	start, end := m.anchor(i), m.anchor(i+1)
	x := 80.0
	if i%2 == 1 {
		x = 20
	}
	return Point{X: x, Y: (start.Y + end.Y) / 2}
}

// Checkpoints returns the pin positions of every section.
func (m MapNav) Checkpoints() []Checkpoint {
	out := make([]Checkpoint, len(m.Sections))
	for i, s := range m.Sections {
		out[i] = Checkpoint{Section: s, Point: m.anchor(i)}
	}
	return out
}

// PathD is the SVG path data through all checkpoints.
func (m MapNav) PathD() string {
	if len(m.Sections) < 2 {
		return ""
	}
	var b strings.Builder
	start := m.anchor(0)
	b.WriteString("M " + num(start.X) + " " + num(start.Y))
	for i := 0; i < len(m.Sections)-1; i++ {
		c, end := m.control(i), m.anchor(i+1)
		b.WriteString(" Q " + num(c.X) + " " + num(c.Y) + " " + num(end.X) + " " + num(end.Y))
	}
	return b.String()
}

// Position is the point on the path at scroll progress p in [0,1]. Values
// outside the range are clamped.
func (m MapNav) Position(p float64) Point {
	if len(m.Sections) < 2 {
		return m.anchor(0)
	}
	p = math.Max(0, math.Min(1, p))
	segments := len(m.Sections) - 1
	sp := p * float64(segments)
	seg := min(int(math.Floor(sp)), segments-1)
	t := sp - float64(seg)

	p0, p1, p2 := m.anchor(seg), m.control(seg), m.anchor(seg+1)
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// Active is the index of the section whose pin the progress has passed last.
func (m MapNav) Active(p float64) int {
	if len(m.Sections) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return int(math.Round(p * float64(len(m.Sections)-1)))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
