package decor

import (
	"fmt"
	"math/rand/v2"
)

// WavePaths are the SVG paths of the three blob divider variants, drawn in a
// 1000x100 viewBox.
var WavePaths = map[int]string{
	1: "M0,60 C150,120 350,0 500,60 C650,120 850,0 1000,60 L1000,100 L0,100 Z",
	2: "M0,80 C200,20 300,100 500,50 C700,0 800,80 1000,40 L1000,100 L0,100 Z",
	3: "M0,50 Q250,100 500,50 T1000,50 L1000,100 L0,100 Z",
}

// Divider describes one wave between two page sections.
type Divider struct {
	Top     bool
	Fill    string
	Path    string
	Variant int
}

// NewDivider returns the divider for a variant; unknown variants fall back to 1.
func NewDivider(variant int, top bool, fill string) Divider {
	path, ok := WavePaths[variant]
	if !ok {
		variant, path = 1, WavePaths[1]
	}
	return Divider{Top: top, Fill: fill, Path: path, Variant: variant}
}

var doodleSets = map[string][]string{
	"code":  {"{ }", "< />", "//", "( )", "[ ]", "&&", "||", "===", "=>", "..."},
	"tech":  {"💻", "⚡", "🚀", "⚙️", "🔧", "📱", "☁️", "🌐", "🔌", "💡"},
	"fun":   {"✨", "⭐", "🎯", "🎨", "📝", "✏️", "📌", "🎪", "🎭", "🎬"},
	"mixed": {"{ }", "💻", "✨", "< />", "⚡", "⭐", "( )", "🚀", "📝", "⚙️"},
}

var doodleCounts = map[string]int{"sparse": 5, "normal": 8, "dense": 12}

// Doodle is a floating background glyph, positioned in CSS units.
type Doodle struct {
	Content  string
	Left     string
	Top      string
	Size     string
	Delay    float64
	Duration float64
	Rotation float64
	Mono     bool
}

// Doodles scatters glyphs of a variant (code, tech, fun, mixed) across a
// section. Density is sparse, normal or dense. The layout is fixed per seed
// so a page renders the same doodles on every request.
func Doodles(variant, density string, seed uint64) []Doodle {
	items, ok := doodleSets[variant]
	if !ok {
		variant, items = "mixed", doodleSets["mixed"]
	}
	count, ok := doodleCounts[density]
	if !ok {
		count = doodleCounts["normal"]
	}

	r := rand.New(rand.NewPCG(seed, uint64(count)))
	out := make([]Doodle, count)
	for i := range out {
		x := 5 + float64(i)*(90/float64(count)) + (r.Float64()*10 - 5)
		out[i] = Doodle{
			Content:  items[i%len(items)],
			Left:     fmt.Sprintf("%.1f%%", x),
			Top:      fmt.Sprintf("%.1f%%", 10+r.Float64()*80),
			Size:     fmt.Sprintf("%.2frem", 1+r.Float64()*1.5),
			Delay:    r.Float64() * 2,
			Duration: 4 + r.Float64()*4,
			Rotation: r.Float64()*30 - 15,
			Mono:     variant == "code",
		}
	}
	return out
}
