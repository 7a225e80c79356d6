package render

import (
	"image"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/Zachkp/diary/internal/frames"
)

// Limits for surfaces built on request: the logical side, the device pixel
// ratio, and each side of the backing bitmap.
const (
	MaxSide  = 1024
	MaxRatio = 4.0
)

// Surface is a fixed logical-size drawing target whose backing bitmap is
// scaled by the device pixel ratio, so frames stay sharp on dense displays.
type Surface struct {
	mu      sync.Mutex
	src     frames.Source
	scaler  xdraw.Scaler
	width   int
	height  int
	ratio   float64
	backing *image.RGBA
	current frames.Index
	painted bool
}

// NewSurface creates a surface of width x height logical pixels.
// A ratio <= 0 is treated as 1.
func NewSurface(src frames.Source, width, height int, ratio float64) *Surface {
	s := &Surface{src: src, scaler: xdraw.CatmullRom}
	s.resize(width, height, ratio)
	return s
}

// Paint draws frame i. When the frame has no bitmap the call is a no-op and
// the previous paint stays visible.
func (s *Surface) Paint(i frames.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawLocked(i) {
		s.current = i
		s.painted = true
	}
}

// Resize recomputes the backing resolution and redraws the current frame.
func (s *Surface) Resize(width, height int, ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize(width, height, ratio)
	if s.painted {
		s.drawLocked(s.current)
	}
}

// Current returns the last successfully painted frame.
func (s *Surface) Current() (frames.Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.painted
}

// BackingSize is the pixel size of the backing bitmap.
func (s *Surface) BackingSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.backing.Bounds()
	return b.Dx(), b.Dy()
}

// Ratio is the current device pixel ratio.
func (s *Surface) Ratio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

// Snapshot copies the backing bitmap.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.backing.Bounds())
	copy(out.Pix, s.backing.Pix)
	return out
}

func (s *Surface) resize(width, height int, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	s.width, s.height, s.ratio = max(width, 1), max(height, 1), ratio
	w := max(int(math.Round(float64(s.width)*ratio)), 1)
	h := max(int(math.Round(float64(s.height)*ratio)), 1)
	s.backing = image.NewRGBA(image.Rect(0, 0, w, h))
}

// drawLocked clears the backing and scales frame i over the whole logical
// area, which after the ratio transform is the whole backing bitmap.
func (s *Surface) drawLocked(i frames.Index) bool {
	img, ok := s.src.At(i)
	if !ok {
		return false
	}
	dst := s.backing.Bounds()
	draw.Draw(s.backing, dst, image.Transparent, image.Point{}, draw.Src)
	s.scaler.Scale(s.backing, dst, img, img.Bounds(), xdraw.Over, nil)
	return true
}
