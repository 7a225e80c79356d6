package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"time"
)

// Still is one recorded frame of an animation and how long it stays up.
type Still struct {
	Image image.Image
	Delay time.Duration
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeGIF writes stills as a single-play animated GIF. Delays are rounded
// to GIF's 10ms resolution with a floor of one unit.
func EncodeGIF(w io.Writer, stills []Still) error {
	if len(stills) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}
	anim := &gif.GIF{LoopCount: -1}
	for _, st := range stills {
		b := st.Image.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, st.Image, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, max(int(st.Delay.Round(10*time.Millisecond)/(10*time.Millisecond)), 1))
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
