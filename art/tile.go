// Package art turns the puzzle's image fragments into small colour grids the
// terminal can draw. Each tile cell is two pixels tall (upper and lower half block).
package art

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Tile is a W x H grid of colours. H counts pixel rows, two per terminal row.
type Tile struct {
	W, H int
	px   []colorful.Color
}

// NewTile returns a black tile.
func NewTile(w, h int) *Tile {
	return &Tile{W: w, H: h, px: make([]colorful.Color, w*h)}
}

// At returns the colour at x, y. Out-of-range positions are black.
func (t *Tile) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return colorful.Color{}
	}
	return t.px[y*t.W+x]
}

// Set sets the colour at x, y.
func (t *Tile) Set(x, y int, c colorful.Color) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	t.px[y*t.W+x] = c
}

// Sub copies the w x h rectangle whose top left corner is x, y.
func (t *Tile) Sub(x, y, w, h int) *Tile {
	sub := NewTile(w, h)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			sub.Set(sx, sy, t.At(x+sx, y+sy))
		}
	}
	return sub
}

// Dim blends the tile toward bg. opacity 1 keeps the tile, 0 gives plain bg.
func (t *Tile) Dim(bg colorful.Color, opacity float64) *Tile {
	out := NewTile(t.W, t.H)
	for i, c := range t.px {
		out.px[i] = bg.BlendLab(c, opacity).Clamped()
	}
	return out
}

// FromImage downsamples img to w x h by averaging the source pixels that
// fall into each target pixel.
func FromImage(img image.Image, w, h int) *Tile {
	t := NewTile(w, h)
	b := img.Bounds()
	if b.Empty() {
		return t
	}
	for ty := 0; ty < h; ty++ {
		y0 := b.Min.Y + ty*b.Dy()/h
		y1 := b.Min.Y + (ty+1)*b.Dy()/h
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for tx := 0; tx < w; tx++ {
			x0 := b.Min.X + tx*b.Dx()/w
			x1 := b.Min.X + (tx+1)*b.Dx()/w
			if x1 <= x0 {
				x1 = x0 + 1
			}
			t.Set(tx, ty, average(img, x0, y0, x1, y1))
		}
	}
	return t
}

func average(img image.Image, x0, y0, x1, y1 int) colorful.Color {
	var r, g, b, n uint64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr)
			g += uint64(cg)
			b += uint64(cb)
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(color.RGBA64{
		R: uint16(r / n),
		G: uint16(g / n),
		B: uint16(b / n),
		A: 0xffff,
	})
	return c
}

// Placeholder draws a vertical gradient whose hue identifies the piece.
func Placeholder(order, count, w, h int) *Tile {
	if count < 1 {
		count = 1
	}
	hue := 360 * float64(order) / float64(count)
	top := colorful.Hsv(hue, 0.45, 0.85)
	bottom := colorful.Hsv(hue, 0.65, 0.45)
	t := NewTile(w, h)
	for y := 0; y < h; y++ {
		f := 0.0
		if h > 1 {
			f = float64(y) / float64(h-1)
		}
		c := top.BlendLab(bottom, f).Clamped()
		for x := 0; x < w; x++ {
			t.Set(x, y, c)
		}
	}
	return t
}
