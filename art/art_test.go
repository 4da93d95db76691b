package art

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// halves returns a w x h image, red on the left half and blue on the right.
func halves(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= w/2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func near(a, b colorful.Color) bool {
	return a.DistanceRgb(b) < 0.01
}

func TestFromImage(t *testing.T) {
	tile := FromImage(halves(40, 20), 2, 1)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	if !near(tile.At(0, 0), red) {
		t.Errorf("left pixel = %v, want red", tile.At(0, 0))
	}
	if !near(tile.At(1, 0), blue) {
		t.Errorf("right pixel = %v, want blue", tile.At(1, 0))
	}
}

func TestFromImageUpscale(t *testing.T) {
	tile := FromImage(halves(2, 1), 8, 4)
	if !near(tile.At(0, 3), colorful.Color{R: 1}) || !near(tile.At(7, 0), colorful.Color{B: 1}) {
		t.Fatal("upscaling should repeat source pixels")
	}
}

func TestTileBounds(t *testing.T) {
	tile := NewTile(2, 2)
	tile.Set(5, 5, colorful.Color{R: 1})
	if tile.At(5, 5) != (colorful.Color{}) {
		t.Fatal("out of range pixels should read as black")
	}
}

func TestDim(t *testing.T) {
	tile := NewTile(1, 1)
	tile.Set(0, 0, colorful.Color{R: 1, G: 1, B: 1})
	bg := colorful.Color{}
	if !near(tile.Dim(bg, 1).At(0, 0), tile.At(0, 0)) {
		t.Error("opacity 1 should keep the colour")
	}
	if !near(tile.Dim(bg, 0).At(0, 0), bg) {
		t.Error("opacity 0 should give the background")
	}
}

func TestPlaceholderHues(t *testing.T) {
	a := Placeholder(0, 8, 4, 4)
	b := Placeholder(4, 8, 4, 4)
	if near(a.At(0, 0), b.At(0, 0)) {
		t.Fatal("different pieces should get different colours")
	}
	if near(a.At(0, 0), a.At(0, 3)) {
		t.Fatal("placeholder should be a gradient")
	}
}

func TestLoadWithoutDir(t *testing.T) {
	g := Grid{Cols: 2, Rows: 1, W: 3, H: 2}
	set := Load("", []string{"1.jpg", "2.jpg"}, "original.jpg", g)
	if len(set.Pieces) != 2 || len(set.Missing) != 0 {
		t.Fatalf("pieces=%d missing=%v", len(set.Pieces), set.Missing)
	}
	// The composed reference shows piece i behind slot i.
	for i := range set.Pieces {
		slot := set.ReferenceSlot(i, g)
		if !near(slot.At(1, 1), set.Pieces[i].At(1, 1)) {
			t.Errorf("reference slot %d does not match piece %d", i, i)
		}
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "1.png"), halves(10, 10))
	writePNG(t, filepath.Join(dir, "original.png"), halves(20, 10))

	g := Grid{Cols: 2, Rows: 1, W: 2, H: 2}
	set := Load(dir, []string{"1.png", "2.png"}, "original.png", g)

	if len(set.Missing) != 1 || set.Missing[0] != "2.png" {
		t.Fatalf("missing = %v, want [2.png]", set.Missing)
	}
	if !near(set.Pieces[0].At(0, 0), colorful.Color{R: 1}) {
		t.Errorf("piece 0 not decoded: %v", set.Pieces[0].At(0, 0))
	}
	if set.Reference.W != 4 || set.Reference.H != 2 {
		t.Fatalf("reference size %dx%d, want 4x2", set.Reference.W, set.Reference.H)
	}
	if !near(set.ReferenceSlot(1, g).At(1, 0), colorful.Color{B: 1}) {
		t.Error("right half of the reference should be blue")
	}
}

func TestLoadTileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadTile(filepath.Join(dir, "nope.png"), 2, 2); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTile(bad, 2, 2); err == nil {
		t.Fatal("expected decode error")
	}
}
