package art

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// Set holds one tile per piece plus the reference image cut to board size.
type Set struct {
	Pieces    []*Tile
	Reference *Tile    // cols*w x rows*h; slot i covers the cell at (i%cols, i/cols)
	Missing   []string // files that could not be loaded
}

// Grid describes how tiles are laid out on a board.
type Grid struct {
	Cols, Rows int
	W, H       int // tile size in pixels
}

// LoadTile decodes the image at path and downsamples it to w x h.
func LoadTile(path string, w, h int) (*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img, w, h), nil
}

// Load reads each named fragment and the reference image from dir.
// Fragments that cannot be read get a placeholder; a missing reference is
// assembled from the fragment tiles in solved order. An empty dir loads nothing.
func Load(dir string, names []string, reference string, g Grid) *Set {
	set := &Set{Pieces: make([]*Tile, len(names))}
	for i, name := range names {
		if dir != "" {
			path := filepath.Join(dir, name)
			if t, err := LoadTile(path, g.W, g.H); err == nil {
				set.Pieces[i] = t
				continue
			}
			set.Missing = append(set.Missing, name)
		}
		set.Pieces[i] = Placeholder(i, len(names), g.W, g.H)
	}

	if dir != "" && reference != "" {
		if t, err := LoadTile(filepath.Join(dir, reference), g.Cols*g.W, g.Rows*g.H); err == nil {
			set.Reference = t
			return set
		}
		set.Missing = append(set.Missing, reference)
	}
	set.Reference = compose(set.Pieces, g)
	return set
}

// ReferenceSlot returns the part of the reference image behind solved slot i.
func (s *Set) ReferenceSlot(i int, g Grid) *Tile {
	if g.Cols < 1 {
		return NewTile(g.W, g.H)
	}
	return s.Reference.Sub((i%g.Cols)*g.W, (i/g.Cols)*g.H, g.W, g.H)
}

func compose(pieces []*Tile, g Grid) *Tile {
	ref := NewTile(g.Cols*g.W, g.Rows*g.H)
	if g.Cols < 1 {
		return ref
	}
	for i, p := range pieces {
		ox, oy := (i%g.Cols)*g.W, (i/g.Cols)*g.H
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				ref.Set(ox+x, oy+y, p.At(x, y))
			}
		}
	}
	return ref
}
