package imtool

import (
	"slices"

	"github.com/wbrown/imtool/imageutil"
)

// Palette is a deduplicated color table. Colors holds the entries in
// index order; when built from an image that order is ascending by
// (r, g, b), so the encoding does not depend on pixel scan order.
type Palette struct {
	Colors []imageutil.RGB
	table  map[imageutil.RGB]uint32
}

// BuildPalette collects the distinct colors of img and assigns indices
// 0..N-1 in ascending lexicographic (r, g, b) order. An empty image
// yields an empty palette.
func BuildPalette(img *imageutil.Image) *Palette {
	seen := make(map[imageutil.RGB]struct{})
	colors := make([]imageutil.RGB, 0)
	for _, c := range img.Pix {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			colors = append(colors, c)
		}
	}
	slices.SortFunc(colors, func(a, b imageutil.RGB) int {
		return a.Compare(b)
	})
	return NewPalette(colors)
}

// NewPalette builds a palette whose indices follow the order of colors.
// If a color repeats, the first index wins.
func NewPalette(colors []imageutil.RGB) *Palette {
	table := make(map[imageutil.RGB]uint32, len(colors))
	for idx, c := range colors {
		if _, ok := table[c]; !ok {
			table[c] = uint32(idx)
		}
	}
	return &Palette{Colors: colors, table: table}
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Index returns the palette slot of c.
func (p *Palette) Index(c imageutil.RGB) (uint32, bool) {
	idx, ok := p.table[c]
	return idx, ok
}

// IndexWidth returns the bytes used per pixel index: 1 for palettes of up
// to 255 entries, 2 for up to 65535, 4 beyond that.
func (p *Palette) IndexWidth() int {
	return indexWidth(p.Len())
}

func indexWidth(size int) int {
	switch {
	case size <= 255:
		return 1
	case size <= 65535:
		return 2
	default:
		return 4
	}
}
