package imtool

import (
	"fmt"
	"log"
	"slices"

	"github.com/wbrown/imtool/imageutil"
)

// CutfreqOptions tunes how replacement colors are found. The zero value
// gives the reference behavior.
type CutfreqOptions struct {
	// RetainedOnly builds the color grid from colors that survive the cut
	// instead of every color in the image.
	RetainedOnly bool
	// ExactFallback searches a KD-tree of surviving colors when the 27
	// grid cells around a removed color hold no candidate.
	ExactFallback bool
}

// ColorCount pairs a color with its number of occurrences.
type ColorCount struct {
	Color imageutil.RGB
	Count int
}

// CountColors builds the frequency table of img. Keys iterate in order of
// first occurrence.
func CountColors(img *imageutil.Image) *OrderedMap[imageutil.RGB, int] {
	freq := NewOrderedMap[imageutil.RGB, int]()
	for _, c := range img.Pix {
		freq.Update(c, func(n int) int { return n + 1 })
	}
	return freq
}

// LeastFrequentColors ranks colors by ascending count and returns the
// first min(n, distinct) of them. Among equal counts the color with the
// larger (b, g, r) tuple ranks first.
func LeastFrequentColors(freq *OrderedMap[imageutil.RGB, int], n int) []imageutil.RGB {
	ranked := make([]ColorCount, 0, freq.Len())
	freq.Iterate(func(c imageutil.RGB, count int) {
		ranked = append(ranked, ColorCount{Color: c, Count: count})
	})
	slices.SortFunc(ranked, compareRemovable)

	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	colors := make([]imageutil.RGB, n)
	for i := range colors {
		colors[i] = ranked[i].Color
	}
	return colors
}

func compareRemovable(a, b ColorCount) int {
	if a.Count != b.Count {
		return a.Count - b.Count
	}
	if a.Color.B != b.Color.B {
		return int(b.Color.B) - int(a.Color.B)
	}
	if a.Color.G != b.Color.G {
		return int(b.Color.G) - int(a.Color.G)
	}
	return int(b.Color.R) - int(a.Color.R)
}

// Replacements maps each color to remove to the color that takes its
// place. Colors without a candidate are absent.
type Replacements map[imageutil.RGB]imageutil.RGB

// Cutfreq removes the n least frequent colors of img in place, replacing
// each with its nearest neighbor found through the color grid. It returns
// the replacement map that was applied.
func Cutfreq(img *imageutil.Image, n int, opts CutfreqOptions) (Replacements, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cutfreq count %d, must be >= 1", ErrInvalidArgument, n)
	}

	freq := CountColors(img)
	remove := LeastFrequentColors(freq, n)
	removing := make(map[imageutil.RGB]bool, len(remove))
	affected := 0
	for _, c := range remove {
		removing[c] = true
		count, _ := freq.Get(c)
		affected += count
	}

	var candidates, retained []imageutil.RGB
	freq.Iterate(func(c imageutil.RGB, _ int) {
		if !removing[c] {
			retained = append(retained, c)
		}
	})
	if opts.RetainedOnly {
		candidates = retained
	} else {
		candidates = freq.Keys()
	}
	grid := BuildColorGrid(candidates, GridSize)

	var tree *ColorNode
	if opts.ExactFallback {
		tree = buildKDTree(slices.Clone(retained))
	}

	replace := make(Replacements, len(remove))
	misses := 0
	for _, c := range remove {
		nearest, ok := grid.NearestOther(c)
		if !ok && tree != nil {
			nearest, ok = tree.Nearest(c)
		}
		if !ok {
			misses++
			continue
		}
		replace[c] = nearest
	}

	ApplyReplacements(img, replace)
	log.Printf("cutfreq: %d distinct colors, removing %d covering %d pixels, %d without a neighbor",
		freq.Len(), len(remove), affected, misses)
	return replace, nil
}

// ApplyReplacements overwrites every pixel whose color is a key of
// replace with the mapped color. Each pixel is looked up once, so chains
// are not followed.
func ApplyReplacements(img *imageutil.Image, replace Replacements) {
	if len(replace) == 0 {
		return
	}
	for i, c := range img.Pix {
		if to, ok := replace[c]; ok {
			img.Pix[i] = to
		}
	}
}
