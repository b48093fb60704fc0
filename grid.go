package imtool

import (
	"math"

	"github.com/wbrown/imtool/imageutil"
)

const (
	// GridSize is the per-axis coarsening factor of the color grid.
	GridSize = 8
	// GridRedMultiplier and GridGreenMultiplier combine the three cell
	// coordinates into one bucket key. They are collision free only while
	// cell coordinates stay below 100, i.e. for 8-bit images; at 16-bit
	// depth distant cells can share a key.
	GridRedMultiplier   = 10000
	GridGreenMultiplier = 100
)

// ColorGrid buckets colors into coarse cells of RGB space so that a
// nearest-color query only has to look at the 27 cells around its target.
// Within a bucket colors keep their insertion order.
type ColorGrid struct {
	size    int
	buckets map[int][]imageutil.RGB
}

// BuildColorGrid inserts every color into the bucket of its cell. Colors
// are expected to be distinct; duplicates are stored as given.
func BuildColorGrid(colors []imageutil.RGB, gridSize int) *ColorGrid {
	g := &ColorGrid{
		size:    gridSize,
		buckets: make(map[int][]imageutil.RGB),
	}
	for _, c := range colors {
		key := g.Key(c)
		g.buckets[key] = append(g.buckets[key], c)
	}
	return g
}

// Key returns the bucket key of c:
// (r/size)*GridRedMultiplier + (g/size)*GridGreenMultiplier + b/size.
func (g *ColorGrid) Key(c imageutil.RGB) int {
	return (int(c.R)/g.size)*GridRedMultiplier +
		(int(c.G)/g.size)*GridGreenMultiplier +
		int(c.B)/g.size
}

// Len returns the number of non-empty buckets.
func (g *ColorGrid) Len() int {
	return len(g.buckets)
}

// Nearest returns the color closest to target by squared Euclidean
// distance among the target's cell and its 26 neighbors. found is false
// when all 27 cells are empty.
func (g *ColorGrid) Nearest(target imageutil.RGB) (nearest imageutil.RGB, found bool) {
	return g.nearest(target, false)
}

// NearestOther is Nearest with target itself excluded from the
// candidates. This is the query cutfreq uses, since every color being
// removed is also present in the grid.
func (g *ColorGrid) NearestOther(target imageutil.RGB) (nearest imageutil.RGB, found bool) {
	return g.nearest(target, true)
}

// nearest visits neighbor buckets with dr, dg, db each running -1..1 in
// that nesting order; the first minimum found wins ties.
func (g *ColorGrid) nearest(target imageutil.RGB, skipSelf bool) (imageutil.RGB, bool) {
	key := g.Key(target)
	var best imageutil.RGB
	bestDist := int64(math.MaxInt64)
	found := false

	for dr := -1; dr <= 1; dr++ {
		for dg := -1; dg <= 1; dg++ {
			for db := -1; db <= 1; db++ {
				neighbor := key + dr*GridRedMultiplier + dg*GridGreenMultiplier + db
				for _, c := range g.buckets[neighbor] {
					if skipSelf && c == target {
						continue
					}
					if d := target.DistanceSq(c); d < bestDist {
						best, bestDist, found = c, d, true
					}
				}
			}
		}
	}
	return best, found
}
