package imtool

import (
	"math"
	"slices"

	"github.com/wbrown/imtool/imageutil"
)

// ColorNode represents a node in a KD-tree that stores RGB colors. Each node
// contains a color, a left child, a right child, and the axis along which the
// colors are split.
type ColorNode struct {
	Color       imageutil.RGB
	Left, Right *ColorNode
	SplitAxis   int
}

// buildKDTree constructs a KD-tree from a list of RGB colors and returns
// its root. colors is reordered in place.
func buildKDTree(colors []imageutil.RGB) *ColorNode {
	if len(colors) == 0 {
		return nil
	}

	// Choose splitting axis based on the dimension with the largest variance
	axis := chooseSplitAxis(colors)

	// Sort colors along the chosen axis, full color order breaks ties so
	// the tree shape is deterministic
	slices.SortFunc(colors, func(a, b imageutil.RGB) int {
		ca, cb := getColorComponent(a, axis), getColorComponent(b, axis)
		if ca != cb {
			return int(ca) - int(cb)
		}
		return a.Compare(b)
	})

	median := len(colors) / 2
	return &ColorNode{
		Color:     colors[median],
		Left:      buildKDTree(colors[:median]),
		Right:     buildKDTree(colors[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns the index of the channel with the largest
// variance across colors.
func chooseSplitAxis(colors []imageutil.RGB) int {
	var varR, varG, varB float64
	var meanR, meanG, meanB float64

	for _, c := range colors {
		meanR += float64(c.R)
		meanG += float64(c.G)
		meanB += float64(c.B)
	}
	n := float64(len(colors))
	meanR /= n
	meanG /= n
	meanB /= n

	for _, c := range colors {
		varR += math.Pow(float64(c.R)-meanR, 2)
		varG += math.Pow(float64(c.G)-meanG, 2)
		varB += math.Pow(float64(c.B)-meanB, 2)
	}

	if varR >= varG && varR >= varB {
		return 0 // R axis
	} else if varG >= varB {
		return 1 // G axis
	}
	return 2 // B axis
}

// getColorComponent returns the channel of color selected by axis.
func getColorComponent(color imageutil.RGB, axis int) uint16 {
	switch axis {
	case 0:
		return color.R
	case 1:
		return color.G
	default:
		return color.B
	}
}

// nearestNeighbor finds the color in the tree closest to target. best and
// bestDist carry the best match found so far; pass math.MaxInt64 to start.
func (node *ColorNode) nearestNeighbor(
	target, best imageutil.RGB, bestDist int64) (imageutil.RGB, int64) {
	if node == nil {
		return best, bestDist
	}

	if dist := node.Color.DistanceSq(target); dist < bestDist {
		best = node.Color
		bestDist = dist
	}

	axisDistance := int64(getColorComponent(target, node.SplitAxis)) -
		int64(getColorComponent(node.Color, node.SplitAxis))
	next, other := node.Right, node.Left
	if axisDistance < 0 {
		next, other = node.Left, node.Right
	}

	best, bestDist = next.nearestNeighbor(target, best, bestDist)

	// Check if we need to search the other branch
	if axisDistance*axisDistance < bestDist {
		best, bestDist = other.nearestNeighbor(target, best, bestDist)
	}

	return best, bestDist
}

// Nearest returns the tree color closest to target, or false for an
// empty tree.
func (node *ColorNode) Nearest(target imageutil.RGB) (imageutil.RGB, bool) {
	if node == nil {
		return imageutil.RGB{}, false
	}
	best, _ := node.nearestNeighbor(target, node.Color, math.MaxInt64)
	return best, true
}
