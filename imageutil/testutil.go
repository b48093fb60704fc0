package imageutil

import "math"

// CreateGradientImage creates a horizontal gray gradient test image.
func CreateGradientImage(width, height, maxColor int) *Image {
	img := NewImage(width, height, maxColor)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint16(0)
			if width > 1 {
				v = uint16(maxColor * x / (width - 1))
			}
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize, maxColor int) *Image {
	img := NewImage(width, height, maxColor)
	white := uint16(maxColor)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: white, G: white, B: white})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height, maxColor int, c RGB) *Image {
	img := NewImage(width, height, maxColor)
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

// CreateColorBarsImage creates an 8-bit color bars test pattern.
func CreateColorBarsImage(width, height int) *Image {
	img := NewImage(width, height, MaxColor8)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := width / len(colors)
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := x / barWidth
			if colorIdx >= len(colors) {
				colorIdx = len(colors) - 1
			}
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateNoiseImage fills an image with a deterministic pseudo-random
// pattern (xorshift) so tests get many distinct colors.
func CreateNoiseImage(width, height, maxColor int, seed uint32) *Image {
	img := NewImage(width, height, maxColor)
	state := seed | 1
	next := func() uint16 {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return uint16(state % uint32(maxColor+1))
	}
	for i := range img.Pix {
		img.Pix[i] = RGB{R: next(), G: next(), B: next()}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two images.
func CalculateMSE(img1, img2 *Image) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}
	if len(img1.Pix) == 0 {
		return 0
	}

	var sumSq float64
	count := float64(len(img1.Pix) * 3) // 3 channels
	for i := range img1.Pix {
		c1, c2 := img1.Pix[i], img2.Pix[i]
		dr := float64(c1.R) - float64(c2.R)
		dg := float64(c1.G) - float64(c2.G)
		db := float64(c1.B) - float64(c2.B)
		sumSq += dr*dr + dg*dg + db*db
	}

	return sumSq / count
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images of the same size.
func CalculateMaxDiff(img1, img2 *Image) int {
	maxDiff := 0
	for i := range img1.Pix {
		c1, c2 := img1.Pix[i], img2.Pix[i]
		for _, d := range []int{
			int(c1.R) - int(c2.R),
			int(c1.G) - int(c2.G),
			int(c1.B) - int(c2.B),
		} {
			if d < 0 {
				d = -d
			}
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}
