package imageutil

// Luma returns the BT.601 luminance of c normalised to [0, 1] for an
// image with the given max color value.
func Luma(c RGB, maxColor int) float64 {
	if maxColor <= 0 {
		return 0
	}
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return y / float64(maxColor)
}

// MeanLuma returns the average normalised luminance of img, or 0 for an
// empty image.
func MeanLuma(img *Image) float64 {
	if len(img.Pix) == 0 {
		return 0
	}
	var sum float64
	for _, p := range img.Pix {
		sum += Luma(p, img.maxColor)
	}
	return sum / float64(len(img.Pix))
}
