package imtool

import (
	"fmt"
	"math"

	"github.com/wbrown/imtool/imageutil"
)

// Resize resamples img to width x height with bilinear interpolation.
// Output pixel (x, y) samples the source at x*(W-1)/(width-1),
// y*(H-1)/(height-1); a target dimension of 1 uses a scale of 0 so the
// single row or column samples the first source row or column. Channels
// are truncated, not rounded.
func Resize(img *imageutil.Image, width, height int) (*imageutil.Image, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: resize target %dx%d", ErrInvalidArgument, width, height)
	}
	if img.Width() < 1 || img.Height() < 1 {
		return nil, fmt.Errorf("%w: cannot resize empty %dx%d image",
			ErrInvalidArgument, img.Width(), img.Height())
	}

	scaleX := axisScale(img.Width(), width)
	scaleY := axisScale(img.Height(), height)

	out := imageutil.NewImage(width, height, img.MaxColor())
	for y := 0; y < height; y++ {
		srcY := float64(y) * scaleY
		for x := 0; x < width; x++ {
			srcX := float64(x) * scaleX
			out.SetRGB(x, y, bilinearSample(img, srcX, srcY))
		}
	}
	return out, nil
}

func axisScale(src, dst int) float64 {
	if dst == 1 {
		return 0
	}
	return float64(src-1) / float64(dst-1)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// bilinearSample weights the four pixels around (xcoord, ycoord).
func bilinearSample(img *imageutil.Image, xcoord, ycoord float64) imageutil.RGB {
	xl := clampInt(int(math.Floor(xcoord)), 0, img.Width()-1)
	xh := clampInt(int(math.Ceil(xcoord)), 0, img.Width()-1)
	yl := clampInt(int(math.Floor(ycoord)), 0, img.Height()-1)
	yh := clampInt(int(math.Ceil(ycoord)), 0, img.Height()-1)

	p1 := img.GetRGB(xl, yl)
	p2 := img.GetRGB(xh, yl)
	p3 := img.GetRGB(xl, yh)
	p4 := img.GetRGB(xh, yh)

	dx := xcoord - math.Floor(xcoord)
	dy := ycoord - math.Floor(ycoord)
	w1 := (1 - dx) * (1 - dy)
	w2 := dx * (1 - dy)
	w3 := (1 - dx) * dy
	w4 := dx * dy

	interpolate := func(v1, v2, v3, v4 uint16) uint16 {
		return uint16(float64(v1)*w1 + float64(v2)*w2 + float64(v3)*w3 + float64(v4)*w4)
	}
	return imageutil.RGB{
		R: interpolate(p1.R, p2.R, p3.R, p4.R),
		G: interpolate(p1.G, p2.G, p3.G, p4.G),
		B: interpolate(p1.B, p2.B, p3.B, p4.B),
	}
}
