// Package imageutil provides the pixel container used by imtool together
// with conversions to and from the standard library image types.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

const (
	// MaxColor8 is the largest max color value stored with 1-byte channels.
	MaxColor8 = 255
	// MaxColor16 is the largest max color value supported at all.
	MaxColor16 = 65535
)

// RGB represents a color as an integer triple. Channels hold values in
// [0, max color] of the image they belong to, up to 16 bits each.
type RGB struct {
	R, G, B uint16
}

// Compare orders colors lexicographically by red, then green, then blue.
// It returns -1, 0 or +1.
func (c RGB) Compare(other RGB) int {
	switch {
	case c.R != other.R:
		return cmpUint16(c.R, other.R)
	case c.G != other.G:
		return cmpUint16(c.G, other.G)
	default:
		return cmpUint16(c.B, other.B)
	}
}

func cmpUint16(a, b uint16) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// DistanceSq returns the squared Euclidean distance between two colors in
// RGB space.
func (c RGB) DistanceSq(other RGB) int64 {
	dr := int64(c.R) - int64(other.R)
	dg := int64(c.G) - int64(other.G)
	db := int64(c.B) - int64(other.B)
	return dr*dr + dg*dg + db*db
}

// String formats the color as (r,g,b).
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// ToColor converts c, interpreted on a 0..maxColor scale, to a 16-bit
// standard library color.
func (c RGB) ToColor(maxColor int) color.RGBA64 {
	return color.RGBA64{
		R: scaleTo16(c.R, maxColor),
		G: scaleTo16(c.G, maxColor),
		B: scaleTo16(c.B, maxColor),
		A: 0xffff,
	}
}

// RGBFromColor converts a color.Color to an RGB on a 0..maxColor scale,
// rounding to the nearest level.
func RGBFromColor(c color.Color, maxColor int) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: scaleFrom16(r, maxColor),
		G: scaleFrom16(g, maxColor),
		B: scaleFrom16(b, maxColor),
	}
}

func scaleTo16(v uint16, maxColor int) uint16 {
	if maxColor <= 0 {
		return 0
	}
	return uint16((uint64(v)*MaxColor16 + uint64(maxColor)/2) / uint64(maxColor))
}

func scaleFrom16(v uint32, maxColor int) uint16 {
	if maxColor <= 0 {
		return 0
	}
	return uint16((uint64(v)*uint64(maxColor) + MaxColor16/2) / MaxColor16)
}

// Image is a width x height raster of RGB triples in row-major order with
// a per-channel maximum value. Every channel is expected to be <= MaxColor.
type Image struct {
	width, height int
	maxColor      int
	Pix           []RGB
}

// NewImage creates a zeroed image with the specified dimensions and max
// color value.
func NewImage(width, height, maxColor int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:    width,
		height:   height,
		maxColor: maxColor,
		Pix:      make([]RGB, width*height),
	}
}

// NewImageFromPixels wraps pix as a width x height image. The length of pix
// must equal width*height.
func NewImageFromPixels(width, height, maxColor int, pix []RGB) (*Image, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("imageutil: %d pixels do not fill %dx%d",
			len(pix), width, height)
	}
	return &Image{width: width, height: height, maxColor: maxColor, Pix: pix}, nil
}

// Width returns the image width.
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height.
func (img *Image) Height() int {
	return img.height
}

// MaxColor returns the maximum channel value.
func (img *Image) MaxColor() int {
	return img.maxColor
}

// SetMaxColor changes the maximum channel value without touching pixels.
func (img *Image) SetMaxColor(maxColor int) {
	img.maxColor = maxColor
}

// Wide reports whether channels need two bytes when serialised.
func (img *Image) Wide() bool {
	return img.maxColor > MaxColor8
}

// GetRGB returns the RGB value at (x, y).
func (img *Image) GetRGB(x, y int) RGB {
	return img.Pix[y*img.width+x]
}

// SetRGB sets the RGB value at (x, y).
func (img *Image) SetRGB(x, y int, c RGB) {
	img.Pix[y*img.width+x] = c
}

// Clone creates a deep copy of the image.
func (img *Image) Clone() *Image {
	clone := NewImage(img.width, img.height, img.maxColor)
	copy(clone.Pix, img.Pix)
	return clone
}

// Equal reports whether both images have the same geometry, max color and
// pixels.
func (img *Image) Equal(other *Image) bool {
	if img.width != other.width || img.height != other.height ||
		img.maxColor != other.maxColor || len(img.Pix) != len(other.Pix) {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Validate checks the length and channel range invariants.
func (img *Image) Validate() error {
	if len(img.Pix) != img.width*img.height {
		return fmt.Errorf("imageutil: pixel count %d != %dx%d",
			len(img.Pix), img.width, img.height)
	}
	if img.maxColor < 0 || img.maxColor > MaxColor16 {
		return fmt.Errorf("imageutil: max color %d out of range", img.maxColor)
	}
	m := uint16(img.maxColor)
	for i, p := range img.Pix {
		if p.R > m || p.G > m || p.B > m {
			return fmt.Errorf("imageutil: pixel %d %v exceeds max color %d",
				i, p, img.maxColor)
		}
	}
	return nil
}

// ToRGBA64 converts the image to a standard library 16-bit image.
func (img *Image) ToRGBA64() *image.RGBA64 {
	out := image.NewRGBA64(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			out.SetRGBA64(x, y, img.GetRGB(x, y).ToColor(img.maxColor))
		}
	}
	return out
}

// ImageFromImage converts any image.Image to an Image with the given max
// color value.
func ImageFromImage(src image.Image, maxColor int) *Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy(), maxColor)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGB(x-bounds.Min.X, y-bounds.Min.Y,
				RGBFromColor(src.At(x, y), maxColor))
		}
	}
	return img
}
