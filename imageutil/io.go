package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// LoadImage loads a raster image from the specified path and converts it
// to an Image with the given max color value.
// Supports PNG, JPEG, GIF, and TIFF formats.
func LoadImage(path string, maxColor int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return ImageFromImage(img, maxColor), nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif, tif/tiff).
func SaveImage(img *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := encodeByExt(f, img, path); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeByExt(f *os.File, img *Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return png.Encode(f, img.ToRGBA64())
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img.ToRGBA64(), &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(f, img.ToRGBA64(), nil)
	case ".tif", ".tiff":
		return tiff.Encode(f, img.ToRGBA64(),
			&tiff.Options{Compression: tiff.Deflate})
	default:
		// Default to PNG
		return png.Encode(f, img.ToRGBA64())
	}
}

// SupportedExt reports whether path has an extension SaveImage recognises
// explicitly.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff":
		return true
	}
	return false
}
