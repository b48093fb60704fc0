package imtool

import (
	"bufio"
	"fmt"

	"github.com/wbrown/imtool/imageutil"
)

// ImageInfo summarises a P6 or C6 file.
type ImageInfo struct {
	Format         string
	Width, Height  int
	MaxColor       int
	DistinctColors int
	MeanLuma       float64
}

// String renders the summary in the tool's report layout.
func (info ImageInfo) String() string {
	return fmt.Sprintf("Format: %s\nImage size: %dx%d\nMax level: %d\n"+
		"Distinct colors: %d\nMean luma: %.4f",
		info.Format, info.Width, info.Height, info.MaxColor,
		info.DistinctColors, info.MeanLuma)
}

// Info loads the image at path, detecting the P6 or C6 format from its
// magic (C6 optionally zstd framed), and reports its properties.
func Info(path string) (ImageInfo, error) {
	format, err := sniffFormat(path)
	if err != nil {
		return ImageInfo{}, err
	}

	var img *imageutil.Image
	if format == magicCPPM {
		img, err = LoadCPPM(path)
	} else {
		img, err = LoadPPM(path)
	}
	if err != nil {
		return ImageInfo{}, err
	}

	return ImageInfo{
		Format:         format,
		Width:          img.Width(),
		Height:         img.Height(),
		MaxColor:       img.MaxColor(),
		DistinctColors: BuildPalette(img).Len(),
		MeanLuma:       imageutil.MeanLuma(img),
	}, nil
}

// sniffFormat returns magicPPM or magicCPPM for the file at path.
func sniffFormat(path string) (string, error) {
	f, err := openInput(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	br, release, err := unwrapZstd(bufio.NewReader(f))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	defer release()

	head, err := br.Peek(2)
	if err != nil {
		return "", fmt.Errorf("%s: %w: missing magic", path, ErrFormat)
	}
	switch string(head) {
	case magicPPM, magicCPPM:
		return string(head), nil
	}
	return "", fmt.Errorf("%s: %w: unknown magic %q", path, ErrFormat, head)
}
