package imtool

import (
	"fmt"

	"github.com/wbrown/imtool/imageutil"
)

// MaxLevel rescales every channel of img in place from its current max
// color to newMax: v -> floor(v * newMax / oldMax). The product is taken
// in 64-bit integers so 16-bit by 16-bit scaling is exact. Images with a
// channel above their max color are rejected.
func MaxLevel(img *imageutil.Image, newMax int) error {
	if newMax < 0 || newMax > imageutil.MaxColor16 {
		return fmt.Errorf("%w: maxlevel %d, must be in [0, %d]",
			ErrInvalidArgument, newMax, imageutil.MaxColor16)
	}
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	oldMax := uint64(img.MaxColor())
	scale := func(v uint16) uint16 {
		if oldMax == 0 {
			return 0
		}
		return uint16(uint64(v) * uint64(newMax) / oldMax)
	}
	for i, p := range img.Pix {
		img.Pix[i] = imageutil.RGB{R: scale(p.R), G: scale(p.G), B: scale(p.B)}
	}
	img.SetMaxColor(newMax)
	return nil
}
