package imtool

import (
	"errors"
	"testing"

	"github.com/wbrown/imtool/imageutil"
)

func TestMaxLevelScalesDown(t *testing.T) {
	img := imageOf(t, 1, 1, 255, imageutil.RGB{R: 128, G: 255, B: 0})
	if err := MaxLevel(img, 100); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	expected := imageutil.RGB{R: 50, G: 100, B: 0}
	if img.Pix[0] != expected {
		t.Errorf("Expected %v, got %v", expected, img.Pix[0])
	}
	if img.MaxColor() != 100 {
		t.Errorf("Expected max color 100, got %d", img.MaxColor())
	}
}

func TestMaxLevelWidenAndBack(t *testing.T) {
	img := imageutil.CreateNoiseImage(8, 8, 255, 21)
	orig := img.Clone()

	if err := MaxLevel(img, 65535); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	for i, p := range img.Pix {
		o := orig.Pix[i]
		if p.R != o.R*257 || p.G != o.G*257 || p.B != o.B*257 {
			t.Fatalf("Pixel %d: expected %v*257, got %v", i, o, p)
		}
	}

	if err := MaxLevel(img, 255); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	if !img.Equal(orig) {
		t.Error("Widening then narrowing should restore the image")
	}
}

func TestMaxLevelRoundTripWithinOne(t *testing.T) {
	img := imageutil.CreateNoiseImage(8, 8, 1000, 4)
	orig := img.Clone()
	if err := MaxLevel(img, 4000); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	if err := MaxLevel(img, 1000); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	if d := imageutil.CalculateMaxDiff(img, orig); d > 1 {
		t.Errorf("Expected max difference <= 1, got %d", d)
	}
}

func TestMaxLevelZero(t *testing.T) {
	img := imageutil.CreateNoiseImage(3, 3, 255, 2)
	if err := MaxLevel(img, 0); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	if !img.Equal(imageutil.NewImage(3, 3, 0)) {
		t.Error("Expected every channel to be 0")
	}
	// Scaling up from 0 keeps zeros.
	if err := MaxLevel(img, 255); err != nil {
		t.Fatalf("MaxLevel failed: %v", err)
	}
	if img.Pix[0] != (imageutil.RGB{}) || img.MaxColor() != 255 {
		t.Errorf("Expected black at 255, got %v at %d", img.Pix[0], img.MaxColor())
	}
}

func TestMaxLevelInvalid(t *testing.T) {
	img := imageutil.CreateSolidImage(1, 1, 255, red)
	for _, m := range []int{-1, 65536} {
		if err := MaxLevel(img, m); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("maxlevel %d: expected ErrInvalidArgument, got %v", m, err)
		}
	}
	if img.Pix[0] != red || img.MaxColor() != 255 {
		t.Error("Rejected maxlevel should leave the image untouched")
	}
}

func TestMaxLevelRejectsChannelAboveMax(t *testing.T) {
	img := imageutil.NewImage(1, 1, 1)
	img.Pix[0] = white
	if err := MaxLevel(img, 65535); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
	if img.Pix[0] != white || img.MaxColor() != 1 {
		t.Error("Rejected image should be left untouched")
	}
}
