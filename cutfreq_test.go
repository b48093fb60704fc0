package imtool

import (
	"errors"
	"slices"
	"testing"

	"github.com/wbrown/imtool/imageutil"
)

var (
	grayA = imageutil.RGB{R: 100, G: 100, B: 100}
	grayB = imageutil.RGB{R: 102, G: 100, B: 100}
	light = imageutil.RGB{R: 250, G: 250, B: 250}
)

func TestCountColorsFirstOccurrenceOrder(t *testing.T) {
	img := imageOf(t, 4, 1, 255, green, red, green, blue)
	freq := CountColors(img)

	keys := freq.Keys()
	expected := []imageutil.RGB{green, red, blue}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(keys))
	}
	for i, c := range expected {
		if keys[i] != c {
			t.Errorf("Expected %v at %d, got %v", c, i, keys[i])
		}
	}
	if n, _ := freq.Get(green); n != 2 {
		t.Errorf("Expected green count 2, got %d", n)
	}
}

func TestLeastFrequentColorsTieBreak(t *testing.T) {
	img := imageOf(t, 2, 2, 255, red, red, green, blue)
	freq := CountColors(img)

	got := LeastFrequentColors(freq, 1)
	if len(got) != 1 || got[0] != blue {
		t.Errorf("Expected [%v], got %v", blue, got)
	}

	got = LeastFrequentColors(freq, 10)
	expected := []imageutil.RGB{blue, green, red}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d colors, got %d", len(expected), len(got))
	}
	for i, c := range expected {
		if got[i] != c {
			t.Errorf("Expected %v at %d, got %v", c, i, got[i])
		}
	}
}

func TestCutfreqReplacesWithNeighbor(t *testing.T) {
	img := imageOf(t, 3, 2, 255, grayA, grayA, grayA, grayB, light, light)

	replace, err := Cutfreq(img, 1, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if to, ok := replace[grayB]; !ok || to != grayA {
		t.Errorf("Expected %v -> %v, got %v (found=%v)", grayB, grayA, to, ok)
	}
	for i, c := range img.Pix {
		if c == grayB {
			t.Errorf("Pixel %d still holds removed color %v", i, c)
		}
	}
	if img.Pix[3] != grayA {
		t.Errorf("Expected pixel 3 to be %v, got %v", grayA, img.Pix[3])
	}
}

func TestCutfreqIsolatedColorUnchanged(t *testing.T) {
	img := imageOf(t, 2, 2, 255, red, red, green, blue)
	before := img.Clone()

	replace, err := Cutfreq(img, 1, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if len(replace) != 0 {
		t.Errorf("Expected no replacements, got %v", replace)
	}
	if !img.Equal(before) {
		t.Error("Image should be unchanged when no neighbor exists")
	}
}

func TestCutfreqExactFallback(t *testing.T) {
	img := imageOf(t, 2, 2, 255, red, red, green, blue)

	replace, err := Cutfreq(img, 1, CutfreqOptions{ExactFallback: true})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	to, ok := replace[blue]
	if !ok || (to != red && to != green) {
		t.Errorf("Expected blue to map to red or green, got %v (found=%v)", to, ok)
	}
	if img.Pix[3] != to {
		t.Errorf("Expected pixel 3 to be %v, got %v", to, img.Pix[3])
	}
}

func TestCutfreqChainsNotFollowed(t *testing.T) {
	a := imageutil.RGB{R: 100, G: 100, B: 100}
	b := imageutil.RGB{R: 104, G: 100, B: 100}
	c := imageutil.RGB{R: 106, G: 100, B: 100}
	pix := []imageutil.RGB{a, a, a, a, a, b, c}

	img := imageOf(t, 7, 1, 255, slices.Clone(pix)...)
	replace, err := Cutfreq(img, 2, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if replace[c] != b || replace[b] != c {
		t.Errorf("Expected b and c to swap, got %v", replace)
	}
	if img.Pix[5] != c || img.Pix[6] != b {
		t.Errorf("Expected swapped pixels, got %v %v", img.Pix[5], img.Pix[6])
	}

	img = imageOf(t, 7, 1, 255, slices.Clone(pix)...)
	replace, err = Cutfreq(img, 2, CutfreqOptions{RetainedOnly: true})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if replace[c] != a || replace[b] != a {
		t.Errorf("Expected both to map to %v, got %v", a, replace)
	}
	if !img.Equal(imageutil.CreateSolidImage(7, 1, 255, a)) {
		t.Error("Expected a solid image after retained-only cut")
	}
}

func TestCutfreqInvalidCount(t *testing.T) {
	img := imageOf(t, 1, 1, 255, red)
	for _, n := range []int{0, -3} {
		if _, err := Cutfreq(img, n, CutfreqOptions{}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("n=%d: expected ErrInvalidArgument, got %v", n, err)
		}
	}
}

func TestCutfreqMoreThanDistinct(t *testing.T) {
	img := imageOf(t, 2, 1, 255, grayA, grayB)
	replace, err := Cutfreq(img, 50, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if len(replace) != 2 {
		t.Errorf("Expected both colors replaced, got %v", replace)
	}
	if img.Pix[0] != grayB || img.Pix[1] != grayA {
		t.Errorf("Expected swapped pixels, got %v", img.Pix)
	}
}

func TestCutfreqSixteenBit(t *testing.T) {
	a := imageutil.RGB{R: 1000, G: 1000, B: 1000}
	b := imageutil.RGB{R: 1004, G: 1000, B: 1000}
	img := imageOf(t, 4, 1, 65535, a, a, a, b)
	replace, err := Cutfreq(img, 1, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if replace[b] != a || img.Pix[3] != a {
		t.Errorf("Expected %v -> %v, got %v", b, a, replace)
	}

	// x, y and z share grid key 10000; the replacement follows true
	// distance, not bucket membership.
	x := imageutil.RGB{R: 8, G: 0, B: 0}
	y := imageutil.RGB{R: 0, G: 801, B: 0}
	z := imageutil.RGB{R: 0, G: 800, B: 0}
	img = imageOf(t, 6, 1, 65535, x, x, x, y, y, z)
	replace, err = Cutfreq(img, 1, CutfreqOptions{})
	if err != nil {
		t.Fatalf("Cutfreq failed: %v", err)
	}
	if to, ok := replace[z]; !ok || to != y {
		t.Errorf("Expected %v -> %v, got %v (found=%v)", z, y, to, ok)
	}
	if img.Pix[5] != y {
		t.Errorf("Expected pixel 5 to be %v, got %v", y, img.Pix[5])
	}
}
