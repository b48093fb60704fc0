package imtool

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wbrown/imtool/imageutil"
)

func encode(t *testing.T, img *imageutil.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeCPPM(&buf, img, BuildPalette(img)); err != nil {
		t.Fatalf("EncodeCPPM failed: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeCPPMSingleWhitePixel(t *testing.T) {
	got := encode(t, imageOf(t, 1, 1, 255, white))

	expected := append([]byte("C6 1 1 255 1\n"), 255, 255, 255, 0)
	if !bytes.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestEncodeCPPMIndexOrder(t *testing.T) {
	got := encode(t, imageOf(t, 2, 2, 255, red, red, green, blue))

	header := "C6 2 2 255 3\n"
	expected := append([]byte(header),
		0, 0, 255, // blue
		0, 255, 0, // green
		255, 0, 0, // red
		2, 2, 1, 0)
	if !bytes.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestEncodeCPPMWidths(t *testing.T) {
	testCases := []struct {
		name        string
		img         *imageutil.Image
		channel     int
		index       int
		paletteSize int
	}{
		{"8-bit few colors", imageutil.CreateColorBarsImage(16, 2), 1, 1, 8},
		{"16-bit channels", imageutil.CreateGradientImage(4, 1, 1000), 2, 1, 4},
		{"2-byte indices", uniqueColorsImage(300), 1, 2, 300},
		{"4-byte indices", uniqueColorsImage(70000), 1, 4, 70000},
	}
	for _, tc := range testCases {
		data := encode(t, tc.img)
		header := strings.SplitN(string(data), "\n", 2)[0] + "\n"
		want := len(header) + tc.paletteSize*3*tc.channel + len(tc.img.Pix)*tc.index
		if len(data) != want {
			t.Errorf("%s: expected %d bytes, got %d", tc.name, want, len(data))
		}
	}
}

// uniqueColorsImage returns an n x 1 image where every pixel has its own
// 8-bit color.
func uniqueColorsImage(n int) *imageutil.Image {
	img := imageutil.NewImage(n, 1, 255)
	for i := range img.Pix {
		img.Pix[i] = imageutil.RGB{
			R: uint16(i % 256),
			G: uint16((i / 256) % 256),
			B: uint16(i / 65536),
		}
	}
	return img
}

func TestCPPMRoundTrip(t *testing.T) {
	images := []*imageutil.Image{
		imageutil.NewImage(0, 0, 255),
		imageOf(t, 1, 1, 255, white),
		imageutil.CreateNoiseImage(17, 9, 255, 7),
		imageutil.CreateNoiseImage(17, 9, 65535, 11),
		imageutil.CreateCheckerboardImage(8, 8, 2, 1),
		uniqueColorsImage(70000),
	}
	for i, img := range images {
		got, err := DecodeCPPM(bytes.NewReader(encode(t, img)))
		if err != nil {
			t.Fatalf("image %d: DecodeCPPM failed: %v", i, err)
		}
		if !got.Equal(img) {
			t.Errorf("image %d: round trip changed the image", i)
		}
	}
}

func TestDecodeCPPMErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
		want error
	}{
		{"wrong magic", "P6 1 1 255 1\n\xff\xff\xff\x00", ErrFormat},
		{"non-numeric", "C6 1 1 255 many\n", ErrFormat},
		{"missing tokens", "C6 1 1\n", ErrFormat},
		{"truncated palette", "C6 1 1 255 2\n\xff\xff\xff", ErrTruncatedData},
		{"truncated pixels", "C6 2 1 255 1\n\xff\xff\xff\x00", ErrTruncatedData},
		{"corrupt index", "C6 1 1 255 1\n\xff\xff\xff\x05", ErrCorruptIndex},
		{"empty palette", "C6 1 1 255 0\n\x00", ErrCorruptIndex},
		{"too deep", "C6 1 1 65536 1\n", ErrUnsupportedDepth},
		{"palette size overflow", "C6 1 1 255 9223372036854775807\n", ErrFormat},
		{"huge palette", "C6 1 1 255 1000000000\n\xff", ErrTruncatedData},
		{"index size overflow", "C6 4294967296 4294967296 255 1\n\xff\xff\xff", ErrFormat},
		{"huge raster", "C6 100000 100000 255 1\n\xff\xff\xff\x00", ErrTruncatedData},
		{"palette entry above max", "C6 1 1 100 1\n\xff\xff\xff\x00", ErrFormat},
	}
	for _, tc := range testCases {
		_, err := DecodeCPPM(strings.NewReader(tc.data))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestEncodeCPPMMissingColor(t *testing.T) {
	img := imageOf(t, 2, 1, 255, red, blue)
	pal := NewPalette([]imageutil.RGB{red})
	err := EncodeCPPM(&bytes.Buffer{}, img, pal)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}
