package pixelate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/linuxmatters/sampleviz/internal/quantize"
)

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// TestApply_UniformBlock verifies that a uniform 4x4 block on an 8x8 image
// survives pixelation at full bit depth unchanged.
func TestApply_UniformBlock(t *testing.T) {
	src := NewGradient(8, 8)
	want := color.RGBA{R: 12, G: 200, B: 99, A: 255}
	fill(src, image.Rect(0, 0, 4, 4), want)

	dst := Process(src, Options{PixelSize: 4, Bits: 8})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// TestApply_FullFidelityPassThrough verifies pixel size 1 at 8 bits copies
// the input exactly.
func TestApply_FullFidelityPassThrough(t *testing.T) {
	src := NewCheckerboard(37, 23, 5)
	// Include translucent pixels to check alpha pass-through
	src.SetRGBA(3, 4, color.RGBA{R: 10, G: 20, B: 30, A: 40})

	dst := Process(src, Options{PixelSize: 1, Bits: 8})
	if !bytes.Equal(dst.Pix, src.Pix) {
		t.Fatal("pixel size 1 at 8 bits should reproduce the input exactly")
	}
}

func TestApply_TopLeftSampling(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 6))
	fill(src, src.Bounds(), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// Only the top-left pixel of each 3x3 block matters
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(3, 0, color.RGBA{G: 255, A: 255})
	src.SetRGBA(0, 3, color.RGBA{B: 255, A: 255})

	dst := Process(src, Options{PixelSize: 3, Bits: 8})

	testCases := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, color.RGBA{R: 255, A: 255}},
		{5, 1, color.RGBA{G: 255, A: 255}},
		{1, 5, color.RGBA{B: 255, A: 255}},
		{4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tc := range testCases {
		if got := dst.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestApply_ClippedEdgeBlocks(t *testing.T) {
	src := NewGradient(10, 7)
	dst := Process(src, Options{PixelSize: 4, Bits: 8})

	// Blocks start at 0, 4, 8 horizontally and 0, 4 vertically
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			want := src.RGBAAt(x/4*4, y/4*4)
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestApply_PixelSizeLargerThanImage(t *testing.T) {
	src := NewGradient(5, 3)
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	dst := Process(src, Options{PixelSize: 64, Bits: 8})
	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestApply_Grayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(src, src.Bounds(), color.RGBA{R: 255, A: 255})

	dst := Process(src, Options{PixelSize: 1, Bits: 8, Grayscale: true})
	if got, want := dst.RGBAAt(1, 1), (color.RGBA{R: 54, G: 54, B: 54, A: 255}); got != want {
		t.Errorf("grayscale red = %v, want %v", got, want)
	}

	// Quantization happens after the luminance conversion
	dst = Process(src, Options{PixelSize: 1, Bits: 3, Grayscale: true})
	q := quantize.Channel(54, 3)
	if got, want := dst.RGBAAt(0, 0), (color.RGBA{R: q, G: q, B: q, A: 255}); got != want {
		t.Errorf("3-bit grayscale red = %v, want %v", got, want)
	}
}

func TestApply_QuantizesChannels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 200, B: 30, A: 77})

	dst := Process(src, Options{PixelSize: 1, Bits: 2})
	want := color.RGBA{R: 85, G: 170, B: 0, A: 77}
	if got := dst.RGBAAt(0, 0); got != want {
		t.Errorf("2-bit pixel = %v, want %v", got, want)
	}
}

func TestApply_SanitizesOptions(t *testing.T) {
	src := NewGradient(4, 4)
	dst := Process(src, Options{PixelSize: 0, Bits: 0})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := dst.RGBAAt(x, y)
			for _, v := range []uint8{c.R, c.G, c.B} {
				if v != 0 && v != 255 {
					t.Fatalf("pixel (%d,%d) = %v, want 1-bit channels", x, y, c)
				}
			}
		}
	}
}

func TestApply_SizeMismatch(t *testing.T) {
	src := NewGradient(4, 4)
	dst := image.NewRGBA(image.Rect(0, 0, 3, 4))
	if err := Apply(dst, src, DefaultOptions()); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Apply error = %v, want ErrSizeMismatch", err)
	}
}

// TestProcess_MatchesApply checks that Process and Apply into a caller-owned
// buffer produce the same pixels, including for a sub-image source.
func TestProcess_MatchesApply(t *testing.T) {
	base := NewGradient(21, 17)
	sub := base.SubImage(image.Rect(3, 2, 21, 17)).(*image.RGBA)
	opts := Options{PixelSize: 5, Bits: 3, Grayscale: true}

	for _, src := range []*image.RGBA{base, sub} {
		got := Process(src, opts)
		want := image.NewRGBA(got.Bounds())
		if err := Apply(want, src, opts); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("Process and Apply differ for source bounds %v", src.Bounds())
		}
	}
}

func TestApply_OffsetBounds(t *testing.T) {
	base := NewGradient(20, 20)
	sub := base.SubImage(image.Rect(5, 5, 13, 13)).(*image.RGBA)

	dst := Process(sub, Options{PixelSize: 4, Bits: 8})
	if dst.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds = %v, want 8x8 at origin", dst.Bounds())
	}
	if got, want := dst.RGBAAt(7, 7), base.RGBAAt(9, 9); got != want {
		t.Errorf("pixel (7,7) = %v, want %v", got, want)
	}
}

func TestLuminance(t *testing.T) {
	testCases := []struct {
		r, g, b uint8
		want    uint8
	}{
		{255, 0, 0, 54},
		{0, 255, 0, 182},
		{0, 0, 255, 18},
		{255, 255, 255, 255},
		{0, 0, 0, 0},
	}

	for _, tc := range testCases {
		if got := Luminance(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("Luminance(%d, %d, %d) = %d, want %d", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestStore(t *testing.T) {
	var s Store
	if _, err := s.Current(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("empty store error = %v, want ErrNoImage", err)
	}

	first := Gradient.Generate()
	s.Replace(first)
	gen := s.Generation()

	second := Checkerboard.Generate()
	s.Replace(second)

	got, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != second {
		t.Error("Current should return the latest replacement")
	}
	if s.Generation() != gen+1 {
		t.Errorf("Generation = %d, want %d", s.Generation(), gen+1)
	}
}

func TestParseArtwork(t *testing.T) {
	for _, a := range Artworks {
		got, err := ParseArtwork(a.String())
		if err != nil || got != a {
			t.Errorf("ParseArtwork(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseArtwork("mandelbrot"); err == nil {
		t.Error("ParseArtwork(\"mandelbrot\") expected error")
	}
}

func TestDecode_PNG(t *testing.T) {
	src := NewGradient(16, 9)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Error("decoded PNG differs from source")
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode of garbage expected error")
	}
}

func TestFit_ScalesDown(t *testing.T) {
	img := Fit(NewGradient(400, 100), 200, 200)
	if img.Bounds() != image.Rect(0, 0, 200, 50) {
		t.Errorf("Fit bounds = %v, want 200x50", img.Bounds())
	}
}

func BenchmarkProcess(b *testing.B) {
	src := NewGradient(1280, 720)
	dst := image.NewRGBA(src.Bounds())
	opts := Options{PixelSize: 8, Bits: 3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Apply(dst, src, opts)
	}
}
