package terrain

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// grayPNG encodes a w x h grayscale PNG whose pixel values come from fn.
func grayPNG(t *testing.T, w, h int, fn func(x, y int) uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetGray(x, y, color.Gray{Y: fn(x, y)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func approxEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestLoadDecodesPNG(t *testing.T) {
	data := grayPNG(t, 8, 6, func(x, y int) uint8 { return uint8(x * 10) })

	field, err := Load(data, 2, 100)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if field.Width != 8 || field.Height != 6 {
		t.Errorf("size = %dx%d, want 8x6", field.Width, field.Height)
	}
	if got, want := field.PixelHeight(3, 0), float32(30.0/255*100); !approxEqual(got, want, 1e-4) {
		t.Errorf("PixelHeight(3,0) = %v, want %v", got, want)
	}
}

func TestLoadDecodesTGA(t *testing.T) {
	// 2x2 uncompressed grayscale, top-to-bottom
	header := make([]byte, 18)
	header[2] = 3
	header[12], header[14] = 2, 2
	header[16] = 8
	header[17] = 0x20
	data := append(header, 0, 255, 0, 255)

	field, err := Load(data, 1, 100)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if field.Width != 2 || field.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", field.Width, field.Height)
	}
	if got := field.PixelHeight(1, 0); got != 100 {
		t.Errorf("PixelHeight(1,0) = %g, want 100", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte("definitely not an image"), 1, 1)
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("error %v does not match ErrDecode", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("error %T is not a *DecodeError", err)
	}
}

func TestFromImageTooSmall(t *testing.T) {
	_, err := FromImage(image.NewGray(image.Rect(0, 0, 1, 5)), 1, 1)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for 1x5 image, got %v", err)
	}
}

func TestFromImageConvertsColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 14))
	for y := 10; y < 14; y++ {
		for x := 10; x < 14; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	field, err := FromImage(img, 1, 255)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if field.Width != 4 || field.Height != 4 {
		t.Fatalf("size = %dx%d, want 4x4", field.Width, field.Height)
	}
	if got := field.PixelHeight(0, 0); !approxEqual(got, 200, 1e-3) {
		t.Errorf("PixelHeight(0,0) = %v, want 200", got)
	}
}

func TestHeightAtGridPoints(t *testing.T) {
	data := grayPNG(t, 5, 4, func(x, y int) uint8 { return uint8(x*40 + y*7) })
	field, err := Load(data, 2, 50)
	if err != nil {
		t.Fatal(err)
	}

	for py := uint32(0); py < field.Height; py++ {
		for px := uint32(0); px < field.Width; px++ {
			got := field.HeightAt(float32(px)*field.Size, float32(py)*field.Size)
			want := field.PixelHeight(px, py)
			if !approxEqual(got, want, 1e-4) {
				t.Errorf("HeightAt at pixel (%d,%d) = %v, want %v", px, py, got, want)
			}
		}
	}
}

func TestHeightAtInterpolates(t *testing.T) {
	// Heights rise along x only.
	data := grayPNG(t, 4, 4, func(x, y int) uint8 { return uint8(x * 80) })
	field, err := Load(data, 1, 255)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		x, z   float32
		expect float32
	}{
		{"midpoint x", 0.5, 0, 40},
		{"quarter x", 1.25, 2.5, 100},
		{"independent of z", 2.5, 1.75, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := field.HeightAt(tt.x, tt.z)
			if !approxEqual(got, tt.expect, 1e-3) {
				t.Errorf("HeightAt(%v,%v) = %v, want %v", tt.x, tt.z, got, tt.expect)
			}
		})
	}
}

func TestHeightAtClampsOutOfRange(t *testing.T) {
	data := grayPNG(t, 3, 3, func(x, y int) uint8 { return uint8(10 + x*20 + y*60) })
	field, err := Load(data, 1, 255)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := field.HeightAt(-10, -10), field.PixelHeight(0, 0); !approxEqual(got, want, 1e-4) {
		t.Errorf("below range: got %v, want %v", got, want)
	}
	if got, want := field.HeightAt(100, 100), field.PixelHeight(2, 2); !approxEqual(got, want, 1e-4) {
		t.Errorf("above range: got %v, want %v", got, want)
	}
}

func TestHeightAtContinuous(t *testing.T) {
	data := grayPNG(t, 6, 6, func(x, y int) uint8 { return uint8((x*37 + y*91) % 256) })
	field, err := Load(data, 1, 255)
	if err != nil {
		t.Fatal(err)
	}

	// Crossing a cell boundary must not jump.
	for _, boundary := range []float32{1, 2, 3, 4} {
		before := field.HeightAt(boundary-1e-3, 2.3)
		after := field.HeightAt(boundary+1e-3, 2.3)
		if !approxEqual(before, after, 1) {
			t.Errorf("discontinuity at x=%v: %v vs %v", boundary, before, after)
		}
	}
}

func TestHeightAtInterpolatesLastStrip(t *testing.T) {
	// Only the last column is raised. Positions past w-2 still blend toward
	// it instead of snapping to column w-2.
	data := grayPNG(t, 4, 4, func(x, y int) uint8 {
		if x == 3 {
			return 255
		}
		return 0
	})
	field := mustField(t, data, 1, 10)

	tests := []struct {
		x    float32
		want float32
	}{
		{2, 0},
		{2.5, 5},
		{3, 10},
		{9, 10},
	}
	for _, tt := range tests {
		if got := field.HeightAt(tt.x, 0); !approxEqual(got, tt.want, 1e-5) {
			t.Errorf("HeightAt(%g, 0) = %g, want %g", tt.x, got, tt.want)
		}
	}
}

func TestHeightAtNilField(t *testing.T) {
	var field *HeightField
	if got := field.HeightAt(5, 5); got != 0 {
		t.Errorf("nil field HeightAt = %v, want 0", got)
	}
}
