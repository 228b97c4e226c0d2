package texture

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func tgaHeaderBytes(imageType byte, width, height int, bpp byte, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeGrayBottomUp(t *testing.T) {
	// 2x2, stored bottom row first
	data := append(tgaHeaderBytes(TGATypeGray, 2, 2, 8, 0), 30, 40, 10, 20)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}

	want := [2][2]uint8{{10, 20}, {30, 40}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := gray.GrayAt(x, y).Y; got != want[y][x] {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want[y][x])
			}
		}
	}
}

func TestDecodeGrayTopToBottom(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeGray, 2, 2, 8, tgaDescTopToBottom), 10, 20, 30, 40)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.(*image.Gray).GrayAt(0, 0).Y; got != 10 {
		t.Errorf("top-left = %d, want 10", got)
	}
}

func TestDecodeGrayRLE(t *testing.T) {
	// Run of three 7s then a raw packet holding 9
	body := []byte{0x82, 7, 0x00, 9}
	data := append(tgaHeaderBytes(TGATypeGrayRLE, 2, 2, 8, tgaDescTopToBottom), body...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	gray := img.(*image.Gray)
	want := []uint8{7, 7, 7, 9}
	if !bytes.Equal(gray.Pix, want) {
		t.Errorf("pixels = %v, want %v", gray.Pix, want)
	}
}

func TestDecodeTrueColor(t *testing.T) {
	// One BGRA pixel
	data := append(tgaHeaderBytes(TGATypeUncompressed, 1, 1, 32, 0), 1, 2, 3, 4)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	got := img.(*image.RGBA).RGBAAt(0, 0)
	if got != (color.RGBA{R: 3, G: 2, B: 1, A: 4}) {
		t.Errorf("pixel = %v, want {3 2 1 4}", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeaderBytes(TGATypeGray, 1, 1, 8, 0); h[1] = 1; return h }()},
		{"bad type", tgaHeaderBytes(1, 1, 1, 8, 0)},
		{"gray depth", tgaHeaderBytes(TGATypeGray, 1, 1, 16, 0)},
		{"truncated", tgaHeaderBytes(TGATypeGray, 4, 4, 8, 0)},
		{"truncated rle", append(tgaHeaderBytes(TGATypeGrayRLE, 2, 2, 8, 0), 0x81, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImageDecodeRegistration(t *testing.T) {
	data := append(tgaHeaderBytes(TGATypeGray, 2, 1, 8, 0), 50, 60)

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.Decode failed: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", img.Bounds())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image.DecodeConfig failed: %v", err)
	}
	if cfg.ColorModel != color.GrayModel || cfg.Width != 2 {
		t.Errorf("config = %+v", cfg)
	}
}
