package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
	"golang.org/x/image/draw"

	_ "github.com/Faultbox/heightscape/internal/engine/texture" // TGA decoder registration
)

// ErrDecode is matched by every DecodeError.
var ErrDecode = errors.New("heightmap decode failed")

// DecodeError reports heightmap bytes that could not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode heightmap: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// HeightField is a decoded grayscale heightmap with its world scale.
type HeightField struct {
	image            *image.Gray
	Width            uint32
	Height           uint32
	Size             float32 // World units per pixel
	HeightMultiplier float32
}

// Load decodes image bytes into a grayscale height field.
func Load(data []byte, size, heightMultiplier float32) (*HeightField, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return FromImage(img, size, heightMultiplier)
}

// FromImage converts any image to a height field. Color images are reduced to luma.
func FromImage(img image.Image, size, heightMultiplier float32) (*HeightField, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return nil, &DecodeError{Err: fmt.Errorf("image %dx%d is smaller than 2x2", b.Dx(), b.Dy())}
	}

	gray, ok := img.(*image.Gray)
	if !ok || gray.Rect.Min != (image.Point{}) {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
	}

	return &HeightField{
		image:            gray,
		Width:            uint32(b.Dx()),
		Height:           uint32(b.Dy()),
		Size:             size,
		HeightMultiplier: heightMultiplier,
	}, nil
}

// PixelHeight returns the scaled height stored at an exact pixel.
func (f *HeightField) PixelHeight(px, py uint32) float32 {
	return float32(f.image.GrayAt(int(px), int(py)).Y) / 255.0 * f.HeightMultiplier
}

// HeightAt returns the bilinearly interpolated height at a world position.
// A nil field answers 0 so callers can query before loading finishes.
func (f *HeightField) HeightAt(worldX, worldZ float32) float32 {
	if f == nil || f.image == nil {
		return 0
	}

	// The last row/column is reached with a fraction of 1 so every pixel,
	// edges included, is returned exactly at its grid point.
	x := clampf(worldX/f.Size, 0, float32(f.Width)-1)
	z := clampf(worldZ/f.Size, 0, float32(f.Height)-1)

	x0 := min(uint32(x), f.Width-2)
	z0 := min(uint32(z), f.Height-2)
	fracX := x - float32(x0)
	fracZ := z - float32(z0)

	h00 := f.PixelHeight(x0, z0)
	h10 := f.PixelHeight(x0+1, z0)
	h01 := f.PixelHeight(x0, z0+1)
	h11 := f.PixelHeight(x0+1, z0+1)

	near := h00*(1-fracX) + h10*fracX
	far := h01*(1-fracX) + h11*fracX
	return near*(1-fracZ) + far*fracZ
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
