// Package texture registers image decoders the standard library lacks so
// heightmaps can be authored in more tools.
package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize      = 18
	tgaDescTopToBottom = 0x20
)

func init() {
	// TGA has no signature; match on the color map and image type bytes.
	for _, typ := range []byte{TGATypeUncompressed, TGATypeGray, TGATypeRLE, TGATypeGrayRLE} {
		image.RegisterFormat("tga", string([]byte{'?', 0, typ}), decode, decodeConfig)
	}
}

func decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeTGA(data)
}

func decodeConfig(r io.Reader) (image.Config, error) {
	var h [tgaHeaderSize]byte
	if _, err := io.ReadFull(bufio.NewReader(r), h[:]); err != nil {
		return image.Config{}, err
	}
	hdr, err := parseHeader(h[:])
	if err != nil {
		return image.Config{}, err
	}
	model := color.RGBAModel
	if hdr.gray {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: hdr.width, Height: hdr.height}, nil
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPx  int
	gray        bool
	rle         bool
	topToBottom bool
}

func parseHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errors.New("TGA data too short")
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPx:  int(data[16]) / 8,
		topToBottom: data[17]&tgaDescTopToBottom != 0,
	}
	if data[1] != 0 {
		return tgaHeader{}, errors.New("color-mapped TGA not supported")
	}

	switch h.imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if h.bytesPerPx != 3 && h.bytesPerPx != 4 {
			return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d for true-color", data[16])
		}
	case TGATypeGray, TGATypeGrayRLE:
		if h.bytesPerPx != 1 {
			return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d for grayscale", data[16])
		}
		h.gray = true
	default:
		return tgaHeader{}, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	h.rle = h.imageType == TGATypeRLE || h.imageType == TGATypeGrayRLE
	return h, nil
}

// DecodeTGA decodes uncompressed or RLE TGA files in 8-bit grayscale or
// 24/32-bit true-color. Grayscale files decode to *image.Gray.
func DecodeTGA(data []byte) (image.Image, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + hdr.idLength
	if offset > len(data) {
		return nil, errors.New("TGA data truncated")
	}
	pixels := data[offset:]
	if !hdr.rle {
		if len(pixels) < hdr.width*hdr.height*hdr.bytesPerPx {
			return nil, errors.New("TGA pixel data truncated")
		}
	} else {
		if pixels, err = expandRLE(pixels, hdr.width*hdr.height, hdr.bytesPerPx); err != nil {
			return nil, err
		}
	}

	rect := image.Rect(0, 0, hdr.width, hdr.height)
	if hdr.gray {
		img := image.NewGray(rect)
		for y := 0; y < hdr.height; y++ {
			src := pixels[y*hdr.width : (y+1)*hdr.width]
			copy(img.Pix[hdr.row(y)*img.Stride:], src)
		}
		return img, nil
	}

	img := image.NewRGBA(rect)
	for y := 0; y < hdr.height; y++ {
		destY := hdr.row(y)
		for x := 0; x < hdr.width; x++ {
			i := (y*hdr.width + x) * hdr.bytesPerPx
			a := uint8(255)
			if hdr.bytesPerPx == 4 {
				a = pixels[i+3]
			}
			img.SetRGBA(x, destY, color.RGBA{R: pixels[i+2], G: pixels[i+1], B: pixels[i], A: a})
		}
	}
	return img, nil
}

// row maps a stored row to an image row. TGA stores bottom-up unless the
// descriptor says otherwise.
func (h tgaHeader) row(y int) int {
	if h.topToBottom {
		return y
	}
	return h.height - 1 - y
}

// expandRLE unpacks RLE packets into count raw pixels.
func expandRLE(data []byte, count, bytesPerPx int) ([]byte, error) {
	out := make([]byte, 0, count*bytesPerPx)
	i := 0
	for len(out) < count*bytesPerPx {
		if i >= len(data) {
			return nil, errors.New("TGA RLE data truncated")
		}
		packet := data[i]
		i++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if i+bytesPerPx > len(data) {
				return nil, errors.New("TGA RLE data truncated")
			}
			px := data[i : i+bytesPerPx]
			i += bytesPerPx
			for ; n > 0; n-- {
				out = append(out, px...)
			}
		} else {
			// Raw packet
			if i+n*bytesPerPx > len(data) {
				return nil, errors.New("TGA RLE data truncated")
			}
			out = append(out, data[i:i+n*bytesPerPx]...)
			i += n * bytesPerPx
		}
	}
	return out[:count*bytesPerPx], nil
}
