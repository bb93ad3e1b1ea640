package imagemeta

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize bounds the thumbnail the placeholder hash is computed from.
const blurHashSize = 64

// ErrEmpty is returned for empty buffers.
var ErrEmpty = errors.New("imagemeta: empty image buffer")

// Info is what the image header reports.
type Info struct {
	Width  int
	Height int
	Format string
}

// Inspect reads only the image header.
func Inspect(buf []byte) (Info, error) {
	if len(buf) == 0 {
		return Info{}, ErrEmpty
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return Info{}, fmt.Errorf("decode image header: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Decode fully decodes buf.
func Decode(buf []byte) (image.Image, error) {
	if len(buf) == 0 {
		return nil, ErrEmpty
	}
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// BlurHash computes a 4x3 component placeholder hash.
func BlurHash(buf []byte) (string, error) {
	img, err := Decode(buf)
	if err != nil {
		return "", err
	}
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= blurHashSize && h <= blurHashSize {
		return img
	}

	dw, dh := blurHashSize, blurHashSize
	if w > h {
		dh = max(1, h*blurHashSize/w)
	} else {
		dw = max(1, w*blurHashSize/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
