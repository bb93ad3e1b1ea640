package composite

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"game-catalog/feature/media/imagemeta"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Default canvas is a portrait capsule.
const (
	DefaultWidth  = 600
	DefaultHeight = 900
)

// Logo placement relative to the canvas.
const (
	logoBoxWidth  = 0.8
	logoBoxHeight = 0.3
	logoCenterY   = 0.75
)

// Builder composites box art images.
type Builder struct {
	Width  int
	Height int
}

// New creates a builder for a width x height canvas. Non-positive sizes use the defaults.
func New(width, height int) *Builder {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Builder{Width: width, Height: height}
}

// BuildBoxArt layers logo over background and returns a PNG.
// The background covers the canvas and is center-cropped. The logo is scaled
// to fit a box 80% of the canvas width by 30% of its height, centered
// horizontally with its center at 75% of the canvas height.
func (b *Builder) BuildBoxArt(logo, background []byte) ([]byte, error) {
	bg, err := imagemeta.Decode(background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	lg, err := imagemeta.Decode(logo)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), bg, coverCrop(bg.Bounds(), b.Width, b.Height), draw.Src, nil)

	fitted := fit(lg, int(float64(b.Width)*logoBoxWidth), int(float64(b.Height)*logoBoxHeight))

	dc := gg.NewContextForRGBA(canvas)
	dc.DrawImageAnchored(fitted, b.Width/2, int(float64(b.Height)*logoCenterY), 0.5, 0.5)

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode box art: %w", err)
	}
	return out.Bytes(), nil
}

// coverCrop returns the centered region of src with the canvas aspect ratio.
func coverCrop(src image.Rectangle, width, height int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw*height > sh*width {
		// Source is wider than the canvas: trim the sides.
		cw := sh * width / height
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * height / width
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}

// fit scales img to the largest size inside boxW x boxH keeping its aspect ratio.
func fit(img image.Image, boxW, boxH int) image.Image {
	b := img.Bounds()
	scale := min(float64(boxW)/float64(b.Dx()), float64(boxH)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
