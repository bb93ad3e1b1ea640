package composite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"game-catalog/feature/media/imagemeta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildBoxArt(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	out, err := New(0, 0).BuildBoxArt(fill(t, 100, 50, blue), fill(t, 300, 450, red))
	require.NoError(t, err)

	info, err := imagemeta.Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, imagemeta.Info{Width: 600, Height: 900, Format: "png"}, info)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assertColor := func(x, y int, want color.RGBA) {
		r, g, b, a := img.At(x, y).RGBA()
		got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
		assert.Equal(t, want, got, "pixel (%d,%d)", x, y)
	}
	assertColor(300, 675, blue)
	assertColor(5, 5, red)
	assertColor(300, 300, red)
	assertColor(595, 895, red)
}

func TestBuildBoxArt_InvalidInput(t *testing.T) {
	b := New(600, 900)
	_, err := b.BuildBoxArt([]byte("logo"), fill(t, 10, 10, color.White))
	assert.ErrorContains(t, err, "logo")

	_, err = b.BuildBoxArt(fill(t, 10, 10, color.White), nil)
	assert.ErrorContains(t, err, "background")
}

func TestCoverCrop(t *testing.T) {
	// Wide source keeps full height and trims the sides.
	assert.Equal(t, image.Rect(350, 0, 650, 450), coverCrop(image.Rect(0, 0, 1000, 450), 600, 900))
	// Tall source keeps full width and trims top and bottom.
	assert.Equal(t, image.Rect(0, 150, 200, 450), coverCrop(image.Rect(0, 0, 200, 600), 600, 900))
	// Same aspect ratio is untouched.
	assert.Equal(t, image.Rect(0, 0, 300, 450), coverCrop(image.Rect(0, 0, 300, 450), 600, 900))
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Equal(t, image.Rect(0, 0, 480, 240), fit(src, 480, 270).Bounds())

	tall := image.NewRGBA(image.Rect(0, 0, 10, 100))
	assert.Equal(t, image.Rect(0, 0, 27, 270), fit(tall, 480, 270).Bounds())
}
