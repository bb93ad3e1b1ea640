package imagemeta

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	return img
}

func TestInspect(t *testing.T) {
	img := solid(120, 45)

	var pngBuf, jpgBuf, gifBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	require.NoError(t, jpeg.Encode(&jpgBuf, img, nil))
	require.NoError(t, gif.Encode(&gifBuf, img, nil))

	tests := []struct {
		name   string
		buf    []byte
		format string
	}{
		{"PNG", pngBuf.Bytes(), "png"},
		{"JPEG", jpgBuf.Bytes(), "jpeg"},
		{"GIF", gifBuf.Bytes(), "gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(tt.buf)
			require.NoError(t, err)
			assert.Equal(t, Info{Width: 120, Height: 45, Format: tt.format}, info)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		_, err := Inspect(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := Inspect([]byte("not an image"))
		assert.Error(t, err)
	})
}

func TestBlurHash(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(300, 200)))

	hash, err := BlurHash(buf.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	again, err := BlurHash(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	_, err = BlurHash([]byte("nope"))
	assert.Error(t, err)
}

func TestThumbnail(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 64, 32), thumbnail(solid(400, 200)).Bounds())
	assert.Equal(t, image.Rect(0, 0, 16, 64), thumbnail(solid(100, 400)).Bounds())
	assert.Equal(t, image.Rect(0, 0, 10, 10), thumbnail(solid(10, 10)).Bounds())
}
