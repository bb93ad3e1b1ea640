package ranking

import (
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

// hashSide is the thumbnail edge; 9 samples give 8 gradients per row and column.
const hashSide = 9

// hashBits is the fingerprint length: 64 horizontal plus 64 vertical gradients.
const hashBits = 128

// Fingerprint is a 128-bit difference hash.
type Fingerprint [2]uint64

// Hash computes the difference hash of img.
// The image is reduced to a 9x9 grayscale thumbnail; bit i of the first word
// is set when a pixel is darker than its right neighbour, bit i of the second
// word when it is darker than the pixel below.
func Hash(img image.Image) Fingerprint {
	thumb := image.NewGray(image.Rect(0, 0, hashSide, hashSide))
	draw.BiLinear.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Src, nil)

	var fp Fingerprint
	bit := 0
	for y := 0; y < hashSide-1; y++ {
		for x := 0; x < hashSide-1; x++ {
			here := thumb.GrayAt(x, y).Y
			if here < thumb.GrayAt(x+1, y).Y {
				fp[0] |= 1 << bit
			}
			if here < thumb.GrayAt(x, y+1).Y {
				fp[1] |= 1 << bit
			}
			bit++
		}
	}
	return fp
}

// Distance is the normalized Hamming distance between two fingerprints, in [0,1].
func Distance(a, b Fingerprint) float64 {
	d := bits.OnesCount64(a[0]^b[0]) + bits.OnesCount64(a[1]^b[1])
	return float64(d) / hashBits
}
