package ranking

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient builds an image whose brightness moves along x by dx and along y by dy.
func gradient(dx, dy int) image.Image {
	const side = 90
	img := image.NewGray(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(128 + dx*(x*60/side) + dy*(y*60/side))})
		}
	}
	return img
}

func TestHashAndDistance(t *testing.T) {
	ref := Hash(gradient(1, 0))

	assert.Equal(t, 0.0, Distance(ref, Hash(gradient(1, 0))))
	assert.Equal(t, 0.5, Distance(ref, Hash(gradient(-1, 0))))
	assert.Equal(t, 1.0, Distance(ref, Hash(gradient(-1, 1))))

	// Scaling the same picture keeps the fingerprint.
	big := image.NewGray(image.Rect(0, 0, 360, 180))
	for y := 0; y < 180; y++ {
		for x := 0; x < 360; x++ {
			big.SetGray(x, y, color.Gray{Y: uint8(128 + x*60/360)})
		}
	}
	assert.Equal(t, 0.0, Distance(ref, Hash(big)))
}

func TestRank(t *testing.T) {
	r := New(0)
	assert.Equal(t, DefaultThreshold, r.Threshold)

	t.Run("SingleCandidateIsNotCompared", func(t *testing.T) {
		got, err := r.Rank(nil, []Candidate{{URL: "only"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Rank)
		assert.Equal(t, 0.0, got[0].Score)
		assert.Equal(t, "only", got[0].URL)
	})

	t.Run("OrdersBySimilarity", func(t *testing.T) {
		a := Candidate{URL: "a", Image: gradient(1, 0)}
		b := Candidate{URL: "b", Image: gradient(-1, 0)}
		c := Candidate{URL: "c", Image: gradient(-1, 1)}

		got, err := r.Rank(gradient(1, 0), []Candidate{c, a, b})
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].URL, got[1].URL, got[2].URL})
		assert.Equal(t, []int{0, 1, 2}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
		assert.Equal(t, []int{1, 2, 0}, []int{got[0].Index, got[1].Index, got[2].Index})
		assert.Equal(t, []float64{0, 0.5, 1}, []float64{got[0].Score, got[1].Score, got[2].Score})
	})

	t.Run("TiesKeepInputOrder", func(t *testing.T) {
		got, err := r.Rank(gradient(1, 0), []Candidate{
			{URL: "first", Image: gradient(-1, 0)},
			{URL: "second", Image: gradient(-1, 0)},
			{URL: "best", Image: gradient(1, 0)},
		})
		require.NoError(t, err)
		assert.Equal(t, "best", got[0].URL)
		assert.Equal(t, "first", got[1].URL)
		assert.Equal(t, "second", got[2].URL)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := r.Rank(gradient(1, 0), nil)
		assert.ErrorIs(t, err, ErrNoCandidates)

		_, err = r.Rank(nil, []Candidate{{URL: "a"}, {URL: "b"}})
		assert.ErrorIs(t, err, ErrNoReference)
	})
}

func TestFilter(t *testing.T) {
	r := New(0.08)
	ranked := []Ranked{
		{Candidate: Candidate{URL: "a"}, Rank: 0, Score: 0},
		{Candidate: Candidate{URL: "b"}, Rank: 1, Score: 0.08},
		{Candidate: Candidate{URL: "c"}, Rank: 2, Score: 0.5},
	}

	assert.True(t, r.Accepts(ranked[1]))
	assert.False(t, r.Accepts(ranked[2]))

	got := r.Filter(ranked)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Rank)
}

func TestSelect(t *testing.T) {
	ranked := make([]Ranked, 6)
	for i := range ranked {
		ranked[i] = Ranked{Candidate: Candidate{URL: string(rune('a' + i))}, Rank: i}
	}

	sel := Select(ranked, 3)
	require.NotNil(t, sel.Hero)
	assert.Equal(t, "a", sel.Hero.URL)
	require.Len(t, sel.Gallery, 3)
	for i, slot := range sel.Gallery {
		assert.Equal(t, i, slot.Position)
		assert.Equal(t, i+1, slot.Rank)
	}
	assert.Equal(t, "d", sel.Gallery[2].URL)

	empty := Select(nil, 3)
	assert.Nil(t, empty.Hero)
	assert.Empty(t, empty.Gallery)
}
