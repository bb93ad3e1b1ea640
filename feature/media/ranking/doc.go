// Package ranking orders screenshot candidates by visual similarity to a
// reference image and applies the hero/gallery selection policy.
//
// Similarity is a 128-bit difference hash: each image is reduced to a 9x9
// grayscale thumbnail and the sign of every horizontal and vertical neighbour
// gradient becomes one bit. The score is the Hamming distance divided by 128,
// so 0 means identical structure and 1 means every gradient is inverted.
//
// Rank always returns a total order. The threshold only matters to callers
// that use Accepts or Filter to reject poor matches.
package ranking
