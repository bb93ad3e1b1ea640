package ranking

import (
	"errors"
	"image"
	"sort"
)

// DefaultThreshold is the distance above which callers may reject a match.
const DefaultThreshold = 0.08

var (
	ErrNoCandidates = errors.New("ranking: no candidates")
	ErrNoReference  = errors.New("ranking: no reference image")
	// ErrImageRankingFailed marks a ranking step that could not run because
	// its inputs could not be obtained.
	ErrImageRankingFailed = errors.New("image ranking failed")
)

// Candidate is one image competing for a gallery slot.
type Candidate struct {
	URL   string
	Image image.Image
}

// Ranked is a candidate with its position in the total order.
type Ranked struct {
	Candidate
	// Index is the candidate's position in the input slice.
	Index int
	Rank  int
	// Score is the distance to the reference; lower is more similar.
	Score float64
}

// Ranker orders candidates by similarity to a reference image.
type Ranker struct {
	Threshold float64
}

// New creates a ranker. A non-positive threshold falls back to DefaultThreshold.
func New(threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Ranker{Threshold: threshold}
}

// Rank returns every candidate ordered by ascending distance to reference,
// ties kept in input order. A single candidate is returned as rank 0 with
// score 0 without being compared.
func (r *Ranker) Rank(reference image.Image, candidates []Candidate) ([]Ranked, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(candidates) == 1 {
		return []Ranked{{Candidate: candidates[0], Index: 0, Rank: 0, Score: 0}}, nil
	}
	if reference == nil {
		return nil, ErrNoReference
	}

	ref := Hash(reference)
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		score := 1.0
		if c.Image != nil {
			score = Distance(ref, Hash(c.Image))
		}
		ranked[i] = Ranked{Candidate: c, Index: i, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i
	}
	return ranked, nil
}

// Accepts reports whether a ranked candidate is within the threshold.
func (r *Ranker) Accepts(x Ranked) bool {
	return x.Score <= r.Threshold
}

// Filter drops candidates outside the threshold and renumbers the rest.
func (r *Ranker) Filter(ranked []Ranked) []Ranked {
	out := make([]Ranked, 0, len(ranked))
	for _, x := range ranked {
		if r.Accepts(x) {
			x.Rank = len(out)
			out = append(out, x)
		}
	}
	return out
}

// Slot is a ranked candidate assigned to a gallery position.
type Slot struct {
	Ranked
	Position int
}

// Selection is the outcome of the selection policy.
type Selection struct {
	Hero    *Ranked
	Gallery []Slot
}

// Select promotes rank 0 to hero and ranks 1..gallerySize to the gallery at
// position rank-1. Anything ranked lower is discarded.
func Select(ranked []Ranked, gallerySize int) Selection {
	var sel Selection
	for i := range ranked {
		x := ranked[i]
		switch {
		case x.Rank == 0:
			sel.Hero = &x
		case x.Rank <= gallerySize:
			sel.Gallery = append(sel.Gallery, Slot{Ranked: x, Position: x.Rank - 1})
		}
	}
	sort.Slice(sel.Gallery, func(i, j int) bool {
		return sel.Gallery[i].Position < sel.Gallery[j].Position
	})
	return sel
}
