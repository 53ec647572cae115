package similarity

import (
	"fmt"
	"unicode/utf8"

	"github.com/LeandroLuccerini/similarity/pkg/normalize"
	"github.com/agnivade/levenshtein"
)

// shortStringLen is the longest normalized length scored by character
// overlap instead of edit distance; one edit on two characters is already 50%.
const shortStringLen = 2

// Fuzzy compares normalized strings by edit distance.
type Fuzzy struct {
	normalizer *normalize.StringNormalizer
}

// NewFuzzy returns a Fuzzy similarity built on n.
func NewFuzzy(n *normalize.StringNormalizer) *Fuzzy {
	return &Fuzzy{normalizer: n}
}

// Similarity normalizes both strings and scores them. It fails with
// ErrInvalidInput when either one normalizes to nothing.
func (f *Fuzzy) Similarity(a, b string) (float64, error) {
	na, ok := f.normalizer.Normalize(a)
	if !ok {
		return 0, fmt.Errorf("%w: string %q is not a normalizable string", ErrInvalidInput, a)
	}
	nb, ok := f.normalizer.Normalize(b)
	if !ok {
		return 0, fmt.Errorf("%w: string %q is not a normalizable string", ErrInvalidInput, b)
	}

	if na == nb {
		return 1, nil
	}

	if max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb)) <= shortStringLen {
		return finish(similarText(na, nb)), nil
	}

	dist := levenshtein.ComputeDistance(na, nb)
	return finish(1 - float64(dist)/float64(max(len(na), len(nb)))), nil
}

// similarText returns the share of characters a and b have in common: the
// longest common substring plus, recursively, the matches on its left and
// right, doubled and divided by the combined length.
func similarText(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return float64(2*commonChars(a, b)) / float64(total)
}

func commonChars(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	// First longest common substring wins, scanning a then b.
	var posA, posB, longest int
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > longest {
				posA, posB, longest = i, j, k
			}
		}
	}
	if longest == 0 {
		return 0
	}

	return longest +
		commonChars(a[:posA], b[:posB]) +
		commonChars(a[posA+longest:], b[posB+longest:])
}
