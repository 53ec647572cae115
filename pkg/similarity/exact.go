package similarity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Exact scores 1 when both strings are equal ignoring case and surrounding
// whitespace, 0 otherwise. Accents and punctuation still count.
type Exact struct{}

func (Exact) Similarity(a, b string) (float64, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0, fmt.Errorf("%w: both arguments must be not empty, found a = %q b = %q", ErrInvalidInput, a, b)
	}

	lower := cases.Lower(language.Und)
	if lower.String(a) == lower.String(b) {
		return 1, nil
	}
	return 0, nil
}
