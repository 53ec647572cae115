// Package normalize builds canonical comparison keys for free-form strings
// and dates.
package normalize

import (
	"strings"

	"github.com/LeandroLuccerini/similarity/pkg/translit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// StringNormalizer reduces text to lowercase ASCII letters and digits with
// every space removed, e.g. "  Héllò---Wörld!! " -> "helloworld".
// It is safe for concurrent use.
type StringNormalizer struct {
	translit translit.Transliterator
	compose  bool
}

// NewStringNormalizer returns a normalizer using the transliterator for mode.
func NewStringNormalizer(mode translit.Mode) (*StringNormalizer, error) {
	tr, err := translit.New(mode)
	if err != nil {
		return nil, err
	}
	return &StringNormalizer{translit: tr, compose: !mode.Rich()}, nil
}

// NewStringNormalizerWith wraps an arbitrary transliterator. When compose is
// set the text is brought to NFC before transliteration.
func NewStringNormalizerWith(tr translit.Transliterator, compose bool) *StringNormalizer {
	return &StringNormalizer{translit: tr, compose: compose}
}

// Normalize returns the comparison key for s, or false when nothing is left.
func (n *StringNormalizer) Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	// cases.Caser keeps state, so it is not shared between goroutines.
	s = cases.Lower(language.Und).String(s)
	if n.compose {
		s = norm.NFC.String(s)
	}
	s = n.translit.Transliterate(s)

	// Keep ASCII letters and digits only; spaces go too.
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		}
	}

	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
