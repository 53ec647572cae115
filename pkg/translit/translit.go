// Package translit converts text in any script to an ASCII approximation.
//
// Two fixed implementations exist and are chosen by configuration, never by
// probing the environment:
//   - ModeUnidecode: table driven, handles non-Latin scripts ("北京" -> "Bei Jing").
//   - ModeFold: iconv-style folding of Latin diacritics; other scripts are dropped.
package translit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterator converts text to ASCII on a best-effort basis.
// Implementations return the input unchanged when conversion fails.
type Transliterator interface {
	Transliterate(s string) string
}

// Mode selects a Transliterator implementation.
type Mode string

const (
	ModeUnidecode Mode = "unidecode"
	ModeFold      Mode = "fold"
)

// New returns the transliterator for mode. Empty mode means ModeUnidecode.
func New(mode Mode) (Transliterator, error) {
	switch mode {
	case ModeUnidecode, "":
		return Unidecode{}, nil
	case ModeFold:
		return Fold{}, nil
	default:
		return nil, fmt.Errorf("unknown transliterator mode %q", mode)
	}
}

// Rich reports whether mode handles non-Latin scripts itself.
func (m Mode) Rich() bool {
	return m == ModeUnidecode || m == ""
}

// Unidecode transliterates through the unidecode tables. Text is brought to
// NFKC first so that decomposed accents and full-width forms hit the tables.
type Unidecode struct{}

func (Unidecode) Transliterate(s string) string {
	if s == "" {
		return s
	}
	return unidecode.Unidecode(norm.NFKC.String(s))
}

// letters that have no canonical decomposition to ASCII.
var foldSpecial = strings.NewReplacer(
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ß", "ss",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ı", "i",
)

// Fold approximates iconv's ASCII//TRANSLIT//IGNORE: compatibility
// decomposition, combining marks removed, anything still outside ASCII dropped.
type Fold struct{}

func (Fold) Transliterate(s string) string {
	if s == "" {
		return s
	}
	// transform.Chain is stateful, build one per call.
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, foldSpecial.Replace(s))
	if err != nil {
		return s
	}
	return out
}
