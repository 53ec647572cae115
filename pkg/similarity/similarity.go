// Package similarity scores how alike two textual representations of the same
// value are, as a number between 0 and 1.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeandroLuccerini/similarity/pkg/normalize"
	"github.com/LeandroLuccerini/similarity/pkg/translit"
)

var (
	// ErrInvalidInput reports an operand that is empty or normalizes to nothing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedKind reports an unknown strategy name.
	ErrUnsupportedKind = errors.New("unsupported similarity type")
	// ErrInvalidConfig reports a setting outside its accepted range.
	ErrInvalidConfig = errors.New("invalid similarity config")
)

// Similarity scores a pair of strings. Scores are in [0, 1], rounded to three
// decimals, and symmetric in a and b.
type Similarity interface {
	Similarity(a, b string) (float64, error)
}

// Kind names a similarity strategy.
type Kind string

const (
	KindStringExact Kind = "string-exact"
	KindStringFuzzy Kind = "string-fuzzy"
	KindDateFuzzy   Kind = "date-fuzzy"
)

// Kinds returns every supported strategy name.
func Kinds() []Kind {
	return []Kind{KindStringExact, KindStringFuzzy, KindDateFuzzy}
}

// Config carries what the strategies need to be built.
type Config struct {
	Transliterator translit.Mode `yaml:"transliterator" json:"transliterator"`
	Date           DateConfig    `yaml:"date" json:"date"`
}

// DefaultConfig returns the rich transliterator and DefaultDateConfig.
func DefaultConfig() Config {
	return Config{
		Transliterator: translit.ModeUnidecode,
		Date:           DefaultDateConfig(),
	}
}

// New builds the strategy for kind.
func New(kind Kind, cfg Config) (Similarity, error) {
	switch kind {
	case KindStringExact:
		return Exact{}, nil
	case KindStringFuzzy:
		n, err := normalize.NewStringNormalizer(cfg.Transliterator)
		if err != nil {
			return nil, err
		}
		return NewFuzzy(n), nil
	case KindDateFuzzy:
		return NewDateFuzzy(cfg.Date), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// Set holds one ready instance of every strategy.
type Set struct {
	byKind map[Kind]Similarity
}

// NewSet builds every strategy from cfg.
func NewSet(cfg Config) (*Set, error) {
	s := &Set{byKind: make(map[Kind]Similarity, len(Kinds()))}
	for _, k := range Kinds() {
		sim, err := New(k, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", k, err)
		}
		s.byKind[k] = sim
	}
	return s, nil
}

// Get returns the strategy for kind.
func (s *Set) Get(kind Kind) (Similarity, error) {
	sim, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	return sim, nil
}

// Score is a shortcut for Get(kind) followed by Similarity(a, b).
func (s *Set) Score(kind Kind, a, b string) (float64, error) {
	sim, err := s.Get(kind)
	if err != nil {
		return 0, err
	}
	return sim.Similarity(a, b)
}

// finish rounds to three decimals and clamps into [0, 1].
func finish(v float64) float64 {
	v = math.Round(v*1000) / 1000
	return math.Max(0, math.Min(1, v))
}
