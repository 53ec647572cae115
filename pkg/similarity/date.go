package similarity

import (
	"fmt"
	"math"

	"github.com/LeandroLuccerini/similarity/pkg/normalize"
)

// DatePartsWeights is how much each date part contributes to a perfect score.
// The weights should add up to 1; nothing enforces it.
type DatePartsWeights struct {
	Year  float64 `yaml:"year" json:"year"`
	Month float64 `yaml:"month" json:"month"`
	Day   float64 `yaml:"day" json:"day"`
}

// DefaultDatePartsWeights favours the year: 0.6 / 0.2 / 0.2.
func DefaultDatePartsWeights() DatePartsWeights {
	return DatePartsWeights{Year: 0.6, Month: 0.2, Day: 0.2}
}

// DateDiffPenalty shrinks a part's weight by DecayFactor for every unit of
// difference, up to MaxAcceptedDiff units. Beyond that the part scores zero.
type DateDiffPenalty struct {
	MaxAcceptedDiff int     `yaml:"max_accepted_diff" json:"max_accepted_diff"`
	DecayFactor     float64 `yaml:"decay_factor" json:"decay_factor"`
}

// DefaultDateDiffPenalty accepts up to 5 units of difference at 0.7 per unit.
func DefaultDateDiffPenalty() DateDiffPenalty {
	return DateDiffPenalty{MaxAcceptedDiff: 5, DecayFactor: 0.7}
}

// Calculate returns weight * DecayFactor^|a-b|, or 0 once |a-b| exceeds
// MaxAcceptedDiff.
func (p DateDiffPenalty) Calculate(weight float64, a, b int) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return weight
	case diff <= p.MaxAcceptedDiff:
		return weight * math.Pow(p.DecayFactor, float64(diff))
	default:
		return 0
	}
}

// DateConfig configures DateFuzzy.
type DateConfig struct {
	// TwoDigitYearThreshold: yy >= threshold is 19yy, below is 20yy.
	// Negative means the current year's last two digits.
	TwoDigitYearThreshold int              `yaml:"two_digit_year_threshold" json:"two_digit_year_threshold"`
	Weights               DatePartsWeights `yaml:"weights" json:"weights"`
	Penalty               DateDiffPenalty  `yaml:"penalty" json:"penalty"`
	// TranspositionCeiling is the score granted to a pair that only differs
	// by day and month being swapped.
	TranspositionCeiling float64 `yaml:"transposition_ceiling" json:"transposition_ceiling"`
}

// Validate checks that the decay factor is in (0, 1], the accepted difference
// and the weights are not negative, and the ceiling is in [0, 1].
func (c DateConfig) Validate() error {
	p, w := c.Penalty, c.Weights
	switch {
	case p.DecayFactor <= 0 || p.DecayFactor > 1:
		return fmt.Errorf("%w: decay_factor %v not in (0, 1]", ErrInvalidConfig, p.DecayFactor)
	case p.MaxAcceptedDiff < 0:
		return fmt.Errorf("%w: negative max_accepted_diff %d", ErrInvalidConfig, p.MaxAcceptedDiff)
	case w.Year < 0 || w.Month < 0 || w.Day < 0:
		return fmt.Errorf("%w: negative weight in %+v", ErrInvalidConfig, w)
	case c.TranspositionCeiling < 0 || c.TranspositionCeiling > 1:
		return fmt.Errorf("%w: transposition_ceiling %v not in [0, 1]", ErrInvalidConfig, c.TranspositionCeiling)
	}
	return nil
}

// DefaultDateConfig returns the default weights and penalty, a 0.8
// transposition ceiling and a clock-based two-digit year threshold.
func DefaultDateConfig() DateConfig {
	return DateConfig{
		TwoDigitYearThreshold: normalize.CurrentYearThreshold,
		Weights:               DefaultDatePartsWeights(),
		Penalty:               DefaultDateDiffPenalty(),
		TranspositionCeiling:  0.8,
	}
}

// DateFuzzy scores dates part by part. Unparseable dates score 0 rather than
// failing, so a garbage field never aborts a batch.
type DateFuzzy struct {
	cfg        DateConfig
	normalizer *normalize.DateNormalizer
}

// NewDateFuzzy returns a DateFuzzy similarity for cfg.
func NewDateFuzzy(cfg DateConfig) *DateFuzzy {
	return &DateFuzzy{
		cfg:        cfg,
		normalizer: normalize.NewDateNormalizer(cfg.TwoDigitYearThreshold),
	}
}

// Similarity never returns an error.
func (d *DateFuzzy) Similarity(a, b string) (float64, error) {
	da, ok := d.normalizer.Parse(a)
	if !ok {
		return 0, nil
	}
	db, ok := d.normalizer.Parse(b)
	if !ok {
		return 0, nil
	}

	w, p := d.cfg.Weights, d.cfg.Penalty
	score := p.Calculate(w.Year, da.Year, db.Year) +
		p.Calculate(w.Month, da.Month, db.Month) +
		p.Calculate(w.Day, da.Day, db.Day)

	if dayMonthSwapped(da, db) {
		score = math.Max(score, d.cfg.TranspositionCeiling)
	}
	return finish(score), nil
}

func dayMonthSwapped(a, b normalize.CanonicalDate) bool {
	return a.Year == b.Year &&
		a.Day != b.Day &&
		a.Day == b.Month &&
		a.Month == b.Day
}
