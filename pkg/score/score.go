// Package score turns the five check rates into sub-scores and a
// weighted composite score, all on a 0-100 scale.
package score

import "fmt"

// Weights holds the positive weight of each check in the composite
// score. Weights need not sum to 100; the total is normalized by their
// sum.
type Weights struct {
	Completeness float64 `koanf:"completeness"`
	Validity     float64 `koanf:"validity"`
	Uniqueness   float64 `koanf:"uniqueness"`
	Consistency  float64 `koanf:"consistency"`
	Outliers     float64 `koanf:"outliers"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Completeness: 25,
		Validity:     25,
		Uniqueness:   20,
		Consistency:  20,
		Outliers:     10,
	}
}

// Validate rejects non-positive weights.
func (w Weights) Validate() error {
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"completeness", w.Completeness},
		{"validity", w.Validity},
		{"uniqueness", w.Uniqueness},
		{"consistency", w.Consistency},
		{"outliers", w.Outliers},
	} {
		if entry.value <= 0 {
			return fmt.Errorf("score weight %s must be positive, got %v", entry.name, entry.value)
		}
	}
	return nil
}

func (w Weights) sum() float64 {
	return w.Completeness + w.Validity + w.Uniqueness + w.Consistency + w.Outliers
}

// Inputs are the rates produced by the checks, each in [0, 1].
type Inputs struct {
	MissingPct       float64
	InvalidPct       float64
	DuplicateRowsPct float64
	DuplicateKeyPct  float64
	ConsistencyPct   float64
	OutlierPct       float64
}

// Scores are the five sub-scores and the weighted total, all in
// [0, 100].
type Scores struct {
	Completeness float64 `json:"completeness"`
	Validity     float64 `json:"validity"`
	Uniqueness   float64 `json:"uniqueness"`
	Consistency  float64 `json:"consistency"`
	Outliers     float64 `json:"outliers"`
	Total        float64 `json:"total"`
}

// Compute maps each rate to 100*(1-rate), clamped to [0, 100], and
// combines them into the weighted total. The uniqueness rate is the
// worse of the whole-row duplicate rate and the worst key-group rate: a
// dataset is only as unique as its weakest key.
func Compute(in Inputs, w Weights) Scores {
	uniquenessRate := in.DuplicateRowsPct
	if in.DuplicateKeyPct > uniquenessRate {
		uniquenessRate = in.DuplicateKeyPct
	}

	s := Scores{
		Completeness: bounded(100 * (1 - in.MissingPct)),
		Validity:     bounded(100 * (1 - in.InvalidPct)),
		Uniqueness:   bounded(100 * (1 - uniquenessRate)),
		Consistency:  bounded(100 * (1 - in.ConsistencyPct)),
		Outliers:     bounded(100 * (1 - in.OutlierPct)),
	}

	weighted := s.Completeness*w.Completeness +
		s.Validity*w.Validity +
		s.Uniqueness*w.Uniqueness +
		s.Consistency*w.Consistency +
		s.Outliers*w.Outliers
	s.Total = bounded(weighted / w.sum())
	return s
}

func bounded(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
