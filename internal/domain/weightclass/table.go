package weightclass

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
)

var (
	ErrMissingGender    = errors.New("weight categories missing for gender")
	ErrInvalidThreshold = errors.New("invalid weight threshold")
)

// Entry is one record of the weight-category resource. Entries sharing a gender
// are merged.
type Entry struct {
	Gender  member.Gender
	Weights []float64
}

// Table holds ascending weight-class thresholds per gender. It is immutable
// once built and safe to share.
type Table struct {
	thresholds map[member.Gender][]float64
}

// NewTable merges entries by gender and requires thresholds for every gender.
func NewTable(entries []Entry) (*Table, error) {
	thresholds := make(map[member.Gender][]float64, len(member.AllGenders))
	for _, entry := range entries {
		for _, w := range entry.Weights {
			if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: %v for %s", ErrInvalidThreshold, w, entry.Gender)
			}
		}
		thresholds[entry.Gender] = append(thresholds[entry.Gender], entry.Weights...)
	}

	for _, gender := range member.AllGenders {
		weights := thresholds[gender]
		if len(weights) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingGender, gender)
		}
		slices.Sort(weights)
		thresholds[gender] = slices.Compact(weights)
	}

	return &Table{thresholds: thresholds}, nil
}

// Classify returns the tightest class whose threshold is not below weight, or
// the heaviest class when weight exceeds every threshold.
func (t *Table) Classify(gender member.Gender, weight float64) (float64, error) {
	weights := t.thresholds[gender]
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingGender, gender)
	}

	idx, _ := slices.BinarySearch(weights, weight)
	if idx == len(weights) {
		return weights[len(weights)-1], nil
	}
	return weights[idx], nil
}

func (t *Table) Thresholds(gender member.Gender) []float64 {
	return slices.Clone(t.thresholds[gender])
}

// Categories returns every distinct threshold across genders in ascending order.
func (t *Table) Categories() []float64 {
	var all []float64
	for _, gender := range member.AllGenders {
		all = append(all, t.thresholds[gender]...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
