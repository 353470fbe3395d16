package team

import (
	"math"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
)

func (t *Team) Count(kind member.Kind) int {
	return len(t.members[kind])
}

func (t *Team) CountByGender(kind member.Kind, gender member.Gender) int {
	count := 0
	for _, m := range t.members[kind] {
		if m.Gender == gender {
			count++
		}
	}
	return count
}

func (t *Team) TotalMembers() int {
	total := 0
	for _, partition := range t.members {
		total += len(partition)
	}
	return total
}

func (t *Team) CoachCountOfType(coachType member.CoachType) int {
	count := 0
	for _, m := range t.members[member.KindCoach] {
		if m.Coach.Type == coachType {
			count++
		}
	}
	return count
}

func (t *Team) sumWrestlers(value func(*member.Wrestler) int) int {
	total := 0
	for _, m := range t.members[member.KindWrestler] {
		total += value(m.Wrestler)
	}
	return total
}

func (t *Team) TotalMatches() int {
	return t.sumWrestlers((*member.Wrestler).TotalMatches)
}

func (t *Team) TotalWins() int {
	return t.sumWrestlers(func(w *member.Wrestler) int { return w.Wins })
}

func (t *Team) TotalLosses() int {
	return t.sumWrestlers(func(w *member.Wrestler) int { return w.Losses })
}

func (t *Team) TotalPoints() int {
	return t.sumWrestlers(func(w *member.Wrestler) int { return w.TotalPoints })
}

func (t *Team) TotalPinCount() int {
	return t.sumWrestlers(func(w *member.Wrestler) int { return w.WinsByPin })
}

// WinPercentage is NaN while the team has no recorded matches.
func (t *Team) WinPercentage() float64 {
	return percentOf(t.TotalWins(), t.TotalMatches())
}

// LossPercentage is NaN while the team has no recorded matches.
func (t *Team) LossPercentage() float64 {
	return percentOf(t.TotalLosses(), t.TotalMatches())
}

// AveragePointsPerMatch is NaN while the team has no recorded matches.
func (t *Team) AveragePointsPerMatch() float64 {
	matches := t.TotalMatches()
	if matches == 0 {
		return math.NaN()
	}
	return float64(t.TotalPoints()) / float64(matches)
}

func percentOf(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d) * 100
}

// Statistics is a point-in-time snapshot of the aggregate queries.
type Statistics struct {
	TotalMembers          int
	WrestlerCount         int
	MaleWrestlerCount     int
	FemaleWrestlerCount   int
	CoachCount            int
	MaleCoachCount        int
	FemaleCoachCount      int
	HandsOnCoachCount     int
	SupportCoachCount     int
	TotalMatches          int
	TotalWins             int
	TotalLosses           int
	WinPercentage         float64
	LossPercentage        float64
	TotalPoints           int
	TotalPinCount         int
	AveragePointsPerMatch float64
}

func (t *Team) Statistics() Statistics {
	return Statistics{
		TotalMembers:          t.TotalMembers(),
		WrestlerCount:         t.Count(member.KindWrestler),
		MaleWrestlerCount:     t.CountByGender(member.KindWrestler, member.GenderMale),
		FemaleWrestlerCount:   t.CountByGender(member.KindWrestler, member.GenderFemale),
		CoachCount:            t.Count(member.KindCoach),
		MaleCoachCount:        t.CountByGender(member.KindCoach, member.GenderMale),
		FemaleCoachCount:      t.CountByGender(member.KindCoach, member.GenderFemale),
		HandsOnCoachCount:     t.CoachCountOfType(member.CoachHandsOn),
		SupportCoachCount:     t.CoachCountOfType(member.CoachSupport),
		TotalMatches:          t.TotalMatches(),
		TotalWins:             t.TotalWins(),
		TotalLosses:           t.TotalLosses(),
		WinPercentage:         t.WinPercentage(),
		LossPercentage:        t.LossPercentage(),
		TotalPoints:           t.TotalPoints(),
		TotalPinCount:         t.TotalPinCount(),
		AveragePointsPerMatch: t.AveragePointsPerMatch(),
	}
}

// BreakdownEntry counts wrestlers that fall into one weight category.
type BreakdownEntry struct {
	WeightCategory float64
	All            int
	Male           int
	Female         int
}

// CategoryTable is the part of the weight-class table the breakdown needs.
type CategoryTable interface {
	member.WeightClassifier
	Categories() []float64
}

// WeightBreakdown returns one entry per known category, including empty ones.
func (t *Team) WeightBreakdown(table CategoryTable) ([]BreakdownEntry, error) {
	categories := table.Categories()
	entries := make([]BreakdownEntry, len(categories))
	index := make(map[float64]int, len(categories))
	for i, c := range categories {
		entries[i].WeightCategory = c
		index[c] = i
	}

	for _, m := range t.members[member.KindWrestler] {
		category, err := m.WeightCategory(table)
		if err != nil {
			return nil, err
		}
		i, ok := index[category]
		if !ok {
			continue
		}
		entries[i].All++
		switch m.Gender {
		case member.GenderMale:
			entries[i].Male++
		case member.GenderFemale:
			entries[i].Female++
		}
	}

	return entries, nil
}
