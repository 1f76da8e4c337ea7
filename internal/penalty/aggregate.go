package penalty

import (
	"math"

	"github.com/dice-stats/internal/domain"
)

// Item is a single priced occurrence
type Item struct {
	Multiplier int
	Value      *float64
	Unit       *domain.PenaltyUnit
}

// Summarize sums multiplier * value per known unit. Units whose sum is not
// positive are left out.
func Summarize(items []Item) []domain.PenaltySum {
	totals := make(map[domain.PenaltyUnit]float64, len(domain.PenaltyUnits))
	for _, item := range items {
		if item.Value == nil || item.Unit == nil {
			continue
		}
		multiplier := item.Multiplier
		if multiplier < 1 {
			multiplier = 1
		}
		totals[*item.Unit] += float64(multiplier) * *item.Value
	}

	sums := []domain.PenaltySum{}
	for _, unit := range domain.PenaltyUnits {
		total := roundCents(totals[unit])
		if total <= 0 {
			continue
		}
		sums = append(sums, domain.PenaltySum{Unit: unit, Sum: total})
	}
	return sums
}

// Combine merges two sum lists by unit
func Combine(a, b []domain.PenaltySum) []domain.PenaltySum {
	totals := make(map[domain.PenaltyUnit]float64)
	present := make(map[domain.PenaltyUnit]bool)
	for _, list := range [][]domain.PenaltySum{a, b} {
		for _, s := range list {
			totals[s.Unit] += s.Sum
			present[s.Unit] = true
		}
	}

	combined := []domain.PenaltySum{}
	for _, unit := range domain.PenaltyUnits {
		if !present[unit] {
			continue
		}
		combined = append(combined, domain.PenaltySum{Unit: unit, Sum: roundCents(totals[unit])})
	}
	return combined
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
