package ledger

import (
	"time"

	"lapwatch/internal/core/model"
)

// Statistics aggregates mark values. It reports false when no marks exist.
// Best and worst ties resolve to the earliest mark.
func (ledger *Ledger) Statistics() (model.Statistics, bool) {
	if len(ledger.marks) == 0 {
		return model.Statistics{}, false
	}

	stats := model.Statistics{
		Count: len(ledger.marks),
		Best:  ledger.marks[0].Value,
		Worst: ledger.marks[0].Value,
	}
	for index, mark := range ledger.marks {
		stats.Sum += mark.Value
		if mark.Value < stats.Best {
			stats.Best = mark.Value
			stats.BestIndex = index
		}
		if mark.Value > stats.Worst {
			stats.Worst = mark.Value
			stats.WorstIndex = index
		}
	}
	stats.Average = (stats.Sum / time.Duration(stats.Count)).Truncate(time.Millisecond)
	return stats, true
}

// BestWorst returns the zero-based indices of the shortest and longest
// marks, or -1, -1 when the ledger is empty.
func (ledger *Ledger) BestWorst() (best, worst int) {
	stats, ok := ledger.Statistics()
	if !ok {
		return -1, -1
	}
	return stats.BestIndex, stats.WorstIndex
}
