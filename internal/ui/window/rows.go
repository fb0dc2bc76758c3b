package window

import (
	"fmt"
	"strings"

	"lapwatch/internal/core/model"
	"lapwatch/internal/core/timefmt"
)

type highlight int

const (
	highlightNone highlight = iota
	highlightBest
	highlightWorst
)

type resultRow struct {
	Number    string
	Time      string
	Diff      string
	Slower    bool
	Highlight highlight
}

// buildRows formats marks for the results list. Best and worst are only
// marked once two or more results exist; best wins when they coincide.
func buildRows(marks []model.Mark, precision model.Precision, stats model.Statistics, highlightBestWorst bool) []resultRow {
	rows := make([]resultRow, 0, len(marks))
	for index, mark := range marks {
		row := resultRow{
			Number: fmt.Sprintf("#%d", mark.Number),
			Time:   timefmt.Format(mark.Value, precision),
		}
		if mark.HasDiff {
			row.Diff = timefmt.FormatSigned(mark.Diff, precision)
			row.Slower = mark.Diff >= 0
		}
		if highlightBestWorst && len(marks) >= 2 {
			switch index {
			case stats.BestIndex:
				row.Highlight = highlightBest
			case stats.WorstIndex:
				row.Highlight = highlightWorst
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func statsText(stats model.Statistics, ok bool, precision model.Precision) string {
	if !ok {
		return ""
	}
	parts := []string{
		"Total " + timefmt.Format(stats.Sum, precision),
		"Average " + timefmt.Format(stats.Average, precision),
		"Best " + timefmt.Format(stats.Best, precision),
		"Worst " + timefmt.Format(stats.Worst, precision),
	}
	return strings.Join(parts, "   ")
}

func emptyHint(mode model.Mode) string {
	return fmt.Sprintf("No times recorded yet. Start the stopwatch and press %s to record times.", mode.Label())
}
