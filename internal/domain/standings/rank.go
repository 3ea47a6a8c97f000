package standings

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders team names the way the league's audience reads them.
var DefaultLocale = language.Spanish

// Rank orders records by points, goal difference and goals scored (all
// descending), then by name using the locale collation. Positions are the
// 1-based index after sorting, so fully tied rows get distinct positions.
func Rank(table Table, locale language.Tag) []RankedRow {
	rows := make([]RankedRow, 0, len(table))
	for _, rec := range table {
		rows = append(rows, RankedRow{TeamRecord: rec})
	}

	collator := collate.New(locale)
	slices.SortFunc(rows, func(a, b RankedRow) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return b.GoalDiff - a.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return b.GoalsFor - a.GoalsFor
		}
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}
