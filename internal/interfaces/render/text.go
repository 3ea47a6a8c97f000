package render

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/valyala/bytebufferpool"
)

const minTeamColumn = 6

// WriteTable renders the ranked table as fixed-width text.
func WriteTable(w io.Writer, rows []standings.RankedRow) error {
	width := minTeamColumn
	for _, row := range rows {
		width = max(width, utf8.RuneCountInString(row.Name))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "%3s  %-*s %3s %3s %3s %3s %4s %4s %4s %4s\n",
		"Pos", width, "Equipo", "PJ", "PG", "PE", "PP", "GF", "GC", "DG", "PTS")
	for _, row := range rows {
		fmt.Fprintf(buf, "%3d  %-*s %3d %3d %3d %3d %4d %4d %4s %4d\n",
			row.Position, width, row.Name,
			row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, signed(row.GoalDiff), row.Points)
	}

	_, err := buf.WriteTo(w)
	return err
}

// WriteMatchdays renders every matchday with its counters and match flags.
func WriteMatchdays(w io.Writer, summaries []standings.MatchdaySummary) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, md := range summaries {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(buf, "%s  [%d/%d/%d]\n", md.Name, md.Computable, md.Registered, md.Total)
		for _, m := range md.Matches {
			fmt.Fprintf(buf, "  %s vs %s  %s", m.Home, m.Away, m.Score)
			if m.IsAutoDraw {
				buf.WriteString("  AUTO")
			}
			if m.IsInvalid {
				buf.WriteString("  FORMATO")
			}
			buf.WriteString("\n")
		}
	}
	if len(summaries) > 0 {
		buf.WriteString("\ncomputables/registrados/total\n")
	}

	_, err := buf.WriteTo(w)
	return err
}

func signed(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
