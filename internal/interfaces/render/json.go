package render

import (
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
)

type tableRowJSON struct {
	Position     int    `json:"position"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDiff"`
	Points       int    `json:"points"`
}

type matchJSON struct {
	Home       string `json:"home"`
	Away       string `json:"away"`
	Score      string `json:"score"`
	IsAutoDraw bool   `json:"isAutoDraw"`
	IsInvalid  bool   `json:"isInvalid"`
}

type matchdayJSON struct {
	Name       string      `json:"name"`
	Computable int         `json:"computable"`
	Registered int         `json:"registered"`
	Total      int         `json:"total"`
	Matches    []matchJSON `json:"matches"`
}

// WriteTableJSON writes the ranked table of snapshot as indented JSON.
func WriteTableJSON(w io.Writer, snapshot standings.Snapshot) error {
	rows := make([]tableRowJSON, 0, len(snapshot.Table))
	for _, row := range snapshot.Table {
		rows = append(rows, tableRowJSON{
			Position:     row.Position,
			Team:         row.Name,
			Played:       row.Played,
			Won:          row.Won,
			Drawn:        row.Drawn,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDiff,
			Points:       row.Points,
		})
	}
	return writeJSON(w, struct {
		LastUpdated string         `json:"lastUpdated"`
		Standings   []tableRowJSON `json:"standings"`
	}{LastUpdated: snapshot.LastUpdated, Standings: rows})
}

// WriteMatchdaysJSON writes the matchday summaries of snapshot as indented JSON.
func WriteMatchdaysJSON(w io.Writer, snapshot standings.Snapshot) error {
	out := make([]matchdayJSON, 0, len(snapshot.Matchdays))
	for _, md := range snapshot.Matchdays {
		matches := make([]matchJSON, 0, len(md.Matches))
		for _, m := range md.Matches {
			matches = append(matches, matchJSON{
				Home:       m.Home,
				Away:       m.Away,
				Score:      m.Score,
				IsAutoDraw: m.IsAutoDraw,
				IsInvalid:  m.IsInvalid,
			})
		}
		out = append(out, matchdayJSON{
			Name:       md.Name,
			Computable: md.Computable,
			Registered: md.Registered,
			Total:      md.Total,
			Matches:    matches,
		})
	}
	return writeJSON(w, struct {
		LastUpdated string         `json:"lastUpdated"`
		Matchdays   []matchdayJSON `json:"matchdays"`
	}{LastUpdated: snapshot.LastUpdated, Matchdays: out})
}

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
