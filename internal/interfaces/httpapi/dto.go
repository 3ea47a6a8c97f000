package httpapi

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/standings"
)

type standingRowDTO struct {
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

type matchDTO struct {
	Home        string `json:"home"`
	Away        string `json:"away"`
	Score       string `json:"score"`
	HasAnyScore bool   `json:"hasAnyScore"`
	IsParseable bool   `json:"isParseable"`
	IsAutoDraw  bool   `json:"isAutoDraw"`
	IsInvalid   bool   `json:"isInvalid"`
}

type matchdayDTO struct {
	Name       string     `json:"name"`
	Computable int        `json:"computable"`
	Registered int        `json:"registered"`
	Total      int        `json:"total"`
	Matches    []matchDTO `json:"matches"`
}

type standingsDTO struct {
	LastUpdated string           `json:"lastUpdated"`
	ComputedAt  time.Time        `json:"computedAt"`
	Items       []standingRowDTO `json:"items"`
}

type matchdaysDTO struct {
	LastUpdated string        `json:"lastUpdated"`
	ComputedAt  time.Time     `json:"computedAt"`
	Items       []matchdayDTO `json:"items"`
}

type snapshotDTO struct {
	LastUpdated string           `json:"lastUpdated"`
	ComputedAt  time.Time        `json:"computedAt"`
	Standings   []standingRowDTO `json:"standings"`
	Matchdays   []matchdayDTO    `json:"matchdays"`
}

func standingsToDTO(s standings.Snapshot) standingsDTO {
	return standingsDTO{LastUpdated: s.LastUpdated, ComputedAt: s.ComputedAt, Items: rowsToDTO(s.Table)}
}

func matchdaysToDTO(s standings.Snapshot) matchdaysDTO {
	return matchdaysDTO{LastUpdated: s.LastUpdated, ComputedAt: s.ComputedAt, Items: summariesToDTO(s.Matchdays)}
}

func snapshotToDTO(s standings.Snapshot) snapshotDTO {
	return snapshotDTO{
		LastUpdated: s.LastUpdated,
		ComputedAt:  s.ComputedAt,
		Standings:   rowsToDTO(s.Table),
		Matchdays:   summariesToDTO(s.Matchdays),
	}
}

func rowsToDTO(rows []standings.RankedRow) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
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
	return out
}

func summariesToDTO(summaries []standings.MatchdaySummary) []matchdayDTO {
	out := make([]matchdayDTO, 0, len(summaries))
	for _, md := range summaries {
		matches := make([]matchDTO, 0, len(md.Matches))
		for _, m := range md.Matches {
			matches = append(matches, matchDTO{
				Home:        m.Home,
				Away:        m.Away,
				Score:       m.Score,
				HasAnyScore: m.HasAnyScore,
				IsParseable: m.IsParseable,
				IsAutoDraw:  m.IsAutoDraw,
				IsInvalid:   m.IsInvalid,
			})
		}
		out = append(out, matchdayDTO{
			Name:       md.Name,
			Computable: md.Computable,
			Registered: md.Registered,
			Total:      md.Total,
			Matches:    matches,
		})
	}
	return out
}
