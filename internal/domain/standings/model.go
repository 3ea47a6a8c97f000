package standings

import "time"

// Match is one fixture of a matchday. Score is kept verbatim as reported.
type Match struct {
	Home  string
	Away  string
	Score string
}

type Matchday struct {
	Name    string
	Matches []Match
}

// Document is the normalised results snapshot the engine consumes.
type Document struct {
	LastUpdated string
	Roster      []string
	Matchdays   []Matchday
}

// Clone returns a copy that shares no slices with d.
func (d Document) Clone() Document {
	out := Document{
		LastUpdated: d.LastUpdated,
		Roster:      append([]string(nil), d.Roster...),
		Matchdays:   make([]Matchday, 0, len(d.Matchdays)),
	}
	for _, md := range d.Matchdays {
		out.Matchdays = append(out.Matchdays, Matchday{
			Name:    md.Name,
			Matches: append([]Match(nil), md.Matches...),
		})
	}
	return out
}

// MatchCount returns the number of matches across all matchdays.
func (d Document) MatchCount() int {
	total := 0
	for _, md := range d.Matchdays {
		total += len(md.Matches)
	}
	return total
}

// TeamRecord holds cumulative statistics for one team.
type TeamRecord struct {
	Name         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// RankedRow is a TeamRecord with its 1-based table position.
type RankedRow struct {
	TeamRecord
	Position int
}

// Snapshot is the full computed view handed to presentation adapters.
type Snapshot struct {
	LastUpdated string
	Table       []RankedRow
	Matchdays   []MatchdaySummary
	ComputedAt  time.Time
}
