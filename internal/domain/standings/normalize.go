package standings

import "strings"

// DefaultMatchdayName is used when a matchday arrives with a missing or
// null name.
const DefaultMatchdayName = "Jornada"

// NormalizeDocument trims every field, normalises team names, defaults blank
// scores to UnsetScore and drops blank roster entries. Loaders call it once at
// the input boundary.
func NormalizeDocument(doc Document) Document {
	out := Document{
		LastUpdated: strings.TrimSpace(doc.LastUpdated),
		Roster:      make([]string, 0, len(doc.Roster)),
		Matchdays:   make([]Matchday, 0, len(doc.Matchdays)),
	}

	for _, name := range doc.Roster {
		if name = NormalizeTeamName(name); name != "" {
			out.Roster = append(out.Roster, name)
		}
	}

	for _, md := range doc.Matchdays {
		normalized := Matchday{
			Name:    strings.TrimSpace(md.Name),
			Matches: make([]Match, 0, len(md.Matches)),
		}
		for _, m := range md.Matches {
			score := strings.TrimSpace(m.Score)
			if score == "" {
				score = UnsetScore
			}
			normalized.Matches = append(normalized.Matches, Match{
				Home:  NormalizeTeamName(m.Home),
				Away:  NormalizeTeamName(m.Away),
				Score: score,
			})
		}
		out.Matchdays = append(out.Matchdays, normalized)
	}

	return out
}
