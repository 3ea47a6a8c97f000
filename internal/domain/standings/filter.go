package standings

import "strings"

// FilterByParticipant keeps table rows owned by code and matches where either
// side is owned by code. Positions and matchday counters keep the values of
// the full snapshot.
func (r Rules) FilterByParticipant(snapshot Snapshot, code string) Snapshot {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return snapshot
	}

	out := Snapshot{
		LastUpdated: snapshot.LastUpdated,
		ComputedAt:  snapshot.ComputedAt,
		Table:       make([]RankedRow, 0, len(snapshot.Table)),
		Matchdays:   make([]MatchdaySummary, 0, len(snapshot.Matchdays)),
	}

	for _, row := range snapshot.Table {
		if r.OwnerCode(row.Name) == code {
			out.Table = append(out.Table, row)
		}
	}

	for _, md := range snapshot.Matchdays {
		filtered := md
		filtered.Matches = make([]MatchView, 0, len(md.Matches))
		for _, view := range md.Matches {
			if r.OwnerCode(view.Home) == code || r.OwnerCode(view.Away) == code {
				filtered.Matches = append(filtered.Matches, view)
			}
		}
		if len(filtered.Matches) > 0 {
			out.Matchdays = append(out.Matchdays, filtered)
		}
	}

	return out
}
