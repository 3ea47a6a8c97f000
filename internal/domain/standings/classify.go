package standings

import "strings"

// MatchView is a match with its display flags. The flags never affect
// aggregation.
type MatchView struct {
	Match
	HasAnyScore bool
	IsParseable bool
	IsAutoDraw  bool
	// IsInvalid marks registered text that cannot be computed.
	IsInvalid bool
}

// MatchdaySummary groups the views of one matchday with its counters.
type MatchdaySummary struct {
	Name       string
	Computable int
	Registered int
	Total      int
	Matches    []MatchView
}

func ClassifyMatch(m Match) MatchView {
	score := strings.TrimSpace(m.Score)
	if score == "" {
		score = UnsetScore
	}
	_, parseable := ParseScore(score)
	registered := HasAnyScore(score)

	return MatchView{
		Match:       Match{Home: m.Home, Away: m.Away, Score: score},
		HasAnyScore: registered,
		IsParseable: parseable,
		IsAutoDraw:  IsAutoDraw(score),
		IsInvalid:   registered && !parseable,
	}
}

func SummarizeMatchday(md Matchday) MatchdaySummary {
	out := MatchdaySummary{
		Name:    md.Name,
		Total:   len(md.Matches),
		Matches: make([]MatchView, 0, len(md.Matches)),
	}
	for _, m := range md.Matches {
		view := ClassifyMatch(m)
		if view.HasAnyScore {
			out.Registered++
		}
		if view.IsParseable {
			out.Computable++
		}
		out.Matches = append(out.Matches, view)
	}
	return out
}
