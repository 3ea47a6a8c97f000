package standings

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Table maps a team name to its cumulative record.
type Table map[string]TeamRecord

// NewTable seeds zeroed records for names. Blank names are ignored.
func NewTable(names ...string) Table {
	t := make(Table, len(names))
	for _, name := range names {
		t.ensure(name)
	}
	return t
}

func (t Table) ensure(name string) {
	if name == "" {
		return
	}
	if _, ok := t[name]; ok {
		return
	}
	t[name] = TeamRecord{Name: name}
}

// Apply folds one match into the table and reports whether it counted.
// Both teams are registered even when the score cannot be parsed.
func (t Table) Apply(m Match) bool {
	t.ensure(m.Home)
	t.ensure(m.Away)
	if m.Home == "" || m.Away == "" {
		return false
	}

	score, ok := ParseScore(m.Score)
	if !ok {
		return false
	}

	home := t[m.Home]
	away := t[m.Away]

	home.Played++
	away.Played++
	home.GoalsFor += score.Home
	home.GoalsAgainst += score.Away
	away.GoalsFor += score.Away
	away.GoalsAgainst += score.Home

	switch {
	case score.Home > score.Away:
		home.Won++
		home.Points += pointsWin
		away.Lost++
	case score.Home < score.Away:
		away.Won++
		away.Points += pointsWin
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points += pointsDraw
		away.Points += pointsDraw
	}

	t[m.Home] = home
	t[m.Away] = away
	return true
}

// Merge adds every counter of other into t. Merging is commutative and
// associative, so partial tables may be folded in any order.
func (t Table) Merge(other Table) {
	for name, rec := range other {
		t.ensure(name)
		cur := t[name]
		cur.Played += rec.Played
		cur.Won += rec.Won
		cur.Drawn += rec.Drawn
		cur.Lost += rec.Lost
		cur.GoalsFor += rec.GoalsFor
		cur.GoalsAgainst += rec.GoalsAgainst
		cur.Points += rec.Points
		t[name] = cur
	}
}

// Finalize derives goal difference from the accumulated goals.
func (t Table) Finalize() Table {
	for name, rec := range t {
		rec.GoalDiff = rec.GoalsFor - rec.GoalsAgainst
		t[name] = rec
	}
	return t
}

// AggregateMatchday folds a single matchday into a fresh partial table.
// The result is not finalised. counted is the number of parseable matches.
func AggregateMatchday(md Matchday) (partial Table, counted int) {
	partial = make(Table)
	for _, m := range md.Matches {
		if partial.Apply(m) {
			counted++
		}
	}
	return partial, counted
}

// ComputeStandings folds every match of doc into a finalised table. The team
// universe is the roster plus every team seen in a match.
func ComputeStandings(doc Document) Table {
	table := NewTable(doc.Roster...)
	for _, md := range doc.Matchdays {
		for _, m := range md.Matches {
			table.Apply(m)
		}
	}
	return table.Finalize()
}
