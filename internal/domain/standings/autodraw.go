package standings

// ApplyAutoDraws returns a copy of doc where every intra-participant match
// without a reported score carries AutoDrawLabel. doc is left untouched and
// existing scores are never overridden.
func (r Rules) ApplyAutoDraws(doc Document) Document {
	out := doc.Clone()
	for i := range out.Matchdays {
		matches := out.Matchdays[i].Matches
		for j := range matches {
			if !IsUnset(matches[j].Score) {
				continue
			}
			if r.IsIntraParticipant(matches[j].Home, matches[j].Away) {
				matches[j].Score = AutoDrawLabel
			}
		}
	}
	return out
}
