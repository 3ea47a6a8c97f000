package standings

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// UnsetScore marks a match without a reported result.
	UnsetScore = "-"
	// AutoDrawLabel replaces the score of an unplayed intra-participant match.
	AutoDrawLabel = "Empate automático (1-1)"

	autoDrawMarker = "empate automático"
)

var (
	parenScoreRegex = regexp.MustCompile(`\((\d+)` + spaceClass + `*[-:–—]` + spaceClass + `*(\d+)\)`)
	plainScoreRegex = regexp.MustCompile(`^(\d+)` + spaceClass + `*[-:–—]` + spaceClass + `*(\d+)$`)
)

// Score is a parsed result from the home team's perspective.
type Score struct {
	Home int
	Away int
}

// IsUnset reports whether text is the unset sentinel ("-" or blank).
func IsUnset(text string) bool {
	text = strings.TrimFunc(text, isSpace)
	return text == "" || text == UnsetScore
}

// HasAnyScore reports whether some result text was registered, parseable or not.
func HasAnyScore(text string) bool {
	return !IsUnset(text)
}

// IsAutoDraw reports whether text is a synthesised automatic draw.
func IsAutoDraw(text string) bool {
	return strings.Contains(strings.ToLower(text), autoDrawMarker)
}

// ParseScore extracts the goal pair from text. A parenthesised pair may be
// embedded anywhere; a bare pair must be the whole text. Free-form labels
// yield ok=false.
func ParseScore(text string) (Score, bool) {
	text = strings.TrimFunc(text, isSpace)
	if IsUnset(text) {
		return Score{}, false
	}

	if match := parenScoreRegex.FindStringSubmatch(text); match != nil {
		return scoreFromMatch(match)
	}
	if match := plainScoreRegex.FindStringSubmatch(text); match != nil {
		return scoreFromMatch(match)
	}
	return Score{}, false
}

// isSpace mirrors spaceClass for trimming.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}

func scoreFromMatch(match []string) (Score, bool) {
	home, err := strconv.Atoi(match[1])
	if err != nil {
		return Score{}, false
	}
	away, err := strconv.Atoi(match[2])
	if err != nil {
		return Score{}, false
	}
	return Score{Home: home, Away: away}, true
}
