package standings

import (
	"regexp"
	"sort"
	"strings"
)

// spaceClass matches ASCII whitespace plus the Unicode separators and BOM
// that result sheets carry (NBSP, thin space, ideographic space).
const spaceClass = `[\s\v\p{Z}\x{FEFF}]`

var (
	whitespaceRegex  = regexp.MustCompile(spaceClass + `+`)
	dashRegex        = regexp.MustCompile(spaceClass + `*[-–—]` + spaceClass + `*`)
	ownerPrefixRegex = regexp.MustCompile(`^([\p{L}\p{N}]+)` + spaceClass + `*-` + spaceClass + `*`)
)

// DefaultParticipantCodes are the umbrella competitors of the eFootball league.
var DefaultParticipantCodes = []string{"BJV", "CLT", "ROA"}

// NormalizeTeamName collapses whitespace and rewrites every hyphen variant
// into " - " so that "BJV- A", "BJV – A" and "BJV  -  A" compare equal.
func NormalizeTeamName(name string) string {
	out := whitespaceRegex.ReplaceAllString(name, " ")
	out = dashRegex.ReplaceAllString(out, " - ")
	return strings.Trim(out, " ")
}

// Rules decides which team-name prefixes identify a participant.
// The zero value accepts any alphanumeric prefix.
type Rules struct {
	codes map[string]struct{}
}

func NewRules(codes []string) Rules {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set[code] = struct{}{}
	}
	return Rules{codes: set}
}

func DefaultRules() Rules {
	return NewRules(DefaultParticipantCodes)
}

// Codes returns the configured participant codes in ascending order.
func (r Rules) Codes() []string {
	out := make([]string, 0, len(r.codes))
	for code := range r.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// IsKnownCode reports whether code would be accepted as an owner code.
func (r Rules) IsKnownCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	if len(r.codes) == 0 {
		return true
	}
	_, ok := r.codes[code]
	return ok
}

// OwnerCode extracts the participant code of a team, or "" when the name
// carries no recognised prefix.
func (r Rules) OwnerCode(team string) string {
	match := ownerPrefixRegex.FindStringSubmatch(NormalizeTeamName(team))
	if match == nil {
		return ""
	}
	code := strings.ToUpper(match[1])
	if !r.IsKnownCode(code) {
		return ""
	}
	return code
}

// IsIntraParticipant reports whether both teams belong to the same participant.
// Two codeless teams never match.
func (r Rules) IsIntraParticipant(home, away string) bool {
	homeCode := r.OwnerCode(home)
	if homeCode == "" {
		return false
	}
	return homeCode == r.OwnerCode(away)
}
