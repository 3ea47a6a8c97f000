package source

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
)

var errMalformedDocument = crerr.New("malformed results document")

var documentAPI = sonic.Config{UseNumber: true}.Froze()

// IsMalformed reports whether err comes from a document that could not be
// decoded.
func IsMalformed(err error) bool {
	return crerr.Is(err, errMalformedDocument)
}

// DecodeDocument parses a results document. Every field is optional: missing
// matchday names become "Jornada", missing scores become "-" and unknown or
// mistyped entries are skipped. Only invalid JSON or a non-object top level
// is rejected. A literal null yields an empty document.
func DecodeDocument(data []byte) (standings.Document, error) {
	var raw any
	if err := documentAPI.Unmarshal(data, &raw); err != nil {
		return standings.Document{}, crerr.Mark(crerr.Wrap(err, "decode results document"), errMalformedDocument)
	}
	if raw == nil {
		return standings.Document{}, nil
	}

	root, ok := raw.(map[string]any)
	if !ok {
		return standings.Document{}, crerr.Mark(
			crerr.Newf("results document must be an object, got %s", jsonKind(raw)),
			errMalformedDocument,
		)
	}

	doc := standings.Document{
		LastUpdated: scalarString(root["lastUpdated"]),
		Roster:      decodeRoster(root["standings"]),
		Matchdays:   decodeMatchdays(root["matchdays"]),
	}
	return standings.NormalizeDocument(doc), nil
}

func decodeRoster(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch row := item.(type) {
		case map[string]any:
			out = append(out, scalarString(row["name"]))
		case string:
			out = append(out, row)
		}
	}
	return out
}

func decodeMatchdays(v any) []standings.Matchday {
	items, _ := v.([]any)
	out := make([]standings.Matchday, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}

		// Only a missing or null name falls back; an explicit blank stays blank.
		name := standings.DefaultMatchdayName
		if raw, ok := row["name"]; ok && raw != nil {
			name = strings.TrimSpace(scalarString(raw))
		}

		matches, _ := row["matches"].([]any)
		md := standings.Matchday{Name: name, Matches: make([]standings.Match, 0, len(matches))}
		for _, m := range matches {
			fields, ok := m.(map[string]any)
			if !ok {
				continue
			}
			score, present := fields["score"]
			text := scalarString(score)
			if !present || score == nil {
				text = standings.UnsetScore
			}
			md.Matches = append(md.Matches, standings.Match{
				Home:  scalarString(fields["home"]),
				Away:  scalarString(fields["away"]),
				Score: text,
			})
		}
		out = append(out, md)
	}
	return out
}

// scalarString renders strings, numbers and booleans. Composite values and
// null become "".
func scalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
