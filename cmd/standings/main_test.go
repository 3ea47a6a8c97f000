package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixture = `{
	"lastUpdated": "2025-03-01 20:00",
	"standings": [{"name": "ROA - Idle"}],
	"matchdays": [
		{"name": "Jornada 1", "matches": [
			{"home": "BJV - Lobos", "away": "BJV - Osos"},
			{"home": "CLT - Rayos", "away": "ROA - Toros", "score": "2-0"},
			{"home": "CLT - Truenos", "away": "ROA - Toros", "score": "aplazado"}
		]}
	]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"standings"}, args...))
	return stdout.String(), err
}

func TestTableCommand(t *testing.T) {
	path := writeFixture(t, fixture)

	out, err := run(t, "table", "--file", path)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "CLT - Rayos") {
		t.Fatalf("expected leader on first row, got %q", lines[1])
	}
}

func TestTableCommandJSONWithParticipant(t *testing.T) {
	path := writeFixture(t, fixture)

	out, err := run(t, "table", "--file", path, "--format", "json", "--participant", "bjv")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(out, `"team": "BJV - Lobos"`) || strings.Contains(out, "CLT - Rayos") {
		t.Fatalf("unexpected filtered output:\n%s", out)
	}
}

func TestMatchdaysCommand(t *testing.T) {
	path := writeFixture(t, fixture)

	out, err := run(t, "matchdays", "--file", path)
	if err != nil {
		t.Fatalf("matchdays: %v", err)
	}
	for _, want := range []string{"Jornada 1  [2/3/3]", "AUTO", "FORMATO"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRulesFileOverridesCodes(t *testing.T) {
	path := writeFixture(t, fixture)
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(rules, []byte("participant_codes: [CLT]\n"), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	if _, err := run(t, "table", "--file", path, "--rules", rules, "--participant", "BJV"); err == nil {
		t.Fatalf("expected BJV to be rejected once rules narrow the codes")
	}
}

func TestCommandErrors(t *testing.T) {
	path := writeFixture(t, fixture)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"table", "--file", filepath.Join(t.TempDir(), "missing.json")}},
		{name: "malformed file", args: []string{"table", "--file", writeFixture(t, `{"matchdays": [`)}},
		{name: "unknown format", args: []string{"table", "--file", path, "--format", "xml"}},
		{name: "unknown participant", args: []string{"matchdays", "--file", path, "--participant", "XYZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
