package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTeamName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"BJV - FRANCIA":      "BJV - FRANCIA",
		"BJV- FRANCIA":       "BJV - FRANCIA",
		"BJV – FRANCIA":      "BJV - FRANCIA",
		"  CLT—ITALIA  ":     "CLT - ITALIA",
		"ROA   -   Real  M.": "ROA - Real M.",
		"":                   "",

		"BJV\u00a0-\u00a0Francia": "BJV - Francia",
		"\ufeffCLT\u2009–Italia":  "CLT - Italia",
		"ROA\u3000\u3000Real":     "ROA Real",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeTeamName(input), "input=%q", input)
	}
}

func TestRules_OwnerCode(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	assert.Equal(t, "BJV", rules.OwnerCode("BJV - Francia"))
	assert.Equal(t, "BJV", rules.OwnerCode("bjv– Francia"))
	assert.Equal(t, "CLT", rules.OwnerCode("CLT-Italia"))
	assert.Equal(t, "", rules.OwnerCode("XYZ - Brasil"))
	assert.Equal(t, "", rules.OwnerCode("Brasil"))
	assert.Equal(t, "", rules.OwnerCode(""))
	assert.Equal(t, "BJV", rules.OwnerCode("BJV\u00a0-\u00a0Francia"))
	assert.Equal(t, "ROA", rules.OwnerCode("ROA\u202f- Inter"))

	open := NewRules(nil)
	assert.Equal(t, "XYZ", open.OwnerCode("XYZ - Brasil"))
	assert.Equal(t, "", open.OwnerCode("Brasil"))
}

func TestRules_IsIntraParticipant(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	assert.True(t, rules.IsIntraParticipant("BJV - A", "bjv - B"))
	assert.False(t, rules.IsIntraParticipant("BJV - A", "CLT - B"))
	assert.False(t, rules.IsIntraParticipant("Team A", "Team B"))
	assert.False(t, rules.IsIntraParticipant("BJV - A", "Team B"))
	assert.True(t, rules.IsIntraParticipant("BJV\u00a0-\u00a0Francia", "BJV - Italia"))
}

func TestRules_Codes(t *testing.T) {
	t.Parallel()

	rules := NewRules([]string{" roa", "BJV", "", "clt", "BJV"})
	assert.Equal(t, []string{"BJV", "CLT", "ROA"}, rules.Codes())
	assert.True(t, rules.IsKnownCode("clt"))
	assert.False(t, rules.IsKnownCode("XYZ"))
}
