package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LeagueRules is the optional YAML file that overrides the league-specific
// settings coming from the environment.
//
//	participant_codes: [BJV, CLT, ROA]
//	locale: es
type LeagueRules struct {
	ParticipantCodes []string `yaml:"participant_codes"`
	Locale           string   `yaml:"locale"`
}

func LoadLeagueRules(path string) (LeagueRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LeagueRules{}, fmt.Errorf("read league rules: %w", err)
	}

	var rules LeagueRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return LeagueRules{}, fmt.Errorf("unmarshal league rules: %w", err)
	}
	return rules, nil
}

func (r LeagueRules) apply(cfg *Config) {
	codes := make([]string, 0, len(r.ParticipantCodes))
	for _, code := range r.ParticipantCodes {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) > 0 {
		cfg.ParticipantCodes = codes
	}
	if locale := strings.TrimSpace(r.Locale); locale != "" {
		cfg.StandingsLocale = locale
	}
}
