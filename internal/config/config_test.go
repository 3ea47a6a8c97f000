package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ResultsSource != SourceFile || cfg.ResultsFile != "results.json" {
		t.Fatalf("unexpected results source: %q %q", cfg.ResultsSource, cfg.ResultsFile)
	}
	if len(cfg.ParticipantCodes) != 3 || cfg.ParticipantCodes[0] != "BJV" {
		t.Fatalf("unexpected participant codes: %v", cfg.ParticipantCodes)
	}
	if cfg.StandingsLocale != "es" {
		t.Fatalf("unexpected locale: %q", cfg.StandingsLocale)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL)
	}
	if cfg.CacheLoadTimeout != 30*time.Second {
		t.Fatalf("unexpected cache load timeout: %s", cfg.CacheLoadTimeout)
	}
}

func TestLoad_CacheLoadTimeoutValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_LOAD_TIMEOUT", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive CACHE_LOAD_TIMEOUT")
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_HTTPSourceRequiresURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESULTS_SOURCE", SourceHTTP)
	t.Setenv("RESULTS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RESULTS_SOURCE=http without RESULTS_URL")
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESULTS_SOURCE", "ftp")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown RESULTS_SOURCE")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_NegativeParallelWorkers(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STANDINGS_PARALLEL_WORKERS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative STANDINGS_PARALLEL_WORKERS")
	}
}

func TestLoad_LeagueRulesFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("participant_codes: [abc, ' xyz ']\nlocale: en\n"), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PARTICIPANT_CODES", "BJV")
	t.Setenv("LEAGUE_RULES_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.ParticipantCodes) != 2 || cfg.ParticipantCodes[0] != "abc" || cfg.ParticipantCodes[1] != "xyz" {
		t.Fatalf("unexpected participant codes: %v", cfg.ParticipantCodes)
	}
	if cfg.StandingsLocale != "en" {
		t.Fatalf("unexpected locale: %q", cfg.StandingsLocale)
	}
}

func TestLoad_MissingLeagueRulesFile(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_RULES_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing LEAGUE_RULES_FILE")
	}
}

func TestLoad_SwaggerDisabledByDefaultInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod")
	}
}
