package config

import (
	"errors"
	"strings"
	"testing"
)

// clearEnv blanks every variable the loader reads so ambient CI
// environment (a real GITHUB_TOKEN, say) cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
		if s.legacyEnv != "" {
			t.Setenv(s.legacyEnv, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Server.DevMode {
		t.Error("Server.DevMode = true, want false")
	}
	if cfg.GitHub.BaseURL != "https://api.github.com" {
		t.Errorf("GitHub.BaseURL = %q, want api.github.com default", cfg.GitHub.BaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GHRELAY_SERVER_PORT", "9000")
	t.Setenv("GHRELAY_DEV_MODE", "true")
	t.Setenv("GHRELAY_GITHUB_TOKEN", "ghp_test")
	t.Setenv("GHRELAY_GITHUB_BASE_URL", "https://github.example.com/api/v3")
	t.Setenv("GHRELAY_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if !cfg.Server.DevMode {
		t.Error("Server.DevMode = false, want true")
	}
	if cfg.GitHub.Token != "ghp_test" {
		t.Errorf("GitHub.Token = %q, want %q", cfg.GitHub.Token, "ghp_test")
	}
	if cfg.GitHub.BaseURL != "https://github.example.com/api/v3" {
		t.Errorf("GitHub.BaseURL = %q", cfg.GitHub.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_legacy")
	t.Setenv("GITHUB_REPO_OWNER", "perception-lab")
	t.Setenv("GITHUB_REPO_NAME", "eye-tracking-data")

	cfg := Load()

	if cfg.GitHub.Token != "ghp_legacy" {
		t.Errorf("GitHub.Token = %q, want legacy value", cfg.GitHub.Token)
	}
	if cfg.GitHub.Owner != "perception-lab" {
		t.Errorf("GitHub.Owner = %q", cfg.GitHub.Owner)
	}
	if cfg.GitHub.Repo != "eye-tracking-data" {
		t.Errorf("GitHub.Repo = %q", cfg.GitHub.Repo)
	}
}

func TestLoad_PrefixedNameWinsOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_legacy")
	t.Setenv("GHRELAY_GITHUB_TOKEN", "ghp_prefixed")

	cfg := Load()

	if cfg.GitHub.Token != "ghp_prefixed" {
		t.Errorf("GitHub.Token = %q, want prefixed value to win", cfg.GitHub.Token)
	}
}

func TestLoad_InvalidIntKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("GHRELAY_SERVER_PORT", "not-a-port")

	cfg := Load()

	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want default 8787", cfg.Server.Port)
	}
}

func TestValidate_AllMissing(t *testing.T) {
	err := GitHubConfig{}.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.Missing) != 3 {
		t.Fatalf("len(Missing) = %d, want 3: %v", len(cfgErr.Missing), cfgErr.Missing)
	}
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_REPO_OWNER", "GITHUB_REPO_NAME"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err.Error(), name)
		}
	}
}

func TestValidate_PartiallyMissing(t *testing.T) {
	err := GitHubConfig{Token: "ghp_x", Owner: "lab"}.Validate()

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.Missing) != 1 || cfgErr.Missing[0] != "GITHUB_REPO_NAME" {
		t.Errorf("Missing = %v, want [GITHUB_REPO_NAME]", cfgErr.Missing)
	}
}

func TestValidate_Complete(t *testing.T) {
	cfg := GitHubConfig{Token: "ghp_x", Owner: "lab", Repo: "data"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
