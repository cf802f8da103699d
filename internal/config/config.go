package config

import (
	"fmt"
	"strings"
)

// Config carries everything the relay needs. It is built once at process
// start and passed by reference into the handlers; nothing reads the
// environment after Load returns.
type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port int
	// DevMode includes raw error detail in 5xx responses.
	DevMode bool
}

type GitHubConfig struct {
	Token   string
	Owner   string
	Repo    string
	BaseURL string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8787,
		},
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the environment. GHRELAY_* variables
// take precedence; the credential and repository scope also honor the
// bare GITHUB_TOKEN / GITHUB_REPO_OWNER / GITHUB_REPO_NAME names set by
// the hosted deployment.
//
// Load never fails on missing credentials: call GitHubConfig.Validate
// before touching the GitHub API, so an unconfigured deployment answers
// requests with a JSON configuration error instead of refusing to boot.
func Load() Config {
	cfg := defaults()
	applyEnvOverrides(&cfg)
	return cfg
}

// ConfigError reports required GitHub configuration that is absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that the credential and repository scope are present.
// It returns a *ConfigError naming every missing variable, or nil.
func (g GitHubConfig) Validate() error {
	var missing []string
	if g.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if g.Owner == "" {
		missing = append(missing, "GITHUB_REPO_OWNER")
	}
	if g.Repo == "" {
		missing = append(missing, "GITHUB_REPO_NAME")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
