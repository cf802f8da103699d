package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
)

type keySpec struct {
	key string
	typ keyType
	env string
	// legacyEnv is consulted when env is unset. The legacy hosted
	// deployment configures the relay with these names.
	legacyEnv string
	apply     func(cfg *Config, v any)
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "GHRELAY_SERVER_PORT",
		apply: func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
	},
	{
		key: "server.dev_mode", typ: kBool, env: "GHRELAY_DEV_MODE",
		apply: func(cfg *Config, v any) { cfg.Server.DevMode = v.(bool) },
	},
	{
		key: "github.token", typ: kString, env: "GHRELAY_GITHUB_TOKEN", legacyEnv: "GITHUB_TOKEN",
		apply: func(cfg *Config, v any) { cfg.GitHub.Token = v.(string) },
	},
	{
		key: "github.owner", typ: kString, env: "GHRELAY_GITHUB_OWNER", legacyEnv: "GITHUB_REPO_OWNER",
		apply: func(cfg *Config, v any) { cfg.GitHub.Owner = v.(string) },
	},
	{
		key: "github.repo", typ: kString, env: "GHRELAY_GITHUB_REPO", legacyEnv: "GITHUB_REPO_NAME",
		apply: func(cfg *Config, v any) { cfg.GitHub.Repo = v.(string) },
	},
	{
		key: "github.base_url", typ: kString, env: "GHRELAY_GITHUB_BASE_URL",
		apply: func(cfg *Config, v any) { cfg.GitHub.BaseURL = v.(string) },
	},
	{
		key: "log.level", typ: kString, env: "GHRELAY_LOG_LEVEL",
		apply: func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
	},
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" && s.legacyEnv != "" {
			raw = os.Getenv(s.legacyEnv)
		}
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
