package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix shared by every environment variable the CLI reads.
const EnvPrefix = "OPENSHOCK"

// Env holds settings taken from OPENSHOCK_* environment variables.
type Env struct {
	APIKey    string        `envconfig:"API_KEY"`
	BaseURL   string        `envconfig:"BASE_URL"`
	UserAgent string        `envconfig:"USER_AGENT"`
	Timeout   time.Duration `envconfig:"TIMEOUT"`
}

// LoadEnv reads the OPENSHOCK_* environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// Settings is the effective client configuration after every source is merged.
type Settings struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Resolve merges the sources with precedence flags > env > registry > defaults.
// Empty strings and non-positive durations in a source mean "not set".
func Resolve(flags Settings, env Env, prefs *Preferences, defaults Settings) Settings {
	out := defaults

	if prefs != nil {
		out.BaseURL = firstNonEmpty(prefs.BaseURL, out.BaseURL)
		out.UserAgent = firstNonEmpty(prefs.UserAgent, out.UserAgent)
		if prefs.TimeoutSeconds > 0 {
			out.Timeout = time.Duration(prefs.TimeoutSeconds) * time.Second
		}
	}

	out.APIKey = firstNonEmpty(env.APIKey, out.APIKey)
	out.BaseURL = firstNonEmpty(env.BaseURL, out.BaseURL)
	out.UserAgent = firstNonEmpty(env.UserAgent, out.UserAgent)
	if env.Timeout > 0 {
		out.Timeout = env.Timeout
	}

	out.APIKey = firstNonEmpty(flags.APIKey, out.APIKey)
	out.BaseURL = firstNonEmpty(flags.BaseURL, out.BaseURL)
	out.UserAgent = firstNonEmpty(flags.UserAgent, out.UserAgent)
	if flags.Timeout > 0 {
		out.Timeout = flags.Timeout
	}

	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
