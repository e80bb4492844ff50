package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("OPENSHOCK_API_KEY", "key")
	t.Setenv("OPENSHOCK_BASE_URL", "http://localhost:5000")
	t.Setenv("OPENSHOCK_USER_AGENT", "env-agent/1")
	t.Setenv("OPENSHOCK_TIMEOUT", "3s")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{
		APIKey:    "key",
		BaseURL:   "http://localhost:5000",
		UserAgent: "env-agent/1",
		Timeout:   3 * time.Second,
	}, env)
}

func TestLoadEnv_BadDuration(t *testing.T) {
	t.Setenv("OPENSHOCK_TIMEOUT", "soon")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestResolve_Precedence(t *testing.T) {
	defaults := Settings{BaseURL: "https://default", UserAgent: "default/1", Timeout: 15 * time.Second}
	prefs := &Preferences{BaseURL: "https://registry", UserAgent: "registry/1", TimeoutSeconds: 20}
	env := Env{UserAgent: "env/1", Timeout: 5 * time.Second, APIKey: "env-key"}
	flags := Settings{UserAgent: "flag/1"}

	got := Resolve(flags, env, prefs, defaults)

	assert.Equal(t, "env-key", got.APIKey)
	assert.Equal(t, "https://registry", got.BaseURL)
	assert.Equal(t, "flag/1", got.UserAgent)
	assert.Equal(t, 5*time.Second, got.Timeout)
}

func TestResolve_DefaultsOnly(t *testing.T) {
	defaults := Settings{BaseURL: "https://default", UserAgent: "default/1", Timeout: 15 * time.Second}

	assert.Equal(t, defaults, Resolve(Settings{}, Env{}, nil, defaults))
	assert.Equal(t, defaults, Resolve(Settings{}, Env{}, &Preferences{}, defaults))
}
