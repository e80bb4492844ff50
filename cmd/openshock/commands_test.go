package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/openshock/internal/config"
	"github.com/muurk/openshock/internal/version"
	"github.com/muurk/openshock/pkg/openshock"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type fakeAPI struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.requests = append(api.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: b})
		api.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(api.Close)
	return api
}

func (f *fakeAPI) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) control(t *testing.T) openshock.Control {
	t.Helper()
	reqs := f.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/2/shockers/control", reqs[0].Path)

	var body openshock.ControlRequest
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	require.Len(t, body.Shocks, 1)
	return body.Shocks[0]
}

// clearEnv unsets every OPENSHOCK_* variable for the duration of the test
func clearEnv(t *testing.T) {
	for _, k := range []string{"OPENSHOCK_API_KEY", "OPENSHOCK_BASE_URL", "OPENSHOCK_USER_AGENT", "OPENSHOCK_TIMEOUT", openshock.DebugEnvVar} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

type cliResult struct {
	stdout string
	stderr string
	err    error
	app    *app
}

// runCLI executes one command line with a fresh app, the way main does
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err, app: a}
}

func setup(t *testing.T, status int, body string) (*fakeAPI, []string) {
	t.Helper()
	clearEnv(t)
	api := newFakeAPI(t, status, body)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	return api, []string{"--config", cfg, "--base-url", api.URL, "--api-key", "secret"}
}

func TestDevicesList_JSON(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{"message":"","data":[{"id":"d1","name":"Hub","online":true}]}`)

	res := runCLI(t, "", append(global, "devices", "list", "--format", "json")...)
	require.NoError(t, res.err)

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/1/devices", reqs[0].Path)
	assert.Equal(t, "secret", reqs[0].Header.Get(openshock.TokenHeader))
	assert.Equal(t, version.UserAgent(), reqs[0].Header.Get("User-Agent"))

	var out openshock.DeviceListResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Hub", *out.Data[0].Name)
}

func TestDevicesList_JSONKeepsUnknownFields(t *testing.T) {
	_, global := setup(t, http.StatusOK, `{"devices":[{"id":"d1"}]}`)

	res := runCLI(t, "", append(global, "devices", "list", "--format", "json")...)
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"devices":[{"id":"d1"}]}`, res.stdout)
}

func TestDevicesList_DetailedAndCompact(t *testing.T) {
	_, global := setup(t, http.StatusOK, `{"data":[{"id":"d1","name":"Hub"}]}`)

	res := runCLI(t, "", append(global, "devices", "list")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Hub")
	assert.Contains(t, res.stdout, "NAME")

	res = runCLI(t, "", append(global, "devices", "list", "--format", "compact")...)
	require.NoError(t, res.err)
	assert.Equal(t, "d1\tHub\n", res.stdout)
}

func TestShockersList_ByDevice(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{"data":[]}`)

	res := runCLI(t, "", append(global, "shockers", "list", "--device", "dev 1")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No shockers found.")

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/1/devices/dev 1/shockers", reqs[0].Path)
}

func TestShockersGet_ResolvesNickname(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{"data":{"id":"s1","name":"Collar","rfId":1234}}`)

	require.NoError(t, runCLI(t, "", append(global, "alias", "set", "collar", "s1")...).err)

	res := runCLI(t, "", append(global, "shockers", "get", "collar")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Collar")
	assert.Contains(t, res.stdout, "1234")

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/1/shockers/s1", reqs[0].Path)
}

func TestShock_AliasCapsIntensity(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{"message":"Successfully sent control messages"}`)

	require.NoError(t, runCLI(t, "", append(global, "alias", "set", "collar", "s1", "--max-intensity", "30")...).err)

	res := runCLI(t, "", append(global, "shock", "collar", "-i", "80", "-d", "500", "--yes", "--format", "compact")...)
	require.NoError(t, res.err)
	assert.Equal(t, "Shock sent to s1 (intensity 30, 500 ms)\n", res.stdout)

	assert.Equal(t, openshock.Control{ID: "s1", Type: openshock.ControlShock, Intensity: 30, Duration: 500}, api.control(t))
}

func TestShock_ConfirmationDeclined(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{}`)

	res := runCLI(t, "no\n", append(global, "shock", "s1")...)
	assert.ErrorIs(t, res.err, errCancelled)
	assert.Contains(t, res.stderr, "Send shock")
	assert.Empty(t, api.all(), "no request may be sent when the user declines")
}

func TestShock_ConfirmationAccepted(t *testing.T) {
	api, global := setup(t, http.StatusOK, ``)

	res := runCLI(t, "yes\n", append(global, "shock", "s1")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Shock sent")

	assert.Equal(t, openshock.Control{
		ID:        "s1",
		Type:      openshock.ControlShock,
		Intensity: openshock.DefaultIntensity,
		Duration:  openshock.DefaultDuration,
	}, api.control(t))
}

func TestShock_ConfirmDisabledInConfig(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{}`)

	require.NoError(t, runCLI(t, "", append(global, "config", "set", "confirm_shock", "false")...).err)

	res := runCLI(t, "", append(global, "shock", "s1", "--format", "compact")...)
	require.NoError(t, res.err)
	assert.Len(t, api.all(), 1)
}

func TestVibrate_ClampsForDisplayAndWire(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{}`)

	res := runCLI(t, "", append(global, "vibrate", "s1", "-i", "150", "-d", "10", "--format", "json")...)
	require.NoError(t, res.err)

	var out actionResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, 100, out.Intensity)
	assert.Equal(t, 300, out.Duration)
	assert.Equal(t, openshock.Control{ID: "s1", Type: openshock.ControlVibrate, Intensity: 100, Duration: 300}, api.control(t))
}

func TestBeepAndStop(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want openshock.Control
	}{
		{"beep default", []string{"beep", "s1"}, openshock.Control{ID: "s1", Type: openshock.ControlSound, Duration: 300}},
		{"sound alias", []string{"sound", "s1", "-d", "900"}, openshock.Control{ID: "s1", Type: openshock.ControlSound, Duration: 900}},
		{"control shock", []string{"control", "s1", "--type", "shock", "-i", "10", "-d", "500", "--yes"},
			openshock.Control{ID: "s1", Type: openshock.ControlShock, Intensity: 10, Duration: 500}},
		{"stop", []string{"stop", "s1"}, openshock.Control{ID: "s1", Type: openshock.ControlStop, Duration: 300, Exclusive: true}},
		{"control", []string{"control", "s1", "--type", "vibrate", "-i", "20", "-d", "2000", "--exclusive"},
			openshock.Control{ID: "s1", Type: openshock.ControlVibrate, Intensity: 20, Duration: 2000, Exclusive: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, global := setup(t, http.StatusOK, `{}`)
			res := runCLI(t, "", append(append(global, "--format", "compact"), tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, api.control(t))
		})
	}
}

func TestControl_RejectsUnknownType(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{}`)

	res := runCLI(t, "", append(global, "control", "s1", "--type", "zap")...)
	assert.True(t, openshock.IsInvalidArgument(res.err))
	assert.Empty(t, api.all())
}

func TestAPIError_Reported(t *testing.T) {
	_, global := setup(t, http.StatusUnauthorized, `{"message":"Unauthorized"}`)

	res := runCLI(t, "", append(global, "devices", "list", "--format", "json")...)
	require.Error(t, res.err)
	assert.Equal(t, http.StatusUnauthorized, openshock.StatusCode(res.err))

	var stderr bytes.Buffer
	res.app.stderr = &stderr
	res.app.reportError(res.err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &out))
	assert.EqualValues(t, 401, out["status"])
	assert.Equal(t, map[string]any{"message": "Unauthorized"}, out["payload"])
}

func TestReportError_Detailed(t *testing.T) {
	var stderr bytes.Buffer
	a := &app{stderr: &stderr, format: formatDetailed}

	a.reportError(openshock.NewAPIError(http.StatusUnauthorized, nil))
	assert.Contains(t, stderr.String(), "Authentication failed")
	assert.Contains(t, stderr.String(), "Troubleshooting:")

	stderr.Reset()
	a.reportError(errCancelled)
	assert.Contains(t, stderr.String(), "--yes")
}

func TestConfigShow_Precedence(t *testing.T) {
	clearEnv(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	reg := config.NewRegistry()
	reg.Preferences.BaseURL = "https://registry.example"
	reg.Preferences.UserAgent = "registry-agent/1"
	reg.Preferences.TimeoutSeconds = 20
	require.NoError(t, reg.SaveFile(cfg))

	t.Setenv("OPENSHOCK_USER_AGENT", "env-agent/1")
	t.Setenv("OPENSHOCK_TIMEOUT", "5s")

	res := runCLI(t, "", "--config", cfg, "--timeout", "7s", "config", "show", "--format", "json")
	require.NoError(t, res.err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "https://registry.example", out["base_url"])
	assert.Equal(t, "env-agent/1", out["user_agent"])
	assert.Equal(t, "7s", out["timeout"])
	assert.Equal(t, false, out["api_key_set"])
}

func TestConfigSet(t *testing.T) {
	clearEnv(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, runCLI(t, "", "--config", cfg, "config", "set", "timeout_seconds", "30").err)
	require.NoError(t, runCLI(t, "", "--config", cfg, "config", "set", "user_agent", "mine/2").err)

	reg, err := config.LoadRegistryFile(cfg)
	require.NoError(t, err)
	assert.Equal(t, 30, reg.Preferences.TimeoutSeconds)
	assert.Equal(t, "mine/2", reg.Preferences.UserAgent)

	tests := [][]string{
		{"timeout_seconds", "0"},
		{"confirm_shock", "maybe"},
		{"api_key", "secret"},
		{"colour", "blue"},
	}
	for _, args := range tests {
		res := runCLI(t, "", append([]string{"--config", cfg, "config", "set"}, args...)...)
		assert.Error(t, res.err, args)
	}
}

func TestAlias_ListAndRemove(t *testing.T) {
	clearEnv(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, runCLI(t, "", "--config", cfg, "alias", "set", "b", "id-b").err)
	require.NoError(t, runCLI(t, "", "--config", cfg, "alias", "set", "a", "id-a", "--max-intensity", "10").err)

	res := runCLI(t, "", "--config", cfg, "alias", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "a\tid-a\tmax 10\nb\tid-b\n", res.stdout)

	require.NoError(t, runCLI(t, "", "--config", cfg, "alias", "rm", "a").err)
	assert.Error(t, runCLI(t, "", "--config", cfg, "alias", "remove", "a").err)

	res = runCLI(t, "", "--config", cfg, "alias", "set", "c", "id-c", "--max-intensity", "200")
	assert.Error(t, res.err)
}

func TestAlias_EmptyEntryInConfig(t *testing.T) {
	api, global := setup(t, http.StatusOK, `{}`)
	cfg := global[1]
	require.NoError(t, os.WriteFile(cfg, []byte("version: 1\nshockers:\n  collar:\n"), 0600))

	res := runCLI(t, "", "--config", cfg, "alias", "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `shocker "collar" has no id`)

	res = runCLI(t, "", append(global, "vibrate", "collar")...)
	require.Error(t, res.err)
	assert.Empty(t, api.all())
}

func TestInvalidFormat(t *testing.T) {
	clearEnv(t)
	res := runCLI(t, "", "--format", "xml", "version")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid --format")
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "openshock "+version.Full()+"\n", res.stdout)
}

func TestPromptsForAPIKey(t *testing.T) {
	api, _ := setup(t, http.StatusOK, `{"data":[]}`)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	var stdout bytes.Buffer
	prompted := false
	a := &app{stdin: strings.NewReader(""), stdout: &stdout, stderr: io.Discard}
	a.readSecret = func(prompt string) (string, error) {
		prompted = true
		return " typed-key \n", nil
	}
	root := a.rootCommand()
	root.SetArgs([]string{"--config", cfg, "--base-url", api.URL, "devices", "list"})
	require.NoError(t, root.Execute())

	assert.True(t, prompted)
	assert.Equal(t, "typed-key", api.all()[0].Header.Get(openshock.TokenHeader))
}

func TestPromptError(t *testing.T) {
	api, _ := setup(t, http.StatusOK, `{}`)
	a := &app{stdin: strings.NewReader(""), stdout: io.Discard, stderr: io.Discard}
	a.readSecret = func(string) (string, error) { return "", errors.New("no tty") }
	root := a.rootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.yaml"), "--base-url", api.URL, "devices", "list"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read API token")
	assert.Empty(t, api.all())
}

func TestWriteMetrics(t *testing.T) {
	_, global := setup(t, http.StatusOK, `{"data":[]}`)
	require.NoError(t, runCLI(t, "", append(global, "devices", "list")...).err)

	var buf bytes.Buffer
	writeMetrics(&buf)
	assert.Contains(t, buf.String(), "openshock_client_requests_total{")
	assert.Contains(t, buf.String(), "endpoint=/1/devices")
}
