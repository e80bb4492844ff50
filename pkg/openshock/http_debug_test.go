package openshock

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDebugLogging_RedactsTokenAndKeepsBody(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var gotBody string
	var gotToken string
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotToken = r.Header.Get(TokenHeader)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"message":"ok"}`)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})

	c, err := New(
		WithHTTPClient(&http.Client{Transport: base}),
		WithBaseURL("http://api.test"),
		WithUserAgent(testUserAgent),
		WithAPIKey("secret-token-1234"),
		WithLogger(zap.New(core)),
		WithDebugLogging(true),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Vibrate(context.Background(), "s1", 10, 500); err != nil {
		t.Fatalf("Vibrate() error = %v", err)
	}

	if gotToken != "secret-token-1234" {
		t.Errorf("base transport token = %q, want the real key", gotToken)
	}
	if !strings.Contains(gotBody, `"type":"Vibrate"`) {
		t.Errorf("base transport body = %q, want the control request", gotBody)
	}

	dumps := logs.FilterMessage("HTTP request").All()
	if len(dumps) != 1 {
		t.Fatalf("request dumps = %d, want 1", len(dumps))
	}
	dump := dumps[0].ContextMap()["request_dump"].(string)
	if strings.Contains(dump, "secret-token-1234") {
		t.Error("request dump leaked the API key")
	}
	if !strings.Contains(dump, "****1234") {
		t.Errorf("request dump = %q, want redacted token", dump)
	}
	if logs.FilterMessage("HTTP response").Len() != 1 {
		t.Error("expected one response dump")
	}
}

func TestDebugLogging_DoesNotModifyCallerClient(t *testing.T) {
	hc := &http.Client{}
	if _, err := New(WithHTTPClient(hc), WithDebugLogging(true)); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if hc.Transport != nil {
		t.Errorf("caller http.Client transport replaced with %T", hc.Transport)
	}
}

func TestDebugLogging_EnabledByEnv(t *testing.T) {
	t.Setenv(DebugEnvVar, "true")
	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("transport = %T, want *debugTransport when %s=true", c.http.Transport, DebugEnvVar)
	}
}
