package openshock

import (
	"net/http"
	"net/http/httputil"
	"os"

	"go.uber.org/zap"

	"github.com/muurk/openshock/internal/logging"
)

// DebugEnvVar enables request/response dumps for every client when set to "true".
const DebugEnvVar = "OPENSHOCK_DEBUG"

// debugTransport dumps each exchange at debug level.
//
// The Open-Shock-Token header is redacted before the request is dumped;
// bodies are logged verbatim.
type debugTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if dump, err := httputil.DumpRequestOut(redactedCopy(req), true); err == nil {
		dt.logger.Debug("HTTP request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.String("request_dump", string(dump)),
		)
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.logger.Debug("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug("HTTP response",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response_dump", string(dump)),
		)
	}
	return resp, nil
}

// redactedCopy clones req with the token masked. The clone gets its own body
// from GetBody so dumping it leaves the original body unread.
func redactedCopy(req *http.Request) *http.Request {
	token := req.Header.Get(TokenHeader)
	if token == "" {
		return req
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set(TokenHeader, logging.RedactToken(token))
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			cloned.Body = nil
		} else if body, err := req.GetBody(); err == nil {
			cloned.Body = body
		}
	}
	return cloned
}

// installDebugTransport wraps the transport of a copy of the http.Client so a
// caller-supplied client is never modified.
func (c *Client) installDebugTransport() {
	hc := *c.http
	hc.Transport = &debugTransport{base: c.http.Transport, logger: c.logger}
	c.http = &hc
}

func debugLoggingRequested() bool {
	return os.Getenv(DebugEnvVar) == "true"
}
