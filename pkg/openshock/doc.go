// Package openshock provides a typed client for the OpenShock HTTP API.
//
// OpenShock manages "shockers" (individual stimulus units) attached to
// "devices" (network hubs) and accepts timed control commands for them:
// Shock, Vibrate, Sound and Stop.
//
// # Usage Example
//
//	client, err := openshock.New(
//	    openshock.WithAPIKey(os.Getenv("OPENSHOCK_API_KEY")),
//	    openshock.WithUserAgent("my-app/1.0"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	devices, err := client.ListDevices(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Vibrate at 30% for 1.5s
//	_, err = client.Vibrate(ctx, shockerID, 30, 1500)
//
// # User-Agent
//
// The API requires a User-Agent. A client built without WithUserAgent
// fails every request with a precondition error until SetUserAgent is
// called; no network traffic happens before that.
//
// # Authentication
//
// The stored API key (WithAPIKey, SetAPIKey) is sent in the Open-Shock-Token
// header. A single call can use a different key with the WithToken request
// option without changing the stored one:
//
//	client.ListShockers(ctx, "", openshock.WithToken(otherKey))
//
// # Input Clamping
//
// Action durations are clamped to [300, 65535] ms and intensities to
// [0, 100]. Out-of-range values are never rejected.
//
// # Responses
//
// Every operation returns nil with a nil error when the API answers 2xx
// with an empty body. Non-2xx answers become *Error values of type
// ErrTypeAPI carrying the status code and the decoded body (or the raw text
// under "message" when the body is not JSON). Transport errors are returned
// unchanged from net/http.
//
// # Concurrency
//
// Client is safe for concurrent use. Each request snapshots the
// configuration when it starts. AsyncClient runs the same operations on
// goroutines and returns Futures.
//
// # Metrics
//
// Round trips are counted in the Prometheus default registry as
// openshock_client_requests_total and openshock_client_request_duration_seconds.
package openshock
