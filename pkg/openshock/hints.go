package openshock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// TransportFailure names the kind of network failure behind a transport error
type TransportFailure int

const (
	TransportNone TransportFailure = iota
	TransportTimeout
	TransportDNS
	TransportConnectionRefused
	TransportUnreachable
	TransportCanceled
	TransportOther
)

// ClassifyTransportError inspects an error returned unchanged from net/http.
// Errors produced by the client itself classify as TransportNone.
func ClassifyTransportError(err error) TransportFailure {
	if err == nil {
		return TransportNone
	}
	var e *Error
	if errors.As(err, &e) {
		return TransportNone
	}

	if errors.Is(err, context.Canceled) {
		return TransportCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return TransportConnectionRefused
	}
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return TransportUnreachable
	}
	return TransportOther
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		switch ClassifyTransportError(err) {
		case TransportTimeout:
			return "OpenShock API not responding (timeout)"
		case TransportDNS:
			return "Cannot resolve API hostname"
		case TransportConnectionRefused:
			return "API refused connection"
		case TransportUnreachable:
			return "API unreachable - check network connection"
		case TransportCanceled:
			return "Request canceled"
		default:
			return err.Error()
		}
	}

	switch e.Type {
	case ErrTypeAPI:
		switch e.StatusCode {
		case http.StatusUnauthorized:
			return "Authentication failed - check API key"
		case http.StatusForbidden:
			return "Not allowed - the API key lacks permission for this shocker"
		case http.StatusNotFound:
			return "Not found (HTTP 404)"
		case http.StatusTooManyRequests:
			return "Rate limited by the API (HTTP 429)"
		default:
			return fmt.Sprintf("API error (HTTP %d)", e.StatusCode)
		}
	case ErrTypeParse:
		return "Failed to parse API response"
	default:
		return e.Message
	}
}

// GetTroubleshootingHint returns troubleshooting tips for an error, one per line
func GetTroubleshootingHint(err error) []string {
	var e *Error
	if !errors.As(err, &e) {
		switch ClassifyTransportError(err) {
		case TransportTimeout:
			return []string{
				"The API did not answer in time",
				"Try increasing --timeout",
			}
		case TransportDNS, TransportConnectionRefused, TransportUnreachable:
			return []string{
				"Check your network connection",
				"Verify --base-url (default " + DefaultBaseURL + ")",
			}
		default:
			return nil
		}
	}

	switch e.Type {
	case ErrTypePreconditionFailed:
		return []string{"Set a User-Agent with --user-agent or OPENSHOCK_USER_AGENT"}
	case ErrTypeInvalidArgument:
		return []string{"Check the value passed on the command line or in the config file"}
	case ErrTypeParse:
		return []string{
			"The API answered with something other than JSON",
			"Verify --base-url points at the OpenShock API",
		}
	}

	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return []string{
			"Create an API token in the OpenShock dashboard",
			"Pass it with --api-key or OPENSHOCK_API_KEY",
		}
	case e.StatusCode == http.StatusForbidden:
		return []string{
			"Shared shockers need the sharer to grant the permission",
			"Check the token's permissions on the dashboard",
		}
	case e.StatusCode == http.StatusNotFound:
		return []string{
			"Verify the identifier with 'openshock shockers list'",
			"Nicknames are resolved from the alias registry ('openshock alias list')",
		}
	case e.StatusCode >= 500:
		return []string{
			"The OpenShock API reported a server error",
			"Try again later",
		}
	default:
		return nil
	}
}
