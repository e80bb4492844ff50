// Package logging provides structured logging for the OpenShock client and CLI.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used throughout the module.
//
// # Log Levels
//
//   - Debug: Request/response details, HTTP dumps
//   - Info: Actions sent to shockers, configuration changes
//   - Warn: Non-fatal issues (ignored config values, clamped input)
//   - Error: Failed commands
//
// # Silent by Default
//
// The CLI initializes logging from the OPENSHOCK_LOG_LEVEL environment
// variable. When it is unset the logger is a no-op, so command output is not
// interleaved with log lines. Logs go to stderr.
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Secrets
//
// API keys must never be logged verbatim. Use RedactToken when a key needs
// to appear in a log field.
package logging
