// Package ui provides terminal UI components for the openshock CLI.
//
// Lipgloss renders the static pieces:
//
//   - Header: action banner showing the control type and its parameters
//   - Result: success/failure/warning boxes with troubleshooting tips
//   - Tables: device and shocker listings
//   - ConfirmAction: warning box plus a typed confirmation before a shock
//
// Countdown is a small Bubble Tea program that fills a progress bar over an
// action's duration once the API has accepted it. Commands only run it when
// stdout is a terminal and the output format is "detailed".
//
// # Logging Integration
//
// Logging is controlled via the OPENSHOCK_LOG_LEVEL environment variable and
// goes to stderr. When it is unset zap is silent, so the curated UI output
// on stdout stays clean.
package ui
