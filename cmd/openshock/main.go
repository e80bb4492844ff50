// Openshock is a command-line client for the OpenShock HTTP API.
//
// It lists devices and shockers on an account and sends Shock, Vibrate,
// Sound and Stop actions to shockers, addressed by id or by a nickname
// stored in the local alias registry.
//
// Usage:
//
//	openshock [command] [flags]
//
// See 'openshock --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/muurk/openshock/internal/logging"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	root := app.rootCommand()

	err := root.Execute()
	if app.showMetrics {
		writeMetrics(app.stderr)
	}
	if err != nil {
		app.reportError(err)
		logging.Sync()
		os.Exit(1)
	}
}
