package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/openshock/internal/config"
	"github.com/muurk/openshock/internal/logging"
	"github.com/muurk/openshock/internal/ui"
	"github.com/muurk/openshock/internal/version"
	"github.com/muurk/openshock/pkg/openshock"
)

// Output formats accepted by --format
const (
	formatDetailed = "detailed"
	formatCompact  = "compact"
	formatJSON     = "json"
)

var errCancelled = errors.New("action cancelled")

// app holds the global flags and the streams every command writes to.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	apiKey      string
	baseURL     string
	userAgent   string
	timeout     time.Duration
	format      string
	yes         bool
	configPath  string
	showMetrics bool

	// readSecret prompts for the API key. nil when stdin is not a terminal.
	readSecret func(prompt string) (string, error)
	// interactive reports whether stdout is a terminal.
	interactive bool
}

func newApp(stdin *os.File, stdout, stderr *os.File) *app {
	a := &app{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: ui.IsTerminal(stdout),
	}
	if ui.IsTerminal(stdin) {
		a.readSecret = func(prompt string) (string, error) {
			_, _ = fmt.Fprint(stderr, prompt)
			b, err := term.ReadPassword(int(stdin.Fd()))
			_, _ = fmt.Fprintln(stderr)
			return string(b), err
		}
	}
	return a
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "openshock",
		Short: "OpenShock API command-line client",
		Long: `A command-line client for the OpenShock HTTP API.

Lists the devices and shockers on your account and sends Shock, Vibrate,
Sound and Stop actions. Shockers can be addressed by id or by a nickname
saved with 'openshock alias set'.

Settings are taken from flags, then OPENSHOCK_* environment variables,
then the config file, then built-in defaults.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.format {
			case formatDetailed, formatCompact, formatJSON:
				return nil
			default:
				return fmt.Errorf("invalid --format %q (want detailed, compact or json)", a.format)
			}
		},
	}

	// Disable automatic completion command generation
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiKey, "api-key", "", "API token (default $OPENSHOCK_API_KEY)")
	pf.StringVar(&a.baseURL, "base-url", "", "API base URL (default "+openshock.DefaultBaseURL+")")
	pf.StringVar(&a.userAgent, "user-agent", "", "User-Agent header (default "+version.UserAgent()+")")
	pf.DurationVar(&a.timeout, "timeout", 0, fmt.Sprintf("Per-request timeout (default %s)", openshock.DefaultTimeout))
	pf.StringVar(&a.format, "format", formatDetailed, "Output format (detailed, compact, json)")
	pf.BoolVarP(&a.yes, "yes", "y", false, "Skip confirmation prompts")
	pf.StringVar(&a.configPath, "config", "", "Config file path (default from 'openshock config path')")
	pf.BoolVar(&a.showMetrics, "metrics", false, "Print request metrics to stderr on exit")

	root.AddCommand(
		a.devicesCommand(),
		a.shockersCommand(),
		a.shockCommand(),
		a.vibrateCommand(),
		a.beepCommand(),
		a.stopCommand(),
		a.controlCommand(),
		a.aliasCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "openshock %s\n", version.Full())
		},
	}
}

// loadRegistry reads the alias registry from --config or the default location
func (a *app) loadRegistry() (*config.Registry, error) {
	if a.configPath != "" {
		return config.LoadRegistryFile(a.configPath)
	}
	return config.LoadRegistry()
}

// saveRegistry writes the registry back where loadRegistry found it
func (a *app) saveRegistry(reg *config.Registry) error {
	if a.configPath != "" {
		return reg.SaveFile(a.configPath)
	}
	return reg.Save()
}

// settings merges flags, environment and registry preferences
func (a *app) settings(reg *config.Registry) (config.Settings, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return config.Settings{}, err
	}
	flags := config.Settings{
		APIKey:    a.apiKey,
		BaseURL:   a.baseURL,
		UserAgent: a.userAgent,
		Timeout:   a.timeout,
	}
	defaults := config.Settings{
		BaseURL:   openshock.DefaultBaseURL,
		UserAgent: version.UserAgent(),
		Timeout:   openshock.DefaultTimeout,
	}
	return config.Resolve(flags, env, reg.Preferences, defaults), nil
}

// newClient builds an API client from the merged settings, prompting for the
// API key when none is configured and stdin is a terminal.
func (a *app) newClient() (*openshock.Client, *config.Registry, error) {
	reg, err := a.loadRegistry()
	if err != nil {
		return nil, nil, err
	}
	s, err := a.settings(reg)
	if err != nil {
		return nil, nil, err
	}

	if s.APIKey == "" && a.readSecret != nil {
		key, err := a.readSecret("OpenShock API token: ")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read API token: %w", err)
		}
		s.APIKey = strings.TrimSpace(key)
	}
	if s.APIKey == "" {
		logging.Warn("No API token configured; sending requests anonymously")
	}

	logging.Debug("Creating API client",
		zap.String("base_url", s.BaseURL),
		zap.String("user_agent", s.UserAgent),
		zap.Duration("timeout", s.Timeout),
		zap.String("api_key", logging.RedactToken(s.APIKey)),
	)

	client, err := openshock.New(
		openshock.WithBaseURL(s.BaseURL),
		openshock.WithUserAgent(s.UserAgent),
		openshock.WithTimeout(s.Timeout),
		openshock.WithAPIKey(s.APIKey),
		openshock.WithLogger(logging.GetLogger()),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, reg, nil
}

// printJSON writes v as indented JSON
func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(a.stdout, string(data))
	return nil
}

// reportError prints err in the current output format
func (a *app) reportError(err error) {
	if errors.Is(err, errCancelled) {
		_, _ = fmt.Fprintln(a.stderr, "Cancelled. Pass --yes to skip the confirmation.")
		return
	}

	switch a.format {
	case formatJSON:
		out := map[string]any{"error": err.Error()}
		if status := openshock.StatusCode(err); status != 0 {
			out["status"] = status
			var apiErr *openshock.Error
			if errors.As(err, &apiErr) {
				out["payload"] = apiErr.Payload
			}
		}
		data, _ := json.Marshal(out)
		_, _ = fmt.Fprintln(a.stderr, string(data))
	case formatCompact:
		_, _ = fmt.Fprintf(a.stderr, "Error: %s\n", openshock.GetShortErrorMessage(err))
	default:
		ui.NewPrinter(a.stderr).PrintError(
			openshock.GetShortErrorMessage(err),
			err,
			openshock.GetTroubleshootingHint(err),
		)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
