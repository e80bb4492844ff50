package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/openshock/internal/config"
	"github.com/muurk/openshock/internal/ui"
)

func (a *app) aliasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage shocker nicknames",
		Long: `Manage nicknames for shocker ids.

Nicknames are stored in the config file and accepted anywhere a shocker id
is. A nickname may carry a max intensity that caps every shock and
vibration sent through it.`,
	}

	var deviceID string
	var maxIntensity int
	set := &cobra.Command{
		Use:     "set <nickname> <shocker-id>",
		Short:   "Create or replace a nickname",
		Example: `  openshock alias set collar 3fa85f64-5717-4562-b3fc-2c963f66afa6 --max-intensity 40`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAliasSet(args[0], &config.Shocker{ID: args[1], DeviceID: deviceID, MaxIntensity: maxIntensity})
		},
	}
	set.Flags().StringVar(&deviceID, "device", "", "Device the shocker belongs to (informational)")
	set.Flags().IntVar(&maxIntensity, "max-intensity", 0, "Cap intensity for this nickname (1-100, 0 for none)")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List nicknames",
		Args:  cobra.NoArgs,
		RunE:  a.runAliasList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove <nickname>",
		Aliases: []string{"rm"},
		Short:   "Remove a nickname",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runAliasRemove,
	})

	return cmd
}

func (a *app) runAliasSet(nickname string, s *config.Shocker) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	if err := reg.SetShocker(nickname, s); err != nil {
		return err
	}
	if err := a.saveRegistry(reg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "Saved %s -> %s\n", nickname, s.ID)
	return nil
}

func (a *app) runAliasList(cmd *cobra.Command, args []string) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	if a.format == formatJSON {
		return a.printJSON(reg.Shockers)
	}

	names := reg.Nicknames()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No nicknames saved. Add one with 'openshock alias set'.")
		return nil
	}
	for _, name := range names {
		s := reg.Shockers[name]
		if s == nil {
			continue
		}
		line := fmt.Sprintf("%s\t%s", name, s.ID)
		if s.MaxIntensity > 0 {
			line += fmt.Sprintf("\tmax %d", s.MaxIntensity)
		}
		_, _ = fmt.Fprintln(a.stdout, line)
	}
	return nil
}

func (a *app) runAliasRemove(cmd *cobra.Command, args []string) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	if !reg.RemoveShocker(args[0]) {
		return fmt.Errorf("no nickname %q", args[0])
	}
	if err := a.saveRegistry(reg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "Removed %s\n", args[0])
	return nil
}

// Keys accepted by 'config set'
const (
	keyBaseURL      = "base_url"
	keyUserAgent    = "user_agent"
	keyTimeout      = "timeout_seconds"
	keyConfirmShock = "confirm_shock"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective settings and where they come from",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference in the config file",
		Long: `Set a preference in the config file.

Keys:
  base_url         API base URL
  user_agent       User-Agent header
  timeout_seconds  Per-request timeout in seconds
  confirm_shock    Ask before sending a shock (true/false)

An empty value clears the preference. The API token cannot be stored.`,
		Example: `  openshock config set timeout_seconds 30
  openshock config set confirm_shock false`,
		Args: cobra.ExactArgs(2),
		RunE: a.runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				var err error
				if path, err = config.GetConfigPath(); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintln(a.stdout, path)
			return nil
		},
	})

	return cmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	s, err := a.settings(reg)
	if err != nil {
		return err
	}

	token := "(not set)"
	if s.APIKey != "" {
		token = "****"
	}
	confirm := reg.Preferences.ShouldConfirmShock()

	if a.format == formatJSON {
		return a.printJSON(map[string]any{
			"base_url":      s.BaseURL,
			"user_agent":    s.UserAgent,
			"timeout":       s.Timeout.String(),
			"api_key_set":   s.APIKey != "",
			"confirm_shock": confirm,
			"shockers":      len(reg.Shockers),
		})
	}

	details := []ui.Detail{
		{Key: "Base URL", Value: s.BaseURL},
		{Key: "User-Agent", Value: s.UserAgent},
		{Key: "Timeout", Value: s.Timeout.String()},
		{Key: "API token", Value: token},
		{Key: "Confirm shock", Value: strconv.FormatBool(confirm)},
		{Key: "Nicknames", Value: strconv.Itoa(len(reg.Shockers))},
	}
	if a.format == formatCompact {
		for _, d := range details {
			_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", d.Key, d.Value)
		}
		return nil
	}
	ui.NewPrinter(a.stdout).PrintSuccess("Effective settings", details...)
	return nil
}

func (a *app) runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}
	prefs := reg.Preferences

	switch key {
	case keyBaseURL:
		prefs.BaseURL = value
	case keyUserAgent:
		prefs.UserAgent = value
	case keyTimeout:
		if value == "" {
			prefs.TimeoutSeconds = 0
			break
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q (want a positive number of seconds)", key, value)
		}
		prefs.TimeoutSeconds = n
	case keyConfirmShock:
		if value == "" {
			prefs.ConfirmShock = nil
			break
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q (want true or false)", key, value)
		}
		prefs.ConfirmShock = &b
	case "api_key", "token":
		return fmt.Errorf("the API token is never stored; use --api-key or OPENSHOCK_API_KEY")
	default:
		return fmt.Errorf("unknown key %q (want %s, %s, %s or %s)", key, keyBaseURL, keyUserAgent, keyTimeout, keyConfirmShock)
	}

	if err := a.saveRegistry(reg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.stdout, "Set %s\n", key)
	return nil
}
