package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/openshock/internal/logging"
	"github.com/muurk/openshock/internal/ui"
	"github.com/muurk/openshock/pkg/openshock"
)

// action is one control command as the user asked for it
type action struct {
	target    string // id or nickname as typed
	typ       openshock.ControlType
	intensity int
	duration  int
	exclusive bool
}

// actionResult is the JSON output of an action command
type actionResult struct {
	ShockerID string                    `json:"shockerId"`
	Type      openshock.ControlType     `json:"type"`
	Intensity int                       `json:"intensity"`
	Duration  int                       `json:"duration"`
	Exclusive bool                      `json:"exclusive"`
	Response  *openshock.ActionResponse `json:"response"`
}

func (a *app) shockCommand() *cobra.Command {
	var intensity, duration int
	cmd := &cobra.Command{
		Use:   "shock <shocker-id|nickname>",
		Short: "Send a shock",
		Long: `Send a shock to a shocker.

Intensity is clamped to 0-100 and duration to 300-65535 ms. A nickname with
max_intensity set lowers the intensity further. You are asked to confirm
unless --yes is given or confirm_shock is false in the config file.`,
		Example: `  openshock shock collar
  openshock shock collar --intensity 25 --duration 500 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, action{target: args[0], typ: openshock.ControlShock, intensity: intensity, duration: duration})
		},
	}
	cmd.Flags().IntVarP(&intensity, "intensity", "i", openshock.DefaultIntensity, "Intensity (0-100)")
	cmd.Flags().IntVarP(&duration, "duration", "d", openshock.DefaultDuration, "Duration in milliseconds (300-65535)")
	return cmd
}

func (a *app) vibrateCommand() *cobra.Command {
	var intensity, duration int
	cmd := &cobra.Command{
		Use:   "vibrate <shocker-id|nickname>",
		Short: "Send a vibration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, action{target: args[0], typ: openshock.ControlVibrate, intensity: intensity, duration: duration})
		},
	}
	cmd.Flags().IntVarP(&intensity, "intensity", "i", openshock.DefaultIntensity, "Intensity (0-100)")
	cmd.Flags().IntVarP(&duration, "duration", "d", openshock.DefaultDuration, "Duration in milliseconds (300-65535)")
	return cmd
}

func (a *app) beepCommand() *cobra.Command {
	var duration int
	cmd := &cobra.Command{
		Use:     "beep <shocker-id|nickname>",
		Aliases: []string{"sound"},
		Short:   "Make the shocker beep",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, action{target: args[0], typ: openshock.ControlSound, duration: duration})
		},
	}
	cmd.Flags().IntVarP(&duration, "duration", "d", openshock.DefaultBeepDuration, "Duration in milliseconds (300-65535)")
	return cmd
}

func (a *app) stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <shocker-id|nickname>",
		Short: "Stop whatever the shocker is doing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, action{target: args[0], typ: openshock.ControlStop, duration: openshock.MinDuration, exclusive: true})
		},
	}
}

func (a *app) controlCommand() *cobra.Command {
	var typ string
	var intensity, duration int
	var exclusive bool
	cmd := &cobra.Command{
		Use:   "control <shocker-id|nickname>",
		Short: "Send an arbitrary control command",
		Example: `  openshock control collar --type Vibrate --intensity 30 --duration 2000 --exclusive
  openshock control collar --type stop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := openshock.ParseControlType(typ)
			if err != nil {
				return err
			}
			return a.runAction(cmd, action{target: args[0], typ: ct, intensity: intensity, duration: duration, exclusive: exclusive})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Control type (Shock, Vibrate, Sound, Stop)")
	cmd.Flags().IntVarP(&intensity, "intensity", "i", openshock.DefaultIntensity, "Intensity (0-100)")
	cmd.Flags().IntVarP(&duration, "duration", "d", openshock.DefaultDuration, "Duration in milliseconds (300-65535)")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "Override commands already queued on the shocker")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (a *app) runAction(cmd *cobra.Command, act action) error {
	client, reg, err := a.newClient()
	if err != nil {
		return err
	}

	id, alias := reg.ResolveShocker(act.target)
	if capped := alias.CapIntensity(act.intensity); capped != act.intensity {
		logging.Info("Intensity capped by alias",
			zap.String("nickname", act.target),
			zap.Int("requested", act.intensity),
			zap.Int("max_intensity", capped),
		)
		act.intensity = capped
	}
	if act.typ == openshock.ControlSound || act.typ == openshock.ControlStop {
		act.intensity = 0
	}
	// Sent values, for display; the client clamps the same way.
	intensity := openshock.ClampIntensity(act.intensity)
	duration := openshock.ClampDuration(act.duration)

	label := string(act.typ)
	if act.typ == openshock.ControlSound {
		label = "Beep"
	}
	name := act.target
	if alias != nil {
		name = fmt.Sprintf("%s (%s)", act.target, id)
	}

	if act.typ == openshock.ControlShock && !a.yes && reg.Preferences.ShouldConfirmShock() {
		warnings := []string{
			fmt.Sprintf("Shocker: %s", name),
			fmt.Sprintf("Intensity: %d", intensity),
			fmt.Sprintf("Duration: %d ms", duration),
		}
		if !ui.ConfirmAction(a.stdin, a.stderr, "Send shock", warnings) {
			return errCancelled
		}
	}

	detailed := a.format == formatDetailed
	if detailed {
		params := []ui.Detail{{Key: "Shocker", Value: name}}
		if act.typ == openshock.ControlShock || act.typ == openshock.ControlVibrate {
			params = append(params, ui.Detail{Key: "Intensity", Value: fmt.Sprint(intensity)})
		}
		params = append(params, ui.Detail{Key: "Duration", Value: fmt.Sprintf("%d ms", duration)})
		if act.exclusive {
			params = append(params, ui.Detail{Key: "Exclusive", Value: "yes"})
		}
		ui.NewPrinter(a.stdout).PrintHeader(label, cmd.CommandPath()+" "+act.target, params...)
	}

	resp, err := client.SendAction(cmd.Context(), id, act.typ, act.intensity, act.duration, act.exclusive)
	if err != nil {
		return fmt.Errorf("failed to send %s to %s: %w", strings.ToLower(label), act.target, err)
	}

	switch a.format {
	case formatJSON:
		return a.printJSON(actionResult{
			ShockerID: id,
			Type:      act.typ,
			Intensity: intensity,
			Duration:  duration,
			Exclusive: act.exclusive,
			Response:  resp,
		})
	case formatCompact:
		_, _ = fmt.Fprintf(a.stdout, "%s sent to %s (intensity %d, %d ms)\n", label, id, intensity, duration)
		return nil
	}

	details := []ui.Detail{{Key: "Shocker", Value: id}}
	if resp != nil && resp.Message != nil {
		details = append(details, ui.Detail{Key: "API", Value: *resp.Message})
	}
	ui.NewPrinter(a.stdout).PrintSuccess(label+" sent", details...)

	if a.interactive && act.typ != openshock.ControlStop {
		d := time.Duration(duration) * time.Millisecond
		if err := ui.RunCountdown(cmd.Context(), nil, a.stdout, label+" in progress", d); err != nil {
			logging.Debug("Countdown ended early", zap.Error(err))
		}
	}
	return nil
}
