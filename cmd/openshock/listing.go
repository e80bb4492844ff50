package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/openshock/internal/config"
	"github.com/muurk/openshock/internal/ui"
	"github.com/muurk/openshock/pkg/openshock"
)

func (a *app) devicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List and inspect devices (hubs)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every device on the account",
		Example: `  openshock devices list
  openshock devices list --format json`,
		Args: cobra.NoArgs,
		RunE: a.runDevicesList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <device-id>",
		Short: "Show a single device",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDevicesGet,
	})

	return cmd
}

func (a *app) runDevicesList(cmd *cobra.Command, args []string) error {
	client, _, err := a.newClient()
	if err != nil {
		return err
	}

	resp, err := client.ListDevices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if a.format == formatJSON {
		return a.printJSON(resp)
	}

	var devices []openshock.Device
	if resp != nil {
		devices = resp.Data
	}
	if len(devices) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No devices found.")
		return nil
	}

	if a.format == formatCompact {
		for _, d := range devices {
			_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", deref(d.ID), deref(d.Name))
		}
		return nil
	}

	_, _ = fmt.Fprintln(a.stdout, ui.RenderDeviceTable(devices))
	return nil
}

func (a *app) runDevicesGet(cmd *cobra.Command, args []string) error {
	client, _, err := a.newClient()
	if err != nil {
		return err
	}

	resp, err := client.GetDevice(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get device %s: %w", args[0], err)
	}

	if a.format == formatJSON {
		return a.printJSON(resp)
	}
	if resp == nil || resp.Data == nil {
		_, _ = fmt.Fprintf(a.stdout, "Device %s returned no data.\n", args[0])
		return nil
	}

	d := resp.Data
	if a.format == formatCompact {
		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", deref(d.ID), deref(d.Name))
		return nil
	}

	details := []ui.Detail{
		{Key: "ID", Value: deref(d.ID)},
		{Key: "Name", Value: deref(d.Name)},
	}
	if d.Online != nil {
		details = append(details, ui.Detail{Key: "Online", Value: fmt.Sprint(*d.Online)})
	}
	if d.FirmwareVersion != nil {
		details = append(details, ui.Detail{Key: "Firmware", Value: *d.FirmwareVersion})
	}
	if d.CreatedOn != nil {
		details = append(details, ui.Detail{Key: "Created", Value: *d.CreatedOn})
	}
	ui.NewPrinter(a.stdout).PrintSuccess("Device "+deref(d.Name), details...)
	if len(d.Shockers) > 0 {
		_, _ = fmt.Fprintln(a.stdout, ui.RenderShockerTable(d.Shockers, nil))
	}
	return nil
}

func (a *app) shockersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shockers",
		Short: "List and inspect shockers",
	}

	var deviceID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List your shockers, optionally only those on one device",
		Example: `  openshock shockers list
  openshock shockers list --device 3fa85f64-5717-4562-b3fc-2c963f66afa6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShockersList(cmd, deviceID)
		},
	}
	list.Flags().StringVar(&deviceID, "device", "", "Only list shockers on this device")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <shocker-id|nickname>",
		Short: "Show a single shocker",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runShockersGet,
	})

	return cmd
}

// aliasesByID inverts the registry so listings can show nicknames
func aliasesByID(reg *config.Registry) map[string]string {
	out := make(map[string]string, len(reg.Shockers))
	for _, name := range reg.Nicknames() {
		id := reg.Shockers[name].ID
		if prev, ok := out[id]; ok {
			out[id] = prev + "," + name
			continue
		}
		out[id] = name
	}
	return out
}

func (a *app) runShockersList(cmd *cobra.Command, deviceID string) error {
	client, reg, err := a.newClient()
	if err != nil {
		return err
	}

	resp, err := client.ListShockers(cmd.Context(), deviceID)
	if err != nil {
		return fmt.Errorf("failed to list shockers: %w", err)
	}

	if a.format == formatJSON {
		return a.printJSON(resp)
	}

	var shockers []openshock.Shocker
	if resp != nil {
		shockers = resp.Data
	}
	if len(shockers) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No shockers found.")
		return nil
	}

	if a.format == formatCompact {
		for _, s := range shockers {
			_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", deref(s.ID), deref(s.Name))
		}
		return nil
	}

	_, _ = fmt.Fprintln(a.stdout, ui.RenderShockerTable(shockers, aliasesByID(reg)))
	return nil
}

func (a *app) runShockersGet(cmd *cobra.Command, args []string) error {
	client, reg, err := a.newClient()
	if err != nil {
		return err
	}
	id, alias := reg.ResolveShocker(args[0])

	resp, err := client.GetShocker(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get shocker %s: %w", args[0], err)
	}

	if a.format == formatJSON {
		return a.printJSON(resp)
	}
	if resp == nil || resp.Data == nil {
		_, _ = fmt.Fprintf(a.stdout, "Shocker %s returned no data.\n", id)
		return nil
	}

	s := resp.Data
	if a.format == formatCompact {
		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", deref(s.ID), deref(s.Name))
		return nil
	}

	details := []ui.Detail{
		{Key: "ID", Value: deref(s.ID)},
		{Key: "Name", Value: deref(s.Name)},
	}
	if alias != nil {
		details = append(details, ui.Detail{Key: "Alias", Value: args[0]})
		if alias.MaxIntensity > 0 {
			details = append(details, ui.Detail{Key: "Max intensity", Value: fmt.Sprint(alias.MaxIntensity)})
		}
	}
	if s.Model != nil {
		details = append(details, ui.Detail{Key: "Model", Value: *s.Model})
	}
	if s.RFID != nil {
		details = append(details, ui.Detail{Key: "RF ID", Value: fmt.Sprint(*s.RFID)})
	}
	if s.IsPaused != nil {
		details = append(details, ui.Detail{Key: "Paused", Value: fmt.Sprint(*s.IsPaused)})
	}
	if s.CreatedOn != nil {
		details = append(details, ui.Detail{Key: "Created", Value: *s.CreatedOn})
	}
	ui.NewPrinter(a.stdout).PrintSuccess("Shocker "+strings.TrimSpace(deref(s.Name)), details...)
	return nil
}
