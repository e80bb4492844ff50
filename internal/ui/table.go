package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/openshock/pkg/openshock"
)

const missing = "-"

func str(p *string) string {
	if p == nil || *p == "" {
		return missing
	}
	return *p
}

func onlineCell(p *bool) string {
	switch {
	case p == nil:
		return missing
	case *p:
		return OnlineStyle.Render("online")
	default:
		return OfflineStyle.Render("offline")
	}
}

func pausedCell(p *bool) string {
	switch {
	case p == nil:
		return missing
	case *p:
		return PausedStyle.Render("paused")
	default:
		return "active"
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Headers(headers...)
}

// RenderDeviceTable renders a device listing
func RenderDeviceTable(devices []openshock.Device) string {
	t := newTable("ID", "NAME", "STATUS", "FIRMWARE", "SHOCKERS", "CREATED")
	for _, d := range devices {
		t.Row(
			str(d.ID),
			str(d.Name),
			onlineCell(d.Online),
			str(d.FirmwareVersion),
			strconv.Itoa(len(d.Shockers)),
			str(d.CreatedOn),
		)
	}
	return t.Render()
}

// RenderShockerTable renders a shocker listing. aliases maps shocker id to
// the registry nickname, if any.
func RenderShockerTable(shockers []openshock.Shocker, aliases map[string]string) string {
	t := newTable("ID", "NAME", "ALIAS", "MODEL", "RF ID", "STATE", "CREATED")
	for _, s := range shockers {
		rfID := missing
		if s.RFID != nil {
			rfID = strconv.Itoa(*s.RFID)
		}
		alias := missing
		if s.ID != nil {
			if a, ok := aliases[*s.ID]; ok {
				alias = a
			}
		}
		t.Row(
			str(s.ID),
			str(s.Name),
			alias,
			str(s.Model),
			rfID,
			pausedCell(s.IsPaused),
			str(s.CreatedOn),
		)
	}
	return t.Render()
}
