package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/deskremote/internal/state"
)

const logoText = "deskremote"

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarPainter(m.theme.Surface)
	compact := m.width < 80

	conn := m.snapshot.Connection
	parts := []string{
		bg.Render(logoText, styles.Logo),
		styles.StateStyle(conn.String()).Render(strings.ToUpper(stateLabel(conn))),
	}

	if url := m.snapshot.ServerURL; url != "" {
		limit := 40
		if compact {
			limit = 24
		}
		parts = append(parts, bg.Render(truncateMiddle(url, limit), styles.MutedText))
	}

	if ts := formatTimestamp(m.snapshot.LastUpdated, time.Now()); ts != "" {
		parts = append(parts,
			bg.Render("Updated:", styles.FaintText)+bg.Space()+bg.Render(ts, styles.Text))
	}

	if m.snapshot.AvgResponse > 0 && !compact {
		parts = append(parts,
			bg.Render("Avg:", styles.FaintText)+bg.Space()+
				bg.Render(formatLatency(m.snapshot.AvgResponse), styles.Text))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints bar at the bottom.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarPainter(m.theme.Surface)

	if m.width < 60 && m.confirming == "" {
		return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.confirming != "":
		commands = []cmd{
			{"y", "Confirm " + m.confirming.Label()},
			{"n", "Cancel"},
		}
	case m.snapshot.IsOnline():
		commands = []cmd{
			{"-/+", "Volume"},
			{"[/]", "Brightness"},
			{"s", "Sleep"},
			{"R", "Restart"},
			{"S", "Shutdown"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"r", "Retry"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

func stateLabel(s state.ConnectionState) string {
	switch s {
	case state.Online:
		return "● online"
	case state.Connecting:
		return "○ connecting"
	case state.Offline:
		return "● offline"
	default:
		return "○ starting"
	}
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}

	since := now.Sub(at)
	ts := at.Format("15:04:05")

	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

func formatLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1f s", d.Seconds())
}
