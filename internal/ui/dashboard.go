package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
	"github.com/five82/deskremote/internal/telemetry"
)

const (
	labelWidth   = 12
	valueWidth   = 10
	minGaugeSize = 10
	maxBodyWidth = 96
)

func newGauge(t Theme) progress.Model {
	g := progress.New(
		progress.WithSolidFill(t.Accent),
		progress.WithoutPercentage(),
		progress.WithFillCharacters('█', '░'),
	)
	g.EmptyColor = t.SurfaceAlt
	return g
}

// renderMain renders header, body and command bar stacked to fill the screen.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderCommandBar()

	var body string
	switch m.snapshot.Connection {
	case state.Online:
		body = m.renderDashboard()
	case state.Offline:
		body = m.renderOffline()
	default:
		body = m.renderConnecting()
	}

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body = lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Height(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) bodyWidth() int {
	w := m.width - 2
	if w > maxBodyWidth {
		w = maxBodyWidth
	}
	return max(w, labelWidth+valueWidth+minGaugeSize+4)
}

func (m Model) renderConnecting() string {
	styles := m.theme.Styles()
	target := m.snapshot.ServerURL
	if target == "" {
		target = "server"
	}
	return "\n " + styles.WarningText.Bold(true).Render("Connecting to "+target+"...")
}

func (m Model) renderOffline() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.DangerText.Render("Server unreachable"))
	b.WriteString("\n\n")

	if err := m.snapshot.LastError; err != nil {
		b.WriteString(styles.MutedText.Render("Last error: "))
		b.WriteString(styles.Text.Render(truncate(remote.Message(err), m.bodyWidth()-14)))
		b.WriteString("\n")
	}
	if n := m.snapshot.ConsecutiveFailures; n > 0 {
		b.WriteString(styles.MutedText.Render("Failed attempts: "))
		b.WriteString(styles.Text.Render(fmt.Sprintf("%d", n)))
		b.WriteString("\n")
	}
	if !m.snapshot.LastUpdated.IsZero() {
		b.WriteString(styles.MutedText.Render("Last data: "))
		b.WriteString(styles.Text.Render(m.snapshot.LastUpdated.Format("15:04:05")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(
		fmt.Sprintf("Retrying every %s. Press r to retry now.", humanizeDuration(m.reconnectFor))))

	return "\n" + styles.Panel.Width(m.bodyWidth()).Render(b.String())
}

func (m Model) renderDashboard() string {
	width := m.bodyWidth()
	sections := []string{
		m.renderSystemPanel(width),
		m.renderHistoryPanel(width),
		m.renderControlsPanel(width),
		m.renderPowerPanel(width),
	}
	if line := m.renderStatusLine(); line != "" {
		sections = append(sections, " "+line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSystemPanel(width int) string {
	styles := m.theme.Styles()
	if !m.snapshot.HasSystem {
		return m.panel("System", styles.FaintText.Render("Waiting for data..."), width)
	}
	info := m.snapshot.System

	var rows []string
	if info.Battery.HasBattery {
		suffix := ""
		if info.Battery.Charging {
			suffix = " ⚡"
		}
		color := m.theme.Success
		if info.Battery.Percent < 20 && !info.Battery.Charging {
			color = m.theme.Danger
		}
		rows = append(rows, m.gaugeRow("Battery", info.Battery.Percent/100, color,
			fmt.Sprintf("%.0f%%%s", info.Battery.Percent, suffix), width))
	} else {
		rows = append(rows, labelCell(styles, "Battery")+
			styles.FaintText.Render("AC power"))
	}

	rows = append(rows,
		m.gaugeRow("CPU", info.CPU.CurrentLoad/100, loadColor(m.theme, info.CPU.CurrentLoad),
			fmt.Sprintf("%.1f%%", info.CPU.CurrentLoad), width),
		labelCell(styles, "CPU avg")+
			styles.Text.Render(fmt.Sprintf("%.1f%%", info.CPU.AvgLoad)),
	)

	memPct := m.snapshot.MemoryPercent()
	rows = append(rows,
		m.gaugeRow("Memory", memPct/100, loadColor(m.theme, memPct),
			fmt.Sprintf("%.1f%%", memPct), width),
		padRight("", labelWidth)+styles.FaintText.Render(fmt.Sprintf("%s used of %s",
			telemetry.FormatBytes(info.Mem.Used), telemetry.FormatBytes(info.Mem.Total))),
	)

	return m.panel("System", strings.Join(rows, "\n"), width)
}

func (m Model) renderHistoryPanel(width int) string {
	styles := m.theme.Styles()
	samples := m.snapshot.Samples
	if len(samples) == 0 {
		return m.panel("Memory history", styles.FaintText.Render("No samples yet"), width)
	}

	chartWidth := width - 4
	chart := styles.AccentText.Render(sparkline(samplePercents(samples), chartWidth))
	last := samples[len(samples)-1]
	caption := styles.FaintText.Render(fmt.Sprintf("%d samples, latest %.1f%% at %s",
		len(samples), last.Percent, last.Timestamp.Format("15:04:05")))

	return m.panel("Memory history", chart+"\n"+caption, width)
}

func (m Model) renderControlsPanel(width int) string {
	styles := m.theme.Styles()
	var rows []string

	if m.snapshot.HasVolume {
		label := fmt.Sprintf("%d%%", m.snapshot.Volume)
		if m.snapshot.VolumePending {
			label += " …"
		}
		rows = append(rows, m.gaugeRow("Volume", float64(m.snapshot.Volume)/100, m.theme.Accent, label, width))
	} else {
		rows = append(rows, labelCell(styles, "Volume")+styles.FaintText.Render("unavailable"))
	}

	if m.snapshot.HasBrightness {
		label := fmt.Sprintf("%.0f%%", m.snapshot.Brightness*100)
		if m.snapshot.BrightnessPending {
			label += " …"
		}
		rows = append(rows, m.gaugeRow("Brightness", m.snapshot.Brightness, m.theme.Warning, label, width))
	} else {
		rows = append(rows, labelCell(styles, "Brightness")+styles.FaintText.Render("unavailable"))
	}

	if err := m.snapshot.ControlError; err != nil {
		rows = append(rows, styles.DangerText.Render(truncate("Update failed: "+remote.Message(err), width-4)))
	}

	return m.panel("Controls", strings.Join(rows, "\n"), width)
}

func (m Model) renderPowerPanel(width int) string {
	styles := m.theme.Styles()

	if m.confirming != "" {
		prompt := styles.WarningText.Bold(true).Render(m.confirming.Label()+" the remote machine?") +
			"  " + styles.AccentText.Render("y") + styles.MutedText.Render("/") + styles.AccentText.Render("n")
		return m.panel("Power", prompt, width)
	}

	keys := map[remote.ActionKind]string{
		remote.ActionSleep:    m.keys.Sleep.Help().Key,
		remote.ActionRestart:  m.keys.Restart.Help().Key,
		remote.ActionShutdown: m.keys.Shutdown.Help().Key,
	}
	var items []string
	for _, kind := range remote.ActionKinds() {
		items = append(items, styles.AccentText.Render(keys[kind])+" "+styles.Text.Render(kind.Label()))
	}
	content := strings.Join(items, "    ")
	if m.actionBusy {
		content += "    " + styles.FaintText.Render("(sending)")
	}
	return m.panel("Power", content, width)
}

func (m Model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	styles := m.theme.Styles()
	if m.statusError {
		return styles.DangerText.Render(m.status)
	}
	return styles.SuccessText.Render(m.status)
}

func (m Model) panel(title, content string, width int) string {
	styles := m.theme.Styles()
	heading := styles.AccentText.Bold(true).Render(title)
	return styles.Panel.Width(width).Render(heading + "\n" + content)
}

// gaugeRow renders "label [bar] value" with the bar filling the remaining width.
func (m Model) gaugeRow(label string, ratio float64, color, value string, width int) string {
	styles := m.theme.Styles()
	g := m.gauge
	g.FullColor = color
	g.Width = max(minGaugeSize, width-labelWidth-valueWidth-4)

	ratio = max(0, min(1, ratio))
	return labelCell(styles, label) +
		g.ViewAs(ratio) + " " +
		styles.Text.Render(value)
}

func labelCell(styles Styles, text string) string {
	return styles.MutedText.Width(labelWidth).Render(text)
}

func loadColor(t Theme, pct float64) string {
	switch {
	case pct >= 90:
		return t.Danger
	case pct >= 70:
		return t.Warning
	default:
		return t.Success
	}
}
