package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/deskremote/internal/engine"
	"github.com/five82/deskremote/internal/prefs"
	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
)

// Controller is the engine surface the UI drives.
type Controller interface {
	Snapshot() state.Snapshot
	SetVolume(v int)
	SetBrightness(b float64)
	RetryNow()
	Suspend()
	Resume()
	PerformAction(ctx context.Context, kind remote.ActionKind) (*remote.ActionResult, error)
}

// idleController stands in when no engine is attached: nothing connects and
// every intent is ignored.
type idleController struct{}

func (idleController) Snapshot() state.Snapshot { return state.Snapshot{} }
func (idleController) SetVolume(int)             {}
func (idleController) SetBrightness(float64)     {}
func (idleController) RetryNow()                 {}
func (idleController) Suspend()                  {}
func (idleController) Resume()                   {}

func (idleController) PerformAction(context.Context, remote.ActionKind) (*remote.ActionResult, error) {
	return nil, errNoController
}

var errNoController = errors.New("not connected to a server")

// Options configures the UI. A nil Controller shows a disconnected
// dashboard.
type Options struct {
	Context           context.Context
	Controller        Controller
	Logger            zerolog.Logger
	RefreshTick       time.Duration // how often the snapshot is re-read
	ReconnectInterval time.Duration // shown in the offline view
	ThemeName         string
	PrefsPath         string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	ctrl         Controller
	log          zerolog.Logger
	prefsPath    string
	refreshTick  time.Duration
	reconnectFor time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	gauge    progress.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Power action flow
	confirming  remote.ActionKind // non-empty while awaiting y/n
	actionBusy  bool
	status      string
	statusError bool
}

const defaultRefreshTick = 250 * time.Millisecond

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshTick
	if refresh <= 0 {
		refresh = defaultRefreshTick
	}

	reconnect := opts.ReconnectInterval
	if reconnect <= 0 {
		reconnect = engine.DefaultReconnectInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = idleController{}
	}

	theme := GetTheme(opts.ThemeName)

	m := Model{
		ctx:          ctx,
		ctrl:         ctrl,
		log:          opts.Logger.With().Str("component", "ui").Logger(),
		prefsPath:    prefsPath,
		refreshTick:  refresh,
		reconnectFor: reconnect,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		gauge:        newGauge(theme),
	}
	m.snapshot = m.ctrl.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.refreshTick), fetchSnapshotCmd(m.ctrl))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.ctrl), tickCmd(m.refreshTick))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if !m.snapshot.IsOnline() {
			m.confirming = ""
		}
		return m, nil

	case actionResultMsg:
		m.actionBusy = false
		if msg.err != nil {
			m.setStatus(remote.Message(msg.err), true)
		} else {
			m.setStatus(msg.kind.Label()+" command sent", false)
		}
		return m, nil

	case tea.ResumeMsg:
		m.ctrl.Resume()
		return m, fetchSnapshotCmd(m.ctrl)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.confirming != "" {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.gauge = newGauge(m.theme)
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.log.Warn().Err(err).Msg("save theme")
		}
		return m, nil

	case key.Matches(msg, m.keys.Suspend):
		m.ctrl.Suspend()
		return m, tea.Suspend

	case key.Matches(msg, m.keys.Retry):
		if !m.snapshot.IsOnline() {
			m.ctrl.RetryNow()
			m.snapshot.Connection = state.Connecting
		}
		return m, nil
	}

	// Everything below needs a live connection.
	if !m.snapshot.IsOnline() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.VolumeDown):
		m.stepVolume(-engine.VolumeStep)
	case key.Matches(msg, m.keys.VolumeUp):
		m.stepVolume(engine.VolumeStep)
	case key.Matches(msg, m.keys.BrightnessDown):
		m.stepBrightness(-engine.BrightnessStep)
	case key.Matches(msg, m.keys.BrightnessUp):
		m.stepBrightness(engine.BrightnessStep)
	case key.Matches(msg, m.keys.Sleep):
		m.askConfirm(remote.ActionSleep)
	case key.Matches(msg, m.keys.Restart):
		m.askConfirm(remote.ActionRestart)
	case key.Matches(msg, m.keys.Shutdown):
		m.askConfirm(remote.ActionShutdown)
	}
	return m, nil
}

// stepVolume adjusts from the locally shown value so key repeats between
// snapshot refreshes accumulate.
func (m *Model) stepVolume(delta int) {
	if !m.snapshot.HasVolume {
		return
	}
	v := max(engine.MinVolume, min(engine.MaxVolume, m.snapshot.Volume+delta))
	m.snapshot.Volume = v
	m.snapshot.VolumePending = true
	m.ctrl.SetVolume(v)
}

func (m *Model) stepBrightness(delta float64) {
	if !m.snapshot.HasBrightness {
		return
	}
	b := roundBrightness(m.snapshot.Brightness + delta)
	m.snapshot.Brightness = b
	m.snapshot.BrightnessPending = true
	m.ctrl.SetBrightness(b)
}

func roundBrightness(b float64) float64 {
	b = max(engine.MinBrightness, min(engine.MaxBrightness, b))
	return float64(int(b*100+0.5)) / 100
}

func (m *Model) askConfirm(kind remote.ActionKind) {
	if m.actionBusy {
		return
	}
	m.confirming = kind
	m.status = ""
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		kind := m.confirming
		m.confirming = ""
		m.actionBusy = true
		m.setStatus("Sending "+kind.Label()+"...", false)
		return m, performActionCmd(m.ctx, m.ctrl, kind)
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.confirming = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type actionResultMsg struct {
	kind remote.ActionKind
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(ctrl.Snapshot())
	}
}

func performActionCmd(ctx context.Context, ctrl Controller, kind remote.ActionKind) tea.Cmd {
	return func() tea.Msg {
		_, err := ctrl.PerformAction(ctx, kind)
		return actionResultMsg{kind: kind, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		teaOpts = append(teaOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	return exitError(m.ctx, err)
}

// exitError treats a program killed by ctx cancellation (SIGINT/SIGTERM in
// main) as a normal quit.
func exitError(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
