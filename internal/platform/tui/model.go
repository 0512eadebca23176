package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/replay"
	"github.com/vovakirdan/tui-runner/internal/sim"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Options configures a host Model.
type Options struct {
	Config     config.RunnerConfig
	Runtime    core.RuntimeConfig
	HoldWindow time.Duration
	Parallel   int

	// DuckHoldWindow overrides DefaultDuckHoldWindow when positive.
	DuckHoldWindow time.Duration

	// Preset is applied to reloaded configs. Config is expected to carry it already.
	Preset config.DifficultyPreset

	// Store receives recorded runs when Record is set.
	Store  *storage.Store
	Record bool

	// Watcher, if set, delivers config reloads applied at the next restart.
	Watcher *config.Watcher
	Logger  *log.Logger
}

// Model is the Bubble Tea model hosting one runner session at a time.
type Model struct {
	opts     Options
	cfg      config.RunnerConfig
	pending  *config.RunnerConfig
	session  *sim.Session
	recorder *replay.Recorder
	last     sim.StepResult
	runID    string

	keys   KeyMap
	help   help.Model
	hold   *HoldTracker
	screen *core.Screen
	proj   Projection
	logger *log.Logger

	paused   bool
	quitting bool
	err      error
}

// NewModel creates a host model and starts its first session.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		opts:   opts,
		cfg:    opts.Config,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		hold:   NewHoldTracker(opts.HoldWindow),
		logger: logger,
	}
	if opts.DuckHoldWindow > 0 {
		m.hold.SetWindow(core.ActionDuck, opts.DuckHoldWindow)
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)

	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// restart begins a new session with the current config.
func (m *Model) restart() error {
	session, err := sim.NewSession(m.cfg, sim.WithLogger(m.logger), sim.WithParallel(m.opts.Parallel))
	if err != nil {
		return err
	}
	m.session = session
	m.last = sim.StepResult{Snapshot: session.Snapshot()}
	m.recorder = nil
	if m.opts.Record && m.opts.Store != nil {
		m.recorder = replay.NewRecorder(session)
	}
	m.runID = ""
	m.paused = false
	m.hold.Release()
	return nil
}

// resize fits the screen and projection to the terminal, keeping one row for help.
func (m *Model) resize(width, height int) {
	width = max(width, 1)
	rows := max(height-1, 2)
	if m.screen == nil {
		m.screen = core.NewScreen(width, rows)
	} else {
		m.screen.Resize(width, rows)
	}
	m.help.Width = width
	m.proj = NewProjection(m.cfg, width, rows)
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), watchCmd(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case reloadMsg:
		return m.handleReload(config.Reload(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump, core.ActionDuck:
		m.hold.Press(action, time.Now())
	case core.ActionPause:
		if !m.last.Terminated {
			m.paused = !m.paused
			m.hold.Release()
		}
	case core.ActionRestart:
		if m.last.Terminated {
			if m.pending != nil {
				m.cfg = *m.pending
				m.pending = nil
				m.proj = NewProjection(m.cfg, m.screen.Width(), m.screen.Height())
			}
			if err := m.restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// handleTick advances the session by one frame of fixed length.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.paused || m.last.Terminated {
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	in := sim.FrameInput{
		Elapsed: m.opts.Runtime.FrameDuration(),
		Input:   m.hold.Frame(now),
	}

	var (
		res sim.StepResult
		err error
	)
	if m.recorder != nil {
		res, err = m.recorder.Step(in)
	} else {
		res, err = m.session.Step(in)
	}
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.last = res

	if res.Terminated {
		m.finish()
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleReload stores a new config for the next restart.
func (m Model) handleReload(r config.Reload) (tea.Model, tea.Cmd) {
	if r.Err != nil {
		m.logger.Warn("config reload failed", "error", r.Err)
	} else {
		cfg := r.Config
		config.ApplyPreset(&cfg, m.opts.Preset)
		m.pending = &cfg
		m.logger.Info("config reloaded; applies on restart")
	}
	return m, watchCmd(m.opts.Watcher)
}

// finish journals the current run once.
func (m *Model) finish() {
	if m.recorder == nil || m.runID != "" {
		return
	}
	id, err := m.recorder.Finish(m.opts.Store)
	if err != nil {
		if !errors.Is(err, replay.ErrEmptyRun) {
			m.logger.Warn("could not save run", "error", err)
		}
		return
	}
	m.runID = id
	m.logger.Info("run saved", "id", id, "frames", m.recorder.Len())
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.proj, m.last.Snapshot, m.last.Terminated, Status{
		Paused:  m.paused,
		Pending: m.pending != nil,
		RunID:   m.runID,
	})
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with a new host model.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
