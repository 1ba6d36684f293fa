// Package tui renders the timer in a terminal using Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/notify"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	urgentThreshold     = 5 * time.Second
	progressWidth       = 36
)

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	TickInterval time.Duration
	Now          func() time.Time
	Logger       *slog.Logger
	// Bell receives a BEL character when an interval completes.
	Bell io.Writer
}

// Model is the Bubble Tea model driving a timer engine.
type Model struct {
	engine   *timekeeper.Engine
	keys     KeyMap
	help     help.Model
	progress progress.Model
	options  Options

	lastTick time.Time
	notice   string
	quitting bool
}

// New creates a model around engine.
func New(engine *timekeeper.Engine, options Options) Model {
	if options.TickInterval <= 0 {
		options.TickInterval = defaultTickInterval
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return Model{
		engine:   engine,
		keys:     DefaultKeyMap,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth), progress.WithoutPercentage()),
		options:  options,
		lastTick: options.Now(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles key presses and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.lastTick)
		m.lastTick = now
		var bell tea.Cmd
		if m.engine.Snapshot().Mode == timekeeper.ModeRunning && elapsed > 0 {
			bell = m.record(m.engine.Tick(elapsed))
		}
		return m, tea.Batch(m.tick(), bell)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Primary):
		switch m.engine.Snapshot().Mode {
		case timekeeper.ModeRunning:
			m.engine.Pause()
		case timekeeper.ModePaused:
			m.engine.Resume()
			m.lastTick = m.options.Now()
		case timekeeper.ModeAwaitingAck:
			cmd = m.record(m.engine.Acknowledge())
			m.lastTick = m.options.Now()
		}
	case key.Matches(msg, m.keys.Skip):
		cmd = m.record(m.engine.Skip())
		m.lastTick = m.options.Now()
	case key.Matches(msg, m.keys.Reset):
		cmd = m.record(m.engine.Cancel())
		m.lastTick = m.options.Now()
	}
	return m, cmd
}

// record applies events to the notice line and returns a bell command when
// an interval completed.
func (m *Model) record(events []timekeeper.Event) tea.Cmd {
	completed := false
	for _, event := range events {
		m.options.Logger.Debug("interval event", "type", string(event.Type), "kind", event.Kind.String())
		switch event.Type {
		case timekeeper.EventIntervalCompleted:
			m.notice = notify.Message(event.Kind)
			completed = true
		case timekeeper.EventIntervalStarted:
			m.notice = ""
		}
	}
	if !completed || m.options.Bell == nil {
		return nil
	}
	writer := m.options.Bell
	return func() tea.Msg {
		_, _ = io.WriteString(writer, "\a")
		return nil
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.options.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Snapshot returns the engine state.
func (m Model) Snapshot() timekeeper.Snapshot {
	return m.engine.Snapshot()
}

// Notice returns the last completion message, if any.
func (m Model) Notice() string {
	return m.notice
}

// View renders the timer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snapshot := m.engine.Snapshot()
	config := m.engine.Config()

	heading := headingStyle.Foreground(kindColor(snapshot.Kind.IsBreak())).Render(snapshot.Kind.DisplayName())

	clock := timekeeper.FormatRemaining(snapshot.Remaining)
	clockStyle := timerStyle
	switch {
	case snapshot.Mode == timekeeper.ModePaused:
		clockStyle = clockStyle.Foreground(lipgloss.Color(dimColor))
	case snapshot.Mode == timekeeper.ModeRunning && snapshot.Remaining <= urgentThreshold:
		clockStyle = clockStyle.Foreground(lipgloss.Color(urgentColor))
	}

	status := "running"
	switch snapshot.Mode {
	case timekeeper.ModePaused:
		status = "paused"
	case timekeeper.ModeAwaitingAck:
		status = "finished, press space to continue"
	}

	lines := []string{
		heading,
		"",
		clockStyle.Render(clock) + "  " + dimStyle.Render(status),
		m.progress.ViewAs(snapshot.Progress()),
		dimStyle.Render(fmt.Sprintf("Short breaks %d/%d", snapshot.ShortBreaks, config.BreaksBeforeLong-1)),
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}

	var out strings.Builder
	out.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	out.WriteString("\n")
	return out.String()
}

// IsTTY reports whether stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts a full-screen program for engine.
func Run(engine *timekeeper.Engine, options Options) error {
	if !IsTTY() {
		return ErrNotTerminal
	}
	program := tea.NewProgram(New(engine, options), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
