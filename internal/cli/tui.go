package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bleed/pkg/painting"
	"github.com/matzehuels/bleed/pkg/random"
	"github.com/matzehuels/bleed/pkg/render/sink"
)

// chromeRows is the number of terminal rows used by the header and help line.
const chromeRows = 2

// =============================================================================
// Scheduler
// =============================================================================

// frameMsg carries a painter continuation back into Update.
type frameMsg struct{ fn func() }

// teaScheduler turns painter continuations into tea.Tick commands so every
// frame runs on the bubbletea event loop.
type teaScheduler struct{ pending []tea.Cmd }

func (s *teaScheduler) Schedule(delay time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(delay, func(time.Time) tea.Msg { return frameMsg{fn} }))
}

// flush returns the commands scheduled since the last flush.
func (s *teaScheduler) flush() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// =============================================================================
// Canvas
// =============================================================================

// canvas lets the model swap the braille buffer on resize while the painter
// keeps drawing to the same Surface.
type canvas struct{ *sink.Braille }

// frameStats follows the painter through its hooks.
type frameStats struct {
	canvas    *canvas
	keep      bool // accumulate shapes instead of clearing per cycle
	cycle     int
	layer     int
	points    int
	facets    int
	radius    float64
	lastCycle time.Duration
}

func (s *frameStats) OnCycleStart(_ context.Context, _ string, facets int, radius float64) {
	if !s.keep {
		s.canvas.Clear()
	}
	s.facets, s.radius, s.layer = facets, radius, 0
}

func (s *frameStats) OnLayer(_ context.Context, cycle, layer, points int) {
	s.cycle, s.layer, s.points = cycle, layer+1, points
}

func (s *frameStats) OnCycleComplete(_ context.Context, _, _ int, d time.Duration) {
	s.lastCycle = d
}

// =============================================================================
// Keys
// =============================================================================

type animateKeys struct {
	Pause key.Binding
	Clear key.Binding
	Keep  key.Binding
	Quit  key.Binding
}

func (k animateKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Clear, k.Keep, k.Quit}
}

func (k animateKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultAnimateKeys() animateKeys {
	return animateKeys{
		Pause: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("space", "pause")),
		Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Keep:  key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "keep layers")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// =============================================================================
// AnimateModel - Live painting preview
// =============================================================================

// AnimateModel is the bubbletea model that paints into a braille canvas.
type AnimateModel struct {
	cfg     painting.Config
	seed    uint64
	painter *painting.Painter
	sched   *teaScheduler
	canvas  *canvas
	stats   *frameStats
	ctx     context.Context
	cancel  context.CancelFunc

	keys animateKeys
	help help.Model

	paused   bool
	held     func() // continuation parked while paused
	finished bool
	err      error
}

// NewAnimateModel creates a model painting cfg with seed on a cols x rows
// canvas. The size is replaced by the first window size message.
func NewAnimateModel(ctx context.Context, cfg painting.Config, seed uint64, cols, rows int) *AnimateModel {
	ctx, cancel := context.WithCancel(ctx)
	cv := &canvas{sink.NewBraille(cols, rows, cfg.Width, cfg.Height)}
	stats := &frameStats{canvas: cv}
	m := &AnimateModel{
		cfg:    cfg,
		seed:   seed,
		sched:  &teaScheduler{},
		canvas: cv,
		stats:  stats,
		ctx:    ctx,
		cancel: cancel,
		keys:   defaultAnimateKeys(),
		help:   help.New(),
	}
	m.painter = painting.New(cfg, cv, random.New(seed), painting.WithHooks(stats))
	return m
}

// Err returns the error that stopped the painter early, if any.
func (m *AnimateModel) Err() error { return m.err }

// Cycles returns the number of shapes started so far.
func (m *AnimateModel) Cycles() int { return m.stats.cycle }

func (m *AnimateModel) Init() tea.Cmd {
	m.painter.Start(m.ctx, m.sched, m.done)
	return m.sched.flush()
}

func (m *AnimateModel) done(_ painting.FrameState, err error) {
	m.finished = true
	if !errors.Is(err, painting.ErrDone) && !errors.Is(err, context.Canceled) {
		m.err = err
	}
}

func (m *AnimateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.paused {
			m.held = msg.fn
			return m, nil
		}
		msg.fn()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, m.sched.flush()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused && m.held != nil {
				fn := m.held
				m.held = nil
				return m, func() tea.Msg { return frameMsg{fn} }
			}
		case key.Matches(msg, m.keys.Clear):
			m.canvas.Clear()
		case key.Matches(msg, m.keys.Keep):
			m.stats.keep = !m.stats.keep
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		resized := sink.NewBraille(max(msg.Width, 1), max(msg.Height-chromeRows, 1), m.cfg.Width, m.cfg.Height)
		if c := m.canvas.Color(); c != "" {
			resized.SetFillColor(c)
		}
		m.canvas.Braille = resized
	}
	return m, nil
}

func (m *AnimateModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.status()))
	b.WriteString("\n")

	ink := lipgloss.NewStyle()
	if c := m.canvas.Color(); c != "" {
		ink = ink.Foreground(lipgloss.Color(c))
	}
	b.WriteString(ink.Render(strings.Join(m.canvas.Lines(), "\n")))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *AnimateModel) status() string {
	s := m.stats
	parts := []string{
		fmt.Sprintf("seed %d", m.seed),
		fmt.Sprintf("shape %d", s.cycle),
		fmt.Sprintf("layer %d/%d", s.layer, m.cfg.Layers),
		fmt.Sprintf("%d facets", s.facets),
		fmt.Sprintf("%d points", s.points),
	}
	if s.lastCycle > 0 {
		parts = append(parts, s.lastCycle.Round(time.Millisecond).String())
	}
	switch {
	case m.finished:
		parts = append(parts, StyleWarning.Render("done"))
	case m.paused:
		parts = append(parts, StyleWarning.Render("paused"))
	}
	return strings.Join(parts, " · ")
}
