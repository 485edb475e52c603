package viz

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/san-kum/chalbik/internal/rain"
)

type TickMsg time.Time

// Options configures a Model.
type Options struct {
	Settings   rain.Settings
	Interval   time.Duration
	Profile    termenv.Profile
	Charset    string
	ShowStatus bool
}

// Model drives a compositor from bubbletea ticks. Elapsed time is measured
// from the first tick.
type Model struct {
	comp     *rain.Compositor
	settings rain.Settings
	interval time.Duration
	canvas   *Canvas
	charset  string

	width, height int
	showStatus    bool

	start    time.Time
	last     time.Time
	fps      float64
	frame    string
	lit      int
	rendered bool
}

func NewModel(comp *rain.Compositor, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	return Model{
		comp:       comp,
		settings:   opts.Settings,
		interval:   opts.Interval,
		canvas:     NewCanvas(opts.Profile, opts.Settings.Background),
		charset:    opts.Charset,
		showStatus: opts.ShowStatus,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and composes a frame on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.showStatus = !m.showStatus
		}
	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			log.Printf("resize: %dx%d -> %dx%d", m.width, m.height, msg.Width, msg.Height)
		}
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step(now time.Time) {
	if m.start.IsZero() {
		m.start = now
	}
	if !m.last.IsZero() {
		if dt := now.Sub(m.last); dt > 0 {
			m.fps = float64(time.Second) / float64(dt)
		}
	}
	m.last = now

	g := m.comp.Compose(m.settings, now.Sub(m.start), m.width, m.rainHeight())
	m.lit = g.Lit()
	m.frame = m.canvas.Render(g)
	m.rendered = true
}

func (m Model) rainHeight() int {
	if m.showStatus && m.height > 0 {
		return m.height - 1
	}
	return m.height
}

// Elapsed is the time since the first tick.
func (m Model) Elapsed() time.Duration {
	if m.start.IsZero() {
		return 0
	}
	return m.last.Sub(m.start)
}

// ShowStatus reports whether the status line is visible.
func (m Model) ShowStatus() bool { return m.showStatus }

func (m Model) View() string {
	if !m.rendered || m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.showStatus {
		return m.frame
	}
	status := StatusLine(Status{
		FPS:     m.fps,
		Active:  m.comp.Tracker().ActiveCount(),
		Lit:     m.lit,
		Cells:   m.width * m.rainHeight(),
		Speed:   m.settings.Speed.String(),
		Charset: m.charset,
	}, m.width)
	if m.frame == "" {
		return status
	}
	return m.frame + "\n" + status
}
