// Package tui is the terminal front end: algorithm menu, run
// configuration, and the live animated visualization.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/render"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var algoInfo = map[string]string{
	"bubble":    "adjacent exchanges",
	"cocktail":  "bidirectional bubble",
	"insertion": "grow a sorted prefix",
	"selection": "repeated minimum",
	"shell":     "gapped insertion",
	"quick":     "partition and recurse",
	"merge":     "split and merge",
	"heap":      "heapify then extract",
	"odd-even":  "fixed comparison network",
	"pancake":   "prefix flips",
	"bogo":      "shuffle until sorted",
}

type uiState int

const (
	stateMenu uiState = iota
	stateConfig
	stateSim
)

type model struct {
	state      uiState
	cursor     int
	algorithms []string
	registry   *algo.Registry

	cfg         *config.Config
	paramCursor int

	driver  *render.Driver
	backend *render.CanvasBackend
	stepped int // steps applied so far in this playback
	total   int

	paused   bool
	speed    float64
	carry    float64 // fractional steps accumulated between ticks
	runErr   error
	compHist []float64

	theme    palette.Theme
	showHelp bool

	width  int
	height int
}

var configParams = []string{"size", "data", "seed", "scheme", "theme"}

func NewInteractiveApp(cfg *config.Config) *model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	reg := algo.NewRegistry()
	m := &model{
		state:      stateMenu,
		algorithms: reg.List(),
		registry:   reg,
		cfg:        cfg,
		speed:      cfg.AnimationSpeed,
		theme:      palette.GetTheme(cfg.Theme),
		width:      80,
		height:     24,
	}
	for i, name := range m.algorithms {
		if name == cfg.Algorithm {
			m.cursor = i
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.backend != nil {
			m.backend.Resize(m.canvasWidth(), m.canvasHeight())
			m.restart()
		}
		return m, nil
	case tickMsg:
		if m.state != stateSim || m.driver == nil {
			return m, nil
		}
		if !m.paused {
			m.advance()
		}
		m.driver.Frame(time.Now())
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algorithms)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg.Algorithm = m.algorithms[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(configParams)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.adjustParam(-1)
	case "right", "l":
		m.adjustParam(1)
	case "s", "enter":
		if err := m.start(); err != nil {
			m.runErr = err
			return m, nil
		}
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.driver != nil {
			m.driver.Dispose()
		}
		return m, tea.Quit
	case "escape", "a":
		if m.driver != nil {
			m.driver.Dispose()
			m.driver = nil
		}
		m.state = stateMenu
		return m, tea.ClearScreen
	case " ":
		m.paused = !m.paused
	case "n":
		m.paused = true
		if m.stepped < m.total {
			m.driver.StepForward()
			m.stepped++
			m.recordMetric()
		}
	case "p":
		m.paused = true
		if m.stepped > 0 {
			m.driver.StepBack()
			m.stepped--
			if len(m.compHist) > 0 {
				m.compHist = m.compHist[:len(m.compHist)-1]
			}
		}
	case "r":
		m.restart()
		return m, tea.ClearScreen
	case "d":
		m.cfg.DataType = string(nextKind(dataset.Kind(m.cfg.DataType)))
		if err := m.start(); err != nil {
			m.runErr = err
		}
		return m, tea.ClearScreen
	case "c":
		m.cfg.ColorScheme = string(nextScheme(palette.Scheme(m.cfg.ColorScheme)))
		m.reconfigure()
	case "t":
		m.cfg.Theme = nextTheme(m.cfg.Theme)
		m.theme = palette.GetTheme(m.cfg.Theme)
	case "v":
		if m.backend.CurrentView() == render.ViewBars {
			m.backend.SetView(render.ViewWire3D)
		} else {
			m.backend.SetView(render.ViewBars)
		}
	case "+", "=":
		m.speed = math.Min(m.speed*2, 64)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.125)
	case "0":
		m.speed = m.cfg.AnimationSpeed
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *model) adjustParam(dir int) {
	switch configParams[m.paramCursor] {
	case "size":
		sizes := []int{10, 16, 24, 32, 48, 64, 96, 128, 192, 256, 512, 1024}
		idx := 0
		for i, s := range sizes {
			if s <= m.cfg.DataSize {
				idx = i
			}
		}
		idx += dir
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sizes) {
			idx = len(sizes) - 1
		}
		m.cfg.DataSize = sizes[idx]
	case "data":
		if dir > 0 {
			m.cfg.DataType = string(nextKind(dataset.Kind(m.cfg.DataType)))
		} else {
			m.cfg.DataType = string(prevKind(dataset.Kind(m.cfg.DataType)))
		}
	case "seed":
		m.cfg.Seed += int64(dir)
		if m.cfg.Seed < 0 {
			m.cfg.Seed = 0
		}
	case "scheme":
		m.cfg.ColorScheme = string(nextScheme(palette.Scheme(m.cfg.ColorScheme)))
	case "theme":
		m.cfg.Theme = nextTheme(m.cfg.Theme)
		m.theme = palette.GetTheme(m.cfg.Theme)
	}
}

func (m *model) canvasWidth() int {
	w := m.width - 44
	if w < 40 {
		w = 40
	}
	return w
}

func (m *model) canvasHeight() int {
	h := m.height - 8
	if h < 10 {
		h = 10
	}
	return h
}

// start executes the configured algorithm to completion, then binds
// the recorded history to a fresh canvas driver for playback.
func (m *model) start() error {
	values, err := dataset.Generate(dataset.Kind(m.cfg.DataType), m.cfg.DataSize, m.cfg.Seed)
	if err != nil {
		return err
	}
	sorter, err := m.registry.Get(m.cfg.Algorithm)
	if err != nil {
		return err
	}

	eng := algo.New(sorter)
	if _, err := eng.Execute(context.Background(), values, m.cfg.EngineOptions()); err != nil {
		return err
	}

	if m.driver != nil {
		m.driver.Dispose()
	}
	backend := render.NewCanvasBackend(m.canvasWidth(), m.canvasHeight())
	factory := func(mode render.Mode) (render.Backend, error) { return backend, nil }

	drvCfg := m.cfg.RenderConfig()
	drvCfg.Mode = render.ModeCanvas
	drvCfg.AnimationSpeed = m.speed
	driver := render.NewDriver(factory, drvCfg)
	if err := driver.Start(); err != nil {
		return err
	}
	driver.SetHistory(eng.History())

	m.driver = driver
	m.backend = backend
	m.total = eng.History().Len()
	m.stepped = 0
	m.carry = 0
	m.paused = false
	m.runErr = nil
	m.compHist = m.compHist[:0]
	return nil
}

func (m *model) restart() {
	if m.driver == nil {
		return
	}
	m.driver.SeekTo(-1)
	m.stepped = 0
	m.carry = 0
	m.paused = false
	m.compHist = m.compHist[:0]
}

func (m *model) reconfigure() {
	if m.driver == nil {
		return
	}
	cfg := m.cfg.RenderConfig()
	cfg.Mode = render.ModeCanvas
	cfg.AnimationSpeed = m.speed
	m.driver.Configure(cfg)
	m.stepped = m.driver.Position() + 1
}

// advance applies the steps due this tick. Speed 1 plays roughly four
// steps per frame; fractional speeds carry the remainder forward.
func (m *model) advance() {
	if m.stepped >= m.total {
		m.paused = true
		return
	}
	m.carry += m.speed * 4
	n := int(m.carry)
	m.carry -= float64(n)
	for i := 0; i < n && m.stepped < m.total; i++ {
		m.driver.StepForward()
		m.stepped++
		m.recordMetric()
	}
}

func (m *model) recordMetric() {
	m.compHist = append(m.compHist, float64(m.driver.Metrics().Comparisons))
	if len(m.compHist) > 512 {
		m.compHist = m.compHist[1:]
	}
}

func nextKind(k dataset.Kind) dataset.Kind {
	kinds := dataset.Kinds()
	for i, kk := range kinds {
		if kk == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func prevKind(k dataset.Kind) dataset.Kind {
	kinds := dataset.Kinds()
	for i, kk := range kinds {
		if kk == k {
			return kinds[(i+len(kinds)-1)%len(kinds)]
		}
	}
	return kinds[0]
}

func nextScheme(s palette.Scheme) palette.Scheme {
	schemes := palette.Schemes()
	for i, ss := range schemes {
		if ss == s {
			return schemes[(i+1)%len(schemes)]
		}
	}
	return schemes[0]
}

func nextTheme(name string) string {
	names := palette.ThemeNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("s o r t v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.algorithms {
		desc := algoInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.cfg.Algorithm) + "  " + dim.Render(algoInfo[m.cfg.Algorithm]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	values := map[string]string{
		"size":   fmt.Sprintf("%d", m.cfg.DataSize),
		"data":   m.cfg.DataType,
		"seed":   fmt.Sprintf("%d", m.cfg.Seed),
		"scheme": m.cfg.ColorScheme,
		"theme":  m.cfg.Theme,
	}

	for i, name := range configParams {
		val := fmt.Sprintf("%14s", values[name])
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-8s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-8s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.runErr != nil {
		b.WriteString("\n      " + yellow.Render(m.runErr.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  s start  esc back") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	if m.driver == nil || m.backend == nil {
		return "\n   no active run\n"
	}

	accent := lipgloss.NewStyle().Foreground(m.theme.Primary)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("sorting")
	if m.stepped >= m.total {
		statusIcon = accent.Render("✔")
		statusText = accent.Render("sorted")
	} else if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, accent.Render(m.cfg.Algorithm), statusText,
		muted.Render(fmt.Sprintf("%s n=%d seed=%d", m.cfg.DataType, m.cfg.DataSize, m.cfg.Seed))))

	progress := 0.0
	if m.total > 0 {
		progress = float64(m.stepped) / float64(m.total)
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	bar := accent.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	fm := m.backend.FrameMetrics()
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar,
		dim.Render(fmt.Sprintf("%d/%d", m.stepped, m.total)),
		dim.Render(fmt.Sprintf("%.0ffps ×%.2g", fm.FPS, m.speed))))

	canvas := m.backend.View()
	stats := m.viewStats()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(dim.Render("   space pause  n/p step  r restart  a algorithms  d data  c scheme  t theme  v view  ± speed  q quit") + "\n")
	} else {
		b.WriteString(dim.Render("   space pause  ± speed  ? keys  q quit") + "\n")
	}

	return b.String()
}

func (m model) viewStats() string {
	met := m.driver.Metrics()
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(13)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)

	var b strings.Builder
	row := func(label string, value uint64) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%d", value)) + "\n")
	}
	row("comparisons", met.Comparisons)
	row("swaps", met.Swaps)
	row("reads", met.Reads)
	row("writes", met.Writes)

	if len(m.compHist) > 1 {
		chart := asciigraph.Plot(m.compHist,
			asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("comparisons"))
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(chart) + "\n")
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Muted).
		Padding(0, 2)
	return panel.Render(b.String())
}

// RunInteractive starts the full-screen terminal app.
func RunInteractive(cfg *config.Config) error {
	p := tea.NewProgram(NewInteractiveApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
