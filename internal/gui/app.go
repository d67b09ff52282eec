package gui

import (
	"context"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/audio"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/render"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

type App struct {
	Cfg        *config.Config
	Registry   *algo.Registry
	Algorithms []string
	Selected   int
	Algorithm  string
	InMenu     bool
	InConfig   bool
	Running    bool
	ParamSel   int

	Driver    *render.Driver
	Speed     float64
	carry     float64
	Telemetry []float64 // Ring buffer for the comparisons graph
	RunErr    error
	Font      rl.Font

	// Audio
	Sonifier *audio.Sonifier
}

// initWindow initializes the Raylib window with size 1280×720 and title "sortviz", sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.InitWindow(1280, 720, "sortviz")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables bilinear texture filtering.
// It returns the loaded rl.Font ready for use in rendering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an App over the algorithm registry, configured either for
// interactive menu-driven use or for direct execution of startAlgorithm.
func NewApp(cfg *config.Config, startAlgorithm string, interactive bool) *App {
	reg := algo.NewRegistry()

	var son *audio.Sonifier
	if cfg.Sound {
		son = audio.NewSonifier()
		if err := son.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "sortviz: audio unavailable: %v\n", err)
			son = nil
		}
	}

	app := &App{
		Cfg:        cfg,
		Registry:   reg,
		Algorithms: reg.List(),
		Speed:      cfg.AnimationSpeed,
		Telemetry:  make([]float64, 0, 200),
		Font:       loadFont(),
		InMenu:     interactive,
		Sonifier:   son,
	}
	if !interactive {
		app.loadRun(startAlgorithm)
		app.Running = app.RunErr == nil
	}
	return app
}

// RunInteractive opens the window in menu mode and blocks until it closes.
func RunInteractive(cfg *config.Config) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(cfg, "", true)
	app.RunLoop()
}

// Run starts a non-interactive session for the named algorithm and enters
// the main update-draw loop until the window is closed.
func Run(cfg *config.Config, algorithm string) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(cfg, algorithm, false)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.shutdown()
}

// loadRun executes the selected algorithm to completion and binds the
// recorded history to a fresh driver. Playback then replays the record;
// the sort itself is never re-run per frame.
func (a *App) loadRun(name string) {
	if a.Driver != nil {
		a.Driver.Dispose()
		a.Driver = nil
	}
	a.Algorithm = name
	a.Telemetry = a.Telemetry[:0]
	a.carry = 0
	a.RunErr = nil

	input, err := dataset.Generate(dataset.Kind(a.Cfg.DataType), a.Cfg.DataSize, a.Cfg.Seed)
	if err != nil {
		a.RunErr = err
		return
	}
	sorter, err := a.Registry.Get(name)
	if err != nil {
		a.RunErr = err
		return
	}
	eng := algo.New(sorter)
	if _, err := eng.Execute(context.Background(), input, a.Cfg.EngineOptions()); err != nil {
		a.RunErr = err
		return
	}

	// Canvas is a terminal backend; inside a window the 3-D scene is the
	// fallback instead.
	factory := func(mode render.Mode) (render.Backend, error) {
		switch mode {
		case render.ModeGL:
			return render.NewGLBackend(1280, 540), nil
		case render.ModeScene3D, render.ModeCanvas:
			return render.NewScene3DBackend(), nil
		default:
			return nil, fmt.Errorf("unknown render mode %q", mode)
		}
	}
	rc := a.Cfg.RenderConfig()
	rc.AnimationSpeed = a.Speed
	if rc.Mode == "" || rc.Mode == render.ModeAuto || rc.Mode == render.ModeCanvas {
		rc.Mode = render.ModeGL
	}
	d := render.NewDriver(factory, rc)
	if err := d.Start(); err != nil {
		a.RunErr = err
		return
	}
	d.SetHistory(eng.History())
	a.Driver = d

	if a.Sonifier != nil {
		max := 0.0
		for _, v := range input {
			if v > max {
				max = v
			}
		}
		a.Sonifier.SetRange(max)
	}
}

func (a *App) done() bool {
	return a.Driver == nil || a.Driver.History() == nil ||
		a.Driver.Position() >= a.Driver.History().Len()-1
}

// advance replays recorded steps at the current speed, carrying the
// fractional remainder so sub-one speeds still progress.
func (a *App) advance() {
	if a.Driver == nil || a.done() {
		return
	}
	a.carry += a.Speed * 4
	n := int(a.carry)
	a.carry -= float64(n)
	for i := 0; i < n && !a.done(); i++ {
		a.stepOnce()
	}
}

func (a *App) stepOnce() {
	if err := a.Driver.StepForward(); err != nil {
		a.RunErr = err
		return
	}
	m := a.Driver.Metrics()
	if a.Sonifier != nil {
		a.Sonifier.OnStep(a.Driver.History().Step(a.Driver.Position()), m)
	}
	a.Telemetry = append(a.Telemetry, float64(m.Comparisons))
	if len(a.Telemetry) > 200 {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.shutdown()
		rl.CloseWindow()
		os.Exit(0)
	}

	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.Selected++
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected--
		}

		// Wrap selection
		if a.Selected >= len(a.Algorithms) {
			a.Selected = 0
		}
		if a.Selected < 0 {
			a.Selected = len(a.Algorithms) - 1
		}

		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			a.Algorithm = a.Algorithms[a.Selected]
			a.InMenu = false
			a.InConfig = true // Go to config first
			a.Running = false
		}
		return
	}

	if a.InConfig {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.InMenu = true
			a.InConfig = false
			return
		}
		if rl.IsKeyPressed(rl.KeyEnter) {
			a.InConfig = false
			a.loadRun(a.Algorithm)
			a.Running = a.RunErr == nil
			return
		}

		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.ParamSel = (a.ParamSel + 1) % len(configParams)
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.ParamSel--
			if a.ParamSel < 0 {
				a.ParamSel = len(configParams) - 1
			}
		}
		if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
			a.adjustParam(+1)
		}
		if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
			a.adjustParam(-1)
		}
		return
	}

	// Simulation running or paused
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		if a.Driver != nil {
			a.Driver.Dispose()
			a.Driver = nil
		}
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if a.Driver != nil {
			a.Driver.SeekTo(-1)
		}
		a.Telemetry = a.Telemetry[:0]
		a.carry = 0
		a.Running = true
	}
	if rl.IsKeyPressed(rl.KeyN) && a.Driver != nil && !a.done() {
		a.stepOnce()
	}
	if rl.IsKeyPressed(rl.KeyP) && a.Driver != nil {
		a.Driver.StepBack()
		if len(a.Telemetry) > 0 {
			a.Telemetry = a.Telemetry[:len(a.Telemetry)-1]
		}
	}
	if rl.IsKeyPressed(rl.KeyV) && a.Driver != nil {
		next := render.ModeScene3D
		if a.Driver.Mode() == render.ModeScene3D {
			next = render.ModeGL
		}
		if err := a.Driver.SwitchMode(next); err != nil {
			a.RunErr = err
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) && a.Speed < 64 {
		a.Speed *= 2
	}
	if rl.IsKeyPressed(rl.KeyMinus) && a.Speed > 0.125 {
		a.Speed /= 2
	}

	if a.Running {
		a.advance()
	}
}

// configParams are the pre-run settings adjustable on the config screen.
var configParams = []string{"size", "data", "seed", "scheme"}

var sizeLadder = []int{10, 16, 32, 64, 100, 128, 256, 512, 1024}

func (a *App) adjustParam(dir int) {
	switch configParams[a.ParamSel] {
	case "size":
		idx := 0
		for i, s := range sizeLadder {
			if s <= a.Cfg.DataSize {
				idx = i
			}
		}
		idx += dir
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sizeLadder) {
			idx = len(sizeLadder) - 1
		}
		a.Cfg.DataSize = sizeLadder[idx]
	case "data":
		kinds := dataset.Kinds()
		idx := 0
		for i, k := range kinds {
			if string(k) == a.Cfg.DataType {
				idx = i
			}
		}
		idx = (idx + dir + len(kinds)) % len(kinds)
		a.Cfg.DataType = string(kinds[idx])
	case "seed":
		a.Cfg.Seed += int64(dir)
		if a.Cfg.Seed < 0 {
			a.Cfg.Seed = 0
		}
	case "scheme":
		schemes := palette.Schemes()
		idx := 0
		for i, s := range schemes {
			if string(s) == a.Cfg.ColorScheme {
				idx = i
			}
		}
		idx = (idx + dir + len(schemes)) % len(schemes)
		a.Cfg.ColorScheme = string(schemes[idx])
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.drawSim()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawSim() {
	if a.Driver == nil {
		return
	}
	if err := a.Driver.Frame(time.Now()); err != nil {
		a.RunErr = err
	}
}

func (a *App) DrawHUD() {
	a.drawText("sortviz", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Algorithm), 150, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	switch {
	case a.done():
		status = "SORTED"
		col = ColAccent
	case !a.Running:
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	if a.Driver != nil {
		m := a.Driver.Metrics()
		a.drawText(fmt.Sprintf("CMP %-8d SWP %-8d RD %-8d WR %-8d", m.Comparisons, m.Swaps, m.Reads, m.Writes), 30, 60, 16, ColText)
		if h := a.Driver.History(); h != nil && h.Len() > 0 {
			pct := float64(a.Driver.Position()+1) / float64(h.Len()) * 100
			a.drawText(fmt.Sprintf("STEP %d/%d (%.0f%%)  x%g", a.Driver.Position()+1, h.Len(), pct, a.Speed), 30, 84, 16, ColTextDim)
		}
	}
	if a.RunErr != nil {
		a.drawText(fmt.Sprintf("ERR %v", a.RunErr), 30, 620, 16, rl.Red)
	}

	a.DrawTelemetry()

	a.drawText("[SPACE] PAUSE  [N/P] STEP  [R] RESET  [V] VIEW  [-/=] SPEED  [ESC] MENU  [Q] QUIT", 560, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)

	if a.Sonifier != nil && a.Sonifier.Active() {
		a.drawText("SND [ON]", 30, 650, 14, ColAccent)
	} else {
		a.drawText("SND [OFF]", 30, 650, 14, ColTextDim)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 560
	width, height := 400, 60

	// Normalize Data
	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	// Draw Line Strip
	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("CMP %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("sortviz", 50, 50, 40, ColSelect)
	a.drawText("Select Algorithm", 50, 100, 16, ColTextDim)

	limit := 18
	startIdx := 0
	if a.Selected >= limit {
		startIdx = a.Selected - limit + 1
	}

	y := 160
	for i := startIdx; i < len(a.Algorithms) && i < startIdx+limit; i++ {
		name := a.Algorithms[i]
		isSel := (i == a.Selected)
		if isSel {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("sortviz", 50, 50, 40, ColTextDim)
	a.drawText("configure", 220, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Target: %s", a.Algorithm), 50, 110, 16, ColAccent)

	vals := []string{
		fmt.Sprintf("%d", a.Cfg.DataSize),
		a.Cfg.DataType,
		fmt.Sprintf("%d", a.Cfg.Seed),
		a.Cfg.ColorScheme,
	}
	y := 180
	for i, key := range configParams {
		isSel := (i == a.ParamSel)
		if isSel {
			a.drawText(fmt.Sprintf("> %-15s %s", key, vals[i]), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-15s %s", key, vals[i]), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: ADJUST  ENTER: RUN  ESC: BACK", 880, 680, 14, ColTextDim)
}

func (a *App) shutdown() {
	if a.Sonifier != nil {
		a.Sonifier.Stop()
	}
	if a.Driver != nil {
		a.Driver.Dispose()
		a.Driver = nil
	}
}
