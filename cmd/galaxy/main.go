package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	kitlog "github.com/go-kit/kit/log"

	"github.com/webgfx/galaxy"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

// sceneBody is the terminal-side visual handle of one body. The core
// repositions it every tick; drawing happens in Render.
type sceneBody struct {
	name     string
	kind     galaxy.BodyKind
	size     float64
	x, y, z  float64
	rotation float64
	labelY   float64
}

func (s *sceneBody) SetPosition(x, y, z float64) {
	s.x, s.y, s.z = x, y, z
}

func (s *sceneBody) SetRotation(rad float64) {
	s.rotation = rad
}

func (s *sceneBody) SetLabelAnchor(x, y, z float64) {
	s.labelY = y
}

func (s *sceneBody) glyph() (rune, tcell.Style) {
	switch s.kind {
	case galaxy.Star:
		return '@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case galaxy.GasGiant:
		return 'O', tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case galaxy.IceGiant:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorAqua)
	default:
		return '·', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

// viewer owns the screen and drives the simulation once per ticker tick.
type viewer struct {
	screen        tcell.Screen
	sim           *galaxy.Sim
	bodies        []*sceneBody
	width, height int
	paused        bool
	showLabels    bool
}

func newViewer(conf galaxy.Config, logger kitlog.Logger, export galaxy.ExportConfig) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	registry, err := galaxy.NewRegistry(conf.Bodies)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	cam := galaxy.NewCamera(conf.Camera.Distance, conf.Camera.MinDistance, conf.Camera.MaxDistance)
	sim := galaxy.NewSim(registry, cam, conf.LabelOffset, export, logger)

	v := &viewer{screen: screen, sim: sim, showLabels: true}
	for _, b := range registry.Bodies() {
		sb := &sceneBody{name: b.Name, kind: b.Kind, size: b.VisualSize}
		b.SetHandle(sb)
		v.bodies = append(v.bodies, sb)
	}
	sim.SetRenderer(v)

	v.width, v.height = screen.Size()
	sim.Resize(v.width, v.height)
	return v, nil
}

// Render implements galaxy.Renderer: the screen is the scene.
func (v *viewer) Render(cam *galaxy.Camera) {
	v.screen.Clear()

	cx, cy := v.width/2, v.height/2
	// Scale so the camera distance spans the screen; terminal cells are about
	// twice as tall as wide, so z is halved.
	scale := float64(v.height) / cam.Distance()
	if w := float64(v.width) / (2 * cam.Distance()); w < scale {
		scale = w
	}

	// Farther bodies first so near ones overdraw them.
	drawOrder := make([]*sceneBody, len(v.bodies))
	copy(drawOrder, v.bodies)
	sort.SliceStable(drawOrder, func(i, j int) bool {
		return drawOrder[i].z > drawOrder[j].z
	})

	for _, sb := range drawOrder {
		col := cx + int(math.Round(sb.x*scale))
		row := cy + int(math.Round(sb.z*scale/2))
		if col < 0 || col >= v.width || row < 0 || row >= v.height {
			continue
		}
		ch, style := sb.glyph()
		v.screen.SetContent(col, row, ch, nil, style)
		if v.showLabels && sb.kind != galaxy.Star {
			label := sb.name
			labelStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
			for i, r := range label {
				if col+2+i >= v.width {
					break
				}
				v.screen.SetContent(col+2+i, row, r, nil, labelStyle)
			}
		}
	}

	v.drawStatus(cam)
	v.screen.Show()
}

func (v *viewer) drawStatus(cam *galaxy.Camera) {
	state := "running"
	if v.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s | dist %.1f | space pause  +/- zoom  l labels  q quit ", state, cam.Distance())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	for i, r := range status {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, r, nil, style)
	}
}

func (v *viewer) handleResize() {
	newWidth, newHeight := v.screen.Size()
	if newWidth != v.width || newHeight != v.height {
		v.width = newWidth
		v.height = newHeight
		v.sim.Resize(newWidth, newHeight)
	}
}

// handleInput returns false when the viewer should exit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			v.paused = !v.paused
			v.sim.SetPaused(v.paused)
		case ev.Rune() == '+' || ev.Rune() == '=':
			v.sim.RequestZoom(galaxy.ZoomIn)
		case ev.Rune() == '-':
			v.sim.RequestZoom(galaxy.ZoomOut)
		case ev.Rune() == 'l':
			v.showLabels = !v.showLabels
		}
	case *tcell.EventResize:
		v.handleResize()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			v.sim.AdvanceAndRender(dt)
		}
	}
}

func (v *viewer) cleanup() {
	v.screen.Fini()
	v.sim.Shutdown()
}

func main() {
	confDir := flag.String("config", "", "directory containing galaxy.toml (optional)")
	csvOut := flag.String("csv", "", "stream tick states to this CSV file prefix")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (optional)")
	logPath := flag.String("log", "", "append logfmt status logs to this file")
	flag.Parse()

	conf := galaxy.DefaultConfig()
	if *confDir != "" {
		var err error
		if conf, err = galaxy.LoadConfig(*confDir); err != nil {
			fmt.Fprintf(os.Stderr, "configuration error: %s\n", err)
			os.Exit(1)
		}
	}

	logger := kitlog.NewNopLogger()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(f))
	}

	if *metricsAddr != "" {
		go func() {
			if err := serveMetrics(*metricsAddr); err != nil {
				logger.Log("level", "warning", "subsys", "metrics", "err", err)
			}
		}()
	}

	export := galaxy.ExportConfig{CSV: *csvOut != "", Filename: *csvOut}
	v, err := newViewer(conf, logger, export)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
}
