package galaxy

import (
	"os"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// statusEvery is the number of frames between periodic status logs.
	statusEvery = 600
)

var wg sync.WaitGroup

/* Handles the per-tick orchestration. */

// Renderer draws the current scene/camera pair. The core consumes no return
// value from it.
type Renderer interface {
	Render(cam *Camera)
}

// OrbitControl is the external camera drag/orbit collaborator, invoked at
// the start of every tick. Damping and orientation logic live there.
type OrbitControl interface {
	Update(cam *Camera)
}

// Sim owns the frame loop. It is constructed once and passed to the
// scheduling driver; there are no ambient globals. All body and camera state
// is exclusively owned by the loop during a tick and exposed read-only to
// collaborators between ticks.
type Sim struct {
	Registry *Registry
	Clock    *Clock
	Camera   *Camera

	inter       *Interaction
	orbitCtl    OrbitControl
	renderer    Renderer
	labelOffset float64
	paused      bool
	frame       uint64
	histChan    chan<- State
	logger      kitlog.Logger
}

// BodyState is one body's sampled position.
type BodyState struct {
	Name     string
	Position []float64
}

// State stores one tick's sampled simulation state.
type State struct {
	Frame   uint64
	Elapsed float64
	Bodies  []BodyState
}

// NewSim returns the simulation context. The registry must already be
// validated; the renderer and orbit control may be nil (headless).
func NewSim(r *Registry, cam *Camera, labelOffset float64, conf ExportConfig, logger kitlog.Logger) *Sim {
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	logger = kitlog.With(logger, "subsys", "sim")
	var histChan chan State
	if !conf.IsUseless() {
		histChan = make(chan State, 1000) // a 1k entry buffer
		wg.Add(1)
		go func() {
			defer wg.Done()
			StreamStates(conf, histChan)
		}()
	}
	s := &Sim{
		Registry:    r,
		Clock:       &Clock{},
		Camera:      cam,
		inter:       NewInteraction(),
		labelOffset: labelOffset,
		histChan:    histChan,
		logger:      logger,
	}
	logger.Log("level", "info", "status", "initialized", "bodies", len(r.Bodies()), "central", r.CentralBody().Name)
	return s
}

// SetRenderer binds the external renderer.
func (s *Sim) SetRenderer(r Renderer) {
	s.renderer = r
}

// SetOrbitControl binds the external camera drag collaborator.
func (s *Sim) SetOrbitControl(o OrbitControl) {
	s.orbitCtl = o
}

/* Control surface for UI and gesture layers. Fire-and-forget, total. */

// SetTarget forwards the desired central-body position to the interaction
// sink. See Interaction.SetTarget: the central body stays pinned regardless.
func (s *Sim) SetTarget(v []float64) {
	s.inter.SetTarget(v)
}

// SetPaused freezes or resumes the simulation clock and phase accumulation.
func (s *Sim) SetPaused(paused bool) {
	s.inter.SetPaused(paused)
}

// RequestZoom queues one discrete zoom step for the next tick.
func (s *Sim) RequestZoom(dir ZoomDirection) {
	s.inter.RequestZoom(dir)
}

// Resize updates the camera aspect ratio and render surface size.
func (s *Sim) Resize(width, height int) {
	s.Camera.Resize(width, height)
}

// Frame returns the number of completed ticks.
func (s *Sim) Frame() uint64 {
	return s.frame
}

// Paused returns the freeze state as of the last tick.
func (s *Sim) Paused() bool {
	return s.paused
}

// AdvanceAndRender runs one tick: drag update, time and phase advance
// (unless paused), central-body pin, handle and label sync, pending zoom,
// then render. A tick is one atomic unit of work; interaction commands
// queued mid-tick are observed on the next one.
func (s *Sim) AdvanceAndRender(dt float64) {
	paused, zoom := s.inter.Snapshot()

	if s.orbitCtl != nil {
		s.orbitCtl.Update(s.Camera)
	}

	if paused != s.paused {
		s.paused = paused
		s.Clock.SetPaused(paused)
		s.Registry.SetFrozen(paused)
		s.logger.Log("level", "info", "paused", paused, "elapsed(s)", s.Clock.Elapsed())
		setPausedMetric(paused)
	}

	s.Clock.Advance(dt)
	s.Registry.Advance(dt)

	// The central body is pinned to the origin every tick, overriding any
	// stored phase or requested target.
	central := s.Registry.CentralBody()
	central.position[0], central.position[1], central.position[2] = 0, 0, 0

	for _, b := range s.Registry.Bodies() {
		if b.handle == nil {
			continue
		}
		p := b.position
		b.handle.SetPosition(p[0], p[1], p[2])
		b.handle.SetRotation(b.rotation)
		b.handle.SetLabelAnchor(p[0], p[1]+b.VisualSize+s.labelOffset, p[2])
	}

	switch zoom {
	case ZoomIn:
		s.Camera.ZoomIn()
	case ZoomOut:
		s.Camera.ZoomOut()
	}

	s.frame++
	observeFrame(s.Clock.Elapsed())
	if s.frame%statusEvery == 0 {
		s.LogStatus()
	}

	if s.histChan != nil {
		s.histChan <- s.sample()
	}

	if s.renderer != nil {
		s.renderer.Render(s.Camera)
	}
}

// LogStatus logs the status of the simulation.
func (s *Sim) LogStatus() {
	s.logger.Log("level", "info", "frame", s.frame, "elapsed(s)", s.Clock.Elapsed(),
		"paused", s.paused, "camera(dist)", s.Camera.Distance())
}

// Shutdown closes the state history stream and waits for the exporter to
// finish writing.
func (s *Sim) Shutdown() {
	if s.histChan != nil {
		close(s.histChan)
		s.histChan = nil
	}
	wg.Wait()
	s.logger.Log("level", "notice", "status", "finished", "frames", s.frame, "elapsed(s)", s.Clock.Elapsed())
}

func (s *Sim) sample() State {
	bodies := make([]BodyState, len(s.Registry.Bodies()))
	for i, b := range s.Registry.Bodies() {
		p := make([]float64, 3)
		copy(p, b.position)
		bodies[i] = BodyState{Name: b.Name, Position: p}
	}
	return State{Frame: s.frame, Elapsed: s.Clock.Elapsed(), Bodies: bodies}
}
