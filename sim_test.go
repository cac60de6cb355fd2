package galaxy

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
)

type recordedHandle struct {
	position [3]float64
	rotation float64
	label    [3]float64
	updates  int
}

func (h *recordedHandle) SetPosition(x, y, z float64) {
	h.position = [3]float64{x, y, z}
	h.updates++
}

func (h *recordedHandle) SetRotation(rad float64) {
	h.rotation = rad
}

func (h *recordedHandle) SetLabelAnchor(x, y, z float64) {
	h.label = [3]float64{x, y, z}
}

type countingRenderer struct {
	renders int
}

func (r *countingRenderer) Render(cam *Camera) {
	r.renders++
}

func newTestSim(t *testing.T, conf ExportConfig) (*Sim, map[string]*recordedHandle, *countingRenderer) {
	t.Helper()
	r, err := NewRegistry(testBodies())
	if err != nil {
		t.Fatalf("registry failed: %s", err)
	}
	handles := make(map[string]*recordedHandle)
	for _, b := range r.Bodies() {
		h := &recordedHandle{}
		handles[b.Name] = h
		b.SetHandle(h)
	}
	cam := NewCamera(100, 10, 400)
	sim := NewSim(r, cam, 0.5, conf, kitlog.NewNopLogger())
	renderer := &countingRenderer{}
	sim.SetRenderer(renderer)
	return sim, handles, renderer
}

func TestSimCentralBodyPin(t *testing.T) {
	sim, handles, _ := newTestSim(t, ExportConfig{})
	// The target sink must never unpin the central body.
	sim.SetTarget([]float64{42, -7, 3})
	for i := 0; i < 30; i++ {
		sim.AdvanceAndRender(1.0 / 60)
	}
	if !vectorsEqual(sim.Registry.CentralBody().Position(), []float64{0, 0, 0}) {
		t.Fatalf("central body at %+v, expected the origin", sim.Registry.CentralBody().Position())
	}
	sol := handles["Sol"]
	if sol.position != [3]float64{0, 0, 0} {
		t.Fatalf("central handle at %+v, expected the origin", sol.position)
	}
	if sol.updates != 30 {
		t.Fatalf("central handle updated %d times, expected 30", sol.updates)
	}
}

func TestSimHandleAndLabelSync(t *testing.T) {
	sim, handles, _ := newTestSim(t, ExportConfig{})
	// One tick of π/4 puts Hermes (angular speed 2) at quadrature.
	sim.AdvanceAndRender(math.Pi / 4)
	hermes, _ := sim.Registry.Lookup("Hermes")
	h := handles["Hermes"]
	p := hermes.Position()
	if h.position != [3]float64{p[0], p[1], p[2]} {
		t.Fatalf("handle at %+v, body at %+v", h.position, p)
	}
	wantLabelY := p[1] + hermes.VisualSize + 0.5
	if !floats.EqualWithinAbs(h.label[1], wantLabelY, 1e-12) {
		t.Fatalf("label anchor y=%f, expected %f", h.label[1], wantLabelY)
	}
	if h.label[0] != p[0] || h.label[2] != p[2] {
		t.Fatalf("label anchor %+v not above the body %+v", h.label, p)
	}
}

func TestSimPauseFreezesKinematics(t *testing.T) {
	sim, handles, renderer := newTestSim(t, ExportConfig{})
	sim.AdvanceAndRender(0.25)
	gaia, _ := sim.Registry.Lookup("Gaia")
	φ := gaia.Phase()
	rot := gaia.Rotation()
	elapsed := sim.Clock.Elapsed()

	sim.SetPaused(true)
	for i := 0; i < 20; i++ {
		sim.AdvanceAndRender(0.25)
	}
	if gaia.Phase() != φ {
		t.Fatalf("paused tick mutated phase: %f -> %f", φ, gaia.Phase())
	}
	if gaia.Rotation() != rot {
		t.Fatalf("paused tick mutated self-rotation: %f -> %f", rot, gaia.Rotation())
	}
	if sim.Clock.Elapsed() != elapsed {
		t.Fatalf("paused tick advanced the clock: %f -> %f", elapsed, sim.Clock.Elapsed())
	}
	if renderer.renders != 21 {
		t.Fatalf("rendering stopped while paused: %d renders", renderer.renders)
	}
	if handles["Gaia"].updates != 21 {
		t.Fatalf("handle sync stopped while paused: %d updates", handles["Gaia"].updates)
	}
	if !sim.Paused() {
		t.Fatal("sim does not report paused")
	}

	sim.SetPaused(false)
	sim.AdvanceAndRender(0.25)
	if gaia.Phase() == φ {
		t.Fatal("resume did not restart phase accumulation")
	}
	if !floats.EqualWithinAbs(sim.Clock.Elapsed(), elapsed+0.25, 1e-12) {
		t.Fatalf("clock did not resume: %f", sim.Clock.Elapsed())
	}
}

func TestSimZoomAppliedOnce(t *testing.T) {
	sim, _, _ := newTestSim(t, ExportConfig{})
	sim.RequestZoom(ZoomIn)
	sim.AdvanceAndRender(1.0 / 60)
	if d := sim.Camera.Distance(); !floats.EqualWithinAbs(d, 80, 1e-9) {
		t.Fatalf("distance %f after one zoom step, expected 80", d)
	}
	// No further request: the consumed command must not re-fire.
	sim.AdvanceAndRender(1.0 / 60)
	if d := sim.Camera.Distance(); !floats.EqualWithinAbs(d, 80, 1e-9) {
		t.Fatalf("distance %f, consumed zoom re-fired", d)
	}
}

func TestSimZoomWhilePaused(t *testing.T) {
	// Camera interaction stays live while the clock is frozen.
	sim, _, _ := newTestSim(t, ExportConfig{})
	sim.SetPaused(true)
	sim.RequestZoom(ZoomOut)
	sim.AdvanceAndRender(1.0 / 60)
	if d := sim.Camera.Distance(); !floats.EqualWithinAbs(d, 125, 1e-9) {
		t.Fatalf("distance %f, expected 125", d)
	}
}

type recordedOrbitControl struct {
	updates int
}

func (o *recordedOrbitControl) Update(cam *Camera) {
	o.updates++
}

func TestSimOrbitControlHook(t *testing.T) {
	sim, _, _ := newTestSim(t, ExportConfig{})
	ctl := &recordedOrbitControl{}
	sim.SetOrbitControl(ctl)
	for i := 0; i < 5; i++ {
		sim.AdvanceAndRender(1.0 / 60)
	}
	if ctl.updates != 5 {
		t.Fatalf("orbit control invoked %d times, expected once per tick", ctl.updates)
	}
}

func TestSimResizePassthrough(t *testing.T) {
	sim, _, _ := newTestSim(t, ExportConfig{})
	sim.Resize(120, 40)
	if w, h := sim.Camera.Size(); w != 120 || h != 40 {
		t.Fatalf("camera surface %dx%d, expected 120x40", w, h)
	}
}

func TestSimExportCSV(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{CSV: true, Filename: filepath.Join(dir, "run")}
	sim, _, _ := newTestSim(t, conf)
	for i := 0; i < 10; i++ {
		sim.AdvanceAndRender(1.0 / 60)
	}
	sim.Shutdown()

	f, err := os.Open(filepath.Join(dir, "run.csv"))
	if err != nil {
		t.Fatalf("no export written: %s", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("export unreadable: %s", err)
	}
	if len(records) != 11 {
		t.Fatalf("%d rows, expected a header and 10 ticks", len(records))
	}
	// elapsed + x/z per body
	if want := 1 + 2*len(sim.Registry.Bodies()); len(records[0]) != want {
		t.Fatalf("%d columns, expected %d", len(records[0]), want)
	}
	if records[0][0] != "elapsed_s" {
		t.Fatalf("header starts with %s", records[0][0])
	}
}
