package galaxy

import "sync"

// ZoomDirection defines an enum of discrete zoom commands.
type ZoomDirection uint8

const (
	// NoZoom means no zoom step is pending.
	NoZoom ZoomDirection = iota
	// ZoomIn requests one step toward the target.
	ZoomIn
	// ZoomOut requests one step away from the target.
	ZoomOut
)

func (z ZoomDirection) String() string {
	switch z {
	case NoZoom:
		return "none"
	case ZoomIn:
		return "in"
	case ZoomOut:
		return "out"
	}
	panic("cannot stringify unknown zoom direction")
}

// Interaction accumulates external control signals. Setters are
// fire-and-forget and may be called from input-event goroutines at any time;
// the frame loop consumes a snapshot at exactly one point per tick.
type Interaction struct {
	mu          sync.Mutex
	target      []float64
	paused      bool
	pendingZoom ZoomDirection
}

// NewInteraction returns an interaction state with no pending commands.
func NewInteraction() *Interaction {
	return &Interaction{target: make([]float64, 3)}
}

// SetTarget stores the latest desired central-body position. This is an
// intentional no-op sink: the central body is re-pinned to the origin every
// tick regardless, but upstream gesture and pointer layers still produce
// target updates and this keeps their wiring total.
func (in *Interaction) SetTarget(v []float64) {
	in.mu.Lock()
	copy(in.target, v)
	in.mu.Unlock()
}

// SetPaused toggles the freeze flag. While paused the clock stops and body
// phases stop accumulating; rendering and camera interaction remain live.
func (in *Interaction) SetPaused(paused bool) {
	in.mu.Lock()
	in.paused = paused
	in.mu.Unlock()
}

// RequestZoom queues one discrete zoom step, consumed by the frame loop on
// the next tick. Steps do not accumulate: the latest request before the tick
// wins.
func (in *Interaction) RequestZoom(dir ZoomDirection) {
	in.mu.Lock()
	in.pendingZoom = dir
	in.mu.Unlock()
}

// Snapshot returns the paused flag and the pending zoom command, clearing the
// latter so no tick can act on it twice.
func (in *Interaction) Snapshot() (paused bool, zoom ZoomDirection) {
	in.mu.Lock()
	paused = in.paused
	zoom = in.pendingZoom
	in.pendingZoom = NoZoom
	in.mu.Unlock()
	return
}

// Target returns a copy of the last requested target position.
func (in *Interaction) Target() []float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	t := make([]float64, 3)
	copy(t, in.target)
	return t
}
