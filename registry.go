package galaxy

import "fmt"

// ConfigError reports an invalid body definition. It is raised at registry
// construction only and is fatal to initialization: the parameter table is
// static, so there is no recovery path.
type ConfigError struct {
	Body   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("body '%s': %s", e.Body, e.Reason)
}

// Registry holds the ordered set of bodies. Order is table definition order
// and index 0 is always the central body. Only the frame loop mutates it.
type Registry struct {
	bodies []*Body
	frozen bool
}

// NewRegistry validates the body table and returns the registry.
func NewRegistry(bodies []*Body) (*Registry, error) {
	if len(bodies) == 0 {
		return nil, &ConfigError{Body: "", Reason: "empty body table"}
	}
	central := bodies[0]
	if !central.IsCentral() {
		return nil, &ConfigError{Body: central.Name, Reason: "central body must have a zero semi-major axis"}
	}
	if central.AngularSpeed != 0 {
		return nil, &ConfigError{Body: central.Name, Reason: "central body must have a zero angular speed"}
	}
	seen := make(map[string]bool, len(bodies))
	for i, b := range bodies {
		if b.Eccentricity < 0 || b.Eccentricity >= 1 {
			return nil, &ConfigError{Body: b.Name, Reason: fmt.Sprintf("eccentricity %f not in [0,1)", b.Eccentricity)}
		}
		if b.SemiMajorAxis < 0 {
			return nil, &ConfigError{Body: b.Name, Reason: fmt.Sprintf("negative semi-major axis %f", b.SemiMajorAxis)}
		}
		if i > 0 && b.IsCentral() {
			return nil, &ConfigError{Body: b.Name, Reason: "only the first body may have a zero semi-major axis"}
		}
		if b.VisualSize <= 0 {
			return nil, &ConfigError{Body: b.Name, Reason: fmt.Sprintf("visual size %f must be positive", b.VisualSize)}
		}
		if seen[b.Name] {
			return nil, &ConfigError{Body: b.Name, Reason: "duplicate body name"}
		}
		seen[b.Name] = true
	}
	r := &Registry{bodies: bodies}
	r.Recompute()
	return r, nil
}

// Bodies returns the ordered body sequence.
func (r *Registry) Bodies() []*Body {
	return r.bodies
}

// CentralBody returns the designated central entry.
func (r *Registry) CentralBody() *Body {
	return r.bodies[0]
}

// Lookup returns the body with the given name.
func (r *Registry) Lookup(name string) (*Body, bool) {
	for _, b := range r.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// SetFrozen toggles phase accumulation. A frozen Advance still recomputes
// positions so rendering stays live with the frozen phase.
func (r *Registry) SetFrozen(frozen bool) {
	r.frozen = frozen
}

// Frozen returns whether phase accumulation is stopped.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Advance accumulates every non-central body's phase by AngularSpeed*dt and
// self-rotation by SpinRate*dt, then recomputes positions. Must be called
// exactly once per tick; when frozen it degrades to a position recompute.
func (r *Registry) Advance(dt float64) {
	if !r.frozen {
		for _, b := range r.bodies {
			if b.IsCentral() {
				continue
			}
			b.φ += b.AngularSpeed * dt
			b.rotation += b.SpinRate * dt
		}
	}
	r.Recompute()
}

// Recompute rederives every body position from its current phase. Idempotent;
// callers may invoke it any number of times between phase advances.
func (r *Registry) Recompute() {
	for _, b := range r.bodies {
		b.recompute()
	}
}
