package galaxy

import (
	"fmt"
	"math"
	"strings"
)

// BodyKind defines an enum of body appearance classes.
// The kind is resolved once at construction so that appearance collaborators
// never have to dispatch on the body name every frame.
type BodyKind uint8

const (
	// Star is the central luminous body.
	Star BodyKind = iota + 1
	// Rocky is a terrestrial body.
	Rocky
	// GasGiant is a hydrogen/helium giant.
	GasGiant
	// IceGiant is a volatile-rich giant.
	IceGiant
)

func (k BodyKind) String() string {
	switch k {
	case Star:
		return "star"
	case Rocky:
		return "rocky"
	case GasGiant:
		return "gas-giant"
	case IceGiant:
		return "ice-giant"
	}
	panic("cannot stringify unknown body kind")
}

// BodyKindFromString returns the kind from its name.
func BodyKindFromString(name string) (BodyKind, error) {
	switch strings.ToLower(name) {
	case "star":
		return Star, nil
	case "rocky":
		return Rocky, nil
	case "gas-giant":
		return GasGiant, nil
	case "ice-giant":
		return IceGiant, nil
	default:
		return 0, fmt.Errorf("undefined body kind '%s'", name)
	}
}

// Handle is the renderable side of a body, supplied by the external scene
// construction step. The core only repositions and rotates it; appearance is
// computed elsewhere from the body's kind and a time value.
type Handle interface {
	SetPosition(x, y, z float64)
	SetRotation(rad float64)
	SetLabelAnchor(x, y, z float64)
}

// Body defines an orbiting body (or the central one).
type Body struct {
	Name          string
	SemiMajorAxis float64 // scene distance units; 0 only for the central body
	Eccentricity  float64 // in [0, 1)
	AngularSpeed  float64 // radians per simulated second; 0 for the central body
	SpinRate      float64 // cosmetic self-rotation, radians per simulated second
	VisualSize    float64 // label offset and camera-independent scale
	Kind          BodyKind

	φ        float64 // current orbital angle
	rotation float64
	position []float64 // derived each tick, never authoritative
	handle   Handle
}

// NewBody returns a body with the provided parameters and starting phase.
func NewBody(name string, a, e, speed, spin, size float64, kind BodyKind, startφ float64) *Body {
	return &Body{Name: name, SemiMajorAxis: a, Eccentricity: e, AngularSpeed: speed,
		SpinRate: spin, VisualSize: size, Kind: kind, φ: startφ, position: make([]float64, 3)}
}

// IsCentral returns whether this body is the fixed one at the origin.
func (b Body) IsCentral() bool {
	return b.SemiMajorAxis == 0
}

// Phase returns the current orbital angle in radians.
func (b Body) Phase() float64 {
	return b.φ
}

// Rotation returns the accumulated self-rotation in radians.
func (b Body) Rotation() float64 {
	return b.rotation
}

// Position returns the current position vector. It is recomputed from the
// phase every tick; callers must not retain and mutate it.
func (b Body) Position() []float64 {
	return b.position
}

// SetHandle binds the renderable handle. nil detaches it.
func (b *Body) SetHandle(h Handle) {
	b.handle = h
}

// recompute derives the position from the current phase. Idempotent.
func (b *Body) recompute() {
	if b.IsCentral() {
		b.position[0], b.position[1], b.position[2] = 0, 0, 0
		return
	}
	x, z := EllipsePosition(b.SemiMajorAxis, b.Eccentricity, b.φ)
	b.position[0], b.position[1], b.position[2] = x, 0, z
}

// String implements the Stringer interface.
func (b Body) String() string {
	return fmt.Sprintf("%s [%s] a=%.2f e=%.4f", b.Name, b.Kind, b.SemiMajorAxis, b.Eccentricity)
}

/* Default parameter table. Axes are scaled scene units, not kilometers;
eccentricities are the real ones. Rates are scaled so that Earth completes
an orbit in about a simulated minute. */

const earthRate = 2 * math.Pi / 60

// DefaultBodies returns the built-in body table. Index 0 is the central body.
func DefaultBodies() []*Body {
	return []*Body{
		NewBody("Sun", 0, 0, 0, 0.05, 5.0, Star, 0),
		NewBody("Mercury", 10, 0.2056, earthRate*(365.2/88.0), 0.1, 0.38, Rocky, 0),
		NewBody("Venus", 14, 0.0068, earthRate*(365.2/224.7), 0.1, 0.95, Rocky, 1.2),
		NewBody("Earth", 18, 0.0167, earthRate, 0.8, 1.0, Rocky, 2.1),
		NewBody("Mars", 23, 0.0934, earthRate*(365.2/687.0), 0.8, 0.53, Rocky, 0.5),
		NewBody("Jupiter", 32, 0.0484, earthRate*(365.2/4331.0), 1.8, 3.1, GasGiant, 3.1),
		NewBody("Saturn", 40, 0.0542, earthRate*(365.2/10747.0), 1.7, 2.6, GasGiant, 4.2),
		NewBody("Uranus", 47, 0.0472, earthRate*(365.2/30589.0), 1.1, 1.8, IceGiant, 5.3),
		NewBody("Neptune", 53, 0.0086, earthRate*(365.2/59800.0), 1.2, 1.7, IceGiant, 0.8),
	}
}
