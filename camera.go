package galaxy

import "math"

const (
	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
)

// Camera holds the view position and its orbit target. Orientation is owned
// by an external orbit-control collaborator; the camera only guarantees that
// its distance to the target stays within the configured bounds.
type Camera struct {
	position []float64
	target   []float64 // always the central body, effectively the origin
	distance float64   // clamped to [minDist, maxDist], authoritative
	minDist  float64
	maxDist  float64
	width    int
	height   int
	aspect   float64
}

// NewCamera places the camera at the given distance from the origin, looking
// down at the ecliptic from a slight elevation.
func NewCamera(distance, minDist, maxDist float64) *Camera {
	c := &Camera{
		position: make([]float64, 3),
		target:   make([]float64, 3),
		distance: distance,
		minDist:  minDist,
		maxDist:  maxDist,
		aspect:   1,
	}
	dir := unit([]float64{0, 0.45, 1})
	copy(c.position, scaled(dir, distance))
	return c
}

// Position returns the camera position vector.
func (c *Camera) Position() []float64 {
	return c.position
}

// Target returns the orbit target position.
func (c *Camera) Target() []float64 {
	return c.target
}

// Distance returns the current distance from camera to target. The scalar is
// authoritative so that saturated zooms land on the bounds exactly.
func (c *Camera) Distance() float64 {
	return c.distance
}

// ZoomIn dollies toward the target by one step, saturating at the minimum
// distance. Zoom is a radial move along the existing view direction, not a
// field-of-view change.
func (c *Camera) ZoomIn() {
	c.dolly(math.Max(c.minDist, c.distance*zoomInFactor))
}

// ZoomOut dollies away from the target by one step, saturating at the
// maximum distance.
func (c *Camera) ZoomOut() {
	c.dolly(math.Min(c.maxDist, c.distance*zoomOutFactor))
}

// dolly re-places the camera on the existing view ray at the new distance.
func (c *Camera) dolly(distance float64) {
	v := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v[i] = c.position[i] - c.target[i]
	}
	if r := math.Sqrt(dot(v, v)); r > 0 {
		v = scaled(v, distance/r)
	}
	for i := 0; i < 3; i++ {
		c.position[i] = c.target[i] + v[i]
	}
	c.distance = distance
}

// Resize updates the render surface dimensions and aspect ratio. Pure
// passthrough, no other camera state depends on it.
func (c *Camera) Resize(width, height int) {
	c.width = width
	c.height = height
	if height > 0 {
		c.aspect = float64(width) / float64(height)
	}
}

// Aspect returns the current aspect ratio.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Size returns the current render surface dimensions.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}
