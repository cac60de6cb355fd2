package galaxy

import "math"

// EllipsePosition returns the in-plane position of a body on the ellipse
// defined by semi-major axis a and eccentricity e, at orbital angle φ.
// The central body sits at one focus of the ellipse, not at its center, so
// the focus offset c = a*e is subtracted from the x coordinate. Orbits are
// coplanar: y is always zero.
func EllipsePosition(a, e, φ float64) (x, z float64) {
	sinφ, cosφ := math.Sincos(φ)
	x = cosφ*a - FocusOffset(a, e)
	z = sinφ * SemiMinor(a, e)
	return
}

// SemiMinor returns the semi-minor axis b = a*sqrt(1-e²).
func SemiMinor(a, e float64) float64 {
	return a * math.Sqrt(1-e*e)
}

// FocusOffset returns the distance c = a*e from the ellipse center to its foci.
func FocusOffset(a, e float64) float64 {
	return a * e
}

// Perihelion returns the closest distance to the occupied focus.
func Perihelion(a, e float64) float64 {
	return a * (1 - e)
}

// Aphelion returns the farthest distance from the occupied focus.
func Aphelion(a, e float64) float64 {
	return a * (1 + e)
}
