package orbital

import "math"

// Gravity returns the point-mass gravitational acceleration -μ·R/|R|³ in m/s².
// The caller must never pass the origin: the field is undefined there.
func Gravity(body CelestialBody, R []float64) []float64 {
	r := norm(R)
	r3 := r * r * r
	return []float64{-body.μ * R[0] / r3, -body.μ * R[1] / r3, -body.μ * R[2] / r3}
}

// Atmosphere defines a simple exponential-density atmosphere around a body.
type Atmosphere struct {
	SeaLevelDensity float64 // ρ₀ in kg/m³
	ScaleHeight     float64 // H in m
	Ceiling         float64 // altitude in m above which drag vanishes
	DragCoeff       float64 // Cd of the vehicle
	CrossSection    float64 // A in m²
	VehicleMass     float64 // m in kg
}

// Density returns ρ₀·exp(-altitude/H) within the atmosphere band, zero outside.
func (a Atmosphere) Density(altitude float64) float64 {
	if altitude < 0 || altitude > a.Ceiling {
		return 0
	}
	return a.SeaLevelDensity * math.Exp(-altitude/a.ScaleHeight)
}

// Drag returns the drag acceleration opposing the velocity exactly.
// It is the zero vector outside the atmosphere band and below the speed floor.
func (a Atmosphere) Drag(body CelestialBody, R, V []float64) []float64 {
	altitude := norm(R) - body.Radius
	v := norm(V)
	ρ := a.Density(altitude)
	if ρ == 0 || v < speedε {
		return []float64{0, 0, 0}
	}
	mag := 0.5 * ρ * a.DragCoeff * a.CrossSection * v * v / a.VehicleMass
	return []float64{-mag * V[0] / v, -mag * V[1] / v, -mag * V[2] / v}
}
