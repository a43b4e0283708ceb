package orbital

import (
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

// Named numerical thresholds. The near-singular cases below recur across the
// converter, the predictor and the executor, so the cutoffs live here rather
// than ad hoc at each call site.
const (
	// vectorε is the magnitude below which the node or eccentricity vector is
	// numerically negligible; angles measured from such a vector are defined
	// as zero.
	vectorε = 1e-10
	// circularε is the eccentricity below which the periapsis direction is too
	// noisy to anchor the prediction basis; the current radial direction is
	// used instead.
	circularε = 1e-4
	// momentumε is the specific angular momentum (m²/s) below which no orbit
	// plane exists; prediction falls back to numerical propagation.
	momentumε = 1e-6
	// speedε is the speed (m/s) below which velocity-aligned frames (drag
	// direction, prograde attitude) are undefined.
	speedε = 1e-6
	// eccentricityε and angleε bound what still counts as the same orbit when
	// comparing elements.
	eccentricityε = 5e-5
	angleε        = (5e-3 / 360) * (2 * math.Pi)
)

// StateVector is a Cartesian position/velocity pair in the inertial frame.
// The frame is non-rotating and centered on the body, with Y as the polar
// axis and the XZ plane as the equatorial plane. Units are m and m/s.
type StateVector struct {
	R []float64
	V []float64
}

// Copy returns a deep copy of this state vector.
func (s StateVector) Copy() StateVector {
	r := make([]float64, 3)
	v := make([]float64, 3)
	copy(r, s.R)
	copy(v, s.V)
	return StateVector{r, v}
}

func (s StateVector) String() string {
	return fmt.Sprintf("R=%+v m\tV=%+v m/s", s.R, s.V)
}

// Orbit defines an orbit via its Keplerian elements about a given body.
type Orbit struct {
	a, e, i, Ω, ω, ν float64
	Body             CelestialBody
}

// Elements returns the six Keplerian elements: semi-major axis (m, +Inf when
// unbound), eccentricity, inclination, RAAN, argument of periapsis and true
// anomaly (radians).
func (o Orbit) Elements() (a, e, i, Ω, ω, ν float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν
}

// SemiParameter returns the semi-latus rectum.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return -o.Body.μ / (2 * o.a)
}

// RNorm returns the current radius from the conic equation, without computing
// the radius vector.
func (o Orbit) RNorm() float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(o.ν))
}

// VNorm returns the current speed via the vis-viva equation.
func (o Orbit) VNorm() float64 {
	if floats.EqualWithinAbs(o.e, 0, eccentricityε) {
		return math.Sqrt(o.Body.μ / o.RNorm())
	}
	return math.Sqrt(2 * (o.Body.μ/o.RNorm() + o.Energyξ()))
}

// Bound returns whether this orbit is elliptical. Parabolic and hyperbolic
// trajectories have no closed-form ellipse.
func (o Orbit) Bound() bool {
	return o.e < 1 && !math.IsInf(o.a, 1)
}

// Period returns the period of this orbit. Only meaningful when bound.
func (o Orbit) Period() time.Duration {
	// The time package does not trivially handle fractions of a second, so
	// compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Body.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// String implements the Stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν))
}

// NewOrbitFromRV returns the orbital elements of the given Cartesian state.
// From Vallado's RV2COE (page 113) with the polar axis on Y: inclination is
// measured against the Y axis and the node vector lies in the XZ plane.
// Degenerate geometry yields zero angles instead of NaNs; every inverse
// cosine is clamped to its domain first.
func NewOrbitFromRV(sv StateVector, body CelestialBody) Orbit {
	R, V := sv.R, sv.V
	r := norm(R)
	v := norm(V)
	hVec := cross(R, V)
	h := norm(hVec)

	ξ := (v*v)/2 - body.μ/r
	a := math.Inf(1)
	if ξ < 0 {
		a = -body.μ / (2 * ξ)
	}

	eVec := make([]float64, 3)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-body.μ/r)*R[k] - dot(R, V)*V[k]) / body.μ
	}
	e := norm(eVec)

	if h < momentumε {
		// Radial trajectory, no orbit plane.
		return Orbit{a, e, 0, 0, 0, 0, body}
	}

	i := acosClamped(hVec[1] / h)

	// Node vector: polar axis (Y) crossed with h, in the equatorial XZ plane.
	n := []float64{hVec[2], 0, -hVec[0]}
	nNorm := norm(n)

	var Ω float64
	if nNorm >= vectorε {
		Ω = acosClamped(n[0] / nNorm)
		if n[2] > 0 {
			// Descending side of the node line.
			Ω = 2*math.Pi - Ω
		}
	}

	var ω float64
	if nNorm >= vectorε && e >= vectorε {
		ω = acosClamped(dot(n, eVec) / (nNorm * e))
		if eVec[1] < 0 {
			ω = 2*math.Pi - ω
		}
	}

	var ν float64
	if e >= vectorε {
		ν = acosClamped(dot(eVec, R) / (e * r))
		if dot(R, V) < 0 {
			// Moving toward periapsis.
			ν = 2*math.Pi - ν
		}
	}

	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)

	return Orbit{a, e, i, Ω, ω, ν, body}
}

// NewOrbitFromOE creates an orbit from the orbital elements.
// WARNING: Angles must be in degrees not radians.
func NewOrbitFromOE(a, e, i, Ω, ω, ν float64, body CelestialBody) Orbit {
	return Orbit{a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(ν), body}
}

// planeBasis returns the periapsis direction p̂, the in-plane normal q̂ and the
// orbit normal ĥ of this orbit in the inertial frame.
func (o Orbit) planeBasis() (p, q, w []float64) {
	sinΩ, cosΩ := math.Sincos(o.Ω)
	sini, cosi := math.Sincos(o.i)
	sinω, cosω := math.Sincos(o.ω)
	// Ascending node direction and its in-plane normal with positive polar
	// component; both follow the quadrant conventions of NewOrbitFromRV.
	n := []float64{cosΩ, 0, -sinΩ}
	u := []float64{-cosi * sinΩ, sini, -cosi * cosΩ}
	p = make([]float64, 3)
	for k := 0; k < 3; k++ {
		p[k] = cosω*n[k] + sinω*u[k]
	}
	w = []float64{sini * sinΩ, cosi, sini * cosΩ}
	q = cross(w, p)
	return
}

// State returns the Cartesian state vector of this orbit (COE2RV). The
// perifocal coordinates are rotated into the inertial frame through the
// orbit-plane basis matrix.
func (o Orbit) State() StateVector {
	p, q, w := o.planeBasis()
	M := basisMatrix(p, q, w)
	semiParam := o.SemiParameter()
	sinν, cosν := math.Sincos(o.ν)
	rNorm := semiParam / (1 + o.e*cosν)
	R := MxV33(M, []float64{rNorm * cosν, rNorm * sinν, 0})
	vFact := math.Sqrt(o.Body.μ / semiParam)
	V := MxV33(M, []float64{-vFact * sinν, vFact * (o.e + cosν), 0})
	return StateVector{R, V}
}

// Equals returns whether two orbits are identical with free true anomaly.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !o.Body.Equals(o1.Body) {
		return false, fmt.Errorf("different body")
	}
	if !floats.EqualWithinAbs(o.a, o1.a, o.a*1e-6) {
		return false, fmt.Errorf("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, fmt.Errorf("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(o.i, o1.i, angleε) {
		return false, fmt.Errorf("inclination invalid")
	}
	if !floats.EqualWithinAbs(o.Ω, o1.Ω, angleε) {
		return false, fmt.Errorf("RAAN invalid")
	}
	if o.e > eccentricityε && !floats.EqualWithinAbs(o.ω, o1.ω, angleε) {
		return false, fmt.Errorf("argument of periapsis invalid")
	}
	return true, nil
}
