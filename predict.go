package orbital

import "math"

const (
	// DefaultPredictionPoints is the sample count used when the caller does
	// not request a specific resolution.
	DefaultPredictionPoints = 1200
	// fallbackStep is the coarse propagation step (s) used for unbound
	// trajectories which have no closed-form ellipse.
	fallbackStep = 30.0
)

// PredictOrbit samples the orbit of the given state for display and planning.
// Bound orbits are sampled analytically from the conic equation, phase-locked
// so the first and closing points are the exact current position; the returned
// slice holds n+1 points closing the loop. Unbound or degenerate trajectories
// (e ≥ 1, non-finite semi-major axis, near-zero angular momentum) fall back to
// thrust-free numerical propagation at a coarse step, in which case the curve
// starts at the exact current position but does not close.
func PredictOrbit(sv StateVector, body CelestialBody, n int) [][]float64 {
	if n <= 0 {
		n = DefaultPredictionPoints
	}
	o := NewOrbitFromRV(sv, body)
	hVec := cross(sv.R, sv.V)
	if o.e >= 1 || math.IsInf(o.a, 1) || norm(hVec) < momentumε {
		return predictNumerically(sv, body, n)
	}

	w := unit(hVec)
	// Periapsis direction anchors the basis, except near-circular orbits where
	// it is numerically meaningless; the current radial direction serves then.
	var p []float64
	if o.e < circularε {
		p = unit(sv.R)
	} else {
		r := norm(sv.R)
		v := norm(sv.V)
		eVec := make([]float64, 3)
		for k := 0; k < 3; k++ {
			eVec[k] = ((v*v-body.μ/r)*sv.R[k] - dot(sv.R, sv.V)*sv.V[k]) / body.μ
		}
		p = unit(eVec)
	}
	// Re-orthogonalize p against w to suppress numerical drift.
	d := dot(p, w)
	for k := 0; k < 3; k++ {
		p[k] -= d * w[k]
	}
	p = unit(p)
	q := cross(w, p)

	// Current true anomaly from the position's in-plane projection.
	ν0 := math.Atan2(dot(sv.R, q), dot(sv.R, p))

	semiParam := o.a * (1 - o.e*o.e)
	points := make([][]float64, n+1)
	for k := 0; k < n; k++ {
		ν := ν0 + 2*math.Pi*float64(k)/float64(n)
		sinν, cosν := math.Sincos(ν)
		r := semiParam / (1 + o.e*cosν)
		points[k] = []float64{
			r*cosν*p[0] + r*sinν*q[0],
			r*cosν*p[1] + r*sinν*q[1],
			r*cosν*p[2] + r*sinν*q[2],
		}
	}
	// Phase lock: open and close the loop on the exact current position.
	points[0] = []float64{sv.R[0], sv.R[1], sv.R[2]}
	points[n] = []float64{sv.R[0], sv.R[1], sv.R[2]}
	return points
}

func predictNumerically(sv StateVector, body CelestialBody, n int) [][]float64 {
	points := make([][]float64, n+1)
	points[0] = []float64{sv.R[0], sv.R[1], sv.R[2]}
	cur := sv.Copy()
	for k := 1; k <= n; k++ {
		cur = RK4Step(cur, body, nil, fallbackStep, nil)
		points[k] = []float64{cur.R[0], cur.R[1], cur.R[2]}
	}
	return points
}
