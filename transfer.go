package orbital

import (
	"math"
	"time"
)

// Impulsive transfer calculators between circular coplanar orbits, all from
// the vis-viva equation over scalar radii. Orbit lowering falls out naturally:
// for r1 > r2 both burns are the exact negations of the raising burns with the
// roles of departure and arrival swapped.

// HohmannPlan holds the two burns and the coast time of a Hohmann transfer.
// Burns are signed prograde ΔV in m/s.
type HohmannPlan struct {
	ΔvDeparture  float64
	ΔvArrival    float64
	TransferTime time.Duration
}

// TotalΔv returns the sum of the burn magnitudes.
func (p HohmannPlan) TotalΔv() float64 {
	return math.Abs(p.ΔvDeparture) + math.Abs(p.ΔvArrival)
}

// BiellipticPlan holds the three burns and two coast times of a bi-elliptic
// transfer through an intermediate apoapsis radius.
type BiellipticPlan struct {
	ΔvDeparture    float64
	ΔvIntermediate float64
	ΔvArrival      float64
	FirstLeg       time.Duration
	SecondLeg      time.Duration
}

// TotalΔv returns the sum of the burn magnitudes.
func (p BiellipticPlan) TotalΔv() float64 {
	return math.Abs(p.ΔvDeparture) + math.Abs(p.ΔvIntermediate) + math.Abs(p.ΔvArrival)
}

// visViva returns the speed on an orbit of semi-major axis a at radius r.
func visViva(body CelestialBody, r, a float64) float64 {
	return math.Sqrt(body.μ * (2/r - 1/a))
}

// halfPeriod returns the coast duration over half an ellipse of semi-major axis a.
func halfPeriod(body CelestialBody, a float64) time.Duration {
	return time.Duration(math.Pi * math.Sqrt(math.Pow(a, 3)/body.μ) * float64(time.Second))
}

// HohmannTransfer computes the two-impulse transfer between circular orbits of
// radii r1 and r2. Identical radii yield zero burns.
func HohmannTransfer(r1, r2 float64, body CelestialBody) HohmannPlan {
	aTransfer := 0.5 * (r1 + r2)
	v1 := math.Sqrt(body.μ / r1)
	v2 := math.Sqrt(body.μ / r2)
	return HohmannPlan{
		ΔvDeparture:  visViva(body, r1, aTransfer) - v1,
		ΔvArrival:    v2 - visViva(body, r2, aTransfer),
		TransferTime: halfPeriod(body, aTransfer),
	}
}

// BiellipticTransfer chains two Hohmann-style half-ellipses through the
// intermediate radius rb, yielding three sequential burns and two coast times.
// Advantageous over Hohmann for large radius ratios.
func BiellipticTransfer(r1, rb, r2 float64, body CelestialBody) BiellipticPlan {
	a1 := 0.5 * (r1 + rb)
	a2 := 0.5 * (rb + r2)
	return BiellipticPlan{
		ΔvDeparture:    visViva(body, r1, a1) - math.Sqrt(body.μ/r1),
		ΔvIntermediate: visViva(body, rb, a2) - visViva(body, rb, a1),
		ΔvArrival:      math.Sqrt(body.μ/r2) - visViva(body, r2, a2),
		FirstLeg:       halfPeriod(body, a1),
		SecondLeg:      halfPeriod(body, a2),
	}
}
