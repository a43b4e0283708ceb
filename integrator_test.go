package orbital

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

// specificEnergy returns v²/2 - μ/r of a state.
func specificEnergy(sv StateVector) float64 {
	return norm(sv.V)*norm(sv.V)/2 - Earth.μ/norm(sv.R)
}

func TestRK4CircularOrbitClosure(t *testing.T) {
	// A thrust-free circular orbit propagated for one analytic period must
	// come back to where it started, with its energy conserved.
	sv := leoState(400e3)
	r := Earth.Radius + 400e3
	period := 2 * math.Pi * math.Sqrt(math.Pow(r, 3)/Earth.μ)
	dt := 1.0
	steps := int(period / dt)
	residual := period - float64(steps)*dt

	ε0 := specificEnergy(sv)
	cur := sv.Copy()
	for i := 0; i < steps; i++ {
		cur = RK4Step(cur, Earth, nil, dt, nil)
	}
	cur = RK4Step(cur, Earth, nil, residual, nil)

	if !floats.EqualWithinAbs(norm(cur.R), r, 1.0) {
		t.Fatalf("radius drifted: got %f want %f", norm(cur.R), r)
	}
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(cur.R[i], sv.R[i], 5.0) {
			t.Fatalf("position after one period off by %f m on axis %d", cur.R[i]-sv.R[i], i)
		}
		if !floats.EqualWithinAbs(cur.V[i], sv.V[i], 0.01) {
			t.Fatalf("velocity after one period off by %f m/s on axis %d", cur.V[i]-sv.V[i], i)
		}
	}
	if !floats.EqualWithinRel(specificEnergy(cur), ε0, 1e-9) {
		t.Fatalf("energy not conserved: %f -> %f", ε0, specificEnergy(cur))
	}
}

func TestRK4Deterministic(t *testing.T) {
	// Same state, same dt, same thrust: bit-for-bit identical trajectories.
	sv := leoState(300e3)
	thrust := []float64{0.02, 0, 0.01}
	a := sv.Copy()
	b := sv.Copy()
	for i := 0; i < 500; i++ {
		a = RK4Step(a, Earth, nil, 0.25, thrust)
		b = RK4Step(b, Earth, nil, 0.25, thrust)
	}
	for i := 0; i < 3; i++ {
		if a.R[i] != b.R[i] || a.V[i] != b.V[i] {
			t.Fatal("identical inputs must reproduce the identical trajectory")
		}
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	sv := leoState(400e3)
	saved := sv.Copy()
	RK4Step(sv, Earth, nil, 10, []float64{1, 2, 3})
	for i := 0; i < 3; i++ {
		if sv.R[i] != saved.R[i] || sv.V[i] != saved.V[i] {
			t.Fatal("RK4Step mutated its input state")
		}
	}
}

func TestRK4ProgradeThrustRaisesEnergy(t *testing.T) {
	sv := leoState(400e3)
	prograde := unit(sv.V)
	thrust := []float64{prograde[0] * 0.5, prograde[1] * 0.5, prograde[2] * 0.5}
	ε0 := specificEnergy(sv)
	cur := sv
	for i := 0; i < 100; i++ {
		cur = RK4Step(cur, Earth, nil, 1.0, thrust)
	}
	if specificEnergy(cur) <= ε0 {
		t.Fatal("prograde thrust must raise the orbital energy")
	}
}

func TestRK4DragDecaysOrbit(t *testing.T) {
	// With the atmosphere fed back into the derivative, a low pass must lose
	// energy; without it, the same propagation conserves energy.
	atmo := testAtmosphere()
	sv := leoState(80e3)
	ε0 := specificEnergy(sv)
	dragged := sv.Copy()
	vacuum := sv.Copy()
	for i := 0; i < 200; i++ {
		dragged = RK4Step(dragged, Earth, &atmo, 1.0, nil)
		vacuum = RK4Step(vacuum, Earth, nil, 1.0, nil)
	}
	if specificEnergy(dragged) >= ε0 {
		t.Fatal("drag must dissipate orbital energy")
	}
	if !floats.EqualWithinRel(specificEnergy(vacuum), ε0, 1e-9) {
		t.Fatal("vacuum propagation must conserve energy")
	}
}
