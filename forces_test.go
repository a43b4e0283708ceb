package orbital

import (
	"testing"

	"github.com/gonum/floats"
)

func testAtmosphere() Atmosphere {
	return DefaultConfig().Atmosphere
}

func TestGravityPointMass(t *testing.T) {
	r := Earth.Radius + 400e3
	acc := Gravity(Earth, []float64{r, 0, 0})
	want := -Earth.GM() / (r * r)
	if !floats.EqualWithinRel(acc[0], want, 1e-12) {
		t.Fatalf("radial gravity invalid: got %f want %f", acc[0], want)
	}
	if acc[1] != 0 || acc[2] != 0 {
		t.Fatal("gravity must point along the radius vector")
	}
	// Direction must oppose an off-axis position too.
	acc = Gravity(Earth, []float64{0, -r, 0})
	if acc[1] <= 0 {
		t.Fatal("gravity must point back toward the origin")
	}
}

func TestDragZeroAboveCeiling(t *testing.T) {
	atmo := testAtmosphere()
	R := []float64{Earth.Radius + atmo.Ceiling + 1e3, 0, 0}
	V := []float64{0, 0, -7800.0}
	if drag := atmo.Drag(Earth, R, V); drag[0] != 0 || drag[1] != 0 || drag[2] != 0 {
		t.Fatalf("drag above the ceiling must be exactly zero, got %+v", drag)
	}
}

func TestDragZeroBelowSurface(t *testing.T) {
	atmo := testAtmosphere()
	R := []float64{Earth.Radius - 10, 0, 0}
	V := []float64{0, 0, -7800.0}
	if drag := atmo.Drag(Earth, R, V); drag[0] != 0 || drag[1] != 0 || drag[2] != 0 {
		t.Fatalf("drag below the surface must be exactly zero, got %+v", drag)
	}
}

func TestDragZeroWhenStationary(t *testing.T) {
	atmo := testAtmosphere()
	R := []float64{Earth.Radius + 10e3, 0, 0}
	V := []float64{speedε / 2, 0, 0}
	if drag := atmo.Drag(Earth, R, V); drag[0] != 0 || drag[1] != 0 || drag[2] != 0 {
		t.Fatalf("drag below the speed floor must be exactly zero, got %+v", drag)
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	atmo := testAtmosphere()
	// Sea level, velocity purely along Z.
	R := []float64{Earth.Radius, 0, 0}
	V := []float64{0, 0, 340.0}
	drag := atmo.Drag(Earth, R, V)
	if drag[2] >= 0 {
		t.Fatalf("drag must oppose the velocity, got %+v", drag)
	}
	if !floats.EqualWithinAbs(drag[0], 0, 1e-12) || !floats.EqualWithinAbs(drag[1], 0, 1e-12) {
		t.Fatalf("drag must be colinear with the velocity, got %+v", drag)
	}
	wantMag := 0.5 * atmo.SeaLevelDensity * atmo.DragCoeff * atmo.CrossSection * 340 * 340 / atmo.VehicleMass
	if !floats.EqualWithinRel(-drag[2], wantMag, 1e-12) {
		t.Fatalf("drag magnitude invalid: got %f want %f", -drag[2], wantMag)
	}
}

func TestDensityProfile(t *testing.T) {
	atmo := testAtmosphere()
	if !floats.EqualWithinRel(atmo.Density(0), atmo.SeaLevelDensity, 1e-12) {
		t.Fatal("sea-level density invalid")
	}
	if atmo.Density(atmo.ScaleHeight) >= atmo.Density(0) {
		t.Fatal("density must decay with altitude")
	}
	if atmo.Density(atmo.Ceiling+1) != 0 {
		t.Fatal("density above the ceiling must be zero")
	}
}
