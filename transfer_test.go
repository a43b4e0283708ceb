package orbital

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestHohmannDegenerate(t *testing.T) {
	r := Earth.Radius + 400e3
	plan := HohmannTransfer(r, r, Earth)
	if math.Abs(plan.ΔvDeparture) > 1e-9 || math.Abs(plan.ΔvArrival) > 1e-9 {
		t.Fatalf("transfer between identical radii needs no burn, got %g / %g", plan.ΔvDeparture, plan.ΔvArrival)
	}
	if plan.TransferTime <= 0 {
		t.Fatal("transfer time must stay positive")
	}
}

func TestHohmannLEOToGEO(t *testing.T) {
	r1 := Earth.Radius + 200e3
	r2 := Earth.Radius + 35786e3
	plan := HohmannTransfer(r1, r2, Earth)

	if plan.ΔvDeparture < 2300 || plan.ΔvDeparture > 2600 {
		t.Fatalf("departure burn out of range: %f m/s", plan.ΔvDeparture)
	}
	if plan.ΔvArrival < 1400 || plan.ΔvArrival > 1700 {
		t.Fatalf("arrival burn out of range: %f m/s", plan.ΔvArrival)
	}
	sec := plan.TransferTime.Seconds()
	if sec < 16000 || sec > 22000 {
		t.Fatalf("transfer time out of range: %f s", sec)
	}
	if !floats.EqualWithinRel(plan.TotalΔv(), plan.ΔvDeparture+plan.ΔvArrival, 1e-12) {
		t.Fatal("total Δv must be the sum of the two burns")
	}

	// Cross-check the first burn against vis-viva on the transfer ellipse.
	at := (r1 + r2) / 2
	want := visViva(Earth, r1, at) - visViva(Earth, r1, r1)
	if !floats.EqualWithinAbs(plan.ΔvDeparture, want, 1e-9) {
		t.Fatalf("departure burn %f, vis-viva says %f", plan.ΔvDeparture, want)
	}
}

func TestHohmannLowering(t *testing.T) {
	r1 := Earth.Radius + 200e3
	r2 := Earth.Radius + 35786e3
	up := HohmannTransfer(r1, r2, Earth)
	down := HohmannTransfer(r2, r1, Earth)

	// Coming down reverses the roles of the burns and flips their signs.
	if !floats.EqualWithinAbs(down.ΔvDeparture, -up.ΔvArrival, 1e-9) {
		t.Fatalf("lowering departure burn %f, want %f", down.ΔvDeparture, -up.ΔvArrival)
	}
	if !floats.EqualWithinAbs(down.ΔvArrival, -up.ΔvDeparture, 1e-9) {
		t.Fatalf("lowering arrival burn %f, want %f", down.ΔvArrival, -up.ΔvDeparture)
	}
	if down.TransferTime != up.TransferTime {
		t.Fatal("transfer time is symmetric in the radii")
	}
}

func TestBiellipticDegeneratesToHohmann(t *testing.T) {
	r1 := Earth.Radius + 200e3
	r2 := Earth.Radius + 35786e3
	hohmann := HohmannTransfer(r1, r2, Earth)
	bi := BiellipticTransfer(r1, r2, r2, Earth)

	if !floats.EqualWithinAbs(bi.ΔvDeparture, hohmann.ΔvDeparture, 1e-9) {
		t.Fatalf("departure burn %f, want Hohmann %f", bi.ΔvDeparture, hohmann.ΔvDeparture)
	}
	if !floats.EqualWithinAbs(bi.ΔvIntermediate+bi.ΔvArrival, hohmann.ΔvArrival, 1e-9) {
		t.Fatalf("remaining burns sum to %f, want Hohmann %f", bi.ΔvIntermediate+bi.ΔvArrival, hohmann.ΔvArrival)
	}
	if bi.FirstLeg != hohmann.TransferTime {
		t.Fatal("first leg with rb = r2 is the Hohmann half ellipse")
	}
}

func TestBiellipticHighApoapsisWins(t *testing.T) {
	// Far enough out, the bi-elliptic route beats Hohmann on total Δv.
	r1 := Earth.Radius + 200e3
	r2 := 20 * r1
	rb := 80 * r1
	hohmann := HohmannTransfer(r1, r2, Earth)
	bi := BiellipticTransfer(r1, rb, r2, Earth)

	biTotal := math.Abs(bi.ΔvDeparture) + math.Abs(bi.ΔvIntermediate) + math.Abs(bi.ΔvArrival)
	hTotal := math.Abs(hohmann.ΔvDeparture) + math.Abs(hohmann.ΔvArrival)
	if biTotal >= hTotal {
		t.Fatalf("bi-elliptic %f should undercut Hohmann %f for a high ratio", biTotal, hTotal)
	}
	if bi.FirstLeg <= 0 || bi.SecondLeg <= 0 {
		t.Fatal("leg times must stay positive")
	}
}
