package orbital

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbs(a[i], b[i], 1e-6) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < angleε || 2*math.Pi-diff < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", math.Abs(Rad2deg(diff)))
}

// leoState returns a circular equatorial state at the given altitude: the
// polar axis is Y, so the velocity lies along -Z for prograde motion at +X.
func leoState(altitude float64) StateVector {
	r := Earth.Radius + altitude
	v := math.Sqrt(Earth.μ / r)
	return StateVector{R: []float64{r, 0, 0}, V: []float64{0, 0, -v}}
}
