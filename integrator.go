package orbital

// Classical fixed-step RK4 over the 6-component state [x,y,z,vx,vy,vz].
// The step size is always the caller's: identical initial state, thrust
// sequence and dt reproduce the same trajectory regardless of frame rate.

const (
	half     = 1 / 2.0
	oneSixth = 1 / 6.0
	oneThird = 1 / 3.0
)

// derivative evaluates [vx,vy,vz, ax+tx,ay+ty,az+tz] with gravity, the
// optional atmosphere and the externally supplied thrust acceleration.
func derivative(body CelestialBody, atmo *Atmosphere, thrust, s []float64) []float64 {
	R := s[0:3]
	V := s[3:6]
	acc := Gravity(body, R)
	if atmo != nil {
		drag := atmo.Drag(body, R, V)
		for k := 0; k < 3; k++ {
			acc[k] += drag[k]
		}
	}
	return []float64{s[3], s[4], s[5],
		acc[0] + thrust[0], acc[1] + thrust[1], acc[2] + thrust[2]}
}

// RK4Step advances the state by exactly dt seconds under gravity, the optional
// atmosphere and a thrust acceleration held constant over the step. A nil
// atmosphere or thrust means none. The input state is never mutated.
func RK4Step(sv StateVector, body CelestialBody, atmo *Atmosphere, dt float64, thrust []float64) StateVector {
	if thrust == nil {
		thrust = []float64{0, 0, 0}
	}
	state := []float64{sv.R[0], sv.R[1], sv.R[2], sv.V[0], sv.V[1], sv.V[2]}
	k1 := make([]float64, 6)
	k2 := make([]float64, 6)
	k3 := make([]float64, 6)
	k4 := make([]float64, 6)
	tState := make([]float64, 6)

	// Compute the k's.
	for i, y := range derivative(body, atmo, thrust, state) {
		k1[i] = y * dt
		tState[i] = state[i] + k1[i]*half
	}
	for i, y := range derivative(body, atmo, thrust, tState) {
		k2[i] = y * dt
		tState[i] = state[i] + k2[i]*half
	}
	for i, y := range derivative(body, atmo, thrust, tState) {
		k3[i] = y * dt
		tState[i] = state[i] + k3[i]
	}
	for i, y := range derivative(body, atmo, thrust, tState) {
		k4[i] = y * dt
	}

	R := make([]float64, 3)
	V := make([]float64, 3)
	for i := 0; i < 3; i++ {
		R[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
		V[i] = state[i+3] + oneSixth*(k1[i+3]+k4[i+3]) + oneThird*(k2[i+3]+k3[i+3])
	}
	return StateVector{R, V}
}
