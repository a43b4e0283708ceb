package orbital

// ManeuverNode is a single scripted burn. ΔV components are expressed in the
// instantaneous prograde / orbit-normal / radial frame at execution time and
// are spread uniformly over the node's duration.
type ManeuverNode struct {
	ID        string
	StartTime float64   // seconds from sequence start, ≥ 0
	Duration  float64   // seconds, ≥ 0
	ΔV        []float64 // prograde, orbit-normal, radial (m/s)
}

// contains returns whether t falls within this node's burn window.
func (n ManeuverNode) contains(t float64) bool {
	return t >= n.StartTime && t < n.StartTime+n.Duration
}

// ManeuverSequence is an ordered maneuver script. It is validated before use
// and treated as immutable for the lifetime of a run: replaced wholesale,
// never patched in place.
type ManeuverSequence struct {
	Version       int
	Name          string
	InitialState  StateVector
	Maneuvers     []ManeuverNode
	TotalDuration float64 // seconds
}

// Executor converts the loaded sequence into an inertial-frame thrust
// acceleration at a given simulation time. The thrust vector and the desired
// attitude are two independent outputs; the executor never touches the state.
type Executor struct {
	seq      *ManeuverSequence
	active   *ManeuverNode
	attitude Quaternion
}

// NewExecutor returns an executor with no sequence loaded.
func NewExecutor() *Executor {
	return &Executor{attitude: IdentityQuaternion()}
}

// LoadSequence replaces the loaded sequence and resets the active maneuver.
func (e *Executor) LoadSequence(seq *ManeuverSequence) {
	e.seq = seq
	e.active = nil
}

// Active returns the currently executing maneuver, if any.
func (e *Executor) Active() (ManeuverNode, bool) {
	if e.active == nil {
		return ManeuverNode{}, false
	}
	return *e.active, true
}

// ThrustAtTime returns the thrust acceleration (m/s²) commanded at simTime for
// the given state, the face-prograde attitude, and whether a maneuver is
// active. When maneuvers overlap, the first one in list order wins. Zero-length
// nodes have an empty window and never fire. If the velocity is too small to
// define a prograde frame, the thrust is zero and the attitude is left
// unchanged.
func (e *Executor) ThrustAtTime(simTime float64, sv StateVector) (thrust []float64, attitude Quaternion, active bool) {
	thrust = []float64{0, 0, 0}
	e.active = nil
	if e.seq == nil {
		return thrust, e.attitude, false
	}
	var node *ManeuverNode
	for k := range e.seq.Maneuvers {
		if e.seq.Maneuvers[k].contains(simTime) {
			node = &e.seq.Maneuvers[k]
			break
		}
	}
	if node == nil {
		return thrust, e.attitude, false
	}
	e.active = node

	prograde, normal, radial, ok := maneuverFrame(sv)
	if !ok {
		return thrust, e.attitude, true
	}
	// Constant acceleration: each frame component of ΔV over the duration.
	inv := 1 / node.Duration
	for k := 0; k < 3; k++ {
		thrust[k] = (node.ΔV[0]*prograde[k] + node.ΔV[1]*normal[k] + node.ΔV[2]*radial[k]) * inv
	}
	e.attitude = QuaternionFromMatrix(basisMatrix(prograde, normal, radial))
	return thrust, e.attitude, true
}

// maneuverFrame builds the instantaneous prograde/orbit-normal/radial
// orthonormal frame. It is undefined below the speed floor or for radial
// trajectories with no orbit plane.
func maneuverFrame(sv StateVector) (prograde, normal, radial []float64, ok bool) {
	if norm(sv.V) < speedε {
		return nil, nil, nil, false
	}
	h := cross(sv.R, sv.V)
	if norm(h) < momentumε {
		return nil, nil, nil, false
	}
	prograde = unit(sv.V)
	normal = unit(h)
	radial = cross(prograde, normal)
	return prograde, normal, radial, true
}
