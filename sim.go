package orbital

import (
	"github.com/go-kit/kit/log"
)

// Simulation owns the fixed-timestep loop around the core: it accumulates
// scaled wall time and drains it in fixed RK4 steps, selecting the thrust for
// each instant (manual control vector, or the executor's output when a
// scripted maneuver is active).
//
// Drag is cosmetic by default: it is computed for telemetry via DragTelemetry
// but does not feed back into the propagated state, and destruction is
// triggered by the crash-altitude threshold instead. Set IntegrateDrag to
// propagate physically decaying orbits.
type Simulation struct {
	State    StateVector
	SimTime  float64
	Crashed  bool
	Executor *Executor

	// ManualThrust is an inertial-frame thrust acceleration (m/s²) taking
	// precedence over the executor while non-nil.
	ManualThrust  []float64
	IntegrateDrag bool

	cfg         Config
	accumulator float64
	attitude    Quaternion
	logger      log.Logger
}

// NewSimulation returns a simulation of the given initial state. A nil logger
// silences it.
func NewSimulation(cfg Config, initial StateVector, logger log.Logger) *Simulation {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Simulation{
		State:    initial.Copy(),
		Executor: NewExecutor(),
		cfg:      cfg,
		attitude: IdentityQuaternion(),
		logger:   log.With(logger, "subsys", "sim"),
	}
}

// LoadSequence adopts a validated maneuver sequence wholesale: the executor is
// reset, the state is replaced by the sequence's initial state and the clock
// restarts.
func (s *Simulation) LoadSequence(seq *ManeuverSequence) {
	s.Executor.LoadSequence(seq)
	s.State = seq.InitialState.Copy()
	s.SimTime = 0
	s.accumulator = 0
	s.Crashed = false
	s.logger.Log("level", "info", "event", "sequence loaded", "name", seq.Name, "maneuvers", len(seq.Maneuvers))
}

// Advance feeds wallDt seconds of wall time into the accumulator and steps the
// integrator until it is drained, bounded by MaxStepsPerTick. It returns the
// number of steps executed. Once crashed, the state is frozen.
func (s *Simulation) Advance(wallDt float64) int {
	if s.Crashed {
		return 0
	}
	s.accumulator += wallDt * s.cfg.TimeAccel
	steps := 0
	for s.accumulator >= s.cfg.Step {
		if steps >= s.cfg.MaxStepsPerTick {
			// Shed the backlog rather than spiral when time acceleration
			// outruns what a tick can integrate.
			s.logger.Log("level", "warning", "event", "catch-up bound hit", "dropped(s)", s.accumulator)
			s.accumulator = 0
			break
		}
		s.step()
		s.accumulator -= s.cfg.Step
		steps++
		if s.Crashed {
			break
		}
	}
	return steps
}

func (s *Simulation) step() {
	thrust := s.ManualThrust
	if thrust == nil {
		var active bool
		thrust, s.attitude, active = s.Executor.ThrustAtTime(s.SimTime, s.State)
		if active {
			if node, ok := s.Executor.Active(); ok {
				s.logger.Log("level", "debug", "event", "maneuver", "id", node.ID, "t", s.SimTime)
			}
		}
	}
	var atmo *Atmosphere
	if s.IntegrateDrag {
		atmo = &s.cfg.Atmosphere
	}
	s.State = RK4Step(s.State, s.cfg.Body, atmo, s.cfg.Step, thrust)
	s.SimTime += s.cfg.Step

	if norm(s.State.R) <= s.cfg.Body.Radius+s.cfg.CrashAltitude {
		s.Crashed = true
		s.logger.Log("level", "critical", "event", "crashed", "body", s.cfg.Body.Name, "t", s.SimTime, "r", norm(s.State.R))
	}
}

// Orbit returns the osculating orbital elements of the current state.
func (s *Simulation) Orbit() Orbit {
	return NewOrbitFromRV(s.State, s.cfg.Body)
}

// Attitude returns the last commanded attitude.
func (s *Simulation) Attitude() Quaternion {
	return s.attitude
}

// DragTelemetry returns the drag acceleration at the current state for
// display. It does not affect propagation unless IntegrateDrag is set.
func (s *Simulation) DragTelemetry() []float64 {
	return s.cfg.Atmosphere.Drag(s.cfg.Body, s.State.R, s.State.V)
}
