package orbital

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalidSequence is returned (wrapped) for any maneuver-sequence document
// that fails validation. Validation is all-or-nothing: a single violation
// rejects the whole document.
var ErrInvalidSequence = errors.New("invalid maneuver sequence")

// Wire shapes of the maneuver-sequence document. Unexported so the JSON
// layout can evolve independently from the in-memory types. Numeric fields
// are pointers to tell a missing field from a zero.
type maneuverSequenceJSON struct {
	Version       *float64           `json:"version"`
	Name          string             `json:"name"`
	InitialState  *stateVectorJSON   `json:"initialState"`
	Maneuvers     []maneuverNodeJSON `json:"maneuvers"`
	TotalDuration *float64           `json:"totalDuration"`
}

type stateVectorJSON struct {
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
}

type maneuverNodeJSON struct {
	ID        string    `json:"id"`
	StartTime *float64  `json:"startTime"`
	Duration  *float64  `json:"duration"`
	DeltaV    []float64 `json:"deltaV"`
}

func rejectf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidSequence, fmt.Sprintf(format, args...))
}

// ParseSequence decodes and validates a maneuver-sequence document. Any
// structural or numeric violation yields an error wrapping ErrInvalidSequence;
// the document is never partially adopted.
func ParseSequence(r io.Reader) (*ManeuverSequence, error) {
	var doc maneuverSequenceJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, rejectf("decode failed: %s", err)
	}
	if doc.Version == nil || !isFinite(*doc.Version) || *doc.Version != math.Trunc(*doc.Version) {
		return nil, rejectf("version must be an integer-valued number")
	}
	if doc.InitialState == nil {
		return nil, rejectf("initialState is required")
	}
	if doc.TotalDuration == nil {
		return nil, rejectf("totalDuration is required")
	}
	seq := &ManeuverSequence{
		Version:       int(*doc.Version),
		Name:          doc.Name,
		InitialState:  StateVector{R: doc.InitialState.Position, V: doc.InitialState.Velocity},
		Maneuvers:     make([]ManeuverNode, len(doc.Maneuvers)),
		TotalDuration: *doc.TotalDuration,
	}
	for k, m := range doc.Maneuvers {
		if m.StartTime == nil || m.Duration == nil {
			return nil, rejectf("maneuver %d: startTime and duration are required", k)
		}
		seq.Maneuvers[k] = ManeuverNode{
			ID:        m.ID,
			StartTime: *m.StartTime,
			Duration:  *m.Duration,
			ΔV:        m.DeltaV,
		}
	}
	return ValidateSequence(seq)
}

// ValidateSequence checks a sequence structurally and numerically and returns
// it unchanged, or an error wrapping ErrInvalidSequence. It never panics and
// has no side effects.
func ValidateSequence(seq *ManeuverSequence) (*ManeuverSequence, error) {
	if seq == nil {
		return nil, rejectf("sequence is nil")
	}
	if seq.Name == "" {
		return nil, rejectf("name must not be empty")
	}
	if err := checkVec3("initialState.position", seq.InitialState.R); err != nil {
		return nil, err
	}
	if err := checkVec3("initialState.velocity", seq.InitialState.V); err != nil {
		return nil, err
	}
	for k, m := range seq.Maneuvers {
		if m.ID == "" {
			return nil, rejectf("maneuver %d: id must not be empty", k)
		}
		if !isFinite(m.StartTime) || m.StartTime < 0 {
			return nil, rejectf("maneuver %q: startTime must be finite and ≥ 0", m.ID)
		}
		if !isFinite(m.Duration) || m.Duration < 0 {
			return nil, rejectf("maneuver %q: duration must be finite and ≥ 0", m.ID)
		}
		if err := checkVec3(fmt.Sprintf("maneuver %q deltaV", m.ID), m.ΔV); err != nil {
			return nil, err
		}
	}
	if !isFinite(seq.TotalDuration) || seq.TotalDuration < 0 {
		return nil, rejectf("totalDuration must be finite and ≥ 0")
	}
	return seq, nil
}

// SerializeSequence renders a sequence back to its wire document. The output
// of a round trip through ParseSequence is equivalent to the input.
func SerializeSequence(seq *ManeuverSequence) ([]byte, error) {
	if _, err := ValidateSequence(seq); err != nil {
		return nil, err
	}
	version := float64(seq.Version)
	total := seq.TotalDuration
	doc := maneuverSequenceJSON{
		Version: &version,
		Name:    seq.Name,
		InitialState: &stateVectorJSON{
			Position: seq.InitialState.R,
			Velocity: seq.InitialState.V,
		},
		Maneuvers:     make([]maneuverNodeJSON, len(seq.Maneuvers)),
		TotalDuration: &total,
	}
	for k := range seq.Maneuvers {
		m := seq.Maneuvers[k]
		start, dur := m.StartTime, m.Duration
		doc.Maneuvers[k] = maneuverNodeJSON{
			ID:        m.ID,
			StartTime: &start,
			Duration:  &dur,
			DeltaV:    m.ΔV,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// NewHohmannSequence builds a preset two-burn sequence raising (or lowering)
// a circular orbit to the target radius, with each impulse spread over
// burnDuring seconds. The initial state is placed on a circular equatorial
// orbit at r1.
func NewHohmannSequence(r1, r2, burnDuring float64, body CelestialBody) *ManeuverSequence {
	plan := HohmannTransfer(r1, r2, body)
	sv := NewOrbitFromOE(r1, 0, 0, 0, 0, 0, body).State()
	coast := plan.TransferTime.Seconds()
	seq := &ManeuverSequence{
		Version:      1,
		Name:         fmt.Sprintf("hohmann %.0fkm to %.0fkm", r1/1000, r2/1000),
		InitialState: sv,
		Maneuvers: []ManeuverNode{
			{ID: "departure", StartTime: 0, Duration: burnDuring, ΔV: []float64{plan.ΔvDeparture, 0, 0}},
			{ID: "arrival", StartTime: coast, Duration: burnDuring, ΔV: []float64{plan.ΔvArrival, 0, 0}},
		},
		TotalDuration: coast + burnDuring,
	}
	return seq
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkVec3(what string, v []float64) error {
	if len(v) != 3 {
		return rejectf("%s must have exactly 3 components", what)
	}
	for _, x := range v {
		if !isFinite(x) {
			return rejectf("%s has a non-finite component", what)
		}
	}
	return nil
}
