package orbital

// CelestialBody defines the central body of a two-body simulation.
// All distances are in meters, μ in m³/s².
type CelestialBody struct {
	Name   string
	Radius float64
	μ      float64
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialBody) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// Earth is the only central body defined by default. Other bodies can be
// set through the body section of the configuration.
var Earth = CelestialBody{
	Name:   "Earth",
	Radius: 6378136.3,
	μ:      3.986004418e14,
}
