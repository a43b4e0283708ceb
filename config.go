package orbital

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config gathers the tunable constants of the simulation: the central body,
// the atmosphere model and the stepping policy. Values are read from an
// optional conf.toml (in $ORBITAL_CONFIG or the working directory); anything
// absent falls back to the defaults below.
type Config struct {
	Body            CelestialBody
	Atmosphere      Atmosphere
	Step            float64 // fixed integration step (s)
	MaxStepsPerTick int     // bounded catch-up when time acceleration is high
	TimeAccel       float64 // simulated seconds per wall second
	CrashAltitude   float64 // altitude (m) at or below which the vehicle is destroyed
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("body.name", Earth.Name)
	v.SetDefault("body.radius", Earth.Radius)
	v.SetDefault("body.mu", Earth.μ)
	v.SetDefault("atmosphere.sea_level_density", 1.225)
	v.SetDefault("atmosphere.scale_height", 8500.0)
	v.SetDefault("atmosphere.ceiling", 200e3)
	v.SetDefault("atmosphere.drag_coeff", 2.2)
	v.SetDefault("atmosphere.cross_section", 4.0)
	v.SetDefault("atmosphere.vehicle_mass", 1200.0)
	v.SetDefault("sim.step", 1.0)
	v.SetDefault("sim.max_steps_per_tick", 1000)
	v.SetDefault("sim.time_accel", 1.0)
	v.SetDefault("sim.crash_altitude", 0.0)
}

// LoadConfig reads conf.toml if present and returns the effective
// configuration. A missing file is not an error, a malformed one is.
func LoadConfig() (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	if confPath := os.Getenv("ORBITAL_CONFIG"); confPath != "" {
		v.AddConfigPath(confPath)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("conf.toml: %w", err)
		}
	}
	return configFromViper(v), nil
}

func configFromViper(v *viper.Viper) Config {
	return Config{
		Body: CelestialBody{
			Name:   v.GetString("body.name"),
			Radius: v.GetFloat64("body.radius"),
			μ:      v.GetFloat64("body.mu"),
		},
		Atmosphere: Atmosphere{
			SeaLevelDensity: v.GetFloat64("atmosphere.sea_level_density"),
			ScaleHeight:     v.GetFloat64("atmosphere.scale_height"),
			Ceiling:         v.GetFloat64("atmosphere.ceiling"),
			DragCoeff:       v.GetFloat64("atmosphere.drag_coeff"),
			CrossSection:    v.GetFloat64("atmosphere.cross_section"),
			VehicleMass:     v.GetFloat64("atmosphere.vehicle_mass"),
		},
		Step:            v.GetFloat64("sim.step"),
		MaxStepsPerTick: v.GetInt("sim.max_steps_per_tick"),
		TimeAccel:       v.GetFloat64("sim.time_accel"),
		CrashAltitude:   v.GetFloat64("sim.crash_altitude"),
	}
}

// DefaultConfig returns the built-in defaults without touching the filesystem.
func DefaultConfig() Config {
	v := viper.New()
	setConfigDefaults(v)
	return configFromViper(v)
}
