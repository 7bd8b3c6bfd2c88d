package arbor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PhysicsParams are the tunable simulation parameters of one layer's physics
// world.
type PhysicsParams struct {
	// Dt is the fixed timestep in seconds each physics iteration advances.
	Dt float64 `yaml:"dt"`
	// Iterations is the solver iteration count per step. More iterations
	// trade speed for joint and contact stability.
	Iterations uint `yaml:"iterations"`
	// Damping is the fraction of velocity a body keeps per second. 1 keeps
	// everything, lower values bleed momentum.
	Damping float64 `yaml:"damping"`
	// SleepTimeThreshold is how long a body must be idle before it sleeps, in
	// seconds. Zero disables sleeping.
	SleepTimeThreshold float64 `yaml:"sleep_time_threshold"`
}

// DefaultPhysicsParams returns a 60 Hz step with standard solver settings.
func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		Dt:         1.0 / 60.0,
		Iterations: 10,
		Damping:    1,
	}
}

// Config is a layer physics configuration loadable from YAML.
type Config struct {
	Gravity Vec2          `yaml:"gravity"`
	Enabled *bool         `yaml:"enabled"`
	Physics PhysicsParams `yaml:"physics"`
}

// DefaultConfig returns the configuration a fresh layer starts with.
func DefaultConfig() Config {
	return Config{
		Gravity: defaultGravity,
		Physics: DefaultPhysicsParams(),
	}
}

// ParseConfig reads a Config from YAML. Omitted fields keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("arbor: parsing config: %w", err)
	}
	return cfg, nil
}

// ApplyConfig applies a configuration to this layer's physics world.
func (l *Layer) ApplyConfig(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.ensurePhysicsLocked()
	w.gravity = cfg.Gravity
	w.space.SetGravity(cpv(cfg.Gravity))
	if cfg.Enabled != nil {
		w.enabled = *cfg.Enabled
	}
	w.params = cfg.Physics
	w.applyParams()
}
