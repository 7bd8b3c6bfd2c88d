package arbor

import (
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Gravity != defaultGravity {
		t.Errorf("Gravity = %v, want %v", cfg.Gravity, defaultGravity)
	}
	if cfg.Physics != DefaultPhysicsParams() {
		t.Errorf("Physics = %+v, want defaults", cfg.Physics)
	}
	if cfg.Enabled != nil {
		t.Error("Enabled should default to unset")
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
gravity:
  x: 0
  y: -9.8
enabled: false
physics:
  dt: 0.02
  iterations: 20
  damping: 0.9
  sleep_time_threshold: 0.5
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Gravity != (Vec2{0, -9.8}) {
		t.Errorf("Gravity = %v, want (0, -9.8)", cfg.Gravity)
	}
	if cfg.Enabled == nil || *cfg.Enabled {
		t.Error("Enabled not parsed as false")
	}
	want := PhysicsParams{Dt: 0.02, Iterations: 20, Damping: 0.9, SleepTimeThreshold: 0.5}
	if cfg.Physics != want {
		t.Errorf("Physics = %+v, want %+v", cfg.Physics, want)
	}
}

func TestParseConfigPartial(t *testing.T) {
	cfg, err := ParseConfig([]byte("physics:\n  iterations: 4\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Physics.Iterations != 4 {
		t.Errorf("Iterations = %d, want 4", cfg.Physics.Iterations)
	}
	if cfg.Physics.Dt != DefaultPhysicsParams().Dt {
		t.Errorf("Dt = %v, want default preserved", cfg.Physics.Dt)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	if _, err := ParseConfig([]byte("gravity: [nope")); err == nil {
		t.Error("ParseConfig accepted malformed YAML")
	}
}

func TestApplyConfig(t *testing.T) {
	l := newTestLayer(t)
	enabled := false
	cfg := Config{
		Gravity: Vec2{0, -5},
		Enabled: &enabled,
		Physics: PhysicsParams{Dt: 0.01, Iterations: 5, Damping: 0.8},
	}
	l.ApplyConfig(cfg)
	if got := l.Gravity(); got != (Vec2{0, -5}) {
		t.Errorf("Gravity() = %v, want (0, -5)", got)
	}
	if l.PhysicsEnabled() {
		t.Error("PhysicsEnabled() = true, want false")
	}
	if got := l.PhysicsParams(); got != cfg.Physics {
		t.Errorf("PhysicsParams() = %+v, want %+v", got, cfg.Physics)
	}
}
