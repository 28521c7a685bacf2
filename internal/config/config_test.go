package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.AllowedOrigin != DefaultOrigin {
		t.Errorf("AllowedOrigin = %q", cfg.AllowedOrigin)
	}
	if cfg.GraceDelay != DefaultGraceDelay {
		t.Errorf("GraceDelay = %v", cfg.GraceDelay)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("ALLOWED_ORIGIN", "https://call.example.com")
	t.Setenv("ROOM_GRACE_DELAY", "30s")
	t.Setenv("ROOM_IDLE_THRESHOLD", "120") // bare seconds

	cfg := Load()
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.AllowedOrigin != "https://call.example.com" {
		t.Errorf("AllowedOrigin = %q", cfg.AllowedOrigin)
	}
	if cfg.GraceDelay != 30*time.Second {
		t.Errorf("GraceDelay = %v", cfg.GraceDelay)
	}
	if cfg.IdleThreshold != 2*time.Minute {
		t.Errorf("IdleThreshold = %v", cfg.IdleThreshold)
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("ROOM_SWEEP_INTERVAL", "soon")
	if cfg := Load(); cfg.SweepInterval != DefaultSweepInterval {
		t.Errorf("SweepInterval = %v", cfg.SweepInterval)
	}
}
