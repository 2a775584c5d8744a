package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7350 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7350)
	}
	if cfg.Queue.LevelTimeMultiplier != 2.0 {
		t.Errorf("Queue.LevelTimeMultiplier = %v, want 2.0", cfg.Queue.LevelTimeMultiplier)
	}
	if len(cfg.Queue.LevelThresholdSeconds) != 5 {
		t.Errorf("Queue.LevelThresholdSeconds has %d entries, want 5", len(cfg.Queue.LevelThresholdSeconds))
	}
}

func TestToQueueConfig(t *testing.T) {
	cfg := DefaultConfig()
	qc := cfg.ToQueueConfig()

	if qc.LevelTimeMultiplier != cfg.Queue.LevelTimeMultiplier {
		t.Errorf("LevelTimeMultiplier mismatch after conversion")
	}
	if len(qc.LevelThresholdSeconds) != len(cfg.Queue.LevelThresholdSeconds) {
		t.Errorf("LevelThresholdSeconds length mismatch after conversion")
	}

	// The conversion must copy, not alias, the threshold slice.
	qc.LevelThresholdSeconds[0] = 99
	if cfg.Queue.LevelThresholdSeconds[0] == 99 {
		t.Errorf("ToQueueConfig aliased the threshold slice")
	}
}
