package config

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	m := newTestManager(t)

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PollIntervalMS != 500 {
		t.Errorf("PollIntervalMS = %d, want default 500", cfg.PollIntervalMS)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "auto" {
		t.Errorf("log defaults = %s/%s, want info/auto", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t)

	cfg := &Config{
		PollIntervalMS: 250,
		DataLocation:   "/tmp/clips.json",
		LogLevel:       "debug",
		LogFormat:      "json",
	}
	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round-trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestValidationRejectsBadInterval(t *testing.T) {
	m := newTestManager(t)

	for _, interval := range []int{-1, 10, 20000} {
		cfg := DefaultConfig()
		cfg.PollIntervalMS = interval
		if err := m.Save(cfg); err == nil {
			t.Errorf("Save accepted poll_interval_ms=%d", interval)
		}
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{ poll_interval_ms: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := NewManagerWithPath(path).Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestUpdateAndGet(t *testing.T) {
	m := newTestManager(t)

	if err := m.Update("poll-interval-ms", "750"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := m.Update("data-location", "/data/clips.json"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := m.Get("poll-interval-ms")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "750" {
		t.Errorf("poll-interval-ms = %s, want 750", got)
	}

	got, err = m.Get("data-location")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "/data/clips.json" {
		t.Errorf("data-location = %s, want /data/clips.json", got)
	}
}

func TestUpdateRejectsUnknownKey(t *testing.T) {
	m := newTestManager(t)
	if err := m.Update("no-such-key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestUpdateRejectsBadValues(t *testing.T) {
	m := newTestManager(t)
	if err := m.Update("poll-interval-ms", "abc"); err == nil {
		t.Error("expected error for non-integer interval")
	}
	if err := m.Update("poll-interval-ms", "5"); err == nil {
		t.Error("expected error for out-of-range interval")
	}
}

func TestListShowsAllKeys(t *testing.T) {
	m := newTestManager(t)

	values, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, key := range []string{"poll-interval-ms", "data-location", "log-level", "log-format"} {
		if _, ok := values[key]; !ok {
			t.Errorf("List missing key %s", key)
		}
	}
	if values["data-location"] != "[default]" {
		t.Errorf("unset data-location = %s, want [default]", values["data-location"])
	}
}
