package module

import (
	"testing"
	"time"

	"tsdash/internal/modkit"
	"tsdash/internal/modkit/module"
	"tsdash/internal/platform/config"
	"tsdash/internal/platform/testkit"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("SEED_INTERVAL", "30s")
	t.Setenv("SEED_SPAN", "48h")
	t.Setenv("SEED_APPLY_SCHEMA", "false")

	cfg := FromConfig(config.New())
	if cfg.Interval != 30*time.Second || cfg.Span != 48*time.Hour || cfg.ApplySchema {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Batch != 10_000 || cfg.Workers != 2 || cfg.Seed != 1 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestNew_RequiresBackends(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}, FromConfig(config.New())) })
}

func TestPorts(t *testing.T) {
	m := &Module{ports: Ports{Runner: nil}}
	if m.Name() != "seed" {
		t.Fatalf("name = %s", m.Name())
	}
	if _, ok := module.PortsOf[Runner](m); ok {
		t.Fatalf("nil runner should not resolve")
	}
}
