package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("Load() with no env = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FPS", "60")
	t.Setenv("ENABLE_AUDIO", "1")
	t.Setenv("DISPLAY", ":1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.FPS)
	}
	if !cfg.EnableAudio {
		t.Errorf("EnableAudio = false, want true")
	}
	if cfg.Display != ":1" {
		t.Errorf("Display = %q, want :1", cfg.Display)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoadInvalidFPS(t *testing.T) {
	t.Setenv("FPS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for FPS <= 0")
	}
}

func TestLoadVariantRenderer(t *testing.T) {
	t.Setenv("VARIANT", "renderer")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Variant != VariantRenderer {
		t.Errorf("Variant = %q, want %q", cfg.Variant, VariantRenderer)
	}
}

func TestLoadInvalidVariant(t *testing.T) {
	t.Setenv("VARIANT", "bogus")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid VARIANT")
	}
}
