// Package config loads the server's environment-variable configuration.
//
// Process bootstrap and env-var parsing are explicitly out of scope for the
// core per the specification, but a real binary still needs somewhere to put
// this, so it is kept deliberately thin: a flat struct and a loader, no
// config-file layer.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server's runtime configuration, sourced from environment
// variables.
type Config struct {
	Variant      string // VARIANT: "capture" or "renderer"
	Port         int    // PORT
	FPS          int    // FPS
	Width        int    // WIDTH (renderer variant)
	Height       int    // HEIGHT (renderer variant)
	DisplayIndex int    // DISPLAY_INDEX (capture variant)
	EnableAudio  bool   // ENABLE_AUDIO
	Display      string // DISPLAY
}

const (
	VariantCapture  = "capture"
	VariantRenderer = "renderer"
)

// Default returns the configuration with spec-mandated defaults applied.
func Default() Config {
	return Config{
		Variant:      VariantCapture,
		Port:         8123,
		FPS:          30,
		Width:        1280,
		Height:       720,
		DisplayIndex: 0,
		EnableAudio:  false,
		Display:      "",
	}
}

// Load reads the configuration from the environment, falling back to
// Default() for any variable that is unset.
func Load() (Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv("VARIANT"); ok {
		if v != VariantCapture && v != VariantRenderer {
			return Config{}, fmt.Errorf("invalid VARIANT %q, want %q or %q", v, VariantCapture, VariantRenderer)
		}
		cfg.Variant = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = n
	}
	if v, ok := os.LookupEnv("FPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid FPS %q", v)
		}
		cfg.FPS = n
	}
	if v, ok := os.LookupEnv("WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid WIDTH %q", v)
		}
		cfg.Width = n
	}
	if v, ok := os.LookupEnv("HEIGHT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid HEIGHT %q", v)
		}
		cfg.Height = n
	}
	if v, ok := os.LookupEnv("DISPLAY_INDEX"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DISPLAY_INDEX %q", v)
		}
		cfg.DisplayIndex = n
	}
	if v, ok := os.LookupEnv("ENABLE_AUDIO"); ok {
		cfg.EnableAudio = v == "1"
	}
	if v, ok := os.LookupEnv("DISPLAY"); ok {
		cfg.Display = v
	}

	return cfg, nil
}
