package desktop

// CaptureConfig configures the OS-capture Frame Producer variant.
type CaptureConfig struct {
	DisplayIndex int    // which display to capture (DISPLAY_INDEX)
	Display      string // X11 DISPLAY env value; empty means "prefer PipeWire"
}

// DefaultConfig returns the spec-mandated defaults for the capture variant.
func DefaultConfig() CaptureConfig {
	return CaptureConfig{DisplayIndex: 0}
}

// NewScreenCapturer constructs the platform capture backend: X11 when
// cfg.Display is set on Linux, falling back to PipeWire otherwise. Failure
// to construct any source is a fatal session-construction error per spec.
func NewScreenCapturer(cfg CaptureConfig) (FrameProducer, error) {
	return newPlatformCapturer(cfg.DisplayIndex, cfg.Display)
}
