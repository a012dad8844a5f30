//go:build darwin

package desktop

import (
	"sync"
)

// videotoolboxEncoder is a placeholder backend: it registers as the
// highest-priority hardware encoder on darwin but has no VideoToolbox
// bindings: Encode returns no output for any frame. IsPlaceholder lets the
// caller notice and fall back to the software backend.
type videotoolboxEncoder struct {
	mu  sync.Mutex
	cfg EncoderConfig
}

func init() {
	registerHardwareFactory(newVideoToolboxEncoder)
}

func newVideoToolboxEncoder(cfg EncoderConfig) (encoderBackend, error) {
	return &videotoolboxEncoder{cfg: cfg}, nil
}

func (v *videotoolboxEncoder) Encode(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}
	return nil, nil
}

func (v *videotoolboxEncoder) SetBitrate(bitrate int) error {
	if bitrate <= 0 {
		return ErrInvalidBitrate
	}
	v.mu.Lock()
	v.cfg.Bitrate = bitrate
	v.mu.Unlock()
	return nil
}

func (v *videotoolboxEncoder) SetFPS(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}
	v.mu.Lock()
	v.cfg.FPS = fps
	v.mu.Unlock()
	return nil
}

func (v *videotoolboxEncoder) SetDimensions(width, height int) error {
	v.mu.Lock()
	v.cfg.Width, v.cfg.Height = width, height
	v.mu.Unlock()
	return nil
}

func (v *videotoolboxEncoder) Close() error { return nil }

func (v *videotoolboxEncoder) Name() string { return "videotoolbox" }

func (v *videotoolboxEncoder) IsHardware() bool { return true }

func (v *videotoolboxEncoder) IsPlaceholder() bool { return true }
