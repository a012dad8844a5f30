//go:build vaapi

package desktop

import "sync"

// vaapiEncoder registers a VA-API backend on Linux under the vaapi build
// tag. No VA-API cgo bindings appear anywhere in the reference pack, so
// this follows the same registration-only placeholder shape as
// videotoolboxEncoder and nvencEncoder; real frames fall through to the
// software backend until one is wired in.
type vaapiEncoder struct {
	mu  sync.Mutex
	cfg EncoderConfig
}

func init() {
	registerHardwareFactory(newVAAPIEncoder)
}

func newVAAPIEncoder(cfg EncoderConfig) (encoderBackend, error) {
	return &vaapiEncoder{cfg: cfg}, nil
}

func (e *vaapiEncoder) Encode(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}
	return nil, nil
}

func (e *vaapiEncoder) SetBitrate(bitrate int) error {
	if bitrate <= 0 {
		return ErrInvalidBitrate
	}
	e.mu.Lock()
	e.cfg.Bitrate = bitrate
	e.mu.Unlock()
	return nil
}

func (e *vaapiEncoder) SetFPS(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}
	e.mu.Lock()
	e.cfg.FPS = fps
	e.mu.Unlock()
	return nil
}

func (e *vaapiEncoder) SetDimensions(width, height int) error {
	e.mu.Lock()
	e.cfg.Width, e.cfg.Height = width, height
	e.mu.Unlock()
	return nil
}

func (e *vaapiEncoder) Close() error { return nil }

func (e *vaapiEncoder) Name() string { return "vaapi" }

func (e *vaapiEncoder) IsHardware() bool { return true }

func (e *vaapiEncoder) IsPlaceholder() bool { return true }
