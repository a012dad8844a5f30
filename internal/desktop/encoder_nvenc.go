//go:build nvenc

package desktop

import "sync"

// nvencEncoder registers under the nvenc build tag. Like videotoolboxEncoder
// it is a registration-only placeholder until real NVENC bindings exist;
// tryHardware skips it in favor of the software backend.
type nvencEncoder struct {
	mu  sync.Mutex
	cfg EncoderConfig
}

func init() {
	registerHardwareFactory(newNVENCEncoder)
}

func newNVENCEncoder(cfg EncoderConfig) (encoderBackend, error) {
	return &nvencEncoder{cfg: cfg}, nil
}

func (n *nvencEncoder) Encode(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}
	return nil, nil
}

func (n *nvencEncoder) SetBitrate(bitrate int) error {
	if bitrate <= 0 {
		return ErrInvalidBitrate
	}
	n.mu.Lock()
	n.cfg.Bitrate = bitrate
	n.mu.Unlock()
	return nil
}

func (n *nvencEncoder) SetFPS(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}
	n.mu.Lock()
	n.cfg.FPS = fps
	n.mu.Unlock()
	return nil
}

func (n *nvencEncoder) SetDimensions(width, height int) error {
	n.mu.Lock()
	n.cfg.Width, n.cfg.Height = width, height
	n.mu.Unlock()
	return nil
}

func (n *nvencEncoder) Close() error { return nil }

func (n *nvencEncoder) Name() string { return "nvenc" }

func (n *nvencEncoder) IsHardware() bool { return true }

func (n *nvencEncoder) IsPlaceholder() bool { return true }
