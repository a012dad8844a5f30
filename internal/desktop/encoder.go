package desktop

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cloudomate/streamio/internal/logging"
)

// QualityPreset names an encoder quality preset. Neither VideoEncoder nor
// encoderBackend reads or reports it: encoding runs at a single fixed
// bitrate, so no runtime quality stepping happens here.
type QualityPreset string

const (
	QualityAuto QualityPreset = "auto"
)

var (
	ErrInvalidBitrate = errors.New("invalid bitrate")
	ErrInvalidFPS     = errors.New("invalid fps")
	ErrEmptyFrame     = errors.New("empty frame")
)

// EncoderConfig configures a VideoEncoder at construction.
type EncoderConfig struct {
	Width, Height  int
	Bitrate        int // target bitrate in bits/sec, ~4Mbps per spec
	FPS            int
	PreferHardware bool
}

// DefaultEncoderConfig returns the defaults: ~4Mbps constant bitrate at 30
// FPS. EncoderConfig has no keyframe-interval setting; the interval between
// IDR frames is whatever the selected backend uses by default.
func DefaultEncoderConfig() EncoderConfig {
	return EncoderConfig{
		Bitrate:        4_000_000,
		FPS:            30,
		PreferHardware: true,
	}
}

// encoderBackend is implemented by each concrete H.264 encoder (hardware or
// software). Encode consumes one RGBA frame and returns at most one Annex-B
// encoded unit; an empty, nil-error result means the encoder withheld output
// (common during warm-up) and must not be forwarded as an RTP payload.
type encoderBackend interface {
	Encode(rgba []byte) ([]byte, error)
	SetBitrate(bitrate int) error
	SetFPS(fps int) error
	SetDimensions(width, height int) error
	Close() error
	Name() string
	IsHardware() bool
	IsPlaceholder() bool
}

// optionalKeyframeForcer is implemented by backends that can force the next
// output unit to be an IDR keyframe.
type optionalKeyframeForcer interface {
	ForceKeyframe() error
}

// optionalFlusher is implemented by backends that can drop buffered state
// and restart from a keyframe (used on mouse-click flush).
type optionalFlusher interface {
	Flush() error
}

type backendFactory func(cfg EncoderConfig) (encoderBackend, error)

var (
	hardwareFactoriesMu sync.Mutex
	hardwareFactories   []backendFactory
)

// registerHardwareFactory is called from build-tag-gated init() functions in
// encoder_videotoolbox.go, encoder_nvenc.go, and encoder_vaapi_linux.go.
func registerHardwareFactory(factory backendFactory) {
	hardwareFactoriesMu.Lock()
	defer hardwareFactoriesMu.Unlock()
	hardwareFactories = append(hardwareFactories, factory)
}

// VideoEncoder wraps a single encoderBackend, selected at construction by
// probing hardware encoders in registration order and falling back to the
// software backend.
type VideoEncoder struct {
	mu      sync.Mutex
	cfg     EncoderConfig
	backend encoderBackend
}

// NewVideoEncoder probes the registered hardware encoders in registration
// order (VideoToolbox on darwin; NVENC and VA-API under their build tags),
// skipping placeholders, and otherwise falls back to the software baseline.
// There is no QSV backend.
func NewVideoEncoder(cfg EncoderConfig) (*VideoEncoder, error) {
	cfg = applyDefaults(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	logging.L("encoder").Info("encoder backend selected",
		"name", backend.Name(), "hardware", backend.IsHardware())

	return &VideoEncoder{cfg: cfg, backend: backend}, nil
}

func (v *VideoEncoder) Encode(rgba []byte) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.backend == nil {
		return nil, errors.New("encoder not initialized")
	}
	return v.backend.Encode(rgba)
}

func (v *VideoEncoder) SetBitrate(bitrate int) error {
	if bitrate <= 0 {
		return ErrInvalidBitrate
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.backend.SetBitrate(bitrate); err != nil {
		return err
	}
	v.cfg.Bitrate = bitrate
	return nil
}

func (v *VideoEncoder) SetFPS(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.backend.SetFPS(fps); err != nil {
		return err
	}
	v.cfg.FPS = fps
	return nil
}

func (v *VideoEncoder) SetDimensions(width, height int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.backend.SetDimensions(width, height)
}

func (v *VideoEncoder) Close() error {
	v.mu.Lock()
	backend := v.backend
	v.backend = nil
	v.mu.Unlock()
	if backend == nil {
		return nil
	}
	return backend.Close()
}

// Flush drops buffered encoder state and forces the next output to be an
// IDR keyframe. Called on mouse-down and key-down so the viewer sees the
// interaction's result immediately instead of stale buffered frames.
func (v *VideoEncoder) Flush() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.backend == nil {
		return
	}
	if f, ok := v.backend.(optionalFlusher); ok {
		if err := f.Flush(); err != nil {
			slog.Warn("encoder flush failed", "error", err)
		}
	}
}

// ForceKeyframe requests an IDR as soon as possible. No-op if the backend
// doesn't support it.
func (v *VideoEncoder) ForceKeyframe() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.backend == nil {
		return errors.New("encoder not initialized")
	}
	if kf, ok := v.backend.(optionalKeyframeForcer); ok {
		return kf.ForceKeyframe()
	}
	return nil
}

func (v *VideoEncoder) BackendName() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.backend == nil {
		return ""
	}
	return v.backend.Name()
}

func (v *VideoEncoder) BackendIsHardware() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.backend != nil && v.backend.IsHardware()
}

func (v *VideoEncoder) BackendIsPlaceholder() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.backend == nil {
		return true
	}
	return v.backend.IsPlaceholder()
}

func applyDefaults(cfg EncoderConfig) EncoderConfig {
	d := DefaultEncoderConfig()
	if cfg.Bitrate == 0 {
		cfg.Bitrate = d.Bitrate
	}
	if cfg.FPS == 0 {
		cfg.FPS = d.FPS
	}
	return cfg
}

func validateConfig(cfg EncoderConfig) error {
	if cfg.Bitrate <= 0 {
		return ErrInvalidBitrate
	}
	if cfg.FPS <= 0 {
		return ErrInvalidFPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}

func newBackend(cfg EncoderConfig) (encoderBackend, error) {
	if cfg.PreferHardware {
		if backend := tryHardware(cfg); backend != nil {
			return backend, nil
		}
	}
	return newSoftwareEncoder(cfg)
}

func tryHardware(cfg EncoderConfig) encoderBackend {
	hardwareFactoriesMu.Lock()
	factories := append([]backendFactory(nil), hardwareFactories...)
	hardwareFactoriesMu.Unlock()
	for _, factory := range factories {
		backend, err := factory(cfg)
		if err != nil || backend == nil {
			continue
		}
		if backend.IsPlaceholder() {
			logging.L("encoder").Warn("hardware backend has no real implementation yet, skipping",
				"name", backend.Name())
			backend.Close()
			continue
		}
		return backend
	}
	return nil
}
