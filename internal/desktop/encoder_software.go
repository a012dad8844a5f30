package desktop

import (
	"fmt"
	"image"
	"sync"

	openh264 "github.com/y9o/go-openh264"
)

// softwareEncoder wraps the openh264 software codec. It is the fallback
// backend when no hardware encoder registers successfully, and the only
// backend available on platforms without a hardware build tag.
type softwareEncoder struct {
	mu     sync.Mutex
	cfg    EncoderConfig
	enc    *openh264.Encoder
	planes planarYUV
}

func newSoftwareEncoder(cfg EncoderConfig) (encoderBackend, error) {
	enc, err := openh264.NewEncoder(cfg.Width, cfg.Height, cfg.Bitrate, cfg.FPS)
	if err != nil {
		return nil, fmt.Errorf("openh264: new encoder: %w", err)
	}
	return &softwareEncoder{cfg: cfg, enc: enc}, nil
}

// Encode converts the RGBA frame to planar YUV420p and feeds it to the
// openh264 encoder. The first call or two may legitimately return an empty
// slice while the encoder buffers reference frames; callers must not
// forward an empty, nil-error result as an RTP payload.
func (s *softwareEncoder) Encode(rgba []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rgba) == 0 {
		return nil, ErrEmptyFrame
	}
	if len(rgba) != s.cfg.Width*s.cfg.Height*4 {
		return nil, fmt.Errorf("encoder: frame size %d does not match %dx%d RGBA", len(rgba), s.cfg.Width, s.cfg.Height)
	}

	s.planes = rgbaToYUV420p(rgba, s.cfg.Width, s.cfg.Height, s.planes)

	img := &image.YCbCr{
		Y:              s.planes.Y,
		Cb:             s.planes.U,
		Cr:             s.planes.V,
		YStride:        s.cfg.Width,
		CStride:        s.cfg.Width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, s.cfg.Width, s.cfg.Height),
	}

	nalus, err := s.enc.EncodeYCbCr(img)
	if err != nil {
		return nil, fmt.Errorf("openh264: encode: %w", err)
	}

	return joinAnnexB(nalus), nil
}

// joinAnnexB concatenates start-code-delimited NAL units returned by the
// encoder into a single Annex-B byte stream, prepending a 4-byte start code
// to any unit that doesn't already carry one.
func joinAnnexB(nalus [][]byte) []byte {
	if len(nalus) == 0 {
		return nil
	}
	startCode := []byte{0, 0, 0, 1}
	total := 0
	for _, n := range nalus {
		total += len(startCode) + len(n)
	}
	out := make([]byte, 0, total)
	for _, n := range nalus {
		if hasStartCode(n) {
			out = append(out, n...)
			continue
		}
		out = append(out, startCode...)
		out = append(out, n...)
	}
	return out
}

func hasStartCode(n []byte) bool {
	if len(n) >= 4 && n[0] == 0 && n[1] == 0 && n[2] == 0 && n[3] == 1 {
		return true
	}
	if len(n) >= 3 && n[0] == 0 && n[1] == 0 && n[2] == 1 {
		return true
	}
	return false
}

func (s *softwareEncoder) SetBitrate(bitrate int) error {
	if bitrate <= 0 {
		return ErrInvalidBitrate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.SetBitrate(bitrate); err != nil {
		return fmt.Errorf("openh264: set bitrate: %w", err)
	}
	s.cfg.Bitrate = bitrate
	return nil
}

func (s *softwareEncoder) SetFPS(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.FPS = fps
	return nil
}

func (s *softwareEncoder) SetDimensions(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width == s.cfg.Width && height == s.cfg.Height {
		return nil
	}
	enc, err := openh264.NewEncoder(width, height, s.cfg.Bitrate, s.cfg.FPS)
	if err != nil {
		return fmt.Errorf("openh264: resize encoder: %w", err)
	}
	if s.enc != nil {
		s.enc.Close()
	}
	s.enc = enc
	s.cfg.Width, s.cfg.Height = width, height
	s.planes = planarYUV{}
	return nil
}

// ForceKeyframe requests an IDR on the next Encode call.
func (s *softwareEncoder) ForceKeyframe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.ForceIntraFrame()
}

// Flush drops any buffered reference state, equivalent to forcing a
// keyframe for this backend.
func (s *softwareEncoder) Flush() error {
	return s.ForceKeyframe()
}

func (s *softwareEncoder) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc == nil {
		return nil
	}
	s.enc.Close()
	s.enc = nil
	return nil
}

func (s *softwareEncoder) Name() string { return "software-openh264" }

func (s *softwareEncoder) IsHardware() bool { return false }

func (s *softwareEncoder) IsPlaceholder() bool { return false }
