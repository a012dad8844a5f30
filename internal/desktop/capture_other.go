//go:build !linux

package desktop

import "fmt"

// newPlatformCapturer has no backend outside Linux in this build: the spec's
// OS-capture variant targets X11/PipeWire specifically (§4.1), and no macOS
// or Windows capture library appears anywhere in the reference pack.
func newPlatformCapturer(displayIndex int, display string) (FrameProducer, error) {
	return nil, fmt.Errorf("%w: no capture backend for this platform", ErrNoCaptureSource)
}
