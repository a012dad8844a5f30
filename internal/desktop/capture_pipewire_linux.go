//go:build linux

package desktop

import "fmt"

// newPipewireStub is the fallback source when DISPLAY is unset on Linux.
// Real PipeWire access needs libpipewire cgo bindings that appear nowhere in
// the reference pack, so this stub reports a clear, typed failure instead of
// silently producing no frames; see DESIGN.md.
func newPipewireStub() (FrameProducer, error) {
	return nil, fmt.Errorf("%w: PipeWire capture requires libpipewire bindings not available in this build", ErrNoCaptureSource)
}
