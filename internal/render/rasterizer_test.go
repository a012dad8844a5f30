package render

import (
	"context"
	"testing"
)

func TestOffscreenRenderer_NextFrameSize(t *testing.T) {
	cam := NewCameraState()
	r := NewOffscreenRenderer(64, 48, cam)
	defer r.Close()

	frame, err := r.NextFrame(context.Background())
	if err != nil {
		t.Fatalf("NextFrame: %v", err)
	}
	if frame.Width != 64 || frame.Height != 48 {
		t.Fatalf("frame dims = %dx%d, want 64x48", frame.Width, frame.Height)
	}
	if len(frame.Pix) != 64*48*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(frame.Pix), 64*48*4)
	}
}

func TestOffscreenRenderer_ClosedProducesError(t *testing.T) {
	cam := NewCameraState()
	r := NewOffscreenRenderer(32, 32, cam)
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := r.NextFrame(context.Background()); err == nil {
		t.Fatal("expected error from NextFrame after Close")
	}
}

func TestPadRowsStripRoundTrip(t *testing.T) {
	width, height := 13, 5 // deliberately not a multiple of 64 pixels
	tight := make([]byte, width*height*4)
	for i := range tight {
		tight[i] = byte(i % 251)
	}

	padded := padRows(tight, width, height)
	rowBytes := width * 4
	paddedStride := (rowBytes + rowAlignment - 1) / rowAlignment * rowAlignment
	if len(padded) != paddedStride*height {
		t.Fatalf("padded len = %d, want %d", len(padded), paddedStride*height)
	}

	stripped := stripRowPadding(padded, width, height)
	if len(stripped) != len(tight) {
		t.Fatalf("stripped len = %d, want %d", len(stripped), len(tight))
	}
	for i := range tight {
		if stripped[i] != tight[i] {
			t.Fatalf("stripped[%d] = %d, want %d", i, stripped[i], tight[i])
		}
	}
}

func TestBuildSampleHorizon_DepthRange(t *testing.T) {
	m := buildSampleHorizon()
	if m.depthMin >= m.depthMax {
		t.Fatalf("depthMin=%v depthMax=%v, expected a nonzero range", m.depthMin, m.depthMax)
	}
	if len(m.vertices) != m.nx*m.ny {
		t.Fatalf("len(vertices) = %d, want %d", len(m.vertices), m.nx*m.ny)
	}
	if len(m.indices)%3 != 0 {
		t.Fatalf("len(indices) = %d, not a multiple of 3", len(m.indices))
	}
}
