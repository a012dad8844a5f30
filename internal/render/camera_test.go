package render

import (
	"math"
	"testing"
)

func TestCamera_RotateClampsElevation(t *testing.T) {
	c := DefaultCamera()
	c.Rotate(0, 500)
	if c.Elevation != 89 {
		t.Errorf("elevation = %v, want 89", c.Elevation)
	}
	if c.Azimuth != 45 {
		t.Errorf("azimuth = %v, want unchanged 45 (dx=0)", c.Azimuth)
	}
}

func TestCamera_RotateClampsNegativeElevation(t *testing.T) {
	c := DefaultCamera()
	c.Rotate(0, -500)
	if c.Elevation != -89 {
		t.Errorf("elevation = %v, want -89", c.Elevation)
	}
}

func TestCamera_ZoomClampsDistance(t *testing.T) {
	c := DefaultCamera()
	for i := 0; i < 100; i++ {
		c.Zoom(10)
	}
	if c.Distance != 1 {
		t.Errorf("distance = %v, want clamped to 1", c.Distance)
	}

	c = DefaultCamera()
	for i := 0; i < 100; i++ {
		c.Zoom(-10)
	}
	if c.Distance != 20 {
		t.Errorf("distance = %v, want clamped to 20", c.Distance)
	}
}

func TestCamera_RotateZoomSequenceStaysInBounds(t *testing.T) {
	c := DefaultCamera()
	deltas := []struct{ dx, dy, zoom float64 }{
		{10, 1000, 5}, {-20, -2000, -8}, {5, 50, 0.5}, {0, 0, -20},
	}
	for _, d := range deltas {
		c.Rotate(d.dx, d.dy)
		c.Zoom(d.zoom)
		if c.Elevation < -89 || c.Elevation > 89 {
			t.Fatalf("elevation out of bounds: %v", c.Elevation)
		}
		if c.Distance < 1 || c.Distance > 20 {
			t.Fatalf("distance out of bounds: %v", c.Distance)
		}
	}
}

func TestCamera_ResetRestoresDefaults(t *testing.T) {
	c := DefaultCamera()
	c.Rotate(100, 100)
	c.Zoom(5)
	c.Pan(50, 50)
	c.Reset()
	if c != DefaultCamera() {
		t.Errorf("Reset() = %+v, want %+v", c, DefaultCamera())
	}
}

func TestCamera_SetCameraLastWriterWins(t *testing.T) {
	c := DefaultCamera()
	c.SetCamera(10, 20, 3, Vec3{X: 1, Y: 2, Z: 3}, 60)
	c.SetCamera(99, -40, 15, Vec3{X: -1, Y: -2, Z: -3}, 70)

	want := Camera{Azimuth: 99, Elevation: -40, Distance: 15, FocalPoint: Vec3{X: -1, Y: -2, Z: -3}, FOV: 70}
	if c != want {
		t.Errorf("SetCamera sequence = %+v, want %+v", c, want)
	}
}

func TestCamera_PanScalesWithDistance(t *testing.T) {
	c := DefaultCamera()
	c.Distance = 10
	c.Pan(100, 0)
	wantX := -100 * (10 * 0.002)
	if math.Abs(c.FocalPoint.X-wantX) > 1e-9 {
		t.Errorf("FocalPoint.X = %v, want %v", c.FocalPoint.X, wantX)
	}
}

func TestCameraState_ReadApply(t *testing.T) {
	s := NewCameraState()
	if got := s.Read(); got != DefaultCamera() {
		t.Errorf("initial state = %+v, want default", got)
	}
	s.Apply(func(c *Camera) { c.Rotate(10, 10) })
	got := s.Read()
	if got.Azimuth != 50 {
		t.Errorf("azimuth after rotate = %v, want 50", got.Azimuth)
	}
}
