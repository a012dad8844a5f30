// Package render implements the GPU-renderer Frame Producer variant: a
// deterministic offscreen 3D renderer driven by an orbiting Camera, and the
// Input Dispatcher that mutates it.
package render

import (
	"math"
	"sync"
)

// Vec3 is a 3-component point or vector used by the camera and mesh.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3     { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3     { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64       { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Camera is the renderer variant's mutable view state: orbit angles around a
// focal point plus a field of view, mirroring
// original_source/src/renderer/mod.rs's Camera.
type Camera struct {
	Azimuth    float64 // degrees
	Elevation  float64 // degrees, clamped to [-89, 89]
	Distance   float64 // clamped to [1, 20]
	FocalPoint Vec3
	FOV        float64 // degrees
}

// DefaultCamera is the reset target: {45, 30, 5.0, (0,0,0), 45}.
func DefaultCamera() Camera {
	return Camera{Azimuth: 45, Elevation: 30, Distance: 5, FOV: 45}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rotate applies a drag delta: azimuth is unbounded, elevation clamps.
func (c *Camera) Rotate(dx, dy float64) {
	c.Azimuth += dx * 0.5
	c.Elevation = clampf(c.Elevation+dy*0.5, -89, 89)
}

// Zoom applies a wheel delta, clamping distance to [1, 20].
func (c *Camera) Zoom(delta float64) {
	c.Distance = clampf(c.Distance*(1-delta*0.1), 1, 20)
}

// Pan applies a middle-drag pan scaled by the current distance.
func (c *Camera) Pan(dx, dy float64) {
	s := c.Distance * 0.002
	c.FocalPoint.X -= dx * s
	c.FocalPoint.Y += dy * s
}

// Reset restores the default camera.
func (c *Camera) Reset() {
	*c = DefaultCamera()
}

// SetCamera overwrites every field verbatim — last-writer-wins, no
// reclamping, matching the original's direct field assignment.
func (c *Camera) SetCamera(azimuth, elevation, distance float64, focal Vec3, fov float64) {
	c.Azimuth = azimuth
	c.Elevation = elevation
	c.Distance = distance
	c.FocalPoint = focal
	c.FOV = fov
}

// Eye returns the camera's world-space position for the current orbit state.
func (c *Camera) Eye() Vec3 {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	offset := Vec3{
		X: c.Distance * math.Cos(el) * math.Sin(az),
		Y: c.Distance * math.Cos(el) * math.Cos(az),
		Z: c.Distance * math.Sin(el),
	}
	return c.FocalPoint.Add(offset)
}

// CameraState guards a Camera behind a readers-writer lock: the input
// dispatcher holds a writer briefly per event, the renderer holds a reader
// briefly per frame, per spec.md §5.
type CameraState struct {
	mu  sync.RWMutex
	cam Camera
}

// NewCameraState returns a CameraState initialized to DefaultCamera.
func NewCameraState() *CameraState {
	return &CameraState{cam: DefaultCamera()}
}

// Read returns a snapshot of the current camera.
func (s *CameraState) Read() Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

// Apply runs fn against the camera under a writer lock.
func (s *CameraState) Apply(fn func(*Camera)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cam)
}
