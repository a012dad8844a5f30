package render

import (
	"log/slog"

	"github.com/cloudomate/streamio/internal/desktop"
	"github.com/cloudomate/streamio/internal/logging"
)

// cameraDispatcher applies renderer-variant input events to a CameraState.
// There's no Send-hostile OS handle here the way uinput needs one, but it
// keeps the same dedicated-worker/channel-enqueue shape as the OS-capture
// dispatcher for symmetry with desktop.InputDispatcher (spec.md §9).
type cameraDispatcher struct {
	state  *CameraState
	events chan desktop.InputEvent
	done   chan struct{}
}

// NewCameraDispatcher spawns the worker goroutine that drains events into
// state and returns immediately.
func NewCameraDispatcher(state *CameraState) desktop.InputDispatcher {
	d := &cameraDispatcher{
		state:  state,
		events: make(chan desktop.InputEvent, 256),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *cameraDispatcher) Enqueue(event desktop.InputEvent) {
	select {
	case d.events <- event:
	case <-d.done:
	}
}

func (d *cameraDispatcher) Close() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

func (d *cameraDispatcher) run() {
	log := logging.L("render")
	for {
		select {
		case <-d.done:
			return
		case evt := <-d.events:
			d.apply(evt, log)
		}
	}
}

// apply implements spec.md §4.6's renderer-variant event semantics.
func (d *cameraDispatcher) apply(evt desktop.InputEvent, log *slog.Logger) {
	switch evt.Type {
	case "rotate":
		d.state.Apply(func(c *Camera) { c.Rotate(evt.DX, evt.DY) })
	case "zoom":
		d.state.Apply(func(c *Camera) { c.Zoom(evt.Delta) })
	case "pan":
		d.state.Apply(func(c *Camera) { c.Pan(evt.DX, evt.DY) })
	case "reset":
		d.state.Apply(func(c *Camera) { c.Reset() })
	case "set_camera":
		focal := Vec3{X: evt.FocalPoint.X, Y: evt.FocalPoint.Y, Z: evt.FocalPoint.Z}
		d.state.Apply(func(c *Camera) {
			c.SetCamera(evt.Azimuth, evt.Elevation, evt.Distance, focal, evt.FOV)
		})
	case "load_horizon":
		// Scene-content loading is out of scope; recognized but a no-op.
		log.Info("load_horizon requested, ignoring", "url", evt.URL)
	default:
		log.Debug("ignoring unrecognized renderer input", "type", evt.Type)
	}
}

var _ desktop.InputDispatcher = (*cameraDispatcher)(nil)
