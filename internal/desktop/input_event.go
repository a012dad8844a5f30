package desktop

// Modifiers reports the state of the four modifier keys accompanying a
// key_down/key_up event.
type Modifiers struct {
	Shift bool `json:"shift"`
	Ctrl  bool `json:"ctrl"`
	Alt   bool `json:"alt"`
	Meta  bool `json:"meta"`
}

// Vec3 is a 3-component point or vector, used by the renderer variant's
// focal_point field.
type Vec3 struct {
	X, Y, Z float64
}

// InputEvent is the tagged union the Signaling Transport decodes inbound
// messages into. The screen-capture and renderer variants recognize
// disjoint subsets of Type; fields unused by a given Type are simply zero.
type InputEvent struct {
	Type string `json:"type"`

	// screen-capture variant: mouse_down/up, mouse_move, scroll, key_down/up
	Button    int       `json:"button,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`
	DX        float64   `json:"dx,omitempty"`
	DY        float64   `json:"dy,omitempty"`
	Key       string    `json:"key,omitempty"`
	Code      string    `json:"code,omitempty"`
	Modifiers Modifiers `json:"modifiers,omitempty"`

	// renderer variant: rotate, zoom, pan, reset, set_camera, load_horizon
	Delta      float64 `json:"delta,omitempty"`
	Azimuth    float64 `json:"azimuth,omitempty"`
	Elevation  float64 `json:"elevation,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
	FocalPoint Vec3    `json:"focal_point,omitempty"`
	FOV        float64 `json:"fov,omitempty"`
	URL        string  `json:"url,omitempty"`
}

// IsInputEvent reports whether Type names a recognized input-event tag, as
// opposed to a signaling tag (offer/answer/ice). Used by the Signaling
// Transport's try-signaling-then-input dispatch order.
func (e InputEvent) IsInputEvent() bool {
	switch e.Type {
	case "mouse_down", "mouse_up", "mouse_move", "scroll", "key_down", "key_up",
		"rotate", "zoom", "pan", "reset", "set_camera", "load_horizon":
		return true
	default:
		return false
	}
}

// InputDispatcher unifies the screen-capture (OS input replay) and renderer
// (camera mutation) variants behind one interface, per spec.md §9's open
// question. Enqueue never blocks the caller on OS/GPU work; each
// implementation drains its own dedicated worker.
type InputDispatcher interface {
	Enqueue(event InputEvent)
	Close()
}
