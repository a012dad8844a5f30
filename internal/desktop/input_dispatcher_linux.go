//go:build linux

package desktop

import (
	"fmt"
	"runtime"

	"github.com/bendahl/uinput"

	"github.com/cloudomate/streamio/internal/logging"
)

// uinputDispatcher replays screen-capture-variant input events against a
// uinput keyboard/mouse/touchpad device triple. uinput handles are not
// transferable across threads in any meaningful Send sense once device
// nodes are open on a goroutine's OS thread, so, per spec.md §4.6/§9, all
// three devices are constructed on — and exclusively driven from — one
// dedicated OS thread; Enqueue only ever pushes onto a channel.
type uinputDispatcher struct {
	events chan InputEvent
	done   chan struct{}
}

// NewUinputDispatcher spawns the worker thread and blocks until the uinput
// devices are open (or construction fails), so a failed dispatcher never
// looks alive to the caller. width/height size the touchpad's absolute
// coordinate range to the captured screen.
func NewUinputDispatcher(width, height int) (InputDispatcher, error) {
	d := &uinputDispatcher{
		events: make(chan InputEvent, 256),
		done:   make(chan struct{}),
	}

	ready := make(chan error, 1)
	go d.run(width, height, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return d, nil
}

func (d *uinputDispatcher) Enqueue(event InputEvent) {
	select {
	case d.events <- event:
	case <-d.done:
	}
}

func (d *uinputDispatcher) Close() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

// run owns the uinput handles for its entire lifetime; it never hands them
// to another goroutine.
func (d *uinputDispatcher) run(width, height int, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.L("input")

	keyboard, err := uinput.CreateKeyboard("/dev/uinput", []byte("streamio-keyboard"))
	if err != nil {
		ready <- fmt.Errorf("create virtual keyboard: %w", err)
		return
	}
	defer keyboard.Close()

	mouse, err := uinput.CreateMouse("/dev/uinput", []byte("streamio-mouse"))
	if err != nil {
		ready <- fmt.Errorf("create virtual mouse: %w", err)
		return
	}
	defer mouse.Close()

	// uinput's relative Mouse can't do absolute positioning; a touchpad
	// device is the documented workaround for mouse_move's absolute (x,y).
	touch, err := uinput.CreateTouchPad("/dev/uinput", []byte("streamio-touchpad"),
		0, int32(width), 0, int32(height))
	if err != nil {
		ready <- fmt.Errorf("create virtual touchpad: %w", err)
		return
	}
	defer touch.Close()

	ready <- nil

	for {
		select {
		case <-d.done:
			return
		case evt := <-d.events:
			if err := applyInputEvent(keyboard, mouse, touch, evt); err != nil {
				log.Warn("failed to apply input event", "type", evt.Type, "error", err)
			}
		}
	}
}

func applyInputEvent(keyboard uinput.Keyboard, mouse uinput.Mouse, touch uinput.TouchPad, evt InputEvent) error {
	switch evt.Type {
	case "mouse_move":
		return touch.MoveTo(int32(evt.X), int32(evt.Y))

	case "mouse_down":
		if err := touch.MoveTo(int32(evt.X), int32(evt.Y)); err != nil {
			return err
		}
		return pressButton(mouse, evt.Button)

	case "mouse_up":
		if err := touch.MoveTo(int32(evt.X), int32(evt.Y)); err != nil {
			return err
		}
		return releaseButton(mouse, evt.Button)

	case "scroll":
		notches := scrollNotches(evt.DY)
		if notches == 0 {
			return nil
		}
		return mouse.Wheel(false, int32(notches))

	case "key_down":
		return applyKeyDown(keyboard, evt)

	case "key_up":
		return nil // releases are implicit in key_down's click

	default:
		return nil
	}
}

func pressButton(mouse uinput.Mouse, button int) error {
	switch resolveButton(button) {
	case buttonMiddle:
		return mouse.MiddlePress()
	case buttonRight:
		return mouse.RightPress()
	default:
		return mouse.LeftPress()
	}
}

func releaseButton(mouse uinput.Mouse, button int) error {
	switch resolveButton(button) {
	case buttonMiddle:
		return mouse.MiddleRelease()
	case buttonRight:
		return mouse.RightRelease()
	default:
		return mouse.LeftRelease()
	}
}

// applyKeyDown implements spec.md §4.6's printable-character-vs-named-key
// branch and the meta→ctrl→alt→shift modifier press/release order.
func applyKeyDown(keyboard uinput.Keyboard, evt InputEvent) error {
	textRune, lookupKey, ok := resolveKeyCode(evt)
	if !ok {
		return fmt.Errorf("no key mapping for %q", evt.Key)
	}

	if textRune != 0 {
		entry := printableKeys[textRune]
		return clickKey(keyboard, entry.code)
	}

	if entry, isNamed := namedKeys[lookupKey]; isNamed {
		pressModifiers(keyboard, evt.Modifiers)
		err := clickKey(keyboard, entry)
		releaseModifiers(keyboard, evt.Modifiers)
		return err
	}

	entry := printableKeys[[]rune(lookupKey)[0]]
	pressModifiers(keyboard, evt.Modifiers)
	err := clickKey(keyboard, entry.code)
	releaseModifiers(keyboard, evt.Modifiers)
	return err
}

func clickKey(keyboard uinput.Keyboard, code int) error {
	if err := keyboard.KeyDown(code); err != nil {
		return err
	}
	return keyboard.KeyUp(code)
}

// pressModifiers presses held modifiers in meta → ctrl → alt → shift order.
func pressModifiers(keyboard uinput.Keyboard, m Modifiers) {
	if m.Meta {
		keyboard.KeyDown(uinput.KeyLeftmeta)
	}
	if m.Ctrl {
		keyboard.KeyDown(uinput.KeyLeftctrl)
	}
	if m.Alt {
		keyboard.KeyDown(uinput.KeyLeftalt)
	}
	if m.Shift {
		keyboard.KeyDown(uinput.KeyLeftshift)
	}
}

// releaseModifiers releases in the reverse order: shift → alt → ctrl → meta.
func releaseModifiers(keyboard uinput.Keyboard, m Modifiers) {
	if m.Shift {
		keyboard.KeyUp(uinput.KeyLeftshift)
	}
	if m.Alt {
		keyboard.KeyUp(uinput.KeyLeftalt)
	}
	if m.Ctrl {
		keyboard.KeyUp(uinput.KeyLeftctrl)
	}
	if m.Meta {
		keyboard.KeyUp(uinput.KeyLeftmeta)
	}
}

var _ InputDispatcher = (*uinputDispatcher)(nil)
