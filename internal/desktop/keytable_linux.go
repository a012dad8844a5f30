//go:build linux

package desktop

import "github.com/bendahl/uinput"

// namedKeys maps the wire "key" string (as sent by the browser's
// KeyboardEvent.key) to an evdev key code, for keys that aren't a single
// printable character. Grounded on helixml-helix's VKToEvdev table shape,
// restricted to the named keys spec.md §4.6 lists explicitly.
var namedKeys = map[string]int{
	"Enter":      uinput.KeyEnter,
	"Escape":     uinput.KeyEsc,
	"Backspace":  uinput.KeyBackspace,
	"Tab":        uinput.KeyTab,
	"Space":      uinput.KeySpace,
	"ArrowUp":    uinput.KeyUp,
	"ArrowDown":  uinput.KeyDown,
	"ArrowLeft":  uinput.KeyLeft,
	"ArrowRight": uinput.KeyRight,
	"Delete":     uinput.KeyDelete,
	"Home":       uinput.KeyHome,
	"End":        uinput.KeyEnd,
	"PageUp":     uinput.KeyPageup,
	"PageDown":   uinput.KeyPagedown,
	"CapsLock":   uinput.KeyCapslock,
	"F1":         uinput.KeyF1,
	"F2":         uinput.KeyF2,
	"F3":         uinput.KeyF3,
	"F4":         uinput.KeyF4,
	"F5":         uinput.KeyF5,
	"F6":         uinput.KeyF6,
	"F7":         uinput.KeyF7,
	"F8":         uinput.KeyF8,
	"F9":         uinput.KeyF9,
	"F10":        uinput.KeyF10,
	"F11":        uinput.KeyF11,
	"F12":        uinput.KeyF12,
}

// printableKeys maps a single printable rune to its evdev code. Shift state
// for uppercase letters and shifted symbols is never derived from the rune
// itself — it comes from the event's own Modifiers field, pressed and
// released around the click by pressModifiers/releaseModifiers. Covers the
// common ASCII set a key_down text-injection path needs; runes outside this
// table fall through to the "single Unicode code point" fallback, which this
// backend cannot express without an IME and is therefore dropped with an
// error log (see DESIGN.md).
var printableKeys = map[rune]struct{ code int }{
	'a': {uinput.KeyA}, 'b': {uinput.KeyB}, 'c': {uinput.KeyC},
	'd': {uinput.KeyD}, 'e': {uinput.KeyE}, 'f': {uinput.KeyF},
	'g': {uinput.KeyG}, 'h': {uinput.KeyH}, 'i': {uinput.KeyI},
	'j': {uinput.KeyJ}, 'k': {uinput.KeyK}, 'l': {uinput.KeyL},
	'm': {uinput.KeyM}, 'n': {uinput.KeyN}, 'o': {uinput.KeyO},
	'p': {uinput.KeyP}, 'q': {uinput.KeyQ}, 'r': {uinput.KeyR},
	's': {uinput.KeyS}, 't': {uinput.KeyT}, 'u': {uinput.KeyU},
	'v': {uinput.KeyV}, 'w': {uinput.KeyW}, 'x': {uinput.KeyX},
	'y': {uinput.KeyY}, 'z': {uinput.KeyZ},

	'A': {uinput.KeyA}, 'B': {uinput.KeyB}, 'C': {uinput.KeyC},
	'D': {uinput.KeyD}, 'E': {uinput.KeyE}, 'F': {uinput.KeyF},
	'G': {uinput.KeyG}, 'H': {uinput.KeyH}, 'I': {uinput.KeyI},
	'J': {uinput.KeyJ}, 'K': {uinput.KeyK}, 'L': {uinput.KeyL},
	'M': {uinput.KeyM}, 'N': {uinput.KeyN}, 'O': {uinput.KeyO},
	'P': {uinput.KeyP}, 'Q': {uinput.KeyQ}, 'R': {uinput.KeyR},
	'S': {uinput.KeyS}, 'T': {uinput.KeyT}, 'U': {uinput.KeyU},
	'V': {uinput.KeyV}, 'W': {uinput.KeyW}, 'X': {uinput.KeyX},
	'Y': {uinput.KeyY}, 'Z': {uinput.KeyZ},

	'0': {uinput.Key0}, '1': {uinput.Key1}, '2': {uinput.Key2},
	'3': {uinput.Key3}, '4': {uinput.Key4}, '5': {uinput.Key5},
	'6': {uinput.Key6}, '7': {uinput.Key7}, '8': {uinput.Key8},
	'9': {uinput.Key9},

	' ': {uinput.KeySpace}, '-': {uinput.KeyMinus}, '=': {uinput.KeyEqual},
	'[': {uinput.KeyLeftbrace}, ']': {uinput.KeyRightbrace},
	';': {uinput.KeySemicolon}, '\'': {uinput.KeyApostrophe},
	'`': {uinput.KeyGrave}, '\\': {uinput.KeyBackslash},
	',': {uinput.KeyComma}, '.': {uinput.KeyDot}, '/': {uinput.KeySlash},
}
