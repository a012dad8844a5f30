//go:build linux

package desktop

import (
	"math"
	"unicode"
)

// mouseButton is the resolved button slot for a mouse_down/up event. Codes
// map {0: left, 1: middle, 2: right}; any other code — including negative
// or >2 — maps to left per spec.md §4.6.
type mouseButton int

const (
	buttonLeft mouseButton = iota
	buttonMiddle
	buttonRight
)

func resolveButton(code int) mouseButton {
	switch code {
	case 1:
		return buttonMiddle
	case 2:
		return buttonRight
	default:
		return buttonLeft
	}
}

// scrollNotches implements spec.md §4.6's scroll rounding rule: notches =
// round(-dy/10), with the "positive dy means scroll down" sign convention.
// A rounded amount of zero is the caller's signal to drop the event.
func scrollNotches(dy float64) int {
	return int(math.Round(-dy / 10))
}

// resolveKeyCode decides which evdev-independent key identifier a key_down
// event should inject, and whether it's the direct-text-injection path
// (single printable character, no modifiers) or the named/modifier path.
// It returns the rune to type directly (textRune != 0) or a named-key
// lookup key to resolve against namedKeys/printableKeys.
func resolveKeyCode(evt InputEvent) (textRune rune, lookupKey string, ok bool) {
	runes := []rune(evt.Key)
	noModifiers := !evt.Modifiers.Shift && !evt.Modifiers.Ctrl && !evt.Modifiers.Alt && !evt.Modifiers.Meta

	if len(runes) == 1 && noModifiers {
		if _, known := printableKeys[runes[0]]; known {
			return runes[0], "", true
		}
	}

	if _, known := namedKeys[evt.Key]; known {
		return 0, evt.Key, true
	}

	if len(runes) == 1 {
		if _, known := printableKeys[unicode.ToLower(runes[0])]; known {
			return 0, string(unicode.ToLower(runes[0])), true
		}
	}

	return 0, "", false
}
