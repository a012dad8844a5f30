//go:build linux

package desktop

import "testing"

func TestResolveButton(t *testing.T) {
	cases := []struct {
		code int
		want mouseButton
	}{
		{0, buttonLeft},
		{1, buttonMiddle},
		{2, buttonRight},
		{3, buttonLeft},
		{-1, buttonLeft},
	}
	for _, c := range cases {
		if got := resolveButton(c.code); got != c.want {
			t.Errorf("resolveButton(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestScrollNotches(t *testing.T) {
	cases := []struct {
		dy   float64
		want int
	}{
		{0, 0},
		{4, 0},
		{-4, 0},
		{10, -1},
		{-10, 1},
		{25, -3},
		{-25, 3},
	}
	for _, c := range cases {
		if got := scrollNotches(c.dy); got != c.want {
			t.Errorf("scrollNotches(%v) = %d, want %d", c.dy, got, c.want)
		}
	}
}

func TestResolveKeyCode_PrintableNoModifiers(t *testing.T) {
	evt := InputEvent{Type: "key_down", Key: "a"}
	textRune, lookupKey, ok := resolveKeyCode(evt)
	if !ok {
		t.Fatal("expected resolution")
	}
	if textRune != 'a' || lookupKey != "" {
		t.Errorf("got textRune=%q lookupKey=%q, want direct rune 'a'", textRune, lookupKey)
	}
}

func TestResolveKeyCode_PrintableWithModifier(t *testing.T) {
	evt := InputEvent{Type: "key_down", Key: "A", Modifiers: Modifiers{Shift: true}}
	textRune, lookupKey, ok := resolveKeyCode(evt)
	if !ok {
		t.Fatal("expected resolution")
	}
	if textRune != 0 {
		t.Errorf("expected named path when modifiers held, got direct rune %q", textRune)
	}
	if lookupKey != "a" {
		t.Errorf("lookupKey = %q, want lowercase fallback %q", lookupKey, "a")
	}
}

func TestResolveKeyCode_Named(t *testing.T) {
	evt := InputEvent{Type: "key_down", Key: "Enter"}
	textRune, lookupKey, ok := resolveKeyCode(evt)
	if !ok {
		t.Fatal("expected resolution")
	}
	if textRune != 0 || lookupKey != "Enter" {
		t.Errorf("got textRune=%q lookupKey=%q, want named key Enter", textRune, lookupKey)
	}
}

func TestResolveKeyCode_Unknown(t *testing.T) {
	evt := InputEvent{Type: "key_down", Key: "F35"}
	_, _, ok := resolveKeyCode(evt)
	if ok {
		t.Fatal("expected no resolution for unmapped key")
	}
}

func TestInputEvent_IsInputEvent(t *testing.T) {
	cases := []struct {
		typ  string
		want bool
	}{
		{"mouse_down", true},
		{"rotate", true},
		{"load_horizon", true},
		{"offer", false},
		{"answer", false},
		{"ice", false},
		{"", false},
	}
	for _, c := range cases {
		got := InputEvent{Type: c.typ}.IsInputEvent()
		if got != c.want {
			t.Errorf("IsInputEvent(%q) = %v, want %v", c.typ, got, c.want)
		}
	}
}
