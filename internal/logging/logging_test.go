package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "debug", &buf)

	L("test-component").Info("hello", "foo", "bar")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON line, got %q: %v", buf.String(), err)
	}
	if entry[KeyComponent] != "test-component" {
		t.Errorf("component = %v, want test-component", entry[KeyComponent])
	}
	if entry["foo"] != "bar" {
		t.Errorf("foo = %v, want bar", entry["foo"])
	}
}

func TestInitTextFormatDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("text", "", &buf)

	L("quiet").Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("debug line leaked at info level: %q", buf.String())
	}

	L("quiet").Info("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("info line missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]bool{"debug": true, "DEBUG": true, "warn": true, "warning": true, "error": true, "info": true, "": true, "bogus": true}
	for in := range cases {
		_ = parseLevel(in) // must not panic for any input
	}
}
