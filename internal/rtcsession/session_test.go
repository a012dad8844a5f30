package rtcsession

import (
	"strings"
	"testing"

	"github.com/cloudomate/streamio/internal/signaling"
)

func TestNew_CreatesVideoTrack(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.videoTrack == nil {
		t.Fatal("expected a video track")
	}
	if s.audioTrack != nil {
		t.Fatal("expected no audio track when EnableAudio is false")
	}
}

func TestNew_EnableAudioAddsTrack(t *testing.T) {
	s, err := New(Config{EnableAudio: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.audioTrack == nil {
		t.Fatal("expected an audio track when EnableAudio is true")
	}
}

func TestCreateOffer_ProducesSDP(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	sdp, err := s.CreateOffer()
	if err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if !strings.Contains(sdp, "v=0") {
		t.Errorf("offer SDP missing v=0 line: %q", sdp)
	}
}

func TestHandleCandidate_BuffersBeforeRemoteDescriptionSet(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	mid := "0"
	idx := uint16(0)
	err = s.HandleCandidate(signaling.Message{
		Type:          "ice",
		Candidate:     "candidate:1 1 UDP 1 127.0.0.1 1234 typ host",
		SDPMid:        &mid,
		SDPMLineIndex: &idx,
	})
	if err != nil {
		t.Fatalf("HandleCandidate: %v", err)
	}

	s.mu.Lock()
	n := len(s.candQueue)
	remoteSet := s.remoteSet
	s.mu.Unlock()

	if remoteSet {
		t.Fatal("remoteSet should still be false before HandleAnswer")
	}
	if n != 1 {
		t.Fatalf("candQueue len = %d, want 1", n)
	}
}

func TestDefaultICEServers_NonEmpty(t *testing.T) {
	servers := defaultICEServers()
	if len(servers) == 0 {
		t.Fatal("expected a default STUN server")
	}
}
