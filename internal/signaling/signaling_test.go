package signaling

import "testing"

func TestMessage_IsSignalingMessage(t *testing.T) {
	cases := []struct {
		typ  string
		want bool
	}{
		{"offer", true},
		{"answer", true},
		{"ice", true},
		{"mouse_down", false},
		{"rotate", false},
		{"", false},
	}
	for _, c := range cases {
		got := Message{Type: c.typ}.IsSignalingMessage()
		if got != c.want {
			t.Errorf("IsSignalingMessage(%q) = %v, want %v", c.typ, got, c.want)
		}
	}
}

func TestUnboundedQueue_FIFOOrder(t *testing.T) {
	q := newUnboundedQueue()
	q.Push(Message{Type: "offer", SDP: "a"})
	q.Push(Message{Type: "ice", Candidate: "b"})
	q.Push(Message{Type: "ice", Candidate: "c"})

	for _, want := range []string{"a", "b", "c"} {
		msg, ok := q.Pop()
		if !ok {
			t.Fatal("Pop() returned !ok before queue closed")
		}
		got := msg.SDP
		if got == "" {
			got = msg.Candidate
		}
		if got != want {
			t.Errorf("Pop() = %q, want %q", got, want)
		}
	}
}

func TestUnboundedQueue_PopAfterCloseDrainsThenFails(t *testing.T) {
	q := newUnboundedQueue()
	q.Push(Message{Type: "offer", SDP: "last"})
	q.Close()

	msg, ok := q.Pop()
	if !ok || msg.SDP != "last" {
		t.Fatalf("Pop() = %+v, %v; want the queued item first", msg, ok)
	}

	_, ok = q.Pop()
	if ok {
		t.Fatal("Pop() on an empty closed queue should return ok=false")
	}
}

func TestUnboundedQueue_PushAfterCloseIsNoop(t *testing.T) {
	q := newUnboundedQueue()
	q.Close()
	q.Push(Message{Type: "offer"})

	_, ok := q.Pop()
	if ok {
		t.Fatal("Push after Close should be discarded")
	}
}
