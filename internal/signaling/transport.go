package signaling

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cloudomate/streamio/internal/desktop"
	"github.com/cloudomate/streamio/internal/logging"
)

// Upgrader is permissive unless ENVIRONMENT=production, grounded on
// n0remac-robot-webrtc's websocket.Upgrader CheckOrigin policy. Spec.md has
// no multi-client fan-out, so there's no Hub/room registration here — each
// session owns one Transport.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		if r.Header.Get("Origin") == "" {
			return true
		}
		return os.Getenv("ENVIRONMENT") != "production"
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Transport owns one WebSocket connection's read and write pumps. Outbound
// signaling messages queue on an unbounded FIFO (grounded on
// original_source's sig_tx/ws_forward_task), draining on a single writer
// goroutine so concurrent senders never race a gorilla/websocket.Conn write.
type Transport struct {
	conn    *websocket.Conn
	out     *unboundedQueue
	closeCh chan struct{}
}

// NewTransport wraps an already-upgraded connection.
func NewTransport(conn *websocket.Conn) *Transport {
	return &Transport{
		conn:    conn,
		out:     newUnboundedQueue(),
		closeCh: make(chan struct{}),
	}
}

// Send enqueues a signaling message for the write pump. Never blocks.
func (t *Transport) Send(msg Message) {
	t.out.Push(msg)
}

// Close shuts down both pumps and the underlying connection.
func (t *Transport) Close() error {
	select {
	case <-t.closeCh:
	default:
		close(t.closeCh)
	}
	t.out.Close()
	return t.conn.Close()
}

// WritePump drains the outbound queue until Close, writing each message as
// a JSON text frame with a periodic ping to keep intermediaries from
// reaping an idle connection.
func (t *Transport) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	msgs := make(chan Message)
	go func() {
		for {
			msg, ok := t.out.Pop()
			if !ok {
				close(msgs)
				return
			}
			select {
			case msgs <- msg:
			case <-t.closeCh:
				close(msgs)
				return
			}
		}
	}()

	for {
		select {
		case <-t.closeCh:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump reads inbound text frames and dispatches in
// signaling-then-input-then-ignore order, exactly as
// original_source/src/screen_server.rs's handle_websocket does. Blocks
// until the connection closes or errors.
func (t *Transport) ReadPump(onSignal func(Message), onInput func(desktop.InputEvent)) {
	log := logging.L("signaling")

	t.conn.SetReadDeadline(time.Now().Add(pongWait))
	t.conn.SetPongHandler(func(string) error {
		t.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var sig Message
		if err := json.Unmarshal(data, &sig); err == nil && sig.IsSignalingMessage() {
			onSignal(sig)
			continue
		}

		var evt desktop.InputEvent
		if err := json.Unmarshal(data, &evt); err == nil && evt.IsInputEvent() {
			onInput(evt)
			continue
		}

		log.Warn("unrecognized websocket message", "raw", string(data))
	}
}
