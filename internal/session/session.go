// Package session ties one WebSocket connection to its own WebRTC Session,
// Media Pipeline, Frame Producer, and Input Dispatcher for the whole
// connection's lifetime. Grounded on
// _examples/original_source/src/screen_server.rs's handle_websocket: create
// the producer/pipeline, offer after a settle delay, dispatch inbound
// messages signaling-then-input, tear everything down together on close.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"

	"github.com/cloudomate/streamio/internal/config"
	"github.com/cloudomate/streamio/internal/desktop"
	"github.com/cloudomate/streamio/internal/logging"
	"github.com/cloudomate/streamio/internal/pipeline"
	"github.com/cloudomate/streamio/internal/render"
	"github.com/cloudomate/streamio/internal/rtcsession"
	"github.com/cloudomate/streamio/internal/signaling"
)

// offerSettleDelay mirrors the original's 500ms sleep before create_offer:
// it gives the ws_forward_task and the ICE gathering a moment to settle
// before the first SDP round trip.
const offerSettleDelay = 500 * time.Millisecond

// Session owns every resource for one WebSocket connection: the frame
// producer (screen capture or offscreen renderer), the input dispatcher, the
// media pipeline, and the WebRTC peer connection. Close tears all of it down
// together, matching spec.md's cancellation section.
type Session struct {
	cfg       config.Config
	transport *signaling.Transport
	rtc       *rtcsession.Session
	pipe      *pipeline.MediaPipeline
	producer  desktop.FrameProducer
	dispatch  desktop.InputDispatcher
	encoder   *desktop.VideoEncoder

	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs a full session for one upgraded WebSocket connection,
// selecting the screen-capture or renderer variant per cfg.Variant.
func New(cfg config.Config, conn *websocket.Conn) (*Session, error) {
	log := logging.L("session")

	producer, dispatch, err := buildVariant(cfg)
	if err != nil {
		return nil, fmt.Errorf("build variant %q: %w", cfg.Variant, err)
	}

	encCfg := desktop.DefaultEncoderConfig()
	encCfg.Width, encCfg.Height = producer.Bounds()
	encCfg.FPS = cfg.FPS
	encoder, err := desktop.NewVideoEncoder(encCfg)
	if err != nil {
		producer.Close()
		dispatch.Close()
		return nil, fmt.Errorf("construct encoder: %w", err)
	}

	rtc, err := rtcsession.New(rtcsession.Config{EnableAudio: cfg.EnableAudio && cfg.Variant == config.VariantCapture})
	if err != nil {
		encoder.Close()
		producer.Close()
		dispatch.Close()
		return nil, fmt.Errorf("construct rtc session: %w", err)
	}
	rtc.SetForceKeyframer(encoder)

	transport := signaling.NewTransport(conn)
	rtc.OnICECandidate(transport.Send)
	rtc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Info("peer connection state changed", "state", state.String())
	})

	pipe := pipeline.New(producer, encoder, rtc, cfg.FPS)
	pipe.OnError(func(err error) {
		log.Warn("media pipeline stopped", "error", err)
	})

	s := &Session{
		cfg:       cfg,
		transport: transport,
		rtc:       rtc,
		pipe:      pipe,
		producer:  producer,
		dispatch:  dispatch,
		encoder:   encoder,
		done:      make(chan struct{}),
	}
	return s, nil
}

// Run drives the session until the WebSocket connection closes or Close is
// called: starts the media pipeline, the write pump, the delayed offer, and
// blocks on the read pump's signaling/input dispatch loop.
func (s *Session) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	log := logging.L("session")

	go s.pipe.Run(ctx)
	go s.transport.WritePump()

	go func() {
		select {
		case <-time.After(offerSettleDelay):
		case <-ctx.Done():
			return
		}
		sdp, err := s.rtc.CreateOffer()
		if err != nil {
			log.Error("failed to create offer", "error", err)
			return
		}
		s.transport.Send(signaling.Message{Type: "offer", SDP: sdp})
	}()

	s.transport.ReadPump(s.handleSignal, s.handleInput)

	s.Close()
}

func (s *Session) handleSignal(msg signaling.Message) {
	log := logging.L("session")
	switch msg.Type {
	case "answer":
		if err := s.rtc.HandleAnswer(msg.SDP); err != nil {
			log.Error("failed to handle answer", "error", err)
		}
	case "ice":
		if err := s.rtc.HandleCandidate(msg); err != nil {
			log.Warn("failed to handle ice candidate", "error", err)
		}
	default:
		log.Warn("unexpected signaling message from client", "type", msg.Type)
	}
}

func (s *Session) handleInput(evt desktop.InputEvent) {
	switch evt.Type {
	case "mouse_down", "key_down":
		// Flush immediately so the viewer sees the interaction's effect
		// without waiting on the next unchanged-frame skip window.
		s.pipe.FlushOnInteraction()
	}
	s.dispatch.Enqueue(evt)
}

// Close tears down every owned resource exactly once. Safe to call more
// than once and safe to call concurrently with Run.
func (s *Session) Close() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.dispatch.Close()
	_ = s.producer.Close()
	_ = s.encoder.Close()
	_ = s.rtc.Close()
	_ = s.transport.Close()
}

// buildVariant constructs the FrameProducer/InputDispatcher pair for the
// configured variant, per spec.md §12's Variant decision.
func buildVariant(cfg config.Config) (desktop.FrameProducer, desktop.InputDispatcher, error) {
	switch cfg.Variant {
	case config.VariantRenderer:
		camera := render.NewCameraState()
		producer := render.NewOffscreenRenderer(cfg.Width, cfg.Height, camera)
		dispatch := render.NewCameraDispatcher(camera)
		return producer, dispatch, nil
	default:
		producer, err := desktop.NewScreenCapturer(desktop.CaptureConfig{
			DisplayIndex: cfg.DisplayIndex,
			Display:      cfg.Display,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("construct screen capturer: %w", err)
		}
		w, h := producer.Bounds()
		dispatch, err := desktop.NewUinputDispatcher(w, h)
		if err != nil {
			producer.Close()
			return nil, nil, fmt.Errorf("construct input dispatcher: %w", err)
		}
		return producer, dispatch, nil
	}
}
