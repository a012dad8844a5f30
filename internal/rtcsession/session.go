// Package rtcsession wraps a single pion WebRTC PeerConnection: server-
// originated offer, trickle ICE, H.264 (and optional Opus) media tracks,
// and RTCP-driven keyframe forcing. Grounded on
// _examples/LanternOps-breeze/agent/internal/remote/desktop/webrtc.go, with
// the offer/answer direction inverted per spec.md (server always offers).
package rtcsession

import (
	"fmt"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"

	"github.com/cloudomate/streamio/internal/logging"
	"github.com/cloudomate/streamio/internal/signaling"
)

const (
	videoClockRate = 90000
	audioClockRate = 48000
	opusChannels   = 2

	keyframeRateLimit = 500 * time.Millisecond
	maxCandidateQueue = 64
)

// ForceKeyframer is implemented by the video encoder the pipeline drives;
// the RTCP PLI/FIR drain goroutine calls it directly, same wiring as the
// teacher's session.encoder.ForceKeyframe().
type ForceKeyframer interface {
	ForceKeyframe() error
}

// Session owns one PeerConnection for the lifetime of a WebSocket
// connection. EnableAudio controls whether an Opus audio track and inbound
// audio handler are wired; the spec's screen-capture variant may enable it,
// the renderer variant never does.
type Session struct {
	pc         *webrtc.PeerConnection
	videoTrack *webrtc.TrackLocalStaticSample
	audioTrack *webrtc.TrackLocalStaticSample

	onStateChange func(webrtc.PeerConnectionState)

	mu         sync.Mutex
	remoteSet  bool
	candQueue  []webrtc.ICECandidateInit
	keyframer  ForceKeyframer
	lastKF     time.Time
}

// Config configures a new Session.
type Config struct {
	EnableAudio bool
	// ICEServers defaults to a single public STUN server when empty, matching
	// the teacher's parseICEServers fallback.
	ICEServers []webrtc.ICEServer
}

func defaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{{URLs: []string{"stun:stun.l.google.com:19302"}}}
}

// New constructs a PeerConnection, its media tracks, and wires the RTCP
// keyframe-forcing drain goroutine. The returned Session has no remote
// description yet; call CreateOffer to start signaling.
func New(cfg Config) (*Session, error) {
	iceServers := cfg.ICEServers
	if len(iceServers) == 0 {
		iceServers = defaultICEServers()
	}

	settingEngine := webrtc.SettingEngine{}
	settingEngine.SetBundlePolicy(webrtc.BundlePolicyMaxBundle)

	mediaEngine := &webrtc.MediaEngine{}
	if err := mediaEngine.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register default codecs: %w", err)
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(mediaEngine), webrtc.WithSettingEngine(settingEngine))

	pc, err := api.NewPeerConnection(webrtc.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	s := &Session{pc: pc}

	videoTrack, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeH264,
			ClockRate:   videoClockRate,
			SDPFmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=4d001f",
		},
		"video", "streamio",
	)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("create video track: %w", err)
	}
	s.videoTrack = videoTrack

	sender, err := pc.AddTrack(videoTrack)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("add video track: %w", err)
	}
	go s.drainRTCP(sender)

	if cfg.EnableAudio {
		audioTrack, err := webrtc.NewTrackLocalStaticSample(
			webrtc.RTPCodecCapability{
				MimeType:  webrtc.MimeTypeOpus,
				ClockRate: audioClockRate,
				Channels:  opusChannels,
			},
			"audio", "streamio",
		)
		if err != nil {
			logging.L("rtcsession").Warn("failed to create audio track", "error", err)
		} else if _, err := pc.AddTrack(audioTrack); err != nil {
			logging.L("rtcsession").Warn("failed to add audio track", "error", err)
		} else {
			s.audioTrack = audioTrack
		}

		// Inbound audio (e.g. microphone from the browser) is accepted and
		// logged but not played back: no platform audio sink library appears
		// anywhere in the reference pack, so this is a deliberately dropped
		// feature — see DESIGN.md.
		pc.OnTrack(func(remote *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
			logging.L("rtcsession").Info("inbound remote track received, discarding",
				"kind", remote.Kind().String(), "id", remote.ID())
			buf := make([]byte, 1500)
			for {
				if _, _, err := remote.Read(buf); err != nil {
					return
				}
			}
		})
	}

	return s, nil
}

// SetForceKeyframer wires the video encoder the RTCP PLI/FIR drain
// goroutine should force a keyframe on.
func (s *Session) SetForceKeyframer(k ForceKeyframer) {
	s.mu.Lock()
	s.keyframer = k
	s.mu.Unlock()
}

// OnConnectionStateChange registers the callback invoked on every
// PeerConnectionState transition.
func (s *Session) OnConnectionStateChange(fn func(webrtc.PeerConnectionState)) {
	s.onStateChange = fn
	s.pc.OnConnectionStateChange(fn)
}

// OnICECandidate forwards each locally gathered candidate as a
// signaling.Message over send, implementing trickle ICE — the server never
// waits on GatheringCompletePromise (the teacher's non-trickle flow).
func (s *Session) OnICECandidate(send func(signaling.Message)) {
	s.pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		init := c.ToJSON()
		send(signaling.Message{
			Type:          "ice",
			Candidate:     init.Candidate,
			SDPMid:        init.SDPMid,
			SDPMLineIndex: init.SDPMLineIndex,
		})
	})
}

// CreateOffer generates a local offer and sets it as the local description,
// returning its SDP. The server always originates the offer per spec.md.
func (s *Session) CreateOffer() (string, error) {
	offer, err := s.pc.CreateOffer(nil)
	if err != nil {
		return "", fmt.Errorf("create offer: %w", err)
	}
	if err := s.pc.SetLocalDescription(offer); err != nil {
		return "", fmt.Errorf("set local description: %w", err)
	}
	return offer.SDP, nil
}

// HandleAnswer installs the browser's answer as the remote description and
// flushes any ICE candidates buffered while it was unset.
func (s *Session) HandleAnswer(sdp string) error {
	if err := s.pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  sdp,
	}); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	s.flushCandidateQueue()
	return nil
}

// HandleCandidate either applies an ICE candidate immediately (if the
// remote description is already set) or buffers it; at most
// maxCandidateQueue candidates are buffered and later ones are dropped.
// Grounded on
// n0remac's sfu.go candQueue/flush-on-remote-description pattern — the
// teacher's own client-offer flow never needs this since it never receives
// early candidates before its remote description is set.
func (s *Session) HandleCandidate(msg signaling.Message) error {
	init := webrtc.ICECandidateInit{
		Candidate:     msg.Candidate,
		SDPMid:        msg.SDPMid,
		SDPMLineIndex: msg.SDPMLineIndex,
	}

	s.mu.Lock()
	if !s.remoteSet {
		if len(s.candQueue) < maxCandidateQueue {
			s.candQueue = append(s.candQueue, init)
		}
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.pc.AddICECandidate(init)
}

func (s *Session) flushCandidateQueue() {
	s.mu.Lock()
	s.remoteSet = true
	queued := s.candQueue
	s.candQueue = nil
	s.mu.Unlock()

	for _, c := range queued {
		if err := s.pc.AddICECandidate(c); err != nil {
			logging.L("rtcsession").Warn("failed to apply buffered ICE candidate", "error", err)
		}
	}
}

// WriteVideoSample pushes one encoded H.264 access unit to the video track.
func (s *Session) WriteVideoSample(data []byte, duration time.Duration) error {
	return s.videoTrack.WriteSample(media.Sample{Data: data, Duration: duration})
}

// WriteAudioSample pushes one encoded Opus frame to the audio track, if
// audio is enabled.
func (s *Session) WriteAudioSample(data []byte, duration time.Duration) error {
	if s.audioTrack == nil {
		return fmt.Errorf("rtcsession: audio track not enabled")
	}
	return s.audioTrack.WriteSample(media.Sample{Data: data, Duration: duration})
}

// Close tears down the underlying PeerConnection.
func (s *Session) Close() error {
	return s.pc.Close()
}

// drainRTCP reads RTCP packets off the video sender so the SRTP session
// never blocks on backpressure, forcing a keyframe on PLI/FIR, rate-limited
// exactly as the teacher's session_webrtc.go goroutine does.
func (s *Session) drainRTCP(sender *webrtc.RTPSender) {
	buf := make([]byte, 1500)
	for {
		n, _, err := sender.Read(buf)
		if err != nil {
			return
		}
		pkts, err := rtcp.Unmarshal(buf[:n])
		if err != nil {
			continue
		}
		for _, p := range pkts {
			switch p.(type) {
			case *rtcp.PictureLossIndication, *rtcp.FullIntraRequest:
				s.mu.Lock()
				if time.Since(s.lastKF) < keyframeRateLimit {
					s.mu.Unlock()
					continue
				}
				s.lastKF = time.Now()
				kf := s.keyframer
				s.mu.Unlock()
				if kf != nil {
					_ = kf.ForceKeyframe()
				}
			}
		}
	}
}
