// Package pipeline drives a FrameProducer/VideoEncoder pair at a fixed
// frame rate and hands encoded samples to a sample sink, grounded on
// _examples/LanternOps-breeze/agent/internal/remote/desktop/session_capture.go's
// captureLoopTicker. There's no DXGI tight-loop mode — that's Windows-only
// and has no recipient platform in this spec.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/cloudomate/streamio/internal/desktop"
	"github.com/cloudomate/streamio/internal/logging"
)

// SampleSink is the thing encoded video units are written to — rtcsession.Session
// in production, a fake in tests.
type SampleSink interface {
	WriteVideoSample(data []byte, duration time.Duration) error
}

// frameDiffer is the subset of desktop's exported frame-differ surface the
// pipeline needs.
type frameDiffer interface {
	HasChanged(pix []byte) bool
	Reset()
	Stats() (total, skipped uint64)
}

// MediaPipeline ticks a FrameProducer at a fixed rate, skips encoding
// pixel-identical frames, and forwards encoded units to a SampleSink. No
// frame queue anywhere: a dropped encode just slips the next tick,
// matching spec.md §4.3's "dropped frames manifest as slipped frame times".
type MediaPipeline struct {
	producer desktop.FrameProducer
	encoder  *desktop.VideoEncoder
	sink     SampleSink
	differ   frameDiffer
	fps      int

	onError func(error)
}

// New constructs a pipeline. fps must be > 0.
func New(producer desktop.FrameProducer, encoder *desktop.VideoEncoder, sink SampleSink, fps int) *MediaPipeline {
	return &MediaPipeline{
		producer: producer,
		encoder:  encoder,
		sink:     sink,
		differ:   desktop.NewFrameDiffer(),
		fps:      fps,
	}
}

// OnError registers a callback invoked once, the first time the producer or
// encoder returns a terminal error; Run then stops the pipeline.
func (p *MediaPipeline) OnError(fn func(error)) {
	p.onError = fn
}

// Run drives the ticker loop until ctx is done. It forces a keyframe before
// the first tick so the viewer doesn't wait a full GOP for the initial frame.
func (p *MediaPipeline) Run(ctx context.Context) {
	_ = p.encoder.ForceKeyframe()

	frameDuration := time.Second / time.Duration(p.fps)
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	log := logging.L("pipeline")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.tick(ctx); err != nil {
				log.Warn("pipeline tick failed, stopping", "error", err)
				if p.onError != nil {
					p.onError(err)
				}
				return
			}
		}
	}
}

func (p *MediaPipeline) tick(ctx context.Context) error {
	frame, err := p.producer.NextFrame(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if frame == nil {
		return nil
	}

	if !p.differ.HasChanged(frame.Pix) {
		return nil
	}

	encoded, err := p.encoder.Encode(frame.Pix)
	if err != nil {
		return err
	}
	if len(encoded) == 0 {
		return nil
	}

	duration := time.Second / time.Duration(p.fps)
	return p.sink.WriteVideoSample(encoded, duration)
}

// FlushOnInteraction drops the differ's stored hash and forces a keyframe,
// grounded on the teacher's mouse-down "clickFlush" behavior: the viewer
// sees the click result immediately instead of a stale cached frame.
func (p *MediaPipeline) FlushOnInteraction() {
	p.differ.Reset()
	p.encoder.Flush()
}

// Stats returns the underlying frame differ's (total, skipped) counters.
func (p *MediaPipeline) Stats() (total, skipped uint64) {
	return p.differ.Stats()
}
