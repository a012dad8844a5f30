package desktop

import (
	"hash/crc32"
	"sync"
	"sync/atomic"
)

// frameDiffer detects unchanged frames via CRC32 hash of raw pixel data, so
// the media pipeline can skip encoding (and therefore skip sending) a frame
// that's pixel-identical to the last one forwarded.
type frameDiffer struct {
	mu          sync.Mutex
	lastHash    uint32
	hasLastHash bool
	skipped     atomic.Uint64
	total       atomic.Uint64
}

func newFrameDiffer() *frameDiffer {
	return &frameDiffer{}
}

// NewFrameDiffer constructs a frame differ for use by the media pipeline.
func NewFrameDiffer() *frameDiffer {
	return newFrameDiffer()
}

// HasChanged computes CRC32 of the Pix slice and returns true if it differs
// from the last frame passed in. Returns true on the first call.
func (d *frameDiffer) HasChanged(pix []byte) bool {
	d.total.Add(1)
	h := crc32.ChecksumIEEE(pix)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasLastHash && h == d.lastHash {
		d.skipped.Add(1)
		return false
	}
	d.lastHash = h
	d.hasLastHash = true
	return true
}

// Reset clears the stored hash, forcing the next frame to count as changed.
// Used after a resolution change or a keyframe force, where the pipeline
// must not skip a frame that happens to hash-match stale state.
func (d *frameDiffer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hasLastHash = false
}

// Stats returns (total frames checked, frames skipped).
func (d *frameDiffer) Stats() (total, skipped uint64) {
	return d.total.Load(), d.skipped.Load()
}
