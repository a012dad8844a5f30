package desktop

import "testing"

func TestFrameDiffer_FirstFrameAlwaysChanged(t *testing.T) {
	d := newFrameDiffer()
	if !d.HasChanged([]byte{1, 2, 3}) {
		t.Fatal("first frame must report changed")
	}
}

func TestFrameDiffer_IdenticalFrameSkipped(t *testing.T) {
	d := newFrameDiffer()
	pix := []byte{1, 2, 3, 4}
	d.HasChanged(pix)
	if d.HasChanged(pix) {
		t.Fatal("identical frame should not report changed")
	}
	total, skipped := d.Stats()
	if total != 2 || skipped != 1 {
		t.Fatalf("stats = (%d, %d), want (2, 1)", total, skipped)
	}
}

func TestFrameDiffer_ChangedFrameDetected(t *testing.T) {
	d := newFrameDiffer()
	d.HasChanged([]byte{1, 2, 3})
	if !d.HasChanged([]byte{1, 2, 4}) {
		t.Fatal("differing pixel data should report changed")
	}
}

func TestFrameDiffer_ResetForcesChanged(t *testing.T) {
	d := newFrameDiffer()
	pix := []byte{9, 9, 9}
	d.HasChanged(pix)
	d.Reset()
	if !d.HasChanged(pix) {
		t.Fatal("after Reset, even an identical frame must report changed")
	}
}
