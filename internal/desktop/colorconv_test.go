package desktop

import "testing"

func TestRGBAtoYUV420p_2x2(t *testing.T) {
	// 2x2 RGBA pixels, row-major:
	// (0,0)=red, (1,0)=green, (0,1)=blue, (1,1)=white
	rgba := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}

	planes := rgbaToYUV420p(rgba, 2, 2, planarYUV{})
	defer putYUVPlanes(planes)

	wantY := []byte{82, 144, 41, 235}
	for i := range wantY {
		if planes.Y[i] != wantY[i] {
			t.Fatalf("Y[%d] = %d, want %d (Y=%v)", i, planes.Y[i], wantY[i], planes.Y)
		}
	}

	if len(planes.U) != 1 || len(planes.V) != 1 {
		t.Fatalf("expected 1x1 chroma planes for a 2x2 frame, got U=%d V=%d", len(planes.U), len(planes.V))
	}
	// Both UV samples are taken from the (0,0) red pixel per the top-left
	// subsampling rule.
	if planes.U[0] != 90 {
		t.Errorf("U[0] = %d, want 90", planes.U[0])
	}
	if planes.V[0] != 240 {
		t.Errorf("V[0] = %d, want 240", planes.V[0])
	}
}

func TestRGBAtoYUV420p_ReusesBuffers(t *testing.T) {
	rgba := make([]byte, 4*4*4)
	first := rgbaToYUV420p(rgba, 4, 4, planarYUV{})
	second := rgbaToYUV420p(rgba, 4, 4, first)

	if &second.Y[0] != &first.Y[0] {
		t.Error("expected Y plane backing array to be reused when dimensions match")
	}
}

func TestClampByte(t *testing.T) {
	cases := []struct {
		in, lo, hi int
		want       byte
	}{
		{-10, 16, 235, 16},
		{300, 16, 235, 235},
		{100, 16, 235, 100},
	}
	for _, c := range cases {
		if got := clampByte(c.in, c.lo, c.hi); got != c.want {
			t.Errorf("clampByte(%d, %d, %d) = %d, want %d", c.in, c.lo, c.hi, got, c.want)
		}
	}
}
