package desktop

import "sync"

// planarYUV holds the three separate plane slices of a YUV420p frame. The
// spec requires a literal planar layout (not the teacher's interleaved
// NV12), since that's what the software and hardware backends here expect
// as input.
type planarYUV struct {
	Y, U, V []byte
}

var yuvPool = struct {
	mu   sync.Mutex
	pool sync.Pool
	w, h int
}{}

func getYUVPlanes(w, h int) planarYUV {
	yuvPool.mu.Lock()
	if yuvPool.w != w || yuvPool.h != h {
		yuvPool.w, yuvPool.h = w, h
		yuvPool.pool = sync.Pool{}
	}
	yuvPool.mu.Unlock()

	if v := yuvPool.pool.Get(); v != nil {
		return v.(planarYUV)
	}
	chromaW, chromaH := (w+1)/2, (h+1)/2
	return planarYUV{
		Y: make([]byte, w*h),
		U: make([]byte, chromaW*chromaH),
		V: make([]byte, chromaW*chromaH),
	}
}

func putYUVPlanes(p planarYUV) {
	yuvPool.pool.Put(p)
}

// rgbaToYUV420p converts an RGBA frame to planar YUV420p using BT.601
// studio-range integer coefficients, reusing reuse's backing arrays when
// its dimensions already match width/height.
func rgbaToYUV420p(rgba []byte, width, height int, reuse planarYUV) planarYUV {
	var out planarYUV
	chromaW := (width + 1) / 2
	if len(reuse.Y) == width*height && len(reuse.U) == chromaW*((height+1)/2) {
		out = reuse
	} else {
		if reuse.Y != nil {
			putYUVPlanes(reuse)
		}
		out = getYUVPlanes(width, height)
	}

	for y := 0; y < height; y++ {
		rowOff := y * width * 4
		yOff := y * width
		for x := 0; x < width; x++ {
			pi := rowOff + x*4
			r := int(rgba[pi+0])
			g := int(rgba[pi+1])
			b := int(rgba[pi+2])

			yVal := ((66*r + 129*g + 25*b + 128) >> 8) + 16
			out.Y[yOff+x] = clampByte(yVal, 0, 255)

			if y%2 == 0 && x%2 == 0 {
				uVal := ((-38*r - 74*g + 112*b + 128) >> 8) + 128
				vVal := ((112*r - 94*g - 18*b + 128) >> 8) + 128
				cOff := (y/2)*chromaW + x/2
				out.U[cOff] = clampByte(uVal, 0, 255)
				out.V[cOff] = clampByte(vVal, 0, 255)
			}
		}
	}
	return out
}

func clampByte(v, lo, hi int) byte {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return byte(v)
}
