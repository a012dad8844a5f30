package render

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cloudomate/streamio/internal/desktop"
)

const rowAlignment = 256

// clearColor matches the original shader's background clear: (0.1, 0.1, 0.15).
var clearColor = [4]byte{26, 26, 38, 255}

// OffscreenRenderer is a CPU-native stand-in for the GPU offscreen renderer
// described in spec.md §4.3: it rasterizes a sample horizon surface against
// the current Camera and produces RGBA8 frames through the same
// padded-row-stride readback/strip contract a real GPU backend would use,
// so the rest of the pipeline (encoder, pacing, backpressure) can't tell the
// difference. No GPU binding library exists anywhere in the reference pack,
// so this is a deliberate CPU reimplementation rather than a library call.
type OffscreenRenderer struct {
	width, height int
	camera        *CameraState
	mesh          horizonMesh
	start         time.Time

	mu       sync.Mutex
	closed   bool
	framebuf []byte // tight w*h*4 scratch, reused across frames
	depthbuf []float64
}

// NewOffscreenRenderer constructs a renderer targeting width x height,
// sharing camera with the renderer variant's input dispatcher.
func NewOffscreenRenderer(width, height int, camera *CameraState) *OffscreenRenderer {
	return &OffscreenRenderer{
		width:    width,
		height:   height,
		camera:   camera,
		mesh:     buildSampleHorizon(),
		start:    time.Now(),
		framebuf: make([]byte, width*height*4),
		depthbuf: make([]float64, width*height),
	}
}

func (r *OffscreenRenderer) Bounds() (int, int) { return r.width, r.height }

func (r *OffscreenRenderer) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// NextFrame draws one frame against the current camera snapshot. Draw
// submission, the simulated GPU wait, and the buffer unmap/strip are one
// synchronous call: exactly one in-flight frame per renderer, reentrant
// calls are not supported (spec.md §4.3).
func (r *OffscreenRenderer) NextFrame(ctx context.Context) (*desktop.Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, fmt.Errorf("render: renderer is closed")
	}

	cam := r.camera.Read()
	r.draw(cam)

	padded := padRows(r.framebuf, r.width, r.height)
	pix := stripRowPadding(padded, r.width, r.height)

	return &desktop.Frame{
		Pix:    pix,
		Width:  r.width,
		Height: r.height,
		PTS:    time.Since(r.start).Nanoseconds(),
	}, nil
}

func (r *OffscreenRenderer) draw(cam Camera) {
	for i := range r.depthbuf {
		r.depthbuf[i] = math.Inf(1)
	}
	for px := 0; px < r.width*r.height; px++ {
		off := px * 4
		r.framebuf[off], r.framebuf[off+1], r.framebuf[off+2], r.framebuf[off+3] =
			clearColor[0], clearColor[1], clearColor[2], clearColor[3]
	}

	aspect := float64(r.width) / float64(r.height)
	view := lookAtRH(cam.Eye(), cam.FocalPoint, Vec3{Z: 1})
	proj := perspectiveRH(cam.FOV, aspect, 0.1, 100)
	viewProj := mulMat4(proj, view)

	type screenVert struct {
		sx, sy, z, depth float64
		ok               bool
	}

	project := func(v meshVertex) screenVert {
		x, y, z, w := viewProj.transformPoint(v.pos)
		if w <= 1e-6 {
			return screenVert{ok: false}
		}
		ndcX, ndcY, ndcZ := x/w, y/w, z/w
		return screenVert{
			sx:    (ndcX*0.5 + 0.5) * float64(r.width),
			sy:    (1 - (ndcY*0.5 + 0.5)) * float64(r.height),
			z:     ndcZ,
			depth: v.depth,
			ok:    true,
		}
	}

	for t := 0; t+2 < len(r.mesh.indices); t += 3 {
		a := project(r.mesh.vertices[r.mesh.indices[t]])
		b := project(r.mesh.vertices[r.mesh.indices[t+1]])
		c := project(r.mesh.vertices[r.mesh.indices[t+2]])
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		r.rasterizeTriangle(a.sx, a.sy, a.z, a.depth, b.sx, b.sy, b.z, b.depth, c.sx, c.sy, c.z, c.depth)
	}
}

func (r *OffscreenRenderer) rasterizeTriangle(ax, ay, az, adepth, bx, by, bz, bdepth, cx, cy, cz, cdepth float64) {
	minX := int(math.Floor(minOf3(ax, bx, cx)))
	maxX := int(math.Ceil(maxOf3(ax, bx, cx)))
	minY := int(math.Floor(minOf3(ay, by, cy)))
	maxY := int(math.Ceil(maxOf3(ay, by, cy)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > r.width-1 {
		maxX = r.width - 1
	}
	if maxY > r.height-1 {
		maxY = r.height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(ax, ay, bx, by, cx, cy)
	if area == 0 {
		return
	}

	depthRange := r.mesh.depthMax - r.mesh.depthMin
	if depthRange == 0 {
		depthRange = 1
	}

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edgeFn(bx, by, cx, cy, px, py)
			w1 := edgeFn(cx, cy, ax, ay, px, py)
			w2 := edgeFn(ax, ay, bx, by, px, py)

			inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
			if !inside {
				continue
			}

			w0 /= area
			w1 /= area
			w2 /= area

			z := w0*az + w1*bz + w2*cz
			idx := y*r.width + x
			if z >= r.depthbuf[idx] {
				continue
			}
			r.depthbuf[idx] = z

			depth := w0*adepth + w1*bdepth + w2*cdepth
			tNorm := (depth - r.mesh.depthMin) / depthRange
			col := terrainColor(tNorm)

			off := idx * 4
			r.framebuf[off], r.framebuf[off+1], r.framebuf[off+2], r.framebuf[off+3] =
				col[0], col[1], col[2], 255
		}
	}
}

func edgeFn(ax, ay, bx, by, px, py float64) float64 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

func minOf3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func maxOf3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// terrainColor maps a normalized depth in [0,1] to a low-to-high gradient:
// deep blue-green, high pale brown.
func terrainColor(t float64) [3]byte {
	t = clampf(t, 0, 1)
	lerp := func(a, b byte, u float64) byte {
		return byte(float64(a) + (float64(b)-float64(a))*u)
	}
	if t < 0.5 {
		u := t / 0.5
		return [3]byte{lerp(40, 90, u), lerp(70, 140, u), lerp(160, 90, u)}
	}
	u := (t - 0.5) / 0.5
	return [3]byte{lerp(90, 200, u), lerp(140, 170, u), lerp(90, 120, u)}
}

// padRows simulates a GPU readback buffer: rows copied at a stride padded
// to a 256-byte multiple, per spec.md §4.3.
func padRows(tight []byte, width, height int) []byte {
	rowBytes := width * 4
	paddedStride := (rowBytes + rowAlignment - 1) / rowAlignment * rowAlignment
	padded := make([]byte, paddedStride*height)
	for row := 0; row < height; row++ {
		copy(padded[row*paddedStride:row*paddedStride+rowBytes], tight[row*rowBytes:(row+1)*rowBytes])
	}
	return padded
}

// stripRowPadding is the caller-side half of the contract: strip the
// padding back out into a tight RGBA buffer.
func stripRowPadding(padded []byte, width, height int) []byte {
	rowBytes := width * 4
	paddedStride := (rowBytes + rowAlignment - 1) / rowAlignment * rowAlignment
	out := make([]byte, rowBytes*height)
	for row := 0; row < height; row++ {
		copy(out[row*rowBytes:(row+1)*rowBytes], padded[row*paddedStride:row*paddedStride+rowBytes])
	}
	return out
}

var _ desktop.FrameProducer = (*OffscreenRenderer)(nil)
