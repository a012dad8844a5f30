package render

import "math"

// meshVertex carries the per-vertex attributes the original shader consumed
// (position, normal, depth-for-color-mapping).
type meshVertex struct {
	pos    Vec3
	normal Vec3
	depth  float64
}

// horizonMesh is a triangle mesh plus the depth range used for color mapping.
type horizonMesh struct {
	vertices           []meshVertex
	indices            []uint32
	depthMin, depthMax float64
	nx, ny             int
}

// buildSampleHorizon constructs the same demonstration geological-like
// surface as original_source/src/renderer/mod.rs's create_sample_horizon:
// a 100x100 grid with a fixed pseudo-random height function, per-vertex
// normals from central differences of the neighboring vertices, and a
// triangle-list index buffer (two triangles per grid cell).
func buildSampleHorizon() horizonMesh {
	const nx, ny = 100, 100

	verts := make([]meshVertex, nx*ny)
	depthMin, depthMax := math.MaxFloat64, -math.MaxFloat64

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x := (float64(i)/float64(nx) - 0.5) * 4
			y := (float64(j)/float64(ny) - 0.5) * 4

			z := 0.3*math.Sin(2*x)*math.Cos(2*y) +
				0.1*math.Sin(5*x+2) +
				0.05*math.Sin(float64(i*31+j*17)*0.1)

			if z < depthMin {
				depthMin = z
			}
			if z > depthMax {
				depthMax = z
			}

			verts[j*nx+i] = meshVertex{
				pos:    Vec3{X: x, Y: y, Z: z},
				normal: Vec3{Z: 1},
				depth:  z,
			}
		}
	}

	clampIdx := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			idx := j*nx + i
			left := verts[j*nx+clampIdx(i-1, nx-1)].pos
			right := verts[j*nx+clampIdx(i+1, nx-1)].pos
			down := verts[clampIdx(j-1, ny-1)*nx+i].pos
			up := verts[clampIdx(j+1, ny-1)*nx+i].pos

			normal := right.Sub(left).Cross(up.Sub(down)).Normalize()
			verts[idx].normal = normal
		}
	}

	indices := make([]uint32, 0, (nx-1)*(ny-1)*6)
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			idx := uint32(j*nx + i)
			indices = append(indices,
				idx, idx+1, idx+uint32(nx),
				idx+1, idx+uint32(nx)+1, idx+uint32(nx),
			)
		}
	}

	return horizonMesh{vertices: verts, indices: indices, depthMin: depthMin, depthMax: depthMax, nx: nx, ny: ny}
}
