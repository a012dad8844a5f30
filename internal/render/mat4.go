package render

import "math"

// mat4 is a column-major 4x4 matrix: mat4[col*4+row].
type mat4 [16]float64

func mulMat4(a, b mat4) mat4 {
	var r mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// transformPoint applies the matrix to a homogeneous point (w=1).
func (m mat4) transformPoint(v Vec3) (x, y, z, w float64) {
	x = m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y = m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z = m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w = m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return
}

// lookAtRH builds a right-handed view matrix; up is (0,0,1) per spec.md's
// Z-up projection contract.
func lookAtRH(eye, target, up Vec3) mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// perspectiveRH builds a right-handed perspective projection with near/far
// clip planes per spec.md §4.3 ("near=0.1, far=100").
func perspectiveRH(fovYDegrees, aspect, near, far float64) mat4 {
	fov := fovYDegrees * math.Pi / 180
	f := 1 / math.Tan(fov/2)
	rangeInv := 1 / (near - far)

	return mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far * rangeInv, -1,
		0, 0, near * far * rangeInv, 0,
	}
}
