package common

import "math"

// Matrices in this package are flat [16]float32 slices in column-major order, the layout WGSL mat4x4<f32> expects.

// Identity overwrites m with the identity matrix.
//
// Parameters:
//   - m: destination, at least 16 elements
func Identity(m []float32) {
	clear(m[:16])
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 stores a * b in out. out may alias a or b.
//
// Parameters:
//   - out: destination, at least 16 elements
//   - a: left operand
//   - b: right operand
func Mul4(out, a, b []float32) {
	var res [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			res[col*4+row] = sum
		}
	}
	copy(out, res[:])
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Perspective writes a right-handed perspective projection mapping depth into the [0, 1] clip range used by WebGPU.
//
// Parameters:
//   - out: destination, at least 16 elements
//   - fovY: vertical field of view in radians
//   - aspect: width / height
//   - near: near plane distance, > 0
//   - far: far plane distance, > near
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := float32(1 / math.Tan(float64(fovY)/2))
	clear(out[:16])
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = near * far / (near - far)
}

// LookAt writes a view matrix for an eye at (eyeX, eyeY, eyeZ) facing center with the given up vector.
//
// Parameters:
//   - out: destination, at least 16 elements
//   - eyeX, eyeY, eyeZ: eye position
//   - centerX, centerY, centerZ: point being looked at
//   - upX, upY, upZ: up direction, usually +Y
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	fx, fy, fz := normalize(eyeX-centerX, eyeY-centerY, eyeZ-centerZ)
	sx, sy, sz := normalize(upY*fz-upZ*fy, upZ*fx-upX*fz, upX*fy-upY*fx)
	ux, uy, uz := fy*sz-fz*sy, fz*sx-fx*sz, fx*sy-fy*sx

	out[0], out[4], out[8], out[12] = sx, sy, sz, -(sx*eyeX + sy*eyeY + sz*eyeZ)
	out[1], out[5], out[9], out[13] = ux, uy, uz, -(ux*eyeX + uy*eyeY + uz*eyeZ)
	out[2], out[6], out[10], out[14] = fx, fy, fz, -(fx*eyeX + fy*eyeY + fz*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

func normalize(x, y, z float32) (float32, float32, float32) {
	l := math.Sqrt(float64(x*x + y*y + z*z))
	if l == 0 {
		return x, y, z
	}
	inv := float32(1 / l)
	return x * inv, y * inv, z * inv
}

// BuildModelMatrix writes translation * rotation * scale. Rotation applies X, then Y, then Z in intrinsic order
// (R = Rx * Ry * Rz), so a tilt around X stays aligned with the screen's horizontal axis.
//
// Parameters:
//   - out: destination, at least 16 elements
//   - pos: translation
//   - rot: Euler angles in radians
//   - scale: per-axis scale
func BuildModelMatrix(out []float32, pos, rot, scale [3]float32) {
	cx, sx := float32(math.Cos(float64(rot[0]))), float32(math.Sin(float64(rot[0])))
	cy, sy := float32(math.Cos(float64(rot[1]))), float32(math.Sin(float64(rot[1])))
	cz, sz := float32(math.Cos(float64(rot[2]))), float32(math.Sin(float64(rot[2])))

	out[0] = cy * cz * scale[0]
	out[1] = (cx*sz + sx*cz*sy) * scale[0]
	out[2] = (sx*sz - cx*cz*sy) * scale[0]
	out[3] = 0

	out[4] = -cy * sz * scale[1]
	out[5] = (cx*cz - sx*sz*sy) * scale[1]
	out[6] = (sx*cz + cx*sz*sy) * scale[1]
	out[7] = 0

	out[8] = sy * scale[2]
	out[9] = -sx * cy * scale[2]
	out[10] = cx * cy * scale[2]
	out[11] = 0

	out[12], out[13], out[14], out[15] = pos[0], pos[1], pos[2], 1
}

// TransformPoint multiplies m by the homogeneous point (x, y, z, 1).
//
// Returns:
//   - [4]float32: the transformed point before perspective division
func TransformPoint(m []float32, x, y, z float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15],
	}
}
