package orbital

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// basisMatrix builds the rotation matrix whose columns are the provided
// orthonormal basis vectors. Applying it maps coordinates expressed in that
// basis into the inertial frame.
func basisMatrix(p, q, w []float64) *mat64.Dense {
	return mat64.NewDense(3, 3, []float64{
		p[0], q[0], w[0],
		p[1], q[1], w[1],
		p[2], q[2], w[2],
	})
}

// Quaternion is a unit quaternion representing an attitude in the inertial frame.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion returns the no-rotation attitude.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Normalized returns this quaternion scaled to unit norm.
func (q Quaternion) Normalized() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Rotate applies this quaternion's rotation to a 3-vector.
func (q Quaternion) Rotate(v []float64) []float64 {
	// v' = v + 2w(u×v) + 2u×(u×v) with u the vector part.
	u := []float64{q.X, q.Y, q.Z}
	uv := cross(u, v)
	uuv := cross(u, uv)
	return []float64{
		v[0] + 2*(q.W*uv[0]+uuv[0]),
		v[1] + 2*(q.W*uv[1]+uuv[1]),
		v[2] + 2*(q.W*uv[2]+uuv[2]),
	}
}

// QuaternionFromMatrix converts a rotation matrix to a unit quaternion using
// Shepperd's method (largest-pivot branch keeps the divisions well conditioned).
func QuaternionFromMatrix(m *mat64.Dense) Quaternion {
	tr := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	var q Quaternion
	switch {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q.W = s / 4
		q.X = (m.At(2, 1) - m.At(1, 2)) / s
		q.Y = (m.At(0, 2) - m.At(2, 0)) / s
		q.Z = (m.At(1, 0) - m.At(0, 1)) / s
	case m.At(0, 0) > m.At(1, 1) && m.At(0, 0) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(0, 0)-m.At(1, 1)-m.At(2, 2))
		q.W = (m.At(2, 1) - m.At(1, 2)) / s
		q.X = s / 4
		q.Y = (m.At(0, 1) + m.At(1, 0)) / s
		q.Z = (m.At(0, 2) + m.At(2, 0)) / s
	case m.At(1, 1) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(1, 1)-m.At(0, 0)-m.At(2, 2))
		q.W = (m.At(0, 2) - m.At(2, 0)) / s
		q.X = (m.At(0, 1) + m.At(1, 0)) / s
		q.Y = s / 4
		q.Z = (m.At(1, 2) + m.At(2, 1)) / s
	default:
		s := 2 * math.Sqrt(1+m.At(2, 2)-m.At(0, 0)-m.At(1, 1))
		q.W = (m.At(1, 0) - m.At(0, 1)) / s
		q.X = (m.At(0, 2) + m.At(2, 0)) / s
		q.Y = (m.At(1, 2) + m.At(2, 1)) / s
		q.Z = s / 4
	}
	return q.Normalized()
}
