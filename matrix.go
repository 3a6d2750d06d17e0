package raymaze

import (
	"fmt"
	"strings"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 here is row-major and vectors are treated as
// rows multiplied on the left (i.e. the translation lives in matrix[3]), so a chain of transforms reads left to right in the
// order they're applied: scale.Mult(rotation).Mult(translation).
type Matrix4 [4][4]float64

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {

	mat := Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return mat

}

// NewMatrix4Translate returns a new Matrix4 that translates by the given amounts.
func NewMatrix4Translate(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new Matrix4 that scales by the given amounts.
func NewMatrix4Scale(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4FromQuaternion returns a rotation Matrix4 from the (unit) quaternion x, y, z, w.
func NewMatrix4FromQuaternion(x, y, z, w float64) Matrix4 {

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}

// NewMatrix4FromColumnMajor builds a Matrix4 out of 16 floats stored in column-major order for column vectors (as glTF and
// OpenGL store them). Because this package multiplies row vectors, the layout carries over element for element.
func NewMatrix4FromColumnMajor(m [16]float64) Matrix4 {
	var mat Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			mat[i][j] = m[i*4+j]
		}
	}
	return mat
}

// Mult multiplies a Matrix4 by another provided Matrix4, returning the result. The calling Matrix4's transform is applied first.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	var out Matrix4

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = matrix[i][0]*other[0][j] + matrix[i][1]*other[1][j] + matrix[i][2]*other[2][j] + matrix[i][3]*other[3][j]
		}
	}

	return out

}

// MultVec multiplies the vector provided by the Matrix4, giving a vector that has been rotated, scaled, or translated as desired.
func (matrix Matrix4) MultVec(vect Vector3) Vector3 {

	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// Equals returns true if the two matrices are close enough in every element.
func (matrix Matrix4) Equals(other Matrix4) bool {
	eps := 1e-8
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := matrix[i][j] - other[i][j]
			if d > eps || d < -eps {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the Matrix4 is (close to) the identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(NewMatrix4())
}

func (matrix Matrix4) String() string {
	s := strings.Builder{}
	for _, row := range matrix {
		s.WriteString(fmt.Sprintf("%8.3f %8.3f %8.3f %8.3f\n", row[0], row[1], row[2], row[3]))
	}
	return s.String()
}
