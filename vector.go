package raymaze

import (
	"fmt"
	"math"
)

// Axis names one of the three world dimensions. It is used to pick a component out of a Vector3 and
// to tell a PlaneTexture which dimension its plane is perpendicular to.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// VecX represents a unit vector along the world X axis (right in screen space).
var VecX = NewVector3(1, 0, 0)

// VecY represents a unit vector along the world Y axis (down in screen space, as rows grow downwards).
var VecY = NewVector3(0, 1, 0)

// VecZ represents a unit vector along the world Z axis (into the screen, the direction the camera looks).
var VecZ = NewVector3(0, 0, 1)

// Vector3 represents a 3D vector, used for positions and directions alike.
// Any Vector3 function that "modifies" the vector returns a modified copy, so you can chain calls:
// `dir := light.Sub(hit).Unit()`.
// Vectors are small, so pass and store them by value.
type Vector3 struct {
	X float64 // The X (1st) component of the Vector3
	Y float64 // The Y (2nd) component of the Vector3
	Z float64 // The Z (3rd) component of the Vector3
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float64) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Dot returns the dot product of a Vector3 and another Vector3.
func (vec Vector3) Dot(other Vector3) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns a new Vector3, indicating the cross product of the calling Vector3 and the provided other Vector3 (vec × other).
func (vec Vector3) Cross(other Vector3) Vector3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector3 pointing the opposite way.
func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the Euclidean length of the Vector3.
func (vec Vector3) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector3; this is faster than Magnitude() as it avoids using math.Sqrt().
func (vec Vector3) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Distance returns the distance between the two points.
func (vec Vector3) Distance(other Vector3) float64 {
	return vec.Sub(other).Magnitude()
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length).
// The vector must not be zero-length: a zero vector divides by zero and produces NaN components.
// Callers that can't guarantee that should check IsZero() first.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Component returns the value of the Vector3 along the given Axis.
func (vec Vector3) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return vec.X
	case AxisY:
		return vec.Y
	default:
		return vec.Z
	}
}

// Project drops the component along the given axis, returning the two remaining components in X, Y, Z order.
// Projecting along Y, for example, returns (X, Z).
func (vec Vector3) Project(axis Axis) (float64, float64) {
	switch axis {
	case AxisX:
		return vec.Y, vec.Z
	case AxisY:
		return vec.X, vec.Z
	default:
		return vec.X, vec.Y
	}
}

// Min returns a Vector3 holding the per-component minimum of both vectors.
func (vec Vector3) Min(other Vector3) Vector3 {
	return Vector3{math.Min(vec.X, other.X), math.Min(vec.Y, other.Y), math.Min(vec.Z, other.Z)}
}

// Max returns a Vector3 holding the per-component maximum of both vectors.
func (vec Vector3) Max(other Vector3) Vector3 {
	return Vector3{math.Max(vec.X, other.X), math.Max(vec.Y, other.Y), math.Max(vec.Z, other.Z)}
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector3) Equals(other Vector3) bool {

	eps := 1e-8

	if math.Abs(vec.X-other.X) > eps || math.Abs(vec.Y-other.Y) > eps || math.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector3 are extremely close to 0.
func (vec Vector3) IsZero() bool {
	return vec.Equals(Vector3{})
}

func (vec Vector3) String() string {
	return fmt.Sprintf("{%.4f, %.4f, %.4f}", vec.X, vec.Y, vec.Z)
}
