package raymaze

import "math"

// Sphere is an analytic sphere primitive.
type Sphere struct {
	Center   Vector3
	Radius   float64
	Material *Material
}

// NewSphere returns a new Sphere.
func NewSphere(center Vector3, radius float64, material *Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: material}
}

// RayTest returns the nearest non-negative intersection of the ray with the sphere.
// If the ray starts inside the sphere, the exit point is returned.
func (sphere *Sphere) RayTest(origin, direction Vector3) (float64, Vector3, bool) {

	m := origin.Sub(sphere.Center)
	a := direction.Dot(direction)
	b := 2 * m.Dot(direction)
	c := m.Dot(m) - sphere.Radius*sphere.Radius

	discr := b*b - 4*a*c

	if a == 0 || discr < 0 {
		return 0, Vector3{}, false
	}

	sq := math.Sqrt(discr)
	t := (-b - sq) / (2 * a)

	if t < 0 {
		t = (-b + sq) / (2 * a)
		if t < 0 {
			return 0, Vector3{}, false
		}
	}

	return t, origin.Add(direction.Scale(t)), true

}

// Normal returns the outward unit normal at the given point on the sphere's surface.
func (sphere *Sphere) Normal(point Vector3) Vector3 {
	return point.Sub(sphere.Center).Scale(1 / sphere.Radius)
}

// Bounds returns the AABB enclosing the sphere.
func (sphere *Sphere) Bounds() AABB {
	r := Vector3{sphere.Radius, sphere.Radius, sphere.Radius}
	return AABB{Min: sphere.Center.Sub(r), Max: sphere.Center.Add(r)}
}

func (sphere *Sphere) surface() *Material { return sphere.Material }

// NewQuad returns a Shape of two triangles, assembled as a strip out of the corners a, b, c, and d (in strip order, so a and d are
// opposite corners). This is how labyrinth tiles are built.
func NewQuad(a, b, c, d Vector3, material *Material) Shape {
	return NewShape(TriangleStrip, material, a, b, c, d)
}

// NewBox returns a Shape of twelve triangles forming the axis-aligned box between min and max. Every face is wound so that its
// face normal points outwards.
func NewBox(min, max Vector3, material *Material) Shape {

	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	faces := [6][4]Vector3{
		{{x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}}, // -Z
		{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, // +Z
		{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}, // -X
		{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}, // +X
		{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, // -Y
		{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}}, // +Y
	}

	verts := make([]Vector3, 0, 36)
	for _, f := range faces {
		verts = append(verts, f[0], f[1], f[2], f[0], f[2], f[3])
	}

	return NewShape(TriangleList, material, verts...)

}
