package raymaze

// Assembly indicates how a Shape's vertex list is grouped into triangles.
type Assembly int

const (
	// TriangleList groups vertices into consecutive, non-overlapping triples: (0, 1, 2), (3, 4, 5), ...
	// A trailing group of fewer than three vertices is dropped.
	TriangleList Assembly = iota
	// TriangleStrip forms a triangle out of every window of three consecutive vertices: (0, 1, 2), (1, 2, 3), ...
	// Winding alternates from one triangle to the next and is not corrected, so supply vertices in strip order.
	TriangleStrip
)

func (a Assembly) String() string {
	if a == TriangleStrip {
		return "TriangleStrip"
	}
	return "TriangleList"
}

// Primitive is anything a ray can strike. The set of primitives is closed: *Polygon and *Sphere are the only implementations.
type Primitive interface {
	// RayTest returns the parametric distance t along the ray and the world-space point struck,
	// or ok == false if the ray misses.
	RayTest(origin, direction Vector3) (t float64, point Vector3, ok bool)
	// Normal returns the unit-length surface normal of the primitive at the point given.
	Normal(point Vector3) Vector3
	// Bounds returns the AABB enclosing the primitive.
	Bounds() AABB
	surface() *Material
}

// Polygon is a single triangle with a Material. Many Polygons generally share the same Material pointer.
// The three vertices must not be collinear; a degenerate triangle has no meaningful normal, and nothing here guards against one.
type Polygon struct {
	V0, V1, V2 Vector3
	Material   *Material
}

// NewPolygon returns a new triangle with the given vertices and material.
func NewPolygon(v0, v1, v2 Vector3, material *Material) *Polygon {
	return &Polygon{V0: v0, V1: v1, V2: v2, Material: material}
}

// RayTest tests the ray against the triangle. See RayTriangle.
func (poly *Polygon) RayTest(origin, direction Vector3) (float64, Vector3, bool) {
	return RayTriangle(origin, direction, poly.V0, poly.V1, poly.V2)
}

// FaceNormal returns the un-normalized face normal, (V1 - V0) × (V2 - V0).
func (poly *Polygon) FaceNormal() Vector3 {
	return poly.V1.Sub(poly.V0).Cross(poly.V2.Sub(poly.V0))
}

// Normal returns the unit face normal. A triangle is flat, so the point doesn't matter.
func (poly *Polygon) Normal(Vector3) Vector3 {
	return poly.FaceNormal().Unit()
}

// Bounds returns the AABB of the triangle's three vertices.
func (poly *Polygon) Bounds() AABB {
	return NewAABBFromPoints(poly.V0, poly.V1, poly.V2)
}

// Vertices returns the triangle's three vertices, in order.
func (poly *Polygon) Vertices() [3]Vector3 {
	return [3]Vector3{poly.V0, poly.V1, poly.V2}
}

func (poly *Polygon) surface() *Material { return poly.Material }

// Shape is an ordered vertex list that gets assembled into triangles, all sharing one Material.
type Shape struct {
	Vertices []Vector3
	Material *Material
	Assembly Assembly
}

// NewShape creates a new Shape out of the vertices given.
func NewShape(assembly Assembly, material *Material, vertices ...Vector3) Shape {
	return Shape{
		Vertices: vertices,
		Material: material,
		Assembly: assembly,
	}
}

// Polygons tessellates the Shape into triangles according to its Assembly mode. This doesn't modify the Shape, so
// it can be called as often as you like; the Canvas calls it once per frame for each Shape.
func (shape Shape) Polygons() []Polygon {

	verts := shape.Vertices

	switch shape.Assembly {

	case TriangleStrip:

		if len(verts) < 3 {
			return nil
		}

		polys := make([]Polygon, 0, len(verts)-2)
		for i := 0; i+2 < len(verts); i++ {
			polys = append(polys, Polygon{V0: verts[i], V1: verts[i+1], V2: verts[i+2], Material: shape.Material})
		}
		return polys

	default:

		polys := make([]Polygon, 0, len(verts)/3)
		for i := 0; i+2 < len(verts); i += 3 {
			polys = append(polys, Polygon{V0: verts[i], V1: verts[i+1], V2: verts[i+2], Material: shape.Material})
		}
		return polys

	}

}
