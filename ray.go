package raymaze

import "math"

// parallelEpsilon is how close to zero the dot product of a triangle's normal and a ray's direction has to be for the ray to be
// considered parallel to the triangle (and so miss it).
const parallelEpsilon = 1e-12

// RayTriangle tests a ray against the triangle (v0, v1, v2). The direction doesn't have to be normalized; its length scales
// the returned distance t, but not the point struck.
// If the ray strikes the triangle at or in front of its origin, RayTriangle returns t and the point struck, which is always
// origin + direction * t. Rays parallel to the triangle's plane, or that would only strike it behind the origin, miss.
// The triangle is double-sided; winding only changes the sign of the normal, not whether a hit is found.
func RayTriangle(origin, direction, v0, v1, v2 Vector3) (float64, Vector3, bool) {

	normal := v1.Sub(v0).Cross(v2.Sub(v0))

	denom := normal.Dot(direction)
	if math.Abs(denom) < parallelEpsilon {
		return 0, Vector3{}, false
	}

	t := normal.Dot(v0.Sub(origin)) / denom
	if t < 0 {
		return 0, Vector3{}, false
	}

	p := origin.Add(direction.Scale(t))

	// Each edge's cross product with the point has to agree with the face normal, or the point lies outside that edge
	if normal.Dot(v1.Sub(v0).Cross(p.Sub(v0))) < 0 ||
		normal.Dot(v2.Sub(v1).Cross(p.Sub(v1))) < 0 ||
		normal.Dot(v0.Sub(v2).Cross(p.Sub(v2))) < 0 {
		return 0, Vector3{}, false
	}

	return t, p, true

}

// RayHit represents the result of a successful ray test.
type RayHit struct {
	Primitive Primitive // Primitive is the primitive that was struck.
	Index     int       // Index is the position of the struck primitive in the arena it was found in.
	T         float64   // T is the parametric distance along the ray; the world distance is T * |direction|.
	Position  Vector3   // Position is the world position that the primitive was struck.
}

// Normal returns the unit surface normal of the struck primitive at the hit position.
func (hit RayHit) Normal() Vector3 {
	return hit.Primitive.Normal(hit.Position)
}

// Accelerator finds the nearest primitive struck by a ray. Implementations are read-only once built, so a single
// Accelerator can be shared by every goroutine rendering a frame.
type Accelerator interface {
	NearestHit(origin, direction Vector3) (RayHit, bool)
}

// BruteForce is the simplest Accelerator: it tests every primitive for every ray.
type BruteForce struct {
	Primitives []Primitive
}

// NewBruteForce returns a BruteForce Accelerator over the primitives given.
func NewBruteForce(primitives []Primitive) *BruteForce {
	return &BruteForce{Primitives: primitives}
}

// NearestHit returns the primitive with the smallest non-negative t along the ray. On an exact tie, the primitive found
// first (lowest index) wins.
func (bf *BruteForce) NearestHit(origin, direction Vector3) (RayHit, bool) {
	return nearestOf(bf.Primitives, nil, origin, direction)
}

// nearestOf tests the ray against the primitives in the arena. If indices is non-nil, only those primitives are tested.
func nearestOf(arena []Primitive, indices []int, origin, direction Vector3) (RayHit, bool) {

	best := RayHit{T: math.Inf(1)}
	found := false

	test := func(i int) {
		if t, p, ok := arena[i].RayTest(origin, direction); ok && t < best.T {
			best = RayHit{Primitive: arena[i], Index: i, T: t, Position: p}
			found = true
		}
	}

	if indices == nil {
		for i := range arena {
			test(i)
		}
	} else {
		for _, i := range indices {
			test(i)
		}
	}

	return best, found

}
