package raymaze

import "math"

// AABB is an axis-aligned bounding box, described by its minimum and maximum corners.
type AABB struct {
	Min, Max Vector3
}

// emptyAABB returns an inverted box that any call to Extend() will snap onto.
func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vector3{inf, inf, inf},
		Max: Vector3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints returns the smallest AABB containing all of the points given.
func NewAABBFromPoints(points ...Vector3) AABB {
	box := emptyAABB()
	for _, p := range points {
		box = box.ExtendPoint(p)
	}
	return box
}

// ExtendPoint returns a copy of the AABB grown to contain the point given.
func (box AABB) ExtendPoint(p Vector3) AABB {
	box.Min = box.Min.Min(p)
	box.Max = box.Max.Max(p)
	return box
}

// Extend returns a copy of the AABB grown to contain the other AABB.
func (box AABB) Extend(other AABB) AABB {
	box.Min = box.Min.Min(other.Min)
	box.Max = box.Max.Max(other.Max)
	return box
}

// Expand returns a copy of the AABB, grown outwards on every side by the margin given.
func (box AABB) Expand(margin float64) AABB {
	m := Vector3{margin, margin, margin}
	box.Min = box.Min.Sub(m)
	box.Max = box.Max.Add(m)
	return box
}

// Size returns the dimensions of the AABB.
func (box AABB) Size() Vector3 {
	return box.Max.Sub(box.Min)
}

// IsEmpty returns true if the box contains nothing (i.e. it was never extended).
func (box AABB) IsEmpty() bool {
	return box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z
}

// Contains returns true if the point lies within the box, inclusive of its faces.
func (box AABB) Contains(p Vector3) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X &&
		p.Y >= box.Min.Y && p.Y <= box.Max.Y &&
		p.Z >= box.Min.Z && p.Z <= box.Max.Z
}

// Overlaps returns true if the two boxes touch or intersect.
func (box AABB) Overlaps(other AABB) bool {
	return box.Min.X <= other.Max.X && box.Max.X >= other.Min.X &&
		box.Min.Y <= other.Max.Y && box.Max.Y >= other.Min.Y &&
		box.Min.Z <= other.Max.Z && box.Max.Z >= other.Min.Z
}

// RayTest clips the ray (origin + direction * t) against the box using the slab method, returning the parametric
// entry and exit distances. ok is false if the ray misses the box or the box lies entirely behind the origin.
// If the origin is inside the box, tEnter is 0.
func (box AABB) RayTest(origin, direction Vector3) (tEnter, tExit float64, ok bool) {

	tEnter = 0
	tExit = math.Inf(1)

	for axis := AxisX; axis <= AxisZ; axis++ {

		o := origin.Component(axis)
		d := direction.Component(axis)
		lo := box.Min.Component(axis)
		hi := box.Max.Component(axis)

		if d == 0 {
			// Parallel to this slab; either always inside it or never
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tEnter = math.Max(tEnter, t1)
		tExit = math.Min(tExit, t2)

		if tEnter > tExit {
			return 0, 0, false
		}

	}

	return tEnter, tExit, true

}
