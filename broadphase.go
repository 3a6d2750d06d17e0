package raymaze

import "math"

// DefaultVoxelResolution is the number of cells along each axis of a VoxelGrid when no resolution is given.
const DefaultVoxelResolution = 12

// registerPadding grows each primitive's AABB (as a fraction of a cell) when registering it into cells, so that hits lying
// exactly on a cell boundary are still found in whichever cell the traversal considers them part of.
const registerPadding = 1e-6

// VoxelGrid is an Accelerator that partitions a bounding volume into a fixed grid of equally sized cells. Each cell holds the
// indices of the primitives whose AABBs overlap it (a primitive can be listed in many cells). A ray walks the grid cell by
// cell using a 3D DDA, only testing the primitives listed in the cells it passes through.
//
// By default, the walk stops at the first cell that yields any hit at all. A large primitive listed in an early cell can be
// struck at a point that lies further along the ray than a small primitive listed in a later cell, in which case the grid
// returns the further hit and disagrees with BruteForce. Scenes whose primitives are small relative to the cells (like
// labyrinth tiles) rarely hit this. Set Strict to true to only accept a hit once the walk has passed the point it lies at,
// which makes the grid agree with BruteForce at the cost of testing some primitives more than once.
type VoxelGrid struct {
	Primitives []Primitive // The primitive arena; cell lists index into this.
	Bounds     AABB        // The volume covered by the grid.
	Resolution int         // The number of cells along each axis.
	Strict     bool        // If the walk should continue until the hit found is known to be the nearest.

	cellSize Vector3
	cells    [][]int
	outside  []int // Primitives that don't overlap the grid at all; these are tested against every ray.
}

// NewVoxelGrid builds a VoxelGrid of resolution^3 cells covering bounds. Any axis of bounds that has no thickness is padded
// out a little so that cells always have volume. A resolution below 1 uses DefaultVoxelResolution.
// Primitives that fall entirely outside of bounds aren't lost; they're simply tested against every ray.
func NewVoxelGrid(primitives []Primitive, bounds AABB, resolution int) *VoxelGrid {

	if resolution < 1 {
		resolution = DefaultVoxelResolution
	}

	size := bounds.Size()
	pad := math.Max(1e-3, 1e-6*math.Max(size.X, math.Max(size.Y, size.Z)))
	for axis := AxisX; axis <= AxisZ; axis++ {
		if size.Component(axis) <= 0 {
			setComponent(&bounds.Min, axis, bounds.Min.Component(axis)-pad)
			setComponent(&bounds.Max, axis, bounds.Max.Component(axis)+pad)
		}
	}

	grid := &VoxelGrid{
		Primitives: primitives,
		Bounds:     bounds,
		Resolution: resolution,
		cellSize:   bounds.Size().Scale(1 / float64(resolution)),
		cells:      make([][]int, resolution*resolution*resolution),
	}

	margin := registerPadding * math.Min(grid.cellSize.X, math.Min(grid.cellSize.Y, grid.cellSize.Z))

	for index, prim := range primitives {

		box := prim.Bounds().Expand(margin)

		if !box.Overlaps(bounds) {
			grid.outside = append(grid.outside, index)
			continue
		}

		minCell := grid.cellOf(box.Min)
		maxCell := grid.cellOf(box.Max)

		for i := minCell[0]; i <= maxCell[0]; i++ {
			for j := minCell[1]; j <= maxCell[1]; j++ {
				for k := minCell[2]; k <= maxCell[2]; k++ {
					c := grid.cellIndex(i, j, k)
					grid.cells[c] = append(grid.cells[c], index)
				}
			}
		}

	}

	return grid

}

// NewVoxelGridFromPrimitives builds a VoxelGrid that exactly covers the primitives given (slightly padded).
func NewVoxelGridFromPrimitives(primitives []Primitive, resolution int) *VoxelGrid {

	bounds := emptyAABB()
	for _, p := range primitives {
		bounds = bounds.Extend(p.Bounds())
	}

	if bounds.IsEmpty() {
		bounds = AABB{}
	}

	size := bounds.Size()
	bounds = bounds.Expand(1e-4 * math.Max(1, math.Max(size.X, math.Max(size.Y, size.Z))))

	return NewVoxelGrid(primitives, bounds, resolution)

}

// Cell returns the primitive indices registered in the cell at the given grid coordinates.
func (grid *VoxelGrid) Cell(i, j, k int) []int {
	return grid.cells[grid.cellIndex(i, j, k)]
}

// NearestHit walks the grid along the ray and returns the first hit found. See the VoxelGrid documentation for how this
// can differ from BruteForce.
func (grid *VoxelGrid) NearestHit(origin, direction Vector3) (RayHit, bool) {

	best, found := RayHit{T: math.Inf(1)}, false
	if len(grid.outside) > 0 {
		best, found = nearestOf(grid.Primitives, grid.outside, origin, direction)
	}

	tEnter, tExit, ok := grid.Bounds.RayTest(origin, direction)
	if !ok || direction.IsZero() {
		return best, found
	}

	entry := origin.Add(direction.Scale(tEnter))
	cell := grid.cellOf(entry)

	var step [3]int
	var tMax, tDelta [3]float64

	for a := 0; a < 3; a++ {

		axis := Axis(a)
		d := direction.Component(axis)
		o := origin.Component(axis)
		size := grid.cellSize.Component(axis)
		lo := grid.Bounds.Min.Component(axis) + float64(cell[a])*size

		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (lo + size - o) / d
			tDelta[a] = size / d
		case d < 0:
			step[a] = -1
			tMax[a] = (lo - o) / d
			tDelta[a] = -size / d
		default:
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}

	}

	candidate, hasCandidate := RayHit{T: math.Inf(1)}, false

	for {

		cellExit := math.Min(tMax[0], math.Min(tMax[1], tMax[2]))

		if list := grid.cells[grid.cellIndex(cell[0], cell[1], cell[2])]; len(list) > 0 {

			if hit, ok := nearestOf(grid.Primitives, list, origin, direction); ok {

				if !grid.Strict {
					return closerHit(best, found, hit), true
				}

				if hit.T < candidate.T {
					candidate, hasCandidate = hit, true
				}

			}

		}

		if hasCandidate && candidate.T <= cellExit*(1+1e-9)+1e-9 {
			return closerHit(best, found, candidate), true
		}

		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}

		if step[a] == 0 || tMax[a] > tExit {
			break
		}

		cell[a] += step[a]
		if cell[a] < 0 || cell[a] >= grid.Resolution {
			break
		}
		tMax[a] += tDelta[a]

	}

	if hasCandidate {
		return closerHit(best, found, candidate), true
	}

	return best, found

}

// cellOf returns the (clamped) grid coordinates of the cell containing the point.
func (grid *VoxelGrid) cellOf(p Vector3) [3]int {
	var c [3]int
	for a := 0; a < 3; a++ {
		axis := Axis(a)
		f := (p.Component(axis) - grid.Bounds.Min.Component(axis)) / grid.cellSize.Component(axis)
		c[a] = clamp(int(math.Floor(f)), 0, grid.Resolution-1)
	}
	return c
}

func (grid *VoxelGrid) cellIndex(i, j, k int) int {
	return (i*grid.Resolution+j)*grid.Resolution + k
}

// closerHit returns whichever of the two hits is nearer, preferring hit when existing wasn't found.
func closerHit(existing RayHit, existingFound bool, hit RayHit) RayHit {
	if existingFound && existing.T <= hit.T {
		return existing
	}
	return hit
}

func setComponent(vec *Vector3, axis Axis, value float64) {
	switch axis {
	case AxisX:
		vec.X = value
	case AxisY:
		vec.Y = value
	default:
		vec.Z = value
	}
}
