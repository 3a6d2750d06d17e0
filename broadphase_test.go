package raymaze

import (
	"math"
	"math/rand"
	"testing"
)

// regressionScene returns 27 small, randomly oriented triangles, each lying entirely inside a single cell of a 6x6x6 grid
// over [0, 6]^3 (every other cell along each axis).
func regressionScene(rng *rand.Rand) []Primitive {

	prims := make([]Primitive, 0, 27)

	jitter := func() float64 { return (rng.Float64()*2 - 1) * 0.3 }

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c := Vector3{float64(2*i) + 0.5, float64(2*j) + 0.5, float64(2*k) + 0.5}
				prims = append(prims, NewPolygon(
					c.Add(Vector3{jitter(), jitter(), jitter()}),
					c.Add(Vector3{jitter(), jitter(), jitter()}),
					c.Add(Vector3{jitter(), jitter(), jitter()}),
					nil,
				))
			}
		}
	}

	return prims

}

// randomRay returns a ray starting somewhere around the volume, aimed at the centroid of one of the triangles so that most rays hit.
func randomRay(rng *rand.Rand, prims []Primitive, spread float64) (Vector3, Vector3) {
	verts := prims[rng.Intn(len(prims))].(*Polygon).Vertices()
	aim := verts[0].Add(verts[1]).Add(verts[2]).Scale(1.0 / 3)
	origin := Vector3{rng.Float64() * spread, rng.Float64() * spread, rng.Float64() * spread}.Sub(Vector3{spread / 4, spread / 4, spread / 4})
	return origin, aim.Sub(origin)
}

func agree(t *testing.T, name string, a RayHit, aOK bool, b RayHit, bOK bool) {
	t.Helper()
	if aOK != bOK {
		t.Fatalf("%s: brute force found a hit == %t, grid found a hit == %t", name, aOK, bOK)
	}
	if aOK && (a.Index != b.Index || math.Abs(a.T-b.T) > 1e-9) {
		t.Fatalf("%s: brute force hit #%d at t = %f, grid hit #%d at t = %f", name, a.Index, a.T, b.Index, b.T)
	}
}

func TestVoxelGridAgreesWithBruteForce(t *testing.T) {

	rng := rand.New(rand.NewSource(1))
	prims := regressionScene(rng)

	brute := NewBruteForce(prims)
	grid := NewVoxelGrid(prims, AABB{Max: Vector3{6, 6, 6}}, 6)
	strict := NewVoxelGrid(prims, AABB{Max: Vector3{6, 6, 6}}, 6)
	strict.Strict = true

	hits := 0

	for i := 0; i < 2000; i++ {

		origin, dir := randomRay(rng, prims, 12)

		want, wantOK := brute.NearestHit(origin, dir)
		got, gotOK := grid.NearestHit(origin, dir)
		agree(t, "grid", want, wantOK, got, gotOK)

		got, gotOK = strict.NearestHit(origin, dir)
		agree(t, "strict grid", want, wantOK, got, gotOK)

		if wantOK {
			hits++
		}

	}

	if hits < 500 {
		t.Fatal("too few rays hit anything to be a useful comparison:", hits)
	}

}

func TestStrictVoxelGridAgreesWithBruteForce(t *testing.T) {

	rng := rand.New(rand.NewSource(2))

	// Large triangles that straddle plenty of cells
	prims := make([]Primitive, 0, 40)
	for i := 0; i < 40; i++ {
		c := Vector3{rng.Float64() * 20, rng.Float64() * 20, rng.Float64() * 20}
		v := func() Vector3 {
			return c.Add(Vector3{rng.Float64()*8 - 4, rng.Float64()*8 - 4, rng.Float64()*8 - 4})
		}
		prims = append(prims, NewPolygon(v(), v(), v(), nil))
	}

	brute := NewBruteForce(prims)
	grid := NewVoxelGridFromPrimitives(prims, DefaultVoxelResolution)
	grid.Strict = true

	for i := 0; i < 2000; i++ {
		origin, dir := randomRay(rng, prims, 40)
		want, wantOK := brute.NearestHit(origin, dir)
		got, gotOK := grid.NearestHit(origin, dir)
		agree(t, "strict grid", want, wantOK, got, gotOK)
	}

}

// A large, slanted triangle registered in the first cell a ray passes through can be struck further along the ray than a small
// triangle that only lives in the next cell. The grid stops at the first cell with any hit, so it returns the further triangle;
// in strict mode it keeps walking and agrees with brute force.
func TestVoxelGridBoundaryTradeoff(t *testing.T) {

	slanted := NewPolygon(Vector3{0.92, -0.2, 0}, Vector3{0.92, -0.2, 1}, Vector3{2.88, 1.2, 0.5}, nil)
	small := NewPolygon(Vector3{1.2, 0.3, 0.3}, Vector3{1.2, 0.7, 0.3}, Vector3{1.2, 0.5, 0.7}, nil)
	prims := []Primitive{slanted, small}

	bounds := AABB{Max: Vector3{2, 2, 2}}
	origin := Vector3{0.1, 0.5, 0.5}

	grid := NewVoxelGrid(prims, bounds, 2)

	if cell := grid.Cell(0, 0, 0); len(cell) != 1 || cell[0] != 0 {
		t.Fatal("only the slanted triangle should be registered in the first cell, got", cell)
	}

	if cell := grid.Cell(1, 0, 0); len(cell) != 2 {
		t.Fatal("both triangles should be registered in the second cell, got", cell)
	}

	want, _ := NewBruteForce(prims).NearestHit(origin, VecX)
	if want.Index != 1 || math.Abs(want.T-1.1) > 1e-9 {
		t.Fatal("brute force should strike the small triangle at t = 1.1, got", want.Index, want.T)
	}

	got, ok := grid.NearestHit(origin, VecX)
	if !ok || got.Index != 0 || math.Abs(got.T-1.8) > 1e-9 {
		t.Fatal("the grid should stop in the first cell and return the slanted triangle at t = 1.8, got", got.Index, got.T)
	}

	grid.Strict = true
	got, ok = grid.NearestHit(origin, VecX)
	if !ok || got.Index != 1 {
		t.Fatal("a strict grid should agree with brute force, got", got.Index, got.T)
	}

}

func TestVoxelGridOutside(t *testing.T) {

	inside := NewPolygon(Vector3{0, 0, 5}, Vector3{1, 0, 5}, Vector3{0, 1, 5}, nil)
	outside := NewPolygon(Vector3{0, 0, 50}, Vector3{1, 0, 50}, Vector3{0, 1, 50}, nil)

	grid := NewVoxelGrid([]Primitive{inside, outside}, AABB{Min: Vector3{-1, -1, 0}, Max: Vector3{2, 2, 10}}, 4)

	hit, ok := grid.NearestHit(Vector3{0.2, 0.2, 0}, VecZ)
	if !ok || hit.Index != 0 {
		t.Fatal("expected to strike the triangle inside the grid first, got", hit.Index, ok)
	}

	hit, ok = grid.NearestHit(Vector3{0.2, 0.2, 20}, VecZ)
	if !ok || hit.Index != 1 {
		t.Fatal("primitives outside of the grid bounds should still be found, got", hit.Index, ok)
	}

	if _, ok := grid.NearestHit(Vector3{0.2, 0.2, 0}, VecZ.Invert()); ok {
		t.Fatal("ray pointing away from everything should miss")
	}

}

func BenchmarkNearestHit(b *testing.B) {

	b.StopTimer()

	rng := rand.New(rand.NewSource(1))
	prims := regressionScene(rng)

	origins := make([]Vector3, 256)
	dirs := make([]Vector3, 256)
	for i := range origins {
		origins[i], dirs[i] = randomRay(rng, prims, 12)
	}

	accelerators := map[string]Accelerator{
		"brute": NewBruteForce(prims),
		"voxel": NewVoxelGridFromPrimitives(prims, DefaultVoxelResolution),
	}

	b.ReportAllocs()
	b.StartTimer()

	for name, accel := range accelerators {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				accel.NearestHit(origins[i%len(origins)], dirs[i%len(dirs)])
			}
		})
	}

}
