package raymaze

import "testing"

func TestShapeTriangleList(t *testing.T) {

	verts := make([]Vector3, 8)
	for i := range verts {
		verts[i] = Vector3{float64(i), float64(i * i), 1}
	}

	mat := NewUniformMaterial("list", RGB{1, 2, 3})
	shape := NewShape(TriangleList, mat, verts...)

	polys := shape.Polygons()

	// The trailing two vertices don't make a triangle
	if len(polys) != 2 {
		t.Fatal("expected 2 triangles out of 8 listed vertices, got", len(polys))
	}

	if polys[1].V0 != verts[3] || polys[1].V1 != verts[4] || polys[1].V2 != verts[5] {
		t.Fatal("second triangle should be vertices 3, 4, 5; got", polys[1].Vertices())
	}

	for _, p := range polys {
		if p.Material != mat {
			t.Fatal("every triangle should share the shape's material pointer")
		}
	}

	if again := shape.Polygons(); len(again) != len(polys) || again[0] != polys[0] {
		t.Fatal("tessellating twice should give the same result")
	}

}

func TestShapeTriangleStrip(t *testing.T) {

	verts := []Vector3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}, {2, 0, 0}}
	polys := NewShape(TriangleStrip, nil, verts...).Polygons()

	if len(polys) != 3 {
		t.Fatal("expected 3 triangles out of a 5 vertex strip, got", len(polys))
	}

	for i, p := range polys {
		if p.V0 != verts[i] || p.V1 != verts[i+1] || p.V2 != verts[i+2] {
			t.Fatalf("strip triangle %d should be vertices %d, %d, %d; got %v", i, i, i+1, i+2, p.Vertices())
		}
	}

	// Winding isn't corrected, so neighbouring triangles face opposite ways
	if polys[0].FaceNormal().Dot(polys[1].FaceNormal()) >= 0 {
		t.Fatal("neighbouring strip triangles should have opposite winding")
	}

	if len(NewShape(TriangleStrip, nil, verts[:2]...).Polygons()) != 0 {
		t.Fatal("a strip of fewer than 3 vertices should have no triangles")
	}

}

func TestBoxFacesOutwards(t *testing.T) {

	min := Vector3{-1, -1, -1}
	max := Vector3{1, 2, 3}
	center := min.Add(max).Scale(0.5)

	polys := NewBox(min, max, nil).Polygons()

	if len(polys) != 12 {
		t.Fatal("expected 12 triangles in a box, got", len(polys))
	}

	for i, p := range polys {
		mid := p.V0.Add(p.V1).Add(p.V2).Scale(1.0 / 3)
		if p.FaceNormal().Dot(mid.Sub(center)) <= 0 {
			t.Fatal("box triangle", i, "faces inwards")
		}
	}

}

func TestWorldPrimitives(t *testing.T) {

	world := NewWorld()
	world.AddShapes(
		NewQuad(Vector3{0, 0, 1}, Vector3{0, 1, 1}, Vector3{1, 0, 1}, Vector3{1, 1, 1}, nil),
		NewShape(TriangleList, nil, Vector3{}, Vector3{1, 0, 0}, Vector3{0, 1, 0}),
	)
	world.AddSpheres(NewSphere(Vector3{5, 5, 5}, 1, nil))
	world.AddLights(Vector3{0, 0, -5})

	prims := world.Primitives()

	if len(prims) != 4 {
		t.Fatal("expected 3 triangles and 1 sphere, got", len(prims))
	}

	if _, ok := prims[3].(*Sphere); !ok {
		t.Fatal("spheres should come after every triangle")
	}

	bounds := world.Bounds()
	if !bounds.Min.Equals(Vector3{}) || !bounds.Max.Equals(Vector3{6, 6, 6}) {
		t.Fatal("unexpected world bounds", bounds)
	}

	// The arena is a copy; changing the World afterwards doesn't touch it
	world.Spheres[0].Radius = 10
	if prims[3].(*Sphere).Radius != 1 {
		t.Fatal("primitives should not alias the World's spheres")
	}

}
