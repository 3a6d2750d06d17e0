package raymaze

// World is a snapshot of everything a frame renders: shapes to tessellate, spheres, and the positions of point lights.
// Every light contributes equally; there is no intensity or color per light.
// A World is built fresh for each frame by whoever owns the game state, and the renderer only ever reads it.
type World struct {
	Shapes   []Shape
	Spheres  []Sphere
	Lighting []Vector3
}

// Worldly is implemented by anything that can produce a World to render, such as a game's play screen.
type Worldly interface {
	Scene() World
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{}
}

// AddShapes appends the given Shapes to the World.
func (world *World) AddShapes(shapes ...Shape) {
	world.Shapes = append(world.Shapes, shapes...)
}

// AddSpheres appends the given Spheres to the World.
func (world *World) AddSpheres(spheres ...Sphere) {
	world.Spheres = append(world.Spheres, spheres...)
}

// AddLights appends point lights at the given positions.
func (world *World) AddLights(positions ...Vector3) {
	world.Lighting = append(world.Lighting, positions...)
}

// Polygons tessellates every Shape in the World, in order, into a single slice.
func (world *World) Polygons() []Polygon {
	count := 0
	for _, s := range world.Shapes {
		count += len(s.Vertices)
	}
	polys := make([]Polygon, 0, count)
	for _, s := range world.Shapes {
		polys = append(polys, s.Polygons()...)
	}
	return polys
}

// Primitives flattens the World into one arena of ray-testable primitives: every tessellated triangle first, in Shape order,
// followed by every Sphere. The returned primitives point into freshly allocated backing arrays, so the World can be
// modified afterwards without affecting them.
func (world *World) Primitives() []Primitive {

	polys := world.Polygons()
	spheres := make([]Sphere, len(world.Spheres))
	copy(spheres, world.Spheres)

	prims := make([]Primitive, 0, len(polys)+len(spheres))
	for i := range polys {
		prims = append(prims, &polys[i])
	}
	for i := range spheres {
		prims = append(prims, &spheres[i])
	}

	return prims

}

// Bounds returns the AABB enclosing every Shape and Sphere in the World (lights excluded).
func (world *World) Bounds() AABB {
	box := emptyAABB()
	for _, s := range world.Shapes {
		for _, v := range s.Vertices {
			box = box.ExtendPoint(v)
		}
	}
	for i := range world.Spheres {
		box = box.Extend(world.Spheres[i].Bounds())
	}
	return box
}
