package raymaze

import "sync/atomic"

// Tracer traces rays through a single frame's worth of scene data. It holds the tessellated primitives (inside its Accelerator)
// and the light positions, all read-only once built, so one Tracer can be used from any number of goroutines at once.
type Tracer struct {
	Accelerator Accelerator
	Lights      []Vector3
	Options     RenderOptions

	rays atomic.Uint64
}

// NewTracer tessellates the World and builds the Accelerator the options ask for. Do this once per frame, not per pixel.
func NewTracer(world *World, options RenderOptions) *Tracer {

	prims := world.Primitives()

	var accel Accelerator

	switch options.Acceleration {
	case AccelerationVoxel, AccelerationVoxelStrict:
		grid := NewVoxelGridFromPrimitives(prims, options.VoxelResolution)
		grid.Strict = options.Acceleration == AccelerationVoxelStrict
		accel = grid
	default:
		accel = NewBruteForce(prims)
	}

	lights := make([]Vector3, len(world.Lighting))
	copy(lights, world.Lighting)

	return &Tracer{
		Accelerator: accel,
		Lights:      lights,
		Options:     options,
	}

}

// Trace returns the color seen along the ray. The direction doesn't need to be normalized, but must not be zero.
func (tr *Tracer) Trace(origin, direction Vector3) RGB {
	return tr.shade(0, origin, direction)
}

// RayCount returns the number of rays (primary, shadow, and reflection) tested against the scene so far.
func (tr *Tracer) RayCount() uint64 {
	return tr.rays.Load()
}

func (tr *Tracer) nearestHit(origin, direction Vector3) (RayHit, bool) {
	tr.rays.Add(1)
	return tr.Accelerator.NearestHit(origin, direction)
}

func (tr *Tracer) shade(depth int, origin, direction Vector3) RGB {

	if depth >= tr.Options.MaxDepth {
		return Black
	}

	hit, ok := tr.nearestHit(origin, direction)
	if !ok {
		return Black
	}

	normal := hit.Normal()
	base := hit.Primitive.surface().ColorAt(hit.Position, hit.Primitive)

	color := base.Scale(tr.lambert(hit.Position, normal))

	reflected := Reflect(direction, normal)
	mirror := tr.shade(depth+1, hit.Position.Add(reflected.Scale(rayBias)), reflected)

	if !mirror.IsBlack() {
		color = color.Blend(mirror, tr.Options.ReflectionWeight)
	}

	return color

}
