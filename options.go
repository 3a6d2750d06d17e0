package raymaze

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrUnknownAcceleration = errors.New("raymaze: unknown acceleration")

// Acceleration selects which Accelerator a Tracer builds to find ray hits.
type Acceleration int

const (
	// AccelerationNone tests every primitive for every ray (BruteForce). This is the default.
	AccelerationNone Acceleration = iota
	// AccelerationVoxel uses a VoxelGrid that stops at the first cell yielding a hit.
	AccelerationVoxel
	// AccelerationVoxelStrict uses a VoxelGrid in Strict mode, which always agrees with AccelerationNone.
	AccelerationVoxelStrict
)

func (a Acceleration) String() string {
	switch a {
	case AccelerationVoxel:
		return "voxel"
	case AccelerationVoxelStrict:
		return "voxel-strict"
	}
	return "none"
}

// ParseAcceleration returns the Acceleration named by s, as returned by Acceleration.String().
func ParseAcceleration(s string) (Acceleration, error) {
	for _, a := range []Acceleration{AccelerationNone, AccelerationVoxel, AccelerationVoxelStrict} {
		if a.String() == s {
			return a, nil
		}
	}
	return AccelerationNone, fmt.Errorf("%w %q", ErrUnknownAcceleration, s)
}

// RenderOptions controls how a frame is traced. Create one with DefaultRenderOptions() and then change what you need.
type RenderOptions struct {
	// MaxDepth is how many times a ray can bounce (counting the primary ray) before tracing gives up and returns black.
	// This bounds the recursion even between two mirrors facing each other.
	MaxDepth int
	// Ambient is the minimum amount of light any visible surface receives, so nothing lit is ever fully black.
	Ambient float64
	// ReflectionWeight is how strongly reflections are added on top of a surface's own shaded color.
	ReflectionWeight float64
	// SuperSample renders four jittered rays per pixel and averages them, to smooth jagged edges.
	SuperSample bool
	// TwoSidedLighting, if true (the default), lights surfaces by the absolute angle to the light, so faces turned away from
	// a light are lit as if they faced it. If false, faces turned away from a light receive nothing from it.
	TwoSidedLighting bool
	// Acceleration picks the hit-finding strategy.
	Acceleration Acceleration
	// VoxelResolution is the number of cells along each axis when using a VoxelGrid.
	VoxelResolution int
	// Workers is how many goroutines render rows in parallel. Values below 1 use runtime.NumCPU().
	Workers int
}

// DefaultRenderOptions returns the RenderOptions used by a new Canvas.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		MaxDepth:         7,
		Ambient:          0.1,
		ReflectionWeight: 0.25,
		SuperSample:      false,
		TwoSidedLighting: true,
		Acceleration:     AccelerationNone,
		VoxelResolution:  DefaultVoxelResolution,
		Workers:          runtime.NumCPU(),
	}
}

func (options RenderOptions) workerCount() int {
	if options.Workers < 1 {
		return runtime.NumCPU()
	}
	return options.Workers
}
