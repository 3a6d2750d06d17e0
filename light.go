package raymaze

import "math"

// rayBias is the fraction of a secondary ray's direction that its origin is pushed along, so the ray doesn't immediately
// strike the surface it's leaving.
const rayBias = 1e-4

// Reflect returns the mirror reflection of direction about the (unit) normal: D - 2(D·N)N.
// The result has the same length as direction.
func Reflect(direction, normal Vector3) Vector3 {
	return direction.Sub(normal.Scale(2 * direction.Dot(normal)))
}

// lightContribution returns how much the point light at lightPos lights the surface point with the given unit normal.
// A light blocked by anything between it and the point contributes nothing; otherwise it contributes the cosine of the
// angle between the normal and the direction to the light (the absolute cosine if twoSided is true, else clamped at 0).
// A light sitting exactly on the point has no direction to speak of, and so also contributes nothing.
func (tr *Tracer) lightContribution(point, normal, lightPos Vector3, twoSided bool) float64 {

	toLight := lightPos.Sub(point)

	if toLight.MagnitudeSquared() < rayBias*rayBias {
		return 0
	}

	// The shadow ray runs along toLight, so t == 1 is the light itself
	if hit, ok := tr.nearestHit(point.Add(toLight.Scale(rayBias)), toLight); ok && hit.T < 1-rayBias {
		return 0
	}

	cos := toLight.Unit().Dot(normal)

	if twoSided {
		return math.Abs(cos)
	}

	return math.Max(cos, 0)

}

// lambert sums the contributions of every light in the scene at the point, floored at the ambient level.
func (tr *Tracer) lambert(point, normal Vector3) float64 {
	total := 0.0
	for _, l := range tr.Lights {
		total += tr.lightContribution(point, normal, l, tr.Options.TwoSidedLighting)
	}
	return math.Max(total, tr.Options.Ambient)
}
