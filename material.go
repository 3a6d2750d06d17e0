package raymaze

import "math"

// sphereTextureFlatten stretches the Z component of a SphereTexture's sampling direction, which squashes most of the sphere
// into a thin band around the equator of the texture.
const sphereTextureFlatten = 100

// ColorGenerator produces the base (unlit) color of a primitive at a world-space point on its surface.
type ColorGenerator interface {
	ColorAt(point Vector3, prim Primitive) RGB
}

// UniformColor colors the entire surface one color.
type UniformColor struct {
	Color RGB
}

// ColorAt returns the stored color.
func (uc UniformColor) ColorAt(Vector3, Primitive) RGB {
	return uc.Color
}

// LinearColor blends three anchor colors, one for each vertex of the triangle it's applied to.
// The blend is an inverse-distance mix rather than a barycentric one: for each channel, the result is the sum over the three
// vertices of (1 - d * c / T), where d is the distance from the point to that vertex, c is the vertex's channel value, and
// T is the sum of all three distances. The result is clamped to [0, 255].
// On a Sphere (which has no vertices), LinearColor returns C0.
type LinearColor struct {
	C0, C1, C2 RGB
}

// ColorAt returns the blended color at the point given.
func (lc LinearColor) ColorAt(point Vector3, prim Primitive) RGB {

	poly, ok := prim.(*Polygon)
	if !ok {
		return lc.C0
	}

	verts := poly.Vertices()
	anchors := [3]RGB{lc.C0, lc.C1, lc.C2}

	var dists [3]float64
	total := 0.0
	for i, v := range verts {
		dists[i] = point.Distance(v)
		total += dists[i]
	}

	var r, g, b float64
	for i, c := range anchors {
		r += 1 - dists[i]*float64(c.R)/total
		g += 1 - dists[i]*float64(c.G)/total
		b += 1 - dists[i]*float64(c.B)/total
	}

	return RGB{clampChannel(r), clampChannel(g), clampChannel(b)}

}

// SphereTexture wraps a texture around a sphere (or anything else) centered at Center, using an arcsine projection.
type SphereTexture struct {
	Center  Vector3
	Texture *Texture2D
}

// ColorAt samples the texture in the direction of the point from the center.
func (st SphereTexture) ColorAt(point Vector3, _ Primitive) RGB {
	tu, tv := st.UV(point)
	w := int(st.Texture.Width())
	h := int(st.Texture.Height())
	x := min(int(math.Floor(tu*float64(w))), w-1)
	y := min(int(math.Floor(tv*float64(h))), h-1)
	return st.Texture.At(max(x, 0), max(y, 0))
}

// UV returns the texture coordinates, each ranging from 0 to 1, that the point maps to.
// A point directly along +Z from the center maps to v = 1 (the pole), and any point level with the center on Z maps to v = 0.5.
// A point exactly at the center maps to the middle of the texture.
func (st SphereTexture) UV(point Vector3) (float64, float64) {

	dir := point.Sub(st.Center)
	dir.Z *= sphereTextureFlatten

	if dir.IsZero() {
		return 0.5, 0.5
	}

	dir = dir.Unit()

	tu := math.Asin(clamp(dir.X, -1, 1))/math.Pi + 0.5
	tv := math.Asin(clamp(dir.Z, -1, 1))/math.Pi + 0.5
	return tu, tv

}

// PlaneTexture tiles a texture across the plane perpendicular to Axis.
// Start is where texel (0, 0) begins, and End is the far corner of that first texel, so End - Start (projected onto the plane)
// is the size of a single texel. The texture covers width * height texels from Start; points outside that come out black.
type PlaneTexture struct {
	Start, End Vector3
	Axis       Axis
	Texture    *Texture2D
}

// ColorAt returns the texel under the point.
func (pt PlaneTexture) ColorAt(point Vector3, _ Primitive) RGB {

	px, py := point.Project(pt.Axis)
	sx, sy := pt.Start.Project(pt.Axis)
	ex, ey := pt.End.Project(pt.Axis)

	u := (px - sx) / (ex - sx)
	v := (py - sy) / (ey - sy)

	w := float64(pt.Texture.Width())
	h := float64(pt.Texture.Height())

	// Written so that NaN (a zero-sized texel) also lands outside
	if !(u >= 0 && u < w && v >= 0 && v < h) {
		return Black
	}

	return pt.Texture.At(int(u), int(v))

}

// Material describes how a surface is colored. Materials are shared by pointer between all of the primitives that use them.
type Material struct {
	Name  string
	Color ColorGenerator
}

// NewMaterial creates a new Material that colors surfaces using the ColorGenerator given.
func NewMaterial(name string, color ColorGenerator) *Material {
	return &Material{Name: name, Color: color}
}

// NewUniformMaterial is a shortcut to create a Material of a single color.
func NewUniformMaterial(name string, color RGB) *Material {
	return NewMaterial(name, UniformColor{Color: color})
}

// ColorAt returns the base color of the primitive at the point given. A nil Material, or one without a ColorGenerator,
// is black.
func (material *Material) ColorAt(point Vector3, prim Primitive) RGB {
	if material == nil || material.Color == nil {
		return Black
	}
	return material.Color.ColorAt(point, prim)
}
