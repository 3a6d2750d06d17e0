package raymaze

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
)

var (
	ErrNoScene       = errors.New("raymaze: document has no scene or nodes to load")
	ErrMalformedGLTF = errors.New("raymaze: malformed glTF document")
)

// GLTFLoadOptions controls how a glTF document is turned into a World.
type GLTFLoadOptions struct {
	// DefaultMaterial is used for primitives that don't reference a material. If nil, a light gray uniform material is used.
	DefaultMaterial *Material
	// Transform is applied to every position after the node hierarchy's own transforms. glTF scenes are Y-up, while a Canvas
	// has +Y pointing down the screen and looks along +Z, so this is where a scene gets placed in front of the camera.
	Transform Matrix4
	// IncludeSpotLights, if true, turns spot lights into point lights at the same position. Otherwise they're skipped.
	// Directional lights have no position and are always skipped.
	IncludeSpotLights bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		Transform:         NewMatrix4(),
		IncludeSpotLights: true,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, resolving any external buffers relative to it.
// Passing nil for loadOptions will load the file using default load options.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*World, error) {

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raymaze: opening glTF file %s: %w", path, err)
	}

	return worldFromGLTF(doc, loadOptions)

}

// LoadGLTFData loads a .glb, or a .gltf with only embedded (data URI) buffers, from the reader given.
// Every mesh primitive in the default scene becomes a Shape (triangle lists and strips directly, fans converted to lists),
// and every KHR_lights_punctual point light becomes a light position. Passing nil for loadOptions will load the file using
// default load options.
func LoadGLTFData(r io.Reader, loadOptions *GLTFLoadOptions) (*World, error) {

	doc := new(gltf.Document)

	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("raymaze: decoding glTF data: %w", err)
	}

	return worldFromGLTF(doc, loadOptions)

}

type gltfLoader struct {
	doc       *gltf.Document
	options   *GLTFLoadOptions
	world     *World
	materials map[int]*Material
	visiting  map[int]bool
}

func worldFromGLTF(doc *gltf.Document, loadOptions *GLTFLoadOptions) (*World, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	if loadOptions.DefaultMaterial == nil {
		opts := *loadOptions
		opts.DefaultMaterial = NewUniformMaterial("default", RGB{0xcc, 0xcc, 0xcc})
		loadOptions = &opts
	}

	loader := &gltfLoader{
		doc:       doc,
		options:   loadOptions,
		world:     NewWorld(),
		materials: map[int]*Material{},
		visiting:  map[int]bool{},
	}

	var roots []int

	if len(doc.Scenes) > 0 {
		sceneIndex := 0
		if doc.Scene != nil {
			sceneIndex = int(*doc.Scene)
		}
		if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
			return nil, fmt.Errorf("%w: scene %d doesn't exist", ErrMalformedGLTF, sceneIndex)
		}
		for _, n := range doc.Scenes[sceneIndex].Nodes {
			roots = append(roots, int(n))
		}
	} else {
		// No scenes; treat every node that isn't anybody's child as a root
		isChild := map[int]bool{}
		for _, node := range doc.Nodes {
			for _, c := range node.Children {
				isChild[int(c)] = true
			}
		}
		for i := range doc.Nodes {
			if !isChild[i] {
				roots = append(roots, i)
			}
		}
	}

	if len(roots) == 0 {
		return nil, ErrNoScene
	}

	for _, root := range roots {
		if err := loader.loadNode(root, loadOptions.Transform); err != nil {
			return nil, err
		}
	}

	return loader.world, nil

}

func (loader *gltfLoader) loadNode(index int, parent Matrix4) error {

	if index < 0 || index >= len(loader.doc.Nodes) {
		return fmt.Errorf("%w: node %d doesn't exist", ErrMalformedGLTF, index)
	}

	if loader.visiting[index] {
		return fmt.Errorf("%w: node %d is its own ancestor", ErrMalformedGLTF, index)
	}
	loader.visiting[index] = true
	defer delete(loader.visiting, index)

	node := loader.doc.Nodes[index]
	transform := nodeTransform(node).Mult(parent)

	if node.Mesh != nil {
		if err := loader.loadMesh(int(*node.Mesh), transform); err != nil {
			return err
		}
	}

	if ext, exists := node.Extensions[lightspunctual.ExtensionName]; exists {
		loader.loadLight(node.Name, ext, transform)
	}

	for _, child := range node.Children {
		if err := loader.loadNode(int(child), transform); err != nil {
			return err
		}
	}

	return nil

}

func nodeTransform(node *gltf.Node) Matrix4 {

	if m := NewMatrix4FromColumnMajor(node.MatrixOrDefault()); !m.IsIdentity() {
		return m
	}

	s := node.ScaleOrDefault()
	r := node.RotationOrDefault()
	t := node.TranslationOrDefault()

	return NewMatrix4Scale(s[0], s[1], s[2]).
		Mult(NewMatrix4FromQuaternion(r[0], r[1], r[2], r[3])).
		Mult(NewMatrix4Translate(t[0], t[1], t[2]))

}

func (loader *gltfLoader) loadMesh(meshIndex int, transform Matrix4) error {

	doc := loader.doc

	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return fmt.Errorf("%w: mesh %d doesn't exist", ErrMalformedGLTF, meshIndex)
	}

	mesh := doc.Meshes[meshIndex]

	for primIndex, prim := range mesh.Primitives {

		posAccessor, exists := prim.Attributes[gltf.POSITION]
		if !exists {
			log.Printf("Warning: mesh %q primitive %d has no positions; skipping it.\n", mesh.Name, primIndex)
			continue
		}

		if posAccessor < 0 || posAccessor >= len(doc.Accessors) {
			return fmt.Errorf("%w: mesh %q positions use missing accessor %d", ErrMalformedGLTF, mesh.Name, posAccessor)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return fmt.Errorf("raymaze: reading positions of mesh %q: %w", mesh.Name, err)
		}

		var indices []uint32

		if prim.Indices != nil {
			if int(*prim.Indices) < 0 || int(*prim.Indices) >= len(doc.Accessors) {
				return fmt.Errorf("%w: mesh %q indices use missing accessor %d", ErrMalformedGLTF, mesh.Name, *prim.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("raymaze: reading indices of mesh %q: %w", mesh.Name, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		verts := make([]Vector3, 0, len(indices))
		for _, i := range indices {
			if int(i) >= len(positions) {
				return fmt.Errorf("%w: mesh %q index %d is out of range of %d positions", ErrMalformedGLTF, mesh.Name, i, len(positions))
			}
			p := positions[i]
			verts = append(verts, transform.MultVec(Vector3{float64(p[0]), float64(p[1]), float64(p[2])}))
		}

		material := loader.options.DefaultMaterial
		if prim.Material != nil {
			if material, err = loader.material(int(*prim.Material)); err != nil {
				return err
			}
		}

		switch prim.Mode {

		case gltf.PrimitiveTriangles:
			loader.world.AddShapes(NewShape(TriangleList, material, verts...))

		case gltf.PrimitiveTriangleStrip:
			loader.world.AddShapes(NewShape(TriangleStrip, material, verts...))

		case gltf.PrimitiveTriangleFan:
			list := make([]Vector3, 0, len(verts)*3)
			for i := 1; i+1 < len(verts); i++ {
				list = append(list, verts[0], verts[i], verts[i+1])
			}
			loader.world.AddShapes(NewShape(TriangleList, material, list...))

		default:
			log.Printf("Warning: mesh %q primitive %d isn't made of triangles (mode %d); skipping it.\n", mesh.Name, primIndex, prim.Mode)

		}

	}

	return nil

}

// material converts the glTF material at the given index into a uniform Material of its base color, caching it so every
// primitive using it shares the same pointer.
func (loader *gltfLoader) material(index int) (*Material, error) {

	if mat, exists := loader.materials[index]; exists {
		return mat, nil
	}

	if index < 0 || index >= len(loader.doc.Materials) {
		return nil, fmt.Errorf("%w: material %d doesn't exist", ErrMalformedGLTF, index)
	}

	gltfMat := loader.doc.Materials[index]

	color := RGB{255, 255, 255}
	if pbr := gltfMat.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		color = RGB{unitToChannel(f[0]), unitToChannel(f[1]), unitToChannel(f[2])}
	}

	mat := NewUniformMaterial(gltfMat.Name, color)
	loader.materials[index] = mat
	return mat, nil

}

func (loader *gltfLoader) loadLight(name string, ext any, transform Matrix4) {

	if lights, ok := loader.doc.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights); ok {
		if index, ok := ext.(lightspunctual.LightIndex); ok && int(index) < len(lights) {
			switch lights[index].Type {
			case lightspunctual.TypeDirectional:
				log.Printf("Warning: directional light %q has no position; skipping it.\n", name)
				return
			case lightspunctual.TypeSpot:
				if !loader.options.IncludeSpotLights {
					return
				}
			}
		}
	}

	loader.world.AddLights(transform.MultVec(Vector3{}))

}

func unitToChannel(f float64) uint8 {
	return uint8(math.Round(clamp(f, 0, 1) * 255))
}
