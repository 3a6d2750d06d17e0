package raymaze

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

var ErrMalformedDAE = errors.New("raymaze: malformed DAE document")

type daeInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
}

type daeAccessor struct {
	Stride int `xml:"stride,attr"`
}

type daeSource struct {
	ID       string      `xml:"id,attr"`
	Floats   string      `xml:"float_array"`
	Accessor daeAccessor `xml:"technique_common>accessor"`
}

func (source daeSource) Parse() ([]float64, error) {
	fields := strings.Fields(source.Floats)
	data := make([]float64, 0, len(fields))
	for _, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: source %s: %w", ErrMalformedDAE, source.ID, err)
		}
		data = append(data, f)
	}
	return data, nil
}

type daeTriangles struct {
	Count    int        `xml:"count,attr"`
	Material string     `xml:"material,attr"`
	Inputs   []daeInput `xml:"input"`
	Indices  string     `xml:"p"`
}

type daeVertices struct {
	ID     string     `xml:"id,attr"`
	Inputs []daeInput `xml:"input"`
}

type daeGeometry struct {
	ID        string         `xml:"id,attr"`
	Name      string         `xml:"name,attr"`
	Sources   []daeSource    `xml:"mesh>source"`
	Vertices  daeVertices    `xml:"mesh>vertices"`
	Triangles []daeTriangles `xml:"mesh>triangles"`
}

type daeEffect struct {
	ID      string `xml:"id,attr"`
	Lambert string `xml:"profile_COMMON>technique>lambert>diffuse>color"`
	Phong   string `xml:"profile_COMMON>technique>phong>diffuse>color"`
}

type daeURL struct {
	URL string `xml:"url,attr"`
}

type daeMaterial struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Effect daeURL `xml:"instance_effect"`
}

type daeLight struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name,attr"`
	Directional *struct{} `xml:"technique_common>directional"`
	Spot        *struct{} `xml:"technique_common>spot"`
}

type daeInstanceMaterial struct {
	Symbol string `xml:"symbol,attr"`
	Target string `xml:"target,attr"`
}

type daeInstanceGeometry struct {
	URL       string                `xml:"url,attr"`
	Materials []daeInstanceMaterial `xml:"bind_material>technique_common>instance_material"`
}

type daeNode struct {
	Name       string                `xml:"name,attr"`
	Transform  string                `xml:"matrix"`
	Geometries []daeInstanceGeometry `xml:"instance_geometry"`
	Lights     []daeURL              `xml:"instance_light"`
	Children   []daeNode             `xml:"node"`
}

// ParseTransform returns the node's matrix, or the identity matrix if it has none.
func (node daeNode) ParseTransform() (Matrix4, error) {

	fields := strings.Fields(node.Transform)

	if len(fields) == 0 {
		return NewMatrix4(), nil
	}

	if len(fields) != 16 {
		return Matrix4{}, fmt.Errorf("%w: node %q matrix has %d values", ErrMalformedDAE, node.Name, len(fields))
	}

	// Collada matrices are written row by row for column vectors, so they're transposed here
	mat := NewMatrix4()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			f, err := strconv.ParseFloat(fields[i*4+j], 64)
			if err != nil {
				return Matrix4{}, fmt.Errorf("%w: node %q matrix: %w", ErrMalformedDAE, node.Name, err)
			}
			mat[j][i] = f
		}
	}

	return mat, nil

}

type daeVisualScene struct {
	Name  string    `xml:"name,attr"`
	Nodes []daeNode `xml:"node"`
}

type daeDocument struct {
	XMLName    xml.Name         `xml:"COLLADA"`
	Effects    []daeEffect      `xml:"library_effects>effect"`
	Materials  []daeMaterial    `xml:"library_materials>material"`
	Geometries []daeGeometry    `xml:"library_geometries>geometry"`
	Lights     []daeLight       `xml:"library_lights>light"`
	Scenes     []daeVisualScene `xml:"library_visual_scenes>visual_scene"`
}

// DAELoadOptions represents options one can use to tweak how .dae files are loaded.
type DAELoadOptions struct {
	// ConvertZUp, if true, turns Blender's Z-up axes into the Canvas's, so the scene appears as it does in Blender's front view:
	// Blender's +Z (up) becomes -Y, and its +Y (away from the front view) becomes +Z.
	ConvertZUp bool
	// DefaultMaterial is used for triangles that don't resolve to a material. If nil, a light gray uniform material is used.
	DefaultMaterial *Material
	// Transform is applied to every position after the node hierarchy's own transforms (and ConvertZUp).
	Transform Matrix4
}

// DefaultDAELoadOptions returns a default instance of DAELoadOptions.
func DefaultDAELoadOptions() *DAELoadOptions {
	return &DAELoadOptions{
		ConvertZUp: true,
		Transform:  NewMatrix4(),
	}
}

// zUpToCanvas maps (x, y, z) to (x, -z, y).
var zUpToCanvas = Matrix4{
	{1, 0, 0, 0},
	{0, 0, 1, 0},
	{0, -1, 0, 0},
	{0, 0, 0, 1},
}

// LoadDAEFile takes a filepath to a .dae model file, and returns a *World populated with the file's triangles and lights.
func LoadDAEFile(path string, options *DAELoadOptions) (*World, error) {

	if fileData, err := os.ReadFile(path); err != nil {
		return nil, err
	} else {
		return LoadDAEData(fileData, options)
	}

}

// LoadDAEData takes a []byte consisting of the contents of a DAE (Collada) file, and returns a *World from its first visual scene.
// Every <triangles> element of an instanced geometry becomes a Shape. Triangles with vertex colors get one LinearColor
// material each blending those colors; otherwise they use their material's lambert or phong diffuse color. Point and spot lights
// become light positions, while directional lights are skipped. Animations, cameras, and polygon lists are not loaded.
func LoadDAEData(data []byte, options *DAELoadOptions) (*World, error) {

	if options == nil {
		options = DefaultDAELoadOptions()
	}

	if options.DefaultMaterial == nil {
		opts := *options
		opts.DefaultMaterial = NewUniformMaterial("default", RGB{0xcc, 0xcc, 0xcc})
		options = &opts
	}

	doc := &daeDocument{}

	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("raymaze: decoding DAE data: %w", err)
	}

	if len(doc.Scenes) == 0 || len(doc.Scenes[0].Nodes) == 0 {
		return nil, ErrNoScene
	}

	loader := &daeLoader{
		doc:        doc,
		options:    options,
		world:      NewWorld(),
		materials:  map[string]*Material{},
		geometries: map[string]daeGeometry{},
		lights:     map[string]daeLight{},
	}

	for _, geo := range doc.Geometries {
		loader.geometries[geo.ID] = geo
	}

	for _, light := range doc.Lights {
		loader.lights[light.ID] = light
	}

	effectColors := map[string]string{}
	for _, effect := range doc.Effects {
		if effect.Lambert != "" {
			effectColors[effect.ID] = effect.Lambert
		} else {
			effectColors[effect.ID] = effect.Phong
		}
	}

	for _, mat := range doc.Materials {

		color := RGB{255, 255, 255}

		if values := strings.Fields(effectColors[strings.TrimPrefix(mat.Effect.URL, "#")]); len(values) >= 3 {
			var rgb [3]float64
			for i := range rgb {
				f, err := strconv.ParseFloat(values[i], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: material %q color: %w", ErrMalformedDAE, mat.Name, err)
				}
				rgb[i] = f
			}
			color = RGB{unitToChannel(rgb[0]), unitToChannel(rgb[1]), unitToChannel(rgb[2])}
		}

		name := mat.Name
		if name == "" {
			name = mat.ID
		}

		loader.materials[mat.ID] = NewUniformMaterial(name, color)

	}

	root := options.Transform
	if options.ConvertZUp {
		root = zUpToCanvas.Mult(options.Transform)
	}

	for _, node := range doc.Scenes[0].Nodes {
		if err := loader.loadNode(node, root); err != nil {
			return nil, err
		}
	}

	return loader.world, nil

}

type daeLoader struct {
	doc        *daeDocument
	options    *DAELoadOptions
	world      *World
	materials  map[string]*Material
	geometries map[string]daeGeometry
	lights     map[string]daeLight
}

func (loader *daeLoader) loadNode(node daeNode, parent Matrix4) error {

	local, err := node.ParseTransform()
	if err != nil {
		return err
	}

	transform := local.Mult(parent)

	for _, instance := range node.Geometries {

		geo, exists := loader.geometries[strings.TrimPrefix(instance.URL, "#")]
		if !exists {
			return fmt.Errorf("%w: node %q instances unknown geometry %s", ErrMalformedDAE, node.Name, instance.URL)
		}

		if err := loader.loadGeometry(geo, instance, transform); err != nil {
			return err
		}

	}

	for _, instance := range node.Lights {

		light, exists := loader.lights[strings.TrimPrefix(instance.URL, "#")]
		if !exists {
			return fmt.Errorf("%w: node %q instances unknown light %s", ErrMalformedDAE, node.Name, instance.URL)
		}

		if light.Directional != nil {
			log.Printf("Warning: directional light %q has no position; skipping it.\n", light.Name)
			continue
		}

		loader.world.AddLights(transform.MultVec(Vector3{}))

	}

	for _, child := range node.Children {
		if err := loader.loadNode(child, transform); err != nil {
			return err
		}
	}

	return nil

}

// material resolves a <triangles> material symbol through the instance's bindings to a loaded Material.
func (loader *daeLoader) material(symbol string, instance daeInstanceGeometry) *Material {

	id := symbol
	for _, binding := range instance.Materials {
		if binding.Symbol == symbol {
			id = strings.TrimPrefix(binding.Target, "#")
			break
		}
	}

	if mat, exists := loader.materials[id]; exists {
		return mat
	}

	return loader.options.DefaultMaterial

}

func (loader *daeLoader) loadGeometry(geo daeGeometry, instance daeInstanceGeometry, transform Matrix4) error {

	sources := map[string]daeSource{}
	for _, source := range geo.Sources {
		sources[source.ID] = source
	}

	var positionSource string
	for _, input := range geo.Vertices.Inputs {
		if input.Semantic == "POSITION" {
			positionSource = strings.TrimPrefix(input.Source, "#")
		}
	}

	positions, err := sources[positionSource].Parse()
	if err != nil {
		return err
	}

	for _, tris := range geo.Triangles {

		stride := 0
		vertexOffset, colorOffset := -1, -1
		var colorSource daeSource

		for _, input := range tris.Inputs {
			stride = max(stride, input.Offset+1)
			switch input.Semantic {
			case "VERTEX":
				vertexOffset = input.Offset
			case "COLOR":
				colorOffset = input.Offset
				colorSource = sources[strings.TrimPrefix(input.Source, "#")]
			}
		}

		if vertexOffset < 0 {
			log.Printf("Warning: geometry %q has triangles without vertices; skipping them.\n", geo.Name)
			continue
		}

		fields := strings.Fields(tris.Indices)
		indices := make([]int, len(fields))
		for i, f := range fields {
			if indices[i], err = strconv.Atoi(f); err != nil {
				return fmt.Errorf("%w: geometry %q indices: %w", ErrMalformedDAE, geo.Name, err)
			}
		}

		vertexCount := len(indices) / stride
		vertexCount -= vertexCount % 3

		verts := make([]Vector3, 0, vertexCount)

		for v := 0; v < vertexCount; v++ {
			i := indices[v*stride+vertexOffset]
			if i < 0 || i*3+2 >= len(positions) {
				return fmt.Errorf("%w: geometry %q vertex index %d is out of range", ErrMalformedDAE, geo.Name, i)
			}
			verts = append(verts, transform.MultVec(Vector3{positions[i*3], positions[i*3+1], positions[i*3+2]}))
		}

		material := loader.material(tris.Material, instance)

		if colorOffset < 0 {
			loader.world.AddShapes(NewShape(TriangleList, material, verts...))
			continue
		}

		colors, err := colorSource.Parse()
		if err != nil {
			return err
		}

		colorStride := colorSource.Accessor.Stride
		if colorStride < 3 {
			colorStride = 3
		}

		for t := 0; t+2 < len(verts); t += 3 {

			var corners [3]RGB

			for c := range corners {
				i := indices[(t+c)*stride+colorOffset]
				if i < 0 || i*colorStride+2 >= len(colors) {
					return fmt.Errorf("%w: geometry %q color index %d is out of range", ErrMalformedDAE, geo.Name, i)
				}
				corners[c] = RGB{unitToChannel(colors[i*colorStride]), unitToChannel(colors[i*colorStride+1]), unitToChannel(colors[i*colorStride+2])}
			}

			vertexColors := NewMaterial(material.Name, LinearColor{C0: corners[0], C1: corners[1], C2: corners[2]})
			loader.world.AddShapes(NewShape(TriangleList, vertexColors, verts[t], verts[t+1], verts[t+2]))

		}

	}

	return nil

}
