package raymaze

import (
	"errors"
	"strings"
	"testing"
)

// testDAE is a quad at z = 5 made of a red triangle and a vertex colored one, with a point light parented to it and a
// directional light, as Blender would export it.
const testDAE = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <library_effects>
    <effect id="Red-effect">
      <profile_COMMON><technique sid="common"><lambert><diffuse><color sid="diffuse">1 0 0 1</color></diffuse></lambert></technique></profile_COMMON>
    </effect>
    <effect id="Blue-effect">
      <profile_COMMON><technique sid="common"><phong><diffuse><color sid="diffuse">0 0 1 1</color></diffuse></phong></technique></profile_COMMON>
    </effect>
  </library_effects>
  <library_materials>
    <material id="Red-material" name="Red"><instance_effect url="#Red-effect"/></material>
    <material id="Blue-material" name="Blue"><instance_effect url="#Blue-effect"/></material>
  </library_materials>
  <library_geometries>
    <geometry id="Quad-mesh" name="Quad">
      <mesh>
        <source id="Quad-mesh-positions">
          <float_array id="Quad-mesh-positions-array" count="12">0 0 0 1 0 0 0 1 0 1 1 0</float_array>
          <technique_common><accessor source="#Quad-mesh-positions-array" count="4" stride="3"/></technique_common>
        </source>
        <source id="Quad-mesh-colors-Col">
          <float_array id="Quad-mesh-colors-Col-array" count="12">1 0 0 1 0 1 0 1 0 0 1 1</float_array>
          <technique_common><accessor source="#Quad-mesh-colors-Col-array" count="3" stride="4"/></technique_common>
        </source>
        <vertices id="Quad-mesh-vertices">
          <input semantic="POSITION" source="#Quad-mesh-positions"/>
        </vertices>
        <triangles material="Red-material" count="1">
          <input semantic="VERTEX" source="#Quad-mesh-vertices" offset="0"/>
          <p>0 1 2</p>
        </triangles>
        <triangles material="Blue-material" count="1">
          <input semantic="VERTEX" source="#Quad-mesh-vertices" offset="0"/>
          <input semantic="COLOR" source="#Quad-mesh-colors-Col" offset="1" set="0"/>
          <p>2 0 1 1 3 2</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
  <library_lights>
    <light id="Lamp-light" name="Lamp"><technique_common><point><color sid="color">1 1 1</color></point></technique_common></light>
    <light id="Sun-light" name="Sun"><technique_common><directional><color sid="color">1 1 1</color></directional></technique_common></light>
  </library_lights>
  <library_visual_scenes>
    <visual_scene id="Scene" name="Scene">
      <node id="Quad" name="Quad" type="NODE">
        <matrix sid="transform">1 0 0 0 0 1 0 0 0 0 1 5 0 0 0 1</matrix>
        <instance_geometry url="#Quad-mesh" name="Quad">
          <bind_material>
            <technique_common>
              <instance_material symbol="Red-material" target="#Red-material"/>
              <instance_material symbol="Blue-material" target="#Blue-material"/>
            </technique_common>
          </bind_material>
        </instance_geometry>
        <node id="Lamp" name="Lamp" type="NODE">
          <matrix sid="transform">1 0 0 1 0 1 0 2 0 0 1 3 0 0 0 1</matrix>
          <instance_light url="#Lamp-light"/>
        </node>
      </node>
      <node id="Sun" name="Sun" type="NODE">
        <instance_light url="#Sun-light"/>
      </node>
    </visual_scene>
  </library_visual_scenes>
  <scene><instance_visual_scene url="#Scene"/></scene>
</COLLADA>`

func TestLoadDAEData(t *testing.T) {

	options := DefaultDAELoadOptions()
	options.ConvertZUp = false

	world, err := LoadDAEData([]byte(testDAE), options)
	if err != nil {
		t.Fatal(err)
	}

	if len(world.Shapes) != 2 {
		t.Fatal("expected a shape per triangle set, got", len(world.Shapes))
	}

	red := world.Shapes[0]

	if len(red.Vertices) != 3 || !red.Vertices[1].Equals(Vector3{1, 0, 5}) {
		t.Fatal("red triangle should be moved to z = 5, got", red.Vertices)
	}

	if red.Material.Name != "Red" || red.Material.ColorAt(Vector3{}, nil) != (RGB{255, 0, 0}) {
		t.Fatal("red triangle should use the lambert diffuse color of its material")
	}

	colored := world.Shapes[1]

	if !colored.Vertices[0].Equals(Vector3{0, 1, 5}) || !colored.Vertices[2].Equals(Vector3{1, 1, 5}) {
		t.Fatal("vertex colored triangle has unexpected vertices", colored.Vertices)
	}

	if colored.Material.Name != "Blue" {
		t.Fatal("vertex colored triangle should keep its material's name, got", colored.Material.Name)
	}

	want := LinearColor{C0: RGB{255, 0, 0}, C1: RGB{0, 255, 0}, C2: RGB{0, 0, 255}}
	if lc, ok := colored.Material.Color.(LinearColor); !ok || lc != want {
		t.Fatal("vertex colors should become a LinearColor, got", colored.Material.Color)
	}

	// The lamp is parented to the quad; the sun has no position and is skipped
	if len(world.Lighting) != 1 || !world.Lighting[0].Equals(Vector3{1, 2, 8}) {
		t.Fatal("expected a single light at (1, 2, 8), got", world.Lighting)
	}

}

func TestLoadDAEConvertZUp(t *testing.T) {

	world, err := LoadDAEData([]byte(testDAE), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Blender's up (+Z) is up on the canvas (-Y), and Blender's +Y goes into the screen (+Z)
	if v := world.Shapes[0].Vertices[1]; !v.Equals(Vector3{1, -5, 0}) {
		t.Fatal("unexpected converted vertex", v)
	}

	if v := world.Shapes[0].Vertices[2]; !v.Equals(Vector3{0, -5, 1}) {
		t.Fatal("unexpected converted vertex", v)
	}

	if l := world.Lighting[0]; !l.Equals(Vector3{1, -8, 2}) {
		t.Fatal("unexpected converted light", l)
	}

	options := DefaultDAELoadOptions()
	options.Transform = NewMatrix4Translate(0, 10, 0)

	moved, err := LoadDAEData([]byte(testDAE), options)
	if err != nil {
		t.Fatal(err)
	}

	if v := moved.Shapes[0].Vertices[1]; !v.Equals(Vector3{1, 5, 0}) {
		t.Fatal("load transform should apply after converting axes, got", v)
	}

}

func TestLoadDAEErrors(t *testing.T) {

	if _, err := LoadDAEData([]byte("<COLLADA></COLLADA>"), nil); !errors.Is(err, ErrNoScene) {
		t.Fatal("expected ErrNoScene for an empty document, got", err)
	}

	if _, err := LoadDAEData([]byte("not xml at all"), nil); err == nil {
		t.Fatal("expected an error decoding garbage")
	}

	for name, broken := range map[string]string{
		"unknown geometry": strings.Replace(testDAE, `url="#Quad-mesh"`, `url="#Missing-mesh"`, 1),
		"index range":      strings.Replace(testDAE, "<p>0 1 2</p>", "<p>0 1 7</p>", 1),
		"bad index":        strings.Replace(testDAE, "<p>0 1 2</p>", "<p>0 1 two</p>", 1),
		"bad matrix":       strings.Replace(testDAE, "1 0 0 0 0 1 0 0 0 0 1 5 0 0 0 1", "1 0 0", 1),
	} {
		if _, err := LoadDAEData([]byte(broken), nil); !errors.Is(err, ErrMalformedDAE) {
			t.Fatal(name, "should fail with ErrMalformedDAE, got", err)
		}
	}

	if _, err := LoadDAEFile("./does-not-exist.dae", nil); err == nil {
		t.Fatal("expected an error opening a missing file")
	}

}
