package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff8000", color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"#ffffffc0", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}, false},
		{" 102030 ", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("ParseColor(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestColorOr(t *testing.T) {
	fallback := color.White
	var unset *YAMLColor
	if got := unset.ColorOr(fallback); got != fallback {
		t.Fatalf("nil colour should fall back")
	}
	set := &YAMLColor{Color: color.NRGBA{R: 1, A: 255}}
	if got := set.ColorOr(fallback); got != set.Color {
		t.Fatalf("set colour = %v", got)
	}
}

func TestShapeSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    ShapeSpec
		wantErr bool
	}{
		{"box", ShapeSpec{Width: 1, Height: 2}, false},
		{"flat_box", ShapeSpec{Width: 1}, true},
		{"triangle", ShapeSpec{Points: []VecSpec{{X: 0}, {X: 1}, {Y: 1}}}, false},
		{"segment", ShapeSpec{Points: []VecSpec{{X: 0}, {X: 1}}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.spec.Validate(); (err != nil) != c.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestLoadWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec("world.yaml")
	if err != nil {
		t.Fatalf("load world: %v", err)
	}
	if spec.PixelsPerUnit <= 0 || spec.ViewWidth <= 0 || spec.ViewHeight <= 0 {
		t.Fatalf("view = %+v", spec)
	}
	if spec.Gravity.Y >= 0 {
		t.Fatalf("gravity should pull down, got %+v", spec.Gravity)
	}
	if spec.Background.ColorOr(nil) == nil {
		t.Fatalf("background colour missing")
	}
	for _, name := range []string{spec.Player, spec.Camera, spec.Platform, spec.Spawner, spec.Blocks, spec.Clouds} {
		if _, err := Load(name); err != nil {
			t.Fatalf("world references %q: %v", name, err)
		}
	}
	if len(spec.Walls) != 2 {
		t.Fatalf("walls = %d, want 2", len(spec.Walls))
	}
}

func TestLoadBlockCatalog(t *testing.T) {
	catalog, err := LoadBlockCatalog("blocks.yaml")
	if err != nil {
		t.Fatalf("load blocks: %v", err)
	}
	polygons := 0
	for _, v := range catalog.Variants {
		if v.IsPolygon() {
			polygons++
		}
	}
	if polygons == 0 || polygons == len(catalog.Variants) {
		t.Fatalf("catalog should mix boxes and polygons, got %d of %d polygons", polygons, len(catalog.Variants))
	}
	if catalog.HazardColor == nil || catalog.NormalColor == nil {
		t.Fatalf("catalog colours missing")
	}
}

func TestLoadCloudField(t *testing.T) {
	field, err := LoadCloudField("clouds.yaml")
	if err != nil {
		t.Fatalf("load clouds: %v", err)
	}
	if len(field.Patches) == 0 || field.WrapAt <= field.ResetTo {
		t.Fatalf("cloud field = %+v", field)
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("name: edited\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := Load("prefabs/camera.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(string(data), "edited") {
		t.Fatalf("disk copy should win, got %q", data)
	}
	if _, ok := ModTime("camera.yaml"); !ok {
		t.Fatalf("mod time should be found on disk")
	}

	// Files missing on disk come from the embedded copies.
	if _, err := Load("player.yaml"); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"spawner.tengo", "scripts/spawner.tengo", "prefabs/scripts/spawner.tengo"} {
		src, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if !strings.Contains(string(src), "hazardous") {
			t.Fatalf("LoadScript(%q) returned the wrong script", name)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("spawner.yaml")
	if err != nil {
		t.Fatalf("load spawner: %v", err)
	}
	sp, err := DecodeComponentSpec[SpawnerComponentSpec](spec.Components["spawner"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sp.Interval <= 0 || sp.ScreenSpawnLimits[0] >= sp.ScreenSpawnLimits[1] || sp.Script == "" {
		t.Fatalf("spawner spec = %+v", sp)
	}

	empty, err := DecodeComponentSpec[HazardComponentSpec](nil)
	if err != nil || empty.Lethal || empty.Damage != 0 {
		t.Fatalf("nil block should decode to zero value, got %+v, %v", empty, err)
	}
}
