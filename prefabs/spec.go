package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WorldSpec is the level-wide tuning in world.yaml.
type WorldSpec struct {
	Gravity       VecSpec     `yaml:"gravity"`
	PixelsPerUnit float64     `yaml:"pixels_per_unit"`
	ViewWidth     int         `yaml:"view_width"`
	ViewHeight    int         `yaml:"view_height"`
	Background    *YAMLColor  `yaml:"background"`
	Spawn         VecSpec     `yaml:"spawn"`
	DeathDepth    float64     `yaml:"death_depth"`
	Health        int         `yaml:"health"`
	Player        string      `yaml:"player"`
	Camera        string      `yaml:"camera"`
	Platform      string      `yaml:"platform"`
	Spawner       string      `yaml:"spawner"`
	Walls         []PlaceSpec `yaml:"walls"`
	Blocks        string      `yaml:"blocks"`
	Clouds        string      `yaml:"clouds"`
}

// PlaceSpec instantiates a prefab at a position.
type PlaceSpec struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

func LoadWorldSpec(filename string) (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.PixelsPerUnit <= 0 {
		return nil, fmt.Errorf("prefabs: %s: pixels_per_unit must be positive", filename)
	}
	if spec.ViewWidth <= 0 || spec.ViewHeight <= 0 {
		return nil, fmt.Errorf("prefabs: %s: view size must be positive", filename)
	}
	return &spec, nil
}

// BlockCatalogSpec lists the shapes the spawner picks from.
type BlockCatalogSpec struct {
	NormalColor *YAMLColor      `yaml:"normal_color"`
	HazardColor *YAMLColor      `yaml:"hazard_color"`
	Friction    float64         `yaml:"friction"`
	Variants    []ShapeSpec     `yaml:"variants"`
	Despawn     DespawnSpec     `yaml:"despawn"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type DespawnSpec struct {
	Margin float64 `yaml:"margin"`
}

func LoadBlockCatalog(filename string) (*BlockCatalogSpec, error) {
	spec, err := LoadSpec[BlockCatalogSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Variants) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no block variants", filename)
	}
	for i, v := range spec.Variants {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("prefabs: %s: variant %d: %w", filename, i, err)
		}
	}
	return &spec, nil
}

type CloudFieldSpec struct {
	Color       *YAMLColor      `yaml:"color"`
	WrapAt      float64         `yaml:"wrap_at"`
	ResetTo     float64         `yaml:"reset_to"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Patches     []CloudSpec     `yaml:"patches"`
}

type CloudSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	Parallax float64 `yaml:"parallax"`
}

func LoadCloudField(filename string) (*CloudFieldSpec, error) {
	return ptrOrErr(LoadSpec[CloudFieldSpec](filename))
}

func ptrOrErr[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ShapeSpec is either a box (width/height) or a convex polygon (points).
type ShapeSpec struct {
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Points []VecSpec `yaml:"points"`
}

func (s ShapeSpec) IsPolygon() bool { return len(s.Points) > 0 }

func (s ShapeSpec) Validate() error {
	if s.IsPolygon() {
		if len(s.Points) < 3 {
			return fmt.Errorf("polygon needs at least 3 points, got %d", len(s.Points))
		}
		return nil
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("box needs positive width and height")
	}
	return nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor reads #rrggbb or #rrggbbaa.
func ParseColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}
	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return color.NRGBA{}, err
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// ColorOr returns the parsed colour or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
