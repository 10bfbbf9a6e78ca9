package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes a loosely typed component block into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Color      *YAMLColor `yaml:"color"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	FacingLeft bool       `yaml:"facing_left"`
}

type PhysicsBodyComponentSpec struct {
	Kind          string    `yaml:"kind"`
	Shape         ShapeSpec `yaml:"shape"`
	Mass          float64   `yaml:"mass"`
	Friction      float64   `yaml:"friction"`
	FixedRotation bool      `yaml:"fixed_rotation"`
	Sensor        bool      `yaml:"sensor"`
	Category      string    `yaml:"category"`
	Class         []string  `yaml:"class"`
}

type CharacterComponentSpec struct {
	MoveSpeed         float64 `yaml:"move_speed"`
	MaxVelocity       VecSpec `yaml:"max_velocity"`
	JumpStrength      float64 `yaml:"jump_strength"`
	WallJumpStrength  float64 `yaml:"wall_jump_strength"`
	DashStrength      float64 `yaml:"dash_strength"`
	DashCooldown      float64 `yaml:"dash_cooldown"`
	DashDuration      float64 `yaml:"dash_duration"`
	KnockbackStrength float64 `yaml:"knockback_strength"`
	KnockbackDuration float64 `yaml:"knockback_duration"`
	JumpCharges       int     `yaml:"jump_charges"`
	DashCharges       int     `yaml:"dash_charges"`
	GroundProbe       float64 `yaml:"ground_probe"`
	WallProbe         float64 `yaml:"wall_probe"`
	ProbeInset        float64 `yaml:"probe_inset"`
}

type StartingPlatformComponentSpec struct {
	HazardColor *YAMLColor `yaml:"hazard_color"`
}

type HazardComponentSpec struct {
	Lethal bool `yaml:"lethal"`
	Damage int  `yaml:"damage"`
}

type CameraComponentSpec struct {
	Smoothness float64 `yaml:"smoothness"`
}

type SpawnerComponentSpec struct {
	Interval          float64    `yaml:"interval"`
	ScreenSpawnLimits [2]float64 `yaml:"screen_spawn_limits"`
	HazardChance      float64    `yaml:"hazard_chance"`
	FallSpeedRange    [2]float64 `yaml:"fall_speed_range"`
	Offset            float64    `yaml:"offset"`
	Script            string     `yaml:"script"`
}
