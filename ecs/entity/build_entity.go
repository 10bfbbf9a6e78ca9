package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/physics"
	"github.com/milk9111/skyclimb/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"input":             addInput,
	"transform":         addTransform,
	"sprite":            addSprite,
	"render_layer":      addRenderLayer,
	"camera":            addCamera,
	"physics_body":      addPhysicsBody,
	"character":         addCharacter,
	"starting_platform": addStartingPlatform,
	"hazard":            addHazard,
	"spawner":           addSpawner,
	"despawn":           addDespawn,
}

// Builders later in the order may read components added earlier.
var componentBuildOrder = []string{
	"player_tag",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"physics_body",
	"character",
	"starting_platform",
	"hazard",
	"spawner",
	"despawn",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// RegisteredComponents lists the component names prefabs may use.
func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Color:      spec.Color.ColorOr(color.White),
		Width:      spec.Width,
		Height:     spec.Height,
		FacingLeft: spec.FacingLeft,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

// addCamera starts the view on the entity transform. Projection settings come
// from the world spec, see NewCamera.
func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness <= 0 || spec.Smoothness > 1 {
		spec.Smoothness = 0.15
	}
	cam := &component.Camera{Smoothness: spec.Smoothness, PixelsPerUnit: 1}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		cam.X = t.X
		cam.Y = t.Y
		cam.MinY = t.Y
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind, err := parseBodyKind(spec.Kind)
	if err != nil {
		return err
	}
	category, err := parseCategory(spec.Category)
	if err != nil {
		return err
	}
	class, err := parseClass(spec.Class)
	if err != nil {
		return err
	}
	shape, err := ShapeFromSpec(spec.Shape)
	if err != nil {
		return err
	}
	if kind == physics.KindDynamic && spec.Mass <= 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          kind,
		Collider:      shape,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		FixedRotation: spec.FixedRotation,
		Sensor:        spec.Sensor,
		Category:      category,
		Class:         class,
	})
}

type characterSpec = prefabs.CharacterComponentSpec

func addCharacter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character spec: %w", err)
	}
	if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
		return fmt.Errorf("character requires physics_body on the same entity")
	}
	return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		Controller: controller.New(CharacterConfig(spec)),
	})
}

// CharacterConfig converts the prefab tuning block.
func CharacterConfig(spec prefabs.CharacterComponentSpec) controller.Config {
	return controller.Config{
		MoveSpeed:         spec.MoveSpeed,
		MaxVelocity:       cp.Vector{X: spec.MaxVelocity.X, Y: spec.MaxVelocity.Y},
		JumpStrength:      spec.JumpStrength,
		WallJumpStrength:  spec.WallJumpStrength,
		DashStrength:      spec.DashStrength,
		DashCooldown:      spec.DashCooldown,
		DashDuration:      spec.DashDuration,
		KnockbackStrength: spec.KnockbackStrength,
		KnockbackDuration: spec.KnockbackDuration,
		JumpCharges:       spec.JumpCharges,
		DashCharges:       spec.DashCharges,
		Sensor: controller.Sensor{
			GroundLength: spec.GroundProbe,
			WallLength:   spec.WallProbe,
			Inset:        spec.ProbeInset,
			Filter:       physics.CategorySolid,
		},
	}
}

type startingPlatformSpec = prefabs.StartingPlatformComponentSpec

func addStartingPlatform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[startingPlatformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode starting platform spec: %w", err)
	}
	return ecs.Add(w, e, component.StartingPlatformComponent.Kind(), &component.StartingPlatform{
		HazardColor: spec.HazardColor.ColorOr(color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}),
	})
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	if !spec.Lethal && spec.Damage <= 0 {
		spec.Damage = 1
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Lethal: spec.Lethal,
		Damage: spec.Damage,
	})
}

type spawnerSpec = prefabs.SpawnerComponentSpec

func addSpawner(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spawnerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	if spec.Interval <= 0 {
		return fmt.Errorf("spawner interval must be positive")
	}
	lo, hi := spec.ScreenSpawnLimits[0], spec.ScreenSpawnLimits[1]
	if hi == 0 {
		lo, hi = 0, 1
	}
	if lo < 0 || hi > 1 || lo > hi {
		return fmt.Errorf("screen_spawn_limits %v outside [0, 1]", spec.ScreenSpawnLimits)
	}
	minSpeed, maxSpeed := spec.FallSpeedRange[0], spec.FallSpeedRange[1]
	if minSpeed > maxSpeed {
		minSpeed, maxSpeed = maxSpeed, minSpeed
	}
	return ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Interval:     spec.Interval,
		MinViewportX: lo,
		MaxViewportX: hi,
		HazardChance: spec.HazardChance,
		MinFallSpeed: minSpeed,
		MaxFallSpeed: maxSpeed,
		Offset:       spec.Offset,
		Script:       spec.Script,
	})
}

func addDespawn(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DespawnSpec](raw)
	if err != nil {
		return fmt.Errorf("decode despawn spec: %w", err)
	}
	return ecs.Add(w, e, component.DespawnComponent.Kind(), &component.Despawn{Margin: spec.Margin})
}

// ShapeFromSpec builds the collider variant described by spec.
func ShapeFromSpec(spec prefabs.ShapeSpec) (physics.Shape, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if !spec.IsPolygon() {
		return physics.Box{W: spec.Width, H: spec.Height}, nil
	}
	verts := make([]cp.Vector, len(spec.Points))
	for i, p := range spec.Points {
		verts[i] = cp.Vector{X: p.X, Y: p.Y}
	}
	return physics.Polygon{Verts: verts}, nil
}

func parseBodyKind(v string) (physics.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "static":
		return physics.KindStatic, nil
	case "kinematic":
		return physics.KindKinematic, nil
	case "dynamic":
		return physics.KindDynamic, nil
	default:
		return 0, fmt.Errorf("unknown body kind %q", v)
	}
}

func parseCategory(v string) (controller.Category, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "solid":
		return physics.CategorySolid, nil
	case "character":
		return physics.CategoryCharacter, nil
	case "hazard":
		return physics.CategoryHazard, nil
	default:
		return 0, fmt.Errorf("unknown collision category %q", v)
	}
}

func parseClass(labels []string) (controller.Class, error) {
	var class controller.Class
	for _, l := range labels {
		switch strings.ToLower(strings.TrimSpace(l)) {
		case "ground":
			class |= controller.ClassGround
		case "wall":
			class |= controller.ClassWall
		case "hazard":
			class |= controller.ClassHazard
		default:
			return 0, fmt.Errorf("unknown surface class %q", l)
		}
	}
	return class, nil
}
