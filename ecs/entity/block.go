package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/physics"
	"github.com/milk9111/skyclimb/prefabs"
)

var (
	defaultBlockColor  = color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff}
	defaultHazardColor = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// BlockParams places one falling block.
type BlockParams struct {
	Variant   int
	X, Y      float64
	Speed     float64
	Hazardous bool
}

// NewBlock creates a kinematic falling block from the catalog. Hazardous
// blocks keep their Ground and Wall labels so they can still be touched, but
// hurt on contact.
func NewBlock(w *ecs.World, catalog *prefabs.BlockCatalogSpec, p BlockParams) (ecs.Entity, error) {
	if catalog == nil || len(catalog.Variants) == 0 {
		return 0, fmt.Errorf("block: empty catalog")
	}
	if p.Variant < 0 || p.Variant >= len(catalog.Variants) {
		return 0, fmt.Errorf("block: variant %d out of range", p.Variant)
	}
	shape, err := ShapeFromSpec(catalog.Variants[p.Variant])
	if err != nil {
		return 0, fmt.Errorf("block: variant %d: %w", p.Variant, err)
	}

	class := controller.ClassGround | controller.ClassWall
	fill := catalog.NormalColor.ColorOr(defaultBlockColor)
	if p.Hazardous {
		class |= controller.ClassHazard
		fill = catalog.HazardColor.ColorOr(defaultHazardColor)
	}
	size := shape.Size()

	e := ecs.CreateEntity(w)
	add := func(name string, fn func() error) error {
		if err := fn(); err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("block: add %s: %w", name, err)
		}
		return nil
	}

	if err := add("transform", func() error {
		return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y})
	}); err != nil {
		return 0, err
	}
	if err := add("sprite", func() error {
		return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Color: fill, Width: size.X, Height: size.Y})
	}); err != nil {
		return 0, err
	}
	if err := add("render_layer", func() error {
		return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: catalog.RenderLayer.Index})
	}); err != nil {
		return 0, err
	}
	if err := add("physics_body", func() error {
		return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:     physics.KindKinematic,
			Collider: shape,
			Friction: catalog.Friction,
			Category: physics.CategorySolid,
			Class:    class,
		})
	}); err != nil {
		return 0, err
	}
	if err := add("falling_block", func() error {
		return ecs.Add(w, e, component.FallingBlockComponent.Kind(), &component.FallingBlock{Speed: p.Speed, Hazardous: p.Hazardous})
	}); err != nil {
		return 0, err
	}
	if err := add("despawn", func() error {
		return ecs.Add(w, e, component.DespawnComponent.Kind(), &component.Despawn{Margin: catalog.Despawn.Margin})
	}); err != nil {
		return 0, err
	}
	if p.Hazardous {
		if err := add("hazard", func() error {
			return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Damage: 1})
		}); err != nil {
			return 0, err
		}
	}
	return e, nil
}
