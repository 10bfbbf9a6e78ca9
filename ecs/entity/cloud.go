package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/prefabs"
)

// NewClouds creates one background entity per patch in the field.
func NewClouds(w *ecs.World, field *prefabs.CloudFieldSpec) ([]ecs.Entity, error) {
	if field == nil {
		return nil, nil
	}
	wrapAt, resetTo := field.WrapAt, field.ResetTo
	if wrapAt <= resetTo {
		wrapAt, resetTo = 1.5, -0.5
	}
	fill := field.Color.ColorOr(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0})

	out := make([]ecs.Entity, 0, len(field.Patches))
	for i, p := range field.Patches {
		e := ecs.CreateEntity(w)
		err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y})
		if err == nil {
			err = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Color: fill, Width: p.Width, Height: p.Height})
		}
		if err == nil {
			err = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: field.RenderLayer.Index})
		}
		if err == nil {
			err = ecs.Add(w, e, component.CloudComponent.Kind(), &component.Cloud{
				Speed:    p.Speed,
				WrapAt:   wrapAt,
				ResetTo:  resetTo,
				Parallax: p.Parallax,
				BaseY:    p.Y,
			})
		}
		if err != nil {
			ecs.DestroyEntity(w, e)
			return out, fmt.Errorf("cloud %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
