package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
)

// DespawnSystem destroys entities once even their topmost point has dropped
// Margin below the bottom of the view.
type DespawnSystem struct{}

func NewDespawnSystem() *DespawnSystem {
	return &DespawnSystem{}
}

func (s *DespawnSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	_, bottom, _, _ := cam.ViewBounds()

	ecs.ForEach3(w, component.DespawnComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, d *component.Despawn, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Collider == nil {
			return
		}
		top := pb.Collider.TopmostWorldPoint(cp.Vector{X: t.X, Y: t.Y}, t.Rotation)
		if top.Y < bottom-d.Margin {
			ecs.DestroyEntity(w, e)
		}
	})
}
