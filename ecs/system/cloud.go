package system

import (
	"github.com/milk9111/skyclimb/common"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
)

// CloudSystem drifts background patches to the right. A patch that passes
// WrapAt (as a viewport fraction) re-enters at ResetTo. Vertically a patch
// follows the camera by its parallax factor.
type CloudSystem struct {
	dt float64
}

func NewCloudSystem() *CloudSystem {
	return &CloudSystem{dt: common.FixedDelta}
}

func (s *CloudSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	ecs.ForEach2(w, component.CloudComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Cloud, t *component.Transform) {
		t.X += c.Speed * s.dt
		if cam.WorldToViewportX(t.X) > c.WrapAt {
			t.X = cam.ViewportToWorldX(c.ResetTo)
		}
		t.Y = c.BaseY + (cam.Y-cam.MinY)*(1-c.Parallax)
	})
}
