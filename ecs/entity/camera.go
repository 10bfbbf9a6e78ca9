package entity

import (
	"fmt"

	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/prefabs"
)

// NewCamera builds the camera prefab and applies the projection from the
// world spec.
func NewCamera(w *ecs.World, prefabPath string, spec *prefabs.WorldSpec) (ecs.Entity, error) {
	camera, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefabPath)
	}
	cam.PixelsPerUnit = spec.PixelsPerUnit
	cam.ViewWidth = float64(spec.ViewWidth)
	cam.ViewHeight = float64(spec.ViewHeight)
	return camera, nil
}
