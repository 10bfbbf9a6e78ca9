package system

import (
	"github.com/milk9111/skyclimb/common"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/telemetry"
)

// CameraSystem eases the view toward the player's height. It never drops
// below where the climb started, and only follows vertically.
type CameraSystem struct {
	tracker telemetry.Reader
}

func NewCameraSystem(tracker telemetry.Reader) *CameraSystem {
	return &CameraSystem{tracker: tracker}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	targetY, ok := cs.targetY(w)
	if !ok {
		return
	}
	// Keep the start framing: the view centre sits MinY above the spawn.
	goal := targetY + cam.MinY
	if goal < cam.MinY {
		goal = cam.MinY
	}
	cam.Y = common.Lerp(cam.Y, goal, cam.Smoothness)

	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		t.X = cam.X
		t.Y = cam.Y
	}
}

// targetY is the player height above spawn.
func (cs *CameraSystem) targetY(_ *ecs.World) (float64, bool) {
	if cs.tracker == nil {
		return 0, false
	}
	return cs.tracker.Height(), true
}
