package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/telemetry"
)

// TelemetrySystem publishes the player position into the tracker once per
// tick, after physics has moved it.
type TelemetrySystem struct {
	tracker *telemetry.Tracker
}

func NewTelemetrySystem(tracker *telemetry.Tracker) *TelemetrySystem {
	return &TelemetrySystem{tracker: tracker}
}

func (s *TelemetrySystem) Update(w *ecs.World) {
	if s == nil || s.tracker == nil || !s.tracker.Alive() {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s.tracker.Publish(cp.Vector{X: t.X, Y: t.Y})
}
