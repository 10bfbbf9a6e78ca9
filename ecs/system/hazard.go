package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/events"
	"github.com/milk9111/skyclimb/telemetry"
)

// HazardSystem drains the contacts queued by the physics step. Death boxes
// kill outright; hazardous blocks knock the character away and deal damage,
// at most once per knockback.
type HazardSystem struct {
	tracker *telemetry.Tracker
	bus     *events.Bus
}

func NewHazardSystem(tracker *telemetry.Tracker, bus *events.Bus) *HazardSystem {
	return &HazardSystem{tracker: tracker, bus: bus}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, c := range w.Contacts().Drain() {
		if !ecs.IsAlive(w, c.Entity) {
			continue
		}
		switch c.Kind {
		case ecs.ContactDeathBox:
			s.tracker.Kill(telemetry.ReasonHazard)
		case ecs.ContactHazard:
			s.hurt(w, c)
		}
	}
}

func (s *HazardSystem) hurt(w *ecs.World, c ecs.Contact) {
	ch, ok := ecs.Get(w, c.Entity, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil || ch.Controller.InKnockback() {
		return
	}
	pb, ok := ecs.Get(w, c.Entity, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	var dir cp.Vector
	self, okSelf := ecs.Get(w, c.Entity, component.TransformComponent.Kind())
	other, okOther := ecs.Get(w, c.Other, component.TransformComponent.Kind())
	if okSelf && okOther {
		dir = cp.Vector{X: self.X - other.X, Y: self.Y - other.Y}
	}
	if !ch.Controller.Knockback(characterBody(pb), dir) {
		return
	}

	damage := 1
	if hz, ok := ecs.Get(w, c.Other, component.HazardComponent.Kind()); ok && hz.Damage > 0 {
		damage = hz.Damage
	}
	s.tracker.Damage(damage)
	s.bus.Publish(events.PlayerHurt, events.Hurt{Damage: damage, Health: s.tracker.Health()})
}
