package system

import (
	"github.com/milk9111/skyclimb/common"
	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/events"
	"github.com/milk9111/skyclimb/physics"
)

// CharacterSystem feeds input events to each character controller and runs
// its simulation and physics steps before the space is stepped.
type CharacterSystem struct {
	prober controller.Prober
	bus    *events.Bus
	dt     float64
}

func NewCharacterSystem(prober *physics.Prober, bus *events.Bus) *CharacterSystem {
	s := &CharacterSystem{bus: bus, dt: common.FixedDelta}
	if prober != nil {
		s.prober = prober
	}
	return s
}

func (s *CharacterSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	platform := startingPlatform(w)
	ecs.ForEach3(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, ch *component.Character, input *component.Input, pb *component.PhysicsBody) {
		ctrl := ch.Controller
		if ctrl == nil {
			return
		}
		body := characterBody(pb)

		if input.MoveChanged {
			ctrl.SetInput(input.Move, input.Scheme)
		}
		if input.JumpPressed && ctrl.Jump(body, platform) {
			s.bus.Publish(events.PlayerJumped, nil)
		}
		if input.DashPressed && ctrl.Dash(body) {
			s.bus.Publish(events.PlayerDashed, nil)
		}

		ctrl.Update(s.dt, body, s.prober)
		ctrl.FixedUpdate(body)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = !ctrl.FacingRight()
		}
	})
}

// characterBody keeps a missing adapter a nil interface rather than a typed
// nil, although physics.Body tolerates both.
func characterBody(pb *component.PhysicsBody) controller.Body {
	if pb == nil || pb.Adapter == nil {
		return nil
	}
	return pb.Adapter
}

func startingPlatform(w *ecs.World) controller.Platform {
	e, ok := ecs.First(w, component.StartingPlatformComponent.Kind())
	if !ok {
		return nil
	}
	return &platformHandle{w: w, e: e}
}

// platformHandle converts the starting platform entity into a death box.
type platformHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (p *platformHandle) IsConverted() bool {
	sp, ok := ecs.Get(p.w, p.e, component.StartingPlatformComponent.Kind())
	return !ok || sp.Converted
}

func (p *platformHandle) ConvertToHazard() {
	sp, ok := ecs.Get(p.w, p.e, component.StartingPlatformComponent.Kind())
	if !ok || sp.Converted {
		return
	}
	sp.Converted = true

	if pb, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Sensor = true
		pb.Category = physics.CategoryHazard
		pb.Class = controller.ClassHazard
		physics.MakeHazard(pb.Shape)
	}
	if sprite, ok := ecs.Get(p.w, p.e, component.SpriteComponent.Kind()); ok && sp.HazardColor != nil {
		sprite.Color = sp.HazardColor
	}
	_ = ecs.Add(p.w, p.e, component.HazardComponent.Kind(), &component.Hazard{Lethal: true})
}
