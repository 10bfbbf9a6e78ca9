package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/common"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
	"github.com/milk9111/skyclimb/physics"
)

// PhysicsSystem owns the cp space. It adds a body for every new PhysicsBody,
// steps the space once per tick and copies poses back into transforms.
type PhysicsSystem struct {
	space         *cp.Space
	prober        *physics.Prober
	dt            float64
	handlersReady bool

	// world is only set while the space steps, for the collision handlers.
	world *ecs.World

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem(gravity cp.Vector) *PhysicsSystem {
	space := physics.NewSpace(gravity)
	return &PhysicsSystem{
		space:    space,
		prober:   physics.NewProber(space),
		dt:       common.FixedDelta,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Prober answers the character sensor's ray queries against this space.
func (ps *PhysicsSystem) Prober() *physics.Prober {
	if ps == nil {
		return nil
	}
	return ps.prober
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	ps.world = w
	ps.space.Step(ps.dt)
	ps.world = nil

	ps.syncTransforms(w)
}

// Sync adds bodies for new entities without stepping, so a freshly built
// level has colliders before its first tick.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}
	ps.ensureHandlers()
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	hazardHandler := ps.space.NewCollisionHandler(physics.CollisionCharacter, physics.CollisionHazard)
	hazardHandler.UserData = ps
	hazardHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		character, okA := sys.shapes[shapeA]
		other, okB := sys.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		if !ecs.Has(sys.world, character, component.CharacterComponent.Kind()) {
			character, other = other, character
		}

		kind := ecs.ContactHazard
		if hz, ok := ecs.Get(sys.world, other, component.HazardComponent.Kind()); ok && hz.Lethal {
			kind = ecs.ContactDeathBox
		}
		sys.world.Contacts().Push(ecs.Contact{Kind: kind, Entity: character, Other: other})
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		if pb.Collider == nil {
			return
		}

		surface := &physics.Surface{Class: pb.Class, Name: e.String()}
		body, shape := physics.Add(ps.space, physics.Collider{
			Kind:          pb.Kind,
			Shape:         pb.Collider,
			Position:      cp.Vector{X: t.X, Y: t.Y},
			Mass:          pb.Mass,
			Friction:      pb.Friction,
			FixedRotation: pb.FixedRotation,
			Sensor:        pb.Sensor,
			Filter:        physics.CategoryFilter(pb.Category),
			Type:          physics.CollisionTypeFor(pb.Category, pb.Class),
			Surface:       surface,
		})
		if body == nil || shape == nil {
			return
		}
		if t.Rotation != 0 {
			body.SetAngle(t.Rotation)
		}

		pb.Body = body
		pb.Shape = shape
		pb.Adapter = physics.NewBody(body, shape)
		ps.entities[e] = &bodyInfo{body: body, shape: shape}
		ps.shapes[shape] = e
	})
}

// cleanupEntities removes the bodies of destroyed entities and of entities
// whose PhysicsBody was removed.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		physics.Remove(ps.space, info.body, info.shape)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Kind == physics.KindStatic {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}
