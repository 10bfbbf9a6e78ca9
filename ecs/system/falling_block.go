package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/ecs"
	"github.com/milk9111/skyclimb/ecs/component"
)

// FallingBlockSystem drives kinematic blocks straight down. The space
// integrates the velocity, so riders are carried by friction.
type FallingBlockSystem struct{}

func NewFallingBlockSystem() *FallingBlockSystem {
	return &FallingBlockSystem{}
}

func (s *FallingBlockSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.FallingBlockComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, fb *component.FallingBlock, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		pb.Body.SetVelocityVector(cp.Vector{Y: -fb.Speed})
	})
}
