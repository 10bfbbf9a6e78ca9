package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
	"github.com/milk9111/skyclimb/physics"
)

// PhysicsBody describes a collider. The physics system fills Body, Shape and
// Adapter when it adds the entity to the space.
type PhysicsBody struct {
	Kind          physics.Kind
	Collider      physics.Shape
	Mass          float64
	Friction      float64
	FixedRotation bool
	Sensor        bool
	Category      controller.Category
	Class         controller.Class

	Body    *cp.Body
	Shape   *cp.Shape
	Adapter *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
