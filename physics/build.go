package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Kind selects the cp body type for a collider.
type Kind uint8

const (
	KindStatic Kind = iota
	KindKinematic
	KindDynamic
)

// Collider describes a body to be added to a space.
type Collider struct {
	Kind     Kind
	Shape    Shape
	Position cp.Vector
	Mass     float64
	Friction float64
	// FixedRotation gives dynamic bodies an infinite moment.
	FixedRotation bool
	Sensor        bool
	Filter        cp.ShapeFilter
	Type          cp.CollisionType
	Surface       *Surface
}

// Add creates the body and shape described by c and adds both to space.
func Add(space *cp.Space, c Collider) (*cp.Body, *cp.Shape) {
	if space == nil || c.Shape == nil {
		return nil, nil
	}

	var body *cp.Body
	switch c.Kind {
	case KindDynamic:
		mass := c.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !c.FixedRotation {
			size := c.Shape.Size()
			moment = cp.MomentForBox(mass, size.X, size.Y)
		}
		body = cp.NewBody(mass, moment)
	case KindKinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewStaticBody()
	}
	body.SetPosition(c.Position)
	space.AddBody(body)

	shape := c.Shape.Attach(body)
	shape.SetFriction(c.Friction)
	shape.SetFilter(c.Filter)
	shape.SetCollisionType(c.Type)
	shape.SetSensor(c.Sensor)
	if c.Surface != nil {
		shape.UserData = c.Surface
	}
	space.AddShape(shape)
	return body, shape
}

// Remove takes body and shape out of space. Either may be nil; each must
// have been added by Add and not removed since.
func Remove(space *cp.Space, body *cp.Body, shape *cp.Shape) {
	if space == nil {
		return
	}
	if shape != nil {
		space.RemoveShape(shape)
	}
	if body != nil {
		space.RemoveBody(body)
	}
}
