package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyclimb/controller"
)

// Body adapts a cp body and its collider to controller.Body. A nil *Body, or
// one without a cp body, reports Valid() == false.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewBody(body *cp.Body, shape *cp.Shape) *Body {
	return &Body{body: body, shape: shape}
}

func (b *Body) Valid() bool {
	return b != nil && b.body != nil && b.shape != nil
}

func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Body) Shape() *cp.Shape {
	if b == nil {
		return nil
	}
	return b.shape
}

func (b *Body) Position() cp.Vector {
	if !b.Valid() {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) Velocity() cp.Vector {
	if !b.Valid() {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	if !b.Valid() {
		return
	}
	b.body.SetVelocityVector(v)
}

// AddForce applies v through the centre of mass, so it never spins the body.
func (b *Body) AddForce(v cp.Vector, mode controller.ForceMode) {
	if !b.Valid() {
		return
	}
	switch mode {
	case controller.ForceImpulse:
		b.body.ApplyImpulseAtWorldPoint(v, b.body.Position())
	default:
		b.body.ApplyForceAtLocalPoint(v, cp.Vector{})
	}
}

func (b *Body) Bounds() controller.Bounds {
	if !b.Valid() {
		return controller.Bounds{}
	}
	return controller.BoundsFromBB(b.shape.BB())
}
