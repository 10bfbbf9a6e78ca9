package controller

import "github.com/jakecoffman/cp"

type appliedForce struct {
	v    cp.Vector
	mode ForceMode
}

// fakeBody integrates impulses immediately and continuous forces on step,
// with unit mass.
type fakeBody struct {
	valid  bool
	vel    cp.Vector
	pos    cp.Vector
	size   cp.Vector
	force  cp.Vector
	forces []appliedForce
}

func newFakeBody() *fakeBody {
	return &fakeBody{valid: true, size: cp.Vector{X: 1, Y: 1}}
}

func (b *fakeBody) Valid() bool             { return b.valid }
func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }

func (b *fakeBody) AddForce(v cp.Vector, mode ForceMode) {
	b.forces = append(b.forces, appliedForce{v: v, mode: mode})
	if mode == ForceImpulse {
		b.vel = b.vel.Add(v)
		return
	}
	b.force = b.force.Add(v)
}

func (b *fakeBody) Bounds() Bounds {
	half := b.size.Mult(0.5)
	return BoundsFromBB(cp.BB{L: b.pos.X - half.X, B: b.pos.Y - half.Y, R: b.pos.X + half.X, T: b.pos.Y + half.Y})
}

func (b *fakeBody) step(dt float64) {
	b.vel = b.vel.Add(b.force.Mult(dt))
	b.force = cp.Vector{}
	b.pos = b.pos.Add(b.vel.Mult(dt))
}

// fakeLevel answers ray probes against an infinite floor and two vertical walls.
type fakeLevel struct {
	floor      *float64
	floorClass Class
	// floorMaxX limits the floor to x <= floorMaxX when set, modelling a ledge.
	floorMaxX *float64

	wallRight  *float64
	wallLeft   *float64
	wallsClass Class

	casts int
}

func ptr(v float64) *float64 { return &v }

func (l *fakeLevel) Raycast(origin, dir cp.Vector, maxLength float64, _ Category) RayHit {
	l.casts++
	switch {
	case dir.Y < 0 && l.floor != nil:
		if l.floorMaxX != nil && origin.X > *l.floorMaxX {
			return RayHit{}
		}
		if origin.Y >= *l.floor && origin.Y-maxLength <= *l.floor {
			return RayHit{Hit: true, Class: l.floorClass}
		}
	case dir.X > 0 && l.wallRight != nil:
		if origin.X <= *l.wallRight && origin.X+maxLength >= *l.wallRight {
			return RayHit{Hit: true, Class: l.wallsClass}
		}
	case dir.X < 0 && l.wallLeft != nil:
		if origin.X >= *l.wallLeft && origin.X-maxLength <= *l.wallLeft {
			return RayHit{Hit: true, Class: l.wallsClass}
		}
	}
	return RayHit{}
}

type fakePlatform struct {
	converted   bool
	conversions int
}

func (p *fakePlatform) IsConverted() bool { return p.converted }

func (p *fakePlatform) ConvertToHazard() {
	if p.converted {
		return
	}
	p.converted = true
	p.conversions++
}
